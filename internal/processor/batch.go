package processor

import (
	"context"
	"fmt"

	"codeberg.org/snonux/pptrans/internal/archive"
	"codeberg.org/snonux/pptrans/internal/batch"
	"codeberg.org/snonux/pptrans/internal/cli"
)

// ProcessBatch processes every deck listed in the batch file. Each deck is
// a separate run with its own cache commit; failures are reported and the
// remaining decks still run.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	suffix := p.flags.TargetLang
	if p.flags.Mode == cli.ModeReverseWords {
		suffix = "reversed"
	}

	jobs, err := batch.ReadBatchFile(p.flags.BatchFile, suffix)
	if err != nil {
		return err
	}

	// Track statistics
	processedCount := 0
	errorCount := 0
	var total Summary

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(p.out, "\nProcessing %d/%d: %s -> %s\n", i+1, len(jobs), job.Input, job.Output)
		sum, err := p.ProcessFile(ctx, job.Input, job.Output)
		if err != nil {
			fmt.Fprintf(p.errOut, "Error processing '%s' (line %d): %v\n", job.Input, job.Line, err)
			errorCount++
			continue
		}

		processedCount++
		total.Runs += sum.Runs
		total.FromCache += sum.FromCache
		total.Translated += sum.Translated
		total.Unresolved += sum.Unresolved
		total.Reversed += sum.Reversed
		total.ModelCalls += sum.ModelCalls
	}

	// Print summary
	fmt.Fprintf(p.out, "\n=== Batch Processing Summary ===\n")
	fmt.Fprintf(p.out, "Total decks: %d\n", len(jobs))
	fmt.Fprintf(p.out, "Processed: %d\n", processedCount)
	if p.flags.Mode == cli.ModeReverseWords {
		fmt.Fprintf(p.out, "Runs reversed: %d\n", total.Reversed)
	} else {
		fmt.Fprintf(p.out, "Runs from cache: %d\n", total.FromCache)
		fmt.Fprintf(p.out, "Runs translated: %d\n", total.Translated)
		fmt.Fprintf(p.out, "Runs unresolved: %d\n", total.Unresolved)
		fmt.Fprintf(p.out, "Model calls: %d\n", total.ModelCalls)
	}
	if errorCount > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", errorCount)
	}
	fmt.Fprintf(p.out, "================================\n")

	if errorCount > 0 {
		return fmt.Errorf("%d of %d decks failed", errorCount, len(jobs))
	}
	return nil
}

// ArchiveCache moves the translation cache into its archive directory
func (p *Processor) ArchiveCache() error {
	dest, err := archive.ArchiveCache(p.flags.CachePath)
	if err != nil {
		return fmt.Errorf("failed to archive cache: %w", err)
	}
	fmt.Fprintf(p.out, "Archived cache %s to %s\n", p.flags.CachePath, dest)
	return nil
}
