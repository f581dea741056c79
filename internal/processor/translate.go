package processor

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"codeberg.org/snonux/pptrans/internal/cache"
	"codeberg.org/snonux/pptrans/internal/deck"
	"codeberg.org/snonux/pptrans/internal/translation"
)

// translate plans every selected slide against the cache, sends all misses
// in a single model request, writes the results and commits the cache.
func (p *Processor) translate(ctx context.Context, slides []deck.Slide, pages []int, langs languages, store cache.Store, sum *Summary) error {
	c := cache.Load(store, p.errOut)
	pending := cache.Pending{}

	var (
		queued  []translation.QueueItem
		records []*translation.RunRecord
		counter int
	)

	fmt.Fprintf(p.out, "Processing %d selected slide(s) for translation...\n", len(pages))
	for i, idx := range pages {
		page := idx + 1
		runs := translation.ExtractRuns(slides[idx])
		if len(runs) == 0 {
			fmt.Fprintf(p.out, "  Slide %d (Original page %d): No text found.\n", i+1, page)
			continue
		}

		fingerprint := cache.PageHash(translation.Texts(runs))
		plan := translation.PlanSlide(runs, fingerprint, c, counter, translation.EOLMarker, page)
		counter = plan.NextCounter
		queued = append(queued, plan.Queued...)
		records = append(records, plan.Records...)

		if plan.NeedsLLM {
			pending.Init(fingerprint)
		}
	}

	if len(records) == 0 {
		fmt.Fprintln(p.out, "No text found to process on selected slides for mode 'translate'.")
		cache.Commit(c, pending, store, p.errOut)
		return nil
	}

	sum.Runs = len(records)
	sum.Queued = len(queued)
	sum.FromCache = len(records) - len(queued)
	fmt.Fprintf(p.out, "Processed %d total text runs. %d to translate via LLM.\n", len(records), len(queued))

	if len(queued) == 0 {
		fmt.Fprintln(p.out, "All text elements found in page caches. Skipping LLM prompt.")
	} else {
		if err := p.requestTranslations(ctx, queued, records, pending, langs, sum); err != nil {
			return err
		}
	}

	fmt.Fprintln(p.out, "Replacing text with translations on slides in the copied presentation...")
	translation.ApplyTranslations(records, p.errOut)

	for _, rec := range records {
		if rec.Source == translation.SourceUnresolved {
			sum.Unresolved++
		}
	}
	sum.Translated = sum.Queued - sum.Unresolved

	cache.Commit(c, pending, store, p.errOut)
	return nil
}

func (p *Processor) requestTranslations(ctx context.Context, queued []translation.QueueItem, records []*translation.RunRecord,
	pending cache.Pending, langs languages, sum *Summary) error {
	source := langs.source
	if langs.detect {
		source = p.detectSource(queued)
	}

	fmt.Fprintf(p.out, "Sending %d text elements to LLM for translation.\n", len(queued))
	builder := translation.NewPromptBuilder(source, langs.target)
	instruction, data := builder.Build(queued)

	if !p.flags.QuietPrompt {
		fmt.Fprintln(p.out, "--- PROMPT TO LLM ---")
		fmt.Fprintln(p.out, "System/Instruction Prompt:")
		fmt.Fprintln(p.out, instruction)
		fmt.Fprintln(p.out, "Data Fragments (for LLM):")
		fmt.Fprintln(p.out, data)
		fmt.Fprintln(p.out, "--- END OF PROMPT ---")
	}

	model, err := p.getModel(ctx)
	if err != nil {
		return fmt.Errorf("failed to create language model: %w", err)
	}

	sum.ModelCalls++
	reply, err := model.Prompt(ctx, instruction, data)
	if err != nil {
		return fmt.Errorf("translation request to %s failed: %w", model.Name(), err)
	}

	if !p.flags.QuietPrompt {
		fmt.Fprintln(p.out, "--- RESPONSE FROM LLM ---")
		fmt.Fprintln(p.out, reply)
		fmt.Fprintln(p.out, "--- END OF RESPONSE ---")
	}
	fmt.Fprintln(p.out, "Received translation from LLM.")

	translation.Reconcile(translation.SplitLines(reply), queued, records, pending, translation.EOLMarker, p.errOut)
	return nil
}

// detectSource guesses the source language from the queued texts and
// falls back to Finnish.
func (p *Processor) detectSource(queued []translation.QueueItem) language.Tag {
	texts := make([]string, len(queued))
	for i, q := range queued {
		texts[i] = q.OriginalText
	}

	tag, ok := translation.DetectLanguage(texts)
	if !ok {
		fmt.Fprintln(p.errOut, "Warning: Could not detect the source language. Assuming Finnish.")
		return language.Finnish
	}
	fmt.Fprintf(p.out, "Detected source language: %s\n", translation.LanguageName(tag))
	return tag
}
