package translation

import (
	"fmt"
	"io"

	"codeberg.org/snonux/pptrans/internal"
)

// ApplyTranslations writes every resolved translation onto its run. Runs
// that were sent to the model but got no answer keep their text, are marked
// unresolved and reported on warn. It returns the number of runs written.
func ApplyTranslations(records []*RunRecord, warn io.Writer) int {
	if warn == nil {
		warn = io.Discard
	}

	written := 0
	for _, rec := range records {
		if rec.Translation != nil {
			rec.Run.SetText(*rec.Translation)
			written++
			continue
		}
		if rec.Source == SourceCache {
			continue
		}

		id := rec.LLMID
		if id == "" {
			id = "N/A"
		}
		fmt.Fprintf(warn, "Warning: No translation found for run with original text '%s...' (LLM ID: %s). Leaving original.\n",
			internal.Truncate(rec.OriginalText, 30), id)
		rec.Source = SourceUnresolved
	}
	return written
}
