package translation

import "codeberg.org/snonux/pptrans/internal/cache"

// SlidePlan is the outcome of planning one slide.
type SlidePlan struct {
	// Queued lists the runs bound for the model, in extraction order.
	Queued []QueueItem
	// Records holds every run of the slide, cache hits and misses alike.
	Records []*RunRecord
	// NextCounter is the id counter to use for the next slide.
	NextCounter int
	// NeedsLLM is set when at least one run was queued, meaning the page's
	// pending cache bucket must exist.
	NeedsLLM bool
}

// PlanSlide decides for each run whether its translation comes from the
// cache entry of the page or from the model. A run whose exact text is
// missing from an existing entry is queued while its siblings are still
// served from the cache. Queued runs get ids pg<page>_txt<counter>, with
// counter continuing across slides.
func PlanSlide(runs []RunInfo, fingerprint string, c cache.Cache, counter int, eol string, page int) SlidePlan {
	plan := SlidePlan{NextCounter: counter}
	cached := c.Has(fingerprint)

	for _, r := range runs {
		rec := &RunRecord{OriginalText: r.OriginalText, Run: r.Run}

		if cached {
			if translation, ok := c.Lookup(fingerprint, r.OriginalText); ok {
				rec.Translation = &translation
				rec.Source = SourceCache
				plan.Records = append(plan.Records, rec)
				continue
			}
		}

		id := TextID(page, plan.NextCounter)
		plan.NextCounter++

		rec.Source = SourceLLM
		rec.LLMID = id
		plan.Records = append(plan.Records, rec)
		plan.Queued = append(plan.Queued, QueueItem{
			ID:           id,
			OriginalText: r.OriginalText,
			TextToSend:   r.OriginalText + eol,
			Run:          r.Run,
			PageHash:     fingerprint,
		})
		plan.NeedsLLM = true
	}

	return plan
}
