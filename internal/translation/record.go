package translation

import (
	"fmt"

	"codeberg.org/snonux/pptrans/internal/deck"
)

// EOLMarker is appended to every text sent to the model so that trailing
// whitespace survives the round-trip.
const EOLMarker = "<"

// Source tells where a run's final text comes from.
type Source int

const (
	// SourceCache marks a run satisfied from the page cache.
	SourceCache Source = iota
	// SourceLLM marks a run queued for the language model.
	SourceLLM
	// SourceUnresolved marks a queued run the model did not answer.
	SourceUnresolved
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceLLM:
		return "llm"
	case SourceUnresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// RunInfo is a non-empty run found on a slide.
type RunInfo struct {
	OriginalText string
	Run          deck.Run
}

// RunRecord tracks one run from extraction until its text is written.
// A nil Translation means no text is known yet; an empty string is a valid
// translation.
type RunRecord struct {
	OriginalText string
	Run          deck.Run
	Translation  *string
	Source       Source
	LLMID        string
}

// QueueItem is a run text bound for the language model.
type QueueItem struct {
	ID           string
	OriginalText string
	TextToSend   string
	Run          deck.Run
	PageHash     string
}

// TextID formats the identifier of the counter-th queued text, found on the
// 1-indexed page.
func TextID(page, counter int) string {
	return fmt.Sprintf("pg%d_txt%d", page, counter)
}
