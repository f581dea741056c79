package translation

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"codeberg.org/snonux/pptrans/internal/cache"
)

// ErrNoSeparator is returned by ParseLine for reply lines without a colon.
var ErrNoSeparator = errors.New("line does not contain an ID separator")

// LineError describes a reply line that could not be parsed.
type LineError struct {
	Line string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("could not parse response line %q: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseLine splits a reply line on its first colon. The id is trimmed; the
// text keeps its whitespace exactly as returned.
func ParseLine(line string) (id, text string, err error) {
	id, text, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", &LineError{Line: line, Err: ErrNoSeparator}
	}
	return strings.TrimSpace(id), text, nil
}

// SplitLines splits a model reply into lines, accepting both \n and \r\n.
func SplitLines(reply string) []string {
	reply = strings.ReplaceAll(reply, "\r\n", "\n")
	return strings.Split(reply, "\n")
}

// ReconcileResult counts what happened while applying a reply.
type ReconcileResult struct {
	Matched int
	Skipped int
}

// Reconcile maps reply lines back onto the queued items. Matching records
// receive the translation with one trailing eol removed, and the page's
// pending cache list gets the pair, replacing any earlier pair for the same
// original text. Bad lines are reported on warn and skipped.
func Reconcile(lines []string, queued []QueueItem, records []*RunRecord, pending cache.Pending, eol string, warn io.Writer) ReconcileResult {
	if warn == nil {
		warn = io.Discard
	}

	items := make(map[string]QueueItem, len(queued))
	for _, q := range queued {
		items[q.ID] = q
	}
	byID := make(map[string]*RunRecord, len(queued))
	for _, rec := range records {
		if rec.LLMID != "" {
			byID[rec.LLMID] = rec
		}
	}

	var result ReconcileResult
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		id, text, err := ParseLine(line)
		if err != nil {
			fmt.Fprintf(warn, "Warning: %v. Skipping.\n", err)
			result.Skipped++
			continue
		}

		item, ok := items[id]
		if !ok {
			fmt.Fprintf(warn, "Warning: Received translation for unknown ID '%s'. Skipping.\n", id)
			result.Skipped++
			continue
		}

		translation := StripEOL(text, eol)
		if rec, ok := byID[id]; ok {
			t := translation
			rec.Translation = &t
		}
		pending.Upsert(item.PageHash, cache.Pair{
			OriginalText: item.OriginalText,
			Translation:  translation,
		})
		result.Matched++
	}

	return result
}
