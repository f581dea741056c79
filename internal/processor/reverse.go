package processor

import (
	"fmt"

	"codeberg.org/snonux/pptrans/internal/deck"
	"codeberg.org/snonux/pptrans/internal/translation"
)

// reverseWords replaces every run on the selected slides with its
// word-reversed text. It needs neither the cache nor a model, which makes
// it a cheap way to check that a deck round-trips.
func (p *Processor) reverseWords(slides []deck.Slide, pages []int, sum *Summary) {
	var items []translation.QueueItem
	counter := 0

	fmt.Fprintf(p.out, "Extracting text from %d slides for mode 'reverse-words'...\n", len(pages))
	for _, idx := range pages {
		for _, r := range translation.ExtractRuns(slides[idx]) {
			items = append(items, translation.QueueItem{
				ID:           translation.TextID(idx+1, counter),
				OriginalText: r.OriginalText,
				TextToSend:   r.OriginalText + translation.EOLMarker,
				Run:          r.Run,
			})
			counter++
		}
	}

	if len(items) == 0 {
		fmt.Fprintln(p.out, "No text found to process on selected slides for mode 'reverse-words'.")
		return
	}

	sum.Runs = len(items)
	fmt.Fprintf(p.out, "Found %d text elements to process for mode 'reverse-words'.\n", len(items))
	fmt.Fprintln(p.out, "Applying word reversal on slides...")
	for _, item := range items {
		reversed := translation.ReverseWords(item.TextToSend, translation.EOLMarker)
		item.Run.SetText(translation.StripEOL(reversed, translation.EOLMarker))
		sum.Reversed++
	}
	fmt.Fprintln(p.out, "Text replaced with reversed-word text on slides.")
}
