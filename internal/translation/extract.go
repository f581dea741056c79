package translation

import "codeberg.org/snonux/pptrans/internal/deck"

// ExtractRuns lists the non-empty runs of a slide in document order: shapes
// in order, then paragraphs and runs of a text frame, then rows, cells,
// paragraphs and runs of a table. Texts are kept verbatim.
func ExtractRuns(slide deck.Slide) []RunInfo {
	var runs []RunInfo
	for _, shape := range slide.Shapes() {
		if tf, ok := shape.TextFrame(); ok {
			runs = appendFrame(runs, tf)
		}
		if tbl, ok := shape.Table(); ok {
			for _, row := range tbl.Rows() {
				for _, cell := range row.Cells() {
					runs = appendFrame(runs, cell.TextFrame())
				}
			}
		}
	}
	return runs
}

func appendFrame(runs []RunInfo, tf deck.TextFrame) []RunInfo {
	if tf == nil {
		return runs
	}
	for _, p := range tf.Paragraphs() {
		for _, r := range p.Runs() {
			if text := r.Text(); text != "" {
				runs = append(runs, RunInfo{OriginalText: text, Run: r})
			}
		}
	}
	return runs
}

// Texts returns the original texts of runs, in order.
func Texts(runs []RunInfo) []string {
	texts := make([]string, len(runs))
	for i, r := range runs {
		texts[i] = r.OriginalText
	}
	return texts
}

