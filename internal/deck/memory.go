package deck

// MemoryDeck is an in-memory Deck. Save records the path it was saved to
// and counts calls; nothing is written to disk.
type MemoryDeck struct {
	Pages     []*MemorySlide
	SavedTo   []string
	SaveError error
}

// MemorySlide is a slide of a MemoryDeck.
type MemorySlide struct {
	Items []*MemoryShape
}

// MemoryShape may hold a frame, a grid, both, or neither.
type MemoryShape struct {
	Frame *MemoryFrame
	Grid  *MemoryTable
}

// MemoryFrame is a text frame made of paragraphs of runs.
type MemoryFrame struct {
	Paras []*MemoryParagraph
}

// MemoryParagraph holds runs.
type MemoryParagraph struct {
	Items []*MemoryRun
}

// MemoryTable holds rows of cells, each cell being a text frame.
type MemoryTable struct {
	Grid [][]*MemoryFrame
}

// MemoryRun is a mutable text run. Writes counts SetText calls.
type MemoryRun struct {
	Value  string
	Writes int
}

// NewMemoryDeck builds a deck where every slide has one text shape per
// entry in pages, each shape holding a single paragraph with the given runs.
func NewMemoryDeck(pages ...[]string) *MemoryDeck {
	d := &MemoryDeck{}
	for _, runs := range pages {
		slide := &MemorySlide{}
		if len(runs) > 0 {
			slide.Items = append(slide.Items, &MemoryShape{Frame: NewMemoryFrame(runs...)})
		}
		d.Pages = append(d.Pages, slide)
	}
	return d
}

// NewMemoryFrame builds a one-paragraph frame from run texts.
func NewMemoryFrame(runs ...string) *MemoryFrame {
	p := &MemoryParagraph{}
	for _, text := range runs {
		p.Items = append(p.Items, &MemoryRun{Value: text})
	}
	return &MemoryFrame{Paras: []*MemoryParagraph{p}}
}

// Texts returns the current run texts of every slide, in document order,
// including empty runs.
func (d *MemoryDeck) Texts() [][]string {
	var out [][]string
	for _, s := range d.Pages {
		var page []string
		for _, sh := range s.Items {
			if sh.Frame != nil {
				page = append(page, sh.Frame.texts()...)
			}
			if sh.Grid != nil {
				for _, row := range sh.Grid.Grid {
					for _, cell := range row {
						page = append(page, cell.texts()...)
					}
				}
			}
		}
		out = append(out, page)
	}
	return out
}

func (f *MemoryFrame) texts() []string {
	var out []string
	for _, p := range f.Paras {
		for _, r := range p.Items {
			out = append(out, r.Value)
		}
	}
	return out
}

func (d *MemoryDeck) Slides() []Slide {
	slides := make([]Slide, len(d.Pages))
	for i, s := range d.Pages {
		slides[i] = s
	}
	return slides
}

func (d *MemoryDeck) Save(path string) error {
	if d.SaveError != nil {
		return d.SaveError
	}
	d.SavedTo = append(d.SavedTo, path)
	return nil
}

func (s *MemorySlide) Shapes() []Shape {
	shapes := make([]Shape, len(s.Items))
	for i, sh := range s.Items {
		shapes[i] = sh
	}
	return shapes
}

func (s *MemoryShape) TextFrame() (TextFrame, bool) {
	if s.Frame == nil {
		return nil, false
	}
	return s.Frame, true
}

func (s *MemoryShape) Table() (Table, bool) {
	if s.Grid == nil {
		return nil, false
	}
	return s.Grid, true
}

func (f *MemoryFrame) Paragraphs() []Paragraph {
	paras := make([]Paragraph, len(f.Paras))
	for i, p := range f.Paras {
		paras[i] = p
	}
	return paras
}

func (p *MemoryParagraph) Runs() []Run {
	runs := make([]Run, len(p.Items))
	for i, r := range p.Items {
		runs[i] = r
	}
	return runs
}

func (t *MemoryTable) Rows() []Row {
	rows := make([]Row, len(t.Grid))
	for i, cells := range t.Grid {
		rows[i] = memoryRow(cells)
	}
	return rows
}

type memoryRow []*MemoryFrame

func (r memoryRow) Cells() []Cell {
	cells := make([]Cell, len(r))
	for i, f := range r {
		cells[i] = memoryCell{f}
	}
	return cells
}

type memoryCell struct{ frame *MemoryFrame }

func (c memoryCell) TextFrame() TextFrame {
	if c.frame == nil {
		return nil
	}
	return c.frame
}

func (r *MemoryRun) Text() string { return r.Value }

func (r *MemoryRun) SetText(text string) {
	r.Value = text
	r.Writes++
}
