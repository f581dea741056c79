package deck

// Deck is an opened presentation.
type Deck interface {
	// Slides returns the slides in presentation order.
	Slides() []Slide

	// Save writes the presentation to path, which may be the path it was
	// opened from.
	Save(path string) error
}

// Slide is a single page of a deck.
type Slide interface {
	// Shapes returns the top-level shapes in document order.
	Shapes() []Shape
}

// Shape is a top-level element of a slide. A shape may carry a text frame,
// a table, or neither.
type Shape interface {
	TextFrame() (TextFrame, bool)
	Table() (Table, bool)
}

// TextFrame holds paragraphs of text.
type TextFrame interface {
	Paragraphs() []Paragraph
}

// Paragraph holds runs of uniformly formatted text.
type Paragraph interface {
	Runs() []Run
}

// Table is a grid of cells.
type Table interface {
	Rows() []Row
}

// Row is a table row.
type Row interface {
	Cells() []Cell
}

// Cell is a table cell with its own text frame.
type Cell interface {
	TextFrame() TextFrame
}

// Run is the smallest editable unit of text.
type Run interface {
	Text() string
	SetText(text string)
}

// Opener opens a deck from a file path.
type Opener func(path string) (Deck, error)
