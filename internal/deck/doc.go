// Package deck defines the slide-deck object graph the translator edits
// (slides, shapes, text frames, tables, runs) and provides two
// implementations: a .pptx adapter that edits the presentation XML in place
// and an in-memory deck used by tests.
package deck
