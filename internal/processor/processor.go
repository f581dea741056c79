package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"

	"codeberg.org/snonux/pptrans/internal/archive"
	"codeberg.org/snonux/pptrans/internal/cache"
	"codeberg.org/snonux/pptrans/internal/cli"
	"codeberg.org/snonux/pptrans/internal/deck"
	"codeberg.org/snonux/pptrans/internal/llm"
	"codeberg.org/snonux/pptrans/internal/pagerange"
	"codeberg.org/snonux/pptrans/internal/translation"
)

// Processor handles the main deck processing logic
type Processor struct {
	flags    *cli.Flags
	out      io.Writer
	errOut   io.Writer
	open     deck.Opener
	newModel func(ctx context.Context) (llm.Model, error)
	model    llm.Model
}

// Option customizes a Processor
type Option func(*Processor)

// WithOutput sets the writers for progress narration and warnings
func WithOutput(out, errOut io.Writer) Option {
	return func(p *Processor) {
		p.out = out
		p.errOut = errOut
	}
}

// WithOpener sets how presentations are opened
func WithOpener(open deck.Opener) Option {
	return func(p *Processor) {
		p.open = open
	}
}

// WithModel sets the language model instead of building one from the flags
func WithModel(m llm.Model) Option {
	return func(p *Processor) {
		p.model = m
	}
}

// NewProcessor creates a new deck processor
func NewProcessor(flags *cli.Flags, opts ...Option) *Processor {
	p := &Processor{
		flags:  flags,
		out:    os.Stdout,
		errOut: os.Stderr,
		open:   deck.OpenPPTX,
	}
	p.newModel = func(ctx context.Context) (llm.Model, error) {
		return llm.NewModel(ctx, &llm.Config{
			Provider:      flags.Provider,
			Model:         flags.Model,
			OpenAIKey:     cli.GetOpenAIKey(),
			OpenAIBaseURL: flags.OpenAIBaseURL,
			GeminiKey:     cli.GetGeminiKey(),
			Temperature:   0.3,
			MaxRetries:    flags.MaxRetries,
			RetryBackoff:  2 * time.Second,
		})
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Summary reports what happened to one deck
type Summary struct {
	Input  string
	Output string
	Mode   string

	Slides   int // slides in the deck
	Selected int // slides selected for processing

	Runs       int // non-empty runs on the selected slides
	FromCache  int
	Queued     int // runs sent to the model
	Translated int // queued runs answered by the model
	Unresolved int // queued runs left unchanged
	Reversed   int
	ModelCalls int
}

// languages holds the resolved language pair of a translate run
type languages struct {
	source language.Tag
	target language.Tag
	detect bool
}

// ProcessFile copies input to output and processes the copy. Page ranges,
// languages and the cache backend are validated before output is written.
func (p *Processor) ProcessFile(ctx context.Context, input, output string) (*Summary, error) {
	if samePath(input, output) {
		return nil, fmt.Errorf("output path must differ from input path: %s", input)
	}

	sum := &Summary{Input: input, Output: output, Mode: p.flags.Mode}

	var (
		langs languages
		store cache.Store
		err   error
	)
	if p.flags.Mode == cli.ModeTranslate {
		if langs, err = p.resolveLanguages(); err != nil {
			return nil, err
		}
		if store, err = cache.NewStore(p.flags.CacheBackend, p.flags.CachePath); err != nil {
			return nil, err
		}
	}

	src, err := p.open(input)
	if err != nil {
		return nil, fmt.Errorf("failed to open input presentation: %w", err)
	}
	sum.Slides = len(src.Slides())

	selected, err := p.selectPages(sum.Slides)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(p.out, "Copying '%s' to '%s' to preserve layout...\n", input, output)
	if err := archive.CopyFile(input, output); err != nil {
		return nil, fmt.Errorf("failed to copy presentation: %w", err)
	}
	fmt.Fprintln(p.out, "File copy complete.")

	if sum.Slides == 0 {
		fmt.Fprintln(p.out, "Input presentation has no slides. Exiting.")
		return sum, nil
	}

	fmt.Fprintf(p.out, "Loading presentation for modification from: %s\n", output)
	d, err := p.open(output)
	if err != nil {
		return nil, fmt.Errorf("failed to open output presentation: %w", err)
	}

	slides := d.Slides()
	var pages []int
	for _, idx := range selected.Sorted() {
		if idx < len(slides) {
			pages = append(pages, idx)
		}
	}
	sum.Selected = len(pages)

	if len(pages) == 0 {
		fmt.Fprintf(p.errOut, "Warning: The specified page range '%s' resulted in no slides being selected from %d total slides. No text processing will occur.\n",
			p.flags.Pages, sum.Slides)
		if err := d.Save(output); err != nil {
			return nil, fmt.Errorf("failed to save presentation: %w", err)
		}
		fmt.Fprintf(p.out, "Presentation saved (no text modifications) to: %s\n", output)
		if p.flags.Mode == cli.ModeTranslate {
			cache.Commit(cache.Load(store, p.errOut), cache.Pending{}, store, p.errOut)
		}
		return sum, nil
	}

	fmt.Fprintf(p.out, "Preparing to process text on %d selected slides (out of %d total) in the copied presentation...\n",
		len(pages), sum.Slides)

	switch p.flags.Mode {
	case cli.ModeTranslate:
		err = p.translate(ctx, slides, pages, langs, store, sum)
	case cli.ModeReverseWords:
		p.reverseWords(slides, pages, sum)
	default:
		err = fmt.Errorf("unknown mode: %s", p.flags.Mode)
	}
	if err != nil {
		return nil, err
	}

	if err := d.Save(output); err != nil {
		return nil, fmt.Errorf("failed to save presentation: %w", err)
	}
	fmt.Fprintf(p.out, "Presentation saved in '%s' mode to: %s\n", p.flags.Mode, output)
	p.printSummary(sum)

	return sum, nil
}

// selectPages returns every page when no range was given
func (p *Processor) selectPages(total int) (pagerange.Set, error) {
	if strings.TrimSpace(p.flags.Pages) == "" {
		return pagerange.All(total), nil
	}

	selected, err := pagerange.Parse(p.flags.Pages, total, p.errOut)
	if err != nil {
		return nil, fmt.Errorf("invalid page range '%s': %w", p.flags.Pages, err)
	}
	return selected, nil
}

func (p *Processor) resolveLanguages() (languages, error) {
	var langs languages

	target, err := translation.ParseLanguage(p.flags.TargetLang)
	if err != nil {
		return langs, fmt.Errorf("invalid target language '%s': %w", p.flags.TargetLang, err)
	}
	langs.target = target

	if strings.EqualFold(strings.TrimSpace(p.flags.SourceLang), cli.AutoLanguage) {
		langs.detect = true
		return langs, nil
	}

	source, err := translation.ParseLanguage(p.flags.SourceLang)
	if err != nil {
		return langs, fmt.Errorf("invalid source language '%s': %w", p.flags.SourceLang, err)
	}
	langs.source = source
	return langs, nil
}

// getModel creates the language model on first use, so runs that need no
// model need no API key either. The model is kept for later batch decks.
func (p *Processor) getModel(ctx context.Context) (llm.Model, error) {
	if p.model != nil {
		return p.model, nil
	}

	m, err := p.newModel(ctx)
	if err != nil {
		return nil, err
	}
	p.model = m
	return m, nil
}

func (p *Processor) printSummary(sum *Summary) {
	switch sum.Mode {
	case cli.ModeReverseWords:
		fmt.Fprintf(p.out, "Summary: %d slide(s), %d text run(s) reversed\n", sum.Selected, sum.Reversed)
	default:
		fmt.Fprintf(p.out, "Summary: %d slide(s), %d text run(s): %d from cache, %d translated, %d unresolved\n",
			sum.Selected, sum.Runs, sum.FromCache, sum.Translated, sum.Unresolved)
	}
}

// samePath reports whether input and output refer to the same file, either
// by absolute path or through a link.
func samePath(input, output string) bool {
	absIn, errIn := filepath.Abs(input)
	absOut, errOut := filepath.Abs(output)
	if errIn == nil && errOut == nil && absIn == absOut {
		return true
	}
	return archive.SameFile(input, output)
}
