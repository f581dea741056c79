package deck

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
)

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
	slideRelType     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
)

// PPTX is a .pptx presentation held in memory. Only slide parts whose runs
// were edited are re-serialized on Save; every other part is copied from the
// source archive unchanged.
type PPTX struct {
	files  []*zip.File
	slides []*pptxSlide
	parts  map[string]*pptxSlide
}

type pptxSlide struct {
	name  string
	doc   *etree.Document
	dirty bool
}

// OpenPPTX reads a .pptx file into memory. The file is not held open, so the
// deck may later be saved over the same path.
func OpenPPTX(filename string) (Deck, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read presentation: %w", err)
	}
	return ReadPPTX(data)
}

// ReadPPTX parses a .pptx archive from bytes.
func ReadPPTX(data []byte) (*PPTX, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("not a pptx archive: %w", err)
	}

	p := &PPTX{
		files: zr.File,
		parts: make(map[string]*pptxSlide),
	}

	pres, err := p.readXML(presentationPart)
	if err != nil {
		return nil, err
	}
	rels, err := p.readXML(presentationRels)
	if err != nil {
		return nil, err
	}

	targets := make(map[string]string)
	for _, rel := range rels.FindElements("//Relationship") {
		if rel.SelectAttrValue("Type", "") != slideRelType {
			continue
		}
		targets[rel.SelectAttrValue("Id", "")] = resolveTarget(rel.SelectAttrValue("Target", ""))
	}

	for _, sldID := range pres.FindElements("//p:sldIdLst/p:sldId") {
		rid := sldID.SelectAttrValue("r:id", "")
		name, ok := targets[rid]
		if !ok {
			return nil, fmt.Errorf("slide relationship %s not found in %s", rid, presentationRels)
		}
		doc, err := p.readXML(name)
		if err != nil {
			return nil, err
		}
		s := &pptxSlide{name: name, doc: doc}
		p.slides = append(p.slides, s)
		p.parts[name] = s
	}

	return p, nil
}

func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join("ppt", target)
}

func (p *PPTX) readXML(name string) (*etree.Document, error) {
	for _, f := range p.files {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}
		defer rc.Close()

		doc := etree.NewDocument()
		if _, err := doc.ReadFrom(rc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		return doc, nil
	}
	return nil, fmt.Errorf("part %s missing from presentation", name)
}

func (p *PPTX) Slides() []Slide {
	slides := make([]Slide, len(p.slides))
	for i, s := range p.slides {
		slides[i] = s
	}
	return slides
}

// Save writes the archive to a temporary file next to filename and renames
// it into place.
func (p *PPTX) Save(filename string) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), ".pptrans-*.pptx")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := p.write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}
	return nil
}

func (p *PPTX) write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, f := range p.files {
		s, ok := p.parts[f.Name]
		if !ok || !s.dirty {
			if err := zw.Copy(f); err != nil {
				return fmt.Errorf("failed to copy %s: %w", f.Name, err)
			}
			continue
		}

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		})
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", f.Name, err)
		}
		if _, err := s.doc.WriteTo(fw); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

func (s *pptxSlide) Shapes() []Shape {
	tree := s.doc.FindElement("//p:cSld/p:spTree")
	if tree == nil {
		return nil
	}

	var shapes []Shape
	for _, el := range tree.ChildElements() {
		switch el.Space + ":" + el.Tag {
		case "p:sp", "p:graphicFrame":
			shapes = append(shapes, &pptxShape{slide: s, el: el})
		}
	}
	return shapes
}

type pptxShape struct {
	slide *pptxSlide
	el    *etree.Element
}

func (sh *pptxShape) TextFrame() (TextFrame, bool) {
	if sh.el.Tag != "sp" {
		return nil, false
	}
	body := sh.el.SelectElement("p:txBody")
	if body == nil {
		return nil, false
	}
	return &pptxFrame{slide: sh.slide, el: body}, true
}

func (sh *pptxShape) Table() (Table, bool) {
	if sh.el.Tag != "graphicFrame" {
		return nil, false
	}
	tbl := sh.el.FindElement("a:graphic/a:graphicData/a:tbl")
	if tbl == nil {
		return nil, false
	}
	return &pptxTable{slide: sh.slide, el: tbl}, true
}

type pptxFrame struct {
	slide *pptxSlide
	el    *etree.Element
}

func (f *pptxFrame) Paragraphs() []Paragraph {
	var paras []Paragraph
	for _, p := range f.el.SelectElements("a:p") {
		paras = append(paras, &pptxParagraph{slide: f.slide, el: p})
	}
	return paras
}

type pptxParagraph struct {
	slide *pptxSlide
	el    *etree.Element
}

func (p *pptxParagraph) Runs() []Run {
	var runs []Run
	for _, r := range p.el.SelectElements("a:r") {
		runs = append(runs, &pptxRun{slide: p.slide, el: r})
	}
	return runs
}

type pptxTable struct {
	slide *pptxSlide
	el    *etree.Element
}

func (t *pptxTable) Rows() []Row {
	var rows []Row
	for _, tr := range t.el.SelectElements("a:tr") {
		rows = append(rows, &pptxRow{slide: t.slide, el: tr})
	}
	return rows
}

type pptxRow struct {
	slide *pptxSlide
	el    *etree.Element
}

func (r *pptxRow) Cells() []Cell {
	var cells []Cell
	for _, tc := range r.el.SelectElements("a:tc") {
		cells = append(cells, &pptxCell{slide: r.slide, el: tc})
	}
	return cells
}

type pptxCell struct {
	slide *pptxSlide
	el    *etree.Element
}

func (c *pptxCell) TextFrame() TextFrame {
	body := c.el.SelectElement("a:txBody")
	if body == nil {
		return &pptxFrame{slide: c.slide, el: etree.NewElement("a:txBody")}
	}
	return &pptxFrame{slide: c.slide, el: body}
}

type pptxRun struct {
	slide *pptxSlide
	el    *etree.Element
}

func (r *pptxRun) Text() string {
	t := r.el.SelectElement("a:t")
	if t == nil {
		return ""
	}
	return t.Text()
}

func (r *pptxRun) SetText(text string) {
	t := r.el.SelectElement("a:t")
	if t == nil {
		t = r.el.CreateElement("a:t")
	}
	t.SetText(text)
	r.slide.dirty = true
}
