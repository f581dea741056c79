package testutil

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContent checks if a file has expected content
func AssertFileContent(t *testing.T, path string, expected []byte) {
	t.Helper()

	actual, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if string(actual) != string(expected) {
		t.Errorf("File content mismatch in %s\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// FixtureSlide describes one slide of a generated .pptx. Paragraphs become
// a single text shape; Table becomes a graphic frame with one row per entry
// and one single-run cell per string.
type FixtureSlide struct {
	Paragraphs [][]string
	Table      [][]string
}

const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// WritePPTX writes a minimal presentation archive containing the given
// slides. It carries only the parts the deck adapter reads, plus content
// types, which is enough for round-trip tests.
func WritePPTX(t *testing.T, path string, slides ...FixtureSlide) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create pptx fixture: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	add := func(name string, doc *etree.Document) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
		if _, err := doc.WriteTo(w); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	add("[Content_Types].xml", contentTypes(len(slides)))
	add("ppt/presentation.xml", presentation(len(slides)))
	add("ppt/_rels/presentation.xml.rels", presentationRels(len(slides)))
	for i, s := range slides {
		add(fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideXML(s))
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to finish pptx fixture: %v", err)
	}
}

func contentTypes(n int) *etree.Document {
	doc := etree.NewDocument()
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/content-types")
	def := types.CreateElement("Default")
	def.CreateAttr("Extension", "xml")
	def.CreateAttr("ContentType", "application/xml")
	for i := 1; i <= n; i++ {
		o := types.CreateElement("Override")
		o.CreateAttr("PartName", fmt.Sprintf("/ppt/slides/slide%d.xml", i))
		o.CreateAttr("ContentType", "application/vnd.openxmlformats-officedocument.presentationml.slide+xml")
	}
	return doc
}

func presentation(n int) *etree.Document {
	doc := etree.NewDocument()
	pres := doc.CreateElement("p:presentation")
	pres.CreateAttr("xmlns:a", nsA)
	pres.CreateAttr("xmlns:p", nsP)
	pres.CreateAttr("xmlns:r", nsR)
	list := pres.CreateElement("p:sldIdLst")
	for i := 1; i <= n; i++ {
		id := list.CreateElement("p:sldId")
		id.CreateAttr("id", fmt.Sprint(255+i))
		id.CreateAttr("r:id", fmt.Sprintf("rId%d", i+1))
	}
	return doc
}

func presentationRels(n int) *etree.Document {
	doc := etree.NewDocument()
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")
	master := rels.CreateElement("Relationship")
	master.CreateAttr("Id", "rId1")
	master.CreateAttr("Type", nsR+"/slideMaster")
	master.CreateAttr("Target", "slideMasters/slideMaster1.xml")
	// Listed in reverse to prove slide order comes from sldIdLst.
	for i := n; i >= 1; i-- {
		rel := rels.CreateElement("Relationship")
		rel.CreateAttr("Id", fmt.Sprintf("rId%d", i+1))
		rel.CreateAttr("Type", nsR+"/slide")
		rel.CreateAttr("Target", fmt.Sprintf("slides/slide%d.xml", i))
	}
	return doc
}

func slideXML(s FixtureSlide) *etree.Document {
	doc := etree.NewDocument()
	sld := doc.CreateElement("p:sld")
	sld.CreateAttr("xmlns:a", nsA)
	sld.CreateAttr("xmlns:p", nsP)
	sld.CreateAttr("xmlns:r", nsR)
	tree := sld.CreateElement("p:cSld").CreateElement("p:spTree")
	tree.CreateElement("p:nvGrpSpPr")

	if len(s.Paragraphs) > 0 {
		sp := tree.CreateElement("p:sp")
		sp.CreateElement("p:nvSpPr")
		writeBody(sp.CreateElement("p:txBody"), s.Paragraphs)
	}

	if len(s.Table) > 0 {
		tbl := tree.CreateElement("p:graphicFrame").
			CreateElement("a:graphic").
			CreateElement("a:graphicData").
			CreateElement("a:tbl")
		for _, row := range s.Table {
			tr := tbl.CreateElement("a:tr")
			for _, cell := range row {
				writeBody(tr.CreateElement("a:tc").CreateElement("a:txBody"), [][]string{{cell}})
			}
		}
	}

	// A picture never contributes runs.
	tree.CreateElement("p:pic").CreateElement("p:nvPicPr")
	return doc
}

func writeBody(body *etree.Element, paragraphs [][]string) {
	body.CreateElement("a:bodyPr")
	for _, runs := range paragraphs {
		p := body.CreateElement("a:p")
		for _, text := range runs {
			r := p.CreateElement("a:r")
			r.CreateElement("a:rPr").CreateAttr("lang", "fi-FI")
			r.CreateElement("a:t").SetText(text)
		}
	}
}

// Lines splits s on newlines and drops a trailing empty line.
func Lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
