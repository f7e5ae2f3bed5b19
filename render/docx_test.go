package render

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func readPart(t *testing.T, docxBytes []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		t.Fatalf("output is not a zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		r, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer r.Close()
		b, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(b)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestPackDOCXProducesValidPackage(t *testing.T) {
	doc := &Document{}
	doc.addParagraph(runs(bold("HỢP ĐỒNG DỊCH THUẬT")))
	doc.addParagraph(text("Nội dung thường."))

	b, err := PackDOCX(doc)
	if err != nil {
		t.Fatalf("PackDOCX: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		t.Fatalf("output is not a zip: %v", err)
	}
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		if !names[want] {
			t.Errorf("package missing %s", want)
		}
	}

	xml := readPart(t, b, "word/document.xml")
	if !strings.Contains(xml, "HỢP ĐỒNG DỊCH THUẬT") {
		t.Error("document body missing heading text")
	}
	if !strings.Contains(xml, "<w:b/>") {
		t.Error("bold run property not emitted")
	}
}

func TestPackDOCXAlignmentAndStyles(t *testing.T) {
	doc := &Document{}
	doc.addParagraph(Paragraph{Runs: []Run{italic("ngày 1 tháng 9 năm 2026")}, Alignment: AlignRight})
	doc.addParagraph(Paragraph{Runs: []Run{{Text: "gạch chân", Underline: true}}, Alignment: AlignCenter})

	b, err := PackDOCX(doc)
	if err != nil {
		t.Fatalf("PackDOCX: %v", err)
	}
	xml := readPart(t, b, "word/document.xml")

	for _, want := range []string{
		`<w:jc w:val="right"/>`,
		`<w:jc w:val="center"/>`,
		"<w:i/>",
		`<w:u w:val="single"/>`,
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("document.xml missing %s", want)
		}
	}
}

func TestPackDOCXEscapesText(t *testing.T) {
	doc := &Document{}
	doc.addParagraph(text(`a < b & "c" > d`))

	b, err := PackDOCX(doc)
	if err != nil {
		t.Fatalf("PackDOCX: %v", err)
	}
	xml := readPart(t, b, "word/document.xml")
	if !strings.Contains(xml, "a &lt; b &amp;") {
		t.Fatalf("text not escaped: %s", xml)
	}
	if strings.Contains(xml, `<w:t xml:space="preserve">a < b`) {
		t.Fatal("raw markup leaked into document.xml")
	}
}

func TestPackDOCXTables(t *testing.T) {
	doc := &Document{}
	doc.addTable(Table{Rows: [][]Cell{{
		{WidthPct: 50, Paragraphs: []Paragraph{{Runs: []Run{bold("BÊN A")}, Alignment: AlignCenter}}},
		{WidthPct: 50, Paragraphs: []Paragraph{{Runs: []Run{bold("BÊN B")}, Alignment: AlignCenter}}},
	}}})

	b, err := PackDOCX(doc)
	if err != nil {
		t.Fatalf("PackDOCX: %v", err)
	}
	xml := readPart(t, b, "word/document.xml")
	if !strings.Contains(xml, "<w:tbl>") || !strings.Contains(xml, "BÊN B") {
		t.Fatalf("table not emitted: %s", xml)
	}
	if !strings.Contains(xml, `<w:tcW w:w="2500" w:type="pct"/>`) {
		t.Error("cell width not emitted as fiftieths of a percent")
	}
}
