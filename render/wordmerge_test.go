package render

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func buildTestDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestMergeWordTemplateSubstitutes(t *testing.T) {
	docx := buildTestDocx(t, map[string]string{
		"[Content_Types].xml": contentTypesXML,
		"_rels/.rels":         relsXML,
		"word/document.xml":   `<w:document><w:body><w:p><w:r><w:t>Số: {{contract_number}}</w:t></w:r></w:p></w:body></w:document>`,
		"word/media/img1.png": "\x89PNG not really",
	})

	out, err := MergeWordTemplate(docx, map[string]string{"contract_number": "12/HĐ-VPKĐ"})
	if err != nil {
		t.Fatalf("MergeWordTemplate: %v", err)
	}

	xml := readPart(t, out, "word/document.xml")
	if !strings.Contains(xml, "Số: 12/HĐ-VPKĐ") {
		t.Fatalf("token not substituted: %s", xml)
	}
	if media := readPart(t, out, "word/media/img1.png"); media != "\x89PNG not really" {
		t.Error("non-XML part was altered")
	}
}

func TestMergeWordTemplateHealsSplitRuns(t *testing.T) {
	// Word splits typed tokens across runs; the merge must still find them.
	split := `<w:p><w:r><w:t>{{contract_</w:t></w:r><w:r><w:t>number}}</w:t></w:r></w:p>`
	docx := buildTestDocx(t, map[string]string{
		"word/document.xml": `<w:document><w:body>` + split + `</w:body></w:document>`,
	})

	out, err := MergeWordTemplate(docx, map[string]string{"contract_number": "7/HĐ-VPKĐ"})
	if err != nil {
		t.Fatalf("MergeWordTemplate: %v", err)
	}
	xml := readPart(t, out, "word/document.xml")
	if !strings.Contains(xml, "7/HĐ-VPKĐ") {
		t.Fatalf("split token not substituted: %s", xml)
	}
}

func TestMergeWordTemplateEscapesValues(t *testing.T) {
	docx := buildTestDocx(t, map[string]string{
		"word/document.xml": `<w:p><w:r><w:t>{{work_name}}</w:t></w:r></w:p>`,
	})

	out, err := MergeWordTemplate(docx, map[string]string{"work_name": `A & B <test>`})
	if err != nil {
		t.Fatalf("MergeWordTemplate: %v", err)
	}
	xml := readPart(t, out, "word/document.xml")
	if !strings.Contains(xml, "A &amp; B &lt;test&gt;") {
		t.Fatalf("value not escaped: %s", xml)
	}
}

func TestMergeWordTemplateMergesHeadersAndFooters(t *testing.T) {
	docx := buildTestDocx(t, map[string]string{
		"word/document.xml": `<w:p><w:r><w:t>thân</w:t></w:r></w:p>`,
		"word/header1.xml":  `<w:p><w:r><w:t>{{contract_number}}</w:t></w:r></w:p>`,
		"word/footer1.xml":  `<w:p><w:r><w:t>{{translator_name}}</w:t></w:r></w:p>`,
	})

	out, err := MergeWordTemplate(docx, map[string]string{
		"contract_number": "3/HĐ-VPKĐ",
		"translator_name": "Trần Thị B",
	})
	if err != nil {
		t.Fatalf("MergeWordTemplate: %v", err)
	}
	if !strings.Contains(readPart(t, out, "word/header1.xml"), "3/HĐ-VPKĐ") {
		t.Error("header token not substituted")
	}
	if !strings.Contains(readPart(t, out, "word/footer1.xml"), "Trần Thị B") {
		t.Error("footer token not substituted")
	}
}

func TestMergeWordTemplateRejectsNonZip(t *testing.T) {
	if _, err := MergeWordTemplate([]byte("not a docx"), nil); err == nil {
		t.Fatal("expected error for non-zip input")
	}
}

func TestTemplateCache(t *testing.T) {
	CacheTemplate("tpl-1", []byte("abc"))
	if b, ok := CachedTemplate("tpl-1"); !ok || string(b) != "abc" {
		t.Fatalf("cache miss: %v %q", ok, b)
	}
	EvictTemplate("tpl-1")
	if _, ok := CachedTemplate("tpl-1"); ok {
		t.Fatal("template still cached after eviction")
	}
}
