package render

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// PackDOCX serializes the document into a minimal OOXML package. The output
// opens in Word and LibreOffice and is accepted by the PDF converter.
func PackDOCX(doc *Document) ([]byte, error) {
	var body strings.Builder
	for _, b := range doc.Blocks {
		switch {
		case b.Paragraph != nil:
			writeParagraph(&body, *b.Paragraph)
		case b.Table != nil:
			writeTable(&body, *b.Table)
		}
	}

	var document strings.Builder
	document.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	document.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	document.WriteString(body.String())
	document.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1134" w:right="1134" w:bottom="1134" w:left="1134"/></w:sectPr>`)
	document.WriteString(`</w:body></w:document>`)

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	parts := []struct {
		name, content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", document.String()},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := w.Write([]byte(p.content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close docx package: %w", err)
	}
	return buf.Bytes(), nil
}

func writeParagraph(sb *strings.Builder, p Paragraph) {
	sb.WriteString("<w:p>")

	var props strings.Builder
	if jc := alignmentValue(p.Alignment); jc != "" {
		fmt.Fprintf(&props, `<w:jc w:val="%s"/>`, jc)
	}
	if props.Len() > 0 {
		sb.WriteString("<w:pPr>" + props.String() + "</w:pPr>")
	}

	for _, r := range p.Runs {
		sb.WriteString("<w:r>")
		var rpr strings.Builder
		if r.Bold || p.Heading > 0 {
			rpr.WriteString("<w:b/>")
		}
		if r.Italic {
			rpr.WriteString("<w:i/>")
		}
		if r.Underline {
			rpr.WriteString(`<w:u w:val="single"/>`)
		}
		switch p.Heading {
		case 1:
			rpr.WriteString(`<w:sz w:val="32"/>`)
		case 2:
			rpr.WriteString(`<w:sz w:val="28"/>`)
		}
		if rpr.Len() > 0 {
			sb.WriteString("<w:rPr>" + rpr.String() + "</w:rPr>")
		}
		fmt.Fprintf(sb, `<w:t xml:space="preserve">%s</w:t>`, escapeXML(r.Text))
		sb.WriteString("</w:r>")
	}
	sb.WriteString("</w:p>")
}

func writeTable(sb *strings.Builder, t Table) {
	sb.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/></w:tblPr>`)
	for _, row := range t.Rows {
		sb.WriteString("<w:tr>")
		for _, cell := range row {
			sb.WriteString("<w:tc>")
			if cell.WidthPct > 0 {
				// pct widths are in fiftieths of a percent
				fmt.Fprintf(sb, `<w:tcPr><w:tcW w:w="%d" w:type="pct"/></w:tcPr>`, cell.WidthPct*50)
			}
			if len(cell.Paragraphs) == 0 {
				sb.WriteString("<w:p/>")
			}
			for _, p := range cell.Paragraphs {
				writeParagraph(sb, p)
			}
			sb.WriteString("</w:tc>")
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
}

func alignmentValue(a string) string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return ""
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
