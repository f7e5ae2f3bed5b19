// Package render turns merged contract content into deliverable documents:
// a print-ready HTML page, a structurally built .docx, or a PDF obtained by
// converting the .docx through an external converter service.
package render

// Paragraph alignments, mapped to OOXML w:jc values.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Run is a span of text with uniform formatting.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
}

// Paragraph is an ordered list of runs with one alignment. An empty Runs
// slice renders as a blank line.
type Paragraph struct {
	Runs      []Run
	Alignment string
	Heading   int // 0 = body text, 1/2 = heading levels
}

// Cell holds the paragraphs of one table cell. WidthPct sizes the cell as a
// percentage of the table width.
type Cell struct {
	Paragraphs []Paragraph
	WidthPct   int
}

// Table is a borderless layout table, used for the signature block.
type Table struct {
	Rows [][]Cell
}

// Block is one document element: exactly one of Paragraph or Table is set.
type Block struct {
	Paragraph *Paragraph
	Table     *Table
}

// Document is the ordered block list a .docx is packed from.
type Document struct {
	Blocks []Block
}

func (d *Document) addParagraph(p Paragraph) {
	d.Blocks = append(d.Blocks, Block{Paragraph: &p})
}

func (d *Document) addTable(t Table) {
	d.Blocks = append(d.Blocks, Block{Table: &t})
}

// Helpers used by the contract builder.

func text(s string) Paragraph {
	return Paragraph{Runs: []Run{{Text: s}}}
}

func blank() Paragraph {
	return Paragraph{}
}

func bold(s string) Run   { return Run{Text: s, Bold: true} }
func italic(s string) Run { return Run{Text: s, Italic: true} }
func plain(s string) Run  { return Run{Text: s} }

func runs(rs ...Run) Paragraph {
	return Paragraph{Runs: rs}
}

// labeled is the "Label: value" paragraph shape the contract uses throughout.
func labeled(label, value string) Paragraph {
	return runs(bold(label), plain(value))
}
