// Package docx builds WordprocessingML documents from paragraphs and tables
// and packages them as .docx files.
package docx

// Twips are twentieths of a point; 1440 twips make an inch.
type Twips int

// Inches converts inches to twips.
func Inches(in float64) Twips {
	return Twips(in*1440 + 0.5)
}

// Alignment is a paragraph justification value.
type Alignment string

// Paragraph alignments.
const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// Border is one border edge. Space is in points; the line uses Word's
// default width for the style.
type Border struct {
	Style string
	Space int
	Color string
}

// SingleBorder returns a thin black single-line border.
func SingleBorder() Border {
	return Border{Style: "single", Space: 0, Color: "000000"}
}

// TabStop is a left-aligned tab position measured from the paragraph's left edge.
type TabStop struct {
	Position Twips
}

// Run is a span of uniformly formatted text. Tabs in Text become tab characters.
// A zero Size or empty Font falls back to the document defaults.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Size   float64
	Font   string
}

// Paragraph is a block of runs. Spacing is in points; a hanging indent
// pulls the first line back to the left of IndentLeft.
type Paragraph struct {
	Runs          []Run
	Align         Alignment
	SpaceBefore   float64
	SpaceAfter    float64
	IndentLeft    Twips
	IndentHanging Twips
	TopBorder     *Border
	TabStops      []TabStop
}

// Cell is one table cell. A cell with no paragraphs is written with an empty one.
type Cell struct {
	Paragraphs []Paragraph
}

// Row is one table row; it should have one cell per column.
type Row struct {
	Cells []Cell
}

// TableBorders sets each table edge and inside rule. A nil edge is not drawn.
type TableBorders struct {
	Top     *Border
	Left    *Border
	Bottom  *Border
	Right   *Border
	InsideH *Border
	InsideV *Border
}

// AllBorders draws b on the outer edges and both inside rules.
func AllBorders(b Border) TableBorders {
	return TableBorders{Top: &b, Left: &b, Bottom: &b, Right: &b, InsideH: &b, InsideV: &b}
}

// Table is a fixed-layout grid.
type Table struct {
	ColumnWidths []Twips
	Borders      TableBorders
	Rows         []Row
}

// AddRow appends a row and returns the table for chaining.
func (t *Table) AddRow(cells ...Cell) *Table {
	t.Rows = append(t.Rows, Row{Cells: cells})
	return t
}

// Width is the sum of the column widths.
func (t *Table) Width() Twips {
	var w Twips
	for _, c := range t.ColumnWidths {
		w += c
	}
	return w
}

// Block is a body-level element: a Paragraph or a *Table.
type Block interface {
	isBlock()
}

func (Paragraph) isBlock() {}
func (*Table) isBlock()    {}

// PageSetup holds the page size and margins.
type PageSetup struct {
	Width        Twips
	Height       Twips
	MarginTop    Twips
	MarginBottom Twips
	MarginLeft   Twips
	MarginRight  Twips
}

// LetterPage returns a US Letter page with the given margins in inches.
func LetterPage(top, bottom, left, right float64) PageSetup {
	return PageSetup{
		Width:        Inches(8.5),
		Height:       Inches(11),
		MarginTop:    Inches(top),
		MarginBottom: Inches(bottom),
		MarginLeft:   Inches(left),
		MarginRight:  Inches(right),
	}
}

// UsableWidth is the page width between the side margins.
func (p PageSetup) UsableWidth() Twips {
	return p.Width - p.MarginLeft - p.MarginRight
}

// Document is an in-memory document body plus its page and font defaults.
type Document struct {
	Page     PageSetup
	Font     string
	FontSize float64
	Title    string
	Author   string

	body []Block
}

// New creates an empty document.
func New(page PageSetup, font string, fontSize float64) *Document {
	return &Document{Page: page, Font: font, FontSize: fontSize}
}

// Add appends blocks to the body in order.
func (d *Document) Add(blocks ...Block) {
	d.body = append(d.body, blocks...)
}

// Blocks returns the body blocks.
func (d *Document) Blocks() []Block {
	return d.body
}
