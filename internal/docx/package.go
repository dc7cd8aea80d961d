package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gomutex/godocx"
	ooxml "github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"
)

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const (
	corePropsPath = "docProps/core.xml"
	thumbnailPath = "docProps/thumbnail.jpeg"
	thumbnailRel  = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/thumbnail"
)

// headerFooterDistance is the page margin reserved for headers and footers.
const headerFooterDistance = 720

// Write packages the document as a .docx archive.
func (d *Document) Write(w io.Writer) error {
	rd, err := d.build()
	if err != nil {
		return err
	}
	if err := rd.Write(w); err != nil {
		return &PackageError{Part: "archive", Cause: err}
	}
	return nil
}

// Bytes packages the document and returns the archive bytes.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// build starts from the library's blank template and replaces its body,
// section, default styles and core properties.
func (d *Document) build() (*ooxml.RootDoc, error) {
	rd, err := godocx.NewDocument()
	if err != nil {
		return nil, &PackageError{Part: "template", Cause: err}
	}
	if rd.Document.Body == nil {
		rd.Document.Body = ooxml.NewBody(rd)
	}
	rd.Document.Body.Children = nil

	for _, block := range d.body {
		switch v := block.(type) {
		case Paragraph:
			fillParagraph(rd.AddEmptyParagraph().GetCT(), v)
		case *Table:
			if err := appendTable(rd, v); err != nil {
				return nil, err
			}
		}
	}

	// Word requires a paragraph between a trailing table and the section properties.
	if n := len(d.body); n > 0 {
		if _, ok := d.body[n-1].(*Table); ok {
			rd.AddEmptyParagraph()
		}
	}

	rd.Document.Body.SectPr = sectionProps(d.Page)
	rd.DocStyles.DocDefaults = d.docDefaults()
	rd.FileMap.Store(corePropsPath, d.coreXML())
	dropThumbnail(rd)
	return rd, nil
}

// appendTable adds t to the body. The library's table wrapper exposes no
// grid, width or border setters, so the table is encoded and decoded back
// through the body reader.
func appendTable(rd *ooxml.RootDoc, t *Table) error {
	inner, err := xml.Marshal(tableCT(t))
	if err != nil {
		return &PackageError{Part: "word/document.xml", Cause: fmt.Errorf("encode table: %w", err)}
	}

	var wrapped bytes.Buffer
	wrapped.WriteString(`<w:body xmlns:w="` + wordNamespace + `">`)
	wrapped.Write(inner)
	wrapped.WriteString(`</w:body>`)

	body := ooxml.NewBody(rd)
	if err := xml.Unmarshal(wrapped.Bytes(), body); err != nil {
		return &PackageError{Part: "word/document.xml", Cause: fmt.Errorf("decode table: %w", err)}
	}
	rd.Document.Body.Children = append(rd.Document.Body.Children, body.Children...)
	return nil
}

func tableCT(t *Table) ctypes.Table {
	tbl := ctypes.Table{
		TableProp: ctypes.TableProp{
			Width: ctypes.NewTableWidth(int(t.Width()), stypes.TableWidthDxa),
			Borders: &ctypes.TableBorders{
				Top:     edge(t.Borders.Top),
				Left:    edge(t.Borders.Left),
				Bottom:  edge(t.Borders.Bottom),
				Right:   edge(t.Borders.Right),
				InsideH: edge(t.Borders.InsideH),
				InsideV: edge(t.Borders.InsideV),
			},
			Layout: ctypes.NewTableLayout(stypes.TableLayoutFixed),
			CellMargin: &ctypes.CellMargins{
				Left:  ctypes.NewTableWidth(0, stypes.TableWidthDxa),
				Right: ctypes.NewTableWidth(0, stypes.TableWidthDxa),
			},
		},
	}
	for _, w := range t.ColumnWidths {
		tbl.Grid.Col = append(tbl.Grid.Col, ctypes.Column{Width: ptr(uint64(w))})
	}

	for _, row := range t.Rows {
		tr := &ctypes.Row{}
		for i, cell := range row.Cells {
			tc := &ctypes.Cell{Property: &ctypes.CellProperty{}}
			if i < len(t.ColumnWidths) {
				tc.Property.Width = ctypes.NewTableWidth(int(t.ColumnWidths[i]), stypes.TableWidthDxa)
			}
			paragraphs := cell.Paragraphs
			if len(paragraphs) == 0 {
				paragraphs = []Paragraph{{}}
			}
			for _, p := range paragraphs {
				para := &ctypes.Paragraph{}
				fillParagraph(para, p)
				tc.Contents = append(tc.Contents, ctypes.TCBlockContent{Paragraph: para})
			}
			tr.Contents = append(tr.Contents, ctypes.TRCellContent{Cell: tc})
		}
		tbl.RowContents = append(tbl.RowContents, ctypes.RowContent{Row: tr})
	}
	return tbl
}

// edge converts a table edge; nil switches the edge off explicitly so the
// template's table style cannot draw it.
func edge(b *Border) *ctypes.Border {
	if b == nil {
		return &ctypes.Border{Val: stypes.BorderStyleNil}
	}
	return borderCT(*b)
}

func borderCT(b Border) *ctypes.Border {
	return &ctypes.Border{
		Val:   stypes.BorderStyle(b.Style),
		Color: ptr(b.Color),
		Space: ptr(strconv.Itoa(b.Space)),
	}
}

func fillParagraph(ct *ctypes.Paragraph, p Paragraph) {
	prop := &ctypes.ParagraphProp{
		Spacing: &ctypes.Spacing{
			Before: ptr(twentieths(p.SpaceBefore)),
			After:  ptr(twentieths(p.SpaceAfter)),
		},
	}
	if p.TopBorder != nil {
		prop.Border = &ctypes.ParaBorder{Top: borderCT(*p.TopBorder)}
	}
	for _, t := range p.TabStops {
		prop.Tabs.Tab = append(prop.Tabs.Tab, ctypes.Tab{Val: stypes.CustTabStopLeft, Position: int(t.Position)})
	}
	if p.IndentLeft > 0 || p.IndentHanging > 0 {
		prop.Indent = &ctypes.Indent{Left: ptr(int(p.IndentLeft))}
		if p.IndentHanging > 0 {
			prop.Indent.Hanging = ptr(uint64(p.IndentHanging))
		}
	}
	if p.Align != "" && p.Align != AlignLeft {
		prop.Justification = ctypes.NewGenSingleStrVal(stypes.Justification(p.Align))
	}
	ct.Property = prop

	for _, r := range p.Runs {
		if run := runCT(r); run != nil {
			ct.Children = append(ct.Children, ctypes.ParagraphChild{Run: run})
		}
	}
}

// runCT converts r, splitting tabs into tab characters. Empty runs yield nil.
func runCT(r Run) *ctypes.Run {
	text := xmlSafe(r.Text)
	if text == "" {
		return nil
	}

	run := &ctypes.Run{Property: runProps(r)}
	for i, part := range strings.Split(text, "\t") {
		if i > 0 {
			run.Children = append(run.Children, ctypes.RunChild{Tab: &ctypes.Empty{}})
		}
		if part != "" {
			run.Children = append(run.Children, ctypes.RunChild{
				Text: &ctypes.Text{Text: part, Space: ptr(ctypes.TextSpacePreserve)},
			})
		}
	}
	return run
}

func runProps(r Run) *ctypes.RunProperty {
	if r.Font == "" && !r.Bold && !r.Italic && r.Size <= 0 {
		return nil
	}
	prop := &ctypes.RunProperty{}
	if r.Font != "" {
		prop.Fonts = &ctypes.RunFonts{Ascii: r.Font, HAnsi: r.Font, CS: r.Font}
	}
	if r.Bold {
		prop.Bold = &ctypes.OnOff{}
	}
	if r.Italic {
		prop.Italic = &ctypes.OnOff{}
	}
	if r.Size > 0 {
		hp := halfPoints(r.Size)
		prop.Size = ctypes.NewFontSize(hp)
		prop.SizeCs = ctypes.NewFontSizeCS(hp)
	}
	return prop
}

func sectionProps(page PageSetup) *ctypes.SectionProp {
	return &ctypes.SectionProp{
		PageSize: &ctypes.PageSize{
			Width:  ptr(uint64(page.Width)),
			Height: ptr(uint64(page.Height)),
		},
		PageMargin: &ctypes.PageMargin{
			Top:    ptr(int(page.MarginTop)),
			Right:  ptr(int(page.MarginRight)),
			Bottom: ptr(int(page.MarginBottom)),
			Left:   ptr(int(page.MarginLeft)),
			Header: ptr(headerFooterDistance),
			Footer: ptr(headerFooterDistance),
			Gutter: ptr(0),
		},
	}
}

// docDefaults sets the body font and size and removes paragraph spacing so
// only explicit spacing applies.
func (d *Document) docDefaults() *ctypes.DocDefault {
	hp := halfPoints(d.FontSize)
	return &ctypes.DocDefault{
		RunProp: &ctypes.RunPropDefault{
			RunProp: &ctypes.RunProperty{
				Fonts:  &ctypes.RunFonts{Ascii: d.Font, HAnsi: d.Font, EastAsia: d.Font, CS: d.Font},
				Size:   ctypes.NewFontSize(hp),
				SizeCs: ctypes.NewFontSizeCS(hp),
			},
		},
		ParaProp: &ctypes.ParaPropDefault{
			ParaProp: &ctypes.ParagraphProp{
				Spacing: &ctypes.Spacing{
					Before:   ptr(uint64(0)),
					After:    ptr(uint64(0)),
					Line:     ptr(240),
					LineRule: ptr(stypes.LineSpacingRuleAuto),
				},
			},
		},
	}
}

func (d *Document) coreXML() []byte {
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" `+
		`xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>%s</dc:title><dc:creator>%s</dc:creator></cp:coreProperties>`,
		EscapeXML(d.Title), EscapeXML(d.Author)))
}

// dropThumbnail removes the template's preview image so viewers do not show
// a stale preview.
func dropThumbnail(rd *ooxml.RootDoc) {
	rels := rd.RootRels.Relationships[:0]
	for _, rel := range rd.RootRels.Relationships {
		if rel.Type != thumbnailRel {
			rels = append(rels, rel)
		}
	}
	rd.RootRels.Relationships = rels
	rd.FileMap.Delete(thumbnailPath)
}

// halfPoints converts a point size to the half-point units of w:sz.
func halfPoints(pt float64) uint64 {
	if pt <= 0 {
		return 0
	}
	return uint64(pt*2 + 0.5)
}

// twentieths converts points to the twentieths used by w:spacing.
func twentieths(pt float64) uint64 {
	if pt <= 0 {
		return 0
	}
	return uint64(pt*20 + 0.5)
}

// xmlSafe drops characters XML 1.0 cannot represent.
func xmlSafe(text string) string {
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, text)
}

func ptr[T any](v T) *T {
	return &v
}
