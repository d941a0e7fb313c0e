// Package tree builds table boxes from HTML markup.
//
// Only the table elements are supported: the style of each part is computed
// from a subset of the HTML user agent stylesheet, the presentational
// attributes and the 'style' attribute. The content of cells and captions
// is plain text, measured with a fixed bitmap font, and nested tables.
package tree

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	pr "github.com/benoitkugler/tablelayout/css/properties"
	bo "github.com/benoitkugler/tablelayout/html/boxes"
	"github.com/benoitkugler/tablelayout/logger"
)

// elements starting a new paragraph in cell content
var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Ul: true, atom.Ol: true, atom.Li: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Pre: true, atom.Blockquote: true, atom.Hr: true,
}

// ParseTables parses an HTML document and returns its top level tables,
// in document order. Tables nested in cells are stored in the content of
// their cell.
func ParseTables(r io.Reader) ([]*bo.Table, error) {
	root, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("invalid HTML input: %w", err)
	}
	logger.ProgressLogger.Println("Step 1 - Building tables")

	var out []*bo.Table
	rootStyle := pr.InitialStyle(pr.DisplayBlock)
	var walk func(node *html.Node, parent *pr.Style)
	walk = func(node *html.Node, parent *pr.Style) {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != html.ElementNode {
				continue
			}
			if child.DataAtom == atom.Table {
				if table := buildTable(child, parent); table != nil {
					out = append(out, table)
				}
				continue
			}
			style := computeStyle(child, parent, pr.DisplayBlock, nil)
			if style.Display == pr.DisplayNone {
				continue
			}
			walk(child, &style)
		}
	}
	walk(root, &rootStyle)

	logger.ProgressLogger.WithField("tables", len(out)).Println("Step 2 - Tables built")
	return out, nil
}

// ParseTablesString is a convenience wrapper for ParseTables.
func ParseTablesString(s string) ([]*bo.Table, error) {
	return ParseTables(strings.NewReader(s))
}

// tableBuilder stores the state required to build one table.
type tableBuilder struct {
	table *bo.Table
	// declarations added to the cells of the table
	cellHints []string
	// body used for rows directly in the table
	implicitBody bo.SectionID
}

// handlers builds the direct children of a table element.
var handlers map[atom.Atom]func(tb *tableBuilder, element *html.Node)

func init() {
	handlers = map[atom.Atom]func(tb *tableBuilder, element *html.Node){
		atom.Caption:  (*tableBuilder).handleCaption,
		atom.Colgroup: (*tableBuilder).handleColgroup,
		atom.Col:      (*tableBuilder).handleCol,
		atom.Thead:    (*tableBuilder).handleSection,
		atom.Tbody:    (*tableBuilder).handleSection,
		atom.Tfoot:    (*tableBuilder).handleSection,
		atom.Tr:       (*tableBuilder).handleImplicitRow,
	}
}

// buildTable returns nil for a table with 'display: none'.
func buildTable(element *html.Node, parent *pr.Style) *bo.Table {
	style := computeStyle(element, parent, pr.DisplayTable, nil)
	switch style.Display {
	case pr.DisplayNone:
		return nil
	case pr.DisplayTable, pr.DisplayInlineTable:
	default:
		style.Display = pr.DisplayTable
	}

	tb := tableBuilder{
		table:        bo.NewTable(style),
		cellHints:    cellHints(element),
		implicitBody: bo.NoSection,
	}
	for child := element.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		if handler := handlers[child.DataAtom]; handler != nil {
			handler(&tb, child)
		} else {
			logger.WarningLogger.Printf("Ignored <%s> element in table", child.Data)
		}
	}
	return tb.table
}

// childStyle computes the style of a table part, resetting
// a 'display' value not matching the element to [display].
// It returns false for the parts with 'display: none'.
func (tb *tableBuilder) childStyle(element *html.Node, parent *pr.Style, display pr.Display) (pr.Style, bool) {
	style := computeStyle(element, parent, display, tb)
	switch {
	case style.Display == pr.DisplayNone:
		return style, false
	case display.IsSection() && style.Display.IsSection():
	default:
		style.Display = display
	}
	return style, true
}

func (tb *tableBuilder) handleCaption(element *html.Node) {
	style, ok := tb.childStyle(element, tb.table.Style(), pr.DisplayTableCaption)
	if !ok {
		return
	}
	tb.table.AppendCaption(style, tb.content(element, &style))
}

func (tb *tableBuilder) handleColgroup(element *html.Node) {
	style, ok := tb.childStyle(element, tb.table.Style(), pr.DisplayTableColumnGroup)
	if !ok {
		return
	}
	group := tb.table.AppendColumnGroup(style, bo.ParseSpan(getAttr(element, "span")))
	for child := element.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.DataAtom == atom.Col {
			tb.appendColumn(group, child, &style)
		}
	}
}

func (tb *tableBuilder) handleCol(element *html.Node) {
	tb.appendColumn(bo.NoColumn, element, tb.table.Style())
}

func (tb *tableBuilder) appendColumn(group bo.ColumnID, element *html.Node, parent *pr.Style) {
	style, ok := tb.childStyle(element, parent, pr.DisplayTableColumn)
	if !ok {
		return
	}
	tb.table.AppendColumn(group, style, bo.ParseSpan(getAttr(element, "span")))
}

var sectionDisplays = map[atom.Atom]pr.Display{
	atom.Thead: pr.DisplayTableHeaderGroup,
	atom.Tbody: pr.DisplayTableRowGroup,
	atom.Tfoot: pr.DisplayTableFooterGroup,
}

func (tb *tableBuilder) handleSection(element *html.Node) {
	style, ok := tb.childStyle(element, tb.table.Style(), sectionDisplays[element.DataAtom])
	if !ok {
		return
	}
	section := tb.table.AppendSection(style)
	tb.implicitBody = bo.NoSection // following rows start a new body
	for child := element.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.DataAtom == atom.Tr {
			tb.appendRow(section, child)
		}
	}
}

// handleImplicitRow adds a row directly in the table to an anonymous body,
// shared by consecutive rows.
func (tb *tableBuilder) handleImplicitRow(element *html.Node) {
	if tb.implicitBody == bo.NoSection {
		style := tb.table.Style().Inherit(pr.DisplayTableRowGroup)
		style.VerticalAlign = pr.AlignMiddle
		tb.implicitBody = tb.table.AppendSection(style)
	}
	tb.appendRow(tb.implicitBody, element)
}

func (tb *tableBuilder) appendRow(section bo.SectionID, element *html.Node) {
	sectionStyle := tb.table.Section(section).Style()
	style, ok := tb.childStyle(element, sectionStyle, pr.DisplayTableRow)
	if !ok {
		return
	}
	row := tb.table.AppendRow(section, style)
	for child := element.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || (child.DataAtom != atom.Td && child.DataAtom != atom.Th) {
			continue
		}
		cellStyle, ok := tb.childStyle(child, &style, pr.DisplayTableCell)
		if !ok {
			continue
		}
		colspan := bo.ParseColspan(getAttr(child, "colspan"))
		rowspan := bo.ParseRowspan(getAttr(child, "rowspan"))
		tb.table.AppendCell(row, cellStyle, tb.content(child, &cellStyle), colspan, rowspan)
	}
}

// content returns the content of a cell or a caption, or nil if it is empty.
func (tb *tableBuilder) content(element *html.Node, style *pr.Style) bo.Content {
	var cb contentBuilder
	var walk func(node *html.Node, parent *pr.Style)
	walk = func(node *html.Node, parent *pr.Style) {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			switch child.Type {
			case html.TextNode:
				cb.text.WriteString(child.Data)
			case html.ElementNode:
				switch {
				case child.DataAtom == atom.Script || child.DataAtom == atom.Style:
				case child.DataAtom == atom.Br:
					cb.lineBreak()
				case child.DataAtom == atom.Table:
					if nested := buildTable(child, parent); nested != nil {
						cb.flushText()
						cb.items = append(cb.items, tableContent{table: nested})
					}
				default:
					childStyle := computeStyle(child, parent, pr.DisplayInline, nil)
					if childStyle.Display == pr.DisplayNone {
						continue
					}
					if blockElements[child.DataAtom] {
						cb.flushText()
					}
					walk(child, &childStyle)
					if blockElements[child.DataAtom] {
						cb.flushText()
					}
				}
			}
		}
	}
	walk(element, style)
	return cb.content()
}
