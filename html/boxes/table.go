// Package boxes implements the table model: the parts of a table
// (sections, rows, cells, columns and captions), the grid mapping
// (row, effective column) slots to cells, the effective columns
// and the resolution of collapsed borders.
//
// The parts are stored in flat slices owned by a [Table] and reference
// each other with integer ids. Every mutation goes through the [Table]
// methods, which record what must be recomputed. The grid and the
// collapsed borders are only readable through a [Grid], obtained
// with [Table.Recalc], which transparently rebuilds stale state.
package boxes

import (
	"fmt"

	pr "github.com/benoitkugler/tablelayout/css/properties"
)

type (
	SectionID int
	RowID     int
	CellID    int
	ColumnID  int
	CaptionID int
)

// Sentinel values for missing parts.
const (
	NoSection SectionID = -1
	NoRow     RowID     = -1
	NoCell    CellID    = -1
	NoColumn  ColumnID  = -1
)

// Kind identifies the variant of a [TablePart].
type Kind uint8

const (
	KTable Kind = iota
	KSection
	KRow
	KCell
	KColumn
	KCaption
)

func (k Kind) String() string {
	switch k {
	case KTable:
		return "table"
	case KSection:
		return "section"
	case KRow:
		return "row"
	case KCell:
		return "cell"
	case KColumn:
		return "column"
	case KCaption:
		return "caption"
	default:
		return "<invalid kind>"
	}
}

// Ref addresses any part of a table. Index is ignored for [KTable].
type Ref struct {
	Kind  Kind
	Index int
}

func (r Ref) String() string { return fmt.Sprintf("%s#%d", r.Kind, r.Index) }

func TableRef() Ref                 { return Ref{Kind: KTable} }
func (id SectionID) Ref() Ref       { return Ref{KSection, int(id)} }
func (id RowID) Ref() Ref           { return Ref{KRow, int(id)} }
func (id CellID) Ref() Ref          { return Ref{KCell, int(id)} }
func (id ColumnID) Ref() Ref        { return Ref{KColumn, int(id)} }
func (id CaptionID) Ref() Ref       { return Ref{KCaption, int(id)} }
func (id SectionID) String() string { return fmt.Sprintf("section#%d", int(id)) }
func (id RowID) String() string     { return fmt.Sprintf("row#%d", int(id)) }
func (id CellID) String() string    { return fmt.Sprintf("cell#%d", int(id)) }
func (id ColumnID) String() string  { return fmt.Sprintf("column#%d", int(id)) }

// TablePart is implemented by *Table, *Section, *Row, *Cell,
// *Column and *Caption.
type TablePart interface {
	Kind() Kind
	// Style returns the computed style of the part.
	// It must not be modified: use [Table.SetStyle] instead.
	Style() *pr.Style
}

// Geometry is the border box of a part, in pixels, set by the layout.
// Cells and rows are relative to their section, sections and captions
// are relative to the table wrapper (the table box and its captions).
type Geometry struct {
	X, Y, Width, Height int
}

// SectionKind is derived from the 'display' property of a section.
type SectionKind uint8

const (
	Body SectionKind = iota
	Header
	Footer
)

func (s SectionKind) String() string {
	switch s {
	case Header:
		return "thead"
	case Footer:
		return "tfoot"
	default:
		return "tbody"
	}
}

type Section struct {
	style pr.Style
	rows  []RowID // DOM order

	grid            []gridRow
	cCol            int
	needsCellRecalc bool

	Geometry
	// RowPos stores the position of the rows, relative to the section,
	// with len(RowPos) == NumRows + 1. It is set by the layout.
	RowPos []int
	// CollapsedHeight is the height removed by rows
	// with 'visibility: collapse'.
	CollapsedHeight int
}

func (*Section) Kind() Kind         { return KSection }
func (s *Section) Style() *pr.Style { return &s.style }
func (s *Section) Rows() []RowID    { return s.rows }
func (s *Section) SectionKind() SectionKind {
	switch s.style.Display {
	case pr.DisplayTableHeaderGroup:
		return Header
	case pr.DisplayTableFooterGroup:
		return Footer
	default:
		return Body
	}
}

type Row struct {
	style   pr.Style
	section SectionID
	cells   []CellID // DOM order
	index   int      // in the section grid

	Geometry
	// Baseline is the row baseline, relative to the row top,
	// or 0 if no cell is baseline aligned.
	Baseline int
}

func (*Row) Kind() Kind           { return KRow }
func (r *Row) Style() *pr.Style   { return &r.style }
func (r *Row) Section() SectionID { return r.section }
func (r *Row) Cells() []CellID    { return r.cells }

type Cell struct {
	style   pr.Style
	row     RowID
	content Content

	colspan int // clamped to [1, MaxColumnIndex]
	rowspan int // clamped to [0, MaxRowIndex], 0 meaning 'rest of the section'

	resolvedRowSpan int
	absoluteColumn  int

	collapsedBorderValuesValid bool
	collapsedBorderValues      *CollapsedBorderValues

	Geometry
	// Extra space added before and after the content
	// to implement vertical alignment.
	IntrinsicPaddingBefore, IntrinsicPaddingAfter int
	// ContentHeight and ContentBaseline (relative to the content top,
	// or -1) are the result of the last content layout.
	ContentHeight, ContentBaseline int
}

func (*Cell) Kind() Kind         { return KCell }
func (c *Cell) Style() *pr.Style { return &c.style }
func (c *Cell) Row() RowID       { return c.row }
func (c *Cell) Content() Content { return c.content }

// ColSpan returns the clamped colspan of the cell.
func (c *Cell) ColSpan() int { return c.colspan }

// ParsedRowSpan returns the clamped rowspan, where 0 means
// "every remaining row of the section".
func (c *Cell) ParsedRowSpan() int { return c.rowspan }

// Column is a column or a column group, distinguished by IsGroup.
type Column struct {
	style    pr.Style
	span     int
	spanAttr int
	isGroup  bool
	group    ColumnID
	children []ColumnID
}

func (*Column) Kind() Kind             { return KColumn }
func (c *Column) Style() *pr.Style     { return &c.style }
func (c *Column) IsGroup() bool        { return c.isGroup }
func (c *Column) Group() ColumnID      { return c.group }
func (c *Column) Children() []ColumnID { return c.children }

// Span returns the number of columns spanned: for a group with
// column children it is the sum of the children spans.
func (c *Column) Span() int { return c.span }

// hasColumnChildren is true for a group with at least one column.
func (c *Column) hasColumnChildren() bool { return c.isGroup && len(c.children) != 0 }

type Caption struct {
	style   pr.Style
	content Content

	Geometry
}

func (*Caption) Kind() Kind         { return KCaption }
func (c *Caption) Style() *pr.Style { return &c.style }
func (c *Caption) Content() Content { return c.content }

// EffectiveColumn is a run of absolute columns treated as one
// by the layout, because no cell boundary falls inside it.
type EffectiveColumn struct {
	Span int
}

// collapsedOuterBorders are the half of the collapsed borders
// lying outside of the table grid.
type collapsedOuterBorders struct {
	before, after, start, end  int
	startOverflow, endOverflow int
}

type Table struct {
	style pr.Style

	sections []*Section
	rows     []*Row
	cells    []*Cell
	columns  []*Column
	captions []*Caption

	sectionOrder  []SectionID // DOM order
	topColumns    []ColumnID  // DOM order
	captionsOrder []CaptionID

	effectiveColumns         []EffectiveColumn
	effectiveColumnPositions []int
	noCellColspanAtLeast     int

	head, foot, firstBody SectionID

	needsSectionRecalc         bool
	collapsedBordersValid      bool
	needsInvalidateAllCells    bool
	collapsedOuterBordersValid bool
	needsLayout                bool

	outer collapsedOuterBorders

	Geometry
	// BoxY is the position of the table box (below the top captions),
	// relative to the wrapper, whose height is Height.
	BoxY, BoxHeight int
}

func (*Table) Kind() Kind         { return KTable }
func (t *Table) Style() *pr.Style { return &t.style }

// NewTable returns an empty table with the given style.
func NewTable(style pr.Style) *Table {
	return &Table{
		style:                    style,
		head:                     NoSection,
		foot:                     NoSection,
		firstBody:                NoSection,
		effectiveColumnPositions: []int{0},
		needsLayout:              true,
	}
}

// ShouldCollapseBorders is true in the collapsing border model.
func (t *Table) ShouldCollapseBorders() bool { return t.style.IsCollapsing() }

// NeedsLayout is true when a mutation happened since the last
// call to [Table.SetLaidOut].
func (t *Table) NeedsLayout() bool { return t.needsLayout }

// SetLaidOut is called by the layout once the geometry is up to date.
func (t *Table) SetLaidOut() { t.needsLayout = false }

func (t *Table) Section(id SectionID) *Section {
	if int(id) < 0 || int(id) >= len(t.sections) {
		panic(fmt.Sprintf("invalid section id %d", id))
	}
	return t.sections[id]
}

func (t *Table) Row(id RowID) *Row {
	if int(id) < 0 || int(id) >= len(t.rows) {
		panic(fmt.Sprintf("invalid row id %d", id))
	}
	return t.rows[id]
}

func (t *Table) Cell(id CellID) *Cell {
	if int(id) < 0 || int(id) >= len(t.cells) {
		panic(fmt.Sprintf("invalid cell id %d", id))
	}
	return t.cells[id]
}

func (t *Table) Column(id ColumnID) *Column {
	if int(id) < 0 || int(id) >= len(t.columns) {
		panic(fmt.Sprintf("invalid column id %d", id))
	}
	return t.columns[id]
}

func (t *Table) Caption(id CaptionID) *Caption {
	if int(id) < 0 || int(id) >= len(t.captions) {
		panic(fmt.Sprintf("invalid caption id %d", id))
	}
	return t.captions[id]
}

// Part returns the part referenced by ref.
func (t *Table) Part(ref Ref) TablePart {
	switch ref.Kind {
	case KTable:
		return t
	case KSection:
		return t.Section(SectionID(ref.Index))
	case KRow:
		return t.Row(RowID(ref.Index))
	case KCell:
		return t.Cell(CellID(ref.Index))
	case KColumn:
		return t.Column(ColumnID(ref.Index))
	case KCaption:
		return t.Caption(CaptionID(ref.Index))
	default:
		panic(fmt.Sprintf("invalid reference %s", ref))
	}
}

// SectionsDOM returns the sections in DOM order.
func (t *Table) SectionsDOM() []SectionID { return t.sectionOrder }

// Columns returns the top level columns and column groups, in DOM order.
func (t *Table) Columns() []ColumnID { return t.topColumns }

// Captions returns the captions in DOM order.
func (t *Table) Captions() []CaptionID { return t.captionsOrder }
