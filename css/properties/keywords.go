package properties

// Display is the subset of the 'display' values meaningful for tables.
type Display uint8

const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayNone
	DisplayTable
	DisplayInlineTable
	DisplayTableRowGroup
	DisplayTableHeaderGroup
	DisplayTableFooterGroup
	DisplayTableRow
	DisplayTableCell
	DisplayTableColumnGroup
	DisplayTableColumn
	DisplayTableCaption
)

var displayNames = [...]string{
	DisplayInline:           "inline",
	DisplayBlock:            "block",
	DisplayNone:             "none",
	DisplayTable:            "table",
	DisplayInlineTable:      "inline-table",
	DisplayTableRowGroup:    "table-row-group",
	DisplayTableHeaderGroup: "table-header-group",
	DisplayTableFooterGroup: "table-footer-group",
	DisplayTableRow:         "table-row",
	DisplayTableCell:        "table-cell",
	DisplayTableColumnGroup: "table-column-group",
	DisplayTableColumn:      "table-column",
	DisplayTableCaption:     "table-caption",
}

func (d Display) String() string {
	if int(d) < len(displayNames) {
		return displayNames[d]
	}
	return "<invalid display>"
}

// IsTable is true for 'table' and 'inline-table'.
func (d Display) IsTable() bool { return d == DisplayTable || d == DisplayInlineTable }

// IsSection is true for the three row group displays.
func (d Display) IsSection() bool {
	return d == DisplayTableRowGroup || d == DisplayTableHeaderGroup || d == DisplayTableFooterGroup
}

type Direction uint8

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

type BorderCollapse uint8

const (
	Separate BorderCollapse = iota
	Collapse
)

func (b BorderCollapse) String() string {
	if b == Collapse {
		return "collapse"
	}
	return "separate"
}

type TableLayout uint8

const (
	TableLayoutAuto TableLayout = iota
	TableLayoutFixed
)

func (t TableLayout) String() string {
	if t == TableLayoutFixed {
		return "fixed"
	}
	return "auto"
}

type CaptionSide uint8

const (
	CaptionTop CaptionSide = iota
	CaptionBottom
)

func (c CaptionSide) String() string {
	if c == CaptionBottom {
		return "bottom"
	}
	return "top"
}

// VerticalAlign only lists the values with a specific behavior
// for table cells: the other ones compute to baseline.
type VerticalAlign uint8

const (
	AlignBaseline VerticalAlign = iota
	AlignTop
	AlignMiddle
	AlignBottom
)

var verticalAlignNames = [...]string{
	AlignBaseline: "baseline",
	AlignTop:      "top",
	AlignMiddle:   "middle",
	AlignBottom:   "bottom",
}

func (v VerticalAlign) String() string {
	if int(v) < len(verticalAlignNames) {
		return verticalAlignNames[v]
	}
	return "<invalid vertical-align>"
}

type Visibility uint8

const (
	Visible Visibility = iota
	Hidden
	Collapsed // 'collapse'
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Collapsed:
		return "collapse"
	default:
		return "visible"
	}
}

type BoxSizing uint8

const (
	ContentBox BoxSizing = iota
	BorderBox
)

func (b BoxSizing) String() string {
	if b == BorderBox {
		return "border-box"
	}
	return "content-box"
}
