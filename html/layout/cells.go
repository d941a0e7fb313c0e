package layout

import (
	pr "github.com/benoitkugler/tablelayout/css/properties"
	bo "github.com/benoitkugler/tablelayout/html/boxes"
	"github.com/benoitkugler/tablelayout/utils"
)

// cellBorderAndPaddingWidth returns the horizontal borders and paddings
// of the cell, with percentages resolved against [reference].
// In the collapsing model, the borders are the inner halves of the
// collapsed borders.
func (tl *tableLayout) cellBorderAndPaddingWidth(id bo.CellID, reference int) int {
	st := tl.t.Cell(id).Style()
	return tl.g.CellBorderWidth(id, pr.Left) + tl.g.CellBorderWidth(id, pr.Right) +
		st.Padding[pr.Left].Resolve(reference) + st.Padding[pr.Right].Resolve(reference)
}

func (tl *tableLayout) cellBorderAndPaddingBefore(id bo.CellID) int {
	st := tl.t.Cell(id).Style()
	return tl.g.CellBorderWidth(id, pr.Top) + st.Padding[pr.Top].Resolve(tl.width)
}

func (tl *tableLayout) cellBorderAndPaddingAfter(id bo.CellID) int {
	st := tl.t.Cell(id).Style()
	return tl.g.CellBorderWidth(id, pr.Bottom) + st.Padding[pr.Bottom].Resolve(tl.width)
}

// adjustCellWidthForBoxSizing converts a specified 'width' to a border box width.
func (tl *tableLayout) adjustCellWidthForBoxSizing(id bo.CellID, width int) int {
	bp := tl.cellBorderAndPaddingWidth(id, 0)
	if tl.t.Cell(id).Style().BoxSizing == pr.ContentBox {
		return width + bp
	}
	return utils.MaxInt(width, bp)
}

// cellPreferredWidths returns the min-content and max-content widths of
// the border box of the cell. Percent paddings are ignored.
func (tl *tableLayout) cellPreferredWidths(id bo.CellID) (minWidth, maxWidth int) {
	if ws, ok := tl.cellWidths[id]; ok {
		return ws[0], ws[1]
	}
	cell := tl.t.Cell(id)
	minWidth, maxWidth = bo.IntrinsicWidths(cell.Content())
	bp := tl.cellBorderAndPaddingWidth(id, 0)
	minWidth += bp
	maxWidth += bp

	st := cell.Style()
	if st.MaxWidth.IsFixed() {
		limit := tl.adjustCellWidthForBoxSizing(id, st.MaxWidth.Int())
		maxWidth = utils.MinInt(maxWidth, limit)
		minWidth = utils.MinInt(minWidth, limit)
	}
	if st.MinWidth.IsFixed() && st.MinWidth.IsPositive() {
		limit := tl.adjustCellWidthForBoxSizing(id, st.MinWidth.Int())
		maxWidth = utils.MaxInt(maxWidth, limit)
		minWidth = utils.MaxInt(minWidth, limit)
	}
	tl.cellWidths[id] = [2]int{minWidth, maxWidth}
	return minWidth, maxWidth
}

// columnElementsInTreeOrder returns the columns and column groups, each group
// being followed by its columns.
func columnElementsInTreeOrder(t *bo.Table) []bo.ColumnID {
	var out []bo.ColumnID
	for _, id := range t.Columns() {
		out = append(out, id)
		out = append(out, t.Column(id).Children()...)
	}
	return out
}

// isLastSibling is true for the last column of a group,
// or the last top level column element.
func isLastSibling(t *bo.Table, id bo.ColumnID) bool {
	siblings := t.Columns()
	if group := t.Column(id).Group(); group != bo.NoColumn {
		siblings = t.Column(group).Children()
	}
	return len(siblings) != 0 && siblings[len(siblings)-1] == id
}

// styleOrColLogicalWidth returns the 'width' of the cell, or, when it is auto,
// the width given by the column elements the cell starts in.
func (tl *tableLayout) styleOrColLogicalWidth(id bo.CellID) pr.Dimension {
	width := tl.t.Cell(id).Style().Width
	if !width.IsAuto() {
		return width
	}
	first := tl.g.ColElementAtAbsoluteColumn(tl.g.AbsoluteColumnIndex(id)).InnermostColOrColGroup()
	if first == bo.NoColumn {
		return width
	}
	return tl.logicalWidthFromColumns(id, first, width)
}

// logicalWidthFromColumns sums the fixed widths of the column elements
// starting at [first], one per spanned column. Percentages are only used
// for cells spanning one column.
func (tl *tableLayout) logicalWidthFromColumns(id bo.CellID, first bo.ColumnID, widthFromStyle pr.Dimension) pr.Dimension {
	columns := tl.columnElements
	index := -1
	for i, col := range columns {
		if col == first {
			index = i
			break
		}
	}
	colSpan := tl.t.Cell(id).ColSpan()
	sum := 0
	for i := 1; i <= colSpan && index < len(columns); i++ {
		colWidth := tl.t.Column(columns[index]).Style().Width
		if !colWidth.IsFixed() {
			if colSpan > 1 {
				return widthFromStyle
			}
			return colWidth
		}
		sum += colWidth.Int()
		index++
	}

	// column widths apply to the border box of the cell
	if sum > 0 {
		return pr.FixedPx(utils.MaxInt(0, sum-tl.cellBorderAndPaddingWidth(id, 0)))
	}
	return pr.FixedPx(sum)
}

// cellHeightWithoutIntrinsicPadding is the height of the border box of
// the cell given by its content, after [layoutCellContent].
func (tl *tableLayout) cellHeightWithoutIntrinsicPadding(id bo.CellID) int {
	return tl.cellBorderAndPaddingBefore(id) + tl.t.Cell(id).ContentHeight + tl.cellBorderAndPaddingAfter(id)
}

// logicalHeightForRowSizing returns the height the cell requires from its row:
// the largest of its specified height (as a border box) and its content height.
func (tl *tableLayout) logicalHeightForRowSizing(id bo.CellID) int {
	st := tl.t.Cell(id).Style()
	styleHeight := st.Height.Resolve(0)
	if st.BoxSizing != pr.BorderBox {
		styleHeight += tl.cellBorderAndPaddingBefore(id) + tl.cellBorderAndPaddingAfter(id)
	}
	return utils.MaxInt(styleHeight, tl.cellHeightWithoutIntrinsicPadding(id))
}

func (tl *tableLayout) isBaselineAligned(id bo.CellID) bool {
	return tl.t.Cell(id).Style().VerticalAlign == pr.AlignBaseline
}

// cellBaselinePosition returns the baseline of the cell, relative to its top,
// ignoring the intrinsic padding: the baseline of the first line box, or the
// bottom of the content box.
func (tl *tableLayout) cellBaselinePosition(id bo.CellID) int {
	cell := tl.t.Cell(id)
	if cell.ContentBaseline >= 0 {
		return tl.cellBorderAndPaddingBefore(id) + cell.ContentBaseline
	}
	return tl.cellBorderAndPaddingBefore(id) + cell.ContentHeight
}

// layoutCellContent sets the width of the cell and lays out its content.
func (tl *tableLayout) layoutCellContent(id bo.CellID, width int) {
	cell := tl.t.Cell(id)
	cell.Width = width
	cell.IntrinsicPaddingBefore, cell.IntrinsicPaddingAfter = 0, 0
	inner := utils.MaxInt(0, width-tl.cellBorderAndPaddingWidth(id, tl.width))
	cell.ContentHeight, cell.ContentBaseline = bo.LayoutContent(cell.Content(), inner)
	cell.Height = tl.cellHeightWithoutIntrinsicPadding(id)
}

// computeIntrinsicPadding implements the vertical alignment of the cell
// in its rows, of height [rowHeight].
func (tl *tableLayout) computeIntrinsicPadding(id bo.CellID, collapsedHeight, rowHeight, rowBaseline int) {
	cell := tl.t.Cell(id)
	height := tl.cellHeightWithoutIntrinsicPadding(id)

	before := 0
	switch cell.Style().VerticalAlign {
	case pr.AlignBaseline:
		if baseline := tl.cellBaselinePosition(id); baseline > tl.cellBorderAndPaddingBefore(id) {
			before = rowBaseline - baseline
		}
	case pr.AlignTop:
	case pr.AlignMiddle:
		before = (rowHeight + collapsedHeight - height) / 2
	case pr.AlignBottom:
		before = rowHeight + collapsedHeight - height
	}
	cell.IntrinsicPaddingBefore = before
	cell.IntrinsicPaddingAfter = rowHeight - height - before
	cell.Height = height + cell.IntrinsicPaddingBefore + cell.IntrinsicPaddingAfter
}
