package boxes

import (
	pr "github.com/benoitkugler/tablelayout/css/properties"
	"github.com/benoitkugler/tablelayout/utils"
)

// CollapsedBorderValues are the resolved borders of the four edges of a cell.
type CollapsedBorderValues struct {
	Start, End, Before, After CollapsedBorderValue
}

// Edge returns the value for the given logical edge.
func (v CollapsedBorderValues) Edge(e pr.LogicalEdge) CollapsedBorderValue {
	switch e {
	case pr.Start:
		return v.Start
	case pr.End:
		return v.End
	case pr.Before:
		return v.Before
	default:
		return v.After
	}
}

func (v CollapsedBorderValues) allZeroWidth() bool {
	return v.Start.Width == 0 && v.End.Width == 0 && v.Before.Width == 0 && v.After.Width == 0
}

// normalized replaces the edges without width by the zero value,
// so that the two cells sharing such an edge report the same value.
func (v CollapsedBorderValues) normalized() CollapsedBorderValues {
	for _, edge := range [4]*CollapsedBorderValue{&v.Start, &v.End, &v.Before, &v.After} {
		if edge.Width == 0 {
			*edge = CollapsedBorderValue{}
		}
	}
	return v
}

// edgeResolver folds the candidates of an edge. Once the current
// winner is absent (a hidden border won), the resolution stops.
type edgeResolver struct {
	result CollapsedBorderValue
}

// prefer keeps the current winner on ties.
func (r *edgeResolver) prefer(other CollapsedBorderValue) {
	if r.result.Exists() {
		r.result = chooseBorder(r.result, other)
	}
}

// yield gives the priority to [other] on ties.
func (r *edgeResolver) yield(other CollapsedBorderValue) {
	if r.result.Exists() {
		r.result = chooseBorder(other, r.result)
	}
}

// candidate returns the border of [part] on the logical edge [e],
// in the direction of the table.
func (t *Table) candidate(part TablePart, e pr.LogicalEdge, precedence Precedence) CollapsedBorderValue {
	return newCollapsedBorderValue(part.Style().LogicalBorder(e, t.style.Direction), precedence)
}

func (t *Table) columnCandidate(id ColumnID, e pr.LogicalEdge) CollapsedBorderValue {
	col := t.Column(id)
	if col.isGroup {
		return t.candidate(col, e, PrecedenceColumnGroup)
	}
	return t.candidate(col, e, PrecedenceColumn)
}

// cachedEdge returns the cached value of a neighbour, if valid.
func (t *Table) cachedEdge(id CellID, e pr.LogicalEdge) (CollapsedBorderValue, bool) {
	cell := t.Cell(id)
	if !cell.collapsedBorderValuesValid {
		return CollapsedBorderValue{}, false
	}
	if cell.collapsedBorderValues == nil {
		return CollapsedBorderValue{}, true
	}
	return cell.collapsedBorderValues.Edge(e), true
}

func (t *Table) computeCollapsedStartBorder(g Grid, id CellID) CollapsedBorderValue {
	cell := t.Cell(id)
	row := t.Row(cell.row)
	preceding := g.CellPreceding(id)
	if preceding != NoCell && t.Row(t.Cell(preceding).row).index == row.index {
		if v, ok := t.cachedEdge(preceding, pr.End); ok {
			return v
		}
	}

	r := edgeResolver{t.candidate(cell, pr.Start, PrecedenceCell)}
	if preceding != NoCell {
		r.yield(t.candidate(t.Cell(preceding), pr.End, PrecedenceCell))
	}
	isStartColumn := cell.absoluteColumn == 0
	if isStartColumn {
		r.prefer(t.candidate(row, pr.Start, PrecedenceRow))
		r.prefer(t.candidate(t.Section(row.section), pr.Start, PrecedenceRowGroup))
	}
	cc := g.ColElementAtAbsoluteColumn(cell.absoluteColumn)
	if cc.ColumnGroup != NoColumn && cc.AdjoinsStartBorderOfColGroup {
		r.prefer(t.candidate(t.Column(cc.ColumnGroup), pr.Start, PrecedenceColumnGroup))
	}
	if cc.Column != NoColumn {
		r.prefer(t.candidate(t.Column(cc.Column), pr.Start, PrecedenceColumn))
	}
	if preceding != NoCell {
		cc = g.ColElementAtAbsoluteColumn(cell.absoluteColumn - 1)
		if cc.ColumnGroup != NoColumn && cc.AdjoinsEndBorderOfColGroup {
			r.yield(t.candidate(t.Column(cc.ColumnGroup), pr.End, PrecedenceColumnGroup))
		}
		if cc.Column != NoColumn {
			r.yield(t.candidate(t.Column(cc.Column), pr.End, PrecedenceColumn))
		}
	}
	if isStartColumn {
		r.prefer(t.candidate(t, pr.Start, PrecedenceTable))
	}
	return r.result
}

func (t *Table) computeCollapsedEndBorder(g Grid, id CellID) CollapsedBorderValue {
	cell := t.Cell(id)
	row := t.Row(cell.row)
	following := g.CellFollowing(id)
	if following != NoCell && t.Row(t.Cell(following).row).index == row.index {
		if v, ok := t.cachedEdge(following, pr.Start); ok {
			return v
		}
	}

	lastColumn := cell.absoluteColumn + cell.colspan - 1
	isEndColumn := t.absoluteColumnToEffectiveColumn(lastColumn) == len(t.effectiveColumns)-1

	r := edgeResolver{t.candidate(cell, pr.End, PrecedenceCell)}
	if following != NoCell {
		r.prefer(t.candidate(t.Cell(following), pr.Start, PrecedenceCell))
	}
	if isEndColumn {
		r.prefer(t.candidate(row, pr.End, PrecedenceRow))
		r.prefer(t.candidate(t.Section(row.section), pr.End, PrecedenceRowGroup))
	}
	cc := g.ColElementAtAbsoluteColumn(lastColumn)
	if cc.ColumnGroup != NoColumn && cc.AdjoinsEndBorderOfColGroup {
		r.prefer(t.candidate(t.Column(cc.ColumnGroup), pr.End, PrecedenceColumnGroup))
	}
	if cc.Column != NoColumn {
		r.prefer(t.candidate(t.Column(cc.Column), pr.End, PrecedenceColumn))
	}
	if !isEndColumn {
		cc = g.ColElementAtAbsoluteColumn(lastColumn + 1)
		if cc.ColumnGroup != NoColumn && cc.AdjoinsStartBorderOfColGroup {
			r.prefer(t.candidate(t.Column(cc.ColumnGroup), pr.Start, PrecedenceColumnGroup))
		}
		if cc.Column != NoColumn {
			r.prefer(t.candidate(t.Column(cc.Column), pr.Start, PrecedenceColumn))
		}
	}
	if isEndColumn {
		r.prefer(t.candidate(t, pr.End, PrecedenceTable))
	}
	return r.result
}

func (t *Table) computeCollapsedBeforeBorder(g Grid, id CellID) CollapsedBorderValue {
	cell := t.Cell(id)
	row := t.Row(cell.row)
	above := g.CellAbove(id)
	if above != NoCell && t.Cell(above).absoluteColumn == cell.absoluteColumn {
		if v, ok := t.cachedEdge(above, pr.After); ok {
			return v
		}
	}

	r := edgeResolver{t.candidate(cell, pr.Before, PrecedenceCell)}
	if above != NoCell {
		r.yield(t.candidate(t.Cell(above), pr.After, PrecedenceCell))
	}
	r.prefer(t.candidate(row, pr.Before, PrecedenceRow))
	if above != NoCell {
		aboveSection := t.Row(t.Cell(above).row).section
		var prevRow RowID
		if aboveSection == row.section {
			prevRow = t.Section(row.section).grid[row.index-1].row
		} else {
			grid := t.Section(aboveSection).grid
			prevRow = grid[len(grid)-1].row
		}
		r.yield(t.candidate(t.Row(prevRow), pr.After, PrecedenceRow))
	}

	currSection := row.section
	if row.index == 0 {
		r.prefer(t.candidate(t.Section(currSection), pr.Before, PrecedenceRowGroup))
		currSection = g.SectionAbove(currSection, true)
		if currSection != NoSection {
			r.yield(t.candidate(t.Section(currSection), pr.After, PrecedenceRowGroup))
		}
	}
	if currSection == NoSection {
		// the cell is on the top edge of the table
		inner := g.ColElementAtAbsoluteColumn(cell.absoluteColumn).InnermostColOrColGroup()
		if inner != NoColumn {
			r.prefer(t.columnCandidate(inner, pr.Before))
			if group := t.Column(inner).group; group != NoColumn {
				r.prefer(t.candidate(t.Column(group), pr.Before, PrecedenceColumnGroup))
			}
		}
		r.prefer(t.candidate(t, pr.Before, PrecedenceTable))
	}
	return r.result
}

func (t *Table) computeCollapsedAfterBorder(g Grid, id CellID) CollapsedBorderValue {
	cell := t.Cell(id)
	row := t.Row(cell.row)
	below := g.CellBelow(id)
	if below != NoCell && t.Cell(below).absoluteColumn == cell.absoluteColumn {
		if v, ok := t.cachedEdge(below, pr.Before); ok {
			return v
		}
	}

	section := t.Section(row.section)
	lastRowIndex := row.index + cell.resolvedRowSpan - 1

	r := edgeResolver{t.candidate(cell, pr.After, PrecedenceCell)}
	if below != NoCell {
		r.prefer(t.candidate(t.Cell(below), pr.Before, PrecedenceCell))
	}
	r.prefer(t.candidate(t.Row(section.grid[lastRowIndex].row), pr.After, PrecedenceRow))
	if below != NoCell {
		r.prefer(t.candidate(t.Row(t.Cell(below).row), pr.Before, PrecedenceRow))
	}

	currSection := row.section
	if lastRowIndex+1 >= len(section.grid) {
		r.prefer(t.candidate(section, pr.After, PrecedenceRowGroup))
		currSection = g.SectionBelow(currSection, true)
		if currSection != NoSection {
			r.prefer(t.candidate(t.Section(currSection), pr.Before, PrecedenceRowGroup))
		}
	}
	if currSection == NoSection {
		// the cell is on the bottom edge of the table
		inner := g.ColElementAtAbsoluteColumn(cell.absoluteColumn).InnermostColOrColGroup()
		if inner != NoColumn {
			r.prefer(t.columnCandidate(inner, pr.After))
			if group := t.Column(inner).group; group != NoColumn {
				r.prefer(t.candidate(t.Column(group), pr.After, PrecedenceColumnGroup))
			}
		}
		r.prefer(t.candidate(t, pr.After, PrecedenceTable))
	}
	return r.result
}

func (t *Table) invalidateAllCellsIfNeeded() {
	if !t.needsInvalidateAllCells {
		return
	}
	for _, cell := range t.cells {
		cell.collapsedBorderValuesValid = false
	}
	t.needsInvalidateAllCells = false
}

// UpdateCollapsedBorderValues resolves the collapsed borders of the cell
// if they are not valid, returning true if they changed.
func (g Grid) UpdateCollapsedBorderValues(id CellID) bool {
	t := g.clean()
	t.invalidateAllCellsIfNeeded()

	cell := t.Cell(id)
	if cell.collapsedBorderValuesValid {
		return false
	}
	cell.collapsedBorderValuesValid = true

	hadValues := cell.collapsedBorderValues != nil
	if !t.ShouldCollapseBorders() {
		cell.collapsedBorderValues = nil
		return hadValues
	}

	values := CollapsedBorderValues{
		Start:  t.computeCollapsedStartBorder(g, id),
		End:    t.computeCollapsedEndBorder(g, id),
		Before: t.computeCollapsedBeforeBorder(g, id),
		After:  t.computeCollapsedAfterBorder(g, id),
	}.normalized()
	if values.allZeroWidth() {
		cell.collapsedBorderValues = nil
		return hadValues
	}
	changed := !hadValues || *cell.collapsedBorderValues != values
	cell.collapsedBorderValues = &values
	return changed
}

// RecalcCollapsedBorders resolves the collapsed borders of every cell,
// if needed, walking the cells in layout order.
func (g Grid) RecalcCollapsedBorders() {
	t := g.clean()
	if t.collapsedBordersValid {
		return
	}
	for _, section := range g.Sections() {
		for _, rowID := range t.Section(section).rows {
			for _, cell := range t.Row(rowID).cells {
				g.UpdateCollapsedBorderValues(cell)
			}
		}
	}
	t.collapsedBordersValid = true
}

// CollapsedBorders returns the resolved borders of the cell. The zero
// value is returned when the borders are not collapsing or all have zero width.
func (g Grid) CollapsedBorders(id CellID) CollapsedBorderValues {
	t := g.clean()
	g.RecalcCollapsedBorders()
	if v := t.Cell(id).collapsedBorderValues; v != nil {
		return *v
	}
	return CollapsedBorderValues{}
}

// borderHalf splits a collapsed border of [width] between the two cells
// sharing it. The extra pixel of an odd width goes inside the cell on its
// physical left and top sides.
func borderHalf(width int, e pr.LogicalEdge, dir pr.Direction, outer bool) int {
	side := e.Physical(dir)
	if (side == pr.Left || side == pr.Top) != outer {
		return (width + 1) / 2
	}
	return width / 2
}

// CollapsedBorderHalf returns the part of the collapsed border on edge [e]
// lying inside the cell, or outside of it if [outer] is true.
func (g Grid) CollapsedBorderHalf(id CellID, e pr.LogicalEdge, outer bool) int {
	width := g.CollapsedBorders(id).Edge(e).Width
	return borderHalf(width, e, g.t.style.Direction, outer)
}

func logicalEdge(side pr.Side, dir pr.Direction) pr.LogicalEdge {
	switch side {
	case pr.Top:
		return pr.Before
	case pr.Bottom:
		return pr.After
	case pr.Left:
		if dir == pr.RTL {
			return pr.End
		}
		return pr.Start
	default:
		if dir == pr.RTL {
			return pr.Start
		}
		return pr.End
	}
}

func (g Grid) collapsedBorderHalfSide(id CellID, side pr.Side, outer bool) int {
	return g.CollapsedBorderHalf(id, logicalEdge(side, g.t.style.Direction), outer)
}

// CellBorderWidth returns the width of the border of the cell used by
// the layout: the inner half of the collapsed border when collapsing,
// the border width of the cell style otherwise.
func (g Grid) CellBorderWidth(id CellID, side pr.Side) int {
	t := g.clean()
	if t.ShouldCollapseBorders() {
		return g.collapsedBorderHalfSide(id, side, false)
	}
	return t.Cell(id).style.BorderWidth(side)
}

// CellVisualOverflow returns the rectangle painted by the cell,
// relative to its border box, which includes the outer halves of
// its collapsed borders and the outer halves of the wider borders
// of its neighbours at the corners.
func (g Grid) CellVisualOverflow(id CellID) Geometry {
	t := g.clean()
	cell := t.Cell(id)
	if !t.ShouldCollapseBorders() {
		return Geometry{Width: cell.Width, Height: cell.Height}
	}
	rtl := t.style.Direction == pr.RTL
	left := g.collapsedBorderHalfSide(id, pr.Left, true)
	right := g.collapsedBorderHalfSide(id, pr.Right, true)
	top := g.collapsedBorderHalfSide(id, pr.Top, true)
	bottom := g.collapsedBorderHalfSide(id, pr.Bottom, true)

	if (left != 0 && !rtl) || (right != 0 && rtl) {
		if preceding := g.CellPreceding(id); preceding != NoCell {
			top = utils.MaxInt(top, g.collapsedBorderHalfSide(preceding, pr.Top, true))
			bottom = utils.MaxInt(bottom, g.collapsedBorderHalfSide(preceding, pr.Bottom, true))
		}
	}
	if (left != 0 && rtl) || (right != 0 && !rtl) {
		if following := g.CellFollowing(id); following != NoCell {
			top = utils.MaxInt(top, g.collapsedBorderHalfSide(following, pr.Top, true))
			bottom = utils.MaxInt(bottom, g.collapsedBorderHalfSide(following, pr.Bottom, true))
		}
	}
	if top != 0 {
		if above := g.CellAbove(id); above != NoCell {
			left = utils.MaxInt(left, g.collapsedBorderHalfSide(above, pr.Left, true))
			right = utils.MaxInt(right, g.collapsedBorderHalfSide(above, pr.Right, true))
		}
	}
	if bottom != 0 {
		if below := g.CellBelow(id); below != NoCell {
			left = utils.MaxInt(left, g.collapsedBorderHalfSide(below, pr.Left, true))
			right = utils.MaxInt(right, g.collapsedBorderHalfSide(below, pr.Right, true))
		}
	}
	return Geometry{X: -left, Y: -top, Width: left + cell.Width + right, Height: top + cell.Height + bottom}
}

// updateCollapsedOuterBorders computes the half of the collapsed borders
// of the boundary cells lying outside of the grid.
func (g Grid) updateCollapsedOuterBorders() {
	t := g.clean()
	g.RecalcCollapsedBorders()
	if t.collapsedOuterBordersValid {
		return
	}
	t.collapsedOuterBordersValid = true
	t.outer = collapsedOuterBorders{}
	if !t.ShouldCollapseBorders() {
		return
	}

	top := g.TopNonEmptySection()
	if top == NoSection {
		return
	}
	for c := range t.effectiveColumns {
		if cell := g.PrimaryCellAt(top, 0, c); cell != NoCell {
			t.outer.before = utils.MaxInt(t.outer.before, g.CollapsedBorderHalf(cell, pr.Before, true))
		}
	}
	bottom := g.BottomNonEmptySection()
	lastRow := len(t.Section(bottom).grid) - 1
	for c := range t.effectiveColumns {
		if cell := g.PrimaryCellAt(bottom, lastRow, c); cell != NoCell {
			t.outer.after = utils.MaxInt(t.outer.after, g.CollapsedBorderHalf(cell, pr.After, true))
		}
	}

	// the start and end borders are the ones of the first row,
	// but the other rows may overflow
	first := true
	maxStart, maxEnd := 0, 0
	for section := top; section != NoSection; section = g.SectionBelow(section, true) {
		for _, rowID := range t.Section(section).rows {
			cells := t.Row(rowID).cells
			if len(cells) == 0 {
				continue
			}
			start := g.CollapsedBorderHalf(cells[0], pr.Start, true)
			end := g.CollapsedBorderHalf(cells[len(cells)-1], pr.End, true)
			if first {
				t.outer.start, t.outer.end = start, end
				first = false
			}
			maxStart = utils.MaxInt(maxStart, start)
			maxEnd = utils.MaxInt(maxEnd, end)
		}
	}
	t.outer.startOverflow = maxStart - t.outer.start
	t.outer.endOverflow = maxEnd - t.outer.end
}

// TableBorderWidth returns the width of the table border on [side]:
// the outer half of the collapsed borders of the boundary cells
// when collapsing, the border of the table style otherwise.
func (g Grid) TableBorderWidth(side pr.Side) int {
	t := g.clean()
	if !t.ShouldCollapseBorders() {
		return t.style.BorderWidth(side)
	}
	g.updateCollapsedOuterBorders()
	switch logicalEdge(side, t.style.Direction) {
	case pr.Before:
		return t.outer.before
	case pr.After:
		return t.outer.after
	case pr.Start:
		return t.outer.start
	default:
		return t.outer.end
	}
}

// CollapsedOuterBorderOverflow returns how much the outer halves of
// the start and end borders of the rows exceed the ones of the first row.
func (g Grid) CollapsedOuterBorderOverflow() (start, end int) {
	t := g.clean()
	g.updateCollapsedOuterBorders()
	return t.outer.startOverflow, t.outer.endOverflow
}
