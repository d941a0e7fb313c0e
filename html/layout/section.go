package layout

import (
	pr "github.com/benoitkugler/tablelayout/css/properties"
	bo "github.com/benoitkugler/tablelayout/html/boxes"
	"github.com/benoitkugler/tablelayout/utils"
)

// sectionLayout computes the row heights of one section.
type sectionLayout struct {
	tl *tableLayout
	id bo.SectionID

	// rowPos has length numRows + 1 and includes the vertical spacing
	rowPos []int
	// one baseline per row, or -1
	baselines []int

	rowCollapsedHeight []int
	isAnyRowCollapsed  bool
}

func newSectionLayout(tl *tableLayout, id bo.SectionID) *sectionLayout {
	return &sectionLayout{tl: tl, id: id}
}

func (sl *sectionLayout) numRows() int { return sl.tl.g.NumRows(sl.id) }

func (sl *sectionLayout) height() int {
	if len(sl.rowPos) == 0 {
		return 0
	}
	return sl.rowPos[len(sl.rowPos)-1]
}

// borderSpacingForRow is the spacing below a row: rows created by
// row spanning cells have none.
func (sl *sectionLayout) borderSpacingForRow(row int) int {
	if sl.tl.g.RowAt(sl.id, row) == bo.NoRow {
		return 0
	}
	return sl.tl.vBorderSpacing()
}

// vBorderSpacingBeforeFirstRow is only used for the top section, since
// the other ones are preceded by the spacing of the last row above.
func (sl *sectionLayout) vBorderSpacingBeforeFirstRow() int {
	if sl.id != sl.tl.g.TopSection() {
		return 0
	}
	return sl.tl.vBorderSpacing()
}

func (sl *sectionLayout) rowHasVisibilityCollapse(row int) bool {
	t := sl.tl.t
	if t.Section(sl.id).Style().IsCollapsedVisibility() {
		return true
	}
	rowID := sl.tl.g.RowAt(sl.id, row)
	return rowID != bo.NoRow && t.Row(rowID).Style().IsCollapsedVisibility()
}

// endColumn returns the effective column following a cell
// starting in [startColumn].
func (sl *sectionLayout) endColumn(cell bo.CellID, startColumn, numCols int) int {
	g := sl.tl.g
	endCol := startColumn
	cspan := sl.tl.t.Cell(cell).ColSpan()
	for cspan > 0 && endCol < numCols {
		cspan -= g.SpanOfEffectiveColumn(endCol)
		endCol++
	}
	return endCol
}

// layoutCells sets the width of the cells from the column positions,
// and lays out their content.
func (sl *sectionLayout) layoutCells() {
	tl := sl.tl
	g := tl.g
	columnPos := g.EffectiveColumnPositions()
	for r := 0; r < sl.numRows(); r++ {
		cols := g.NumCols(sl.id, r)
		for c := 0; c < cols; c++ {
			gridCell := g.GridCellAt(sl.id, r, c)
			if gridCell.InColSpan {
				continue
			}
			for _, cell := range gridCell.Cells {
				if g.RowIndex(cell) != r {
					continue
				}
				endCol := sl.endColumn(cell, c, cols)
				width := columnPos[endCol] - columnPos[c] - tl.hBorderSpacing()
				tl.layoutCellContent(cell, width)
			}
		}
	}
}

// updateBaselineForCell raises the row baseline with the one of the cell,
// growing the row if needed.
func (sl *sectionLayout) updateBaselineForCell(cell bo.CellID, row int, baselineDescent *int) {
	tl := sl.tl
	if !tl.isBaselineAligned(cell) {
		return
	}
	// the intrinsic padding is ignored, since it depends on the row baseline
	baselinePosition := tl.cellBaselinePosition(cell)
	if baselinePosition <= tl.cellBorderAndPaddingBefore(cell) {
		return
	}
	sl.baselines[row] = utils.MaxInt(sl.baselines[row], baselinePosition)

	cellStartRowBaselineDescent := 0
	if tl.g.ResolvedRowSpan(cell) == 1 {
		*baselineDescent = utils.MaxInt(*baselineDescent, tl.logicalHeightForRowSizing(cell)-baselinePosition)
		cellStartRowBaselineDescent = *baselineDescent
	}
	sl.rowPos[row+1] = utils.MaxInt(sl.rowPos[row+1], sl.rowPos[row]+sl.baselines[row]+cellStartRowBaselineDescent)
}

// calcRowLogicalHeight computes the row positions, returning
// the height of the section.
func (sl *sectionLayout) calcRowLogicalHeight() int {
	tl := sl.tl
	g := tl.g
	n := sl.numRows()

	sl.rowPos = make([]int, n+1)
	sl.baselines = make([]int, n)
	sl.rowPos[0] = sl.vBorderSpacingBeforeFirstRow()

	var rowSpanCells []bo.CellID
	sl.isAnyRowCollapsed = false

	for r := 0; r < n; r++ {
		sl.baselines[r] = -1
		baselineDescent := 0

		if !sl.isAnyRowCollapsed {
			sl.isAnyRowCollapsed = sl.rowHasVisibilityCollapse(r)
		}

		if rowHeight := g.RowLogicalHeight(sl.id, r); rowHeight.IsSpecified() {
			// the base size is the largest height from the row and cell styles,
			// row spanning cells excluded
			sl.rowPos[r+1] = utils.MaxInt(sl.rowPos[r]+rowHeight.Resolve(0), 0)
		} else {
			sl.rowPos[r+1] = utils.MaxInt(sl.rowPos[r], 0)
		}

		for c := 0; c < g.NumCols(sl.id, r); c++ {
			gridCell := g.GridCellAt(sl.id, r, c)
			if gridCell.InColSpan {
				continue
			}
			for _, cell := range gridCell.Cells {
				// row spanning cells are handled in their first row,
				// for their baseline
				if g.RowIndex(cell) != r {
					continue
				}
				if g.ResolvedRowSpan(cell) > 1 {
					rowSpanCells = append(rowSpanCells, cell)
				} else {
					sl.rowPos[r+1] = utils.MaxInt(sl.rowPos[r+1], sl.rowPos[r]+tl.logicalHeightForRowSizing(cell))
				}
				sl.updateBaselineForCell(cell, r, &baselineDescent)
			}
		}

		sl.rowPos[r+1] += sl.borderSpacingForRow(r)
		sl.rowPos[r+1] = utils.MaxInt(sl.rowPos[r+1], sl.rowPos[r])
	}

	if len(rowSpanCells) != 0 {
		sl.distributeRowSpanHeightToRows(rowSpanCells)
	}

	// collapsed rows are removed after the distribution of the row spanning
	// cells, which behaves as if the rows were not collapsed
	if sl.isAnyRowCollapsed {
		sl.rowCollapsedHeight = make([]int, n)
		for r := 0; r < n; r++ {
			if sl.rowHasVisibilityCollapse(r) {
				sl.rowCollapsedHeight[r] = sl.rowPos[r+1] - sl.rowPos[r]
			}
		}
		totalCollapsedHeight := 0
		for r := 0; r < n; r++ {
			totalCollapsedHeight += sl.rowCollapsedHeight[r]
			sl.rowPos[r+1] -= totalCollapsedHeight
		}
	} else {
		sl.rowCollapsedHeight = nil
	}

	return sl.rowPos[n]
}

// distributeExtraLogicalHeightToPercentRows gives the extra height to the
// percent rows, until 100% is reached.
func (sl *sectionLayout) distributeExtraLogicalHeightToPercentRows(extra *int, totalPercent utils.Fl) {
	if totalPercent == 0 {
		return
	}
	g := sl.tl.g
	totalRows := sl.numRows()
	totalHeight := sl.rowPos[totalRows] + *extra
	totalAdded := 0
	totalPercent = utils.MinF(totalPercent, 100)
	rowHeight := sl.rowPos[1] - sl.rowPos[0]
	for r := 0; r < totalRows; r++ {
		if logicalHeight := g.RowLogicalHeight(sl.id, r); totalPercent > 0 && logicalHeight.IsPercent() {
			toAdd := utils.MinInt(*extra, int(Fl(totalHeight)*logicalHeight.Value/100)-rowHeight)
			// never shrink the row
			toAdd = utils.MaxInt(0, toAdd)
			totalAdded += toAdd
			*extra -= toAdd
			totalPercent -= logicalHeight.Value
		}
		if r < totalRows-1 {
			rowHeight = sl.rowPos[r+2] - sl.rowPos[r+1]
		}
		sl.rowPos[r+1] += totalAdded
	}
}

func (sl *sectionLayout) distributeExtraLogicalHeightToAutoRows(extra *int, autoRowsCount int) {
	if autoRowsCount == 0 {
		return
	}
	g := sl.tl.g
	totalAdded := 0
	for r := 0; r < sl.numRows(); r++ {
		if autoRowsCount > 0 && g.RowLogicalHeight(sl.id, r).IsAuto() {
			// recomputed for each row to properly distribute the rounding
			extraForRow := *extra / autoRowsCount
			totalAdded += extraForRow
			*extra -= extraForRow
			autoRowsCount--
		}
		sl.rowPos[r+1] += totalAdded
	}
}

// distributeRemainingExtraLogicalHeight gives the extra height to every
// row, proportionally to its height.
func (sl *sectionLayout) distributeRemainingExtraLogicalHeight(extra *int) {
	totalRows := sl.numRows()
	if *extra <= 0 || sl.rowPos[totalRows] == 0 {
		return
	}

	totalAdded := 0
	previousRowPosition := sl.rowPos[0]
	totalRowSize := Fl(sl.rowPos[totalRows] - previousRowPosition)
	if totalRowSize == 0 {
		*extra = 0
		return
	}
	for r := 0; r < totalRows; r++ {
		// weight with the original height
		heightToAdd := Fl(*extra) * Fl(sl.rowPos[r+1]-previousRowPosition) / totalRowSize
		totalAdded = utils.MinInt(totalAdded+utils.Ceil(heightToAdd), *extra)
		previousRowPosition = sl.rowPos[r+1]
		sl.rowPos[r+1] += totalAdded
	}
	*extra -= totalAdded
}

// distributeExtraLogicalHeightToRows grows the rows with [extra],
// returning the height actually used. An empty section followed by
// another one does not take the extra height.
func (sl *sectionLayout) distributeExtraLogicalHeightToRows(extra int, hasNextSibling bool) int {
	if extra == 0 {
		return 0
	}
	totalRows := sl.numRows()
	if totalRows == 0 {
		return 0
	}
	if sl.rowPos[totalRows] == 0 && hasNextSibling {
		return 0
	}

	g := sl.tl.g
	autoRowsCount := 0
	var totalPercent Fl
	for r := 0; r < totalRows; r++ {
		logicalHeight := g.RowLogicalHeight(sl.id, r)
		if logicalHeight.IsAuto() {
			autoRowsCount++
		} else if logicalHeight.IsPercent() {
			totalPercent += logicalHeight.Value
		}
	}

	remaining := extra
	sl.distributeExtraLogicalHeightToPercentRows(&remaining, totalPercent)
	sl.distributeExtraLogicalHeightToAutoRows(&remaining, autoRowsCount)
	sl.distributeRemainingExtraLogicalHeight(&remaining)
	return extra - remaining
}

// setLogicalPositionForCell stores the position of the cell,
// relative to its section.
func (sl *sectionLayout) setLogicalPositionForCell(cell bo.CellID, effectiveColumn int) {
	tl := sl.tl
	g := tl.g
	positions := g.EffectiveColumnPositions()
	hSpacing := tl.hBorderSpacing()
	c := tl.t.Cell(cell)
	c.Y = sl.rowPos[g.RowIndex(cell)]
	if tl.t.Style().Direction == pr.RTL {
		end := g.AbsoluteColumnToEffectiveColumn(g.AbsoluteColumnIndex(cell) + c.ColSpan())
		c.X = positions[g.NumEffectiveColumns()] - positions[end] + hSpacing
	} else {
		c.X = positions[effectiveColumn] + hSpacing
	}
}

// layoutRows sets the geometry of the rows and cells, from the row positions.
func (sl *sectionLayout) layoutRows() {
	tl := sl.tl
	g, t := tl.g, tl.t
	totalRows := sl.numRows()
	section := t.Section(sl.id)

	section.Width = tl.contentWidth()
	vSpacing := tl.vBorderSpacing()

	for r := 0; r < totalRows; r++ {
		rowID := g.RowAt(sl.id, r)
		if rowID == bo.NoRow {
			continue
		}
		row := t.Row(rowID)
		row.X, row.Y = 0, sl.rowPos[r]
		row.Width = section.Width
		rowHeight := 0
		// a collapsed row has no height, and its spacing
		// has already been removed
		if !sl.rowHasVisibilityCollapse(r) {
			rowHeight = sl.rowPos[r+1] - sl.rowPos[r] - vSpacing
		}
		row.Height = utils.MaxInt(rowHeight, 0)
		row.Baseline = utils.MaxInt(sl.baselines[r], 0)
	}

	// vertically align the cells in each row
	for r := 0; r < totalRows; r++ {
		rowID := g.RowAt(sl.id, r)
		for c := 0; c < g.NumCols(sl.id, r); c++ {
			cell := g.OriginatingCellAt(sl.id, r, c)
			if cell == bo.NoCell {
				continue
			}

			rowSpan := utils.MaxInt(1, g.ResolvedRowSpan(cell))
			endRowIndex := utils.MinInt(r+rowSpan, totalRows) - 1
			lastRowID := g.RowAt(sl.id, endRowIndex)
			var rHeight int
			if lastRowID != bo.NoRow && rowID != bo.NoRow {
				row, lastRow := t.Row(rowID), t.Row(lastRowID)
				rHeight = lastRow.Y + lastRow.Height - row.Y
			} else {
				rHeight = sl.rowPos[endRowIndex+1] - sl.rowPos[r] - vSpacing
			}

			collapsedHeight := 0
			if sl.isAnyRowCollapsed {
				for spanning := r; spanning < r+g.ResolvedRowSpan(cell); spanning++ {
					collapsedHeight += sl.rowCollapsedHeight[spanning]
				}
			}

			tl.computeIntrinsicPadding(cell, collapsedHeight, rHeight, utils.MaxInt(sl.baselines[r], 0))
			sl.setLogicalPositionForCell(cell, c)
		}
	}

	section.Height = sl.rowPos[totalRows]
	section.RowPos = append(section.RowPos[:0], sl.rowPos...)
	section.CollapsedHeight = 0
	for _, h := range sl.rowCollapsedHeight {
		section.CollapsedHeight += h
	}
}

// updateLogicalWidthForCollapsedCells removes the width of the
// collapsed columns from the cells.
func (sl *sectionLayout) updateLogicalWidthForCollapsedCells(columnCollapsedWidth []int) {
	tl := sl.tl
	g, t := tl.g, tl.t
	for r := 0; r < sl.numRows(); r++ {
		nCols := g.NumCols(sl.id, r)
		for c := 0; c < nCols; c++ {
			cell := g.OriginatingCellAt(sl.id, r, c)
			if cell == bo.NoCell {
				continue
			}
			cellBox := t.Cell(cell)
			// a cell whose first column is collapsed is collapsed too
			if tl.isAbsoluteColumnCollapsed(g.AbsoluteColumnIndex(cell)) {
				cellBox.Width = 0
			} else if cellBox.ColSpan() > 1 {
				collapsedWidth := 0
				endCol := utils.MinInt(cellBox.ColSpan()+c, nCols)
				for spanning := c; spanning < endCol; spanning++ {
					collapsedWidth += columnCollapsedWidth[spanning]
				}
				cellBox.Width -= collapsedWidth
			}
		}
	}
}

// updatePositionIncreasedWithRowHeight accumulates the share of [extraHeight]
// for a row of [rowHeight], keeping the fractional part in [remainder].
func updatePositionIncreasedWithRowHeight(extraHeight int, rowHeight, totalHeight float64,
	accumulatedPositionIncrease *int, remainder *float64,
) {
	proportional := *remainder + float64(extraHeight)*rowHeight/totalHeight
	// push the values close to a whole number, lost by floating point imprecision
	increase := int(proportional + 0.000001)
	*accumulatedPositionIncrease += increase
	*remainder = proportional - float64(increase)
}
