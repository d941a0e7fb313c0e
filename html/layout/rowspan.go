package layout

import (
	"sort"

	bo "github.com/benoitkugler/tablelayout/html/boxes"
	"github.com/benoitkugler/tablelayout/utils"
)

// spanningRowsHeight stores the heights of the rows spanned by a cell.
type spanningRowsHeight struct {
	rowHeight                         []int
	totalRowsHeight                   int
	spanningCellHeightIgnoringSpacing int
	isAnyRowWithOnlySpanningCells     bool
}

// rowHasOnlySpanningCells is true when every slot of the row
// is covered by a cell spanning more than one row.
func (sl *sectionLayout) rowHasOnlySpanningCells(row int) bool {
	g := sl.tl.g
	n := g.NumCols(sl.id, row)
	if n == 0 {
		return false
	}
	for c := 0; c < n; c++ {
		gridCell := g.GridCellAt(sl.id, row, c)
		// an empty slot is not a spanning cell
		if len(gridCell.Cells) == 0 {
			return false
		}
		if g.ResolvedRowSpan(gridCell.Cells[0]) == 1 {
			return false
		}
	}
	return true
}

func (sl *sectionLayout) populateSpanningRowsHeightFromCell(cell bo.CellID) spanningRowsHeight {
	g := sl.tl.g
	rowSpan := g.ResolvedRowSpan(cell)
	rowIndex := g.RowIndex(cell)

	out := spanningRowsHeight{
		spanningCellHeightIgnoringSpacing: sl.tl.logicalHeightForRowSizing(cell),
		rowHeight:                         make([]int, rowSpan),
	}
	for row := 0; row < rowSpan; row++ {
		actualRow := row + rowIndex
		out.rowHeight[row] = sl.rowPos[actualRow+1] - sl.rowPos[actualRow] - sl.borderSpacingForRow(actualRow)
		if out.rowHeight[row] == 0 {
			out.isAnyRowWithOnlySpanningCells = out.isAnyRowWithOnlySpanningCells || sl.rowHasOnlySpanningCells(actualRow)
		}
		out.totalRowsHeight += out.rowHeight[row]
		out.spanningCellHeightIgnoringSpacing -= sl.borderSpacingForRow(actualRow)
	}
	// the spacing of the last row is not spanned
	out.spanningCellHeightIgnoringSpacing += sl.borderSpacingForRow(rowIndex + rowSpan - 1)
	return out
}

// distributeExtraRowSpanHeightToPercentRows gives the extra height to the
// first percent rows, until 100% is reached.
func (sl *sectionLayout) distributeExtraRowSpanHeightToPercentRows(cell bo.CellID, totalPercent Fl, extra *int, rowsHeight []int) {
	if *extra == 0 || totalPercent == 0 {
		return
	}
	g := sl.tl.g
	rowSpan := g.ResolvedRowSpan(cell)
	rowIndex := g.RowIndex(cell)
	percent := utils.MinF(totalPercent, 100)
	tableHeight := sl.rowPos[sl.numRows()] + *extra

	accumulatedPositionIncrease := 0
	for row := rowIndex; row < rowIndex+rowSpan; row++ {
		if percent > 0 && *extra > 0 {
			if logicalHeight := g.RowLogicalHeight(sl.id, row); logicalHeight.IsPercent() {
				toAdd := int(Fl(tableHeight)*utils.MinF(logicalHeight.Value, percent)/100) - rowsHeight[row-rowIndex]
				toAdd = utils.MaxInt(utils.MinInt(toAdd, *extra), 0)
				accumulatedPositionIncrease += toAdd
				*extra -= toAdd
				percent -= logicalHeight.Value
			}
		}
		sl.rowPos[row+1] += accumulatedPositionIncrease
	}
}

// distributeWholeExtraRowSpanHeightToPercentRows is used when only percent
// rows have a height: the extra height is shared following the percentages.
func (sl *sectionLayout) distributeWholeExtraRowSpanHeightToPercentRows(cell bo.CellID, totalPercent Fl, extra *int) {
	if *extra == 0 || totalPercent == 0 {
		return
	}
	g := sl.tl.g
	rowSpan := g.ResolvedRowSpan(cell)
	rowIndex := g.RowIndex(cell)
	var remainder float64

	accumulatedPositionIncrease := 0
	for row := rowIndex; row < rowIndex+rowSpan; row++ {
		if logicalHeight := g.RowLogicalHeight(sl.id, row); logicalHeight.IsPercent() {
			updatePositionIncreasedWithRowHeight(*extra, float64(logicalHeight.Value), float64(totalPercent),
				&accumulatedPositionIncrease, &remainder)
		}
		sl.rowPos[row+1] += accumulatedPositionIncrease
	}
	*extra -= accumulatedPositionIncrease
}

// distributeExtraRowSpanHeightToAutoRows keeps the ratios between the auto rows.
func (sl *sectionLayout) distributeExtraRowSpanHeightToAutoRows(cell bo.CellID, totalAutoRowsHeight int, extra *int, rowsHeight []int) {
	if *extra == 0 || totalAutoRowsHeight == 0 {
		return
	}
	g := sl.tl.g
	rowSpan := g.ResolvedRowSpan(cell)
	rowIndex := g.RowIndex(cell)
	accumulatedPositionIncrease := 0
	var remainder float64

	for row := rowIndex; row < rowIndex+rowSpan; row++ {
		if g.RowLogicalHeight(sl.id, row).IsAuto() {
			updatePositionIncreasedWithRowHeight(*extra, float64(rowsHeight[row-rowIndex]), float64(totalAutoRowsHeight),
				&accumulatedPositionIncrease, &remainder)
		}
		sl.rowPos[row+1] += accumulatedPositionIncrease
	}
	*extra -= accumulatedPositionIncrease
}

// distributeExtraRowSpanHeightToRemainingRows keeps the ratios between
// the non percent rows.
func (sl *sectionLayout) distributeExtraRowSpanHeightToRemainingRows(cell bo.CellID, totalRemainingRowsHeight int, extra *int, rowsHeight []int) {
	if *extra == 0 || totalRemainingRowsHeight == 0 {
		return
	}
	g := sl.tl.g
	rowSpan := g.ResolvedRowSpan(cell)
	rowIndex := g.RowIndex(cell)
	accumulatedPositionIncrease := 0
	var remainder float64

	for row := rowIndex; row < rowIndex+rowSpan; row++ {
		if !g.RowLogicalHeight(sl.id, row).IsPercent() {
			updatePositionIncreasedWithRowHeight(*extra, float64(rowsHeight[row-rowIndex]), float64(totalRemainingRowsHeight),
				&accumulatedPositionIncrease, &remainder)
		}
		sl.rowPos[row+1] += accumulatedPositionIncrease
	}
	*extra -= accumulatedPositionIncrease
}

// cellIsFullyIncludedInOtherCell is true if the rows of cell1
// are included in the rows of cell2.
func (sl *sectionLayout) cellIsFullyIncludedInOtherCell(cell1, cell2 bo.CellID) bool {
	g := sl.tl.g
	r1, r2 := g.RowIndex(cell1), g.RowIndex(cell2)
	return r1 >= r2 && r1+g.ResolvedRowSpan(cell1) <= r2+g.ResolvedRowSpan(cell2)
}

// lessInHeightDistributionOrder sorts the row spanning cells so that
// unneeded distributions are avoided:
//   - for cells with the same rows, the highest first, since the smaller
//     ones are then skipped
//   - inner cells first, since the outer ones then adjust to them
//   - lower row index first, so that the rows grow in sequence
func (sl *sectionLayout) lessInHeightDistributionOrder(cell1, cell2 bo.CellID) bool {
	g := sl.tl.g
	r1, r2 := g.RowIndex(cell1), g.RowIndex(cell2)
	if r1 == r2 && g.ResolvedRowSpan(cell1) == g.ResolvedRowSpan(cell2) {
		return sl.tl.logicalHeightForRowSizing(cell1) > sl.tl.logicalHeightForRowSizing(cell2)
	}
	if sl.cellIsFullyIncludedInOtherCell(cell1, cell2) {
		return true
	}
	if !sl.cellIsFullyIncludedInOtherCell(cell2, cell1) {
		return r1 < r2
	}
	return false
}

// calcRowHeightHavingOnlySpanningCells returns the height of a row whose
// slots are all covered by row spanning cells, which would otherwise be 0.
func (sl *sectionLayout) calcRowHeightHavingOnlySpanningCells(row int, accumulatedCellPositionIncrease int,
	rowToApplyExtraHeight int, extraTableHeightToPropagate int, rowsCountWithOnlySpanningCells []int,
) int {
	g := sl.tl.g
	rowHeight := 0

	for c := 0; c < g.NumCols(sl.id, row); c++ {
		cell := g.GridCellAt(sl.id, row, c).Cells[0]
		cellRowIndex := g.RowIndex(cell)
		cellRowSpan := g.ResolvedRowSpan(cell)

		// the rows above are already processed: only count the rows
		// with spanning cells from the current one
		startRowForSpanningCellCount := utils.MaxInt(cellRowIndex, row)
		endRow := cellRowIndex + cellRowSpan
		spanningCellsRowsCountHavingZeroHeight := rowsCountWithOnlySpanningCells[endRow-1]
		if startRowForSpanningCellCount != 0 {
			spanningCellsRowsCountHavingZeroHeight -= rowsCountWithOnlySpanningCells[startRowForSpanningCellCount-1]
		}

		totalRowSpanCellHeight := sl.rowPos[endRow] - sl.rowPos[cellRowIndex] - sl.borderSpacingForRow(endRow-1)
		totalRowSpanCellHeight += accumulatedCellPositionIncrease
		if rowToApplyExtraHeight >= cellRowIndex && rowToApplyExtraHeight < endRow {
			totalRowSpanCellHeight += extraTableHeightToPropagate
		}

		if required := sl.tl.logicalHeightForRowSizing(cell); totalRowSpanCellHeight < required && spanningCellsRowsCountHavingZeroHeight > 0 {
			extraHeightRequired := required - totalRowSpanCellHeight
			rowHeight = utils.MaxInt(rowHeight, extraHeightRequired/spanningCellsRowsCountHavingZeroHeight)
		}
	}
	return rowHeight
}

func (sl *sectionLayout) updateRowsHeightHavingOnlySpanningCells(cell bo.CellID, srh *spanningRowsHeight,
	extraHeightToPropagate int, rowsCountWithOnlySpanningCells []int,
) {
	g := sl.tl.g
	accumulatedPositionIncrease := 0
	rowSpan := g.ResolvedRowSpan(cell)
	rowIndex := g.RowIndex(cell)

	for row := range srh.rowHeight {
		actualRow := row + rowIndex
		if srh.rowHeight[row] == 0 && sl.rowHasOnlySpanningCells(actualRow) {
			srh.rowHeight[row] = sl.calcRowHeightHavingOnlySpanningCells(actualRow, accumulatedPositionIncrease,
				rowIndex+rowSpan, extraHeightToPropagate, rowsCountWithOnlySpanningCells)
			accumulatedPositionIncrease += srh.rowHeight[row]
		}
		sl.rowPos[actualRow+1] += accumulatedPositionIncrease
	}
	srh.totalRowsHeight += accumulatedPositionIncrease
}

// distributeRowSpanHeightToRows grows the rows spanned by a cell
// higher than them, following the ratios of the rows heights.
func (sl *sectionLayout) distributeRowSpanHeightToRows(rowSpanCells []bo.CellID) {
	g := sl.tl.g
	sort.SliceStable(rowSpanCells, func(i, j int) bool {
		return sl.lessInHeightDistributionOrder(rowSpanCells[i], rowSpanCells[j])
	})

	extraHeightToPropagate := 0
	lastRowIndex, lastRowSpan := 0, 0

	// at this stage, the rows with only spanning cells have no height
	n := sl.numRows()
	rowsCountWithOnlySpanningCells := make([]int, n)
	count := 0
	for row := 0; row < n; row++ {
		if sl.rowHasOnlySpanningCells(row) {
			count++
		}
		rowsCountWithOnlySpanningCells[row] = count
	}

	for _, cell := range rowSpanCells {
		rowIndex := g.RowIndex(cell)
		rowSpan := g.ResolvedRowSpan(cell)

		spanningCellEndIndex := rowIndex + rowSpan
		lastSpanningCellEndIndex := lastRowIndex + lastRowSpan

		// only the highest spanning cell distributes its extra height
		// among cells spanning the same rows
		if rowIndex == lastRowIndex && rowSpan == lastRowSpan {
			continue
		}

		originalBeforePosition := sl.rowPos[spanningCellEndIndex]

		// the previous cell ending at the same row has already moved
		// its last row
		if spanningCellEndIndex == lastSpanningCellEndIndex {
			originalBeforePosition -= extraHeightToPropagate
		}

		if extraHeightToPropagate != 0 {
			for row := lastSpanningCellEndIndex + 1; row <= spanningCellEndIndex; row++ {
				sl.rowPos[row] += extraHeightToPropagate
			}
		}

		lastRowIndex, lastRowSpan = rowIndex, rowSpan

		srh := sl.populateSpanningRowsHeightFromCell(cell)

		if srh.isAnyRowWithOnlySpanningCells {
			sl.updateRowsHeightHavingOnlySpanningCells(cell, &srh, extraHeightToPropagate, rowsCountWithOnlySpanningCells)
		}

		// the spanned rows have no height (they contain an empty slot):
		// the whole height goes to the last row, to avoid overlapping content
		if srh.totalRowsHeight == 0 {
			if srh.spanningCellHeightIgnoringSpacing != 0 {
				sl.rowPos[spanningCellEndIndex] += srh.spanningCellHeightIgnoringSpacing + sl.borderSpacingForRow(spanningCellEndIndex-1)
			}
			extraHeightToPropagate = sl.rowPos[spanningCellEndIndex] - originalBeforePosition
			continue
		}

		if srh.spanningCellHeightIgnoringSpacing <= srh.totalRowsHeight {
			extraHeightToPropagate = sl.rowPos[spanningCellEndIndex] - originalBeforePosition
			continue
		}

		var totalPercent Fl
		totalAutoRowsHeight := 0
		totalRemainingRowsHeight := srh.totalRowsHeight
		for row := rowIndex; row < spanningCellEndIndex; row++ {
			logicalHeight := g.RowLogicalHeight(sl.id, row)
			if logicalHeight.IsPercent() {
				totalPercent += logicalHeight.Value
				totalRemainingRowsHeight -= srh.rowHeight[row-rowIndex]
			} else if logicalHeight.IsAuto() {
				totalAutoRowsHeight += srh.rowHeight[row-rowIndex]
			}
		}

		extraRowSpanningHeight := srh.spanningCellHeightIgnoringSpacing - srh.totalRowsHeight

		if totalPercent < 100 && totalAutoRowsHeight == 0 && totalRemainingRowsHeight == 0 {
			// only the percent rows have a height
			sl.distributeWholeExtraRowSpanHeightToPercentRows(cell, totalPercent, &extraRowSpanningHeight)
		} else {
			sl.distributeExtraRowSpanHeightToPercentRows(cell, totalPercent, &extraRowSpanningHeight, srh.rowHeight)
			sl.distributeExtraRowSpanHeightToAutoRows(cell, totalAutoRowsHeight, &extraRowSpanningHeight, srh.rowHeight)
			sl.distributeExtraRowSpanHeightToRemainingRows(cell, totalRemainingRowsHeight, &extraRowSpanningHeight, srh.rowHeight)
		}

		// rounding losses, or rows that none of the passes could grow
		// (0% rows, for instance): the last spanned row takes the rest
		if extraRowSpanningHeight > 0 {
			sl.rowPos[spanningCellEndIndex] += extraRowSpanningHeight
		}

		extraHeightToPropagate = sl.rowPos[spanningCellEndIndex] - originalBeforePosition
	}

	if extraHeightToPropagate != 0 {
		// move the rows below the last spanning cell
		for row := lastRowIndex + lastRowSpan + 1; row <= n; row++ {
			sl.rowPos[row] += extraHeightToPropagate
		}
	}
}
