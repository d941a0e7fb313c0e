package layout

import (
	"fmt"
	"math"
	"slices"

	pr "github.com/benoitkugler/tablelayout/css/properties"
	bo "github.com/benoitkugler/tablelayout/html/boxes"
	"github.com/benoitkugler/tablelayout/utils"
)

type Fl = utils.Fl

const (
	// All browsers implement a size limit on the cell's max width,
	// based on a 16 bits representation.
	cellMaxWidth = 32760

	// tableMaxWidth is used as an "infinite" width when the percent
	// columns leave no room for the other ones.
	tableMaxWidth = 1000000
)

// columnLayout stores the widths collected for one effective column.
type columnLayout struct {
	logicalWidth    pr.Dimension
	minLogicalWidth int
	maxLogicalWidth int

	// the "effective" values take the spanning cells into account
	effectiveLogicalWidth    pr.Dimension
	effectiveMinLogicalWidth int
	effectiveMaxLogicalWidth int

	computedLogicalWidth int

	emptyCellsOnly   bool
	columnHasNoCells bool
}

func newColumnLayout() columnLayout {
	return columnLayout{emptyCellsOnly: true, columnHasNoCells: true}
}

func (cl *columnLayout) clampedEffectiveMaxLogicalWidth() int {
	return utils.MaxInt(1, cl.effectiveMaxLogicalWidth)
}

// autoTableLayout implements the automatic table layout
// (see https://www.w3.org/TR/CSS21/tables.html#auto-table-layout),
// as specified by the behavior of the major browsers.
type autoTableLayout struct {
	tl *tableLayout

	layoutStruct []columnLayout
	// cells spanning more than one column, sorted by increasing colspan
	spanCells []bo.CellID

	hasPercent                 bool
	effectiveLogicalWidthDirty bool
	scaledWidth                int
}

func (al *autoTableLayout) scaledWidthFromPercentColumns() int { return al.scaledWidth }

// recalcColumn collects the widths of the cells starting in [effCol].
func (al *autoTableLayout) recalcColumn(effCol int) {
	tl := al.tl
	g, t := tl.g, tl.t
	column := &al.layoutStruct[effCol]
	maxContributor := bo.NoCell

	for _, section := range t.SectionsDOM() {
		for i := 0; i < g.NumRows(section); i++ {
			if effCol >= g.NumCols(section, i) {
				continue
			}
			gridCell := g.GridCellAt(section, i, effCol)
			cell := gridCell.PrimaryCell()
			if gridCell.InColSpan || cell == bo.NoCell {
				continue
			}
			column.columnHasNoCells = false

			cellMin, cellMax := tl.cellPreferredWidths(cell)
			if cellMax != 0 {
				column.emptyCellsOnly = false
			}

			if t.Cell(cell).ColSpan() == 1 {
				column.minLogicalWidth = utils.MaxInt(cellMin, column.minLogicalWidth)
				if cellMax > column.maxLogicalWidth {
					column.maxLogicalWidth = cellMax
					maxContributor = cell
				}

				width := tl.styleOrColLogicalWidth(cell)
				if width.Value > cellMaxWidth {
					width = pr.FixedPx(cellMaxWidth)
				}
				if width.IsNegative() {
					width = pr.FixedPx(0)
				}
				switch width.Unit {
				case pr.Px:
					// ignore width=0
					if width.IsPositive() && !column.logicalWidth.IsPercent() {
						logicalWidth := tl.adjustCellWidthForBoxSizing(cell, width.Int())
						if column.logicalWidth.IsFixed() {
							// Nav/IE weirdness
							if logicalWidth > column.logicalWidth.Int() ||
								(column.logicalWidth.Int() == logicalWidth && maxContributor == cell) {
								column.logicalWidth = pr.FixedPx(logicalWidth)
							}
						} else {
							column.logicalWidth = pr.FixedPx(logicalWidth)
						}
					}
				case pr.Perc:
					al.hasPercent = true
					if width.IsPositive() && (!column.logicalWidth.IsPercent() || width.Value > column.logicalWidth.Value) {
						column.logicalWidth = width
					}
				}
			} else if effCol == 0 || g.PrimaryCellAt(section, i, effCol-1) != cell {
				// the spanning cell originates in this column:
				// make sure it gets at least 1px
				if cellMax != 0 {
					column.minLogicalWidth = utils.MaxInt(column.minLogicalWidth, 1)
				}
				al.insertSpanCell(cell)
			}
		}
	}

	column.maxLogicalWidth = utils.MaxInt(column.maxLogicalWidth, column.minLogicalWidth)
}

// insertSpanCell keeps the spanning cells sorted by increasing colspan.
func (al *autoTableLayout) insertSpanCell(cell bo.CellID) {
	t := al.tl.t
	span := t.Cell(cell).ColSpan()
	pos := 0
	for pos < len(al.spanCells) && span > t.Cell(al.spanCells[pos]).ColSpan() {
		pos++
	}
	al.spanCells = slices.Insert(al.spanCells, pos, cell)
}

func (al *autoTableLayout) fullRecalc() {
	tl := al.tl
	g, t := tl.g, tl.t
	al.hasPercent = false
	al.effectiveLogicalWidthDirty = true

	nEffCols := g.NumEffectiveColumns()
	al.layoutStruct = make([]columnLayout, nEffCols)
	for i := range al.layoutStruct {
		al.layoutStruct[i] = newColumnLayout()
	}
	al.spanCells = al.spanCells[:0]

	var groupLogicalWidth pr.Dimension
	currentColumn := 0
	for _, id := range tl.columnElements {
		column := t.Column(id)
		if column.IsGroup() && len(column.Children()) != 0 {
			groupLogicalWidth = column.Style().Width
		} else {
			colLogicalWidth := column.Style().Width
			if colLogicalWidth.IsAuto() {
				colLogicalWidth = groupLogicalWidth
			}
			if colLogicalWidth.IsSpecified() && colLogicalWidth.IsZero() {
				colLogicalWidth = pr.Dimension{}
			}
			effCol := g.AbsoluteColumnToEffectiveColumn(currentColumn)
			span := column.Span()
			if !colLogicalWidth.IsAuto() && span == 1 && effCol < nEffCols && g.SpanOfEffectiveColumn(effCol) == 1 {
				cl := &al.layoutStruct[effCol]
				cl.logicalWidth = colLogicalWidth
				if colLogicalWidth.IsFixed() && cl.maxLogicalWidth < colLogicalWidth.Int() {
					cl.maxLogicalWidth = colLogicalWidth.Int()
				}
			}
			currentColumn += span
		}

		// the group width does not apply past its last column
		if !column.IsGroup() && isLastSibling(t, id) {
			groupLogicalWidth = pr.Dimension{}
		}
	}

	for i := 0; i < nEffCols; i++ {
		al.recalcColumn(i)
	}
}

// shouldScaleColumns is true unless the table is nested in a cell
// and its width is not fixed.
func (al *autoTableLayout) shouldScaleColumns() bool {
	width := al.tl.t.Style().Width
	if width.IsFixed() {
		return true
	}
	return !al.tl.opts.Nested
}

func (al *autoTableLayout) computeIntrinsicLogicalWidths() (minWidth, maxWidth int) {
	al.fullRecalc()

	spanMaxLogicalWidth := al.calcEffectiveLogicalWidth()
	var maxPercent, maxNonPercent Fl
	scaleColumns := al.shouldScaleColumns()

	remainingPercent := Fl(100)
	for i := range al.layoutStruct {
		cl := &al.layoutStruct[i]
		minWidth += cl.effectiveMinLogicalWidth
		maxWidth += cl.effectiveMaxLogicalWidth
		if !scaleColumns {
			continue
		}
		if cl.effectiveLogicalWidth.IsPercent() {
			percent := utils.MinF(cl.effectiveLogicalWidth.Value, remainingPercent)
			// when percent columns meet or exceed 100% and there are remaining
			// columns, use an artificially high max width
			logicalWidth := Fl(tableMaxWidth)
			if percent > 0 {
				logicalWidth = Fl(cl.effectiveMaxLogicalWidth) * 100 / percent
			}
			maxPercent = utils.MaxF(logicalWidth, maxPercent)
			remainingPercent -= percent
		} else {
			maxNonPercent += Fl(cl.effectiveMaxLogicalWidth)
		}
	}

	if scaleColumns {
		if maxNonPercent != 0 {
			if remainingPercent > 0 {
				maxNonPercent = maxNonPercent * 100 / remainingPercent
			} else {
				maxNonPercent = tableMaxWidth
			}
		}
		al.scaledWidth = int(utils.MinF(tableMaxWidth, utils.MaxF(maxPercent, maxNonPercent)))
		if al.scaledWidth > maxWidth && !al.tl.opts.Nested {
			maxWidth = al.scaledWidth
		}
	}

	maxWidth = utils.MaxInt(maxWidth, spanMaxLogicalWidth)
	return minWidth, maxWidth
}

func (al *autoTableLayout) applyPreferredLogicalWidthQuirks(minWidth, maxWidth int) (int, int) {
	st := al.tl.t.Style()
	if !(st.Width.IsFixed() && st.Width.IsPositive()) {
		return minWidth, maxWidth
	}
	// minWidth is the size of the content: never go below it
	minContentWidth := minWidth
	minWidth = utils.MaxInt(minWidth, st.Width.Int())
	maxWidth = minWidth
	if st.MaxWidth.IsFixed() && !st.MaxWidth.IsNegative() {
		minWidth = utils.MinInt(minWidth, st.MaxWidth.Int())
		minWidth = utils.MaxInt(minWidth, minContentWidth)
		maxWidth = minWidth
	}
	return minWidth, maxWidth
}

// calcEffectiveLogicalWidth spreads the widths of the spanning cells over
// the columns they span, and returns the table max width required by the
// percent spanning cells.
func (al *autoTableLayout) calcEffectiveLogicalWidth() int {
	tl := al.tl
	g, t := tl.g, tl.t
	maxLogicalWidth := 0

	nEffCols := len(al.layoutStruct)
	spacing := tl.hBorderSpacing()

	for i := range al.layoutStruct {
		cl := &al.layoutStruct[i]
		cl.effectiveLogicalWidth = cl.logicalWidth
		cl.effectiveMinLogicalWidth = cl.minLogicalWidth
		cl.effectiveMaxLogicalWidth = cl.maxLogicalWidth
	}

	ls := al.layoutStruct
	for _, cell := range al.spanCells {
		span := t.Cell(cell).ColSpan()

		cellLogicalWidth := tl.styleOrColLogicalWidth(cell)
		if cellLogicalWidth.IsZero() {
			cellLogicalWidth = pr.Dimension{}
		}

		effCol := g.AbsoluteColumnToEffectiveColumn(g.AbsoluteColumnIndex(cell))
		lastCol := effCol
		cellMin, cellMax := tl.cellPreferredWidths(cell)
		cellMinLogicalWidth := cellMin + spacing
		cellMaxLogicalWidth := cellMax + spacing
		var totalPercent Fl
		spanMinLogicalWidth, spanMaxLogicalWidth := 0, 0
		allColsArePercent, allColsAreFixed := true, true
		haveAuto := false
		spanHasEmptyCellsOnly := true
		fixedWidth := 0
		for lastCol < nEffCols && span > 0 {
			cl := &ls[lastCol]
			switch {
			case cl.logicalWidth.IsPercent():
				totalPercent += cl.logicalWidth.Value
				allColsAreFixed = false
			case cl.logicalWidth.IsFixed() && cl.logicalWidth.Value > 0:
				fixedWidth += cl.logicalWidth.Int()
				allColsArePercent = false
			default:
				if cl.logicalWidth.IsAuto() || cl.logicalWidth.IsFixed() {
					haveAuto = true
				}
				// a spanning cell does not overwrite a percent column
				if !cl.effectiveLogicalWidth.IsPercent() {
					cl.effectiveLogicalWidth = pr.Dimension{}
					allColsArePercent = false
				} else {
					totalPercent += cl.effectiveLogicalWidth.Value
				}
				allColsAreFixed = false
			}
			if !cl.emptyCellsOnly {
				spanHasEmptyCellsOnly = false
			}
			span -= g.SpanOfEffectiveColumn(lastCol)
			spanMinLogicalWidth += cl.effectiveMinLogicalWidth
			spanMaxLogicalWidth += cl.effectiveMaxLogicalWidth
			lastCol++
			cellMinLogicalWidth -= spacing
			cellMaxLogicalWidth -= spacing
		}

		// adjust table max width if needed
		if cellLogicalWidth.IsPercent() {
			if totalPercent >= cellLogicalWidth.Value || allColsArePercent {
				// can't satisfy this condition, treat as variable
				cellLogicalWidth = pr.Dimension{}
			} else {
				spanMax := utils.MaxInt(spanMaxLogicalWidth, cellMaxLogicalWidth)
				maxLogicalWidth = utils.MaxInt(maxLogicalWidth, int(Fl(spanMax)*100/cellLogicalWidth.Value))

				// all non percent columns in the span get percent values
				// to sum up correctly
				percentMissing := cellLogicalWidth.Value - totalPercent
				totalWidth := 0
				for pos := effCol; pos < lastCol; pos++ {
					if !ls[pos].effectiveLogicalWidth.IsPercent() {
						totalWidth += ls[pos].clampedEffectiveMaxLogicalWidth()
					}
				}
				for pos := effCol; pos < lastCol && totalWidth > 0; pos++ {
					if !ls[pos].effectiveLogicalWidth.IsPercent() {
						percent := percentMissing * Fl(ls[pos].effectiveMaxLogicalWidth) / Fl(totalWidth)
						totalWidth -= ls[pos].clampedEffectiveMaxLogicalWidth()
						percentMissing -= percent
						if percent > 0 {
							ls[pos].effectiveLogicalWidth = pr.Percent(percent)
						} else {
							ls[pos].effectiveLogicalWidth = pr.Dimension{}
						}
					}
				}
			}
		}

		// make sure min and max widths of the spanning cell are honoured
		if cellMinLogicalWidth > spanMinLogicalWidth {
			switch {
			case allColsAreFixed:
				for pos := effCol; fixedWidth > 0 && pos < lastCol; pos++ {
					colWidth := ls[pos].logicalWidth.Int()
					colLogicalWidth := utils.MaxInt(ls[pos].effectiveMinLogicalWidth,
						int(Fl(cellMinLogicalWidth)*Fl(colWidth)/Fl(fixedWidth)))
					fixedWidth -= colWidth
					cellMinLogicalWidth -= colLogicalWidth
					ls[pos].effectiveMinLogicalWidth = colLogicalWidth
				}
			case allColsArePercent:
				// split the min and max widths following the percentages
				allocatedMin, allocatedMax := 0, 0
				for pos := effCol; pos < lastCol; pos++ {
					percent := ls[pos].effectiveLogicalWidth.Value
					if ls[pos].logicalWidth.IsPercent() {
						percent = ls[pos].logicalWidth.Value
					}
					columnMin := int(percent * Fl(cellMinLogicalWidth) / totalPercent)
					columnMax := int(percent * Fl(cellMaxLogicalWidth) / totalPercent)
					ls[pos].effectiveMinLogicalWidth = utils.MaxInt(ls[pos].effectiveMinLogicalWidth, columnMin)
					columnMax = utils.MaxInt(columnMax, columnMin)
					ls[pos].effectiveMaxLogicalWidth = utils.MaxInt(ls[pos].effectiveMaxLogicalWidth, columnMax)
					allocatedMin += columnMin
					allocatedMax += columnMax
				}
				cellMinLogicalWidth -= allocatedMin
				cellMaxLogicalWidth -= allocatedMax
			default:
				remainingMax := spanMaxLogicalWidth
				remainingMin := spanMinLogicalWidth

				// give min to variable first, to fixed second, and to others third
				isFixedFirst := func(pos int) bool {
					return ls[pos].logicalWidth.IsFixed() && haveAuto && fixedWidth <= cellMinLogicalWidth
				}
				for pos := effCol; remainingMax >= 0 && pos < lastCol; pos++ {
					if isFixedFirst(pos) {
						colMin := utils.MaxInt(ls[pos].effectiveMinLogicalWidth, ls[pos].logicalWidth.Int())
						fixedWidth -= ls[pos].logicalWidth.Int()
						remainingMin -= ls[pos].effectiveMinLogicalWidth
						remainingMax -= ls[pos].effectiveMaxLogicalWidth
						cellMinLogicalWidth -= colMin
						ls[pos].effectiveMinLogicalWidth = colMin
					}
				}

				for pos := effCol; remainingMax >= 0 && pos < lastCol && remainingMin < cellMinLogicalWidth; pos++ {
					if isFixedFirst(pos) {
						continue
					}
					share := cellMinLogicalWidth
					if remainingMax != 0 {
						share = int(Fl(cellMinLogicalWidth) * Fl(ls[pos].effectiveMaxLogicalWidth) / Fl(remainingMax))
					}
					colMin := utils.MaxInt(ls[pos].effectiveMinLogicalWidth, share)
					colMin = utils.MinInt(ls[pos].effectiveMinLogicalWidth+(cellMinLogicalWidth-remainingMin), colMin)
					remainingMax -= ls[pos].effectiveMaxLogicalWidth
					remainingMin -= ls[pos].effectiveMinLogicalWidth
					cellMinLogicalWidth -= colMin
					ls[pos].effectiveMinLogicalWidth = colMin
				}
			}
		}

		if !cellLogicalWidth.IsPercent() {
			if cellMaxLogicalWidth > spanMaxLogicalWidth {
				for pos := effCol; spanMaxLogicalWidth >= 0 && pos < lastCol; pos++ {
					share := cellMaxLogicalWidth
					if spanMaxLogicalWidth != 0 {
						share = int(Fl(cellMaxLogicalWidth) * Fl(ls[pos].effectiveMaxLogicalWidth) / Fl(spanMaxLogicalWidth))
					}
					colMax := utils.MaxInt(ls[pos].effectiveMaxLogicalWidth, share)
					spanMaxLogicalWidth -= ls[pos].effectiveMaxLogicalWidth
					cellMaxLogicalWidth -= colMax
					ls[pos].effectiveMaxLogicalWidth = colMax
				}
			}
		} else {
			for pos := effCol; pos < lastCol; pos++ {
				ls[pos].maxLogicalWidth = utils.MaxInt(ls[pos].maxLogicalWidth, ls[pos].minLogicalWidth)
			}
		}

		// treat span ranges consisting of empty cells only as if they had content
		if spanHasEmptyCellsOnly {
			for pos := effCol; pos < lastCol; pos++ {
				ls[pos].emptyCellsOnly = false
			}
		}
	}
	al.effectiveLogicalWidthDirty = false

	return utils.MinInt(maxLogicalWidth, math.MaxInt32/2)
}

type cellsToProcess uint8

const (
	allCells cellsToProcess = iota
	emptyCells
	nonEmptyCells
)

type distributionMode uint8

const (
	initialWidth distributionMode = iota
	extraWidth
	leftoverWidth
)

// distributeWidthToColumns gives [available] to the columns of type
// [lengthType], proportionally to their factor, [total] being the sum
// of the factors.
func (al *autoTableLayout) distributeWidthToColumns(available *int, total Fl, lengthType pr.Unit,
	cells cellsToProcess, mode distributionMode, startToEnd bool,
) {
	n := len(al.layoutStruct)
	for k := 0; k < n; k++ {
		i := k
		if !startToEnd {
			i = n - 1 - k
		}
		cl := &al.layoutStruct[i]
		logicalWidth := cl.effectiveLogicalWidth
		if cells == nonEmptyCells && logicalWidth.IsAuto() && cl.emptyCellsOnly {
			continue
		}
		// avoid the columns existing only to flesh out a colspan
		if cells == emptyCells && logicalWidth.IsAuto() && (!cl.emptyCellsOnly || cl.columnHasNoCells) {
			continue
		}
		if mode != leftoverWidth && logicalWidth.Unit != lengthType {
			continue
		}

		factor := Fl(1)
		if mode != leftoverWidth {
			if lengthType == pr.Perc {
				factor = logicalWidth.Value
			} else {
				factor = Fl(cl.clampedEffectiveMaxLogicalWidth())
			}
		}

		newWidth := int(Fl(*available) * factor / total)
		cellLogicalWidth := newWidth
		if mode == initialWidth {
			cellLogicalWidth = utils.MaxInt(cl.computedLogicalWidth, newWidth)
		}
		*available -= cellLogicalWidth
		total -= factor
		if mode == initialWidth {
			cl.computedLogicalWidth = cellLogicalWidth
		} else {
			cl.computedLogicalWidth += cellLogicalWidth
		}

		// stop when running out of width
		if lengthType == pr.Perc && (*available == 0 || total == 0) {
			return
		}
		if lengthType == pr.Auto && total == 0 {
			return
		}
	}
}

// shrinkColumnWidth reduces the columns of type [lengthType] according to
// the difference between their width and their min width, starting from
// the last one.
func (al *autoTableLayout) shrinkColumnWidth(lengthType pr.Unit, available *int) {
	ls := al.layoutStruct
	widthBeyondMin := 0
	for i := len(ls) - 1; i >= 0; i-- {
		if ls[i].effectiveLogicalWidth.Unit == lengthType {
			widthBeyondMin += ls[i].computedLogicalWidth - ls[i].effectiveMinLogicalWidth
		}
	}

	for i := len(ls) - 1; i >= 0 && widthBeyondMin > 0; i-- {
		if ls[i].effectiveLogicalWidth.Unit != lengthType {
			continue
		}
		minMaxDiff := ls[i].computedLogicalWidth - ls[i].effectiveMinLogicalWidth
		reduce := *available * minMaxDiff / widthBeyondMin
		ls[i].computedLogicalWidth += reduce
		*available -= reduce
		widthBeyondMin -= minMaxDiff
		if *available >= 0 {
			break
		}
	}
}

// updateLayout computes the column widths for the table width,
// and stores the column positions.
func (al *autoTableLayout) updateLayout() {
	tl := al.tl
	g := tl.g
	tableLogicalWidth := tl.width - tl.bordersPaddingAndSpacingInRowDirection()
	available := tableLogicalWidth
	nEffCols := g.NumEffectiveColumns()

	if nEffCols != len(al.layoutStruct) {
		al.fullRecalc()
	}
	if al.effectiveLogicalWidthDirty {
		al.calcEffectiveLogicalWidth()
	}

	havePercent := false
	numAuto, numFixed := 0, 0
	var totalAuto, totalFixed, totalPercent Fl
	allocAuto := 0
	numAutoEmptyCellsOnly := 0

	ls := al.layoutStruct
	// fill up every cell with its min width
	for i := range ls {
		cellLogicalWidth := ls[i].effectiveMinLogicalWidth
		ls[i].computedLogicalWidth = cellLogicalWidth
		available -= cellLogicalWidth
		logicalWidth := ls[i].effectiveLogicalWidth
		switch logicalWidth.Unit {
		case pr.Perc:
			havePercent = true
			totalPercent += logicalWidth.Value
		case pr.Px:
			numFixed++
			totalFixed += Fl(ls[i].clampedEffectiveMaxLogicalWidth())
		case pr.Auto:
			if ls[i].emptyCellsOnly {
				numAutoEmptyCellsOnly++
			} else {
				numAuto++
				totalAuto += Fl(ls[i].clampedEffectiveMaxLogicalWidth())
			}
			if !ls[i].columnHasNoCells {
				allocAuto += cellLogicalWidth
			}
		}
	}

	// allocate width to percent columns
	if available > 0 && havePercent {
		for i := range ls {
			logicalWidth := ls[i].effectiveLogicalWidth
			if logicalWidth.IsPercent() {
				cellLogicalWidth := utils.MaxInt(ls[i].effectiveMinLogicalWidth, logicalWidth.Resolve(tableLogicalWidth))
				available += ls[i].computedLogicalWidth - cellLogicalWidth
				ls[i].computedLogicalWidth = cellLogicalWidth
			}
		}
		if totalPercent > 100 {
			// remove over-allocated space from the last columns
			excess := int(Fl(tableLogicalWidth) * (totalPercent - 100) / 100)
			for i := nEffCols - 1; i >= 0; i-- {
				if ls[i].effectiveLogicalWidth.IsPercent() {
					cellLogicalWidth := ls[i].computedLogicalWidth
					reduction := utils.MinInt(cellLogicalWidth, excess)
					excess -= reduction
					newLogicalWidth := utils.MaxInt(ls[i].effectiveMinLogicalWidth, cellLogicalWidth-reduction)
					available += cellLogicalWidth - newLogicalWidth
					ls[i].computedLogicalWidth = newLogicalWidth
				}
			}
		}
	}

	// then allocate width to fixed columns
	if available > 0 {
		for i := range ls {
			logicalWidth := ls[i].effectiveLogicalWidth
			if logicalWidth.IsFixed() && logicalWidth.Int() > ls[i].computedLogicalWidth {
				available += ls[i].computedLogicalWidth - logicalWidth.Int()
				ls[i].computedLogicalWidth = logicalWidth.Int()
			}
		}
	}

	// give each auto width column its share of the available width,
	// non-empty columns then empty columns
	if available > 0 && (numAuto != 0 || numAutoEmptyCellsOnly != 0) {
		available += allocAuto
		if numAuto != 0 {
			al.distributeWidthToColumns(&available, totalAuto, pr.Auto, nonEmptyCells, initialWidth, true)
		}
		if numAutoEmptyCellsOnly != 0 {
			al.distributeWidthToColumns(&available, Fl(numAutoEmptyCellsOnly), pr.Auto, emptyCells, initialWidth, true)
		}
	}

	// any remaining width expands fixed, percent and non-empty
	// auto columns, in that order
	if available > 0 && numFixed != 0 {
		al.distributeWidthToColumns(&available, totalFixed, pr.Px, allCells, extraWidth, true)
	}
	if available > 0 && al.hasPercent && totalPercent < 100 {
		al.distributeWidthToColumns(&available, totalPercent, pr.Perc, allCells, extraWidth, true)
	}
	if available > 0 && nEffCols > numAutoEmptyCellsOnly {
		total := nEffCols - numAutoEmptyCellsOnly
		// start from the last column, as other browsers do
		al.distributeWidthToColumns(&available, Fl(total), pr.Auto, nonEmptyCells, leftoverWidth, false)
	}

	// if we have over-allocated, reduce every cell according to the
	// difference between its width and its min width
	if available < 0 {
		al.shrinkColumnWidth(pr.Auto, &available)
	}
	if available < 0 {
		al.shrinkColumnWidth(pr.Px, &available)
	}
	if available < 0 {
		al.shrinkColumnWidth(pr.Perc, &available)
	}

	if debugMode {
		for i, cl := range ls {
			fmt.Printf("column %d: %s min %d max %d -> %d\n", i, cl.effectiveLogicalWidth,
				cl.effectiveMinLogicalWidth, cl.effectiveMaxLogicalWidth, cl.computedLogicalWidth)
		}
	}

	widths := make([]int, len(ls))
	for i, cl := range ls {
		widths[i] = cl.computedLogicalWidth
	}
	tl.setColumnPositions(widths)
}
