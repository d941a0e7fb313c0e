package layout

import (
	pr "github.com/benoitkugler/tablelayout/css/properties"
	bo "github.com/benoitkugler/tablelayout/html/boxes"
	"github.com/benoitkugler/tablelayout/utils"
)

// fixedTableLayout implements 'table-layout: fixed': the column widths
// only depend on the column elements and on the cells of the first row.
// See https://www.w3.org/TR/CSS21/tables.html#fixed-table-layout
type fixedTableLayout struct {
	tl *tableLayout

	// one width per effective column, multiplied by the column span
	widths []pr.Dimension
}

// fixed layout tables never scale their columns
func (*fixedTableLayout) scaledWidthFromPercentColumns() int { return 0 }

// calcWidthArray fills [widths] and returns the sum of the fixed widths.
// It may add or split effective columns when the column elements do not
// match the cells.
func (fl *fixedTableLayout) calcWidthArray() int {
	tl := fl.tl
	g, t := tl.g, tl.t
	usedWidth := 0

	nEffCols := g.NumEffectiveColumns()
	fl.widths = make([]pr.Dimension, nEffCols)

	currentEffectiveColumn := 0
	for _, id := range tl.columnElements {
		col := t.Column(id)
		// the width of a group with column children does not apply
		if col.IsGroup() && len(col.Children()) != 0 {
			continue
		}

		colWidth := col.Style().Width
		effectiveColWidth := 0
		if colWidth.IsFixed() && colWidth.IsPositive() {
			effectiveColWidth = colWidth.Int()
		}

		span := col.Span()
		for span > 0 {
			var spanInCurrentEffectiveColumn int
			if currentEffectiveColumn >= nEffCols {
				g.AppendEffectiveColumn(span)
				nEffCols++
				fl.widths = append(fl.widths, pr.Dimension{})
				spanInCurrentEffectiveColumn = span
			} else {
				if span < g.SpanOfEffectiveColumn(currentEffectiveColumn) {
					g.SplitEffectiveColumn(currentEffectiveColumn, span)
					nEffCols++
					fl.widths = insertDimension(fl.widths, currentEffectiveColumn)
				}
				spanInCurrentEffectiveColumn = g.SpanOfEffectiveColumn(currentEffectiveColumn)
			}
			if colWidth.IsSpecified() && colWidth.IsPositive() {
				fl.widths[currentEffectiveColumn] = pr.NewDim(colWidth.Value*Fl(spanInCurrentEffectiveColumn), colWidth.Unit)
				usedWidth += effectiveColWidth * spanInCurrentEffectiveColumn
			}
			span -= spanInCurrentEffectiveColumn
			currentEffectiveColumn++
		}
	}

	section := g.TopNonEmptySection()
	if section == bo.NoSection {
		return usedWidth
	}

	currentColumn := 0
	firstRow := g.RowAt(section, 0)
	for _, cell := range t.Row(firstRow).Cells() {
		logicalWidth := tl.styleOrColLogicalWidth(cell)
		span := t.Cell(cell).ColSpan()
		fixedBorderBoxLogicalWidth := 0
		if logicalWidth.IsFixed() && logicalWidth.IsPositive() {
			fixedBorderBoxLogicalWidth = tl.adjustCellWidthForBoxSizing(cell, logicalWidth.Int())
			logicalWidth = pr.FixedPx(fixedBorderBoxLogicalWidth)
		}

		usedSpan := 0
		for usedSpan < span && currentColumn < nEffCols {
			eSpan := g.SpanOfEffectiveColumn(currentColumn)
			// only set if no column element has already set it
			if fl.widths[currentColumn].IsAuto() && !logicalWidth.IsAuto() {
				ratio := Fl(eSpan) / Fl(span)
				fl.widths[currentColumn] = pr.NewDim(logicalWidth.Value*ratio, logicalWidth.Unit)
				usedWidth += int(Fl(fixedBorderBoxLogicalWidth) * ratio)
			}
			usedSpan += eSpan
			currentColumn++
		}
	}

	return usedWidth
}

func insertDimension(list []pr.Dimension, index int) []pr.Dimension {
	list = append(list, pr.Dimension{})
	copy(list[index+1:], list[index:])
	list[index] = pr.Dimension{}
	return list
}

func (fl *fixedTableLayout) computeIntrinsicLogicalWidths() (minWidth, maxWidth int) {
	w := fl.calcWidthArray()
	return w, w
}

func (fl *fixedTableLayout) applyPreferredLogicalWidthQuirks(minWidth, maxWidth int) (int, int) {
	tableWidth := fl.tl.t.Style().Width
	if tableWidth.IsFixed() && tableWidth.IsPositive() {
		minWidth = utils.MaxInt(minWidth, tableWidth.Int()-fl.tl.bordersPaddingAndSpacingInRowDirection())
		maxWidth = minWidth
	}
	// a percent width table is as wide as possible, so that
	// <table style="width:100%; table-layout:fixed"> fills its container
	if tableWidth.IsPercent() && maxWidth < tableMaxWidth {
		maxWidth = tableMaxWidth
	}
	return minWidth, maxWidth
}

func (fl *fixedTableLayout) updateLayout() {
	tl := fl.tl
	g := tl.g
	tableLogicalWidth := tl.width - tl.bordersPaddingAndSpacingInRowDirection()

	nEffCols := g.NumEffectiveColumns()
	if nEffCols != len(fl.widths) {
		fl.calcWidthArray()
		nEffCols = g.NumEffectiveColumns()
	}

	calcWidth := make([]int, nEffCols)
	numAuto, autoSpan := 0, 0
	totalFixedWidth, totalPercentWidth := 0, 0
	var totalPercent Fl

	// compute requirements and try to satisfy fixed and percent widths:
	// percentages are of the table width, so that for a table of 100px
	// with columns (40px, 10%), the 10% compute to 10px here, and
	// will scale up to 20px in the final (80px, 20px)
	for i, w := range fl.widths {
		switch w.Unit {
		case pr.Px:
			calcWidth[i] = w.Int()
			totalFixedWidth += calcWidth[i]
		case pr.Perc:
			calcWidth[i] = w.Resolve(tableLogicalWidth)
			totalPercentWidth += calcWidth[i]
			totalPercent += w.Value
		default:
			numAuto++
			autoSpan += g.SpanOfEffectiveColumn(i)
		}
	}

	hSpacing := tl.hBorderSpacing()
	totalWidth := totalFixedWidth + totalPercentWidth
	if numAuto == 0 || totalWidth > tableLogicalWidth {
		// take what we have and scale it to fit
		if totalWidth != tableLogicalWidth {
			// fixed widths only scale up
			if totalFixedWidth != 0 && totalWidth < tableLogicalWidth {
				totalFixedWidth = 0
				for i, w := range fl.widths {
					if w.IsFixed() {
						calcWidth[i] = calcWidth[i] * tableLogicalWidth / totalWidth
						totalFixedWidth += calcWidth[i]
					}
				}
			}
			if totalPercent != 0 {
				totalPercentWidth = 0
				for i, w := range fl.widths {
					if w.IsPercent() {
						calcWidth[i] = int(w.Value * Fl(tableLogicalWidth-totalFixedWidth) / totalPercent)
						totalPercentWidth += calcWidth[i]
					}
				}
			}
			totalWidth = totalFixedWidth + totalPercentWidth
		}
	} else {
		// divide the remaining width among the auto columns
		remainingWidth := tableLogicalWidth - totalFixedWidth - totalPercentWidth - hSpacing*(autoSpan-numAuto)
		lastAuto := 0
		for i, w := range fl.widths {
			if !w.IsAuto() {
				continue
			}
			span := g.SpanOfEffectiveColumn(i)
			share := remainingWidth * span / autoSpan
			calcWidth[i] = share + hSpacing*(span-1)
			remainingWidth -= share
			if remainingWidth == 0 {
				break
			}
			lastAuto = i
			autoSpan -= span
		}
		// the last one gets the remainder
		if remainingWidth != 0 {
			calcWidth[lastAuto] += remainingWidth
		}
		totalWidth = tableLogicalWidth
	}

	if totalWidth < tableLogicalWidth {
		// spread the extra space over the columns
		remainingWidth := tableLogicalWidth - totalWidth
		for total := nEffCols; total > 0; {
			share := remainingWidth / total
			remainingWidth -= share
			total--
			calcWidth[total] += share
		}
		if nEffCols > 0 {
			calcWidth[nEffCols-1] += remainingWidth
		}
	}

	tl.setColumnPositions(calcWidth)
}
