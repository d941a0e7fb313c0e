package layout

import (
	pr "github.com/benoitkugler/tablelayout/css/properties"
	bo "github.com/benoitkugler/tablelayout/html/boxes"
	"github.com/benoitkugler/tablelayout/logger"
	"github.com/benoitkugler/tablelayout/utils"
)

// columnsAlgorithm computes the column widths, and is implemented by the
// auto and fixed layouts.
type columnsAlgorithm interface {
	// computeIntrinsicLogicalWidths returns the min and max widths
	// of the columns, without the table borders, paddings and spacings.
	computeIntrinsicLogicalWidths() (minWidth, maxWidth int)
	applyPreferredLogicalWidthQuirks(minWidth, maxWidth int) (int, int)
	scaledWidthFromPercentColumns() int
	// updateLayout stores the column positions for the current table width.
	updateLayout()
}

// tableLayout stores the state of one layout pass.
type tableLayout struct {
	t    *bo.Table
	g    bo.Grid
	opts Options
	algo columnsAlgorithm

	// border box width of the table
	width int

	cellWidths     map[bo.CellID][2]int
	columnElements []bo.ColumnID

	hasPreferredWidths   bool
	prefMin, prefMax     int
	columnCollapsedWidth []int
}

func newTableLayout(table *bo.Table, opts Options) *tableLayout {
	tl := &tableLayout{
		t:          table,
		g:          table.Recalc(),
		opts:       opts,
		cellWidths: make(map[bo.CellID][2]int),
	}
	tl.columnElements = columnElementsInTreeOrder(table)
	if tl.usesFixedLayout() {
		tl.algo = &fixedTableLayout{tl: tl}
	} else {
		tl.algo = &autoTableLayout{tl: tl}
	}
	return tl
}

// usesFixedLayout is true for 'table-layout: fixed', which is ignored
// for tables with an auto width.
func (tl *tableLayout) usesFixedLayout() bool {
	st := tl.t.Style()
	return st.IsFixedLayout() && !st.Width.IsAuto()
}

func (tl *tableLayout) collapsing() bool { return tl.t.ShouldCollapseBorders() }

func (tl *tableLayout) hBorderSpacing() int {
	if tl.collapsing() {
		return 0
	}
	return tl.t.Style().BorderSpacing.H
}

func (tl *tableLayout) vBorderSpacing() int {
	if tl.collapsing() {
		return 0
	}
	return tl.t.Style().BorderSpacing.V
}

// padding returns the padding on [side], which is ignored when collapsing.
func (tl *tableLayout) padding(side pr.Side) int {
	if tl.collapsing() {
		return 0
	}
	return tl.t.Style().Padding[side].Resolve(tl.opts.AvailableWidth)
}

func (tl *tableLayout) border(side pr.Side) int { return tl.g.TableBorderWidth(side) }

func (tl *tableLayout) bordersAndPaddingsWidth() int {
	return tl.border(pr.Left) + tl.border(pr.Right) + tl.padding(pr.Left) + tl.padding(pr.Right)
}

func (tl *tableLayout) bordersPaddingAndSpacingInRowDirection() int {
	out := tl.border(pr.Left) + tl.border(pr.Right)
	if tl.collapsing() {
		return out
	}
	out += tl.padding(pr.Left) + tl.padding(pr.Right)
	if n := tl.g.NumEffectiveColumns(); n != 0 {
		out += (n + 1) * tl.hBorderSpacing()
	}
	return out
}

// contentWidth is the width of the sections and rows.
func (tl *tableLayout) contentWidth() int { return tl.width - tl.bordersAndPaddingsWidth() }

// adjustWidthForBoxSizing converts a specified 'width' to a border box width.
func (tl *tableLayout) adjustWidthForBoxSizing(width int) int {
	bp := tl.bordersAndPaddingsWidth()
	if tl.t.Style().BoxSizing == pr.ContentBox {
		return width + bp
	}
	return utils.MaxInt(width, bp)
}

func (tl *tableLayout) setColumnPositions(widths []int) {
	hSpacing := tl.hBorderSpacing()
	pos := 0
	for i, w := range widths {
		tl.g.SetEffectiveColumnPosition(i, pos)
		pos += w + hSpacing
	}
	tl.g.SetEffectiveColumnPosition(len(tl.g.EffectiveColumnPositions())-1, pos)
}

func (tl *tableLayout) intrinsicWidths() (minWidth, maxWidth int) {
	minWidth, maxWidth = tl.algo.computeIntrinsicLogicalWidths()
	bps := tl.bordersPaddingAndSpacingInRowDirection()
	return minWidth + bps, maxWidth + bps
}

// captionMinWidth returns the min-content width of the border box of the caption.
func (tl *tableLayout) captionMinWidth(id bo.CaptionID) int {
	caption := tl.t.Caption(id)
	minWidth, _ := bo.IntrinsicWidths(caption.Content())
	st := caption.Style()
	return minWidth + st.BorderWidth(pr.Left) + st.BorderWidth(pr.Right) +
		st.Padding[pr.Left].Resolve(0) + st.Padding[pr.Right].Resolve(0)
}

// preferredWidths returns the min-content and max-content widths of the
// table border box, including the 'min-width' and 'max-width' constraints.
func (tl *tableLayout) preferredWidths() (minWidth, maxWidth int) {
	if tl.hasPreferredWidths {
		return tl.prefMin, tl.prefMax
	}
	minWidth, maxWidth = tl.intrinsicWidths()
	minWidth, maxWidth = tl.algo.applyPreferredLogicalWidthQuirks(minWidth, maxWidth)

	encompass := func(v int) {
		minWidth = utils.MaxInt(minWidth, v)
		maxWidth = utils.MaxInt(maxWidth, v)
	}
	for _, caption := range tl.t.Captions() {
		encompass(tl.captionMinWidth(caption))
	}

	st := tl.t.Style()
	if st.MinWidth.IsFixed() && st.MinWidth.IsPositive() {
		encompass(tl.adjustWidthForBoxSizing(st.MinWidth.Int()))
	}
	// min is not constrained: the table is at least as wide as its content
	if st.MaxWidth.IsFixed() {
		maxWidth = utils.MinInt(maxWidth, tl.adjustWidthForBoxSizing(st.MaxWidth.Int()))
	}
	maxWidth = utils.MaxInt(minWidth, maxWidth)

	tl.prefMin, tl.prefMax, tl.hasPreferredWidths = minWidth, maxWidth, true
	return minWidth, maxWidth
}

// convertStyleWidth resolves a 'width', 'min-width' or 'max-width' value to
// a border box width. HTML tables sizes include borders and paddings.
func (tl *tableLayout) convertStyleWidth(width pr.Dimension) int {
	borders := 0
	if !tl.opts.HTMLTable && width.IsPositive() && tl.t.Style().BoxSizing == pr.ContentBox {
		borders = tl.border(pr.Left) + tl.border(pr.Right) + tl.padding(pr.Left) + tl.padding(pr.Right)
	}
	return width.Resolve(tl.opts.AvailableWidth) + borders
}

// updateLogicalWidth computes the border box width of the table.
func (tl *tableLayout) updateLogicalWidth() {
	st := tl.t.Style()
	available := tl.opts.AvailableWidth
	minWidth, maxWidth := tl.preferredWidths()

	if st.Width.IsPositive() {
		tl.width = tl.convertStyleWidth(st.Width)
	} else {
		dir := st.Direction
		margins := st.LogicalMargin(pr.Start, dir, available) + st.LogicalMargin(pr.End, dir, available)
		availableContentWidth := utils.MaxInt(0, available-margins)
		// scaledWidthFromPercentColumns is only valid after preferredWidths
		scaledWidth := tl.algo.scaledWidthFromPercentColumns() + tl.bordersPaddingAndSpacingInRowDirection()
		tl.width = utils.MinInt(availableContentWidth, utils.MaxInt(scaledWidth, maxWidth))
	}

	if st.MaxWidth.IsSpecified() && !st.MaxWidth.IsNegative() {
		tl.width = utils.MinInt(tl.width, tl.convertStyleWidth(st.MaxWidth))
	}
	// after 'max-width', which is ignored if the content would not fit
	tl.width = utils.MaxInt(tl.width, minWidth)
	if st.MinWidth.IsSpecified() && !st.MinWidth.IsNegative() {
		tl.width = utils.MaxInt(tl.width, tl.convertStyleWidth(st.MinWidth))
	}
}

// borderAndPaddingBefore is the top border and padding of the table box.
func (tl *tableLayout) borderAndPaddingBefore() int { return tl.border(pr.Top) + tl.padding(pr.Top) }

func (tl *tableLayout) borderAndPaddingAfter() int { return tl.border(pr.Bottom) + tl.padding(pr.Bottom) }

// convertStyleHeight resolves a height value to the height
// of the content of the table box.
func (tl *tableLayout) convertStyleHeight(height pr.Dimension) int {
	bp := tl.borderAndPaddingBefore() + tl.borderAndPaddingAfter()
	var out int
	switch height.Unit {
	case pr.Px:
		out = height.Int()
		// HTML tables size as though the height includes borders and paddings
		if tl.opts.HTMLTable || tl.t.Style().BoxSizing == pr.BorderBox {
			out -= bp
		}
	case pr.Perc:
		// the percentage applies to the border box
		out = height.Resolve(utils.MaxInt(0, tl.opts.AvailableHeight)) - bp
	}
	return utils.MaxInt(0, out)
}

// heightFromStyle returns the height required by the style of the table,
// for the content of the table box.
func (tl *tableLayout) heightFromStyle() int {
	st := tl.t.Style()
	computed := 0
	if st.Height.IsPositive() {
		computed = tl.convertStyleHeight(st.Height)
	}
	if st.MaxHeight.IsSpecified() && !st.MaxHeight.IsNegative() {
		computed = utils.MinInt(computed, tl.convertStyleHeight(st.MaxHeight))
	}
	if st.MinHeight.IsSpecified() && !st.MinHeight.IsNegative() {
		computed = utils.MaxInt(computed, tl.convertStyleHeight(st.MinHeight))
	}
	return computed
}

// layoutCaption lays out the caption at the current height
// of the table wrapper, returning the new height.
func (tl *tableLayout) layoutCaption(id bo.CaptionID, top int) int {
	caption := tl.t.Caption(id)
	st := caption.Style()
	marginLeft := st.Margin[pr.Left].Resolve(tl.width)
	marginRight := st.Margin[pr.Right].Resolve(tl.width)
	marginTop := st.Margin[pr.Top].Resolve(tl.width)
	marginBottom := st.Margin[pr.Bottom].Resolve(tl.width)

	bpWidth := st.BorderWidth(pr.Left) + st.BorderWidth(pr.Right) +
		st.Padding[pr.Left].Resolve(tl.width) + st.Padding[pr.Right].Resolve(tl.width)
	bpHeight := st.BorderWidth(pr.Top) + st.BorderWidth(pr.Bottom) +
		st.Padding[pr.Top].Resolve(tl.width) + st.Padding[pr.Bottom].Resolve(tl.width)

	caption.Width = utils.MaxInt(0, tl.width-marginLeft-marginRight)
	contentHeight, _ := bo.LayoutContent(caption.Content(), utils.MaxInt(0, caption.Width-bpWidth))
	caption.Height = contentHeight + bpHeight
	caption.X = marginLeft
	caption.Y = top + marginTop
	return top + marginTop + caption.Height + marginBottom
}

func (tl *tableLayout) layoutCaptions(side pr.CaptionSide, top int) int {
	for _, id := range tl.t.Captions() {
		if tl.t.Caption(id).Style().CaptionSide == side {
			top = tl.layoutCaption(id, top)
		}
	}
	return top
}

// isAbsoluteColumnCollapsed is true if the column or its group
// has 'visibility: collapse'.
func (tl *tableLayout) isAbsoluteColumnCollapsed(absoluteColumn int) bool {
	cc := tl.g.ColElementAtAbsoluteColumn(absoluteColumn)
	if cc.Column != bo.NoColumn && tl.t.Column(cc.Column).Style().IsCollapsedVisibility() {
		return true
	}
	return cc.ColumnGroup != bo.NoColumn && tl.t.Column(cc.ColumnGroup).Style().IsCollapsedVisibility()
}

// adjustWidthsForCollapsedColumns removes the width of the collapsed columns
// from the column positions and the table width.
func (tl *tableLayout) adjustWidthsForCollapsedColumns() {
	g := tl.g
	nEffCols := g.NumEffectiveColumns()
	tl.columnCollapsedWidth = nil
	for i := 0; i < nEffCols; i++ {
		if tl.isAbsoluteColumnCollapsed(g.EffectiveColumnToAbsoluteColumn(i)) {
			if tl.columnCollapsedWidth == nil {
				tl.columnCollapsedWidth = make([]int, nEffCols)
			}
			positions := g.EffectiveColumnPositions()
			tl.columnCollapsedWidth[i] = positions[i+1] - positions[i]
		}
	}
	if tl.columnCollapsedWidth == nil {
		return
	}

	totalCollapsedWidth := 0
	for i := 0; i < nEffCols; i++ {
		totalCollapsedWidth += tl.columnCollapsedWidth[i]
		g.SetEffectiveColumnPosition(i+1, g.EffectiveColumnPositions()[i+1]-totalCollapsedWidth)
	}
	tl.width -= totalCollapsedWidth
}

// layout runs a complete layout of the table.
func (tl *tableLayout) layout() {
	t, g := tl.t, tl.g
	tl.updateLogicalWidth()
	tl.algo.updateLayout()

	height := tl.layoutCaptions(pr.CaptionTop, 0)

	// the border edge of the table box, below the top captions
	tableBoxTop := height
	bpBefore, bpAfter := tl.borderAndPaddingBefore(), tl.borderAndPaddingAfter()

	sectionLeft := tl.border(pr.Left) + tl.padding(pr.Left)

	sections := g.Sections()
	layouts := make(map[bo.SectionID]*sectionLayout, len(sections))
	layoutSection := func(id bo.SectionID) {
		sl := newSectionLayout(tl, id)
		sl.layoutCells()
		sl.calcRowLogicalHeight()
		layouts[id] = sl
	}
	foot := g.Foot()
	for _, id := range sections {
		if id != foot {
			layoutSection(id)
		}
	}
	// the footer is laid out with the collapsed columns removed
	tl.adjustWidthsForCollapsedColumns()
	if foot != bo.NoSection {
		layoutSection(foot)
	}

	computedHeight := tl.heightFromStyle()
	totalSectionsHeight := 0
	for _, id := range sections {
		totalSectionsHeight += layouts[id].height()
	}

	// the extra height is given to the first body only
	if extra := computedHeight - totalSectionsHeight; extra > 0 {
		if body := g.FirstBody(); body != bo.NoSection {
			layouts[body].distributeExtraLogicalHeightToRows(extra, body != sections[len(sections)-1])
		}
	}

	height = tableBoxTop + bpBefore
	for _, id := range sections {
		sl := layouts[id]
		sl.layoutRows()
		if tl.columnCollapsedWidth != nil {
			sl.updateLogicalWidthForCollapsedCells(tl.columnCollapsedWidth)
		}
	}

	// an empty table still honors its specified height
	if len(sections) == 0 && computedHeight > 0 {
		height += computedHeight
	}

	for _, id := range sections {
		section := t.Section(id)
		section.X = sectionLeft
		section.Y = height
		height += section.Height
	}

	height += bpAfter
	t.BoxY = tableBoxTop
	t.BoxHeight = height - tableBoxTop

	height = tl.layoutCaptions(pr.CaptionBottom, height)

	t.X, t.Y = 0, 0
	t.Width = tl.width
	t.Height = height
	t.SetLaidOut()

	logger.ProgressLogger.WithField("width", t.Width).
		WithField("height", t.Height).
		WithField("columns", g.NumEffectiveColumns()).
		Debug("table laid out")
}
