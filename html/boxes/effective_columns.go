package boxes

// appendEffectiveColumn adds a new effective column spanning [span]
// absolute columns.
func (t *Table) appendEffectiveColumn(span int) {
	newColumnIndex := len(t.effectiveColumns)
	t.effectiveColumns = append(t.effectiveColumns, EffectiveColumn{Span: span})

	// Unless the table has cell(s) with colspan that exceed the number of
	// columns afforded by the other rows in the table, we can use the fast
	// path when mapping columns to effective columns.
	if span == 1 && t.noCellColspanAtLeast+1 == len(t.effectiveColumns) {
		t.noCellColspanAtLeast++
	}

	// sections needing a recalc will be synced up later
	for _, id := range t.sectionOrder {
		section := t.Section(id)
		if !section.needsCellRecalc {
			section.appendEffectiveColumn(newColumnIndex)
		}
	}
	t.effectiveColumnPositions = append(t.effectiveColumnPositions, 0)
}

// splitEffectiveColumn splits the column at [index], taking [firstSpan]
// absolute columns from its span.
func (t *Table) splitEffectiveColumn(index, firstSpan int) {
	if t.effectiveColumns[index].Span <= firstSpan {
		panic("invalid effective column split")
	}
	t.effectiveColumns = insertAt(t.effectiveColumns, index, EffectiveColumn{Span: firstSpan})
	t.effectiveColumns[index+1].Span -= firstSpan

	for _, id := range t.sectionOrder {
		section := t.Section(id)
		if !section.needsCellRecalc {
			section.splitEffectiveColumn(index)
		}
	}
	t.effectiveColumnPositions = append(t.effectiveColumnPositions, 0)
	t.noCellColspanAtLeast = t.calcNoCellColspanAtLeast()
}

// calcNoCellColspanAtLeast returns the index of the first
// effective column spanning more than one absolute column.
func (t *Table) calcNoCellColspanAtLeast() int {
	for c, col := range t.effectiveColumns {
		if col.Span > 1 {
			return c
		}
	}
	return len(t.effectiveColumns)
}

// resizeEffectiveColumns truncates the effective columns to [n].
func (t *Table) resizeEffectiveColumns(n int) {
	if n < len(t.effectiveColumns) {
		t.effectiveColumns = t.effectiveColumns[:n]
	}
	positions := make([]int, len(t.effectiveColumns)+1)
	copy(positions, t.effectiveColumnPositions)
	t.effectiveColumnPositions = positions
	t.noCellColspanAtLeast = t.calcNoCellColspanAtLeast()
}

func (t *Table) absoluteColumnToEffectiveColumn(absoluteColumn int) int {
	if absoluteColumn < t.noCellColspanAtLeast {
		return absoluteColumn
	}
	effectiveColumn := t.noCellColspanAtLeast
	numColumns := len(t.effectiveColumns)
	for c := t.noCellColspanAtLeast; effectiveColumn < numColumns && c+t.effectiveColumns[effectiveColumn].Span-1 < absoluteColumn; effectiveColumn++ {
		c += t.effectiveColumns[effectiveColumn].Span
	}
	return effectiveColumn
}

func (t *Table) effectiveColumnToAbsoluteColumn(effectiveColumn int) int {
	c := 0
	for i := 0; i < effectiveColumn && i < len(t.effectiveColumns); i++ {
		c += t.effectiveColumns[i].Span
	}
	return c
}

// numAbsoluteColumns returns the sum of the effective column spans.
func (t *Table) numAbsoluteColumns() int {
	return t.effectiveColumnToAbsoluteColumn(len(t.effectiveColumns))
}

// AbsoluteColumnToEffectiveColumn maps an absolute column index to the
// effective column containing it. Indices past the end map to NumEffectiveColumns.
func (g Grid) AbsoluteColumnToEffectiveColumn(absoluteColumn int) int {
	return g.clean().absoluteColumnToEffectiveColumn(absoluteColumn)
}

// EffectiveColumnToAbsoluteColumn returns the first absolute column
// of the given effective column.
func (g Grid) EffectiveColumnToAbsoluteColumn(effectiveColumn int) int {
	return g.clean().effectiveColumnToAbsoluteColumn(effectiveColumn)
}

// SpanOfEffectiveColumn returns the number of absolute columns
// of the given effective column.
func (g Grid) SpanOfEffectiveColumn(effectiveColumn int) int {
	return g.clean().effectiveColumns[effectiveColumn].Span
}

// NumEffectiveColumns returns the number of columns of the table grid.
func (g Grid) NumEffectiveColumns() int { return len(g.clean().effectiveColumns) }

// NumAbsoluteColumns returns the sum of the effective column spans.
func (g Grid) NumAbsoluteColumns() int { return g.clean().numAbsoluteColumns() }

// EffectiveColumns returns a copy of the effective columns.
func (g Grid) EffectiveColumns() []EffectiveColumn {
	return append([]EffectiveColumn(nil), g.clean().effectiveColumns...)
}

// EffectiveColumnPositions returns the column positions set by the layout,
// with length NumEffectiveColumns + 1. The slice must not be modified.
func (g Grid) EffectiveColumnPositions() []int {
	return g.clean().effectiveColumnPositions
}

// SetEffectiveColumnPosition is used by the layout to store column positions.
func (g Grid) SetEffectiveColumnPosition(index, position int) {
	g.clean().effectiveColumnPositions[index] = position
}

// AppendEffectiveColumn adds an effective column spanning [span] absolute
// columns at the end of the table. It is used by the fixed layout, where
// column elements may define more columns than the cells.
// The next grid rebuild discards such columns.
func (g Grid) AppendEffectiveColumn(span int) { g.clean().appendEffectiveColumn(span) }

// SplitEffectiveColumn splits the effective column at [index], the first part
// spanning [firstSpan] absolute columns. It panics if the column does not span
// more than [firstSpan] columns.
func (g Grid) SplitEffectiveColumn(index, firstSpan int) {
	g.clean().splitEffectiveColumn(index, firstSpan)
}
