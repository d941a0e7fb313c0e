package boxes

import pr "github.com/benoitkugler/tablelayout/css/properties"

// Head returns the section used as the table header, or [NoSection].
func (g Grid) Head() SectionID { return g.clean().head }

// Foot returns the section used as the table footer, or [NoSection].
func (g Grid) Foot() SectionID { return g.clean().foot }

// FirstBody returns the first section which is neither the head
// nor the foot, or [NoSection].
func (g Grid) FirstBody() SectionID { return g.clean().firstBody }

// NumRows returns the number of rows of the section grid.
func (g Grid) NumRows(section SectionID) int {
	g.clean()
	return len(g.t.Section(section).grid)
}

// NumCols returns the number of slots of the given row, which may be
// less than NumEffectiveColumns.
func (g Grid) NumCols(section SectionID, row int) int {
	g.clean()
	return g.t.Section(section).numCols(row)
}

// RowAt returns the row at index [row] in the section grid.
func (g Grid) RowAt(section SectionID, row int) RowID {
	g.clean()
	return g.t.Section(section).grid[row].row
}

// RowLogicalHeight returns the specified height of the row, taking the
// heights of its cells spanning one row into account.
func (g Grid) RowLogicalHeight(section SectionID, row int) pr.Dimension {
	g.clean()
	return g.t.Section(section).grid[row].logicalHeight
}

// GridCellAt returns the slot at ([row], [effectiveColumn]), which
// is empty when out of range.
func (g Grid) GridCellAt(section SectionID, row, effectiveColumn int) GridCell {
	g.clean()
	s := g.t.Section(section)
	if row < 0 || row >= len(s.grid) || effectiveColumn < 0 || effectiveColumn >= s.numCols(row) {
		return GridCell{}
	}
	return s.grid[row].cells[effectiveColumn]
}

// PrimaryCellAt returns the cell painted at the given slot, or [NoCell].
func (g Grid) PrimaryCellAt(section SectionID, row, effectiveColumn int) CellID {
	return g.GridCellAt(section, row, effectiveColumn).PrimaryCell()
}

// OriginatingCellAt returns the primary cell at the slot only
// if the cell starts in this slot.
func (g Grid) OriginatingCellAt(section SectionID, row, effectiveColumn int) CellID {
	gc := g.GridCellAt(section, row, effectiveColumn)
	if gc.InColSpan {
		return NoCell
	}
	cell := gc.PrimaryCell()
	if cell == NoCell || g.t.Row(g.t.Cell(cell).row).index != row {
		return NoCell
	}
	return cell
}

// ResolvedRowSpan returns the rowspan of the cell, clamped
// to the remaining rows of its section.
func (g Grid) ResolvedRowSpan(cell CellID) int { return g.clean().Cell(cell).resolvedRowSpan }

// RowIndex returns the index of the first row of the cell.
func (g Grid) RowIndex(cell CellID) int {
	t := g.clean()
	return t.Row(t.Cell(cell).row).index
}

// AbsoluteColumnIndex returns the first absolute column of the cell.
func (g Grid) AbsoluteColumnIndex(cell CellID) int { return g.clean().Cell(cell).absoluteColumn }

// EffectiveColumnIndex returns the first effective column of the cell.
func (g Grid) EffectiveColumnIndex(cell CellID) int {
	t := g.clean()
	return t.absoluteColumnToEffectiveColumn(t.Cell(cell).absoluteColumn)
}

// SectionOf returns the section containing the cell.
func (g Grid) SectionOf(cell CellID) SectionID {
	t := g.clean()
	return t.Row(t.Cell(cell).row).section
}

// isEmpty is true for a section without rows.
func (t *Table) isEmpty(section SectionID) bool { return len(t.Section(section).grid) == 0 }

// SectionAbove returns the section preceding [section] in layout order,
// ignoring sections without rows if [skipEmpty] is true.
func (g Grid) SectionAbove(section SectionID, skipEmpty bool) SectionID {
	t := g.clean()
	if section == t.head {
		return NoSection
	}

	var index int
	if section == t.foot {
		index = len(t.sectionOrder)
	} else {
		index = indexOf(t.sectionOrder, section)
	}
	for index--; index >= 0; index-- {
		prev := t.sectionOrder[index]
		if prev != t.head && prev != t.foot && (!skipEmpty || !t.isEmpty(prev)) {
			return prev
		}
	}
	if t.head != NoSection && (!skipEmpty || !t.isEmpty(t.head)) {
		return t.head
	}
	return NoSection
}

// SectionBelow returns the section following [section] in layout order,
// ignoring sections without rows if [skipEmpty] is true.
func (g Grid) SectionBelow(section SectionID, skipEmpty bool) SectionID {
	t := g.clean()
	if section == t.foot {
		return NoSection
	}

	index := -1
	if section != t.head {
		index = indexOf(t.sectionOrder, section)
	}
	for index++; index < len(t.sectionOrder); index++ {
		next := t.sectionOrder[index]
		if next != t.head && next != t.foot && (!skipEmpty || !t.isEmpty(next)) {
			return next
		}
	}
	if t.foot != NoSection && (!skipEmpty || !t.isEmpty(t.foot)) {
		return t.foot
	}
	return NoSection
}

// TopSection returns the first section in layout order.
func (g Grid) TopSection() SectionID {
	t := g.clean()
	if t.head != NoSection {
		return t.head
	}
	if t.firstBody != NoSection {
		return t.firstBody
	}
	return t.foot
}

// BottomSection returns the last section in layout order.
func (g Grid) BottomSection() SectionID {
	t := g.clean()
	if t.foot != NoSection {
		return t.foot
	}
	if t.head != NoSection && t.firstBody == NoSection {
		return t.head
	}
	for i := len(t.sectionOrder) - 1; i >= 0; i-- {
		if s := t.sectionOrder[i]; s != t.head {
			return s
		}
	}
	return NoSection
}

// TopNonEmptySection returns the first section with rows, in layout order.
func (g Grid) TopNonEmptySection() SectionID {
	section := g.TopSection()
	if section != NoSection && g.t.isEmpty(section) {
		section = g.SectionBelow(section, true)
	}
	return section
}

// BottomNonEmptySection returns the last section with rows, in layout order.
func (g Grid) BottomNonEmptySection() SectionID {
	section := g.BottomSection()
	if section != NoSection && g.t.isEmpty(section) {
		section = g.SectionAbove(section, true)
	}
	return section
}

// Sections returns the sections in layout order: the head, the bodies
// in DOM order, then the foot.
func (g Grid) Sections() []SectionID {
	t := g.clean()
	out := make([]SectionID, 0, len(t.sectionOrder))
	if t.head != NoSection {
		out = append(out, t.head)
	}
	for _, s := range t.sectionOrder {
		if s != t.head && s != t.foot {
			out = append(out, s)
		}
	}
	if t.foot != NoSection {
		out = append(out, t.foot)
	}
	return out
}

// CellAbove returns the primary cell just above the first column
// of [cell], possibly in the previous non empty section.
func (g Grid) CellAbove(cell CellID) CellID {
	t := g.clean()
	c := t.Cell(cell)
	row := t.Row(c.row)
	section, rowIndex := row.section, row.index-1
	if row.index == 0 {
		section = g.SectionAbove(row.section, true)
		if section == NoSection {
			return NoCell
		}
		rowIndex = len(t.Section(section).grid) - 1
	}
	return g.PrimaryCellAt(section, rowIndex, t.absoluteColumnToEffectiveColumn(c.absoluteColumn))
}

// CellBelow returns the primary cell just below the last row
// of [cell], possibly in the next non empty section.
func (g Grid) CellBelow(cell CellID) CellID {
	t := g.clean()
	c := t.Cell(cell)
	row := t.Row(c.row)
	section := row.section
	r := row.index + c.resolvedRowSpan - 1
	rowIndex := r + 1
	if r >= len(t.Section(section).grid)-1 {
		section = g.SectionBelow(section, true)
		if section == NoSection {
			return NoCell
		}
		rowIndex = 0
	}
	return g.PrimaryCellAt(section, rowIndex, t.absoluteColumnToEffectiveColumn(c.absoluteColumn))
}

// CellPreceding returns the primary cell in the effective column before
// [cell], in its first row.
func (g Grid) CellPreceding(cell CellID) CellID {
	t := g.clean()
	c := t.Cell(cell)
	eff := t.absoluteColumnToEffectiveColumn(c.absoluteColumn)
	if eff == 0 {
		return NoCell
	}
	row := t.Row(c.row)
	return g.PrimaryCellAt(row.section, row.index, eff-1)
}

// CellFollowing returns the primary cell in the effective column after
// [cell], in its first row.
func (g Grid) CellFollowing(cell CellID) CellID {
	t := g.clean()
	c := t.Cell(cell)
	eff := t.absoluteColumnToEffectiveColumn(c.absoluteColumn + c.colspan)
	row := t.Row(c.row)
	return g.PrimaryCellAt(row.section, row.index, eff)
}

// ColAndColGroup is the column element found at an absolute column.
// Column is [NoColumn] when the column group has no column children.
type ColAndColGroup struct {
	Column, ColumnGroup ColumnID
	// The adjoin flags are true when the absolute
	// column is the first (last) of the group.
	AdjoinsStartBorderOfColGroup, AdjoinsEndBorderOfColGroup bool
}

// InnermostColOrColGroup returns the column if any, or the group.
func (cc ColAndColGroup) InnermostColOrColGroup() ColumnID {
	if cc.Column != NoColumn {
		return cc.Column
	}
	return cc.ColumnGroup
}

// leafColumns walks the columns in DOM order, skipping the groups
// with column children.
func (t *Table) leafColumns(yield func(ColumnID) bool) {
	for _, id := range t.topColumns {
		col := t.Column(id)
		if col.hasColumnChildren() {
			for _, child := range col.children {
				if !yield(child) {
					return
				}
			}
		} else if !yield(id) {
			return
		}
	}
}

// ColElementAtAbsoluteColumn returns the column and column group
// covering the given absolute column.
func (g Grid) ColElementAtAbsoluteColumn(absoluteColumn int) ColAndColGroup {
	t := g.clean()
	out := ColAndColGroup{Column: NoColumn, ColumnGroup: NoColumn}
	count := 0
	t.leafColumns(func(id ColumnID) bool {
		col := t.Column(id)
		start := count
		count += col.span
		if count <= absoluteColumn {
			return true
		}
		end := count - 1
		if col.isGroup {
			out.ColumnGroup = id
			out.AdjoinsStartBorderOfColGroup = start == absoluteColumn
			out.AdjoinsEndBorderOfColGroup = end == absoluteColumn
			return false
		}
		out.Column = id
		out.ColumnGroup = col.group
		if col.group != NoColumn {
			siblings := t.Column(col.group).children
			index := indexOf(siblings, id)
			out.AdjoinsStartBorderOfColGroup = index == 0 && start == absoluteColumn
			out.AdjoinsEndBorderOfColGroup = index == len(siblings)-1 && end == absoluteColumn
		}
		return false
	})
	return out
}
