package boxes

import (
	"fmt"

	pr "github.com/benoitkugler/tablelayout/css/properties"
	"github.com/benoitkugler/tablelayout/utils"
)

// Change describes what a mutation may have invalidated.
type Change uint8

const (
	// StructureChanged requires the grid of the section to be rebuilt
	StructureChanged Change = 1 << iota
	// BordersChanged invalidates the collapsed borders
	BordersChanged
	// CollapseToggled is set when 'border-collapse' changed on the table
	CollapseToggled
	// LayoutChanged only requires a new layout
	LayoutChanged
)

const (
	// MaxColumnIndex is the maximum colspan (and column span) value.
	MaxColumnIndex = 1000
	// MaxRowIndex is the maximum rowspan value.
	MaxRowIndex = 65534
)

func clampColSpan(span int) int { return utils.ClampInt(span, 1, MaxColumnIndex) }

func clampRowSpan(span int) int {
	if span < 0 {
		return 1
	}
	return utils.MinInt(span, MaxRowIndex)
}

// markDirty is the single entry point recording the effects of a mutation.
func (t *Table) markDirty(ref Ref, change Change) {
	if change&StructureChanged != 0 {
		switch ref.Kind {
		case KSection:
			t.Section(SectionID(ref.Index)).needsCellRecalc = true
		case KRow:
			t.Section(t.Row(RowID(ref.Index)).section).needsCellRecalc = true
		case KCell:
			row := t.Row(t.Cell(CellID(ref.Index)).row)
			t.Section(row.section).needsCellRecalc = true
		}
		t.needsSectionRecalc = true
	}
	if change&(BordersChanged|CollapseToggled|StructureChanged) != 0 {
		t.InvalidateCollapsedBorders()
	}
	t.needsLayout = true
}

// InvalidateCollapsedBorders marks the collapsed borders of every cell,
// and the table outer borders, for recomputation.
func (t *Table) InvalidateCollapsedBorders() {
	t.collapsedBordersValid = false
	t.needsInvalidateAllCells = true
	t.collapsedOuterBordersValid = false
}

func (t *Table) checkSectionStyle(style pr.Style) {
	if !style.Display.IsSection() {
		panic(fmt.Sprintf("invalid display for a section: %s", style.Display))
	}
}

func (t *Table) newSection(style pr.Style) SectionID {
	t.checkSectionStyle(style)
	id := SectionID(len(t.sections))
	t.sections = append(t.sections, &Section{style: style, needsCellRecalc: true})
	return id
}

// AppendSection adds a new section at the end of the table.
// The section kind (header, body or footer) is defined by style.Display.
func (t *Table) AppendSection(style pr.Style) SectionID {
	id := t.newSection(style)
	t.sectionOrder = append(t.sectionOrder, id)
	t.markDirty(id.Ref(), StructureChanged)
	return id
}

// InsertSectionBefore adds a new section just before [before].
func (t *Table) InsertSectionBefore(style pr.Style, before SectionID) SectionID {
	index := indexOf(t.sectionOrder, before)
	id := t.newSection(style)
	t.sectionOrder = insertAt(t.sectionOrder, index, id)
	t.markDirty(id.Ref(), StructureChanged)
	return id
}

func (t *Table) newRow(section SectionID, style pr.Style) RowID {
	t.Section(section) // check the id
	id := RowID(len(t.rows))
	t.rows = append(t.rows, &Row{style: style, section: section})
	return id
}

// AppendRow adds a new row at the end of [section].
func (t *Table) AppendRow(section SectionID, style pr.Style) RowID {
	id := t.newRow(section, style)
	s := t.Section(section)
	s.rows = append(s.rows, id)
	t.markDirty(id.Ref(), StructureChanged)
	return id
}

// InsertRowBefore adds a new row just before [before] in [section].
func (t *Table) InsertRowBefore(section SectionID, style pr.Style, before RowID) RowID {
	s := t.Section(section)
	index := indexOf(s.rows, before)
	id := t.newRow(section, style)
	s.rows = insertAt(s.rows, index, id)
	t.markDirty(id.Ref(), StructureChanged)
	return id
}

func (t *Table) newCell(row RowID, style pr.Style, content Content, colspan, rowspan int) CellID {
	t.Row(row) // check the id
	id := CellID(len(t.cells))
	t.cells = append(t.cells, &Cell{
		style:           style,
		row:             row,
		content:         content,
		colspan:         clampColSpan(colspan),
		rowspan:         clampRowSpan(rowspan),
		resolvedRowSpan: 1,
		ContentBaseline: -1,
	})
	return id
}

// AppendCell adds a new cell at the end of [row]. Spans are clamped:
// colspan to [1, MaxColumnIndex] and rowspan to [0, MaxRowIndex] (a
// negative rowspan is replaced by 1).
func (t *Table) AppendCell(row RowID, style pr.Style, content Content, colspan, rowspan int) CellID {
	id := t.newCell(row, style, content, colspan, rowspan)
	r := t.Row(row)
	r.cells = append(r.cells, id)
	t.markDirty(id.Ref(), StructureChanged)
	return id
}

// InsertCellBefore adds a new cell just before [before] in [row].
func (t *Table) InsertCellBefore(row RowID, style pr.Style, content Content, colspan, rowspan int, before CellID) CellID {
	r := t.Row(row)
	index := indexOf(r.cells, before)
	id := t.newCell(row, style, content, colspan, rowspan)
	r.cells = insertAt(r.cells, index, id)
	t.markDirty(id.Ref(), StructureChanged)
	return id
}

func (t *Table) newColumn(style pr.Style, span int, isGroup bool, group ColumnID) ColumnID {
	id := ColumnID(len(t.columns))
	span = clampColSpan(span)
	t.columns = append(t.columns, &Column{style: style, span: span, spanAttr: span, isGroup: isGroup, group: group})
	return id
}

// AppendColumnGroup adds a column group at the end of the table columns.
// [span] is used as long as the group has no column children.
func (t *Table) AppendColumnGroup(style pr.Style, span int) ColumnID {
	id := t.newColumn(style, span, true, NoColumn)
	t.topColumns = append(t.topColumns, id)
	t.markDirty(id.Ref(), StructureChanged|BordersChanged)
	return id
}

// AppendColumn adds a column at the end of [group], or at the end
// of the table columns if group is [NoColumn].
func (t *Table) AppendColumn(group ColumnID, style pr.Style, span int) ColumnID {
	if group == NoColumn {
		id := t.newColumn(style, span, false, NoColumn)
		t.topColumns = append(t.topColumns, id)
		t.markDirty(id.Ref(), StructureChanged|BordersChanged)
		return id
	}
	g := t.Column(group)
	if !g.isGroup {
		panic(fmt.Sprintf("%s is not a column group", group))
	}
	id := t.newColumn(style, span, false, group)
	g.children = append(g.children, id)
	t.updateGroupSpan(g)
	t.markDirty(id.Ref(), StructureChanged|BordersChanged)
	return id
}

// updateGroupSpan uses the span attribute of a group only
// when it has no column children.
func (t *Table) updateGroupSpan(g *Column) {
	if len(g.children) == 0 {
		g.span = g.spanAttr
		return
	}
	span := 0
	for _, child := range g.children {
		span += t.Column(child).span
	}
	g.span = span
}

// AppendCaption adds a caption to the table.
func (t *Table) AppendCaption(style pr.Style, content Content) CaptionID {
	id := CaptionID(len(t.captions))
	t.captions = append(t.captions, &Caption{style: style, content: content})
	t.captionsOrder = append(t.captionsOrder, id)
	t.markDirty(id.Ref(), LayoutChanged)
	return id
}

// Remove detaches the part from the table. Removing a section, a row
// or a column group also detaches their children.
// The table itself can't be removed.
func (t *Table) Remove(ref Ref) {
	switch ref.Kind {
	case KSection:
		id := SectionID(ref.Index)
		t.Section(id)
		t.sectionOrder = remove(t.sectionOrder, id)
		t.needsSectionRecalc = true
		t.InvalidateCollapsedBorders()
		t.needsLayout = true
	case KRow:
		id := RowID(ref.Index)
		s := t.Section(t.Row(id).section)
		s.rows = remove(s.rows, id)
		t.markDirty(t.Row(id).section.Ref(), StructureChanged)
	case KCell:
		id := CellID(ref.Index)
		r := t.Row(t.Cell(id).row)
		r.cells = remove(r.cells, id)
		t.Cell(id).collapsedBorderValues = nil
		t.markDirty(t.Cell(id).row.Ref(), StructureChanged)
	case KColumn:
		id := ColumnID(ref.Index)
		col := t.Column(id)
		if col.group == NoColumn {
			t.topColumns = remove(t.topColumns, id)
		} else {
			g := t.Column(col.group)
			g.children = remove(g.children, id)
			t.updateGroupSpan(g)
		}
		t.markDirty(ref, StructureChanged|BordersChanged)
	case KCaption:
		id := CaptionID(ref.Index)
		t.Caption(id)
		t.captionsOrder = remove(t.captionsOrder, id)
		t.markDirty(ref, LayoutChanged)
	default:
		panic("the table itself can't be removed")
	}
}

// styleChange returns the invalidations implied by a style change.
func styleChange(kind Kind, old, new *pr.Style) Change {
	change := LayoutChanged
	if kind == KCaption {
		return change
	}
	if !old.BordersEqual(new) {
		change |= BordersChanged
	}
	switch kind {
	case KTable:
		if old.BorderCollapse != new.BorderCollapse {
			change |= CollapseToggled
		}
		if old.Direction != new.Direction {
			change |= BordersChanged
		}
	case KSection:
		if old.Display != new.Display {
			change |= StructureChanged
		}
	case KRow, KCell:
		if old.Height != new.Height {
			change |= StructureChanged
		}
	case KColumn:
		if old.Width != new.Width {
			change |= StructureChanged
		}
	}
	return change
}

// SetStyle updates the style of a part.
func (t *Table) SetStyle(ref Ref, style pr.Style) {
	part := t.Part(ref)
	if ref.Kind == KSection {
		t.checkSectionStyle(style)
	}
	old := part.Style()
	change := styleChange(ref.Kind, old, &style)
	*old = style
	if change&StructureChanged != 0 && ref.Kind == KSection {
		// head and foot may change
		t.needsSectionRecalc = true
	}
	t.markDirty(ref, change)
}

// SetSpan updates the spans of a cell, or the span of a column
// (in which case rowspan is ignored). Values are clamped as in [Table.AppendCell].
func (t *Table) SetSpan(ref Ref, colspan, rowspan int) {
	switch ref.Kind {
	case KCell:
		cell := t.Cell(CellID(ref.Index))
		cell.colspan = clampColSpan(colspan)
		cell.rowspan = clampRowSpan(rowspan)
	case KColumn:
		col := t.Column(ColumnID(ref.Index))
		if col.isGroup && len(col.children) != 0 {
			col.spanAttr = clampColSpan(colspan)
			return // the span of the children is used
		}
		col.span = clampColSpan(colspan)
		col.spanAttr = col.span
		if col.group != NoColumn {
			t.updateGroupSpan(t.Column(col.group))
		}
	default:
		panic(fmt.Sprintf("span is not supported for %s", ref))
	}
	t.markDirty(ref, StructureChanged|BordersChanged)
}

// SetContent updates the content of a cell or a caption.
func (t *Table) SetContent(ref Ref, content Content) {
	switch ref.Kind {
	case KCell:
		t.Cell(CellID(ref.Index)).content = content
	case KCaption:
		t.Caption(CaptionID(ref.Index)).content = content
	default:
		panic(fmt.Sprintf("content is not supported for %s", ref))
	}
	t.markDirty(ref, LayoutChanged)
}

func indexOf[T comparable](list []T, v T) int {
	for i, u := range list {
		if u == v {
			return i
		}
	}
	panic(fmt.Sprintf("%v not found", v))
}

func insertAt[T any](list []T, index int, v T) []T {
	list = append(list, v)
	copy(list[index+1:], list[index:])
	list[index] = v
	return list
}

func remove[T comparable](list []T, v T) []T {
	index := indexOf(list, v)
	return append(list[:index], list[index+1:]...)
}
