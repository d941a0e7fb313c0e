package boxes

import (
	"testing"

	pr "github.com/benoitkugler/tablelayout/css/properties"
	tu "github.com/benoitkugler/tablelayout/utils/testutils"
)

func solid(width int) pr.Border {
	return pr.Border{Style: pr.BorderSolid, Width: width, Color: pr.Black}
}

func (t *Table) styledCell(row RowID, borders map[pr.Side]pr.Border) CellID {
	style := t.childStyle(pr.DisplayTableCell)
	for side, b := range borders {
		style.Border[side] = b
	}
	return t.AppendCell(row, style, nil, 1, 1)
}

func TestBorderConflictResolution(t *testing.T) {
	cell := func(style pr.BorderStyle, width int) CollapsedBorderValue {
		return newCollapsedBorderValue(pr.Border{Style: style, Width: width}, PrecedenceCell)
	}
	var absent CollapsedBorderValue

	tu.AssertEqual(t, absent.Exists(), false)
	tu.AssertEqual(t, absent.LessThan(cell(pr.BorderNone, 3)), true)
	tu.AssertEqual(t, cell(pr.BorderNone, 3).Width, 0)

	// hidden wins over everything
	tu.AssertEqual(t, cell(pr.BorderDouble, 10).LessThan(cell(pr.BorderHidden, 1)), true)
	tu.AssertEqual(t, cell(pr.BorderHidden, 1).LessThan(cell(pr.BorderDouble, 10)), false)
	tu.AssertEqual(t, chooseBorder(cell(pr.BorderSolid, 4), cell(pr.BorderHidden, 1)), absent)

	// none loses
	tu.AssertEqual(t, cell(pr.BorderNone, 3).LessThan(cell(pr.BorderDotted, 1)), true)
	tu.AssertEqual(t, cell(pr.BorderDotted, 1).LessThan(cell(pr.BorderNone, 3)), false)

	// wider, then style, then precedence
	tu.AssertEqual(t, cell(pr.BorderDouble, 2).LessThan(cell(pr.BorderDotted, 3)), true)
	tu.AssertEqual(t, cell(pr.BorderSolid, 3).LessThan(cell(pr.BorderDouble, 3)), true)
	tu.AssertEqual(t, cell(pr.BorderInset, 3).LessThan(cell(pr.BorderRidge, 3)), true)
	row := newCollapsedBorderValue(solid(3), PrecedenceRow)
	tu.AssertEqual(t, row.LessThan(cell(pr.BorderSolid, 3)), true)
	tu.AssertEqual(t, cell(pr.BorderSolid, 3).LessThan(row), false)

	// ties keep the first argument
	left := CollapsedBorderValue{Style: pr.BorderSolid, Width: 2, Color: pr.White, Precedence: PrecedenceCell}
	right := CollapsedBorderValue{Style: pr.BorderSolid, Width: 2, Color: pr.Black, Precedence: PrecedenceCell}
	tu.AssertEqual(t, chooseBorder(left, right), left)
	tu.AssertEqual(t, chooseBorder(right, left), right)
}

func TestCollapsedBorderHalves(t *testing.T) {
	table := newTestTable(true)
	_, rows := table.testSection(pr.DisplayTableRowGroup, 1)
	cell1 := table.styledCell(rows[0], map[pr.Side]pr.Border{pr.Bottom: solid(10)})
	cell2 := table.styledCell(rows[0], map[pr.Side]pr.Border{
		pr.Top: solid(3), pr.Bottom: solid(3), pr.Left: solid(15), pr.Right: solid(15),
	})

	grid := table.Recalc()
	widths := func(cell CellID) [4]int {
		return [4]int{
			grid.CellBorderWidth(cell, pr.Left),
			grid.CellBorderWidth(cell, pr.Right),
			grid.CellBorderWidth(cell, pr.Top),
			grid.CellBorderWidth(cell, pr.Bottom),
		}
	}
	tu.AssertEqual(t, widths(cell1), [4]int{0, 7, 0, 5})
	tu.AssertEqual(t, widths(cell2), [4]int{8, 7, 2, 1})

	tu.AssertEqual(t, grid.CollapsedBorders(cell1).End, grid.CollapsedBorders(cell2).Start)
	tu.AssertEqual(t, grid.CollapsedBorders(cell1).End.Width, 15)
	tu.AssertEqual(t, grid.CollapsedBorders(cell1).After.Precedence, PrecedenceCell)

	tu.AssertEqual(t, grid.TableBorderWidth(pr.Left), 0)
	tu.AssertEqual(t, grid.TableBorderWidth(pr.Right), 8)
	tu.AssertEqual(t, grid.TableBorderWidth(pr.Top), 1)
	tu.AssertEqual(t, grid.TableBorderWidth(pr.Bottom), 5)
	start, end := grid.CollapsedOuterBorderOverflow()
	tu.AssertEqual(t, [2]int{start, end}, [2]int{0, 0})

	c2 := table.Cell(cell2)
	c2.Width, c2.Height = 50, 20
	tu.AssertEqual(t, grid.CellVisualOverflow(cell2), Geometry{X: -7, Y: -1, Width: 65, Height: 26})
}

func TestCollapsedBordersIdempotent(t *testing.T) {
	table := newTestTable(true)
	_, rows := table.testSection(pr.DisplayTableRowGroup, 2)
	var cells []CellID
	for _, row := range rows {
		for i := 0; i < 2; i++ {
			cells = append(cells, table.styledCell(row, map[pr.Side]pr.Border{pr.Top: solid(i + 1), pr.Left: solid(2)}))
		}
	}

	grid := table.Recalc()
	grid.RecalcCollapsedBorders()
	before := make([]CollapsedBorderValues, len(cells))
	for i, cell := range cells {
		tu.AssertEqual(t, grid.UpdateCollapsedBorderValues(cell), false)
		before[i] = grid.CollapsedBorders(cell)
	}
	// shared edges agree
	tu.AssertEqual(t, before[0].End, before[1].Start)
	tu.AssertEqual(t, before[0].After, before[2].Before)
	tu.AssertEqual(t, before[1].After, before[3].Before)
	tu.AssertEqual(t, before[3].Before.Width, 2)

	// a full invalidation without changes gives the same values
	table.InvalidateCollapsedBorders()
	for i, cell := range cells {
		tu.AssertEqual(t, grid.UpdateCollapsedBorderValues(cell), false)
		tu.AssertEqual(t, grid.CollapsedBorders(cell), before[i])
	}

	style := *table.Cell(cells[3]).Style()
	style.Border[pr.Top] = solid(6)
	table.SetStyle(cells[3].Ref(), style)
	tu.AssertEqual(t, grid.UpdateCollapsedBorderValues(cells[3]), true)
	tu.AssertEqual(t, grid.CollapsedBorders(cells[1]).After.Width, 6)
}

func TestCollapsedBordersHidden(t *testing.T) {
	table := newTestTable(true)
	_, rows := table.testSection(pr.DisplayTableRowGroup, 1)
	cell1 := table.styledCell(rows[0], map[pr.Side]pr.Border{
		pr.Right: {Style: pr.BorderHidden, Width: 1}, pr.Top: solid(2),
	})
	cell2 := table.styledCell(rows[0], map[pr.Side]pr.Border{pr.Left: solid(5), pr.Top: solid(2)})

	grid := table.Recalc()
	tu.AssertEqual(t, grid.CollapsedBorders(cell1).End, CollapsedBorderValue{})
	tu.AssertEqual(t, grid.CollapsedBorders(cell2).Start, CollapsedBorderValue{})
	tu.AssertEqual(t, grid.CellBorderWidth(cell2, pr.Left), 0)
}

func TestCollapsedBordersZeroWidth(t *testing.T) {
	table := newTestTable(true)
	_, rows := table.testSection(pr.DisplayTableRowGroup, 1)
	// the first cell keeps a visible border, the second has none
	first := table.styledCell(rows[0], map[pr.Side]pr.Border{pr.Top: solid(2)})
	second := table.cell(rows[0])

	grid := table.Recalc()
	b1, b2 := grid.CollapsedBorders(first), grid.CollapsedBorders(second)
	tu.AssertEqual(t, b1.Before.Width, 2)
	tu.AssertEqual(t, b1.End, CollapsedBorderValue{})
	tu.AssertEqual(t, b1.End, b2.Start)
	tu.AssertEqual(t, b2, CollapsedBorderValues{})
}

func TestCollapsedBordersPrecedence(t *testing.T) {
	table := newTestTable(true)
	tableStyle := *table.Style()
	tableStyle.Border[pr.Left] = solid(1)
	tableStyle.Border[pr.Top] = solid(7)
	table.SetStyle(TableRef(), tableStyle)

	groupStyle := table.childStyle(pr.DisplayTableColumnGroup)
	groupStyle.Border[pr.Left] = solid(4)
	group := table.AppendColumnGroup(groupStyle, 1)
	table.AppendColumn(group, table.childStyle(pr.DisplayTableColumn), 2)

	section, rows := table.testSection(pr.DisplayTableRowGroup, 1)
	rowStyle := table.childStyle(pr.DisplayTableRow)
	rowStyle.Border[pr.Top] = solid(7)
	table.SetStyle(rows[0].Ref(), rowStyle)
	sectionStyle := table.childStyle(pr.DisplayTableRowGroup)
	sectionStyle.Border[pr.Bottom] = solid(9)
	table.SetStyle(section.Ref(), sectionStyle)

	first := table.cell(rows[0])
	second := table.cell(rows[0])

	grid := table.Recalc()
	b1 := grid.CollapsedBorders(first)
	tu.AssertEqual(t, b1.Start.Width, 4)
	tu.AssertEqual(t, b1.Start.Precedence, PrecedenceColumnGroup)
	// the row wins over the table for the same width and style
	tu.AssertEqual(t, b1.Before.Width, 7)
	tu.AssertEqual(t, b1.Before.Precedence, PrecedenceRow)
	tu.AssertEqual(t, b1.After.Precedence, PrecedenceRowGroup)

	b2 := grid.CollapsedBorders(second)
	// the group only adjoins the first column
	tu.AssertEqual(t, b2.Start.Width, 0)
	tu.AssertEqual(t, b2.After.Width, 9)
	tu.AssertEqual(t, grid.TableBorderWidth(pr.Bottom), 5)
	tu.AssertEqual(t, grid.TableBorderWidth(pr.Left), 2)
}

func TestCollapsedBordersRTL(t *testing.T) {
	table := newTestTable(true)
	style := *table.Style()
	style.Direction = pr.RTL
	table.SetStyle(TableRef(), style)
	_, rows := table.testSection(pr.DisplayTableRowGroup, 1)
	first := table.styledCell(rows[0], map[pr.Side]pr.Border{pr.Left: solid(9)})
	second := table.cell(rows[0])

	grid := table.Recalc()
	tu.AssertEqual(t, grid.CollapsedBorders(first).End.Width, 9)
	tu.AssertEqual(t, grid.CollapsedBorders(second).Start.Width, 9)
	tu.AssertEqual(t, grid.CellBorderWidth(first, pr.Left), 5)
	tu.AssertEqual(t, grid.CellBorderWidth(second, pr.Right), 4)
	tu.AssertEqual(t, grid.CollapsedBorderHalf(second, pr.Start, true), 5)
	tu.AssertEqual(t, grid.TableBorderWidth(pr.Left), 0)
}

func TestSeparateBorders(t *testing.T) {
	table := newTestTable(false)
	_, rows := table.testSection(pr.DisplayTableRowGroup, 1)
	cell := table.styledCell(rows[0], map[pr.Side]pr.Border{pr.Left: solid(9)})
	tableStyle := *table.Style()
	tableStyle.Border[pr.Top] = solid(3)
	table.SetStyle(TableRef(), tableStyle)

	grid := table.Recalc()
	tu.AssertEqual(t, grid.CollapsedBorders(cell), CollapsedBorderValues{})
	tu.AssertEqual(t, grid.CellBorderWidth(cell, pr.Left), 9)
	tu.AssertEqual(t, grid.TableBorderWidth(pr.Top), 3)

	// switching to the collapsing model
	tableStyle.BorderCollapse = pr.Collapse
	table.SetStyle(TableRef(), tableStyle)
	tu.AssertEqual(t, grid.CollapsedBorders(cell).Start.Width, 9)
	tu.AssertEqual(t, grid.CollapsedBorders(cell).Before.Width, 3)
	tu.AssertEqual(t, grid.CollapsedBorders(cell).Before.Precedence, PrecedenceTable)
	tu.AssertEqual(t, grid.TableBorderWidth(pr.Top), 1)
}
