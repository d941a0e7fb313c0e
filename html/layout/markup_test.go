package layout_test

import (
	"io"
	"testing"

	bo "github.com/benoitkugler/tablelayout/html/boxes"
	"github.com/benoitkugler/tablelayout/html/layout"
	"github.com/benoitkugler/tablelayout/html/tree"
	"github.com/benoitkugler/tablelayout/logger"
	tu "github.com/benoitkugler/tablelayout/utils/testutils"
)

// Tests for the layout of tables built from markup.
// Text is set in a 7x13 bitmap font: "a" is 7px wide and one line is 13px high.

func init() {
	logger.ProgressLogger.SetOutput(io.Discard)
}

func renderTable(t *testing.T, markup string, availableWidth int) *bo.Table {
	t.Helper()
	tables, err := tree.ParseTablesString(markup)
	tu.AssertNoErr(t, err)
	if len(tables) != 1 {
		t.Fatalf("expected one table, got %d", len(tables))
	}
	layout.Layout(tables[0], layout.Options{AvailableWidth: availableWidth, HTMLTable: true})
	return tables[0]
}

// unpackRows returns the cells of the rows of the first section.
func unpackRows(table *bo.Table) [][]*bo.Cell {
	var out [][]*bo.Cell
	section := table.Section(table.SectionsDOM()[0])
	for _, rowID := range section.Rows() {
		var cells []*bo.Cell
		for _, cellID := range table.Row(rowID).Cells() {
			cells = append(cells, table.Cell(cellID))
		}
		out = append(out, cells)
	}
	return out
}

func TestLayoutTableFixed3(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := renderTable(t, `
      <table cellpadding="0" style="table-layout: fixed; border-spacing: 10px; width: 110px">
        <tr>
          <td style="width: 40px">a</td>
          <td>b</td>
        </tr>
        <tr>
          <td style="width: 50px">a</td>
          <td style="width: 30px">b</td>
        </tr>
      </table>
    `, 800)
	rows := unpackRows(table)
	td1, td2 := rows[0][0], rows[0][1]
	td3, td4 := rows[1][0], rows[1][1]
	tu.AssertEqual(t, td1.X, 10) // border-spacing
	tu.AssertEqual(t, td3.X, 10)
	tu.AssertEqual(t, td1.Width, 40)
	tu.AssertEqual(t, td2.Width, 40) // 110 - 40 - 3 * border-spacing
	tu.AssertEqual(t, td2.X, 60)     // 10 + 40 + border-spacing
	tu.AssertEqual(t, td4.X, 60)
	// only the first row sets the widths
	tu.AssertEqual(t, td3.Width, 40)
	tu.AssertEqual(t, td4.Width, 40)
	tu.AssertEqual(t, table.Width, 110)
}

func TestLayoutTableFixed4(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := renderTable(t, `
      <table cellpadding="0" style="table-layout: fixed; border-spacing: 0; width: 100px">
        <colgroup>
          <col />
          <col style="width: 20px" />
        </colgroup>
        <tr>
          <td></td>
          <td style="width: 40px">a</td>
        </tr>
      </table>
    `, 800)
	rows := unpackRows(table)
	td1, td2 := rows[0][0], rows[0][1]
	tu.AssertEqual(t, td1.X, 0)
	tu.AssertEqual(t, td1.Width, 80) // 100 - 20
	tu.AssertEqual(t, td2.X, 80)
	tu.AssertEqual(t, td2.Width, 20) // the column wins over the cell
	tu.AssertEqual(t, table.Width, 100)
}

func TestLayoutTableAuto1(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := renderTable(t, `
      <table cellpadding="0" style="border-spacing: 10px">
        <tr>
          <td>a</td>
          <td>a</td>
        </tr>
      </table>
    `, 100)
	rows := unpackRows(table)
	td1, td2 := rows[0][0], rows[0][1]
	tu.AssertEqual(t, td1.X, 10) // spacing
	tu.AssertEqual(t, td1.Width, 7)
	tu.AssertEqual(t, td2.X, 27) // 10 + 7 + spacing
	tu.AssertEqual(t, td2.Width, 7)
	tu.AssertEqual(t, table.Width, 44) // 3 * spacing + 2 * 7
}

func TestLayoutTableAuto2(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := renderTable(t, `
      <table cellpadding="0" style="border-spacing: 1px">
        <tr>
          <td style="border: 3px solid black">a</td>
          <td style="border: 3px solid black">a a</td>
        </tr>
      </table>
    `, 50)
	rows := unpackRows(table)
	td1, td2 := rows[0][0], rows[0][1]
	tu.AssertEqual(t, td1.X, 1)      // border-spacing
	tu.AssertEqual(t, td1.Width, 13) // 7 + 2 * border
	tu.AssertEqual(t, td2.X, 15)     // 1 + 13 + spacing
	tu.AssertEqual(t, td2.Width, 27) // 3 * 7 + 2 * border
	tu.AssertEqual(t, table.Width, 43)
}

func TestLayoutTableAutoShrink(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	// the words do not fit on one line: both cells break their text
	table := renderTable(t, `
      <table cellpadding="0" cellspacing="0">
        <tr>
          <td>aa aa</td>
          <td>bb bb</td>
        </tr>
      </table>
    `, 40)
	rows := unpackRows(table)
	td1, td2 := rows[0][0], rows[0][1]
	tu.AssertEqual(t, table.Width, 40)
	tu.AssertEqual(t, td1.Width+td2.Width, 40)
	tu.AssertEqual(t, td1.Height, 26) // 2 lines
	tu.AssertEqual(t, td2.Height, 26)
}

func TestTableBadIntTdThSpan(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := renderTable(t, `
      <table>
        <tr>
          <td colspan="bad"></td>
          <td rowspan="23.4"></td>
        </tr>
        <tr>
          <th colspan="x" rowspan="-2"></th>
          <th></th>
        </tr>
      </table>
    `, 800)
	rows := unpackRows(table)
	td1, td2 := rows[0][0], rows[0][1]
	tu.AssertEqual(t, td1.Width, td2.Width)
	th1, th2 := rows[1][0], rows[1][1]
	tu.AssertEqual(t, th1.Width, th2.Width)

	g := table.Recalc()
	cells := table.Row(table.Section(table.SectionsDOM()[0]).Rows()[1]).Cells()
	tu.AssertEqual(t, g.AbsoluteColumnIndex(cells[1]), 2) // after the rowspan
	tu.AssertEqual(t, g.ResolvedRowSpan(table.Row(table.Section(table.SectionsDOM()[0]).Rows()[0]).Cells()[1]), 2)
}

func TestTableBadIntColSpan(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := renderTable(t, `
      <table cellpadding="0">
        <colgroup>
          <col span="bad" style="width:25px" />
        </colgroup>
        <tr>
          <td>a</td>
          <td>a</td>
        </tr>
      </table>
    `, 800)
	rows := unpackRows(table)
	tu.AssertEqual(t, rows[0][0].Width, 25)
	tu.AssertEqual(t, rows[0][1].Width, 7)
}

func TestNestedTable(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := renderTable(t, `
      <table cellpadding="0" cellspacing="0">
        <tr>
          <td>aaa</td>
          <td><table cellpadding="0" cellspacing="0"><tr><td>a</td><td>aa</td></tr></table></td>
        </tr>
      </table>
    `, 800)
	rows := unpackRows(table)
	tu.AssertEqual(t, rows[0][0].Width, 21)
	tu.AssertEqual(t, rows[0][1].Width, 21) // 7 + 14
	tu.AssertEqual(t, table.Width, 42)
	tu.AssertEqual(t, table.Height, 13)
}
