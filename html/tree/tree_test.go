package tree

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	pr "github.com/benoitkugler/tablelayout/css/properties"
	bo "github.com/benoitkugler/tablelayout/html/boxes"
	"github.com/benoitkugler/tablelayout/html/layout"
	"github.com/benoitkugler/tablelayout/logger"
	tu "github.com/benoitkugler/tablelayout/utils/testutils"
)

func init() {
	logger.ProgressLogger.SetOutput(io.Discard)
}

func parseOne(t *testing.T, markup string) *bo.Table {
	t.Helper()
	tables, err := ParseTablesString(markup)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	return tables[0]
}

// firstCell returns the first cell of the first row of the first section.
func firstCell(t *testing.T, table *bo.Table) *bo.Cell {
	t.Helper()
	sections := table.SectionsDOM()
	require.NotEmpty(t, sections)
	rows := table.Section(sections[0]).Rows()
	require.NotEmpty(t, rows)
	cells := table.Row(rows[0]).Cells()
	require.NotEmpty(t, cells)
	return table.Cell(cells[0])
}

func TestParseStructure(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	tables, err := ParseTablesString(`
	<p>before</p>
	<table>
		<caption>Title</caption>
		<colgroup span="2"></colgroup>
		<col span="3">
		<thead><tr><th>a</th></tr></thead>
		<tr><td colspan="2" rowspan="0">b</td></tr>
	</table>
	<div><table><tr><td>c</td></tr></table></div>
	`)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	table := tables[0]
	require.Len(t, table.Captions(), 1)
	require.Len(t, table.Columns(), 2)
	require.Equal(t, 2, table.Column(table.Columns()[0]).Span())
	require.Equal(t, 3, table.Column(table.Columns()[1]).Span())

	sections := table.SectionsDOM()
	require.Len(t, sections, 2)
	require.Equal(t, bo.Header, table.Section(sections[0]).SectionKind())
	require.Equal(t, bo.Body, table.Section(sections[1]).SectionKind())

	cell := table.Cell(table.Row(table.Section(sections[1]).Rows()[0]).Cells()[0])
	require.Equal(t, 2, cell.ColSpan())
	require.Equal(t, 0, cell.ParsedRowSpan())
}

func TestColgroupWithColumns(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := parseOne(t, `<table><colgroup span="5"><col span="2"><col></colgroup><tr><td>a</td></tr></table>`)
	require.Len(t, table.Columns(), 1)
	group := table.Column(table.Columns()[0])
	require.True(t, group.IsGroup())
	require.Len(t, group.Children(), 2)
	// the span attribute of a group with columns is ignored
	require.Equal(t, 3, group.Span())
}

func TestPresentationalHints(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := parseOne(t, `<table border="3" cellspacing="5" cellpadding="4" width="200">
		<tr><td valign="TOP" width="50%" height="30">x</td></tr>
	</table>`)
	style := table.Style()
	require.Equal(t, pr.Spacing{H: 5, V: 5}, style.BorderSpacing)
	require.Equal(t, pr.FixedPx(200), style.Width)
	require.Equal(t, pr.BorderBox, style.BoxSizing)
	for _, border := range style.Border {
		require.Equal(t, pr.BorderOutset, border.Style)
		require.Equal(t, 3, border.Width)
	}

	cell := firstCell(t, table).Style()
	require.Equal(t, pr.AlignTop, cell.VerticalAlign)
	require.Equal(t, pr.Percent(50), cell.Width)
	require.Equal(t, pr.FixedPx(30), cell.Height)
	for i := range cell.Padding {
		require.Equal(t, pr.FixedPx(4), cell.Padding[i])
		require.Equal(t, pr.BorderInset, cell.Border[i].Style)
		require.Equal(t, 1, cell.Border[i].Width)
	}
}

func TestBorderZeroAttribute(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := parseOne(t, `<table border="0"><tr><td>x</td></tr></table>`)
	require.Equal(t, 0, table.Style().Border[0].Width)
	require.Equal(t, pr.BorderNone, firstCell(t, table).Style().Border[0].Style)
}

func TestCellPaddingOwnCellsOnly(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	outer := parseOne(t, `<table cellpadding="10"><tr><td>
		<table><tr><td>inner</td></tr></table>
	</td></tr></table>`)
	cell := firstCell(t, outer)
	require.Equal(t, pr.FixedPx(10), cell.Style().Padding[0])

	nested, ok := cell.Content().(tableContent)
	require.True(t, ok)
	require.Equal(t, pr.FixedPx(1), firstCell(t, nested.table).Style().Padding[0])
}

func TestStyleAttribute(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := parseOne(t, `<table width="100" style="width: 300px; border-collapse: collapse">
		<tbody style="vertical-align: bottom">
			<tr><td>a</td><td style="vertical-align: top">b</td></tr>
		</tbody>
	</table>`)
	// the style attribute wins over the hints
	require.Equal(t, pr.FixedPx(300), table.Style().Width)
	require.True(t, table.ShouldCollapseBorders())

	row := table.Row(table.Section(table.SectionsDOM()[0]).Rows()[0])
	require.Equal(t, pr.AlignBottom, row.Style().VerticalAlign)
	require.Equal(t, pr.AlignBottom, table.Cell(row.Cells()[0]).Style().VerticalAlign)
	require.Equal(t, pr.AlignTop, table.Cell(row.Cells()[1]).Style().VerticalAlign)
}

func TestInvalidStyleAttribute(t *testing.T) {
	logs := tu.CaptureLogs()
	table := parseOne(t, `<table style="width: nonsense-value"><tr><td>a</td></tr></table>`)
	logs.CheckEqual([]string{
		"Ignored `width: nonsense-value`, invalid or unsupported values for a known CSS property.",
	}, t)
	require.Equal(t, pr.Dimension{}, table.Style().Width)
}

func TestDisplayNone(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	tables, err := ParseTablesString(`
	<table style="display: none"><tr><td>hidden</td></tr></table>
	<div style="display: none"><table><tr><td>hidden</td></tr></table></div>
	<table><tr style="display: none"><td>a</td></tr><tr><td>b</td></tr></table>`)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Section(tables[0].SectionsDOM()[0]).Rows(), 1)
}

func TestSectionDisplayOverride(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := parseOne(t, `<table>
		<tbody style="display: table-header-group"><tr><td>a</td></tr></tbody>
		<tfoot style="display: block"><tr><td>b</td></tr></tfoot>
	</table>`)
	sections := table.SectionsDOM()
	require.Equal(t, bo.Header, table.Section(sections[0]).SectionKind())
	require.Equal(t, bo.Footer, table.Section(sections[1]).SectionKind())
}

func TestDirection(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for _, test := range []struct {
		markup string
		exp    pr.Direction
	}{
		{`<table><tr><td>a</td></tr></table>`, pr.LTR},
		{`<table dir="rtl"><tr><td>a</td></tr></table>`, pr.RTL},
		{`<div dir="rtl"><table><tr><td>a</td></tr></table></div>`, pr.RTL},
		{`<div style="direction: rtl"><table dir="ltr"><tr><td>a</td></tr></table></div>`, pr.LTR},
		{`<table dir="auto"><tr><td>שלום</td></tr></table>`, pr.RTL},
		{`<table dir="auto"><tr><td>123 مرحبا</td></tr></table>`, pr.RTL},
		{`<table dir="auto"><tr><td>42 abc</td></tr></table>`, pr.LTR},
		{`<table dir="auto"><tr><td><span dir="rtl">שלום</span> abc</td></tr></table>`, pr.LTR},
	} {
		table := parseOne(t, test.markup)
		require.Equal(t, test.exp, table.Style().Direction, test.markup)
		require.Equal(t, test.exp, firstCell(t, table).Style().Direction, test.markup)
	}
}

func TestTextContent(t *testing.T) {
	tc := newTextContent([]string{"  ab   cde \n", ""})
	require.NotNil(t, tc)
	minW, maxW := tc.IntrinsicWidths()
	require.Equal(t, 3*7, minW)
	require.Equal(t, 6*7, maxW)

	h, b := tc.Layout(42)
	require.Equal(t, 13, h)
	require.Equal(t, 11, b)
	h, _ = tc.Layout(21)
	require.Equal(t, 2*13, h)
	// a word wider than the line still takes one line
	h, _ = tc.Layout(0)
	require.Equal(t, 2*13, h)

	require.Nil(t, newTextContent([]string{" \n\t ", ""}))
}

func TestCellContent(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := parseOne(t, `<table><tr>
		<td>ab<br>cde</td>
		<td><p>one</p><p>two</p></td>
		<td>  </td>
		<td>x<script>ignored text</script></td>
	</tr></table>`)
	cells := table.Row(table.Section(table.SectionsDOM()[0]).Rows()[0]).Cells()

	_, maxW := table.Cell(cells[0]).Content().IntrinsicWidths()
	require.Equal(t, 3*7, maxW)

	block, ok := table.Cell(cells[1]).Content().(blockContent)
	require.True(t, ok)
	require.Len(t, block.items, 2)
	h, b := block.Layout(100)
	require.Equal(t, 2*13, h)
	require.Equal(t, 11, b)

	require.Nil(t, table.Cell(cells[2]).Content())

	_, maxW = table.Cell(cells[3]).Content().IntrinsicWidths()
	require.Equal(t, 7, maxW)
}

func TestNestedTableContent(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	outer := parseOne(t, `<table><tr><td>
		<table cellspacing="0"><tr><td style="padding: 0; vertical-align: baseline">abc</td></tr></table>
	</td></tr></table>`)
	content := firstCell(t, outer).Content()
	nested, ok := content.(tableContent)
	require.True(t, ok)

	minW, maxW := content.IntrinsicWidths()
	require.Equal(t, 3*7, minW)
	require.Equal(t, 3*7, maxW)

	h, b := content.Layout(50)
	require.Equal(t, 13, h)
	require.Equal(t, 11, b)
	require.Equal(t, 3*7, nested.table.Width)
}

func TestLayoutMarkup(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	table := parseOne(t, `<table cellspacing="0">
		<tr><td style="padding: 0">abc</td><td style="padding: 0">de</td></tr>
	</table>`)
	layout.Layout(table, layout.Options{AvailableWidth: 800, HTMLTable: true})

	require.Equal(t, []int{0, 21, 35}, table.Recalc().EffectiveColumnPositions())
	require.Equal(t, 35, table.Width)
	require.Equal(t, 13, table.Height)
}

// element builds a node without going through the HTML parser,
// which always wraps rows in a body.
func element(a atom.Atom, children ...*html.Node) *html.Node {
	node := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, child := range children {
		node.AppendChild(child)
	}
	return node
}

func TestImplicitBody(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	tableNode := element(atom.Table,
		element(atom.Tr, element(atom.Td)),
		element(atom.Tr, element(atom.Td)),
		element(atom.Tbody, element(atom.Tr, element(atom.Td))),
		element(atom.Tr, element(atom.Td)),
	)
	root := pr.InitialStyle(pr.DisplayBlock)
	table := buildTable(tableNode, &root)

	sections := table.SectionsDOM()
	require.Len(t, sections, 3)
	require.Len(t, table.Section(sections[0]).Rows(), 2)
	require.Len(t, table.Section(sections[1]).Rows(), 1)
	require.Len(t, table.Section(sections[2]).Rows(), 1)
	require.Equal(t, pr.AlignMiddle, table.Section(sections[0]).Style().VerticalAlign)
}

func TestIgnoredTableChild(t *testing.T) {
	logs := tu.CaptureLogs()
	tableNode := element(atom.Table, element(atom.Div), element(atom.Tr, element(atom.Td)))
	root := pr.InitialStyle(pr.DisplayBlock)
	buildTable(tableNode, &root)
	logs.CheckEqual([]string{"Ignored <div> element in table"}, t)
}
