// Package layout computes the geometry of a table: the column widths,
// the row heights and the positions of the sections, rows, cells and captions.
//
// The automatic layout follows the behavior of the major browsers
// (see https://www.w3.org/TR/CSS21/tables.html#auto-table-layout),
// and the fixed layout is used for 'table-layout: fixed' tables
// with a specified width.
//
// The geometry is stored in the [boxes.Table] parts: sections and captions
// are relative to the table wrapper, rows and cells to their section.
package layout

import (
	"fmt"
	"os"
	"path/filepath"

	bo "github.com/benoitkugler/tablelayout/html/boxes"
	"github.com/benoitkugler/tablelayout/utils/testutils/tracer"
)

const (
	// if true, print debug information into Stdout
	debugMode = false
	traceMode = false
)

var traceLogger tracer.Tracer // used only when traceMode is true

func init() {
	if traceMode {
		traceLogger = tracer.NewTracer(filepath.Join(os.TempDir(), "trace_tablelayout.txt"))
	}
}

// Options describes the context of the table.
type Options struct {
	// AvailableWidth is the width of the containing block,
	// used for auto and percentage widths.
	AvailableWidth int
	// AvailableHeight is used for percentage heights.
	// Values <= 0 mean the height is not known, and percentages
	// resolve to 0.
	AvailableHeight int

	// HTMLTable is true for tables from a <table> element, whose
	// specified width and height include borders and paddings.
	HTMLTable bool
	// Nested is true for a table inside a cell. Such a table does not
	// grow its max width to satisfy its percent columns, unless its width is fixed.
	Nested bool
}

// Layout computes the geometry of [table], which is updated in place.
// The table is then marked as laid out.
func Layout(table *bo.Table, opts Options) {
	tl := newTableLayout(table, opts)
	tl.layout()

	if debugMode {
		fmt.Printf("table laid out: %d x %d, columns %v\n", table.Width, table.Height, tl.g.EffectiveColumnPositions())
	}
	if traceMode {
		traceLogger.DumpTable(table, fmt.Sprintf("layout (available width %d)", opts.AvailableWidth))
	}
}

// PreferredWidths returns the min-content and max-content widths
// of the border box of the table, which may be used by the container
// of the table. Captions are included.
func PreferredWidths(table *bo.Table, opts Options) (minWidth, maxWidth int) {
	return newTableLayout(table, opts).preferredWidths()
}
