// Package tracer provides a function to dump the geometry of a laid out
// table, which may be used in debug mode.
package tracer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benoitkugler/tablelayout/html/boxes"
)

type Tracer struct {
	out io.Writer
}

// NewTracer panics if an error occurs.
func NewTracer(outFile string) Tracer {
	f, err := os.Create(outFile)
	if err != nil {
		panic(err)
	}

	return Tracer{out: f}
}

// NewWriterTracer writes to [w].
func NewWriterTracer(w io.Writer) Tracer { return Tracer{out: w} }

func FormatGeometry(g boxes.Geometry) string {
	return fmt.Sprintf("%d %d %d %d", g.X, g.Y, g.Width, g.Height)
}

func (t Tracer) Dump(line string) {
	fmt.Fprintln(t.out, line)
}

// DumpTable writes the geometry of every part of the table,
// indented by nesting level.
func (t Tracer) DumpTable(table *boxes.Table, context string) {
	fmt.Fprintln(t.out, context)

	line := func(indent int, kind string, g boxes.Geometry, extra string) {
		fmt.Fprint(t.out, strings.Repeat(" ", indent))
		fmt.Fprintf(t.out, "%s: %s%s\n", kind, FormatGeometry(g), extra)
	}

	line(0, "table", table.Geometry, fmt.Sprintf(" (box %d %d)", table.BoxY, table.BoxHeight))
	for _, id := range table.Captions() {
		line(1, "caption", table.Caption(id).Geometry, "")
	}
	for _, id := range table.SectionsDOM() {
		section := table.Section(id)
		line(1, section.SectionKind().String(), section.Geometry, fmt.Sprintf(" rows %v", section.RowPos))
		for _, rowID := range section.Rows() {
			row := table.Row(rowID)
			line(2, "row", row.Geometry, fmt.Sprintf(" baseline %d", row.Baseline))
			for _, cellID := range row.Cells() {
				cell := table.Cell(cellID)
				line(3, "cell", cell.Geometry, fmt.Sprintf(" padding %d %d",
					cell.IntrinsicPaddingBefore, cell.IntrinsicPaddingAfter))
			}
		}
	}

	fmt.Fprintln(t.out)
}
