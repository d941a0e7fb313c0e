package main

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	pr "github.com/benoitkugler/tablelayout/css/properties"
	bo "github.com/benoitkugler/tablelayout/html/boxes"
	"github.com/benoitkugler/tablelayout/utils/testutils/tracer"
)

type geometry struct {
	X      int `yaml:"x" cbor:"x"`
	Y      int `yaml:"y" cbor:"y"`
	Width  int `yaml:"width" cbor:"width"`
	Height int `yaml:"height" cbor:"height"`
}

func newGeometry(g bo.Geometry) geometry {
	return geometry{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
}

type cellReport struct {
	Row      int      `yaml:"row" cbor:"row"`
	Column   int      `yaml:"column" cbor:"column"`
	ColSpan  int      `yaml:"colspan" cbor:"colspan"`
	RowSpan  int      `yaml:"rowspan" cbor:"rowspan"`
	Geometry geometry `yaml:"geometry" cbor:"geometry"`
	// intrinsic paddings, implementing the vertical alignment
	PaddingBefore int `yaml:"padding_before" cbor:"padding_before"`
	PaddingAfter  int `yaml:"padding_after" cbor:"padding_after"`
}

type rowReport struct {
	Geometry geometry     `yaml:"geometry" cbor:"geometry"`
	Baseline int          `yaml:"baseline" cbor:"baseline"`
	Cells    []cellReport `yaml:"cells" cbor:"cells"`
}

type sectionReport struct {
	Kind     string      `yaml:"kind" cbor:"kind"`
	Geometry geometry    `yaml:"geometry" cbor:"geometry"`
	RowPos   []int       `yaml:"row_positions" cbor:"row_positions"`
	Rows     []rowReport `yaml:"rows" cbor:"rows"`
}

type tableReport struct {
	Geometry  geometry        `yaml:"geometry" cbor:"geometry"`
	BoxY      int             `yaml:"box_y" cbor:"box_y"`
	BoxHeight int             `yaml:"box_height" cbor:"box_height"`
	Columns   []int           `yaml:"column_positions" cbor:"column_positions"`
	Captions  []geometry      `yaml:"captions,omitempty" cbor:"captions,omitempty"`
	Sections  []sectionReport `yaml:"sections" cbor:"sections"`
}

type layoutReport struct {
	File   string        `yaml:"file" cbor:"file"`
	Tables []tableReport `yaml:"tables" cbor:"tables"`
}

// newTableReport reads the geometry of a laid out table.
func newTableReport(table *bo.Table) tableReport {
	g := table.Recalc()
	out := tableReport{
		Geometry:  newGeometry(table.Geometry),
		BoxY:      table.BoxY,
		BoxHeight: table.BoxHeight,
		Columns:   append([]int(nil), g.EffectiveColumnPositions()...),
	}
	for _, id := range table.Captions() {
		out.Captions = append(out.Captions, newGeometry(table.Caption(id).Geometry))
	}
	for _, id := range g.Sections() {
		section := table.Section(id)
		sr := sectionReport{
			Kind:     section.SectionKind().String(),
			Geometry: newGeometry(section.Geometry),
			RowPos:   append([]int(nil), section.RowPos...),
		}
		for _, rowID := range section.Rows() {
			row := table.Row(rowID)
			rr := rowReport{Geometry: newGeometry(row.Geometry), Baseline: row.Baseline}
			for _, cellID := range row.Cells() {
				cell := table.Cell(cellID)
				rr.Cells = append(rr.Cells, cellReport{
					Row:           g.RowIndex(cellID),
					Column:        g.AbsoluteColumnIndex(cellID),
					ColSpan:       cell.ColSpan(),
					RowSpan:       g.ResolvedRowSpan(cellID),
					Geometry:      newGeometry(cell.Geometry),
					PaddingBefore: cell.IntrinsicPaddingBefore,
					PaddingAfter:  cell.IntrinsicPaddingAfter,
				})
			}
			sr.Rows = append(sr.Rows, rr)
		}
		out.Sections = append(out.Sections, sr)
	}
	return out
}

type borderReport struct {
	Style      string `yaml:"style" cbor:"style"`
	Width      int    `yaml:"width" cbor:"width"`
	Color      string `yaml:"color" cbor:"color"`
	Precedence string `yaml:"precedence" cbor:"precedence"`
}

func newBorderReport(v bo.CollapsedBorderValue) borderReport {
	return borderReport{
		Style:      v.Style.String(),
		Width:      v.Width,
		Color:      v.Color.String(),
		Precedence: v.Precedence.String(),
	}
}

type cellBordersReport struct {
	Section int          `yaml:"section" cbor:"section"`
	Row     int          `yaml:"row" cbor:"row"`
	Column  int          `yaml:"column" cbor:"column"`
	Start   borderReport `yaml:"start" cbor:"start"`
	End     borderReport `yaml:"end" cbor:"end"`
	Before  borderReport `yaml:"before" cbor:"before"`
	After   borderReport `yaml:"after" cbor:"after"`
}

type tableBordersReport struct {
	Collapse bool `yaml:"collapse" cbor:"collapse"`
	// outer border widths, in top, right, bottom, left order
	Outer [4]int              `yaml:"outer" cbor:"outer"`
	Cells []cellBordersReport `yaml:"cells,omitempty" cbor:"cells,omitempty"`
}

type bordersReport struct {
	File   string               `yaml:"file" cbor:"file"`
	Tables []tableBordersReport `yaml:"tables" cbor:"tables"`
}

func newTableBordersReport(table *bo.Table) tableBordersReport {
	g := table.Recalc()
	out := tableBordersReport{Collapse: table.ShouldCollapseBorders()}
	for _, side := range [4]pr.Side{pr.Top, pr.Right, pr.Bottom, pr.Left} {
		out.Outer[side] = g.TableBorderWidth(side)
	}
	if !out.Collapse {
		return out
	}
	for sectionIndex, id := range g.Sections() {
		for _, rowID := range table.Section(id).Rows() {
			for _, cellID := range table.Row(rowID).Cells() {
				values := g.CollapsedBorders(cellID)
				out.Cells = append(out.Cells, cellBordersReport{
					Section: sectionIndex,
					Row:     g.RowIndex(cellID),
					Column:  g.AbsoluteColumnIndex(cellID),
					Start:   newBorderReport(values.Start),
					End:     newBorderReport(values.End),
					Before:  newBorderReport(values.Before),
					After:   newBorderReport(values.After),
				})
			}
		}
	}
	return out
}

var cborMode cbor.EncMode

func init() {
	var err error
	cborMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cbor encoder initialization failed: " + err.Error())
	}
}

// encode writes [v] in the yaml or cbor format.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatCBOR:
		return cborMode.NewEncoder(w).Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// dumpText writes the tree of the table parts of every document.
func dumpText(w io.Writer, docs []document) {
	tr := tracer.NewWriterTracer(w)
	for _, doc := range docs {
		tr.Dump("# " + doc.file)
		for i, table := range doc.tables {
			tr.DumpTable(table, fmt.Sprintf("table %d", i))
		}
	}
}
