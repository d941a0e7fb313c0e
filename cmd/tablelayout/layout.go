package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	bo "github.com/benoitkugler/tablelayout/html/boxes"
	"github.com/benoitkugler/tablelayout/html/layout"
	"github.com/benoitkugler/tablelayout/utils/testutils/tracer"
)

type layoutParams struct {
	width, height int
	format        *formatFlag
	trace         string
}

func (p *layoutParams) options() layout.Options {
	return layout.Options{AvailableWidth: p.width, AvailableHeight: p.height, HTMLTable: true}
}

func addLayoutFlags(fs *pflag.FlagSet, params *layoutParams) {
	fs.IntVarP(&params.width, "width", "w", 800, "width of the containing block, in pixels")
	fs.IntVar(&params.height, "height", 0, "height of the containing block, in pixels, used by percent heights (0 for unknown)")
	fs.VarP(params.format, "format", "f", "output format")
}

func newLayoutCommand() *cobra.Command {
	params := layoutParams{format: newFormatFlag(formatYAML, formatCBOR, formatText)}
	cmd := &cobra.Command{
		Use:   "layout [file...]",
		Short: "Print the geometry of the tables",
		Long: `Lay out every table of the given HTML files (or stdin) and print the geometry
of the table parts: sections and captions are relative to the table, rows and cells
to their section.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if params.width < 0 {
				return fmt.Errorf("invalid negative width %d", params.width)
			}
			return runLayout(cmd, args, &params)
		},
	}
	addLayoutFlags(cmd.Flags(), &params)
	cmd.Flags().StringVar(&params.trace, "trace", "", "write the table tree of each laid out table to this file")
	return cmd
}

func runLayout(cmd *cobra.Command, args []string, params *layoutParams) error {
	opts := params.options()
	docs, err := loadDocuments(cmd.Context(), args, cmd.InOrStdin(), func(table *bo.Table) {
		layout.Layout(table, opts)
	})
	if err != nil {
		return err
	}

	if params.trace != "" {
		f, err := os.Create(params.trace)
		if err != nil {
			return fmt.Errorf("creating trace file: %w", err)
		}
		tr := tracer.NewWriterTracer(f)
		for _, doc := range docs {
			for i, table := range doc.tables {
				tr.DumpTable(table, fmt.Sprintf("%s: table %d (available width %d)", doc.file, i, opts.AvailableWidth))
			}
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing trace file: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if params.format.value == formatText {
		dumpText(out, docs)
		return nil
	}
	reports := make([]layoutReport, len(docs))
	for i, doc := range docs {
		reports[i].File = doc.file
		for _, table := range doc.tables {
			reports[i].Tables = append(reports[i].Tables, newTableReport(table))
		}
	}
	return encode(out, params.format.value, reports)
}

func newBordersCommand() *cobra.Command {
	format := newFormatFlag(formatYAML, formatCBOR)
	cmd := &cobra.Command{
		Use:   "borders [file...]",
		Short: "Print the resolved collapsed borders",
		Long: `Resolve the borders of every cell of the tables using the collapsing border model,
and print, for each cell, the winning border of its four logical edges.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := loadDocuments(cmd.Context(), args, cmd.InOrStdin(), func(table *bo.Table) {
				table.Recalc().RecalcCollapsedBorders()
			})
			if err != nil {
				return err
			}
			reports := make([]bordersReport, len(docs))
			for i, doc := range docs {
				reports[i].File = doc.file
				for _, table := range doc.tables {
					reports[i].Tables = append(reports[i].Tables, newTableBordersReport(table))
				}
			}
			return encode(cmd.OutOrStdout(), format.value, reports)
		},
	}
	cmd.Flags().VarP(format, "format", "f", "output format")
	return cmd
}
