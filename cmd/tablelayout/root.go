package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	bo "github.com/benoitkugler/tablelayout/html/boxes"
	"github.com/benoitkugler/tablelayout/html/tree"
	"github.com/benoitkugler/tablelayout/logger"
	"github.com/benoitkugler/tablelayout/version"
)

// formatFlag implements pflag.Value, restricting the values to a list.
type formatFlag struct {
	value   string
	choices []string
}

func newFormatFlag(choices ...string) *formatFlag {
	return &formatFlag{value: choices[0], choices: choices}
}

func (f *formatFlag) String() string { return f.value }

func (f *formatFlag) Type() string { return "{" + strings.Join(f.choices, ",") + "}" }

func (f *formatFlag) Set(s string) error {
	for _, choice := range f.choices {
		if s == choice {
			f.value = s
			return nil
		}
	}
	return fmt.Errorf("invalid format %q, expected one of %s", s, strings.Join(f.choices, ", "))
}

const (
	formatYAML = "yaml"
	formatCBOR = "cbor"
	formatText = "text"
)

var _ pflag.Value = (*formatFlag)(nil)

func newRootCommand() *cobra.Command {
	var verbose int
	root := &cobra.Command{
		Use:           "tablelayout",
		Short:         "Lay out HTML tables",
		Long:          "Lay out the tables of HTML documents, with the CSS 2 automatic and fixed table layouts.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// stdout is reserved for the reports
			logger.ProgressLogger.SetOutput(cmd.ErrOrStderr())
			logger.WarningLogger.SetOutput(cmd.ErrOrStderr())
			switch {
			case verbose >= 2:
				logger.ProgressLogger.SetLevel(logrus.DebugLevel)
			case verbose == 1:
				logger.ProgressLogger.SetLevel(logrus.InfoLevel)
			default:
				logger.ProgressLogger.SetLevel(logrus.WarnLevel)
			}
		},
	}
	root.SetVersionTemplate(version.VersionString + "\n")
	root.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log the main steps on stderr (repeat to log the layout of each table)")

	root.AddCommand(newLayoutCommand(), newBordersCommand())
	return root
}

// document is a parsed input file.
type document struct {
	file   string
	tables []*bo.Table
}

// loadDocuments parses the [files] concurrently, calling [process] on each table
// of each file. With no file, stdin is used.
// The documents are returned in the order of [files].
func loadDocuments(ctx context.Context, files []string, stdin io.Reader, process func(*bo.Table)) ([]document, error) {
	if len(files) == 0 {
		tables, err := tree.ParseTables(stdin)
		if err != nil {
			return nil, fmt.Errorf("parsing stdin: %w", err)
		}
		for _, table := range tables {
			process(table)
		}
		return []document{{file: "-", tables: tables}}, nil
	}

	docs := make([]document, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			tables, err := tree.ParseTables(f)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", file, err)
			}
			for _, table := range tables {
				process(table)
			}
			logger.ProgressLogger.WithField("file", file).Infof("%d table(s) processed", len(tables))
			docs[i] = document{file: file, tables: tables}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
