package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const twoCells = `<table cellspacing="0">
	<tr><td style="padding: 0">abc</td><td style="padding: 0">de</td></tr>
</table>`

// run executes the command line, returning stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFiles(t *testing.T, contents ...string) []string {
	t.Helper()
	dir := t.TempDir()
	var out []string
	for i, content := range contents {
		path := filepath.Join(dir, string(rune('a'+i))+".html")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		out = append(out, path)
	}
	return out
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "tablelayout 0.1.0\n", stdout)
}

func TestVerbose(t *testing.T) {
	_, stderr, err := run(t, twoCells, "layout")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	_, stderr, err = run(t, twoCells, "layout", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, `msg="Step 1 - Building tables"`)
	assert.Contains(t, stderr, "logger=tablelayout.progress")
	assert.NotContains(t, stderr, "table laid out")

	_, stderr, err = run(t, twoCells, "layout", "-vv")
	require.NoError(t, err)
	assert.Contains(t, stderr, `msg="table laid out"`)
	assert.Contains(t, stderr, "width=35")
}

func TestLayoutYAML(t *testing.T) {
	files := writeFiles(t, twoCells)
	stdout, _, err := run(t, "", "layout", files[0])
	require.NoError(t, err)

	var reports []layoutReport
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, files[0], reports[0].File)
	require.Len(t, reports[0].Tables, 1)

	table := reports[0].Tables[0]
	assert.Equal(t, []int{0, 21, 35}, table.Columns)
	assert.Equal(t, 35, table.Geometry.Width)
	assert.Equal(t, 13, table.Geometry.Height)
	require.Len(t, table.Sections, 1)
	assert.Equal(t, "tbody", table.Sections[0].Kind)
	require.Len(t, table.Sections[0].Rows, 1)
	cells := table.Sections[0].Rows[0].Cells
	require.Len(t, cells, 2)
	assert.Equal(t, geometry{X: 21, Y: 0, Width: 14, Height: 13}, cells[1].Geometry)
	assert.Equal(t, 1, cells[1].Column)
}

func TestLayoutWidthFlag(t *testing.T) {
	files := writeFiles(t, `<table cellspacing="0" width="100%"><tr><td style="padding: 0">abc</td></tr></table>`)
	stdout, _, err := run(t, "", "layout", "--width", "300", files[0])
	require.NoError(t, err)

	var reports []layoutReport
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &reports))
	assert.Equal(t, 300, reports[0].Tables[0].Geometry.Width)

	_, _, err = run(t, "", "layout", "--width", "-1", files[0])
	require.Error(t, err)
}

func TestLayoutInputOrder(t *testing.T) {
	contents := []string{
		`<table><tr><td>1</td></tr></table>`,
		`<p>no table</p>`,
		`<table><tr><td>1</td></tr></table><table><tr><td>2</td></tr></table>`,
		`<table><tr><td>1</td><td>2</td><td>3</td></tr></table>`,
	}
	files := writeFiles(t, contents...)
	stdout, _, err := run(t, "", append([]string{"layout"}, files...)...)
	require.NoError(t, err)

	var reports []layoutReport
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &reports))
	require.Len(t, reports, len(files))
	for i, report := range reports {
		assert.Equal(t, files[i], report.File)
	}
	assert.Len(t, reports[1].Tables, 0)
	assert.Len(t, reports[2].Tables, 2)
	assert.Len(t, reports[3].Tables[0].Columns, 4)
}

func TestLayoutCBOR(t *testing.T) {
	stdout, _, err := run(t, twoCells, "layout", "--format", "cbor")
	require.NoError(t, err)

	var reports []layoutReport
	require.NoError(t, cbor.Unmarshal([]byte(stdout), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "-", reports[0].File)
	assert.Equal(t, []int{0, 21, 35}, reports[0].Tables[0].Columns)
}

func TestLayoutText(t *testing.T) {
	stdout, _, err := run(t, twoCells, "layout", "-f", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# -\n")
	assert.Contains(t, stdout, "table: 0 0 35 13")
	assert.Contains(t, stdout, "   cell: 21 0 14 13")
}

func TestLayoutTrace(t *testing.T) {
	trace := filepath.Join(t.TempDir(), "trace.txt")
	_, _, err := run(t, twoCells, "layout", "--trace", trace)
	require.NoError(t, err)

	content, err := os.ReadFile(trace)
	require.NoError(t, err)
	assert.Contains(t, string(content), "-: table 0 (available width 800)")
}

func TestInvalidArguments(t *testing.T) {
	_, _, err := run(t, twoCells, "layout", "--format", "json")
	require.Error(t, err)

	_, _, err = run(t, "", "borders", "--format", "text")
	require.Error(t, err)

	missing := filepath.Join(t.TempDir(), "missing.html")
	_, _, err = run(t, "", "layout", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.html")
}

func TestBorders(t *testing.T) {
	stdout, _, err := run(t, `<table style="border-collapse: collapse; border: 2px solid">
		<tr><td style="border: 4px solid red">a</td><td>b</td></tr>
	</table>
	<table><tr><td>separate</td></tr></table>`, "borders")
	require.NoError(t, err)

	var reports []bordersReport
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &reports))
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Tables, 2)

	collapsed := reports[0].Tables[0]
	require.True(t, collapsed.Collapse)
	require.Len(t, collapsed.Cells, 2)
	red := borderReport{Style: "solid", Width: 4, Color: "#ff0000", Precedence: "cell"}
	assert.Equal(t, red, collapsed.Cells[0].Start)
	assert.Equal(t, red, collapsed.Cells[0].End)
	// the shared edge is resolved the same way from both sides
	assert.Equal(t, red, collapsed.Cells[1].Start)
	assert.Equal(t, 2, collapsed.Cells[1].End.Width)
	assert.Equal(t, "table", collapsed.Cells[1].End.Precedence)

	separate := reports[0].Tables[1]
	assert.False(t, separate.Collapse)
	assert.Empty(t, separate.Cells)
}
