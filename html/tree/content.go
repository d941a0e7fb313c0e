package tree

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	bo "github.com/benoitkugler/tablelayout/html/boxes"
	"github.com/benoitkugler/tablelayout/html/layout"
)

// the face used to measure text
var face font.Face = basicfont.Face7x13

func advance(s string) int { return font.MeasureString(face, s).Ceil() }

// textContent is a paragraph set in a monospace bitmap font,
// with forced breaks between its lines.
type textContent struct {
	lines [][]string // words of each forced line
}

// newTextContent splits the forced [lines] into words, dropping
// the empty lines at the start and the end.
// It returns nil if there is no visible character.
func newTextContent(lines []string) *textContent {
	var out textContent
	for _, line := range lines {
		out.lines = append(out.lines, strings.Fields(line))
	}
	for len(out.lines) != 0 && len(out.lines[0]) == 0 {
		out.lines = out.lines[1:]
	}
	for len(out.lines) != 0 && len(out.lines[len(out.lines)-1]) == 0 {
		out.lines = out.lines[:len(out.lines)-1]
	}
	if len(out.lines) == 0 {
		return nil
	}
	return &out
}

func (tc *textContent) IntrinsicWidths() (minWidth, maxWidth int) {
	space := advance(" ")
	for _, line := range tc.lines {
		lineWidth := 0
		for i, word := range line {
			w := advance(word)
			if w > minWidth {
				minWidth = w
			}
			if i != 0 {
				lineWidth += space
			}
			lineWidth += w
		}
		if lineWidth > maxWidth {
			maxWidth = lineWidth
		}
	}
	return minWidth, maxWidth
}

// lineCount greedily breaks the lines to fit in [width].
// A word wider than [width] gets its own line.
func (tc *textContent) lineCount(width int) int {
	space := advance(" ")
	count := 0
	for _, line := range tc.lines {
		count++
		current := 0
		for i, word := range line {
			w := advance(word)
			if i != 0 && current+space+w > width {
				count++
				current = w
				continue
			}
			if i != 0 {
				current += space
			}
			current += w
		}
	}
	return count
}

func (tc *textContent) Layout(width int) (height, baseline int) {
	metrics := face.Metrics()
	return tc.lineCount(width) * metrics.Height.Ceil(), metrics.Ascent.Ceil()
}

// tableContent is a table inside a cell or a caption.
type tableContent struct {
	table *bo.Table
}

func nestedOptions(width int) layout.Options {
	return layout.Options{AvailableWidth: width, HTMLTable: true, Nested: true}
}

func (tc tableContent) IntrinsicWidths() (minWidth, maxWidth int) {
	return layout.PreferredWidths(tc.table, nestedOptions(0))
}

func (tc tableContent) Layout(width int) (height, baseline int) {
	layout.Layout(tc.table, nestedOptions(width))
	return tc.table.Height, tableBaseline(tc.table)
}

// tableBaseline returns the baseline of the first row of a
// laid out table, relative to the table wrapper, or -1.
func tableBaseline(table *bo.Table) int {
	g := table.Recalc()
	section := g.TopNonEmptySection()
	if section == bo.NoSection {
		return -1
	}
	rowID := g.RowAt(section, 0)
	if rowID == bo.NoRow {
		return -1
	}
	row := table.Row(rowID)
	if row.Baseline == 0 {
		return -1
	}
	return table.Section(section).Y + row.Y + row.Baseline
}

// blockContent stacks text paragraphs and tables.
type blockContent struct {
	items []bo.Content
}

func (bc blockContent) IntrinsicWidths() (minWidth, maxWidth int) {
	for _, item := range bc.items {
		m, M := item.IntrinsicWidths()
		minWidth = max(minWidth, m)
		maxWidth = max(maxWidth, M)
	}
	return minWidth, maxWidth
}

func (bc blockContent) Layout(width int) (height, baseline int) {
	baseline = -1
	for _, item := range bc.items {
		h, b := item.Layout(width)
		if baseline == -1 && b != -1 {
			baseline = height + b
		}
		height += h
	}
	return height, baseline
}

// contentBuilder accumulates the children of a cell or a caption.
type contentBuilder struct {
	items []bo.Content

	lines []string // closed by a <br>
	text  strings.Builder
}

func (cb *contentBuilder) lineBreak() {
	cb.lines = append(cb.lines, cb.text.String())
	cb.text.Reset()
}

func (cb *contentBuilder) flushText() {
	cb.lineBreak()
	if tc := newTextContent(cb.lines); tc != nil {
		cb.items = append(cb.items, tc)
	}
	cb.lines = cb.lines[:0]
}

func (cb *contentBuilder) content() bo.Content {
	cb.flushText()
	switch len(cb.items) {
	case 0:
		return nil
	case 1:
		return cb.items[0]
	default:
		return blockContent{items: cb.items}
	}
}
