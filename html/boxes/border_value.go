package boxes

import pr "github.com/benoitkugler/tablelayout/css/properties"

// Precedence is the origin of a collapsed border, used to break ties.
// A cell border wins over a row border, which wins over a section border, etc.
type Precedence uint8

const (
	PrecedenceOff Precedence = iota
	PrecedenceTable
	PrecedenceColumnGroup
	PrecedenceColumn
	PrecedenceRowGroup
	PrecedenceRow
	PrecedenceCell
)

func (p Precedence) String() string {
	switch p {
	case PrecedenceTable:
		return "table"
	case PrecedenceColumnGroup:
		return "column-group"
	case PrecedenceColumn:
		return "column"
	case PrecedenceRowGroup:
		return "row-group"
	case PrecedenceRow:
		return "row"
	case PrecedenceCell:
		return "cell"
	default:
		return "off"
	}
}

// CollapsedBorderValue is a border candidate (or the winner)
// for an edge of the collapsed border grid.
// The zero value is an absent border.
type CollapsedBorderValue struct {
	Style pr.BorderStyle
	// Width is 0 unless Style is visible.
	Width      int
	Color      pr.Color
	Precedence Precedence
}

// newCollapsedBorderValue builds a candidate from a specified border.
// The color must already be resolved.
func newCollapsedBorderValue(border pr.Border, precedence Precedence) CollapsedBorderValue {
	return CollapsedBorderValue{
		Style:      border.Style,
		Width:      border.ComputedWidth(),
		Color:      border.Color,
		Precedence: precedence,
	}
}

// Exists is false for the zero value.
func (b CollapsedBorderValue) Exists() bool { return b.Precedence != PrecedenceOff }

// IsVisible is true if the border is painted.
func (b CollapsedBorderValue) IsVisible() bool {
	return b.Exists() && b.Style.IsVisible() && b.Width > 0
}

// LessThan returns true if [other] wins over [b] in the conflict
// resolution: 'hidden' wins over everything, then 'none' loses against
// everything, then wider borders win, then the style order, then the origin.
func (b CollapsedBorderValue) LessThan(other CollapsedBorderValue) bool {
	if !b.Exists() {
		return other.Exists()
	}
	if !other.Exists() {
		return false
	}
	if b.Style == pr.BorderHidden {
		return false
	}
	if other.Style == pr.BorderHidden {
		return true
	}
	if other.Style == pr.BorderNone {
		return false
	}
	if b.Style == pr.BorderNone {
		return true
	}
	if b.Width != other.Width {
		return b.Width < other.Width
	}
	if b.Style != other.Style {
		return b.Style < other.Style
	}
	return b.Precedence < other.Precedence
}

// chooseBorder returns the winner of the two candidates, [a] winning ties.
// A hidden winner is replaced by the zero value, which stops the resolution.
func chooseBorder(a, b CollapsedBorderValue) CollapsedBorderValue {
	winner := a
	if a.LessThan(b) {
		winner = b
	}
	if winner.Style == pr.BorderHidden {
		return CollapsedBorderValue{}
	}
	return winner
}
