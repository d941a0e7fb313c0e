package properties

import (
	"fmt"

	"github.com/benoitkugler/tablelayout/utils"
)

type Fl = utils.Fl

type Float = Fl

type Unit uint8

const ( // zero field corresponds to 'auto' (or 'none' for max sizes)
	Auto Unit = iota
	Px
	Perc // percentage (%)
)

func (u Unit) String() string {
	switch u {
	case Auto:
		return "auto"
	case Perc:
		return "%"
	case Px:
		return "px"
	default:
		return "<invalid unit>"
	}
}

// Dimension is a computed length: a number of CSS pixels, a percentage,
// or 'auto' for the zero value.
type Dimension struct {
	Value Float
	Unit  Unit
}

func NewDim(v Float, u Unit) Dimension { return Dimension{v, u} }

// FixedPx returns a pixel Dimension.
func FixedPx(v int) Dimension { return Dimension{Value: Float(v), Unit: Px} }

// Percent returns a percentage Dimension.
func Percent(v Float) Dimension { return Dimension{Value: v, Unit: Perc} }

func (d Dimension) String() string {
	if d.Unit == Auto {
		return "auto"
	}
	return fmt.Sprintf("<%g %s>", d.Value, d.Unit)
}

func (d Dimension) IsAuto() bool      { return d.Unit == Auto }
func (d Dimension) IsFixed() bool     { return d.Unit == Px }
func (d Dimension) IsPercent() bool   { return d.Unit == Perc }
func (d Dimension) IsSpecified() bool { return d.Unit == Px || d.Unit == Perc }
func (d Dimension) IsPositive() bool  { return d.Unit != Auto && d.Value > 0 }
func (d Dimension) IsNegative() bool  { return d.Unit != Auto && d.Value < 0 }
func (d Dimension) IsZero() bool      { return d.Unit != Auto && d.Value == 0 }

// Int returns the value truncated to a whole pixel (or percent).
func (d Dimension) Int() int { return int(d.Value) }

// Resolve returns the used value of d against [reference]:
// fixed values are returned as is, percentages are taken from
// [reference] and 'auto' resolves to 0.
func (d Dimension) Resolve(reference int) int {
	switch d.Unit {
	case Px:
		return int(d.Value)
	case Perc:
		return int(Fl(reference) * d.Value / 100)
	default:
		return 0
	}
}

// Color is a RGBA color. The zero value is transparent black.
type Color struct {
	R, G, B, A uint8
	// Current is set for 'currentColor', which is resolved
	// against the 'color' property of the same element.
	Current bool
}

func (c Color) String() string {
	if c.Current {
		return "currentColor"
	}
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}

// IsTransparent is true for a fully transparent color.
func (c Color) IsTransparent() bool { return !c.Current && c.A == 0 }

// BorderStyle is ordered as the CSS 2.1 border conflict resolution
// requires: a greater value wins over a smaller one.
type BorderStyle uint8

const (
	BorderNone BorderStyle = iota
	BorderHidden
	BorderInset
	BorderGroove
	BorderOutset
	BorderRidge
	BorderDotted
	BorderDashed
	BorderSolid
	BorderDouble
)

var borderStyleNames = [...]string{
	BorderNone:   "none",
	BorderHidden: "hidden",
	BorderInset:  "inset",
	BorderGroove: "groove",
	BorderOutset: "outset",
	BorderRidge:  "ridge",
	BorderDotted: "dotted",
	BorderDashed: "dashed",
	BorderSolid:  "solid",
	BorderDouble: "double",
}

func (b BorderStyle) String() string {
	if int(b) < len(borderStyleNames) {
		return borderStyleNames[b]
	}
	return fmt.Sprintf("<invalid border style %d>", b)
}

// IsVisible is true for the styles painting something.
func (b BorderStyle) IsVisible() bool { return b > BorderHidden }

// Border is the computed value of one side of the 'border' property.
type Border struct {
	Style BorderStyle
	// Width is the specified width, which is ignored
	// when Style is not visible. See [Border.ComputedWidth].
	Width int
	Color Color
}

// ComputedWidth applies the CSS rule forcing the border width to 0
// for the 'none' and 'hidden' styles.
func (b Border) ComputedWidth() int {
	if !b.Style.IsVisible() {
		return 0
	}
	return b.Width
}

// Side is a physical box side.
type Side uint8

const (
	Top Side = iota
	Right
	Bottom
	Left
)

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return "<invalid side>"
	}
}

// LogicalEdge is a box side expressed relatively to the writing direction.
// Only the horizontal writing mode is supported, so that 'before' is always
// the top side and 'after' the bottom side.
type LogicalEdge uint8

const (
	Start LogicalEdge = iota
	End
	Before
	After
)

func (e LogicalEdge) String() string {
	switch e {
	case Start:
		return "start"
	case End:
		return "end"
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return "<invalid edge>"
	}
}

// Physical maps a logical edge to a physical side.
func (e LogicalEdge) Physical(dir Direction) Side {
	switch e {
	case Start:
		if dir == RTL {
			return Right
		}
		return Left
	case End:
		if dir == RTL {
			return Left
		}
		return Right
	case Before:
		return Top
	default:
		return Bottom
	}
}

// Opposite returns the edge facing e.
func (e LogicalEdge) Opposite() LogicalEdge {
	switch e {
	case Start:
		return End
	case End:
		return Start
	case Before:
		return After
	default:
		return Before
	}
}
