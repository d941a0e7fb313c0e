package properties

import "fmt"

// KnownProp efficiently encodes the CSS properties
// supported by the table model.
type KnownProp uint8

const (
	_ KnownProp = iota

	PDisplay
	PDirection
	PBorderCollapse
	PTableLayout
	PCaptionSide
	PVerticalAlign
	PVisibility
	PBoxSizing
	PColor

	PWidth
	PMinWidth
	PMaxWidth
	PHeight
	PMinHeight
	PMaxHeight

	PMarginTop
	PMarginRight
	PMarginBottom
	PMarginLeft

	PPaddingTop
	PPaddingRight
	PPaddingBottom
	PPaddingLeft

	PBorderTopStyle
	PBorderRightStyle
	PBorderBottomStyle
	PBorderLeftStyle

	PBorderTopWidth
	PBorderRightWidth
	PBorderBottomWidth
	PBorderLeftWidth

	PBorderTopColor
	PBorderRightColor
	PBorderBottomColor
	PBorderLeftColor

	PBorderSpacing

	NbProperties
)

var propsNames = [...]string{
	PDisplay:        "display",
	PDirection:      "direction",
	PBorderCollapse: "border-collapse",
	PTableLayout:    "table-layout",
	PCaptionSide:    "caption-side",
	PVerticalAlign:  "vertical-align",
	PVisibility:     "visibility",
	PBoxSizing:      "box-sizing",
	PColor:          "color",

	PWidth:     "width",
	PMinWidth:  "min-width",
	PMaxWidth:  "max-width",
	PHeight:    "height",
	PMinHeight: "min-height",
	PMaxHeight: "max-height",

	PMarginTop:    "margin-top",
	PMarginRight:  "margin-right",
	PMarginBottom: "margin-bottom",
	PMarginLeft:   "margin-left",

	PPaddingTop:    "padding-top",
	PPaddingRight:  "padding-right",
	PPaddingBottom: "padding-bottom",
	PPaddingLeft:   "padding-left",

	PBorderTopStyle:    "border-top-style",
	PBorderRightStyle:  "border-right-style",
	PBorderBottomStyle: "border-bottom-style",
	PBorderLeftStyle:   "border-left-style",

	PBorderTopWidth:    "border-top-width",
	PBorderRightWidth:  "border-right-width",
	PBorderBottomWidth: "border-bottom-width",
	PBorderLeftWidth:   "border-left-width",

	PBorderTopColor:    "border-top-color",
	PBorderRightColor:  "border-right-color",
	PBorderBottomColor: "border-bottom-color",
	PBorderLeftColor:   "border-left-color",

	PBorderSpacing: "border-spacing",
}

// PropsFromNames maps CSS property names to internal enum tags.
var PropsFromNames = map[string]KnownProp{}

func init() {
	for i, s := range propsNames {
		if s != "" {
			PropsFromNames[s] = KnownProp(i)
		}
	}
}

func (p KnownProp) String() string {
	if int(p) < len(propsNames) && propsNames[p] != "" {
		return propsNames[p]
	}
	return fmt.Sprintf("<unknown property %d>", p)
}

// CssProperty is the type of the computed values of a property.
type CssProperty interface {
	isCssProperty()
}

// Int is a whole number of pixels, used for border widths.
type Int int

// Spacing is the value of 'border-spacing', in pixels.
type Spacing struct {
	H, V int
}

func (Dimension) isCssProperty()      {}
func (Int) isCssProperty()            {}
func (Spacing) isCssProperty()        {}
func (Color) isCssProperty()          {}
func (BorderStyle) isCssProperty()    {}
func (Display) isCssProperty()        {}
func (Direction) isCssProperty()      {}
func (BorderCollapse) isCssProperty() {}
func (TableLayout) isCssProperty()    {}
func (CaptionSide) isCssProperty()    {}
func (VerticalAlign) isCssProperty()  {}
func (Visibility) isCssProperty()     {}
func (BoxSizing) isCssProperty()      {}

// Properties is a list of validated declarations.
type Properties map[KnownProp]CssProperty

// Style is the computed style of one element of a table.
//
// The zero value is not the initial style: use [InitialStyle].
type Style struct {
	Display        Display
	Direction      Direction
	BorderCollapse BorderCollapse
	TableLayout    TableLayout
	CaptionSide    CaptionSide
	VerticalAlign  VerticalAlign
	Visibility     Visibility
	BoxSizing      BoxSizing
	Color          Color

	Width, MinWidth, MaxWidth    Dimension
	Height, MinHeight, MaxHeight Dimension

	// indexed by [Side]
	Margin  [4]Dimension
	Padding [4]Dimension
	Border  [4]Border

	BorderSpacing Spacing
}

// InitialStyle returns the style of an element with the given display,
// with every property set to its initial value.
func InitialStyle(display Display) Style {
	st := Style{Display: display, Color: Black}
	for i := range st.Border {
		st.Border[i] = Border{Style: BorderNone, Width: BorderWidthKeywords["medium"], Color: CurrentColor}
	}
	for i := range st.Margin {
		st.Margin[i] = FixedPx(0)
		st.Padding[i] = FixedPx(0)
	}
	return st
}

// Inherit returns the initial style for [display], with the inherited
// properties copied from parent.
func (parent *Style) Inherit(display Display) Style {
	st := InitialStyle(display)
	st.Color = parent.Color
	st.Direction = parent.Direction
	st.BorderCollapse = parent.BorderCollapse
	st.BorderSpacing = parent.BorderSpacing
	st.CaptionSide = parent.CaptionSide
	st.Visibility = parent.Visibility
	return st
}

// Get returns the value of the property p, with the type expected by [Style.Set].
func (s Style) Get(p KnownProp) CssProperty {
	switch p {
	case PDisplay:
		return s.Display
	case PDirection:
		return s.Direction
	case PBorderCollapse:
		return s.BorderCollapse
	case PTableLayout:
		return s.TableLayout
	case PCaptionSide:
		return s.CaptionSide
	case PVerticalAlign:
		return s.VerticalAlign
	case PVisibility:
		return s.Visibility
	case PBoxSizing:
		return s.BoxSizing
	case PColor:
		return s.Color
	case PWidth:
		return s.Width
	case PMinWidth:
		return s.MinWidth
	case PMaxWidth:
		return s.MaxWidth
	case PHeight:
		return s.Height
	case PMinHeight:
		return s.MinHeight
	case PMaxHeight:
		return s.MaxHeight
	case PMarginTop, PMarginRight, PMarginBottom, PMarginLeft:
		return s.Margin[p-PMarginTop]
	case PPaddingTop, PPaddingRight, PPaddingBottom, PPaddingLeft:
		return s.Padding[p-PPaddingTop]
	case PBorderTopStyle, PBorderRightStyle, PBorderBottomStyle, PBorderLeftStyle:
		return s.Border[p-PBorderTopStyle].Style
	case PBorderTopWidth, PBorderRightWidth, PBorderBottomWidth, PBorderLeftWidth:
		return Int(s.Border[p-PBorderTopWidth].Width)
	case PBorderTopColor, PBorderRightColor, PBorderBottomColor, PBorderLeftColor:
		return s.Border[p-PBorderTopColor].Color
	case PBorderSpacing:
		return s.BorderSpacing
	default:
		panic(fmt.Sprintf("unsupported property %d", p))
	}
}

// Set updates the property p with the value v, which must have the
// type expected by p.
func (s *Style) Set(p KnownProp, v CssProperty) {
	switch p {
	case PDisplay:
		s.Display = v.(Display)
	case PDirection:
		s.Direction = v.(Direction)
	case PBorderCollapse:
		s.BorderCollapse = v.(BorderCollapse)
	case PTableLayout:
		s.TableLayout = v.(TableLayout)
	case PCaptionSide:
		s.CaptionSide = v.(CaptionSide)
	case PVerticalAlign:
		s.VerticalAlign = v.(VerticalAlign)
	case PVisibility:
		s.Visibility = v.(Visibility)
	case PBoxSizing:
		s.BoxSizing = v.(BoxSizing)
	case PColor:
		s.Color = v.(Color)
	case PWidth:
		s.Width = v.(Dimension)
	case PMinWidth:
		s.MinWidth = v.(Dimension)
	case PMaxWidth:
		s.MaxWidth = v.(Dimension)
	case PHeight:
		s.Height = v.(Dimension)
	case PMinHeight:
		s.MinHeight = v.(Dimension)
	case PMaxHeight:
		s.MaxHeight = v.(Dimension)
	case PMarginTop, PMarginRight, PMarginBottom, PMarginLeft:
		s.Margin[p-PMarginTop] = v.(Dimension)
	case PPaddingTop, PPaddingRight, PPaddingBottom, PPaddingLeft:
		s.Padding[p-PPaddingTop] = v.(Dimension)
	case PBorderTopStyle, PBorderRightStyle, PBorderBottomStyle, PBorderLeftStyle:
		s.Border[p-PBorderTopStyle].Style = v.(BorderStyle)
	case PBorderTopWidth, PBorderRightWidth, PBorderBottomWidth, PBorderLeftWidth:
		s.Border[p-PBorderTopWidth].Width = int(v.(Int))
	case PBorderTopColor, PBorderRightColor, PBorderBottomColor, PBorderLeftColor:
		s.Border[p-PBorderTopColor].Color = v.(Color)
	case PBorderSpacing:
		s.BorderSpacing = v.(Spacing)
	default:
		panic(fmt.Sprintf("unsupported property %d", p))
	}
}

// Apply sets every property of props.
func (s *Style) Apply(props Properties) {
	for p, v := range props {
		s.Set(p, v)
	}
}

// IsCollapsing is true for 'border-collapse: collapse'.
func (s *Style) IsCollapsing() bool { return s.BorderCollapse == Collapse }

// IsFixedLayout is true for 'table-layout: fixed'.
func (s *Style) IsFixedLayout() bool { return s.TableLayout == TableLayoutFixed }

// IsCollapsedVisibility is true for 'visibility: collapse'.
func (s *Style) IsCollapsedVisibility() bool { return s.Visibility == Collapsed }

// BorderSide returns the border on the given physical side,
// with 'currentColor' resolved.
func (s *Style) BorderSide(side Side) Border {
	b := s.Border[side]
	if b.Color.Current {
		b.Color = s.Color
	}
	return b
}

// BorderWidth returns the computed width of the border on the given side.
func (s *Style) BorderWidth(side Side) int { return s.Border[side].ComputedWidth() }

// LogicalBorder returns the border on the logical edge e, for the
// direction dir.
func (s *Style) LogicalBorder(e LogicalEdge, dir Direction) Border {
	return s.BorderSide(e.Physical(dir))
}

// LogicalBorderWidth is the computed width of the border on edge e.
func (s *Style) LogicalBorderWidth(e LogicalEdge, dir Direction) int {
	return s.BorderWidth(e.Physical(dir))
}

// LogicalPadding returns the padding on edge e, resolved against
// the containing block width [reference].
func (s *Style) LogicalPadding(e LogicalEdge, dir Direction, reference int) int {
	return s.Padding[e.Physical(dir)].Resolve(reference)
}

// LogicalMargin returns the margin on edge e, resolved against
// the containing block width [reference].
func (s *Style) LogicalMargin(e LogicalEdge, dir Direction, reference int) int {
	return s.Margin[e.Physical(dir)].Resolve(reference)
}

// BordersEqual returns true if s and other have the same
// borders, used for change detection.
func (s *Style) BordersEqual(other *Style) bool {
	for i := range s.Border {
		if s.BorderSide(Side(i)) != other.BorderSide(Side(i)) {
			return false
		}
	}
	return true
}
