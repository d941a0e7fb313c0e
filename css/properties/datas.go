package properties

// LengthsToPixels maps the absolute units to their size in CSS pixels.
var LengthsToPixels = map[string]Float{
	"px": 1,
	"pt": 1. / 0.75,
	"pc": 16,             // LengthsToPixels["pt"] * 12
	"in": 96,             // LengthsToPixels["pt"] * 72
	"cm": 96. / 2.54,     // LengthsToPixels["in"] / 2.54
	"mm": 96. / 25.4,     // LengthsToPixels["in"] / 25.4
	"q":  96. / 25.4 / 4, // LengthsToPixels["mm"] / 4
}

// FontSize is the font size used to resolve the font relative units
// (em, rem, ex and ch). Fonts are not part of the model.
const FontSize = 16

// FontRelativeToPixels maps the font relative units to pixels,
// for the fixed [FontSize].
var FontRelativeToPixels = map[string]Float{
	"em":  FontSize,
	"rem": FontSize,
	"ex":  FontSize / 2,
	"ch":  FontSize / 2,
}

// BorderWidthKeywords are the keyword values of 'border-width', in pixels.
var BorderWidthKeywords = map[string]int{
	"thin":   1,
	"medium": 3,
	"thick":  5,
}

var (
	Black        = Color{A: 0xff}
	White        = Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	CurrentColor = Color{Current: true}
)

// inherited are the (table related) properties inherited by default.
var inherited = [...]bool{
	PColor:          true,
	PDirection:      true,
	PBorderCollapse: true,
	PBorderSpacing:  true,
	PCaptionSide:    true,
	PVisibility:     true,
	NbProperties:    false,
}

// IsInherited returns true if the property is inherited by default.
func (p KnownProp) IsInherited() bool { return inherited[p] }
