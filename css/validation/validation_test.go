package validation

import (
	"fmt"
	"strings"
	"testing"

	pa "github.com/benoitkugler/tablelayout/css/parser"
	pr "github.com/benoitkugler/tablelayout/css/properties"
	tu "github.com/benoitkugler/tablelayout/utils/testutils"
)

func expandToStyle(t *testing.T, css string) pr.Style {
	t.Helper()
	st := pr.InitialStyle(pr.DisplayTableCell)
	Apply(&st, nil, PreprocessDeclarations(pa.ParseDeclarationListString(css)))
	return st
}

func assertInvalid(t *testing.T, css, message string) {
	t.Helper()
	logs := tu.CaptureLogs()
	decls := PreprocessDeclarations(pa.ParseDeclarationListString(css))
	logs.Release()
	if len(decls) != 0 {
		t.Fatalf("expected no declaration for %s, got %v", css, decls)
	}
	got := logs.Logs()
	if len(got) != 1 {
		t.Fatalf("expected one warning for %s, got %v", css, got)
	}
	tu.AssertEqual(t, got[0], message)
}

func TestLengths(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	st := expandToStyle(t, "width: 1in; height: 50%; min-width: 2em; max-height: none; margin-left: -3px")
	tu.AssertEqual(t, st.Width, pr.FixedPx(96))
	tu.AssertEqual(t, st.Height, pr.Percent(50))
	tu.AssertEqual(t, st.MinWidth, pr.FixedPx(32))
	tu.AssertEqual(t, st.MaxHeight.IsAuto(), true)
	tu.AssertEqual(t, st.Margin[pr.Left], pr.FixedPx(-3))

	st = expandToStyle(t, "width: auto; padding: 0")
	tu.AssertEqual(t, st.Width.IsAuto(), true)
	tu.AssertEqual(t, st.Padding[pr.Top], pr.FixedPx(0))
}

func TestInvalid(t *testing.T) {
	assertInvalid(t, "width: -2px", "Ignored `width: -2px`, invalid or unsupported values for a known CSS property.")
	assertInvalid(t, "padding-top: -1px", "Ignored `padding-top: -1px`, invalid or unsupported values for a known CSS property.")
	assertInvalid(t, "float: left", "Ignored `float: left`, unknown property.")
	assertInvalid(t, "width:", "Ignored `width:`, no value.")
	assertInvalid(t, "margin: 1px 2px 3px 4px 5px", "Ignored `margin: 1px 2px 3px 4px 5px`, expected 1 to 4 token components got 5.")
	assertInvalid(t, "border: 1px solid red blue", "Ignored `border: 1px solid red blue`, invalid or unsupported values for a known CSS property.")
}

func TestFourSides(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	st := expandToStyle(t, "padding: 1px 2px 3px")
	tu.AssertEqual(t, st.Padding, [4]pr.Dimension{pr.FixedPx(1), pr.FixedPx(2), pr.FixedPx(3), pr.FixedPx(2)})

	st = expandToStyle(t, "border-style: solid double; border-width: thin thick; border-color: red")
	tu.AssertEqual(t, st.Border[pr.Top], pr.Border{Style: pr.BorderSolid, Width: 1, Color: pr.Color{R: 255, A: 255}})
	tu.AssertEqual(t, st.Border[pr.Right], pr.Border{Style: pr.BorderDouble, Width: 5, Color: pr.Color{R: 255, A: 255}})
	tu.AssertEqual(t, st.Border[pr.Bottom].Style, pr.BorderSolid)
	tu.AssertEqual(t, st.Border[pr.Left].Width, 5)
}

func TestBorderShorthand(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	st := expandToStyle(t, "border: 2px dashed #00f; border-left: hidden")
	blue := pr.Color{B: 255, A: 255}
	for _, side := range []pr.Side{pr.Top, pr.Right, pr.Bottom} {
		tu.AssertEqual(t, st.Border[side], pr.Border{Style: pr.BorderDashed, Width: 2, Color: blue})
	}
	// missing width and color are reset
	tu.AssertEqual(t, st.Border[pr.Left], pr.Border{Style: pr.BorderHidden, Width: 3, Color: pr.CurrentColor})
	tu.AssertEqual(t, st.BorderWidth(pr.Left), 0)
	tu.AssertEqual(t, st.BorderSide(pr.Top).Color, blue)
}

func TestTableKeywords(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	st := expandToStyle(t, `display: table; border-collapse: collapse; table-layout: fixed;
		direction: rtl; caption-side: bottom; vertical-align: middle; visibility: collapse;
		box-sizing: border-box; border-spacing: 2px 4px`)
	tu.AssertEqual(t, st.Display, pr.DisplayTable)
	tu.AssertEqual(t, st.IsCollapsing(), true)
	tu.AssertEqual(t, st.IsFixedLayout(), true)
	tu.AssertEqual(t, st.Direction, pr.RTL)
	tu.AssertEqual(t, st.CaptionSide, pr.CaptionBottom)
	tu.AssertEqual(t, st.VerticalAlign, pr.AlignMiddle)
	tu.AssertEqual(t, st.IsCollapsedVisibility(), true)
	tu.AssertEqual(t, st.BoxSizing, pr.BorderBox)
	tu.AssertEqual(t, st.BorderSpacing, pr.Spacing{H: 2, V: 4})

	st = expandToStyle(t, "vertical-align: 3px")
	tu.AssertEqual(t, st.VerticalAlign, pr.AlignBaseline)
}

func TestImportantAndDefaults(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	parent := pr.InitialStyle(pr.DisplayTable)
	parent.BorderSpacing = pr.Spacing{H: 7, V: 7}
	parent.Width = pr.FixedPx(100)

	st := pr.InitialStyle(pr.DisplayTableCell)
	decls := PreprocessDeclarations(pa.ParseDeclarationListString(
		"width: 10px !important; width: 20px; border-spacing: inherit; padding: 5px; padding-top: initial"))
	Apply(&st, &parent, decls)
	tu.AssertEqual(t, st.Width, pr.FixedPx(10))
	tu.AssertEqual(t, st.BorderSpacing, pr.Spacing{H: 7, V: 7})
	tu.AssertEqual(t, st.Padding[pr.Top], pr.FixedPx(0))
	tu.AssertEqual(t, st.Padding[pr.Bottom], pr.FixedPx(5))
}

func TestDefaultsEveryProperty(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	parent := pr.InitialStyle(pr.DisplayTableRow)
	parent.Direction = pr.RTL
	parent.VerticalAlign = pr.AlignBottom
	parent.Height = pr.Percent(20)
	parent.Margin[pr.Right] = pr.FixedPx(4)
	parent.Padding[pr.Left] = pr.FixedPx(6)
	parent.Border[pr.Bottom] = pr.Border{Style: pr.BorderDotted, Width: 9, Color: pr.Color{R: 255, A: 255}}
	parent.BorderSpacing = pr.Spacing{H: 1, V: 3}

	var inherit, initial strings.Builder
	for p := pr.PDisplay; p < pr.NbProperties; p++ {
		fmt.Fprintf(&inherit, "%s: inherit;", p)
		fmt.Fprintf(&initial, "%s: initial;", p)
	}

	st := pr.InitialStyle(pr.DisplayTableCell)
	st.Width = pr.FixedPx(50)
	Apply(&st, &parent, PreprocessDeclarations(pa.ParseDeclarationListString(inherit.String())))
	tu.AssertEqual(t, st, parent)

	Apply(&st, &parent, PreprocessDeclarations(pa.ParseDeclarationListString(initial.String())))
	tu.AssertEqual(t, st, pr.InitialStyle(pr.DisplayInline))

	// without parent, 'inherit' resolves to the initial value
	st = pr.InitialStyle(pr.DisplayTableCell)
	Apply(&st, nil, PreprocessDeclarations(pa.ParseDeclarationListString("border-top-width: inherit; width: inherit")))
	tu.AssertEqual(t, st.Border[pr.Top].Width, 3)
	tu.AssertEqual(t, st.Width.IsAuto(), true)
}

func TestStyleCache(t *testing.T) {
	PurgeStyleCache()
	logs := tu.CaptureLogs()
	d1 := ParseStyleAttribute("width: 10px; color: nope")
	d2 := ParseStyleAttribute("width: 10px; color: nope")
	logs.Release()

	tu.AssertEqual(t, len(d1), 1)
	tu.AssertEqual(t, len(d2), 1)
	tu.AssertEqual(t, d1[0].Value, pr.CssProperty(pr.FixedPx(10)))
	// the second parse hits the cache
	tu.AssertEqual(t, len(logs.Logs()), 1)
}
