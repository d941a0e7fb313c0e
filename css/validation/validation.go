// Package validation converts CSS declarations (as found in the 'style'
// attribute) to computed table properties, expanding shorthands and
// logging a warning for each invalid or unsupported declaration.
package validation

import (
	"errors"
	"fmt"

	pa "github.com/benoitkugler/tablelayout/css/parser"
	pr "github.com/benoitkugler/tablelayout/css/properties"
	"github.com/benoitkugler/tablelayout/logger"
	"github.com/benoitkugler/tablelayout/utils"
)

type Token = pa.Token

var ErrInvalidValue = errors.New("invalid or unsupported values for a known CSS property")

// Default is set for the CSS-wide keywords.
type Default uint8

const (
	NoDefault Default = iota
	Initial
	Inherit
)

// Declaration is a validated CSS property.
type Declaration struct {
	Name pr.KnownProp
	// Value is nil when Default is not NoDefault
	Value     pr.CssProperty
	Default   Default
	Important bool
}

type validator func(tokens []Token) pr.CssProperty

var validators = [...]validator{
	pr.PDisplay:        display,
	pr.PDirection:      direction,
	pr.PBorderCollapse: borderCollapse,
	pr.PTableLayout:    tableLayout,
	pr.PCaptionSide:    captionSide,
	pr.PVerticalAlign:  verticalAlign,
	pr.PVisibility:     visibility,
	pr.PBoxSizing:      boxSizing,
	pr.PColor:          color,

	pr.PWidth:     widthHeight,
	pr.PHeight:    widthHeight,
	pr.PMinWidth:  minWidthHeight,
	pr.PMinHeight: minWidthHeight,
	pr.PMaxWidth:  maxWidthHeight,
	pr.PMaxHeight: maxWidthHeight,

	pr.PMarginTop:    lengthPercOrAuto,
	pr.PMarginRight:  lengthPercOrAuto,
	pr.PMarginBottom: lengthPercOrAuto,
	pr.PMarginLeft:   lengthPercOrAuto,

	pr.PPaddingTop:    lengthOrPercentage,
	pr.PPaddingRight:  lengthOrPercentage,
	pr.PPaddingBottom: lengthOrPercentage,
	pr.PPaddingLeft:   lengthOrPercentage,

	pr.PBorderTopStyle:    borderStyle,
	pr.PBorderRightStyle:  borderStyle,
	pr.PBorderBottomStyle: borderStyle,
	pr.PBorderLeftStyle:   borderStyle,

	pr.PBorderTopWidth:    borderWidth,
	pr.PBorderRightWidth:  borderWidth,
	pr.PBorderBottomWidth: borderWidth,
	pr.PBorderLeftWidth:   borderWidth,

	pr.PBorderTopColor:    color,
	pr.PBorderRightColor:  color,
	pr.PBorderBottomColor: color,
	pr.PBorderLeftColor:   color,

	pr.PBorderSpacing: borderSpacing,

	pr.NbProperties: nil,
}

// validateNonShorthand validates one property, handling the
// 'initial' and 'inherit' keywords.
func validateNonShorthand(name string, tokens []Token) (Declaration, error) {
	prop, ok := pr.PropsFromNames[name]
	if !ok {
		return Declaration{}, errors.New("unknown property")
	}
	switch getSingleKeyword(tokens) {
	case "initial":
		return Declaration{Name: prop, Default: Initial}, nil
	case "inherit":
		return Declaration{Name: prop, Default: Inherit}, nil
	}
	value := validators[prop](tokens)
	if value == nil {
		return Declaration{}, ErrInvalidValue
	}
	return Declaration{Name: prop, Value: value}, nil
}

// PreprocessDeclarations filters unsupported properties or parsing errors,
// and expands shorthand properties.
//
// A warning is logged for every ignored declaration.
func PreprocessDeclarations(declarations []pa.Compound) []Declaration {
	var out []Declaration
	for _, declaration := range declarations {
		if errToken, ok := declaration.(pa.ParseError); ok {
			logger.WarningLogger.Printf("Error: %s", errToken.Message)
			continue
		}
		declaration, ok := declaration.(pa.Declaration)
		if !ok {
			continue
		}

		validationError := func(reason string) {
			logger.WarningLogger.Printf("Ignored `%s:%s`, %s.", declaration.Name, pa.Serialize(declaration.Value), reason)
		}

		tokens := pa.RemoveWhitespace(declaration.Value)
		// Having no tokens is allowed by grammar but refused by all
		// properties and expanders.
		if len(tokens) == 0 {
			validationError("no value")
			continue
		}

		var (
			result []Declaration
			err    error
		)
		if exp, isShorthand := expanders[declaration.Name]; isShorthand {
			result, err = exp(declaration.Name, tokens)
		} else {
			var d Declaration
			d, err = validateNonShorthand(declaration.Name, tokens)
			result = []Declaration{d}
		}
		if err != nil {
			validationError(err.Error())
			continue
		}

		for _, d := range result {
			d.Important = declaration.Important
			out = append(out, d)
		}
	}
	return out
}

// Apply sets the declarations on style, resolving 'inherit' against parent
// (which may be nil for the root element). Important declarations
// are applied last.
func Apply(style *pr.Style, parent *pr.Style, declarations []Declaration) {
	initial := pr.InitialStyle(pr.DisplayInline)
	for _, important := range [2]bool{false, true} {
		for _, d := range declarations {
			if d.Important != important {
				continue
			}
			switch d.Default {
			case Initial:
				style.Set(d.Name, initial.Get(d.Name))
			case Inherit:
				if parent != nil {
					style.Set(d.Name, parent.Get(d.Name))
				} else {
					style.Set(d.Name, initial.Get(d.Name))
				}
			default:
				style.Set(d.Name, d.Value)
			}
		}
	}
}

// If `token` is [pa.Ident], return its lower name.
// Otherwise return empty string.
func getKeyword(token Token) string {
	if ident, ok := token.(pa.Ident); ok {
		return utils.AsciiLower(ident.Value)
	}
	return ""
}

// If `tokens` is a 1-element list of [pa.Ident], return its name.
// Otherwise return empty string.
func getSingleKeyword(tokens []Token) string {
	if len(tokens) == 1 {
		return getKeyword(tokens[0])
	}
	return ""
}

// getLength returns the computed value of a length or percentage token,
// with absolute and font relative units converted to pixels.
func getLength(token Token, negative, percentage bool) (pr.Dimension, bool) {
	switch token := token.(type) {
	case pa.Percentage:
		if percentage && (negative || token.Value >= 0) {
			return pr.Percent(token.Value), true
		}
	case pa.Dimension:
		if !negative && token.Value < 0 {
			return pr.Dimension{}, false
		}
		if factor, ok := pr.LengthsToPixels[token.Unit]; ok {
			return pr.NewDim(token.Value*factor, pr.Px), true
		}
		if factor, ok := pr.FontRelativeToPixels[token.Unit]; ok {
			return pr.NewDim(token.Value*factor, pr.Px), true
		}
	case pa.Number:
		if token.Value == 0 {
			return pr.FixedPx(0), true
		}
	}
	return pr.Dimension{}, false
}

func display(tokens []Token) pr.CssProperty {
	switch getSingleKeyword(tokens) {
	case "inline":
		return pr.DisplayInline
	case "block":
		return pr.DisplayBlock
	case "none":
		return pr.DisplayNone
	case "table":
		return pr.DisplayTable
	case "inline-table":
		return pr.DisplayInlineTable
	case "table-row-group":
		return pr.DisplayTableRowGroup
	case "table-header-group":
		return pr.DisplayTableHeaderGroup
	case "table-footer-group":
		return pr.DisplayTableFooterGroup
	case "table-row":
		return pr.DisplayTableRow
	case "table-cell":
		return pr.DisplayTableCell
	case "table-column-group":
		return pr.DisplayTableColumnGroup
	case "table-column":
		return pr.DisplayTableColumn
	case "table-caption":
		return pr.DisplayTableCaption
	}
	return nil
}

func direction(tokens []Token) pr.CssProperty {
	switch getSingleKeyword(tokens) {
	case "ltr":
		return pr.LTR
	case "rtl":
		return pr.RTL
	}
	return nil
}

func borderCollapse(tokens []Token) pr.CssProperty {
	switch getSingleKeyword(tokens) {
	case "separate":
		return pr.Separate
	case "collapse":
		return pr.Collapse
	}
	return nil
}

func tableLayout(tokens []Token) pr.CssProperty {
	switch getSingleKeyword(tokens) {
	case "auto":
		return pr.TableLayoutAuto
	case "fixed":
		return pr.TableLayoutFixed
	}
	return nil
}

func captionSide(tokens []Token) pr.CssProperty {
	switch getSingleKeyword(tokens) {
	case "top":
		return pr.CaptionTop
	case "bottom":
		return pr.CaptionBottom
	}
	return nil
}

// vertical-align values without a table specific meaning compute to baseline.
func verticalAlign(tokens []Token) pr.CssProperty {
	if len(tokens) != 1 {
		return nil
	}
	if _, ok := getLength(tokens[0], true, true); ok {
		return pr.AlignBaseline
	}
	switch getKeyword(tokens[0]) {
	case "baseline", "sub", "super", "text-top", "text-bottom":
		return pr.AlignBaseline
	case "top":
		return pr.AlignTop
	case "middle":
		return pr.AlignMiddle
	case "bottom":
		return pr.AlignBottom
	}
	return nil
}

func visibility(tokens []Token) pr.CssProperty {
	switch getSingleKeyword(tokens) {
	case "visible":
		return pr.Visible
	case "hidden":
		return pr.Hidden
	case "collapse":
		return pr.Collapsed
	}
	return nil
}

func boxSizing(tokens []Token) pr.CssProperty {
	switch getSingleKeyword(tokens) {
	case "content-box":
		return pr.ContentBox
	case "border-box":
		return pr.BorderBox
	}
	return nil
}

func color(tokens []Token) pr.CssProperty {
	if len(tokens) != 1 {
		return nil
	}
	if c, ok := pa.ParseColor(tokens[0]); ok {
		return c
	}
	return nil
}

func widthHeight(tokens []Token) pr.CssProperty {
	if len(tokens) != 1 {
		return nil
	}
	if getKeyword(tokens[0]) == "auto" {
		return pr.Dimension{}
	}
	if d, ok := getLength(tokens[0], false, true); ok {
		return d
	}
	return nil
}

// 'auto' is accepted and computes to 0 for table boxes.
func minWidthHeight(tokens []Token) pr.CssProperty {
	if len(tokens) != 1 {
		return nil
	}
	if getKeyword(tokens[0]) == "auto" {
		return pr.FixedPx(0)
	}
	if d, ok := getLength(tokens[0], false, true); ok {
		return d
	}
	return nil
}

func maxWidthHeight(tokens []Token) pr.CssProperty {
	if len(tokens) != 1 {
		return nil
	}
	if getKeyword(tokens[0]) == "none" {
		return pr.Dimension{}
	}
	if d, ok := getLength(tokens[0], false, true); ok {
		return d
	}
	return nil
}

func lengthPercOrAuto(tokens []Token) pr.CssProperty {
	if len(tokens) != 1 {
		return nil
	}
	if getKeyword(tokens[0]) == "auto" {
		return pr.Dimension{}
	}
	if d, ok := getLength(tokens[0], true, true); ok {
		return d
	}
	return nil
}

func lengthOrPercentage(tokens []Token) pr.CssProperty {
	if len(tokens) != 1 {
		return nil
	}
	if d, ok := getLength(tokens[0], false, true); ok {
		return d
	}
	return nil
}

func borderStyle(tokens []Token) pr.CssProperty {
	switch getSingleKeyword(tokens) {
	case "none":
		return pr.BorderNone
	case "hidden":
		return pr.BorderHidden
	case "inset":
		return pr.BorderInset
	case "groove":
		return pr.BorderGroove
	case "outset":
		return pr.BorderOutset
	case "ridge":
		return pr.BorderRidge
	case "dotted":
		return pr.BorderDotted
	case "dashed":
		return pr.BorderDashed
	case "solid":
		return pr.BorderSolid
	case "double":
		return pr.BorderDouble
	}
	return nil
}

// Border widths are rounded to whole pixels.
func borderWidth(tokens []Token) pr.CssProperty {
	if len(tokens) != 1 {
		return nil
	}
	if d, ok := getLength(tokens[0], false, false); ok {
		return pr.Int(utils.Round(d.Value))
	}
	if w, ok := pr.BorderWidthKeywords[getKeyword(tokens[0])]; ok {
		return pr.Int(w)
	}
	return nil
}

func borderSpacing(tokens []Token) pr.CssProperty {
	var lengths []int
	for _, token := range tokens {
		d, ok := getLength(token, false, false)
		if !ok {
			return nil
		}
		lengths = append(lengths, utils.Round(d.Value))
	}
	switch len(lengths) {
	case 1:
		return pr.Spacing{H: lengths[0], V: lengths[0]}
	case 2:
		return pr.Spacing{H: lengths[0], V: lengths[1]}
	}
	return nil
}

func (d Declaration) String() string {
	switch d.Default {
	case Initial:
		return fmt.Sprintf("%s: initial", d.Name)
	case Inherit:
		return fmt.Sprintf("%s: inherit", d.Name)
	}
	return fmt.Sprintf("%s: %v", d.Name, d.Value)
}
