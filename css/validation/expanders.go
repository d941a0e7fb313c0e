package validation

import (
	"fmt"
	"strings"

	pa "github.com/benoitkugler/tablelayout/css/parser"
	pr "github.com/benoitkugler/tablelayout/css/properties"
)

type expander func(name string, tokens []Token) ([]Declaration, error)

var expanders map[string]expander

func init() {
	expanders = map[string]expander{
		"margin":        expandFourSides,
		"padding":       expandFourSides,
		"border-width":  expandFourSides,
		"border-style":  expandFourSides,
		"border-color":  expandFourSides,
		"border-top":    expandBorderSide,
		"border-right":  expandBorderSide,
		"border-bottom": expandBorderSide,
		"border-left":   expandBorderSide,
		"border":        expandBorder,
	}
}

var sidesSuffixes = [4]string{"-top", "-right", "-bottom", "-left"}

// defaulted returns one declaration per name, all with the given default.
func defaulted(names []string, def Default) []Declaration {
	out := make([]Declaration, len(names))
	for i, name := range names {
		out[i] = Declaration{Name: pr.PropsFromNames[name], Default: def}
	}
	return out
}

// Expand properties setting a token for the four sides of a box:
// "border-color", "border-style", "border-width", "margin", "padding"
func expandFourSides(name string, tokens []Token) (out []Declaration, err error) {
	indexM := strings.LastIndex(name, "-")
	var expandedNames [4]string
	for i, suffix := range sidesSuffixes {
		if indexM == -1 {
			expandedNames[i] = name + suffix
		} else {
			// eg. border-color becomes border-*-color, not border-color-*
			expandedNames[i] = name[:indexM] + suffix + name[indexM:]
		}
	}

	switch getSingleKeyword(tokens) {
	case "initial":
		return defaulted(expandedNames[:], Initial), nil
	case "inherit":
		return defaulted(expandedNames[:], Inherit), nil
	}

	// Make sure we have 4 tokens
	switch len(tokens) {
	case 1:
		tokens = []Token{tokens[0], tokens[0], tokens[0], tokens[0]}
	case 2:
		tokens = []Token{tokens[0], tokens[1], tokens[0], tokens[1]} // (bottom, left) defaults to (top, right)
	case 3:
		tokens = append(tokens, tokens[1]) // left defaults to right
	case 4:
	default:
		return nil, fmt.Errorf("expected 1 to 4 token components got %d", len(tokens))
	}

	for index, expandedName := range expandedNames {
		d, err := validateNonShorthand(expandedName, tokens[index:index+1])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Expand the “border-*“ shorthand properties, for one side.
// Missing values get their initial value.
//
//	See http://www.w3.org/TR/CSS21/box.html#propdef-border-top
func expandBorderSide(name string, tokens []Token) ([]Declaration, error) {
	expandedNames := []string{name + "-width", name + "-color", name + "-style"}
	switch getSingleKeyword(tokens) {
	case "initial":
		return defaulted(expandedNames, Initial), nil
	case "inherit":
		return defaulted(expandedNames, Inherit), nil
	}

	var width, col, style pr.CssProperty
	for _, token := range tokens {
		single := []Token{token}
		if c, ok := pa.ParseColor(token); ok && col == nil {
			col = c
		} else if w := borderWidth(single); w != nil && width == nil {
			width = w
		} else if s := borderStyle(single); s != nil && style == nil {
			style = s
		} else {
			return nil, ErrInvalidValue
		}
	}

	initial := pr.InitialStyle(pr.DisplayInline)
	out := make([]Declaration, 3)
	for i, v := range [3]pr.CssProperty{width, col, style} {
		prop := pr.PropsFromNames[expandedNames[i]]
		if v == nil {
			v = initial.Get(prop)
		}
		out[i] = Declaration{Name: prop, Value: v}
	}
	return out, nil
}

func expandBorder(_ string, tokens []Token) (out []Declaration, err error) {
	for _, suffix := range sidesSuffixes {
		props, err := expandBorderSide("border"+suffix, tokens)
		if err != nil {
			return nil, err
		}
		out = append(out, props...)
	}
	return out, nil
}
