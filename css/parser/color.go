package parser

import (
	"strconv"

	pr "github.com/benoitkugler/tablelayout/css/properties"
	"github.com/benoitkugler/tablelayout/utils"
)

var namedColors = map[string]pr.Color{
	"transparent": {},
	"black":       {R: 0, G: 0, B: 0, A: 255, Current: false},
	"silver":      {R: 192, G: 192, B: 192, A: 255, Current: false},
	"gray":        {R: 128, G: 128, B: 128, A: 255, Current: false},
	"grey":        {R: 128, G: 128, B: 128, A: 255, Current: false},
	"white":       {R: 255, G: 255, B: 255, A: 255, Current: false},
	"maroon":      {R: 128, G: 0, B: 0, A: 255, Current: false},
	"red":         {R: 255, G: 0, B: 0, A: 255, Current: false},
	"purple":      {R: 128, G: 0, B: 128, A: 255, Current: false},
	"fuchsia":     {R: 255, G: 0, B: 255, A: 255, Current: false},
	"magenta":     {R: 255, G: 0, B: 255, A: 255, Current: false},
	"green":       {R: 0, G: 128, B: 0, A: 255, Current: false},
	"lime":        {R: 0, G: 255, B: 0, A: 255, Current: false},
	"olive":       {R: 128, G: 128, B: 0, A: 255, Current: false},
	"yellow":      {R: 255, G: 255, B: 0, A: 255, Current: false},
	"navy":        {R: 0, G: 0, B: 128, A: 255, Current: false},
	"blue":        {R: 0, G: 0, B: 255, A: 255, Current: false},
	"teal":        {R: 0, G: 128, B: 128, A: 255, Current: false},
	"aqua":        {R: 0, G: 255, B: 255, A: 255, Current: false},
	"cyan":        {R: 0, G: 255, B: 255, A: 255, Current: false},
	"orange":      {R: 255, G: 165, B: 0, A: 255, Current: false},
	"pink":        {R: 255, G: 192, B: 203, A: 255, Current: false},
	"brown":       {R: 165, G: 42, B: 42, A: 255, Current: false},
	"gold":        {R: 255, G: 215, B: 0, A: 255, Current: false},
	"indigo":      {R: 75, G: 0, B: 130, A: 255, Current: false},
	"violet":      {R: 238, G: 130, B: 238, A: 255, Current: false},
	"lightgray":   {R: 211, G: 211, B: 211, A: 255, Current: false},
	"lightgrey":   {R: 211, G: 211, B: 211, A: 255, Current: false},
	"darkgray":    {R: 169, G: 169, B: 169, A: 255, Current: false},
	"darkgrey":    {R: 169, G: 169, B: 169, A: 255, Current: false},
}

// ParseColor parses a color value. It supports the CSS 2.1 named colors
// (plus a few common extensions), 'transparent', 'currentColor',
// the hexadecimal notations and the rgb() and rgba() functions.
func ParseColor(token Token) (pr.Color, bool) {
	switch token := token.(type) {
	case Ident:
		name := utils.AsciiLower(token.Value)
		if name == "currentcolor" {
			return pr.CurrentColor, true
		}
		c, ok := namedColors[name]
		return c, ok
	case Hash:
		return parseHash(token.Value)
	case FunctionBlock:
		if token.Name != "rgb" && token.Name != "rgba" {
			return pr.Color{}, false
		}
		return parseRGB(RemoveWhitespace(*token.Arguments))
	}
	return pr.Color{}, false
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func parseHash(value string) (pr.Color, bool) {
	digits := make([]uint8, len(value))
	for i := range value {
		d, ok := hexDigit(value[i])
		if !ok {
			return pr.Color{}, false
		}
		digits[i] = d
	}
	switch len(digits) {
	case 3, 4:
		c := pr.Color{R: digits[0] * 17, G: digits[1] * 17, B: digits[2] * 17, A: 255}
		if len(digits) == 4 {
			c.A = digits[3] * 17
		}
		return c, true
	case 6, 8:
		c := pr.Color{R: digits[0]<<4 | digits[1], G: digits[2]<<4 | digits[3], B: digits[4]<<4 | digits[5], A: 255}
		if len(digits) == 8 {
			c.A = digits[6]<<4 | digits[7]
		}
		return c, true
	}
	return pr.Color{}, false
}

func clampChannel(v utils.Fl) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(utils.Round(v))
}

// parseRGB accepts the legacy comma separated syntax and
// the space separated one.
func parseRGB(args []Token) (pr.Color, bool) {
	var values []Token
	for _, arg := range args {
		if lit, ok := arg.(Literal); ok && (lit.Value == "," || lit.Value == "/") {
			continue
		}
		values = append(values, arg)
	}
	if len(values) != 3 && len(values) != 4 {
		return pr.Color{}, false
	}
	var channels [3]uint8
	var isPercent bool
	for i, v := range values[:3] {
		switch v := v.(type) {
		case Number:
			if i > 0 && isPercent {
				return pr.Color{}, false
			}
			channels[i] = clampChannel(v.Value)
		case Percentage:
			if i > 0 && !isPercent {
				return pr.Color{}, false
			}
			isPercent = true
			channels[i] = clampChannel(v.Value * 255 / 100)
		default:
			return pr.Color{}, false
		}
	}
	alpha := uint8(255)
	if len(values) == 4 {
		switch v := values[3].(type) {
		case Number:
			alpha = clampChannel(v.Value * 255)
		case Percentage:
			alpha = clampChannel(v.Value * 255 / 100)
		default:
			return pr.Color{}, false
		}
	}
	return pr.Color{R: channels[0], G: channels[1], B: channels[2], A: alpha}, true
}

// ParseInteger returns the value of an integer [Number].
func ParseInteger(token Token) (int, bool) {
	if n, ok := token.(Number); ok && n.IsInteger {
		v, err := strconv.Atoi(n.Representation)
		return v, err == nil
	}
	return 0, false
}
