package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/benoitkugler/tablelayout/utils"
)

var (
	numberRe    = regexp.MustCompile(`^[-+]?([0-9]*\.)?[0-9]+([eE][+-]?[0-9]+)?`)
	hexEscapeRe = regexp.MustCompile(`^([0-9A-Fa-f]{1,6})[ \n\t]?`)
)

type nestedBlock struct {
	tokens  *[]Token
	endChar byte
}

// TokenizeString is a convenience wrapper for [Tokenize].
func TokenizeString(css string, skipComments bool) []Token {
	return Tokenize([]byte(css), skipComments)
}

// Tokenize parses a list of component values, as found in
// a 'style' attribute.
// If `skipComments` is true, CSS comments are dropped.
func Tokenize(css []byte, skipComments bool) []Token {
	css = bytes.ReplaceAll(css, []byte("\u0000"), []byte("�"))
	css = bytes.ReplaceAll(css, []byte("\r\n"), []byte("\n"))
	css = bytes.ReplaceAll(css, []byte("\r"), []byte("\n"))
	css = bytes.ReplaceAll(css, []byte("\f"), []byte("\n"))

	length := len(css)
	tokenStartPos, pos := 0, 0
	line, lastNewline := 1, -1
	var out []Token  // possibly nested tokens
	ts := &out       // current stack of tokens
	var endChar byte // Pop the stack when encountering this character.
	var stack []nestedBlock

mainLoop:
	for pos < length {
		newline := bytes.LastIndexByte(css[tokenStartPos:pos], '\n')
		if newline != -1 {
			newline += tokenStartPos
			line += 1 + bytes.Count(css[tokenStartPos:newline], []byte{'\n'})
			lastNewline = newline
		}
		column := pos - lastNewline
		tokenPos := newPosition(line, column)

		tokenStartPos = pos
		c := css[pos]

		if c == ' ' || c == '\n' || c == '\t' {
			pos += 1
			for ; pos < length; pos += 1 {
				u := css[pos]
				if !(u == ' ' || u == '\n' || u == '\t') {
					break
				}
			}
			*ts = append(*ts, Whitespace{pos: tokenPos, Value: string(css[tokenStartPos:pos])})
			continue
		}

		if isIdentStart(css, pos) {
			var value string
			value, pos = consumeIdent(css, pos)
			if !(pos < length && css[pos] == '(') { // Not a function
				*ts = append(*ts, Ident{pos: tokenPos, Value: value})
				continue
			}
			pos += 1 // Skip the "("
			funcBlock := FunctionBlock{
				pos:       tokenPos,
				Name:      utils.AsciiLower(value),
				Arguments: new([]Token),
			}
			*ts = append(*ts, funcBlock)
			stack = append(stack, nestedBlock{tokens: ts, endChar: endChar})
			endChar = ')'
			ts = funcBlock.Arguments
			continue
		}

		if match := numberRe.FindIndex(css[pos:]); match != nil {
			repr := string(css[pos+match[0] : pos+match[1]])
			pos += match[1]
			value, _ := strconv.ParseFloat(repr, 32)
			if value == 0 {
				value = 0. // workaround -0
			}
			_, err := strconv.ParseInt(repr, 10, 0)
			n := Numeric{
				pos:            tokenPos,
				Representation: repr,
				IsInteger:      err == nil,
				Value:          utils.Fl(value),
			}
			if pos < length && isIdentStart(css, pos) {
				var unit string
				unit, pos = consumeIdent(css, pos)
				*ts = append(*ts, Dimension{Numeric: n, Unit: utils.AsciiLower(unit)})
			} else if pos < length && css[pos] == '%' {
				pos += 1
				*ts = append(*ts, Percentage(n))
			} else {
				*ts = append(*ts, Number(n))
			}
			continue
		}

		switch c {
		case '#':
			pos += 1
			if pos < length {
				r, _ := utf8.DecodeRune(css[pos:])
				if ('0' <= r && r <= '9' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '-' || r == '_') ||
					r > 0x7F || // Non-ASCII
					(r == '\\' && !bytes.HasPrefix(css[pos:], []byte("\\\n"))) { // Valid escape
					isIdentifier := isIdentStart(css, pos)
					var ident string
					ident, pos = consumeIdent(css, pos)
					*ts = append(*ts, Hash{pos: tokenPos, Value: ident, IsIdentifier: isIdentifier})
					continue
				}
			}
			*ts = append(*ts, Literal{pos: tokenPos, Value: "#"})
		case '(':
			brack := ParenthesesBlock{pos: tokenPos, Content: new([]Token)}
			*ts = append(*ts, brack)
			stack = append(stack, nestedBlock{tokens: ts, endChar: endChar})
			endChar = ')'
			ts = brack.Content
			pos += 1
		case 0: // never matches endChar at the top level
			pos += 1
		case endChar:
			var block nestedBlock
			block, stack = stack[len(stack)-1], stack[:len(stack)-1]
			ts, endChar = block.tokens, block.endChar
			pos += 1
		case ')':
			*ts = append(*ts, ParseError{pos: tokenPos, kind: errInvalid, Message: "Unmatched )"})
			pos += 1
		case '\'', '"':
			var (
				quoted string
				ok     bool
			)
			quoted, pos, ok = consumeQuotedString(css, pos)
			if ok {
				*ts = append(*ts, String{pos: tokenPos, Value: quoted})
			} else {
				*ts = append(*ts, ParseError{pos: tokenPos, kind: errBadString, Message: "bad string token"})
			}
		default:
			if bytes.HasPrefix(css[pos:], []byte("/*")) { // Comment
				index := bytes.Index(css[pos+2:], []byte("*/"))
				if index == -1 {
					if !skipComments {
						*ts = append(*ts, Comment{pos: tokenPos, Value: string(css[pos+2:])})
					}
					break mainLoop
				}
				pos += 2 + index
				if !skipComments {
					*ts = append(*ts, Comment{pos: tokenPos, Value: string(css[tokenStartPos+2 : pos])})
				}
				pos += 2
				continue
			}
			r, w := utf8.DecodeRune(css[pos:])
			pos += w
			*ts = append(*ts, Literal{pos: tokenPos, Value: string(r)})
		}
	}
	return out
}

// Return true if the given character is a name-start code point.
func isNameStart(css []byte, pos int) bool {
	// https://www.w3.org/TR/css-syntax-3/#name-start-code-point
	c, _ := utf8.DecodeRune(css[pos:])
	return c > 0x7F || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

// Return true if the given position is the start of a CSS identifier.
func isIdentStart(css []byte, pos int) bool {
	// https://www.w3.org/TR/css-syntax-3/#would-start-an-identifier
	if isNameStart(css, pos) {
		return true
	} else if css[pos] == '-' {
		pos += 1
		if pos >= len(css) {
			return false
		}
		nameStart := isNameStart(css, pos) || css[pos] == '-'
		validEscape := css[pos] == '\\' && !bytes.HasPrefix(css[pos:], []byte("\\\n"))
		return nameStart || validEscape
	} else if css[pos] == '\\' {
		return !bytes.HasPrefix(css[pos:], []byte("\\\n"))
	}
	return false
}

func consumeIdent(value []byte, pos int) (string, int) {
	// http://dev.w3.org/csswg/css-syntax/#consume-a-name
	var chunks strings.Builder
	L := len(value)
	startPos := pos
	for pos < L {
		c, w := utf8.DecodeRune(value[pos:])
		if strings.ContainsRune("abcdefghijklmnopqrstuvwxyz-_0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ", c) || c > 0x7F {
			pos += w
		} else if c == '\\' && !bytes.HasPrefix(value[pos:], []byte("\\\n")) {
			// Valid escape
			chunks.Write(value[startPos:pos])
			var car string
			car, pos = consumeEscape(value, pos+w)
			chunks.WriteString(car)
			startPos = pos
		} else {
			break
		}
	}
	chunks.Write(value[startPos:pos])
	return chunks.String(), pos
}

// consumeQuotedString returns the unescaped value, or false for an
// unescaped newline. css[pos] is assumed to be a quote.
// http://dev.w3.org/csswg/css-syntax/#consume-a-string-token
func consumeQuotedString(css []byte, pos int) (string, int, bool) {
	quote := rune(css[pos])
	pos += 1
	var chunks strings.Builder
	length := len(css)
	startPos := pos
	for pos < length {
		c, w := utf8.DecodeRune(css[pos:])
		switch c {
		case quote:
			chunks.Write(css[startPos:pos])
			return chunks.String(), pos + w, true
		case '\\':
			chunks.Write(css[startPos:pos])
			pos += w
			if pos < length {
				if css[pos] == '\n' { // Ignore escaped newlines
					pos += 1
				} else {
					var cs string
					cs, pos = consumeEscape(css, pos)
					chunks.WriteString(cs)
				}
			}
			startPos = pos
		case '\n':
			return "", pos, false
		default:
			pos += w
		}
	}
	// EOF in string is not an error
	chunks.Write(css[startPos:pos])
	return chunks.String(), pos, true
}

// Return (unescapedChar, newPos).
// Assumes a valid escape: pos is just after '\' and not followed by '\n'.
func consumeEscape(css []byte, pos int) (string, int) {
	// http://dev.w3.org/csswg/css-syntax/#consume-an-escaped-character
	hexMatch := hexEscapeRe.FindSubmatch(css[pos:])
	if len(hexMatch) >= 2 {
		codepoint, err := strconv.ParseInt(string(hexMatch[1]), 16, 0)
		if err != nil {
			panic(fmt.Sprintf("codepoint should be valid hexadecimal, got %s", hexMatch[0]))
		}
		char := "�"
		if 0 < codepoint && codepoint <= unicode.MaxRune {
			char = string(rune(codepoint))
		}
		return char, pos + len(hexMatch[0])
	} else if pos < len(css) {
		r, w := utf8.DecodeRune(css[pos:])
		return string(r), pos + w
	}
	return "�", pos
}
