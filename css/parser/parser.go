// Package parser implements a CSS tokenizer and the declaration list
// parser needed for the HTML 'style' attribute, following
// https://www.w3.org/TR/css-syntax-3/.
package parser

import (
	"fmt"

	"github.com/benoitkugler/tablelayout/utils"
)

// Compound is either a [Declaration] or a [ParseError].
type Compound interface {
	Pos() Pos
	isCompound()
}

type Declaration struct {
	Name      string // lower cased
	Value     []Token
	pos       Pos
	Important bool
}

func (Declaration) isCompound() {}
func (ParseError) isCompound()  {}

func (t Declaration) Pos() Pos { return t.pos }

// ParseOneDeclaration parses a single declaration, returning a [ParseError] or a [Declaration].
// Any whitespace or comment before the “:“ colon is dropped.
func ParseOneDeclaration(input []Token) Compound {
	tokens := NewIter(input)
	firstToken := tokens.NextSignificant()
	if firstToken == nil {
		return ParseError{pos: Pos{1, 1}, kind: errEmpty, Message: "Input is empty"}
	}
	return parseDeclaration(firstToken, tokens)
}

// parses a declaration, by consuming `tokens`
// until the end of the declaration or the first error.
func parseDeclaration(firstToken Token, tokens *TokensIter) Compound {
	name, ok := firstToken.(Ident)
	if !ok {
		return ParseError{
			pos:     firstToken.Pos(),
			kind:    errInvalid,
			Message: fmt.Sprintf("Expected <ident> for declaration name, got %s.", firstToken.Kind()),
		}
	}
	colon := tokens.NextSignificant()
	if colon == nil {
		return ParseError{
			pos:     firstToken.Pos(),
			kind:    errInvalid,
			Message: "Expected ':' after declaration name, got EOF",
		}
	}
	if lit, ok := colon.(Literal); !ok || lit.Value != ":" {
		return ParseError{
			pos:     colon.Pos(),
			kind:    errInvalid,
			Message: fmt.Sprintf("Expected ':' after declaration name, got %s.", colon.Kind()),
		}
	}

	const (
		_ = iota
		sValue
		sImportant
		sBang
	)
	var (
		value           []Token
		state           = sValue
		bangPosition, i = 0, -1
	)
	for tokens.HasNext() {
		i += 1
		token := tokens.Next()
		switch token := token.(type) {
		case Literal:
			if state == sValue && token.Value == "!" {
				state = sBang
				bangPosition = i
			} else {
				state = sValue
			}
		case Ident:
			if state == sBang && utils.AsciiLower(token.Value) == "important" {
				state = sImportant
			}
		default:
			if token.Kind() != KWhitespace && token.Kind() != KComment {
				state = sValue
			}
		}
		value = append(value, token)
	}

	if state == sImportant {
		value = value[:bangPosition]
	}

	return Declaration{
		pos:       name.pos,
		Name:      utils.AsciiLower(name.Value),
		Value:     value,
		Important: state == sImportant,
	}
}

// Like `parseDeclaration`, but stop at the first “;“.
func consumeDeclarationInList(firstToken Token, tokens *TokensIter) Compound {
	var otherDeclarationTokens []Token
	for tokens.HasNext() {
		token := tokens.Next()
		if lit, ok := token.(Literal); ok && lit.Value == ";" {
			break
		}
		otherDeclarationTokens = append(otherDeclarationTokens, token)
	}
	return parseDeclaration(firstToken, NewIter(otherDeclarationTokens))
}

// ParseDeclarationListString tokenizes `css` and calls [ParseDeclarationList].
func ParseDeclarationListString(css string) []Compound {
	return ParseDeclarationList(Tokenize([]byte(css), true))
}

// ParseDeclarationList parses a declaration list, like the content of
// the “style“ attribute of an HTML element.
// Whitespace and comments at the top level of the list are ignored.
func ParseDeclarationList(input []Token) []Compound {
	tokens := NewIter(input)
	var result []Compound
	for tokens.HasNext() {
		token := tokens.Next()
		switch token := token.(type) {
		case Whitespace, Comment:
		case Literal:
			if token.Value != ";" {
				result = append(result, consumeDeclarationInList(token, tokens))
			}
		default:
			result = append(result, consumeDeclarationInList(token, tokens))
		}
	}
	return result
}
