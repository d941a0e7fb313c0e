package parser

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/tablelayout/utils"
)

// Pos is the position of a token in the input, where
// the first character of a line is in column 1.
type Pos struct {
	Line, Column int
}

func newPosition(line, column int) Pos { return Pos{line, column} }

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

type Kind uint8

const (
	KWhitespace Kind = iota
	KComment
	KIdent
	KFunction
	KNumber
	KPercentage
	KDimension
	KHash
	KString
	KLiteral
	KParenthesesBlock
	KParseError
)

var kindNames = [...]string{
	KWhitespace:       "whitespace",
	KComment:          "comment",
	KIdent:            "ident",
	KFunction:         "function",
	KNumber:           "number",
	KPercentage:       "percentage",
	KDimension:        "dimension",
	KHash:             "hash",
	KString:           "string",
	KLiteral:          "literal",
	KParenthesesBlock: "() block",
	KParseError:       "error",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "<invalid kind>"
}

// Token is a component value of a CSS input.
type Token interface {
	Pos() Pos
	Kind() Kind
}

type Whitespace struct {
	pos   Pos
	Value string
}

type Comment struct {
	pos   Pos
	Value string
}

type Ident struct {
	pos   Pos
	Value string
}

// Literal is a single delimiter, like ':' or ','.
type Literal struct {
	pos   Pos
	Value string
}

type String struct {
	pos   Pos
	Value string
}

type Hash struct {
	pos          Pos
	Value        string
	IsIdentifier bool
}

// Numeric stores the common fields of numeric tokens.
type Numeric struct {
	pos            Pos
	Representation string
	Value          utils.Fl
	IsInteger      bool
}

type (
	Number     Numeric
	Percentage Numeric
)

type Dimension struct {
	Numeric
	Unit string // lower cased
}

type FunctionBlock struct {
	pos       Pos
	Name      string // lower cased
	Arguments *[]Token
}

type ParenthesesBlock struct {
	pos     Pos
	Content *[]Token
}

const (
	errInvalid = iota + 1
	errEmpty
	errExtraInput
	errBadString
)

type ParseError struct {
	pos     Pos
	kind    uint8
	Message string
}

func (t Whitespace) Pos() Pos       { return t.pos }
func (t Comment) Pos() Pos          { return t.pos }
func (t Ident) Pos() Pos            { return t.pos }
func (t Literal) Pos() Pos          { return t.pos }
func (t String) Pos() Pos           { return t.pos }
func (t Hash) Pos() Pos             { return t.pos }
func (t Number) Pos() Pos           { return t.pos }
func (t Percentage) Pos() Pos       { return t.pos }
func (t Dimension) Pos() Pos        { return t.pos }
func (t FunctionBlock) Pos() Pos    { return t.pos }
func (t ParenthesesBlock) Pos() Pos { return t.pos }
func (t ParseError) Pos() Pos       { return t.pos }

func (Whitespace) Kind() Kind       { return KWhitespace }
func (Comment) Kind() Kind          { return KComment }
func (Ident) Kind() Kind            { return KIdent }
func (Literal) Kind() Kind          { return KLiteral }
func (String) Kind() Kind           { return KString }
func (Hash) Kind() Kind             { return KHash }
func (Number) Kind() Kind           { return KNumber }
func (Percentage) Kind() Kind       { return KPercentage }
func (Dimension) Kind() Kind        { return KDimension }
func (FunctionBlock) Kind() Kind    { return KFunction }
func (ParenthesesBlock) Kind() Kind { return KParenthesesBlock }
func (ParseError) Kind() Kind       { return KParseError }

func (t ParseError) Error() string { return fmt.Sprintf("%s: %s", t.pos, t.Message) }

// Serialize returns a CSS text for tokens, used in warnings.
func Serialize(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		serializeTo(&b, t)
	}
	return b.String()
}

func serializeTo(b *strings.Builder, t Token) {
	switch t := t.(type) {
	case Whitespace:
		b.WriteString(" ")
	case Comment:
		b.WriteString("/*" + t.Value + "*/")
	case Ident:
		b.WriteString(t.Value)
	case Literal:
		b.WriteString(t.Value)
	case String:
		b.WriteString(fmt.Sprintf("%q", t.Value))
	case Hash:
		b.WriteString("#" + t.Value)
	case Number:
		b.WriteString(t.Representation)
	case Percentage:
		b.WriteString(t.Representation + "%")
	case Dimension:
		b.WriteString(t.Representation + t.Unit)
	case FunctionBlock:
		b.WriteString(t.Name + "(" + Serialize(*t.Arguments) + ")")
	case ParenthesesBlock:
		b.WriteString("(" + Serialize(*t.Content) + ")")
	case ParseError:
		b.WriteString("<error>")
	}
}

// TokensIter iterates over a list of tokens.
type TokensIter struct {
	tokens []Token
	index  int
}

func NewIter(tokens []Token) *TokensIter { return &TokensIter{tokens: tokens} }

func (it *TokensIter) HasNext() bool { return it.index < len(it.tokens) }

// Next returns the next token or nil at the end
func (it *TokensIter) Next() (t Token) {
	if it.HasNext() {
		t = it.tokens[it.index]
		it.index++
	}
	return t
}

// NextSignificant returns the next token that is not a whitespace or a comment,
// or nil at the end.
func (it *TokensIter) NextSignificant() Token {
	for it.HasNext() {
		token := it.Next()
		if k := token.Kind(); k != KWhitespace && k != KComment {
			return token
		}
	}
	return nil
}

// RemoveWhitespace removes the top level whitespaces and comments.
func RemoveWhitespace(tokens []Token) []Token {
	var out []Token
	for _, token := range tokens {
		if k := token.Kind(); k != KWhitespace && k != KComment {
			out = append(out, token)
		}
	}
	return out
}

// SplitOnComma splits the tokens on top level commas.
func SplitOnComma(tokens []Token) [][]Token {
	var parts [][]Token
	var current []Token
	for _, token := range tokens {
		if lit, ok := token.(Literal); ok && lit.Value == "," {
			parts = append(parts, current)
			current = nil
			continue
		}
		current = append(current, token)
	}
	return append(parts, current)
}
