package parser

import (
	"testing"

	pr "github.com/benoitkugler/tablelayout/css/properties"
	tu "github.com/benoitkugler/tablelayout/utils/testutils"
)

// kinds returns the kind of each token, for compact comparisons
func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind()
	}
	return out
}

func TestTokenize(t *testing.T) {
	tokens := TokenizeString("width: 10.5PX; border: 1px solid #f00 /* c */", true)
	tu.AssertEqual(t, kinds(tokens), []Kind{
		KIdent, KLiteral, KWhitespace, KDimension, KLiteral, KWhitespace,
		KIdent, KLiteral, KWhitespace, KDimension, KWhitespace, KIdent, KWhitespace, KHash, KWhitespace,
	})
	dim := tokens[3].(Dimension)
	tu.AssertEqual(t, dim.Value, float32(10.5))
	tu.AssertEqual(t, dim.Unit, "px")
	tu.AssertEqual(t, dim.IsInteger, false)
	tu.AssertEqual(t, tokens[13].(Hash).Value, "f00")

	tokens = TokenizeString("rgb(1, 2,3) 50% 'a\\62 c'", false)
	tu.AssertEqual(t, kinds(tokens), []Kind{KFunction, KWhitespace, KPercentage, KWhitespace, KString})
	fn := tokens[0].(FunctionBlock)
	tu.AssertEqual(t, fn.Name, "rgb")
	tu.AssertEqual(t, kinds(*fn.Arguments), []Kind{KNumber, KLiteral, KWhitespace, KNumber, KLiteral, KNumber})
	tu.AssertEqual(t, tokens[4].(String).Value, "abc")

	tokens = TokenizeString("a\nb", false)
	tu.AssertEqual(t, tokens[2].Pos(), Pos{Line: 2, Column: 1})
}

func TestDeclarationList(t *testing.T) {
	decls := ParseDeclarationListString("; color : red !important; 4px; width:10px;;")
	tu.AssertEqual(t, len(decls), 3)

	d := decls[0].(Declaration)
	tu.AssertEqual(t, d.Name, "color")
	tu.AssertEqual(t, d.Important, true)
	tu.AssertEqual(t, Serialize(RemoveWhitespace(d.Value)), "red")

	if _, ok := decls[1].(ParseError); !ok {
		t.Fatalf("expected a parse error, got %v", decls[1])
	}

	d = decls[2].(Declaration)
	tu.AssertEqual(t, d.Name, "width")
	tu.AssertEqual(t, d.Important, false)
	tu.AssertEqual(t, Serialize(d.Value), "10px")
}

func TestParseOneDeclaration(t *testing.T) {
	if _, ok := ParseOneDeclaration(nil).(ParseError); !ok {
		t.Fatal("expected an error for an empty input")
	}
	if _, ok := ParseOneDeclaration(TokenizeString("width 4px", true)).(ParseError); !ok {
		t.Fatal("expected an error for a missing colon")
	}
	d := ParseOneDeclaration(TokenizeString("  Border-Spacing: 1px 2px", true)).(Declaration)
	tu.AssertEqual(t, d.Name, "border-spacing")
	tu.AssertEqual(t, len(RemoveWhitespace(d.Value)), 2)
}

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		css string
		exp pr.Color
		ok  bool
	}{
		{"red", pr.Color{R: 255, A: 255}, true},
		{"Transparent", pr.Color{}, true},
		{"currentColor", pr.CurrentColor, true},
		{"#0f08", pr.Color{G: 255, A: 136}, true},
		{"#102030", pr.Color{R: 16, G: 32, B: 48, A: 255}, true},
		{"#12345", pr.Color{}, false},
		{"rgb(10, 20, 300)", pr.Color{R: 10, G: 20, B: 255, A: 255}, true},
		{"rgba(100%, 0%, 0%, 0.5)", pr.Color{R: 255, A: 128}, true},
		{"rgb(10 20 30 / 50%)", pr.Color{R: 10, G: 20, B: 30, A: 128}, true},
		{"rgb(10%, 20, 30)", pr.Color{}, false},
		{"hsl(10, 20%, 30%)", pr.Color{}, false},
		{"nocolor", pr.Color{}, false},
	} {
		tokens := RemoveWhitespace(TokenizeString(test.css, true))
		got, ok := ParseColor(tokens[0])
		tu.AssertEqual(t, ok, test.ok)
		tu.AssertEqual(t, got, test.exp)
	}
}

func TestSplitOnComma(t *testing.T) {
	parts := SplitOnComma(TokenizeString("a,b c,", true))
	tu.AssertEqual(t, len(parts), 3)
	tu.AssertEqual(t, Serialize(parts[1]), "b c")
	tu.AssertEqual(t, len(parts[2]), 0)
}
