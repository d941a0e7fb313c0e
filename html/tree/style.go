package tree

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/bidi"

	pr "github.com/benoitkugler/tablelayout/css/properties"
	"github.com/benoitkugler/tablelayout/css/validation"
	"github.com/benoitkugler/tablelayout/utils"
)

// uaDeclarations is the part of the HTML user agent stylesheet
// applying to table elements.
var uaDeclarations = map[atom.Atom]string{
	atom.Table:    "display: table; border-collapse: separate; border-spacing: 2px; box-sizing: border-box",
	atom.Caption:  "display: table-caption",
	atom.Colgroup: "display: table-column-group",
	atom.Col:      "display: table-column",
	atom.Thead:    "display: table-header-group; vertical-align: middle",
	atom.Tbody:    "display: table-row-group; vertical-align: middle",
	atom.Tfoot:    "display: table-footer-group; vertical-align: middle",
	atom.Tr:       "display: table-row; vertical-align: inherit",
	atom.Td:       "display: table-cell; vertical-align: inherit; padding: 1px",
	atom.Th:       "display: table-cell; vertical-align: inherit; padding: 1px",
}

var vAlignKeywords = utils.NewSet("top", "middle", "bottom", "baseline")

// getAttr returns the value of the attribute [key], or "".
func getAttr(node *html.Node, key string) string {
	for _, attr := range node.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasAttr(node *html.Node, key string) bool {
	for _, attr := range node.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

func isDigit(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// lengthHint maps an HTML length attribute to a declaration:
// whole numbers are pixels, other values are used as CSS.
func lengthHint(property, value string) string {
	value = strings.TrimSpace(value)
	if isDigit(value) {
		value += "px"
	}
	return fmt.Sprintf("%s:%s", property, value)
}

// parseBorderAttribute returns the width set by the 'border'
// attribute of a table, which defaults to 1 when present but invalid.
func parseBorderAttribute(node *html.Node) (int, bool) {
	if !hasAttr(node, "border") {
		return 0, false
	}
	value := strings.TrimSpace(getAttr(node, "border"))
	width, err := strconv.Atoi(value)
	if err != nil || width < 0 {
		return 1, true
	}
	return width, true
}

// presentationalHints returns the declarations derived from the attributes of [element].
// [table] is the table owning the element, used for the hints the table
// attributes give to its cells.
func presentationalHints(element *html.Node, table *tableBuilder) []string {
	var out []string
	switch dir := utils.AsciiLower(getAttr(element, "dir")); dir {
	case "ltr", "rtl":
		out = append(out, "direction:"+dir)
	}

	switch element.DataAtom {
	case atom.Table:
		if v := getAttr(element, "cellspacing"); v != "" {
			out = append(out, lengthHint("border-spacing", v))
		}
		if v := getAttr(element, "hspace"); v != "" {
			out = append(out, lengthHint("margin-left", v), lengthHint("margin-right", v))
		}
		if v := getAttr(element, "vspace"); v != "" {
			out = append(out, lengthHint("margin-top", v), lengthHint("margin-bottom", v))
		}
		if v := getAttr(element, "width"); v != "" {
			out = append(out, lengthHint("width", v))
		}
		if v := getAttr(element, "height"); v != "" {
			out = append(out, lengthHint("height", v))
		}
		if width, ok := parseBorderAttribute(element); ok {
			out = append(out, fmt.Sprintf("border:%dpx outset", width))
		}
		if v := getAttr(element, "bordercolor"); v != "" {
			out = append(out, "border-color:"+v)
		}
	case atom.Col, atom.Colgroup:
		if v := getAttr(element, "width"); v != "" {
			out = append(out, lengthHint("width", v))
		}
	case atom.Thead, atom.Tbody, atom.Tfoot, atom.Tr, atom.Td, atom.Th:
		if valign := utils.AsciiLower(strings.TrimSpace(getAttr(element, "valign"))); vAlignKeywords.Has(valign) {
			out = append(out, "vertical-align:"+valign)
		}
		if element.DataAtom == atom.Tr || element.DataAtom == atom.Td || element.DataAtom == atom.Th {
			if v := getAttr(element, "height"); v != "" {
				out = append(out, lengthHint("height", v))
			}
		}
		if element.DataAtom == atom.Td || element.DataAtom == atom.Th {
			if v := getAttr(element, "width"); v != "" {
				out = append(out, lengthHint("width", v))
			}
			if table != nil {
				out = append(out, table.cellHints...)
			}
		}
	}
	return out
}

// cellHints returns the declarations the attributes
// of a table give to its own cells (not to the cells of nested tables).
func cellHints(table *html.Node) []string {
	var out []string
	if v := getAttr(table, "cellpadding"); v != "" {
		out = append(out, lengthHint("padding", v))
	}
	if width, ok := parseBorderAttribute(table); ok && width > 0 {
		out = append(out, "border:1px inset")
	}
	return out
}

// computeStyle returns the style of [element], from the initial values
// of [display] and the inherited values of [parent], updated with the user
// agent declarations, the presentational hints and the 'style' attribute,
// in that order.
func computeStyle(element *html.Node, parent *pr.Style, display pr.Display, table *tableBuilder) pr.Style {
	style := parent.Inherit(display)
	if ua, ok := uaDeclarations[element.DataAtom]; ok {
		validation.Apply(&style, parent, validation.ParseStyleAttribute(ua))
	}
	for _, hint := range presentationalHints(element, table) {
		validation.Apply(&style, parent, validation.ParseStyleAttribute(hint))
	}
	if css := getAttr(element, "style"); css != "" {
		validation.Apply(&style, parent, validation.ParseStyleAttribute(css))
	}
	if utils.AsciiLower(getAttr(element, "dir")) == "auto" {
		if dir, ok := firstStrongDirection(element); ok {
			style.Direction = dir
		}
	}
	return style
}

// firstStrongDirection returns the direction of the first character with
// a strong bidirectional class in the text of [element], skipping the
// elements with their own 'dir' attribute.
func firstStrongDirection(element *html.Node) (pr.Direction, bool) {
	for child := element.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			for s := child.Data; len(s) != 0; {
				props, size := bidi.LookupString(s)
				switch props.Class() {
				case bidi.L:
					return pr.LTR, true
				case bidi.R, bidi.AL:
					return pr.RTL, true
				}
				if size == 0 {
					break
				}
				s = s[size:]
			}
		case html.ElementNode:
			if hasAttr(child, "dir") || child.DataAtom == atom.Script || child.DataAtom == atom.Style {
				continue
			}
			if dir, ok := firstStrongDirection(child); ok {
				return dir, true
			}
		}
	}
	return pr.LTR, false
}
