package boxes

import (
	"strconv"
	"strings"
)

// integerAttribute reads the leading digits of an HTML attribute,
// ignoring trailing garbage (as in "3px"). If there are no digits,
// [fallback] is returned.
func integerAttribute(attr string, fallback int) int {
	value := strings.TrimLeft(attr, " \t\n\f\r")
	end := 0
	for end < len(value) && '0' <= value[end] && value[end] <= '9' {
		end++
	}
	intValue, err := strconv.Atoi(value[:end])
	if err != nil { // no digits or overflow
		if end != 0 {
			return MaxRowIndex
		}
		return fallback
	}
	return intValue
}

// ParseColspan parses the 'colspan' attribute of a cell. Invalid values
// and 0 are mapped to 1, and large values clamped to [MaxColumnIndex].
//
// HTML 4.01 gives special meaning to colspan=0
// http://www.w3.org/TR/html401/struct/tables.html#adef-rowspan
// but HTML 5 removed it
// http://www.w3.org/TR/html5/tabular-data.html#attr-tdth-colspan
func ParseColspan(attr string) int {
	return clampColSpan(integerAttribute(attr, 1))
}

// ParseRowspan parses the 'rowspan' attribute of a cell. Invalid values
// are mapped to 1, large values clamped to [MaxRowIndex], and 0 is kept,
// meaning "every remaining row of the section".
func ParseRowspan(attr string) int {
	return clampRowSpan(integerAttribute(attr, 1))
}

// ParseSpan parses the 'span' attribute of a column or a column group.
func ParseSpan(attr string) int {
	return clampColSpan(integerAttribute(attr, 1))
}
