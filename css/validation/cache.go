package validation

import (
	lru "github.com/hashicorp/golang-lru/v2"

	pa "github.com/benoitkugler/tablelayout/css/parser"
)

const styleCacheSize = 512

// Tables tend to repeat the same 'style' attribute on many cells,
// so that parsed declarations are cached by source text.
var styleCache *lru.Cache[string, []Declaration]

func init() {
	var err error
	styleCache, err = lru.New[string, []Declaration](styleCacheSize)
	if err != nil {
		panic(err)
	}
}

// ParseStyleAttribute parses and validates the content of an HTML
// 'style' attribute. Warnings for invalid declarations are only
// emitted the first time a given text is seen.
//
// The returned slice is shared and must not be modified.
func ParseStyleAttribute(css string) []Declaration {
	if decls, ok := styleCache.Get(css); ok {
		return decls
	}
	decls := PreprocessDeclarations(pa.ParseDeclarationListString(css))
	styleCache.Add(css, decls)
	return decls
}

// PurgeStyleCache empties the cache of parsed style attributes.
func PurgeStyleCache() { styleCache.Purge() }
