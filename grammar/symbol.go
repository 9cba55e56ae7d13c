package grammar

import (
	"regexp"
	"strconv"
)

// freshSymbol returns a symbol absent from used, derived from hint. The hint
// itself is preferred; otherwise hint1, hint2, … are scanned in order.
func freshSymbol(used SymbolSet, hint string) string {
	if !used.Has(hint) {
		return hint
	}
	for i := 1; ; i++ {
		candidate := hint + strconv.Itoa(i)
		if !used.Has(candidate) {
			return candidate
		}
	}
}

var reNonIdent = regexp.MustCompile(`[^0-9A-Za-z]+`)

// slugify maps arbitrary terminal text to an identifier-safe string. It is
// used only to derive readable names for synthesized nonterminals; collisions
// are resolved by freshSymbol.
func slugify(text string) string {
	s := reNonIdent.ReplaceAllString(text, "_")
	if s == "" {
		return "sym"
	}
	return s
}
