package spec

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nihei9/kasami/grammar"
)

// WriteGrammar serializes a grammar in the same format ParseGrammar reads.
// The output is deterministic: symbol lists and rule heads are sorted, and
// bodies are ordered by length then lexicographically. ParseGrammar applied
// to the output yields a grammar structurally equal to g.
func WriteGrammar(w io.Writer, g *grammar.Grammar) error {
	for _, line := range GrammarLines(g) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// GrammarLines renders a grammar description line by line.
func GrammarLines(g *grammar.Grammar) []string {
	var lines []string
	lines = append(lines, "Variables: "+strings.Join(quoteAll(sortedSymbols(g.Nonterminals)), ", "))
	lines = append(lines, "Terminals: "+strings.Join(quoteAll(sortedSymbols(g.Terminals)), ", "))
	lines = append(lines, "Start: "+g.Start)
	lines = append(lines, "Rules:")

	heads := make([]string, 0, len(g.Productions))
	for head := range g.Productions {
		heads = append(heads, head)
	}
	sort.Strings(heads)
	for _, head := range heads {
		bodies := append([]grammar.Body{}, g.Productions[head].Bodies()...)
		sort.Slice(bodies, func(i, j int) bool {
			if len(bodies[i]) != len(bodies[j]) {
				return len(bodies[i]) < len(bodies[j])
			}
			for k := range bodies[i] {
				if bodies[i][k] != bodies[j][k] {
					return bodies[i][k] < bodies[j][k]
				}
			}
			return false
		})
		var alts []string
		for _, body := range bodies {
			if len(body) == 0 {
				alts = append(alts, "ε")
				continue
			}
			alts = append(alts, strings.Join(quoteAll(body), " "))
		}
		lines = append(lines, fmt.Sprintf("  %v -> %v", head, strings.Join(alts, " | ")))
	}
	return lines
}

func sortedSymbols(set grammar.SymbolSet) []string {
	syms := make([]string, 0, len(set))
	for sym := range set {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}

func quoteAll(syms []string) []string {
	quoted := make([]string, len(syms))
	for i, sym := range syms {
		quoted[i] = quoteSymbol(sym)
	}
	return quoted
}

// quoteSymbol quotes a symbol when writing it bare would change how the
// parser reads it back.
func quoteSymbol(sym string) string {
	if sym == "" || sym == "ε" || sym == "epsilon" || sym == "EPSILON" || strings.ContainsAny(sym, " \t\n\r,|\"'#") {
		var b strings.Builder
		b.WriteByte('"')
		for i := 0; i < len(sym); i++ {
			switch sym[i] {
			case '\\', '"':
				b.WriteByte('\\')
				b.WriteByte(sym[i])
			case '\n':
				b.WriteString(`\n`)
			case '\t':
				b.WriteString(`\t`)
			case '\r':
				b.WriteString(`\r`)
			default:
				b.WriteByte(sym[i])
			}
		}
		b.WriteByte('"')
		return b.String()
	}
	return sym
}
