package grammar

import (
	"sort"
	"strconv"
)

// ToCNF converts a grammar into an equivalent grammar in Chomsky normal form.
// The six stages run in a fixed order; later stages assume invariants the
// earlier ones establish. Every stage is total over a well-formed grammar and
// consumes and produces independent Grammar values.
func ToCNF(g *Grammar) *Grammar {
	g2 := isolateStart(g)
	g2 = removeUselessSymbols(g2)
	g2 = removeEpsilonProductions(g2)
	g2 = removeUnitProductions(g2)
	g2 = isolateTerminals(g2)
	g2 = binarize(g2)
	return g2
}

// isolateStart introduces a fresh start symbol deriving the old one, so the
// start symbol never appears on any right-hand side.
func isolateStart(g *Grammar) *Grammar {
	g2 := g.Clone()
	start := freshSymbol(g2.symbolUniverse(), "S0")
	g2.AddProduction(start, Body{g2.Start})
	g2.Start = start
	return g2
}

// isolateTerminals replaces every terminal occurring in a body of length > 1
// with a nonterminal dedicated to that terminal. The same nonterminal is
// reused for all occurrences of a terminal across the grammar.
func isolateTerminals(g *Grammar) *Grammar {
	productions := emptyBodySets(g)
	nonterminals := g.Nonterminals.clone()
	universe := g.symbolUniverse()
	aliases := map[string]string{}

	aliasOf := func(terminal string) string {
		if alias, ok := aliases[terminal]; ok {
			return alias
		}
		alias := freshSymbol(universe, "T_"+slugify(terminal))
		aliases[terminal] = alias
		universe.Add(alias)
		nonterminals.Add(alias)
		productions[alias] = NewBodySet()
		productions[alias].Add(Body{terminal})
		return alias
	}

	for _, head := range sortedHeads(g) {
		for _, body := range g.Productions[head].Bodies() {
			// A body of length 1 holding a terminal is already valid CNF.
			if len(body) <= 1 {
				productions[head].Add(body)
				continue
			}
			replaced := make(Body, len(body))
			for i, sym := range body {
				if g.Terminals.Has(sym) {
					replaced[i] = aliasOf(sym)
				} else {
					replaced[i] = sym
				}
			}
			productions[head].Add(replaced)
		}
	}

	return &Grammar{
		Nonterminals: nonterminals,
		Terminals:    g.Terminals.clone(),
		Start:        g.Start,
		Productions:  productions,
	}
}

// binarize rewrites every body of length k > 2 into a chain of k-1 binary
// bodies through fresh nonterminals X1, X2, … numbered monotonically across
// the whole grammar.
func binarize(g *Grammar) *Grammar {
	productions := emptyBodySets(g)
	nonterminals := g.Nonterminals.clone()
	universe := g.symbolUniverse()
	counter := 1

	freshVar := func() string {
		for {
			candidate := "X" + strconv.Itoa(counter)
			counter++
			if !universe.Has(candidate) {
				universe.Add(candidate)
				nonterminals.Add(candidate)
				productions[candidate] = NewBodySet()
				return candidate
			}
		}
	}

	for _, head := range sortedHeads(g) {
		for _, body := range g.Productions[head].Bodies() {
			if len(body) <= 2 {
				productions[head].Add(body)
				continue
			}
			left := body[0]
			rest := body[1:]
			current := head
			for len(rest) > 1 {
				next := freshVar()
				productions[current].Add(Body{left, next})
				left = rest[0]
				rest = rest[1:]
				current = next
			}
			productions[current].Add(Body{left, rest[0]})
		}
	}

	return &Grammar{
		Nonterminals: nonterminals,
		Terminals:    g.Terminals.clone(),
		Start:        g.Start,
		Productions:  productions,
	}
}

// emptyBodySets returns a productions map with an empty body set per head of g.
func emptyBodySets(g *Grammar) map[string]*BodySet {
	productions := make(map[string]*BodySet, len(g.Productions))
	for head := range g.Productions {
		productions[head] = NewBodySet()
	}
	return productions
}

func sortedHeads(g *Grammar) []string {
	heads := make([]string, 0, len(g.Productions))
	for head := range g.Productions {
		heads = append(heads, head)
	}
	sort.Strings(heads)
	return heads
}

// rebuild assembles a grammar from a productions map: the nonterminals are the
// map's keys and the terminals are the body symbols that are not keys.
func rebuild(start string, productions map[string]*BodySet) *Grammar {
	nonterminals := NewSymbolSet()
	for head := range productions {
		nonterminals.Add(head)
	}
	terminals := NewSymbolSet()
	for _, bodies := range productions {
		for _, body := range bodies.Bodies() {
			for _, sym := range body {
				if !nonterminals.Has(sym) {
					terminals.Add(sym)
				}
			}
		}
	}
	return &Grammar{
		Nonterminals: nonterminals,
		Terminals:    terminals,
		Start:        start,
		Productions:  productions,
	}
}
