package driver

import (
	"errors"
	"sort"

	"github.com/nihei9/kasami/grammar"
)

// ErrGrammarNotCNF is returned when a grammar passed to Parse does not
// satisfy the Chomsky normal form predicate. It always indicates a usage
// error on the caller's side; no table work happens.
var ErrGrammarNotCNF = errors.New("the grammar must be in Chomsky normal form")

// backpointer records one justification for a nonterminal deriving a span:
// either a matched terminal or a split into two sub-derivations.
type backpointer struct {
	terminal bool
	token    string
	split    int
	left     string
	right    string
}

type backKey struct {
	i    int
	span int
	head string
}

// cell is a set of nonterminals with insertion-ordered iteration. The order
// cells are filled in decides which backpointer wins when several derivations
// reach the same (i, span, head); keeping it explicit makes that tie-break
// stable for a given grammar value.
type cell struct {
	members map[string]struct{}
	syms    []string
}

func newCell() *cell {
	return &cell{
		members: map[string]struct{}{},
	}
}

func (c *cell) add(sym string) bool {
	if _, ok := c.members[sym]; ok {
		return false
	}
	c.members[sym] = struct{}{}
	c.syms = append(c.syms, sym)
	return true
}

func (c *cell) has(sym string) bool {
	_, ok := c.members[sym]
	return ok
}

// Result holds the outcome of a CYK run: the membership verdict, the filled
// triangular table, and the backpointers a parse tree is reconstructed from.
// A Result owns its structures exclusively; it never aliases the grammar.
type Result struct {
	Accepted bool

	tokens []string
	start  string
	table  [][]*cell
	back   map[backKey]backpointer
}

// Cell returns the nonterminals deriving the span of the given length starting
// at position i, in discovery order.
func (r *Result) Cell(i, span int) []string {
	if i < 0 || i >= len(r.table) || span < 1 || span > len(r.table[i])-1 {
		return nil
	}
	return r.table[i][span].syms
}

// Parse decides whether tokens belong to the language of g, which must be in
// CNF. The table is filled bottom-up: span-1 cells from the unary index, then
// each longer span by combining every split of every start position. The
// triple loop over (span, start, split) with the pairwise combination of cell
// contents is the expected cubic cost of CYK.
func Parse(g *grammar.Grammar, tokens []string) (*Result, error) {
	if !g.IsCNF() {
		return nil, ErrGrammarNotCNF
	}

	n := len(tokens)
	r := &Result{
		tokens: tokens,
		start:  g.Start,
		back:   map[backKey]backpointer{},
	}

	// The empty sequence is derivable only through an explicit ε body on the
	// start symbol; the table stays empty.
	if n == 0 {
		if bodies, ok := g.Productions[g.Start]; ok {
			r.Accepted = bodies.Contains(grammar.Body{})
		}
		return r, nil
	}

	unary, binary := inverseIndices(g)

	r.table = make([][]*cell, n)
	for i := range r.table {
		r.table[i] = make([]*cell, n+1)
		for span := range r.table[i] {
			r.table[i][span] = newCell()
		}
	}

	for i, tok := range tokens {
		for _, head := range unary[tok] {
			if r.table[i][1].add(head) {
				r.back[backKey{i: i, span: 1, head: head}] = backpointer{
					terminal: true,
					token:    tok,
				}
			}
		}
	}

	for span := 2; span <= n; span++ {
		for i := 0; i+span <= n; i++ {
			target := r.table[i][span]
			for split := 1; split < span; split++ {
				left := r.table[i][split]
				right := r.table[i+split][span-split]
				if len(left.syms) == 0 || len(right.syms) == 0 {
					continue
				}
				for _, b := range left.syms {
					for _, c := range right.syms {
						for _, head := range binary[[2]string{b, c}] {
							if target.add(head) {
								r.back[backKey{i: i, span: span, head: head}] = backpointer{
									split: split,
									left:  b,
									right: c,
								}
							}
						}
					}
				}
			}
		}
	}

	r.Accepted = r.table[0][n].has(g.Start)
	return r, nil
}

// inverseIndices builds the lookup maps CYK fills cells from: terminal → heads
// with that unit body, and (B, C) → heads with that binary body. Heads are
// collected in sorted order so the backpointer tie-break does not depend on
// map iteration.
func inverseIndices(g *grammar.Grammar) (map[string][]string, map[[2]string][]string) {
	unary := map[string][]string{}
	binary := map[[2]string][]string{}
	heads := make([]string, 0, len(g.Productions))
	for head := range g.Productions {
		heads = append(heads, head)
	}
	sort.Strings(heads)
	for _, head := range heads {
		for _, body := range g.Productions[head].Bodies() {
			switch len(body) {
			case 1:
				unary[body[0]] = append(unary[body[0]], head)
			case 2:
				pair := [2]string{body[0], body[1]}
				binary[pair] = append(binary[pair], head)
			}
		}
	}
	return unary, binary
}
