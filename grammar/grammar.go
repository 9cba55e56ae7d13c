package grammar

import (
	"crypto/sha256"
	"encoding/binary"
)

// Body is the right-hand side of a production. The empty body denotes ε.
type Body []string

type bodyID [32]byte

// genBodyID generates an ID unique to a symbol sequence. Each symbol is
// length-prefixed so that, for instance, ["ab"] and ["a", "b"] get distinct IDs.
func genBodyID(body Body) bodyID {
	h := sha256.New()
	var l [4]byte
	for _, sym := range body {
		binary.BigEndian.PutUint32(l[:], uint32(len(sym)))
		h.Write(l[:])
		h.Write([]byte(sym))
	}
	var id bodyID
	copy(id[:], h.Sum(nil))
	return id
}

func (b Body) equals(c Body) bool {
	if len(b) != len(c) {
		return false
	}
	for i, sym := range b {
		if sym != c[i] {
			return false
		}
	}
	return true
}

func (b Body) clone() Body {
	if b == nil {
		return nil
	}
	c := make(Body, len(b))
	copy(c, b)
	return c
}

// BodySet is a set of production bodies. Iteration over Bodies follows
// insertion order.
type BodySet struct {
	ids    map[bodyID]struct{}
	bodies []Body
}

func NewBodySet() *BodySet {
	return &BodySet{
		ids: map[bodyID]struct{}{},
	}
}

func (s *BodySet) Add(body Body) bool {
	id := genBodyID(body)
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	s.bodies = append(s.bodies, body.clone())
	return true
}

func (s *BodySet) Contains(body Body) bool {
	_, ok := s.ids[genBodyID(body)]
	return ok
}

func (s *BodySet) Bodies() []Body {
	return s.bodies
}

func (s *BodySet) Len() int {
	return len(s.bodies)
}

func (s *BodySet) clone() *BodySet {
	c := NewBodySet()
	for _, body := range s.bodies {
		c.Add(body)
	}
	return c
}

// SymbolSet is a set of symbol names.
type SymbolSet map[string]struct{}

func NewSymbolSet(syms ...string) SymbolSet {
	s := SymbolSet{}
	for _, sym := range syms {
		s.Add(sym)
	}
	return s
}

func (s SymbolSet) Add(sym string) bool {
	if _, ok := s[sym]; ok {
		return false
	}
	s[sym] = struct{}{}
	return true
}

func (s SymbolSet) Has(sym string) bool {
	_, ok := s[sym]
	return ok
}

func (s SymbolSet) clone() SymbolSet {
	c := make(SymbolSet, len(s))
	for sym := range s {
		c[sym] = struct{}{}
	}
	return c
}

// Grammar is a context-free grammar. A symbol is a nonterminal or a terminal
// depending solely on which set it belongs to; the symbol text itself carries
// no tag. Pipeline stages treat a Grammar as a value: they never mutate their
// input and the structures of an output never alias those of an input.
type Grammar struct {
	Nonterminals SymbolSet
	Terminals    SymbolSet
	Start        string
	Productions  map[string]*BodySet
}

func New(start string) *Grammar {
	return &Grammar{
		Nonterminals: NewSymbolSet(),
		Terminals:    NewSymbolSet(),
		Start:        start,
		Productions:  map[string]*BodySet{},
	}
}

// Clone returns a deep copy of the grammar.
func (g *Grammar) Clone() *Grammar {
	c := &Grammar{
		Nonterminals: g.Nonterminals.clone(),
		Terminals:    g.Terminals.clone(),
		Start:        g.Start,
		Productions:  make(map[string]*BodySet, len(g.Productions)),
	}
	for head, bodies := range g.Productions {
		c.Productions[head] = bodies.clone()
	}
	return c
}

// AddProduction inserts head → body. The head is registered as a nonterminal
// if it is not one yet; every pipeline stage that synthesizes fresh
// nonterminals relies on this. Duplicate bodies collapse.
func (g *Grammar) AddProduction(head string, body Body) {
	bodies, ok := g.Productions[head]
	if !ok {
		bodies = NewBodySet()
		g.Productions[head] = bodies
	}
	bodies.Add(body)
	g.Nonterminals.Add(head)
}

// AddTerminal registers a terminal symbol.
func (g *Grammar) AddTerminal(sym string) {
	g.Terminals.Add(sym)
}

// IsCNF reports whether the grammar satisfies the Chomsky normal form
// predicate: every body is either two nonterminals, a single terminal, or the
// empty body on the start symbol only.
func (g *Grammar) IsCNF() bool {
	for head, bodies := range g.Productions {
		for _, body := range bodies.Bodies() {
			switch len(body) {
			case 0:
				if head != g.Start {
					return false
				}
			case 1:
				if !g.Terminals.Has(body[0]) {
					return false
				}
			case 2:
				if !g.Nonterminals.Has(body[0]) || !g.Nonterminals.Has(body[1]) {
					return false
				}
			default:
				return false
			}
		}
	}
	return true
}

// symbolUniverse returns the set of all symbols the grammar uses, nonterminals
// and terminals alike. Fresh-symbol generation checks candidates against it.
func (g *Grammar) symbolUniverse() SymbolSet {
	u := make(SymbolSet, len(g.Nonterminals)+len(g.Terminals))
	for sym := range g.Nonterminals {
		u[sym] = struct{}{}
	}
	for sym := range g.Terminals {
		u[sym] = struct{}{}
	}
	return u
}
