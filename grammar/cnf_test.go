package grammar

import (
	"testing"
)

func TestIsolateStart(t *testing.T) {
	g := genGrammar(t, "s", []string{"a"}, map[string][]Body{
		"s": {{"a", "s"}, {"a"}},
	})

	g2 := isolateStart(g)
	if g2.Start != "S0" {
		t.Fatalf("unexpected start symbol: want: S0, got: %v", g2.Start)
	}
	if !g2.Productions["S0"].Contains(Body{"s"}) {
		t.Fatalf("the new start must derive the old start")
	}
	if g2.Productions["s"].Len() != 2 {
		t.Fatalf("the old start's bodies must be untouched")
	}
}

func TestIsolateStart_Freshness(t *testing.T) {
	g := genGrammar(t, "S0", []string{"a"}, map[string][]Body{
		"S0": {{"a"}},
	})

	g2 := isolateStart(g)
	if g2.Start != "S01" {
		t.Fatalf("unexpected start symbol: want: S01, got: %v", g2.Start)
	}
	if !g2.Productions["S01"].Contains(Body{"S0"}) {
		t.Fatalf("the new start must derive the old start")
	}
}

func TestIsolateTerminals(t *testing.T) {
	g := genGrammar(t, "s", []string{"a", "b"}, map[string][]Body{
		"s": {{"a", "f"}, {"a"}, {"a", "a", "b"}},
		"f": {{"b"}},
	})

	g2 := isolateTerminals(g)
	expectProductions(t, g2, map[string][]Body{
		"s":   {{"T_a", "f"}, {"a"}, {"T_a", "T_a", "T_b"}},
		"f":   {{"b"}},
		"T_a": {{"a"}},
		"T_b": {{"b"}},
	})
	if !g2.Nonterminals.Has("T_a") || !g2.Nonterminals.Has("T_b") {
		t.Fatalf("terminal aliases must be registered as nonterminals")
	}
	if !g2.Terminals.Has("a") || !g2.Terminals.Has("b") {
		t.Fatalf("the terminal set must be unchanged")
	}
}

func TestIsolateTerminals_AliasNameCollision(t *testing.T) {
	// A nonterminal named T_a already exists, so the alias for terminal a
	// must pick the next free name.
	g := genGrammar(t, "s", []string{"a"}, map[string][]Body{
		"s":   {{"a", "T_a"}},
		"T_a": {{"a"}},
	})

	g2 := isolateTerminals(g)
	expectProductions(t, g2, map[string][]Body{
		"s":    {{"T_a1", "T_a"}},
		"T_a":  {{"a"}},
		"T_a1": {{"a"}},
	})
}

func TestBinarize(t *testing.T) {
	g := genGrammar(t, "s", []string{"a"}, map[string][]Body{
		"s": {{"f", "g", "h", "f"}, {"f", "g"}, {"a"}},
		"f": {{"a"}},
		"g": {{"a"}},
		"h": {{"a"}},
	})

	g2 := binarize(g)
	expectProductions(t, g2, map[string][]Body{
		"s":  {{"f", "X1"}, {"f", "g"}, {"a"}},
		"X1": {{"g", "X2"}},
		"X2": {{"h", "f"}},
		"f":  {{"a"}},
		"g":  {{"a"}},
		"h":  {{"a"}},
	})
}

func TestToCNF(t *testing.T) {
	tests := []struct {
		caption   string
		start     string
		terminals []string
		rules     map[string][]Body
	}{
		{
			caption:   "matched pairs with ε",
			start:     "s",
			terminals: []string{"a", "b"},
			rules: map[string][]Body{
				"s": {{"a", "s", "b"}, {}},
			},
		},
		{
			caption:   "simple sentence grammar",
			start:     "S",
			terminals: []string{"dog", "cat", "barks", "meows"},
			rules: map[string][]Body{
				"S": {{"N", "V"}},
				"N": {{"dog"}, {"cat"}},
				"V": {{"barks"}, {"meows"}},
			},
		},
		{
			caption:   "grammar with unit chains and useless symbols",
			start:     "s",
			terminals: []string{"a", "b", "x"},
			rules: map[string][]Body{
				"s": {{"f"}, {"a", "g", "b"}},
				"f": {{"g"}, {}},
				"g": {{"a", "b", "a"}},
				"u": {{"u", "x"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := genGrammar(t, tt.start, tt.terminals, tt.rules)
			cnf := ToCNF(g)
			if !cnf.IsCNF() {
				t.Fatalf("the pipeline's output must satisfy the CNF predicate")
			}
			for head, bodies := range cnf.Productions {
				if head == cnf.Start {
					continue
				}
				for _, body := range bodies.Bodies() {
					if len(body) == 0 {
						t.Fatalf("ε survived on a non-start symbol: %v", head)
					}
					for _, sym := range body {
						if sym == cnf.Start {
							t.Fatalf("the start symbol appeared on a right-hand side")
						}
					}
				}
			}
		})
	}
}

func TestToCNF_Idempotence(t *testing.T) {
	g := genGrammar(t, "s", []string{"a", "b"}, map[string][]Body{
		"s": {{"a", "s", "b"}, {}},
	})

	once := ToCNF(g)
	twice := ToCNF(once)
	if !once.IsCNF() || !twice.IsCNF() {
		t.Fatalf("conversion must be stable under re-running")
	}
}

func TestToCNF_DoesNotMutateInput(t *testing.T) {
	g := genGrammar(t, "s", []string{"a", "b"}, map[string][]Body{
		"s": {{"a", "s", "b"}, {}},
	})

	ToCNF(g)
	expectProductions(t, g, map[string][]Body{
		"s": {{"a", "s", "b"}, {}},
	})
	if g.Start != "s" {
		t.Fatalf("the input grammar must be left untouched")
	}
}
