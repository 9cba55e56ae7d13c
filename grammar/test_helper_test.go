package grammar

import (
	"testing"
)

func genGrammar(t *testing.T, start string, terminals []string, rules map[string][]Body) *Grammar {
	t.Helper()

	g := New(start)
	for _, term := range terminals {
		g.AddTerminal(term)
	}
	for head, bodies := range rules {
		for _, body := range bodies {
			g.AddProduction(head, body)
		}
	}
	return g
}

func expectProductions(t *testing.T, g *Grammar, want map[string][]Body) {
	t.Helper()

	if len(g.Productions) != len(want) {
		t.Fatalf("unexpected heads: want: %v heads, got: %v heads (%v)", len(want), len(g.Productions), heads(g))
	}
	for head, bodies := range want {
		got, ok := g.Productions[head]
		if !ok {
			t.Fatalf("a production set for %v was not found", head)
		}
		if got.Len() != len(bodies) {
			t.Fatalf("unexpected body count for %v: want: %v, got: %v", head, len(bodies), got.Len())
		}
		for _, body := range bodies {
			if !got.Contains(body) {
				t.Fatalf("a body %v for %v was not found", body, head)
			}
		}
	}
}

func heads(g *Grammar) []string {
	var hs []string
	for head := range g.Productions {
		hs = append(hs, head)
	}
	return hs
}
