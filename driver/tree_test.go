package driver

import (
	"strings"
	"testing"

	"github.com/nihei9/kasami/grammar"
)

func TestResult_Tree(t *testing.T) {
	res, err := Parse(genSentenceGrammar(t), []string{"dog", "barks"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted {
		t.Fatal("the sentence must be accepted")
	}

	// The grammar is unambiguous, so the tree is unique.
	tree := res.Tree()
	if tree == nil {
		t.Fatal("a tree must exist whenever the sentence is accepted")
	}
	if tree.Head != "S" || tree.IsLeaf() {
		t.Fatalf("unexpected root: %+v", tree)
	}
	left := tree.Left
	if !left.IsLeaf() || left.Head != "N" || left.Token != "dog" {
		t.Fatalf("unexpected left child: %+v", left)
	}
	right := tree.Right
	if !right.IsLeaf() || right.Head != "V" || right.Token != "barks" {
		t.Fatalf("unexpected right child: %+v", right)
	}
}

func TestResult_Tree_Rejected(t *testing.T) {
	res, err := Parse(genSentenceGrammar(t), []string{"barks", "dog"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Tree() != nil {
		t.Fatal("no tree must exist for a rejected sentence")
	}
}

// The yield of any reconstructed tree must equal the token sequence exactly,
// whichever derivation the backpointers recorded.
func TestTree_Yield(t *testing.T) {
	g := grammar.New("s")
	g.AddTerminal("a")
	g.AddTerminal("b")
	g.AddProduction("s", grammar.Body{"a", "s", "b"})
	g.AddProduction("s", grammar.Body{})
	cnf := grammar.ToCNF(g)

	tokens := []string{"a", "a", "a", "b", "b", "b"}
	res, err := Parse(cnf, tokens)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted {
		t.Fatal("the sequence must be accepted")
	}
	got := res.Tree().Yield()
	if len(got) != len(tokens) {
		t.Fatalf("unexpected yield: want: %v, got: %v", tokens, got)
	}
	for i, tok := range tokens {
		if got[i] != tok {
			t.Fatalf("unexpected yield: want: %v, got: %v", tokens, got)
		}
	}
}

func TestPrintTree(t *testing.T) {
	tree := &Tree{
		Head: "S",
		Left: &Tree{
			Head:  "N",
			Token: "dog",
		},
		Right: &Tree{
			Head:  "V",
			Token: "barks",
		},
	}

	var b strings.Builder
	PrintTree(&b, tree)
	want := `S
  N -> 'dog'
  V -> 'barks'
`
	if b.String() != want {
		t.Fatalf("unexpected output:\nwant:\n%v\ngot:\n%v", want, b.String())
	}
}
