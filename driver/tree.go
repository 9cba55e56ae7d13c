package driver

import (
	"fmt"
	"io"
	"strings"
)

// Tree is a node of a binary parse tree. A node is either a leaf, deriving a
// single matched token, or an internal node with exactly two children.
type Tree struct {
	Head  string
	Token string
	Left  *Tree
	Right *Tree
}

func (t *Tree) IsLeaf() bool {
	return t.Left == nil
}

// Yield returns the tokens at the leaves, left to right. For a tree built
// from a Result it equals the parsed token sequence exactly.
func (t *Tree) Yield() []string {
	var toks []string
	t.yield(&toks)
	return toks
}

func (t *Tree) yield(toks *[]string) {
	if t.IsLeaf() {
		*toks = append(*toks, t.Token)
		return
	}
	t.Left.yield(toks)
	t.Right.yield(toks)
}

// Tree reconstructs one concrete derivation from the backpointers. It returns
// nil when no derivation of the full span by the start symbol was recorded,
// which includes the empty-input case. Each recursive step strictly shrinks
// the covered span, so the walk terminates and its depth is bounded by the
// input length.
func (r *Result) Tree() *Tree {
	root := backKey{i: 0, span: len(r.tokens), head: r.start}
	if _, ok := r.back[root]; !ok {
		return nil
	}
	return r.expand(0, len(r.tokens), r.start)
}

func (r *Result) expand(i, span int, head string) *Tree {
	bp := r.back[backKey{i: i, span: span, head: head}]
	if bp.terminal {
		return &Tree{
			Head:  head,
			Token: bp.token,
		}
	}
	return &Tree{
		Head:  head,
		Left:  r.expand(i, bp.split, bp.left),
		Right: r.expand(i+bp.split, span-bp.split, bp.right),
	}
}

// PrintTree writes a tree in an indented, human-readable form: internal nodes
// print their head followed by their children one level deeper, and leaves
// print as head -> 'token'.
func PrintTree(w io.Writer, t *Tree) {
	printTree(w, t, 0)
}

func printTree(w io.Writer, t *Tree, depth int) {
	indent := strings.Repeat("  ", depth)
	if t.IsLeaf() {
		fmt.Fprintf(w, "%v%v -> '%v'\n", indent, t.Head, t.Token)
		return
	}
	fmt.Fprintf(w, "%v%v\n", indent, t.Head)
	printTree(w, t.Left, depth+1)
	printTree(w, t.Right, depth+1)
}
