// Package dot renders parse trees as Graphviz DOT graphs.
package dot

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/nihei9/kasami/driver"
)

type Options struct {
	// Colorize fills nonterminal nodes and token leaves with distinct
	// colors. When false the graph renders in plain black and white.
	Colorize bool
}

type node struct {
	ID    string
	Label string
	Fill  string
}

type edge struct {
	From string
	To   string
}

type graph struct {
	Shape string
	Nodes []*node
	Edges []*edge
}

const graphTemplate = `digraph ParseTree {
  rankdir=TB;
  node [shape={{ .Shape }}, fontsize=12];
{{- range .Nodes }}
  {{ .ID }} [label="{{ .Label }}"{{ if .Fill }}, style=filled, fillcolor="{{ .Fill }}"{{ end }}];
{{- end }}
{{- range .Edges }}
  {{ .From }} -> {{ .To }};
{{- end }}
}
`

// Write renders a parse tree in DOT format. Every tree node becomes a graph
// node labeled with its head, and every leaf additionally gets a child node
// holding the matched token.
func Write(w io.Writer, tree *driver.Tree, opts Options) error {
	g := &graph{
		Shape: "plaintext",
	}
	if opts.Colorize {
		g.Shape = "box"
	}
	b := &graphBuilder{
		graph:    g,
		colorize: opts.Colorize,
	}
	b.emit(tree)

	tmpl, err := template.New("dot").Parse(graphTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, g)
}

type graphBuilder struct {
	graph    *graph
	colorize bool
	counter  int
}

func (b *graphBuilder) nextID() string {
	id := fmt.Sprintf("n%v", b.counter)
	b.counter++
	return id
}

func (b *graphBuilder) addNode(label, fill string) string {
	id := b.nextID()
	if !b.colorize {
		fill = ""
	}
	b.graph.Nodes = append(b.graph.Nodes, &node{
		ID:    id,
		Label: escape(label),
		Fill:  fill,
	})
	return id
}

func (b *graphBuilder) emit(t *driver.Tree) string {
	id := b.addNode(t.Head, "lightblue")
	if t.IsLeaf() {
		leafID := b.addNode(t.Token, "palegreen")
		b.graph.Edges = append(b.graph.Edges, &edge{From: id, To: leafID})
		return id
	}
	leftID := b.emit(t.Left)
	rightID := b.emit(t.Right)
	b.graph.Edges = append(b.graph.Edges, &edge{From: id, To: leftID})
	b.graph.Edges = append(b.graph.Edges, &edge{From: id, To: rightID})
	return id
}

func escape(label string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return r.Replace(label)
}
