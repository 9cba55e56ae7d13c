package spec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nihei9/kasami/grammar"
)

func TestWriteGrammar(t *testing.T) {
	g := grammar.New("S")
	g.AddTerminal("dog")
	g.AddTerminal("cat")
	g.AddTerminal("barks")
	g.AddProduction("S", grammar.Body{"N", "V"})
	g.AddProduction("S", grammar.Body{})
	g.AddProduction("N", grammar.Body{"dog"})
	g.AddProduction("N", grammar.Body{"cat"})
	g.AddProduction("V", grammar.Body{"barks"})

	var b strings.Builder
	require.NoError(t, WriteGrammar(&b, g))

	want := `Variables: N, S, V
Terminals: barks, cat, dog
Start: S
Rules:
  N -> cat | dog
  S -> ε | N V
  V -> barks
`
	assert.Equal(t, want, b.String())
}

func TestGrammarLines_Quoting(t *testing.T) {
	g := grammar.New("S")
	g.AddTerminal("white space")
	g.AddProduction("S", grammar.Body{"white space"})

	lines := GrammarLines(g)
	assert.Contains(t, lines, `Terminals: "white space"`)
	assert.Contains(t, lines, `  S -> "white space"`)
}
