package main

import (
	"github.com/nihei9/kasami/grammar"
	"github.com/nihei9/kasami/spec"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kasami",
	Short: "Convert context-free grammars to CNF and parse sentences with CYK",
	Long: `kasami works with context-free grammars:
- Converts a grammar into an equivalent one in Chomsky normal form.
- Decides whether a sentence belongs to the grammar's language using the
  CYK algorithm and reconstructs a parse tree when it does.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}

func readGrammar(path string) (*grammar.Grammar, error) {
	return spec.ParseGrammarFile(path)
}
