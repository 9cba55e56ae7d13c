package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nihei9/kasami/grammar"
	"github.com/nihei9/kasami/spec"
	"github.com/spf13/cobra"
)

var convertFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "convert <grammar file path>",
		Short:   "Convert a context-free grammar into Chomsky normal form",
		Example: `  kasami convert grammar.txt -o grammar.cnf.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runConvert,
	}
	convertFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read a grammar: %w", err)
	}
	cnf := grammar.ToCNF(g)

	var w io.Writer = os.Stdout
	if *convertFlags.output != "" {
		f, err := os.Create(*convertFlags.output)
		if err != nil {
			return fmt.Errorf("Cannot create the output file %s: %w", *convertFlags.output, err)
		}
		defer f.Close()
		w = f
	}
	return spec.WriteGrammar(w, cnf)
}
