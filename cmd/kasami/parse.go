package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nihei9/kasami/dot"
	"github.com/nihei9/kasami/driver"
	"github.com/nihei9/kasami/grammar"
	"github.com/nihei9/kasami/spec"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	tokens    *[]string
	lowercase *bool
	showCNF   *bool
	cnfOutput *string
	treeDot   *string
	noColor   *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file path> [sentence]",
		Short:   "Parse a sentence with the CYK algorithm",
		Example: `  kasami parse grammar.txt 'the dog barks'`,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    runParse,
	}
	parseFlags.tokens = cmd.Flags().StringSlice("tokens", nil, "parse these tokens instead of tokenizing a sentence")
	parseFlags.lowercase = cmd.Flags().Bool("lowercase", false, "lowercase the sentence before tokenizing")
	parseFlags.showCNF = cmd.Flags().Bool("show-cnf", false, "print the grammar converted to CNF")
	parseFlags.cnfOutput = cmd.Flags().String("cnf-output", "", "save the grammar converted to CNF to this file")
	parseFlags.treeDot = cmd.Flags().String("tree-dot", "", "export the parse tree in Graphviz DOT format to this file")
	parseFlags.noColor = cmd.Flags().Bool("no-color", false, "render the DOT tree in black and white")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read a grammar: %w", err)
	}
	cnf := grammar.ToCNF(g)

	if *parseFlags.cnfOutput != "" {
		f, err := os.Create(*parseFlags.cnfOutput)
		if err != nil {
			return fmt.Errorf("Cannot create the CNF output file %s: %w", *parseFlags.cnfOutput, err)
		}
		err = spec.WriteGrammar(f, cnf)
		f.Close()
		if err != nil {
			return err
		}
	}
	if *parseFlags.showCNF {
		fmt.Fprintln(os.Stdout, "Grammar in CNF:")
		err := spec.WriteGrammar(os.Stdout, cnf)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout)
	}

	toks, err := readTokens(args)
	if err != nil {
		return err
	}

	started := time.Now()
	res, err := driver.Parse(cnf, toks)
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	fmt.Fprintf(os.Stdout, "Tokens: %v\n", toks)
	verdict := "no"
	if res.Accepted {
		verdict = "yes"
	}
	fmt.Fprintf(os.Stdout, "In the language: %v\n", verdict)
	fmt.Fprintf(os.Stdout, "CYK time: %v\n", elapsed)

	if !res.Accepted {
		fmt.Fprintln(os.Stdout, "No parse tree exists because the sentence does not belong to the language.")
		return nil
	}

	tree := res.Tree()
	if tree != nil {
		fmt.Fprintln(os.Stdout, "Parse tree:")
		driver.PrintTree(os.Stdout, tree)

		if *parseFlags.treeDot != "" {
			f, err := os.Create(*parseFlags.treeDot)
			if err != nil {
				return fmt.Errorf("Cannot create the DOT file %s: %w", *parseFlags.treeDot, err)
			}
			err = dot.Write(f, tree, dot.Options{
				Colorize: !*parseFlags.noColor,
			})
			f.Close()
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Parse tree exported as DOT: %v\n", *parseFlags.treeDot)
		}
	}

	return nil
}

func readTokens(args []string) ([]string, error) {
	if len(*parseFlags.tokens) > 0 {
		return *parseFlags.tokens, nil
	}
	var sentence string
	if len(args) > 1 {
		sentence = args[1]
	} else {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		sentence = string(src)
	}
	return driver.Tokenize(sentence, *parseFlags.lowercase), nil
}
