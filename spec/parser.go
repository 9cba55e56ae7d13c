package spec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	verr "github.com/nihei9/kasami/error"
	"github.com/nihei9/kasami/grammar"
)

// A grammar description looks like:
//
//	# comment
//	Variables: S, N, V
//	Terminals: "dog", "cat", barks
//	Start: S
//	Rules:
//	S -> N V
//	N -> "dog" | "cat"
//	V -> barks | ε
//
// The three header sections and Rules are all mandatory. Symbols containing
// whitespace, commas, or the rule metacharacters must be quoted; single and
// double quotes work the same and support the standard escape sequences.
// ε may also be spelled epsilon or EPSILON.

var (
	reHeader = regexp.MustCompile(`^(Variables|Terminals|Start|Rules):`)
	reQuoted = regexp.MustCompile(`^("(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*')`)
)

// ParseGrammarFile reads a grammar description from a file. Parse errors
// carry the file path as their source name.
func ParseGrammarFile(path string) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := ParseGrammar(f)
	if err != nil {
		if specErr, ok := err.(*verr.SpecError); ok {
			specErr.SourceName = path
		}
		return nil, err
	}
	return g, nil
}

type srcLine struct {
	row  int
	text string
}

// ParseGrammar parses a grammar description. The returned grammar satisfies
// the loader contract: terminals and variables are disjoint, the start symbol
// is a declared variable, and every rule symbol is declared.
func ParseGrammar(src io.Reader) (*grammar.Grammar, error) {
	var lines []srcLine
	s := bufio.NewScanner(src)
	row := 0
	for s.Scan() {
		row++
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, srcLine{
			row:  row,
			text: text,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, &verr.SpecError{
			Cause: fmt.Errorf("the grammar description is empty"),
		}
	}

	headers := map[string]srcLine{}
	rulesFrom := -1
	for i, ln := range lines {
		m := reHeader.FindStringSubmatch(ln.text)
		if m == nil {
			return nil, parseErr(ln, "expected a header line (Variables/Terminals/Start/Rules)")
		}
		key := m[1]
		if key == "Rules" {
			rulesFrom = i + 1
			break
		}
		headers[key] = srcLine{
			row:  ln.row,
			text: strings.TrimSpace(ln.text[len(key)+1:]),
		}
	}
	if rulesFrom < 0 {
		return nil, &verr.SpecError{
			Cause: fmt.Errorf("missing the Rules: section"),
		}
	}
	for _, key := range []string{"Variables", "Terminals", "Start"} {
		if _, ok := headers[key]; !ok {
			return nil, &verr.SpecError{
				Cause: fmt.Errorf("the %v: header is mandatory", key),
			}
		}
	}

	variables, err := splitList(headers["Variables"])
	if err != nil {
		return nil, err
	}
	terminals, err := splitList(headers["Terminals"])
	if err != nil {
		return nil, err
	}
	start := headers["Start"].text
	if !variables.Has(start) {
		return nil, parseErr(headers["Start"], "the start symbol %v is not a declared variable", start)
	}
	for v := range variables {
		if terminals.Has(v) {
			return nil, parseErr(headers["Terminals"], "%v is declared as both a variable and a terminal", v)
		}
	}

	g := grammar.New(start)
	for v := range variables {
		g.Nonterminals.Add(v)
	}
	for t := range terminals {
		g.AddTerminal(t)
	}

	rules := lines[rulesFrom:]
	if len(rules) == 0 {
		return nil, &verr.SpecError{
			Cause: fmt.Errorf("the Rules section is empty"),
		}
	}
	for _, ln := range rules {
		lhs, rhs, ok := strings.Cut(ln.text, "->")
		if !ok {
			return nil, parseErr(ln, "a rule must have the form <variable> -> <alternative> | ...")
		}
		head := strings.TrimSpace(lhs)
		if !variables.Has(head) {
			return nil, parseErr(ln, "%v is not a declared variable", head)
		}
		alts, err := splitAlternatives(ln, rhs)
		if err != nil {
			return nil, err
		}
		if len(alts) == 0 {
			return nil, parseErr(ln, "a rule for %v has no alternatives", head)
		}
		for _, alt := range alts {
			if alt == "ε" || alt == "epsilon" || alt == "EPSILON" {
				g.AddProduction(head, grammar.Body{})
				continue
			}
			syms, err := splitSymbols(ln, alt)
			if err != nil {
				return nil, err
			}
			for _, sym := range syms {
				if !variables.Has(sym) && !terminals.Has(sym) {
					return nil, parseErr(ln, "%v is not a declared variable or terminal", sym)
				}
			}
			g.AddProduction(head, syms)
		}
	}

	return g, nil
}

func parseErr(ln srcLine, format string, args ...interface{}) *verr.SpecError {
	return &verr.SpecError{
		Cause: fmt.Errorf(format, args...),
		Row:   ln.row,
		Line:  ln.text,
	}
}

// splitList splits a comma-separated symbol list. A quoted entry may contain
// commas and whitespace.
func splitList(ln srcLine) (grammar.SymbolSet, error) {
	syms := grammar.NewSymbolSet()
	text := ln.text
	for i := 0; i < len(text); {
		switch {
		case text[i] == ' ' || text[i] == '\t' || text[i] == ',':
			i++
		case text[i] == '"' || text[i] == '\'':
			m := reQuoted.FindString(text[i:])
			if m == "" {
				return nil, parseErr(ln, "unterminated quoted symbol in %v", text[i:])
			}
			syms.Add(unquote(m))
			i += len(m)
		default:
			j := i
			for j < len(text) && text[j] != ',' {
				j++
			}
			syms.Add(strings.TrimSpace(text[i:j]))
			i = j
		}
	}
	return syms, nil
}

// splitAlternatives splits the right-hand side of a rule on |. A quoted
// symbol may contain the bar itself.
func splitAlternatives(ln srcLine, text string) ([]string, error) {
	var alts []string
	from := 0
	flush := func(to int) {
		if alt := strings.TrimSpace(text[from:to]); alt != "" {
			alts = append(alts, alt)
		}
		from = to + 1
	}
	for i := 0; i < len(text); {
		switch text[i] {
		case '|':
			flush(i)
			i++
		case '"', '\'':
			m := reQuoted.FindString(text[i:])
			if m == "" {
				return nil, parseErr(ln, "unterminated quoted symbol in %v", text[i:])
			}
			i += len(m)
		default:
			i++
		}
	}
	flush(len(text))
	return alts, nil
}

// splitSymbols splits a rule alternative into symbols. Unquoted symbols run
// to the next whitespace; quoted symbols may contain anything.
func splitSymbols(ln srcLine, text string) (grammar.Body, error) {
	var syms grammar.Body
	for i := 0; i < len(text); {
		switch {
		case text[i] == ' ' || text[i] == '\t':
			i++
		case text[i] == '"' || text[i] == '\'':
			m := reQuoted.FindString(text[i:])
			if m == "" {
				return nil, parseErr(ln, "unterminated quoted symbol in %v", text[i:])
			}
			syms = append(syms, unquote(m))
			i += len(m)
		default:
			j := i
			for j < len(text) && text[j] != ' ' && text[j] != '\t' {
				j++
			}
			syms = append(syms, text[i:j])
			i = j
		}
	}
	return syms, nil
}

func unquote(tok string) string {
	if len(tok) >= 2 && (tok[0] == '"' || tok[0] == '\'') && tok[len(tok)-1] == tok[0] {
		return unescape(tok[1 : len(tok)-1])
	}
	return tok
}

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\', '\'', '"':
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
