package driver

import "strings"

// Tokenize splits a sentence into tokens on whitespace, optionally lowercasing
// them. Tokens are opaque to the recognizer; they are only ever compared for
// equality with the grammar's terminals.
func Tokenize(sentence string, lowercase bool) []string {
	toks := strings.Fields(sentence)
	if lowercase {
		for i, tok := range toks {
			toks[i] = strings.ToLower(tok)
		}
	}
	return toks
}
