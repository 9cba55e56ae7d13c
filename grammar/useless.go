package grammar

// removeUselessSymbols drops every nonterminal that is not both productive
// (derives some terminal string) and reachable from the start symbol, along
// with every production mentioning a dropped symbol.
func removeUselessSymbols(g *Grammar) *Grammar {
	productive := NewSymbolSet()
	for {
		more := false
		for head, bodies := range g.Productions {
			if productive.Has(head) {
				continue
			}
			for _, body := range bodies.Bodies() {
				if derivesTerminals(g, body, productive) {
					productive.Add(head)
					more = true
					break
				}
			}
		}
		if !more {
			break
		}
	}

	filtered := map[string]*BodySet{}
	for head, bodies := range g.Productions {
		if !productive.Has(head) {
			continue
		}
		kept := NewBodySet()
		for _, body := range bodies.Bodies() {
			if derivesTerminals(g, body, productive) {
				kept.Add(body)
			}
		}
		if kept.Len() > 0 {
			filtered[head] = kept
		}
	}

	// The traversal runs over productive-only productions, so unproductive
	// symbols never make anything reachable.
	reachable := NewSymbolSet(g.Start)
	frontier := []string{g.Start}
	for len(frontier) > 0 {
		current := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		bodies, ok := filtered[current]
		if !ok {
			continue
		}
		for _, body := range bodies.Bodies() {
			for _, sym := range body {
				if _, isHead := filtered[sym]; !isHead {
					continue
				}
				if reachable.Add(sym) {
					frontier = append(frontier, sym)
				}
			}
		}
	}

	useful := NewSymbolSet()
	for head := range filtered {
		if reachable.Has(head) {
			useful.Add(head)
		}
	}
	productions := map[string]*BodySet{}
	for head, bodies := range filtered {
		if !reachable.Has(head) {
			continue
		}
		kept := NewBodySet()
		for _, body := range bodies.Bodies() {
			usable := true
			for _, sym := range body {
				if !g.Terminals.Has(sym) && !useful.Has(sym) {
					usable = false
					break
				}
			}
			if usable {
				kept.Add(body)
			}
		}
		productions[head] = kept
	}

	return rebuild(g.Start, productions)
}

// derivesTerminals reports whether every symbol of body is a terminal or an
// already-productive nonterminal.
func derivesTerminals(g *Grammar, body Body, productive SymbolSet) bool {
	for _, sym := range body {
		if !g.Terminals.Has(sym) && !productive.Has(sym) {
			return false
		}
	}
	return true
}
