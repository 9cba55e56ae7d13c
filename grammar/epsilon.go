package grammar

// nullableSymbols computes the set of nonterminals that can derive the empty
// string: those with an ε body or with a body made entirely of nullable
// symbols. The loop terminates because the set only grows.
func nullableSymbols(g *Grammar) SymbolSet {
	nullable := NewSymbolSet()
	for {
		more := false
		for head, bodies := range g.Productions {
			if nullable.Has(head) {
				continue
			}
			for _, body := range bodies.Bodies() {
				allNullable := true
				for _, sym := range body {
					if !nullable.Has(sym) {
						allNullable = false
						break
					}
				}
				if allNullable {
					nullable.Add(head)
					more = true
					break
				}
			}
		}
		if !more {
			break
		}
	}
	return nullable
}

// removeEpsilonProductions eliminates ε bodies. Every non-empty body is
// expanded into one variant per subset of its nullable positions with those
// positions deleted. A variant that comes out empty survives only on the start
// symbol; that is the sole place CNF permits ε.
func removeEpsilonProductions(g *Grammar) *Grammar {
	nullable := nullableSymbols(g)
	productions := emptyBodySets(g)

	for head, bodies := range g.Productions {
		for _, body := range bodies.Bodies() {
			if len(body) == 0 {
				continue
			}
			var positions []int
			for i, sym := range body {
				if nullable.Has(sym) {
					positions = append(positions, i)
				}
			}
			for mask := 0; mask < 1<<len(positions); mask++ {
				skip := map[int]struct{}{}
				for bit, pos := range positions {
					if mask>>bit&1 == 1 {
						skip[pos] = struct{}{}
					}
				}
				variant := make(Body, 0, len(body))
				for i, sym := range body {
					if _, ok := skip[i]; ok {
						continue
					}
					variant = append(variant, sym)
				}
				if len(variant) == 0 {
					if head == g.Start {
						productions[head].Add(Body{})
					}
					continue
				}
				productions[head].Add(variant)
			}
		}
	}

	if nullable.Has(g.Start) {
		productions[g.Start].Add(Body{})
	}

	return rebuild(g.Start, productions)
}
