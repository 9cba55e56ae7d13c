package grammar

// unitClosure returns the nonterminals reachable from head through unit
// productions (bodies that are a single nonterminal), including head itself.
func unitClosure(g *Grammar, head string) SymbolSet {
	closure := NewSymbolSet(head)
	stack := []string{head}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, body := range g.Productions[current].Bodies() {
			if len(body) != 1 {
				continue
			}
			if _, isHead := g.Productions[body[0]]; !isHead {
				continue
			}
			if closure.Add(body[0]) {
				stack = append(stack, body[0])
			}
		}
	}
	return closure
}

// removeUnitProductions replaces each nonterminal's bodies with the non-unit
// bodies of every member of its unit closure, eliminating all A → B bodies
// while preserving derivability.
func removeUnitProductions(g *Grammar) *Grammar {
	productions := emptyBodySets(g)
	for head := range g.Productions {
		for member := range unitClosure(g, head) {
			for _, body := range g.Productions[member].Bodies() {
				if len(body) == 1 {
					if _, isHead := g.Productions[body[0]]; isHead {
						continue
					}
				}
				productions[head].Add(body)
			}
		}
	}
	return rebuild(g.Start, productions)
}
