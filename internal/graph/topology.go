package graph

// TopologicalSort returns table names in CREATE order: every table a given
// table depends on (via an accepted, non-deferred foreign key) precedes it.
// tableOrder fixes the order tables are visited in when more than one has
// no unresolved dependency left, so the result is deterministic across runs
// for the same schema. This is a depth-first, temporary-mark sort in the
// style of original_source's topological_sort, rather than Kahn's algorithm:
// KahnTopologicalSort is kept alongside it purely as a diagnostic.
func (g *Graph) TopologicalSort(tableOrder []string) []string {
	var sorted []string
	visited := make(map[string]bool)
	tempMark := make(map[string]bool)

	var visit func(name string)
	visit = func(name string) {
		if visited[name] || tempMark[name] {
			return
		}
		tempMark[name] = true

		for _, parent := range g.Parents[name] {
			if g.HasNode(parent) {
				visit(parent)
			}
		}

		delete(tempMark, name)
		visited[name] = true
		sorted = append(sorted, name)
	}

	for _, name := range tableOrder {
		visit(name)
	}

	return sorted
}

// DropOrder is the reverse of TopologicalSort: children before the parents
// they depend on, suitable for a DROP TABLE script.
func (g *Graph) DropOrder(tableOrder []string) []string {
	create := g.TopologicalSort(tableOrder)
	drop := make([]string, len(create))
	for i, name := range create {
		drop[len(create)-1-i] = name
	}
	return drop
}
