package graph

import (
	"fmt"
	"sort"

	"github.com/erdc/erdc/internal/schema"
)

// DeferredFK is a foreign key that was not added as a dependency edge
// because the child's parent table is already reachable from the child
// through previously accepted edges: adding the edge child->parent->...
// ->child->parent would close a cycle. The DDL emitter must emit these via
// ALTER TABLE after every CREATE TABLE statement instead of inline.
type DeferredFK struct {
	Child string
	FK    schema.ForeignKey
}

// BuildFromSchema walks every table's foreign keys (in schema order, each
// table's own FKs sorted by child-field tuple for determinism) and builds
// the parent-before-child dependency graph. A foreign key whose acceptance
// would close a cycle is routed to the returned deferred list instead of
// becoming a graph edge. Self-referencing foreign keys are never deferred
// and never produce an edge, since a table trivially depends on nothing but
// itself. Before returning, the graph is run through Validate as a fail-fast
// cross-check using Kahn's algorithm, independent of the canReach guard
// above; a failure here means the two cycle-detection strategies disagree.
func BuildFromSchema(s *schema.Schema) (*Graph, []DeferredFK, error) {
	g := NewGraph()
	for _, t := range s.AllTables() {
		g.AddNode(t.Name, &Node{Name: t.Name, IsJunction: t.IsJunction})
	}

	var deferred []DeferredFK
	for _, t := range s.AllTables() {
		for _, fk := range t.SortedForeignKeys() {
			if fk.RefTable == t.Name {
				continue
			}
			if g.canReach(t.Name, fk.RefTable) {
				deferred = append(deferred, DeferredFK{Child: t.Name, FK: fk})
				continue
			}
			g.AddEdgeWithMeta(fk.RefTable, t.Name, fk.ChildFields, fk.RefColumns)
		}
	}

	sort.Slice(deferred, func(i, j int) bool {
		if deferred[i].Child != deferred[j].Child {
			return deferred[i].Child < deferred[j].Child
		}
		if deferred[i].FK.RefTable != deferred[j].FK.RefTable {
			return deferred[i].FK.RefTable < deferred[j].FK.RefTable
		}
		return deferred[i].FK.SortKey() < deferred[j].FK.SortKey()
	})

	if err := g.Validate(); err != nil {
		return nil, nil, fmt.Errorf("graph validation failed: %w", err)
	}

	return g, deferred, nil
}

// canReach reports whether to is reachable from from by walking already
// accepted Children edges. It is run once per candidate foreign key before
// that edge is accepted: if the child can already reach the parent, adding
// the new parent->child edge would close a cycle, so the FK is deferred
// instead.
func (g *Graph) canReach(from, to string) bool {
	if from == to {
		return true
	}
	visited := make(map[string]bool)
	return g.dfsCanReach(from, to, visited)
}

func (g *Graph) dfsCanReach(current, target string, visited map[string]bool) bool {
	if visited[current] {
		return false
	}
	visited[current] = true
	for _, child := range g.Children[current] {
		if child == target {
			return true
		}
		if g.dfsCanReach(child, target, visited) {
			return true
		}
	}
	return false
}
