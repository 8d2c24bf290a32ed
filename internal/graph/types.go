// Package graph builds the table-dependency DAG from a resolved schema,
// classifies each foreign key as inline or deferred to avoid cycles, and
// produces the topological order CREATE/DROP statements must follow.
package graph

// Node is one table in the dependency graph.
type Node struct {
	Name       string
	IsJunction bool
}

// Edge is a directed parent-before-child dependency: From must be created
// before To.
type Edge struct {
	From string
	To   string
}

// EdgeMeta carries the foreign key that justifies an edge. Both sides are
// tuples to support composite foreign keys.
type EdgeMeta struct {
	ChildFields []string
	RefColumns  []string
}

// Graph is an adjacency-list dependency DAG keyed by table name.
type Graph struct {
	Nodes        map[string]*Node
	Children     map[string][]string
	Parents      map[string][]string
	edgeMetadata map[Edge]*EdgeMeta
}

// NewGraph creates an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:        make(map[string]*Node),
		Children:     make(map[string][]string),
		Parents:      make(map[string][]string),
		edgeMetadata: make(map[Edge]*EdgeMeta),
	}
}

// AddNode registers a table node.
func (g *Graph) AddNode(name string, node *Node) {
	if node == nil {
		node = &Node{Name: name}
	}
	node.Name = name
	g.Nodes[name] = node
}

// AddEdge records that parent must be created before child, with no FK
// metadata attached.
func (g *Graph) AddEdge(parent, child string) {
	g.Children[parent] = append(g.Children[parent], child)
	g.Parents[child] = append(g.Parents[child], parent)
}

// AddEdgeWithMeta records a parent-before-child edge justified by a
// particular foreign key.
func (g *Graph) AddEdgeWithMeta(parent, child string, childFields, refColumns []string) {
	g.AddEdge(parent, child)
	g.edgeMetadata[Edge{From: parent, To: child}] = &EdgeMeta{
		ChildFields: append([]string(nil), childFields...),
		RefColumns:  append([]string(nil), refColumns...),
	}
}

// GetChildren returns the tables that must be created after name.
func (g *Graph) GetChildren(name string) []string {
	return g.Children[name]
}

// GetParents returns the tables that must be created before name.
func (g *Graph) GetParents(name string) []string {
	return g.Parents[name]
}

// GetNode returns the node for name, or nil if absent.
func (g *Graph) GetNode(name string) *Node {
	return g.Nodes[name]
}

// GetEdgeMeta returns the metadata for the edge parent->child, if any.
func (g *Graph) GetEdgeMeta(parent, child string) (*EdgeMeta, bool) {
	m, ok := g.edgeMetadata[Edge{From: parent, To: child}]
	return m, ok
}

// HasNode reports whether name is a registered table.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.Nodes[name]
	return ok
}

// NodeCount returns the number of registered tables.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of accepted (non-deferred) dependency edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, children := range g.Children {
		n += len(children)
	}
	return n
}

// AllNodes returns every registered table name, unordered.
func (g *Graph) AllNodes() []string {
	names := make([]string, 0, len(g.Nodes))
	for name := range g.Nodes {
		names = append(names, name)
	}
	return names
}

// AllEdges returns every accepted dependency edge, unordered.
func (g *Graph) AllEdges() []Edge {
	var edges []Edge
	for parent, children := range g.Children {
		for _, child := range children {
			edges = append(edges, Edge{From: parent, To: child})
		}
	}
	return edges
}

// LeafNodes returns tables with no children (nothing depends on them).
func (g *Graph) LeafNodes() []string {
	var leaves []string
	for name := range g.Nodes {
		if len(g.Children[name]) == 0 {
			leaves = append(leaves, name)
		}
	}
	return leaves
}

// InDegree returns the number of tables that must be created before name.
func (g *Graph) InDegree(name string) int {
	return len(g.Parents[name])
}

// OutDegree returns the number of tables that depend on name.
func (g *Graph) OutDegree(name string) int {
	return len(g.Children[name])
}
