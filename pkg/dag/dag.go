package dag

import (
	"errors"
	"slices"
)

var (
	// ErrCycleDetected is returned by layering when no node with zero
	// in-degree remains but nodes are left to place.
	ErrCycleDetected = errors.New("cycle detected")

	// ErrUnknownNode is returned when an id is not part of the graph.
	ErrUnknownNode = errors.New("unknown node")
)

// Node is a vertex of the layout graph.
type Node struct {
	ID   int    // Unique workflow node id
	Type string // Node type tag, used for anchoring rules
}

// Edge is a directed connection from a producing node to a consuming node.
// Ports are kept so that orderings can respect the consumer's slot order.
type Edge struct {
	From     int // Producer node id
	FromPort int // Producer output slot
	To       int // Consumer node id
	ToPort   int // Consumer input slot
}

// Graph is an immutable arena of nodes with index-based adjacency. Node ids
// are mapped to dense handles once at construction; multi-edges between
// the same pair of nodes are kept.
//
// The zero value is an empty graph. Graph is safe for concurrent reads.
type Graph struct {
	nodes  []Node
	handle map[int]int
	edges  []Edge
	out    [][]int // handle -> edge indexes
	in     [][]int // handle -> edge indexes
}

// New builds a graph over nodes. Edges whose endpoints are not both in
// nodes are dropped, so callers can pass an unfiltered link list and get
// the induced subgraph. Nodes with duplicate ids keep the first occurrence.
func New(nodes []Node, edges []Edge) *Graph {
	g := &Graph{
		nodes:  make([]Node, 0, len(nodes)),
		handle: make(map[int]int, len(nodes)),
	}
	for _, n := range nodes {
		if _, dup := g.handle[n.ID]; dup {
			continue
		}
		g.handle[n.ID] = len(g.nodes)
		g.nodes = append(g.nodes, n)
	}
	g.out = make([][]int, len(g.nodes))
	g.in = make([][]int, len(g.nodes))
	for _, e := range edges {
		from, ok1 := g.handle[e.From]
		to, ok2 := g.handle[e.To]
		if !ok1 || !ok2 {
			continue
		}
		idx := len(g.edges)
		g.edges = append(g.edges, e)
		g.out[from] = append(g.out[from], idx)
		g.in[to] = append(g.in[to], idx)
	}
	return g
}

// Subgraph returns the graph induced by ids.
func (g *Graph) Subgraph(ids []int) *Graph {
	nodes := make([]Node, 0, len(ids))
	for _, id := range ids {
		if h, ok := g.handle[id]; ok {
			nodes = append(nodes, g.nodes[h])
		}
	}
	return New(nodes, g.edges)
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Nodes returns the nodes in insertion order. The slice must not be modified.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns all retained edges. The slice must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// Has reports whether id is a node of the graph.
func (g *Graph) Has(id int) bool {
	_, ok := g.handle[id]
	return ok
}

// Node returns the node with the given id.
func (g *Graph) Node(id int) (Node, bool) {
	h, ok := g.handle[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[h], true
}

// IDs returns all node ids in ascending order.
func (g *Graph) IDs() []int {
	ids := make([]int, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID
	}
	slices.Sort(ids)
	return ids
}

// MaxID returns the largest node id, or 0 for an empty graph.
func (g *Graph) MaxID() int {
	m := 0
	for i, n := range g.nodes {
		if i == 0 || n.ID > m {
			m = n.ID
		}
	}
	return m
}

// OutEdges returns the edges leaving id, in input order.
func (g *Graph) OutEdges(id int) []Edge { return g.collect(id, g.out) }

// InEdges returns the edges entering id, in input order.
func (g *Graph) InEdges(id int) []Edge { return g.collect(id, g.in) }

func (g *Graph) collect(id int, adj [][]int) []Edge {
	h, ok := g.handle[id]
	if !ok {
		return nil
	}
	out := make([]Edge, len(adj[h]))
	for i, e := range adj[h] {
		out[i] = g.edges[e]
	}
	return out
}

// OutDegree returns the number of edges leaving id, counting multi-edges.
func (g *Graph) OutDegree(id int) int {
	if h, ok := g.handle[id]; ok {
		return len(g.out[h])
	}
	return 0
}

// InDegree returns the number of edges entering id, counting multi-edges.
func (g *Graph) InDegree(id int) int {
	if h, ok := g.handle[id]; ok {
		return len(g.in[h])
	}
	return 0
}

// Successors returns the distinct consumers of id in ascending order.
func (g *Graph) Successors(id int) []int {
	h, ok := g.handle[id]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(g.out[h]))
	for _, e := range g.out[h] {
		out = append(out, g.edges[e].To)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Predecessors returns the distinct producers feeding id in ascending order.
func (g *Graph) Predecessors(id int) []int {
	h, ok := g.handle[id]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(g.in[h]))
	for _, e := range g.in[h] {
		out = append(out, g.edges[e].From)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// IsSink reports whether id has no outgoing edges.
func (g *Graph) IsSink(id int) bool { return g.OutDegree(id) == 0 }

// IsSource reports whether id has no incoming edges.
func (g *Graph) IsSource(id int) bool { return g.InDegree(id) == 0 }
