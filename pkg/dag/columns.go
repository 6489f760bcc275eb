package dag

import (
	"fmt"
	"slices"
)

// Columns is a left-to-right sequence of layers; each layer lists node ids
// top to bottom.
type Columns [][]int

// Index maps every node id to its column.
func (c Columns) Index() map[int]int {
	idx := make(map[int]int, c.NodeCount())
	for i, col := range c {
		for _, id := range col {
			idx[id] = i
		}
	}
	return idx
}

// NodeCount returns the total number of placed nodes.
func (c Columns) NodeCount() int {
	n := 0
	for _, col := range c {
		n += len(col)
	}
	return n
}

// Flatten returns all ids in column order.
func (c Columns) Flatten() []int {
	out := make([]int, 0, c.NodeCount())
	for _, col := range c {
		out = append(out, col...)
	}
	return out
}

// Clone returns a deep copy.
func (c Columns) Clone() Columns {
	out := make(Columns, len(c))
	for i, col := range c {
		out[i] = slices.Clone(col)
	}
	return out
}

// DropEmpty returns c without empty columns.
func (c Columns) DropEmpty() Columns {
	return slices.DeleteFunc(c, func(col []int) bool { return len(col) == 0 })
}

// MaxHeight returns the number of nodes in the fullest column.
func (c Columns) MaxHeight() int {
	m := 0
	for _, col := range c {
		m = max(m, len(col))
	}
	return m
}

// Equal reports whether two layouts have the same columns in the same order.
func (c Columns) Equal(o Columns) bool {
	return slices.EqualFunc(c, o, slices.Equal[[]int])
}

// Violations returns every edge of g whose source column is not strictly
// left of its destination column. Edges with an endpoint outside c are
// ignored.
func (c Columns) Violations(g *Graph) []Edge {
	idx := c.Index()
	var out []Edge
	for _, e := range g.Edges() {
		from, ok1 := idx[e.From]
		to, ok2 := idx[e.To]
		if ok1 && ok2 && from >= to {
			out = append(out, e)
		}
	}
	return out
}

// String renders the layout as [[1 2] [3]].
func (c Columns) String() string {
	return fmt.Sprint([][]int(c))
}
