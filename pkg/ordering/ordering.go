package ordering

import (
	"fmt"

	"github.com/matzehuels/flowlayout/pkg/dag"
)

// Orderer decides the top-to-bottom sequence of nodes inside each column.
// Implementations must not move nodes between columns.
type Orderer interface {
	Order(g *dag.Graph, cols dag.Columns) dag.Columns
}

// Sweep is the crossing-reduction orderer. It visits column pairs once,
// right to left, and reorders the left column of each pair against the
// already fixed right column:
//
//  1. incoming multi-edges on the right are split into virtual slots
//     ordered by input port ([Normalize]);
//  2. nodes of the left column linked to each other are grouped
//     ([Components]) and ordered by their own port wiring ([BranchOrder]);
//  3. groups are sorted by the mean slot index of their targets
//     ([GravitySort]).
//
// The pass is not iterated. The result is fully determined by the input.
type Sweep struct{}

// Order implements [Orderer]. The input columns are not modified.
func (Sweep) Order(g *dag.Graph, cols dag.Columns) dag.Columns {
	out := cols.Clone()
	edges := g.Edges()
	for i := len(out) - 2; i >= 0; i-- {
		out[i] = OrderPair(out[i], out[i+1], edges)
	}
	return out
}

// OrderPair returns the new order of left given the fixed right column.
// Edges outside left ∪ right are ignored.
func OrderPair(left, right []int, edges []dag.Edge) []int {
	if len(left) < 2 {
		return append([]int(nil), left...)
	}

	virtual, rels, next := Normalize(left, right, edges, maxID(left, right)+1)

	groups := Components(left, edges)
	units := make([]Unit, len(groups))
	owner := make(map[int]int, len(left))
	for i, grp := range groups {
		units[i] = Unit{ID: next + i, Members: BranchOrder(grp, edges)}
		for _, id := range grp {
			owner[id] = units[i].ID
		}
	}
	for i := range rels {
		rels[i].From = owner[rels[i].From]
	}

	return GravitySort(units, virtual, rels)
}

func maxID(cols ...[]int) int {
	m, seen := 0, false
	for _, col := range cols {
		for _, id := range col {
			if !seen || id > m {
				m, seen = id, true
			}
		}
	}
	return m
}

// Keep leaves the layering order untouched.
type Keep struct{}

// Order implements [Orderer].
func (Keep) Order(_ *dag.Graph, cols dag.Columns) dag.Columns { return cols.Clone() }

// Names of the available orderers.
const (
	NameSweep = "sweep"
	NameKeep  = "keep"
)

// ByName returns the orderer registered under name. The empty string
// selects [Sweep].
func ByName(name string) (Orderer, error) {
	switch name {
	case "", NameSweep:
		return Sweep{}, nil
	case NameKeep:
		return Keep{}, nil
	default:
		return nil, fmt.Errorf("unknown orderer %q (want %s or %s)", name, NameSweep, NameKeep)
	}
}
