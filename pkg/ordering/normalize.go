package ordering

import (
	"cmp"
	"slices"

	"github.com/matzehuels/flowlayout/pkg/dag"
)

// Relation links a left-column node (or group) to a slot of the virtual
// right column.
type Relation struct {
	From int
	To   int
}

// Normalize builds the virtual right column for the pair (left, right).
//
// A right node reached by at most one edge from left keeps its own slot. A
// right node reached by k > 1 edges is replaced by k fresh ids, one per
// edge, ordered by the edge's input port, each related to exactly one
// left source. Fresh ids are allocated from next upward; the first unused
// id is returned.
func Normalize(left, right []int, edges []dag.Edge, next int) (virtual []int, rels []Relation, nextFree int) {
	inLeft := make(map[int]bool, len(left))
	for _, id := range left {
		inLeft[id] = true
	}
	incoming := make(map[int][]dag.Edge, len(right))
	for _, id := range right {
		incoming[id] = nil
	}
	for _, e := range edges {
		if _, ok := incoming[e.To]; ok && inLeft[e.From] {
			incoming[e.To] = append(incoming[e.To], e)
		}
	}

	virtual = make([]int, 0, len(right))
	for _, id := range right {
		in := incoming[id]
		switch len(in) {
		case 0:
			virtual = append(virtual, id)
		case 1:
			virtual = append(virtual, id)
			rels = append(rels, Relation{From: in[0].From, To: id})
		default:
			slices.SortStableFunc(in, func(a, b dag.Edge) int { return cmp.Compare(a.ToPort, b.ToPort) })
			for _, e := range in {
				virtual = append(virtual, next)
				rels = append(rels, Relation{From: e.From, To: next})
				next++
			}
		}
	}
	return virtual, rels, next
}
