package transform

import (
	"slices"

	"github.com/matzehuels/flowlayout/pkg/dag"
)

// AssignColumns places every node of g into a column using Kahn's
// algorithm, taking all zero-in-degree nodes of a round into one column.
// Every node lands in the leftmost column its producers allow (an ASAP
// layering), so for every edge the source column is strictly left of the
// destination column.
//
// Nodes within a column are in ascending id order. Multi-edges count once
// per edge towards in-degree, which does not change the result.
//
// If nodes remain but none has zero in-degree, AssignColumns returns a
// [*CycleError] naming one offending cycle. The error unwraps to
// [dag.ErrCycleDetected]. An empty graph yields no columns.
func AssignColumns(g *dag.Graph) (dag.Columns, error) {
	indeg := make(map[int]int, g.Len())
	var frontier []int
	for _, id := range g.IDs() {
		indeg[id] = g.InDegree(id)
		if indeg[id] == 0 {
			frontier = append(frontier, id)
		}
	}

	var cols dag.Columns
	placed := 0
	for len(frontier) > 0 {
		cols = append(cols, frontier)
		placed += len(frontier)

		var next []int
		for _, id := range frontier {
			for _, e := range g.OutEdges(id) {
				indeg[e.To]--
				if indeg[e.To] == 0 {
					next = append(next, e.To)
				}
			}
		}
		slices.Sort(next)
		frontier = next
	}

	if placed != g.Len() {
		var rest []int
		for _, id := range g.IDs() {
			if indeg[id] > 0 {
				rest = append(rest, id)
			}
		}
		return nil, &CycleError{Cycle: FindCycle(g.Subgraph(rest))}
	}
	return cols, nil
}
