package dag

import "slices"

// CountCrossings returns the total number of edge crossings between each
// pair of consecutive columns. Edges that skip columns are not counted.
//
// It runs in O(C × E log V) time where C is the number of columns, E the
// edges between a pair and V the nodes in the right column.
func CountCrossings(g *Graph, cols Columns) int {
	crossings := 0
	for i := 0; i+1 < len(cols); i++ {
		crossings += CountColumnCrossings(g, cols[i], cols[i+1])
	}
	return crossings
}

// CountColumnCrossings counts edge crossings between two adjacent columns
// using a Fenwick tree.
//
// Two edges (u1,v1) and (u2,v2) cross if and only if:
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// which is the number of inversions in the sequence of target positions
// when edges are sorted by source position. Multi-edges between the same
// pair of nodes count once.
func CountColumnCrossings(g *Graph, left, right []int) int {
	if len(left) == 0 || len(right) == 0 {
		return 0
	}

	rightPos := PosMap(right)

	type edge struct{ left, right int }
	edges := make([]edge, 0, len(left)*2)
	for i, id := range left {
		for _, succ := range g.Successors(id) {
			if pos, ok := rightPos[succ]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.left != b.left {
			return a.left - b.left
		}
		return a.right - b.right
	})

	fenwick := make([]int, len(right)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		// edges seen so far with target <= e.right
		lessOrEqual := 0
		for q := e.right + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.right + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}

// PosMap returns a map from id to its index in order.
func PosMap(order []int) map[int]int {
	m := make(map[int]int, len(order))
	for i, id := range order {
		m[id] = i
	}
	return m
}
