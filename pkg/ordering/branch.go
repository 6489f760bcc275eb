package ordering

import (
	"cmp"
	"slices"

	"github.com/matzehuels/flowlayout/pkg/dag"
)

// BranchOrder orders the members of one connected group so that every
// node comes after the in-group producers feeding it, and those producers
// appear in the order of the input ports they feed.
//
// Sinks (members without an in-group consumer) are visited in ascending
// id order; from each, a post-order depth-first walk over in-group
// producers emits producers before consumers. Members unreachable that
// way, which only happens with cyclic input, are appended in ascending id
// order.
func BranchOrder(group []int, edges []dag.Edge) []int {
	member := make(map[int]bool, len(group))
	for _, id := range group {
		member[id] = true
	}

	in := make(map[int][]dag.Edge, len(group))
	hasOut := make(map[int]bool, len(group))
	for _, e := range edges {
		if member[e.From] && member[e.To] {
			in[e.To] = append(in[e.To], e)
			hasOut[e.From] = true
		}
	}
	producers := func(id int) []int {
		es := in[id]
		slices.SortStableFunc(es, func(a, b dag.Edge) int {
			if c := cmp.Compare(a.ToPort, b.ToPort); c != 0 {
				return c
			}
			return cmp.Compare(a.From, b.From)
		})
		out := make([]int, len(es))
		for i, e := range es {
			out[i] = e.From
		}
		return out
	}

	sorted := slices.Sorted(slices.Values(group))
	order := make([]int, 0, len(group))
	visited := make(map[int]bool, len(group))

	type frame struct {
		id   int
		pred []int
		next int
	}
	visit := func(root int) {
		if visited[root] {
			return
		}
		visited[root] = true
		stack := []frame{{id: root, pred: producers(root)}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.pred) {
				p := top.pred[top.next]
				top.next++
				if !visited[p] {
					visited[p] = true
					stack = append(stack, frame{id: p, pred: producers(p)})
				}
				continue
			}
			order = append(order, top.id)
			stack = stack[:len(stack)-1]
		}
	}

	for _, id := range sorted {
		if !hasOut[id] {
			visit(id)
		}
	}
	for _, id := range sorted {
		if !visited[id] {
			visited[id] = true
			order = append(order, id)
		}
	}
	return order
}
