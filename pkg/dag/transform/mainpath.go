package transform

import "github.com/matzehuels/flowlayout/pkg/dag"

// MainPath returns the longest path through g, counted in nodes, ending at
// a sink. Ties go to the sink with the smallest id; along the path each
// node keeps the first producer, in topological order, that reached its
// length.
//
// MainPath returns the same cycle error as [AssignColumns] and nil for an
// empty graph.
func MainPath(g *dag.Graph) ([]int, error) {
	cols, err := AssignColumns(g)
	if err != nil {
		return nil, err
	}
	order := cols.Flatten()
	if len(order) == 0 {
		return nil, nil
	}

	length := make(map[int]int, len(order))
	prev := make(map[int]int, len(order))
	for _, id := range order {
		length[id] = 1
	}
	for _, id := range order {
		for _, succ := range g.Successors(id) {
			if length[id]+1 > length[succ] {
				length[succ] = length[id] + 1
				prev[succ] = id
			}
		}
	}

	end, best := 0, 0
	for _, id := range g.IDs() {
		if g.IsSink(id) && length[id] > best {
			end, best = id, length[id]
		}
	}

	path := make([]int, best)
	for i, cur := best-1, end; i >= 0; i-- {
		path[i] = cur
		cur = prev[cur]
	}
	return path, nil
}
