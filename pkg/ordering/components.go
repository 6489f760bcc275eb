package ordering

import "github.com/matzehuels/flowlayout/pkg/dag"

// unionFind is an array-backed disjoint-set forest with path compression
// and union by rank.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range u.parent {
		u.parent[i] = i
	}
	return u
}

func (u *unionFind) find(x int) int {
	root := x
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[x] != root {
		u.parent[x], x = root, u.parent[x]
	}
	return root
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		u.parent[ra] = rb
	case u.rank[ra] > u.rank[rb]:
		u.parent[rb] = ra
	default:
		u.parent[rb] = ra
		u.rank[ra]++
	}
}

// Components partitions column into groups of nodes connected, directly
// or indirectly, by edges with both endpoints in column. Groups are
// returned in order of their first member's position in column, and
// members keep their column order. Unlinked nodes form singleton groups.
func Components(column []int, edges []dag.Edge) [][]int {
	pos := dag.PosMap(column)
	uf := newUnionFind(len(column))
	for _, e := range edges {
		a, ok1 := pos[e.From]
		b, ok2 := pos[e.To]
		if ok1 && ok2 {
			uf.union(a, b)
		}
	}

	slot := make(map[int]int)
	var groups [][]int
	for i, id := range column {
		root := uf.find(i)
		g, ok := slot[root]
		if !ok {
			g = len(groups)
			slot[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], id)
	}
	return groups
}
