package transform

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/flowlayout/pkg/dag"
)

// CycleError reports a cycle found while layering.
type CycleError struct {
	// Cycle lists node ids such that each feeds the next and the last
	// feeds the first.
	Cycle []int
}

func (e *CycleError) Error() string {
	if len(e.Cycle) == 0 {
		return dag.ErrCycleDetected.Error()
	}
	parts := make([]string, 0, len(e.Cycle)+1)
	for _, id := range e.Cycle {
		parts = append(parts, fmt.Sprint(id))
	}
	parts = append(parts, fmt.Sprint(e.Cycle[0]))
	return fmt.Sprintf("%s: %s", dag.ErrCycleDetected, strings.Join(parts, " -> "))
}

func (e *CycleError) Unwrap() error { return dag.ErrCycleDetected }

// FindCycle returns one directed cycle of g, or nil if g is acyclic.
// Nodes are visited in ascending id order, so the result is deterministic.
func FindCycle(g *dag.Graph) []int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[int]int, g.Len())
	var path, cycle []int

	var dfs func(id int) bool
	dfs = func(id int) bool {
		color[id] = gray
		path = append(path, id)
		for _, succ := range g.Successors(id) {
			switch color[succ] {
			case white:
				if dfs(succ) {
					return true
				}
			case gray:
				cycle = slices.Clone(path[slices.Index(path, succ):])
				return true
			}
		}
		path = path[:len(path)-1]
		color[id] = black
		return false
	}

	for _, id := range g.IDs() {
		if color[id] == white && dfs(id) {
			return cycle
		}
	}
	return nil
}
