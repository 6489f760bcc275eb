package transform

import (
	"math"
	"slices"

	"github.com/matzehuels/flowlayout/pkg/dag"
)

// DefaultAnchored lists node types that forward compaction never moves.
var DefaultAnchored = []string{"LoadImage"}

// Stacking limits how eagerly a node is pulled next to its consumers.
// With MaxFed > 0 a node is moved only if it feeds at most MaxFed nodes in
// its nearest consumer column and each of those has at most MaxPreds
// producers in total. The zero value always moves.
type Stacking struct {
	MaxFed   int
	MaxPreds int
}

// Enabled reports whether the gate is active.
func (s Stacking) Enabled() bool { return s.MaxFed > 0 }

func (s Stacking) allows(g *dag.Graph, fed []int) bool {
	if !s.Enabled() {
		return true
	}
	if len(fed) > s.MaxFed {
		return false
	}
	for _, id := range fed {
		if len(g.Predecessors(id)) > s.MaxPreds {
			return false
		}
	}
	return true
}

// CompactOptions configures [CompactForward].
type CompactOptions struct {
	// Anchored node types stay in the column layering gave them.
	Anchored []string
	Stacking Stacking
}

// CompactForward slides nodes rightward so that each sits directly left of
// its nearest consumer instead of in its earliest possible column.
//
// Columns are swept from the second-to-last down to the first. A node is
// skipped if its type is anchored or it has no consumers. Otherwise, with
// m the smallest column holding one of its consumers, the node moves to
// column m-1 when m-1 is right of its current column (and the stacking
// gate allows it). Moved nodes are appended to the end of their new
// column. Empty columns are dropped afterwards.
//
// A node never reaches or passes any of its consumers and never moves
// left, so the source-before-destination invariant of cols is kept.
// The input columns are not modified.
func CompactForward(g *dag.Graph, cols dag.Columns, opts CompactOptions) dag.Columns {
	out := cols.Clone()
	if len(out) < 3 {
		return out.DropEmpty()
	}
	idx := out.Index()

	for c := len(out) - 2; c >= 0; c-- {
		for _, id := range slices.Clone(out[c]) {
			n, ok := g.Node(id)
			if !ok || slices.Contains(opts.Anchored, n.Type) {
				continue
			}
			succ := g.Successors(id)
			if len(succ) == 0 {
				continue
			}

			nearest := math.MaxInt
			for _, s := range succ {
				if sc, ok := idx[s]; ok && sc > c && sc < nearest {
					nearest = sc
				}
			}
			if nearest == math.MaxInt || nearest <= c+1 {
				continue
			}

			var fed []int
			for _, s := range succ {
				if idx[s] == nearest {
					fed = append(fed, s)
				}
			}
			if !opts.Stacking.allows(g, fed) {
				continue
			}

			target := nearest - 1
			out[c] = slices.DeleteFunc(out[c], func(v int) bool { return v == id })
			out[target] = append(out[target], id)
			idx[id] = target
		}
	}
	return out.DropEmpty()
}
