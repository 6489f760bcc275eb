package position

import (
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/flowlayout/pkg/dag"
)

// Simple stacks each column with fixed gaps and aligns the block on the
// base line. Predecessors are ignored.
type Simple struct{}

// Place implements [Placer].
func (Simple) Place(g *dag.Graph, cols dag.Columns, size SizeFunc, cfg Config) (*Layout, error) {
	return place(g, cols, size, cfg, func(c column, cfg Config) []float64 {
		return c.stackFrom(c.alignedTop(cfg))
	})
}

// Average shifts each column rigidly so that, on average, nodes sit at
// the median center of their adjoining predecessors. Nodes can still end
// up away from their own targets.
type Average struct{}

// Place implements [Placer].
func (Average) Place(g *dag.Graph, cols dag.Columns, size SizeFunc, cfg Config) (*Layout, error) {
	return place(g, cols, size, cfg, averageStack)
}

func averageStack(c column, cfg Config) []float64 {
	var diffs []float64
	for i, ok := range c.anchor {
		if ok {
			diffs = append(diffs, c.desired[i]-c.offsets[i])
		}
	}
	if len(diffs) == 0 {
		return c.stackFrom(c.alignedTop(cfg))
	}
	return c.stackFrom(stat.Mean(diffs, nil))
}

// HighlyAligned pulls every anchored node (one with an adjoining
// predecessor) as close as possible to its predecessors' median center
// while keeping the column order and gaps intact.
//
// The targets of consecutive anchored nodes are shifted by the minimal
// stacking distance between them, fitted with [PAVA] and shifted back.
// Unanchored nodes are stacked directly above the first anchored node and
// below each anchored node. A column without anchored nodes is aligned
// like [Simple].
type HighlyAligned struct{}

// Place implements [Placer].
func (HighlyAligned) Place(g *dag.Graph, cols dag.Columns, size SizeFunc, cfg Config) (*Layout, error) {
	return place(g, cols, size, cfg, highlyAlignedStack)
}

func highlyAlignedStack(c column, cfg Config) []float64 {
	var anchors []int
	for i, ok := range c.anchor {
		if ok {
			anchors = append(anchors, i)
		}
	}
	if len(anchors) == 0 {
		return c.stackFrom(c.alignedTop(cfg))
	}

	// Cumulative minimum distance from the first anchored node.
	shift := make([]float64, len(anchors))
	fit := make([]float64, len(anchors))
	for j, i := range anchors {
		shift[j] = c.offsets[i] - c.offsets[anchors[0]]
		fit[j] = c.desired[i] - shift[j]
	}
	if len(anchors) > 1 {
		fit = PAVA(fit, nil)
	}

	tops := make([]float64, len(c.heights))
	first := anchors[0]
	tops[first] = fit[0] + shift[0]
	for i := first - 1; i >= 0; i-- {
		tops[i] = tops[i+1] - c.heights[i] - cfg.GapY
	}
	j := 1
	for i := first + 1; i < len(tops); i++ {
		if j < len(anchors) && anchors[j] == i {
			tops[i] = fit[j] + shift[j]
			j++
			continue
		}
		tops[i] = tops[i-1] + c.heights[i-1] + cfg.GapY
	}
	return tops
}
