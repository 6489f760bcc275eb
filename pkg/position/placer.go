package position

import (
	"errors"
	"fmt"

	"github.com/matzehuels/flowlayout/pkg/dag"
)

// ErrInvalidColumns is returned when the columns do not describe exactly
// the nodes of the graph, each once.
var ErrInvalidColumns = errors.New("invalid columns")

// SizeFunc reports the real footprint of a node.
type SizeFunc func(id int) (w, h float64)

// Placer assigns coordinates to ordered columns. Placers never change
// column membership or order.
type Placer interface {
	Place(g *dag.Graph, cols dag.Columns, size SizeFunc, cfg Config) (*Layout, error)
}

// Names of the built-in placers.
const (
	NameSimple        = "simple"
	NameAverage       = "average"
	NameHighlyAligned = "highly-aligned"
)

// Names lists the built-in placers in order of sophistication.
var Names = []string{NameSimple, NameAverage, NameHighlyAligned}

// ByName returns the placer registered under name. The empty string
// selects [HighlyAligned].
func ByName(name string) (Placer, error) {
	switch name {
	case "", NameHighlyAligned:
		return HighlyAligned{}, nil
	case NameAverage:
		return Average{}, nil
	case NameSimple:
		return Simple{}, nil
	}
	return nil, fmt.Errorf("unknown placer %q (want simple, average or highly-aligned)", name)
}

// ValidateColumns checks that cols lists every node of g exactly once and
// nothing else.
func ValidateColumns(g *dag.Graph, cols dag.Columns) error {
	seen := make(map[int]bool, g.Len())
	for _, col := range cols {
		for _, id := range col {
			if !g.Has(id) {
				return fmt.Errorf("%w: unknown node %d", ErrInvalidColumns, id)
			}
			if seen[id] {
				return fmt.Errorf("%w: node %d listed twice", ErrInvalidColumns, id)
			}
			seen[id] = true
		}
	}
	for _, id := range g.IDs() {
		if !seen[id] {
			return fmt.Errorf("%w: node %d missing", ErrInvalidColumns, id)
		}
	}
	return nil
}

// column is the per-column input handed to a stacking strategy.
type column struct {
	heights []float64
	offsets []float64 // Natural stacked offset of each node from the block top
	total   float64   // Block height without a trailing gap
	desired []float64 // Desired top of each node; valid where anchored
	anchor  []bool
}

// alignedTop returns the top of the block when aligned on the base line.
func (c column) alignedTop(cfg Config) float64 {
	switch cfg.Align {
	case AlignCenter:
		return cfg.BaseY - c.total/2
	case AlignBottom:
		return cfg.BaseY - c.total
	default:
		return cfg.BaseY
	}
}

// stackFrom places every node at top+offset.
func (c column) stackFrom(top float64) []float64 {
	out := make([]float64, len(c.heights))
	for i, off := range c.offsets {
		out[i] = top + off
	}
	return out
}

// stackFunc computes the top y of every node in one column.
type stackFunc func(c column, cfg Config) []float64

// place is the driver shared by all placers. Columns are processed left
// to right, so the predecessors pulling on a node are always placed
// before it.
func place(g *dag.Graph, cols dag.Columns, size SizeFunc, cfg Config, stack stackFunc) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateColumns(g, cols); err != nil {
		return nil, err
	}

	idx := cols.Index()
	out := &Layout{
		Nodes:       make(map[int]Placement, cols.NodeCount()),
		ColumnX:     make([]float64, len(cols)),
		ColumnWidth: make([]float64, len(cols)),
	}

	x := cfg.BaseX
	for ci, ids := range cols {
		out.ColumnX[ci] = x
		if len(ids) == 0 {
			continue
		}

		c := column{
			heights: make([]float64, len(ids)),
			offsets: make([]float64, len(ids)),
			desired: make([]float64, len(ids)),
			anchor:  make([]bool, len(ids)),
		}
		widths := make([]float64, len(ids))
		var off float64
		for i, id := range ids {
			w, h := size(id)
			widths[i], c.heights[i], c.offsets[i] = w, h, off
			off += h + cfg.GapY
		}
		c.total = off - cfg.GapY

		for i, id := range ids {
			var centers []float64
			for _, p := range g.Predecessors(id) {
				if d := ci - idx[p]; d > 0 && d < cfg.AdjoinDistance {
					centers = append(centers, out.Nodes[p].CenterY())
				}
			}
			if len(centers) > 0 {
				c.anchor[i] = true
				c.desired[i] = median(centers) - c.heights[i]/2
			}
		}

		tops := stack(c, cfg)

		colW := columnWidth(widths, cfg)
		if cfg.SizeAlign {
			colW = alignedWidth(colW, cfg)
		}
		for i, id := range ids {
			w := widths[i]
			if cfg.SizeAlign {
				w = colW
			}
			out.Nodes[id] = Placement{X: x, Y: tops[i], Width: w, Height: c.heights[i]}
		}
		out.ColumnWidth[ci] = colW
		x += colW + cfg.GapX
	}
	return out, nil
}
