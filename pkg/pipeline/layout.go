package pipeline

import (
	"errors"

	"github.com/matzehuels/flowlayout/pkg/dag"
	"github.com/matzehuels/flowlayout/pkg/dag/transform"
	flerrors "github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/ordering"
	"github.com/matzehuels/flowlayout/pkg/position"
	"github.com/matzehuels/flowlayout/pkg/workflow"
)

// BuildGraph converts doc into the engine's graph. A link becomes an edge
// from its input node (the producer) to its output node (the consumer).
// Links naming unknown nodes are dropped.
func BuildGraph(doc *workflow.Document) *dag.Graph {
	nodes := make([]dag.Node, len(doc.Nodes))
	for i, n := range doc.Nodes {
		nodes[i] = dag.Node{ID: n.ID, Type: n.Type}
	}
	edges := make([]dag.Edge, len(doc.Links))
	for i, l := range doc.Links {
		edges[i] = dag.Edge{
			From:     l.InputNode,
			FromPort: l.InputPort,
			To:       l.OutputNode,
			ToPort:   l.OutputPort,
		}
	}
	return dag.New(nodes, edges)
}

// SizeOf returns the real footprint of doc's nodes, so collapsed nodes
// take their folded size.
func SizeOf(doc *workflow.Document) position.SizeFunc {
	idx := doc.Index()
	return func(id int) (float64, float64) {
		n, ok := idx[id]
		if !ok {
			return 0, 0
		}
		s := n.RealSize()
		return s.W, s.H
	}
}

// Columns runs layering, compaction and ordering on g.
func Columns(g *dag.Graph, opts Options) (dag.Columns, error) {
	cols, err := layering(g)
	if err != nil {
		return nil, err
	}
	cols = transform.CompactForward(g, cols, opts.CompactOptions())
	return order(g, cols, opts)
}

func layering(g *dag.Graph) (dag.Columns, error) {
	cols, err := transform.AssignColumns(g)
	if err != nil {
		return nil, flerrors.Wrap(flerrors.ErrCodeCycleDetected, err, "layering")
	}
	return cols, nil
}

func order(g *dag.Graph, cols dag.Columns, opts Options) (dag.Columns, error) {
	o, err := ordering.ByName(opts.Orderer)
	if err != nil {
		return nil, flerrors.Wrap(flerrors.ErrCodeInvalidConfig, err, "orderer")
	}
	return o.Order(g, cols), nil
}

// Place validates cols against g and computes coordinates with the
// configured placer.
func Place(g *dag.Graph, cols dag.Columns, size position.SizeFunc, opts Options) (*position.Layout, error) {
	p, err := position.ByName(opts.Placer)
	if err != nil {
		return nil, flerrors.Wrap(flerrors.ErrCodeInvalidConfig, err, "placer")
	}
	if err := position.ValidateColumns(g, cols); err != nil {
		return nil, flerrors.Wrap(flerrors.ErrCodeInvalidColumns, err, "columns")
	}
	l, err := p.Place(g, cols, size, opts.PositionConfig())
	if err != nil {
		if errors.Is(err, position.ErrInvalidColumns) {
			return nil, flerrors.Wrap(flerrors.ErrCodeInvalidColumns, err, "columns")
		}
		return nil, flerrors.Wrap(flerrors.ErrCodeInvalidConfig, err, "placement")
	}
	return l, nil
}

// Apply writes placements to doc: every placed node gets its new
// position, expanded nodes get the aligned width when sizeAlign is set,
// and every node with an execution order is renumbered in column order.
func Apply(doc *workflow.Document, cols dag.Columns, l *position.Layout, sizeAlign bool) {
	idx := doc.Index()
	for id, p := range l.Nodes {
		n, ok := idx[id]
		if !ok {
			continue
		}
		n.Pos.X, n.Pos.Y = p.X, p.Y
		if sizeAlign && !n.Collapsed() {
			n.Size.W = p.Width
		}
	}
	for i, id := range cols.Flatten() {
		if n, ok := idx[id]; ok && n.Order != nil {
			*n.Order = i
		}
	}
}
