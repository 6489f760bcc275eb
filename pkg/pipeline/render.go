package pipeline

import (
	"context"

	flerrors "github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/render/dot"
)

// DOT returns the Graphviz source of the result's columns. Pinned output
// uses the computed placements.
func (res *Result) DOT(opts dot.Options) string {
	return dot.ToDOT(res.Graph, res.Columns, res.Layout, opts)
}

// RenderSVG renders the result as an SVG preview.
func RenderSVG(ctx context.Context, res *Result, opts dot.Options) ([]byte, error) {
	svg, err := dot.RenderSVG(ctx, res.DOT(opts), opts.Pinned && res.Layout != nil)
	if err != nil {
		return nil, flerrors.Wrap(flerrors.ErrCodeInternal, err, "render svg")
	}
	return svg, nil
}
