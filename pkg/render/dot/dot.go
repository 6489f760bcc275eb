package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowlayout/pkg/dag"
	"github.com/matzehuels/flowlayout/pkg/position"
)

// Graphviz sizes nodes in inches; canvas units are treated as points.
const pointsPerInch = 72.0

// Options configures the DOT output.
type Options struct {
	// Detailed adds the node type and column index to labels and port
	// numbers to edges. When false only the node id is shown.
	Detailed bool

	// Pinned writes the computed positions as fixed node coordinates so
	// the drawing mirrors the layout instead of letting Graphviz rank it.
	// Requires a non-nil layout; ignored otherwise.
	Pinned bool
}

// ToDOT converts a layered graph to Graphviz DOT. Each column becomes a
// rank=same group, emitted in column order so dot keeps the left-to-right
// layering and the top-to-bottom order within columns.
//
// l may be nil. When Pinned is set, nodes carry pos="x,y!" with the canvas
// y axis flipped to Graphviz's upward y.
func ToDOT(g *dag.Graph, cols dag.Columns, l *position.Layout, opts Options) string {
	pinned := opts.Pinned && l != nil

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  nodesep=0.4;\n")
	if pinned {
		buf.WriteString("  splines=true;\n")
	} else {
		buf.WriteString("  ordering=out;\n")
	}
	buf.WriteString("\n")

	for c, col := range cols {
		if len(col) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "  subgraph col%d {\n    rank=same;\n", c)
		for _, id := range col {
			n, _ := g.Node(id)
			attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, c, opts.Detailed))}
			if pinned {
				attrs = append(attrs, pinAttrs(l, id)...)
			}
			fmt.Fprintf(&buf, "    %d [%s];\n", id, strings.Join(attrs, ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if opts.Detailed {
			fmt.Fprintf(&buf, "  %d -> %d [taillabel=\"%d\", headlabel=\"%d\"];\n", e.From, e.To, e.FromPort, e.ToPort)
			continue
		}
		fmt.Fprintf(&buf, "  %d -> %d;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n dag.Node, col int, detailed bool) string {
	label := "#" + strconv.Itoa(n.ID)
	if !detailed {
		return label
	}
	if n.Type != "" {
		label += "\n" + n.Type
	}
	return label + fmt.Sprintf("\ncol: %d", col)
}

func pinAttrs(l *position.Layout, id int) []string {
	p, ok := l.Nodes[id]
	if !ok {
		return nil
	}
	cx := p.X + p.Width/2
	cy := -p.CenterY()
	return []string{
		fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(cx), fmtFloat(cy)),
		fmt.Sprintf("width=%s", fmtFloat(p.Width/pointsPerInch)),
		fmt.Sprintf("height=%s", fmtFloat(p.Height/pointsPerInch)),
		"fixedsize=true",
	}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz. Pinned graphs are
// laid out with neato, which honours fixed node positions; others use dot.
func RenderSVG(ctx context.Context, dot string, pinned bool) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	if pinned {
		gv.SetLayout(graphviz.NEATO)
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// unitless one so the SVG scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
