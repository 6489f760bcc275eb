package dot

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/flowlayout/pkg/dag"
	"github.com/matzehuels/flowlayout/pkg/position"
)

func diamond() (*dag.Graph, dag.Columns) {
	g := dag.New(
		[]dag.Node{{ID: 1, Type: "Loader"}, {ID: 2, Type: "A"}, {ID: 3, Type: "B"}, {ID: 4, Type: "Save"}},
		[]dag.Edge{
			{From: 1, To: 2},
			{From: 1, FromPort: 1, To: 3},
			{From: 2, To: 4},
			{From: 3, To: 4, ToPort: 1},
		},
	)
	return g, dag.Columns{{1}, {2, 3}, {4}}
}

func TestToDOT(t *testing.T) {
	g, cols := diamond()
	out := ToDOT(g, cols, nil, Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		"subgraph col1 {\n    rank=same;\n    2 [label=\"#2\"];\n    3 [label=\"#3\"];\n  }",
		"  1 -> 2;\n",
		"  3 -> 4;\n",
		"ordering=out;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "pos=") {
		t.Error("unpinned DOT should not carry positions")
	}
}

func TestToDOTDetailed(t *testing.T) {
	g, cols := diamond()
	out := ToDOT(g, cols, nil, Options{Detailed: true})

	if !strings.Contains(out, `label="#1\nLoader\ncol: 0"`) {
		t.Errorf("detailed label missing:\n%s", out)
	}
	if !strings.Contains(out, `3 -> 4 [taillabel="0", headlabel="1"];`) {
		t.Errorf("port labels missing:\n%s", out)
	}
}

func TestToDOTPinned(t *testing.T) {
	g, cols := diamond()
	l := &position.Layout{Nodes: map[int]position.Placement{
		1: {X: 0, Y: -50, Width: 144, Height: 72},
		2: {X: 244, Y: -125, Width: 144, Height: 72},
		3: {X: 244, Y: 25, Width: 144, Height: 72},
		4: {X: 488, Y: -50, Width: 144, Height: 72},
	}}

	out := ToDOT(g, cols, l, Options{Pinned: true})
	for _, want := range []string{
		`1 [label="#1", pos="72,14!", width=2, height=1, fixedsize=true];`,
		`3 [label="#3", pos="316,-61!"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ordering=out") {
		t.Error("pinned DOT should leave ordering to the positions")
	}

	if got := ToDOT(g, cols, nil, Options{Pinned: true}); strings.Contains(got, "pos=") {
		t.Error("Pinned without layout should be ignored")
	}
}

func TestToDOTSkipsEmptyColumns(t *testing.T) {
	g, _ := diamond()
	out := ToDOT(g, dag.Columns{{1}, {}, {2, 3}, {4}}, nil, Options{})
	if strings.Contains(out, "subgraph col1 ") {
		t.Errorf("empty column emitted:\n%s", out)
	}
	if !strings.Contains(out, "subgraph col2 ") {
		t.Errorf("column indexes should be kept:\n%s", out)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox =\n%s\nwant\n%s", got, want)
	}

	noBox := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(noBox)) != string(noBox) {
		t.Error("svg without viewBox should be unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	g, cols := diamond()
	svg, err := RenderSVG(context.Background(), ToDOT(g, cols, nil, Options{}), false)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("output is not SVG: %.80s", svg)
	}
}
