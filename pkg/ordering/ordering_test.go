package ordering

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/matzehuels/flowlayout/pkg/dag"
	"github.com/matzehuels/flowlayout/pkg/dag/transform"
)

func graph(n int, edges ...dag.Edge) *dag.Graph {
	nodes := make([]dag.Node, n)
	for i := range nodes {
		nodes[i] = dag.Node{ID: i + 1}
	}
	return dag.New(nodes, edges)
}

func e(from, to, port int) dag.Edge { return dag.Edge{From: from, To: to, ToPort: port} }

func TestSweep(t *testing.T) {
	tests := []struct {
		name string
		g    *dag.Graph
		cols dag.Columns
		want dag.Columns
	}{
		{
			name: "diamond keeps port order",
			g:    graph(4, e(1, 2, 0), e(1, 3, 0), e(2, 4, 0), e(3, 4, 1)),
			cols: dag.Columns{{1}, {2, 3}, {4}},
			want: dag.Columns{{1}, {2, 3}, {4}},
		},
		{
			name: "diamond follows swapped ports",
			g:    graph(4, e(1, 2, 0), e(1, 3, 0), e(2, 4, 1), e(3, 4, 0)),
			cols: dag.Columns{{1}, {2, 3}, {4}},
			want: dag.Columns{{1}, {3, 2}, {4}},
		},
		{
			name: "uncrosses pair",
			g:    graph(4, e(1, 4, 0), e(2, 3, 0)),
			cols: dag.Columns{{1, 2}, {3, 4}},
			want: dag.Columns{{2, 1}, {3, 4}},
		},
		{
			name: "unlinked nodes keep order",
			g:    graph(4, e(2, 4, 0)),
			cols: dag.Columns{{1, 2, 3}, {4}},
			want: dag.Columns{{1, 2, 3}, {4}},
		},
		{
			name: "last column untouched",
			g:    graph(3, e(1, 2, 0), e(1, 3, 0)),
			cols: dag.Columns{{1}, {3, 2}},
			want: dag.Columns{{1}, {3, 2}},
		},
		{
			name: "single column",
			g:    graph(2),
			cols: dag.Columns{{2, 1}},
			want: dag.Columns{{2, 1}},
		},
		{
			name: "empty",
			g:    graph(0),
			cols: dag.Columns{},
			want: dag.Columns{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.cols.Clone()
			got := Sweep{}.Order(tt.g, tt.cols)
			if !got.Equal(tt.want) {
				t.Errorf("Order() = %v, want %v", got, tt.want)
			}
			if !tt.cols.Equal(in) {
				t.Errorf("input modified: %v", tt.cols)
			}
		})
	}
}

func TestSweepReducesCrossings(t *testing.T) {
	g := graph(4, e(1, 4, 0), e(2, 3, 0))
	cols := dag.Columns{{1, 2}, {3, 4}}
	before := dag.CountCrossings(g, cols)
	after := dag.CountCrossings(g, Sweep{}.Order(g, cols))
	if before != 1 || after != 0 {
		t.Errorf("crossings before=%d after=%d, want 1 and 0", before, after)
	}
}

func randomGraph(rng *rand.Rand, n int) *dag.Graph {
	var edges []dag.Edge
	for to := 2; to <= n; to++ {
		k := rng.Intn(3)
		for port := 0; port < k; port++ {
			edges = append(edges, e(1+rng.Intn(to-1), to, port))
		}
	}
	return graph(n, edges...)
}

func TestSweepPermutesColumns(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		g := randomGraph(rng, 4+rng.Intn(20))
		cols, err := transform.AssignColumns(g)
		if err != nil {
			t.Fatal(err)
		}
		got := Sweep{}.Order(g, cols)
		if len(got) != len(cols) {
			t.Fatalf("column count %d, want %d", len(got), len(cols))
		}
		for c := range cols {
			want := slices.Sorted(slices.Values(cols[c]))
			have := slices.Sorted(slices.Values(got[c]))
			if !slices.Equal(want, have) {
				t.Fatalf("column %d members %v, want %v", c, have, want)
			}
		}
		if again := (Sweep{}).Order(g, cols); !again.Equal(got) {
			t.Fatalf("non-deterministic: %v vs %v", got, again)
		}
	}
}

func TestKeep(t *testing.T) {
	cols := dag.Columns{{2, 1}, {3}}
	got := Keep{}.Order(graph(3), cols)
	if !got.Equal(cols) {
		t.Errorf("Order() = %v, want %v", got, cols)
	}
	got[0][0] = 9
	if cols[0][0] != 2 {
		t.Error("Keep returned aliased columns")
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", NameSweep, NameKeep} {
		if _, err := ByName(name); err != nil {
			t.Errorf("ByName(%q) error: %v", name, err)
		}
	}
	if _, err := ByName("magic"); err == nil {
		t.Error("ByName(magic) expected error")
	}
}
