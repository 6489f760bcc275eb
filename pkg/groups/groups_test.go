package groups

import (
	"reflect"
	"testing"

	"github.com/matzehuels/flowlayout/pkg/workflow"
)

func node(id int, x, y float64) *workflow.Node {
	return &workflow.Node{ID: id, Pos: workflow.Vec{X: x, Y: y}, Size: workflow.Size{W: 100, H: 100}}
}

func group(x, y, w, h float64) *workflow.Group {
	return &workflow.Group{Bounding: workflow.Rect{x, y, w, h}}
}

func sample() *workflow.Document {
	return &workflow.Document{
		Nodes: []*workflow.Node{node(1, 0, 0), node(2, 200, 0), node(3, 1000, 1000)},
		Groups: []*workflow.Group{
			group(-10, -40, 320, 150),
			group(990, 990, 120, 120),
			group(5000, 5000, 10, 10),
		},
	}
}

func TestSnapshot(t *testing.T) {
	got := Snapshot(sample(), DefaultOptions())
	want := Membership{{1, 2}, {3}, nil}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot() = %v, want %v", got, want)
	}
}

func TestSnapshotPartialOverlap(t *testing.T) {
	doc := &workflow.Document{
		Nodes:  []*workflow.Node{node(1, 0, 0), node(2, 50, 0)},
		Groups: []*workflow.Group{group(0, 0, 120, 100)},
	}
	// Node 2 is 70% inside, below the 0.8 threshold.
	got := Snapshot(doc, DefaultOptions())
	if want := (Membership{{1}}); !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot() = %v, want %v", got, want)
	}
}

func TestRecomputeRefits(t *testing.T) {
	doc := sample()
	doc.Groups[1].FontSize = 10
	members := Snapshot(doc, DefaultOptions())

	idx := doc.Index()
	idx[2].Pos = workflow.Vec{X: 0, Y: 150}
	idx[3].Pos = workflow.Vec{X: 0, Y: 300}

	if n := Recompute(doc, members, DefaultOptions()); n != 0 {
		t.Errorf("shelved %d groups, want 0", n)
	}
	want := []workflow.Rect{
		{-20, -48, 140, 298},
		{-20, 280, 140, 120},
		{5000, 5000, 10, 10},
	}
	for i, g := range doc.Groups {
		if g.Bounding != want[i] {
			t.Errorf("group %d bounding = %v, want %v", i, g.Bounding, want[i])
		}
	}
}

func TestRecomputeShelves(t *testing.T) {
	doc := &workflow.Document{
		Nodes:  []*workflow.Node{node(1, 0, 0), node(2, 500, 0)},
		Groups: []*workflow.Group{group(-10, -10, 120, 120), group(490, -10, 120, 120)},
	}
	members := Snapshot(doc, DefaultOptions())

	// Both nodes end up on the same spot.
	doc.Index()[2].Pos = workflow.Vec{}

	if n := Recompute(doc, members, DefaultOptions()); n != 2 {
		t.Errorf("shelved %d groups, want 2", n)
	}
	want := []workflow.Rect{{-1000, 300, 500, 200}, {-1000, 600, 500, 200}}
	for i, g := range doc.Groups {
		if g.Bounding != want[i] {
			t.Errorf("group %d bounding = %v, want %v", i, g.Bounding, want[i])
		}
	}
}

func TestRecomputeUsesCollapsedSize(t *testing.T) {
	n := node(1, 0, 0)
	n.SetCollapsed(true)
	doc := &workflow.Document{Nodes: []*workflow.Node{n}, Groups: []*workflow.Group{group(-5, -5, 200, 50)}}

	members := Snapshot(doc, DefaultOptions())
	if !reflect.DeepEqual(members, Membership{{1}}) {
		t.Fatalf("collapsed node not captured: %v", members)
	}
	Recompute(doc, members, DefaultOptions())
	if want := (workflow.Rect{-20, -48, 190, 78}); doc.Groups[0].Bounding != want {
		t.Errorf("bounding = %v, want %v", doc.Groups[0].Bounding, want)
	}
}

func TestRecomputeSkipsVanishedMembers(t *testing.T) {
	doc := &workflow.Document{Groups: []*workflow.Group{group(1, 2, 3, 4)}}
	Recompute(doc, Membership{{42}}, DefaultOptions())
	if want := (workflow.Rect{1, 2, 3, 4}); doc.Groups[0].Bounding != want {
		t.Errorf("bounding = %v, want %v", doc.Groups[0].Bounding, want)
	}
}
