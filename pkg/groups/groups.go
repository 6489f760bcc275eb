// Package groups keeps workflow group boxes in step with a new layout.
//
// Membership is captured with [Snapshot] before nodes move; [Recompute]
// then refits each group around its members' new positions, or shelves
// the group off to the side when its members were scattered.
package groups

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/flowlayout/pkg/workflow"
)

// Options tune membership and refitting.
type Options struct {
	// ContainRatio is the share of a node's area that must lie inside a
	// box for the node to count as contained.
	ContainRatio float64 `json:"contain_ratio" toml:"contain_ratio"`

	// SameGroupRatio is the minimum ratio of original members to nodes
	// inside the refitted box for the group to keep its members.
	SameGroupRatio float64 `json:"same_group_ratio" toml:"same_group_ratio"`

	Padding float64 `json:"padding" toml:"padding"`

	// HeadingFactor is the heading height above members in font sizes.
	HeadingFactor float64 `json:"heading_factor" toml:"heading_factor"`

	// Shelf placement for groups whose members were scattered.
	ShelfX      float64 `json:"shelf_x" toml:"shelf_x"`
	ShelfStep   float64 `json:"shelf_step" toml:"shelf_step"`
	ShelfWidth  float64 `json:"shelf_width" toml:"shelf_width"`
	ShelfHeight float64 `json:"shelf_height" toml:"shelf_height"`
}

// DefaultOptions returns the standard group options.
func DefaultOptions() Options {
	return Options{
		ContainRatio:   0.8,
		SameGroupRatio: 0.9,
		Padding:        20,
		HeadingFactor:  2,
		ShelfX:         -1000,
		ShelfStep:      300,
		ShelfWidth:     500,
		ShelfHeight:    200,
	}
}

// Membership lists, per group of a document in document order, the ids of
// the nodes it contains.
type Membership [][]int

// Snapshot records which nodes each group contains at the current node
// positions.
func Snapshot(doc *workflow.Document, opts Options) Membership {
	out := make(Membership, len(doc.Groups))
	for i, g := range doc.Groups {
		box := rectBox(g.Bounding)
		for _, n := range doc.Nodes {
			if containment(nodeBox(n), box) > opts.ContainRatio {
				out[i] = append(out[i], n.ID)
			}
		}
	}
	return out
}

// Recompute refits every group around the current positions of its
// snapshot members and returns how many groups were shelved.
//
// The members' bounding box is padded by Padding left and right and
// extended upwards by HeadingFactor font sizes. If other nodes now fall
// inside that area so that members make up no more than SameGroupRatio of
// its occupants, the group is instead moved to the shelf at ShelfX, one
// ShelfStep below the previous shelved group. Groups without members are
// left untouched.
func Recompute(doc *workflow.Document, members Membership, opts Options) (shelved int) {
	index := doc.Index()
	for i, g := range doc.Groups {
		if i >= len(members) || len(members[i]) == 0 {
			continue
		}

		var (
			bbox r2.Box
			seen bool
		)
		for _, id := range members[i] {
			n, ok := index[id]
			if !ok {
				continue
			}
			b := nodeBox(n)
			if !seen {
				bbox, seen = b, true
				continue
			}
			bbox = r2.Box{
				Min: r2.Vec{X: math.Min(bbox.Min.X, b.Min.X), Y: math.Min(bbox.Min.Y, b.Min.Y)},
				Max: r2.Vec{X: math.Max(bbox.Max.X, b.Max.X), Y: math.Max(bbox.Max.Y, b.Max.Y)},
			}
		}
		if !seen {
			continue
		}

		inside := 0
		for _, n := range doc.Nodes {
			if containment(nodeBox(n), bbox) > opts.ContainRatio {
				inside++
			}
		}
		if inside == 0 {
			continue
		}

		if float64(len(members[i]))/float64(inside) > opts.SameGroupRatio {
			heading := fontSize(g) * opts.HeadingFactor
			size := bbox.Size()
			g.Bounding = workflow.Rect{
				bbox.Min.X - opts.Padding,
				bbox.Min.Y - heading,
				size.X + 2*opts.Padding,
				size.Y + heading,
			}
			continue
		}
		shelved++
		g.Bounding = workflow.Rect{opts.ShelfX, float64(shelved) * opts.ShelfStep, opts.ShelfWidth, opts.ShelfHeight}
	}
	return shelved
}

func fontSize(g *workflow.Group) float64 {
	if g.FontSize > 0 {
		return g.FontSize
	}
	return workflow.DefaultFontSize
}

func nodeBox(n *workflow.Node) r2.Box {
	s := n.RealSize()
	return r2.Box{
		Min: r2.Vec{X: n.Pos.X, Y: n.Pos.Y},
		Max: r2.Vec{X: n.Pos.X + s.W, Y: n.Pos.Y + s.H},
	}
}

func rectBox(r workflow.Rect) r2.Box {
	return r2.Box{Min: r2.Vec{X: r[0], Y: r[1]}, Max: r2.Vec{X: r[0] + r[2], Y: r[1] + r[3]}}
}

// containment returns the share of a's area that lies inside b. Areas
// below one square unit are treated as one.
func containment(a, b r2.Box) float64 {
	w := math.Min(a.Max.X, b.Max.X) - math.Max(a.Min.X, b.Min.X)
	h := math.Min(a.Max.Y, b.Max.Y) - math.Max(a.Min.Y, b.Min.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	s := a.Size()
	return w * h / math.Max(s.X*s.Y, 1)
}
