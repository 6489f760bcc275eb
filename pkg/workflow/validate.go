package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateNodeID is returned when two nodes share an id.
	ErrDuplicateNodeID = errors.New("duplicate node id")

	// ErrNegativeSize is returned for nodes with a negative width or height.
	ErrNegativeSize = errors.New("negative node size")

	// ErrNegativePort is returned for links with a negative port index.
	ErrNegativePort = errors.New("negative port index")
)

// Validate checks the structural constraints the layout relies on: unique
// node ids, non-negative sizes and non-negative link ports. Links that
// reference unknown nodes are not an error; they are ignored by layout and
// reported by [Document.DanglingLinks].
func (d *Document) Validate() error {
	seen := make(map[int]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if seen[n.ID] {
			return fmt.Errorf("node %d: %w", n.ID, ErrDuplicateNodeID)
		}
		seen[n.ID] = true
		if n.Size.W < 0 || n.Size.H < 0 {
			return fmt.Errorf("node %d: %w", n.ID, ErrNegativeSize)
		}
	}
	for _, l := range d.Links {
		if l.InputPort < 0 || l.OutputPort < 0 {
			return fmt.Errorf("link %d: %w", l.ID, ErrNegativePort)
		}
	}
	return nil
}

// DanglingLinks returns the links whose endpoints are not both present.
func (d *Document) DanglingLinks() []Link {
	idx := d.Index()
	var out []Link
	for _, l := range d.Links {
		if idx[l.InputNode] == nil || idx[l.OutputNode] == nil {
			out = append(out, l)
		}
	}
	return out
}
