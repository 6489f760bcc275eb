package workflow

import (
	"encoding/json"
	"slices"
)

// Footprint of a collapsed node.
const (
	CollapsedWidth  = 150
	CollapsedHeight = 30
)

// DefaultFontSize is used for groups that do not carry a font size.
const DefaultFontSize = 24

// Vec is a 2-D position.
type Vec struct {
	X, Y float64

	keyed bool
}

// Size is a node's stored width and height.
type Size struct {
	W, H float64

	keyed bool
}

// Rect is a group bounding box: x, y, width, height.
type Rect [4]float64

// Port is one input or output slot of a node. Ports are kept as free-form
// maps because their schema is owned by the editor, not by the layout.
type Port map[string]any

// Type returns the port's value type, or "" when absent.
func (p Port) Type() string {
	s, _ := p["type"].(string)
	return s
}

// Name returns the port's display name, or "" when absent.
func (p Port) Name() string {
	s, _ := p["name"].(string)
	return s
}

// Flags holds a node's display flags.
type Flags map[string]any

// Bool reports whether the flag key is set to true.
func (f Flags) Bool(key string) bool {
	v, ok := f[key].(bool)
	return ok && v
}

// Node is a workflow node.
type Node struct {
	ID      int
	Type    string
	Pos     Vec
	Size    Size
	Inputs  []Port
	Outputs []Port
	Flags   Flags

	// Order is the node's execution order, rewritten on export when set.
	Order *int

	raw map[string]json.RawMessage
}

// Collapsed reports whether the node is displayed folded.
func (n *Node) Collapsed() bool {
	return n.Flags.Bool("collapsed")
}

// SetCollapsed sets or clears the collapsed flag.
func (n *Node) SetCollapsed(v bool) {
	if n.Flags == nil {
		if !v {
			return
		}
		n.Flags = Flags{}
	}
	n.Flags["collapsed"] = v
}

// RealSize returns the footprint the node occupies on the canvas.
func (n *Node) RealSize() Size {
	if n.Collapsed() {
		return Size{W: CollapsedWidth, H: CollapsedHeight}
	}
	return n.Size
}

// Link is a directed connection from a producer's output port (the input
// node) to a consumer's input port (the output node).
type Link struct {
	ID         int
	InputNode  int
	InputPort  int
	OutputNode int
	OutputPort int
	Type       string

	// raw is set for links read in object form; they are written back as
	// objects with any extra keys preserved.
	raw map[string]json.RawMessage
}

// Group is a titled rectangle drawn behind nodes.
type Group struct {
	ID       int
	Title    string
	Bounding Rect
	FontSize float64

	raw map[string]json.RawMessage
}

// Document is a whole workflow.
type Document struct {
	Nodes      []*Node
	Links      []Link
	Groups     []*Group
	LastNodeID int
	LastLinkID int

	raw map[string]json.RawMessage
}

// Index returns a lookup from node id to node.
func (d *Document) Index() map[int]*Node {
	idx := make(map[int]*Node, len(d.Nodes))
	for _, n := range d.Nodes {
		idx[n.ID] = n
	}
	return idx
}

// NodeIDs returns all node ids in ascending order.
func (d *Document) NodeIDs() []int {
	ids := make([]int, len(d.Nodes))
	for i, n := range d.Nodes {
		ids[i] = n.ID
	}
	slices.Sort(ids)
	return ids
}

// Clone returns a deep copy of the document. Raw passthrough fields are
// shared since they are never mutated in place.
func (d *Document) Clone() *Document {
	out := &Document{
		Nodes:      make([]*Node, len(d.Nodes)),
		Links:      slices.Clone(d.Links),
		Groups:     make([]*Group, len(d.Groups)),
		LastNodeID: d.LastNodeID,
		LastLinkID: d.LastLinkID,
		raw:        d.raw,
	}
	for i, n := range d.Nodes {
		cp := *n
		cp.Inputs = clonePorts(n.Inputs)
		cp.Outputs = clonePorts(n.Outputs)
		if n.Flags != nil {
			cp.Flags = make(Flags, len(n.Flags))
			for k, v := range n.Flags {
				cp.Flags[k] = v
			}
		}
		if n.Order != nil {
			o := *n.Order
			cp.Order = &o
		}
		out.Nodes[i] = &cp
	}
	for i, g := range d.Groups {
		cp := *g
		out.Groups[i] = &cp
	}
	return out
}

func clonePorts(ports []Port) []Port {
	if ports == nil {
		return nil
	}
	out := make([]Port, len(ports))
	for i, p := range ports {
		cp := make(Port, len(p))
		for k, v := range p {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}
