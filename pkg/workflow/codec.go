package workflow

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrMissingField is returned when a required document field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrMalformedLink is returned for links that are neither a six-element
	// array nor an origin/target object.
	ErrMalformedLink = errors.New("malformed link")
)

var nullLiteral = []byte("null")

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), nullLiteral)
}

func decodePair(data []byte) (a, b float64, keyed bool, err error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var m map[string]float64
		if err := json.Unmarshal(data, &m); err != nil {
			return 0, 0, false, err
		}
		return m["0"], m["1"], true, nil
	}
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return 0, 0, false, err
	}
	if len(arr) < 2 {
		return 0, 0, false, fmt.Errorf("expected 2 elements, got %d", len(arr))
	}
	return arr[0], arr[1], false, nil
}

func encodePair(a, b float64, keyed bool) ([]byte, error) {
	if keyed {
		return json.Marshal(map[string]float64{"0": a, "1": b})
	}
	return json.Marshal([2]float64{a, b})
}

func (v *Vec) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	x, y, keyed, err := decodePair(data)
	if err != nil {
		return fmt.Errorf("pos: %w", err)
	}
	*v = Vec{X: x, Y: y, keyed: keyed}
	return nil
}

func (v Vec) MarshalJSON() ([]byte, error) { return encodePair(v.X, v.Y, v.keyed) }

func (s *Size) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	w, h, keyed, err := decodePair(data)
	if err != nil {
		return fmt.Errorf("size: %w", err)
	}
	*s = Size{W: w, H: h, keyed: keyed}
	return nil
}

func (s Size) MarshalJSON() ([]byte, error) { return encodePair(s.W, s.H, s.keyed) }

type linkObject struct {
	ID         int `json:"id"`
	OriginID   int `json:"origin_id"`
	OriginSlot int `json:"origin_slot"`
	TargetID   int `json:"target_id"`
	TargetSlot int `json:"target_slot"`
	Type       any `json:"type"`
}

func (l *Link) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedLink, err)
		}
		var obj linkObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedLink, err)
		}
		*l = Link{
			ID:         obj.ID,
			InputNode:  obj.OriginID,
			InputPort:  obj.OriginSlot,
			OutputNode: obj.TargetID,
			OutputPort: obj.TargetSlot,
			Type:       typeString(obj.Type),
			raw:        raw,
		}
		return nil
	}

	var arr []any
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedLink, err)
	}
	if len(arr) != 6 {
		return fmt.Errorf("%w: expected 6 elements, got %d", ErrMalformedLink, len(arr))
	}
	var ints [5]int
	for i := range ints {
		f, ok := arr[i].(float64)
		if !ok {
			return fmt.Errorf("%w: element %d is not a number", ErrMalformedLink, i)
		}
		ints[i] = int(f)
	}
	*l = Link{
		ID:         ints[0],
		InputNode:  ints[1],
		InputPort:  ints[2],
		OutputNode: ints[3],
		OutputPort: ints[4],
		Type:       typeString(arr[5]),
	}
	return nil
}

func (l Link) MarshalJSON() ([]byte, error) {
	if l.raw != nil {
		out := make(map[string]any, len(l.raw)+6)
		for k, v := range l.raw {
			out[k] = v
		}
		out["id"] = l.ID
		out["origin_id"] = l.InputNode
		out["origin_slot"] = l.InputPort
		out["target_id"] = l.OutputNode
		out["target_slot"] = l.OutputPort
		out["type"] = l.Type
		return json.Marshal(out)
	}
	return json.Marshal([]any{l.ID, l.InputNode, l.InputPort, l.OutputNode, l.OutputPort, l.Type})
}

func typeString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

type nodeFields struct {
	ID      *int   `json:"id"`
	Type    string `json:"type"`
	Pos     Vec    `json:"pos"`
	Size    Size   `json:"size"`
	Inputs  []Port `json:"inputs"`
	Outputs []Port `json:"outputs"`
	Flags   Flags  `json:"flags"`
	Order   *int   `json:"order"`
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var f nodeFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f.ID == nil {
		return fmt.Errorf("node: %w: id", ErrMissingField)
	}
	*n = Node{
		ID:      *f.ID,
		Type:    f.Type,
		Pos:     f.Pos,
		Size:    f.Size,
		Inputs:  f.Inputs,
		Outputs: f.Outputs,
		Flags:   f.Flags,
		Order:   f.Order,
		raw:     raw,
	}
	return nil
}

func (n Node) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(n.raw)+8)
	for k, v := range n.raw {
		out[k] = v
	}
	out["id"] = n.ID
	out["type"] = n.Type
	out["pos"] = n.Pos
	out["size"] = n.Size
	if n.Inputs != nil {
		out["inputs"] = n.Inputs
	}
	if n.Outputs != nil {
		out["outputs"] = n.Outputs
	}
	if n.Flags != nil {
		out["flags"] = n.Flags
	}
	if n.Order != nil {
		out["order"] = *n.Order
	}
	return json.Marshal(out)
}

type groupFields struct {
	ID       *int     `json:"id"`
	Title    string   `json:"title"`
	Bounding Rect     `json:"bounding"`
	FontSize *float64 `json:"font_size"`
}

func (g *Group) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var f groupFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*g = Group{
		Title:    f.Title,
		Bounding: f.Bounding,
		FontSize: DefaultFontSize,
		raw:      raw,
	}
	if f.ID != nil {
		g.ID = *f.ID
	}
	if f.FontSize != nil {
		g.FontSize = *f.FontSize
	}
	return nil
}

func (g Group) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(g.raw)+4)
	for k, v := range g.raw {
		out[k] = v
	}
	if _, ok := g.raw["id"]; ok || g.raw == nil {
		out["id"] = g.ID
	}
	out["title"] = g.Title
	out["bounding"] = g.Bounding
	if _, ok := g.raw["font_size"]; ok || g.raw == nil {
		out["font_size"] = g.FontSize
	}
	return json.Marshal(out)
}

type documentFields struct {
	Nodes      *[]*Node `json:"nodes"`
	Links      []Link   `json:"links"`
	Groups     []*Group `json:"groups"`
	LastNodeID int      `json:"last_node_id"`
	LastLinkID int      `json:"last_link_id"`
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var f documentFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f.Nodes == nil {
		return fmt.Errorf("document: %w: nodes", ErrMissingField)
	}
	*d = Document{
		Nodes:      slices.DeleteFunc(*f.Nodes, func(n *Node) bool { return n == nil }),
		Links:      f.Links,
		Groups:     slices.DeleteFunc(f.Groups, func(g *Group) bool { return g == nil }),
		LastNodeID: f.LastNodeID,
		LastLinkID: f.LastLinkID,
		raw:        raw,
	}
	// Older documents have groups without ids; number them by position.
	for i, g := range d.Groups {
		if _, ok := g.raw["id"]; !ok {
			g.ID = i + 1
		}
	}
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.raw)+5)
	for k, v := range d.raw {
		out[k] = v
	}
	nodes := d.Nodes
	if nodes == nil {
		nodes = []*Node{}
	}
	out["nodes"] = nodes
	links := d.Links
	if links == nil {
		links = []Link{}
	}
	out["links"] = links
	if d.Groups != nil || d.raw["groups"] != nil {
		groups := d.Groups
		if groups == nil {
			groups = []*Group{}
		}
		out["groups"] = groups
	}
	out["last_node_id"] = d.LastNodeID
	out["last_link_id"] = d.LastLinkID
	return json.Marshal(out)
}
