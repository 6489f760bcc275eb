// Package workflow reads and writes node-workflow documents.
//
// # Overview
//
// A workflow document is a JSON object describing nodes with input and
// output ports, directed links between those ports, and visual groups. The
// layout engine only reads a small subset of it (ids, types, sizes, the
// collapsed flag and the link endpoints) and writes back positions, widths
// and group boxes. Everything else in the document (widget values, colors,
// titles, extra editor state) is carried through untouched.
//
// # JSON Format
//
//	{
//	  "last_node_id": 4,
//	  "last_link_id": 4,
//	  "nodes": [
//	    {"id": 1, "type": "LoadImage", "pos": [0, 0], "size": [200, 100],
//	     "inputs": [], "outputs": [{"name": "IMAGE", "type": "IMAGE", "links": [1, 2]}]}
//	  ],
//	  "links": [[1, 1, 0, 2, 0, "IMAGE"]],
//	  "groups": [{"id": 1, "title": "Inputs", "bounding": [-10, -40, 220, 150], "font_size": 24}]
//	}
//
// Positions and sizes are accepted either as two-element arrays or as
// {"0": x, "1": y} objects and are written back in the form they were read.
//
// Links are six-element arrays [id, input node, input port, output node,
// output port, type]. The input node produces the value (the edge source)
// and the output node consumes it (the edge destination). Links written as
// objects with origin_id/origin_slot/target_id/target_slot keys are also
// accepted.
//
// # Round Trip
//
// [ReadJSON] keeps every field of every node, group and of the top-level
// object. [WriteJSON] merges the fields this package owns back over them, so
// an unmodified document re-encodes to the same content (key order aside).
package workflow
