// Package dag provides the graph view the layout engine works on.
//
// # Overview
//
// A workflow document is turned into a [Graph] once per layout run: an
// immutable arena of [Node] values indexed by dense integer handles, with
// index-based in/out adjacency lists. Node ids are the workflow's own
// integer ids. Edges point from the producing node to the consuming node
// and carry both port indexes, so later stages can order nodes by the
// consumer's input slots.
//
// Edges whose endpoints are not both in the node set are dropped at
// construction, which makes [New] and [Graph.Subgraph] the "induced
// subgraph" operation every stage needs.
//
// # Columns
//
// A layout is a [Columns] value: left-to-right layers, each an ordered list
// of node ids from top to bottom. Layering produces it, ordering permutes
// within each column, and placement reads it without changing membership.
// [Columns.Violations] reports edges that do not point strictly rightward.
//
// # Edge Crossings
//
// [CountCrossings] and [CountColumnCrossings] count crossings between
// consecutive columns with a Fenwick tree (binary indexed tree) in
// O(E log V) per column pair. They are used to report layout quality.
//
// # Concurrency
//
// A Graph is never mutated after [New] returns and may be shared between
// goroutines. Columns are plain slices owned by the caller.
package dag
