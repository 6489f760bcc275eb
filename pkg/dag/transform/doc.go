// Package transform assigns workflow nodes to columns.
//
// # Overview
//
// Layering runs in two steps over a [dag.Graph]:
//
//  1. [AssignColumns] builds an as-soon-as-possible layering with Kahn's
//     algorithm. Every round takes all nodes whose producers are already
//     placed, so sources share the first column.
//  2. [CompactForward] then slides nodes rightward next to their nearest
//     consumer, shortening the long idle links ASAP layering leaves behind
//     (a loader used only by the last step would otherwise sit in column 0).
//
// Both steps keep the invariant the rest of the engine relies on: for every
// edge, the producer's column is strictly left of the consumer's.
//
// # Anchored Types
//
// Some node types are inputs a user expects on the far left no matter where
// they are consumed, such as image loaders. Types listed in
// [CompactOptions.Anchored] are never moved; [DefaultAnchored] holds the
// usual set.
//
// # Cycles
//
// A workflow with a cycle cannot be layered. [AssignColumns] fails with a
// [*CycleError] that names one cycle found by [FindCycle], and unwraps to
// [dag.ErrCycleDetected].
//
// # Main Path
//
// [MainPath] finds the longest producer-to-consumer chain, which callers use
// to highlight the backbone of a workflow.
package transform
