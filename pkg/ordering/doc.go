// Package ordering decides the vertical order of nodes within columns.
//
// The columns come from layering (see package transform); ordering only
// permutes ids inside each column and never moves a node to another one.
//
// # Algorithm
//
// [Sweep] walks column pairs right to left. The rightmost column keeps its
// layering order. For every pair, multi-input consumers on the right are
// expanded into one virtual slot per incoming edge, sorted by input port,
// so that producers feeding port 0 gravitate above those feeding port 1.
// Producers on the left are then sorted by the mean slot index of their
// consumers (barycenter). Nodes with no consumers in the right column sit
// at its middle.
//
// The building blocks [Normalize], [Components], [BranchOrder] and
// [GravitySort] are exported for testing and for callers composing their
// own strategies.
package ordering
