// Package position turns ordered columns into canvas coordinates.
//
// Columns are laid out left to right starting at [Config].BaseX; each
// column advances x by its reconciled width plus [Config].GapX. Inside a
// column nodes are stacked top to bottom in column order with
// [Config].GapY between them. Placers differ only in where a column's
// stack starts:
//
//   - [Simple] aligns the block on [Config].BaseY by [Config].Align.
//   - [Average] shifts the block rigidly towards the median center of the
//     nodes' adjoining predecessors.
//   - [HighlyAligned] moves every node with an adjoining predecessor as
//     close to that median as column order allows, using [PAVA].
//
// A predecessor is adjoining when it sits fewer than
// [Config].AdjoinDistance columns to the left.
//
// Column width reconciliation takes the widest node, optionally ignoring
// outliers ([ExcludeOutliers]), and with [Config].SizeAlign forces every
// node of the column to that width within [Config].MinWidth and
// [Config].MaxWidth.
//
// Placement depends only on the graph, the columns, node sizes and the
// configuration, so running it twice yields identical coordinates.
package position
