// Package pipeline runs the complete layout of a workflow document.
//
// This package wires the engine packages together so the CLI (and any
// other caller) gets consistent behavior from one entry point.
//
// # Architecture
//
// A layout run consists of these stages:
//
//  1. Snapshot: record which nodes each group contains
//  2. Prepare: optionally unpin nodes and apply the fold mode
//  3. Layering: assign columns with Kahn's algorithm
//  4. Compact: pull producers next to their consumers
//  5. Order: reduce crossings with the right-to-left sweep
//  6. Place: compute x, y and widths with the selected placer
//  7. Apply: write positions, widths and execution order to the document
//  8. Groups: refit or shelve group boxes around the moved members
//
// Stages 3 to 6 are skipped when the [Runner]'s cache holds a layout for
// the same document and options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Layout(ctx, doc, pipeline.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	workflow.ExportJSON(result.Document, "out.json")
package pipeline

import (
	"time"

	"github.com/matzehuels/flowlayout/pkg/dag"
	"github.com/matzehuels/flowlayout/pkg/position"
	"github.com/matzehuels/flowlayout/pkg/workflow"
)

// Stage names, as reported to observability hooks and in [Stats].
const (
	StageSnapshot = "snapshot"
	StagePrepare  = "prepare"
	StageLayering = "layering"
	StageCompact  = "compact"
	StageOrder    = "order"
	StagePlace    = "place"
	StageApply    = "apply"
	StageGroups   = "groups"
)

// Result contains the outputs of a layout run.
type Result struct {
	// RunID identifies the run in logs and metrics.
	RunID string

	// Document is the laid-out copy of the input document.
	Document *workflow.Document

	// Graph is the engine view of Document.
	Graph *dag.Graph

	// Columns is the final column assignment, left to right, each column
	// ordered top to bottom.
	Columns dag.Columns

	// Layout holds the placement of every node.
	Layout *position.Layout

	// CacheHit reports whether columns and placements came from the cache.
	CacheHit bool

	Stats Stats
}

// Stats contains layout statistics.
type Stats struct {
	NodeCount int
	EdgeCount int
	Crossings int
	MainPath  []int // Longest path through the graph

	Folded   int // Nodes collapsed after the prepare stage
	Unpinned int // Nodes whose pin was removed
	Shelved  int // Groups moved to the shelf

	Stages   []StageTiming
	Duration time.Duration
}

// StageTiming is the wall time of one stage.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}
