// Package pkg provides the libraries behind flowlayout, a layered layout
// engine for node-graph workflow documents.
//
// # Overview
//
// Flowlayout rearranges a ComfyUI-style workflow into left-to-right
// columns. The pkg directory is organized by pipeline stage:
//
//  1. [workflow] - the document model, its JSON codec, folding and pins
//  2. [dag] - graph structure, column bookkeeping and crossing counts
//  3. [dag/transform] - cycle checks, layering, compaction, main path
//  4. [ordering] - crossing reduction within columns
//  5. [position] - column widths and vertical placement strategies
//  6. [groups] - refitting or shelving group boxes after placement
//  7. [pipeline] - orchestration, options and the layout cache
//  8. [render/dot] - Graphviz DOT and SVG views of a layout
//
// Supporting packages: [cache] (file, Redis and MongoDB backends),
// [errors] (error codes and exit statuses), [observability] (pipeline
// and cache hooks with a Prometheus implementation) and [buildinfo].
//
// # Architecture
//
//	workflow.Document
//	       ↓
//	  [dag] graph (links as edges, ports kept)
//	       ↓
//	  [dag/transform] layering + compaction
//	       ↓
//	  [ordering] column order
//	       ↓
//	  [position] placement
//	       ↓
//	  positions written back, [groups] refitted
//
// # Quick Start
//
//	doc, _ := pipeline.LoadDocument("workflow.json")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Layout(ctx, doc, pipeline.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	_ = pipeline.SaveDocument(res.Document, "workflow.layout.json")
package pkg
