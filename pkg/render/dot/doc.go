// Package dot renders layered workflow graphs as Graphviz diagrams.
//
// [ToDOT] writes one rank=same subgraph per column, so the dot engine
// reproduces the layering computed by the layout pipeline. With
// [Options.Pinned] the computed placements are written as fixed positions
// instead and [RenderSVG] switches to the neato engine, which draws the
// nodes exactly where the layout put them:
//
//	src := dot.ToDOT(g, cols, layout, dot.Options{Pinned: true})
//	svg, err := dot.RenderSVG(ctx, src, true)
//
// Rendering runs Graphviz compiled to WebAssembly through go-graphviz, so
// no system installation is required.
package dot
