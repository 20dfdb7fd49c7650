// Package render groups the visual outputs of a street.
//
// # Overview
//
//   - ASCII silhouette (in [silhouette] subpackage)
//   - Silhouette sinks: text, SVG, PNG, JSON (in [silhouette/sink])
//   - Street plan diagrams via Graphviz (in [nodelink] subpackage)
//
// # Silhouette
//
// The silhouette is the skyline seen from the street: for each position the
// taller of the two rows' buildings, halved to fit terminal rows.
//
//	fmt.Print(silhouette.RenderStreet(s))
//	svg := sink.RenderSVG(s)
//
// # Street Plan
//
//	dot := nodelink.ToDOT(s, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [silhouette]: github.com/matzehuels/skyline/pkg/render/silhouette
// [silhouette/sink]: github.com/matzehuels/skyline/pkg/render/silhouette/sink
// [nodelink]: github.com/matzehuels/skyline/pkg/render/nodelink
package render
