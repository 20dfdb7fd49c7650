// Package nodelink renders a street as a Graphviz plan diagram.
//
// # Overview
//
// Where the silhouette shows heights, the plan shows placement: each row is
// a cluster, each building a box labelled with its category and span, and
// boxes are chained left to right in street order between the street's
// start (0) and end (its length).
//
// # Usage
//
//	dot := nodelink.ToDOT(s, nodelink.Options{Title: "main"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Options
//
//   - Detailed: labels add identifier, height, owner and category
//     attributes; links show the free meters between neighbours
//   - Title: graph label, rendered with the street length
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering,
// so no Graphviz installation is needed.
package nodelink
