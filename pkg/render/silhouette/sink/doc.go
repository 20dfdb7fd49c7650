// Package sink provides output format renderers for street silhouettes.
//
// # Overview
//
// A "sink" turns a [street.Street] into a final output format:
//
//   - Text: the ASCII silhouette from package silhouette
//   - SVG: one rect per run of columns set by the same building
//   - PNG: the SVG geometry rasterized with [github.com/fogleman/gg]
//   - JSON: the height profile, visible spans and both rows
//
// The street plan diagram (format "dot") lives in package nodelink.
//
// # Colours
//
// SVG and PNG fill each building with its category colour from a [Palette].
// [DefaultPalette] picks named colours from [golang.org/x/image/colornames].
// Playgrounds have no height; they are drawn as coloured strips on the
// ground line.
//
// # Usage
//
//	txt := sink.RenderText(s, sink.WithoutHeader())
//	svg := sink.RenderSVG(s, sink.WithTitle("Main Street"))
//	png, err := sink.RenderPNG(s, sink.WithScale(2))
//	data, err := sink.RenderJSON(s, sink.WithJSONGrid())
//
// [street.Street]: github.com/matzehuels/skyline/pkg/street.Street
package sink
