package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/street"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cell    float64
	palette *Palette
	title   string
}

// WithCellSize sets the width of one meter and the height of one silhouette
// row in pixels (default 10).
func WithCellSize(px float64) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.cell = px
		}
	}
}

// WithPalette replaces [DefaultPalette].
func WithPalette(p *Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithTitle adds a title above the silhouette.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG draws the silhouette as vector graphics. Each run of columns set
// by one building becomes a rect filled with its category colour; the ruler
// marks every fifth meter.
func RenderSVG(s *street.Street, opts ...SVGOption) []byte {
	r := svgRenderer{cell: 10, palette: DefaultPalette()}
	for _, opt := range opts {
		opt(&r)
	}

	f := newFrame(s.Length(), s.MaxHeight(), r.cell)
	w, h := f.width(), f.height()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", w, h, hex(r.palette.Background))
	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="monospace" font-size="%.1f" fill="%s">%s</text>`+"\n",
			f.margin, f.margin-f.cell/2, f.cell, hex(r.palette.Text), html.EscapeString(r.title))
	}

	for _, sp := range spans(s) {
		x, y, bw, bh := f.rect(sp)
		fmt.Fprintf(&buf, `  <rect class="building %s" id="building-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			sp.Category, html.EscapeString(sp.BuildingID), x, y, bw, bh, hex(r.palette.Fill(sp.Category)), hex(r.palette.Outline))
	}

	fmt.Fprintf(&buf, `  <rect class="ground" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		f.margin, f.baseline, float64(f.length)*f.cell, f.cell/2, hex(r.palette.Ground))
	for _, b := range s.Buildings() {
		if b.Category != building.Playground {
			continue
		}
		fmt.Fprintf(&buf, `  <rect class="playground" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			f.tick(b.Left), f.baseline, float64(b.Length)*f.cell, f.cell/2, hex(r.palette.Fill(building.Playground)))
	}

	renderRuler(&buf, f, r.palette)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderRuler(buf *bytes.Buffer, f frame, p *Palette) {
	top := f.baseline + f.cell/2
	for _, k := range f.ticks() {
		x := f.tick(k)
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
			x, top, x, top+f.cell/2, hex(p.Text))
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="monospace" font-size="%.1f" text-anchor="middle" fill="%s">%d</text>`+"\n",
			x, top+1.75*f.cell, f.cell, hex(p.Text), k)
	}
}
