package sink

import (
	"bytes"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/street"
)

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale   float64
	cell    float64
	palette *Palette
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGCellSize sets the unscaled size of one meter in pixels (default 10).
func WithPNGCellSize(px float64) PNGOption {
	return func(r *pngRenderer) {
		if px > 0 {
			r.cell = px
		}
	}
}

// WithPNGPalette replaces [DefaultPalette].
func WithPNGPalette(p *Palette) PNGOption { return func(r *pngRenderer) { r.palette = p } }

// RenderPNG rasterizes the silhouette with the same geometry as [RenderSVG].
// Labels use gg's built-in bitmap face, so no font files are needed.
func RenderPNG(s *street.Street, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, cell: 10, palette: DefaultPalette()}
	for _, opt := range opts {
		opt(&r)
	}

	f := newFrame(s.Length(), s.MaxHeight(), r.cell*r.scale)
	dc := gg.NewContext(int(f.width()+0.5), int(f.height()+0.5))
	dc.SetColor(r.palette.Background)
	dc.Clear()

	dc.SetLineWidth(r.scale)
	for _, sp := range spans(s) {
		x, y, w, h := f.rect(sp)
		dc.DrawRectangle(x, y, w, h)
		dc.SetColor(r.palette.Fill(sp.Category))
		dc.FillPreserve()
		dc.SetColor(r.palette.Outline)
		dc.Stroke()
	}

	dc.SetColor(r.palette.Ground)
	dc.DrawRectangle(f.margin, f.baseline, float64(f.length)*f.cell, f.cell/2)
	dc.Fill()
	dc.SetColor(r.palette.Fill(building.Playground))
	for _, b := range s.Buildings() {
		if b.Category == building.Playground {
			dc.DrawRectangle(f.tick(b.Left), f.baseline, float64(b.Length)*f.cell, f.cell/2)
			dc.Fill()
		}
	}

	dc.SetColor(r.palette.Text)
	top := f.baseline + f.cell/2
	for _, k := range f.ticks() {
		x := f.tick(k)
		dc.DrawLine(x, top, x, top+f.cell/2)
		dc.Stroke()
		dc.DrawStringAnchored(strconv.Itoa(k), x, top+1.5*f.cell, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
