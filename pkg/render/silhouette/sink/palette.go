package sink

import (
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/street"
)

// Palette defines how the graphical sinks colour a silhouette.
type Palette struct {
	Background color.Color
	Ground     color.Color
	Outline    color.Color
	Text       color.Color
	Categories map[building.Category]color.Color
}

// DefaultPalette returns the palette used when no other is given.
func DefaultPalette() *Palette {
	return &Palette{
		Background: colornames.White,
		Ground:     colornames.Dimgray,
		Outline:    colornames.Black,
		Text:       colornames.Darkslategray,
		Categories: map[building.Category]color.Color{
			building.House:      colornames.Indianred,
			building.Office:     colornames.Steelblue,
			building.Market:     colornames.Goldenrod,
			building.Playground: colornames.Lightgreen,
		},
	}
}

// Fill returns the colour for category c, falling back to light grey.
func (p *Palette) Fill(c building.Category) color.Color {
	if col, ok := p.Categories[c]; ok {
		return col
	}
	return colornames.Lightgray
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// span is a run of adjacent profile cells set by the same building.
type span struct {
	Left, Right int
	Height      int
	BuildingID  string
	Category    building.Category
}

func (s span) width() int { return s.Right - s.Left + 1 }

// spans merges the street's coverage into runs. Empty cells are skipped.
func spans(s *street.Street) []span {
	var out []span
	for i, c := range s.Coverage() {
		if c.Height == 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Right == i-1 && out[n-1].BuildingID == c.BuildingID {
			out[n-1].Right = i
			continue
		}
		out = append(out, span{Left: i, Right: i, Height: c.Height, BuildingID: c.BuildingID, Category: c.Category})
	}
	return out
}

// frame is the pixel geometry shared by the SVG and PNG sinks.
type frame struct {
	cell     float64
	margin   float64
	length   int
	maxH     int
	baseline float64
}

func newFrame(length, maxH int, cell float64) frame {
	margin := 2 * cell
	return frame{
		cell:     cell,
		margin:   margin,
		length:   length,
		maxH:     maxH,
		baseline: margin + float64(maxH)*cell,
	}
}

func (f frame) width() float64  { return float64(f.length)*f.cell + 2*f.margin }
func (f frame) height() float64 { return f.baseline + f.cell/2 + 2*f.cell + f.margin }

// rect returns x, y, w, h of a span.
func (f frame) rect(s span) (x, y, w, h float64) {
	x = f.margin + float64(s.Left)*f.cell
	h = float64(s.Height) * f.cell
	return x, f.baseline - h, float64(s.width()) * f.cell, h
}

// tick returns the x position of ruler mark k.
func (f frame) tick(k int) float64 { return f.margin + float64(k)*f.cell }

func (f frame) ticks() []int {
	var ks []int
	for k := 0; k <= f.length; k += 5 {
		ks = append(ks, k)
	}
	return ks
}
