package sink

import (
	"encoding/json"

	"github.com/matzehuels/skyline/pkg/render/silhouette"
	"github.com/matzehuels/skyline/pkg/street"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	grid bool
	name string
}

// WithJSONGrid includes the ASCII grid rows in the output.
func WithJSONGrid() JSONOption { return func(r *jsonRenderer) { r.grid = true } }

// WithJSONName records the street name.
func WithJSONName(name string) JSONOption { return func(r *jsonRenderer) { r.name = name } }

type jsonOutput struct {
	Name      string     `json:"name,omitempty"`
	Length    int        `json:"length"`
	MaxHeight int        `json:"max_height"`
	Profile   []int      `json:"profile"`
	Spans     []jsonSpan `json:"spans"`
	Rows      []jsonRow  `json:"rows"`
	Grid      []string   `json:"grid,omitempty"`
}

type jsonSpan struct {
	Left       int    `json:"left"`
	Right      int    `json:"right"`
	Height     int    `json:"height"`
	BuildingID string `json:"building_id"`
	Category   string `json:"category"`
}

type jsonRow struct {
	Row       string         `json:"row"`
	Buildings []jsonBuilding `json:"buildings"`
}

type jsonBuilding struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Left     int    `json:"left"`
	Right    int    `json:"right"`
	Height   int    `json:"height"`
}

// RenderJSON exports the height profile, the visible spans and both rows as
// a pretty-printed JSON document. The profile is what the text renderer draws.
func RenderJSON(s *street.Street, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	profile := s.Profile()
	out := jsonOutput{
		Name:      r.name,
		Length:    s.Length(),
		MaxHeight: street.MaxOf(profile),
		Profile:   profile,
		Spans:     []jsonSpan{},
	}
	for _, sp := range spans(s) {
		out.Spans = append(out.Spans, jsonSpan{
			Left: sp.Left, Right: sp.Right, Height: sp.Height,
			BuildingID: sp.BuildingID, Category: sp.Category.String(),
		})
	}
	for _, row := range street.Rows {
		jr := jsonRow{Row: row.String(), Buildings: []jsonBuilding{}}
		for _, b := range s.Row(row) {
			jr.Buildings = append(jr.Buildings, jsonBuilding{
				ID: b.ID, Category: b.Category.String(),
				Left: b.Left, Right: b.Right(), Height: b.Height,
			})
		}
		out.Rows = append(out.Rows, jr)
	}
	if r.grid {
		out.Grid = silhouette.Grid(s.Length(), profile)
	}
	return json.MarshalIndent(out, "", "  ")
}
