package street

import "github.com/matzehuels/skyline/pkg/building"

// RemainingLand returns the land not covered by buildings on both sides:
// 2*length minus the sum of all building lengths.
func (s *Street) RemainingLand() int {
	total := 0
	for _, b := range s.Buildings() {
		total += b.Length
	}
	return 2*s.length - total
}

// PlaygroundCount returns the number of playgrounds on both rows.
func (s *Street) PlaygroundCount() int {
	n := 0
	for _, b := range s.Buildings() {
		if b.Category == building.Playground {
			n++
		}
	}
	return n
}

// PlaygroundRatio returns the playground length over the total land (2*length).
// An unconfigured street has ratio 0.
func (s *Street) PlaygroundRatio() float64 {
	if s.length == 0 {
		return 0
	}
	return float64(s.OccupiedLandBy(building.Playground)) / float64(2*s.length)
}

// OccupiedLandBy returns the total length of buildings of category c on both rows.
func (s *Street) OccupiedLandBy(c building.Category) int {
	total := 0
	for _, b := range s.Buildings() {
		if b.Category == c {
			total += b.Length
		}
	}
	return total
}

// Report is a snapshot of the street's aggregate statistics.
type Report struct {
	Length          int                       `json:"length"`
	Row1            int                       `json:"row1_buildings"`
	Row2            int                       `json:"row2_buildings"`
	RemainingLand   int                       `json:"remaining_land"`
	PlaygroundCount int                       `json:"playground_count"`
	PlaygroundRatio float64                   `json:"playground_ratio"`
	Occupied        map[building.Category]int `json:"occupied"`
	MaxHeight       int                       `json:"max_height"`
}

// Report computes every aggregate query at once.
func (s *Street) Report() Report {
	occupied := make(map[building.Category]int, len(building.Categories))
	for _, c := range building.Categories {
		occupied[c] = s.OccupiedLandBy(c)
	}
	return Report{
		Length:          s.length,
		Row1:            s.Len(Row1),
		Row2:            s.Len(Row2),
		RemainingLand:   s.RemainingLand(),
		PlaygroundCount: s.PlaygroundCount(),
		PlaygroundRatio: s.PlaygroundRatio(),
		Occupied:        occupied,
		MaxHeight:       s.MaxHeight(),
	}
}
