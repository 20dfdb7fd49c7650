package street

import "github.com/matzehuels/skyline/pkg/building"

// Cell is one street position of the height profile.
type Cell struct {
	Height     int               // effective height (meters / 2), 0 if empty
	BuildingID string            // building that sets Height, empty if none
	Category   building.Category // category of that building, 0 if none
}

// Coverage returns one Cell per street position.
//
// Row1 is written first; a row2 building replaces a cell only if it is
// strictly taller. Playgrounds have height 0 and never claim a cell.
func (s *Street) Coverage() []Cell {
	cells := make([]Cell, s.length)
	for _, b := range s.rows[0] {
		h := b.EffectiveHeight()
		for i := b.Left; i <= b.Right() && i < len(cells); i++ {
			cells[i] = Cell{Height: h, BuildingID: b.ID, Category: b.Category}
		}
	}
	for _, b := range s.rows[1] {
		h := b.EffectiveHeight()
		for i := b.Left; i <= b.Right() && i < len(cells); i++ {
			if h > cells[i].Height {
				cells[i] = Cell{Height: h, BuildingID: b.ID, Category: b.Category}
			}
		}
	}
	for i := range cells {
		if cells[i].Height == 0 {
			cells[i] = Cell{}
		}
	}
	return cells
}

// Profile returns the effective height at every street position.
func (s *Street) Profile() []int {
	cells := s.Coverage()
	profile := make([]int, len(cells))
	for i, c := range cells {
		profile[i] = c.Height
	}
	return profile
}

// MaxHeight returns the tallest effective height on the street.
func (s *Street) MaxHeight() int {
	return MaxOf(s.Profile())
}

// MaxOf returns the largest value in profile, or 0 for an empty profile.
func MaxOf(profile []int) int {
	m := 0
	for _, h := range profile {
		if h > m {
			m = h
		}
	}
	return m
}
