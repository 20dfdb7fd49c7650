package silhouette

import (
	"strconv"
	"strings"

	"github.com/matzehuels/skyline/pkg/street"
)

// Header opens every rendered silhouette.
const Header = "Skyline Silhouette of the Street\n\n\n"

// Glyphs used in the grid.
const (
	Ground = '#'
	Roof   = '_'
	Wall   = '|'
	Empty  = ' '
)

// RenderStreet renders the silhouette of s from its current height profile.
func RenderStreet(s *street.Street) string {
	return Render(s.Length(), s.Profile())
}

// Render renders the header, the grid and the ruler for a profile of the
// given length. Profile entries past len(profile) count as 0.
func Render(length int, profile []int) string {
	var b strings.Builder
	b.WriteString(Header)
	for _, row := range Grid(length, profile) {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	b.WriteString(Ruler(length))
	b.WriteByte('\n')
	return b.String()
}

// Grid returns the silhouette rows from the tallest row down to the ground
// row. It always has max(profile)+1 rows of exactly length characters.
func Grid(length int, profile []int) []string {
	p := normalize(length, profile)
	top := street.MaxOf(p)

	rows := make([]string, 0, top+1)
	line := make([]byte, length)
	for i := top; i >= 0; i-- {
		for j := range line {
			line[j] = glyph(p, i, j)
		}
		rows = append(rows, string(line))
	}
	return rows
}

// glyph decides the character at grid row i, column j.
//
// A wall is drawn where the column rises above row i and a neighbour on that
// side does not. The first and last columns have only one neighbour and draw
// a wall whenever they rise above i.
func glyph(p []int, i, j int) byte {
	h := p[j]
	switch {
	case i == 0:
		return Ground
	case h == 0:
		return Empty
	case h == i:
		return Roof
	case h < i:
		return Empty
	case j == 0 || j == len(p)-1:
		// An edge is decided by column index, never by comparing the
		// height to the street length.
		return Wall
	case h >= p[j+1] && p[j+1] <= i:
		return Wall
	case h >= p[j-1] && p[j-1] <= i:
		return Wall
	default:
		return Empty
	}
}

// Ruler returns the position scale printed under the grid, ending with
// " (meter)". Multiples of five print their value; other positions print a
// space unless a preceding two- or three-digit number already covers them,
// so every label starts at its own column.
func Ruler(length int) string {
	var b strings.Builder
	for k := 0; k <= length; k++ {
		switch {
		case k%5 == 0:
			b.WriteString(strconv.Itoa(k))
		case k < 10:
			b.WriteByte(' ')
		case k < 100:
			if k%5 != 1 {
				b.WriteByte(' ')
			}
		default:
			if k%5 != 1 && k%5 != 2 {
				b.WriteByte(' ')
			}
		}
	}
	b.WriteString(" (meter)")
	return b.String()
}

func normalize(length int, profile []int) []int {
	if length < 0 {
		length = 0
	}
	p := make([]int, length)
	copy(p, profile)
	for i, h := range p {
		if h < 0 {
			p[i] = 0
		}
	}
	return p
}
