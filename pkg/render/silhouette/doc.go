// Package silhouette draws the skyline of a street as ASCII art.
//
// # Overview
//
// The silhouette is computed from a height profile: one effective height per
// street position, as returned by [street.Street.Profile]. [Render] prints a
// fixed header, one grid row per height level from the tallest down to the
// ground, and a ruler with the position of every fifth meter.
//
// # Grid
//
// Each grid cell is one of four glyphs:
//
//	#  ground (the bottom row, always full)
//	_  roof (the column's height equals the row)
//	|  wall (the column rises above the row and a neighbour does not)
//	   empty
//
// The first and last columns draw a wall whenever they rise above the row.
//
// # Usage
//
//	fmt.Print(silhouette.RenderStreet(s))
//
// [Grid] and [Ruler] expose the pieces separately for sinks that lay out the
// text themselves.
//
// [street.Street.Profile]: github.com/matzehuels/skyline/pkg/street.Street.Profile
package silhouette
