// Package street models a street as two rows of buildings.
//
// # Overview
//
// A [Street] has a fixed length between [MinLength] and [MaxLength] meters and
// two independent rows, [Row1] and [Row2], one per side. Each row keeps its
// buildings in insertion order.
//
// # Invariants
//
// [Street.AddBuilding] enforces, for every row:
//
//   - buildings do not overlap: each existing building must lie strictly left
//     or strictly right of the new one
//   - every covered position lies inside the street, [0, length)
//   - a building ID appears at most once across both rows
//
// Violations are reported as validation errors from pkg/errors. Mutating a
// street whose length was never set, or removing from an empty row, is a state
// error instead.
//
// # Height Profile
//
// [Street.Profile] derives, for each position, the taller of the two rows'
// building heights halved. Halving maps meters onto text rows, which are about
// twice as tall as they are wide. The profile is recomputed on every call and
// is what the silhouette renderer draws.
//
// # Basic Usage
//
//	s, _ := street.New(40)
//	house, _ := building.NewHouse(2, 4, 10, 3, "red", "ann")
//	if err := s.AddBuilding(street.Row1, house); err != nil {
//	    // errors.IsValidation(err) or errors.IsState(err)
//	}
//	fmt.Println(s.RemainingLand()) // 76
package street
