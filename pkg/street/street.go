package street

import (
	"slices"
	"strings"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/errors"
)

// Street length bounds in meters. The upper bound matches what fits on a
// terminal line; the ruler prints up to three-digit positions.
const (
	MinLength = 20
	MaxLength = 150
)

// RowID selects one side of the street.
type RowID int

const (
	Row1 RowID = iota + 1
	Row2
)

// Rows lists both sides in rendering order.
var Rows = []RowID{Row1, Row2}

// String returns "row1" or "row2".
func (r RowID) String() string {
	switch r {
	case Row1:
		return "row1"
	case Row2:
		return "row2"
	default:
		return "row?"
	}
}

// Ordinal returns "first" or "second", as used in user-facing messages.
func (r RowID) Ordinal() string {
	if r == Row2 {
		return "second"
	}
	return "first"
}

// Valid reports whether r names one of the two rows.
func (r RowID) Valid() bool { return r == Row1 || r == Row2 }

// ParseRow accepts "1", "2", "row1" and "row2".
func ParseRow(s string) (RowID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "row1":
		return Row1, nil
	case "2", "row2":
		return Row2, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidRow, "invalid row %q (want 1 or 2)", s)
}

// Street is a stretch of land with a row of buildings on each side.
//
// The zero value is an unconfigured street: every mutation fails with a
// state error until [Street.SetLength] succeeds. Street is not safe for
// concurrent use without external synchronization.
type Street struct {
	length int
	rows   [2][]building.Building
}

// New creates an empty street of the given length.
// Returns an INVALID_LENGTH error if length is outside [MinLength, MaxLength].
func New(length int) (*Street, error) {
	s := &Street{}
	if err := s.SetLength(length); err != nil {
		return nil, err
	}
	return s, nil
}

// SetLength configures the street length. It fails if length is out of
// bounds or if an existing building would end up past the end of the street.
func (s *Street) SetLength(length int) error {
	if length < MinLength || length > MaxLength {
		return errors.New(errors.ErrCodeInvalidLength, "illegal length %d for the street [%d,%d]", length, MinLength, MaxLength)
	}
	for _, b := range s.Buildings() {
		if !fits(b, length) {
			return errors.New(errors.ErrCodeOutOfRange, "building %s ends at %d, past the new street length %d", b.ID, b.Right(), length)
		}
	}
	s.length = length
	return nil
}

// Length returns the street length, or 0 if unconfigured.
func (s *Street) Length() int { return s.length }

// Configured reports whether a valid length has been set.
func (s *Street) Configured() bool { return s.length > 0 }

// Row returns a copy of the buildings in r, in insertion order.
// Invalid rows yield nil.
func (s *Street) Row(r RowID) []building.Building {
	if !r.Valid() {
		return nil
	}
	return slices.Clone(s.rows[r-1])
}

// Len returns the number of buildings in r.
func (s *Street) Len(r RowID) int {
	if !r.Valid() {
		return 0
	}
	return len(s.rows[r-1])
}

// Buildings returns all buildings, row1 first, each row in insertion order.
func (s *Street) Buildings() []building.Building {
	return slices.Concat(s.rows[0], s.rows[1])
}

// Building looks up a building by ID across both rows.
func (s *Street) Building(id string) (building.Building, RowID, bool) {
	for _, r := range Rows {
		if i := s.indexOf(r, id); i >= 0 {
			return s.rows[r-1][i], r, true
		}
	}
	return building.Building{}, 0, false
}

// Contains reports whether a building with the given ID is on either row.
func (s *Street) Contains(id string) bool {
	_, _, ok := s.Building(id)
	return ok
}

func (s *Street) indexOf(r RowID, id string) int {
	return slices.IndexFunc(s.rows[r-1], func(b building.Building) bool { return b.ID == id })
}

// AddBuilding appends b to row r.
//
// Checks run in order and the first failure is returned:
//   - STREET_UNCONFIGURED (state) if the street length is unset
//   - INVALID_ROW if r is not Row1 or Row2
//   - BUILDING_UNCONFIGURED (state) if b has no length
//   - INVALID_BUILDING / INVALID_CATEGORY if b fails [building.Building.Validate]
//   - DUPLICATE_BUILDING if b.ID is already on either row
//   - OVERLAP if an existing building in r is not strictly left or right of b
//   - OUT_OF_RANGE if b does not fit inside the street
func (s *Street) AddBuilding(r RowID, b building.Building) error {
	if err := s.checkAdd(r, b); err != nil {
		return err
	}
	s.rows[r-1] = append(s.rows[r-1], b)
	return nil
}

func (s *Street) checkAdd(r RowID, b building.Building) error {
	if !s.Configured() {
		return errors.New(errors.ErrCodeStreetUnconfigured, "set length of the street first [%d,%d]", MinLength, MaxLength)
	}
	if !r.Valid() {
		return errors.New(errors.ErrCodeInvalidRow, "invalid row %d", int(r))
	}
	if b.Length <= 0 {
		return errors.New(errors.ErrCodeBuildingUnconfigured, "set length of building first - %s", b.ID)
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if s.Contains(b.ID) {
		return errors.New(errors.ErrCodeDuplicate, "building already added, make a clone or create another building - %s", b.ID)
	}

	row := s.rows[r-1]
	for _, other := range row {
		if b.Overlaps(other) {
			return errors.New(errors.ErrCodeOverlap, "invalid start position for new building, it overlaps %s - %s", other.ID, b.ID)
		}
	}
	if len(row) == 0 && b.Length > s.length {
		return errors.New(errors.ErrCodeOutOfRange, "invalid length for new building, check borders - %s", b.ID)
	}
	if !fits(b, s.length) {
		return errors.New(errors.ErrCodeOutOfRange, "invalid start position for new building, check borders - %s", b.ID)
	}
	return nil
}

// fits reports whether b lies within [0, length). It compares without adding
// so a huge Left cannot wrap around.
func fits(b building.Building, length int) bool {
	return b.Left >= 0 && b.Left < length && b.Length <= length-b.Left
}

// RemoveBuilding removes the building with the given ID from row r,
// preserving the order of the remaining buildings.
//
// Fails with STREET_UNCONFIGURED or EMPTY_ROW (state errors), INVALID_ROW,
// or BUILDING_NOT_FOUND when the ID is not on row r.
func (s *Street) RemoveBuilding(r RowID, id string) error {
	if !s.Configured() {
		return errors.New(errors.ErrCodeStreetUnconfigured, "set length of the street first [%d,%d]", MinLength, MaxLength)
	}
	if !r.Valid() {
		return errors.New(errors.ErrCodeInvalidRow, "invalid row %d", int(r))
	}
	if len(s.rows[r-1]) == 0 {
		return errors.New(errors.ErrCodeEmptyRow, "there is no building in the %s row", r.Ordinal())
	}
	i := s.indexOf(r, id)
	if i < 0 {
		return errors.New(errors.ErrCodeBuildingNotFound, "building cannot be removed, it does not exist in the %s row - %s", r.Ordinal(), id)
	}
	s.rows[r-1] = slices.Delete(s.rows[r-1], i, i+1)
	return nil
}

// Clone returns a deep copy of the street. Building IDs are kept.
func (s *Street) Clone() *Street {
	return &Street{
		length: s.length,
		rows:   [2][]building.Building{slices.Clone(s.rows[0]), slices.Clone(s.rows[1])},
	}
}
