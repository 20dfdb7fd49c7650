package street

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/errors"
)

func house(id string, left, length, height int) building.Building {
	return building.Building{ID: id, Category: building.House, Left: left, Length: length, Height: height, Rooms: 1}
}

func playground(id string, left, length int) building.Building {
	return building.Building{ID: id, Category: building.Playground, Left: left, Length: length}
}

func mustStreet(t *testing.T, length int) *Street {
	t.Helper()
	s, err := New(length)
	if err != nil {
		t.Fatalf("New(%d) error = %v", length, err)
	}
	return s
}

func ids(bs []building.Building) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return out
}

func TestNewLengthBounds(t *testing.T) {
	for length := MinLength; length <= MaxLength; length++ {
		s, err := New(length)
		if err != nil {
			t.Fatalf("New(%d) error = %v", length, err)
		}
		if s.Length() != length {
			t.Errorf("Length() = %d, want %d", s.Length(), length)
		}
	}

	for _, length := range []int{-1, 0, 19, 151, 1000} {
		_, err := New(length)
		if err == nil {
			t.Errorf("New(%d) should fail", length)
			continue
		}
		if !errors.Is(err, errors.ErrCodeInvalidLength) || !errors.IsValidation(err) {
			t.Errorf("New(%d) error = %v, want INVALID_LENGTH validation error", length, err)
		}
	}
}

func TestUnconfiguredStreet(t *testing.T) {
	var s Street

	err := s.AddBuilding(Row1, house("a", 0, 4, 4))
	if !errors.Is(err, errors.ErrCodeStreetUnconfigured) || !errors.IsState(err) {
		t.Errorf("AddBuilding() on zero street = %v, want STREET_UNCONFIGURED", err)
	}

	err = s.RemoveBuilding(Row1, "a")
	if !errors.Is(err, errors.ErrCodeStreetUnconfigured) {
		t.Errorf("RemoveBuilding() on zero street = %v, want STREET_UNCONFIGURED", err)
	}

	if got := s.PlaygroundRatio(); got != 0 {
		t.Errorf("PlaygroundRatio() = %v, want 0", got)
	}

	if err := s.SetLength(30); err != nil {
		t.Fatalf("SetLength(30) error = %v", err)
	}
	if err := s.AddBuilding(Row1, house("a", 0, 4, 4)); err != nil {
		t.Errorf("AddBuilding() after SetLength = %v", err)
	}
}

func TestAddBuilding(t *testing.T) {
	tests := []struct {
		name     string
		existing []building.Building
		row      RowID
		add      building.Building
		wantCode errors.Code
	}{
		{
			name: "empty row",
			row:  Row1,
			add:  house("a", 2, 4, 10),
		},
		{
			name:     "non-overlapping right",
			existing: []building.Building{house("a", 0, 4, 4)},
			row:      Row1,
			add:      house("b", 4, 4, 4),
		},
		{
			name:     "non-overlapping left",
			existing: []building.Building{house("a", 10, 4, 4)},
			row:      Row1,
			add:      house("b", 5, 5, 4),
		},
		{
			name:     "overlap shared edge",
			existing: []building.Building{house("a", 0, 4, 4)},
			row:      Row1,
			add:      house("b", 3, 4, 4),
			wantCode: errors.ErrCodeOverlap,
		},
		{
			name:     "overlap contained",
			existing: []building.Building{house("a", 0, 10, 4)},
			row:      Row1,
			add:      house("b", 2, 4, 4),
			wantCode: errors.ErrCodeOverlap,
		},
		{
			name:     "overlap covering",
			existing: []building.Building{house("a", 5, 4, 4)},
			row:      Row1,
			add:      house("b", 0, 20, 4),
			wantCode: errors.ErrCodeOverlap,
		},
		{
			name:     "other row is independent",
			existing: []building.Building{house("a", 0, 10, 4)},
			row:      Row2,
			add:      house("b", 0, 10, 4),
		},
		{
			name:     "duplicate id same row",
			existing: []building.Building{house("a", 0, 4, 4)},
			row:      Row1,
			add:      house("a", 10, 4, 4),
			wantCode: errors.ErrCodeDuplicate,
		},
		{
			name:     "duplicate id other row",
			existing: []building.Building{house("a", 0, 4, 4)},
			row:      Row2,
			add:      house("a", 10, 4, 4),
			wantCode: errors.ErrCodeDuplicate,
		},
		{
			name:     "longer than street",
			row:      Row1,
			add:      playground("p", 0, 21),
			wantCode: errors.ErrCodeOutOfRange,
		},
		{
			name:     "past the end on empty row",
			row:      Row1,
			add:      house("a", 17, 4, 4),
			wantCode: errors.ErrCodeOutOfRange,
		},
		{
			name:     "past the end on busy row",
			existing: []building.Building{house("a", 0, 4, 4)},
			row:      Row1,
			add:      house("b", 18, 4, 4),
			wantCode: errors.ErrCodeOutOfRange,
		},
		{
			name:     "start far past the end",
			row:      Row1,
			add:      house("a", math.MaxInt-1, 4, 4),
			wantCode: errors.ErrCodeOutOfRange,
		},
		{
			name:     "start at the end",
			existing: []building.Building{house("a", 0, 4, 4)},
			row:      Row1,
			add:      house("b", 20, 4, 4),
			wantCode: errors.ErrCodeOutOfRange,
		},
		{
			name: "flush with the end",
			row:  Row1,
			add:  house("a", 16, 4, 4),
		},
		{
			name:     "zero length",
			row:      Row1,
			add:      building.Building{ID: "z", Category: building.Office},
			wantCode: errors.ErrCodeBuildingUnconfigured,
		},
		{
			name:     "invalid row",
			row:      RowID(3),
			add:      house("a", 0, 4, 4),
			wantCode: errors.ErrCodeInvalidRow,
		},
		{
			name:     "category limits",
			row:      Row1,
			add:      house("a", 0, 4, 5),
			wantCode: errors.ErrCodeInvalidBuilding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustStreet(t, 20)
			for _, b := range tt.existing {
				if err := s.AddBuilding(Row1, b); err != nil {
					t.Fatalf("setup AddBuilding(%s) error = %v", b.ID, err)
				}
			}

			err := s.AddBuilding(tt.row, tt.add)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("AddBuilding() error = %v", err)
				}
				got, row, ok := s.Building(tt.add.ID)
				if !ok || row != tt.row || got != tt.add {
					t.Errorf("Building(%s) = %v, %v, %v; want added building on %v", tt.add.ID, got, row, ok, tt.row)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("AddBuilding() error = %v, want code %s", err, tt.wantCode)
			}
			if s.Len(Row1)+s.Len(Row2) != len(tt.existing) {
				t.Error("failed AddBuilding() must not change the street")
			}
		})
	}
}

func TestAddBuildingMessageNamesBuilding(t *testing.T) {
	s := mustStreet(t, 20)
	_ = s.AddBuilding(Row1, house("first", 0, 6, 4))
	err := s.AddBuilding(Row1, house("second", 2, 4, 4))
	msg := errors.UserMessage(err)
	for _, want := range []string{"first", "second"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q should mention %q", msg, want)
		}
	}
}

func TestRemoveBuilding(t *testing.T) {
	t.Run("empty row", func(t *testing.T) {
		s := mustStreet(t, 20)
		err := s.RemoveBuilding(Row2, "a")
		if !errors.Is(err, errors.ErrCodeEmptyRow) || !errors.IsState(err) {
			t.Errorf("RemoveBuilding() = %v, want EMPTY_ROW", err)
		}
	})

	t.Run("not present", func(t *testing.T) {
		s := mustStreet(t, 20)
		_ = s.AddBuilding(Row1, house("a", 0, 4, 4))
		_ = s.AddBuilding(Row2, house("b", 0, 4, 4))
		err := s.RemoveBuilding(Row1, "b")
		if !errors.Is(err, errors.ErrCodeBuildingNotFound) || !errors.IsValidation(err) {
			t.Errorf("RemoveBuilding() = %v, want BUILDING_NOT_FOUND", err)
		}
	})

	t.Run("sole building", func(t *testing.T) {
		s := mustStreet(t, 20)
		_ = s.AddBuilding(Row1, house("a", 0, 4, 4))
		if err := s.RemoveBuilding(Row1, "a"); err != nil {
			t.Fatalf("RemoveBuilding() error = %v", err)
		}
		if s.Len(Row1) != 0 {
			t.Errorf("Len(Row1) = %d, want 0", s.Len(Row1))
		}
	})

	t.Run("preserves order", func(t *testing.T) {
		s := mustStreet(t, 40)
		for i, id := range []string{"a", "b", "c", "d"} {
			if err := s.AddBuilding(Row1, house(id, 30-i*10, 4, 4)); err != nil {
				t.Fatal(err)
			}
		}
		if err := s.RemoveBuilding(Row1, "b"); err != nil {
			t.Fatalf("RemoveBuilding() error = %v", err)
		}
		got := ids(s.Row(Row1))
		want := []string{"a", "c", "d"}
		if len(got) != len(want) {
			t.Fatalf("Row(Row1) = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Row(Row1) = %v, want %v", got, want)
				break
			}
		}
	})
}

func TestRowIsACopy(t *testing.T) {
	s := mustStreet(t, 20)
	_ = s.AddBuilding(Row1, house("a", 0, 4, 4))
	row := s.Row(Row1)
	row[0].Height = 60
	if b, _, _ := s.Building("a"); b.Height != 4 {
		t.Errorf("mutating Row() result changed the street: height = %d", b.Height)
	}
}

func TestSetLengthKeepsBuildingsInside(t *testing.T) {
	s := mustStreet(t, 40)
	_ = s.AddBuilding(Row2, house("a", 30, 5, 4))

	err := s.SetLength(30)
	if !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("SetLength(30) = %v, want OUT_OF_RANGE", err)
	}
	if s.Length() != 40 {
		t.Errorf("Length() = %d after failed SetLength, want 40", s.Length())
	}
	if err := s.SetLength(35); err != nil {
		t.Errorf("SetLength(35) = %v", err)
	}
}

func TestClone(t *testing.T) {
	s := mustStreet(t, 20)
	_ = s.AddBuilding(Row1, house("a", 0, 4, 4))
	c := s.Clone()
	_ = c.AddBuilding(Row1, house("b", 10, 4, 4))

	if s.Len(Row1) != 1 {
		t.Errorf("original Len(Row1) = %d, want 1", s.Len(Row1))
	}
	if c.Len(Row1) != 2 || c.Length() != 20 {
		t.Errorf("clone Len(Row1) = %d, Length() = %d", c.Len(Row1), c.Length())
	}
}

func TestParseRow(t *testing.T) {
	tests := []struct {
		input   string
		want    RowID
		wantErr bool
	}{
		{"1", Row1, false},
		{"row1", Row1, false},
		{"2", Row2, false},
		{" ROW2 ", Row2, false},
		{"3", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRow(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRow(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRow(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func office(id string, left, length, height int) building.Building {
	return building.Building{ID: id, Category: building.Office, Left: left, Length: length, Height: height}
}

func market(id string, left, length, height int) building.Building {
	return building.Building{ID: id, Category: building.Market, Left: left, Length: length, Height: height, Opening: "08:00", Closing: "18:00"}
}

func buildStreet(t *testing.T, length int, row1, row2 []building.Building) *Street {
	t.Helper()
	s := mustStreet(t, length)
	for _, b := range row1 {
		if err := s.AddBuilding(Row1, b); err != nil {
			t.Fatalf("AddBuilding(Row1, %s) error = %v", b.ID, err)
		}
	}
	for _, b := range row2 {
		if err := s.AddBuilding(Row2, b); err != nil {
			t.Fatalf("AddBuilding(Row2, %s) error = %v", b.ID, err)
		}
	}
	return s
}

func TestProfile(t *testing.T) {
	tests := []struct {
		name       string
		row1, row2 []building.Building
		want       []int
	}{
		{
			name: "empty",
			want: []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name: "single house halves its height",
			row1: []building.Building{house("a", 2, 4, 10)},
			want: []int{0, 0, 5, 5, 5, 5, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name: "taller second row wins",
			row1: []building.Building{house("a", 0, 6, 4)},
			row2: []building.Building{house("b", 2, 4, 10)},
			want: []int{2, 2, 5, 5, 5, 5, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name: "shorter second row only fills gaps",
			row1: []building.Building{house("a", 0, 4, 10)},
			row2: []building.Building{house("b", 0, 6, 4)},
			want: []int{5, 5, 5, 5, 2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name: "playgrounds add nothing",
			row1: []building.Building{playground("p", 0, 10)},
			row2: []building.Building{playground("q", 4, 8), house("a", 12, 4, 4)},
			want: []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 2, 2, 2, 0, 0, 0, 0},
		},
		{
			name: "last column",
			row2: []building.Building{market("m", 16, 4, 12)},
			want: []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 6, 6, 6, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := buildStreet(t, 20, tt.row1, tt.row2)
			got := s.Profile()
			if len(got) != len(tt.want) {
				t.Fatalf("len(Profile()) = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Profile() = %v, want %v", got, tt.want)
				}
			}
			if wantMax := MaxOf(tt.want); s.MaxHeight() != wantMax {
				t.Errorf("MaxHeight() = %d, want %d", s.MaxHeight(), wantMax)
			}
		})
	}
}

func TestCoverageTieKeepsRow1(t *testing.T) {
	s := buildStreet(t, 20,
		[]building.Building{house("a", 0, 4, 6)},
		[]building.Building{office("b", 0, 6, 6)},
	)
	cells := s.Coverage()
	for i := 0; i < 4; i++ {
		if cells[i].BuildingID != "a" || cells[i].Category != building.House || cells[i].Height != 3 {
			t.Errorf("Coverage()[%d] = %+v, want house a at height 3", i, cells[i])
		}
	}
	for i := 4; i < 6; i++ {
		if cells[i].BuildingID != "b" || cells[i].Category != building.Office {
			t.Errorf("Coverage()[%d] = %+v, want office b", i, cells[i])
		}
	}
	if cells[6] != (Cell{}) {
		t.Errorf("Coverage()[6] = %+v, want empty cell", cells[6])
	}
}

func TestReport(t *testing.T) {
	s := buildStreet(t, 40,
		[]building.Building{house("a", 0, 4, 10), playground("p", 5, 10), market("m", 20, 8, 6)},
		[]building.Building{office("o", 0, 12, 20), playground("q", 15, 5)},
	)

	rep := s.Report()
	if rep.Length != 40 || rep.Row1 != 3 || rep.Row2 != 2 {
		t.Errorf("Report() length/rows = %d, %d, %d", rep.Length, rep.Row1, rep.Row2)
	}
	if rep.RemainingLand != 2*40-(4+10+8+12+5) || rep.RemainingLand != s.RemainingLand() {
		t.Errorf("RemainingLand = %d, want 41", rep.RemainingLand)
	}
	if rep.PlaygroundCount != 2 || rep.PlaygroundRatio != 15.0/80 {
		t.Errorf("playgrounds = %d, ratio %g; want 2, %g", rep.PlaygroundCount, rep.PlaygroundRatio, 15.0/80)
	}
	if rep.MaxHeight != 10 {
		t.Errorf("MaxHeight = %d, want 10", rep.MaxHeight)
	}

	occupied := map[building.Category]int{
		building.House:      4,
		building.Office:     12,
		building.Market:     8,
		building.Playground: 15,
	}
	for c, want := range occupied {
		if got := s.OccupiedLandBy(c); got != want {
			t.Errorf("OccupiedLandBy(%s) = %d, want %d", c, got, want)
		}
		if rep.Occupied[c] != want {
			t.Errorf("Report().Occupied[%s] = %d, want %d", c, rep.Occupied[c], want)
		}
	}

	if err := s.RemoveBuilding(Row2, "o"); err != nil {
		t.Fatal(err)
	}
	if got := s.RemainingLand(); got != 53 {
		t.Errorf("RemainingLand() after removal = %d, want 53", got)
	}
}

func TestReportUnconfigured(t *testing.T) {
	var s Street
	if s.RemainingLand() != 0 || s.PlaygroundRatio() != 0 || s.PlaygroundCount() != 0 {
		t.Errorf("unconfigured street report = %+v", s.Report())
	}
	if len(s.Profile()) != 0 || s.MaxHeight() != 0 {
		t.Error("unconfigured street should have an empty profile")
	}
}
