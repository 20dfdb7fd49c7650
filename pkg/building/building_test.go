package building

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/skyline/pkg/errors"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"house", House, false},
		{"House", House, false},
		{" OFFICE ", Office, false},
		{"market", Market, false},
		{"playground", Playground, false},
		{"castle", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidCategory) {
				t.Errorf("ParseCategory(%q) code = %v", tt.input, errors.GetCode(err))
			}
		})
	}
}

func TestCategoryText(t *testing.T) {
	for _, c := range Categories {
		text, err := c.MarshalText()
		if err != nil {
			t.Fatalf("%v.MarshalText() error = %v", c, err)
		}
		var back Category
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if back != c {
			t.Errorf("UnmarshalText(%q) = %v, want %v", text, back, c)
		}
	}

	if _, err := Category(0).MarshalText(); err == nil {
		t.Error("MarshalText() of zero category should fail")
	}
	if got := Market.Title(); got != "Market" {
		t.Errorf("Title() = %q, want %q", got, "Market")
	}
}

func TestBuildingJSONCategory(t *testing.T) {
	b, err := NewOffice(0, 10, 20, "law", "ann")
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["category"] != "office" {
		t.Errorf("category = %v, want office", raw["category"])
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (Building, error)
		wantErr bool
	}{
		{"house", func() (Building, error) { return NewHouse(0, 10, 20, 3, "red", "ann") }, false},
		{"house no rooms", func() (Building, error) { return NewHouse(0, 10, 20, 0, "red", "ann") }, true},
		{"house too short", func() (Building, error) { return NewHouse(0, 3, 20, 1, "", "") }, true},
		{"house too long", func() (Building, error) { return NewHouse(0, 41, 20, 1, "", "") }, true},
		{"house odd height", func() (Building, error) { return NewHouse(0, 10, 21, 1, "", "") }, true},
		{"house too tall", func() (Building, error) { return NewHouse(0, 10, 62, 1, "", "") }, true},
		{"office", func() (Building, error) { return NewOffice(5, 40, 60, "bank", "bo") }, false},
		{"office negative left", func() (Building, error) { return NewOffice(-1, 10, 20, "", "") }, true},
		{"market", func() (Building, error) { return NewMarket(0, 80, 12, "08:00", "20:00", "cy") }, false},
		{"market too tall", func() (Building, error) { return NewMarket(0, 10, 14, "08:00", "20:00", "") }, true},
		{"market bad hours", func() (Building, error) { return NewMarket(0, 10, 10, "8am", "20:00", "") }, true},
		{"playground", func() (Building, error) { return NewPlayground(0, 120) }, false},
		{"playground too long", func() (Building, error) { return NewPlayground(0, 121) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.build()
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.IsValidation(err) {
					t.Errorf("error kind = %v, want validation", errors.KindOf(err))
				}
				return
			}
			if b.ID == "" {
				t.Error("constructor should assign an ID")
			}
		})
	}
}

func TestSpan(t *testing.T) {
	a := Building{ID: "a", Category: House, Left: 2, Length: 4}
	if got := a.Right(); got != 5 {
		t.Errorf("Right() = %d, want 5", got)
	}

	tests := []struct {
		name string
		o    Building
		want bool
	}{
		{"strictly left", Building{Left: 0, Length: 2}, false},
		{"touching left edge", Building{Left: 0, Length: 3}, true},
		{"inside", Building{Left: 3, Length: 1}, true},
		{"covering", Building{Left: 0, Length: 10}, true},
		{"touching right edge", Building{Left: 5, Length: 4}, true},
		{"strictly right", Building{Left: 6, Length: 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.o); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.o.Overlaps(a); got != tt.want {
				t.Errorf("reverse Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClone(t *testing.T) {
	b, err := NewHouse(1, 8, 10, 2, "blue", "dee")
	if err != nil {
		t.Fatal(err)
	}
	c := b.Clone()
	if c.ID == b.ID {
		t.Error("Clone() should assign a new ID")
	}
	c.ID = b.ID
	if c != b {
		t.Errorf("Clone() changed attributes: %+v vs %+v", c, b)
	}
}

func TestEffectiveHeight(t *testing.T) {
	b := Building{Height: 10}
	if got := b.EffectiveHeight(); got != 5 {
		t.Errorf("EffectiveHeight() = %d, want 5", got)
	}
}

func TestValidateZeroLength(t *testing.T) {
	b := Building{ID: "x", Category: Office}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() on zero-length building = %v, want nil", err)
	}
	b.ID = ""
	if err := b.Validate(); err == nil {
		t.Error("Validate() without ID should fail")
	}
}
