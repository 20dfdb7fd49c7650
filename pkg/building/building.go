package building

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/skyline/pkg/errors"
)

// Category is the kind of a building. The zero value is not a valid category.
type Category int

const (
	House Category = iota + 1
	Office
	Market
	Playground
)

// Categories lists every valid category in display order.
var Categories = []Category{House, Office, Market, Playground}

var categoryNames = map[Category]string{
	House:      "house",
	Office:     "office",
	Market:     "market",
	Playground: "playground",
}

// String returns the lowercase category name, or "unknown".
func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "unknown"
}

// Title returns the capitalized category name used in reports.
func (c Category) Title() string {
	s := c.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory parses a category name, ignoring case.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidCategory, "unknown building category %q (want house, office, market or playground)", s)
}

// MarshalText encodes the category by name for JSON, YAML and TOML.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidCategory, "cannot encode category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Building is a single lot on one side of a street.
//
// Identity is the ID field: two buildings with equal fields but different IDs
// are different buildings. Copying a Building value keeps its identity; use
// [Building.Clone] for a distinct building with the same attributes.
type Building struct {
	ID       string   `json:"id" yaml:"id" toml:"id"`
	Category Category `json:"category" yaml:"category" toml:"category"`
	Left     int      `json:"left" yaml:"left" toml:"left"`
	Length   int      `json:"length" yaml:"length" toml:"length"`
	Height   int      `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`

	Owner    string `json:"owner,omitempty" yaml:"owner,omitempty" toml:"owner,omitempty"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Rooms    int    `json:"rooms,omitempty" yaml:"rooms,omitempty" toml:"rooms,omitempty"`
	Business string `json:"business,omitempty" yaml:"business,omitempty" toml:"business,omitempty"`
	Opening  string `json:"opening,omitempty" yaml:"opening,omitempty" toml:"opening,omitempty"`
	Closing  string `json:"closing,omitempty" yaml:"closing,omitempty" toml:"closing,omitempty"`
}

// NewID returns a fresh building identifier.
func NewID() string { return uuid.NewString() }

// NewHouse creates a house. Rooms must be positive.
func NewHouse(left, length, height, rooms int, color, owner string) (Building, error) {
	return newBuilding(Building{
		Category: House,
		Left:     left,
		Length:   length,
		Height:   height,
		Rooms:    rooms,
		Color:    color,
		Owner:    owner,
	})
}

// NewOffice creates an office building.
func NewOffice(left, length, height int, business, owner string) (Building, error) {
	return newBuilding(Building{
		Category: Office,
		Left:     left,
		Length:   length,
		Height:   height,
		Business: business,
		Owner:    owner,
	})
}

// NewMarket creates a market open from opening to closing ("hh:mm").
func NewMarket(left, length, height int, opening, closing, owner string) (Building, error) {
	return newBuilding(Building{
		Category: Market,
		Left:     left,
		Length:   length,
		Height:   height,
		Opening:  opening,
		Closing:  closing,
		Owner:    owner,
	})
}

// NewPlayground creates a playground. Playgrounds have no height.
func NewPlayground(left, length int) (Building, error) {
	return newBuilding(Building{
		Category: Playground,
		Left:     left,
		Length:   length,
	})
}

func newBuilding(b Building) (Building, error) {
	b.ID = NewID()
	if err := b.Validate(); err != nil {
		return Building{}, err
	}
	return b, nil
}

// Right returns the last street position covered by the building.
func (b Building) Right() int { return b.Left + b.Length - 1 }

// EffectiveHeight is the height in silhouette rows. A text cell is twice as
// tall as it is wide, so one row stands for two meters.
func (b Building) EffectiveHeight() int { return b.Height / 2 }

// Overlaps reports whether b and o share at least one street position.
func (b Building) Overlaps(o Building) bool {
	return !(b.Right() < o.Left || b.Left > o.Right())
}

// Clone returns a copy of b with a new identity.
func (b Building) Clone() Building {
	b.ID = NewID()
	return b
}

// Validate checks the identifier, the category and the category's limits.
// A building with zero length passes only the identifier and category checks;
// streets reject it separately as unconfigured.
func (b Building) Validate() error {
	if b.ID == "" {
		return errors.New(errors.ErrCodeInvalidBuilding, "building has no identifier")
	}
	if !b.Category.Valid() {
		return errors.New(errors.ErrCodeInvalidCategory, "building %s has unknown category %d", b.ID, int(b.Category))
	}
	if b.Left < 0 {
		return errors.New(errors.ErrCodeInvalidBuilding, "invalid position %d for building %s [>=0]", b.Left, b.ID)
	}
	if b.Length == 0 {
		return nil
	}

	lim := LimitsFor(b.Category)
	if b.Length < lim.MinLength || b.Length > lim.MaxLength {
		return errors.New(errors.ErrCodeInvalidBuilding, "invalid length %d for %s %s [%d, %d]",
			b.Length, b.Category, b.ID, lim.MinLength, lim.MaxLength)
	}
	if b.Category == Playground {
		if b.Height != 0 {
			return errors.New(errors.ErrCodeInvalidBuilding, "playground %s cannot have a height", b.ID)
		}
	} else if b.Height < lim.MinHeight || b.Height > lim.MaxHeight || b.Height%2 != 0 {
		return errors.New(errors.ErrCodeInvalidBuilding, "invalid height %d for %s %s [%d, %d - even]",
			b.Height, b.Category, b.ID, lim.MinHeight, lim.MaxHeight)
	}

	switch b.Category {
	case House:
		if b.Rooms <= 0 {
			return errors.New(errors.ErrCodeInvalidBuilding, "house %s needs at least one room", b.ID)
		}
	case Market:
		if err := errors.ValidateClock(b.Opening); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidBuilding, err, "market %s opening time", b.ID)
		}
		if err := errors.ValidateClock(b.Closing); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidBuilding, err, "market %s closing time", b.ID)
		}
	}
	return nil
}

// String formats the building on a single line.
func (b Building) String() string {
	var extra string
	switch b.Category {
	case House:
		extra = fmt.Sprintf(" rooms=%d color=%q owner=%q", b.Rooms, b.Color, b.Owner)
	case Office:
		extra = fmt.Sprintf(" business=%q owner=%q", b.Business, b.Owner)
	case Market:
		extra = fmt.Sprintf(" hours=%s-%s owner=%q", b.Opening, b.Closing, b.Owner)
	}
	return fmt.Sprintf("%s %s [%d,%d] height=%d%s", b.Category.Title(), ShortID(b.ID), b.Left, b.Right(), b.Height, extra)
}

// ShortID returns the first eight characters of an identifier.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
