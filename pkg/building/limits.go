package building

// Limits bounds the dimensions of a building category, in meters.
type Limits struct {
	MinLength int
	MaxLength int
	MinHeight int
	MaxHeight int
}

var categoryLimits = map[Category]Limits{
	House:      {MinLength: 4, MaxLength: 40, MinHeight: 4, MaxHeight: 60},
	Office:     {MinLength: 4, MaxLength: 40, MinHeight: 4, MaxHeight: 60},
	Market:     {MinLength: 4, MaxLength: 80, MinHeight: 4, MaxHeight: 12},
	Playground: {MinLength: 4, MaxLength: 120},
}

// LimitsFor returns the dimension limits of c. Unknown categories get zero limits.
func LimitsFor(c Category) Limits {
	return categoryLimits[c]
}
