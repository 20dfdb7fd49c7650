package silhouette_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/render/silhouette"
	"github.com/matzehuels/skyline/pkg/street"
)

func Example() {
	s, _ := street.New(20)
	house, _ := building.NewHouse(2, 4, 10, 3, "red", "ann")
	_ = s.AddBuilding(street.Row1, house)

	for _, row := range silhouette.Grid(s.Length(), s.Profile()) {
		fmt.Println(strings.TrimRight(row, " "))
	}
	fmt.Println(silhouette.Ruler(s.Length()))
	// Output:
	//   ____
	//   |  |
	//   |  |
	//   |  |
	//   |  |
	// ####################
	// 0    5    10   15   20 (meter)
}

func ExampleRuler() {
	fmt.Println(silhouette.Ruler(30))
	// Output: 0    5    10   15   20   25   30 (meter)
}

func ExampleGrid() {
	profile := []int{0, 2, 2, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	for _, row := range silhouette.Grid(len(profile), profile) {
		fmt.Printf("[%s]\n", row)
	}
	// Output:
	// [ __                 ]
	// [ ||__               ]
	// [####################]
}
