package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/render/nodelink"
	"github.com/matzehuels/skyline/pkg/street"
)

func ExampleToDOT() {
	s, _ := street.New(20)
	_ = s.AddBuilding(street.Row1, building.Building{ID: "home", Category: building.House, Left: 2, Length: 4, Height: 10, Rooms: 3})

	dot := nodelink.ToDOT(s, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "row1_start" -> "home" [arrowhead=none, style=dotted];
	// "home" -> "row1_end" [arrowhead=none, style=dotted];
	// "row2_start" -> "row2_end" [arrowhead=none, style=dotted];
}
