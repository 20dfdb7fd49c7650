// Package pkg provides the core libraries for Skyline street modeling.
//
// # Overview
//
// Skyline models a street as two rows of buildings facing each other. Each
// building is a house, office, market or playground with its own size limits,
// and a street accepts a building only when it fits inside the street and
// overlaps nothing on its row. The street's silhouette, the skyline seen from
// the road, can be drawn as text or exported as an image.
//
// The pkg directory is organized into these areas:
//
//  1. Domain: [building] and [street] hold the data model and its checks.
//  2. Rendering: [render] draws silhouettes and Graphviz street plans.
//  3. Infrastructure: [io] reads and writes street files, [store] persists
//     named streets, [cache] keeps rendered artifacts.
//  4. Orchestration: [pipeline] runs load, mutate, save and render for the
//     CLI and the HTTP API.
//  5. Support: [errors], [observability] and [buildinfo].
//
// # Architecture
//
// The typical data flow:
//
//	street file / store / CLI flags
//	         ↓
//	    [building] (construct and validate)
//	         ↓
//	    [street] (add, remove, aggregate queries, height profile)
//	         ↓
//	    [render] (silhouette text, SVG, PNG, JSON, DOT)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/skyline/pkg/building"
//	    "github.com/matzehuels/skyline/pkg/render/silhouette"
//	    "github.com/matzehuels/skyline/pkg/street"
//	)
//
//	s, _ := street.New(40)
//	house, _ := building.NewHouse(0, 6, 12, 3, "red", "ann")
//	if err := s.AddBuilding(street.Row1, house); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(silhouette.RenderStreet(s))
//
// # Errors
//
// Every failure is an [errors.Error] with a code. State errors mean the
// street or building is not configured yet; validation errors mean the
// arguments were rejected. Neither is fatal.
//
// [building]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/building
// [street]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/street
// [render]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/io
// [store]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/store
// [cache]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/errors
// [errors.Error]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/errors#Error
// [observability]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/buildinfo
package pkg
