// Package io reads and writes street files in JSON, YAML and TOML.
//
// # Overview
//
// A street file stores the street length and both rows. It is the format
// used by `skyline import` and `skyline export`, and the encoding the
// storage backends keep on disk and in databases.
//
// # File Format
//
// The same structure is used for all three encodings. In YAML:
//
//	name: main
//	length: 40
//	row1:
//	  - id: 7f9c2b1e-4d7a-4d62-9a8f-0b1f0c1b2a3d
//	    category: house
//	    left: 2
//	    length: 4
//	    height: 10
//	    rooms: 3
//	    color: red
//	    owner: ann
//	row2:
//	  - category: playground
//	    left: 10
//	    length: 8
//
// # Building Fields
//
// Required:
//   - category: house, office, market or playground
//   - left, length: position and extent in meters
//
// Optional:
//   - id: identifier (a UUID is generated if omitted)
//   - height: meters, even; omitted for playgrounds
//   - owner, color, rooms: house attributes
//   - business: office attribute
//   - opening, closing: market hours as hh:mm
//
// # Import
//
// [ImportStreet] picks the format from the file extension (.json, .yaml,
// .yml, .toml); [ReadStreet] reads from any io.Reader:
//
//	s, name, err := io.ImportStreet("main.yaml")
//
// Import replays every building through the street, so overlapping,
// out-of-range or malformed buildings are rejected with the same coded
// errors as interactive edits, naming the offending row and building.
//
// # Export
//
//	err := io.ExportStreet(s, "main", "main.toml")
//
// Identifiers are written out, so a round trip keeps building identity.
package io
