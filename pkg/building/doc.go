// Package building defines the lots that line a street.
//
// A [Building] has a [Category] (house, office, market or playground), a left
// position, a length and a height in meters, plus a few attributes that only
// matter for reports (owner, color, rooms, business, opening hours).
//
// # Identity
//
// Every building carries an explicit string ID, generated with
// github.com/google/uuid by the constructors. Streets use the ID to detect
// duplicates and to find the building to remove, so a copied Building value is
// the same building, while [Building.Clone] creates a new one.
//
// # Limits
//
// Constructors enforce per-category limits (see [LimitsFor]):
//
//	house       length 4..40   height 4..60 (even)  rooms > 0
//	office      length 4..40   height 4..60 (even)
//	market      length 4..80   height 4..12 (even)  opening/closing "hh:mm"
//	playground  length 4..120  height 0
//
// Heights are even because the silhouette draws one text row per two meters.
package building
