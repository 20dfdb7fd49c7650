package sink

import (
	"strings"

	"github.com/matzehuels/skyline/pkg/render/silhouette"
	"github.com/matzehuels/skyline/pkg/street"
)

// TextOption configures text rendering via [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	header bool
	ruler  bool
}

// WithoutHeader omits the "Skyline Silhouette of the Street" header.
func WithoutHeader() TextOption { return func(r *textRenderer) { r.header = false } }

// WithoutRuler omits the position ruler under the ground row.
func WithoutRuler() TextOption { return func(r *textRenderer) { r.ruler = false } }

// RenderText renders the ASCII silhouette. With no options the output equals
// [silhouette.RenderStreet].
func RenderText(s *street.Street, opts ...TextOption) []byte {
	r := textRenderer{header: true, ruler: true}
	for _, opt := range opts {
		opt(&r)
	}

	var b strings.Builder
	if r.header {
		b.WriteString(silhouette.Header)
	}
	for _, row := range silhouette.Grid(s.Length(), s.Profile()) {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	if r.ruler {
		b.WriteString(silhouette.Ruler(s.Length()))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
