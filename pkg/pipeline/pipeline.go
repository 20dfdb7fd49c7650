// Package pipeline provides the street operations shared by the CLI and the
// HTTP API.
//
// This package implements the load → mutate → save cycle over a [store.Store]
// and the render stage over the silhouette sinks, with an artifact cache in
// front of it. By centralizing this logic, both entry points validate, log and
// report errors the same way.
//
// # Architecture
//
// A [Runner] has two halves:
//
//  1. Edit: Create, Add, Remove and Delete load a street from the store,
//     apply one change and put it back. The street's own checks decide whether
//     the change is allowed.
//  2. Render: produce one artifact per requested format, from the cache when
//     the street and options are unchanged.
//
// # Usage
//
// Create a Runner and edit a street:
//
//	runner := pipeline.NewRunner(st, cache, nil, logger)
//	if _, err := runner.Create(ctx, "main", 40); err != nil {
//	    log.Fatal(err)
//	}
//	house, _ := building.NewHouse(2, 4, 10, 3, "red", "ann")
//	s, err := runner.Add(ctx, "main", street.Row1, house)
//
// Render it:
//
//	artifacts, hit, err := runner.Render(ctx, s, pipeline.Options{
//	    Formats: []sink.Format{sink.FormatText, sink.FormatSVG},
//	})
//	svg := artifacts[sink.FormatSVG]
package pipeline

import (
	"slices"

	"github.com/matzehuels/skyline/pkg/cache"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/render/silhouette/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFormat is rendered when no format is requested.
	DefaultFormat = sink.FormatText

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// MaxScale bounds the PNG scale factor so a request cannot allocate an
	// arbitrarily large image.
	MaxScale = 8.0
)

// =============================================================================
// Options - Render Configuration
// =============================================================================

// Options configures [Runner.Render].
// This struct supports JSON serialization for API requests.
type Options struct {
	// Formats lists the artifacts to produce. Defaults to [DefaultFormat].
	Formats []sink.Format `json:"formats,omitempty"`

	// Name labels SVG, JSON and DOT output, typically the street name.
	Name string `json:"name,omitempty"`

	// Scale is the PNG scale factor. Defaults to [DefaultScale].
	Scale float64 `json:"scale,omitempty"`

	// NoHeader drops the title lines from text output.
	NoHeader bool `json:"no_header,omitempty"`

	// Detailed adds heights, owners and gaps to the DOT street plan.
	Detailed bool `json:"detailed,omitempty"`

	// Refresh skips the cache lookup; fresh artifacts are still stored.
	Refresh bool `json:"refresh,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Artifacts maps each rendered format to its bytes.
type Artifacts map[sink.Format][]byte

// ValidateFormat checks that a format is one the runner can render.
func ValidateFormat(f sink.Format) error {
	if !slices.Contains(sink.Formats, f) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: text, svg, png, json, dot)", f)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []sink.Format) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []sink.Format{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %g out of range (0, %g]", o.Scale, MaxScale)
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one format. Only the options
// that change that format's bytes are included, so a text render is shared
// between requests that differ in PNG scale.
func (o *Options) ArtifactKeyOpts(f sink.Format) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: string(f)}
	switch f {
	case sink.FormatText:
		opts.Header = !o.NoHeader
	case sink.FormatPNG:
		opts.Scale = o.Scale
	case sink.FormatSVG, sink.FormatJSON:
		opts.Title = o.Name
	case sink.FormatDOT:
		opts.Title = o.Name
		opts.Detailed = o.Detailed
	}
	return opts
}
