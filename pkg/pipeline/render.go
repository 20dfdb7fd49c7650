package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/render/nodelink"
	"github.com/matzehuels/skyline/pkg/render/silhouette/sink"
	"github.com/matzehuels/skyline/pkg/street"
)

// Render generates output artifacts in the requested formats without the
// cache. Options must already be validated.
func Render(ctx context.Context, s *street.Street, opts Options) (Artifacts, error) {
	artifacts := make(Artifacts, len(opts.Formats))
	for _, f := range opts.Formats {
		data, err := RenderFormat(ctx, s, f, opts)
		if err != nil {
			return nil, err
		}
		artifacts[f] = data
	}
	return artifacts, nil
}

// RenderFormat produces a single artifact.
func RenderFormat(ctx context.Context, s *street.Street, f sink.Format, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch f {
	case sink.FormatText:
		var textOpts []sink.TextOption
		if opts.NoHeader {
			textOpts = append(textOpts, sink.WithoutHeader())
		}
		data = sink.RenderText(s, textOpts...)
	case sink.FormatSVG:
		data = sink.RenderSVG(s, sink.WithTitle(opts.Name))
	case sink.FormatPNG:
		data, err = sink.RenderPNG(s, sink.WithScale(opts.Scale))
	case sink.FormatJSON:
		data, err = sink.RenderJSON(s, sink.WithJSONName(opts.Name), sink.WithJSONGrid())
	case sink.FormatDOT:
		data = []byte(nodelink.ToDOT(s, nodelink.Options{Detailed: opts.Detailed, Title: opts.Name}))
	default:
		return nil, ValidateFormat(f)
	}

	if err != nil {
		return nil, fmt.Errorf("render %s: %w", f, err)
	}
	return data, ctx.Err()
}

// PlanFormats are the image formats of the Graphviz street plan.
var PlanFormats = []sink.Format{sink.FormatSVG, sink.FormatPNG}

// RenderPlan lays out the DOT street plan with Graphviz and returns it as an
// SVG or PNG image.
func RenderPlan(ctx context.Context, s *street.Street, f sink.Format, opts Options) ([]byte, error) {
	dot := nodelink.ToDOT(s, nodelink.Options{Detailed: opts.Detailed, Title: opts.Name})
	switch f {
	case sink.FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case sink.FormatPNG:
		return nodelink.RenderPNG(ctx, dot)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "street plan format %q (must be svg or png)", f)
	}
}
