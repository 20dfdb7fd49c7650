package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/errors"
	streetio "github.com/matzehuels/skyline/pkg/io"
	"github.com/matzehuels/skyline/pkg/pipeline"
	"github.com/matzehuels/skyline/pkg/render/silhouette/sink"
	"github.com/matzehuels/skyline/pkg/street"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file (single format) or base path (multiple)
	formats  string  // comma-separated output formats
	scale    float64 // PNG scale factor
	noHeader bool    // drop the title lines from text output
	detailed bool    // detailed DOT street plan
	noCache  bool    // bypass the artifact cache
}

// renderCommand creates the render command for drawing silhouettes.
//
// The argument is a street file (.json, .yaml, .yml, .toml) when such a file
// exists, otherwise the name of a stored street. Text output goes to stdout
// unless -o is given; every other format is written to a file.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render NAME|FILE",
		Short: "Draw the skyline silhouette of a street",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				opts.formats = c.cfg().Render.Format
			}
			if !cmd.Flags().Changed("scale") && c.cfg().Render.Scale > 0 {
				opts.scale = c.cfg().Render.Scale
			}
			formats, err := sink.ParseFormats(opts.formats)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], formats, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "text", "output format(s): text, svg, png, json, dot (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noHeader, "no-header", false, "omit the title lines from text output")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show heights, owners and gaps in the DOT plan")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render without the artifact cache")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(sink.Formats))
		for i, f := range sink.Formats {
			names[i] = string(f)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, formats []sink.Format, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	return c.withRunner(ctx, opts.noCache, func(r *pipeline.Runner) error {
		s, name, err := loadStreet(ctx, r, input)
		if err != nil {
			return err
		}
		logger.Debug("loaded street", "street", name, "length", s.Length(), "buildings", s.Len(street.Row1)+s.Len(street.Row2))

		artifacts, cached, err := r.Render(ctx, s, pipeline.Options{
			Formats:  formats,
			Name:     name,
			Scale:    opts.scale,
			NoHeader: opts.noHeader,
			Detailed: opts.detailed,
			Refresh:  opts.noCache,
		})
		if err != nil {
			return err
		}

		if len(formats) == 1 && formats[0] == sink.FormatText && opts.output == "" {
			_, err := os.Stdout.Write(artifacts[sink.FormatText])
			return err
		}

		base := basePath(opts.output, name)
		for _, f := range formats {
			path := base + "." + f.Ext()
			if len(formats) == 1 && opts.output != "" {
				path = opts.output
			}
			if err := writeOutput(path, artifacts[f]); err != nil {
				return err
			}
			printArtifact(path, cached)
		}
		prog.done("Rendered " + name)
		return nil
	})
}

// planCommand creates the plan command for Graphviz street plans.
func (c *CLI) planCommand() *cobra.Command {
	var (
		output, format string
		detailed       bool
		noCache        bool
	)

	cmd := &cobra.Command{
		Use:   "plan NAME|FILE",
		Short: "Draw the street plan of a street with Graphviz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := sink.ParseFormat(format)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return c.withRunner(ctx, noCache, func(r *pipeline.Runner) error {
				s, name, err := loadStreet(ctx, r, args[0])
				if err != nil {
					return err
				}
				prog := newProgress(loggerFromContext(ctx))
				data, cached, err := r.Plan(ctx, s, f, pipeline.Options{Name: name, Detailed: detailed, Refresh: noCache})
				if err != nil {
					return err
				}
				path := output
				if path == "" {
					path = name + "_plan." + f.Ext()
				}
				if err := writeOutput(path, data); err != nil {
					return err
				}
				printArtifact(path, cached)
				prog.done("Planned " + name)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default NAME_plan.FORMAT)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg or png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show heights, owners and gaps")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "render without the artifact cache")
	return cmd
}

// loadStreet reads input as a street file when one exists at that path,
// otherwise loads the stored street of that name. The returned name labels
// the output.
func loadStreet(ctx context.Context, r *pipeline.Runner, input string) (*street.Street, string, error) {
	if _, err := streetio.FormatFromPath(input); err == nil {
		if _, statErr := os.Stat(input); statErr == nil {
			s, name, err := streetio.ImportStreet(input)
			if err != nil {
				return nil, "", err
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			}
			return s, name, nil
		}
	}
	s, err := r.Load(ctx, input)
	if err != nil {
		return nil, "", err
	}
	return s, input, nil
}

// basePath strips a known output extension from output, or falls back to
// the street name.
func basePath(output, name string) string {
	if output == "" {
		return name
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if _, err := sink.ParseFormat(ext); err == nil && ext != "" {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "open output %s", path)
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
