package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/errors"
	streetio "github.com/matzehuels/skyline/pkg/io"
	"github.com/matzehuels/skyline/pkg/pipeline"
	"github.com/matzehuels/skyline/pkg/street"
)

// importCommand creates the "import" command.
func (c *CLI) importCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import FILE [NAME]",
		Short: "Store a street from a JSON, YAML or TOML street file",
		Long: `Store a street from a JSON, YAML or TOML street file.

Every building is added in file order with the same checks as "skyline add",
so a file with overlapping or out-of-range buildings is rejected with the
offending building named. NAME defaults to the file's name field, then to
the file name without extension.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, name, err := streetio.ImportStreet(args[0])
			if err != nil {
				return err
			}
			if len(args) == 2 {
				name = args[1]
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			ctx := cmd.Context()
			return c.withRunner(ctx, true, func(r *pipeline.Runner) error {
				if !force {
					if _, err := r.Load(ctx, name); err == nil {
						return errors.New(errors.ErrCodeInvalidInput, "street %q already exists (use --force to replace it)", name)
					}
				}
				if err := r.Save(ctx, name, s); err != nil {
					return err
				}
				printSuccess("Imported %s as %s", args[0], StyleHighlight.Render(name))
				printDetail("%d m, %d buildings", s.Length(), s.Len(street.Row1)+s.Len(street.Row2))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "replace an existing street of the same name")
	return cmd
}

// exportCommand creates the "export" command.
func (c *CLI) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export NAME FILE",
		Short: "Write a stored street to a JSON, YAML or TOML street file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withRunner(ctx, true, func(r *pipeline.Runner) error {
				s, err := r.Load(ctx, args[0])
				if err != nil {
					return err
				}
				if err := streetio.ExportStreet(s, args[0], args[1]); err != nil {
					return err
				}
				printSuccess("Exported %s", StyleHighlight.Render(args[0]))
				printFile(args[1])
				return nil
			})
		},
	}
}
