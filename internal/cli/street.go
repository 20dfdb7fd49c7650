package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/pipeline"
	"github.com/matzehuels/skyline/pkg/street"
)

// buildingFields holds the attributes of a building before validation.
// Fields that do not apply to the category are ignored.
type buildingFields struct {
	left     int
	length   int
	height   int
	rooms    int
	color    string
	owner    string
	business string
	opening  string
	closing  string
}

// newBuilding validates f against the limits of category c.
func newBuilding(c building.Category, f buildingFields) (building.Building, error) {
	switch c {
	case building.House:
		return building.NewHouse(f.left, f.length, f.height, f.rooms, f.color, f.owner)
	case building.Office:
		return building.NewOffice(f.left, f.length, f.height, f.business, f.owner)
	case building.Market:
		return building.NewMarket(f.left, f.length, f.height, f.opening, f.closing, f.owner)
	default:
		return building.NewPlayground(f.left, f.length)
	}
}

// withRunner opens a runner for the duration of fn.
func (c *CLI) withRunner(ctx context.Context, noCache bool, fn func(*pipeline.Runner) error) error {
	r, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer r.Close()
	return fn(r)
}

// newCommand creates the "new" command.
func (c *CLI) newCommand() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "new NAME",
		Short: "Create an empty street",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("length") {
				length = c.cfg().DefaultLength
			}
			return c.withRunner(cmd.Context(), true, func(r *pipeline.Runner) error {
				if _, err := r.Create(cmd.Context(), args[0], length); err != nil {
					return err
				}
				printSuccess("Created street %s (%d m)", StyleHighlight.Render(args[0]), length)
				printNextStep("Add a building", fmt.Sprintf("skyline add %s --row 1 --category house ...", args[0]))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", 0, fmt.Sprintf("street length in meters [%d, %d] (default from config)", street.MinLength, street.MaxLength))
	return cmd
}

// addCommand creates the "add" command.
func (c *CLI) addCommand() *cobra.Command {
	var (
		rowStr, categoryStr string
		f                   buildingFields
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a building to a row of a street",
		Long: `Add a building to a row of a street.

Limits per category:
  house       length [4, 40]  height [4, 60] even  rooms > 0
  office      length [4, 40]  height [4, 60] even
  market      length [4, 80]  height [4, 12] even  --opening/--closing hh:mm
  playground  length [4, 120] no height`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := street.ParseRow(rowStr)
			if err != nil {
				return err
			}
			category, err := building.ParseCategory(categoryStr)
			if err != nil {
				return err
			}
			b, err := newBuilding(category, f)
			if err != nil {
				return err
			}
			return c.withRunner(cmd.Context(), true, func(r *pipeline.Runner) error {
				s, err := r.Add(cmd.Context(), args[0], row, b)
				if err != nil {
					return err
				}
				printSuccess("Building successfully added to %s row", row.Ordinal())
				printDetail("%s", b)
				printDetail("remaining land: %d m", s.RemainingLand())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&rowStr, "row", "r", "1", "row: 1 or 2")
	cmd.Flags().StringVarP(&categoryStr, "category", "c", "house", "house, office, market or playground")
	cmd.Flags().IntVar(&f.left, "left", 0, "position of the leftmost meter")
	cmd.Flags().IntVar(&f.length, "length", 0, "length in meters")
	cmd.Flags().IntVar(&f.height, "height", 0, "height in meters (even)")
	cmd.Flags().IntVar(&f.rooms, "rooms", 1, "number of rooms (house)")
	cmd.Flags().StringVar(&f.color, "color", "", "color (house)")
	cmd.Flags().StringVar(&f.owner, "owner", "", "owner (house, office, market)")
	cmd.Flags().StringVar(&f.business, "business", "", "business (office)")
	cmd.Flags().StringVar(&f.opening, "opening", "08:00", "opening time hh:mm (market)")
	cmd.Flags().StringVar(&f.closing, "closing", "20:00", "closing time hh:mm (market)")
	_ = cmd.MarkFlagRequired("length")

	_ = cmd.RegisterFlagCompletionFunc("category", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(building.Categories))
		for i, cat := range building.Categories {
			names[i] = cat.String()
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// removeCommand creates the "remove" command.
func (c *CLI) removeCommand() *cobra.Command {
	var rowStr string

	cmd := &cobra.Command{
		Use:   "remove NAME ID",
		Short: "Remove a building from a row of a street",
		Long: `Remove a building from a row of a street.

ID is the full building ID or the short prefix shown by "skyline list NAME".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := street.ParseRow(rowStr)
			if err != nil {
				return err
			}
			return c.withRunner(cmd.Context(), true, func(r *pipeline.Runner) error {
				s, err := r.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				id := resolveID(s, row, args[1])
				if _, err := r.Remove(cmd.Context(), args[0], row, id); err != nil {
					return err
				}
				printSuccess("Building successfully removed from %s row", row.Ordinal())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&rowStr, "row", "r", "1", "row: 1 or 2")
	return cmd
}

// resolveID expands a short ID prefix to the full ID of the single building
// in row that starts with it. Anything else is returned unchanged, so the
// street reports a missing building.
func resolveID(s *street.Street, row street.RowID, id string) string {
	match := ""
	for _, b := range s.Row(row) {
		if b.ID == id {
			return id
		}
		if len(id) >= 4 && len(b.ID) > len(id) && b.ID[:len(id)] == id {
			if match != "" {
				return id
			}
			match = b.ID
		}
	}
	if match != "" {
		return match
	}
	return id
}

// deleteCommand creates the "delete" command.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a stored street",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), true, func(r *pipeline.Runner) error {
				if err := r.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Deleted street %s", args[0])
				return nil
			})
		},
	}
}

// listCommand creates the "list" command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [NAME]",
		Short: "List stored streets, or the buildings of one street",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), true, func(r *pipeline.Runner) error {
				if len(args) == 1 {
					s, err := r.Load(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					fmt.Println(StyleTitle.Render(args[0]) + " " + StyleDim.Render(fmt.Sprintf("(%d m)", s.Length())))
					fmt.Println(buildingTable(s))
					return nil
				}

				names, err := r.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(names) == 0 {
					printInfo("No streets stored")
					printNextStep("Create one", "skyline new main --length 40")
					return nil
				}
				for _, name := range names {
					fmt.Println(StyleValue.Render(name))
				}
				return nil
			})
		},
	}
}

// statsCommand creates the "stats" command.
func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats NAME",
		Short: "Show remaining land, playgrounds and occupied land",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd.Context(), true, func(r *pipeline.Runner) error {
				rep, err := r.Report(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printReport(args[0], rep)
				return nil
			})
		},
	}
}
