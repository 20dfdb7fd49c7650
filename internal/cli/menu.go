package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/pipeline"
	"github.com/matzehuels/skyline/pkg/render/silhouette/sink"
	"github.com/matzehuels/skyline/pkg/street"
)

var editMenu = []string{
	"Add building to first row",
	"Add building to second row",
	"Remove building from first row",
	"Remove building from second row",
	"Silhouette (Demo)",
}

var viewMenu = []string{
	"Display total remaining length of lands",
	"List of buildings",
	"Number and ratio of playgrounds",
	"Occupied land by markets, houses and offices",
	"Silhouette",
}

// editCommand creates the interactive "edit" command.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit NAME",
		Short: "Add and remove buildings through an interactive menu",
		Long: `Add and remove buildings through an interactive menu.

The street is created with the configured default length if it does not exist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, name := cmd.Context(), args[0]
			return c.withRunner(ctx, true, func(r *pipeline.Runner) error {
				if _, err := r.Load(ctx, name); errors.Is(err, errors.ErrCodeNotFound) {
					if _, err := r.Create(ctx, name, c.cfg().DefaultLength); err != nil {
						return err
					}
					printInfo("Created street %s (%d m)", name, c.cfg().DefaultLength)
				} else if err != nil {
					return err
				}
				return c.editLoop(ctx, r, name)
			})
		},
	}
}

func (c *CLI) editLoop(ctx context.Context, r *pipeline.Runner, name string) error {
	for {
		choice, err := runMenu("Edit "+name, editMenu)
		if err != nil || choice == 0 {
			return err
		}
		switch choice {
		case 1, 2:
			err = addInteractive(ctx, r, name, street.Rows[choice-1])
		case 3, 4:
			err = removeInteractive(ctx, r, name, street.Rows[choice-3])
		case 5:
			err = printSilhouette(ctx, r, name)
		}
		if err != nil {
			if !isUserError(err) {
				return err
			}
			printError("%s", errors.UserMessage(err))
		}
	}
}

// viewCommand creates the interactive "view" command.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view NAME",
		Short: "Browse the statistics of a street through an interactive menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, name := cmd.Context(), args[0]
			return c.withRunner(ctx, true, func(r *pipeline.Runner) error {
				for {
					choice, err := runMenu("View "+name, viewMenu)
					if err != nil || choice == 0 {
						return err
					}
					if err := showView(ctx, r, name, choice); err != nil {
						return err
					}
				}
			})
		},
	}
}

// showView prints the view menu entry choice for the named street.
func showView(ctx context.Context, r *pipeline.Runner, name string, choice int) error {
	if choice == 5 {
		return printSilhouette(ctx, r, name)
	}

	s, err := r.Load(ctx, name)
	if err != nil {
		return err
	}
	rep := s.Report()
	switch choice {
	case 1:
		printKeyValue("Remaining land", fmt.Sprintf("%d m", rep.RemainingLand))
	case 2:
		fmt.Println(buildingTable(s))
	case 3:
		printKeyValue("Playgrounds", fmt.Sprint(rep.PlaygroundCount))
		printKeyValue("Playground ratio", fmt.Sprintf("%.3f", rep.PlaygroundRatio))
	case 4:
		for _, cat := range []building.Category{building.Market, building.House, building.Office} {
			printKeyValue("Occupied by "+cat.String()+"s", fmt.Sprintf("%d m", rep.Occupied[cat]))
		}
	}
	return nil
}

func addInteractive(ctx context.Context, r *pipeline.Runner, name string, row street.RowID) error {
	titles := make([]string, len(building.Categories))
	for i, cat := range building.Categories {
		titles[i] = cat.Title()
	}
	choice, err := runMenu("Category of the new building", titles)
	if err != nil || choice == 0 {
		return err
	}
	cat := building.Categories[choice-1]

	values, ok, err := runForm("New "+cat.String()+" on the "+row.Ordinal()+" row", buildingForm(cat))
	if err != nil || !ok {
		return err
	}
	b, err := newBuilding(cat, fieldsFromForm(cat, values))
	if err != nil {
		return err
	}
	if _, err := r.Add(ctx, name, row, b); err != nil {
		return err
	}
	printSuccess("Building successfully added to %s row", row.Ordinal())
	return nil
}

func removeInteractive(ctx context.Context, r *pipeline.Runner, name string, row street.RowID) error {
	s, err := r.Load(ctx, name)
	if err != nil {
		return err
	}
	buildings := s.Row(row)
	if len(buildings) == 0 {
		printWarning("The %s row has no buildings", row.Ordinal())
		return nil
	}

	items := make([]string, len(buildings))
	for i, b := range buildings {
		items[i] = fmt.Sprintf("%s %s at %d-%d", building.ShortID(b.ID), b.Category, b.Left, b.Right())
	}
	choice, err := runMenu("Remove from the "+row.Ordinal()+" row", items)
	if err != nil || choice == 0 {
		return err
	}
	if _, err := r.Remove(ctx, name, row, buildings[choice-1].ID); err != nil {
		return err
	}
	printSuccess("Building successfully removed from %s row", row.Ordinal())
	return nil
}

func printSilhouette(ctx context.Context, r *pipeline.Runner, name string) error {
	s, err := r.Load(ctx, name)
	if err != nil {
		return err
	}
	fmt.Print(string(sink.RenderText(s)))
	return nil
}

// isUserError reports whether err is a rejected input the menu loop should
// show and continue after.
func isUserError(err error) bool {
	return errors.IsValidation(err) || errors.IsState(err)
}
