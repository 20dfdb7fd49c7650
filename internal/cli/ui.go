package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/street"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// categoryColors tints building categories in tables and menus.
var categoryColors = map[building.Category]lipgloss.Color{
	building.House:      lipgloss.Color("167"),
	building.Office:     lipgloss.Color("75"),
	building.Market:     lipgloss.Color("220"),
	building.Playground: lipgloss.Color("35"),
}

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printArtifact prints a rendered file with its cache status.
func printArtifact(path string, cached bool) {
	status, style := iconFresh, styleComputed
	if cached {
		status, style = iconCached, styleCached
	}
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path) + " " + style.Render(status))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(22)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Street Output
// =============================================================================

// buildingTable renders both rows of s as a lipgloss table, buildings in
// insertion order.
func buildingTable(s *street.Street) string {
	var rows [][]string
	var cats []building.Category
	for _, r := range street.Rows {
		for _, b := range s.Row(r) {
			rows = append(rows, []string{
				r.String(),
				building.ShortID(b.ID),
				b.Category.Title(),
				fmt.Sprintf("%d-%d", b.Left, b.Right()),
				strconv.Itoa(b.Length),
				strconv.Itoa(b.Height),
				details(b),
			})
			cats = append(cats, b.Category)
		}
	}
	if len(rows) == 0 {
		return StyleDim.Render("no buildings")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Row", "ID", "Category", "Span", "Length", "Height", "Details").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 2 && row < len(cats) {
				return base.Foreground(categoryColors[cats[row]])
			}
			if col == 0 || col == 1 {
				return base.Foreground(colorGray)
			}
			return base
		})
	return t.Render()
}

// details formats the category-specific attributes of b.
func details(b building.Building) string {
	var parts []string
	switch b.Category {
	case building.House:
		parts = append(parts, fmt.Sprintf("%d rooms", b.Rooms), b.Color)
	case building.Office:
		parts = append(parts, b.Business)
	case building.Market:
		parts = append(parts, b.Opening+"-"+b.Closing)
	}
	if b.Owner != "" {
		parts = append(parts, "owner "+b.Owner)
	}
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

// printReport prints the aggregate statistics of a street.
func printReport(name string, rep street.Report) {
	fmt.Println(StyleTitle.Render(name) + " " + StyleDim.Render(fmt.Sprintf("(%d m)", rep.Length)))
	printKeyValue("Buildings", fmt.Sprintf("%d first row, %d second row", rep.Row1, rep.Row2))
	printKeyValue("Remaining land", fmt.Sprintf("%d m", rep.RemainingLand))
	printKeyValue("Playgrounds", strconv.Itoa(rep.PlaygroundCount))
	printKeyValue("Playground ratio", fmt.Sprintf("%.3f", rep.PlaygroundRatio))
	for _, c := range []building.Category{building.Market, building.House, building.Office} {
		printKeyValue("Occupied by "+c.String()+"s", fmt.Sprintf("%d m", rep.Occupied[c]))
	}
	printKeyValue("Tallest (rows)", strconv.Itoa(rep.MaxHeight))
}
