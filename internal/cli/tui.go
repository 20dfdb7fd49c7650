package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/skyline/pkg/building"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// menuModel - numbered menu selection
// =============================================================================

// menuModel is the bubbletea model for a numbered menu. Items are chosen by
// their number or with the cursor; 0, q and esc leave the menu.
type menuModel struct {
	title  string
	items  []string
	cursor int
	// chosen is the 1-based item number, 0 for exit and -1 while undecided.
	chosen int
}

func newMenuModel(title string, items []string) menuModel {
	return menuModel{title: title, items: items, chosen: -1}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch s := key.String(); s {
	case "q", "0", "esc", "ctrl+c":
		m.chosen = 0
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.items) > 0 {
			m.chosen = m.cursor + 1
			return m, tea.Quit
		}
	default:
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(m.items) {
			m.cursor = n - 1
			m.chosen = n
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m menuModel) View() string {
	if m.chosen >= 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n\n")
	for i, item := range m.items {
		line := fmt.Sprintf("%d- %s", i+1, item)
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("› " + line))
		} else {
			b.WriteString("  " + listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("  " + listDimStyle.Render("0- Exit"))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate • enter or number select • 0/q exit"))
	b.WriteString("\n")
	return b.String()
}

// runMenu shows a menu and returns the chosen item number, or 0 when the
// user left it.
func runMenu(title string, items []string) (int, error) {
	final, err := tea.NewProgram(newMenuModel(title, items)).Run()
	if err != nil {
		return 0, err
	}
	m := final.(menuModel)
	if m.chosen < 0 {
		return 0, nil
	}
	return m.chosen, nil
}

// =============================================================================
// formModel - line-by-line field input
// =============================================================================

// formField is one prompt of a form.
type formField struct {
	prompt  string
	numeric bool
	value   string
}

// formModel asks for each field in turn. Numeric fields only accept
// integers; the owning category's checks run after the form is submitted.
type formModel struct {
	title    string
	fields   []formField
	index    int
	input    string
	problem  string
	canceled bool
}

func newFormModel(title string, fields []formField) formModel {
	return formModel{title: title, fields: fields}
}

func (m formModel) done() bool {
	return m.index >= len(m.fields)
}

func (m formModel) Init() tea.Cmd {
	return nil
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.done() {
		return m, nil
	}
	switch key.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.canceled = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if m.input != "" {
			r := []rune(m.input)
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input)
		if m.fields[m.index].numeric {
			if _, err := strconv.Atoi(value); err != nil {
				m.problem = fmt.Sprintf("%q is not a whole number", value)
				m.input = ""
				return m, nil
			}
		}
		m.fields[m.index].value = value
		m.index++
		m.input = ""
		m.problem = ""
		if m.done() {
			return m, tea.Quit
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(key.Runes)
	}
	return m, nil
}

func (m formModel) View() string {
	if m.done() || m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n\n")
	for _, f := range m.fields[:m.index] {
		b.WriteString("  " + listDimStyle.Render(f.prompt+": ") + listNormalStyle.Render(f.value) + "\n")
	}
	b.WriteString(listSelectedStyle.Render("› "+m.fields[m.index].prompt+": ") + m.input + "█\n")
	if m.problem != "" {
		b.WriteString("  " + styleIconError.Render(iconError+" "+m.problem) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("enter confirm • esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// values returns the submitted answers by prompt order.
func (m formModel) values() []string {
	out := make([]string, len(m.fields))
	for i, f := range m.fields {
		out[i] = f.value
	}
	return out
}

// runForm shows a form and returns its answers. ok is false when the user
// canceled it.
func runForm(title string, fields []formField) (values []string, ok bool, err error) {
	final, err := tea.NewProgram(newFormModel(title, fields)).Run()
	if err != nil {
		return nil, false, err
	}
	m := final.(formModel)
	if m.canceled || !m.done() {
		return nil, false, nil
	}
	return m.values(), true, nil
}

// =============================================================================
// Building forms
// =============================================================================

// buildingForm returns the prompts for a building of category c. The order
// matches [fieldsFromForm].
func buildingForm(c building.Category) []formField {
	lim := building.LimitsFor(c)
	fields := []formField{
		{prompt: fmt.Sprintf("Enter length [%d, %d] meter", lim.MinLength, lim.MaxLength), numeric: true},
	}
	if c != building.Playground {
		fields = append(fields, formField{
			prompt:  fmt.Sprintf("Enter height [%d, %d] meter, even", lim.MinHeight, lim.MaxHeight),
			numeric: true,
		})
	}
	switch c {
	case building.House:
		fields = append(fields,
			formField{prompt: "Enter number of rooms", numeric: true},
			formField{prompt: "Enter color"},
			formField{prompt: "Enter owner"},
		)
	case building.Office:
		fields = append(fields,
			formField{prompt: "Enter business name"},
			formField{prompt: "Enter owner"},
		)
	case building.Market:
		fields = append(fields,
			formField{prompt: "Enter opening time (HH:MM)"},
			formField{prompt: "Enter closing time (HH:MM)"},
			formField{prompt: "Enter owner"},
		)
	}
	return append(fields, formField{prompt: "Enter position of the building from the left", numeric: true})
}

// fieldsFromForm maps the answers of [buildingForm] to building fields.
func fieldsFromForm(c building.Category, values []string) buildingFields {
	var f buildingFields
	next := func() string {
		if len(values) == 0 {
			return ""
		}
		v := values[0]
		values = values[1:]
		return v
	}
	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}

	f.length = atoi(next())
	if c != building.Playground {
		f.height = atoi(next())
	}
	switch c {
	case building.House:
		f.rooms = atoi(next())
		f.color = next()
		f.owner = next()
	case building.Office:
		f.business = next()
		f.owner = next()
	case building.Market:
		f.opening = next()
		f.closing = next()
		f.owner = next()
	}
	f.left = atoi(next())
	return f
}
