package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/skyline/pkg/building"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func pressMenu(m menuModel, keys ...string) menuModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(menuModel)
	}
	return m
}

func TestMenuModel(t *testing.T) {
	items := []string{"one", "two", "three"}
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"number", []string{"2"}, 2},
		{"enter on first", []string{"enter"}, 1},
		{"cursor", []string{"down", "down", "down", "up", "enter"}, 2},
		{"exit with zero", []string{"0"}, 0},
		{"exit with q", []string{"q"}, 0},
		{"exit with esc", []string{"esc"}, 0},
		{"out of range ignored", []string{"7"}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := pressMenu(newMenuModel("Menu", items), tt.keys...)
			if m.chosen != tt.want {
				t.Errorf("chosen = %d, want %d", m.chosen, tt.want)
			}
		})
	}
}

func TestMenuModelView(t *testing.T) {
	m := newMenuModel("Edit main", editMenu)
	view := m.View()
	for _, want := range []string{"Edit main", "1- Add building to first row", "5- Silhouette (Demo)", "0- Exit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if v := pressMenu(m, "1").View(); v != "" {
		t.Errorf("view after choice = %q, want empty", v)
	}
}

func typeLine(m formModel, line string) formModel {
	for _, r := range line {
		next, _ := m.Update(key(string(r)))
		m = next.(formModel)
	}
	next, _ := m.Update(key("enter"))
	return next.(formModel)
}

func TestFormModel(t *testing.T) {
	m := newFormModel("New office", buildingForm(building.Office))
	if len(m.fields) != 5 {
		t.Fatalf("office form has %d fields, want 5", len(m.fields))
	}

	m = typeLine(m, "ten")
	if m.index != 0 || m.problem == "" {
		t.Fatalf("non-numeric length accepted: index %d", m.index)
	}
	for _, line := range []string{"10", "20", "acme", "bob", "3"} {
		m = typeLine(m, line)
	}
	if !m.done() || m.canceled {
		t.Fatalf("form not done after all fields: index %d", m.index)
	}

	f := fieldsFromForm(building.Office, m.values())
	want := buildingFields{left: 3, length: 10, height: 20, business: "acme", owner: "bob"}
	if f != want {
		t.Errorf("fields = %+v, want %+v", f, want)
	}
	if _, err := newBuilding(building.Office, f); err != nil {
		t.Errorf("newBuilding() error: %v", err)
	}
}

func TestFormModelBackspaceAndCancel(t *testing.T) {
	m := newFormModel("New playground", buildingForm(building.Playground))
	for _, k := range []string{"1", "2", "backspace", "0"} {
		next, _ := m.Update(key(k))
		m = next.(formModel)
	}
	if m.input != "10" {
		t.Errorf("input = %q, want 10", m.input)
	}

	next, _ := m.Update(key("esc"))
	m = next.(formModel)
	if !m.canceled || m.View() != "" {
		t.Error("esc should cancel the form")
	}
}

func TestBuildingFormPrompts(t *testing.T) {
	tests := []struct {
		cat    building.Category
		fields int
		first  string
	}{
		{building.House, 6, "Enter length [4, 40] meter"},
		{building.Office, 5, "Enter length [4, 40] meter"},
		{building.Market, 6, "Enter length [4, 80] meter"},
		{building.Playground, 2, "Enter length [4, 120] meter"},
	}
	for _, tt := range tests {
		t.Run(tt.cat.String(), func(t *testing.T) {
			form := buildingForm(tt.cat)
			if len(form) != tt.fields {
				t.Errorf("%d fields, want %d", len(form), tt.fields)
			}
			if form[0].prompt != tt.first {
				t.Errorf("first prompt = %q", form[0].prompt)
			}
			if last := form[len(form)-1]; !last.numeric || !strings.Contains(last.prompt, "position") {
				t.Errorf("last prompt = %q", last.prompt)
			}
		})
	}
}
