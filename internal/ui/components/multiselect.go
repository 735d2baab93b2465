package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/ui/theme"
)

// SelectOption is one row of a MultiSelect.
type SelectOption struct {
	Value string
	Label string
	Note  string // dim text after the label
}

// MultiSelect is a checkbox list. When Exclusive names an option, that
// option and the others are mutually exclusive, and an empty selection
// falls back to it.
type MultiSelect struct {
	Options   []SelectOption
	Exclusive string
	Cursor    int

	selected map[string]bool
}

// NewMultiSelect creates a MultiSelect with the given values checked.
func NewMultiSelect(options []SelectOption, exclusive string, checked []string) MultiSelect {
	m := MultiSelect{Options: options, Exclusive: exclusive, selected: map[string]bool{}}
	for _, v := range checked {
		m.selected[v] = true
	}
	m.normalize()
	return m
}

// Toggle flips value and applies the exclusivity rules.
func (m *MultiSelect) Toggle(value string) {
	if m.selected[value] {
		delete(m.selected, value)
	} else {
		m.selected[value] = true
		if m.Exclusive != "" {
			if value == m.Exclusive {
				m.selected = map[string]bool{value: true}
			} else {
				delete(m.selected, m.Exclusive)
			}
		}
	}
	m.normalize()
}

func (m *MultiSelect) normalize() {
	if m.Exclusive != "" && len(m.selected) == 0 {
		m.selected[m.Exclusive] = true
	}
}

// IsSelected reports whether value is checked.
func (m MultiSelect) IsSelected(value string) bool {
	return m.selected[value]
}

// Selected returns the checked values in option order.
func (m MultiSelect) Selected() []string {
	var out []string
	for _, o := range m.Options {
		if m.selected[o.Value] {
			out = append(out, o.Value)
		}
	}
	return out
}

// Update moves the cursor and toggles with space. It reports a change
// by returning changed=true.
func (m MultiSelect) Update(msg tea.Msg) (MultiSelect, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}
	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "space", " ", "x":
		if m.Cursor < len(m.Options) {
			m.Toggle(m.Options[m.Cursor].Value)
			return m, true
		}
	}
	return m, false
}

// View renders up to height rows around the cursor.
func (m MultiSelect) View(height int) string {
	start, end := Window(len(m.Options), m.Cursor, height)
	var b strings.Builder
	for i := start; i < end; i++ {
		o := m.Options[i]
		box := "[ ]"
		if m.selected[o.Value] {
			box = "[x]"
		}
		line := box + " " + o.Label
		var style lipgloss.Style
		if i == m.Cursor {
			style = theme.Selected
			line = "▸ " + line
		} else {
			style = theme.Unselected
			line = "  " + line
		}
		b.WriteString(style.Render(line))
		if o.Note != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + o.Note))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Window returns the [start, end) range of n rows that keeps cursor
// visible in height rows.
func Window(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	start = max(0, min(start, n-height))
	return start, start + height
}
