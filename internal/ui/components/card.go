package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for centered cards.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 2).
		Render(content)
}

// Badge renders a short colored label.
func Badge(label string, c color.Color) string {
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render("‹" + label + "›")
}
