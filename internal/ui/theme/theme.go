package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, sakura and indigo on sumi ink.
var (
	Primary   = lipgloss.Color("#F472B6") // Sakura
	Secondary = lipgloss.Color("#818CF8") // Ai (indigo)
	Accent    = lipgloss.Color("#FBBF24") // Yamabuki
	Success   = lipgloss.Color("#4ADE80") // Wakaba
	Error     = lipgloss.Color("#F87171") // Akane
	Text      = lipgloss.Color("#FAFAF9") // Shiro
	TextDim   = lipgloss.Color("#A8A29E") // Nezumi
	BgCard    = lipgloss.Color("#292524") // Sumi
	Border    = lipgloss.Color("#44403C") // Dark sumi
)

// Mastery badge colors.
var (
	MasteryNew      = lipgloss.Color("#3B82F6") // Blue
	MasteryLearning = lipgloss.Color("#8B5CF6") // Violet
	MasteryFamiliar = lipgloss.Color("#10B981") // Emerald
)

// difficultyColors runs green to red for difficulty 1..5.
var difficultyColors = []color.Color{
	lipgloss.Color("#22C55E"),
	lipgloss.Color("#3B82F6"),
	lipgloss.Color("#EAB308"),
	lipgloss.Color("#F97316"),
	lipgloss.Color("#EF4444"),
}

// DifficultyColor returns the badge color for difficulty d.
func DifficultyColor(d int) color.Color {
	if d < 1 || d > len(difficultyColors) {
		return TextDim
	}
	return difficultyColors[d-1]
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
