package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle  MascotVariant = iota // Empty or small notebook
	MascotAlert                      // Notebook is piling up
)

// alertThreshold is the notebook size that makes the mascot nervous.
const alertThreshold = 20

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ 単語 │
└─────┘`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  △  │
│ 単語 │
└─────┘`

// MascotFor picks the variant for a notebook size.
func MascotFor(notebook int) MascotVariant {
	if notebook >= alertThreshold {
		return MascotAlert
	}
	return MascotIdle
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	if v == MascotAlert {
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
