package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/ui/theme"
)

const bannerArt = `
 ████████╗ █████╗ ███╗   ██╗ ██████╗  ██████╗
 ╚══██╔══╝██╔══██╗████╗  ██║██╔════╝ ██╔═══██╗
    ██║   ███████║██╔██╗ ██║██║  ███╗██║   ██║
    ██║   ██╔══██║██║╚██╗██║██║   ██║██║   ██║
    ██║   ██║  ██║██║ ╚████║╚██████╔╝╚██████╔╝
    ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝`

const bannerCompact = "T A N G O  単語"

// RenderBanner returns the banner in the primary color, or a one-line
// fallback below 50 columns or in compact mode.
func RenderBanner(width int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if compact || width < 50 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
