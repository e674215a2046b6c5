package upload

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/common-nighthawk/go-figure"

	"github.com/abhisek/sorubot/internal/ui/theme"
)

const bannerCompact = "S O R U B O T"

var bannerArt = strings.TrimRight(figure.NewFigure("SORUBOT", "", true).String(), "\n")

// RenderBanner returns the app banner styled in the primary color, with a
// compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < lipgloss.Width(bannerArt)+4 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
