package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/ui/theme"
)

const bannerArt = ` ██████╗ ██╗   ██╗██╗███████╗███████╗██╗   ██╗
██╔═══██╗██║   ██║██║╚══███╔╝╚══███╔╝╚██╗ ██╔╝
██║   ██║██║   ██║██║  ███╔╝   ███╔╝  ╚████╔╝
██║▄▄ ██║██║   ██║██║ ███╔╝   ███╔╝    ╚██╔╝
╚██████╔╝╚██████╔╝██║███████╗███████╗   ██║
 ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚══════╝   ╚═╝`

const bannerCompact = "Q · U · I · Z · Z · Y"

// bannerMinWidth is the narrowest width that fits the block letters.
const bannerMinWidth = 50

// Tagline is shown under the banner.
const Tagline = "Test yourself on anything."

// RenderBanner returns the block-letter title, or a spaced-out word when
// width is too narrow for it.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
