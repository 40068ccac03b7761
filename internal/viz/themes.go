package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colours of the animation and its side panel.
type Theme struct {
	Name   string
	Fore   lipgloss.Color
	Back   lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemeEmber = Theme{
		Name:   "ember",
		Fore:   lipgloss.Color("#ff8c42"),
		Back:   lipgloss.Color("#1a0f0a"),
		Accent: lipgloss.Color("#ffd166"),
		Text:   lipgloss.Color("#fff1e6"),
		Muted:  lipgloss.Color("#8a6a5a"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Fore:   lipgloss.Color("#ffffff"),
		Back:   lipgloss.Color("#000000"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Fore:   lipgloss.Color("#00a8cc"),
		Back:   lipgloss.Color("#001a33"),
		Accent: lipgloss.Color("#ffd700"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
	}
)

// ClassicTheme uses the configured fore and back colours.
func ClassicTheme(fore, back string) Theme {
	return Theme{
		Name:   "classic",
		Fore:   lipgloss.Color(fore),
		Back:   lipgloss.Color(back),
		Accent: lipgloss.Color(fore),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#757575"),
	}
}

// Themes returns the cycle order with the classic theme first.
func Themes(fore, back string) []Theme {
	return []Theme{ClassicTheme(fore, back), ThemeEmber, ThemeMinimal, ThemeOcean}
}

// ThemeNames returns list of available theme names
func ThemeNames(themes []Theme) []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
