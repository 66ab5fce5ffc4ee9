package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colours of the canvas and prompt.
type Theme struct {
	Name       string
	Positive   lipgloss.Color
	Negative   lipgloss.Color
	Background lipgloss.Color
	Prompt     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
}

// Available themes
var (
	ThemeLavender = Theme{
		Name:       "lavender",
		Positive:   lipgloss.Color("#d5b5fc"),
		Negative:   lipgloss.Color("#b5fcd5"),
		Background: lipgloss.Color("#000000"),
		Prompt:     lipgloss.Color("#a8a8a8"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666688"),
		Error:      lipgloss.Color("#af0000"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Positive:   lipgloss.Color("#00ff00"), // Green phosphor
		Negative:   lipgloss.Color("#ffb000"), // Amber
		Background: lipgloss.Color("#001100"),
		Prompt:     lipgloss.Color("#00cc00"),
		Text:       lipgloss.Color("#88ff88"),
		Muted:      lipgloss.Color("#005500"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Positive:   lipgloss.Color("#00a8cc"),
		Negative:   lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Prompt:     lipgloss.Color("#4488aa"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Error:      lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Positive:   lipgloss.Color("#ff6b6b"), // Coral
		Negative:   lipgloss.Color("#feca57"),
		Background: lipgloss.Color("#2d1b2e"),
		Prompt:     lipgloss.Color("#8b6b8c"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Error:      lipgloss.Color("#ff4757"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Positive:   lipgloss.Color("#ffffff"),
		Negative:   lipgloss.Color("#888888"),
		Background: lipgloss.Color("#000000"),
		Prompt:     lipgloss.Color("#888888"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#555555"),
		Error:      lipgloss.Color("#ff0000"),
	}

	// All available themes
	Themes = []Theme{
		ThemeLavender,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeLavender, false
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
