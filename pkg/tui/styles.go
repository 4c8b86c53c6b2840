package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the color set a Styles is built from.
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	Error      lipgloss.Color
	Link       lipgloss.Color
	IsDark     bool
}

// Catppuccin Mocha. The web page uses the same palette.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#cdd6f4"),
		Muted:      lipgloss.Color("#6c7086"),
		Accent:     lipgloss.Color("#b4befe"),
		Border:     lipgloss.Color("#45475a"),
		Error:      lipgloss.Color("#f38ba8"),
		Link:       lipgloss.Color("#89b4fa"),
		IsDark:     true,
	}
}

func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#4c4f69"),
		Muted:      lipgloss.Color("#9ca0b0"),
		Accent:     lipgloss.Color("#7287fd"),
		Border:     lipgloss.Color("#ccd0da"),
		Error:      lipgloss.Color("#d20f39"),
		Link:       lipgloss.Color("#1e66f5"),
		IsDark:     false,
	}
}

// ThemeByName maps a config theme name to a Theme; unknown names get dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds every style the view renders with.
type Styles struct {
	Theme Theme

	App     lipgloss.Style
	Title   lipgloss.Style
	Input   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Link    lipgloss.Style
	Cell    lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Spinner lipgloss.Style
	Help    lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,

		App:   lipgloss.NewStyle().Padding(1, 2),
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Accent).MarginBottom(1),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Label:   lipgloss.NewStyle().Foreground(t.Muted),
		Value:   lipgloss.NewStyle().Foreground(t.Foreground),
		Link:    lipgloss.NewStyle().Foreground(t.Link).Underline(true),
		Cell:    lipgloss.NewStyle().PaddingRight(2).MarginBottom(1),
		Error:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(t.Muted),
		Spinner: lipgloss.NewStyle().Foreground(t.Accent),
		Help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
}

func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
