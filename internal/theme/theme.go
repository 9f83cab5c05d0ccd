// Package theme holds the dashboard color palettes and their lipgloss styles.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Panels
	Border     string
	Focus      string // Focused border and highlighted menu entry

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Title   string
	Success string
	Warning string
	Danger  string
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Title        lipgloss.Style
	Panel        lipgloss.Style
	FocusedPanel lipgloss.Style
	PanelTitle   lipgloss.Style
	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style
	Footer       lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Title)).
			Bold(true).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		FocusedPanel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(t.Focus)).
			Padding(0, 1),

		PanelTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		MenuItem: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		MenuSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(lipgloss.Color(t.Focus)).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
	}
}

var themes = map[string]Theme{
	"Classic":  classicTheme(),
	"Nightfox": nightfoxTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Classic", "Nightfox", "Slate"}

// Get returns a theme by name, case-insensitively, falling back to Classic.
func Get(name string) Theme {
	for _, n := range themeOrder {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return themes[n]
		}
	}
	return classicTheme()
}

// Next returns the next theme name in the cycle.
func Next(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// Names returns available theme names.
func Names() []string {
	return append([]string(nil), themeOrder...)
}

func classicTheme() Theme {
	// ANSI palette: black background, white text, cyan highlight, yellow title.
	return Theme{
		Name: "Classic",

		Background: "0",
		Surface:    "0",
		Border:     "7",
		Focus:      "6",

		Text:    "7",
		Muted:   "8",
		Faint:   "8",
		Accent:  "6",
		Title:   "3",
		Success: "2",
		Warning: "3",
		Danger:  "1",
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		Border:     "#39506d", // bg4
		Focus:      "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#63cdcf", // cyan
		Title:   "#dbc074", // yellow
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		Border:     "#334155", // slate-700
		Focus:      "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Title:   "#f59e0b", // amber-500
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
	}
}
