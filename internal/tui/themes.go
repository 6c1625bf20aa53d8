package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines a color scheme for the dashboard
type Theme struct {
	Name   string
	Accent string // Titles, graph bars
	Value  string // Streak numbers, attended days
	Label  string // Labels, help text
	Muted  string // Empty days
	Border string // Stat boxes
}

// Available themes
var Themes = map[string]Theme{
	"default": {
		Name:   "Default",
		Accent: "#C73B3C",
		Value:  "#5fafaf",
		Label:  "#6c6c6c",
		Muted:  "#3a3a3a",
		Border: "#5f87d7",
	},
	"gruvbox": {
		Name:   "Gruvbox",
		Accent: "#d65d0e",
		Value:  "#98971a",
		Label:  "#928374",
		Muted:  "#3c3836",
		Border: "#458588",
	},
	"tokyonight": {
		Name:   "Tokyo Night",
		Accent: "#7aa2f7",
		Value:  "#9ece6a",
		Label:  "#565f89",
		Muted:  "#292e42",
		Border: "#7dcfff",
	},
}

// ThemeNames returns the list of available theme names
var ThemeNames = []string{"default", "gruvbox", "tokyonight"}

// CurrentTheme holds the active theme
var CurrentTheme = Themes["default"]

// SetTheme switches the active theme. Unknown names keep the current one and
// report false.
func SetTheme(name string) bool {
	theme, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentTheme = theme
	regenerateStyles()
	return true
}

func regenerateStyles() {
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(CurrentTheme.Accent)).
		MarginBottom(1)

	statLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Label))

	statValueStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(CurrentTheme.Value))

	boxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(CurrentTheme.Border)).
		Padding(1, 2)

	graphStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Accent))

	attendedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Value))

	missedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Muted))

	helpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Label)).
		MarginTop(1)
}

func init() {
	regenerateStyles()
}
