package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, trimmed to what the dashboard draws with.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Error = lipgloss.NewStyle().Foreground(Red)
)

// ForConsistency colours a consistency percentage by the same bands the
// rating uses.
func ForConsistency(percent int) lipgloss.Style {
	switch {
	case percent >= 80:
		return lipgloss.NewStyle().Foreground(Green).Bold(true)
	case percent >= 60:
		return lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	case percent >= 40:
		return lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(Red).Bold(true)
	}
}
