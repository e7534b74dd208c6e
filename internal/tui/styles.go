package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#8BC34A")
	muted  = lipgloss.Color("#6b7280")
	border = lipgloss.Color("#2a3850")
	danger = lipgloss.Color("#e53935")
)

// Styles groups the lipgloss styles used by the browser.
type Styles struct {
	Title    lipgloss.Style
	Filters  lipgloss.Style
	Active   lipgloss.Style
	Footer   lipgloss.Style
	Status   lipgloss.Style
	Detail   lipgloss.Style
	Label    lipgloss.Style
	Input    lipgloss.Style
	InputOn  lipgloss.Style
	Empty    lipgloss.Style
	HelpLine lipgloss.Style
}

// DefaultStyles returns the browser's styling.
func DefaultStyles() Styles {
	input := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Filters:  lipgloss.NewStyle().Foreground(muted),
		Active:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Footer:   lipgloss.NewStyle().Foreground(muted).MarginTop(1),
		Status:   lipgloss.NewStyle().Foreground(danger),
		Detail:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1).MarginLeft(2),
		Label:    lipgloss.NewStyle().Foreground(muted).Width(9),
		Input:    input,
		InputOn:  input.BorderForeground(accent),
		Empty:    lipgloss.NewStyle().Foreground(muted).Italic(true).Padding(1, 2),
		HelpLine: lipgloss.NewStyle().MarginTop(1),
	}
}
