package tui

import "github.com/charmbracelet/lipgloss"

// Static styles for content elements
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	SelectedCardStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFD700")).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#FFD700")).
				Padding(0, 1)

	CursorCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)
