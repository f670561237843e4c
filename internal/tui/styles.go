package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorBrand   lipgloss.Color = "#6200ee"
	colorOnBrand lipgloss.Color = "#ffffff"
	colorSubmit  lipgloss.Color = "#4CAF50"
	colorEdit    lipgloss.Color = "#FFA726"
	colorDelete  lipgloss.Color = "#F44336"
	colorClose   lipgloss.Color = "#2196F3"
	colorBorder  lipgloss.Color = "#dddddd"
	colorMuted   lipgloss.Color = "#888888"
	colorFocus   lipgloss.Color = "#b4befe"
)

var (
	headerStyle = lipgloss.NewStyle().
			Background(colorBrand).
			Foreground(colorOnBrand).
			Bold(true).
			Padding(0, 1)
	footerStyle = lipgloss.NewStyle().
			Background(colorBrand).
			Foreground(colorOnBrand).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Background(colorSubmit).
			Foreground(colorOnBrand).
			Bold(true).
			Padding(0, 2)
	editTagStyle = lipgloss.NewStyle().
			Background(colorEdit).
			Foreground(colorOnBrand).
			Bold(true).
			Padding(0, 1)
	deleteTagStyle = lipgloss.NewStyle().
			Background(colorDelete).
			Foreground(colorOnBrand).
			Bold(true).
			Padding(0, 1)
	closeTagStyle = lipgloss.NewStyle().
			Background(colorClose).
			Foreground(colorOnBrand).
			Bold(true).
			Padding(0, 1)

	sectionStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	selectedStyle = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(colorDelete).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)
)
