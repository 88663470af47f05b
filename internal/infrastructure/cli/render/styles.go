// Package render turns forecasts, history listings and diagnostics into
// terminal output.
package render

import "github.com/charmbracelet/lipgloss"

var (
	Green  = lipgloss.Color("#04B575")
	Gold   = lipgloss.Color("#D7AF00")
	Blue   = lipgloss.Color("#5F87FF")
	Red    = lipgloss.Color("#FF5F5F")
	Violet = lipgloss.Color("#AF87FF")
	Orange = lipgloss.Color("#FF8700")
	Subtle = lipgloss.Color("#626262")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#000000")).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(Gold).Align(lipgloss.Center).Padding(0, 1)
	CellStyle   = lipgloss.NewStyle().Align(lipgloss.Center).Padding(0, 1)
	BorderStyle = lipgloss.NewStyle().Foreground(Subtle)

	NoteStyle  = lipgloss.NewStyle().Italic(true).Foreground(Subtle)
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(Red)
)

// column colors for the forecast table, in column order
var forecastColumnColors = []lipgloss.Color{Blue, Green, Red, Gold, Violet, Blue, Orange, Violet, Orange}

// column colors for the current conditions table
var currentColumnColors = []lipgloss.Color{Green, Blue, Gold, Violet, Orange}
