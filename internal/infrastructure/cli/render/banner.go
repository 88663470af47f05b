package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const bannerArt = `
██╗    ██╗███████╗ █████╗ ████████╗██╗  ██╗███████╗██████╗  ██████╗██╗     ██╗
██║    ██║██╔════╝██╔══██╗╚══██╔══╝██║  ██║██╔════╝██╔══██╗██╔════╝██║     ██║
██║ █╗ ██║█████╗  ███████║   ██║   ███████║█████╗  ██████╔╝██║     ██║     ██║
██║███╗██║██╔══╝  ██╔══██║   ██║   ██╔══██║██╔══╝  ██╔══██╗██║     ██║     ██║
╚███╔███╔╝███████╗██║  ██║   ██║   ██║  ██║███████╗██║  ██║╚██████╗███████╗██║
 ╚══╝╚══╝ ╚══════╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝ ╚═════╝╚══════╝╚═╝
`

// AboutTitle heads the description panel.
const AboutTitle = "ABOUT WEATHER CLI"

const aboutText = "WeatherCLI is a lightweight command line interface that retrieves the " +
	"current weather and a multi-day forecast for a city from WeatherAPI.com. " +
	"The last forecast is cached for the rest of the day and every lookup is " +
	"recorded in a history you can browse with the history command."

// About prints the banner followed by the description panel.
func (r *Renderer) About() {
	width := bannerWidth()

	banner := lipgloss.NewStyle().
		Foreground(Green).
		Border(lipgloss.NormalBorder()).
		BorderForeground(Subtle).
		Padding(0, 1).
		Render(strings.Trim(bannerArt, "\n"))
	fmt.Fprintln(r.out, banner)

	panel := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Green).
		Padding(1, 1).
		Width(width).
		Render(TitleStyle.Render(AboutTitle) + "\n\n" + aboutText)
	fmt.Fprintln(r.out, panel)
}

// bannerWidth is the display width of the widest banner line plus padding.
func bannerWidth() int {
	widest := 0
	for _, line := range strings.Split(bannerArt, "\n") {
		if w := ansi.StringWidth(line); w > widest {
			widest = w
		}
	}
	return widest + 2
}
