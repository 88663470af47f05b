package render

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/doeshing/weathercli/internal/domain"
)

const (
	chartHeight   = 10
	chartMinWidth = 20
	chartColWidth = 8
)

// TemperatureChart plots max and min temperatures of days. It returns an
// empty string when there are too few points to draw a line.
func TemperatureChart(days []domain.DayForecast) string {
	if len(days) < 2 {
		return ""
	}

	maxTemps := make([]float64, len(days))
	minTemps := make([]float64, len(days))
	for i, day := range days {
		maxTemps[i] = day.MaxTempC
		minTemps[i] = day.MinTempC
	}

	width := len(days) * chartColWidth
	if width < chartMinWidth {
		width = chartMinWidth
	}

	return asciigraph.PlotMany([][]float64{maxTemps, minTemps},
		asciigraph.Height(chartHeight),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("Max (red) / min (blue) °C, %s to %s", days[0].Date, days[len(days)-1].Date)),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
	)
}
