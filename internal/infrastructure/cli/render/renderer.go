package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/doeshing/weathercli/internal/domain"
)

// Renderer writes formatted output to a single writer.
type Renderer struct {
	out io.Writer
}

// New returns a renderer writing to out.
func New(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// ForecastOptions tweaks forecast output.
type ForecastOptions struct {
	Chart     bool
	FromCache bool
}

// Forecast prints the current conditions and the upcoming days. A record
// carrying an API error is never rendered as weather.
func (r *Renderer) Forecast(record domain.ForecastRecord, now time.Time, opts ForecastOptions) {
	if record.HasError() {
		r.LookupError(&domain.APIError{Message: record.Error})
		return
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, TitleStyle.Render(CurrentTitle(now)))
	fmt.Fprintln(r.out, newTable(currentColumnColors,
		[]string{"Location", "Current Temperature", "Current Wind Speed", "Current Humidity", "Current Condition"},
		[][]string{CurrentRow(record)},
	))
	fmt.Fprintln(r.out)

	days := record.UpcomingDays()
	fmt.Fprintln(r.out, TitleStyle.Render(ForecastTitle(len(days))))
	fmt.Fprintln(r.out, newTable(forecastColumnColors,
		[]string{"Date", "Max Temp °C", "Min Temp °C", "Avg Temp °C", "Max Wind (kph)", "Rain (mm)", "Condition", "UV", "Humidity"},
		ForecastRows(record),
	))

	if opts.Chart {
		if chart := TemperatureChart(days); chart != "" {
			fmt.Fprintln(r.out)
			fmt.Fprintln(r.out, chart)
		}
	}
	if opts.FromCache {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, NoteStyle.Render(fmt.Sprintf("Served from cache (fetched %s).", record.FetchedOn.Format(domain.LongTimestampLayout))))
	}
	fmt.Fprintln(r.out)
}

// CurrentTitle is the heading of the current conditions table.
func CurrentTitle(now time.Time) string {
	return "CURRENT WEATHER | " + now.Format(domain.LongDateLayout)
}

// ForecastTitle names the number of days actually shown.
func ForecastTitle(days int) string {
	return fmt.Sprintf("FORECAST FOR THE NEXT %d DAYS", days)
}

// CurrentRow formats the current conditions.
func CurrentRow(record domain.ForecastRecord) []string {
	c := record.Current
	return []string{
		record.Location.Address(),
		number(c.TempC) + "°C",
		fmt.Sprintf("%s mph, %s", number(c.WindMPH), c.WindDir),
		fmt.Sprintf("%d%%", c.Humidity),
		c.ConditionText,
	}
}

// ForecastRows formats every day after the current one.
func ForecastRows(record domain.ForecastRecord) [][]string {
	days := record.UpcomingDays()
	rows := make([][]string, 0, len(days))
	for _, day := range days {
		rows = append(rows, []string{
			day.LongDate(),
			number(day.MaxTempC),
			number(day.MinTempC),
			number(day.AvgTempC),
			number(day.MaxWindKPH),
			number(day.TotalPrecipMM),
			day.ConditionText,
			number(day.UV),
			number(day.AvgHumidity),
		})
	}
	return rows
}

// LookupError prints the user-facing message for a non-fatal forecast
// failure. It reports false for errors it does not recognise.
func (r *Renderer) LookupError(err error) bool {
	msg, ok := LookupErrorMessage(err)
	if !ok {
		return false
	}
	fmt.Fprintln(r.out, ErrorStyle.Render(msg))
	return true
}

// LookupErrorMessage maps forecast errors to user-facing text.
func LookupErrorMessage(err error) (string, bool) {
	var apiErr *domain.APIError
	switch {
	case errors.As(err, &apiErr):
		return "Error: " + apiErr.Message, true
	case errors.Is(err, domain.ErrCityNotFound):
		return "The city you entered does not exist. Please try again.", true
	case errors.Is(err, domain.ErrRetrievalFailed):
		return "Error: Failed to retrieve weather data. Please enter a valid city.", true
	case errors.Is(err, domain.ErrNetworkTimeout):
		return "The server didn't respond. Please try again later.", true
	case errors.Is(err, domain.ErrTooManyRedirects):
		return "The URL was bad. Try a different one.", true
	case errors.Is(err, domain.ErrRateLimited):
		return "Too many requests. Please wait a moment and try again.", true
	default:
		return "", false
	}
}

// History prints lookups most-recent-first.
func (r *Renderer) History(listing domain.HistoryListing) {
	if len(listing.Entries) == 0 {
		fmt.Fprintln(r.out, "No lookups recorded yet.")
	} else {
		fmt.Fprintln(r.out, TitleStyle.Render("History of forecast lookups"))
		fmt.Fprintln(r.out, newTable(nil, []string{"Date", "City", "Lookup"}, HistoryRows(listing.Entries)))
	}
	if listing.Skipped > 0 {
		fmt.Fprintln(r.out, NoteStyle.Render(fmt.Sprintf("%d malformed history line(s) skipped.", listing.Skipped)))
	}
}

// HistoryRows formats entries for the history table.
func HistoryRows(entries []domain.HistoryEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Timestamp.Format(domain.LongTimestampLayout),
			e.City,
			strings.ToUpper(string(e.Outcome)),
		})
	}
	return rows
}

// HealthReport prints doctor checks, one per line.
func (r *Renderer) HealthReport(report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(r.out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}

func newTable(colors []lipgloss.Color, headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			if col < len(colors) {
				return CellStyle.Foreground(colors[col])
			}
			return CellStyle
		})
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
