// Package domain defines the core entities of weathercli.
//
// The types here are independent of the WeatherAPI wire format and of the
// storage layout; adapters in internal/infrastructure translate to and from
// them.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// ForecastRecord is one successful (or error-bearing) forecast lookup.
type ForecastRecord struct {
	Location  Location      `json:"location"`
	Current   Current       `json:"current"`
	Days      []DayForecast `json:"forecast_days"`
	FetchedOn time.Time     `json:"fetched_on"`
	Error     string        `json:"error,omitempty"`
}

// Location identifies the place a forecast was resolved to.
type Location struct {
	Name    string `json:"name"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// Current holds present conditions.
type Current struct {
	TempC         float64 `json:"temp_c"`
	TempF         float64 `json:"temp_f"`
	ConditionText string  `json:"condition_text"`
	WindMPH       float64 `json:"wind_mph"`
	WindDir       string  `json:"wind_dir"`
	Humidity      int     `json:"humidity"`
}

// DayForecast is the daily aggregate for one forecast day.
type DayForecast struct {
	Date          string  `json:"date"`
	MaxTempC      float64 `json:"max_temp_c"`
	MinTempC      float64 `json:"min_temp_c"`
	AvgTempC      float64 `json:"avg_temp_c"`
	MaxWindKPH    float64 `json:"max_wind_kph"`
	TotalPrecipMM float64 `json:"total_precip_mm"`
	ConditionText string  `json:"condition_text"`
	UV            float64 `json:"uv_index"`
	AvgHumidity   float64 `json:"avg_humidity"`
}

// HasError reports whether the record carries an API-level error and must
// not be treated as weather data.
func (r ForecastRecord) HasError() bool {
	return strings.TrimSpace(r.Error) != ""
}

// MatchesCity reports whether city is a case-insensitive substring of the
// resolved location name.
func (r ForecastRecord) MatchesCity(city string) bool {
	return strings.Contains(strings.ToLower(r.Location.Name), strings.ToLower(city))
}

// FetchedOnDay reports whether the record was fetched on the same calendar
// day as now, in now's location.
func (r ForecastRecord) FetchedOnDay(now time.Time) bool {
	if r.FetchedOn.IsZero() {
		return false
	}
	fy, fm, fd := r.FetchedOn.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	return fy == ny && fm == nm && fd == nd
}

// FreshFor combines the cache acceptance rules for a requested city.
func (r ForecastRecord) FreshFor(city string, now time.Time) bool {
	return r.MatchesCity(city) && r.FetchedOnDay(now) && !r.HasError()
}

// Address renders "Name, Region, Country".
func (l Location) Address() string {
	return fmt.Sprintf("%s, %s, %s", l.Name, l.Region, l.Country)
}

// UpcomingDays returns the forecast days after the current one. The first
// day duplicates the current-conditions view and is left out.
func (r ForecastRecord) UpcomingDays() []DayForecast {
	if len(r.Days) < 2 {
		return nil
	}
	return r.Days[1:]
}

// LongDate reformats the YYYY-MM-DD date as "02 January 2006". Unparseable
// dates are returned unchanged.
func (d DayForecast) LongDate() string {
	t, err := time.Parse(APIDateLayout, d.Date)
	if err != nil {
		return d.Date
	}
	return t.Format(LongDateLayout)
}
