package weatherapi

import "github.com/doeshing/weathercli/internal/domain"

// forecastResponse mirrors the forecast.json payload. Top-level sections are
// pointers so a missing section can be told apart from a zero value.
type forecastResponse struct {
	Location *struct {
		Name    string `json:"name"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"location"`
	Current *struct {
		TempC     float64   `json:"temp_c"`
		TempF     float64   `json:"temp_f"`
		Condition condition `json:"condition"`
		WindMPH   float64   `json:"wind_mph"`
		WindDir   string    `json:"wind_dir"`
		Humidity  int       `json:"humidity"`
	} `json:"current"`
	Forecast *struct {
		ForecastDay []forecastDay `json:"forecastday"`
	} `json:"forecast"`
	Error *apiError `json:"error"`
}

type forecastDay struct {
	Date string `json:"date"`
	Day  *struct {
		MaxTempC      float64   `json:"maxtemp_c"`
		MinTempC      float64   `json:"mintemp_c"`
		AvgTempC      float64   `json:"avgtemp_c"`
		MaxWindKPH    float64   `json:"maxwind_kph"`
		TotalPrecipMM float64   `json:"totalprecip_mm"`
		AvgHumidity   float64   `json:"avghumidity"`
		UV            float64   `json:"uv"`
		Condition     condition `json:"condition"`
	} `json:"day"`
}

type condition struct {
	Text string `json:"text"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// toRecord maps the payload onto the domain model. Missing sections mean the
// city could not be resolved.
func (r forecastResponse) toRecord() (domain.ForecastRecord, error) {
	if r.Location == nil || r.Current == nil || r.Forecast == nil {
		return domain.ForecastRecord{}, domain.ErrCityNotFound
	}

	record := domain.ForecastRecord{
		Location: domain.Location{
			Name:    r.Location.Name,
			Region:  r.Location.Region,
			Country: r.Location.Country,
		},
		Current: domain.Current{
			TempC:         r.Current.TempC,
			TempF:         r.Current.TempF,
			ConditionText: r.Current.Condition.Text,
			WindMPH:       r.Current.WindMPH,
			WindDir:       r.Current.WindDir,
			Humidity:      r.Current.Humidity,
		},
		Days: make([]domain.DayForecast, 0, len(r.Forecast.ForecastDay)),
	}

	for _, fd := range r.Forecast.ForecastDay {
		if fd.Day == nil {
			return domain.ForecastRecord{}, domain.ErrCityNotFound
		}
		record.Days = append(record.Days, domain.DayForecast{
			Date:          fd.Date,
			MaxTempC:      fd.Day.MaxTempC,
			MinTempC:      fd.Day.MinTempC,
			AvgTempC:      fd.Day.AvgTempC,
			MaxWindKPH:    fd.Day.MaxWindKPH,
			TotalPrecipMM: fd.Day.TotalPrecipMM,
			ConditionText: fd.Day.Condition.Text,
			UV:            fd.Day.UV,
			AvgHumidity:   fd.Day.AvgHumidity,
		})
	}
	return record, nil
}
