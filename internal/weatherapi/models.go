package weatherapi

import (
	"strings"

	"sweather/internal/models"
)

// Raw response shapes for api.weatherapi.com. Only the fields the app
// consumes are declared; aqi/alerts are excluded from requests.

type conditionDTO struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

type forecastResponse struct {
	Location struct {
		Name    string  `json:"name"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	} `json:"location"`
	Current struct {
		TempC     float64      `json:"temp_c"`
		Condition conditionDTO `json:"condition"`
		WindKph   float64      `json:"wind_kph"`
		Humidity  int          `json:"humidity"`
	} `json:"current"`
	Forecast struct {
		ForecastDay []struct {
			DateEpoch int64 `json:"date_epoch"`
			Day       struct {
				MaxTempC  float64      `json:"maxtemp_c"`
				MinTempC  float64      `json:"mintemp_c"`
				AvgTempC  float64      `json:"avgtemp_c"`
				Condition conditionDTO `json:"condition"`
			} `json:"day"`
			Hour []struct {
				TimeEpoch int64        `json:"time_epoch"`
				TempC     float64      `json:"temp_c"`
				Condition conditionDTO `json:"condition"`
				WindKph   float64      `json:"wind_kph"`
				Humidity  int          `json:"humidity"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

type ipLookupResponse struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// normalizeIconURL prefixes protocol-relative icon URLs with https:.
// The provider omits the scheme on condition icons.
func normalizeIconURL(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

// toSnapshot converts the raw payload into the normalized domain model.
// Numeric values keep provider precision.
func (r *forecastResponse) toSnapshot() models.ForecastSnapshot {
	snap := models.ForecastSnapshot{
		Location: models.Location{
			Name:    r.Location.Name,
			Country: r.Location.Country,
			Lat:     r.Location.Lat,
			Lon:     r.Location.Lon,
		},
		Current: models.CurrentConditions{
			TempC:         r.Current.TempC,
			ConditionText: r.Current.Condition.Text,
			ConditionIcon: normalizeIconURL(r.Current.Condition.Icon),
			WindKph:       r.Current.WindKph,
			Humidity:      r.Current.Humidity,
		},
		Days: make([]models.DayForecast, 0, len(r.Forecast.ForecastDay)),
	}

	for _, fd := range r.Forecast.ForecastDay {
		day := models.DayForecast{
			DateEpoch:     fd.DateEpoch,
			MinTempC:      fd.Day.MinTempC,
			MaxTempC:      fd.Day.MaxTempC,
			AvgTempC:      fd.Day.AvgTempC,
			ConditionText: fd.Day.Condition.Text,
			ConditionIcon: normalizeIconURL(fd.Day.Condition.Icon),
			Hours:         make([]models.HourForecast, 0, len(fd.Hour)),
		}
		for _, h := range fd.Hour {
			day.Hours = append(day.Hours, models.HourForecast{
				TimeEpoch:     h.TimeEpoch,
				TempC:         h.TempC,
				ConditionText: h.Condition.Text,
				ConditionIcon: normalizeIconURL(h.Condition.Icon),
				WindKph:       h.WindKph,
				Humidity:      h.Humidity,
			})
		}
		snap.Days = append(snap.Days, day)
	}

	return snap
}
