package models

// Location identifies the place a forecast was resolved for.
// It is produced by the provider (or the IP lookup) and replaced
// wholesale with every successful fetch.
type Location struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentConditions holds the observed weather at fetch time.
// Temperatures keep provider precision; rounding is a display concern.
type CurrentConditions struct {
	TempC         float64 `json:"temp_c"`
	ConditionText string  `json:"condition_text"`
	ConditionIcon string  `json:"condition_icon"`
	WindKph       float64 `json:"wind_kph"`
	Humidity      int     `json:"humidity"`
}

// HourForecast is one hour slot of a day. Each day carries exactly 24,
// in chronological order.
type HourForecast struct {
	TimeEpoch     int64   `json:"time_epoch"`
	TempC         float64 `json:"temp_c"`
	ConditionText string  `json:"condition_text"`
	ConditionIcon string  `json:"condition_icon"`
	WindKph       float64 `json:"wind_kph"`
	Humidity      int     `json:"humidity"`
}

// DayForecast is one day of the requested horizon, hours included.
type DayForecast struct {
	DateEpoch     int64          `json:"date_epoch"`
	MinTempC      float64        `json:"mintemp_c"`
	MaxTempC      float64        `json:"maxtemp_c"`
	AvgTempC      float64        `json:"avgtemp_c"`
	ConditionText string         `json:"condition_text"`
	ConditionIcon string         `json:"condition_icon"`
	Hours         []HourForecast `json:"hours"`
}

// ForecastSnapshot is the atomic unit of forecast data: location,
// current conditions and the day sequence, never partially updated.
type ForecastSnapshot struct {
	Location Location          `json:"location"`
	Current  CurrentConditions `json:"current"`
	Days     []DayForecast     `json:"days"`
}
