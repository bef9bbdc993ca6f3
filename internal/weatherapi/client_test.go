package weatherapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sweather/internal/models"
)

const forecastBody = `{
	"location": {"name": "Paris", "country": "France", "lat": 48.87, "lon": 2.33},
	"current": {
		"temp_c": 19.4,
		"condition": {"text": "Partly cloudy", "icon": "//cdn.weatherapi.com/weather/64x64/day/116.png"},
		"wind_kph": 11.2,
		"humidity": 63
	},
	"forecast": {"forecastday": [
		{
			"date_epoch": 1756512000,
			"day": {
				"maxtemp_c": 23.1, "mintemp_c": 14.8, "avgtemp_c": 18.7,
				"condition": {"text": "Sunny", "icon": "//cdn.weatherapi.com/weather/64x64/day/113.png"}
			},
			"hour": [
				{"time_epoch": 1756512000, "temp_c": 15.0,
				 "condition": {"text": "Clear", "icon": "//cdn.weatherapi.com/weather/64x64/night/113.png"},
				 "wind_kph": 6.5, "humidity": 81},
				{"time_epoch": 1756515600, "temp_c": 14.8,
				 "condition": {"text": "Clear", "icon": "https://cdn.weatherapi.com/weather/64x64/night/113.png"},
				 "wind_kph": 6.1, "humidity": 83}
			]
		}
	]}
}`

func TestClient_FetchForecast_BuildsRequestAndNormalizes(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"key": q.Get("key"), "q": q.Get("q"), "days": q.Get("days"),
			"aqi": q.Get("aqi"), "alerts": q.Get("alerts"), "lang": q.Get("lang"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	c := New("test-key", WithBaseURL(srv.URL))
	snap, err := c.FetchForecast(context.Background(), "Paris", 7, models.LangFrench)
	if err != nil {
		t.Fatalf("FetchForecast() error = %v", err)
	}

	want := map[string]string{
		"key": "test-key", "q": "Paris", "days": "7",
		"aqi": "no", "alerts": "no", "lang": "fr",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query param %s = %q, want %q", k, gotQuery[k], v)
		}
	}

	if snap.Location.Name != "Paris" || snap.Location.Country != "France" {
		t.Errorf("unexpected location: %+v", snap.Location)
	}
	if snap.Current.TempC != 19.4 {
		t.Errorf("current temp = %v, want 19.4 (provider precision kept)", snap.Current.TempC)
	}
	if len(snap.Days) != 1 {
		t.Fatalf("days = %d, want 1", len(snap.Days))
	}
	day := snap.Days[0]
	if day.AvgTempC != 18.7 || day.MinTempC != 14.8 || day.MaxTempC != 23.1 {
		t.Errorf("unexpected day temps: %+v", day)
	}
	if len(day.Hours) != 2 {
		t.Fatalf("hours = %d, want 2", len(day.Hours))
	}
	if day.Hours[0].TimeEpoch >= day.Hours[1].TimeEpoch {
		t.Errorf("hours not chronological: %d then %d", day.Hours[0].TimeEpoch, day.Hours[1].TimeEpoch)
	}
}

func TestClient_FetchForecast_PrefixesProtocolRelativeIcons(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	c := New("k", WithBaseURL(srv.URL))
	snap, err := c.FetchForecast(context.Background(), "Paris", 7, models.LangEnglish)
	if err != nil {
		t.Fatalf("FetchForecast() error = %v", err)
	}

	if got := snap.Current.ConditionIcon; got != "https://cdn.weatherapi.com/weather/64x64/day/116.png" {
		t.Errorf("current icon = %q, want https: prefix added", got)
	}
	// Icons that already carry a scheme must be left alone.
	if got := snap.Days[0].Hours[1].ConditionIcon; got != "https://cdn.weatherapi.com/weather/64x64/night/113.png" {
		t.Errorf("hour icon = %q, want unchanged absolute URL", got)
	}
}

func TestClient_FetchForecast_Code1006IsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
	}))
	defer srv.Close()

	c := New("k", WithBaseURL(srv.URL))
	_, err := c.FetchForecast(context.Background(), "no-such-place-xyz", 7, models.LangEnglish)
	if !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestClient_FetchForecast_OtherErrorsAreAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":2008,"message":"API key has been disabled."}}`))
	}))
	defer srv.Close()

	c := New("k", WithBaseURL(srv.URL))
	_, err := c.FetchForecast(context.Background(), "Paris", 7, models.LangEnglish)
	if errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("2008 must not map to not-found")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != 2008 || apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}

func TestClient_LookupIP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ip.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "auto:ip" {
			t.Errorf("q = %q, want auto:ip", got)
		}
		_, _ = w.Write([]byte(`{"city":"Paris","country":"France","lat":48.85,"lon":2.35}`))
	}))
	defer srv.Close()

	c := New("k", WithBaseURL(srv.URL))
	loc, err := c.LookupIP(context.Background())
	if err != nil {
		t.Fatalf("LookupIP() error = %v", err)
	}
	if loc.Name != "Paris" || loc.Lat != 48.85 || loc.Lon != 2.35 {
		t.Errorf("unexpected location: %+v", loc)
	}
}
