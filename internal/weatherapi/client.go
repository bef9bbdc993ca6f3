package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"sweather/internal/models"
)

const (
	defaultBaseURL = "https://api.weatherapi.com/v1"
	defaultTimeout = 10 * time.Second

	// Provider error code for "no matching location found".
	codeLocationNotFound = 1006
)

// ErrLocationNotFound is returned when the provider rejects the query
// with error code 1006. Any other non-success response surfaces as an
// *APIError and is treated as transient by callers.
var ErrLocationNotFound = errors.New("weatherapi: location not found")

// APIError carries the provider's error body for non-success responses.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("weatherapi: status %d, code %d: %s", e.StatusCode, e.Code, e.Message)
}

// Client talks to api.weatherapi.com. It is stateless and safe for
// concurrent use; every call re-queries the provider.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (tests point it at httptest).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a WeatherAPI client.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchForecast requests a forecast for the query (place name, "lat,lon"
// or free text) over the given horizon, with provider-localized condition
// text for lang. Air quality and alert data are excluded.
func (c *Client) FetchForecast(ctx context.Context, query string, days int, lang models.Language) (models.ForecastSnapshot, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("days", strconv.Itoa(days))
	params.Set("aqi", "no")
	params.Set("alerts", "no")
	params.Set("lang", string(lang))

	body, err := c.get(ctx, "/forecast.json", params)
	if err != nil {
		return models.ForecastSnapshot{}, err
	}

	var resp forecastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.ForecastSnapshot{}, fmt.Errorf("parse forecast response: %w", err)
	}
	return resp.toSnapshot(), nil
}

// LookupIP resolves the caller's approximate location from its IP
// address via the provider's ip.json endpoint.
func (c *Client) LookupIP(ctx context.Context) (models.Location, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", "auto:ip")

	body, err := c.get(ctx, "/ip.json", params)
	if err != nil {
		return models.Location{}, err
	}

	var resp ipLookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.Location{}, fmt.Errorf("parse ip lookup response: %w", err)
	}
	return models.Location{
		Name:    resp.City,
		Country: resp.Country,
		Lat:     resp.Lat,
		Lon:     resp.Lon,
	}, nil
}

// get issues the request and classifies non-success responses using the
// provider's error body.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyError(resp.StatusCode, body)
	}
	return body, nil
}

// classifyError maps the provider's error body to typed errors.
// Code 1006 means the query matched no location; everything else is
// reported with status and message and treated as transient upstream.
func classifyError(status int, body []byte) error {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return &APIError{StatusCode: status, Message: string(body)}
	}
	if er.Error.Code == codeLocationNotFound {
		return fmt.Errorf("%w: %s", ErrLocationNotFound, er.Error.Message)
	}
	return &APIError{StatusCode: status, Code: er.Error.Code, Message: er.Error.Message}
}
