// Package weather fetches current conditions from OpenWeatherMap and
// renders them for the terminal.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/weather-cli/internal/httpx"
	"github.com/i474232898/weather-cli/internal/location"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	userAgent      = "weather-cli/1.0"
)

// Typed failures the CLI maps to user-facing messages and exit codes.
var (
	ErrMissingAPIKey = errors.New("openweather api key is not configured")
	ErrNotFound      = errors.New("no weather data for the requested location")
	ErrBadAPIKey     = errors.New("invalid api key")
	ErrRateLimited   = errors.New("weather api rate limit exceeded")
)

// Report is the current-conditions answer for one location.
type Report struct {
	City        string
	Country     string
	Temperature float64
	FeelsLike   float64
	Humidity    int
	Description string
	Icon        string
	Units       string
}

// Fetcher is the surface the CLI and server consume.
type Fetcher interface {
	Current(ctx context.Context, loc location.Location, units string) (Report, error)
}

// Client talks to the OpenWeatherMap current weather endpoint.
type Client struct {
	apiKey  string
	baseURL string
	httpCfg httpx.Config
	circuit *gobreaker.CircuitBreaker
	log     *slog.Logger
}

// NewClient builds a weather client around the shared HTTP client.
func NewClient(client *http.Client, apiKey string, log *slog.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpCfg: httpx.Config{
			Client: client,
			Backoff: httpx.Backoff{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: httpx.NewBreaker("openweather"),
		log:     log,
	}
}

// WithBaseURL overrides the API endpoint, for tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

var titleCaser = cases.Title(language.English)

// Current fetches the present conditions for loc. Coordinates are
// preferred over the city name when both are set.
func (c *Client) Current(ctx context.Context, loc location.Location, units string) (Report, error) {
	if c.apiKey == "" {
		return Report{}, ErrMissingAPIKey
	}
	if units == "" {
		units = "metric"
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", c.apiKey)
		values.Set("units", units)

		if loc.HasCoordinates() {
			values.Set("lat", fmt.Sprintf("%f", *loc.Lat))
			values.Set("lon", fmt.Sprintf("%f", *loc.Lon))
		} else {
			values.Set("q", loc.City)
		}

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		return req, nil
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		if errors.Is(err, httpx.ErrRateLimited) {
			return Report{}, ErrRateLimited
		}
		return Report{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Report{}, ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return Report{}, ErrBadAPIKey
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return Report{}, fmt.Errorf("weather api returned status %d", resp.StatusCode)
	}

	var payload struct {
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
		} `json:"sys"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Report{}, fmt.Errorf("decoding weather response: %w", err)
	}

	report := Report{
		City:        payload.Name,
		Country:     payload.Sys.Country,
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		Units:       units,
	}
	if len(payload.Weather) > 0 {
		report.Description = titleCaser.String(strings.ToLower(payload.Weather[0].Description))
		report.Icon = payload.Weather[0].Icon
	}

	c.log.Debug("weather data retrieved",
		"city", report.City, "country", report.Country, "icon", report.Icon)
	return report, nil
}
