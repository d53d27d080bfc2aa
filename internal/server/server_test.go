package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/i474232898/weather-cli/internal/location"
	"github.com/i474232898/weather-cli/internal/weather"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubFetcher returns a canned report or error and records the request.
type stubFetcher struct {
	report weather.Report
	err    error
	city   string
	units  string
}

func (s *stubFetcher) Current(ctx context.Context, loc location.Location, units string) (weather.Report, error) {
	s.city = loc.City
	s.units = units
	if s.err != nil {
		return weather.Report{}, s.err
	}
	r := s.report
	r.Units = units
	return r, nil
}

func sampleReport() weather.Report {
	return weather.Report{
		City:        "London",
		Country:     "GB",
		Temperature: 15.5,
		FeelsLike:   14.2,
		Humidity:    72,
		Description: "Light Rain",
		Icon:        "10d",
	}
}

func TestHealthEndpoint(t *testing.T) {
	app := New(&stubFetcher{report: sampleReport()}, "metric", testLogger()).App()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestWeatherEndpoint(t *testing.T) {
	fetcher := &stubFetcher{report: sampleReport()}
	app := New(fetcher, "metric", testLogger()).App()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=London", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["city"] != "London" || body["country"] != "GB" {
		t.Fatalf("unexpected body: %v", body)
	}
	if fetcher.units != "metric" {
		t.Fatalf("expected default units, got %q", fetcher.units)
	}
}

func TestWeatherEndpointRequiresCity(t *testing.T) {
	app := New(&stubFetcher{report: sampleReport()}, "metric", testLogger()).App()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestWeatherEndpointRejectsUnknownUnits(t *testing.T) {
	app := New(&stubFetcher{report: sampleReport()}, "metric", testLogger()).App()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=London&units=kelvin", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestWeatherEndpointUnitsOverride(t *testing.T) {
	fetcher := &stubFetcher{report: sampleReport()}
	app := New(fetcher, "metric", testLogger()).App()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=London&units=imperial", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if fetcher.units != "imperial" {
		t.Fatalf("expected imperial override, got %q", fetcher.units)
	}
}

func TestWeatherEndpointCityNotFound(t *testing.T) {
	app := New(&stubFetcher{err: weather.ErrNotFound}, "metric", testLogger()).App()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=Nowhereville", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestWeatherEndpointUpstreamFailure(t *testing.T) {
	app := New(&stubFetcher{err: weather.ErrBadAPIKey}, "metric", testLogger()).App()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=London", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}

func TestWeatherEndpointRateLimited(t *testing.T) {
	app := New(&stubFetcher{err: weather.ErrRateLimited}, "metric", testLogger()).App()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=London", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestCityTextEndpoint(t *testing.T) {
	fetcher := &stubFetcher{report: sampleReport()}
	app := New(fetcher, "metric", testLogger()).App()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/London", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(body), "Weather in London, GB:") {
		t.Fatalf("unexpected text body: %q", string(body))
	}
	if !strings.Contains(string(body), "│") {
		t.Fatalf("expected the art column in the text body: %q", string(body))
	}
	if fetcher.city != "London" {
		t.Fatalf("expected London lookup, got %q", fetcher.city)
	}
}
