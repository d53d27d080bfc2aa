package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-cli/internal/httpx"
	"github.com/i474232898/weather-cli/internal/location"
)

const (
	ipapiBaseURL = "https://ipapi.co/json/"
	userAgent    = "weather-cli/1.0"
)

// IPAPIProvider resolves the caller's approximate position from their
// public IP via ipapi.co. One outbound request per attempt, no retries.
type IPAPIProvider struct {
	baseURL string
	httpCfg httpx.Config
	circuit *gobreaker.CircuitBreaker
	log     *slog.Logger
}

// NewIPAPIProvider builds the network geolocation tier around the shared
// HTTP client.
func NewIPAPIProvider(client *http.Client, log *slog.Logger) *IPAPIProvider {
	return &IPAPIProvider{
		baseURL: ipapiBaseURL,
		httpCfg: httpx.Config{
			Client: client,
			Backoff: httpx.Backoff{MaxRetries: 0},
		},
		circuit: httpx.NewBreaker("ipapi"),
		log:     log,
	}
}

// WithBaseURL overrides the service URL, for tests.
func (p *IPAPIProvider) WithBaseURL(u string) *IPAPIProvider {
	p.baseURL = u
	return p
}

func (p *IPAPIProvider) Name() string { return "ipapi" }

func (p *IPAPIProvider) Attempt(ctx context.Context) location.Result {
	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, p.baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		return req, nil
	}

	resp, err := httpx.Do(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return location.Failure("ip geolocation request failed: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return location.Failure(fmt.Sprintf("ip geolocation returned status %d", resp.StatusCode))
	}

	var payload struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		City      string   `json:"city"`
		Country   string   `json:"country"`
		Error     bool     `json:"error"`
		Reason    string   `json:"reason"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return location.Failure("malformed ip geolocation response: " + err.Error())
	}

	if payload.Error {
		reason := payload.Reason
		if reason == "" {
			reason = "unknown service error"
		}
		return location.Failure("ip geolocation service error: " + reason)
	}
	if payload.Latitude == nil || payload.Longitude == nil {
		return location.Failure("ip geolocation response missing coordinates")
	}

	loc := location.FromCoordinates(*payload.Latitude, *payload.Longitude, location.SourceNetwork)
	loc.City = payload.City
	loc.CountryCode = payload.Country
	return location.Success(loc)
}
