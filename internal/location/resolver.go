package location

import (
	"context"
	"log/slog"
	"strings"
)

// Query captures the location-affecting inputs of one CLI invocation.
type Query struct {
	// City is the explicit city argument, empty when not given.
	City string
	// UseCurrent is set when the user explicitly asked for the current
	// location (the --here flag).
	UseCurrent bool
}

// Prompter asks the user for a city when automatic resolution has failed.
// It is only attached when the invocation is interactive.
type Prompter interface {
	AskCity() (string, error)
}

// UnavailableError is the terminal failure returned when every applicable
// source has been exhausted. Reason carries the diagnostic from the last
// attempted tier.
type UnavailableError struct {
	Reason string
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return "could not determine location"
	}
	return "could not determine location: " + e.Reason
}

// Resolver combines explicit input, the fallback chain, and the configured
// default into one location decision per invocation.
//
// Precedence, each step consulted only when the previous one is absent or
// fails:
//
//  1. explicit city argument (the chain is never invoked)
//  2. explicit current-location request via the chain; a failure here is a
//     warning, not a terminal error
//  3. configured default city
//  4. implicit chain run; if that also fails, prompt once when a Prompter is
//     attached, otherwise fail with *UnavailableError
type Resolver struct {
	chain       *Chain
	defaultCity string
	prompter    Prompter
	log         *slog.Logger
}

// NewResolver builds a resolver around the chain. defaultCity may be empty.
func NewResolver(chain *Chain, defaultCity string, log *slog.Logger) *Resolver {
	return &Resolver{chain: chain, defaultCity: defaultCity, log: log}
}

// WithPrompter attaches an interactive fallback prompt and returns the
// resolver for chaining.
func (r *Resolver) WithPrompter(p Prompter) *Resolver {
	r.prompter = p
	return r
}

// Resolve produces the final location for the invocation. It never returns
// an unusable Location as a success.
func (r *Resolver) Resolve(ctx context.Context, q Query) (Location, error) {
	if city := strings.TrimSpace(q.City); city != "" {
		r.log.Debug("using explicit city argument", "city", city)
		return FromCity(city, SourceExplicit), nil
	}

	if q.UseCurrent {
		res := r.chain.Locate(ctx)
		if res.Status == StatusSuccess {
			return res.Location, nil
		}
		r.log.Warn("automatic location detection failed", "reason", res.Reason)
		if r.defaultCity != "" {
			r.log.Debug("falling back to configured default city", "city", r.defaultCity)
			return FromCity(r.defaultCity, SourceConfigDefault), nil
		}
		return r.lastResort(res)
	}

	if r.defaultCity != "" {
		r.log.Debug("using configured default city", "city", r.defaultCity)
		return FromCity(r.defaultCity, SourceConfigDefault), nil
	}

	res := r.chain.Locate(ctx)
	if res.Status == StatusSuccess {
		return res.Location, nil
	}
	return r.lastResort(res)
}

// lastResort asks the interactive prompter, when one is attached, before
// giving up with a terminal error.
func (r *Resolver) lastResort(res Result) (Location, error) {
	if r.prompter != nil {
		city, err := r.prompter.AskCity()
		if err == nil {
			if city = strings.TrimSpace(city); city != "" {
				return FromCity(city, SourceManual), nil
			}
		}
	}
	return Location{}, &UnavailableError{Reason: res.Reason}
}
