package location

import (
	"context"
	"fmt"
)

// Status classifies the outcome of a single provider attempt.
type Status int

const (
	// StatusSuccess means the provider produced a usable Location.
	StatusSuccess Status = iota
	// StatusUnavailable means the provider cannot even be attempted here
	// (wrong platform, missing daemon, permission denied). Expected and
	// non-exceptional; the chain falls through silently.
	StatusUnavailable
	// StatusError means the provider was attempted and failed transiently
	// (network error, timeout, malformed response). Triggers fallback but
	// is logged more prominently.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUnavailable:
		return "unavailable"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of one provider attempt. Failures are plain data,
// not errors, so the fallback chain can be tested exhaustively.
type Result struct {
	Status   Status
	Location Location
	Reason   string
}

// Success wraps a resolved location.
func Success(loc Location) Result {
	return Result{Status: StatusSuccess, Location: loc}
}

// Unavailable marks a provider as structurally inapplicable.
func Unavailable(reason string) Result {
	return Result{Status: StatusUnavailable, Reason: reason}
}

// Failure marks an attempted provider call that did not produce a location.
func Failure(reason string) Result {
	return Result{Status: StatusError, Reason: reason}
}

// Provider abstracts one location tier (native positioning, IP geolocation).
// Attempt performs at most one resolution try, bounded by the context.
type Provider interface {
	Name() string
	Attempt(ctx context.Context) Result
}
