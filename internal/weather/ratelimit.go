package weather

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/i474232898/weather-cli/internal/location"
)

// RateLimited wraps a Fetcher with a client-side request budget. Serve
// mode uses it so one busy instance cannot burn the API quota.
type RateLimited struct {
	inner   Fetcher
	limiter *rate.Limiter
}

// NewRateLimited allows rps requests per second with the given burst.
func NewRateLimited(inner Fetcher, rps float64, burst int) *RateLimited {
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimited) Current(ctx context.Context, loc location.Location, units string) (Report, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return Report{}, err
	}
	return r.inner.Current(ctx, loc, units)
}
