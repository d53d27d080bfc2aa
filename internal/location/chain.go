package location

import (
	"context"
	"log/slog"
	"time"
)

// Chain tries providers in priority order and stops at the first success.
// Order reflects accuracy (native positioning before IP geolocation), so a
// higher tier is never skipped and tiers are never raced: attempts run
// strictly in sequence, keeping provenance unambiguous and avoiding
// duplicate OS permission prompts.
type Chain struct {
	providers []Provider
	log       *slog.Logger
}

// NewChain builds a fallback chain over the given providers, in order.
func NewChain(log *slog.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, log: log}
}

// Locate runs the chain and returns the first successful result. When every
// tier fails it returns a terminal unavailable result carrying the reason
// from the last-attempted tier. The chain holds no state between calls.
func (c *Chain) Locate(ctx context.Context) Result {
	last := Unavailable("no location providers configured")

	for _, p := range c.providers {
		start := time.Now()
		res := p.Attempt(ctx)
		elapsed := time.Since(start)

		switch res.Status {
		case StatusSuccess:
			c.log.Debug("location tier succeeded",
				"tier", p.Name(), "elapsed", elapsed, "location", res.Location.String())
			return res
		case StatusUnavailable:
			c.log.Debug("location tier unavailable",
				"tier", p.Name(), "elapsed", elapsed, "reason", res.Reason)
		case StatusError:
			c.log.Warn("location tier failed",
				"tier", p.Name(), "elapsed", elapsed, "reason", res.Reason)
		}
		last = res
	}

	return Unavailable(last.Reason)
}
