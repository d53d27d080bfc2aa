package providers

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/i474232898/weather-cli/internal/location"
)

// coreLocationHelper is the external binary that talks to the macOS Core
// Location framework on our behalf (installable via Homebrew).
const coreLocationHelper = "CoreLocationCLI"

// CoreLocationProvider shells out to the Core Location helper on macOS.
// The first call may trigger the one-time OS permission prompt; the attempt
// stays bounded by the timeout either way.
type CoreLocationProvider struct {
	platform Platform
	timeout  time.Duration
	log      *slog.Logger

	lookPath lookPathFunc
	run      runFunc
}

// NewCoreLocationProvider builds the macOS native provider. The injected
// platform must be PlatformDarwin for the provider to attempt anything.
func NewCoreLocationProvider(platform Platform, timeout time.Duration, log *slog.Logger) *CoreLocationProvider {
	if timeout <= 0 {
		timeout = DefaultNativeTimeout
	}
	return &CoreLocationProvider{
		platform: platform,
		timeout:  timeout,
		log:      log,
		lookPath: execLookPath,
		run:      execRun,
	}
}

func (p *CoreLocationProvider) Name() string { return "corelocation" }

func (p *CoreLocationProvider) Attempt(ctx context.Context) location.Result {
	if p.platform != PlatformDarwin {
		return location.Unavailable("wrong platform")
	}

	if _, err := p.lookPath(coreLocationHelper); err != nil {
		return location.Unavailable(coreLocationHelper + " not installed")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.run(ctx, coreLocationHelper, "--once", "--format", "%latitude %longitude")
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return location.Failure("timed out waiting for a Core Location fix")
		}
		// The helper exits non-zero when location services are disabled
		// or permission was denied; both mean this tier cannot apply.
		return location.Unavailable("location services denied or disabled: " + err.Error())
	}

	lat, lon, ok := parseLatLon(string(out))
	if !ok {
		return location.Failure("unexpected " + coreLocationHelper + " output: " + strings.TrimSpace(string(out)))
	}
	return location.Success(location.FromCoordinates(lat, lon, location.SourceNative))
}
