// Package providers implements the concrete location tiers: native OS
// positioning (gpsd, Core Location, the Windows location API) and IP
// geolocation via ipapi.co.
package providers

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/i474232898/weather-cli/internal/location"
)

// Platform selects which native positioning mechanism applies. Providers
// receive it by injection instead of branching on runtime.GOOS themselves,
// so every platform path is testable on any one machine.
type Platform string

const (
	PlatformLinux   Platform = "linux"
	PlatformDarwin  Platform = "darwin"
	PlatformWindows Platform = "windows"
)

// CurrentPlatform reports the platform of the running binary.
func CurrentPlatform() Platform {
	return Platform(runtime.GOOS)
}

// DefaultNativeTimeout bounds a native fix acquisition.
const DefaultNativeTimeout = 5 * time.Second

// Native returns the native provider matching the platform. Platforms
// without a native mechanism get a provider that is always unavailable.
func Native(platform Platform, timeout time.Duration, log *slog.Logger) location.Provider {
	switch platform {
	case PlatformLinux:
		return NewGPSDProvider(platform, timeout, log)
	case PlatformDarwin:
		return NewCoreLocationProvider(platform, timeout, log)
	case PlatformWindows:
		return NewWindowsProvider(platform, timeout, log)
	default:
		return unsupportedProvider{platform: platform}
	}
}

type unsupportedProvider struct {
	platform Platform
}

func (u unsupportedProvider) Name() string { return "native" }

func (u unsupportedProvider) Attempt(ctx context.Context) location.Result {
	return location.Unavailable("native location not supported on " + string(u.platform))
}
