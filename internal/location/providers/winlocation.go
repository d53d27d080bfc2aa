package providers

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/i474232898/weather-cli/internal/location"
)

// winLocationScript polls the Windows location API once. It prints DENIED
// when the user has blocked location access, otherwise "lat lon" (which is
// "NaN NaN" when no position is known yet).
const winLocationScript = `Add-Type -AssemblyName System.Device;` +
	`$w = New-Object System.Device.Location.GeoCoordinateWatcher;` +
	`$w.Start();` +
	`$i = 0;` +
	`while (($w.Status -ne 'Ready') -and ($w.Permission -ne 'Denied') -and ($i -lt 40)) { Start-Sleep -Milliseconds 100; $i++ };` +
	`if ($w.Permission -eq 'Denied') { Write-Output 'DENIED'; exit 0 };` +
	`$c = $w.Position.Location;` +
	`Write-Output ("{0} {1}" -f $c.Latitude, $c.Longitude)`

// WindowsProvider asks the Windows location API for a one-shot position
// via PowerShell.
type WindowsProvider struct {
	platform Platform
	timeout  time.Duration
	log      *slog.Logger

	lookPath lookPathFunc
	run      runFunc
}

// NewWindowsProvider builds the Windows native provider. The injected
// platform must be PlatformWindows for the provider to attempt anything.
func NewWindowsProvider(platform Platform, timeout time.Duration, log *slog.Logger) *WindowsProvider {
	if timeout <= 0 {
		timeout = DefaultNativeTimeout
	}
	return &WindowsProvider{
		platform: platform,
		timeout:  timeout,
		log:      log,
		lookPath: execLookPath,
		run:      execRun,
	}
}

func (p *WindowsProvider) Name() string { return "winlocation" }

func (p *WindowsProvider) Attempt(ctx context.Context) location.Result {
	if p.platform != PlatformWindows {
		return location.Unavailable("wrong platform")
	}

	if _, err := p.lookPath("powershell"); err != nil {
		return location.Unavailable("powershell not available")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.run(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", winLocationScript)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return location.Failure("timed out waiting for a Windows location fix")
		}
		return location.Failure("windows location query failed: " + err.Error())
	}

	text := strings.TrimSpace(string(out))
	if strings.Contains(text, "DENIED") {
		return location.Unavailable("location access denied")
	}
	if strings.Contains(text, "NaN") {
		return location.Failure("windows location service has no position")
	}

	lat, lon, ok := parseLatLon(text)
	if !ok {
		return location.Failure("unexpected location output: " + text)
	}
	return location.Success(location.FromCoordinates(lat, lon, location.SourceNative))
}
