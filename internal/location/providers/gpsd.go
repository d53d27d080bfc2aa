package providers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/i474232898/weather-cli/internal/location"
)

// DefaultGPSDAddr is where a local gpsd daemon listens.
const DefaultGPSDAddr = "localhost:2947"

// GPSDProvider reads a position fix from the Linux gpsd daemon over its
// JSON watch protocol. A missing daemon is Unavailable (fall back quietly);
// a reachable daemon that cannot deliver a 2D fix in time is an Error.
type GPSDProvider struct {
	platform Platform
	addr     string
	timeout  time.Duration
	log      *slog.Logger
}

// NewGPSDProvider builds the Linux native provider. The injected platform
// must be PlatformLinux for the provider to attempt anything.
func NewGPSDProvider(platform Platform, timeout time.Duration, log *slog.Logger) *GPSDProvider {
	if timeout <= 0 {
		timeout = DefaultNativeTimeout
	}
	return &GPSDProvider{
		platform: platform,
		addr:     DefaultGPSDAddr,
		timeout:  timeout,
		log:      log,
	}
}

// WithAddr overrides the gpsd address, for tests.
func (p *GPSDProvider) WithAddr(addr string) *GPSDProvider {
	p.addr = addr
	return p
}

func (p *GPSDProvider) Name() string { return "gpsd" }

// tpv is the subset of a gpsd TPV report we care about. Mode 2 and above
// means a usable fix.
type tpv struct {
	Class string  `json:"class"`
	Mode  int     `json:"mode"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

func (p *GPSDProvider) Attempt(ctx context.Context) location.Result {
	if p.platform != PlatformLinux {
		return location.Unavailable("wrong platform")
	}

	dialer := net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		// No daemon: structurally inapplicable, not a transient fault.
		return location.Unavailable(fmt.Sprintf("gpsd not reachable at %s: %v", p.addr, err))
	}
	defer conn.Close()

	deadline := time.Now().Add(p.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return location.Failure("gpsd connection setup failed: " + err.Error())
	}

	if _, err := fmt.Fprintf(conn, "?WATCH={\"enable\":true,\"json\":true}\n"); err != nil {
		return location.Failure("gpsd watch request failed: " + err.Error())
	}

	// gpsd streams VERSION/DEVICES/SKY reports interleaved with TPV; keep
	// reading until a TPV with a fix arrives or the deadline cuts us off.
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var report tpv
		if err := json.Unmarshal(scanner.Bytes(), &report); err != nil {
			continue
		}
		if report.Class != "TPV" || report.Mode < 2 {
			continue
		}
		if report.Lat == 0 && report.Lon == 0 {
			return location.Failure("gpsd returned empty coordinates")
		}
		return location.Success(location.FromCoordinates(report.Lat, report.Lon, location.SourceNative))
	}

	if err := scanner.Err(); err != nil {
		return location.Failure("timed out waiting for GPS fix: " + err.Error())
	}
	return location.Failure("gpsd closed the stream without a fix")
}
