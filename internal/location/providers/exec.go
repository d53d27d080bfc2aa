package providers

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
)

// lookPathFunc and runFunc are seams for tests; production providers use
// the exec package directly.
type lookPathFunc func(file string) (string, error)

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func execLookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// parseLatLon extracts a "lat lon" pair from helper output. Both values
// must parse as finite decimals; 0,0 is rejected as a non-fix.
func parseLatLon(out string) (lat, lon float64, ok bool) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) < 2 {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], ","), 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, false
	}
	if lat == 0 && lon == 0 {
		return 0, 0, false
	}
	return lat, lon, true
}
