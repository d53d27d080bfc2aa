// Package cli implements the command line entry point.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/i474232898/weather-cli/internal/config"
	"github.com/i474232898/weather-cli/internal/location"
	"github.com/i474232898/weather-cli/internal/location/providers"
	"github.com/i474232898/weather-cli/internal/logging"
	"github.com/i474232898/weather-cli/internal/server"
	"github.com/i474232898/weather-cli/internal/weather"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitError    = 1
	ExitConfig   = 2
	ExitLocation = 3
	ExitNotFound = 4
	ExitUsage    = 64
)

type options struct {
	city  string
	here  bool
	debug bool
	units string
	serve bool
}

// Run executes one CLI invocation and returns its exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("weather-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.city, "city", "", "city name to get weather for (uses config default if not provided)")
	fs.BoolVar(&opts.here, "here", false, "use the current location")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug mode with verbose logging")
	fs.StringVar(&opts.units, "units", "", "units: metric or imperial (overrides config)")
	fs.BoolVar(&opts.serve, "serve", false, "run an HTTP server instead of a one-shot lookup")

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		return ExitUsage
	}

	log, closeLog := logging.Setup(opts.debug, logging.DefaultLogFile)
	defer closeLog()
	log.Debug("debug mode", "enabled", opts.debug)

	stop := logging.Timed(log, "configuration initialization")
	cfg, err := config.Load()
	stop()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitConfig
	}
	log.Debug("api key configured", "present", cfg.APIKey != "")

	units := cfg.Units
	if opts.units != "" {
		if opts.units != "metric" && opts.units != "imperial" {
			fmt.Fprintf(stderr, "Error: invalid units %q (use metric or imperial)\n", opts.units)
			return ExitUsage
		}
		units = opts.units
	}

	if cfg.APIKey == "" {
		printAPIKeyHelp(stdout)
		return ExitConfig
	}

	fetcher := weather.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.APIKey, log)

	if opts.serve {
		log.Debug("starting http server", "port", cfg.Port)
		limited := weather.NewRateLimited(fetcher, 5, 10)
		if err := server.New(limited, units, log).Run(cfg.Port); err != nil {
			fmt.Fprintf(stderr, "Error: server failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}

	ctx := context.Background()

	loc, err := resolveLocation(ctx, cfg, opts, log)
	if err != nil {
		var unavailable *location.UnavailableError
		if errors.As(err, &unavailable) {
			printLocationHelp(stdout, opts.here)
			return ExitLocation
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitLocation
	}
	log.Debug("location resolved", "location", loc.String(), "source", string(loc.Source))

	stop = logging.Timed(log, "weather lookup for "+loc.String())
	report, err := fetcher.Current(ctx, loc, units)
	stop()
	if err != nil {
		return reportWeatherError(stdout, err, loc)
	}

	fmt.Fprintln(stdout, weather.FormatReport(report))
	return ExitOK
}

// resolveLocation builds the fallback chain for this invocation and runs
// the resolver over it.
func resolveLocation(ctx context.Context, cfg *config.Config, opts options, log *slog.Logger) (location.Location, error) {
	native := providers.Native(providers.CurrentPlatform(), cfg.NativeTimeout, log)
	ip := providers.NewIPAPIProvider(&http.Client{Timeout: cfg.NetworkTimeout}, log)
	chain := location.NewChain(log, native, ip)

	resolver := location.NewResolver(chain, cfg.DefaultCity, log)
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		resolver = resolver.WithPrompter(terminalPrompter{})
	}

	return resolver.Resolve(ctx, location.Query{City: opts.city, UseCurrent: opts.here})
}

// terminalPrompter reads one city name from the interactive terminal.
type terminalPrompter struct{}

func (terminalPrompter) AskCity() (string, error) {
	fmt.Fprint(os.Stderr, "Could not determine location automatically. Enter a city name: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func reportWeatherError(w io.Writer, err error, loc location.Location) int {
	switch {
	case errors.Is(err, weather.ErrNotFound):
		if loc.HasCoordinates() {
			fmt.Fprintf(w, "Error: No weather data found for coordinates %.2f, %.2f.\n", *loc.Lat, *loc.Lon)
		} else {
			fmt.Fprintf(w, "Error: City '%s' not found.\n", loc.City)
		}
		return ExitNotFound
	case errors.Is(err, weather.ErrBadAPIKey):
		fmt.Fprintln(w, "Error: Invalid API key.")
		return ExitConfig
	case errors.Is(err, weather.ErrMissingAPIKey):
		printAPIKeyHelp(w)
		return ExitConfig
	case errors.Is(err, weather.ErrRateLimited):
		fmt.Fprintln(w, "Error: Weather API rate limit exceeded. Try again later.")
		return ExitError
	default:
		fmt.Fprintf(w, "Error: Network request failed for %s - %v\n", loc.String(), err)
		return ExitError
	}
}

func printAPIKeyHelp(w io.Writer) {
	fmt.Fprintln(w, "Error: OpenWeather API key not found.")
	fmt.Fprintln(w, "Please set it in one of these ways:")
	fmt.Fprintln(w, "1. Environment variable: export OPENWEATHER_API_KEY=your_key")
	fmt.Fprintln(w, "2. Config file (config.yaml):")
	fmt.Fprintln(w, "   api:")
	fmt.Fprintln(w, "     openweather:")
	fmt.Fprintln(w, "       key: your_api_key_here")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Get your free API key from: https://openweathermap.org/api")
}

func printLocationHelp(w io.Writer, here bool) {
	if here {
		fmt.Fprintln(w, "Error: Could not determine current location. Try specifying a city with --city instead.")
		return
	}
	fmt.Fprintln(w, "Error: Could not determine location.")
	fmt.Fprintln(w, "Either:")
	fmt.Fprintln(w, "1. Use --city 'City Name' to specify a city")
	fmt.Fprintln(w, "2. Configure a default city in config.yaml:")
	fmt.Fprintln(w, "   defaults:")
	fmt.Fprintln(w, "     city: 'Your City'")
}
