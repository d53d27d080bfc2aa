package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables. Each one wins over the corresponding config.yaml
// entry.
const (
	EnvAPIKey      = "OPENWEATHER_API_KEY"
	EnvDefaultCity = "WEATHER_DEFAULT_CITY"
	EnvUnits       = "WEATHER_UNITS"
	EnvConfigPath  = "WEATHER_CONFIG"
	EnvPort        = "PORT"
)

// DefaultPath is the config file looked up when WEATHER_CONFIG is unset.
const DefaultPath = "config.yaml"

var validate = validator.New()

// Config is the assembled application configuration.
type Config struct {
	// APIKey authenticates against OpenWeatherMap. May be empty; the CLI
	// reports the remediation steps when a weather lookup needs it.
	APIKey string

	// DefaultCity is used when neither an explicit city nor a resolved
	// current location is available.
	DefaultCity string

	Units string `validate:"oneof=metric imperial"`

	// Port for --serve mode.
	Port string `validate:"numeric"`

	// HTTPTimeout bounds weather API requests; NativeTimeout and
	// NetworkTimeout bound the respective location tiers.
	HTTPTimeout    time.Duration
	NativeTimeout  time.Duration
	NetworkTimeout time.Duration
}

// fileConfig is the config.yaml shape:
//
//	api:
//	  openweather:
//	    key: ...
//	defaults:
//	  city: London
//	  units: metric
//	server:
//	  port: "8080"
type fileConfig struct {
	API struct {
		OpenWeather struct {
			Key string `yaml:"key"`
		} `yaml:"openweather"`
	} `yaml:"api"`
	Defaults struct {
		City  string `yaml:"city"`
		Units string `yaml:"units"`
	} `yaml:"defaults"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// Load reads .env, the config file, and the environment, in increasing
// precedence, and validates the result.
func Load() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = DefaultPath
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit config file path. A missing file is
// fine; a malformed one is an error.
func LoadFrom(path string) (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	var fc fileConfig
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := &Config{
		APIKey:         firstNonEmpty(os.Getenv(EnvAPIKey), fc.API.OpenWeather.Key),
		DefaultCity:    firstNonEmpty(os.Getenv(EnvDefaultCity), fc.Defaults.City),
		Units:          firstNonEmpty(os.Getenv(EnvUnits), fc.Defaults.Units, "metric"),
		Port:           firstNonEmpty(os.Getenv(EnvPort), fc.Server.Port, "8080"),
		HTTPTimeout:    getenvDuration("WEATHER_HTTP_TIMEOUT", 10*time.Second),
		NativeTimeout:  getenvDuration("WEATHER_NATIVE_TIMEOUT", 5*time.Second),
		NetworkTimeout: getenvDuration("WEATHER_NETWORK_TIMEOUT", 5*time.Second),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
