// Package server exposes the weather lookup over HTTP for --serve mode.
package server

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/i474232898/weather-cli/internal/location"
	"github.com/i474232898/weather-cli/internal/weather"
)

var validate = validator.New()

// Server serves weather reports for requested cities.
type Server struct {
	fetcher weather.Fetcher
	units   string
	log     *slog.Logger
}

// New builds the HTTP server around a fetcher. units is the default for
// requests that do not specify one.
func New(fetcher weather.Fetcher, units string, log *slog.Logger) *Server {
	return &Server{fetcher: fetcher, units: units, log: log}
}

// App assembles the Fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-cli",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-cli",
		})
	})

	v1 := app.Group("/api/v1")
	v1.Get("/weather", s.handleWeather)

	// wttr.in style: curl host/London
	app.Get("/:city", s.handleCityText)

	return app
}

// weatherQuery holds the query parameters for the JSON endpoint.
type weatherQuery struct {
	City  string `validate:"required"`
	Units string `validate:"omitempty,oneof=metric imperial"`
}

func (s *Server) handleWeather(c *fiber.Ctx) error {
	q := weatherQuery{
		City:  c.Query("city"),
		Units: c.Query("units"),
	}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	report, err := s.fetch(c, q.City, q.Units)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"city":        report.City,
		"country":     report.Country,
		"temperature": report.Temperature,
		"feels_like":  report.FeelsLike,
		"humidity":    report.Humidity,
		"description": report.Description,
		"icon":        report.Icon,
		"units":       report.Units,
	})
}

func (s *Server) handleCityText(c *fiber.Ctx) error {
	city := c.Params("city")
	report, err := s.fetch(c, city, c.Query("units"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(weather.FormatReport(report) + "\n")
}

func (s *Server) fetch(c *fiber.Ctx, city, units string) (weather.Report, error) {
	if units == "" {
		units = s.units
	}

	report, err := s.fetcher.Current(c.Context(), location.FromCity(city, location.SourceExplicit), units)
	switch {
	case err == nil:
		return report, nil
	case errors.Is(err, weather.ErrNotFound):
		return weather.Report{}, fiber.NewError(fiber.StatusNotFound, "city '"+city+"' not found")
	case errors.Is(err, weather.ErrBadAPIKey), errors.Is(err, weather.ErrMissingAPIKey):
		s.log.Warn("weather api credentials rejected", "err", err)
		return weather.Report{}, fiber.NewError(fiber.StatusBadGateway, "weather api credentials rejected")
	case errors.Is(err, weather.ErrRateLimited):
		return weather.Report{}, fiber.NewError(fiber.StatusServiceUnavailable, "weather api rate limit exceeded")
	default:
		s.log.Warn("weather lookup failed", "city", city, "err", err)
		return weather.Report{}, fiber.NewError(fiber.StatusBadGateway, "weather lookup failed")
	}
}

// Run serves on the port until SIGINT or SIGTERM, then shuts down
// gracefully.
func (s *Server) Run(port string) error {
	app := s.App()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(":" + port)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
