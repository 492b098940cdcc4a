package config

import (
	"log/slog"
	"time"

	"github.com/fleetscope/fleetscope/pkg/service/source"
	"github.com/urfave/cli/v3"
)

// Source holds external data source configuration
type Source struct {
	BaseURL      string
	Timeout      time.Duration
	WindowMonths int64
}

// Flags returns CLI flags for Source configuration
func (s *Source) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "source-url",
			Usage:       "Base URL of the compliance data source (empty: mock data only)",
			Category:    "Data source",
			Sources:     cli.EnvVars("FLEETSCOPE_SOURCE_URL"),
			Destination: &s.BaseURL,
		},
		&cli.DurationFlag{
			Name:        "source-timeout",
			Usage:       "Timeout for data source requests",
			Category:    "Data source",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("FLEETSCOPE_SOURCE_TIMEOUT"),
			Destination: &s.Timeout,
		},
		&cli.Int64Flag{
			Name:        "source-window-months",
			Usage:       "How many trailing months to request on load",
			Category:    "Data source",
			Value:       6,
			Sources:     cli.EnvVars("FLEETSCOPE_SOURCE_WINDOW_MONTHS"),
			Destination: &s.WindowMonths,
		},
	}
}

// IsConfigured checks if a data source is configured
func (s *Source) IsConfigured() bool {
	return s.BaseURL != ""
}

// Configure creates the data source client, or nil when not configured
func (s *Source) Configure() *source.Client {
	if !s.IsConfigured() {
		return nil
	}
	return source.New(s.BaseURL, source.WithTimeout(s.Timeout))
}

// LogValue returns structured log value
func (s Source) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("baseURL", s.BaseURL),
		slog.Duration("timeout", s.Timeout),
		slog.Int64("windowMonths", s.WindowMonths),
	)
}
