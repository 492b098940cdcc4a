package config

import (
	"log/slog"

	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/fleetscope/fleetscope/pkg/service/seed"
	"github.com/urfave/cli/v3"
)

// Seed holds mock dataset configuration
type Seed struct {
	Count     int64
	PassRatio float64
	RandSeed  int64
}

// Flags returns CLI flags for Seed configuration
func (s *Seed) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "seed-count",
			Usage:       "Number of mock records to generate",
			Category:    "Mock data",
			Value:       seed.DefaultCount,
			Sources:     cli.EnvVars("FLEETSCOPE_SEED_COUNT"),
			Destination: &s.Count,
		},
		&cli.FloatFlag{
			Name:        "seed-pass-ratio",
			Usage:       "Fraction of mock records with Pass status",
			Category:    "Mock data",
			Value:       seed.DefaultPassRatio,
			Sources:     cli.EnvVars("FLEETSCOPE_SEED_PASS_RATIO"),
			Destination: &s.PassRatio,
		},
		&cli.Int64Flag{
			Name:        "seed-rand",
			Usage:       "Random seed of the mock generator",
			Category:    "Mock data",
			Value:       1,
			Sources:     cli.EnvVars("FLEETSCOPE_SEED_RAND"),
			Destination: &s.RandSeed,
		},
	}
}

// Configure creates the mock dataset generator
func (s *Seed) Configure(catalog *model.Catalog) *seed.Generator {
	return seed.New(catalog,
		seed.WithCount(int(s.Count)),
		seed.WithPassRatio(s.PassRatio),
		seed.WithSeed(s.RandSeed),
	)
}

// LogValue returns structured log value
func (s Seed) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("count", s.Count),
		slog.Float64("passRatio", s.PassRatio),
	)
}
