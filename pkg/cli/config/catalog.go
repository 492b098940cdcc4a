package config

import (
	"log/slog"
	"os"

	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Catalog holds dimension catalog configuration
type Catalog struct {
	Path string
}

// Flags returns CLI flags for Catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to the dimension catalog YAML (empty: built-in catalog)",
			Category:    "Catalog",
			Sources:     cli.EnvVars("FLEETSCOPE_CATALOG"),
			Destination: &c.Path,
		},
	}
}

// Configure loads the catalog from YAML, falling back to the built-in one
func (c *Catalog) Configure() (*model.Catalog, error) {
	if c.Path == "" {
		return model.DefaultCatalog(), nil
	}
	return LoadCatalogFromFile(c.Path)
}

// LogValue returns structured log value
func (c Catalog) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", c.Path),
	)
}

// LoadCatalogFromFile loads a dimension catalog from a YAML file
func LoadCatalogFromFile(path string) (*model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "catalog file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read catalog file",
			goerr.V("path", path))
	}

	var catalog model.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, goerr.Wrap(err, "failed to parse catalog YAML",
			goerr.V("path", path))
	}

	if err := catalog.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid catalog",
			goerr.V("path", path))
	}

	return &catalog, nil
}
