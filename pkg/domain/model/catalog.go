package model

import "github.com/m-mizutani/goerr/v2"

// Catalog describes the known category values per dimension and the chart
// palette. It seeds the mock dataset generator and supplies the cyclic
// slice colors; observed data may still contain values outside the catalog.
type Catalog struct {
	Regions      []string `yaml:"regions"`
	Countries    []string `yaml:"countries"`
	ProductTypes []string `yaml:"product_types"`
	DeviceTypes  []string `yaml:"device_types"`
	Palette      []string `yaml:"palette,omitempty"`
}

// defaultPalette is the fixed chart color cycle
var defaultPalette = []string{
	"#2563eb", "#16a34a", "#dc2626", "#d97706",
	"#7c3aed", "#0891b2", "#db2777", "#65a30d",
}

// DefaultCatalog returns the built-in catalog used when no YAML file is
// provided
func DefaultCatalog() *Catalog {
	return &Catalog{
		Regions:      []string{"EMEA", "APAC", "AMER", "LATAM"},
		Countries:    []string{"Germany", "France", "UK", "Japan", "Singapore", "USA", "Canada", "Brazil"},
		ProductTypes: []string{"Firewall", "Router", "Switch", "Access Point"},
		DeviceTypes:  []string{"Physical", "Virtual", "Cloud"},
		Palette:      defaultPalette,
	}
}

// Validate validates the catalog
func (c *Catalog) Validate() error {
	if len(c.Regions) == 0 {
		return goerr.New("at least one region is required")
	}
	if len(c.Countries) == 0 {
		return goerr.New("at least one country is required")
	}
	if len(c.ProductTypes) == 0 {
		return goerr.New("at least one product type is required")
	}
	if len(c.DeviceTypes) == 0 {
		return goerr.New("at least one device type is required")
	}
	return nil
}

// Color returns the palette color for the given slice position. The
// palette repeats when positions outrun it.
func (c *Catalog) Color(position int) string {
	palette := c.Palette
	if len(palette) == 0 {
		palette = defaultPalette
	}
	if position < 0 {
		position = 0
	}
	return palette[position%len(palette)]
}
