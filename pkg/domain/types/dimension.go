package types

import "github.com/m-mizutani/goerr/v2"

// Dimension is one of the four categorical attributes of a device record.
// It selects which field the pie chart slices on, the bar chart groups by,
// or the trend series is scoped to.
type Dimension string

const (
	DimensionRegion      Dimension = "region"
	DimensionCountry     Dimension = "country"
	DimensionProductType Dimension = "productType"
	DimensionDeviceType  Dimension = "deviceType"
)

// Dimensions returns all categorical dimensions in display order
func Dimensions() []Dimension {
	return []Dimension{
		DimensionRegion,
		DimensionCountry,
		DimensionProductType,
		DimensionDeviceType,
	}
}

// IsValid checks if the dimension is one of the known values
func (d Dimension) IsValid() bool {
	switch d {
	case DimensionRegion, DimensionCountry, DimensionProductType, DimensionDeviceType:
		return true
	}
	return false
}

// String returns the string representation
func (d Dimension) String() string {
	return string(d)
}

// ParseDimension parses a string into a Dimension
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(s)
	if !d.IsValid() {
		return "", goerr.New("unknown dimension", goerr.V("dimension", s))
	}
	return d, nil
}
