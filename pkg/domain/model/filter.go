package model

import "github.com/fleetscope/fleetscope/pkg/domain/types"

// FilterState holds the four global filter selections. Each field is either
// a concrete category value or empty / "All", both meaning no restriction.
// The zero value filters nothing.
type FilterState struct {
	Region      string `json:"region"`
	Country     string `json:"country"`
	ProductType string `json:"productType"`
	DeviceType  string `json:"deviceType"`
}

// value returns the filter value for the given dimension
func (f FilterState) value(dim types.Dimension) string {
	switch dim {
	case types.DimensionRegion:
		return f.Region
	case types.DimensionCountry:
		return f.Country
	case types.DimensionProductType:
		return f.ProductType
	case types.DimensionDeviceType:
		return f.DeviceType
	}
	return ""
}

// restricts reports whether the filter value constrains anything
func restricts(v string) bool {
	return v != "" && v != types.AllValues
}

// Matches reports whether the record passes every non-"All" field
func (f FilterState) Matches(r *DeviceRecord) bool {
	for _, dim := range types.Dimensions() {
		if v := f.value(dim); restricts(v) && r.Field(dim) != v {
			return false
		}
	}
	return true
}

// IsAll reports whether no field restricts the dataset
func (f FilterState) IsAll() bool {
	for _, dim := range types.Dimensions() {
		if restricts(f.value(dim)) {
			return false
		}
	}
	return true
}
