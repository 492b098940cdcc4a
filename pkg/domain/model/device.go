package model

import (
	"github.com/fleetscope/fleetscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// DeviceRecord is one compliance observation of a managed device
type DeviceRecord struct {
	ID          types.DeviceID         `json:"id"`
	Name        string                 `json:"name"`
	Region      string                 `json:"region"`
	Country     string                 `json:"country"`
	ProductType string                 `json:"productType"`
	DeviceType  string                 `json:"deviceType"`
	Status      types.ComplianceStatus `json:"status"`
	LastSeen    Date                   `json:"lastSeen"`
}

// Validate validates the record
func (r *DeviceRecord) Validate() error {
	if r.Name == "" {
		return goerr.New("device name is required", goerr.V("id", r.ID))
	}
	if !r.Status.IsValid() {
		return goerr.New("invalid compliance status",
			goerr.V("id", r.ID),
			goerr.V("status", r.Status))
	}
	if r.LastSeen.IsZero() {
		return goerr.New("lastSeen date is required", goerr.V("id", r.ID))
	}
	return nil
}

// Field returns the value of the given categorical dimension. This is the
// typed replacement for dynamic field indexing: each dimension maps to
// exactly one getter, unknown dimensions yield the empty string.
func (r *DeviceRecord) Field(dim types.Dimension) string {
	switch dim {
	case types.DimensionRegion:
		return r.Region
	case types.DimensionCountry:
		return r.Country
	case types.DimensionProductType:
		return r.ProductType
	case types.DimensionDeviceType:
		return r.DeviceType
	}
	return ""
}
