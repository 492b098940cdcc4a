package model

import (
	"time"

	"github.com/fleetscope/fleetscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// TrendConfig drives the trend aggregator. It applies on top of the global
// FilterState: the pool is further narrowed to records whose Category field
// equals Value (unless Value is "All") within the sliding window.
type TrendConfig struct {
	Category    types.Dimension   `json:"category"`
	Value       string            `json:"value"`
	Months      int               `json:"months"`
	Granularity types.Granularity `json:"granularity"`
}

// DefaultTrendConfig returns the initial trend configuration
func DefaultTrendConfig() TrendConfig {
	return TrendConfig{
		Category:    types.DimensionRegion,
		Value:       types.AllValues,
		Months:      3,
		Granularity: types.GranularityDaily,
	}
}

// Validate validates the configuration
func (c TrendConfig) Validate() error {
	if !c.Category.IsValid() {
		return goerr.New("invalid trend category", goerr.V("category", c.Category))
	}
	switch c.Months {
	case 1, 3, 6:
	default:
		return goerr.New("trend window must be 1, 3 or 6 months", goerr.V("months", c.Months))
	}
	if !c.Granularity.IsValid() {
		return goerr.New("invalid trend granularity", goerr.V("granularity", c.Granularity))
	}
	return nil
}

// WindowStart computes the start of the sliding window as now minus
// max(1, months*30) days. A month counts as 30 days here, not a calendar
// month; the approximation is intentional and must be preserved.
func (c TrendConfig) WindowStart(now time.Time) Date {
	days := c.Months * 30
	if days < 1 {
		days = 1
	}
	return DateOf(now.AddDate(0, 0, -days))
}

// ScopeMatches reports whether the record falls within the trend category
// scope (ignoring the window)
func (c TrendConfig) ScopeMatches(r *DeviceRecord) bool {
	if c.Value == "" || c.Value == types.AllValues {
		return true
	}
	return r.Field(c.Category) == c.Value
}
