package model

import (
	"github.com/fleetscope/fleetscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// SelectionKind discriminates the Selection union
type SelectionKind string

const (
	SelectionNone   SelectionKind = "none"
	SelectionSlice  SelectionKind = "slice"
	SelectionBar    SelectionKind = "bar"
	SelectionPeriod SelectionKind = "period"
)

// Selection records which chart element the user last clicked. It is a
// tagged union: exactly the fields of the active variant are set, so the
// "at most one selection" rule holds by construction. The zero value is
// the none-selection.
type Selection struct {
	Kind SelectionKind `json:"kind"`

	// Slice variant: a pie slice of Dimension with value Value.
	// Status is optional and normally unset for slices.
	// Bar variant: a Pass or Fail segment of the Value bar grouped by
	// Dimension, with Status set.
	Dimension types.Dimension        `json:"dimension,omitempty"`
	Value     string                 `json:"value,omitempty"`
	Status    types.ComplianceStatus `json:"status,omitempty"`

	// Period variant: a formatted trend bucket label, scoped by the trend
	// category/value and granularity captured at click time.
	Period      string            `json:"period,omitempty"`
	Granularity types.Granularity `json:"granularity,omitempty"`
}

// NewSliceSelection creates a pie slice selection
func NewSliceSelection(dim types.Dimension, value string) Selection {
	return Selection{Kind: SelectionSlice, Dimension: dim, Value: value}
}

// NewBarSelection creates a bar segment selection
func NewBarSelection(category types.Dimension, value string, status types.ComplianceStatus) Selection {
	return Selection{Kind: SelectionBar, Dimension: category, Value: value, Status: status}
}

// NewPeriodSelection creates a trend point selection. The trend scope
// (category, value, granularity) is captured from the config active at
// click time.
func NewPeriodSelection(period string, category types.Dimension, value string, granularity types.Granularity) Selection {
	return Selection{
		Kind:        SelectionPeriod,
		Dimension:   category,
		Value:       value,
		Period:      period,
		Granularity: granularity,
	}
}

// IsNone reports whether nothing is selected
func (s Selection) IsNone() bool {
	return s.Kind == "" || s.Kind == SelectionNone
}

// Validate validates the selection
func (s Selection) Validate() error {
	switch s.Kind {
	case "", SelectionNone:
		return nil
	case SelectionSlice:
		if !s.Dimension.IsValid() {
			return goerr.New("slice selection requires a valid dimension",
				goerr.V("dimension", s.Dimension))
		}
		if s.Value == "" {
			return goerr.New("slice selection requires a value")
		}
	case SelectionBar:
		if !s.Dimension.IsValid() {
			return goerr.New("bar selection requires a valid category",
				goerr.V("category", s.Dimension))
		}
		if s.Value == "" {
			return goerr.New("bar selection requires a category value")
		}
		if !s.Status.IsValid() {
			return goerr.New("bar selection requires a status",
				goerr.V("status", s.Status))
		}
	case SelectionPeriod:
		if s.Period == "" {
			return goerr.New("period selection requires a period label")
		}
		if !s.Granularity.IsValid() {
			return goerr.New("period selection requires a granularity",
				goerr.V("granularity", s.Granularity))
		}
	default:
		return goerr.New("unknown selection kind", goerr.V("kind", s.Kind))
	}
	return nil
}
