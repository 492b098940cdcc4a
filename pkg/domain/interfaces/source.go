package interfaces

import (
	"context"

	"github.com/fleetscope/fleetscope/pkg/domain/model"
)

// DeviceQuery is the request to the external compliance data source
type DeviceQuery struct {
	From    model.Date
	To      model.Date
	Filters model.FilterState
}

// DeviceSource fetches compliance observations from the external data
// source. A malformed or non-OK response is returned as an error; the
// caller decides what dataset stays active.
type DeviceSource interface {
	FetchDevices(ctx context.Context, q DeviceQuery) ([]*model.DeviceRecord, error)
}
