package interfaces

import (
	"context"

	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/fleetscope/fleetscope/pkg/domain/types"
)

// Repository owns the loaded device record set. There is exactly one live
// dataset; ReplaceDevices swaps it atomically and a failed replacement
// leaves the prior dataset in place.
type Repository interface {
	// ReplaceDevices atomically replaces the whole dataset under the given
	// load ID. The batch is rejected as a whole if any record is invalid
	// or a device ID repeats.
	ReplaceDevices(ctx context.Context, loadID types.LoadID, records []*model.DeviceRecord) error

	// ListDevices returns a snapshot copy of the current dataset
	ListDevices(ctx context.Context) ([]*model.DeviceRecord, error)

	// ActiveLoad returns the load ID of the current dataset, or the empty
	// ID when nothing has been loaded yet
	ActiveLoad(ctx context.Context) (types.LoadID, error)

	// Close closes the repository connection
	Close() error
}
