package repository

import (
	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/fleetscope/fleetscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// validateBatch checks a replacement batch and returns defensive copies.
// Any invalid record or duplicated device ID rejects the whole batch so
// the prior dataset stays active.
func validateBatch(loadID types.LoadID, records []*model.DeviceRecord) ([]*model.DeviceRecord, error) {
	if loadID == "" {
		return nil, goerr.New("load ID is empty")
	}

	copied := make([]*model.DeviceRecord, 0, len(records))
	seen := make(map[types.DeviceID]bool, len(records))
	for i, r := range records {
		if r == nil {
			return nil, goerr.New("nil device record in batch",
				goerr.V("loadID", loadID),
				goerr.V("index", i))
		}
		if err := r.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid device record in batch",
				goerr.V("loadID", loadID),
				goerr.V("index", i))
		}
		if seen[r.ID] {
			return nil, goerr.New("duplicate device ID in batch",
				goerr.V("loadID", loadID),
				goerr.V("id", r.ID))
		}
		seen[r.ID] = true

		rCopy := *r
		copied = append(copied, &rCopy)
	}
	return copied, nil
}
