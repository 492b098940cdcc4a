package usecase

import (
	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/fleetscope/fleetscope/pkg/domain/types"
)

// lookupRows re-filters the globally-filtered subset against the active
// selection. No selection yields no rows; an unknown key simply matches
// nothing.
func lookupRows(records []*model.DeviceRecord, sel model.Selection) []*model.DeviceRecord {
	if sel.IsNone() {
		return nil
	}

	out := make([]*model.DeviceRecord, 0, len(records))
	for _, r := range records {
		if matchesSelection(r, sel) {
			out = append(out, r)
		}
	}
	return out
}

func matchesSelection(r *model.DeviceRecord, sel model.Selection) bool {
	switch sel.Kind {
	case model.SelectionSlice:
		if r.Field(sel.Dimension) != sel.Value {
			return false
		}
		// Slice selections normally carry no status, but honor one when set
		if sel.Status.IsValid() && r.Status != sel.Status {
			return false
		}
		return true

	case model.SelectionBar:
		return r.Field(sel.Dimension) == sel.Value && r.Status == sel.Status

	case model.SelectionPeriod:
		if sel.Value != "" && sel.Value != types.AllValues && r.Field(sel.Dimension) != sel.Value {
			return false
		}
		return model.FormatPeriod(r.LastSeen, sel.Granularity) == sel.Period
	}
	return false
}
