package usecase

import (
	"strings"

	"github.com/fleetscope/fleetscope/pkg/domain/model"
)

// exportColumns is the fixed CSV column list
var exportColumns = []string{
	"id", "name", "region", "country", "productType", "deviceType", "status", "lastSeen",
}

// ExportCSV serializes rows as CSV: a header line plus one line per row,
// every field individually quoted, joined by newline. Empty input yields
// the empty string so callers can skip producing a file at all.
func ExportCSV(rows []*model.DeviceRecord) string {
	if len(rows) == 0 {
		return ""
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, csvLine(exportColumns))
	for _, r := range rows {
		lines = append(lines, csvLine([]string{
			r.ID.String(),
			r.Name,
			r.Region,
			r.Country,
			r.ProductType,
			r.DeviceType,
			r.Status.String(),
			r.LastSeen.String(),
		}))
	}
	return strings.Join(lines, "\n")
}

// csvLine quotes every field, doubling embedded quotes
func csvLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
