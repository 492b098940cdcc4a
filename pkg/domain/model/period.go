package model

import (
	"fmt"
	"time"

	"github.com/fleetscope/fleetscope/pkg/domain/types"
)

// FormatPeriod maps a date onto its trend bucket label:
//
//	daily   -> YYYY-MM-DD
//	monthly -> YYYY-MM
//	weekly  -> YYYY-Wnn
//
// The week number is ceil((dayOfYear0 + jan1Weekday + 1) / 7) with
// dayOfYear0 counted from zero and weekday Sunday=0. This is deliberately
// not strict ISO-8601 week numbering; stored period labels depend on the
// approximation, so do not "fix" it.
func FormatPeriod(d Date, g types.Granularity) string {
	t := d.Time()
	switch g {
	case types.GranularityMonthly:
		return t.Format("2006-01")
	case types.GranularityWeekly:
		jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		days := int(t.Sub(jan1).Hours() / 24)
		week := (days + int(jan1.Weekday()) + 1 + 6) / 7
		return fmt.Sprintf("%04d-W%02d", t.Year(), week)
	default:
		return t.Format("2006-01-02")
	}
}
