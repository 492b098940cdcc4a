package usecase

import (
	"sort"
	"time"

	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/fleetscope/fleetscope/pkg/domain/types"
)

// filterRecords returns the subset matching every non-"All" filter field.
// An empty result is a valid result.
func filterRecords(records []*model.DeviceRecord, filters model.FilterState) []*model.DeviceRecord {
	if filters.IsAll() {
		return records
	}
	out := make([]*model.DeviceRecord, 0, len(records))
	for _, r := range records {
		if filters.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// tallyDimension counts records per distinct dimension value, keeping
// first-encounter order. Colors come from the catalog palette, cycling by
// slice position. There is deliberately no sort here; the pie keeps
// whatever order the data arrives in.
func tallyDimension(records []*model.DeviceRecord, dim types.Dimension, catalog *model.Catalog) []model.DimensionSlice {
	counts := make(map[string]int, len(records))
	order := make([]string, 0, len(records))
	for _, r := range records {
		v := r.Field(dim)
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	slices := make([]model.DimensionSlice, 0, len(order))
	for i, v := range order {
		slices = append(slices, model.DimensionSlice{
			Value: v,
			Count: counts[v],
			Color: catalog.Color(i),
		})
	}
	return slices
}

// tallyCategory counts pass/fail per distinct category value, sorted
// ascending so the bar chart is deterministic. Empty category values are
// dropped before sorting.
func tallyCategory(records []*model.DeviceRecord, category types.Dimension) []model.CategoryStat {
	type tally struct {
		pass int
		fail int
	}
	byValue := make(map[string]*tally)
	for _, r := range records {
		v := r.Field(category)
		if v == "" {
			continue
		}
		t := byValue[v]
		if t == nil {
			t = &tally{}
			byValue[v] = t
		}
		if r.Status == types.StatusPass {
			t.pass++
		} else {
			t.fail++
		}
	}

	values := make([]string, 0, len(byValue))
	for v := range byValue {
		values = append(values, v)
	}
	sort.Strings(values)

	stats := make([]model.CategoryStat, 0, len(values))
	for _, v := range values {
		t := byValue[v]
		total := t.pass + t.fail
		stats = append(stats, model.CategoryStat{
			Category:  v,
			PassCount: t.pass,
			FailCount: t.fail,
			Total:     total,
			PassRate:  model.PassRate(t.pass, total),
		})
	}
	return stats
}

// tallyTrend buckets the records of the sliding window per period. Every
// period between window start and now is pre-seeded so gaps show up as
// zero-rate points instead of disappearing.
func tallyTrend(records []*model.DeviceRecord, filters model.FilterState, cfg model.TrendConfig, now time.Time) []model.TrendPoint {
	start := cfg.WindowStart(now)
	end := model.DateOf(now)

	type tally struct {
		pass int
		fail int
	}
	buckets := make(map[string]*tally)

	// Pre-seed every period in the window
	for d := start; !d.After(end); {
		buckets[model.FormatPeriod(d, cfg.Granularity)] = &tally{}
		switch cfg.Granularity {
		case types.GranularityWeekly:
			d = d.AddDays(7)
		case types.GranularityMonthly:
			d = d.AddMonths(1)
		default:
			d = d.AddDays(1)
		}
	}

	for _, r := range records {
		if !filters.Matches(r) || !cfg.ScopeMatches(r) {
			continue
		}
		if r.LastSeen.Before(start) || r.LastSeen.After(end) {
			continue
		}
		key := model.FormatPeriod(r.LastSeen, cfg.Granularity)
		t := buckets[key]
		if t == nil {
			t = &tally{}
			buckets[key] = t
		}
		if r.Status == types.StatusPass {
			t.pass++
		} else {
			t.fail++
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	points := make([]model.TrendPoint, 0, len(keys))
	for _, k := range keys {
		t := buckets[k]
		total := t.pass + t.fail
		points = append(points, model.TrendPoint{
			Period:    k,
			PassCount: t.pass,
			FailCount: t.fail,
			Total:     total,
			PassRate:  model.PassRate(t.pass, total),
		})
	}
	return points
}

// distinctValues lists the distinct observed values of a dimension in
// sorted order
func distinctValues(records []*model.DeviceRecord, dim types.Dimension) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		if v := r.Field(dim); v != "" {
			seen[v] = true
		}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
