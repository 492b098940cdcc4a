package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/fleetscope/fleetscope/pkg/domain/interfaces"
	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/fleetscope/fleetscope/pkg/domain/types"
	"github.com/fleetscope/fleetscope/pkg/repository"
	"github.com/fleetscope/fleetscope/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func fixedNow() time.Time {
	return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
}

type record struct {
	id       int
	region   string
	country  string
	product  string
	device   string
	status   types.ComplianceStatus
	lastSeen model.Date
}

func buildRecords(rows []record) []*model.DeviceRecord {
	out := make([]*model.DeviceRecord, 0, len(rows))
	for _, s := range rows {
		out = append(out, &model.DeviceRecord{
			ID:          types.DeviceID(s.id),
			Name:        "device",
			Region:      s.region,
			Country:     s.country,
			ProductType: s.product,
			DeviceType:  s.device,
			Status:      s.status,
			LastSeen:    s.lastSeen,
		})
	}
	return out
}

func newDashboard(t *testing.T, records []*model.DeviceRecord) (*usecase.Dashboard, interfaces.Repository) {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemory()
	gt.NoError(t, repo.ReplaceDevices(ctx, types.NewLoadID(), records))
	uc := usecase.NewDashboard(repo, model.DefaultCatalog(), usecase.WithClock(fixedNow))
	return uc, repo
}

func sampleRecords() []*model.DeviceRecord {
	seen := model.NewDate(2025, 3, 1)
	return buildRecords([]record{
		{1, "EMEA", "Germany", "Firewall", "Physical", types.StatusPass, seen},
		{2, "EMEA", "France", "Router", "Virtual", types.StatusFail, seen},
		{3, "APAC", "Japan", "Firewall", "Physical", types.StatusPass, seen},
		{4, "APAC", "Japan", "Switch", "Cloud", types.StatusFail, seen},
		{5, "AMER", "USA", "Firewall", "Virtual", types.StatusPass, seen},
	})
}

func TestPieCountsSumToInput(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDashboard(t, sampleRecords())

	slices, err := uc.Pie(ctx, types.DimensionRegion)
	gt.NoError(t, err)

	total := 0
	seen := map[string]bool{}
	for _, s := range slices {
		total += s.Count
		gt.False(t, seen[s.Value])
		seen[s.Value] = true
	}
	gt.Equal(t, total, 5)
}

func TestPieKeepsEncounterOrder(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDashboard(t, sampleRecords())

	slices, err := uc.Pie(ctx, types.DimensionRegion)
	gt.NoError(t, err)

	// First-encounter order of the record set, not sorted
	gt.Equal(t, len(slices), 3)
	gt.Equal(t, slices[0].Value, "EMEA")
	gt.Equal(t, slices[1].Value, "APAC")
	gt.Equal(t, slices[2].Value, "AMER")

	catalog := model.DefaultCatalog()
	gt.Equal(t, slices[0].Color, catalog.Color(0))
	gt.Equal(t, slices[1].Color, catalog.Color(1))
}

func TestPieEmptyDataset(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDashboard(t, nil)

	slices, err := uc.Pie(ctx, types.DimensionRegion)
	gt.NoError(t, err)
	gt.Equal(t, len(slices), 0)
}

func TestPieRejectsUnknownDimension(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDashboard(t, sampleRecords())

	_, err := uc.Pie(ctx, types.Dimension("bogus"))
	gt.Error(t, err)
}

func TestBarSortedAndCounted(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDashboard(t, sampleRecords())

	stats, err := uc.Bar(ctx, types.DimensionRegion)
	gt.NoError(t, err)

	// Lexicographic order, unlike the pie
	gt.Equal(t, len(stats), 3)
	gt.Equal(t, stats[0].Category, "AMER")
	gt.Equal(t, stats[1].Category, "APAC")
	gt.Equal(t, stats[2].Category, "EMEA")

	for _, s := range stats {
		gt.Equal(t, s.PassCount+s.FailCount, s.Total)
		gt.True(t, s.PassRate >= 0 && s.PassRate <= 100)
	}

	gt.Equal(t, stats[1].PassCount, 1)
	gt.Equal(t, stats[1].FailCount, 1)
	gt.Equal(t, stats[1].PassRate, 50.0)
}

func TestBarDropsEmptyValues(t *testing.T) {
	ctx := context.Background()
	seen := model.NewDate(2025, 3, 1)
	records := buildRecords([]record{
		{1, "EMEA", "", "Firewall", "Physical", types.StatusPass, seen},
		{2, "EMEA", "Germany", "Firewall", "Physical", types.StatusPass, seen},
	})
	uc, _ := newDashboard(t, records)

	stats, err := uc.Bar(ctx, types.DimensionCountry)
	gt.NoError(t, err)
	gt.Equal(t, len(stats), 1)
	gt.Equal(t, stats[0].Category, "Germany")
}

func TestBarSingleRegionScenario(t *testing.T) {
	// 100 records, 60 Pass / 40 Fail, all in EMEA
	ctx := context.Background()
	seen := model.NewDate(2025, 3, 1)
	rows := make([]record, 0, 100)
	for i := 0; i < 100; i++ {
		status := types.StatusPass
		if i >= 60 {
			status = types.StatusFail
		}
		rows = append(rows, record{i + 1, "EMEA", "Germany", "Firewall", "Physical", status, seen})
	}
	uc, _ := newDashboard(t, buildRecords(rows))

	stats, err := uc.Bar(ctx, types.DimensionRegion)
	gt.NoError(t, err)
	gt.Equal(t, len(stats), 1)
	gt.Equal(t, stats[0], model.CategoryStat{
		Category:  "EMEA",
		PassCount: 60,
		FailCount: 40,
		Total:     100,
		PassRate:  60,
	})
}

func TestGlobalFiltersNarrowAggregations(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDashboard(t, sampleRecords())

	uc.SetFilters(model.FilterState{Region: "APAC"})

	slices, err := uc.Pie(ctx, types.DimensionCountry)
	gt.NoError(t, err)
	gt.Equal(t, len(slices), 1)
	gt.Equal(t, slices[0].Value, "Japan")
	gt.Equal(t, slices[0].Count, 2)
}

func TestTrendPreSeedsEmptyBuckets(t *testing.T) {
	ctx := context.Background()
	records := buildRecords([]record{
		{1, "EMEA", "Germany", "Firewall", "Physical", types.StatusPass, model.NewDate(2025, 3, 1)},
		{2, "EMEA", "Germany", "Firewall", "Physical", types.StatusFail, model.NewDate(2025, 3, 1)},
		// Outside the 1-month window
		{3, "EMEA", "Germany", "Firewall", "Physical", types.StatusPass, model.NewDate(2025, 2, 1)},
	})
	uc, _ := newDashboard(t, records)

	gt.NoError(t, uc.SetTrendConfig(model.TrendConfig{
		Category:    types.DimensionRegion,
		Value:       types.AllValues,
		Months:      1,
		Granularity: types.GranularityDaily,
	}))

	points, err := uc.Trend(ctx)
	gt.NoError(t, err)

	// Window is 2025-02-13 .. 2025-03-15 inclusive: 31 daily buckets,
	// all present even when empty
	gt.Equal(t, len(points), 31)
	gt.Equal(t, points[0].Period, "2025-02-13")
	gt.Equal(t, points[len(points)-1].Period, "2025-03-15")

	byPeriod := map[string]model.TrendPoint{}
	for i, p := range points {
		if i > 0 {
			gt.True(t, points[i-1].Period < p.Period)
		}
		byPeriod[p.Period] = p
	}

	gt.Equal(t, byPeriod["2025-03-01"].PassCount, 1)
	gt.Equal(t, byPeriod["2025-03-01"].FailCount, 1)
	gt.Equal(t, byPeriod["2025-03-01"].PassRate, 50.0)

	empty := byPeriod["2025-03-10"]
	gt.Equal(t, empty.Total, 0)
	gt.Equal(t, empty.PassRate, 0.0)

	// The 2025-02-01 record is outside the window
	total := 0
	for _, p := range points {
		total += p.Total
	}
	gt.Equal(t, total, 2)
}

func TestTrendMonthlyBuckets(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDashboard(t, nil)

	gt.NoError(t, uc.SetTrendConfig(model.TrendConfig{
		Category:    types.DimensionRegion,
		Value:       types.AllValues,
		Months:      1,
		Granularity: types.GranularityMonthly,
	}))

	points, err := uc.Trend(ctx)
	gt.NoError(t, err)

	// Pre-seed walks 2025-02-13 then 2025-03-13
	gt.Equal(t, len(points), 2)
	gt.Equal(t, points[0].Period, "2025-02")
	gt.Equal(t, points[1].Period, "2025-03")
}

func TestTrendScopedToCategoryValue(t *testing.T) {
	ctx := context.Background()
	seen := model.NewDate(2025, 3, 1)
	records := buildRecords([]record{
		{1, "EMEA", "Germany", "Firewall", "Physical", types.StatusPass, seen},
		{2, "APAC", "Japan", "Firewall", "Physical", types.StatusPass, seen},
	})
	uc, _ := newDashboard(t, records)

	gt.NoError(t, uc.SetTrendConfig(model.TrendConfig{
		Category:    types.DimensionRegion,
		Value:       "APAC",
		Months:      1,
		Granularity: types.GranularityDaily,
	}))

	points, err := uc.Trend(ctx)
	gt.NoError(t, err)

	total := 0
	for _, p := range points {
		total += p.Total
	}
	gt.Equal(t, total, 1)
}

func TestSelectionLifecycle(t *testing.T) {
	uc, _ := newDashboard(t, sampleRecords())

	gt.NoError(t, uc.Select(model.NewSliceSelection(types.DimensionRegion, "EMEA")))
	gt.Equal(t, uc.Selection().Kind, model.SelectionSlice)

	// A new selection replaces the old one
	gt.NoError(t, uc.Select(model.NewBarSelection(types.DimensionCountry, "Japan", types.StatusFail)))
	gt.Equal(t, uc.Selection().Kind, model.SelectionBar)

	// Filter changes clear the selection
	uc.SetFilters(model.FilterState{Region: "EMEA"})
	gt.True(t, uc.Selection().IsNone())

	// Trend config changes clear it too
	gt.NoError(t, uc.Select(model.NewSliceSelection(types.DimensionRegion, "EMEA")))
	gt.NoError(t, uc.SetTrendConfig(model.DefaultTrendConfig()))
	gt.True(t, uc.Selection().IsNone())

	// Explicit clear
	gt.NoError(t, uc.Select(model.NewSliceSelection(types.DimensionRegion, "EMEA")))
	uc.ClearSelection()
	gt.True(t, uc.Selection().IsNone())
}

func TestPeriodSelectionCapturesTrendScope(t *testing.T) {
	uc, _ := newDashboard(t, sampleRecords())

	gt.NoError(t, uc.SetTrendConfig(model.TrendConfig{
		Category:    types.DimensionCountry,
		Value:       "Japan",
		Months:      3,
		Granularity: types.GranularityWeekly,
	}))

	gt.NoError(t, uc.Select(model.Selection{Kind: model.SelectionPeriod, Period: "2025-W11"}))

	sel := uc.Selection()
	gt.Equal(t, sel.Dimension, types.DimensionCountry)
	gt.Equal(t, sel.Value, "Japan")
	gt.Equal(t, sel.Granularity, types.GranularityWeekly)
}

func TestRowsSliceRoundTrip(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDashboard(t, sampleRecords())

	slices, err := uc.Pie(ctx, types.DimensionRegion)
	gt.NoError(t, err)

	for _, s := range slices {
		gt.NoError(t, uc.Select(model.NewSliceSelection(types.DimensionRegion, s.Value)))
		rows, err := uc.Rows(ctx)
		gt.NoError(t, err)
		gt.Equal(t, len(rows), s.Count)
		for _, r := range rows {
			gt.Equal(t, r.Region, s.Value)
		}
	}
}

func TestRowsBarSelection(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDashboard(t, sampleRecords())

	gt.NoError(t, uc.Select(model.NewBarSelection(types.DimensionCountry, "Japan", types.StatusFail)))
	rows, err := uc.Rows(ctx)
	gt.NoError(t, err)
	gt.Equal(t, len(rows), 1)
	gt.Equal(t, rows[0].ID, types.DeviceID(4))
}

func TestRowsPeriodSelection(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDashboard(t, sampleRecords())

	gt.NoError(t, uc.SetTrendConfig(model.TrendConfig{
		Category:    types.DimensionRegion,
		Value:       types.AllValues,
		Months:      1,
		Granularity: types.GranularityDaily,
	}))
	gt.NoError(t, uc.Select(model.Selection{Kind: model.SelectionPeriod, Period: "2025-03-01"}))

	rows, err := uc.Rows(ctx)
	gt.NoError(t, err)
	gt.Equal(t, len(rows), 5)
}

func TestRowsNoSelection(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDashboard(t, sampleRecords())

	rows, err := uc.Rows(ctx)
	gt.NoError(t, err)
	gt.Equal(t, len(rows), 0)
}

func TestRowsUnknownKeyYieldsNothing(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDashboard(t, sampleRecords())

	gt.NoError(t, uc.Select(model.NewSliceSelection(types.DimensionRegion, "ATLANTIS")))
	rows, err := uc.Rows(ctx)
	gt.NoError(t, err)
	gt.Equal(t, len(rows), 0)
}

func TestMemoizedIdenticalCalls(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDashboard(t, sampleRecords())

	first, err := uc.Pie(ctx, types.DimensionRegion)
	gt.NoError(t, err)
	second, err := uc.Pie(ctx, types.DimensionRegion)
	gt.NoError(t, err)
	gt.Equal(t, first, second)

	// A caller mutating its result must not poison the memo
	first[0].Count = 9999
	third, err := uc.Pie(ctx, types.DimensionRegion)
	gt.NoError(t, err)
	gt.Equal(t, third, second)
	gt.NotEqual(t, third[0].Count, 9999)
}

func TestMemoInvalidatedByNewLoad(t *testing.T) {
	ctx := context.Background()
	uc, repo := newDashboard(t, sampleRecords())

	first, err := uc.Pie(ctx, types.DimensionRegion)
	gt.NoError(t, err)
	gt.Equal(t, len(first), 3)

	gt.NoError(t, repo.ReplaceDevices(ctx, types.NewLoadID(), buildRecords([]record{
		{1, "LATAM", "Brazil", "Router", "Cloud", types.StatusPass, model.NewDate(2025, 3, 1)},
	})))

	second, err := uc.Pie(ctx, types.DimensionRegion)
	gt.NoError(t, err)
	gt.Equal(t, len(second), 1)
	gt.Equal(t, second[0].Value, "LATAM")
}

func TestOptionsListDistinctValues(t *testing.T) {
	ctx := context.Background()
	uc, _ := newDashboard(t, sampleRecords())

	options, err := uc.Options(ctx)
	gt.NoError(t, err)
	gt.Equal(t, len(options), 4)

	byDim := map[string][]string{}
	for _, o := range options {
		byDim[o.Dimension] = o.Values
	}

	gt.Equal(t, byDim["region"], []string{"All", "AMER", "APAC", "EMEA"})
	gt.Equal(t, byDim["deviceType"], []string{"All", "Cloud", "Physical", "Virtual"})
}
