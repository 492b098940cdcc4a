package usecase

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/fleetscope/fleetscope/pkg/domain/interfaces"
	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/fleetscope/fleetscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Dashboard owns the dashboard view state: the four global filters, the
// trend configuration and the active selection. Every aggregation is a
// pure recomputation over the repository snapshot; the only caching is a
// single-entry memo per aggregator for identical-input calls.
type Dashboard struct {
	repo    interfaces.Repository
	catalog *model.Catalog
	now     func() time.Time

	mu        sync.Mutex
	filters   model.FilterState
	trendCfg  model.TrendConfig
	selection model.Selection

	pieMemo   *pieMemo
	barMemo   *barMemo
	trendMemo *trendMemo
}

// DashboardOption configures the Dashboard
type DashboardOption func(*Dashboard)

// WithClock overrides the time source (for tests)
func WithClock(now func() time.Time) DashboardOption {
	return func(d *Dashboard) {
		d.now = now
	}
}

// NewDashboard creates a new Dashboard use case
func NewDashboard(repo interfaces.Repository, catalog *model.Catalog, opts ...DashboardOption) *Dashboard {
	if catalog == nil {
		catalog = model.DefaultCatalog()
	}
	d := &Dashboard{
		repo:     repo,
		catalog:  catalog,
		now:      time.Now,
		trendCfg: model.DefaultTrendConfig(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type pieKey struct {
	loadID  types.LoadID
	filters model.FilterState
	dim     types.Dimension
}

type pieMemo struct {
	key    pieKey
	result []model.DimensionSlice
}

type barKey struct {
	loadID   types.LoadID
	filters  model.FilterState
	category types.Dimension
}

type barMemo struct {
	key    barKey
	result []model.CategoryStat
}

type trendKey struct {
	loadID  types.LoadID
	filters model.FilterState
	cfg     model.TrendConfig
	today   string
}

type trendMemo struct {
	key    trendKey
	result []model.TrendPoint
}

// snapshot reads the current dataset and its load ID
func (d *Dashboard) snapshot(ctx context.Context) ([]*model.DeviceRecord, types.LoadID, error) {
	loadID, err := d.repo.ActiveLoad(ctx)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to read active load")
	}
	records, err := d.repo.ListDevices(ctx)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to list devices")
	}
	return records, loadID, nil
}

// SetFilters replaces the global filters and clears the selection
func (d *Dashboard) SetFilters(filters model.FilterState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filters = filters
	d.selection = model.Selection{}
}

// Filters returns the current global filters
func (d *Dashboard) Filters() model.FilterState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filters
}

// SetTrendConfig replaces the trend configuration and clears the selection
func (d *Dashboard) SetTrendConfig(cfg model.TrendConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.trendCfg = cfg
	d.selection = model.Selection{}
	return nil
}

// TrendConfig returns the current trend configuration
func (d *Dashboard) TrendConfig() model.TrendConfig {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.trendCfg
}

// Select activates a selection, replacing whatever was selected before.
// Period selections capture the trend scope active at click time.
func (d *Dashboard) Select(sel model.Selection) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if sel.Kind == model.SelectionPeriod {
		sel.Dimension = d.trendCfg.Category
		sel.Value = d.trendCfg.Value
		sel.Granularity = d.trendCfg.Granularity
	}
	if err := sel.Validate(); err != nil {
		return err
	}
	d.selection = sel
	return nil
}

// ClearSelection drops the active selection
func (d *Dashboard) ClearSelection() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = model.Selection{}
}

// Selection returns the active selection
func (d *Dashboard) Selection() model.Selection {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selection
}

// Pie computes the dimension tally over the filtered dataset
func (d *Dashboard) Pie(ctx context.Context, dim types.Dimension) ([]model.DimensionSlice, error) {
	if !dim.IsValid() {
		return nil, goerr.New("invalid dimension", goerr.V("dimension", dim))
	}

	records, loadID, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	key := pieKey{loadID: loadID, filters: d.filters, dim: dim}
	if d.pieMemo == nil || d.pieMemo.key != key {
		result := tallyDimension(filterRecords(records, d.filters), dim, d.catalog)
		d.pieMemo = &pieMemo{key: key, result: result}
	}
	// Hand out a copy so a caller mutating its result cannot poison the memo
	return slices.Clone(d.pieMemo.result), nil
}

// Bar computes the category pass/fail tally over the filtered dataset
func (d *Dashboard) Bar(ctx context.Context, category types.Dimension) ([]model.CategoryStat, error) {
	if !category.IsValid() {
		return nil, goerr.New("invalid category", goerr.V("category", category))
	}

	records, loadID, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	key := barKey{loadID: loadID, filters: d.filters, category: category}
	if d.barMemo == nil || d.barMemo.key != key {
		result := tallyCategory(filterRecords(records, d.filters), category)
		d.barMemo = &barMemo{key: key, result: result}
	}
	return slices.Clone(d.barMemo.result), nil
}

// Trend computes the time series under the current trend configuration
func (d *Dashboard) Trend(ctx context.Context) ([]model.TrendPoint, error) {
	records, loadID, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	key := trendKey{
		loadID:  loadID,
		filters: d.filters,
		cfg:     d.trendCfg,
		today:   model.DateOf(now).String(),
	}
	if d.trendMemo == nil || d.trendMemo.key != key {
		result := tallyTrend(records, d.filters, d.trendCfg, now)
		d.trendMemo = &trendMemo{key: key, result: result}
	}
	return slices.Clone(d.trendMemo.result), nil
}

// Rows returns the detail rows for the active selection
func (d *Dashboard) Rows(ctx context.Context) ([]*model.DeviceRecord, error) {
	records, _, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	filters := d.filters
	sel := d.selection
	d.mu.Unlock()

	return lookupRows(filterRecords(records, filters), sel), nil
}

// Export serializes the rows of the active selection as CSV. An empty
// selection or an empty match yields the empty string.
func (d *Dashboard) Export(ctx context.Context) (string, error) {
	rows, err := d.Rows(ctx)
	if err != nil {
		return "", err
	}
	return ExportCSV(rows), nil
}

// Options lists the selector choices: per dimension the distinct observed
// values prefixed with "All"
func (d *Dashboard) Options(ctx context.Context) ([]model.DimensionOptions, error) {
	records, _, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]model.DimensionOptions, 0, len(types.Dimensions()))
	for _, dim := range types.Dimensions() {
		values := append([]string{types.AllValues}, distinctValues(records, dim)...)
		options = append(options, model.DimensionOptions{
			Dimension: dim.String(),
			Values:    values,
		})
	}
	return options, nil
}
