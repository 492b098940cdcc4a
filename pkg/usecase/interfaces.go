package usecase

import (
	"context"

	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/fleetscope/fleetscope/pkg/domain/types"
)

// DashboardUseCase is the surface the HTTP controller depends on
type DashboardUseCase interface {
	SetFilters(filters model.FilterState)
	Filters() model.FilterState
	SetTrendConfig(cfg model.TrendConfig) error
	TrendConfig() model.TrendConfig
	Select(sel model.Selection) error
	ClearSelection()
	Selection() model.Selection

	Pie(ctx context.Context, dim types.Dimension) ([]model.DimensionSlice, error)
	Bar(ctx context.Context, category types.Dimension) ([]model.CategoryStat, error)
	Trend(ctx context.Context) ([]model.TrendPoint, error)
	Rows(ctx context.Context) ([]*model.DeviceRecord, error)
	Export(ctx context.Context) (string, error)
	Options(ctx context.Context) ([]model.DimensionOptions, error)
}
