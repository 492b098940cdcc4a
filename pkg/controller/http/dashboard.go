package http

import (
	"encoding/json"
	"net/http"

	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/fleetscope/fleetscope/pkg/domain/types"
	"github.com/fleetscope/fleetscope/pkg/usecase"
)

// dashboardHandler serves the dashboard API
type dashboardHandler struct {
	uc usecase.DashboardUseCase
}

func newDashboardHandler(uc usecase.DashboardUseCase) *dashboardHandler {
	return &dashboardHandler{uc: uc}
}

// handlePie handles GET /api/dashboard/pie?dimension=...
func (h *dashboardHandler) handlePie(w http.ResponseWriter, r *http.Request) {
	dim, err := types.ParseDimension(r.URL.Query().Get("dimension"))
	if err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}

	slices, err := h.uc.Pie(r.Context(), dim)
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"slices": slices})
}

// handleBar handles GET /api/dashboard/bar?category=...
func (h *dashboardHandler) handleBar(w http.ResponseWriter, r *http.Request) {
	category, err := types.ParseDimension(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}

	stats, err := h.uc.Bar(r.Context(), category)
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"stats": stats})
}

// handleTrend handles GET /api/dashboard/trend
func (h *dashboardHandler) handleTrend(w http.ResponseWriter, r *http.Request) {
	points, err := h.uc.Trend(r.Context())
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"config": h.uc.TrendConfig(),
		"points": points,
	})
}

// handleOptions handles GET /api/dashboard/options
func (h *dashboardHandler) handleOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.uc.Options(r.Context())
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"dimensions":    options,
		"windows":       []int{1, 3, 6},
		"granularities": []types.Granularity{types.GranularityDaily, types.GranularityWeekly, types.GranularityMonthly},
	})
}

// handleRows handles GET /api/dashboard/rows
func (h *dashboardHandler) handleRows(w http.ResponseWriter, r *http.Request) {
	rows, err := h.uc.Rows(r.Context())
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []*model.DeviceRecord{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"selection": h.uc.Selection(),
		"rows":      rows,
	})
}

// handleSetFilters handles PUT /api/dashboard/filters
func (h *dashboardHandler) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	var filters model.FilterState
	if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}

	h.uc.SetFilters(filters)
	writeJSON(w, r, http.StatusOK, map[string]any{"filters": h.uc.Filters()})
}

// handleSetTrendConfig handles PUT /api/dashboard/trend-config
func (h *dashboardHandler) handleSetTrendConfig(w http.ResponseWriter, r *http.Request) {
	var cfg model.TrendConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := h.uc.SetTrendConfig(cfg); err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"config": h.uc.TrendConfig()})
}

// handleSelect handles POST /api/dashboard/selection
func (h *dashboardHandler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var sel model.Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := h.uc.Select(sel); err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"selection": h.uc.Selection()})
}

// handleClearSelection handles DELETE /api/dashboard/selection
func (h *dashboardHandler) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	h.uc.ClearSelection()
	writeJSON(w, r, http.StatusOK, map[string]any{"selection": h.uc.Selection()})
}
