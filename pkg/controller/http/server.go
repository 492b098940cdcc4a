package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fleetscope/fleetscope/pkg/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
}

// NewServer creates a new HTTP server serving the dashboard API
func NewServer(ctx context.Context, addr string, dashboardUC usecase.DashboardUseCase) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	handler := newDashboardHandler(dashboardUC)

	router.Get("/health", handleHealth)

	router.Route("/api/dashboard", func(r chi.Router) {
		r.Get("/pie", handler.handlePie)
		r.Get("/bar", handler.handleBar)
		r.Get("/trend", handler.handleTrend)
		r.Get("/options", handler.handleOptions)
		r.Get("/rows", handler.handleRows)
		r.Get("/export", handler.handleExport)

		r.Put("/filters", handler.handleSetFilters)
		r.Put("/trend-config", handler.handleSetTrendConfig)

		r.Post("/selection", handler.handleSelect)
		r.Delete("/selection", handler.handleClearSelection)
	})

	return &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
	}
}

// Router exposes the handler for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "fleetscope",
	})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response. Validation errors from the domain
// map to 400, everything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, status int) {
	ctxlog.From(r.Context()).Error("HTTP handler error",
		"status", status,
		"error", err,
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	}); encErr != nil {
		ctxlog.From(r.Context()).Error("Failed to encode error response", "error", encErr)
	}
}
