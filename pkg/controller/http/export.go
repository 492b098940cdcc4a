package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/m-mizutani/ctxlog"
)

// handleExport handles GET /api/dashboard/export. The CSV is served as an
// attachment; when the selection matches no rows the export is a no-op
// and responds 204 without a body.
func (h *dashboardHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	csv, err := h.uc.Export(r.Context())
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}

	if csv == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	filename := fmt.Sprintf("devices-%s.csv", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write CSV response", "error", err)
	}
}
