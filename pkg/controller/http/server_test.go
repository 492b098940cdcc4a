package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	server "github.com/fleetscope/fleetscope/pkg/controller/http"
	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/fleetscope/fleetscope/pkg/domain/types"
	"github.com/fleetscope/fleetscope/pkg/repository"
	"github.com/fleetscope/fleetscope/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func fixedNow() time.Time {
	return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
}

func testRecord(id int, region, country string, status types.ComplianceStatus) *model.DeviceRecord {
	return &model.DeviceRecord{
		ID:          types.DeviceID(id),
		Name:        "device",
		Region:      region,
		Country:     country,
		ProductType: "Firewall",
		DeviceType:  "Physical",
		Status:      status,
		LastSeen:    model.NewDate(2025, 3, 1),
	}
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	repo := repository.NewMemory()
	err := repo.ReplaceDevices(ctx, types.NewLoadID(), []*model.DeviceRecord{
		testRecord(1, "EMEA", "Germany", types.StatusPass),
		testRecord(2, "EMEA", "France", types.StatusFail),
		testRecord(3, "APAC", "Japan", types.StatusPass),
	})
	gt.NoError(t, err)

	uc := usecase.NewDashboard(repo, model.DefaultCatalog(), usecase.WithClock(fixedNow))
	return server.NewServer(ctx, "localhost:0", uc).Router()
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var parsed map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodGet, "/health", "")
	gt.Equal(t, rec.Code, http.StatusOK)
	gt.Equal(t, body["status"], "healthy")
	gt.Equal(t, body["service"], "fleetscope")
}

func TestPieEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/dashboard/pie?dimension=region", "")
	gt.Equal(t, rec.Code, http.StatusOK)

	slices := body["slices"].([]any)
	gt.Equal(t, len(slices), 2)

	first := slices[0].(map[string]any)
	gt.Equal(t, first["value"], "EMEA")
	gt.Equal(t, first["count"], any(float64(2)))
}

func TestPieEndpointRejectsUnknownDimension(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/dashboard/pie?dimension=planet", "")
	gt.Equal(t, rec.Code, http.StatusBadRequest)
	gt.True(t, body["error"] != "")
}

func TestBarEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/dashboard/bar?category=region", "")
	gt.Equal(t, rec.Code, http.StatusOK)

	stats := body["stats"].([]any)
	gt.Equal(t, len(stats), 2)

	// Lexicographic order puts APAC before EMEA
	first := stats[0].(map[string]any)
	gt.Equal(t, first["category"], "APAC")
	gt.Equal(t, first["passRate"], any(float64(100)))
}

func TestTrendEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/dashboard/trend", "")
	gt.Equal(t, rec.Code, http.StatusOK)

	cfg := body["config"].(map[string]any)
	gt.Equal(t, cfg["months"], any(float64(3)))

	// 90-day daily window ending today yields 91 buckets
	points := body["points"].([]any)
	gt.Equal(t, len(points), 91)
}

func TestSetFiltersEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodPut, "/api/dashboard/filters", `{"region":"APAC"}`)
	gt.Equal(t, rec.Code, http.StatusOK)

	filters := body["filters"].(map[string]any)
	gt.Equal(t, filters["region"], "APAC")

	rec, body = doJSON(t, h, http.MethodGet, "/api/dashboard/pie?dimension=region", "")
	gt.Equal(t, rec.Code, http.StatusOK)
	gt.Equal(t, len(body["slices"].([]any)), 1)
}

func TestSetTrendConfigEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodPut, "/api/dashboard/trend-config",
		`{"category":"region","value":"EMEA","months":1,"granularity":"weekly"}`)
	gt.Equal(t, rec.Code, http.StatusOK)

	cfg := body["config"].(map[string]any)
	gt.Equal(t, cfg["value"], "EMEA")
	gt.Equal(t, cfg["granularity"], "weekly")
}

func TestSetTrendConfigRejectsBadWindow(t *testing.T) {
	h := newTestHandler(t)

	rec, _ := doJSON(t, h, http.MethodPut, "/api/dashboard/trend-config",
		`{"category":"region","value":"All","months":4,"granularity":"daily"}`)
	gt.Equal(t, rec.Code, http.StatusBadRequest)
}

func TestSelectionLifecycle(t *testing.T) {
	h := newTestHandler(t)

	// Nothing selected: rows empty, export is a no-op
	rec, body := doJSON(t, h, http.MethodGet, "/api/dashboard/rows", "")
	gt.Equal(t, rec.Code, http.StatusOK)
	gt.Equal(t, len(body["rows"].([]any)), 0)

	rec, _ = doJSON(t, h, http.MethodGet, "/api/dashboard/export", "")
	gt.Equal(t, rec.Code, http.StatusNoContent)

	// Click a pie slice
	rec, body = doJSON(t, h, http.MethodPost, "/api/dashboard/selection",
		`{"kind":"slice","dimension":"region","value":"EMEA"}`)
	gt.Equal(t, rec.Code, http.StatusOK)
	sel := body["selection"].(map[string]any)
	gt.Equal(t, sel["kind"], "slice")

	rec, body = doJSON(t, h, http.MethodGet, "/api/dashboard/rows", "")
	gt.Equal(t, rec.Code, http.StatusOK)
	gt.Equal(t, len(body["rows"].([]any)), 2)

	// Export now serves CSV as an attachment
	rec, _ = doJSON(t, h, http.MethodGet, "/api/dashboard/export", "")
	gt.Equal(t, rec.Code, http.StatusOK)
	gt.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	gt.True(t, strings.Contains(rec.Header().Get("Content-Disposition"), "attachment"))
	gt.Equal(t, len(strings.Split(rec.Body.String(), "\n")), 3)

	// Clearing the selection empties the rows again
	rec, _ = doJSON(t, h, http.MethodDelete, "/api/dashboard/selection", "")
	gt.Equal(t, rec.Code, http.StatusOK)

	rec, body = doJSON(t, h, http.MethodGet, "/api/dashboard/rows", "")
	gt.Equal(t, rec.Code, http.StatusOK)
	gt.Equal(t, len(body["rows"].([]any)), 0)
}

func TestSelectionRejectsInvalid(t *testing.T) {
	h := newTestHandler(t)

	rec, _ := doJSON(t, h, http.MethodPost, "/api/dashboard/selection",
		`{"kind":"slice","dimension":"region"}`)
	gt.Equal(t, rec.Code, http.StatusBadRequest)
}

func TestOptionsEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/dashboard/options", "")
	gt.Equal(t, rec.Code, http.StatusOK)

	dims := body["dimensions"].([]any)
	gt.Equal(t, len(dims), 4)

	first := dims[0].(map[string]any)
	gt.Equal(t, first["dimension"], "region")
	values := first["values"].([]any)
	gt.Equal(t, values[0], "All")
}
