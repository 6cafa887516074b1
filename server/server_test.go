package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/homemade/pollday/checkin"
)

type fakeService struct {
	statuses []checkin.WorkerStatus
}

func (f *fakeService) GetPollWorkers(configID string, precinctID string, ctx context.Context) checkin.PollWorkers {
	if configID != "recTravis" {
		return checkin.PollWorkers{}
	}
	return checkin.PollWorkers{WorkerData: []checkin.WorkerRecord{
		{ID: "recJane", FirstName: "Jane", LastName: "Doe", Status: checkin.StatusAttended},
	}}
}

func (f *fakeService) GetPrecinct(configID string, precinctID string, ctx context.Context) checkin.PrecinctInfo {
	if configID != "recTravis" {
		return checkin.PrecinctInfo{}
	}
	return checkin.PrecinctInfo{CountyName: "Travis", LeadName: "Jane Doe"}
}

func (f *fakeService) UpdateWorkerStatuses(configID string, statuses []checkin.WorkerStatus, ctx context.Context) bool {
	f.statuses = statuses
	return configID == "recTravis"
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeService, *Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	svc := &fakeService{}
	return NewRouter(svc, metrics, registry), svc, metrics
}

func serve(router *gin.Engine, method string, path string, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_GetPollWorkers(t *testing.T) {
	router, _, metrics := newTestRouter(t)

	w := serve(router, http.MethodGet, "/api/recTravis/precincts/recP1/workers", "")
	expected := `{"workerData":[{"id":"recJane","firstName":"Jane","lastName":"Doe","status":"ATTENDED"}]}`
	if w.Code != http.StatusOK || w.Body.String() != expected {
		t.Errorf("Expected %d %s but have: %d %s", http.StatusOK, expected, w.Code, w.Body.String())
	}

	w = serve(router, http.MethodGet, "/api/recNope/precincts/recP1/workers", "")
	if w.Code != http.StatusOK || w.Body.String() != `{}` {
		t.Errorf("Expected empty object but have: %d %s", w.Code, w.Body.String())
	}

	if v := testutil.ToFloat64(metrics.Operations.WithLabelValues("getPollWorkers", "ok")); v != 1 {
		t.Errorf("Expected 1 ok but have: %v", v)
	}
	if v := testutil.ToFloat64(metrics.Operations.WithLabelValues("getPollWorkers", "empty")); v != 1 {
		t.Errorf("Expected 1 empty but have: %v", v)
	}
}

func TestRouter_GetPrecinct(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := serve(router, http.MethodGet, "/api/recTravis/precincts/recP1", "")
	expected := `{"countyName":"Travis","leadName":"Jane Doe"}`
	if w.Body.String() != expected {
		t.Errorf("Expected %s but have: %s", expected, w.Body.String())
	}

	w = serve(router, http.MethodGet, "/api/recNope/precincts/recP1", "")
	if w.Body.String() != `{}` {
		t.Errorf("Expected empty object but have: %s", w.Body.String())
	}
}

func TestRouter_UpdateWorkerStatuses(t *testing.T) {
	router, svc, _ := newTestRouter(t)

	w := serve(router, http.MethodPut, "/api/recTravis/workers/statuses", `{"recB":"NO_SHOW","recA":"ATTENDED"}`)
	if w.Code != http.StatusOK || w.Body.String() != `{"success":true}` {
		t.Errorf("Unexpected response: %d %s", w.Code, w.Body.String())
	}
	if len(svc.statuses) != 2 || svc.statuses[0].ID != "recB" || svc.statuses[1].Status != checkin.StatusAttended {
		t.Errorf("Unexpected statuses: %+v", svc.statuses)
	}

	w = serve(router, http.MethodPut, "/api/recNope/workers/statuses", `{"recA":"ATTENDED"}`)
	if w.Code != http.StatusOK || w.Body.String() != `{"success":false}` {
		t.Errorf("Unexpected response: %d %s", w.Code, w.Body.String())
	}

	w = serve(router, http.MethodPut, "/api/recTravis/workers/statuses", `["recA"]`)
	if w.Code != http.StatusBadRequest || w.Body.String() != `{"success":false}` {
		t.Errorf("Unexpected response: %d %s", w.Code, w.Body.String())
	}
}

func TestRouter_RequestID(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := serve(router, http.MethodGet, "/healthz", "")
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("Expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if id := w.Header().Get(RequestIDHeader); id != "abc-123" {
		t.Errorf("Expected caller's request id but have: %q", id)
	}
}

func TestRouter_Metrics(t *testing.T) {
	router, _, _ := newTestRouter(t)
	serve(router, http.MethodGet, "/api/recTravis/precincts/recP1", "")

	w := serve(router, http.MethodGet, "/metrics", "")
	if !strings.Contains(w.Body.String(), `checkin_operations_total{operation="getPrecinct",outcome="ok"} 1`) {
		t.Errorf("Expected operation counter in:\n%s", w.Body.String())
	}
}
