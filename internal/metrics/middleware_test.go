package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// labelsOf flattens the labels of every sample of a family.
func labelsOf(t *testing.T, reg *Registry, name string) []map[string]string {
	t.Helper()
	var out []map[string]string
	for _, m := range findMetric(t, reg, name).GetMetric() {
		labels := make(map[string]string)
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		out = append(out, labels)
	}
	return out
}

func TestHTTPMiddleware_LabelsByRoutePattern(t *testing.T) {
	reg := NewRegistry()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/snapshots/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.PathValue("id")))
	})
	wrapped := HTTPMiddleware(reg)(mux)

	for _, id := range []string{"a1", "b2", "c3"} {
		req := httptest.NewRequest("GET", "/api/v1/snapshots/"+id, nil)
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	}

	labels := labelsOf(t, reg, "http_requests_total")
	if len(labels) != 1 {
		t.Fatalf("expected one series for three ids, got %d: %v", len(labels), labels)
	}
	if labels[0]["route"] != "/api/v1/snapshots/{id}" {
		t.Errorf("expected route pattern label, got %q", labels[0]["route"])
	}
	if labels[0]["method"] != "GET" || labels[0]["status"] != "2xx" {
		t.Errorf("unexpected labels: %v", labels[0])
	}
}

func TestHTTPMiddleware_UnmatchedRoute(t *testing.T) {
	reg := NewRegistry()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {})
	wrapped := HTTPMiddleware(reg)(mux)

	req := httptest.NewRequest("GET", "/wp-admin/setup.php", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	labels := labelsOf(t, reg, "http_requests_total")
	if len(labels) != 1 || labels[0]["route"] != unmatchedRoute {
		t.Errorf("expected %s route label, got %v", unmatchedRoute, labels)
	}
	if labels[0]["status"] != "4xx" {
		t.Errorf("expected status label 4xx, got %s", labels[0]["status"])
	}
}

func TestHTTPMiddleware_RecordsDuration(t *testing.T) {
	reg := NewRegistry()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	wrapped := HTTPMiddleware(reg)(handler)

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	mf := findMetric(t, reg, "http_request_duration_seconds")
	if got := mf.GetMetric()[0].GetHistogram().GetSampleCount(); got != 1 {
		t.Errorf("expected 1 observation, got %d", got)
	}
}

func TestHTTPMiddleware_TracksInFlight(t *testing.T) {
	reg := NewRegistry()

	inFlightDuringRequest := float64(-1)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inFlightDuringRequest = findMetric(t, reg, "http_requests_in_flight").GetMetric()[0].GetGauge().GetValue()
		w.WriteHeader(http.StatusOK)
	})

	wrapped := HTTPMiddleware(reg)(handler)

	req := httptest.NewRequest("GET", "/api/v1/simulation", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	if inFlightDuringRequest != 1 {
		t.Errorf("expected in-flight to be 1 during request, got %v", inFlightDuringRequest)
	}
	if got := findMetric(t, reg, "http_requests_in_flight").GetMetric()[0].GetGauge().GetValue(); got != 0 {
		t.Errorf("expected in-flight to be 0 after request, got %v", got)
	}
}
