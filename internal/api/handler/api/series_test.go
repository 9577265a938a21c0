// internal/api/handler/api/series_test.go
package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newSeriesHandler() *SeriesHandler {
	h := NewSeriesHandler(newTestService())
	h.now = func() time.Time { return testNow }
	return h
}

func TestSeriesHandler_Cumulative(t *testing.T) {
	h := newSeriesHandler()

	req := httptest.NewRequest("GET", "/api/v1/series/cumulative", nil)
	w := httptest.NewRecorder()
	h.Cumulative(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := decodeData(t, w)
	points := data["points"].([]any)
	if len(points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(points))
	}
	last := points[4].(map[string]any)
	if last["cumulative"] != "-40" {
		t.Errorf("expected final cumulative -40, got %v", last["cumulative"])
	}
	if data["total"] != "-40" {
		t.Errorf("expected total -40, got %v", data["total"])
	}
}

func TestSeriesHandler_MalformedDate(t *testing.T) {
	h := newSeriesHandler()

	req := httptest.NewRequest("GET", "/api/v1/series/cumulative?from=2025-13-01", nil)
	w := httptest.NewRecorder()
	h.Cumulative(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if code := decodeError(t, w).Code; code != "INVALID_RANGE" {
		t.Errorf("expected INVALID_RANGE, got %s", code)
	}
}

func TestSeriesHandler_InvertedRange(t *testing.T) {
	h := newSeriesHandler()

	req := httptest.NewRequest("GET", "/api/v1/series/drawdown?from=2025-05-05&to=2025-05-01", nil)
	w := httptest.NewRecorder()
	h.Drawdown(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	data := decodeData(t, w)
	if points := data["points"].([]any); len(points) != 0 {
		t.Errorf("expected no points, got %d", len(points))
	}
}

func TestSeriesHandler_Drawdown(t *testing.T) {
	h := newSeriesHandler()

	req := httptest.NewRequest("GET", "/api/v1/series/drawdown?normalize=true&initial_capital=1000", nil)
	w := httptest.NewRecorder()
	h.Drawdown(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := decodeData(t, w)
	if data["baseline"] != "1000" {
		t.Errorf("expected baseline 1000, got %v", data["baseline"])
	}
	if data["max_drawdown"] != "200" {
		t.Errorf("expected max drawdown 200, got %v", data["max_drawdown"])
	}

	normalized, ok := data["normalized"].([]any)
	if !ok || len(normalized) != 5 {
		t.Fatalf("expected 5 normalized values, got %v", data["normalized"])
	}
	want := []string{"1000", "900", "1000", "600", "660"}
	for i, v := range normalized {
		if v != want[i] {
			t.Errorf("normalized[%d] = %v, want %s", i, v, want[i])
		}
	}
}

func TestSeriesHandler_DrawdownWithoutNormalize(t *testing.T) {
	h := newSeriesHandler()

	req := httptest.NewRequest("GET", "/api/v1/series/drawdown", nil)
	w := httptest.NewRecorder()
	h.Drawdown(w, req)

	data := decodeData(t, w)
	if data["normalized"] != nil {
		t.Errorf("expected no normalized values, got %v", data["normalized"])
	}

	req = httptest.NewRequest("GET", "/api/v1/series/drawdown?normalize=maybe", nil)
	w = httptest.NewRecorder()
	h.Drawdown(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad normalize flag, got %d", w.Code)
	}
}

func TestSeriesHandler_Simulation(t *testing.T) {
	h := newSeriesHandler()

	req := httptest.NewRequest("GET", "/api/v1/simulation?seed=5", nil)
	w := httptest.NewRecorder()
	h.Simulation(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w)
	if data["seed"].(float64) != 5 {
		t.Errorf("expected seed 5, got %v", data["seed"])
	}
	paths := data["paths"].([]any)
	if len(paths) != 3 {
		t.Errorf("expected 3 paths, got %d", len(paths))
	}
	// No source periods: one aggregated 2025 period.
	if base := data["base"].([]any); len(base) != 1 {
		t.Errorf("expected 1 base period, got %d", len(base))
	}
}

func TestSeriesHandler_YearlyStatsTrades(t *testing.T) {
	h := newSeriesHandler()

	tests := []struct {
		name    string
		url     string
		handler http.HandlerFunc
		key     string
	}{
		{"yearly", "/api/v1/yearly", h.Yearly, "years"},
		{"stats", "/api/v1/stats?strategy=Modest", h.Stats, "summary"},
		{"trades", "/api/v1/trades?preset=month", h.Trades, "trades"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler(w, httptest.NewRequest("GET", tt.url, nil))

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
			if _, ok := decodeData(t, w)[tt.key]; !ok {
				t.Errorf("expected %s in response", tt.key)
			}
		})
	}
}
