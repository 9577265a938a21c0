// internal/api/handler/api/helpers_test.go
package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/newthinker/pnlboard/internal/api/response"
	"github.com/newthinker/pnlboard/internal/core"
	"github.com/newthinker/pnlboard/internal/dashboard"
	"github.com/newthinker/pnlboard/internal/montecarlo"
	"github.com/newthinker/pnlboard/internal/series"
	"github.com/newthinker/pnlboard/internal/source/mock"
)

var testNow = time.Date(2025, time.May, 20, 9, 0, 0, 0, time.UTC)

// newTestService serves trades 100, -50, 80, -200, 30 on 2025-05-01..05.
func newTestService(opts ...dashboard.ServiceOption) *dashboard.Service {
	src := mock.New()
	pnls := []int64{100, -50, 80, -200, 30}
	trades := make([]core.TradeRecord, len(pnls))
	for i, p := range pnls {
		trades[i] = core.TradeRecord{
			Date:     time.Date(2025, time.May, i+1, 0, 0, 0, 0, time.UTC),
			PnL:      decimal.NewFromInt(p),
			Strategy: "Modest",
		}
	}
	src.SetTrades(trades)
	src.SetPeriods(nil)

	return dashboard.New(src, dashboard.Options{
		Band:     series.Band{Center: decimal.NewFromInt(1000), FullScale: decimal.NewFromInt(400)},
		Stop:     series.Stop{Amount: decimal.NewFromInt(150), Mode: series.StopAbsolute},
		Profiles: montecarlo.DefaultProfiles(),
	}, nil, opts...)
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp response.SuccessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v: %s", err, w.Body.String())
	}
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T", resp.Data)
	}
	return data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()
	var resp response.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v: %s", err, w.Body.String())
	}
	return resp.Error
}
