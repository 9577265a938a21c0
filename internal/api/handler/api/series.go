// internal/api/handler/api/series.go
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/newthinker/pnlboard/internal/api/response"
	"github.com/newthinker/pnlboard/internal/core"
	"github.com/newthinker/pnlboard/internal/dashboard"
)

// SeriesHandler serves the computed dashboard views.
type SeriesHandler struct {
	svc *dashboard.Service
	now func() time.Time
}

// NewSeriesHandler creates a new series handler.
func NewSeriesHandler(svc *dashboard.Service) *SeriesHandler {
	return &SeriesHandler{svc: svc, now: time.Now}
}

func (h *SeriesHandler) query(w http.ResponseWriter, r *http.Request) (dashboard.Query, bool) {
	q, err := ParseQuery(r, h.now())
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return q, false
	}
	return q, true
}

// Trades returns the raw trades for the query.
func (h *SeriesHandler) Trades(w http.ResponseWriter, r *http.Request) {
	q, ok := h.query(w, r)
	if !ok {
		return
	}

	trades, err := h.svc.Trades(r.Context(), q)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"trades": trades,
		"total":  len(trades),
		"range":  q.Range.String(),
	})
}

// Strategies lists the strategy names.
func (h *SeriesHandler) Strategies(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.Strategies(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, names)
}

// Cumulative returns the running PnL line.
func (h *SeriesHandler) Cumulative(w http.ResponseWriter, r *http.Request) {
	q, ok := h.query(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Cumulative(r.Context(), q)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// Drawdown returns the drawdown line. The normalized band is only
// included with normalize=true.
func (h *SeriesHandler) Drawdown(w http.ResponseWriter, r *http.Request) {
	q, ok := h.query(w, r)
	if !ok {
		return
	}

	normalize := false
	if v := r.URL.Query().Get("normalize"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrInvalidParam, err))
			return
		}
		normalize = b
	}

	view, err := h.svc.Drawdown(r.Context(), q)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if !normalize {
		view.Normalized = nil
	}
	response.JSON(w, http.StatusOK, view)
}

// Yearly returns yearly PnL bars with the drawdown line.
func (h *SeriesHandler) Yearly(w http.ResponseWriter, r *http.Request) {
	q, ok := h.query(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Yearly(r.Context(), q)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// Simulation returns Monte Carlo paths. Pass seed to reproduce a run.
func (h *SeriesHandler) Simulation(w http.ResponseWriter, r *http.Request) {
	q, ok := h.query(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Simulate(r.Context(), q)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// Stats returns the summary statistics.
func (h *SeriesHandler) Stats(w http.ResponseWriter, r *http.Request) {
	q, ok := h.query(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Stats(r.Context(), q)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}
