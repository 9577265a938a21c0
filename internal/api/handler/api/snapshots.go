// internal/api/handler/api/snapshots.go
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/newthinker/pnlboard/internal/api/response"
	"github.com/newthinker/pnlboard/internal/core"
	"github.com/newthinker/pnlboard/internal/dashboard"
	"github.com/newthinker/pnlboard/internal/storage/snapshot"
)

// SnapshotsHandler archives and lists dashboard snapshots.
type SnapshotsHandler struct {
	svc *dashboard.Service
	now func() time.Time
}

// NewSnapshotsHandler creates a new snapshots handler.
func NewSnapshotsHandler(svc *dashboard.Service) *SnapshotsHandler {
	return &SnapshotsHandler{svc: svc, now: time.Now}
}

// Create computes every view for the query and archives it.
func (h *SnapshotsHandler) Create(w http.ResponseWriter, r *http.Request) {
	q, err := ParseQuery(r, h.now())
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	snap, err := h.svc.Snapshot(r.Context(), q)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]any{
		"id":         snap.ID,
		"path":       snap.Path,
		"created_at": snap.CreatedAt,
		"trades":     snap.Trades,
	})
}

// List returns indexed snapshots, newest first.
func (h *SnapshotsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := snapshot.ListFilter{
		Strategy: q.Get("strategy"),
		Limit:    50, // Default limit
	}

	paging := []struct {
		name string
		dst  *int
	}{{"limit", &filter.Limit}, {"offset", &filter.Offset}}
	for _, p := range paging {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrInvalidParam,
				fmt.Errorf("%s %q is not a non-negative integer", p.name, v)))
			return
		}
		*p.dst = n
	}

	records, err := h.svc.Snapshots(r.Context(), filter)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"snapshots": records,
		"limit":     filter.Limit,
		"offset":    filter.Offset,
	})
}

// GetByID returns one archived snapshot.
func (h *SnapshotsHandler) GetByID(w http.ResponseWriter, r *http.Request, id string) {
	snap, err := h.svc.LoadSnapshot(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, snap)
}
