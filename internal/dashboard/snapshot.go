package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/newthinker/pnlboard/internal/core"
	"github.com/newthinker/pnlboard/internal/storage/archive"
	"github.com/newthinker/pnlboard/internal/storage/snapshot"
)

// Snapshot is every view for one query, frozen at CreatedAt.
type Snapshot struct {
	ID         string          `json:"id"`
	Path       string          `json:"path"`
	CreatedAt  time.Time       `json:"created_at"`
	Range      string          `json:"range"`
	Strategy   string          `json:"strategy,omitempty"`
	Baseline   decimal.Decimal `json:"baseline"`
	Trades     int             `json:"trades"`
	Cumulative *CumulativeView `json:"cumulative"`
	Drawdown   *DrawdownView   `json:"drawdown"`
	Yearly     *YearlyView     `json:"yearly"`
	Simulation *SimulationView `json:"simulation"`
	Stats      *StatsView      `json:"stats"`
}

// SnapshotsEnabled reports whether an archive is configured.
func (s *Service) SnapshotsEnabled() bool {
	return s.archive != nil && s.index != nil
}

// Snapshot computes all views from one trade fetch (plus the source's
// periods for the unfiltered portfolio) and archives them under
// snapshots/YYYY/MM/<id>.json.
func (s *Service) Snapshot(ctx context.Context, q Query) (*Snapshot, error) {
	if !s.SnapshotsEnabled() {
		return nil, core.WrapError(core.ErrConfigMissing, fmt.Errorf("snapshot archive not configured"))
	}

	trades, err := s.Trades(ctx, q)
	if err != nil {
		return nil, err
	}
	periods, err := s.periodsFrom(ctx, q, trades)
	if err != nil {
		return nil, err
	}

	sim, err := s.simulationView(q, periods)
	if err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()
	id := uuid.NewString()
	snap := &Snapshot{
		ID:         id,
		Path:       archive.SnapshotPath(id, createdAt),
		CreatedAt:  createdAt,
		Range:      q.Range.String(),
		Strategy:   q.Strategy,
		Baseline:   s.baseline(q),
		Trades:     len(trades),
		Cumulative: cumulativeView(q, trades),
		Drawdown:   s.drawdownView(q, trades),
		Yearly:     s.yearlyView(q, periods, trades),
		Simulation: sim,
		Stats:      s.statsView(q, trades),
	}

	if err := archive.PutJSON(ctx, s.archive, snap.Path, snap); err != nil {
		s.recordSnapshot("error")
		s.logger.Error("snapshot write failed", zap.String("path", snap.Path), zap.Error(err))
		return nil, err
	}

	rec := snapshot.Record{
		ID:        id,
		Path:      snap.Path,
		Strategy:  q.Strategy,
		Range:     snap.Range,
		Trades:    len(trades),
		CreatedAt: createdAt,
	}
	if err := s.index.Save(ctx, rec); err != nil {
		s.recordSnapshot("error")
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}

	s.recordSnapshot("success")
	s.logger.Info("snapshot archived",
		zap.String("id", id),
		zap.String("path", snap.Path),
		zap.Int("trades", len(trades)))

	return snap, nil
}

func (s *Service) recordSnapshot(status string) {
	if s.metrics != nil {
		s.metrics.RecordSnapshot(status)
	}
}

// Snapshots lists indexed snapshots, newest first.
func (s *Service) Snapshots(ctx context.Context, filter snapshot.ListFilter) ([]snapshot.Record, error) {
	if !s.SnapshotsEnabled() {
		return []snapshot.Record{}, nil
	}
	return s.index.List(ctx, filter)
}

// LoadSnapshot reads an archived snapshot back by id.
func (s *Service) LoadSnapshot(ctx context.Context, id string) (*Snapshot, error) {
	if !s.SnapshotsEnabled() {
		return nil, core.WrapError(core.ErrNotFound, fmt.Errorf("snapshot %s", id))
	}

	rec, err := s.index.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := archive.GetJSON(ctx, s.archive, rec.Path, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
