// internal/storage/snapshot/interface.go
package snapshot

import (
	"context"
	"time"
)

// Record indexes one archived dashboard snapshot.
type Record struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"` // archive object path
	Strategy  string    `json:"strategy,omitempty"`
	Range     string    `json:"range"`
	Trades    int       `json:"trades"`
	CreatedAt time.Time `json:"created_at"`
}

// Store defines the interface for the snapshot index.
type Store interface {
	// Save records a snapshot. The caller assigns the ID.
	Save(ctx context.Context, rec Record) error

	// GetByID retrieves a record by its ID.
	GetByID(ctx context.Context, id string) (*Record, error)

	// List retrieves records matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]Record, error)

	// Count returns the number of records matching the filter.
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter defines criteria for listing snapshots.
type ListFilter struct {
	Strategy string
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}
