// internal/storage/archive/interface.go
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/newthinker/pnlboard/internal/config"
	"github.com/newthinker/pnlboard/internal/core"
)

// Storage defines the interface for snapshot archive backends
type Storage interface {
	// Write stores data at the given path
	Write(ctx context.Context, path string, data []byte) error

	// Read retrieves data from the given path
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns all paths matching the prefix
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the data at the given path
	Delete(ctx context.Context, path string) error

	// Exists checks if data exists at the given path
	Exists(ctx context.Context, path string) (bool, error)
}

// New creates the backend selected by cfg.Type.
func New(cfg config.ArchiveConfig) (Storage, error) {
	switch cfg.Type {
	case "", "localfs":
		return NewLocalFS(cfg.Path)
	case "s3":
		return NewS3(S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	}
	return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown archive type %q", cfg.Type))
}

// SnapshotPrefix is the root of all snapshot objects.
const SnapshotPrefix = "snapshots"

// SnapshotPath lays snapshots out by UTC month: snapshots/YYYY/MM/<id>.json.
func SnapshotPath(id string, at time.Time) string {
	at = at.UTC()
	return path.Join(SnapshotPrefix, fmt.Sprintf("%04d", at.Year()), fmt.Sprintf("%02d", int(at.Month())), id+".json")
}

// PutJSON encodes v and writes it at p.
func PutJSON(ctx context.Context, s Storage, p string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return core.WrapError(core.ErrArchiveFailed, fmt.Errorf("encode %s: %w", p, err))
	}
	return s.Write(ctx, p, data)
}

// GetJSON reads p and decodes it into v.
func GetJSON(ctx context.Context, s Storage, p string, v any) error {
	data, err := s.Read(ctx, p)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return core.WrapError(core.ErrArchiveFailed, fmt.Errorf("decode %s: %w", p, err))
	}
	return nil
}
