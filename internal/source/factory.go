package source

import (
	"fmt"

	"github.com/newthinker/pnlboard/internal/config"
	"github.com/newthinker/pnlboard/internal/core"
	"github.com/newthinker/pnlboard/internal/source/file"
	"github.com/newthinker/pnlboard/internal/source/mock"
)

// New creates the source selected by cfg.Type.
func New(cfg config.SourceConfig) (Source, error) {
	switch cfg.Type {
	case "", "mock":
		return mock.New(mock.WithLatency(cfg.Latency)), nil
	case "file":
		if cfg.Path == "" {
			return nil, core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("source.path required when source type is file"))
		}
		return file.Load(cfg.Path)
	default:
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown source type: %s", cfg.Type))
	}
}
