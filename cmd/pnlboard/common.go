package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newthinker/pnlboard/internal/config"
	"github.com/newthinker/pnlboard/internal/dashboard"
	"github.com/newthinker/pnlboard/internal/daterange"
	"github.com/newthinker/pnlboard/internal/logger"
	"github.com/newthinker/pnlboard/internal/metrics"
	"github.com/newthinker/pnlboard/internal/source"
	"github.com/newthinker/pnlboard/internal/storage/archive"
	"github.com/newthinker/pnlboard/internal/storage/snapshot"
)

// snapshotIndexSize bounds the in-memory snapshot index.
const snapshotIndexSize = 500

// loadConfig reads --config, or falls back to the defaults.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Debug("no config file specified, using defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// configuredLogger rebuilds the logger once the config is known. --debug
// or server.mode=debug selects the development preset.
func configuredLogger(cfg *config.Config) (*zap.Logger, error) {
	development := debug || cfg.Server.Mode == "debug"
	log, err := logger.NewWithOptions(development, logger.Options{
		Level:    cfg.Log.Level,
		Encoding: cfg.Log.Encoding,
	})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return log, nil
}

// buildService wires source, options, archive and metrics from cfg.
func buildService(cfg *config.Config, log *zap.Logger, reg *metrics.Registry) (*dashboard.Service, error) {
	src, err := source.New(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("creating source: %w", err)
	}

	opts, err := dashboard.OptionsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("chart options: %w", err)
	}

	var svcOpts []dashboard.ServiceOption
	if reg != nil {
		svcOpts = append(svcOpts, dashboard.WithMetrics(reg))
	}
	if cfg.Archive.Enabled {
		store, err := archive.New(cfg.Archive)
		if err != nil {
			return nil, fmt.Errorf("creating archive: %w", err)
		}
		svcOpts = append(svcOpts, dashboard.WithArchive(store, snapshot.NewMemoryStore(snapshotIndexSize)))
	}

	log.Debug("dashboard service ready",
		zap.String("source", src.Name()),
		zap.Bool("archive", cfg.Archive.Enabled),
		zap.String("baseline", opts.Baseline.String()))

	return dashboard.New(src, opts, log, svcOpts...), nil
}

// withService handles the common logger, config and service setup for the
// one-shot commands.
func withService(fn func(ctx context.Context, svc *dashboard.Service, cfg *config.Config, log *zap.Logger) error) error {
	cfg, err := loadConfig(logger.Must(debug))
	if err != nil {
		return err
	}

	log, err := configuredLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	svc, err := buildService(cfg, log, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	return fn(ctx, svc, cfg, log)
}

// queryFlags are the selection flags shared by the table commands.
type queryFlags struct {
	from     string
	to       string
	preset   string
	strategy string
	capital  string
	seed     uint64
	cmd      *cobra.Command
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "start date YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&f.to, "to", "", "end date YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&f.preset, "preset", "", "named range: today, yesterday, week, month, quarter, year, all")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "only trades of this strategy")
	cmd.Flags().StringVar(&f.capital, "initial-capital", "", "starting equity, overrides chart.initial_capital")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Monte Carlo seed; unset uses the configured one")
	cmd.MarkFlagsMutuallyExclusive("preset", "from")
	cmd.MarkFlagsMutuallyExclusive("preset", "to")
	f.cmd = cmd
}

func (f *queryFlags) query(now time.Time) (dashboard.Query, error) {
	q := dashboard.Query{Strategy: f.strategy}

	if f.preset != "" {
		p, err := daterange.ParsePreset(f.preset)
		if err != nil {
			return q, err
		}
		q.Range = daterange.PresetRange(p, now)
	} else {
		rng, err := daterange.Parse(f.from, f.to)
		if err != nil {
			return q, err
		}
		q.Range = rng
	}

	if f.capital != "" {
		capital, err := decimal.NewFromString(f.capital)
		if err != nil {
			return q, fmt.Errorf("invalid --initial-capital %q: %w", f.capital, err)
		}
		q.Baseline = &capital
	}
	if f.cmd != nil && f.cmd.Flags().Changed("seed") {
		seed := f.seed
		q.Seed = &seed
	}
	return q, nil
}
