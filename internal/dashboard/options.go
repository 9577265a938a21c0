package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/newthinker/pnlboard/internal/config"
	"github.com/newthinker/pnlboard/internal/montecarlo"
	"github.com/newthinker/pnlboard/internal/series"
)

// Options are the chart defaults a Service applies to every query.
type Options struct {
	Baseline decimal.Decimal
	Band     series.Band
	Stop     series.Stop
	Profiles []montecarlo.Profile
	Seed     *uint64 // nil = fresh seed per simulation
}

// DefaultOptions mirrors config.Defaults.
func DefaultOptions() Options {
	opts, _ := OptionsFromConfig(config.Defaults())
	return opts
}

// OptionsFromConfig converts the chart and simulation sections.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	mode, err := series.ParseStopMode(cfg.Chart.Stop.Mode)
	if err != nil {
		return Options{}, err
	}

	var seed *uint64
	if cfg.Simulation.Seed != nil {
		v := *cfg.Simulation.Seed
		seed = &v
	}

	profiles := make([]montecarlo.Profile, len(cfg.Simulation.Profiles))
	for i, p := range cfg.Simulation.Profiles {
		profiles[i] = montecarlo.Profile{Name: p.Name, Bound: p.Bound}
	}
	if len(profiles) == 0 {
		profiles = montecarlo.DefaultProfiles()
	}

	return Options{
		Baseline: decimal.NewFromFloat(cfg.Chart.InitialCapital),
		Band: series.Band{
			Center:    decimal.NewFromFloat(cfg.Chart.DrawdownBand.Center),
			FullScale: decimal.NewFromFloat(cfg.Chart.DrawdownBand.FullScale),
		},
		Stop: series.Stop{
			Amount: decimal.NewFromFloat(cfg.Chart.Stop.Amount),
			Mode:   mode,
		},
		Profiles: profiles,
		Seed:     seed,
	}, nil
}
