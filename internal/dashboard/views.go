package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/newthinker/pnlboard/internal/core"
	"github.com/newthinker/pnlboard/internal/series"
	"github.com/newthinker/pnlboard/internal/stats"
)

// CumulativeView is the running PnL line.
type CumulativeView struct {
	Range    string                 `json:"range"`
	Strategy string                 `json:"strategy,omitempty"`
	Points   []core.CumulativePoint `json:"points"`
	Total    decimal.Decimal        `json:"total"`
}

// DrawdownView is the drawdown line with its overlays.
type DrawdownView struct {
	Range         string               `json:"range"`
	Strategy      string               `json:"strategy,omitempty"`
	Baseline      decimal.Decimal      `json:"baseline"`
	Points        []core.DrawdownPoint `json:"points"`
	Normalized    []decimal.Decimal    `json:"normalized"`
	StopLine      []decimal.Decimal    `json:"stop_line"`
	StopMode      series.StopMode      `json:"stop_mode"`
	Breaches      []string             `json:"breaches"`
	MaxDrawdown   decimal.Decimal      `json:"max_drawdown"`
	MaxDrawdownAt string               `json:"max_drawdown_at,omitempty"`
}

// SimulationView holds the base cumulative line and one path per profile.
type SimulationView struct {
	Seed  uint64                 `json:"seed"`
	Base  []core.CumulativePoint `json:"base"`
	Paths []core.SimulatedPath   `json:"paths"`
}

// YearlyView pairs yearly PnL bars with the trade drawdown line.
type YearlyView struct {
	Range    string               `json:"range"`
	Strategy string               `json:"strategy,omitempty"`
	Baseline decimal.Decimal      `json:"baseline"`
	Years    []series.YearlyPoint `json:"years"`
}

// StatsView wraps the summary panel.
type StatsView struct {
	Range    string        `json:"range"`
	Strategy string        `json:"strategy,omitempty"`
	Summary  stats.Summary `json:"summary"`
}
