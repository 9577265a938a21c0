// Package montecarlo produces illustrative randomized PnL paths by
// perturbing a base series within a bounded percentage. It is a visual
// projection, not a calibrated stochastic model.
package montecarlo

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/newthinker/pnlboard/internal/core"
)

// Rand is the random source used for perturbations. Float64 must return a
// value in [0, 1). *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// NewSeeded returns a reproducible random source.
func NewSeeded(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generator draws simulated paths from its random source. A Generator is
// not safe for concurrent use; create one per run.
type Generator struct {
	rng Rand
}

// New creates a Generator. A nil rng falls back to a time-seeded source.
func New(rng Rand) *Generator {
	if rng == nil {
		rng = NewSeeded(uint64(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// uniform draws from [-bound, +bound).
func (g *Generator) uniform(bound float64) decimal.Decimal {
	return decimal.NewFromFloat(g.rng.Float64()*bound*2 - bound)
}

// Generate returns pathCount cumulative paths over base. Path p perturbs
// every period by pnl * uniform(-bounds[p], +bounds[p]) with an independent
// draw per (path, period).
func (g *Generator) Generate(base []core.PeriodPnL, pathCount int, bounds []float64) ([]core.SimulatedPath, error) {
	if pathCount < 1 {
		return nil, core.WrapError(core.ErrInvalidPathCount, fmt.Errorf("got %d", pathCount))
	}
	if len(bounds) != pathCount {
		return nil, core.WrapError(core.ErrInvalidBounds,
			fmt.Errorf("%d bounds for %d paths", len(bounds), pathCount))
	}
	for i, b := range bounds {
		if math.IsNaN(b) || b < 0 || b > 1 {
			return nil, core.WrapError(core.ErrInvalidBounds, fmt.Errorf("bounds[%d] = %v", i, b))
		}
	}

	paths := make([]core.SimulatedPath, pathCount)
	for p := range paths {
		paths[p] = core.SimulatedPath{
			Name:   fmt.Sprintf("path-%d", p+1),
			Bound:  bounds[p],
			Points: make([]core.PathPoint, len(base)),
		}
	}

	// Period-major order matches how the dashboard draws all paths
	// together; each (path, period) still gets its own draw.
	values := make([]decimal.Decimal, pathCount)
	for i, period := range base {
		for p := range paths {
			variation := period.PnL.Mul(g.uniform(bounds[p]))
			values[p] = values[p].Add(period.PnL).Add(variation)
			paths[p].Points[i] = core.PathPoint{Period: period.Period, Value: values[p]}
		}
	}

	return paths, nil
}
