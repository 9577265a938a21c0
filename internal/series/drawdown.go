package series

import (
	"github.com/shopspring/decimal"

	"github.com/newthinker/pnlboard/internal/core"
)

// Drawdown folds points into equity, running peak and drawdown.
//
// Equity and peak both start at baseline; pass decimal.Zero when no
// initial capital applies. Points must already be in chronological order.
func Drawdown(points []core.SeriesPoint, baseline decimal.Decimal) []core.DrawdownPoint {
	result := make([]core.DrawdownPoint, len(points))

	cumulative := decimal.Zero
	peak := baseline

	for i, p := range points {
		cumulative = cumulative.Add(p.PnL)
		equity := baseline.Add(cumulative)
		peak = decimal.Max(peak, equity)

		result[i] = core.DrawdownPoint{
			Key:        p.Key,
			Cumulative: cumulative,
			Equity:     equity,
			Peak:       peak,
			Drawdown:   decimal.Max(decimal.Zero, peak.Sub(equity)),
		}
	}

	return result
}

// MaxDrawdown returns the largest drawdown and the key where it first
// occurred. Empty input yields zero and an empty key.
func MaxDrawdown(points []core.DrawdownPoint) (decimal.Decimal, string) {
	maxDD := decimal.Zero
	var key string
	for _, p := range points {
		if p.Drawdown.GreaterThan(maxDD) {
			maxDD = p.Drawdown
			key = p.Key
		}
	}
	return maxDD, key
}

// Band is the display range a drawdown line is rescaled into so it can be
// overlaid on a second chart axis. Zero drawdown maps to Center and the
// maximum drawdown maps to Center - FullScale.
type Band struct {
	Center    decimal.Decimal
	FullScale decimal.Decimal
}

// Normalize rescales the drawdown of each point into band. With no
// pullbacks at all every value is Center.
func Normalize(points []core.DrawdownPoint, band Band) []decimal.Decimal {
	result := make([]decimal.Decimal, len(points))

	maxDD, _ := MaxDrawdown(points)
	if maxDD.IsZero() {
		for i := range result {
			result[i] = band.Center
		}
		return result
	}

	for i, p := range points {
		offset := p.Drawdown.Div(maxDD).Mul(band.FullScale)
		result[i] = band.Center.Sub(offset)
	}
	return result
}
