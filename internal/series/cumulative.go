// Package series turns ordered PnL values into chart-ready series:
// running totals, running-peak drawdown and the derived display lines.
package series

import (
	"github.com/shopspring/decimal"

	"github.com/newthinker/pnlboard/internal/core"
)

// Cumulative folds points into their running total, one output per input
// in the same order. Input order is the display order; nothing is sorted.
func Cumulative(points []core.SeriesPoint) []core.CumulativePoint {
	result := make([]core.CumulativePoint, len(points))
	total := decimal.Zero
	for i, p := range points {
		total = total.Add(p.PnL)
		result[i] = core.CumulativePoint{Key: p.Key, Cumulative: total}
	}
	return result
}

// Sum returns the exact total of all point values.
func Sum(points []core.SeriesPoint) decimal.Decimal {
	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.PnL)
	}
	return total
}
