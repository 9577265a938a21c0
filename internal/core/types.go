package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the day-precision layout used for keys and wire formats.
const DateLayout = "2006-01-02"

// TradeRecord is one closed trade's profit or loss on a given day.
type TradeRecord struct {
	Date     time.Time       `json:"date"`
	PnL      decimal.Decimal `json:"pnl"`
	Symbol   string          `json:"symbol,omitempty"`
	Strategy string          `json:"strategy,omitempty"`
}

// IsWin returns true if the trade was profitable
func (t TradeRecord) IsWin() bool {
	return t.PnL.IsPositive()
}

// Key returns the trade date formatted at day precision.
func (t TradeRecord) Key() string {
	return t.Date.Format(DateLayout)
}

// PeriodPnL is one aggregate value per period, e.g. a calendar year.
type PeriodPnL struct {
	Period string          `json:"period"`
	Start  time.Time       `json:"start"` // first day of the period
	PnL    decimal.Decimal `json:"pnl"`
}

// SeriesPoint is a keyed PnL value in display order.
type SeriesPoint struct {
	Key string          `json:"key"`
	PnL decimal.Decimal `json:"pnl"`
}

// CumulativePoint is the running PnL total at Key.
type CumulativePoint struct {
	Key        string          `json:"key"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// DrawdownPoint carries the running total, equity and decline from the
// running equity peak at Key. Drawdown is never negative.
type DrawdownPoint struct {
	Key        string          `json:"key"`
	Cumulative decimal.Decimal `json:"cumulative"`
	Equity     decimal.Decimal `json:"equity"`
	Peak       decimal.Decimal `json:"peak"`
	Drawdown   decimal.Decimal `json:"drawdown"`
}

// PathPoint is one step of a simulated path.
type PathPoint struct {
	Period string          `json:"period"`
	Value  decimal.Decimal `json:"value"`
}

// SimulatedPath is one randomized cumulative trajectory.
type SimulatedPath struct {
	Name   string      `json:"name"`
	Bound  float64     `json:"bound"`
	Points []PathPoint `json:"points"`
}

// TradesToSeries keys each trade by its day, keeping input order.
func TradesToSeries(trades []TradeRecord) []SeriesPoint {
	points := make([]SeriesPoint, len(trades))
	for i, t := range trades {
		points[i] = SeriesPoint{Key: t.Key(), PnL: t.PnL}
	}
	return points
}

// PeriodsToSeries keys each period by its label, keeping input order.
func PeriodsToSeries(periods []PeriodPnL) []SeriesPoint {
	points := make([]SeriesPoint, len(periods))
	for i, p := range periods {
		points[i] = SeriesPoint{Key: p.Period, PnL: p.PnL}
	}
	return points
}

// SortTradesByDate returns a copy of trades sorted by date ascending.
// Trades on the same instant keep their relative order.
func SortTradesByDate(trades []TradeRecord) []TradeRecord {
	sorted := make([]TradeRecord, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
