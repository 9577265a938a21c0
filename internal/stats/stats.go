// Package stats summarizes a set of closed trades for the dashboard's
// statistics panels.
package stats

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/newthinker/pnlboard/internal/core"
	"github.com/newthinker/pnlboard/internal/series"
)

// Summary holds performance statistics
type Summary struct {
	TotalTrades   int             `json:"total_trades"`
	WinningTrades int             `json:"winning_trades"`
	LosingTrades  int             `json:"losing_trades"`
	WinRate       float64         `json:"win_rate"`  // Percentage of profitable trades
	LossRate      float64         `json:"loss_rate"` // 100 - WinRate when any trade exists
	TotalPnL      decimal.Decimal `json:"total_pnl"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	GrossLoss     decimal.Decimal `json:"gross_loss"` // Absolute value of losses
	AvgWin        decimal.Decimal `json:"avg_win"`
	AvgLoss       decimal.Decimal `json:"avg_loss"` // Absolute value
	LargestWin    decimal.Decimal `json:"largest_win"`
	LargestLoss   decimal.Decimal `json:"largest_loss"` // Absolute value
	MaxDrawdown   decimal.Decimal `json:"max_drawdown"`
	ProfitFactor  float64         `json:"profit_factor"`
	SharpeRatio   float64         `json:"sharpe_ratio"` // Per-trade returns on equity, annualized
}

// Summarize computes statistics over trades in chronological order.
// baseline is the starting equity used for drawdown and Sharpe; with a zero
// baseline the Sharpe ratio is not defined and reported as 0.
func Summarize(trades []core.TradeRecord, baseline decimal.Decimal) Summary {
	if len(trades) == 0 {
		return Summary{}
	}

	sorted := core.SortTradesByDate(trades)

	s := Summary{TotalTrades: len(sorted)}
	for _, t := range sorted {
		s.TotalPnL = s.TotalPnL.Add(t.PnL)
		if t.IsWin() {
			s.WinningTrades++
			s.GrossProfit = s.GrossProfit.Add(t.PnL)
			s.LargestWin = decimal.Max(s.LargestWin, t.PnL)
			continue
		}
		loss := t.PnL.Abs()
		s.LosingTrades++
		s.GrossLoss = s.GrossLoss.Add(loss)
		s.LargestLoss = decimal.Max(s.LargestLoss, loss)
	}

	s.WinRate = float64(s.WinningTrades) / float64(s.TotalTrades) * 100
	s.LossRate = 100 - s.WinRate

	if s.WinningTrades > 0 {
		s.AvgWin = s.GrossProfit.Div(decimal.NewFromInt(int64(s.WinningTrades)))
	}
	if s.LosingTrades > 0 {
		s.AvgLoss = s.GrossLoss.Div(decimal.NewFromInt(int64(s.LosingTrades)))
	}
	if s.GrossLoss.IsPositive() {
		s.ProfitFactor = s.GrossProfit.Div(s.GrossLoss).InexactFloat64()
	}

	points := series.Drawdown(core.TradesToSeries(sorted), baseline)
	s.MaxDrawdown, _ = series.MaxDrawdown(points)

	if baseline.IsPositive() {
		s.SharpeRatio = calculateSharpeRatio(tradeReturns(points, baseline))
	}

	return s
}

// tradeReturns converts each trade into a return on the equity held
// before it. Stops at the first non-positive equity.
func tradeReturns(points []core.DrawdownPoint, baseline decimal.Decimal) []float64 {
	returns := make([]float64, 0, len(points))
	prev := baseline
	for _, p := range points {
		if !prev.IsPositive() {
			break
		}
		returns = append(returns, p.Equity.Sub(prev).Div(prev).InexactFloat64())
		prev = p.Equity
	}
	return returns
}

// calculateSharpeRatio computes risk-adjusted return
// Assumes risk-free rate of 0 for simplicity
func calculateSharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	// Calculate mean return
	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	// Calculate standard deviation
	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	stdDev := math.Sqrt(variance / float64(len(returns)-1))

	if stdDev == 0 {
		return 0
	}

	// Annualize (assuming ~252 trading days)
	annualizedReturn := mean * 252
	annualizedStdDev := stdDev * math.Sqrt(252)

	return annualizedReturn / annualizedStdDev
}
