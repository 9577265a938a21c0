package series

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/newthinker/pnlboard/internal/core"
)

// YearlyPoint joins a period's PnL bar with the trade-level drawdown line.
type YearlyPoint struct {
	Year       string          `json:"year"`
	PnL        decimal.Decimal `json:"pnl"`
	Cumulative decimal.Decimal `json:"cumulative"`
	Drawdown   decimal.Decimal `json:"drawdown"`
}

func yearOf(t time.Time) string {
	return strconv.Itoa(t.Year())
}

// AggregateByYear sums trade PnL per calendar year, ascending by year.
func AggregateByYear(trades []core.TradeRecord) []core.PeriodPnL {
	totals := make(map[int]decimal.Decimal)
	for _, t := range trades {
		y := t.Date.Year()
		totals[y] = totals[y].Add(t.PnL)
	}

	years := make([]int, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	sort.Ints(years)

	periods := make([]core.PeriodPnL, len(years))
	for i, y := range years {
		periods[i] = core.PeriodPnL{
			Period: strconv.Itoa(y),
			Start:  time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
			PnL:    totals[y],
		}
	}
	return periods
}

// YearlyDrawdown sorts trades by date, folds them into a drawdown series
// and keeps the last drawdown observed in each calendar year.
func YearlyDrawdown(trades []core.TradeRecord, baseline decimal.Decimal) map[string]decimal.Decimal {
	sorted := core.SortTradesByDate(trades)
	points := Drawdown(core.TradesToSeries(sorted), baseline)

	result := make(map[string]decimal.Decimal)
	for i, p := range points {
		result[yearOf(sorted[i].Date)] = p.Drawdown
	}
	return result
}

// CombineYearly merges period PnL with the per-year drawdown of the
// underlying trades. Years without trades carry zero drawdown.
func CombineYearly(periods []core.PeriodPnL, trades []core.TradeRecord, baseline decimal.Decimal) []YearlyPoint {
	drawdowns := YearlyDrawdown(trades, baseline)
	cumulative := Cumulative(core.PeriodsToSeries(periods))

	result := make([]YearlyPoint, len(periods))
	for i, p := range periods {
		result[i] = YearlyPoint{
			Year:       p.Period,
			PnL:        p.PnL,
			Cumulative: cumulative[i].Cumulative,
			Drawdown:   drawdowns[p.Period],
		}
	}
	return result
}
