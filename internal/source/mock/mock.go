// internal/source/mock/mock.go
package mock

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/newthinker/pnlboard/internal/core"
	"github.com/newthinker/pnlboard/internal/daterange"
)

// Strategy names used by the demo data.
const (
	StrategyComfortable = "Comfortable"
	StrategyModest      = "Modest"
	StrategyAggressive  = "Aggressive"
	StrategyPortfolio   = "Portfolio"
)

// Source serves deterministic demo data, optionally after a simulated
// network delay.
type Source struct {
	mu      sync.RWMutex
	trades  []core.TradeRecord
	periods []core.PeriodPnL
	latency time.Duration
}

// Option configures a Source.
type Option func(*Source)

// WithLatency delays every call by d, or until the context is done.
func WithLatency(d time.Duration) Option {
	return func(s *Source) {
		s.latency = d
	}
}

// New creates a mock source with sample data.
func New(opts ...Option) *Source {
	s := &Source{
		periods: yearlyOverview(),
	}
	s.trades = append(portfolioHistory(s.periods), dailyStrategyTrades(MonthStart, 31)...)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the source name.
func (s *Source) Name() string {
	return "mock"
}

func (s *Source) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return core.WrapError(core.ErrSourceTimeout, ctx.Err())
	}
}

// Trades returns mock trades in the range, in insertion order.
func (s *Source) Trades(ctx context.Context, r daterange.Range, strategy string) ([]core.TradeRecord, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]core.TradeRecord, 0, len(s.trades))
	for _, t := range s.trades {
		if strategy != "" && t.Strategy != strategy {
			continue
		}
		matched = append(matched, t)
	}
	return daterange.FilterTrades(matched, r), nil
}

// Periods returns the yearly overview.
func (s *Source) Periods(ctx context.Context) ([]core.PeriodPnL, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]core.PeriodPnL, len(s.periods))
	copy(result, s.periods)
	return result, nil
}

// Strategies returns the distinct strategy names, sorted.
func (s *Source) Strategies(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, t := range s.trades {
		if t.Strategy != "" {
			seen[t.Strategy] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// AddTrade adds a trade for testing.
func (s *Source) AddTrade(trade core.TradeRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades = append(s.trades, trade)
}

// SetTrades replaces all trades.
func (s *Source) SetTrades(trades []core.TradeRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades = append([]core.TradeRecord(nil), trades...)
}

// SetPeriods replaces the yearly overview.
func (s *Source) SetPeriods(periods []core.PeriodPnL) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.periods = append([]core.PeriodPnL(nil), periods...)
}

func yearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// yearlyOverview is the annual PnL shown on the yearly screen.
func yearlyOverview() []core.PeriodPnL {
	values := []int64{80, 130, 110, 200, 140, 190}
	periods := make([]core.PeriodPnL, len(values))
	for i, v := range values {
		year := 2020 + i
		periods[i] = core.PeriodPnL{
			Period: strconv.Itoa(year),
			Start:  yearStart(year),
			PnL:    decimal.NewFromInt(v),
		}
	}
	return periods
}

// quarterWeights split a year's PnL into four quarterly trades; they sum to 1.
var quarterWeights = []decimal.Decimal{
	decimal.RequireFromString("0.6"),
	decimal.RequireFromString("-0.3"),
	decimal.RequireFromString("0.5"),
	decimal.RequireFromString("0.2"),
}

// portfolioHistory spreads each period into quarterly trades so the
// yearly drawdown line has trade-level data behind it.
func portfolioHistory(periods []core.PeriodPnL) []core.TradeRecord {
	var trades []core.TradeRecord
	for _, p := range periods {
		for q, w := range quarterWeights {
			trades = append(trades, core.TradeRecord{
				Date:     p.Start.AddDate(0, q*3+2, 0),
				PnL:      p.PnL.Mul(w),
				Symbol:   "SP500",
				Strategy: StrategyPortfolio,
			})
		}
	}
	return trades
}

// MonthStart is the first day of the demo daily data.
var MonthStart = time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

// dailyProfile is one demo strategy's profit formula by day index.
type dailyProfile struct {
	strategy string
	profit   func(i int) int64
}

var dailyProfiles = []dailyProfile{
	{StrategyComfortable, func(i int) int64 {
		if i%2 == 0 {
			return 900 - int64(i)*15
		}
		return -500 + int64(i)*5
	}},
	{StrategyModest, func(i int) int64 {
		if i%3 == 0 {
			return 300
		}
		return -250
	}},
	{StrategyAggressive, func(i int) int64 {
		if i%2 == 0 {
			return 1200 - int64(i)*20
		}
		return -900 + int64(i)*10
	}},
}

// DailyProfit returns the demo profit of strategy on day index i (0-based).
func DailyProfit(strategy string, i int) (int64, error) {
	for _, p := range dailyProfiles {
		if p.strategy == strategy {
			return p.profit(i), nil
		}
	}
	return 0, fmt.Errorf("unknown strategy: %s", strategy)
}

func dailyStrategyTrades(start time.Time, days int) []core.TradeRecord {
	symbols := []string{"SP500", "NDX"}
	var trades []core.TradeRecord
	for _, p := range dailyProfiles {
		for i := 0; i < days; i++ {
			trades = append(trades, core.TradeRecord{
				Date:     start.AddDate(0, 0, i),
				PnL:      decimal.NewFromInt(p.profit(i)),
				Symbol:   symbols[i%len(symbols)],
				Strategy: p.strategy,
			})
		}
	}
	return trades
}
