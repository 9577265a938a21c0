// Package dashboard composes the data source, the PnL transforms and the
// snapshot archive into the views the dashboard serves.
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/newthinker/pnlboard/internal/core"
	"github.com/newthinker/pnlboard/internal/daterange"
	"github.com/newthinker/pnlboard/internal/metrics"
	"github.com/newthinker/pnlboard/internal/montecarlo"
	"github.com/newthinker/pnlboard/internal/series"
	"github.com/newthinker/pnlboard/internal/source"
	"github.com/newthinker/pnlboard/internal/stats"
	"github.com/newthinker/pnlboard/internal/storage/archive"
	"github.com/newthinker/pnlboard/internal/storage/snapshot"
)

// Query selects the records a view is computed from. Nil Baseline and
// Seed fall back to the service options.
type Query struct {
	Range    daterange.Range
	Strategy string
	Baseline *decimal.Decimal
	Seed     *uint64
}

// Service computes every view from scratch on each call. It holds no
// per-request state and is safe for concurrent use.
type Service struct {
	src     source.Source
	opts    Options
	logger  *zap.Logger
	metrics *metrics.Registry
	archive archive.Storage
	index   snapshot.Store
	now     func() time.Time
}

// ServiceOption configures optional collaborators.
type ServiceOption func(*Service)

// WithMetrics records business metrics on reg.
func WithMetrics(reg *metrics.Registry) ServiceOption {
	return func(s *Service) {
		s.metrics = reg
	}
}

// WithArchive enables snapshots, written to storage and indexed in index.
func WithArchive(storage archive.Storage, index snapshot.Store) ServiceOption {
	return func(s *Service) {
		s.archive = storage
		s.index = index
	}
}

// WithClock overrides time.Now for snapshot timestamps and seeds.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a Service over src.
func New(src source.Source, opts Options, logger *zap.Logger, svcOpts ...ServiceOption) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(opts.Profiles) == 0 {
		opts.Profiles = montecarlo.DefaultProfiles()
	}

	s := &Service{
		src:    src,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
	for _, o := range svcOpts {
		o(s)
	}
	return s
}

// Source returns the underlying data source.
func (s *Service) Source() source.Source {
	return s.src
}

// Options returns the chart defaults in effect.
func (s *Service) Options() Options {
	return s.opts
}

func (s *Service) baseline(q Query) decimal.Decimal {
	if q.Baseline != nil {
		return *q.Baseline
	}
	return s.opts.Baseline
}

// seed picks the query seed, then the configured one, then the clock.
func (s *Service) seed(q Query) uint64 {
	if q.Seed != nil {
		return *q.Seed
	}
	if s.opts.Seed != nil {
		return *s.opts.Seed
	}
	return uint64(s.now().UnixNano())
}

func (s *Service) observe(kind string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordSeries(kind, time.Since(start).Seconds())
	}
}

// sourceError keeps coded source errors and wraps anything else.
func sourceError(err error) error {
	var coded *core.Error
	if errors.As(err, &coded) {
		return err
	}
	return core.WrapError(core.ErrSourceFailed, err)
}

// Trades returns the query's trades in chronological order.
func (s *Service) Trades(ctx context.Context, q Query) ([]core.TradeRecord, error) {
	if q.Range.Inverted() {
		s.logger.Debug("inverted date range, returning no trades",
			zap.String("range", q.Range.String()))
		return []core.TradeRecord{}, nil
	}

	trades, err := s.src.Trades(ctx, q.Range, q.Strategy)
	if err != nil {
		s.logger.Warn("source trades failed",
			zap.String("source", s.src.Name()),
			zap.Error(err))
		return nil, sourceError(err)
	}
	if s.metrics != nil {
		s.metrics.SetSourceTrades(len(trades))
	}
	return core.SortTradesByDate(trades), nil
}

// Periods returns the yearly aggregates behind the query. The source's own
// periods are used for the unfiltered portfolio; a strategy filter, or a
// source without periods, aggregates the matching trades by year.
func (s *Service) Periods(ctx context.Context, q Query) ([]core.PeriodPnL, error) {
	return s.periodsFrom(ctx, q, nil)
}

// periodsFrom is Periods reusing trades when the caller already fetched
// them for q; nil trades are fetched on demand.
func (s *Service) periodsFrom(ctx context.Context, q Query, trades []core.TradeRecord) ([]core.PeriodPnL, error) {
	if q.Strategy == "" {
		periods, err := s.src.Periods(ctx)
		if err != nil {
			return nil, sourceError(err)
		}
		if len(periods) > 0 {
			return daterange.FilterPeriods(periods, q.Range), nil
		}
	}

	if trades == nil {
		var err error
		if trades, err = s.Trades(ctx, q); err != nil {
			return nil, err
		}
	}
	return series.AggregateByYear(trades), nil
}

// Strategies lists the strategies the source knows.
func (s *Service) Strategies(ctx context.Context) ([]string, error) {
	names, err := s.src.Strategies(ctx)
	if err != nil {
		return nil, sourceError(err)
	}
	return names, nil
}

// Cumulative computes the running PnL line.
func (s *Service) Cumulative(ctx context.Context, q Query) (*CumulativeView, error) {
	defer s.observe("cumulative", time.Now())

	trades, err := s.Trades(ctx, q)
	if err != nil {
		return nil, err
	}
	return cumulativeView(q, trades), nil
}

func cumulativeView(q Query, trades []core.TradeRecord) *CumulativeView {
	points := core.TradesToSeries(trades)
	return &CumulativeView{
		Range:    q.Range.String(),
		Strategy: q.Strategy,
		Points:   series.Cumulative(points),
		Total:    series.Sum(points),
	}
}

// Drawdown computes the drawdown line, its normalized band and the stop line.
func (s *Service) Drawdown(ctx context.Context, q Query) (*DrawdownView, error) {
	defer s.observe("drawdown", time.Now())

	trades, err := s.Trades(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.drawdownView(q, trades), nil
}

func (s *Service) drawdownView(q Query, trades []core.TradeRecord) *DrawdownView {
	baseline := s.baseline(q)
	points := series.Drawdown(core.TradesToSeries(trades), baseline)
	maxDD, maxAt := series.MaxDrawdown(points)

	breaches := series.StopBreaches(points, s.opts.Stop)
	if breaches == nil {
		breaches = []string{}
	}

	return &DrawdownView{
		Range:         q.Range.String(),
		Strategy:      q.Strategy,
		Baseline:      baseline,
		Points:        points,
		Normalized:    series.Normalize(points, s.opts.Band),
		StopLine:      series.StopLine(points, s.opts.Stop),
		StopMode:      s.opts.Stop.Mode,
		Breaches:      breaches,
		MaxDrawdown:   maxDD,
		MaxDrawdownAt: maxAt,
	}
}

// Yearly joins yearly PnL with the per-year trade drawdown.
func (s *Service) Yearly(ctx context.Context, q Query) (*YearlyView, error) {
	defer s.observe("yearly", time.Now())

	trades, err := s.Trades(ctx, q)
	if err != nil {
		return nil, err
	}
	periods, err := s.periodsFrom(ctx, q, trades)
	if err != nil {
		return nil, err
	}
	return s.yearlyView(q, periods, trades), nil
}

func (s *Service) yearlyView(q Query, periods []core.PeriodPnL, trades []core.TradeRecord) *YearlyView {
	baseline := s.baseline(q)
	return &YearlyView{
		Range:    q.Range.String(),
		Strategy: q.Strategy,
		Baseline: baseline,
		Years:    series.CombineYearly(periods, trades, baseline),
	}
}

// Simulate draws one Monte Carlo path per configured profile over the
// yearly periods. Each call builds its own random source.
func (s *Service) Simulate(ctx context.Context, q Query) (*SimulationView, error) {
	defer s.observe("simulation", time.Now())

	periods, err := s.Periods(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.simulationView(q, periods)
}

func (s *Service) simulationView(q Query, periods []core.PeriodPnL) (*SimulationView, error) {
	seed := s.seed(q)
	gen := montecarlo.New(montecarlo.NewSeeded(seed))

	paths, err := gen.GenerateProfiles(periods, s.opts.Profiles)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.AddSimulatedPaths(len(paths))
	}

	s.logger.Debug("simulation generated",
		zap.Uint64("seed", seed),
		zap.Int("paths", len(paths)),
		zap.Int("periods", len(periods)))

	return &SimulationView{
		Seed:  seed,
		Base:  series.Cumulative(core.PeriodsToSeries(periods)),
		Paths: paths,
	}, nil
}

// Stats summarizes the query's trades.
func (s *Service) Stats(ctx context.Context, q Query) (*StatsView, error) {
	defer s.observe("stats", time.Now())

	trades, err := s.Trades(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.statsView(q, trades), nil
}

func (s *Service) statsView(q Query, trades []core.TradeRecord) *StatsView {
	return &StatsView{
		Range:    q.Range.String(),
		Strategy: q.Strategy,
		Summary:  stats.Summarize(trades, s.baseline(q)),
	}
}
