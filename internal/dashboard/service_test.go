package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newthinker/pnlboard/internal/config"
	"github.com/newthinker/pnlboard/internal/core"
	"github.com/newthinker/pnlboard/internal/daterange"
	"github.com/newthinker/pnlboard/internal/montecarlo"
	"github.com/newthinker/pnlboard/internal/series"
	"github.com/newthinker/pnlboard/internal/source/mock"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(d int) time.Time {
	return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
}

func assertDecimals(t *testing.T, want []string, got []decimal.Decimal) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, dec(want[i]).Equal(got[i]), "index %d: want %s, got %s", i, want[i], got[i])
	}
}

func testOptions() Options {
	return Options{
		Band:     series.Band{Center: dec("1000"), FullScale: dec("400")},
		Stop:     series.Stop{Amount: dec("150"), Mode: series.StopAbsolute},
		Profiles: montecarlo.DefaultProfiles(),
	}
}

// referenceSource serves five daily trades 100, -50, 80, -200, 30 in
// January 2025 plus two yearly periods.
func referenceSource() *mock.Source {
	src := mock.New()
	pnls := []string{"100", "-50", "80", "-200", "30"}
	trades := make([]core.TradeRecord, len(pnls))
	for i, p := range pnls {
		strategy := "Alpha"
		if i%2 == 1 {
			strategy = "Beta"
		}
		trades[i] = core.TradeRecord{Date: day(i + 1), PnL: dec(p), Strategy: strategy}
	}
	src.SetTrades(trades)
	src.SetPeriods([]core.PeriodPnL{
		{Period: "2024", Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), PnL: dec("120")},
		{Period: "2025", Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), PnL: dec("-40")},
	})
	return src
}

func TestService_Cumulative(t *testing.T) {
	svc := New(referenceSource(), testOptions(), nil)

	view, err := svc.Cumulative(context.Background(), Query{})
	require.NoError(t, err)

	got := make([]decimal.Decimal, len(view.Points))
	for i, p := range view.Points {
		got[i] = p.Cumulative
	}
	assertDecimals(t, []string{"100", "50", "130", "-70", "-40"}, got)
	assert.True(t, view.Total.Equal(dec("-40")))
	assert.Equal(t, "2025-01-01", view.Points[0].Key)
}

func TestService_CumulativeSortsByDate(t *testing.T) {
	src := mock.New()
	src.SetTrades([]core.TradeRecord{
		{Date: day(3), PnL: dec("3")},
		{Date: day(1), PnL: dec("1")},
		{Date: day(2), PnL: dec("2")},
	})
	svc := New(src, testOptions(), nil)

	view, err := svc.Cumulative(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", view.Points[0].Key)
	assert.True(t, view.Points[2].Cumulative.Equal(dec("6")))
}

func TestService_Drawdown(t *testing.T) {
	svc := New(referenceSource(), testOptions(), nil)

	view, err := svc.Drawdown(context.Background(), Query{})
	require.NoError(t, err)

	drawdowns := make([]decimal.Decimal, len(view.Points))
	for i, p := range view.Points {
		drawdowns[i] = p.Drawdown
	}
	assertDecimals(t, []string{"0", "50", "0", "200", "170"}, drawdowns)
	assertDecimals(t, []string{"1000", "900", "1000", "600", "660"}, view.Normalized)
	assertDecimals(t, []string{"150", "150", "150", "150", "150"}, view.StopLine)

	assert.Equal(t, []string{"2025-01-04", "2025-01-05"}, view.Breaches)
	assert.True(t, view.MaxDrawdown.Equal(dec("200")))
	assert.Equal(t, "2025-01-04", view.MaxDrawdownAt)
	assert.Equal(t, series.StopAbsolute, view.StopMode)
}

func TestService_DrawdownBaselineOverride(t *testing.T) {
	opts := testOptions()
	opts.Baseline = dec("500")
	svc := New(referenceSource(), opts, nil)

	view, err := svc.Drawdown(context.Background(), Query{})
	require.NoError(t, err)
	assert.True(t, view.Baseline.Equal(dec("500")))
	assert.True(t, view.Points[0].Equity.Equal(dec("600")))

	capital := dec("1000")
	view, err = svc.Drawdown(context.Background(), Query{Baseline: &capital})
	require.NoError(t, err)
	assert.True(t, view.Points[0].Equity.Equal(dec("1100")))
	assert.True(t, view.Points[0].Cumulative.Equal(dec("100")))
	assert.True(t, view.Points[3].Drawdown.Equal(dec("200")))
}

func TestService_RangeAndStrategy(t *testing.T) {
	svc := New(referenceSource(), testOptions(), nil)
	ctx := context.Background()

	view, err := svc.Cumulative(ctx, Query{Range: daterange.New(day(2), day(4))})
	require.NoError(t, err)
	require.Len(t, view.Points, 3)
	assert.True(t, view.Total.Equal(dec("-170")))

	view, err = svc.Cumulative(ctx, Query{Strategy: "Beta"})
	require.NoError(t, err)
	require.Len(t, view.Points, 2)
	assert.True(t, view.Total.Equal(dec("-250")))
}

func TestService_InvertedRangeIsEmpty(t *testing.T) {
	svc := New(referenceSource(), testOptions(), nil)
	q := Query{Range: daterange.New(day(5), day(1))}

	cum, err := svc.Cumulative(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, cum.Points)
	assert.True(t, cum.Total.IsZero())

	dd, err := svc.Drawdown(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, dd.Points)
	assert.Empty(t, dd.Breaches)
}

type failingSource struct {
	*mock.Source
	err error
}

func (f failingSource) Trades(ctx context.Context, r daterange.Range, strategy string) ([]core.TradeRecord, error) {
	return nil, f.err
}

func (f failingSource) Periods(ctx context.Context) ([]core.PeriodPnL, error) {
	return nil, f.err
}

func TestService_SourceErrors(t *testing.T) {
	ctx := context.Background()

	svc := New(failingSource{Source: mock.New(), err: errors.New("connection refused")}, testOptions(), nil)
	_, err := svc.Cumulative(ctx, Query{})
	assert.ErrorIs(t, err, core.ErrSourceFailed)

	_, err = svc.Simulate(ctx, Query{})
	assert.ErrorIs(t, err, core.ErrSourceFailed)

	timeout := core.WrapError(core.ErrSourceTimeout, context.DeadlineExceeded)
	svc = New(failingSource{Source: mock.New(), err: timeout}, testOptions(), nil)
	_, err = svc.Drawdown(ctx, Query{})
	assert.ErrorIs(t, err, core.ErrSourceTimeout)
	assert.NotErrorIs(t, err, core.ErrSourceFailed)
}

func TestService_Yearly(t *testing.T) {
	svc := New(referenceSource(), testOptions(), nil)

	view, err := svc.Yearly(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, view.Years, 2)

	assert.Equal(t, "2024", view.Years[0].Year)
	assert.True(t, view.Years[0].Drawdown.IsZero())
	assert.True(t, view.Years[1].Cumulative.Equal(dec("80")))
	assert.True(t, view.Years[1].Drawdown.Equal(dec("170")))
}

func TestService_YearlyByStrategyAggregatesTrades(t *testing.T) {
	svc := New(referenceSource(), testOptions(), nil)

	view, err := svc.Yearly(context.Background(), Query{Strategy: "Alpha"})
	require.NoError(t, err)
	require.Len(t, view.Years, 1)
	assert.Equal(t, "2025", view.Years[0].Year)
	assert.True(t, view.Years[0].PnL.Equal(dec("210")))
}

func TestService_Simulate(t *testing.T) {
	opts := testOptions()
	opts.Profiles = append(opts.Profiles, montecarlo.Profile{Name: "Flat", Bound: 0})
	svc := New(referenceSource(), opts, nil)
	ctx := context.Background()

	seed := uint64(7)
	first, err := svc.Simulate(ctx, Query{Seed: &seed})
	require.NoError(t, err)
	second, err := svc.Simulate(ctx, Query{Seed: &seed})
	require.NoError(t, err)

	assert.Equal(t, uint64(7), first.Seed)
	require.Len(t, first.Paths, 4)
	assert.Equal(t, "Conservative", first.Paths[0].Name)
	for p := range first.Paths {
		for i := range first.Paths[p].Points {
			assert.True(t, first.Paths[p].Points[i].Value.Equal(second.Paths[p].Points[i].Value),
				"same seed must reproduce path %d point %d", p, i)
		}
	}

	flat := first.Paths[3]
	require.Len(t, flat.Points, len(first.Base))
	for i, b := range first.Base {
		assert.True(t, flat.Points[i].Value.Equal(b.Cumulative))
	}
}

func TestService_SimulateConfiguredSeed(t *testing.T) {
	clock := func() time.Time { return time.Unix(0, 123456789) }

	for _, configured := range []uint64{99, 0} {
		opts := testOptions()
		opts.Seed = &configured
		svc := New(referenceSource(), opts, nil, WithClock(clock))

		view, err := svc.Simulate(context.Background(), Query{})
		require.NoError(t, err)
		assert.Equal(t, configured, view.Seed)

		override := uint64(5)
		view, err = svc.Simulate(context.Background(), Query{Seed: &override})
		require.NoError(t, err)
		assert.Equal(t, override, view.Seed)
	}

	svc := New(referenceSource(), testOptions(), nil, WithClock(clock))
	view, err := svc.Simulate(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, uint64(123456789), view.Seed)
}

func TestService_Stats(t *testing.T) {
	svc := New(referenceSource(), testOptions(), nil)

	view, err := svc.Stats(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, 5, view.Summary.TotalTrades)
	assert.Equal(t, 3, view.Summary.WinningTrades)
	assert.True(t, view.Summary.TotalPnL.Equal(dec("-40")))
	assert.True(t, view.Summary.MaxDrawdown.Equal(dec("200")))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Chart.InitialCapital = 2500
	cfg.Chart.Stop = config.StopConfig{Amount: 10, Mode: "relative"}

	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.True(t, opts.Baseline.Equal(dec("2500")))
	assert.Equal(t, series.StopRelative, opts.Stop.Mode)
	assert.True(t, opts.Band.Center.Equal(dec("1000")))
	require.Len(t, opts.Profiles, 3)
	assert.Equal(t, 0.15, opts.Profiles[1].Bound)

	cfg.Chart.Stop.Mode = "trailing"
	_, err = OptionsFromConfig(cfg)
	assert.ErrorIs(t, err, core.ErrConfigInvalid)
}
