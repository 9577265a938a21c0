package series

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newthinker/pnlboard/internal/core"
)

func drawdowns(points []core.DrawdownPoint) []decimal.Decimal {
	out := make([]decimal.Decimal, len(points))
	for i, p := range points {
		out[i] = p.Drawdown
	}
	return out
}

func TestDrawdown_ReferenceSequence(t *testing.T) {
	got := Drawdown(seriesOf(100, -50, 80, -200, 30), decimal.Zero)
	require.Len(t, got, 5)

	cumulative := make([]decimal.Decimal, len(got))
	peaks := make([]decimal.Decimal, len(got))
	for i, p := range got {
		cumulative[i] = p.Cumulative
		peaks[i] = p.Peak
	}

	assertDecimals(t, "cumulative", cumulative, 100, 50, 130, -70, -40)
	assertDecimals(t, "peak", peaks, 100, 100, 130, 130, 130)
	assertDecimals(t, "drawdown", drawdowns(got), 0, 50, 0, 200, 170)
}

func TestDrawdown_Empty(t *testing.T) {
	assert.Empty(t, Drawdown(nil, decimal.Zero))
}

func TestDrawdown_SinglePoint(t *testing.T) {
	got := Drawdown([]core.SeriesPoint{{Key: "a", PnL: decimal.NewFromInt(100)}}, decimal.Zero)

	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Key)
	assert.True(t, got[0].Cumulative.Equal(decimal.NewFromInt(100)))
	assert.True(t, got[0].Drawdown.IsZero())
}

func TestDrawdown_InitialLossBelowBaseline(t *testing.T) {
	// peak starts at zero, so an opening loss is already a drawdown
	got := Drawdown(seriesOf(-40, 10), decimal.Zero)
	assertDecimals(t, "drawdown", drawdowns(got), 40, 30)
}

func TestDrawdown_WithInitialCapital(t *testing.T) {
	got := Drawdown(seriesOf(500, -1500, 2000), decimal.NewFromInt(10_000))

	equity := make([]decimal.Decimal, len(got))
	for i, p := range got {
		equity[i] = p.Equity
	}

	assertDecimals(t, "equity", equity, 10_500, 9_000, 11_000)
	assertDecimals(t, "drawdown", drawdowns(got), 0, 1_500, 0)
	assert.True(t, got[1].Cumulative.Equal(decimal.NewFromInt(-1000)), "cumulative stays a pure PnL sum")
}

func TestDrawdown_NeverNegativeAndResetsOnNewPeak(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	for run := 0; run < 50; run++ {
		n := 1 + rng.IntN(60)
		points := make([]core.SeriesPoint, n)
		for i := range points {
			points[i] = core.SeriesPoint{Key: "k", PnL: decimal.NewFromInt(rng.Int64N(2001) - 1000)}
		}
		baseline := decimal.NewFromInt(rng.Int64N(5000))

		got := Drawdown(points, baseline)

		for i, p := range got {
			require.False(t, p.Drawdown.IsNegative(), "drawdown[%d] = %s", i, p.Drawdown)
			if p.Equity.Equal(p.Peak) {
				require.True(t, p.Drawdown.IsZero(), "drawdown must be 0 at a peak")
			}
		}
	}
}

func TestMaxDrawdown(t *testing.T) {
	points := Drawdown(seriesOf(100, -50, 80, -200, 30), decimal.Zero)

	maxDD, key := MaxDrawdown(points)

	assert.True(t, maxDD.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "p3", key)
}

func TestMaxDrawdown_Empty(t *testing.T) {
	maxDD, key := MaxDrawdown(nil)
	assert.True(t, maxDD.IsZero())
	assert.Empty(t, key)
}

func TestNormalize(t *testing.T) {
	points := Drawdown(seriesOf(100, -50, 80, -200, 30), decimal.Zero)
	band := Band{Center: decimal.NewFromInt(1000), FullScale: decimal.NewFromInt(400)}

	got := Normalize(points, band)

	// drawdowns 0,50,0,200,170 over max 200 -> 0, .25, 0, 1, .85 of 400
	assertDecimals(t, "normalized", got, 1000, 900, 1000, 600, 660)
}

func TestNormalize_NoPullbacks(t *testing.T) {
	points := Drawdown(seriesOf(10, 20, 30), decimal.Zero)
	band := Band{Center: decimal.NewFromInt(1000), FullScale: decimal.NewFromInt(400)}

	got := Normalize(points, band)

	assertDecimals(t, "normalized", got, 1000, 1000, 1000)
}

func TestNormalize_Empty(t *testing.T) {
	assert.Empty(t, Normalize(nil, Band{Center: decimal.NewFromInt(1)}))
}
