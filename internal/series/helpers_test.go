package series

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/newthinker/pnlboard/internal/core"
)

func seriesOf(values ...int64) []core.SeriesPoint {
	points := make([]core.SeriesPoint, len(values))
	for i, v := range values {
		points[i] = core.SeriesPoint{Key: fmt.Sprintf("p%d", i), PnL: decimal.NewFromInt(v)}
	}
	return points
}

func assertDecimals(t *testing.T, name string, got []decimal.Decimal, want ...int64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len = %d, want %d", name, len(got), len(want))
	}
	for i, w := range want {
		if !got[i].Equal(decimal.NewFromInt(w)) {
			t.Errorf("%s[%d] = %s, want %d", name, i, got[i], w)
		}
	}
}
