package series

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/newthinker/pnlboard/internal/core"
)

// StopMode selects how a stop level is expressed.
type StopMode string

const (
	// StopAbsolute draws a fixed currency amount.
	StopAbsolute StopMode = "absolute"
	// StopRelative draws a percentage of the running equity peak.
	StopRelative StopMode = "relative"
)

// ParseStopMode validates a configured stop mode. Empty means absolute.
func ParseStopMode(s string) (StopMode, error) {
	switch StopMode(s) {
	case "", StopAbsolute:
		return StopAbsolute, nil
	case StopRelative:
		return StopRelative, nil
	}
	return "", core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown stop mode %q", s))
}

// Stop is the drawdown level at which trading would be halted.
type Stop struct {
	Amount decimal.Decimal
	Mode   StopMode
}

var hundred = decimal.NewFromInt(100)

// hasLevel reports whether p has a stop level. A relative stop has none
// while the peak is not positive, e.g. before the first gain with no
// initial capital.
func (s Stop) hasLevel(p core.DrawdownPoint) bool {
	return s.Mode != StopRelative || p.Peak.IsPositive()
}

// StopLine returns the stop level at each drawdown point, for plotting
// against the drawdown line. Points without a level plot at zero.
func StopLine(points []core.DrawdownPoint, stop Stop) []decimal.Decimal {
	result := make([]decimal.Decimal, len(points))
	for i, p := range points {
		switch {
		case !stop.hasLevel(p):
			result[i] = decimal.Zero
		case stop.Mode == StopRelative:
			result[i] = p.Peak.Mul(stop.Amount).Div(hundred)
		default:
			result[i] = stop.Amount
		}
	}
	return result
}

// StopBreaches returns the keys of the points whose drawdown reached the
// stop level. Points without a level never breach.
func StopBreaches(points []core.DrawdownPoint, stop Stop) []string {
	levels := StopLine(points, stop)
	var keys []string
	for i, p := range points {
		if !stop.hasLevel(p) {
			continue
		}
		if p.Drawdown.IsPositive() && p.Drawdown.GreaterThanOrEqual(levels[i]) {
			keys = append(keys, p.Key)
		}
	}
	return keys
}
