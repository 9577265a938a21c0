// Package daterange selects dated entries falling inside an inclusive,
// day-granular window.
package daterange

import (
	"fmt"
	"time"

	"github.com/newthinker/pnlboard/internal/core"
)

// Range is an inclusive [Start, End] window compared at day precision.
// A zero Start or End leaves that side unbounded.
type Range struct {
	Start time.Time
	End   time.Time
}

// New returns the range [start, end].
func New(start, end time.Time) Range {
	return Range{Start: start, End: end}
}

// civil drops the time of day, keeping the calendar date in t's own location.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsUnbounded reports whether the range has no bounds at all.
func (r Range) IsUnbounded() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Inverted reports whether Start falls on a later day than End.
func (r Range) Inverted() bool {
	if r.Start.IsZero() || r.End.IsZero() {
		return false
	}
	return civil(r.Start).After(civil(r.End))
}

// Contains reports whether t's calendar day lies within the range.
func (r Range) Contains(t time.Time) bool {
	d := civil(t)
	if !r.Start.IsZero() && d.Before(civil(r.Start)) {
		return false
	}
	if !r.End.IsZero() && d.After(civil(r.End)) {
		return false
	}
	return true
}

// String renders the range for logs.
func (r Range) String() string {
	format := func(t time.Time) string {
		if t.IsZero() {
			return "*"
		}
		return t.Format(core.DateLayout)
	}
	return fmt.Sprintf("[%s, %s]", format(r.Start), format(r.End))
}

// Filter returns the entries whose date lies inside r, in their original
// order. An inverted range yields an empty result rather than an error.
func Filter[T any](entries []T, r Range, dateOf func(T) time.Time) []T {
	result := make([]T, 0, len(entries))
	if r.Inverted() {
		return result
	}
	for _, e := range entries {
		if r.Contains(dateOf(e)) {
			result = append(result, e)
		}
	}
	return result
}

// FilterTrades filters trades by trade date.
func FilterTrades(trades []core.TradeRecord, r Range) []core.TradeRecord {
	return Filter(trades, r, func(t core.TradeRecord) time.Time { return t.Date })
}

// FilterPeriods filters periods by the first day of each period.
func FilterPeriods(periods []core.PeriodPnL, r Range) []core.PeriodPnL {
	return Filter(periods, r, func(p core.PeriodPnL) time.Time { return p.Start })
}

// Parse builds a range from YYYY-MM-DD bounds. Empty strings leave that
// side unbounded.
func Parse(start, end string) (Range, error) {
	var r Range
	var err error

	if start != "" {
		r.Start, err = time.Parse(core.DateLayout, start)
		if err != nil {
			return Range{}, core.WrapError(core.ErrInvalidRange,
				fmt.Errorf("invalid start date %q (expected YYYY-MM-DD): %w", start, err))
		}
	}
	if end != "" {
		r.End, err = time.Parse(core.DateLayout, end)
		if err != nil {
			return Range{}, core.WrapError(core.ErrInvalidRange,
				fmt.Errorf("invalid end date %q (expected YYYY-MM-DD): %w", end, err))
		}
	}
	return r, nil
}
