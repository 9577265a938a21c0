package daterange

import (
	"fmt"
	"strings"
	"time"

	"github.com/newthinker/pnlboard/internal/core"
)

// Preset is a named window relative to a reference day.
type Preset string

const (
	PresetToday     Preset = "today"
	PresetYesterday Preset = "yesterday"
	PresetWeek      Preset = "week"
	PresetMonth     Preset = "month"
	PresetQuarter   Preset = "quarter"
	PresetYear      Preset = "year"
	PresetAll       Preset = "all"
)

// Presets lists every supported preset in display order.
func Presets() []Preset {
	return []Preset{PresetToday, PresetYesterday, PresetWeek, PresetMonth, PresetQuarter, PresetYear, PresetAll}
}

// ParsePreset matches a preset name case-insensitively.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", core.WrapError(core.ErrInvalidRange, fmt.Errorf("unknown preset %q", s))
}

// PresetRange resolves p against the calendar day of ref.
//
// week covers the last seven days including ref; month, quarter and year
// run from the start of the calendar period up to ref; all is unbounded.
func PresetRange(p Preset, ref time.Time) Range {
	y, m, d := ref.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, ref.Location())

	switch p {
	case PresetToday:
		return Range{Start: today, End: today}
	case PresetYesterday:
		yesterday := today.AddDate(0, 0, -1)
		return Range{Start: yesterday, End: yesterday}
	case PresetWeek:
		return Range{Start: today.AddDate(0, 0, -6), End: today}
	case PresetMonth:
		return Range{Start: time.Date(y, m, 1, 0, 0, 0, 0, ref.Location()), End: today}
	case PresetQuarter:
		first := time.Month((int(m)-1)/3*3 + 1)
		return Range{Start: time.Date(y, first, 1, 0, 0, 0, 0, ref.Location()), End: today}
	case PresetYear:
		return Range{Start: time.Date(y, time.January, 1, 0, 0, 0, 0, ref.Location()), End: today}
	default:
		return Range{}
	}
}
