// internal/source/file/file.go
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/newthinker/pnlboard/internal/core"
	"github.com/newthinker/pnlboard/internal/daterange"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

type tradeJSON struct {
	Date     string              `json:"date"`
	PnL      decimal.NullDecimal `json:"pnl"`
	Symbol   string              `json:"symbol"`
	Strategy string              `json:"strategy"`
}

type periodJSON struct {
	Period string              `json:"period"`
	Start  string              `json:"start"`
	PnL    decimal.NullDecimal `json:"pnl"`
}

type document struct {
	Trades  []tradeJSON  `json:"trades"`
	Periods []periodJSON `json:"periods"`
}

// Source serves trades and periods loaded from a JSON document.
type Source struct {
	path    string
	trades  []core.TradeRecord
	periods []core.PeriodPnL
}

// Load reads and validates the document at path.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(core.ErrSourceFailed, fmt.Errorf("read %s: %w", path, err))
	}

	src, err := Parse(data)
	if err != nil {
		return nil, err
	}
	src.path = path
	return src, nil
}

// Parse decodes a document. pnl values may be JSON numbers or strings and
// are required; a missing or null pnl is rejected rather than read as zero.
func Parse(data []byte) (*Source, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, core.WrapError(core.ErrSourceFailed, fmt.Errorf("decode: %w", err))
	}
	if len(doc.Trades) == 0 && len(doc.Periods) == 0 {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("document has no trades or periods"))
	}

	src := &Source{
		trades:  make([]core.TradeRecord, 0, len(doc.Trades)),
		periods: make([]core.PeriodPnL, 0, len(doc.Periods)),
	}

	for i, t := range doc.Trades {
		date, err := time.Parse(core.DateLayout, t.Date)
		if err != nil {
			return nil, core.WrapError(core.ErrSourceFailed, fmt.Errorf("trade %d: invalid date %q", i, t.Date))
		}
		if !t.PnL.Valid {
			return nil, core.WrapError(core.ErrSourceFailed, fmt.Errorf("trade %d: missing pnl", i))
		}
		src.trades = append(src.trades, core.TradeRecord{
			Date:     date,
			PnL:      t.PnL.Decimal,
			Symbol:   t.Symbol,
			Strategy: t.Strategy,
		})
	}

	for i, p := range doc.Periods {
		start, err := periodStart(p)
		if err != nil {
			return nil, core.WrapError(core.ErrSourceFailed, fmt.Errorf("period %d: %w", i, err))
		}
		if !p.PnL.Valid {
			return nil, core.WrapError(core.ErrSourceFailed, fmt.Errorf("period %d: missing pnl", i))
		}
		src.periods = append(src.periods, core.PeriodPnL{
			Period: p.Period,
			Start:  start,
			PnL:    p.PnL.Decimal,
		})
	}

	return src, nil
}

// periodStart uses the explicit start date, or January 1 for a year label.
func periodStart(p periodJSON) (time.Time, error) {
	if p.Start != "" {
		start, err := time.Parse(core.DateLayout, p.Start)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid start %q", p.Start)
		}
		return start, nil
	}
	if yearPattern.MatchString(p.Period) {
		year, _ := strconv.Atoi(p.Period)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("period %q needs a start date", p.Period)
}

// Name returns the source name.
func (s *Source) Name() string {
	return "file"
}

// Path returns the file the source was loaded from.
func (s *Source) Path() string {
	return s.path
}

// Trades returns trades in the range, in file order.
func (s *Source) Trades(ctx context.Context, r daterange.Range, strategy string) ([]core.TradeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, core.WrapError(core.ErrSourceTimeout, err)
	}

	matched := make([]core.TradeRecord, 0, len(s.trades))
	for _, t := range s.trades {
		if strategy != "" && t.Strategy != strategy {
			continue
		}
		matched = append(matched, t)
	}
	return daterange.FilterTrades(matched, r), nil
}

// Periods returns the periods in file order.
func (s *Source) Periods(ctx context.Context) ([]core.PeriodPnL, error) {
	if err := ctx.Err(); err != nil {
		return nil, core.WrapError(core.ErrSourceTimeout, err)
	}
	result := make([]core.PeriodPnL, len(s.periods))
	copy(result, s.periods)
	return result, nil
}

// Strategies returns the distinct strategy names, sorted.
func (s *Source) Strategies(ctx context.Context) ([]string, error) {
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
