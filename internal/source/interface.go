// Package source defines where trade and period records come from. The
// transforms never talk to a source directly; the dashboard service
// fetches records first and hands plain slices to them.
package source

import (
	"context"

	"github.com/newthinker/pnlboard/internal/core"
	"github.com/newthinker/pnlboard/internal/daterange"
)

// Source supplies already-typed trade and period records.
type Source interface {
	// Name returns the source identifier
	Name() string

	// Trades returns trades inside r for strategy, or all strategies when
	// strategy is empty. Order is the source's own order.
	Trades(ctx context.Context, r daterange.Range, strategy string) ([]core.TradeRecord, error)

	// Periods returns per-period PnL aggregates.
	Periods(ctx context.Context) ([]core.PeriodPnL, error)

	// Strategies lists the strategy names present in the trades.
	Strategies(ctx context.Context) ([]string, error)
}
