// internal/api/handler/api/query.go
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/newthinker/pnlboard/internal/core"
	"github.com/newthinker/pnlboard/internal/daterange"
	"github.com/newthinker/pnlboard/internal/dashboard"
)

// ParseQuery reads from, to, preset, strategy, initial_capital and seed.
// Presets resolve against now; a preset cannot be combined with from/to.
func ParseQuery(r *http.Request, now time.Time) (dashboard.Query, error) {
	params := r.URL.Query()
	q := dashboard.Query{Strategy: params.Get("strategy")}

	from, to := params.Get("from"), params.Get("to")
	if preset := params.Get("preset"); preset != "" {
		if from != "" || to != "" {
			return q, core.WrapError(core.ErrInvalidRange,
				fmt.Errorf("preset cannot be combined with from/to"))
		}
		p, err := daterange.ParsePreset(preset)
		if err != nil {
			return q, err
		}
		q.Range = daterange.PresetRange(p, now)
	} else {
		rng, err := daterange.Parse(from, to)
		if err != nil {
			return q, err
		}
		q.Range = rng
	}

	if v := params.Get("initial_capital"); v != "" {
		capital, err := decimal.NewFromString(v)
		if err != nil {
			return q, core.WrapError(core.ErrInvalidParam,
				fmt.Errorf("initial_capital %q is not a number", v))
		}
		q.Baseline = &capital
	}

	if v := params.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return q, core.WrapError(core.ErrInvalidParam,
				fmt.Errorf("seed %q is not an unsigned integer", v))
		}
		q.Seed = &seed
	}

	return q, nil
}
