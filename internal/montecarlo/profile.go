package montecarlo

import (
	"fmt"

	"github.com/newthinker/pnlboard/internal/core"
)

// Profile names a variation bound, e.g. "Conservative" at 5%.
type Profile struct {
	Name  string  `mapstructure:"name" json:"name"`
	Bound float64 `mapstructure:"bound" json:"bound"`
}

// DefaultProfiles returns the three dashboard risk profiles.
func DefaultProfiles() []Profile {
	return []Profile{
		{Name: "Conservative", Bound: 0.05},
		{Name: "Modest", Bound: 0.15},
		{Name: "Aggressive", Bound: 0.30},
	}
}

// GenerateProfiles draws one path per profile and names each path after it.
func (g *Generator) GenerateProfiles(base []core.PeriodPnL, profiles []Profile) ([]core.SimulatedPath, error) {
	if len(profiles) == 0 {
		return nil, core.WrapError(core.ErrInvalidPathCount, fmt.Errorf("no profiles"))
	}

	bounds := make([]float64, len(profiles))
	for i, p := range profiles {
		bounds[i] = p.Bound
	}

	paths, err := g.Generate(base, len(profiles), bounds)
	if err != nil {
		return nil, err
	}
	for i := range paths {
		paths[i].Name = profiles[i].Name
	}
	return paths, nil
}
