// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"fmt"

	"github.com/pdiddy/talentrankr/pkg/types"
)

// Experience rises linearly from 0 at zero years to 100 at the saturation
// ceiling and stays there.
func Experience(years float64, cfg types.ExperienceConfig) types.DimensionScore {
	ds := types.DimensionScore{Dimension: types.DimensionExperience}
	if years <= 0 || cfg.SaturationYears <= 0 {
		ds.Explanation = "no experience duration found"
		return ds
	}

	ds.Value = clamp(100 * years / cfg.SaturationYears)
	ds.Explanation = fmt.Sprintf("%.1f years (saturates at %g)", years, cfg.SaturationYears)
	return ds
}
