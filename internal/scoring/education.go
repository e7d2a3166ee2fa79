// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"fmt"

	"github.com/pdiddy/talentrankr/internal/normalize"
	"github.com/pdiddy/talentrankr/pkg/types"
)

// Education returns the points of the highest tier whose keyword appears in
// tokens. Tiers must be ordered by ascending points. With no recognized
// keyword the first (lowest) tier's points are returned.
func Education(tokens types.TokenSet, tiers []types.EducationTier) types.DimensionScore {
	ds := types.DimensionScore{Dimension: types.DimensionEducation}
	if len(tiers) == 0 {
		ds.Explanation = "no recognized credential"
		return ds
	}

	for i := len(tiers) - 1; i >= 0; i-- {
		for _, kw := range tiers[i].Keywords {
			kw = normalize.Keyword(kw)
			if kw != "" && tokens.HasPhrase(kw) {
				ds.Value = clamp(tiers[i].Points)
				ds.Matched = []string{kw}
				ds.Explanation = fmt.Sprintf("%s (matched %q)", tiers[i].Name, kw)
				return ds
			}
		}
	}

	ds.Value = clamp(tiers[0].Points)
	ds.Explanation = "no recognized credential"
	return ds
}
