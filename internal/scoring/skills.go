// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"fmt"
	"strings"

	"github.com/pdiddy/talentrankr/internal/normalize"
	"github.com/pdiddy/talentrankr/pkg/types"
)

// Skills scores the weighted fraction of required skills present in tokens.
// A skill matches only when its normalized keyword equals a token exactly.
// A zero weight counts as 1.
func Skills(tokens types.TokenSet, required []types.SkillKeyword) types.DimensionScore {
	ds := types.DimensionScore{Dimension: types.DimensionSkills}

	var total, got float64
	var missing []string
	for _, s := range required {
		w := s.Weight
		if w == 0 {
			w = 1
		}
		total += w

		kw := normalize.Keyword(s.Keyword)
		if tokens.Has(kw) {
			got += w
			ds.Matched = append(ds.Matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	if total > 0 {
		ds.Value = clamp(100 * got / total)
	}

	switch {
	case len(tokens) == 0:
		ds.Explanation = "no skills listed"
	case len(ds.Matched) == 0:
		ds.Explanation = fmt.Sprintf("none of %d required skills matched", len(required))
	default:
		ds.Explanation = fmt.Sprintf("matched %d of %d required skills: %s",
			len(ds.Matched), len(required), strings.Join(ds.Matched, ", "))
		if len(missing) > 0 {
			ds.Explanation += "; missing: " + strings.Join(missing, ", ")
		}
	}
	return ds
}
