// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring maps a normalized applicant to four dimension scores in
// [0, 100]. Every scorer is a pure function of its input and the
// ScoringConfig passed to it; an empty field yields the dimension's lowest
// score with an explanation, never an error.
package scoring

import (
	"math"

	"github.com/pdiddy/talentrankr/pkg/types"
)

// Score runs all four scorers over n and returns an unranked ScoreCard with
// Name and the dimension scores filled in. Total and Rank are left for the
// aggregator.
func Score(n types.NormalizedApplicant, cfg types.ScoringConfig) types.ScoreCard {
	return types.ScoreCard{
		Name:        n.Name,
		Skills:      Skills(n.Skills, cfg.RequiredSkills),
		Experience:  Experience(n.ExperienceYears, cfg.Experience),
		Education:   Education(n.Education, cfg.EducationTiers),
		CoverLetter: CoverLetter(n.CoverLetter, cfg.CoverLetter),
	}
}

// clamp bounds v to [0, 100]. NaN maps to 0.
func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
