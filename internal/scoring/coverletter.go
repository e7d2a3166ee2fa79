// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/pdiddy/talentrankr/internal/normalize"
	"github.com/pdiddy/talentrankr/pkg/types"
)

// CoverLetter combines three components: fixed points for a non-empty
// letter, a length component that peaks inside the ideal word range, and a
// capped bonus per keyword occurrence. An empty letter scores 0.
func CoverLetter(words []string, cfg types.CoverLetterConfig) types.DimensionScore {
	ds := types.DimensionScore{Dimension: types.DimensionCoverLetter}
	if len(words) == 0 {
		ds.Explanation = "no cover letter"
		return ds
	}

	length := lengthPoints(len(words), cfg)
	hits, matched := countKeywords(words, cfg.Keywords)
	keywords := math.Min(float64(hits)*cfg.KeywordPoints, cfg.KeywordCap)

	ds.Value = clamp(cfg.CompletenessPoints + length + keywords)
	ds.Matched = matched
	ds.Explanation = fmt.Sprintf("%d words (length %.1f), %d keyword hits (%.1f)",
		len(words), length, hits, keywords)
	if len(matched) > 0 {
		ds.Explanation += ": " + strings.Join(matched, ", ")
	}
	return ds
}

// lengthPoints ramps linearly up to IdealMinWords, holds full credit through
// IdealMaxWords, then decays linearly to zero at MaxWords.
func lengthPoints(n int, cfg types.CoverLetterConfig) float64 {
	switch {
	case cfg.IdealMinWords > 0 && n < cfg.IdealMinWords:
		return cfg.LengthPoints * float64(n) / float64(cfg.IdealMinWords)
	case n <= cfg.IdealMaxWords:
		return cfg.LengthPoints
	case n < cfg.MaxWords:
		return cfg.LengthPoints * float64(cfg.MaxWords-n) / float64(cfg.MaxWords-cfg.IdealMaxWords)
	default:
		return 0
	}
}

// countKeywords counts every whole-word occurrence of each keyword phrase in
// words and returns the total together with the distinct phrases found, in
// configuration order.
func countKeywords(words []string, keywords []string) (int, []string) {
	var hits int
	var matched []string
	seen := make(map[string]bool)
	for _, raw := range keywords {
		kw := normalize.Keyword(raw)
		phrase := strings.Fields(kw)
		if len(phrase) == 0 || seen[kw] {
			continue
		}
		seen[kw] = true

		n := countPhrase(words, phrase)
		if n > 0 {
			hits += n
			matched = append(matched, kw)
		}
	}
	return hits, matched
}

func countPhrase(words, phrase []string) int {
	var n int
	for i := 0; i+len(phrase) <= len(words); i++ {
		match := true
		for j, p := range phrase {
			if words[i+j] != p {
				match = false
				break
			}
		}
		if match {
			n++
		}
	}
	return n
}
