// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank aggregates dimension scores into a weighted total and orders
// a batch of score cards deterministically.
//
// Order: total descending, then Skills descending, then Experience
// descending, then original input position ascending. Ranks are strict
// positions 1..N; equal totals never share a rank.
package rank

import (
	"math"
	"sort"

	"github.com/pdiddy/talentrankr/pkg/types"
)

// Total returns the weighted sum of the card's dimension scores.
func Total(card types.ScoreCard, w types.Weights) float64 {
	return w.Skills*card.Skills.Value +
		w.Experience*card.Experience.Value +
		w.Education*card.Education.Value +
		w.CoverLetter*card.CoverLetter.Value
}

// Aggregate sets Total on every card in place. It is called once per batch,
// after scoring and before Rank.
func Aggregate(cards []types.ScoreCard, w types.Weights) {
	for i := range cards {
		cards[i].Total = Total(cards[i], w)
	}
}

// Rank returns a new slice holding cards sorted into their final order with
// Rank set to 1..N. The input slice is not modified. An empty input yields an
// empty, non-nil slice.
func Rank(cards []types.ScoreCard) []types.ScoreCard {
	out := make([]types.ScoreCard, len(cards))
	copy(out, cards)

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})

	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// totalPrecision is the scale totals are rounded to before comparison, so
// totals that differ only by floating-point error fall through to the
// dimension tie-breaks.
const totalPrecision = 1e9

func comparableTotal(t float64) float64 {
	return math.Round(t * totalPrecision)
}

func less(a, b types.ScoreCard) bool {
	if ta, tb := comparableTotal(a.Total), comparableTotal(b.Total); ta != tb {
		return ta > tb
	}
	if a.Skills.Value != b.Skills.Value {
		return a.Skills.Value > b.Skills.Value
	}
	if a.Experience.Value != b.Experience.Value {
		return a.Experience.Value > b.Experience.Value
	}
	return a.Index < b.Index
}

// Summarize computes batch statistics over ranked or unranked cards.
func Summarize(cards []types.ScoreCard) types.Summary {
	s := types.Summary{TotalApplicants: len(cards)}
	if len(cards) == 0 {
		return s
	}

	var sum float64
	s.TopScore = cards[0].Total
	s.LowestScore = cards[0].Total
	for _, c := range cards {
		sum += c.Total
		if c.Total > s.TopScore {
			s.TopScore = c.Total
		}
		if c.Total < s.LowestScore {
			s.LowestScore = c.Total
		}
		if c.Total >= types.HighPerformerThreshold {
			s.HighPerformers++
		}
	}
	s.AverageScore = sum / float64(len(cards))
	return s
}

// Top returns the first n cards. n <= 0 or n beyond the batch size returns
// every card.
func Top(cards []types.ScoreCard, n int) []types.ScoreCard {
	if n <= 0 || n >= len(cards) {
		return cards
	}
	return cards[:n]
}

// ByRank returns the card holding the given 1-based rank.
func ByRank(cards []types.ScoreCard, rank int) (types.ScoreCard, bool) {
	for _, c := range cards {
		if c.Rank == rank {
			return c, true
		}
	}
	return types.ScoreCard{}, false
}
