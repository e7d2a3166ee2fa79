// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/talentrankr/pkg/types"
)

var stdWeights = types.Weights{Skills: 0.40, Experience: 0.30, Education: 0.20, CoverLetter: 0.10}

// binaryWeights are exactly representable so constructed ties are exact.
var binaryWeights = types.Weights{Skills: 0.5, Experience: 0.25, Education: 0.125, CoverLetter: 0.125}

func card(name string, index int, skills, exp, edu, cl float64) types.ScoreCard {
	return types.ScoreCard{
		Name:        name,
		Index:       index,
		Skills:      types.DimensionScore{Dimension: types.DimensionSkills, Value: skills},
		Experience:  types.DimensionScore{Dimension: types.DimensionExperience, Value: exp},
		Education:   types.DimensionScore{Dimension: types.DimensionEducation, Value: edu},
		CoverLetter: types.DimensionScore{Dimension: types.DimensionCoverLetter, Value: cl},
	}
}

func TestWeightedExample(t *testing.T) {
	cards := []types.ScoreCard{
		card("B", 0, 0, 0, 50, 50),
		card("A", 1, 100, 50, 50, 50),
	}
	Aggregate(cards, stdWeights)
	assert.InDelta(t, 15, cards[0].Total, 1e-9)
	assert.InDelta(t, 65, cards[1].Total, 1e-9)

	ranked := Rank(cards)
	require.Len(t, ranked, 2)
	assert.Equal(t, "A", ranked[0].Name)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "B", ranked[1].Name)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestRankEmpty(t *testing.T) {
	got := Rank(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankTieBreak(t *testing.T) {
	tests := []struct {
		name  string
		cards []types.ScoreCard
		want  []string
	}{
		{
			name: "higher skills wins on equal total",
			cards: []types.ScoreCard{
				card("low-skills", 0, 40, 80, 0, 0),
				card("high-skills", 1, 80, 0, 0, 0),
			},
			want: []string{"high-skills", "low-skills"},
		},
		{
			name: "higher experience wins on equal total and skills",
			cards: []types.ScoreCard{
				card("low-exp", 0, 40, 0, 80, 0),
				card("high-exp", 1, 40, 40, 0, 0),
			},
			want: []string{"high-exp", "low-exp"},
		},
		{
			name: "input order preserved when all keys equal",
			cards: []types.ScoreCard{
				card("first", 0, 40, 40, 40, 40),
				card("second", 1, 40, 40, 40, 40),
				card("third", 2, 40, 40, 40, 40),
			},
			want: []string{"first", "second", "third"},
		},
		{
			name: "index decides even when slice order differs",
			cards: []types.ScoreCard{
				card("later", 5, 10, 10, 10, 10),
				card("earlier", 2, 10, 10, 10, 10),
			},
			want: []string{"earlier", "later"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Aggregate(tt.cards, binaryWeights)
			ranked := Rank(tt.cards)
			var got []string
			for _, c := range ranked {
				got = append(got, c.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRankNearEqualTotalsUseSkills(t *testing.T) {
	// Each pair has the same total under 0.4/0.3/0.2/0.1, but the float sums
	// differ in the last bits.
	tests := []struct {
		name           string
		skillsA, exp   float64
		skillsB        float64
		wantTotalFloat float64
	}{
		{"7 vs 2 at 46 years", 7, 46, 2, 16.6},
		{"7 vs 2 at 98 years", 7, 98, 2, 32.2},
		{"9 vs 4 at 1 year", 9, 1, 4, 3.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := []types.ScoreCard{
				card("B", 0, tt.skillsB, tt.exp, 10, 0),
				card("A", 1, tt.skillsA, tt.exp, 0, 0),
			}
			Aggregate(cards, stdWeights)
			assert.InDelta(t, tt.wantTotalFloat, cards[0].Total, 1e-9)
			assert.InDelta(t, cards[0].Total, cards[1].Total, 1e-9)

			ranked := Rank(cards)
			assert.Equal(t, "A", ranked[0].Name)
			assert.Equal(t, "B", ranked[1].Name)
		})
	}
}

func TestRankContiguous(t *testing.T) {
	for _, n := range []int{1, 2, 7, 50} {
		cards := make([]types.ScoreCard, n)
		for i := range cards {
			v := float64((i * 37) % 11 * 10)
			cards[i] = card("x", i, v, v/2, 100-v, 30)
		}
		Aggregate(cards, stdWeights)
		ranked := Rank(cards)

		seen := make(map[int]bool)
		for i, c := range ranked {
			assert.Equal(t, i+1, c.Rank)
			assert.False(t, seen[c.Rank])
			seen[c.Rank] = true
			if i > 0 {
				assert.GreaterOrEqual(t, ranked[i-1].Total, c.Total)
			}
		}
		assert.Len(t, seen, n)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	cards := []types.ScoreCard{card("a", 0, 0, 0, 0, 0), card("b", 1, 100, 0, 0, 0)}
	Aggregate(cards, stdWeights)
	_ = Rank(cards)
	assert.Equal(t, "a", cards[0].Name)
	assert.Zero(t, cards[0].Rank)
}

func TestSummarize(t *testing.T) {
	cards := []types.ScoreCard{
		{Total: 90}, {Total: 70}, {Total: 40}, {Total: 0},
	}
	s := Summarize(cards)
	assert.Equal(t, 4, s.TotalApplicants)
	assert.InDelta(t, 50, s.AverageScore, 1e-9)
	assert.Equal(t, 90.0, s.TopScore)
	assert.Equal(t, 0.0, s.LowestScore)
	assert.Equal(t, 2, s.HighPerformers)

	assert.Equal(t, types.Summary{}, Summarize(nil))
}

func TestTopAndByRank(t *testing.T) {
	cards := Rank([]types.ScoreCard{card("a", 0, 1, 0, 0, 0), card("b", 1, 2, 0, 0, 0), card("c", 2, 3, 0, 0, 0)})

	assert.Len(t, Top(cards, 2), 2)
	assert.Len(t, Top(cards, 0), 3)
	assert.Len(t, Top(cards, 10), 3)

	c, ok := ByRank(cards, 3)
	require.True(t, ok)
	assert.Equal(t, 3, c.Rank)

	_, ok = ByRank(cards, 4)
	assert.False(t, ok)
}
