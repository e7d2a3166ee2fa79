// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/talentrankr/pkg/types"
)

func testCfg() types.ScoringConfig {
	cfg := types.DefaultScoringConfig()
	cfg.RequiredSkills = []types.SkillKeyword{{Keyword: "python"}, {Keyword: "sql"}}
	return cfg
}

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(testCfg(), opts...)
	require.NoError(t, err)
	return e
}

func sampleBatch() []types.RawApplicant {
	return []types.RawApplicant{
		{Name: "Empty"},
		{Name: "Beth", Skills: "Excel", Education: "BSc Economics", Experience: "2 years", CoverLetter: "I am motivated."},
		{Name: "Ann", Skills: "Python, SQL, Excel", Education: "MSc Data Science", Experience: "5 years", CoverLetter: "Leadership and innovation drive me."},
		{Name: "Cal", Skills: "Python", Education: "PhD Physics", Experience: "12 years", CoverLetter: ""},
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.ScoringConfig)
	}{
		{"weights do not sum to one", func(c *types.ScoringConfig) { c.Weights.Skills = 0.5 }},
		{"empty required skills", func(c *types.ScoringConfig) { c.RequiredSkills = nil }},
		{"empty tier table", func(c *types.ScoringConfig) { c.EducationTiers = nil }},
		{"zero saturation", func(c *types.ScoringConfig) { c.Experience.SaturationYears = 0 }},
		{"empty cover letter keywords", func(c *types.ScoringConfig) { c.CoverLetter.Keywords = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testCfg()
			tt.mutate(&cfg)
			e, err := New(cfg)
			require.Error(t, err)
			assert.Nil(t, e)
			assert.True(t, IsConfigError(err))
			assert.True(t, errors.Is(err, types.ErrInvalidConfig))
		})
	}
}

func TestRankEmptyBatch(t *testing.T) {
	got := newEngine(t).Rank(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankKeepsEveryApplicant(t *testing.T) {
	cards := newEngine(t).Rank(sampleBatch())
	require.Len(t, cards, 4)

	last := cards[len(cards)-1]
	assert.Equal(t, "Empty", last.Name)
	assert.Zero(t, last.Total)
	for _, d := range types.Dimensions {
		assert.Zero(t, last.Score(d).Value, "dimension %s", d)
	}
}

func TestRankTotalsMatchWeights(t *testing.T) {
	e := newEngine(t)
	w := e.Config().Weights
	for i, c := range e.Rank(sampleBatch()) {
		want := w.Skills*c.Skills.Value + w.Experience*c.Experience.Value +
			w.Education*c.Education.Value + w.CoverLetter*c.CoverLetter.Value
		assert.InDelta(t, want, c.Total, 1e-9)
		assert.Equal(t, i+1, c.Rank)
		assert.GreaterOrEqual(t, c.Total, 0.0)
		assert.LessOrEqual(t, c.Total, 100.0)
	}
}

func TestRankOrder(t *testing.T) {
	cards := newEngine(t).Rank(sampleBatch())
	var names []string
	for _, c := range cards {
		names = append(names, c.Name)
	}
	assert.Equal(t, "Ann", names[0])
	assert.Equal(t, "Empty", names[3])
}

func TestRankIdempotent(t *testing.T) {
	e := newEngine(t, WithWorkers(3))
	first, err := json.Marshal(e.Rank(sampleBatch()))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := json.Marshal(e.Rank(sampleBatch()))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestRankLargeBatchPreservesInputOrderOnTies(t *testing.T) {
	raws := make([]types.RawApplicant, 200)
	for i := range raws {
		raws[i] = types.RawApplicant{Name: fmt.Sprintf("app-%03d", i), Skills: "python", Experience: "3 years"}
	}
	cards := newEngine(t, WithWorkers(8)).Rank(raws)
	require.Len(t, cards, 200)
	for i, c := range cards {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, fmt.Sprintf("app-%03d", i), c.Name)
	}
}

func TestRankSameResultForAnyWorkerCount(t *testing.T) {
	var raws []types.RawApplicant
	for i := 0; i < 60; i++ {
		raws = append(raws, sampleBatch()[i%4])
		raws[i].Name = fmt.Sprintf("%s-%d", raws[i].Name, i)
	}

	want := newEngine(t, WithWorkers(1)).Rank(raws)
	require.Len(t, want, len(raws))
	for _, workers := range []int{0, 2, 7, 64} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			got := newEngine(t, WithWorkers(workers)).Rank(raws)
			assert.Equal(t, want, got)
		})
	}
}

func TestEnginesWithDifferentConfigs(t *testing.T) {
	sqlOnly := testCfg()
	sqlOnly.RequiredSkills = []types.SkillKeyword{{Keyword: "sql"}}
	e1 := newEngine(t)
	e2, err := New(sqlOnly)
	require.NoError(t, err)

	raw := []types.RawApplicant{{Name: "x", Skills: "SQL"}}
	assert.InDelta(t, 50, e1.Rank(raw)[0].Skills.Value, 1e-9)
	assert.InDelta(t, 100, e2.Rank(raw)[0].Skills.Value, 1e-9)
}

func TestConfigIsCopied(t *testing.T) {
	cfg := testCfg()
	e, err := New(cfg)
	require.NoError(t, err)

	cfg.RequiredSkills[0].Keyword = "cobol"
	assert.Equal(t, "python", e.Config().RequiredSkills[0].Keyword)
}

func TestBatch(t *testing.T) {
	b := newEngine(t).Batch("id-1", "applicants.csv", sampleBatch())
	assert.Equal(t, "id-1", b.ID)
	assert.Equal(t, "applicants.csv", b.FileName)
	assert.Equal(t, 4, b.Summary.TotalApplicants)
	assert.Equal(t, b.Cards[0].Total, b.Summary.TopScore)
}
