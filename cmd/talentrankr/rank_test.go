// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/talentrankr/pkg/types"
)

func TestParseSkills(t *testing.T) {
	tests := []struct {
		in   string
		want []types.SkillKeyword
	}{
		{"", nil},
		{"python", []types.SkillKeyword{{Keyword: "python", Weight: 1}}},
		{
			" python , sql:0.5 ,, go:x ",
			[]types.SkillKeyword{
				{Keyword: "python", Weight: 1},
				{Keyword: "sql", Weight: 0.5},
				{Keyword: "go:x", Weight: 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSkills(tt.in))
		})
	}
}

func newRankFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "rank"}
	cmd.Flags().String("skills", "", "")
	cmd.Flags().Float64("saturation-years", 0, "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestApplyScoringFlags(t *testing.T) {
	sc := types.DefaultScoringConfig()
	applyScoringFlags(newRankFlags(t, "--skills", "go,rust", "--saturation-years", "5"), &sc)
	assert.Len(t, sc.RequiredSkills, 2)
	assert.Equal(t, 5.0, sc.Experience.SaturationYears)

	unchanged := types.DefaultScoringConfig()
	applyScoringFlags(newRankFlags(t), &unchanged)
	assert.Equal(t, types.DefaultScoringConfig(), unchanged)
}

func TestNewEngineRejectsBadScoringFlags(t *testing.T) {
	sc := types.DefaultScoringConfig()
	applyScoringFlags(newRankFlags(t, "--saturation-years", "0"), &sc)

	eng, err := newEngine(sc)
	assert.Nil(t, eng)
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
	assert.ErrorContains(t, err, "config show")

	eng, err = newEngine(types.DefaultScoringConfig())
	require.NoError(t, err)
	assert.NotNil(t, eng)
}
