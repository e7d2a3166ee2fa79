// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/talentrankr/pkg/types"
)

func viperFromYAML(t *testing.T, content string) *viper.Viper {
	t.Helper()
	path := filepath.Join(t.TempDir(), "talentrankr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	v := viperFromYAML(t, `
scoring:
  required_skills:
    - keyword: go
    - keyword: kubernetes
      weight: 2
  experience:
    saturation_years: 8
server:
  addr: ":9090"
  shutdown_timeout: 3s
store:
  max_batches: 5
`)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, []types.SkillKeyword{{Keyword: "go"}, {Keyword: "kubernetes", Weight: 2}}, cfg.Scoring.RequiredSkills)
	assert.Equal(t, 8.0, cfg.Scoring.Experience.SaturationYears)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5, cfg.Store.MaxBatches)

	// Untouched sections keep their defaults.
	def := types.DefaultConfig()
	assert.Equal(t, def.Scoring.Weights, cfg.Scoring.Weights)
	assert.Equal(t, def.Scoring.EducationTiers, cfg.Scoring.EducationTiers)
	assert.Equal(t, def.Server.MaxUploadBytes, cfg.Server.MaxUploadBytes)
}

func TestLoadRejectsInvalidWeights(t *testing.T) {
	v := viperFromYAML(t, `
scoring:
  weights:
    skills: 0.5
    experience: 0.3
    education: 0.2
    cover_letter: 0.1
`)
	_, err := Load(v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))
}

func TestLoadRejectsEmptyTiers(t *testing.T) {
	v := viperFromYAML(t, "scoring:\n  education_tiers: []\n")
	_, err := Load(v)
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TALENTRANKR_SERVER_ADDR", ":7070")
	t.Setenv("TALENTRANKR_STORE_MAX_BATCHES", "7")
	t.Setenv("TALENTRANKR_LOG_JSON", "true")
	t.Setenv("TALENTRANKR_SCORING_COVER_LETTER_KEYWORDS", "grit,curiosity")

	v := viper.New()
	require.NoError(t, BindEnv(v))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 7, cfg.Store.MaxBatches)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, []string{"grit", "curiosity"}, cfg.Scoring.CoverLetter.Keywords)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("TALENTRANKR_SERVER_ADDR", ":6060")
	v := viperFromYAML(t, "server:\n  addr: \":9090\"\n")
	require.NoError(t, BindEnv(v))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.Server.Addr)
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "talentrankr.yaml")
	require.NoError(t, WriteDefault(path, false))

	err := WriteDefault(path, false)
	assert.ErrorContains(t, err, "already exists")
	require.NoError(t, WriteDefault(path, true))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), cfg)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TALENTRANKR_DOTENV_PROBE=loaded\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("TALENTRANKR_DOTENV_PROBE") })

	var buf bytes.Buffer
	require.NoError(t, LoadDotEnv(&buf, filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "loaded", os.Getenv("TALENTRANKR_DOTENV_PROBE"))
	assert.Contains(t, buf.String(), path)
}
