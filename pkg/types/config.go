package types

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidConfig is returned when a configuration breaks an invariant the
// engine depends on. Callers must treat it as fatal at load time.
var ErrInvalidConfig = errors.New("invalid configuration")

// WeightTolerance is the allowed deviation of the weight sum from 1.0.
const WeightTolerance = 1e-9

// Weights are the per-dimension multipliers used to compute a total score.
type Weights struct {
	Skills      float64 `json:"skills" yaml:"skills" mapstructure:"skills"`
	Experience  float64 `json:"experience" yaml:"experience" mapstructure:"experience"`
	Education   float64 `json:"education" yaml:"education" mapstructure:"education"`
	CoverLetter float64 `json:"cover_letter" yaml:"cover_letter" mapstructure:"cover_letter"`
}

// Sum returns the total of the four weights.
func (w Weights) Sum() float64 {
	return w.Skills + w.Experience + w.Education + w.CoverLetter
}

// For returns the weight assigned to dimension d.
func (w Weights) For(d Dimension) float64 {
	switch d {
	case DimensionSkills:
		return w.Skills
	case DimensionExperience:
		return w.Experience
	case DimensionEducation:
		return w.Education
	case DimensionCoverLetter:
		return w.CoverLetter
	default:
		return 0
	}
}

// SkillKeyword is one required skill. Weight expresses its importance
// relative to the other required skills (default 1).
type SkillKeyword struct {
	Keyword string  `json:"keyword" yaml:"keyword" mapstructure:"keyword"`
	Weight  float64 `json:"weight,omitempty" yaml:"weight,omitempty" mapstructure:"weight"`
}

// EducationTier is a discrete education level with a fixed point value.
// Keywords are phrases whose presence in the education field indicates the
// tier.
type EducationTier struct {
	Name     string   `json:"name" yaml:"name" mapstructure:"name"`
	Points   float64  `json:"points" yaml:"points" mapstructure:"points"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty" mapstructure:"keywords"`
}

// ExperienceConfig controls the experience scorer.
type ExperienceConfig struct {
	// SaturationYears is the ceiling beyond which more years no longer
	// increase the score (default 10).
	SaturationYears float64 `json:"saturation_years" yaml:"saturation_years" mapstructure:"saturation_years"`
}

// CoverLetterConfig holds the tunable thresholds of the cover-letter heuristic.
// A non-empty letter earns CompletenessPoints, up to LengthPoints for its
// word count, and KeywordPoints per keyword occurrence up to KeywordCap.
type CoverLetterConfig struct {
	IdealMinWords      int      `json:"ideal_min_words" yaml:"ideal_min_words" mapstructure:"ideal_min_words"`
	IdealMaxWords      int      `json:"ideal_max_words" yaml:"ideal_max_words" mapstructure:"ideal_max_words"`
	MaxWords           int      `json:"max_words" yaml:"max_words" mapstructure:"max_words"`
	CompletenessPoints float64  `json:"completeness_points" yaml:"completeness_points" mapstructure:"completeness_points"`
	LengthPoints       float64  `json:"length_points" yaml:"length_points" mapstructure:"length_points"`
	KeywordPoints      float64  `json:"keyword_points" yaml:"keyword_points" mapstructure:"keyword_points"`
	KeywordCap         float64  `json:"keyword_cap" yaml:"keyword_cap" mapstructure:"keyword_cap"`
	Keywords           []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
}

// ScoringConfig is the explicit configuration threaded through every
// scoring entry point. Two batches may be scored concurrently with
// different ScoringConfig values.
type ScoringConfig struct {
	Weights        Weights           `json:"weights" yaml:"weights" mapstructure:"weights"`
	RequiredSkills []SkillKeyword    `json:"required_skills" yaml:"required_skills" mapstructure:"required_skills"`
	EducationTiers []EducationTier   `json:"education_tiers" yaml:"education_tiers" mapstructure:"education_tiers"`
	Experience     ExperienceConfig  `json:"experience" yaml:"experience" mapstructure:"experience"`
	CoverLetter    CoverLetterConfig `json:"cover_letter" yaml:"cover_letter" mapstructure:"cover_letter"`
}

// Validate checks the invariants the engine relies on. The returned error
// wraps ErrInvalidConfig.
func (c ScoringConfig) Validate() error {
	if sum := c.Weights.Sum(); math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("%w: dimension weights sum to %g, want 1.0", ErrInvalidConfig, sum)
	}
	for _, d := range Dimensions {
		if c.Weights.For(d) < 0 {
			return fmt.Errorf("%w: negative weight for %s", ErrInvalidConfig, d)
		}
	}

	if len(c.RequiredSkills) == 0 {
		return fmt.Errorf("%w: required skills list is empty", ErrInvalidConfig)
	}
	for _, s := range c.RequiredSkills {
		if s.Keyword == "" {
			return fmt.Errorf("%w: required skill with empty keyword", ErrInvalidConfig)
		}
		if s.Weight < 0 {
			return fmt.Errorf("%w: required skill %q has negative weight", ErrInvalidConfig, s.Keyword)
		}
	}

	if len(c.EducationTiers) == 0 {
		return fmt.Errorf("%w: education tier table is empty", ErrInvalidConfig)
	}
	for i, t := range c.EducationTiers {
		if t.Points < 0 || t.Points > 100 {
			return fmt.Errorf("%w: education tier %q points %g outside [0,100]", ErrInvalidConfig, t.Name, t.Points)
		}
		if i > 0 && t.Points < c.EducationTiers[i-1].Points {
			return fmt.Errorf("%w: education tiers must be ordered by ascending points (%q after %q)",
				ErrInvalidConfig, t.Name, c.EducationTiers[i-1].Name)
		}
	}

	if c.Experience.SaturationYears <= 0 {
		return fmt.Errorf("%w: experience saturation years must be positive", ErrInvalidConfig)
	}

	cl := c.CoverLetter
	if len(cl.Keywords) == 0 {
		return fmt.Errorf("%w: cover letter keyword list is empty", ErrInvalidConfig)
	}
	if cl.IdealMinWords <= 0 || cl.IdealMaxWords < cl.IdealMinWords || cl.MaxWords <= cl.IdealMaxWords {
		return fmt.Errorf("%w: cover letter word thresholds must satisfy 0 < ideal_min <= ideal_max < max (got %d, %d, %d)",
			ErrInvalidConfig, cl.IdealMinWords, cl.IdealMaxWords, cl.MaxWords)
	}
	if cl.CompletenessPoints < 0 || cl.LengthPoints < 0 || cl.KeywordPoints < 0 || cl.KeywordCap < 0 {
		return fmt.Errorf("%w: cover letter point values must not be negative", ErrInvalidConfig)
	}

	return nil
}

// DefaultScoringConfig returns the stock weights 0.40/0.30/0.20/0.10 with a
// data-science oriented skill list.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: Weights{Skills: 0.40, Experience: 0.30, Education: 0.20, CoverLetter: 0.10},
		RequiredSkills: []SkillKeyword{
			{Keyword: "python", Weight: 1.0},
			{Keyword: "data analysis", Weight: 1.0},
			{Keyword: "machine learning", Weight: 1.0},
			{Keyword: "sql", Weight: 0.8},
			{Keyword: "statistics", Weight: 0.8},
			{Keyword: "data science", Weight: 1.0},
			{Keyword: "pandas", Weight: 0.7},
			{Keyword: "numpy", Weight: 0.7},
			{Keyword: "scikit-learn", Weight: 0.8},
			{Keyword: "tensorflow", Weight: 0.9},
			{Keyword: "pytorch", Weight: 0.9},
			{Keyword: "deep learning", Weight: 1.0},
			{Keyword: "visualization", Weight: 0.6},
			{Keyword: "tableau", Weight: 0.6},
			{Keyword: "excel", Weight: 0.5},
			{Keyword: "git", Weight: 0.5},
		},
		EducationTiers: []EducationTier{
			{Name: "none", Points: 0},
			{Name: "secondary", Points: 15, Keywords: []string{"high school", "secondary", "ged"}},
			{Name: "diploma", Points: 25, Keywords: []string{"diploma", "certificate", "associate"}},
			{Name: "hnd", Points: 40, Keywords: []string{"hnd"}},
			{Name: "bachelor", Points: 50, Keywords: []string{"bachelor", "bachelors", "bsc", "b sc", "ba", "b a", "bs", "beng"}},
			{Name: "master", Points: 75, Keywords: []string{"master", "masters", "msc", "m sc", "mba", "meng"}},
			{Name: "doctorate", Points: 100, Keywords: []string{"phd", "ph d", "doctorate", "doctoral"}},
		},
		Experience: ExperienceConfig{SaturationYears: 10},
		CoverLetter: CoverLetterConfig{
			IdealMinWords:      150,
			IdealMaxWords:      400,
			MaxWords:           1000,
			CompletenessPoints: 10,
			LengthPoints:       40,
			KeywordPoints:      5,
			KeywordCap:         50,
			Keywords: []string{
				"leadership", "innovation", "teamwork", "collaboration", "problem solving",
				"creative", "motivated", "passionate", "dedicated", "results driven",
				"analytical", "strategic", "excellent", "outstanding", "achieve",
				"improve", "optimize", "efficient", "successful", "expertise",
				"professional", "experienced", "skilled", "contribute", "impact",
				"value", "growth", "development", "mentor", "lead", "manage",
			},
		},
	}
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// MaxUploadBytes limits the size of an uploaded file (default 10 MiB).
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`

	// PreviewRows is the number of rows returned in an upload preview (default 5).
	PreviewRows int `json:"preview_rows" yaml:"preview_rows" mapstructure:"preview_rows"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// StoreConfig holds settings for the in-memory batch store.
type StoreConfig struct {
	// MaxBatches is the number of batches retained before the oldest are
	// evicted (default 50).
	MaxBatches int `json:"max_batches" yaml:"max_batches" mapstructure:"max_batches"`
}

// LogConfig selects the server log encoding and level.
type LogConfig struct {
	JSON  bool `json:"json" yaml:"json" mapstructure:"json"`
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// Config groups every configuration section.
type Config struct {
	Scoring ScoringConfig `json:"scoring" yaml:"scoring" mapstructure:"scoring"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Store   StoreConfig   `json:"store" yaml:"store" mapstructure:"store"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns a Config populated with defaults for every section.
func DefaultConfig() Config {
	return Config{
		Scoring: DefaultScoringConfig(),
		Server: ServerConfig{
			Addr:            ":8000",
			MaxUploadBytes:  10 << 20,
			PreviewRows:     5,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{MaxBatches: 50},
	}
}
