// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine composes normalization, scoring and ranking into a single
// referentially transparent call: the same applicants and configuration
// always produce identical score cards and ranks.
package engine

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/talentrankr/internal/normalize"
	"github.com/pdiddy/talentrankr/internal/rank"
	"github.com/pdiddy/talentrankr/internal/scoring"
	"github.com/pdiddy/talentrankr/pkg/types"
)

// ConfigError reports a configuration rejected at construction time.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("engine configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Engine scores and ranks applicant batches under one validated
// configuration. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	cfg     types.ScoringConfig
	workers int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithWorkers bounds the number of applicants scored concurrently.
// Values below 1 fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// New validates cfg and returns an Engine bound to a private copy of it.
// An invalid configuration returns a *ConfigError wrapping
// types.ErrInvalidConfig; no Engine is created.
func New(cfg types.ScoringConfig, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}

	e := &Engine{cfg: cloneConfig(cfg)}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e, nil
}

// IsConfigError reports whether err came from rejecting a configuration.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// Config returns a copy of the configuration the engine was built with.
func (e *Engine) Config() types.ScoringConfig {
	return cloneConfig(e.cfg)
}

// Rank normalizes and scores every applicant, computes weighted totals and
// returns the ranked score cards. Applicants with missing data are kept and
// receive low scores. An empty input returns an empty slice.
//
// Scoring is total over its input, so Rank has no error result. The errgroup
// only bounds concurrency to the configured worker count; its Wait is the
// barrier between scoring and ranking and always returns nil.
func (e *Engine) Rank(raws []types.RawApplicant) []types.ScoreCard {
	cards := make([]types.ScoreCard, len(raws))

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, raw := range raws {
		g.Go(func() error {
			c := scoring.Score(normalize.Applicant(raw), e.cfg)
			c.Index = i
			c.Raw = raw
			cards[i] = c
			return nil
		})
	}
	_ = g.Wait()

	rank.Aggregate(cards, e.cfg.Weights)
	return rank.Rank(cards)
}

// Batch ranks raws and wraps the result with its summary. The caller owns
// id and fileName and stamps CreatedAt.
func (e *Engine) Batch(id, fileName string, raws []types.RawApplicant) types.Batch {
	cards := e.Rank(raws)
	return types.Batch{
		ID:       id,
		FileName: fileName,
		Cards:    cards,
		Summary:  rank.Summarize(cards),
	}
}

func cloneConfig(cfg types.ScoringConfig) types.ScoringConfig {
	out := cfg
	out.RequiredSkills = append([]types.SkillKeyword(nil), cfg.RequiredSkills...)
	out.EducationTiers = make([]types.EducationTier, len(cfg.EducationTiers))
	for i, t := range cfg.EducationTiers {
		t.Keywords = append([]string(nil), t.Keywords...)
		out.EducationTiers[i] = t
	}
	out.CoverLetter.Keywords = append([]string(nil), cfg.CoverLetter.Keywords...)
	return out
}
