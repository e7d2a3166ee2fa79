// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the talentrankr pipeline:
// raw and normalized applicants, dimension scores, score cards, batches, and
// the configuration that drives scoring.
package types

import "strings"

// RawApplicant is one applicant record as received from the batch source.
// Every field is free text and any of them may be empty.
type RawApplicant struct {
	Name        string `json:"name" yaml:"name"`
	Skills      string `json:"skills" yaml:"skills"`
	Education   string `json:"education" yaml:"education"`
	Experience  string `json:"experience" yaml:"experience"`
	CoverLetter string `json:"cover_letter" yaml:"cover_letter"`
}

// TokenSet is an ordered set of distinct normalized tokens. Order is the
// order in which tokens were first seen.
type TokenSet []string

// Has reports whether token is an exact member of the set.
func (s TokenSet) Has(token string) bool {
	for _, t := range s {
		if t == token {
			return true
		}
	}
	return false
}

// HasPhrase reports whether the whitespace-separated words of phrase occur
// as a contiguous whole-word run inside any token of the set. "bsc" matches
// the token "bsc computer science" but not "bscs".
func (s TokenSet) HasPhrase(phrase string) bool {
	want := strings.Fields(phrase)
	if len(want) == 0 {
		return false
	}
	for _, t := range s {
		words := strings.Fields(t)
		for i := 0; i+len(want) <= len(words); i++ {
			match := true
			for j, w := range want {
				if words[i+j] != w {
					match = false
					break
				}
			}
			if match {
				return true
			}
		}
	}
	return false
}

// NormalizedApplicant is the canonical form of a RawApplicant used by the
// dimension scorers. It is derived once and never mutated.
type NormalizedApplicant struct {
	Name            string   `json:"name" yaml:"name"`
	Skills          TokenSet `json:"skills" yaml:"skills"`
	Education       TokenSet `json:"education" yaml:"education"`
	ExperienceYears float64  `json:"experience_years" yaml:"experience_years"`
	CoverLetter     []string `json:"cover_letter" yaml:"cover_letter"`
}
