// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns raw applicant text into the canonical forms the
// scorers work on. Every function here is total: malformed or empty input
// degrades to an empty or zero value, never an error.
//
// Skills and education are matched by exact token only; synonyms such as
// "ML" and "machine learning" are not merged.
package normalize

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pdiddy/talentrankr/pkg/types"
)

var (
	// listSep splits skill and education lists. " and ", "&" and brackets
	// count as separators alongside punctuation delimiters, so
	// "machine learning (tensorflow)" yields two tokens.
	listSep = regexp.MustCompile(`[,;/|()\[\]\n\r]+|&|\band\b`)

	// durationRe matches a quantity followed by a time unit, e.g. "5 years",
	// "3+ yrs", "18 months", "2.5 year".
	durationRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+?\s*(years?|yrs?|months?|mos?)\b`)

	tagRe = regexp.MustCompile(`<[^>]*>`)
)

// Applicant normalizes every field of raw.
func Applicant(raw types.RawApplicant) types.NormalizedApplicant {
	return types.NormalizedApplicant{
		Name:            raw.Name,
		Skills:          Tokens(raw.Skills),
		Education:       Tokens(raw.Education),
		ExperienceYears: Years(raw.Experience),
		CoverLetter:     Words(raw.CoverLetter),
	}
}

// Tokens lower-cases text, splits it on list delimiters, strips punctuation
// from each piece and returns the distinct non-empty tokens in first-seen
// order.
func Tokens(text string) types.TokenSet {
	text = strings.ToLower(text)
	var out types.TokenSet
	seen := make(map[string]bool)
	for _, piece := range listSep.Split(text, -1) {
		tok := Keyword(piece)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// Keyword applies token cleanup to a single phrase: lower-case, punctuation
// replaced by spaces (letters, digits, '+' and '#' survive so "c++" and "c#"
// stay distinct), whitespace collapsed. Configured keywords go through the
// same function so they compare equal to applicant tokens.
func Keyword(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '+', r == '#':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Years extracts the experience duration in years from free text. Every
// number followed by a year or month unit is considered and the largest is
// returned; months are converted to fractional years. Text without such a
// pattern yields 0.
func Years(text string) float64 {
	var best float64
	for _, m := range durationRe.FindAllStringSubmatch(strings.ToLower(text), -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if strings.HasPrefix(m[2], "mo") {
			v /= 12
		}
		if v > best {
			best = v
		}
	}
	return best
}

// Words strips markup and entities from text, lower-cases it and splits it
// into words. Apostrophes inside a word are kept; every other non
// alphanumeric rune separates words.
func Words(text string) []string {
	text = html.UnescapeString(tagRe.ReplaceAllString(text, " "))
	text = strings.ToLower(text)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	out := words[:0]
	for _, w := range words {
		if w = strings.Trim(w, "'"); w != "" {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return []string{}
	}
	return out
}
