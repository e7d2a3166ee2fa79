// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"unicode/utf8"

	"github.com/pdiddy/talentrankr/pkg/types"
)

// Preview returns the first n records in file order with every field cut
// to width runes. The input is not modified.
func Preview(raws []types.RawApplicant, n, width int) []types.RawApplicant {
	if n < 0 {
		n = 0
	}
	if n > len(raws) {
		n = len(raws)
	}
	out := make([]types.RawApplicant, n)
	for i, r := range raws[:n] {
		out[i] = types.RawApplicant{
			Name:        Truncate(r.Name, width),
			Skills:      Truncate(r.Skills, width),
			Education:   Truncate(r.Education, width),
			Experience:  Truncate(r.Experience, width),
			CoverLetter: Truncate(r.CoverLetter, width),
		}
	}
	return out
}

// Truncate shortens s to max runes followed by "..." when it is longer.
// A max of zero or less returns s unchanged.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
