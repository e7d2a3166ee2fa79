// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/talentrankr/internal/ingest"
	"github.com/pdiddy/talentrankr/pkg/types"
)

// FormatTable writes cards as a fixed-width table followed by a one-line
// summary.
func FormatTable(w io.Writer, cards []types.ScoreCard, summary types.Summary) {
	if len(cards) == 0 {
		fmt.Fprintln(w, "No applicants found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-28s  %6s  %6s  %6s  %6s  %6s\n",
		"Rank", "Name", "Total", "Skills", "Exp", "Edu", "Letter")
	fmt.Fprintln(w, strings.Repeat("-", 76))

	for _, c := range cards {
		name := c.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(w, "%-4d  %-28s  %6.2f  %6.2f  %6.2f  %6.2f  %6.2f\n",
			c.Rank, ingest.Truncate(name, 25),
			c.Total, c.Skills.Value, c.Experience.Value, c.Education.Value, c.CoverLetter.Value)
	}

	fmt.Fprintf(w, "\n%d applicants, average %.2f, top %.2f, %d high performers\n",
		summary.TotalApplicants, summary.AverageScore, summary.TopScore, summary.HighPerformers)
}

// FormatDetail writes every dimension score and explanation for one card.
func FormatDetail(w io.Writer, c types.ScoreCard) {
	fmt.Fprintf(w, "#%d %s  total %.2f\n", c.Rank, c.Name, c.Total)
	for _, d := range types.Dimensions {
		ds := c.Score(d)
		fmt.Fprintf(w, "  %-12s %6.2f  %s\n", d.Label(), ds.Value, ds.Explanation)
	}
}

// FormatJSON writes v as indented JSON.
func FormatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
