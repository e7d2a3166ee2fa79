// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"fmt"
	"math"
	"time"

	"github.com/pdiddy/talentrankr/internal/ingest"
	"github.com/pdiddy/talentrankr/pkg/types"
)

// previewWidth is the rune limit applied to preview fields.
const previewWidth = 50

type uploadResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	BatchID    string               `json:"batch_id"`
	FileName   string               `json:"file_name"`
	Applicants int                  `json:"applicants"`
	Columns    []string             `json:"columns"`
	Preview    []types.RawApplicant `json:"preview"`
	Links      map[string]string    `json:"links"`
}

type dimensionView struct {
	Score       float64  `json:"score"`
	Weight      float64  `json:"weight"`
	Points      float64  `json:"weighted_points"`
	MaxPossible float64  `json:"max_possible"`
	Explanation string   `json:"explanation"`
	Matched     []string `json:"matched,omitempty"`
}

type applicantView struct {
	Rank           int                      `json:"rank"`
	Name           string                   `json:"name"`
	TotalScore     float64                  `json:"total_score"`
	ScoreBreakdown map[string]dimensionView `json:"score_breakdown"`
	ApplicantData  types.RawApplicant       `json:"applicant_data"`
}

type rankingResponse struct {
	Success     bool              `json:"success"`
	BatchID     string            `json:"batch_id"`
	FileName    string            `json:"file_name"`
	CreatedAt   time.Time         `json:"created_at"`
	Summary     types.Summary     `json:"summary"`
	Methodology map[string]string `json:"scoring_methodology"`
	Applicants  []applicantView   `json:"ranked_applicants"`
}

func newRankingResponse(b types.Batch, w types.Weights) rankingResponse {
	resp := rankingResponse{
		Success:     true,
		BatchID:     b.ID,
		FileName:    b.FileName,
		CreatedAt:   b.CreatedAt,
		Summary:     roundSummary(b.Summary),
		Methodology: methodology(w),
		Applicants:  make([]applicantView, 0, len(b.Cards)),
	}
	for _, c := range b.Cards {
		resp.Applicants = append(resp.Applicants, newApplicantView(c, w))
	}
	return resp
}

func newApplicantView(c types.ScoreCard, w types.Weights) applicantView {
	v := applicantView{
		Rank:           c.Rank,
		Name:           c.Name,
		TotalScore:     round2(c.Total),
		ScoreBreakdown: make(map[string]dimensionView, len(types.Dimensions)),
		ApplicantData:  c.Raw,
	}
	for _, d := range types.Dimensions {
		ds := c.Score(d)
		weight := w.For(d)
		v.ScoreBreakdown[string(d)] = dimensionView{
			Score:       round2(ds.Value),
			Weight:      weight,
			Points:      round2(ds.Value * weight),
			MaxPossible: round2(100 * weight),
			Explanation: ds.Explanation,
			Matched:     ds.Matched,
		}
	}
	return v
}

func methodology(w types.Weights) map[string]string {
	m := make(map[string]string, len(types.Dimensions))
	for _, d := range types.Dimensions {
		m[string(d)+"_weight"] = fmt.Sprintf("%.0f%%", w.For(d)*100)
	}
	return m
}

func previewRows(raws []types.RawApplicant, n int) []types.RawApplicant {
	return ingest.Preview(raws, n, previewWidth)
}

func roundSummary(s types.Summary) types.Summary {
	s.AverageScore = round2(s.AverageScore)
	s.TopScore = round2(s.TopScore)
	s.LowestScore = round2(s.LowestScore)
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
