// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Dimension identifies one of the four scoring axes.
type Dimension string

const (
	DimensionSkills      Dimension = "skills"
	DimensionExperience  Dimension = "experience"
	DimensionEducation   Dimension = "education"
	DimensionCoverLetter Dimension = "cover_letter"
)

// Dimensions lists every scoring axis in reporting order.
var Dimensions = []Dimension{DimensionSkills, DimensionExperience, DimensionEducation, DimensionCoverLetter}

// Label returns a human-readable name for the dimension.
func (d Dimension) Label() string {
	switch d {
	case DimensionSkills:
		return "Skills"
	case DimensionExperience:
		return "Experience"
	case DimensionEducation:
		return "Education"
	case DimensionCoverLetter:
		return "Cover Letter"
	default:
		return string(d)
	}
}

// DimensionScore is a value in [0, 100] for one dimension plus the evidence
// behind it (matched keywords, extracted years, and so on).
type DimensionScore struct {
	Dimension   Dimension `json:"dimension" yaml:"dimension"`
	Value       float64   `json:"value" yaml:"value"`
	Explanation string    `json:"explanation" yaml:"explanation"`
	Matched     []string  `json:"matched,omitempty" yaml:"matched,omitempty"`
}

// ScoreCard is the scoring result for one applicant. Total is the weighted
// aggregate of the four dimension scores and is set exactly once by the
// aggregator. Rank is the 1-based position after sorting; zero means the
// card has not been ranked yet.
type ScoreCard struct {
	Name        string         `json:"name" yaml:"name"`
	Index       int            `json:"index" yaml:"index"`
	Raw         RawApplicant   `json:"applicant" yaml:"applicant"`
	Skills      DimensionScore `json:"skills" yaml:"skills"`
	Experience  DimensionScore `json:"experience" yaml:"experience"`
	Education   DimensionScore `json:"education" yaml:"education"`
	CoverLetter DimensionScore `json:"cover_letter" yaml:"cover_letter"`
	Total       float64        `json:"total_score" yaml:"total_score"`
	Rank        int            `json:"rank" yaml:"rank"`
}

// Score returns the card's score for dimension d.
func (c ScoreCard) Score(d Dimension) DimensionScore {
	switch d {
	case DimensionSkills:
		return c.Skills
	case DimensionExperience:
		return c.Experience
	case DimensionEducation:
		return c.Education
	case DimensionCoverLetter:
		return c.CoverLetter
	default:
		return DimensionScore{Dimension: d}
	}
}

// HighPerformerThreshold is the total score at or above which an applicant
// counts as a high performer in batch summaries.
const HighPerformerThreshold = 70.0

// Summary holds aggregate statistics for a ranked batch.
type Summary struct {
	TotalApplicants int     `json:"total_applicants" yaml:"total_applicants"`
	AverageScore    float64 `json:"average_score" yaml:"average_score"`
	TopScore        float64 `json:"top_score" yaml:"top_score"`
	LowestScore     float64 `json:"lowest_score" yaml:"lowest_score"`
	HighPerformers  int     `json:"high_performers" yaml:"high_performers"`
}

// Batch is one processed upload: the ranked score cards for a single file,
// keyed by an opaque identifier.
type Batch struct {
	ID        string      `json:"batch_id" yaml:"batch_id"`
	FileName  string      `json:"file_name" yaml:"file_name"`
	CreatedAt time.Time   `json:"created_at" yaml:"created_at"`
	Cards     []ScoreCard `json:"applicants" yaml:"applicants"`
	Summary   Summary     `json:"summary" yaml:"summary"`
}
