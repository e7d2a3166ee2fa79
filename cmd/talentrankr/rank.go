// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/talentrankr/internal/export"
	"github.com/pdiddy/talentrankr/internal/ingest"
	"github.com/pdiddy/talentrankr/internal/rank"
	"github.com/pdiddy/talentrankr/pkg/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank FILE",
	Short: "Score and rank the applicants in a CSV or XLSX file",
	Long: `Rank reads an applicant file with the columns Name, Skills, Education,
Experience and CoverLetter, scores every applicant and prints the ranking.

The ranking can also be saved as a YAML batch file (--out) for later review
with the report command, or as an Excel report (--xlsx).`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyScoringFlags(cmd, &cfg.Scoring)

	eng, err := newEngine(cfg.Scoring)
	if err != nil {
		return err
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening applicant file: %w", err)
	}
	defer f.Close()

	name := filepath.Base(path)
	raws, err := ingest.Parse(name, f, ingest.Limits{MaxBytes: cfg.Server.MaxUploadBytes})
	if err != nil {
		return err
	}

	b := eng.Batch(uuid.NewString(), name, raws)
	b.CreatedAt = time.Now().UTC()
	fmt.Fprintf(os.Stderr, "Ranked %d applicants from %s\n", len(b.Cards), name)

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := export.WriteBatchFile(out, b, eng.Config()); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved batch to %s\n", out)
	}
	if xlsx, _ := cmd.Flags().GetString("xlsx"); xlsx != "" {
		saved, err := export.SaveExcel(xlsx, b, cfg.Scoring.Weights)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved report to %s\n", saved)
	}

	top, _ := cmd.Flags().GetInt("top")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return printBatch(b, top, jsonOutput)
}

// applyScoringFlags overlays command-line overrides onto sc. The result is
// validated when the engine is built.
func applyScoringFlags(cmd *cobra.Command, sc *types.ScoringConfig) {
	if skills, _ := cmd.Flags().GetString("skills"); skills != "" {
		sc.RequiredSkills = parseSkills(skills)
	}
	if cmd.Flags().Changed("saturation-years") {
		years, _ := cmd.Flags().GetFloat64("saturation-years")
		sc.Experience.SaturationYears = years
	}
}

// parseSkills turns "python, sql:0.5" into weighted keywords. A missing or
// unparseable weight counts as 1.
func parseSkills(list string) []types.SkillKeyword {
	var out []types.SkillKeyword
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		kw := types.SkillKeyword{Keyword: item, Weight: 1}
		if k, w, ok := strings.Cut(item, ":"); ok {
			var weight float64
			if _, err := fmt.Sscanf(w, "%g", &weight); err == nil {
				kw = types.SkillKeyword{Keyword: strings.TrimSpace(k), Weight: weight}
			}
		}
		out = append(out, kw)
	}
	return out
}

func printBatch(b types.Batch, top int, jsonOutput bool) error {
	if jsonOutput {
		b.Cards = rank.Top(b.Cards, top)
		return export.FormatJSON(os.Stdout, b)
	}
	export.FormatTable(os.Stdout, rank.Top(b.Cards, top), b.Summary)
	return nil
}

func init() {
	rankCmd.Flags().String("skills", "", "required skills, comma-separated, optional weight as skill:0.5")
	rankCmd.Flags().Float64("saturation-years", 0, "years of experience that earn the full experience score")
	rankCmd.Flags().Int("top", 0, "show only the top N applicants (0 = all)")
	rankCmd.Flags().Bool("json", false, "output the batch as JSON")
	rankCmd.Flags().String("xlsx", "", "write an Excel report to this path")
	rankCmd.Flags().String("out", "", "save the ranked batch as YAML to this path")

	rootCmd.AddCommand(rankCmd)
}
