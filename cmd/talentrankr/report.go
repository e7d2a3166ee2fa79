// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/talentrankr/internal/export"
	"github.com/pdiddy/talentrankr/internal/rank"
)

var reportCmd = &cobra.Command{
	Use:   "report FILE.yaml",
	Short: "Print a ranking saved with rank --out",
	Long: `Report loads a YAML batch file and prints its ranking without
re-scoring. Use --rank to show the per-dimension breakdown of one applicant.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	bf, err := export.ReadBatchFile(args[0])
	if err != nil {
		return err
	}
	b := bf.Batch

	if pos, _ := cmd.Flags().GetInt("rank"); pos > 0 {
		card, ok := rank.ByRank(b.Cards, pos)
		if !ok {
			return fmt.Errorf("no applicant at rank %d (batch has %d)", pos, len(b.Cards))
		}
		export.FormatDetail(os.Stdout, card)
		return nil
	}

	if xlsx, _ := cmd.Flags().GetString("xlsx"); xlsx != "" {
		saved, err := export.SaveExcel(xlsx, b, bf.Scoring.Weights)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved report to %s\n", saved)
	}

	fmt.Fprintf(os.Stderr, "Batch %s (%s), ranked %s\n",
		b.ID, b.FileName, b.CreatedAt.Format("2006-01-02 15:04"))

	top, _ := cmd.Flags().GetInt("top")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return printBatch(b, top, jsonOutput)
}

func init() {
	reportCmd.Flags().Bool("json", false, "output the batch as JSON")
	reportCmd.Flags().Int("top", 0, "show only the top N applicants (0 = all)")
	reportCmd.Flags().Int("rank", 0, "show the score breakdown for the applicant at this rank")
	reportCmd.Flags().String("xlsx", "", "also write an Excel report to this path")

	rootCmd.AddCommand(reportCmd)
}
