// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders ranked batches: an Excel report, a YAML batch file
// that can be reloaded later, and plain-text or JSON output for the CLI.
package export

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/talentrankr/pkg/types"
)

const (
	summarySheet = "Summary"
	rankedSheet  = "Ranked Applicants"
	detailsSheet = "Score Details"
)

// Score bands used for row colouring.
const (
	bandExcellent = 90.0
	bandGood      = types.HighPerformerThreshold
	bandFair      = 50.0
)

// SaveExcel writes the report for b to path, adding an .xlsx extension when
// it is missing. It returns the path actually written.
func SaveExcel(path string, b types.Batch, w types.Weights) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f, err := buildWorkbook(b, w)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving %s: %w", path, err)
	}
	return path, nil
}

// WriteExcel streams the report for b to out.
func WriteExcel(out io.Writer, b types.Batch, w types.Weights) error {
	f, err := buildWorkbook(b, w)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func buildWorkbook(b types.Batch, w types.Weights) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	for _, name := range []string{rankedSheet, detailsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	steps := []struct {
		name string
		fn   func(*excelize.File, types.Batch, types.Weights) error
	}{
		{summarySheet, writeSummary},
		{rankedSheet, writeRanked},
		{detailsSheet, writeDetails},
	}
	for _, s := range steps {
		if err := s.fn(f, b, w); err != nil {
			f.Close()
			return nil, fmt.Errorf("building %s sheet: %w", s.name, err)
		}
	}
	return f, nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func writeSummary(f *excelize.File, b types.Batch, w types.Weights) error {
	f.SetColWidth(summarySheet, "A", "A", 28)
	f.SetColWidth(summarySheet, "B", "B", 40)

	title, err := headerStyle(f)
	if err != nil {
		return err
	}
	label, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	f.SetCellValue(summarySheet, "A1", "Applicant Ranking Report")
	f.MergeCell(summarySheet, "A1", "B1")
	f.SetCellStyle(summarySheet, "A1", "B1", title)

	rows := [][2]any{
		{"Batch ID:", b.ID},
		{"File:", b.FileName},
		{"Generated:", b.CreatedAt.Format("2006-01-02 15:04:05")},
		{"Total Applicants:", b.Summary.TotalApplicants},
		{"Average Score:", fmt.Sprintf("%.2f", b.Summary.AverageScore)},
		{"Top Score:", fmt.Sprintf("%.2f", b.Summary.TopScore)},
		{"Lowest Score:", fmt.Sprintf("%.2f", b.Summary.LowestScore)},
		{fmt.Sprintf("High Performers (>= %.0f):", types.HighPerformerThreshold), b.Summary.HighPerformers},
		{"", ""},
		{"Scoring Weights", ""},
	}
	for _, d := range types.Dimensions {
		rows = append(rows, [2]any{d.Label() + ":", fmt.Sprintf("%.0f%%", w.For(d)*100)})
	}

	for i, r := range rows {
		row := i + 3
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), r[0])
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), r[1])
		f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), label)
	}
	return nil
}

func writeRanked(f *excelize.File, b types.Batch, _ types.Weights) error {
	widths := map[string]float64{"A": 8, "B": 28, "C": 12, "D": 12, "E": 12, "F": 12, "G": 14}
	for col, wd := range widths {
		f.SetColWidth(rankedSheet, col, col, wd)
	}

	hdr, err := headerStyle(f)
	if err != nil {
		return err
	}
	bands := map[string]int{}
	for name, color := range map[string]string{
		"excellent": "C6EFCE", "good": "FFEB9C", "fair": "FFC7CE", "poor": "FF9999",
	} {
		id, err := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: thinBorder(),
		})
		if err != nil {
			return err
		}
		bands[name] = id
	}

	headers := []string{"Rank", "Name", "Total", "Skills", "Experience", "Education", "Cover Letter"}
	if err := f.SetSheetRow(rankedSheet, "A1", &headers); err != nil {
		return err
	}
	f.SetCellStyle(rankedSheet, "A1", "G1", hdr)

	for i, c := range b.Cards {
		row := i + 2
		values := []any{
			c.Rank, c.Name, round2(c.Total),
			round2(c.Skills.Value), round2(c.Experience.Value),
			round2(c.Education.Value), round2(c.CoverLetter.Value),
		}
		if err := f.SetSheetRow(rankedSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		f.SetCellStyle(rankedSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), bands[band(c.Total)])
	}

	return f.SetPanes(rankedSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	})
}

func writeDetails(f *excelize.File, b types.Batch, _ types.Weights) error {
	f.SetColWidth(detailsSheet, "A", "A", 8)
	f.SetColWidth(detailsSheet, "B", "B", 28)
	f.SetColWidth(detailsSheet, "C", "C", 14)
	f.SetColWidth(detailsSheet, "D", "D", 10)
	f.SetColWidth(detailsSheet, "E", "E", 80)

	hdr, err := headerStyle(f)
	if err != nil {
		return err
	}
	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}

	headers := []string{"Rank", "Name", "Dimension", "Score", "Explanation"}
	if err := f.SetSheetRow(detailsSheet, "A1", &headers); err != nil {
		return err
	}
	f.SetCellStyle(detailsSheet, "A1", "E1", hdr)

	row := 2
	for _, c := range b.Cards {
		for _, d := range types.Dimensions {
			ds := c.Score(d)
			values := []any{c.Rank, c.Name, d.Label(), round2(ds.Value), ds.Explanation}
			if err := f.SetSheetRow(detailsSheet, fmt.Sprintf("A%d", row), &values); err != nil {
				return err
			}
			f.SetCellStyle(detailsSheet, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), wrap)
			row++
		}
	}
	return nil
}

func band(total float64) string {
	switch {
	case total >= bandExcellent:
		return "excellent"
	case total >= bandGood:
		return "good"
	case total >= bandFair:
		return "fair"
	default:
		return "poor"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
