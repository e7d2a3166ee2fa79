//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	sampleDir  = "testdata"
	sampleFile = "testdata/sample_applicants.csv"
	sampleOut  = "reports"
)

// sampleCSV is a small batch covering strong, average and sparse applicants.
const sampleCSV = `Name,Skills,Education,Experience,CoverLetter
Amara Okafor,"Python, SQL, machine learning, pandas, statistics, git",MSc Data Science,6 years,"I am passionate about data analysis and have led a team that delivered a churn model. I am eager to collaborate, innovative in my approach and results driven."
Ben Kariuki,"Excel, Tableau, SQL",Bachelor of Commerce,3 years,"I enjoy building dashboards and communicating insights to stakeholders."
Chen Wei,"Python, PyTorch, deep learning, numpy, scikit-learn",PhD Computer Science,18 months,"Research focused engineer with experience in computer vision."
Dana Moyo,Customer service,Diploma in Marketing,,
,,,,
Eli Brown,,,2 yrs,
`

// Sample writes a sample applicant file to testdata/.
func Sample() error {
	if err := os.MkdirAll(sampleDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", sampleDir, err)
	}
	if err := os.WriteFile(sampleFile, []byte(sampleCSV), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", sampleFile, err)
	}
	fmt.Println("Wrote", sampleFile)
	return nil
}

// Rank builds the CLI and ranks the sample file, saving YAML and Excel
// reports under reports/.
func Rank() error {
	mg.Deps(Build, Sample)
	if err := os.MkdirAll(sampleOut, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", sampleOut, err)
	}
	return sh.RunV(filepath.Join(binDir, binName), "rank", sampleFile,
		"--out", filepath.Join(sampleOut, "sample.yaml"),
		"--xlsx", filepath.Join(sampleOut, "sample.xlsx"),
	)
}

// Serve builds the CLI and starts the HTTP API on the default address.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "serve")
}
