// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest parses an uploaded applicant file into raw applicant
// records and validates it before anything is scored. CSV and XLSX files
// are supported; both must carry the columns Name, Skills, Education,
// Experience and CoverLetter in a header row.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/talentrankr/pkg/types"
)

// DefaultMaxBytes is the upload size limit used when Limits.MaxBytes is zero.
const DefaultMaxBytes int64 = 10 << 20

// RequiredColumns are the header names every applicant file must contain.
var RequiredColumns = []string{"Name", "Skills", "Education", "Experience", "CoverLetter"}

// SupportedExtensions lists the file extensions Parse accepts.
var SupportedExtensions = []string{".csv", ".xlsx"}

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrEmptyFile       = errors.New("file contains no applicant rows")
	ErrMissingColumns  = errors.New("missing required columns")
)

// MissingColumnsError lists the required columns absent from the header.
type MissingColumnsError struct {
	Missing []string
	Found   []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumns }

// Limits bounds what Parse will accept.
type Limits struct {
	MaxBytes int64
}

// CheckName rejects file names whose extension is not supported.
func CheckName(fileName string) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, s := range SupportedExtensions {
		if ext == s {
			return nil
		}
	}
	return fmt.Errorf("%w %q: allowed types are %s", ErrUnsupportedType, ext, strings.Join(SupportedExtensions, ", "))
}

// Parse reads r as the format implied by fileName's extension and returns
// one RawApplicant per data row, in file order.
func Parse(fileName string, r io.Reader, limits Limits) ([]types.RawApplicant, error) {
	if err := CheckName(fileName); err != nil {
		return nil, err
	}

	max := limits.MaxBytes
	if max <= 0 {
		max = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileName, err)
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, fileName, max)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx":
		rows, err = readXLSX(data)
	default:
		rows, err = readCSV(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fileName, err)
	}
	return fromRows(rows)
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	return f.GetRows(sheets[0])
}

// fromRows maps a header row plus data rows onto RawApplicant records.
// Header names are matched trimmed and case-insensitively; extra columns are
// ignored and short rows read as empty fields. A row with every field empty
// is still an applicant; only rows with no cells at all, which excelize
// returns for untouched sheet rows, are skipped.
func fromRows(rows [][]string) ([]types.RawApplicant, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	header := rows[0]
	index := make(map[string]int, len(header))
	found := make([]string, 0, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		found = append(found, h)
		key := strings.ToLower(h)
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}

	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := index[strings.ToLower(c)]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing, Found: found}
	}

	cell := func(row []string, col string) string {
		i := index[strings.ToLower(col)]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []types.RawApplicant
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		out = append(out, types.RawApplicant{
			Name:        cell(row, "Name"),
			Skills:      cell(row, "Skills"),
			Education:   cell(row, "Education"),
			Experience:  cell(row, "Experience"),
			CoverLetter: cell(row, "CoverLetter"),
		})
	}
	if len(out) == 0 {
		return nil, ErrEmptyFile
	}
	return out, nil
}
