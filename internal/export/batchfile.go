// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/talentrankr/pkg/types"
)

// BatchFile is the on-disk form of a ranked batch. A ranking can be saved
// and reviewed later without re-scoring the applicants.
type BatchFile struct {
	Batch   types.Batch         `yaml:"batch"`
	Scoring types.ScoringConfig `yaml:"scoring"`
	SavedAt time.Time           `yaml:"saved_at"`
}

// WriteBatchFile saves b and the configuration that produced it to path.
func WriteBatchFile(path string, b types.Batch, cfg types.ScoringConfig) error {
	bf := BatchFile{
		Batch:   b,
		Scoring: cfg,
		SavedAt: time.Now().UTC(),
	}
	data, err := yaml.Marshal(&bf)
	if err != nil {
		return fmt.Errorf("marshaling batch file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadBatchFile loads a batch file written by WriteBatchFile.
func ReadBatchFile(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	var bf BatchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	return &bf, nil
}
