// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bloomz/pkg/types"
)

// RunFile is the on-disk representation of one scoring run: the
// configuration that produced it, the species-context keywords, summary
// counts, and the full result table. An analyst can save a run and
// re-filter or re-export it later without rescoring.
type RunFile struct {
	Config    types.ScoringConfig  `yaml:"config"`
	Keywords  []string             `yaml:"keywords,omitempty"`
	Summary   Summary              `yaml:"summary"`
	Results   []types.ScoredResult `yaml:"results"`
	Timestamp time.Time            `yaml:"timestamp"`
}

// WriteRunFile saves a scoring run to a YAML file.
func WriteRunFile(path string, cfg types.ScoringConfig, keywords []string, results []types.ScoredResult) error {
	rf := RunFile{
		Config:    cfg,
		Keywords:  keywords,
		Summary:   Summarize(results),
		Results:   results,
		Timestamp: time.Now(),
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved scoring run from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}
