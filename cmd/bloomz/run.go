// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bloomz/internal/ingest"
	"github.com/pdiddy/bloomz/internal/library"
	"github.com/pdiddy/bloomz/internal/report"
	"github.com/pdiddy/bloomz/internal/score"
	"github.com/pdiddy/bloomz/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run <pipeline.yaml>",
	Short: "Run a full annotation pipeline described by one YAML file",
	Long: `Run executes the whole pipeline from a single YAML description:
ingest paths, library source, scoring parameters, keywords, and report
settings. Scoring parameters left out of the file keep their defaults.
This is the reproducible counterpart to annotate's flags: the same file
always produces the same run.`,
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// loadPipelineConfig reads a pipeline description, overlaying the file's
// values on the scoring defaults.
func loadPipelineConfig(path string) (types.PipelineConfig, error) {
	cfg := types.PipelineConfig{Scoring: types.DefaultScoringConfig()}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading pipeline config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing pipeline config %s: %w", path, err)
	}
	if cfg.Ingest.PeaksPath == "" {
		return cfg, fmt.Errorf("pipeline config %s: ingest.peaks_path is required", path)
	}
	if cfg.Ingest.LibraryPath == "" && cfg.Library.DBPath == "" {
		return cfg, fmt.Errorf("pipeline config %s: set ingest.library_path or library.db_path", path)
	}
	return cfg, nil
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig(args[0])
	if err != nil {
		return err
	}
	for _, warning := range cfg.Scoring.Validate() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	peaks, dropped, err := ingest.LoadPeaksFile(cfg.Ingest.PeaksPath)
	if err != nil {
		return err
	}
	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "warning: dropped %d peak row(s) with missing or non-numeric RT/mass\n", dropped)
	}

	var source score.CandidateSource
	if cfg.Library.DBPath != "" {
		store, err := library.NewStore(cfg.Library.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		source = store
	} else {
		entries, dropped, err := ingest.LoadLibraryFile(cfg.Ingest.LibraryPath)
		if err != nil {
			return err
		}
		if dropped > 0 {
			fmt.Fprintf(os.Stderr, "warning: dropped %d library row(s) without a parseable exact mass\n", dropped)
		}
		source = library.NewTable(entries)
	}

	var rtRefs []types.RTReference
	if cfg.Ingest.RTRefPath != "" {
		refs, dropped, err := ingest.LoadRTRefsFile(cfg.Ingest.RTRefPath)
		if err != nil {
			return err
		}
		if dropped > 0 {
			fmt.Fprintf(os.Stderr, "warning: dropped %d RT reference row(s)\n", dropped)
		}
		rtRefs = refs
	}

	engine := score.NewEngine(cfg.Scoring, source, rtRefs, cfg.Keywords)
	results, err := engine.ScoreTable(context.Background(), peaks)
	if err != nil {
		return err
	}

	if cfg.Report.RunFilePath != "" {
		if err := report.WriteRunFile(cfg.Report.RunFilePath, cfg.Scoring, cfg.Keywords, results); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved run to %s\n", cfg.Report.RunFilePath)
	}

	report.Summarize(results).Format(os.Stderr)
	return writeResults(results, cfg.Report.Format, cfg.Report.OutPath)
}
