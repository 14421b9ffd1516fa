// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bloomz/internal/ingest"
	"github.com/pdiddy/bloomz/internal/library"
	"github.com/pdiddy/bloomz/internal/report"
	"github.com/pdiddy/bloomz/internal/score"
	"github.com/pdiddy/bloomz/pkg/types"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Score a peak table against the reference compound library",
	Long: `Annotate normalizes an instrument peak CSV, narrows the reference
library per peak with the mass gate, computes per-factor scores (mass
accuracy, name similarity, retention-time plausibility, chemical-class
plausibility, manual-library corroboration), and emits one confidence-
scored, graded result row per peak.

The reference library comes from a CSV (--library) or from a previously
imported SQLite store (--library-db). An optional retention-time
reference table (--rt-refs) supplies expected RTs for known compounds.`,
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().String("peaks", "", "instrument peak table CSV (required)")
	annotateCmd.Flags().String("library", "", "reference compound library CSV")
	annotateCmd.Flags().String("library-db", "", "reference compound SQLite store")
	annotateCmd.Flags().String("rt-refs", "", "retention-time reference CSV")
	annotateCmd.Flags().StringSlice("keywords", nil, "species-context keywords for class plausibility")
	annotateCmd.Flags().Float64("tolerance", 0, "mass gate tolerance override (± m/z)")
	annotateCmd.Flags().Int("top-k", 0, "candidate shortlist size override")
	annotateCmd.Flags().String("format", "table", "output format: table, csv, or json")
	annotateCmd.Flags().String("out", "", "write results to a file instead of stdout")
	annotateCmd.Flags().String("run-file", "", "save the full run (config, summary, results) as YAML")

	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	peaksPath, _ := cmd.Flags().GetString("peaks")
	if peaksPath == "" {
		return fmt.Errorf("--peaks is required")
	}

	cfg := scoringConfig()
	if tol, _ := cmd.Flags().GetFloat64("tolerance"); tol > 0 {
		cfg.MassTolerance = tol
	}
	if topK, _ := cmd.Flags().GetInt("top-k"); topK > 0 {
		cfg.TopK = topK
	}
	for _, warning := range cfg.Validate() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	keywords, _ := cmd.Flags().GetStringSlice("keywords")
	if len(keywords) == 0 {
		keywords = viperKeywords()
	}

	peaks, dropped, err := ingest.LoadPeaksFile(peaksPath)
	if err != nil {
		return err
	}
	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "warning: dropped %d peak row(s) with missing or non-numeric RT/mass\n", dropped)
	}

	source, closeSource, err := candidateSource(cmd)
	if err != nil {
		return err
	}
	defer closeSource()

	rtRefs, err := rtReferences(cmd)
	if err != nil {
		return err
	}

	engine := score.NewEngine(cfg, source, rtRefs, keywords)
	results, err := engine.ScoreTable(context.Background(), peaks)
	if err != nil {
		return err
	}

	if runPath, _ := cmd.Flags().GetString("run-file"); runPath != "" {
		if err := report.WriteRunFile(runPath, cfg, keywords, results); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved run to %s\n", runPath)
	}

	report.Summarize(results).Format(os.Stderr)

	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	return writeResults(results, format, outPath)
}

// candidateSource builds the engine's library source from --library-db
// or --library. The returned closer is a no-op for the in-memory path.
func candidateSource(cmd *cobra.Command) (score.CandidateSource, func(), error) {
	dbPath, _ := cmd.Flags().GetString("library-db")
	csvPath, _ := cmd.Flags().GetString("library")

	switch {
	case dbPath != "":
		store, err := library.NewStore(dbPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case csvPath != "":
		entries, dropped, err := ingest.LoadLibraryFile(csvPath)
		if err != nil {
			return nil, nil, err
		}
		if dropped > 0 {
			fmt.Fprintf(os.Stderr, "warning: dropped %d library row(s) without a parseable exact mass\n", dropped)
		}
		return library.NewTable(entries), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("provide a reference library: --library (CSV) or --library-db (SQLite)")
	}
}

func rtReferences(cmd *cobra.Command) ([]types.RTReference, error) {
	path, _ := cmd.Flags().GetString("rt-refs")
	if path == "" {
		return nil, nil
	}
	refs, dropped, err := ingest.LoadRTRefsFile(path)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "warning: dropped %d RT reference row(s)\n", dropped)
	}
	return refs, nil
}

func viperKeywords() []string {
	// Keywords may also come from the config file's top-level keywords list.
	return viperStringSlice("keywords")
}

func writeResults(results []types.ScoredResult, format, outPath string) error {
	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "table", "":
		report.FormatTable(results, w)
		return nil
	case "csv":
		return report.WriteCSV(results, w)
	case "json":
		return report.WriteJSON(results, w)
	default:
		return fmt.Errorf("unsupported format %q: use table, csv, or json", format)
	}
}
