// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bloomz/internal/report"
	"github.com/pdiddy/bloomz/pkg/types"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Work with saved scoring runs",
}

var resultsFilterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Re-filter a saved run by confidence, grade, class, or RT window",
	Long: `Filter loads a YAML run file saved by annotate --run-file and
narrows its result table for triage, without rescoring. The filtered
slice can be rendered as a table or exported as CSV or JSON.`,
	RunE: runResultsFilter,
}

func runResultsFilter(cmd *cobra.Command, args []string) error {
	runPath, _ := cmd.Flags().GetString("run-file")
	if runPath == "" {
		return fmt.Errorf("--run-file is required")
	}

	rf, err := report.ReadRunFile(runPath)
	if err != nil {
		return err
	}

	minConf, _ := cmd.Flags().GetFloat64("min-confidence")
	grade, _ := cmd.Flags().GetString("grade")
	class, _ := cmd.Flags().GetString("class")
	rtMin, _ := cmd.Flags().GetFloat64("rt-min")
	rtMax, _ := cmd.Flags().GetFloat64("rt-max")

	opts := report.FilterOptions{
		MinConfidence: minConf,
		Grade:         types.Grade(grade),
		ClassContains: class,
		RTMin:         rtMin,
		RTMax:         rtMax,
	}

	filtered := report.Filter(rf.Results, opts)
	fmt.Fprintf(os.Stderr, "%d of %d result(s) match\n", len(filtered), len(rf.Results))

	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	return writeResults(filtered, format, outPath)
}

func init() {
	resultsFilterCmd.Flags().String("run-file", "", "YAML run file saved by annotate")
	resultsFilterCmd.Flags().Float64("min-confidence", 0, "minimum confidence to keep")
	resultsFilterCmd.Flags().String("grade", "", `keep only this grade (e.g. "High Confidence")`)
	resultsFilterCmd.Flags().String("class", "", "keep results whose matched class contains this substring")
	resultsFilterCmd.Flags().Float64("rt-min", 0, "retention-time window start (minutes)")
	resultsFilterCmd.Flags().Float64("rt-max", 0, "retention-time window end (minutes, 0 disables)")
	resultsFilterCmd.Flags().String("format", "table", "output format: table, csv, or json")
	resultsFilterCmd.Flags().String("out", "", "write results to a file instead of stdout")

	resultsCmd.AddCommand(resultsFilterCmd)
	rootCmd.AddCommand(resultsCmd)
}
