// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders scored results as a human-readable table, CSV,
// or JSON, filters result sets, and saves whole runs as YAML run files.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/bloomz/pkg/types"
)

// csvHeader is the fixed result-table schema. Every row carries every
// column regardless of match outcome, so downstream tooling never has to
// probe for optional fields.
var csvHeader = []string{
	"peak_id", "retention_time", "mass_to_charge", "intensity",
	"manual_hit_name", "manual_hit_mz", "manual_lib_score",
	"status", "match_name", "match_mass", "match_class",
	"mass_score", "name_score", "plausibility", "manual_lib_norm",
	"rt_delta", "rt_penalty", "rt_ref_name",
	"confidence", "grade",
}

// WriteCSV writes results in the fixed schema. Absent numeric fields
// (NaN) render as empty cells.
func WriteCSV(results []types.ScoredResult, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, r := range results {
		row := []string{
			strconv.Itoa(r.ID),
			num(r.RT, 4),
			num(r.MZ, 4),
			num(r.Intensity, 4),
			r.ManualHitName,
			num(r.ManualHitMZ, 4),
			num(r.ManualLibScore, 4),
			string(r.Status),
			r.MatchName,
			num(r.MatchMass, 4),
			r.MatchClass,
			num(r.MassScore, 4),
			num(r.NameScore, 4),
			num(r.Plausibility, 4),
			num(r.ManualLib, 4),
			num(r.RTDelta, 4),
			num(r.RTPenalty, 4),
			r.RTRefName,
			num(r.Confidence, 4),
			string(r.Grade),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for peak %d: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes results as indented JSON.
func WriteJSON(results []types.ScoredResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// FormatTable writes results as a human-readable table.
func FormatTable(results []types.ScoredResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No peaks scored.")
		return
	}

	fmt.Fprintf(w, "%-6s  %-8s  %-10s  %-28s  %-6s  %-16s  %s\n",
		"Peak", "RT", "m/z", "Match", "Conf", "Grade", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 92))

	for _, r := range results {
		match := r.MatchName
		if len(match) > 28 {
			match = match[:25] + "..."
		}
		fmt.Fprintf(w, "%-6d  %-8.2f  %-10.4f  %-28s  %-6.2f  %-16s  %s\n",
			r.ID, r.RT, r.MZ, match, r.Confidence, r.Grade, r.Status)
	}
	fmt.Fprintf(w, "\n%d peaks\n", len(results))
}

// num formats a float with prec decimals, rendering NaN as empty.
func num(v float64, prec int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
