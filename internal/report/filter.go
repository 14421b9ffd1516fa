// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"strings"

	"github.com/pdiddy/bloomz/pkg/types"
)

// FilterOptions narrows a result set for triage: by confidence floor,
// grade, matched class substring, or retention-time window. Zero values
// leave each criterion inactive.
type FilterOptions struct {
	// MinConfidence keeps results at or above this confidence.
	MinConfidence float64

	// Grade keeps only results with this exact grade.
	Grade types.Grade

	// ClassContains keeps results whose matched class contains this
	// substring, case-insensitively.
	ClassContains string

	// RTMin and RTMax keep results inside this retention-time window.
	// The window applies only when RTMax > 0.
	RTMin float64
	RTMax float64
}

// IsEmpty reports whether no criterion is active.
func (o FilterOptions) IsEmpty() bool {
	return o.MinConfidence == 0 && o.Grade == "" && o.ClassContains == "" && o.RTMax == 0
}

// Filter returns the results matching every active criterion, preserving
// order.
func Filter(results []types.ScoredResult, opts FilterOptions) []types.ScoredResult {
	var kept []types.ScoredResult
	class := strings.ToLower(opts.ClassContains)

	for _, r := range results {
		if r.Confidence < opts.MinConfidence {
			continue
		}
		if opts.Grade != "" && r.Grade != opts.Grade {
			continue
		}
		if class != "" && !strings.Contains(strings.ToLower(r.MatchClass), class) {
			continue
		}
		if opts.RTMax > 0 && (r.RT < opts.RTMin || r.RT > opts.RTMax) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
