// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"

	"github.com/pdiddy/bloomz/pkg/types"
)

// Summary holds per-run counts for the result table.
type Summary struct {
	Peaks          int `json:"peaks" yaml:"peaks"`
	Matched        int `json:"matched" yaml:"matched"`
	NoCandidates   int `json:"no_candidates" yaml:"no_candidates"`
	Unscored       int `json:"unscored" yaml:"unscored"`
	HighConfidence int `json:"high_confidence" yaml:"high_confidence"`
	Probable       int `json:"probable" yaml:"probable"`
	Possible       int `json:"possible" yaml:"possible"`
	Flagged        int `json:"flagged" yaml:"flagged"`
}

// Summarize tallies statuses and grades over a result set.
func Summarize(results []types.ScoredResult) Summary {
	s := Summary{Peaks: len(results)}
	for _, r := range results {
		switch r.Status {
		case types.StatusOK:
			s.Matched++
		case types.StatusNoCandidates:
			s.NoCandidates++
		case types.StatusUnscored:
			s.Unscored++
		}
		switch r.Grade {
		case types.GradeHighConfidence:
			s.HighConfidence++
		case types.GradeProbable:
			s.Probable++
		case types.GradePossible:
			s.Possible++
		case types.GradeFlagged:
			s.Flagged++
		}
	}
	return s
}

// Format writes the summary as a short block of counts.
func (s Summary) Format(w io.Writer) {
	fmt.Fprintf(w, "peaks: %d, matched: %d, no candidates: %d, unscored: %d\n",
		s.Peaks, s.Matched, s.NoCandidates, s.Unscored)
	fmt.Fprintf(w, "grades: %d high confidence, %d probable, %d possible, %d flagged\n",
		s.HighConfidence, s.Probable, s.Possible, s.Flagged)
}
