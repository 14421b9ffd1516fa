// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Grade is the discrete confidence bucket assigned to a scored peak,
// used for human-facing triage.
type Grade string

const (
	GradeHighConfidence Grade = "High Confidence"
	GradeProbable       Grade = "Probable"
	GradePossible       Grade = "Possible"
	GradeFlagged        Grade = "Flagged"
)

// GradeFor maps a confidence value to its grade. Lower bounds are
// inclusive: exactly 0.90 is High Confidence, exactly 0.70 is Probable,
// exactly 0.50 is Possible.
func GradeFor(confidence float64) Grade {
	switch {
	case confidence >= 0.90:
		return GradeHighConfidence
	case confidence >= 0.70:
		return GradeProbable
	case confidence >= 0.50:
		return GradePossible
	default:
		return GradeFlagged
	}
}

// ResultStatus describes the terminal state of scoring one peak.
type ResultStatus string

const (
	// StatusOK means at least one candidate passed the mass gate and the
	// peak was scored normally.
	StatusOK ResultStatus = "ok"

	// StatusNoCandidates means no library entry fell inside the mass
	// gate. This is a normal outcome, not an error.
	StatusNoCandidates ResultStatus = "no_candidates"

	// StatusUnscored means the peak carried a non-finite retention time
	// or mass and was excluded from scoring.
	StatusUnscored ResultStatus = "unscored"
)

// NoMatchName is the placeholder compound name emitted for peaks with no
// candidate, so the result table keeps a stable column set.
const NoMatchName = "None"

// CandidateScore holds the per-candidate terms computed inside the mass
// gate. The shortlist of top-ranked candidates is retained on each result
// for inspection; it does not feed the reported confidence.
type CandidateScore struct {
	Name         string  `json:"name" yaml:"name"`
	ExactMass    float64 `json:"exact_mass" yaml:"exact_mass"`
	Class        string  `json:"chemical_class" yaml:"chemical_class"`
	MassScore    float64 `json:"mass_score" yaml:"mass_score"`
	NameScore    float64 `json:"name_score" yaml:"name_score"`
	Plausibility float64 `json:"plausibility" yaml:"plausibility"`

	// Rank is the internal selection heuristic used only to pick the
	// best candidate, distinct from the reported confidence.
	Rank float64 `json:"rank" yaml:"rank"`
}

// ScoredResult is the outcome of scoring one peak. Every input peak
// produces exactly one result, and every result carries the full column
// set regardless of whether a match was found.
type ScoredResult struct {
	Peak `yaml:",inline"`

	Status ResultStatus `json:"status" yaml:"status"`

	// Best matched library entry. MatchName is "None" when Status is not ok.
	MatchName  string  `json:"match_name" yaml:"match_name"`
	MatchMass  float64 `json:"match_mass" yaml:"match_mass"`
	MatchClass string  `json:"match_class" yaml:"match_class"`

	// Per-factor sub-scores of the final confidence.
	MassScore    float64 `json:"mass_score" yaml:"mass_score"`
	NameScore    float64 `json:"name_score" yaml:"name_score"`
	Plausibility float64 `json:"plausibility" yaml:"plausibility"`
	ManualLib    float64 `json:"manual_lib_norm" yaml:"manual_lib_norm"`

	// RTDelta is the signed observed-minus-expected retention time gap;
	// RTPenalty is the capped deduction it produced. RTRefName names the
	// reference-table row used, empty when the heuristic model applied.
	RTDelta   float64 `json:"rt_delta" yaml:"rt_delta"`
	RTPenalty float64 `json:"rt_penalty" yaml:"rt_penalty"`
	RTRefName string  `json:"rt_ref_name,omitempty" yaml:"rt_ref_name,omitempty"`

	// Confidence is the final combined score, clamped to [0, 1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Grade is the discrete bucket derived from Confidence.
	Grade Grade `json:"grade" yaml:"grade"`

	// Candidates is the top-K shortlist inside the mass gate, best first.
	Candidates []CandidateScore `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}
