// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"math"
)

// ScoringConfig is the tunable parameter set for one scoring run. It is
// constructed once per invocation and immutable while the run executes.
type ScoringConfig struct {
	// MassTolerance is the symmetric mass-gate window in mass units.
	MassTolerance float64 `json:"mass_tolerance" yaml:"mass_tolerance"`

	// TopK is how many ranked candidates to retain per peak for inspection.
	TopK int `json:"top_k" yaml:"top_k"`

	// RTRefTolerance is the acceptable retention-time deviation when an
	// explicit expected-RT reference exists for a candidate.
	RTRefTolerance float64 `json:"rt_ref_tolerance" yaml:"rt_ref_tolerance"`

	// RTRefMatchThreshold is the minimum name similarity required to
	// accept a retention-time reference row for a candidate.
	RTRefMatchThreshold float64 `json:"rt_ref_match_threshold" yaml:"rt_ref_match_threshold"`

	// RTHeavyEarlyStrength is the penalty slope applied when no RT
	// reference exists and the heuristic fallback model is used.
	RTHeavyEarlyStrength float64 `json:"rt_heavy_early_strength" yaml:"rt_heavy_early_strength"`

	// ExpectedRTA and ExpectedRTB are the coefficients of the heuristic
	// expected-retention-time model a*ln(mass) + b.
	ExpectedRTA float64 `json:"expected_rt_a" yaml:"expected_rt_a"`
	ExpectedRTB float64 `json:"expected_rt_b" yaml:"expected_rt_b"`

	// Linear combination weights for the final confidence. The engine
	// does not require them to sum to 1; see Validate.
	WeightMass         float64 `json:"weight_mass" yaml:"weight_mass"`
	WeightName         float64 `json:"weight_name" yaml:"weight_name"`
	WeightManualLib    float64 `json:"weight_manual_lib" yaml:"weight_manual_lib"`
	WeightPlausibility float64 `json:"weight_plausibility" yaml:"weight_plausibility"`

	// PlausibilityNeutral is the fallback plausibility when a keyword
	// list is present but no keyword matches the candidate's class.
	// 0.5 treats absent evidence as neutral; 0.25 is the stricter policy.
	PlausibilityNeutral float64 `json:"plausibility_neutral" yaml:"plausibility_neutral"`
}

// DefaultScoringConfig returns the standard parameter set: a ±0.005 mass
// gate, the 0.40/0.25/0.25/0.10 weight split, and the neutral 0.5
// plausibility fallback.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		MassTolerance:        0.005,
		TopK:                 5,
		RTRefTolerance:       0.30,
		RTRefMatchThreshold:  0.70,
		RTHeavyEarlyStrength: 0.25,
		ExpectedRTA:          3.0,
		ExpectedRTB:          -5.0,
		WeightMass:           0.40,
		WeightName:           0.25,
		WeightManualLib:      0.25,
		WeightPlausibility:   0.10,
		PlausibilityNeutral:  0.5,
	}
}

// WeightSum returns the sum of the four confidence weights.
func (c ScoringConfig) WeightSum() float64 {
	return c.WeightMass + c.WeightName + c.WeightManualLib + c.WeightPlausibility
}

// Validate returns human-readable warnings for parameter combinations
// that are legal but probably unintended. Weight normalization is never
// enforced: over- or under-weighting stays a caller responsibility, so a
// mis-summed configuration warns instead of failing.
func (c ScoringConfig) Validate() []string {
	var warnings []string

	if c.MassTolerance < 0 {
		warnings = append(warnings, fmt.Sprintf("mass_tolerance is negative (%g): the gate will reject every candidate", c.MassTolerance))
	}
	if sum := c.WeightSum(); math.Abs(sum-1.0) > 0.05 {
		warnings = append(warnings, fmt.Sprintf("confidence weights sum to %.3f, not 1.0: confidence will be scaled accordingly", sum))
	}
	if c.RTRefMatchThreshold < 0 || c.RTRefMatchThreshold > 1 {
		warnings = append(warnings, fmt.Sprintf("rt_ref_match_threshold %.2f is outside [0, 1]", c.RTRefMatchThreshold))
	}
	if c.PlausibilityNeutral < 0 || c.PlausibilityNeutral > 1 {
		warnings = append(warnings, fmt.Sprintf("plausibility_neutral %.2f is outside [0, 1]", c.PlausibilityNeutral))
	}
	if c.TopK < 1 {
		warnings = append(warnings, fmt.Sprintf("top_k %d keeps no candidate shortlist", c.TopK))
	}

	return warnings
}
