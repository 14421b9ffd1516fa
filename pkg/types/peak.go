// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the bloomz annotation
// pipeline: observed peaks, reference compounds, scoring configuration,
// and scored results.
package types

import "math"

// Peak is one observed signal from a GC-MS instrument run. Peaks are
// created once when an instrument table is normalized and are read-only
// for the scoring engine; only the manual-hit fields may be filled in by
// an analyst before scoring.
type Peak struct {
	// ID is a stable identifier assigned at load time (insertion order).
	ID int `json:"peak_id" yaml:"peak_id"`

	// RT is the retention time in minutes. Finite and non-negative for
	// any peak that reaches the engine.
	RT float64 `json:"retention_time" yaml:"retention_time"`

	// MZ is the mass-to-charge ratio, the primary match key.
	MZ float64 `json:"mass_to_charge" yaml:"mass_to_charge"`

	// Intensity is informational only and defaults to 1.0 when the
	// source table has no intensity column.
	Intensity float64 `json:"intensity" yaml:"intensity"`

	// ManualHitName is an optional analyst-supplied compound name from a
	// manual library search.
	ManualHitName string `json:"manual_hit_name,omitempty" yaml:"manual_hit_name,omitempty"`

	// ManualHitMZ is the reference mass for the manual hit. NaN when absent.
	ManualHitMZ float64 `json:"manual_hit_mz,omitempty" yaml:"manual_hit_mz,omitempty"`

	// ManualLibScore is a raw analyst-entered library score on an
	// ambiguous scale (0-1, 0-100, or 0-1000). NaN when absent.
	ManualLibScore float64 `json:"manual_lib_score,omitempty" yaml:"manual_lib_score,omitempty"`
}

// HasManualHit reports whether the analyst supplied a reference mass for
// this peak.
func (p Peak) HasManualHit() bool {
	return !math.IsNaN(p.ManualHitMZ) && p.ManualHitMZ > 0
}

// LibraryEntry is one reference compound. Entries lacking a parseable
// exact mass are dropped during normalization and never reach the engine.
type LibraryEntry struct {
	// Name is a non-empty compound identifier.
	Name string `json:"name" yaml:"name"`

	// ExactMass is the monoisotopic mass in the same unit as Peak.MZ.
	ExactMass float64 `json:"exact_mass" yaml:"exact_mass"`

	// Class is the chemical class (e.g. "Sesquiterpene lactone"). May be empty.
	Class string `json:"chemical_class" yaml:"chemical_class"`
}

// RTReference pairs a compound name with an expected retention time,
// used to resolve an explicit RT reference for a matched candidate.
type RTReference struct {
	Name       string  `json:"name" yaml:"name"`
	ExpectedRT float64 `json:"expected_rt" yaml:"expected_rt"`
}
