// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score implements the bloomz scoring engine: mass-gate candidate
// filtering, the per-factor score terms, and the per-peak confidence and
// grade computation.
package score

import "math"

// tolFloor keeps the mass-term exponent finite when the tolerance is
// configured to zero.
const tolFloor = 1e-12

// MassScore returns exp(-|sampleMZ-refMZ|/tol) when the gap is inside the
// tolerance gate, and 0 outside it. A perfect match scores 1.0; a match
// exactly on the gate edge scores exp(-1). NaN inputs score 0.
func MassScore(sampleMZ, refMZ, tol float64) float64 {
	d := math.Abs(sampleMZ - refMZ)
	if math.IsNaN(d) || d > tol {
		return 0.0
	}
	return math.Exp(-d / math.Max(tol, tolFloor))
}

// NormalizeManualScore rescales a raw analyst-entered library score to
// [0, 1]. Analysts paste scores from systems using 0-1, 0-100, or 0-1000
// conventions; the scale is inferred from the magnitude. Missing or
// non-numeric input (NaN) yields the neutral 0.5.
func NormalizeManualScore(raw float64) float64 {
	if math.IsNaN(raw) {
		return 0.5
	}
	switch {
	case raw <= 1.0:
		return clamp01(raw)
	case raw <= 100.0:
		return clamp01(raw / 100.0)
	default:
		return clamp01(raw / 1000.0)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
