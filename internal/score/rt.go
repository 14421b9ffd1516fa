// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"math"

	"github.com/pdiddy/bloomz/pkg/types"
)

const (
	// rtPenaltyCap bounds the retention-time deduction so RT, a weaker
	// discriminant than mass, can never zero out a strong match on its own.
	rtPenaltyCap = 0.5

	// rtRefPenaltySlope converts excess deviation beyond the reference
	// tolerance into penalty, in penalty units per minute.
	rtRefPenaltySlope = 0.20

	// massFloor keeps ln(mass) finite for degenerate candidate masses.
	massFloor = 1e-9
)

// RTPenalty computes the retention-time deduction and the signed
// observed-minus-expected delta for a candidate.
//
// With an explicit expected RT (hasRef), deviation inside the reference
// tolerance is free and excess deviation accrues penalty linearly. Without
// one, the heuristic model expectedRT = a*ln(mass) + b applies: a peak
// eluting earlier than a compound of that mass should is penalized, a
// late-eluting one is not (the heuristic may simply be off). The penalty
// is capped in both branches.
func RTPenalty(observedRT, candidateMass, expectedRT float64, hasRef bool, cfg types.ScoringConfig) (penalty, delta float64) {
	if hasRef {
		delta = observedRT - expectedRT
		excess := math.Abs(delta) - cfg.RTRefTolerance
		if excess < 0 {
			excess = 0
		}
		return math.Min(rtPenaltyCap, excess*rtRefPenaltySlope), delta
	}

	expected := cfg.ExpectedRTA*math.Log(math.Max(candidateMass, massFloor)) + cfg.ExpectedRTB
	delta = observedRT - expected
	if delta >= 0 {
		return 0, delta
	}
	return math.Min(rtPenaltyCap, -delta*cfg.RTHeavyEarlyStrength), delta
}

// ResolveRTReference fuzzy-matches a candidate name against the
// retention-time reference table and returns the best row when its name
// similarity meets the configured acceptance threshold.
func ResolveRTReference(candidateName string, refs []types.RTReference, threshold float64) (types.RTReference, bool) {
	var best types.RTReference
	bestSim := 0.0
	for _, ref := range refs {
		if sim := NameSimilarity(candidateName, ref.Name); sim > bestSim {
			bestSim = sim
			best = ref
		}
	}
	if bestSim >= threshold && bestSim > 0 {
		return best, true
	}
	return types.RTReference{}, false
}
