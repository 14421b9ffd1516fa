// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"context"
	"math"
	"sort"

	"github.com/pdiddy/bloomz/pkg/types"
)

// CandidateSource narrows the reference library to entries whose exact
// mass lies inside a closed interval. Both the in-memory table and the
// SQLite store implement it.
type CandidateSource interface {
	CandidatesInRange(ctx context.Context, lo, hi float64) ([]types.LibraryEntry, error)
}

// Internal ranking weights used only to pick which candidate becomes the
// reported best match. Mass dominates because it is the primary match
// key; name and class evidence break ties between isobaric candidates.
const (
	rankWeightMass         = 0.60
	rankWeightName         = 0.25
	rankWeightPlausibility = 0.15
)

// Engine scores peaks against a reference library. It holds only
// read-only state, so one engine may score any number of peaks and
// repeated runs over the same inputs produce identical results.
type Engine struct {
	cfg      types.ScoringConfig
	source   CandidateSource
	rtRefs   []types.RTReference
	keywords []string
}

// NewEngine builds an engine over a candidate source, an optional
// retention-time reference table, and the species-context keyword list.
func NewEngine(cfg types.ScoringConfig, source CandidateSource, rtRefs []types.RTReference, keywords []string) *Engine {
	return &Engine{cfg: cfg, source: source, rtRefs: rtRefs, keywords: keywords}
}

// ScoreTable scores every peak in order and returns one result per peak.
// Peaks are independent: a bad peak yields an unscored result and the
// batch continues. Only a candidate-source failure aborts the run.
func (e *Engine) ScoreTable(ctx context.Context, peaks []types.Peak) ([]types.ScoredResult, error) {
	results := make([]types.ScoredResult, 0, len(peaks))
	for _, p := range peaks {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		r, err := e.ScorePeak(ctx, p)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

// ScorePeak scores a single peak. The returned result always carries the
// full column set; Status distinguishes a normal score from the empty
// mass gate and from a peak excluded for non-finite inputs.
func (e *Engine) ScorePeak(ctx context.Context, peak types.Peak) (types.ScoredResult, error) {
	result := types.ScoredResult{
		Peak:      peak,
		Status:    types.StatusOK,
		MatchName: types.NoMatchName,
		Grade:     types.GradeFlagged,
	}

	// A non-finite RT or m/z should have been dropped at ingest. If one
	// slips through, exclude the peak rather than abort the batch.
	if !isFinite(peak.RT) || !isFinite(peak.MZ) || peak.RT < 0 {
		result.Status = types.StatusUnscored
		return result, nil
	}

	candidates, err := e.candidates(ctx, peak)
	if err != nil {
		return types.ScoredResult{}, err
	}
	if len(candidates) == 0 {
		result.Status = types.StatusNoCandidates
		return result, nil
	}

	shortlist := e.rank(peak, candidates)
	best := shortlist[0]

	topK := e.cfg.TopK
	if topK < 1 {
		topK = 1
	}
	if len(shortlist) > topK {
		shortlist = shortlist[:topK]
	}

	// Retention-time evidence for the best candidate: an explicit
	// reference row when one fuzzy-matches, the heuristic model otherwise.
	expectedRT := 0.0
	hasRef := false
	if ref, ok := ResolveRTReference(best.Name, e.rtRefs, e.cfg.RTRefMatchThreshold); ok {
		expectedRT = ref.ExpectedRT
		hasRef = true
		result.RTRefName = ref.Name
	}
	penalty, delta := RTPenalty(peak.RT, best.ExactMass, expectedRT, hasRef, e.cfg)

	// Manual corroboration: when the analyst supplied a reference mass,
	// the stronger of the database and manual mass terms counts, so
	// agreeing manual evidence can rescue a borderline gate pass.
	massComponent := best.MassScore
	if peak.HasManualHit() {
		if manual := MassScore(peak.MZ, peak.ManualHitMZ, e.cfg.MassTolerance); manual > massComponent {
			massComponent = manual
		}
	}
	manualNorm := NormalizeManualScore(peak.ManualLibScore)

	confidence := e.cfg.WeightManualLib*manualNorm +
		e.cfg.WeightMass*massComponent +
		e.cfg.WeightName*best.NameScore +
		e.cfg.WeightPlausibility*best.Plausibility -
		penalty

	// Fail closed: a NaN confidence is reported as if the gate were empty,
	// never propagated into the result table.
	if math.IsNaN(confidence) {
		result.Status = types.StatusNoCandidates
		return result, nil
	}

	result.MatchName = best.Name
	result.MatchMass = best.ExactMass
	result.MatchClass = best.Class
	result.MassScore = massComponent
	result.NameScore = best.NameScore
	result.Plausibility = best.Plausibility
	result.ManualLib = manualNorm
	result.RTDelta = delta
	result.RTPenalty = penalty
	result.Confidence = clamp01(confidence)
	result.Grade = types.GradeFor(result.Confidence)
	result.Candidates = shortlist
	return result, nil
}

// candidates runs the mass gate and drops entries whose mass is NaN so a
// malformed library row can never turn into a silent NaN confidence.
func (e *Engine) candidates(ctx context.Context, peak types.Peak) ([]types.LibraryEntry, error) {
	lo := peak.MZ - e.cfg.MassTolerance
	hi := peak.MZ + e.cfg.MassTolerance
	entries, err := e.source.CandidatesInRange(ctx, lo, hi)
	if err != nil {
		return nil, err
	}

	kept := entries[:0:0]
	for _, entry := range entries {
		if math.IsNaN(entry.ExactMass) {
			continue
		}
		kept = append(kept, entry)
	}
	return kept, nil
}

// rank computes the per-candidate terms and orders candidates by the
// internal selection heuristic, best first. The sort is stable so ties
// keep library order and repeated runs stay identical.
func (e *Engine) rank(peak types.Peak, candidates []types.LibraryEntry) []types.CandidateScore {
	scored := make([]types.CandidateScore, len(candidates))
	for i, c := range candidates {
		cs := types.CandidateScore{
			Name:         c.Name,
			ExactMass:    c.ExactMass,
			Class:        c.Class,
			MassScore:    MassScore(peak.MZ, c.ExactMass, e.cfg.MassTolerance),
			NameScore:    NameSimilarity(peak.ManualHitName, c.Name),
			Plausibility: Plausibility(c.Class, e.keywords, e.cfg.PlausibilityNeutral),
		}
		cs.Rank = rankWeightMass*cs.MassScore +
			rankWeightName*cs.NameScore +
			rankWeightPlausibility*cs.Plausibility
		scored[i] = cs
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Rank > scored[j].Rank
	})
	return scored
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
