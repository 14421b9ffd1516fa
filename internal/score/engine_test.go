package score

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/pdiddy/bloomz/pkg/types"
)

// --- stub candidate sources ---

// rangeSource filters entries by the requested interval, like the real
// library table and store.
type rangeSource struct {
	entries []types.LibraryEntry
}

func (s rangeSource) CandidatesInRange(_ context.Context, lo, hi float64) ([]types.LibraryEntry, error) {
	var hits []types.LibraryEntry
	for _, e := range s.entries {
		if e.ExactMass >= lo && e.ExactMass <= hi {
			hits = append(hits, e)
		}
	}
	return hits, nil
}

// rawSource returns its entries verbatim, to exercise the engine's own
// defenses against malformed library rows.
type rawSource struct {
	entries []types.LibraryEntry
}

func (s rawSource) CandidatesInRange(_ context.Context, _, _ float64) ([]types.LibraryEntry, error) {
	return s.entries, nil
}

type errSource struct{ err error }

func (s errSource) CandidatesInRange(_ context.Context, _, _ float64) ([]types.LibraryEntry, error) {
	return nil, s.err
}

func cleanPeak(id int, rt, mz float64) types.Peak {
	return types.Peak{ID: id, RT: rt, MZ: mz, Intensity: 1.0,
		ManualHitMZ: math.NaN(), ManualLibScore: math.NaN()}
}

// --- scoring ---

func TestScorePeakExactMatch(t *testing.T) {
	source := rangeSource{entries: []types.LibraryEntry{
		{Name: "Eugenol", ExactMass: 164.0837, Class: "Phenolic"},
	}}
	engine := NewEngine(types.DefaultScoringConfig(), source, nil, nil)

	// RT 12.0 is later than the heuristic expectation for this mass, so
	// no penalty applies.
	result, err := engine.ScorePeak(context.Background(), cleanPeak(0, 12.0, 164.0837))
	if err != nil {
		t.Fatal(err)
	}

	if result.Status != types.StatusOK {
		t.Fatalf("Status = %s, want ok", result.Status)
	}
	if result.MatchName != "Eugenol" {
		t.Errorf("MatchName = %q, want Eugenol", result.MatchName)
	}
	if result.MassScore != 1.0 {
		t.Errorf("MassScore = %f, want 1.0", result.MassScore)
	}
	if result.Confidence < 0.40 {
		t.Errorf("Confidence = %f, want at least the mass weight 0.40", result.Confidence)
	}
	// 0.25*0.5 (neutral manual) + 0.40*1.0 + 0.25*0 + 0.10*0.5 (neutral plausibility).
	if math.Abs(result.Confidence-0.575) > 1e-9 {
		t.Errorf("Confidence = %f, want 0.575", result.Confidence)
	}
	if result.Grade != types.GradePossible {
		t.Errorf("Grade = %s, want Possible", result.Grade)
	}
}

func TestScorePeakEmptyGate(t *testing.T) {
	source := rangeSource{entries: []types.LibraryEntry{
		{Name: "Eugenol", ExactMass: 164.0837, Class: "Phenolic"},
	}}
	engine := NewEngine(types.DefaultScoringConfig(), source, nil, nil)

	// 164.100 is 0.0163 away from the only entry; the ±0.005 gate is empty.
	result, err := engine.ScorePeak(context.Background(), cleanPeak(0, 8.0, 164.100))
	if err != nil {
		t.Fatal(err)
	}

	if result.Status != types.StatusNoCandidates {
		t.Errorf("Status = %s, want no_candidates", result.Status)
	}
	if result.Confidence != 0.0 {
		t.Errorf("Confidence = %f, want 0", result.Confidence)
	}
	if result.Grade != types.GradeFlagged {
		t.Errorf("Grade = %s, want Flagged", result.Grade)
	}
	if result.MatchName != types.NoMatchName {
		t.Errorf("MatchName = %q, want %q", result.MatchName, types.NoMatchName)
	}
}

func TestConfidenceClampedHigh(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	cfg.WeightMass = 1.0
	cfg.WeightName = 1.0
	cfg.WeightManualLib = 1.0
	cfg.WeightPlausibility = 1.0

	source := rangeSource{entries: []types.LibraryEntry{
		{Name: "Eugenol", ExactMass: 164.0837, Class: "Phenolic"},
	}}
	engine := NewEngine(cfg, source, nil, nil)

	result, err := engine.ScorePeak(context.Background(), cleanPeak(0, 12.0, 164.0837))
	if err != nil {
		t.Fatal(err)
	}
	if result.Confidence != 1.0 {
		t.Errorf("Confidence = %f, want clamped to 1.0", result.Confidence)
	}
	if result.Grade != types.GradeHighConfidence {
		t.Errorf("Grade = %s, want High Confidence", result.Grade)
	}
}

func TestConfidenceClampedLow(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	cfg.WeightMass = 0
	cfg.WeightName = 0
	cfg.WeightManualLib = 0
	cfg.WeightPlausibility = 0

	source := rangeSource{entries: []types.LibraryEntry{
		{Name: "Heavy compound", ExactMass: 200.0, Class: ""},
	}}
	engine := NewEngine(cfg, source, nil, nil)

	// RT 5.0 is far earlier than a mass-200 compound should elute, so the
	// capped penalty drives the raw score negative.
	result, err := engine.ScorePeak(context.Background(), cleanPeak(0, 5.0, 200.0))
	if err != nil {
		t.Fatal(err)
	}
	if result.Confidence != 0.0 {
		t.Errorf("Confidence = %f, want clamped to 0", result.Confidence)
	}
	if result.RTPenalty != 0.5 {
		t.Errorf("RTPenalty = %f, want 0.5", result.RTPenalty)
	}
}

func TestManualCorroborationTakesStrongerMassTerm(t *testing.T) {
	cfg := types.DefaultScoringConfig()

	// Candidate sits exactly on the gate edge: database mass term exp(-1).
	source := rangeSource{entries: []types.LibraryEntry{
		{Name: "Borderline", ExactMass: 200.0 + cfg.MassTolerance, Class: ""},
	}}
	engine := NewEngine(cfg, source, nil, nil)

	peak := cleanPeak(0, 20.0, 200.0)
	peak.ManualHitName = "Borderline"
	peak.ManualHitMZ = 200.0 // manual reference agrees with the peak exactly
	peak.ManualLibScore = 90

	result, err := engine.ScorePeak(context.Background(), peak)
	if err != nil {
		t.Fatal(err)
	}
	if result.MassScore != 1.0 {
		t.Errorf("MassScore = %f, want 1.0 (manual term wins over %f)", result.MassScore, math.Exp(-1))
	}
	if math.Abs(result.ManualLib-0.9) > 1e-9 {
		t.Errorf("ManualLib = %f, want 0.9", result.ManualLib)
	}
	if result.NameScore != 1.0 {
		t.Errorf("NameScore = %f, want 1.0", result.NameScore)
	}
}

func TestNaNCandidateMassFailsClosed(t *testing.T) {
	source := rawSource{entries: []types.LibraryEntry{
		{Name: "Broken row", ExactMass: math.NaN(), Class: ""},
	}}
	engine := NewEngine(types.DefaultScoringConfig(), source, nil, nil)

	result, err := engine.ScorePeak(context.Background(), cleanPeak(0, 8.0, 164.0837))
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != types.StatusNoCandidates {
		t.Errorf("Status = %s, want no_candidates (NaN mass must not score)", result.Status)
	}
	if result.Confidence != 0.0 {
		t.Errorf("Confidence = %f, want 0", result.Confidence)
	}
}

func TestNonFinitePeakIsUnscored(t *testing.T) {
	source := rangeSource{entries: []types.LibraryEntry{
		{Name: "Eugenol", ExactMass: 164.0837, Class: "Phenolic"},
	}}
	engine := NewEngine(types.DefaultScoringConfig(), source, nil, nil)

	bad := cleanPeak(0, math.NaN(), 164.0837)
	good := cleanPeak(1, 12.0, 164.0837)

	results, err := engine.ScoreTable(context.Background(), []types.Peak{bad, good})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2 (one bad peak must not abort the batch)", len(results))
	}
	if results[0].Status != types.StatusUnscored {
		t.Errorf("results[0].Status = %s, want unscored", results[0].Status)
	}
	if results[1].Status != types.StatusOK {
		t.Errorf("results[1].Status = %s, want ok", results[1].Status)
	}
}

func TestRankingPrefersManualNameMatch(t *testing.T) {
	// Two isobaric candidates: identical mass terms, so name evidence
	// from the manual hit decides.
	source := rangeSource{entries: []types.LibraryEntry{
		{Name: "beta-Caryophyllene", ExactMass: 204.1878, Class: "Sesquiterpene"},
		{Name: "Humulene", ExactMass: 204.1878, Class: "Sesquiterpene"},
	}}
	engine := NewEngine(types.DefaultScoringConfig(), source, nil, nil)

	peak := cleanPeak(0, 20.0, 204.1878)
	peak.ManualHitName = "humulene"

	result, err := engine.ScorePeak(context.Background(), peak)
	if err != nil {
		t.Fatal(err)
	}
	if result.MatchName != "Humulene" {
		t.Errorf("MatchName = %q, want Humulene", result.MatchName)
	}
}

func TestShortlistRespectsTopK(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	cfg.TopK = 2

	source := rangeSource{entries: []types.LibraryEntry{
		{Name: "A", ExactMass: 204.1878},
		{Name: "B", ExactMass: 204.1878},
		{Name: "C", ExactMass: 204.1878},
	}}
	engine := NewEngine(cfg, source, nil, nil)

	result, err := engine.ScorePeak(context.Background(), cleanPeak(0, 20.0, 204.1878))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Candidates) != 2 {
		t.Errorf("len(Candidates) = %d, want 2", len(result.Candidates))
	}
	for i := 1; i < len(result.Candidates); i++ {
		if result.Candidates[i].Rank > result.Candidates[i-1].Rank {
			t.Errorf("shortlist not ordered by rank at %d", i)
		}
	}
}

func TestRTReferenceResolution(t *testing.T) {
	source := rangeSource{entries: []types.LibraryEntry{
		{Name: "Caffeine", ExactMass: 194.0804, Class: "Purine alkaloid"},
	}}
	refs := []types.RTReference{{Name: "Caffeine", ExpectedRT: 10.0}}
	engine := NewEngine(types.DefaultScoringConfig(), source, refs, nil)

	result, err := engine.ScorePeak(context.Background(), cleanPeak(0, 10.1, 194.0804))
	if err != nil {
		t.Fatal(err)
	}
	if result.RTRefName != "Caffeine" {
		t.Errorf("RTRefName = %q, want Caffeine", result.RTRefName)
	}
	if result.RTPenalty != 0 {
		t.Errorf("RTPenalty = %f, want 0 (inside reference tolerance)", result.RTPenalty)
	}
	if math.Abs(result.RTDelta-0.1) > 1e-9 {
		t.Errorf("RTDelta = %f, want 0.1", result.RTDelta)
	}
}

func TestScoreTableIdempotent(t *testing.T) {
	source := rangeSource{entries: []types.LibraryEntry{
		{Name: "Eugenol", ExactMass: 164.0837, Class: "Phenolic"},
		{Name: "Caffeine", ExactMass: 194.0804, Class: "Purine alkaloid"},
	}}
	engine := NewEngine(types.DefaultScoringConfig(), source, nil, []string{"phenolic"})

	// Zero-valued manual fields keep the results comparable with
	// reflect.DeepEqual (NaN never equals itself).
	peaks := []types.Peak{
		{ID: 0, RT: 12.0, MZ: 164.0837, Intensity: 1.0},
		{ID: 1, RT: 10.0, MZ: 194.0804, Intensity: 2.5},
		{ID: 2, RT: 3.0, MZ: 500.0, Intensity: 1.0},
	}

	first, err := engine.ScoreTable(context.Background(), peaks)
	if err != nil {
		t.Fatal(err)
	}
	second, err := engine.ScoreTable(context.Background(), peaks)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("scoring the same inputs twice produced different results")
	}
}

func TestScoreTableSourceError(t *testing.T) {
	wantErr := errors.New("database gone")
	engine := NewEngine(types.DefaultScoringConfig(), errSource{err: wantErr}, nil, nil)

	_, err := engine.ScoreTable(context.Background(), []types.Peak{cleanPeak(0, 5.0, 100.0)})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
