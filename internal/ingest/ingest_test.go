package ingest

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- peaks ---

func TestLoadPeaks(t *testing.T) {
	csv := strings.Join([]string{
		"RT,m/z,Area",
		"5.2,152.0473,1200",
		"7.4,204.1878,800",
		"bad,100.0,50",
		"9.1,not-a-number,50",
	}, "\n")

	peaks, dropped, err := LoadPeaks(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, dropped)
	require.Len(t, peaks, 2)

	assert.Equal(t, 0, peaks[0].ID)
	assert.Equal(t, 1, peaks[1].ID)
	assert.InDelta(t, 5.2, peaks[0].RT, 1e-9)
	assert.InDelta(t, 152.0473, peaks[0].MZ, 1e-9)
	assert.InDelta(t, 1200.0, peaks[0].Intensity, 1e-9)

	// Manual fields default to absent.
	assert.Empty(t, peaks[0].ManualHitName)
	assert.True(t, math.IsNaN(peaks[0].ManualHitMZ))
	assert.True(t, math.IsNaN(peaks[0].ManualLibScore))
}

func TestLoadPeaksIntensityDefaults(t *testing.T) {
	csv := "retention_time,mass\n5.2,152.0473\n"

	peaks, dropped, err := LoadPeaks(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	require.Len(t, peaks, 1)
	assert.Equal(t, 1.0, peaks[0].Intensity)
}

func TestLoadPeaksManualColumns(t *testing.T) {
	csv := strings.Join([]string{
		"rt,mz,manual_hit_name,manual_hit_mz,manual_lib_score",
		"5.2,152.0473,Methyl salicylate,152.0473,850",
	}, "\n")

	peaks, _, err := LoadPeaks(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, peaks, 1)

	assert.Equal(t, "Methyl salicylate", peaks[0].ManualHitName)
	assert.InDelta(t, 152.0473, peaks[0].ManualHitMZ, 1e-9)
	assert.InDelta(t, 850.0, peaks[0].ManualLibScore, 1e-9)
	assert.True(t, peaks[0].HasManualHit())
}

func TestLoadPeaksDropsNegativeRT(t *testing.T) {
	csv := "rt,mz\n-1.0,100.0\n2.0,100.0\n"

	peaks, dropped, err := LoadPeaks(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	assert.Len(t, peaks, 1)
}

func TestLoadPeaksMissingColumn(t *testing.T) {
	_, _, err := LoadPeaks(strings.NewReader("mz,area\n100.0,5\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "retention time")

	_, _, err = LoadPeaks(strings.NewReader("rt,area\n5.0,5\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

// --- library ---

func TestLoadLibrary(t *testing.T) {
	csv := strings.Join([]string{
		"name,exact_molecular_weight,chemical_class",
		"Eugenol,164.0837,Phenolic",
		"Mystery,,Unknown",
		"Caffeine,194.0804,Purine alkaloid",
	}, "\n")

	entries, dropped, err := LoadLibrary(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, dropped)
	require.Len(t, entries, 2)
	assert.Equal(t, "Eugenol", entries[0].Name)
	assert.InDelta(t, 164.0837, entries[0].ExactMass, 1e-9)
	assert.Equal(t, "Phenolic", entries[0].Class)
}

func TestLoadLibraryIdentifierFallback(t *testing.T) {
	csv := strings.Join([]string{
		"name,identifier,exact_mass",
		",HMDB0001,152.0473",
		"Vanillin,HMDB0002,152.0473",
	}, "\n")

	entries, dropped, err := LoadLibrary(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	require.Len(t, entries, 2)

	assert.Equal(t, "HMDB0001", entries[0].Name)
	assert.Equal(t, "Vanillin", entries[1].Name)
}

func TestLoadLibraryMissingColumns(t *testing.T) {
	_, _, err := LoadLibrary(strings.NewReader("name,class\nEugenol,Phenolic\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "exact mass")
}

// --- retention-time references ---

func TestLoadRTRefs(t *testing.T) {
	csv := strings.Join([]string{
		"Compound,Expected_RT",
		"Caffeine,10.0",
		"Eugenol,",
	}, "\n")

	refs, dropped, err := LoadRTRefs(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	require.Len(t, refs, 1)
	assert.Equal(t, "Caffeine", refs[0].Name)
	assert.InDelta(t, 10.0, refs[0].ExpectedRT, 1e-9)
}

func TestLoadRTRefsMissingColumn(t *testing.T) {
	_, _, err := LoadRTRefs(strings.NewReader("compound\nCaffeine\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestEmptyCSV(t *testing.T) {
	_, _, err := LoadPeaks(strings.NewReader(""))
	require.Error(t, err)
}
