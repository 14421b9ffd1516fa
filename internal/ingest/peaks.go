// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/bloomz/pkg/types"
)

// LoadPeaks normalizes an instrument CSV into peaks. Retention time and
// m/z columns are required; rows where either fails to parse are dropped
// and counted. Peak IDs follow insertion order of the kept rows.
func LoadPeaks(r io.Reader) (peaks []types.Peak, dropped int, err error) {
	header, records, err := readCSV(r)
	if err != nil {
		return nil, 0, err
	}

	rtCol := pickColumn(header, rtAliases)
	mzCol := pickColumn(header, mzAliases)
	if rtCol < 0 {
		return nil, 0, missingColumn("retention time", rtAliases)
	}
	if mzCol < 0 {
		return nil, 0, missingColumn("mass-to-charge", mzAliases)
	}

	intCol := pickColumn(header, intensityAliases)
	mNameCol := pickColumn(header, manualNameAliases)
	mMZCol := pickColumn(header, manualMZAliases)
	mScoreCol := pickColumn(header, manualScoreAliases)

	for _, rec := range records {
		rt, rtOK := parseFloat(field(rec, rtCol))
		mz, mzOK := parseFloat(field(rec, mzCol))
		if !rtOK || !mzOK || !finite(rt) || !finite(mz) || rt < 0 {
			dropped++
			continue
		}

		p := types.Peak{
			ID:             len(peaks),
			RT:             rt,
			MZ:             mz,
			Intensity:      1.0,
			ManualHitMZ:    math.NaN(),
			ManualLibScore: math.NaN(),
		}
		if v, ok := parseFloat(field(rec, intCol)); ok && finite(v) {
			p.Intensity = v
		}
		if mNameCol >= 0 {
			p.ManualHitName = strings.TrimSpace(field(rec, mNameCol))
		}
		if v, ok := parseFloat(field(rec, mMZCol)); ok && finite(v) {
			p.ManualHitMZ = v
		}
		if v, ok := parseFloat(field(rec, mScoreCol)); ok && finite(v) {
			p.ManualLibScore = v
		}
		peaks = append(peaks, p)
	}
	return peaks, dropped, nil
}

// LoadPeaksFile reads and normalizes an instrument CSV from disk.
func LoadPeaksFile(path string) ([]types.Peak, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening peak table %s: %w", path, err)
	}
	defer f.Close()

	peaks, dropped, err := LoadPeaks(f)
	if err != nil {
		return nil, 0, fmt.Errorf("normalizing peak table %s: %w", path, err)
	}
	return peaks, dropped, nil
}

// readCSV reads the header row and all records. Short rows are tolerated;
// field lookups past a record's end read as empty.
func readCSV(r io.Reader) (header []string, records [][]string, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("reading CSV: no header row")
	}
	return rows[0], rows[1:], nil
}

func field(rec []string, col int) string {
	if col < 0 || col >= len(rec) {
		return ""
	}
	return rec[col]
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
