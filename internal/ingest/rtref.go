// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/bloomz/pkg/types"
)

// LoadRTRefs normalizes a retention-time reference CSV of compound name
// and expected RT. Rows with an empty name or unparseable RT are dropped
// and counted.
func LoadRTRefs(r io.Reader) (refs []types.RTReference, dropped int, err error) {
	header, records, err := readCSV(r)
	if err != nil {
		return nil, 0, err
	}

	nameCol := pickColumn(header, rtRefNameAliases)
	rtCol := pickColumn(header, rtRefRTAliases)
	if nameCol < 0 {
		return nil, 0, missingColumn("compound name", rtRefNameAliases)
	}
	if rtCol < 0 {
		return nil, 0, missingColumn("expected retention time", rtRefRTAliases)
	}

	for _, rec := range records {
		name := strings.TrimSpace(field(rec, nameCol))
		rt, ok := parseFloat(field(rec, rtCol))
		if name == "" || !ok || !finite(rt) {
			dropped++
			continue
		}
		refs = append(refs, types.RTReference{Name: name, ExpectedRT: rt})
	}
	return refs, dropped, nil
}

// LoadRTRefsFile reads and normalizes a retention-time reference CSV from disk.
func LoadRTRefsFile(path string) ([]types.RTReference, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening RT reference table %s: %w", path, err)
	}
	defer f.Close()

	refs, dropped, err := LoadRTRefs(f)
	if err != nil {
		return nil, 0, fmt.Errorf("normalizing RT reference table %s: %w", path, err)
	}
	return refs, dropped, nil
}
