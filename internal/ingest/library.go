// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/bloomz/pkg/types"
)

// LoadLibrary normalizes a reference compound CSV. Name and exact-mass
// columns are required. Rows with an unparseable mass or an empty name
// are dropped and counted; a blank name cell falls back to the
// "identifier" column when one exists, matching curated exports that
// carry database identifiers alongside trivial names.
func LoadLibrary(r io.Reader) (entries []types.LibraryEntry, dropped int, err error) {
	header, records, err := readCSV(r)
	if err != nil {
		return nil, 0, err
	}

	nameCol := pickColumn(header, libNameAliases)
	massCol := pickColumn(header, libMassAliases)
	if nameCol < 0 {
		return nil, 0, missingColumn("compound name", libNameAliases)
	}
	if massCol < 0 {
		return nil, 0, missingColumn("exact mass", libMassAliases)
	}

	classCol := pickColumn(header, libClassAliases)
	idCol := pickColumn(header, []string{"identifier"})

	for _, rec := range records {
		name := strings.TrimSpace(field(rec, nameCol))
		if name == "" && idCol >= 0 {
			name = strings.TrimSpace(field(rec, idCol))
		}

		mass, ok := parseFloat(field(rec, massCol))
		if name == "" || !ok || !finite(mass) {
			dropped++
			continue
		}

		entries = append(entries, types.LibraryEntry{
			Name:      name,
			ExactMass: mass,
			Class:     strings.TrimSpace(field(rec, classCol)),
		})
	}
	return entries, dropped, nil
}

// LoadLibraryFile reads and normalizes a reference library CSV from disk.
func LoadLibraryFile(path string) ([]types.LibraryEntry, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening library %s: %w", path, err)
	}
	defer f.Close()

	entries, dropped, err := LoadLibrary(f)
	if err != nil {
		return nil, 0, fmt.Errorf("normalizing library %s: %w", path, err)
	}
	return entries, dropped, nil
}
