// Package ingest normalizes vendor CSV exports into the canonical peak,
// library, and retention-time reference tables. Vendor exports disagree on
// header names, so each canonical field maps to a list of accepted source
// aliases; the engine only ever sees canonical fields.
package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn reports a required canonical field with no matching
// header after alias inference. Scoring must not proceed with partial or
// guessed columns.
var ErrMissingColumn = errors.New("required column not found")

// Accepted source header aliases per canonical field, matched
// case-insensitively. Drawn from the vendor exports and curated library
// files seen in practice.
var (
	rtAliases        = []string{"rt", "retention time", "retention_time", "time"}
	mzAliases        = []string{"m/z", "mz", "m_z", "mass", "base peak", "base_peak"}
	intensityAliases = []string{"area", "height", "intensity"}

	manualNameAliases  = []string{"manual_hit_name", "manual_name", "manual_hit"}
	manualMZAliases    = []string{"manual_hit_mz", "manual_mz"}
	manualScoreAliases = []string{"manual_lib_score", "manual_score", "lib_score"}

	libNameAliases  = []string{"name", "compound_name", "compound", "identifier"}
	libMassAliases  = []string{"exact_mass", "exact mass", "exact_molecular_weight", "monoisotopic_mass", "mass"}
	libClassAliases = []string{"chemical_class", "class", "superclass", "chemical_super_class"}

	rtRefNameAliases = []string{"name", "compound_name", "compound"}
	rtRefRTAliases   = []string{"expected_rt", "rt", "retention time", "retention_time"}
)

// pickColumn returns the index of the first alias present in the header,
// or -1 when none matches.
func pickColumn(header []string, aliases []string) int {
	lookup := make(map[string]int, len(header))
	for i, h := range header {
		lookup[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, a := range aliases {
		if i, ok := lookup[a]; ok {
			return i
		}
	}
	return -1
}

func missingColumn(field string, aliases []string) error {
	return fmt.Errorf("%w: %s (accepted headers: %s)",
		ErrMissingColumn, field, strings.Join(aliases, ", "))
}
