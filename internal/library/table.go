// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library provides candidate sources over the reference compound
// library: an in-memory table for single-shot runs and a SQLite store for
// sessions that reuse a curated library across runs.
package library

import (
	"context"

	"github.com/pdiddy/bloomz/pkg/types"
)

// Table is an in-memory candidate source over normalized library entries.
// It is read-only after construction.
type Table struct {
	entries []types.LibraryEntry
}

// NewTable wraps normalized library entries. The caller must not mutate
// the slice afterwards.
func NewTable(entries []types.LibraryEntry) *Table {
	return &Table{entries: entries}
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// All returns every entry in load order.
func (t *Table) All() []types.LibraryEntry {
	return t.entries
}

// CandidatesInRange returns every entry whose exact mass lies in the
// closed interval [lo, hi], in load order. An empty result is a normal
// outcome, not an error.
func (t *Table) CandidatesInRange(_ context.Context, lo, hi float64) ([]types.LibraryEntry, error) {
	var hits []types.LibraryEntry
	for _, e := range t.entries {
		if e.ExactMass >= lo && e.ExactMass <= hi {
			hits = append(hits, e)
		}
	}
	return hits, nil
}
