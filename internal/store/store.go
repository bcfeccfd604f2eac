// Package store persists the pipeline's keyed record tables: JSON files
// mapping model ID to an ordered slice of records. The whole file is
// read, mutated in memory, and rewritten. Rewriting after every record
// is the recovery contract that makes an interrupted stage resumable.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Keyed is any record addressable by a prompt ID within a model's slice.
type Keyed interface {
	Key() string
}

// Table maps a model identifier to its ordered record sequence.
// Within one model's slice prompt IDs are unique: Upsert replaces an
// existing ID in place (preserving its first-seen position) and appends
// new IDs at the end.
type Table[R Keyed] map[string][]R

// Upsert merges rec into the model's record slice under the
// replace-in-place/append-at-end rule.
func (t Table[R]) Upsert(model string, rec R) {
	records := t[model]
	for i, existing := range records {
		if existing.Key() == rec.Key() {
			records[i] = rec
			return
		}
	}
	t[model] = append(records, rec)
}

// Lookup returns the record with the given prompt ID, if present.
func (t Table[R]) Lookup(model, id string) (R, bool) {
	for _, rec := range t[model] {
		if rec.Key() == id {
			return rec, true
		}
	}
	var zero R
	return zero, false
}

// Models returns the model IDs in lexicographic order. Every scan of a
// table (bounds, scoring, winner selection, reports) iterates in this
// order, which is also the documented winner tie-break.
func (t Table[R]) Models() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the total record count across all models.
func (t Table[R]) Len() int {
	n := 0
	for _, records := range t {
		n += len(records)
	}
	return n
}

// Load reads a table from path. A missing file is not an error: it
// yields an empty table, so a stage's first run and its re-runs share
// one code path.
func Load[R Keyed](path string) (Table[R], error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Table[R]{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store %s: %w", path, err)
	}

	var t Table[R]
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing store %s: %w", path, err)
	}
	return t, nil
}

// Save rewrites the full table to path, creating parent directories as
// needed. Output is indented JSON so store files stay human-diffable.
func Save[R Keyed](path string, t Table[R]) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveSnapshot writes a single result object (not a keyed table) with
// the same overwrite semantics, for contest and QC snapshot files.
func SaveSnapshot(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
