// Package tracking persists the set of packages installed through aps.
//
// At most one live record exists per logical package. A record is addressed
// by either its generic name or its distro-specific installed name.
package tracking

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	ErrStoreCorrupted = errors.New("tracking store corrupted")
	ErrUnknownBackend = errors.New("unknown tracking backend")
)

// Backend names accepted by Open
const (
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
)

// Store is the tracked-state repository
type Store interface {
	// All returns every record in insertion order
	All() ([]Record, error)
	// Get returns the most recently written record matching name
	Get(name string) (Record, bool, error)
	// Upsert replaces the first record matching rec.Name in place, dropping
	// any later duplicates, or appends it
	Upsert(rec Record) error
	// Remove deletes every record matching name and reports whether any existed
	Remove(name string) (bool, error)
	// Close releases backend resources
	Close() error
}

// Open opens the store for backend inside dataDir
func Open(backend, dataDir string) (Store, error) {
	switch backend {
	case "", BackendJSONL:
		return NewFileStore(filepath.Join(dataDir, "packages.jsonl")), nil
	case BackendSQLite:
		return OpenSQLiteStore(filepath.Join(dataDir, "packages.db"))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}

// upsertInto applies upsert semantics to an in-memory record list. The first
// match takes rec; later legacy duplicates are dropped so that Get and All
// agree afterwards.
func upsertInto(records []Record, rec Record) []Record {
	out := records[:0]
	replaced := false
	for _, existing := range records {
		if !existing.Matches(rec.Name) {
			out = append(out, existing)
			continue
		}
		if !replaced {
			out = append(out, rec)
			replaced = true
		}
	}
	if !replaced {
		out = append(out, rec)
	}
	return out
}

// removeFrom filters out records matching name
func removeFrom(records []Record, name string) ([]Record, bool) {
	kept := records[:0]
	removed := false
	for _, r := range records {
		if r.Matches(name) {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	return kept, removed
}

// lastMatch returns the last record matching name
func lastMatch(records []Record, name string) (Record, bool) {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Matches(name) {
			return records[i], true
		}
	}
	return Record{}, false
}
