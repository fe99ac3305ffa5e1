package tracking

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps one JSON object per line. Every mutation rewrites the whole
// file through a temp file and rename.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the JSONL file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path
func (fs *FileStore) Path() string {
	return fs.path
}

// All reads every record from disk
func (fs *FileStore) All() ([]Record, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return fs.load()
}

// Get returns the latest record matching name
func (fs *FileStore) Get(name string) (Record, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	records, err := fs.load()
	if err != nil {
		return Record{}, false, err
	}
	rec, ok := lastMatch(records, name)
	return rec, ok, nil
}

// Upsert replaces or appends rec
func (fs *FileStore) Upsert(rec Record) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	records, err := fs.load()
	if err != nil {
		return err
	}
	return fs.save(upsertInto(records, rec))
}

// Remove deletes records matching name
func (fs *FileStore) Remove(name string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	records, err := fs.load()
	if err != nil {
		return false, err
	}

	kept, removed := removeFrom(records, name)
	if !removed {
		return false, nil
	}
	return true, fs.save(kept)
}

// Close is a no-op for the file backend
func (fs *FileStore) Close() error {
	return nil
}

func (fs *FileStore) load() ([]Record, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, err
	}

	records := []Record{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrStoreCorrupted, fs.path, lineNo, err)
		}
		if rec.Name == "" {
			return nil, fmt.Errorf("%w: %s line %d: record without name", ErrStoreCorrupted, fs.path, lineNo)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreCorrupted, fs.path, err)
	}

	return records, nil
}

func (fs *FileStore) save(records []Record) error {
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}

	tmpPath := fs.path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write temp store: %w", err)
	}

	if err := os.Rename(tmpPath, fs.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace store: %w", err)
	}

	return nil
}
