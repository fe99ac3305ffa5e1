package tracking

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps records in a single table ordered by an autoincrement
// sequence, which stands in for the line order of the JSONL backend.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the database at path
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open tracking database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupted, err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS packages (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	mapped_name TEXT NOT NULL DEFAULT '',
	source TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	installed_at TEXT NOT NULL
)`)
	return err
}

const selectColumns = `SELECT name, mapped_name, source, category, installed_at FROM packages`

// All returns records in insertion order
func (s *SQLiteStore) All() ([]Record, error) {
	rows, err := s.db.Query(selectColumns + ` ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Name, &rec.MappedName, &rec.Source, &rec.Category, &rec.InstalledAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreCorrupted, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get returns the latest record matching name
func (s *SQLiteStore) Get(name string) (Record, bool, error) {
	var rec Record
	err := s.db.QueryRow(selectColumns+` WHERE name = ? OR (mapped_name != '' AND mapped_name = ?) ORDER BY seq DESC LIMIT 1`, name, name).
		Scan(&rec.Name, &rec.MappedName, &rec.Source, &rec.Category, &rec.InstalledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

// Upsert overwrites every column of the first matching row, keeping its
// position, and deletes any later matching rows. Without a match it inserts
// a new row.
func (s *SQLiteStore) Upsert(rec Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var seq int64
	err = tx.QueryRow(`SELECT seq FROM packages WHERE name = ? OR (mapped_name != '' AND mapped_name = ?) ORDER BY seq LIMIT 1`, rec.Name, rec.Name).Scan(&seq)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.Exec(`INSERT INTO packages (name, mapped_name, source, category, installed_at) VALUES (?, ?, ?, ?, ?)`,
			rec.Name, rec.MappedName, rec.Source, rec.Category, rec.InstalledAt)
	case err == nil:
		_, err = tx.Exec(`UPDATE packages SET name = ?, mapped_name = ?, source = ?, category = ?, installed_at = ? WHERE seq = ?`,
			rec.Name, rec.MappedName, rec.Source, rec.Category, rec.InstalledAt, seq)
		if err == nil {
			_, err = tx.Exec(`DELETE FROM packages WHERE (name = ? OR (mapped_name != '' AND mapped_name = ?)) AND seq != ?`,
				rec.Name, rec.Name, seq)
		}
	}
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Remove deletes every row matching name
func (s *SQLiteStore) Remove(name string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM packages WHERE name = ? OR (mapped_name != '' AND mapped_name = ?)`, name, name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
