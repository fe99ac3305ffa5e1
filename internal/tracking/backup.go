package tracking

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	// MaxBackups is the number of snapshots kept
	MaxBackups = 3
	// BackupTimestampFormat names snapshot files
	BackupTimestampFormat = "20060102-150405"

	backupExt = ".jsonl"
)

var (
	ErrBackupNotFound    = errors.New("backup not found")
	ErrInvalidBackupName = errors.New("invalid backup name")
)

// BackupManager snapshots the tracked records before risky operations.
// Snapshots are JSONL regardless of the store backend.
type BackupManager struct {
	backupDir string
}

// NewBackupManager keeps snapshots in dataDir/backups
func NewBackupManager(dataDir string) *BackupManager {
	return &BackupManager{
		backupDir: filepath.Join(dataDir, "backups"),
	}
}

// Dir returns the snapshot directory
func (bm *BackupManager) Dir() string {
	return bm.backupDir
}

// CreateBackup writes every record of s to a new snapshot and returns its name
func (bm *BackupManager) CreateBackup(s Store) (string, error) {
	records, err := s.All()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(bm.backupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return "", err
		}
	}

	name, err := bm.writeNew(now().Format(BackupTimestampFormat), buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if err := bm.cleanupOldBackups(); err != nil {
		return name, fmt.Errorf("failed to cleanup old backups: %w", err)
	}

	return name, nil
}

// ListBackups lists snapshot names, newest first
func (bm *BackupManager) ListBackups() ([]string, error) {
	entries, err := os.ReadDir(bm.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	backups := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), backupExt) {
			continue
		}
		backups = append(backups, strings.TrimSuffix(entry.Name(), backupExt))
	}

	sort.Slice(backups, func(i, j int) bool {
		si, ni := splitBackupName(backups[i])
		sj, nj := splitBackupName(backups[j])
		if si != sj {
			return si > sj
		}
		return ni > nj
	})

	return backups, nil
}

// LatestBackup returns the newest snapshot name
func (bm *BackupManager) LatestBackup() (string, error) {
	backups, err := bm.ListBackups()
	if err != nil {
		return "", err
	}
	if len(backups) == 0 {
		return "", ErrBackupNotFound
	}
	return backups[0], nil
}

// ReadBackup loads the records of snapshot name
func (bm *BackupManager) ReadBackup(name string) ([]Record, error) {
	if err := validateBackupName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(bm.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrBackupNotFound, name)
		}
		return nil, err
	}

	records := []Record{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("%w: backup %s: %v", ErrStoreCorrupted, name, err)
		}
		records = append(records, rec)
	}
	return records, scanner.Err()
}

// RestoreBackup replaces the contents of s with snapshot name. Only the
// tracked records change; installed packages are left alone.
func (bm *BackupManager) RestoreBackup(s Store, name string) error {
	snapshot, err := bm.ReadBackup(name)
	if err != nil {
		return err
	}

	current, err := s.All()
	if err != nil {
		return err
	}
	for _, rec := range current {
		if _, err := s.Remove(rec.Name); err != nil {
			return fmt.Errorf("failed to clear %s: %w", rec.Name, err)
		}
	}

	for _, rec := range snapshot {
		if err := s.Upsert(rec); err != nil {
			return fmt.Errorf("failed to restore %s: %w", rec.Name, err)
		}
	}
	return nil
}

func (bm *BackupManager) path(name string) string {
	return filepath.Join(bm.backupDir, name+backupExt)
}

// writeNew writes data under stamp, or stamp-N above any snapshot already
// taken in the same second
func (bm *BackupManager) writeNew(stamp string, data []byte) (string, error) {
	existing, err := bm.ListBackups()
	if err != nil {
		return "", err
	}
	next := 0
	for _, b := range existing {
		if base, n := splitBackupName(b); base == stamp && n+1 > next {
			next = n + 1
		}
	}

	for ; ; next++ {
		name := stamp
		if next > 0 {
			name = stamp + "-" + strconv.Itoa(next)
		}
		f, err := os.OpenFile(bm.path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return "", err
		}
		return name, f.Close()
	}
}

// splitBackupName separates the timestamp from the collision counter
func splitBackupName(name string) (string, int) {
	if len(name) <= len(BackupTimestampFormat)+1 || name[len(BackupTimestampFormat)] != '-' {
		return name, 0
	}
	n, err := strconv.Atoi(name[len(BackupTimestampFormat)+1:])
	if err != nil {
		return name, 0
	}
	return name[:len(BackupTimestampFormat)], n
}

// validateBackupName keeps snapshot names inside the backup directory
func validateBackupName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidBackupName, name)
	}
	return nil
}

// cleanupOldBackups removes snapshots beyond MaxBackups
func (bm *BackupManager) cleanupOldBackups() error {
	backups, err := bm.ListBackups()
	if err != nil {
		return err
	}

	if len(backups) <= MaxBackups {
		return nil
	}

	for _, backup := range backups[MaxBackups:] {
		if err := os.Remove(bm.path(backup)); err != nil {
			return err
		}
	}

	return nil
}
