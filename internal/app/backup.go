package app

import (
	"errors"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/tracking"
)

var ErrNoBackups = errors.New("backups are not configured")

// SetBackups enables snapshots of the tracked state
func (a *App) SetBackups(bm *tracking.BackupManager) {
	a.backups = bm
}

// Snapshot saves the tracked state and returns the snapshot name. It does
// nothing when backups are not configured.
func (a *App) Snapshot() (string, error) {
	if a.backups == nil {
		return "", nil
	}
	name, err := a.backups.CreateBackup(a.c.Store)
	if err != nil {
		return name, err
	}
	a.c.Logger().Info("Saved tracked state", "backup", name)
	return name, nil
}

// Backups lists snapshot names, newest first
func (a *App) Backups() ([]string, error) {
	if a.backups == nil {
		return nil, ErrNoBackups
	}
	return a.backups.ListBackups()
}

// Restore replaces the tracked state with snapshot name, or the newest
// snapshot when name is empty. It returns the restored snapshot name.
func (a *App) Restore(name string) (string, error) {
	if a.backups == nil {
		return "", ErrNoBackups
	}
	if name == "" {
		latest, err := a.backups.LatestBackup()
		if err != nil {
			return "", err
		}
		name = latest
	}
	if err := a.backups.RestoreBackup(a.c.Store, name); err != nil {
		return "", err
	}
	a.c.Logger().Info("Restored tracked state", "backup", name)
	return name, nil
}
