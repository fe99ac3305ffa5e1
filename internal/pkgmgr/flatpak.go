package pkgmgr

import (
	"context"
	"os/exec"

	"github.com/charmbracelet/log"
)

// Flatpak installs applications system-wide from a named remote
type Flatpak struct {
	run Runner
	log *log.Logger
}

// NewFlatpak returns nil when the flatpak binary is not installed
func NewFlatpak(run Runner, logger *log.Logger) *Flatpak {
	if _, err := exec.LookPath("flatpak"); err != nil {
		logger.Debug("flatpak not found on PATH")
		return nil
	}
	return &Flatpak{run: run, log: logger}
}

// Install installs names from remote
func (f *Flatpak) Install(ctx context.Context, remote string, names []string, autoConfirm bool) error {
	if len(names) == 0 {
		return ErrNoPackages
	}
	args := []string{"install"}
	if autoConfirm {
		args = append(args, "-y", "--noninteractive")
	}
	args = append(args, remote)
	args = append(args, names...)

	f.log.Debug("Installing flatpaks", "remote", remote, "apps", names)
	return f.run.Run(ctx, "flatpak", args...)
}

// Remove uninstalls names
func (f *Flatpak) Remove(ctx context.Context, names []string, autoConfirm bool) error {
	if len(names) == 0 {
		return ErrNoPackages
	}
	args := []string{"uninstall"}
	if autoConfirm {
		args = append(args, "-y", "--noninteractive")
	}
	args = append(args, names...)

	f.log.Debug("Removing flatpaks", "apps", names)
	return f.run.Run(ctx, "flatpak", args...)
}
