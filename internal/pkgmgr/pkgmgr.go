// Package pkgmgr implements the package-manager executors and repository
// enablers on top of the distribution command line tools.
package pkgmgr

import (
	"github.com/charmbracelet/log"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/core"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/distro"
)

// Backend bundles everything core.Context needs from the host system
type Backend struct {
	Packages *Native
	Flatpak  *Flatpak
	Repos    core.Repositories
}

// New builds the backend of family. Flatpak is nil when the flatpak binary is
// missing; remotes adds flatpak remotes on top of KnownRemotes.
func New(family distro.Family, run Runner, remotes map[string]string, logger *log.Logger) (*Backend, error) {
	b := &Backend{}

	switch family {
	case distro.FamilyFedora:
		b.Packages = newNative(dnf{}, run, logger)
		b.Repos.COPR = NewCOPR(run, logger)
	case distro.FamilyArch:
		helper := DetectAURHelper()
		if helper == "" {
			logger.Warn("No AUR helper found, AUR packages cannot be installed", "looked_for", AURHelpers)
		}
		b.Packages = newNative(pacman{helper: helper}, run, logger)
	case distro.FamilyDebian:
		b.Packages = newNative(apt{}, run, logger)
		b.Repos.PPA = NewPPA(run, logger)
	default:
		return nil, distro.ErrUnknownDistro
	}

	if fp := NewFlatpak(run, logger); fp != nil {
		b.Flatpak = fp
		b.Repos.Flatpak = NewRemotes(run, remotes, logger)
	}

	logger.Debug("Package backend ready", "family", family, "manager", b.Packages.Name(), "flatpak", b.Flatpak != nil)
	return b, nil
}

// Apply wires the backend into c. A missing flatpak binary leaves c.Flatpak
// as a nil interface.
func (b *Backend) Apply(c *core.Context) {
	c.Packages = b.Packages
	if b.Flatpak != nil {
		c.Flatpak = b.Flatpak
	}
	c.Repos = b.Repos
}
