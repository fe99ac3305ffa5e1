// Package core holds the runtime context shared by the mapper, the drift
// detector and the migration engine, and the interfaces they consume.
package core

//go:generate mockgen -source=core.go -destination=mocks/mock_core.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/distro"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/source"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/tracking"
)

var ErrUnsupportedSource = errors.New("source not supported on this distribution")

// Executor drives the native package manager
type Executor interface {
	Install(ctx context.Context, names []string, autoConfirm bool) error
	Remove(ctx context.Context, names []string, autoConfirm bool) error
	IsAvailableOfficially(ctx context.Context, name string) bool
}

// FlatpakExecutor installs and removes flatpak applications
type FlatpakExecutor interface {
	Install(ctx context.Context, remote string, names []string, autoConfirm bool) error
	Remove(ctx context.Context, names []string, autoConfirm bool) error
}

// RepoEnabler enables a third-party repository identified by a COPR/PPA
// coordinate or a flatpak remote name. Enable must be idempotent.
type RepoEnabler interface {
	IsEnabled(ctx context.Context, ref string) bool
	Enable(ctx context.Context, ref string) error
}

// ConfigSource exposes parsed configuration sections
type ConfigSource interface {
	MappingTable(section string) map[string]string
	HasSection(section string) bool
}

// Repositories groups the enablers available on the running distribution.
// A nil field means the source kind is not supported there.
type Repositories struct {
	COPR    RepoEnabler
	PPA     RepoEnabler
	Flatpak RepoEnabler
}

// Context is passed explicitly to every component instead of being
// re-derived from the host at each call site
type Context struct {
	Distro   distro.Info
	Config   ConfigSource
	Store    tracking.Store
	Packages Executor
	Flatpak  FlatpakExecutor
	Repos    Repositories
	Log      *log.Logger
}

// MappingSection returns the pkgmap section for the running distribution
func (c *Context) MappingSection() string {
	return "pkgmap." + string(c.Distro.Family)
}

// MappingTable returns the distro-specific mapping table, empty when the
// section does not exist
func (c *Context) MappingTable() map[string]string {
	section := c.MappingSection()
	if c.Config == nil || !c.Config.HasSection(section) {
		return map[string]string{}
	}
	return c.Config.MappingTable(section)
}

// Logger returns the configured logger or the charmbracelet default
func (c *Context) Logger() *log.Logger {
	if c.Log != nil {
		return c.Log
	}
	return log.Default()
}

// CheckSupported reports whether ref can be installed on the running
// distribution at all
func (c *Context) CheckSupported(ref source.Ref) error {
	switch ref.Kind {
	case source.KindAUR:
		if c.Distro.Family != distro.FamilyArch {
			return fmt.Errorf("%w: %s on %s", ErrUnsupportedSource, ref.Identity(), c.Distro.Family)
		}
	case source.KindCOPR:
		if c.Repos.COPR == nil {
			return fmt.Errorf("%w: %s on %s", ErrUnsupportedSource, ref.Identity(), c.Distro.Family)
		}
	case source.KindPPA:
		if c.Repos.PPA == nil {
			return fmt.Errorf("%w: %s on %s", ErrUnsupportedSource, ref.Identity(), c.Distro.Family)
		}
	case source.KindFlatpak:
		if c.Flatpak == nil || c.Repos.Flatpak == nil {
			return fmt.Errorf("%w: %s (flatpak not available)", ErrUnsupportedSource, ref.Identity())
		}
	}
	return nil
}

// EnsureRepository enables the repository ref needs, if any
func (c *Context) EnsureRepository(ctx context.Context, ref source.Ref) error {
	if err := c.CheckSupported(ref); err != nil {
		return err
	}

	name, ok := ref.RepoName()
	if !ok {
		return nil
	}

	var enabler RepoEnabler
	switch ref.Kind {
	case source.KindCOPR:
		enabler = c.Repos.COPR
	case source.KindPPA:
		enabler = c.Repos.PPA
	case source.KindFlatpak:
		enabler = c.Repos.Flatpak
	}

	if enabler.IsEnabled(ctx, name) {
		c.Logger().Debug("Repository already enabled", "repo", ref.Identity())
		return nil
	}

	c.Logger().Info("Enabling repository", "repo", ref.Identity())
	if err := enabler.Enable(ctx, name); err != nil {
		return fmt.Errorf("failed to enable %s: %w", ref.Identity(), err)
	}
	return nil
}
