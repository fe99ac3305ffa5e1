// Package app is the entry point the CLI calls into. It ties the mapper,
// the drift detector and the migration engine to one core.Context.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/core"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/migration"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/pkgmap"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/source"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/tracking"
)

var (
	ErrNotTracked      = errors.New("package is not tracked")
	ErrUnknownCategory = errors.New("unknown package category")
)

// Catalog lists the packages of each packages.ini category
type Catalog interface {
	Category(name string) ([]string, bool)
	CategoryOf(name string) string
}

// App exposes the package operations of one distribution
type App struct {
	c        *core.Context
	catalog  Catalog
	mapper   *pkgmap.Mapper
	detector *migration.Detector
	engine   *migration.Engine
	backups  *tracking.BackupManager
}

// New creates an App over c. catalog may be nil when no categories exist.
func New(c *core.Context, catalog Catalog) *App {
	return &App{
		c:        c,
		catalog:  catalog,
		mapper:   pkgmap.New(c),
		detector: migration.NewDetector(c),
		engine:   migration.NewEngine(c),
	}
}

// Context returns the runtime context
func (a *App) Context() *core.Context {
	return a.c
}

// Close releases the tracking store
func (a *App) Close() error {
	return a.c.Store.Close()
}

// DetectDrift lists tracked packages whose configured source changed
func (a *App) DetectDrift() ([]migration.Change, error) {
	return a.detector.Detect()
}

// Migrate moves each change to its configured source
func (a *App) Migrate(ctx context.Context, changes []migration.Change, opts migration.Options) (migration.Outcome, error) {
	return a.engine.Migrate(ctx, changes, opts)
}

// ResolvePackage maps a generic name to its installation plan
func (a *App) ResolvePackage(name string, category string) pkgmap.Mapping {
	return a.mapper.Map(name, category)
}

// PackageInfo is everything known about one package
type PackageInfo struct {
	Mapping    pkgmap.Mapping   `json:"mapping" yaml:"mapping"`
	Descriptor string           `json:"descriptor" yaml:"descriptor"`
	Mapped     bool             `json:"mapped" yaml:"mapped"`
	Tracked    *tracking.Record `json:"tracked,omitempty" yaml:"tracked,omitempty"`
	// PendingSource is set when the tracked source differs from the
	// configured one
	PendingSource string `json:"pending_source,omitempty" yaml:"pending_source,omitempty"`
}

// Info describes name. It fails with ErrNotTracked only when the package is
// neither tracked nor mapped.
func (a *App) Info(name string) (*PackageInfo, error) {
	category := ""
	if a.catalog != nil {
		category = a.catalog.CategoryOf(name)
	}

	info := &PackageInfo{
		Mapping:    a.mapper.Map(name, category),
		Descriptor: a.mapper.Raw(name),
		Mapped:     a.mapper.Has(name),
	}

	rec, ok, err := a.c.Store.Get(name)
	if err != nil {
		return nil, err
	}
	if ok {
		info.Tracked = &rec
		if !strings.HasPrefix(rec.Source, source.PrefixFlatpak) {
			if configured := source.ResolveIdentity(a.mapper.Raw(rec.Name)); configured != rec.Source {
				info.PendingSource = configured
			}
		}
	}

	if !ok && !info.Mapped {
		return info, fmt.Errorf("%w: %s", ErrNotTracked, name)
	}
	return info, nil
}

// List returns tracked records whose source matches prefix. An empty prefix
// returns everything; "official" matches exactly.
func (a *App) List(prefix string) ([]tracking.Record, error) {
	records, err := a.c.Store.All()
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		return records, nil
	}

	var filtered []tracking.Record
	for _, r := range records {
		if prefix == source.Official && r.Source != source.Official {
			continue
		}
		if !strings.HasPrefix(r.Source, prefix) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered, nil
}

// Mappings returns the mapped packages whose source matches prefix
func (a *App) Mappings(prefix string) []pkgmap.Mapping {
	return a.mapper.BySource(prefix)
}
