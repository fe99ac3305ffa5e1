package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/migration"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/pkgmap"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/source"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/tracking"
)

// Result summarises an install or remove batch
type Result struct {
	Succeeded []string            `json:"succeeded" yaml:"succeeded"`
	Failed    []migration.Failure `json:"failed" yaml:"failed"`
}

func newResult() *Result {
	return &Result{Succeeded: []string{}, Failed: []migration.Failure{}}
}

func (r *Result) fail(name string, err error) {
	r.Failed = append(r.Failed, migration.Failure{Name: name, Message: err.Error()})
}

type request struct {
	name     string
	category string
}

// expand resolves "@category" arguments into their packages. category, when
// set, overrides the category of every package.
func (a *App) expand(args []string, category string) ([]request, error) {
	seen := make(map[string]bool)
	var reqs []request

	add := func(name, cat string) {
		if seen[name] {
			return
		}
		seen[name] = true
		if category != "" {
			cat = category
		}
		reqs = append(reqs, request{name: name, category: cat})
	}

	for _, arg := range args {
		if group, ok := strings.CutPrefix(arg, "@"); ok {
			if a.catalog == nil {
				return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, group)
			}
			names, ok := a.catalog.Category(group)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, group)
			}
			for _, name := range names {
				add(name, group)
			}
			continue
		}

		cat := ""
		if a.catalog != nil {
			cat = a.catalog.CategoryOf(arg)
		}
		add(arg, cat)
	}
	return reqs, nil
}

// Install resolves and installs args, then tracks every installed package.
// Arguments starting with "@" expand to a packages.ini category.
func (a *App) Install(ctx context.Context, args []string, category string, autoConfirm bool) (*Result, error) {
	// Nothing is installed when the store cannot record it
	if _, err := a.c.Store.All(); err != nil {
		return nil, err
	}

	reqs, err := a.expand(args, category)
	if err != nil {
		return nil, err
	}

	logger := a.c.Logger()
	result := newResult()

	var native []pkgmap.Mapping
	flatpaks := make(map[string][]pkgmap.Mapping)
	var remotes []string

	for _, req := range reqs {
		m := a.mapper.Map(req.name, req.category)

		if err := a.c.EnsureRepository(ctx, m.Ref()); err != nil {
			logger.Error("Cannot prepare source", "package", m.OriginalName, "source", m.Source, "error", err)
			result.fail(m.OriginalName, err)
			continue
		}

		if m.IsFlatpak() {
			remote := m.Ref().Coordinate
			if _, ok := flatpaks[remote]; !ok {
				remotes = append(remotes, remote)
			}
			flatpaks[remote] = append(flatpaks[remote], m)
			continue
		}
		native = append(native, m)
	}

	a.installBatch(native, result, func(names []string) error {
		return a.c.Packages.Install(ctx, names, autoConfirm)
	})
	for _, remote := range remotes {
		a.installBatch(flatpaks[remote], result, func(names []string) error {
			return a.c.Flatpak.Install(ctx, remote, names, autoConfirm)
		})
	}

	logger.Info("Install finished", "installed", len(result.Succeeded), "failed", len(result.Failed))
	return result, nil
}

func (a *App) installBatch(mappings []pkgmap.Mapping, result *Result, install func(names []string) error) {
	if len(mappings) == 0 {
		return
	}

	names := make([]string, 0, len(mappings))
	for _, m := range mappings {
		names = append(names, m.MappedName)
	}

	if err := install(names); err != nil {
		a.c.Logger().Error("Install failed", "packages", names, "error", err)
		for _, m := range mappings {
			result.fail(m.OriginalName, err)
		}
		return
	}

	for _, m := range mappings {
		rec := tracking.NewRecord(m.OriginalName, m.Source, m.Category, m.TrackedMappedName())
		if err := a.c.Store.Upsert(rec); err != nil {
			result.fail(m.OriginalName, fmt.Errorf("installed but not tracked: %w", err))
			continue
		}
		result.Succeeded = append(result.Succeeded, m.OriginalName)
	}
}

// removal is one package to remove and how it is installed
type removal struct {
	name      string
	installed string
	flatpak   bool
}

// Remove uninstalls names and drops their tracked records. Tracked records
// decide the installed name; untracked names go through the mapper.
func (a *App) Remove(ctx context.Context, names []string, autoConfirm bool) (*Result, error) {
	result := newResult()

	var native, flatpak []removal
	for _, name := range names {
		rec, ok, err := a.c.Store.Get(name)
		if err != nil {
			return nil, err
		}

		r := removal{name: name}
		if ok {
			r.name = rec.Name
			r.installed = rec.InstalledName()
			r.flatpak = strings.HasPrefix(rec.Source, source.PrefixFlatpak)
		} else {
			m := a.mapper.Map(name, "")
			r.installed = m.MappedName
			r.flatpak = m.IsFlatpak()
		}

		if r.flatpak {
			if a.c.Flatpak == nil {
				result.fail(r.name, fmt.Errorf("flatpak is not installed"))
				continue
			}
			flatpak = append(flatpak, r)
			continue
		}
		native = append(native, r)
	}

	a.removeBatch(native, result, func(names []string) error {
		return a.c.Packages.Remove(ctx, names, autoConfirm)
	})
	if len(flatpak) > 0 {
		a.removeBatch(flatpak, result, func(names []string) error {
			return a.c.Flatpak.Remove(ctx, names, autoConfirm)
		})
	}

	return result, nil
}

func (a *App) removeBatch(removals []removal, result *Result, remove func(names []string) error) {
	if len(removals) == 0 {
		return
	}

	names := make([]string, 0, len(removals))
	for _, r := range removals {
		names = append(names, r.installed)
	}

	if err := remove(names); err != nil {
		a.c.Logger().Error("Remove failed", "packages", names, "error", err)
		for _, r := range removals {
			result.fail(r.name, err)
		}
		return
	}

	for _, r := range removals {
		if _, err := a.c.Store.Remove(r.name); err != nil {
			result.fail(r.name, fmt.Errorf("removed but still tracked: %w", err))
			continue
		}
		result.Succeeded = append(result.Succeeded, r.name)
	}
}
