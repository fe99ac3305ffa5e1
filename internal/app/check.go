package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/core"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/pkgmap"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/source"
)

// checkConcurrency bounds the package-manager queries run at once
const checkConcurrency = 4

// CheckResult is the health of one mapping
type CheckResult struct {
	Name   string `json:"name" yaml:"name"`
	Source string `json:"source" yaml:"source"`
	// Target is the package or repository that was checked
	Target string `json:"target" yaml:"target"`
	OK     bool   `json:"ok" yaml:"ok"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Check verifies every mapping of the running distribution: official
// packages must be available, repositories must be enabled. Results are in
// name order.
func (a *App) Check(ctx context.Context) ([]CheckResult, error) {
	names := a.mapper.Names()
	results := make([]CheckResult, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(checkConcurrency)

	for i, name := range names {
		i := i
		m := a.mapper.Map(name, "")
		g.Go(func() error {
			results[i] = a.check(ctx, m)
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *App) check(ctx context.Context, m pkgmap.Mapping) CheckResult {
	res := CheckResult{Name: m.OriginalName, Source: m.Source, Target: m.MappedName}
	ref := m.Ref()

	if err := a.c.CheckSupported(ref); err != nil {
		res.Detail = err.Error()
		return res
	}

	switch ref.Kind {
	case source.KindOfficial:
		res.OK = a.c.Packages.IsAvailableOfficially(ctx, m.MappedName)
		if !res.OK {
			res.Detail = "not found in the enabled repositories"
		}
	case source.KindAUR:
		res.OK = true
		res.Detail = "AUR packages are not verified"
	default:
		repo, _ := ref.RepoName()
		res.Target = repo
		res.OK = enablerFor(a.c, ref.Kind).IsEnabled(ctx, repo)
		if !res.OK {
			res.Detail = "repository not enabled"
		}
	}
	return res
}

func enablerFor(c *core.Context, kind source.Kind) core.RepoEnabler {
	switch kind {
	case source.KindCOPR:
		return c.Repos.COPR
	case source.KindPPA:
		return c.Repos.PPA
	default:
		return c.Repos.Flatpak
	}
}
