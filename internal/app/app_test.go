package app

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/golang/mock/gomock"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/core"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/core/mocks"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/distro"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/migration"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/tracking"
)

type fakeCatalog map[string][]string

func (f fakeCatalog) Category(name string) ([]string, bool) {
	names, ok := f[name]
	return names, ok
}

func (f fakeCatalog) CategoryOf(name string) string {
	for category, names := range f {
		for _, n := range names {
			if n == name {
				return category
			}
		}
	}
	return ""
}

var testTable = map[string]string{
	"lazygit":  "COPR:dejan/lazygit",
	"fd":       "fd-find",
	"obsidian": "flatpak:flathub:md.obsidian.Obsidian",
	"starship": "COPR:atim/starship:starship-bin",
}

var testCatalog = fakeCatalog{
	"core": {"curl", "fd"},
	"dev":  {"lazygit"},
}

type testEnv struct {
	app     *App
	pm      *mocks.MockExecutor
	flatpak *mocks.MockFlatpakExecutor
	copr    *mocks.MockRepoEnabler
	remotes *mocks.MockRepoEnabler
	store   tracking.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithTable(t, testTable)
}

func newTestEnvWithTable(t *testing.T, table map[string]string) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	cfg := mocks.NewMockConfigSource(ctrl)
	cfg.EXPECT().HasSection("pkgmap.fedora").Return(true).AnyTimes()
	cfg.EXPECT().MappingTable("pkgmap.fedora").Return(table).AnyTimes()

	env := &testEnv{
		pm:      mocks.NewMockExecutor(ctrl),
		flatpak: mocks.NewMockFlatpakExecutor(ctrl),
		copr:    mocks.NewMockRepoEnabler(ctrl),
		remotes: mocks.NewMockRepoEnabler(ctrl),
		store:   tracking.NewFileStore(filepath.Join(t.TempDir(), "packages.jsonl")),
	}

	c := &core.Context{
		Distro:   distro.Info{ID: "fedora", Family: distro.FamilyFedora},
		Config:   cfg,
		Store:    env.store,
		Packages: env.pm,
		Flatpak:  env.flatpak,
		Repos:    core.Repositories{COPR: env.copr, Flatpak: env.remotes},
		Log:      log.New(io.Discard),
	}
	env.app = New(c, testCatalog)
	return env
}

func TestResolvePackage(t *testing.T) {
	env := newTestEnv(t)

	m := env.app.ResolvePackage("starship", "shell")
	if m.MappedName != "starship-bin" || m.Source != "COPR:atim/starship" || m.Category != "shell" {
		t.Fatalf("ResolvePackage() = %+v", m)
	}

	m = env.app.ResolvePackage("htop", "")
	if m.MappedName != "htop" || m.Source != "official" {
		t.Fatalf("ResolvePackage() = %+v", m)
	}
}

func TestInstallTracksPackages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.copr.EXPECT().IsEnabled(gomock.Any(), "dejan/lazygit").Return(false)
	env.copr.EXPECT().Enable(gomock.Any(), "dejan/lazygit").Return(nil)
	env.remotes.EXPECT().IsEnabled(gomock.Any(), "flathub").Return(true)
	env.pm.EXPECT().Install(gomock.Any(), []string{"lazygit", "curl", "fd-find"}, true).Return(nil)
	env.flatpak.EXPECT().Install(gomock.Any(), "flathub", []string{"md.obsidian.Obsidian"}, true).Return(nil)

	result, err := env.app.Install(ctx, []string{"lazygit", "@core", "obsidian", "lazygit"}, "", true)
	if err != nil {
		t.Fatalf("Install() returned error: %v", err)
	}

	want := []string{"lazygit", "curl", "fd", "obsidian"}
	if !reflect.DeepEqual(result.Succeeded, want) || len(result.Failed) != 0 {
		t.Fatalf("Install() = %+v", result)
	}

	records, err := env.store.All()
	if err != nil {
		t.Fatal(err)
	}
	got := make(map[string]tracking.Record)
	for _, r := range records {
		got[r.Name] = r
	}

	if r := got["lazygit"]; r.Source != "COPR:dejan/lazygit" || r.Category != "dev" || r.MappedName != "" {
		t.Fatalf("lazygit record = %+v", r)
	}
	if r := got["fd"]; r.Source != "official" || r.Category != "core" || r.MappedName != "fd-find" {
		t.Fatalf("fd record = %+v", r)
	}
	if r := got["obsidian"]; r.Source != "flatpak:flathub" || r.MappedName != "md.obsidian.Obsidian" {
		t.Fatalf("obsidian record = %+v", r)
	}

	// Freshly installed packages are in sync with the configuration
	changes, err := env.app.DetectDrift()
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 0 {
		t.Fatalf("expected no drift after install, got %+v", changes)
	}
}

func TestInstallMalformedMappingStaysInSync(t *testing.T) {
	for _, value := range []string{"flatpak:flathub", "COPR:", "AUR:", "PPA:"} {
		t.Run(value, func(t *testing.T) {
			env := newTestEnvWithTable(t, map[string]string{"foo": value})

			// The key itself is installed from the official repositories
			env.pm.EXPECT().Install(gomock.Any(), []string{"foo"}, true).Return(nil)

			result, err := env.app.Install(context.Background(), []string{"foo"}, "", true)
			if err != nil {
				t.Fatalf("Install() returned error: %v", err)
			}
			if !reflect.DeepEqual(result.Succeeded, []string{"foo"}) {
				t.Fatalf("Install() = %+v", result)
			}

			rec, ok, err := env.store.Get("foo")
			if err != nil || !ok {
				t.Fatalf("Get() = %+v, %v, %v", rec, ok, err)
			}
			if rec.Source != "official" || rec.MappedName != "" {
				t.Fatalf("foo record = %+v", rec)
			}

			changes, err := env.app.DetectDrift()
			if err != nil {
				t.Fatal(err)
			}
			if len(changes) != 0 {
				t.Fatalf("expected no drift after install, got %+v", changes)
			}

			info, err := env.app.Info("foo")
			if err != nil {
				t.Fatal(err)
			}
			if info.PendingSource != "" {
				t.Fatalf("Info().PendingSource = %q", info.PendingSource)
			}
		})
	}
}

func TestInstallFailureIsNotTracked(t *testing.T) {
	env := newTestEnv(t)

	env.pm.EXPECT().Install(gomock.Any(), []string{"htop"}, false).Return(errors.New("no match for htop"))

	result, err := env.app.Install(context.Background(), []string{"htop"}, "", false)
	if err != nil {
		t.Fatalf("Install() returned error: %v", err)
	}
	if len(result.Failed) != 1 || result.Failed[0].Message != "no match for htop" {
		t.Fatalf("Install() = %+v", result)
	}
	if _, ok, _ := env.store.Get("htop"); ok {
		t.Fatal("failed install must not be tracked")
	}
}

func TestInstallUnknownCategory(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.app.Install(context.Background(), []string{"@games"}, "", false); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	env := newTestEnv(t)
	for _, r := range []tracking.Record{
		{Name: "fd", MappedName: "fd-find", Source: "official", InstalledAt: "2024-01-01T10:00:00"},
		{Name: "obsidian", MappedName: "md.obsidian.Obsidian", Source: "flatpak:flathub", InstalledAt: "2024-01-01T10:00:00"},
	} {
		if err := env.store.Upsert(r); err != nil {
			t.Fatal(err)
		}
	}

	env.pm.EXPECT().Remove(gomock.Any(), []string{"fd-find", "starship-bin"}, true).Return(nil)
	env.flatpak.EXPECT().Remove(gomock.Any(), []string{"md.obsidian.Obsidian"}, true).Return(nil)

	result, err := env.app.Remove(context.Background(), []string{"fd-find", "starship", "obsidian"}, true)
	if err != nil {
		t.Fatalf("Remove() returned error: %v", err)
	}
	want := []string{"fd", "starship", "obsidian"}
	if !reflect.DeepEqual(result.Succeeded, want) {
		t.Fatalf("Succeeded = %v, want %v", result.Succeeded, want)
	}

	records, _ := env.store.All()
	if len(records) != 0 {
		t.Fatalf("expected empty store, got %+v", records)
	}
}

func TestSyncRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	old := tracking.Record{Name: "lazygit", Source: "COPR:atim/lazygit", InstalledAt: "2024-01-01T10:00:00"}
	if err := env.store.Upsert(old); err != nil {
		t.Fatal(err)
	}

	changes, err := env.app.DetectDrift()
	if err != nil {
		t.Fatal(err)
	}
	want := []migration.Change{{Record: old, OldSource: "COPR:atim/lazygit", NewSource: "COPR:dejan/lazygit"}}
	if !reflect.DeepEqual(changes, want) {
		t.Fatalf("DetectDrift() = %+v", changes)
	}

	info, err := env.app.Info("lazygit")
	if err != nil {
		t.Fatal(err)
	}
	if info.PendingSource != "COPR:dejan/lazygit" || info.Tracked == nil {
		t.Fatalf("Info() = %+v", info)
	}

	env.copr.EXPECT().IsEnabled(gomock.Any(), "dejan/lazygit").Return(true)
	env.pm.EXPECT().Remove(gomock.Any(), []string{"lazygit"}, true).Return(nil)
	env.pm.EXPECT().Install(gomock.Any(), []string{"lazygit"}, true).Return(nil)

	outcome, err := env.app.Migrate(ctx, changes, migration.Options{AutoConfirm: true})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(outcome.Succeeded, []string{"lazygit"}) {
		t.Fatalf("Migrate() = %+v", outcome)
	}

	changes, _ = env.app.DetectDrift()
	if len(changes) != 0 {
		t.Fatalf("expected no drift, got %+v", changes)
	}
}

func TestInfoUnknown(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.app.Info("nonexistent"); !errors.Is(err, ErrNotTracked) {
		t.Fatalf("expected ErrNotTracked, got %v", err)
	}

	info, err := env.app.Info("fd")
	if err != nil {
		t.Fatalf("mapped packages have info: %v", err)
	}
	if info.Descriptor != "fd-find" || info.Mapping.Category != "core" || info.Tracked != nil {
		t.Fatalf("Info(fd) = %+v", info)
	}
}

func TestList(t *testing.T) {
	env := newTestEnv(t)
	for _, r := range []tracking.Record{
		{Name: "fd", Source: "official", InstalledAt: "2024-01-01T10:00:00"},
		{Name: "lazygit", Source: "COPR:dejan/lazygit", InstalledAt: "2024-01-01T10:00:00"},
		{Name: "obsidian", Source: "flatpak:flathub", InstalledAt: "2024-01-01T10:00:00"},
	} {
		if err := env.store.Upsert(r); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		prefix string
		want   []string
	}{
		{"", []string{"fd", "lazygit", "obsidian"}},
		{"official", []string{"fd"}},
		{"COPR:", []string{"lazygit"}},
		{"flatpak:", []string{"obsidian"}},
		{"AUR:", nil},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			records, err := env.app.List(tt.prefix)
			if err != nil {
				t.Fatal(err)
			}
			var names []string
			for _, r := range records {
				names = append(names, r.Name)
			}
			if !reflect.DeepEqual(names, tt.want) {
				t.Fatalf("List(%q) = %v, want %v", tt.prefix, names, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	env := newTestEnv(t)

	env.pm.EXPECT().IsAvailableOfficially(gomock.Any(), "fd-find").Return(true)
	env.copr.EXPECT().IsEnabled(gomock.Any(), "dejan/lazygit").Return(true)
	env.copr.EXPECT().IsEnabled(gomock.Any(), "atim/starship").Return(false)
	env.remotes.EXPECT().IsEnabled(gomock.Any(), "flathub").Return(true)

	results, err := env.app.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() returned error: %v", err)
	}

	want := []CheckResult{
		{Name: "fd", Source: "official", Target: "fd-find", OK: true},
		{Name: "lazygit", Source: "COPR:dejan/lazygit", Target: "dejan/lazygit", OK: true},
		{Name: "obsidian", Source: "flatpak:flathub", Target: "flathub", OK: true},
		{Name: "starship", Source: "COPR:atim/starship", Target: "atim/starship", Detail: "repository not enabled"},
	}
	if !reflect.DeepEqual(results, want) {
		t.Fatalf("Check() = %+v, want %+v", results, want)
	}
}

func TestSuggest(t *testing.T) {
	env := newTestEnv(t)

	got := env.app.Suggest("lzgit")
	if len(got) == 0 || got[0] != "lazygit" {
		t.Fatalf("Suggest(lzgit) = %v", got)
	}
	if got := env.app.Suggest("qqqqq"); len(got) != 0 {
		t.Fatalf("Suggest(qqqqq) = %v", got)
	}
}

func TestSnapshotAndRestore(t *testing.T) {
	env := newTestEnv(t)

	if name, err := env.app.Snapshot(); err != nil || name != "" {
		t.Fatalf("Snapshot() without backups = %q, %v", name, err)
	}
	if _, err := env.app.Restore(""); !errors.Is(err, ErrNoBackups) {
		t.Fatalf("Restore() error = %v, want ErrNoBackups", err)
	}

	env.app.SetBackups(tracking.NewBackupManager(t.TempDir()))
	if _, err := env.app.Restore(""); !errors.Is(err, tracking.ErrBackupNotFound) {
		t.Fatalf("Restore() error = %v, want ErrBackupNotFound", err)
	}

	if err := env.store.Upsert(tracking.Record{Name: "paru", Source: "AUR:paru", InstalledAt: "t"}); err != nil {
		t.Fatal(err)
	}
	name, err := env.app.Snapshot()
	if err != nil || name == "" {
		t.Fatalf("Snapshot() = %q, %v", name, err)
	}
	if err := env.store.Upsert(tracking.Record{Name: "paru", Source: "official", InstalledAt: "t2"}); err != nil {
		t.Fatal(err)
	}

	restored, err := env.app.Restore("")
	if err != nil || restored != name {
		t.Fatalf("Restore() = %q, %v; want %q", restored, err, name)
	}
	rec, ok, err := env.store.Get("paru")
	if err != nil || !ok || rec.Source != "AUR:paru" {
		t.Fatalf("after restore Get(paru) = %+v, %v, %v", rec, ok, err)
	}

	backups, err := env.app.Backups()
	if err != nil || len(backups) != 1 {
		t.Fatalf("Backups() = %v, %v", backups, err)
	}

	if _, err := env.app.Restore("../../x"); !errors.Is(err, tracking.ErrInvalidBackupName) {
		t.Fatalf("Restore(../../x) error = %v, want ErrInvalidBackupName", err)
	}
}
