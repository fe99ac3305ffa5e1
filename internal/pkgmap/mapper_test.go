package pkgmap

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func testMapper() *Mapper {
	return Load(map[string]string{
		"lazygit":  "COPR:dejan/lazygit",
		"starship": "COPR:atim/starship:starship-bin",
		"paru":     "AUR:paru-bin",
		"fd":       "fd-find",
		"neovim":   "PPA:neovim-ppa/unstable:neovim",
		"obsidian": "flatpak:flathub:md.obsidian.Obsidian",
		"spotify":  "flatpak:flathub",
		"vim":      "official",
	}, log.New(io.Discard))
}

func TestMapKnownPackages(t *testing.T) {
	m := testMapper()

	tests := []struct {
		name       string
		wantMapped string
		wantSource string
	}{
		{"lazygit", "lazygit", "COPR:dejan/lazygit"},
		{"starship", "starship-bin", "COPR:atim/starship"},
		{"paru", "paru-bin", "AUR:paru-bin"},
		{"fd", "fd-find", "official"},
		{"neovim", "neovim", "PPA:neovim-ppa/unstable"},
		{"obsidian", "md.obsidian.Obsidian", "flatpak:flathub"},
		{"vim", "vim", "official"},
		// malformed flatpak entries degrade to official
		{"spotify", "spotify", "official"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Map(tt.name, "")
			if got.OriginalName != tt.name {
				t.Fatalf("OriginalName = %q, want %q", got.OriginalName, tt.name)
			}
			if got.MappedName != tt.wantMapped {
				t.Fatalf("MappedName = %q, want %q", got.MappedName, tt.wantMapped)
			}
			if got.Source != tt.wantSource {
				t.Fatalf("Source = %q, want %q", got.Source, tt.wantSource)
			}
		})
	}
}

func TestMapUnmappedDefaultsToOfficial(t *testing.T) {
	m := testMapper()

	got := m.Map("htop", "core")
	want := Mapping{OriginalName: "htop", MappedName: "htop", Source: "official", Category: "core"}
	if got != want {
		t.Fatalf("Map() = %+v, want %+v", got, want)
	}
	if m.Has("htop") {
		t.Fatal("expected htop to be unmapped")
	}
	if m.Raw("htop") != "htop" {
		t.Fatalf("Raw() = %q", m.Raw("htop"))
	}
}

func TestMapCategoryOverrideDoesNotMutate(t *testing.T) {
	m := testMapper()

	withCat := m.Map("lazygit", "dev")
	if withCat.Category != "dev" {
		t.Fatalf("Category = %q, want dev", withCat.Category)
	}

	again := m.Map("lazygit", "")
	if again.Category != "" {
		t.Fatalf("stored mapping was mutated: Category = %q", again.Category)
	}
}

func TestPredicatesAndRepoName(t *testing.T) {
	m := testMapper()

	lazygit := m.Map("lazygit", "")
	if !lazygit.IsCOPR() || lazygit.IsOfficial() || lazygit.IsAUR() {
		t.Fatalf("unexpected predicates for %+v", lazygit)
	}
	if repo, ok := lazygit.RepoName(); !ok || repo != "dejan/lazygit" {
		t.Fatalf("RepoName() = %q, %v", repo, ok)
	}

	neovim := m.Map("neovim", "")
	if !neovim.IsPPA() {
		t.Fatal("expected neovim to be a PPA mapping")
	}
	if repo, ok := neovim.RepoName(); !ok || repo != "neovim-ppa/unstable" {
		t.Fatalf("RepoName() = %q, %v", repo, ok)
	}

	obsidian := m.Map("obsidian", "")
	if repo, ok := obsidian.RepoName(); !obsidian.IsFlatpak() || !ok || repo != "flathub" {
		t.Fatalf("RepoName() = %q, %v", repo, ok)
	}

	if _, ok := m.Map("paru", "").RepoName(); ok {
		t.Fatal("AUR mappings have no repository")
	}
	if m.Map("fd", "").TrackedMappedName() != "fd-find" {
		t.Fatal("expected fd-find as tracked mapped name")
	}
	if m.Map("lazygit", "").TrackedMappedName() != "" {
		t.Fatal("expected empty tracked mapped name when names match")
	}
}

func TestBySource(t *testing.T) {
	m := testMapper()

	official := m.BySource("official")
	var names []string
	for _, mp := range official {
		names = append(names, mp.OriginalName)
	}
	want := []string{"fd", "spotify", "vim"}
	if len(names) != len(want) {
		t.Fatalf("BySource(official) = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("BySource(official) = %v, want %v", names, want)
		}
	}

	if got := m.BySource("COPR:"); len(got) != 2 {
		t.Fatalf("BySource(COPR:) returned %d mappings", len(got))
	}
	if got := m.BySource("COPR:dejan"); len(got) != 1 || got[0].OriginalName != "lazygit" {
		t.Fatalf("BySource(COPR:dejan) = %+v", got)
	}
	if got := m.BySource("flatpak:"); len(got) != 1 {
		t.Fatalf("BySource(flatpak:) returned %d mappings", len(got))
	}
}

func TestMapMalformedEntriesDegradeToOfficial(t *testing.T) {
	m := Load(map[string]string{
		"bat":  "COPR:",
		"yay":  "AUR:",
		"btop": "PPA::btop",
	}, log.New(io.Discard))

	for _, name := range []string{"bat", "yay", "btop"} {
		got := m.Map(name, "")
		if got.MappedName != name || got.Source != "official" || got.TrackedMappedName() != "" {
			t.Fatalf("Map(%q) = %+v, want an official install of %q", name, got, name)
		}
		if _, ok := got.RepoName(); ok {
			t.Fatalf("Map(%q) needs no repository", name)
		}
	}
}
