package pkgmgr

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// fakeRunner records every command and answers Output from a canned table
type fakeRunner struct {
	calls   [][]string
	outputs map[string]string
	fail    map[string]error
}

func (f *fakeRunner) record(name string, args []string) string {
	argv := append([]string{name}, args...)
	f.calls = append(f.calls, argv)
	return strings.Join(argv, " ")
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	key := f.record(name, args)
	return f.fail[key]
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	key := f.record(name, args)
	if err := f.fail[key]; err != nil {
		return nil, err
	}
	return []byte(f.outputs[key]), nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestNativeCommands(t *testing.T) {
	tests := []struct {
		name        string
		sys         system
		sudo        bool
		yes         bool
		wantInstall []string
		wantRemove  []string
	}{
		{
			name:        "dnf with sudo",
			sys:         dnf{},
			sudo:        true,
			yes:         true,
			wantInstall: []string{"sudo", "dnf", "install", "-y", "lazygit", "fd-find"},
			wantRemove:  []string{"sudo", "dnf", "remove", "-y", "lazygit", "fd-find"},
		},
		{
			name:        "dnf as root without confirm",
			sys:         dnf{},
			wantInstall: []string{"dnf", "install", "lazygit", "fd-find"},
			wantRemove:  []string{"dnf", "remove", "lazygit", "fd-find"},
		},
		{
			name:        "pacman without helper",
			sys:         pacman{},
			sudo:        true,
			yes:         true,
			wantInstall: []string{"sudo", "pacman", "-S", "--needed", "--noconfirm", "lazygit", "fd-find"},
			wantRemove:  []string{"sudo", "pacman", "-Rns", "--noconfirm", "lazygit", "fd-find"},
		},
		{
			name:        "paru never uses sudo",
			sys:         pacman{helper: "paru"},
			sudo:        true,
			wantInstall: []string{"paru", "-S", "--needed", "lazygit", "fd-find"},
			wantRemove:  []string{"sudo", "pacman", "-Rns", "lazygit", "fd-find"},
		},
		{
			name:        "apt",
			sys:         apt{},
			sudo:        true,
			yes:         true,
			wantInstall: []string{"sudo", "apt-get", "install", "-y", "lazygit", "fd-find"},
			wantRemove:  []string{"sudo", "apt-get", "remove", "-y", "lazygit", "fd-find"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &fakeRunner{}
			n := &Native{sys: tt.sys, run: run, sudo: tt.sudo, log: quietLogger()}
			names := []string{"lazygit", "fd-find"}

			if err := n.Install(context.Background(), names, tt.yes); err != nil {
				t.Fatalf("Install() returned error: %v", err)
			}
			if err := n.Remove(context.Background(), names, tt.yes); err != nil {
				t.Fatalf("Remove() returned error: %v", err)
			}

			if !reflect.DeepEqual(run.calls[0], tt.wantInstall) {
				t.Fatalf("install argv = %v, want %v", run.calls[0], tt.wantInstall)
			}
			if !reflect.DeepEqual(run.calls[1], tt.wantRemove) {
				t.Fatalf("remove argv = %v, want %v", run.calls[1], tt.wantRemove)
			}
		})
	}
}

func TestNativeErrors(t *testing.T) {
	boom := errors.New("exit status 1")
	run := &fakeRunner{fail: map[string]error{"dnf install nope": boom}}
	n := &Native{sys: dnf{}, run: run, log: quietLogger()}

	if err := n.Install(context.Background(), []string{"nope"}, false); !errors.Is(err, boom) {
		t.Fatalf("expected runner error, got %v", err)
	}
	if err := n.Install(context.Background(), nil, false); !errors.Is(err, ErrNoPackages) {
		t.Fatalf("expected ErrNoPackages, got %v", err)
	}
}

func TestIsAvailableOfficially(t *testing.T) {
	run := &fakeRunner{fail: map[string]error{"pacman -Si nope": errors.New("not found")}}
	n := &Native{sys: pacman{helper: "yay"}, run: run, log: quietLogger()}

	if !n.IsAvailableOfficially(context.Background(), "fd") {
		t.Fatal("expected fd to be available")
	}
	if n.IsAvailableOfficially(context.Background(), "nope") {
		t.Fatal("expected nope to be unavailable")
	}
}

func TestFlatpak(t *testing.T) {
	run := &fakeRunner{}
	f := &Flatpak{run: run, log: quietLogger()}

	if err := f.Install(context.Background(), "flathub", []string{"md.obsidian.Obsidian"}, true); err != nil {
		t.Fatal(err)
	}
	if err := f.Remove(context.Background(), []string{"md.obsidian.Obsidian"}, false); err != nil {
		t.Fatal(err)
	}

	want := [][]string{
		{"flatpak", "install", "-y", "--noninteractive", "flathub", "md.obsidian.Obsidian"},
		{"flatpak", "uninstall", "md.obsidian.Obsidian"},
	}
	if !reflect.DeepEqual(run.calls, want) {
		t.Fatalf("calls = %v, want %v", run.calls, want)
	}
}

func TestCOPR(t *testing.T) {
	run := &fakeRunner{outputs: map[string]string{
		"dnf copr list --enabled": "copr.fedorainfracloud.org/dejan/lazygit\ncopr.fedorainfracloud.org/atim/starship\n",
	}}
	c := &COPR{run: run, sudo: true, log: quietLogger()}
	ctx := context.Background()

	if !c.IsEnabled(ctx, "dejan/lazygit") {
		t.Fatal("expected dejan/lazygit to be enabled")
	}
	if c.IsEnabled(ctx, "atim/lazygit") {
		t.Fatal("atim/lazygit is not enabled")
	}

	if err := c.Enable(ctx, "atim/lazygit"); err != nil {
		t.Fatal(err)
	}
	last := run.calls[len(run.calls)-1]
	want := []string{"sudo", "dnf", "copr", "enable", "-y", "atim/lazygit"}
	if !reflect.DeepEqual(last, want) {
		t.Fatalf("enable argv = %v, want %v", last, want)
	}
}

func TestPPA(t *testing.T) {
	dir := t.TempDir()
	content := "deb https://ppa.launchpadcontent.net/neovim-ppa/unstable/ubuntu noble main\n"
	if err := os.WriteFile(filepath.Join(dir, "neovim-ppa-ubuntu-unstable-noble.list"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	// Non-source files are ignored
	if err := os.WriteFile(filepath.Join(dir, "README"), []byte("ppa.launchpadcontent.net/some/other"), 0644); err != nil {
		t.Fatal(err)
	}

	run := &fakeRunner{}
	p := &PPA{run: run, sourcesDir: dir, log: quietLogger()}
	ctx := context.Background()

	if !p.IsEnabled(ctx, "neovim-ppa/unstable") {
		t.Fatal("expected neovim PPA to be enabled")
	}
	if p.IsEnabled(ctx, "some/other") {
		t.Fatal("README must not count as an apt source")
	}

	if err := p.Enable(ctx, "some/other"); err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"add-apt-repository", "-y", "ppa:some/other"},
		{"apt-get", "update"},
	}
	if !reflect.DeepEqual(run.calls, want) {
		t.Fatalf("calls = %v, want %v", run.calls, want)
	}
}

func TestRemotes(t *testing.T) {
	run := &fakeRunner{outputs: map[string]string{
		"flatpak remotes --columns=name": "fedora\nflathub\n",
	}}
	r := NewRemotes(run, map[string]string{"kde": "https://distribute.kde.org/kdeapps.flatpakrepo"}, quietLogger())
	ctx := context.Background()

	if !r.IsEnabled(ctx, "flathub") {
		t.Fatal("expected flathub to be enabled")
	}
	if r.IsEnabled(ctx, "kde") {
		t.Fatal("kde is not enabled")
	}

	if err := r.Enable(ctx, "kde"); err != nil {
		t.Fatal(err)
	}
	last := run.calls[len(run.calls)-1]
	want := []string{"flatpak", "remote-add", "--if-not-exists", "kde", "https://distribute.kde.org/kdeapps.flatpakrepo"}
	if !reflect.DeepEqual(last, want) {
		t.Fatalf("enable argv = %v, want %v", last, want)
	}

	if err := r.Enable(ctx, "nowhere"); !errors.Is(err, ErrUnknownRemote) {
		t.Fatalf("expected ErrUnknownRemote, got %v", err)
	}
}

func TestCommandError(t *testing.T) {
	err := commandError("dnf", []string{"install", "nope"}, errors.New("exit status 1"),
		[]byte("Last metadata expiration check\nNo match for argument: nope\n"))

	want := "dnf install nope: exit status 1: No match for argument: nope"
	if err.Error() != want {
		t.Fatalf("error = %q, want %q", err.Error(), want)
	}
}
