package pkgmgr

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

var ErrUnknownRemote = errors.New("unknown flatpak remote")

// KnownRemotes are the flatpak remotes aps can add without configuration
var KnownRemotes = map[string]string{
	"flathub":      "https://dl.flathub.org/repo/flathub.flatpakrepo",
	"flathub-beta": "https://flathub.org/beta-repo/flathub-beta.flatpakrepo",
	"fedora":       "oci+https://registry.fedoraproject.org",
}

// COPR enables Fedora COPR repositories through the dnf copr plugin
type COPR struct {
	run  Runner
	sudo bool
	log  *log.Logger
}

// NewCOPR creates a COPR enabler
func NewCOPR(run Runner, logger *log.Logger) *COPR {
	return &COPR{run: run, sudo: os.Geteuid() != 0, log: logger}
}

// IsEnabled reports whether coord ("user/project") appears in the enabled list
func (c *COPR) IsEnabled(ctx context.Context, coord string) bool {
	out, err := c.run.Output(ctx, "dnf", "copr", "list", "--enabled")
	if err != nil {
		c.log.Debug("Cannot list enabled COPR repositories", "error", err)
		return false
	}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		// Lines look like "copr.fedorainfracloud.org/dejan/lazygit"
		line := strings.TrimSpace(scanner.Text())
		if line == coord || strings.HasSuffix(line, "/"+coord) {
			return true
		}
	}
	return false
}

// Enable enables coord
func (c *COPR) Enable(ctx context.Context, coord string) error {
	return runMaybeRoot(ctx, c.run, c.sudo, "dnf", "copr", "enable", "-y", coord)
}

// PPA enables Ubuntu PPAs with add-apt-repository
type PPA struct {
	run        Runner
	sudo       bool
	sourcesDir string
	log        *log.Logger
}

// NewPPA creates a PPA enabler looking for sources in /etc/apt/sources.list.d
func NewPPA(run Runner, logger *log.Logger) *PPA {
	return &PPA{
		run:        run,
		sudo:       os.Geteuid() != 0,
		sourcesDir: "/etc/apt/sources.list.d",
		log:        logger,
	}
}

// IsEnabled reports whether an apt source for coord ("user/ppa") exists
func (p *PPA) IsEnabled(_ context.Context, coord string) bool {
	entries, err := os.ReadDir(p.sourcesDir)
	if err != nil {
		p.log.Debug("Cannot read apt sources", "path", p.sourcesDir, "error", err)
		return false
	}

	needles := []string{
		"ppa.launchpadcontent.net/" + coord,
		"ppa.launchpad.net/" + coord,
	}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".list" && ext != ".sources") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(p.sourcesDir, entry.Name()))
		if err != nil {
			continue
		}
		for _, needle := range needles {
			if bytes.Contains(data, []byte(needle)) {
				return true
			}
		}
	}
	return false
}

// Enable adds the PPA and refreshes the package index
func (p *PPA) Enable(ctx context.Context, coord string) error {
	if err := runMaybeRoot(ctx, p.run, p.sudo, "add-apt-repository", "-y", "ppa:"+coord); err != nil {
		return err
	}
	return runMaybeRoot(ctx, p.run, p.sudo, "apt-get", "update")
}

// Remotes enables flatpak remotes by name
type Remotes struct {
	run  Runner
	urls map[string]string
	log  *log.Logger
}

// NewRemotes creates a remote enabler. extra adds or overrides entries of
// KnownRemotes.
func NewRemotes(run Runner, extra map[string]string, logger *log.Logger) *Remotes {
	urls := make(map[string]string, len(KnownRemotes)+len(extra))
	for name, url := range KnownRemotes {
		urls[name] = url
	}
	for name, url := range extra {
		urls[name] = url
	}
	return &Remotes{run: run, urls: urls, log: logger}
}

// IsEnabled reports whether the remote is configured
func (r *Remotes) IsEnabled(ctx context.Context, name string) bool {
	out, err := r.run.Output(ctx, "flatpak", "remotes", "--columns=name")
	if err != nil {
		r.log.Debug("Cannot list flatpak remotes", "error", err)
		return false
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == name {
			return true
		}
	}
	return false
}

// Enable adds a known remote
func (r *Remotes) Enable(ctx context.Context, name string) error {
	url, ok := r.urls[name]
	if !ok {
		return fmt.Errorf("%w: %s (add it under [flatpak.remotes] in settings.ini)", ErrUnknownRemote, name)
	}
	return r.run.Run(ctx, "flatpak", "remote-add", "--if-not-exists", name, url)
}

func runMaybeRoot(ctx context.Context, run Runner, sudo bool, name string, args ...string) error {
	if sudo {
		return run.Run(ctx, "sudo", append([]string{name}, args...)...)
	}
	return run.Run(ctx, name, args...)
}
