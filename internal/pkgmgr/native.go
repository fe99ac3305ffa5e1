package pkgmgr

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
)

var ErrNoPackages = errors.New("no packages given")

// AURHelpers are looked up in order on Arch-based systems
var AURHelpers = []string{"paru", "yay"}

// command is one invocation, optionally run through sudo
type command struct {
	argv []string
	root bool
}

// system builds the package-manager command lines of one family
type system interface {
	name() string
	install(names []string, yes bool) command
	remove(names []string, yes bool) command
	query(name string) command
}

type dnf struct{}

func (dnf) name() string { return "dnf" }

func (dnf) install(names []string, yes bool) command {
	return command{argv: withYes([]string{"dnf", "install"}, yes, "-y", names), root: true}
}

func (dnf) remove(names []string, yes bool) command {
	return command{argv: withYes([]string{"dnf", "remove"}, yes, "-y", names), root: true}
}

func (dnf) query(name string) command {
	return command{argv: []string{"dnf", "info", "-q", name}}
}

// pacman installs through the AUR helper when one is available so that AUR
// and repository packages share one code path
type pacman struct {
	helper string
}

func (p pacman) name() string {
	if p.helper != "" {
		return p.helper
	}
	return "pacman"
}

func (p pacman) install(names []string, yes bool) command {
	if p.helper != "" {
		return command{argv: withYes([]string{p.helper, "-S", "--needed"}, yes, "--noconfirm", names)}
	}
	return command{argv: withYes([]string{"pacman", "-S", "--needed"}, yes, "--noconfirm", names), root: true}
}

func (p pacman) remove(names []string, yes bool) command {
	return command{argv: withYes([]string{"pacman", "-Rns"}, yes, "--noconfirm", names), root: true}
}

func (p pacman) query(name string) command {
	return command{argv: []string{"pacman", "-Si", name}}
}

type apt struct{}

func (apt) name() string { return "apt" }

func (apt) install(names []string, yes bool) command {
	return command{argv: withYes([]string{"apt-get", "install"}, yes, "-y", names), root: true}
}

func (apt) remove(names []string, yes bool) command {
	return command{argv: withYes([]string{"apt-get", "remove"}, yes, "-y", names), root: true}
}

func (apt) query(name string) command {
	return command{argv: []string{"apt-cache", "show", name}}
}

func withYes(base []string, yes bool, flag string, names []string) []string {
	argv := append([]string{}, base...)
	if yes {
		argv = append(argv, flag)
	}
	return append(argv, names...)
}

// Native drives the distribution package manager
type Native struct {
	sys  system
	run  Runner
	sudo bool
	log  *log.Logger
}

func newNative(sys system, run Runner, logger *log.Logger) *Native {
	return &Native{
		sys:  sys,
		run:  run,
		sudo: os.Geteuid() != 0,
		log:  logger,
	}
}

// Name returns the package manager binary in use
func (n *Native) Name() string {
	return n.sys.name()
}

// Install installs names in one transaction
func (n *Native) Install(ctx context.Context, names []string, autoConfirm bool) error {
	if len(names) == 0 {
		return ErrNoPackages
	}
	n.log.Debug("Installing packages", "manager", n.sys.name(), "packages", names)
	return n.exec(ctx, n.sys.install(names, autoConfirm))
}

// Remove removes names in one transaction
func (n *Native) Remove(ctx context.Context, names []string, autoConfirm bool) error {
	if len(names) == 0 {
		return ErrNoPackages
	}
	n.log.Debug("Removing packages", "manager", n.sys.name(), "packages", names)
	return n.exec(ctx, n.sys.remove(names, autoConfirm))
}

// IsAvailableOfficially reports whether the enabled repositories provide name
func (n *Native) IsAvailableOfficially(ctx context.Context, name string) bool {
	c := n.sys.query(name)
	_, err := n.run.Output(ctx, c.argv[0], c.argv[1:]...)
	return err == nil
}

func (n *Native) exec(ctx context.Context, c command) error {
	argv := c.argv
	if c.root && n.sudo {
		argv = append([]string{"sudo"}, argv...)
	}
	return n.run.Run(ctx, argv[0], argv[1:]...)
}

// DetectAURHelper returns the first AUR helper found on PATH
func DetectAURHelper() string {
	for _, helper := range AURHelpers {
		if _, err := exec.LookPath(helper); err == nil {
			return helper
		}
	}
	return ""
}
