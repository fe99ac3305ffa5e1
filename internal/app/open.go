package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/config"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/core"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/distro"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/pkgmgr"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/tracking"
)

// Options configure Open
type Options struct {
	Paths  config.Paths
	Logger *log.Logger
	// Output receives package-manager output; the terminal when nil
	Output io.Writer
	// Detached keeps package-manager commands off the terminal's stdin
	Detached bool
}

// Open builds an App for the running host: it detects the distribution,
// loads the configuration, opens the tracking store and selects the package
// manager.
func Open(opts Options) (*App, *config.Config, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	info, err := distro.Detect()
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Detected distribution", "id", info.ID, "family", info.Family, "version", info.Version)

	cfg, err := config.Load(opts.Paths)
	if err != nil {
		return nil, nil, err
	}

	if err := opts.Paths.EnsureDataDir(); err != nil {
		return nil, nil, err
	}
	store, err := tracking.Open(cfg.TrackingBackend(), opts.Paths.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open tracking store: %w", err)
	}

	runner := pkgmgr.NewExecRunner(logger)
	if opts.Output != nil {
		runner.Stdout = opts.Output
		runner.Stderr = opts.Output
	}
	if opts.Detached {
		runner.Stdin = nil
	}

	backend, err := pkgmgr.New(info.Family, runner, cfg.FlatpakRemotes(), logger)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	c := &core.Context{
		Distro: info,
		Config: cfg,
		Store:  store,
		Log:    logger,
	}
	backend.Apply(c)

	a := New(c, cfg)
	a.SetBackups(tracking.NewBackupManager(opts.Paths.DataDir))
	return a, cfg, nil
}
