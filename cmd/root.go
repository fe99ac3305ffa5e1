package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/app"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/config"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/logger"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/report"
)

// Version info set via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
)

var (
	verbose    bool
	outputFlag string
	appLogger  *log.Logger
)

var rootCmd = &cobra.Command{
	Use:     "aps",
	Short:   "Auto Penguin Setup: cross-distribution package setup",
	Version: version + " (" + commit + ")",
	Long: `Install and track packages across Fedora, Arch and Debian based
distributions from one configuration.

Packages are mapped to their source (official repositories, COPR, AUR,
PPA or Flatpak) in pkgmap.ini. When a mapping changes, sync-repos moves
the installed package to its new source.

Quick start:
  aps install @core        Install the [core] category of packages.ini
  aps status               Show packages whose source changed
  aps sync-repos           Migrate them`,
	SilenceUsage: true,
}

func Execute() {
	defer logger.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		appLogger = logger.Init(verbose)
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "table", "Output format: table, json or yaml")
}

// getLogger returns the command logger, initializing it if needed
func getLogger() *log.Logger {
	if appLogger == nil {
		appLogger = logger.Init(verbose)
	}
	return appLogger
}

// outputFormat validates the --output flag
func outputFormat() (report.Format, error) {
	return report.ParseFormat(outputFlag)
}

// openApp opens the App for the running host. Package-manager output goes
// to stderr so stdout only carries the report. Callers must Close it.
func openApp() (*app.App, *config.Config, error) {
	return openAppWith(app.Options{Output: os.Stderr})
}

func openAppWith(opts app.Options) (*app.App, *config.Config, error) {
	opts.Paths = config.DefaultPaths()
	opts.Logger = getLogger()
	return app.Open(opts)
}
