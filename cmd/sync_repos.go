package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/app"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/logger"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/migration"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/report"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/ui/progress"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/ui/prompt"
)

var (
	syncYes    bool
	syncDryRun bool
)

// errNeedsAttention makes the command exit non-zero after a double failure
var errNeedsAttention = errors.New("some packages need manual intervention")

var syncReposCmd = &cobra.Command{
	Use:   "sync-repos",
	Short: "Move packages to their newly configured source",
	Long: `Detect tracked packages whose source changed in pkgmap.ini and
migrate them: the old package is removed, the new one installed, and
the old one reinstalled if the new install fails.

Packages are migrated one at a time; a failure does not stop the rest.
Flatpak installs are never migrated.

Examples:
  aps sync-repos
  aps sync-repos --dry-run
  aps sync-repos --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat()
		if err != nil {
			return err
		}

		// The progress display needs the terminal, so package-manager output
		// goes to the log file instead
		interactive := format == report.FormatTable && prompt.IsTerminal() && !syncDryRun
		opts := app.Options{Output: os.Stderr}
		if interactive {
			if f := logger.File(); f != nil {
				opts.Output = f
			}
			opts.Detached = true
		}

		a, _, err := openAppWith(opts)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		changes, err := a.DetectDrift()
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			return report.Changes(os.Stdout, format, changes)
		}

		migrateOpts := migration.Options{AutoConfirm: true, DryRun: syncDryRun}
		if syncDryRun {
			outcome, err := a.Migrate(cmd.Context(), changes, migrateOpts)
			if err != nil {
				return err
			}
			return report.Outcome(os.Stdout, format, outcome)
		}

		if format == report.FormatTable {
			if err := report.Changes(os.Stdout, format, changes); err != nil {
				return err
			}
			fmt.Println()
		}

		ok, err := prompt.Confirm(
			fmt.Sprintf("Migrate %d package(s)?", len(changes)),
			"Each package is removed and reinstalled from its new source.",
			syncYes,
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}

		if name, err := a.Snapshot(); err != nil {
			getLogger().Warn("Could not save tracked state", "error", err)
		} else if name != "" && format == report.FormatTable {
			progress.PrintDetail("Tracked state saved as backup " + name + " (restore with: aps backup restore)")
		}

		var outcome migration.Outcome
		if interactive {
			outcome, err = migrateWithProgress(cmd, a, changes, migrateOpts)
		} else {
			outcome, err = migratePlain(cmd, a, changes, migrateOpts, format)
		}
		if err != nil {
			return err
		}

		if err := report.Outcome(os.Stdout, format, outcome); err != nil {
			return err
		}
		if outcome.NeedsAttention() {
			return errNeedsAttention
		}
		if len(outcome.Failed) > 0 {
			return fmt.Errorf("%d migration(s) failed", len(outcome.Failed))
		}
		return nil
	},
}

func migrateWithProgress(cmd *cobra.Command, a *app.App, changes []migration.Change, opts migration.Options) (migration.Outcome, error) {
	names := make([]string, len(changes))
	for i, ch := range changes {
		names[i] = ch.Name()
	}

	var outcome migration.Outcome
	_, err := progress.Run(progress.NewModel("Migrating packages", names...), func(s progress.Sender) error {
		opts.Observer = progress.MigrationObserver(s, names)
		var err error
		outcome, err = a.Migrate(cmd.Context(), changes, opts)
		return err
	})
	return outcome, err
}

// migratePlain prints one line per package
func migratePlain(cmd *cobra.Command, a *app.App, changes []migration.Change, opts migration.Options, format report.Format) (migration.Outcome, error) {
	if format == report.FormatTable {
		progress.PrintTitle("Migrating packages")
		total := len(changes)
		done := 0
		opts.Observer = func(ch migration.Change, state migration.State) {
			switch {
			case state == migration.StatePending:
				done++
				fmt.Println(progress.FormatProgressLine("Migrating", done, total, ch.Name()))
			case state == migration.StateRollingBack:
				progress.PrintWarning("install failed, rolling back to " + ch.OldSource)
			case state.Terminal():
				st, detail := progress.MigrationStep(ch, state)
				progress.PrintStep(st, ch.Name()+": "+detail)
			}
		}
	}
	return a.Migrate(cmd.Context(), changes, opts)
}

func init() {
	syncReposCmd.Flags().BoolVarP(&syncYes, "yes", "y", false, "Skip confirmation prompt")
	syncReposCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Show the planned migrations without changing anything")
	rootCmd.AddCommand(syncReposCmd)
}
