package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/config"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/report"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/ui/styles"
)

var statusWatch bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show tracked packages whose source changed",
	Long: `Compare tracked packages against pkgmap.ini and list the ones that
would be migrated by sync-repos. Flatpak installs are never listed.

Examples:
  aps status
  aps status --watch    # Re-check whenever pkgmap.ini changes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat()
		if err != nil {
			return err
		}

		if err := printDrift(format); err != nil {
			return err
		}
		if !statusWatch {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		pkgmap := config.DefaultPaths().Pkgmap()
		fmt.Println(styles.MutedText.Render(fmt.Sprintf("\nWatching %s (ctrl+c to stop)", pkgmap)))

		return config.Watch(ctx, pkgmap, getLogger(), func() {
			fmt.Println()
			if err := printDrift(format); err != nil {
				getLogger().Error("Drift detection failed", "error", err)
				fmt.Println(styles.FormatError(err.Error()))
			}
		})
	},
}

// printDrift reopens the configuration so that edits are picked up
func printDrift(format report.Format) error {
	a, _, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	changes, err := a.DetectDrift()
	if err != nil {
		return err
	}
	return report.Changes(os.Stdout, format, changes)
}

func init() {
	statusCmd.Flags().BoolVarP(&statusWatch, "watch", "w", false, "Re-check when pkgmap.ini changes")
	rootCmd.AddCommand(statusCmd)
}
