package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/report"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/ui/prompt"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/ui/styles"
)

var backupRestoreYes bool

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage snapshots of the tracked packages",
	Long: `sync-repos saves the tracked package list before migrating. The
newest snapshots are kept and can be restored if a migration left the
tracked state wrong. Restoring does not install or remove packages.`,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat()
		if err != nil {
			return err
		}

		a, _, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		backups, err := a.Backups()
		if err != nil {
			return err
		}
		return report.Backups(os.Stdout, format, backups)
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [name]",
	Short: "Restore the tracked packages from a snapshot",
	Long: `Replace the tracked package list with a snapshot. Without a name
the newest snapshot is used.

Examples:
  aps backup restore
  aps backup restore 20260118-093012`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}

		a, _, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		ok, err := prompt.Confirm("Replace the tracked package list?", "Installed packages are not changed.", backupRestoreYes)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}

		restored, err := a.Restore(name)
		if err != nil {
			return err
		}
		fmt.Println(styles.FormatSuccess("Restored tracked state from " + restored))
		return nil
	},
}

func init() {
	backupRestoreCmd.Flags().BoolVarP(&backupRestoreYes, "yes", "y", false, "Skip confirmation prompt")
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}
