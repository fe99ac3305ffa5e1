package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/report"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/ui/prompt"
)

var removeYes bool

var removeCmd = &cobra.Command{
	Use:     "remove <package>...",
	Aliases: []string{"rm", "uninstall"},
	Short:   "Remove packages and stop tracking them",
	Long: `Remove packages with the package manager they were installed from.

Tracked packages are removed under the name they were installed with;
untracked names are resolved through pkgmap.ini.

Examples:
  aps remove lazygit
  aps remove obsidian fd --yes`,
	Args: cobra.MinimumNArgs(1),
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

		ok, err := prompt.Confirm(fmt.Sprintf("Remove %s?", strings.Join(args, ", ")), "", removeYes)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}

		result, err := a.Remove(cmd.Context(), args, true)
		if err != nil {
			return err
		}

		if err := report.Result(os.Stdout, format, result); err != nil {
			return err
		}
		if len(result.Failed) > 0 {
			return fmt.Errorf("%d package(s) failed to remove", len(result.Failed))
		}
		return nil
	},
}

func init() {
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(removeCmd)
}
