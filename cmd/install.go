package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/report"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/ui/prompt"
)

var (
	installYes      bool
	installCategory string
)

var installCmd = &cobra.Command{
	Use:     "install <package|@category>...",
	Aliases: []string{"i"},
	Short:   "Install and track packages",
	Long: `Install packages through the distribution's package manager and
record them as tracked.

Each name is resolved through pkgmap.ini. Packages mapped to COPR, PPA
or Flatpak have their repository enabled first. @name expands to every
package of that packages.ini section.

Examples:
  aps install lazygit fd
  aps install @dev
  aps install starship --category shell --yes`,
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

		ok, err := prompt.Confirm(
			fmt.Sprintf("Install %s?", strings.Join(args, ", ")),
			"Packages are installed with the system package manager.",
			installYes,
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}

		result, err := a.Install(cmd.Context(), args, installCategory, true)
		if err != nil {
			return err
		}

		if err := report.Result(os.Stdout, format, result); err != nil {
			return err
		}
		if len(result.Failed) > 0 {
			return fmt.Errorf("%d package(s) failed to install", len(result.Failed))
		}
		return nil
	},
}

func init() {
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "Skip confirmation prompts")
	installCmd.Flags().StringVar(&installCategory, "category", "", "Record packages under this category")
	rootCmd.AddCommand(installCmd)
}
