package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the package mappings of this distribution",
	Long: `Check every pkgmap.ini mapping of the running distribution:
official packages must be available from the distribution repositories
and COPR, PPA or Flatpak repositories must be enabled.

Nothing is installed or enabled.`,
	Args: cobra.NoArgs,
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

		results, err := a.Check(cmd.Context())
		if err != nil {
			return err
		}
		if err := report.Checks(os.Stdout, format, results); err != nil {
			return err
		}

		for _, r := range results {
			if !r.OK {
				return fmt.Errorf("some mappings have problems")
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
