package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/app"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/report"
)

var infoCmd = &cobra.Command{
	Use:   "info <package>",
	Short: "Show package details",
	Long: `Show how a package is mapped on this distribution and whether it
is tracked.

Examples:
  aps info lazygit
  aps info fd -o yaml`,
	Args: cobra.ExactArgs(1),
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

		info, err := a.Info(args[0])
		if errors.Is(err, app.ErrNotTracked) {
			if suggestions := a.Suggest(args[0]); len(suggestions) > 0 {
				return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(suggestions, ", "))
			}
			return err
		}
		if err != nil {
			return err
		}
		return report.Info(os.Stdout, format, info)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
