package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/report"
)

var (
	listSource   string
	listMappings bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tracked packages",
	Long: `List the packages installed through aps.

--source filters by source prefix: official, AUR:, COPR:, PPA:,
flatpak: or a full identity such as COPR:dejan/lazygit.

Examples:
  aps list
  aps list --source COPR:
  aps list --mappings --source flatpak:
  aps list -o json`,
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

		if listMappings {
			return report.Mappings(os.Stdout, format, a.Mappings(listSource))
		}

		records, err := a.List(listSource)
		if err != nil {
			return err
		}
		return report.Records(os.Stdout, format, records)
	},
}

func init() {
	listCmd.Flags().StringVar(&listSource, "source", "", "Only show packages whose source starts with this prefix")
	listCmd.Flags().BoolVar(&listMappings, "mappings", false, "List pkgmap.ini mappings instead of tracked packages")
	rootCmd.AddCommand(listCmd)
}
