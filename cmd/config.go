package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/config"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/logger"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/ui/progress"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/ui/prompt"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/ui/styles"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the aps configuration",
}

var configSyncCmd = &cobra.Command{
	Use:   "sync [git-url]",
	Short: "Clone or update the configuration repository",
	Long: `Clone a git repository holding pkgmap.ini, packages.ini and
settings.ini into the configuration directory, or fast-forward it when
it is already a clone.

Without an argument the URL comes from [config] repository in
settings.ini.

Examples:
  aps config sync https://github.com/user/dotfiles-aps
  aps config sync`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := config.DefaultPaths()

		url := ""
		if len(args) > 0 {
			url = args[0]
		} else if !config.IsGitRepo(paths.ConfigDir) {
			cfg, err := config.Load(paths)
			if err != nil {
				return err
			}
			url = cfg.Repository()
			if url == "" {
				return fmt.Errorf("no repository given and [config] repository is not set in %s", paths.Settings())
			}
		}

		getLogger().Info("Syncing configuration", "dir", paths.ConfigDir, "url", url)

		var (
			result *config.SyncResult
			err    error
		)
		if prompt.IsTerminal() {
			_, err = progress.Run(progress.NewModel("Syncing configuration", paths.ConfigDir), func(s progress.Sender) error {
				s.Send(progress.StepMsg{Index: 0, State: progress.StateInProgress, Detail: "fetching"})
				res, syncErr := config.SyncRepository(url, paths.ConfigDir, progress.NewGitProgressWriter(s))
				if syncErr != nil {
					s.Send(progress.StepMsg{Index: 0, State: progress.StateError, Err: syncErr})
					return syncErr
				}
				result = res
				s.Send(progress.StepMsg{Index: 0, State: progress.StateComplete, Detail: res.Commit})
				return nil
			})
		} else {
			result, err = config.SyncRepository(url, paths.ConfigDir, nil)
		}
		if err != nil {
			return err
		}

		switch {
		case result.Cloned:
			fmt.Println(styles.FormatSuccess(fmt.Sprintf("Cloned configuration at %s", result.Commit)))
		case result.Updated:
			fmt.Println(styles.FormatSuccess(fmt.Sprintf("Updated configuration to %s", result.Commit)))
		default:
			fmt.Println(styles.FormatSuccess(fmt.Sprintf("Configuration already up to date (%s)", result.Commit)))
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration and data locations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		paths := config.DefaultPaths()
		printField("Config", paths.ConfigDir)
		printField("Pkgmap", paths.Pkgmap())
		printField("Packages", paths.Packages())
		printField("Settings", paths.Settings())
		printField("Data", paths.DataDir)
		printField("Log", logger.Path())
	},
}

func printField(label, value string) {
	fmt.Printf("%-10s %s\n", label+":", value)
}

func init() {
	configCmd.AddCommand(configSyncCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
