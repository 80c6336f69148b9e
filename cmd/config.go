package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/well/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for well.

Shows the configuration file location, whether it exists, and all current settings.
Configuration values are merged from the config file with sensible defaults.

By default, well works without any configuration file. All settings have defaults:
  - timezone: Local (system timezone)
  - theme: dracula
  - goals: 8 cups of water, 8 hours of sleep, 30 minutes of exercise,
    15 minutes of meditation

Examples:

  Display current configuration:
    well config                      Show all current settings

  Create a commented sample file:
    well config init

Configuration file location:
  ~/.config/well/config.toml         Linux
  ~/Library/Application Support/well/config.toml   macOS
  %APPDATA%\well\config.toml         Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(handlers.ShowConfig)
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample configuration file",
	Long: `Write a commented config.toml documenting every setting.

Fails if a config file already exists.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(handlers.InitConfig)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
