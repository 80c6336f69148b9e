package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/xolan/well/internal/cli/handlers"
)

var (
	ephemeralFlag bool
	apiKeyFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "well",
	Short: "A daily wellness tracker",
	Long: `well tracks water, sleep, exercise and meditation against daily goals.

Usage:
  well                                  Show today's progress
  well water                            Log one cup of water
  well sleep <hours> <quality>          Record last night's sleep (quality 1-10)
  well exercise <type> <minutes>        Log an exercise session
  well meditate <minutes>               Log meditation
  well day <date>                       Show a past day (YYYY-MM-DD, yesterday, 3 days ago)
  well log [--type T] [--more N]        Show the activity log
  well series [--window 7|30|365]       Show daily values over a window
  well stats [--window 7|30|365]        Show averages and totals over a window
  well summary                          Ask the AI service for a summary of today
  well validate                         Check storage file health
  well restore [n]                      Restore records from backup (default: most recent)
  well config [init]                    Show or create the configuration file
  well tui                              Launch the interactive terminal UI

Goals are configured in the [goals] table of config.toml.
The AI summary reads its API key from WELL_API_KEY (or a .env file) or --api-key.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		withServices(handlers.Dashboard)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&ephemeralFlag, "ephemeral", false, "Keep records in memory for this run only")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "API key for the AI summary (overrides WELL_API_KEY)")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"well version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command. Interrupts cancel in-flight requests.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
