package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/cli/handlers"
)

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the activity log",
	Long: `Show logged activity, newest first.

The log shows 20 events; each --more step reveals 10 older ones.

Examples:
  well log                    Everything
  well log --type water       Only water
  well log --more 2           Reveal 20 more events`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		filter, _ := cmd.Flags().GetString("type")
		more, _ := cmd.Flags().GetInt("more")
		if more < 0 {
			more = 0
		}
		withServices(func(d *cli.Deps) { handlers.Log(d, filter, more) })
	},
}

// seriesCmd represents the series command
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Show daily values over a window",
	Long: `Show one row per day for the last 7, 30 or 365 days, ending today.

Days with nothing logged show zeros.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		window, _ := cmd.Flags().GetString("window")
		withServices(func(d *cli.Deps) { handlers.Series(d, window) })
	},
}

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show averages and totals over a window",
	Long: `Show average water and sleep, average sleep quality, and total exercise
and meditation over the last 7, 30 or 365 days.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		window, _ := cmd.Flags().GetString("window")
		withServices(func(d *cli.Deps) { handlers.Stats(d, window) })
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(statsCmd)

	logCmd.Flags().StringP("type", "t", "all", "Filter by type: all, exercise, sleep, water, meditation")
	logCmd.Flags().IntP("more", "m", 0, "Reveal this many extra pages of older events")
	seriesCmd.Flags().StringP("window", "w", "7", "Window in days: 7, 30 or 365")
	statsCmd.Flags().StringP("window", "w", "7", "Window in days: 7, 30 or 365")
}
