package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/cli/handlers"
)

// waterCmd represents the water command
var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Log one cup of water",
	Long: `Add one cup to today's water count.

Cups stop counting once the daily water goal is reached; raise goals.water
in the config file to track more.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(handlers.AddWater)
	},
}

// sleepCmd represents the sleep command
var sleepCmd = &cobra.Command{
	Use:   "sleep <hours> <quality>",
	Short: "Record last night's sleep",
	Long: `Record today's sleep as hours slept and a quality score from 1 to 10.

Recording sleep again replaces the earlier value.

Examples:
  well sleep 7.5 8       7.5 hours, quality 8/10`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		withServices(func(d *cli.Deps) { handlers.SetSleep(d, args[0], args[1]) })
	},
}

// exerciseCmd represents the exercise command
var exerciseCmd = &cobra.Command{
	Use:   "exercise <type> <minutes>",
	Short: "Log an exercise session",
	Long: `Append an exercise session to today's record.

The last argument is the duration in minutes; everything before it names
the activity.

Examples:
  well exercise running 30
  well exercise strength training 45`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exerciseType, minutes := splitExerciseArgs(args)
		withServices(func(d *cli.Deps) { handlers.AddExercise(d, exerciseType, minutes) })
	},
}

// meditateCmd represents the meditate command
var meditateCmd = &cobra.Command{
	Use:   "meditate <minutes>",
	Short: "Log meditation minutes",
	Long:  `Add minutes to today's meditation total.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withServices(func(d *cli.Deps) { handlers.AddMeditation(d, args[0]) })
	},
}

// dayCmd represents the day command
var dayCmd = &cobra.Command{
	Use:   "day <date>",
	Short: "Show the record of a past day",
	Long: `Show a day's progress without changing it.

Accepted dates: YYYY-MM-DD, DD/MM/YYYY, today, yesterday, "N days ago".

Examples:
  well day yesterday
  well day 2024-03-01
  well day 3 days ago`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := strings.Join(args, " ")
		withServices(func(d *cli.Deps) { handlers.ShowDay(d, input) })
	},
}

func init() {
	rootCmd.AddCommand(waterCmd)
	rootCmd.AddCommand(sleepCmd)
	rootCmd.AddCommand(exerciseCmd)
	rootCmd.AddCommand(meditateCmd)
	rootCmd.AddCommand(dayCmd)
}

// splitExerciseArgs treats the last argument as minutes and joins the rest
// into the activity type.
func splitExerciseArgs(args []string) (string, string) {
	if len(args) == 0 {
		return "", ""
	}
	last := len(args) - 1
	return strings.Join(args[:last], " "), args[last]
}
