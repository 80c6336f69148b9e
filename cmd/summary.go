package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/cli/handlers"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Ask the AI service for a summary of today",
	Long: `Send today's progress to the generative-text service and print its summary.

The API key is read from --api-key, then from WELL_API_KEY. A .env file in
the working directory or the config directory may set WELL_API_KEY.
The key is never written to disk or to the log.

Use --dry-run to print the prompt without sending it.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			withServices(handlers.SummaryPrompt)
			return
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		withServices(func(d *cli.Deps) { handlers.Summary(ctx, d) })
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().Bool("dry-run", false, "Print the prompt instead of sending it")
}
