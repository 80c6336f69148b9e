package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/cli/handlers"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup_number]",
	Short: "Restore records from a backup file",
	Long: `Restore the records and events files from a backup.

A backup of both files is taken each time a new day's record is first
created; the three most recent are kept. By default, restores from the most
recent backup (.bak.1). The current files become the new .bak.1, so a
restore can itself be undone.

Examples:
  well restore       Restore from most recent backup
  well restore 2     Restore from backup #2`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withServices(func(d *cli.Deps) { handlers.RestoreBackup(d, args) })
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check storage file health",
	Long: `Check records.jsonl and events.jsonl for corrupted lines.

Corrupted lines are skipped when reading; this command lists them with their
line numbers. Exits with status 1 when any file has corruption.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(handlers.ValidateStorage)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(validateCmd)
}
