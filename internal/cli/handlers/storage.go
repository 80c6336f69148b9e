package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xolan/well/internal/cli"
	"github.com/xolan/well/internal/service"
	"github.com/xolan/well/internal/storage"
)

const ephemeralHint = "Run without --ephemeral to use the storage files"

// ValidateStorage checks every storage file and reports corrupted lines.
// It exits 1 when any file has corruption.
func ValidateStorage(deps *cli.Deps) {
	report, err := deps.Services.Storage.Validate()
	if err != nil {
		if errors.Is(err, service.ErrNotPersistent) {
			deps.Fail("Nothing to validate", err, ephemeralHint)
			return
		}
		deps.Fail("Failed to validate storage", err, "")
		return
	}

	for _, f := range report.Files {
		_, _ = fmt.Fprintf(deps.Stdout, "%s\n", filepath.Base(f.Path))
		_, _ = fmt.Fprintf(deps.Stdout, "  Path:      %s\n", f.Path)
		_, _ = fmt.Fprintf(deps.Stdout, "  Lines:     %d\n", f.TotalLines)
		_, _ = fmt.Fprintf(deps.Stdout, "  Valid:     %d\n", f.ValidEntries)
		_, _ = fmt.Fprintf(deps.Stdout, "  Corrupted: %d\n", f.CorruptedEntries)
		for _, w := range f.Warnings {
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatCorruptionWarning(w))
		}
	}

	_, _ = fmt.Fprintf(deps.Stdout, "\n%d %s available\n", len(report.Backups), cli.Pluralize("backup", len(report.Backups)))

	if !report.Healthy() {
		_, _ = fmt.Fprintln(deps.Stdout)
		deps.Fail("Storage has corrupted lines", nil,
			"Corrupted lines are skipped on read; run 'well restore' to roll back to a backup")
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Storage is healthy")
}

// RestoreBackup restores the records file from backup args[0] (default 1).
func RestoreBackup(deps *cli.Deps, args []string) {
	backups, err := deps.Services.Storage.Backups()
	if err != nil {
		if errors.Is(err, service.ErrNotPersistent) {
			deps.Fail("Nothing to restore", err, ephemeralHint)
			return
		}
		deps.Fail("Failed to list backups", err, "")
		return
	}

	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	for _, backup := range backups {
		if backup.Number == 1 {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s (most recent)\n", backup.Number, backup.Path)
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s\n", backup.Number, backup.Path)
		}
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	n := 1
	if len(args) > 0 {
		num, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			deps.Fail(fmt.Sprintf("Invalid backup number '%s'", args[0]), nil, "")
			return
		}
		if num < 1 || num > storage.MaxBackupCount {
			deps.Fail(fmt.Sprintf("Backup number must be between 1 and %d (got %d)", storage.MaxBackupCount, num), nil, "")
			return
		}
		n = num
	}

	if err := deps.Services.Storage.Restore(n); err != nil {
		deps.Fail(fmt.Sprintf("Failed to restore backup %d", n), err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Restored records from backup %d\n", n)
	_, _ = fmt.Fprintln(deps.Stdout, "The previous records file was kept as backup 1.")
}
