package storage

import (
	"fmt"
	"io"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// GetBackupPath returns the path of backup n for storagePath, e.g.
// records.jsonl.bak.1. Lower numbers are more recent.
func GetBackupPath(storagePath string, n int) string {
	return fmt.Sprintf("%s%s.%d", storagePath, BackupSuffix, n)
}

// rotateBackups shifts .bak.1 -> .bak.2 -> .bak.3, dropping the oldest.
// Missing files are skipped.
func rotateBackups(storagePath string) error {
	if err := os.Remove(GetBackupPath(storagePath, MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		err := os.Rename(GetBackupPath(storagePath, i), GetBackupPath(storagePath, i+1))
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// CreateBackup rotates existing backups and copies storagePath to .bak.1.
// A missing storage file is not an error and creates nothing.
func CreateBackup(storagePath string) error {
	if _, err := os.Stat(storagePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := rotateBackups(storagePath); err != nil {
		return err
	}
	return copyFile(storagePath, GetBackupPath(storagePath, 1))
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Number int    // The backup number (1, 2, or 3)
	Path   string // The full path to the backup file
}

// ListBackups returns the existing backups of storagePath, most recent first.
func ListBackups(storagePath string) ([]BackupInfo, error) {
	backups := []BackupInfo{}
	for i := 1; i <= MaxBackupCount; i++ {
		path := GetBackupPath(storagePath, i)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		backups = append(backups, BackupInfo{Number: i, Path: path})
	}
	return backups, nil
}

// RestoreBackup copies backup n over storagePath. The current file is
// backed up first, so the restore itself can be undone from .bak.1.
func RestoreBackup(storagePath string, n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	backupPath := GetBackupPath(storagePath, n)
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d does not exist", n)
		}
		return err
	}

	// Rotation moves the chosen backup, so copy it aside first.
	tmp := storagePath + ".restore"
	if err := copyFile(backupPath, tmp); err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp) }()

	if err := CreateBackup(storagePath); err != nil {
		return err
	}
	return os.Rename(tmp, storagePath)
}

// touch creates path empty if it does not exist.
func touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// CreatePairedBackup backs up the records and events files under the same
// number, so a restore brings back events that match the records. Nothing
// is created while the records file does not exist.
func CreatePairedBackup(recordsPath, eventsPath string) error {
	if _, err := os.Stat(recordsPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := touch(eventsPath); err != nil {
		return err
	}
	if err := CreateBackup(recordsPath); err != nil {
		return err
	}
	return CreateBackup(eventsPath)
}

// RestorePairedBackup restores backup n of both files. When the events file
// has no backup n it is kept as is but still rotated, so the remaining
// backups stay paired.
func RestorePairedBackup(recordsPath, eventsPath string, n int) error {
	if err := RestoreBackup(recordsPath, n); err != nil {
		return err
	}

	if err := touch(eventsPath); err != nil {
		return err
	}
	if _, err := os.Stat(GetBackupPath(eventsPath, n)); err != nil {
		if os.IsNotExist(err) {
			return CreateBackup(eventsPath)
		}
		return err
	}
	return RestoreBackup(eventsPath, n)
}
