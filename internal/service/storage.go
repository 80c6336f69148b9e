package service

import (
	"errors"

	"github.com/xolan/well/internal/storage"
)

// ErrNotPersistent is returned for file operations on an in-memory store.
var ErrNotPersistent = errors.New("storage is in-memory (--ephemeral); nothing to check or restore")

// maintainable is implemented by stores that keep files on disk.
type maintainable interface {
	Validate() ([]storage.StorageHealth, error)
	Backups() ([]storage.BackupInfo, error)
	Restore(n int) error
}

// StorageService checks and restores the on-disk store.
type StorageService struct {
	store storage.Store
}

// NewStorageService creates a new StorageService
func NewStorageService(store storage.Store) *StorageService {
	return &StorageService{store: store}
}

func (s *StorageService) files() (maintainable, error) {
	m, ok := s.store.(maintainable)
	if !ok {
		return nil, ErrNotPersistent
	}
	return m, nil
}

// Validate reports the health of every storage file and the available backups.
func (s *StorageService) Validate() (*StorageReport, error) {
	m, err := s.files()
	if err != nil {
		return nil, err
	}

	files, err := m.Validate()
	if err != nil {
		return nil, err
	}
	backups, err := m.Backups()
	if err != nil {
		return nil, err
	}
	return &StorageReport{Files: files, Backups: backups}, nil
}

// Backups lists the available record backups.
func (s *StorageService) Backups() ([]storage.BackupInfo, error) {
	m, err := s.files()
	if err != nil {
		return nil, err
	}
	return m.Backups()
}

// Restore restores record backup n (1 is the most recent).
func (s *StorageService) Restore(n int) error {
	m, err := s.files()
	if err != nil {
		return err
	}
	return m.Restore(n)
}
