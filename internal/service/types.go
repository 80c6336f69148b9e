// Package service provides the business logic layer for the well application.
// It wraps storage, progress, stats, feed and the AI client, providing one
// API for both the CLI and TUI frontends.
package service

import (
	"github.com/xolan/well/internal/progress"
	"github.com/xolan/well/internal/record"
	"github.com/xolan/well/internal/stats"
	"github.com/xolan/well/internal/storage"
)

// DayView is one record together with its goal progress.
type DayView struct {
	Date     string
	Record   record.DailyRecord
	Metrics  []progress.Metric
	MetCount int
	IsToday  bool
	Exists   bool // false when nothing was ever recorded for Date
}

// SeriesResult is a windowed series and its reduction.
type SeriesResult struct {
	Window  stats.Window
	Points  []stats.Point
	Summary stats.Summary
	Start   string // Date of the first point
	End     string // Date of the last point (today)
}

// SummaryResult is a generated day summary.
type SummaryResult struct {
	Date string
	Text string
}

// StorageReport describes the health of each storage file.
type StorageReport struct {
	Files   []storage.StorageHealth
	Backups []storage.BackupInfo
}

// Healthy reports whether every file parsed cleanly.
func (r StorageReport) Healthy() bool {
	for _, f := range r.Files {
		if !f.Healthy() {
			return false
		}
	}
	return true
}
