package cron

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Job is a named periodic task with a cron schedule.
type Job interface {
	Name() string
	Schedule() string
	Run(ctx context.Context) error
}

// PhotoCleanupJob deletes downloaded profile photos older than MaxAge from
// Dir. Photo files are per-entity snapshots; anything stale is re-fetched
// on the next lookup, so deletion is always safe.
type PhotoCleanupJob struct {
	Dir          string
	MaxAge       time.Duration
	Logger       *slog.Logger
	ScheduleExpr string // empty = default hourly
}

// Compile-time interface check.
var _ Job = (*PhotoCleanupJob)(nil)

// Name implements Job.
func (j *PhotoCleanupJob) Name() string {
	return "photo_cleanup"
}

// Schedule implements Job.
func (j *PhotoCleanupJob) Schedule() string {
	if j.ScheduleExpr != "" {
		return j.ScheduleExpr
	}
	return "0 * * * *"
}

// Run removes expired photo files. A missing directory is not an error;
// nothing has been downloaded yet.
func (j *PhotoCleanupJob) Run(_ context.Context) error {
	entries, err := os.ReadDir(j.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	cutoff := time.Now().Add(-j.MaxAge)
	removed := 0

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(j.Dir, e.Name())); err != nil {
			j.Logger.Warn("cron: photo removal failed", "file", e.Name(), "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		j.Logger.Info("cron: removed expired photos", "count", removed)
	}
	return nil
}
