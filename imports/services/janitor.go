package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StaleJobStore lets the janitor fail jobs abandoned mid-processing.
type StaleJobStore interface {
	FailStaleProcessingJobs(olderThan time.Time, message string) (int64, error)
}

// Janitor runs scheduled maintenance: uploaded files past their retention
// window are removed, and jobs stuck in processing beyond the deadline are
// transitioned to failed so they do not sit in-flight forever.
type Janitor struct {
	jobs          StaleJobStore
	uploadDir     string
	fileTTL       time.Duration
	stuckDeadline time.Duration
	logger        *zap.Logger
	cron          *cron.Cron
}

func NewJanitor(jobs StaleJobStore, uploadDir string, logger *zap.Logger) *Janitor {
	return &Janitor{
		jobs:          jobs,
		uploadDir:     uploadDir,
		fileTTL:       24 * time.Hour,
		stuckDeadline: time.Hour,
		logger:        logger,
		cron:          cron.New(),
	}
}

// Start schedules the maintenance jobs: stuck-job sweep hourly, file
// cleanup daily at 1 AM. A rejected schedule spec aborts startup instead of
// silently running without the sweep.
func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc("@hourly", j.FailStuckJobs); err != nil {
		return fmt.Errorf("failed to schedule stuck-job sweep: %w", err)
	}
	if _, err := j.cron.AddFunc("0 1 * * *", j.CleanupExpiredFiles); err != nil {
		return fmt.Errorf("failed to schedule upload cleanup: %w", err)
	}
	j.cron.Start()
	return nil
}

func (j *Janitor) Stop() {
	j.cron.Stop()
}

// FailStuckJobs marks processing jobs older than the deadline as failed.
// Nothing cancels the original execution; if it ever finishes, its terminal
// update loses to this one having arrived first.
func (j *Janitor) FailStuckJobs() {
	cutoff := time.Now().UTC().Add(-j.stuckDeadline)
	n, err := j.jobs.FailStaleProcessingJobs(cutoff, "import timed out")
	if err != nil {
		j.logger.Error("Failed to sweep stuck import jobs", zap.Error(err))
		return
	}
	if n > 0 {
		j.logger.Warn("Marked stuck import jobs as failed", zap.Int64("count", n))
	}
}

// CleanupExpiredFiles removes uploaded files older than the retention TTL.
func (j *Janitor) CleanupExpiredFiles() {
	entries, err := os.ReadDir(j.uploadDir)
	if err != nil {
		j.logger.Error("Failed to read upload directory", zap.Error(err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > j.fileTTL {
			path := filepath.Join(j.uploadDir, entry.Name())
			if err := os.Remove(path); err != nil {
				j.logger.Error("Failed to remove expired upload", zap.String("file", path), zap.Error(err))
				continue
			}
			j.logger.Info("Removed expired upload", zap.String("file", path))
		}
	}
}
