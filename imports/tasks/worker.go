package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"linkabet-backend/db/models"
	"linkabet-backend/imports/repositories"
	"linkabet-backend/imports/services"
	"linkabet-backend/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ProgressNotifier pushes job progress to any live subscribers. Delivery is
// best effort; a nil notifier disables it.
type ProgressNotifier interface {
	PublishProgress(jobID string, status models.ImportStatus, totalRecords, processedRecords, successCount, errorCount int)
}

// ErrorReporter delivers the per-row failure report for a finished job.
type ErrorReporter interface {
	SendJobErrorReport(job *models.ImportJob, failures []services.ImportFailure)
}

// ImportWorker executes queued import jobs. Every outcome, including a crash
// of the pipeline itself, ends with the job row in a terminal status.
type ImportWorker struct {
	JobRepo   repositories.ImportJobRepository
	Importer  *services.Importer
	Migration *services.PlatformMigrationService
	Storage   utils.FileStorage
	Notifier  ProgressNotifier
	Reporter  ErrorReporter
	Logger    *zap.Logger
}

// HandleImportProcess runs a file-backed import end to end. Execution errors
// are recorded on the job itself and never returned, so the queue does not
// retry a job that has already been marked failed.
func (w *ImportWorker) HandleImportProcess(ctx context.Context, t *asynq.Task) error {
	var payload ImportProcessPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to decode import task payload: %w", err)
	}

	w.Logger.Info("Starting import job",
		zap.String("job_id", payload.JobID),
		zap.String("import_type", string(payload.ImportType)),
		zap.String("filename", payload.Filename),
	)

	w.markProcessing(payload.JobID)

	content, err := w.Storage.ReadFile(payload.Filename)
	if err != nil {
		w.failJob(payload.JobID, fmt.Sprintf("failed to read uploaded file: %v", err))
		return nil
	}

	format, err := services.DetectFileFormat(payload.Filename, "")
	if err != nil {
		w.failJob(payload.JobID, err.Error())
		return nil
	}

	records, err := services.ParseFile(format, content)
	if err != nil {
		w.failJob(payload.JobID, err.Error())
		return nil
	}

	if err := w.JobRepo.UpdateJobFields(payload.JobID, map[string]interface{}{
		"total_records": len(records),
	}); err != nil {
		w.Logger.Error("Failed to record total records", zap.String("job_id", payload.JobID), zap.Error(err))
	}
	w.notify(payload.JobID, models.ImportStatusProcessing, len(records), 0, 0, 0)

	var counts services.ImportCounts
	switch payload.ImportType {
	case models.ImportTypeLinks:
		counts = w.Importer.ProcessLinksImport(records, payload.JobID, payload.SkipDuplicates)
	case models.ImportTypeUsers:
		counts = w.Importer.ProcessUsersImport(records, payload.JobID, payload.AutoGeneratePasswords)
	case models.ImportTypeAnalytics:
		counts = w.Importer.ProcessAnalyticsImport(records, payload.JobID)
	case models.ImportTypeDomains:
		counts = w.Importer.ProcessDomainsImport(records, payload.JobID)
	case models.ImportTypeContacts:
		counts = w.Importer.ProcessContactsImport(records, payload.JobID)
	default:
		w.failJob(payload.JobID, fmt.Sprintf("import type %s not supported", payload.ImportType))
		return nil
	}

	w.completeJob(payload.JobID, len(records), counts)
	return nil
}

// HandlePlatformMigration pulls links from an external shortener and imports
// them through the regular links pipeline with duplicate skipping on.
func (w *ImportWorker) HandlePlatformMigration(ctx context.Context, t *asynq.Task) error {
	var payload PlatformMigrationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to decode migration task payload: %w", err)
	}

	w.Logger.Info("Starting platform migration job",
		zap.String("job_id", payload.JobID),
		zap.String("platform", payload.Platform),
	)

	w.markProcessing(payload.JobID)

	credentials := services.MigrationCredentials{
		APIKey:      payload.APIKey,
		AccessToken: payload.AccessToken,
	}
	records, err := w.Migration.MigrateFromPlatform(ctx, payload.Platform, credentials)
	if err != nil {
		w.failJob(payload.JobID, err.Error())
		return nil
	}

	if err := w.JobRepo.UpdateJobFields(payload.JobID, map[string]interface{}{
		"total_records": len(records),
	}); err != nil {
		w.Logger.Error("Failed to record total records", zap.String("job_id", payload.JobID), zap.Error(err))
	}
	w.notify(payload.JobID, models.ImportStatusProcessing, len(records), 0, 0, 0)

	counts := w.Importer.ProcessLinksImport(records, payload.JobID, true)
	w.completeJob(payload.JobID, len(records), counts)
	return nil
}

func (w *ImportWorker) markProcessing(jobID string) {
	if err := w.JobRepo.UpdateJobFields(jobID, map[string]interface{}{
		"status": models.ImportStatusProcessing,
	}); err != nil {
		w.Logger.Error("Failed to mark job as processing", zap.String("job_id", jobID), zap.Error(err))
	}
	w.notify(jobID, models.ImportStatusProcessing, 0, 0, 0, 0)
}

func (w *ImportWorker) completeJob(jobID string, totalRecords int, counts services.ImportCounts) {
	fields := map[string]interface{}{
		"status":            models.ImportStatusCompleted,
		"processed_records": counts.Processed,
		"success_count":     counts.Success,
		"error_count":       counts.Errors,
		"completed_at":      time.Now().UTC(),
	}
	if err := w.JobRepo.UpdateJobFields(jobID, fields); err != nil {
		w.Logger.Error("Failed to mark job as completed", zap.String("job_id", jobID), zap.Error(err))
	}

	w.Logger.Info("Import job completed",
		zap.String("job_id", jobID),
		zap.Int("processed", counts.Processed),
		zap.Int("success", counts.Success),
		zap.Int("errors", counts.Errors),
		zap.Int("skipped", counts.Skipped),
	)
	w.notify(jobID, models.ImportStatusCompleted, totalRecords, counts.Processed, counts.Success, counts.Errors)

	if counts.Errors > 0 && w.Reporter != nil {
		job, err := w.JobRepo.GetJobByID(jobID)
		if err != nil || job == nil {
			w.Logger.Error("Failed to load job for error report", zap.String("job_id", jobID), zap.Error(err))
			return
		}
		w.Reporter.SendJobErrorReport(job, counts.Failures)
	}
}

func (w *ImportWorker) failJob(jobID, message string) {
	errorsJSON, err := json.Marshal([]map[string]string{{"error": message}})
	if err != nil {
		errorsJSON = []byte(`[]`)
	}

	fields := map[string]interface{}{
		"status":       models.ImportStatusFailed,
		"errors":       datatypes.JSON(errorsJSON),
		"completed_at": time.Now().UTC(),
	}
	if err := w.JobRepo.UpdateJobFields(jobID, fields); err != nil {
		w.Logger.Error("Failed to mark job as failed", zap.String("job_id", jobID), zap.Error(err))
	}

	w.Logger.Error("Import job failed", zap.String("job_id", jobID), zap.String("reason", message))
	w.notify(jobID, models.ImportStatusFailed, 0, 0, 0, 0)
}

func (w *ImportWorker) notify(jobID string, status models.ImportStatus, totalRecords, processedRecords, successCount, errorCount int) {
	if w.Notifier == nil {
		return
	}
	w.Notifier.PublishProgress(jobID, status, totalRecords, processedRecords, successCount, errorCount)
}
