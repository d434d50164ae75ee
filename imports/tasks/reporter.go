package tasks

import (
	"fmt"
	"strings"

	"linkabet-backend/db/models"
	"linkabet-backend/imports/services"
	"linkabet-backend/utils"

	"go.uber.org/zap"
)

// EmailErrorReporter mails the job creator an xlsx of the rows that could not
// be persisted. Reporting is best effort and never affects the job outcome.
type EmailErrorReporter struct {
	Logger *zap.Logger
}

func (r *EmailErrorReporter) SendJobErrorReport(job *models.ImportJob, failures []services.ImportFailure) {
	if len(failures) == 0 {
		return
	}
	if !strings.Contains(job.CreatedBy, "@") {
		r.Logger.Info("Skipping error report, job creator is not an email address",
			zap.String("job_id", job.ID.String()),
			zap.String("created_by", job.CreatedBy),
		)
		return
	}

	reportPath, err := utils.GenerateImportErrorReport(job.ID.String(), failures)
	if err != nil {
		r.Logger.Error("Failed to generate import error report",
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)
		return
	}

	subject := fmt.Sprintf("Import %s finished with %d errors", job.ID.String(), len(failures))
	message := fmt.Sprintf(
		"Your %s import has finished.\n\nSuccessful records: %d\nFailed records: %d\n\nThe attached report lists each failed row and the reason.",
		job.ImportType, job.SuccessCount, job.ErrorCount,
	)

	if err := utils.SendEmail(job.CreatedBy, message, subject, reportPath); err != nil {
		r.Logger.Error("Failed to send import error report",
			zap.String("job_id", job.ID.String()),
			zap.String("recipient", job.CreatedBy),
			zap.Error(err),
		)
		return
	}

	r.Logger.Info("Import error report sent",
		zap.String("job_id", job.ID.String()),
		zap.String("recipient", job.CreatedBy),
	)
}
