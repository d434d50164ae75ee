package tasks

import (
	"encoding/json"
	"fmt"

	"linkabet-backend/db/models"

	"github.com/hibiken/asynq"
)

const (
	TypeImportProcess           = "import:process"
	TypeImportPlatformMigration = "import:platform_migration"
)

// ImportProcessPayload drives one file-backed import job.
type ImportProcessPayload struct {
	JobID                 string            `json:"job_id"`
	ImportType            models.ImportType `json:"import_type"`
	Filename              string            `json:"filename"`
	SkipDuplicates        bool              `json:"skip_duplicates"`
	AutoGeneratePasswords bool              `json:"auto_generate_passwords"`
	AggregateDuplicates   bool              `json:"aggregate_duplicates"`
}

// PlatformMigrationPayload drives one external-platform migration job.
type PlatformMigrationPayload struct {
	JobID            string `json:"job_id"`
	Platform         string `json:"platform"`
	APIKey           string `json:"api_key"`
	AccessToken      string `json:"access_token"`
	IncludeAnalytics bool   `json:"include_analytics"`
}

// Enqueuer hands import jobs to the queue. There is no retry policy: a job
// that fails stays failed, so tasks carry MaxRetry(0).
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) EnqueueImport(payload ImportProcessPayload) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode import task payload: %w", err)
	}
	task := asynq.NewTask(TypeImportProcess, b, asynq.MaxRetry(0))
	if _, err := e.client.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue import task: %w", err)
	}
	return nil
}

func (e *Enqueuer) EnqueueMigration(payload PlatformMigrationPayload) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode migration task payload: %w", err)
	}
	task := asynq.NewTask(TypeImportPlatformMigration, b, asynq.MaxRetry(0))
	if _, err := e.client.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue migration task: %w", err)
	}
	return nil
}
