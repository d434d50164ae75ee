package repositories

import (
	"errors"
	"fmt"
	"time"

	"linkabet-backend/db/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ImportJobRepository interface {
	CreateJob(job *models.ImportJob) (*models.ImportJob, error)
	GetJobByID(id string) (*models.ImportJob, error)
	UpdateJobFields(id string, updates map[string]interface{}) error
	DeleteJob(id string) error
	GetFilteredJobs(createdBy string, importType models.ImportType, limit int) ([]models.ImportJob, error)
	FailStaleProcessingJobs(olderThan time.Time, message string) (int64, error)
}

type importJobRepository struct {
	db *gorm.DB
}

func NewImportJobRepository(db *gorm.DB) ImportJobRepository {
	return &importJobRepository{db: db}
}

func (r *importJobRepository) CreateJob(job *models.ImportJob) (*models.ImportJob, error) {
	if len(job.Errors) == 0 {
		job.Errors = datatypes.JSON("[]")
	}
	if len(job.Metadata) == 0 {
		job.Metadata = datatypes.JSON("{}")
	}
	if err := r.db.Create(job).Error; err != nil {
		return nil, fmt.Errorf("failed to create import job: %w", err)
	}
	return job, nil
}

func (r *importJobRepository) GetJobByID(id string) (*models.ImportJob, error) {
	var job models.ImportJob
	err := r.db.Where("id = ?", id).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJobFields applies a partial update; updated_at refreshes on every
// mutation through GORM's autoUpdateTime.
func (r *importJobRepository) UpdateJobFields(id string, updates map[string]interface{}) error {
	result := r.db.Model(&models.ImportJob{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update import job %s: %w", id, result.Error)
	}
	return nil
}

func (r *importJobRepository) DeleteJob(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.ImportJob{}).Error
}

func (r *importJobRepository) GetFilteredJobs(createdBy string, importType models.ImportType, limit int) ([]models.ImportJob, error) {
	var jobs []models.ImportJob

	db := r.db.Model(&models.ImportJob{})
	if createdBy != "" {
		db = db.Where("created_by = ?", createdBy)
	}
	if importType != "" {
		db = db.Where("import_type = ?", importType)
	}
	if limit <= 0 {
		limit = 50
	}

	err := db.Order("created_at desc").Limit(limit).Find(&jobs).Error
	return jobs, err
}

// FailStaleProcessingJobs transitions processing jobs whose last update is
// older than the cutoff into failed, recording the message as the sole error
// entry.
func (r *importJobRepository) FailStaleProcessingJobs(olderThan time.Time, message string) (int64, error) {
	errJSON := datatypes.JSON(fmt.Sprintf(`[{"error": %q}]`, message))
	now := time.Now().UTC()

	result := r.db.Model(&models.ImportJob{}).
		Where("status = ? AND updated_at < ?", models.ImportStatusProcessing, olderThan).
		Updates(map[string]interface{}{
			"status":       models.ImportStatusFailed,
			"errors":       errJSON,
			"completed_at": now,
		})
	return result.RowsAffected, result.Error
}
