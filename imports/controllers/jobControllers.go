package controllers

import (
	"strconv"
	"time"

	"linkabet-backend/db/models"
	"linkabet-backend/imports/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type JobController struct {
	JobRepo repositories.ImportJobRepository
	Logger  *zap.Logger
}

// ImportStatusResponse is the client-facing view of a job row.
type ImportStatusResponse struct {
	JobID            string              `json:"job_id"`
	ImportType       models.ImportType   `json:"import_type"`
	Status           models.ImportStatus `json:"status"`
	Filename         string              `json:"filename"`
	OriginalFilename string              `json:"original_filename"`
	TotalRecords     int                 `json:"total_records"`
	ProcessedRecords int                 `json:"processed_records"`
	SuccessCount     int                 `json:"success_count"`
	ErrorCount       int                 `json:"error_count"`
	Progress         float64             `json:"progress"`
	Errors           datatypes.JSON      `json:"errors"`
	Metadata         datatypes.JSON      `json:"metadata"`
	CreatedBy        string              `json:"created_by"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	CompletedAt      *time.Time          `json:"completed_at"`
}

func toStatusResponse(job *models.ImportJob) ImportStatusResponse {
	return ImportStatusResponse{
		JobID:            job.ID.String(),
		ImportType:       job.ImportType,
		Status:           job.Status,
		Filename:         job.Filename,
		OriginalFilename: job.OriginalFilename,
		TotalRecords:     job.TotalRecords,
		ProcessedRecords: job.ProcessedRecords,
		SuccessCount:     job.SuccessCount,
		ErrorCount:       job.ErrorCount,
		Progress:         job.Progress(),
		Errors:           job.Errors,
		Metadata:         job.Metadata,
		CreatedBy:        job.CreatedBy,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
		CompletedAt:      job.CompletedAt,
	}
}

type createJobRequest struct {
	ImportType       models.ImportType `json:"import_type"`
	Filename         string            `json:"filename"`
	OriginalFilename string            `json:"original_filename"`
	CreatedBy        string            `json:"created_by"`
}

// CreateImportJob records a job row without queueing any processing. Used by
// clients that drive the pipeline themselves.
func (jc *JobController) CreateImportJob(c *fiber.Ctx) error {
	var req createJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
		})
	}
	if req.ImportType == "" || req.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Fields 'import_type' and 'filename' are required",
			"data":    nil,
		})
	}
	if req.CreatedBy == "" {
		req.CreatedBy = "system"
	}
	if req.OriginalFilename == "" {
		req.OriginalFilename = req.Filename
	}

	job := &models.ImportJob{
		ID:               uuid.New(),
		ImportType:       req.ImportType,
		Filename:         req.Filename,
		OriginalFilename: req.OriginalFilename,
		Status:           models.ImportStatusPending,
		CreatedBy:        req.CreatedBy,
	}
	if _, err := jc.JobRepo.CreateJob(job); err != nil {
		jc.Logger.Error("Failed to create import job", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create import job",
			"data":    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Import job created",
		"data":    toStatusResponse(job),
	})
}

// GetImportJobs lists jobs, newest first, filtered by creator and type.
func (jc *JobController) GetImportJobs(c *fiber.Ctx) error {
	createdBy := c.Query("created_by")
	importType := models.ImportType(c.Query("import_type"))

	limit := 50
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	jobs, err := jc.JobRepo.GetFilteredJobs(createdBy, importType, limit)
	if err != nil {
		jc.Logger.Error("Failed to list import jobs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to list import jobs",
			"data":    nil,
		})
	}

	responses := make([]ImportStatusResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, toStatusResponse(&jobs[i]))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Import jobs retrieved",
		"data":    responses,
		"total":   len(responses),
	})
}

// GetImportJobStatus returns one job by id.
func (jc *JobController) GetImportJobStatus(c *fiber.Ctx) error {
	jobID := c.Params("job_id")

	job, err := jc.JobRepo.GetJobByID(jobID)
	if err != nil {
		jc.Logger.Error("Failed to load import job", zap.String("job_id", jobID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load import job",
			"data":    nil,
		})
	}
	if job == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Import job not found",
			"data":    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Import job retrieved",
		"data":    toStatusResponse(job),
	})
}

// DeleteImportJob removes a job row. Jobs still processing cannot be deleted;
// the janitor will fail them if the worker died.
func (jc *JobController) DeleteImportJob(c *fiber.Ctx) error {
	jobID := c.Params("job_id")

	job, err := jc.JobRepo.GetJobByID(jobID)
	if err != nil {
		jc.Logger.Error("Failed to load import job", zap.String("job_id", jobID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load import job",
			"data":    nil,
		})
	}
	if job == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Import job not found",
			"data":    nil,
		})
	}
	if job.Status == models.ImportStatusProcessing {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Cannot delete a job that is still processing",
			"data":    nil,
		})
	}

	if err := jc.JobRepo.DeleteJob(jobID); err != nil {
		jc.Logger.Error("Failed to delete import job", zap.String("job_id", jobID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete import job",
			"data":    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Import job deleted",
		"data":    nil,
	})
}
