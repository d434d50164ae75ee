package controllers

import (
	"strings"

	"linkabet-backend/db/models"
	"linkabet-backend/imports/repositories"
	"linkabet-backend/imports/tasks"
	"linkabet-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Rough wall-clock estimates per import kind, in seconds. Only a UX hint.
const (
	estimatedTimeLinks     = 60
	estimatedTimeUsers     = 120
	estimatedTimeAnalytics = 90
	estimatedTimeMigration = 180
)

type ImportController struct {
	JobRepo  repositories.ImportJobRepository
	Enqueuer *tasks.Enqueuer
	Storage  utils.FileStorage
	Logger   *zap.Logger
}

type ImportResponse struct {
	JobID         string `json:"job_id"`
	Status        string `json:"status"`
	Message       string `json:"message"`
	EstimatedTime int    `json:"estimated_time"`
}

type fileImportRequest struct {
	Filename              string `json:"filename"`
	OriginalFilename      string `json:"original_filename"`
	CreatedBy             string `json:"created_by"`
	SkipDuplicates        bool   `json:"skip_duplicates"`
	AutoGeneratePasswords bool   `json:"auto_generate_passwords"`
	AggregateDuplicates   bool   `json:"aggregate_duplicates"`
}

type platformMigrationRequest struct {
	Platform         string `json:"platform"`
	APIKey           string `json:"api_key"`
	AccessToken      string `json:"access_token"`
	IncludeAnalytics bool   `json:"include_analytics"`
	CreatedBy        string `json:"created_by"`
}

// ImportLinks queues a previously uploaded file for link import.
func (ic *ImportController) ImportLinks(c *fiber.Ctx) error {
	return ic.startFileImport(c, models.ImportTypeLinks, "Links import started", estimatedTimeLinks)
}

// ImportUsers queues a previously uploaded file for user import.
func (ic *ImportController) ImportUsers(c *fiber.Ctx) error {
	return ic.startFileImport(c, models.ImportTypeUsers, "Users import started", estimatedTimeUsers)
}

// ImportAnalytics queues a previously uploaded file for analytics import.
func (ic *ImportController) ImportAnalytics(c *fiber.Ctx) error {
	return ic.startFileImport(c, models.ImportTypeAnalytics, "Analytics import started", estimatedTimeAnalytics)
}

// ImportDomains queues a previously uploaded file for domain import.
func (ic *ImportController) ImportDomains(c *fiber.Ctx) error {
	return ic.startFileImport(c, models.ImportTypeDomains, "Domains import started", estimatedTimeLinks)
}

// ImportContacts queues a previously uploaded file for contact import.
func (ic *ImportController) ImportContacts(c *fiber.Ctx) error {
	return ic.startFileImport(c, models.ImportTypeContacts, "Contacts import started", estimatedTimeUsers)
}

func (ic *ImportController) startFileImport(c *fiber.Ctx, importType models.ImportType, message string, estimatedTime int) error {
	var req fileImportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
		})
	}
	if req.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing field 'filename'",
			"data":    nil,
		})
	}
	// Stored names never contain separators; a name that does is trying to
	// read outside the upload directory.
	if strings.ContainsAny(req.Filename, `/\`) || req.Filename == ".." {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid filename",
			"data":    nil,
		})
	}

	exists, err := ic.Storage.FileExists(req.Filename)
	if err != nil || !exists {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Uploaded file not found. Upload it before starting the import",
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
		ImportType:       importType,
		Filename:         req.Filename,
		OriginalFilename: req.OriginalFilename,
		Status:           models.ImportStatusPending,
		CreatedBy:        req.CreatedBy,
	}
	if _, err := ic.JobRepo.CreateJob(job); err != nil {
		ic.Logger.Error("Failed to create import job", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create import job",
			"data":    nil,
		})
	}

	payload := tasks.ImportProcessPayload{
		JobID:                 job.ID.String(),
		ImportType:            importType,
		Filename:              req.Filename,
		SkipDuplicates:        req.SkipDuplicates,
		AutoGeneratePasswords: req.AutoGeneratePasswords,
		AggregateDuplicates:   req.AggregateDuplicates,
	}
	if err := ic.Enqueuer.EnqueueImport(payload); err != nil {
		ic.Logger.Error("Failed to enqueue import job", zap.String("job_id", job.ID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to queue import job",
			"data":    nil,
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": message,
		"data": ImportResponse{
			JobID:         job.ID.String(),
			Status:        string(models.ImportStatusProcessing),
			Message:       message,
			EstimatedTime: estimatedTime,
		},
	})
}

// ImportFromPlatform queues a migration that pulls links directly from an
// external shortener API instead of an uploaded file.
func (ic *ImportController) ImportFromPlatform(c *fiber.Ctx) error {
	var req platformMigrationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
		})
	}
	if req.Platform == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing field 'platform'",
			"data":    nil,
		})
	}
	if req.APIKey == "" && req.AccessToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Provide an api_key or access_token for the source platform",
			"data":    nil,
		})
	}
	if req.CreatedBy == "" {
		req.CreatedBy = "system"
	}

	job := &models.ImportJob{
		ID:               uuid.New(),
		ImportType:       models.ImportTypePlatformMigration,
		Filename:         req.Platform,
		OriginalFilename: req.Platform,
		Status:           models.ImportStatusPending,
		CreatedBy:        req.CreatedBy,
	}
	if _, err := ic.JobRepo.CreateJob(job); err != nil {
		ic.Logger.Error("Failed to create migration job", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create import job",
			"data":    nil,
		})
	}

	payload := tasks.PlatformMigrationPayload{
		JobID:            job.ID.String(),
		Platform:         req.Platform,
		APIKey:           req.APIKey,
		AccessToken:      req.AccessToken,
		IncludeAnalytics: req.IncludeAnalytics,
	}
	if err := ic.Enqueuer.EnqueueMigration(payload); err != nil {
		ic.Logger.Error("Failed to enqueue migration job", zap.String("job_id", job.ID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to queue import job",
			"data":    nil,
		})
	}

	message := "Platform migration started"
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": message,
		"data": ImportResponse{
			JobID:         job.ID.String(),
			Status:        string(models.ImportStatusProcessing),
			Message:       message,
			EstimatedTime: estimatedTimeMigration,
		},
	})
}
