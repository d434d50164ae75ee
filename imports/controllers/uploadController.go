package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"linkabet-backend/db/models"
	"linkabet-backend/imports/services"
	"linkabet-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	maxUploadSize      = 10 * 1024 * 1024
	previewRecordCount = 5
	validationCacheTTL = time.Hour
)

type UploadController struct {
	Storage utils.FileStorage
	Redis   *redis.Client
	Logger  *zap.Logger
}

// FileUploadResponse is the synchronous answer to an upload: the stored
// filename to reference in a later import trigger, plus the validation
// verdict and a small preview.
type FileUploadResponse struct {
	Filename         string                    `json:"filename"`
	OriginalFilename string                    `json:"original_filename"`
	FileFormat       services.FileFormat       `json:"file_format"`
	TotalRecords     int                       `json:"total_records"`
	Validation       services.ValidationResult `json:"validation"`
	Preview          []services.RawRecord      `json:"preview"`
}

// UploadFile accepts a CSV, Excel or JSON file, validates it for the given
// import type and stores it for asynchronous processing. Validation is
// advisory: a file full of errors is still stored and can still be imported.
func (uc *UploadController) UploadFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing file upload",
			"data":    nil,
		})
	}

	if fileHeader.Size > maxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "File too large. Maximum size is 10MB",
			"data":    nil,
		})
	}

	importType := models.ImportType(c.FormValue("import_type"))
	if importType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing form field 'import_type'",
			"data":    nil,
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to open uploaded file",
			"data":    nil,
		})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to read uploaded file",
			"data":    nil,
		})
	}

	format, err := services.DetectFileFormat(fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unsupported file format. Use CSV, Excel or JSON",
			"data":    nil,
		})
	}

	records, err := services.ParseFile(format, content)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Failed to parse file: %v", err),
			"data":    nil,
		})
	}

	validation := services.ValidateForType(importType, records)

	// Browsers can put a full path in the multipart filename; keep only the
	// base name so the stored name stays inside the upload directory.
	storedName := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(fileHeader.Filename))
	if _, err := uc.Storage.UploadFileFromReader(bytes.NewReader(content), storedName); err != nil {
		uc.Logger.Error("Failed to store uploaded file", zap.String("filename", storedName), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to store uploaded file",
			"data":    nil,
		})
	}

	uc.cacheValidation(c, storedName, validation)

	preview := records
	if len(preview) > previewRecordCount {
		preview = preview[:previewRecordCount]
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "File uploaded successfully",
		"data": FileUploadResponse{
			Filename:         storedName,
			OriginalFilename: fileHeader.Filename,
			FileFormat:       format,
			TotalRecords:     len(records),
			Validation:       validation,
			Preview:          preview,
		},
	})
}

// cacheValidation keeps the validation verdict around for an hour so clients
// can re-fetch it without re-uploading. A cache miss later is harmless.
func (uc *UploadController) cacheValidation(c *fiber.Ctx, storedName string, validation services.ValidationResult) {
	if uc.Redis == nil {
		return
	}
	payload, err := json.Marshal(validation)
	if err != nil {
		return
	}
	key := "import:upload:" + storedName
	if err := uc.Redis.Set(c.Context(), key, payload, validationCacheTTL).Err(); err != nil {
		uc.Logger.Warn("Failed to cache validation result", zap.String("key", key), zap.Error(err))
	}
}

// GetUploadValidation returns the cached validation verdict for a stored
// upload, if it is still in the cache.
func (uc *UploadController) GetUploadValidation(c *fiber.Ctx) error {
	filename := c.Params("filename")
	if uc.Redis == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Validation result not available",
			"data":    nil,
		})
	}

	payload, err := uc.Redis.Get(c.Context(), "import:upload:"+filename).Bytes()
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Validation result not available",
			"data":    nil,
		})
	}

	var validation services.ValidationResult
	if err := json.Unmarshal(payload, &validation); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to decode cached validation result",
			"data":    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Validation result retrieved",
		"data":    validation,
	})
}
