package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ImportType string

const (
	ImportTypeLinks             ImportType = "links"
	ImportTypeUsers             ImportType = "users"
	ImportTypeAnalytics         ImportType = "analytics"
	ImportTypeDomains           ImportType = "domains"
	ImportTypeContacts          ImportType = "contacts"
	ImportTypePlatformMigration ImportType = "platform_migration"
)

type ImportStatus string

const (
	ImportStatusPending    ImportStatus = "pending"
	ImportStatusProcessing ImportStatus = "processing"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
	// Declared in the status taxonomy but the pipeline only ever lands on
	// completed or failed; kept so stored rows from other writers still scan.
	ImportStatusPartial ImportStatus = "partial"
)

// IsTerminal reports whether the status can never change again.
func (s ImportStatus) IsTerminal() bool {
	return s == ImportStatusCompleted || s == ImportStatusFailed
}

// ImportJob tracks one import execution from upload to terminal status.
type ImportJob struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ImportType       ImportType     `gorm:"type:varchar(30);not null;index" json:"import_type"`
	Filename         string         `gorm:"not null" json:"filename"`
	OriginalFilename string         `gorm:"not null" json:"original_filename"`
	Status           ImportStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalRecords     int            `gorm:"default:0" json:"total_records"`
	ProcessedRecords int            `gorm:"default:0" json:"processed_records"`
	SuccessCount     int            `gorm:"default:0" json:"success_count"`
	ErrorCount       int            `gorm:"default:0" json:"error_count"`
	Errors           datatypes.JSON `gorm:"type:jsonb" json:"errors"`
	Metadata         datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedBy        string         `gorm:"not null;index" json:"created_by"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	CompletedAt      *time.Time     `json:"completed_at"`
}

// Progress is processed over total, 0 when nothing has been counted yet.
func (j *ImportJob) Progress() float64 {
	if j.TotalRecords == 0 {
		return 0
	}
	return float64(j.ProcessedRecords) / float64(j.TotalRecords)
}
