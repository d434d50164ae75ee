package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Link is a shortened URL owned by a user.
type Link struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OriginalURL  string         `gorm:"not null;index" json:"original_url"`
	ShortURL     string         `gorm:"not null;uniqueIndex" json:"short_url"`
	Title        string         `json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Category     string         `gorm:"default:'General'" json:"category"`
	Tags         datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	CustomDomain string         `json:"custom_domain"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	Clicks       int            `gorm:"default:0" json:"clicks"`
	UserID       string         `gorm:"index" json:"user_id"`
	UserEmail    string         `json:"user_email"`
	Metadata     datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}
