package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Domain is a custom domain attached to a user's links.
type Domain struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Domain      string         `gorm:"uniqueIndex;not null" json:"domain"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	SSLEnabled  bool           `gorm:"default:true" json:"ssl_enabled"`
	DNSVerified bool           `gorm:"default:false" json:"dns_verified"`
	OwnerUserID string         `gorm:"index" json:"owner_user_id"`
	OwnerEmail  string         `json:"owner_email"`
	Settings    datatypes.JSON `gorm:"type:jsonb" json:"settings"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}
