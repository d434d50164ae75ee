package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Contact is an address-book entry imported from CRM exports.
type Contact struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string         `json:"phone"`
	Company   string         `json:"company"`
	Position  string         `json:"position"`
	Tags      datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	Notes     string         `gorm:"type:text" json:"notes"`
	Source    string         `json:"source"`
	Status    string         `gorm:"type:varchar(20);default:'active'" json:"status"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}
