package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User represents an account on the shortening service. Imported rows land
// here with a bcrypt-hashed password; plaintext is never persisted.
type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Email         string         `gorm:"uniqueIndex;not null" json:"email"`
	Password      string         `json:"-"` // Never include in JSON responses
	UserType      string         `gorm:"type:varchar(20);default:'customer'" json:"user_type"`
	Plan          string         `gorm:"type:varchar(20);default:'Basic'" json:"plan"`
	Status        string         `gorm:"type:varchar(20);default:'active'" json:"status"`
	Phone         string         `json:"phone"`
	Company       string         `json:"company"`
	CustomDomains datatypes.JSON `gorm:"type:jsonb" json:"custom_domains"`
	Metadata      datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}
