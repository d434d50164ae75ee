package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnalyticsEvent is one aggregated click record for a link.
type AnalyticsEvent struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	LinkID       string         `gorm:"index" json:"link_id"`
	ShortURL     string         `json:"short_url"`
	OriginalURL  string         `json:"original_url"`
	Clicks       int            `gorm:"default:0" json:"clicks"`
	UniqueClicks int            `gorm:"default:0" json:"unique_clicks"`
	ClickDate    string         `gorm:"not null" json:"click_date"`
	Country      string         `json:"country"`
	City         string         `json:"city"`
	DeviceType   string         `json:"device_type"`
	Browser      string         `json:"browser"`
	OS           string         `json:"os"`
	Referrer     string         `json:"referrer"`
	UserAgent    string         `json:"user_agent"`
	IPAddress    string         `json:"ip_address"`
	Metadata     datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
