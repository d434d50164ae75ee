package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type PlanType string

const (
	PlanTypeBasic PlanType = "basic"
	PlanTypePro   PlanType = "pro"
)

// SubscriptionPlan is read-only reference data exposed to the pricing page.
type SubscriptionPlan struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name         string          `gorm:"uniqueIndex;not null" json:"name"`
	PlanType     PlanType        `gorm:"type:varchar(20);not null" json:"plan_type"`
	PriceMonthly decimal.Decimal `gorm:"type:numeric(10,2)" json:"price_monthly"`
	PriceYearly  decimal.Decimal `gorm:"type:numeric(10,2)" json:"price_yearly"`
	MaxLinks     int             `gorm:"default:5" json:"max_links"`
	Features     datatypes.JSON  `gorm:"type:jsonb" json:"features"`
	IsActive     bool            `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
