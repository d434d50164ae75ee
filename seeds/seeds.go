package seeds

import (
	"errors"

	"linkabet-backend/config"
	"linkabet-backend/db/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedSubscriptionPlans inserts the default pricing tiers. Existing plans are
// matched by name and left untouched, so operator edits survive restarts.
func SeedSubscriptionPlans(db *gorm.DB) error {
	config.Logger.Info("Starting subscription plans seeding...")

	plans := []models.SubscriptionPlan{
		{
			ID:           uuid.New(),
			Name:         "Basic",
			PlanType:     models.PlanTypeBasic,
			PriceMonthly: decimal.Zero,
			PriceYearly:  decimal.Zero,
			MaxLinks:     5,
			Features:     datatypes.JSON(`["5 short links", "Basic click analytics"]`),
			IsActive:     true,
		},
		{
			ID:           uuid.New(),
			Name:         "Pro",
			PlanType:     models.PlanTypePro,
			PriceMonthly: decimal.NewFromFloat(9.99),
			PriceYearly:  decimal.NewFromFloat(99.99),
			MaxLinks:     10000,
			Features:     datatypes.JSON(`["Unlimited short links", "Custom domains", "Bulk import", "Full analytics history"]`),
			IsActive:     true,
		},
	}

	createdCount := 0
	for _, plan := range plans {
		var existing models.SubscriptionPlan
		result := db.Where("name = ?", plan.Name).First(&existing)

		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				if err := db.Create(&plan).Error; err != nil {
					config.Logger.Error("Failed to seed subscription plan",
						zap.String("name", plan.Name),
						zap.Error(err),
					)
					return err
				}
				createdCount++
				continue
			}
			return result.Error
		}
	}

	config.Logger.Info("Subscription plans seeding finished",
		zap.Int("created", createdCount),
		zap.Int("existing", len(plans)-createdCount),
	)
	return nil
}

// RunAll executes every seeder in order.
func RunAll(db *gorm.DB) error {
	return SeedSubscriptionPlans(db)
}
