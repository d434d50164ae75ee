package controllers

import (
	"linkabet-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PlanController struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// GetPlans lists the active subscription plans, cheapest first.
func (pc *PlanController) GetPlans(c *fiber.Ctx) error {
	var plans []models.SubscriptionPlan
	err := pc.DB.
		Where("is_active = ?", true).
		Order("price_monthly asc").
		Find(&plans).Error
	if err != nil {
		pc.Logger.Error("Failed to load subscription plans", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load subscription plans",
			"data":    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Subscription plans retrieved",
		"data":    plans,
		"total":   len(plans),
	})
}
