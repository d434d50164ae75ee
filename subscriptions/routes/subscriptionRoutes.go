package router

import (
	"linkabet-backend/subscriptions/controllers"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func InitSubscriptionRoutes(app *fiber.App, db *gorm.DB, logger *zap.Logger) {
	planController := &controllers.PlanController{DB: db, Logger: logger}

	subscriptionRoutes := app.Group("/api/v1/subscription")
	{
		subscriptionRoutes.Get("/plans", planController.GetPlans)
	}
}
