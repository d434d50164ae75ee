package router

import (
	"linkabet-backend/imports/controllers"
	"linkabet-backend/imports/repositories"
	"linkabet-backend/imports/tasks"
	"linkabet-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func InitImportRoutes(
	app *fiber.App,
	jobRepo repositories.ImportJobRepository,
	enqueuer *tasks.Enqueuer,
	storage utils.FileStorage,
	redisClient *redis.Client,
	logger *zap.Logger,
) {
	uploadController := &controllers.UploadController{
		Storage: storage,
		Redis:   redisClient,
		Logger:  logger,
	}
	importController := &controllers.ImportController{
		JobRepo:  jobRepo,
		Enqueuer: enqueuer,
		Storage:  storage,
		Logger:   logger,
	}
	jobController := &controllers.JobController{
		JobRepo: jobRepo,
		Logger:  logger,
	}

	importRoutes := app.Group("/api/v1/import")
	{
		importRoutes.Post("/upload", uploadController.UploadFile)
		importRoutes.Get("/upload/:filename/validation", uploadController.GetUploadValidation)

		importRoutes.Post("/links", importController.ImportLinks)
		importRoutes.Post("/users", importController.ImportUsers)
		importRoutes.Post("/analytics", importController.ImportAnalytics)
		importRoutes.Post("/domains", importController.ImportDomains)
		importRoutes.Post("/contacts", importController.ImportContacts)
		importRoutes.Post("/platform-migration", importController.ImportFromPlatform)

		importRoutes.Post("/jobs", jobController.CreateImportJob)
		importRoutes.Get("/jobs", jobController.GetImportJobs)
		importRoutes.Get("/jobs/:job_id", jobController.GetImportJobStatus)
		importRoutes.Delete("/jobs/:job_id", jobController.DeleteImportJob)
	}
}
