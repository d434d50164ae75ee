package main

import (
	"context"

	"linkabet-backend/config"
	"linkabet-backend/middleware"
	"linkabet-backend/seeds"
	"linkabet-backend/utils"

	bleveRepositories "linkabet-backend/bleve/repositories"
	bleveRoutes "linkabet-backend/bleve/routes"
	bleveServices "linkabet-backend/bleve/services"

	import_repositories "linkabet-backend/imports/repositories"
	import_routes "linkabet-backend/imports/routes"
	import_services "linkabet-backend/imports/services"
	"linkabet-backend/imports/tasks"

	subscription_routes "linkabet-backend/subscriptions/routes"

	"linkabet-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file found, relying on process environment")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 11 * 1024 * 1024,
	})

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	port := config.GetEnvDefault("PORT", "8080")
	ctx := context.Background()

	redisAddr := config.GetEnvDefault("REDIS_ADDRESS", "localhost:6379")
	redisClient := config.InitRedisServer(ctx)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: config.GetEnv("REDIS_PASSWORD"),
		DB:       0,
	}

	asynqClient := asynq.NewClient(asynqRedisOpt)
	defer asynqClient.Close()

	indexPath := config.GetEnvDefault("BLEVE_INDEX_PATH", "./bleve_data")
	uploadPath := config.GetEnvDefault("UPLOAD_PATH", "./uploads")

	// Initialize the mailer for import error reports
	utils.InitializeMailer()

	// WebSocket hub for live job progress
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Serve static files
	app.Static("/public", "./public")

	// Repositories
	bleveIndexingService := bleveServices.NewIndexingService(config.Logger, indexPath)
	linkIndexRepo := bleveRepositories.NewLinkIndexRepository(bleveIndexingService)
	jobRepo := import_repositories.NewImportJobRepository(db)
	targetRepo := import_repositories.NewTargetRepository(db)

	// Services
	fileStorage := utils.NewLocalFileStorage(uploadPath)
	importer := import_services.NewImporter(targetRepo, linkIndexRepo, config.Logger)
	migrationService := import_services.NewPlatformMigrationService(config.Logger)

	// Asynq worker consuming the import queue
	worker := &tasks.ImportWorker{
		JobRepo:   jobRepo,
		Importer:  importer,
		Migration: migrationService,
		Storage:   fileStorage,
		Notifier:  wsHub,
		Reporter:  &tasks.EmailErrorReporter{Logger: config.Logger},
		Logger:    config.Logger,
	}

	asynqServer := asynq.NewServer(asynqRedisOpt, asynq.Config{
		Concurrency: 5,
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeImportProcess, worker.HandleImportProcess)
	mux.HandleFunc(tasks.TypeImportPlatformMigration, worker.HandlePlatformMigration)
	go func() {
		if err := asynqServer.Run(mux); err != nil {
			config.Logger.Fatal("Asynq server failed", zap.Error(err))
		}
	}()

	// Scheduled maintenance: stuck-job sweep and upload retention
	janitor := import_services.NewJanitor(jobRepo, uploadPath, config.Logger)
	if err := janitor.Start(); err != nil {
		config.Logger.Fatal("Failed to start maintenance scheduler", zap.Error(err))
	}
	defer janitor.Stop()

	// Routes
	enqueuer := tasks.NewEnqueuer(asynqClient)
	import_routes.InitImportRoutes(app, jobRepo, enqueuer, fileStorage, redisClient, config.Logger)
	bleveRoutes.InitSearchRoutes(app, linkIndexRepo)
	subscription_routes.InitSubscriptionRoutes(app, db, config.Logger)

	// WebSocket route for job progress
	wsHandler := websocket.NewWsHandler(wsHub, jobRepo)
	app.Get("/ws/import/jobs/:job_id", wsHandler.HandleJobProgress)

	// Seed reference data
	if err := seeds.RunAll(db); err != nil {
		config.Logger.Error("Database seeding failed", zap.Error(err))
	}

	// Start the application
	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
