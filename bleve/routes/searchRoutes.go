package router

import (
	"linkabet-backend/bleve/controllers"
	"linkabet-backend/bleve/repositories"

	"github.com/gofiber/fiber/v2"
)

func InitSearchRoutes(app *fiber.App, linkRepo repositories.LinkIndexRepositoryInterface) {
	searchController := &controllers.SearchController{LinkRepo: linkRepo}

	searchRoutes := app.Group("/api/v1/search")
	{
		searchRoutes.Get("/links", searchController.SearchLinks)
	}
}
