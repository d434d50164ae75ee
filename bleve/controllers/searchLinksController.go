package controllers

import (
	"strconv"

	"linkabet-backend/bleve/repositories"

	"github.com/gofiber/fiber/v2"
)

type SearchController struct {
	LinkRepo repositories.LinkIndexRepositoryInterface
}

// SearchLinks answers full-text queries over the indexed links.
func (sc *SearchController) SearchLinks(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing query parameter 'q'",
			"data":    nil,
		})
	}

	size := 20
	if s := c.Query("size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			size = n
		}
	}

	docs, err := sc.LinkRepo.SearchLinks(q, size)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Search failed",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Search completed",
		"data":    docs,
		"total":   len(docs),
	})
}
