package bookValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateBook validator middleware
func CreateBook() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title         string `json:"title"`
			Author        string `json:"author"`
			Description   string `json:"description"`
			PublishedYear int    `json:"publishedYear"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		if strings.TrimSpace(reqData.Title) == "" ||
			strings.TrimSpace(reqData.Author) == "" ||
			strings.TrimSpace(reqData.Description) == "" ||
			reqData.PublishedYear == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "All fields are required!")
		}

		return c.Next()
	}
}
