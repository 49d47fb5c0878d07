package bookRoutes

import (
	"github.com/gofiber/fiber/v2"

	bookController "bookapi/controllers/book"
	"bookapi/middleware"
	bookValidator "bookapi/validators/book"
)

// SetupBookRoutes sets up the book catalog routes. Creation, update and
// deletion are admin-only.
func SetupBookRoutes(app *fiber.App, ctrl *bookController.Controller, jwtKey string) {
	bookGroup := app.Group("/api/books")

	bookGroup.Get("/", ctrl.GetBooks)
	bookGroup.Post("/", bookValidator.CreateBook(), middleware.Protected(jwtKey), middleware.AdminOnly(), ctrl.CreateBook)

	// Specific routes MUST come before /:id
	bookGroup.Get("/featured", ctrl.GetFeaturedBooks)

	bookGroup.Get("/:id", ctrl.GetBookByID)
	bookGroup.Put("/:id", middleware.Protected(jwtKey), middleware.AdminOnly(), ctrl.UpdateBook)
	bookGroup.Delete("/:id", middleware.Protected(jwtKey), middleware.AdminOnly(), ctrl.DeleteBook)
}
