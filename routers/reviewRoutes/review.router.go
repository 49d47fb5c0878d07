package reviewRoutes

import (
	"github.com/gofiber/fiber/v2"

	reviewController "bookapi/controllers/review"
	"bookapi/middleware"
)

// SetupReviewRoutes sets up the review routes under /api.
func SetupReviewRoutes(app *fiber.App, ctrl *reviewController.Controller, jwtKey string) {
	apiGroup := app.Group("/api")

	apiGroup.Delete("/reviews/:id", middleware.Protected(jwtKey), ctrl.DeleteReview)
	apiGroup.Get("/user/:id/reviews", ctrl.GetUserReviews)

	// Dynamic :id routes come last
	apiGroup.Get("/:id/reviews", ctrl.GetBookReviews)
	apiGroup.Post("/:id/reviews", middleware.Protected(jwtKey), ctrl.CreateBookReview)
}
