package userRoutes

import (
	"github.com/gofiber/fiber/v2"

	userController "bookapi/controllers/user"
	"bookapi/middleware"
	userValidator "bookapi/validators/user"
)

// SetupUserRoutes sets up registration, login and profile routes.
func SetupUserRoutes(app *fiber.App, ctrl *userController.Controller, jwtKey string) {
	userGroup := app.Group("/api/users")

	userGroup.Post("/login", userValidator.Login(), ctrl.Login)
	userGroup.Post("/", userValidator.Register(), ctrl.Register)
	userGroup.Get("/:id", middleware.Protected(jwtKey), ctrl.GetProfile)
	userGroup.Put("/:id", userValidator.UpdateProfile(), middleware.Protected(jwtKey), ctrl.UpdateProfile)
}
