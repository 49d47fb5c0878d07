package userValidator

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Helper to validate email format
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		if strings.TrimSpace(reqData.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required!")
		}
		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid email!")
		}
		if len(strings.TrimSpace(reqData.Password)) < 8 {
			return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 8 characters long!")
		}

		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid email!")
		}
		if reqData.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Password is required!")
		}

		return c.Next()
	}
}

// UpdateProfile validator middleware. All fields are optional, but the ones
// present must be well formed.
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
		}

		if reqData.Email != "" && !isValidEmail(reqData.Email) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid email!")
		}
		if reqData.Password != "" && len(strings.TrimSpace(reqData.Password)) < 8 {
			return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 8 characters long!")
		}

		return c.Next()
	}
}
