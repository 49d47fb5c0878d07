package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Tokens are valid for 30 days.
const tokenValidity = 30 * 24 * time.Hour

// GenerateJWT generates a bearer token identifying the user and their admin flag.
func GenerateJWT(userID uint, isAdmin bool, jwtKey string) (string, error) {
	claims := jwt.MapClaims{
		"userId":  userID,
		"isAdmin": isAdmin,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(tokenValidity).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtKey))
}

// Protected checks for a valid bearer token and stores the caller's identity
// in the request context under "userId" and "isAdmin".
func Protected(jwtKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing or invalid Authorization header")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid Authorization header format")
		}

		tokenString := authHeader[len("Bearer "):]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtKey), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["userId"] == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token payload")
		}

		// JWT numeric claims decode as float64
		userID := claims["userId"].(float64)
		isAdmin, _ := claims["isAdmin"].(bool)

		c.Locals("userId", uint(userID))
		c.Locals("isAdmin", isAdmin)

		return c.Next()
	}
}

// AdminOnly rejects callers whose token does not carry the admin flag.
// Compose after Protected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, ok := c.Locals("isAdmin").(bool)
		if !ok || !isAdmin {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authorized as admin")
		}
		return c.Next()
	}
}
