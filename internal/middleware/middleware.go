package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"

	"SnapShelf-Backend/domain"
	"SnapShelf-Backend/internal/api/presenters"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		IdentityMiddleware() fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-User-Id",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE",
	})
}

// IdentityMiddleware trusts the upstream gateway's user header. The value
// must be a UUID; nothing else about the caller is verified here.
func (m *middleware) IdentityMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get(domain.HeaderUserID)
		if userID == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedUserID, domain.ErrInvalidUserID)
		}

		parsed, err := uuid.Parse(userID)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedUserID, domain.ErrInvalidUserID)
		}

		c.Locals("user_id", parsed.String())
		return c.Next()
	}
}
