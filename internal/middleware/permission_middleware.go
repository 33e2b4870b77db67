package middleware

import (
	"github.com/gofiber/fiber/v2"

	"employee-management-backend/internal/access"
	"employee-management-backend/internal/model"
)

// Permission rejects callers whose role has no reach at all for action.
// Ownership checks stay in the usecases.
func Permission(policy *access.Policy, action access.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := policy.Scope(CurrentCaller(c), action); err != nil {
			status := fiber.StatusForbidden
			if model.IsKind(err, model.KindUnauthorized) {
				status = fiber.StatusUnauthorized
			}
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Next()
	}
}
