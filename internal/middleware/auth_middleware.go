package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"employee-management-backend/internal/access"
	"employee-management-backend/internal/model"
	"employee-management-backend/internal/repository"
)

const callerKey = "caller"

// Auth resolves the bearer token into a Caller and stores it on the context.
// The account is loaded on every request: deleted or deactivated accounts are
// rejected, and role and employee link come from the store, not the token.
func Auth(tokens *access.TokenIssuer, users repository.UserRepository, employees repository.EmployeeRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization token"})
		}
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authorization header must be 'Bearer <token>'"})
		}

		caller, err := tokens.Parse(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		if err = refreshCaller(c.UserContext(), caller, users, employees); err != nil {
			return authError(c, err)
		}
		caller.IP = c.IP()
		caller.UserAgent = c.Get(fiber.HeaderUserAgent)

		c.Locals(callerKey, caller)
		return c.Next()
	}
}

var errAccountGone = model.ErrUnauthorized("account no longer active")

// refreshCaller replaces the token claims with the current account state.
func refreshCaller(ctx context.Context, caller *access.Caller, users repository.UserRepository, employees repository.EmployeeRepository) error {
	user, err := users.FindByID(ctx, caller.UserID)
	if model.IsKind(err, model.KindNotFound) {
		return errAccountGone
	}
	if err != nil {
		return err
	}
	if !user.IsActive || !user.Role.Valid() {
		return errAccountGone
	}
	caller.Username = user.Username
	caller.Role = user.Role

	caller.EmployeeID = nil
	emp, err := employees.FindByUserID(ctx, user.ID)
	switch {
	case model.IsKind(err, model.KindNotFound):
	case err != nil:
		return err
	default:
		id := emp.ID
		caller.EmployeeID = &id
	}
	return nil
}

func authError(c *fiber.Ctx, err error) error {
	switch model.KindOf(err) {
	case model.KindUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case model.KindStoreUnavailable:
		log.WithError(err).WithField("path", c.Path()).Error("auth: account lookup failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": model.ErrStoreUnavailable.Error()})
	}
	log.WithError(errors.WithStack(err)).WithField("path", c.Path()).Error("auth: account lookup failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// CurrentCaller returns the caller stored by Auth, or nil.
func CurrentCaller(c *fiber.Ctx) *access.Caller {
	caller, _ := c.Locals(callerKey).(*access.Caller)
	return caller
}
