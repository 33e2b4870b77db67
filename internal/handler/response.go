package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"employee-management-backend/internal/model"
	"employee-management-backend/internal/repository"
)

func statusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindUnauthorized:
		return fiber.StatusUnauthorized
	case model.KindForbidden:
		return fiber.StatusForbidden
	case model.KindValidation, model.KindInvalidState,
		model.KindAlreadyClockedIn, model.KindNotClockedIn, model.KindAlreadyClockedOut:
		return fiber.StatusBadRequest
	case model.KindNotFound:
		return fiber.StatusNotFound
	case model.KindStoreUnavailable:
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// respondError writes err as {"error": ...}. Anything that is not a domain
// error is logged and reported as a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	entry := log.WithFields(log.Fields{
		"method":     c.Method(),
		"path":       c.Path(),
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
	})

	var de *model.Error
	if errors.As(err, &de) {
		status := statusFor(de.Kind)
		if status >= fiber.StatusInternalServerError {
			entry.WithError(err).Error("record store unavailable")
		}
		return c.Status(status).JSON(fiber.Map{"error": de.Message})
	}

	entry.WithError(err).Error("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// ErrorHandler is the fiber fallback for errors returned by handlers and middleware.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	return respondError(c, err)
}

// parseBody decodes the request body. An empty body is allowed when optional is set.
func parseBody(c *fiber.Ctx, out any, optional bool) error {
	if optional && len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return model.ErrValidation("invalid request body")
	}
	return nil
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, model.ErrValidation("invalid id")
	}
	return uint(id), nil
}

// queryUint reads an optional positive integer query parameter.
func queryUint(c *fiber.Ctx, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v := c.QueryInt(key, -1)
	if v <= 0 {
		return nil, model.ErrValidation(key + " must be a positive integer")
	}
	id := uint(v)
	return &id, nil
}

func page(c *fiber.Ctx) repository.Page {
	return repository.Page{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
}

func success(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func successMessage(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"success": true, "message": msg})
}

func successList(c *fiber.Ctx, data any, count int64) error {
	return c.JSON(fiber.Map{"success": true, "data": data, "count": count})
}
