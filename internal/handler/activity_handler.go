package handler

import (
	"github.com/gofiber/fiber/v2"

	"employee-management-backend/internal/middleware"
	"employee-management-backend/internal/usecase"
)

type ActivityHandler struct {
	activity *usecase.ActivityUsecase
}

func NewActivityHandler(activity *usecase.ActivityUsecase) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

func (h *ActivityHandler) List(c *fiber.Ctx) error {
	userID, err := queryUint(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	q := usecase.ActivityQuery{
		UserID:    userID,
		Category:  c.Query("category"),
		Action:    c.Query("action"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Page:      page(c),
	}
	rows, count, err := h.activity.List(c.UserContext(), middleware.CurrentCaller(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return successList(c, rows, count)
}
