package handler

import (
	"github.com/gofiber/fiber/v2"

	"employee-management-backend/internal/middleware"
	"employee-management-backend/internal/repository"
	"employee-management-backend/internal/usecase"
)

type AttendanceHandler struct {
	attendance *usecase.AttendanceUsecase
}

func NewAttendanceHandler(attendance *usecase.AttendanceUsecase) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

func (h *AttendanceHandler) ClockIn(c *fiber.Ctx) error {
	var req usecase.ClockInInput
	if err := parseBody(c, &req, true); err != nil {
		return respondError(c, err)
	}
	rec, err := h.attendance.ClockIn(c.UserContext(), middleware.CurrentCaller(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Clocked in successfully",
		"data":    rec,
	})
}

func (h *AttendanceHandler) ClockOut(c *fiber.Ctx) error {
	var req usecase.ClockOutInput
	if err := parseBody(c, &req, true); err != nil {
		return respondError(c, err)
	}
	rec, err := h.attendance.ClockOut(c.UserContext(), middleware.CurrentCaller(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Clocked out successfully",
		"data":    rec,
	})
}

func (h *AttendanceHandler) Status(c *fiber.Ctx) error {
	st, err := h.attendance.GetStatus(c.UserContext(), middleware.CurrentCaller(c))
	if err != nil {
		return respondError(c, err)
	}
	return success(c, st)
}

func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	employeeID, err := queryUint(c, "employee_id")
	if err != nil {
		return respondError(c, err)
	}
	f := repository.AttendanceFilter{
		EmployeeID: employeeID,
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		Status:     c.Query("status"),
		Page:       page(c),
	}
	rows, count, err := h.attendance.List(c.UserContext(), middleware.CurrentCaller(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return successList(c, rows, count)
}

func (h *AttendanceHandler) MarkAbsent(c *fiber.Ctx) error {
	var req usecase.MarkAbsentInput
	if err := parseBody(c, &req, false); err != nil {
		return respondError(c, err)
	}
	rec, err := h.attendance.MarkAbsent(c.UserContext(), middleware.CurrentCaller(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Employee marked absent",
		"data":    rec,
	})
}
