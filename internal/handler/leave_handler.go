package handler

import (
	"github.com/gofiber/fiber/v2"

	"employee-management-backend/internal/middleware"
	"employee-management-backend/internal/repository"
	"employee-management-backend/internal/usecase"
)

type LeaveHandler struct {
	leave *usecase.LeaveUsecase
}

func NewLeaveHandler(leave *usecase.LeaveUsecase) *LeaveHandler {
	return &LeaveHandler{leave: leave}
}

type ReviewRequest struct {
	Comments string `json:"comments"`
}

func (h *LeaveHandler) Submit(c *fiber.Ctx) error {
	var req usecase.SubmitLeaveInput
	if err := parseBody(c, &req, false); err != nil {
		return respondError(c, err)
	}
	leave, err := h.leave.Submit(c.UserContext(), middleware.CurrentCaller(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Leave request submitted",
		"id":      leave.ID,
		"data":    leave,
	})
}

func (h *LeaveHandler) List(c *fiber.Ctx) error {
	employeeID, err := queryUint(c, "employee_id")
	if err != nil {
		return respondError(c, err)
	}
	f := repository.LeaveFilter{
		EmployeeID: employeeID,
		Status:     c.Query("status"),
		Type:       c.Query("type"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		Page:       page(c),
	}
	rows, count, err := h.leave.List(c.UserContext(), middleware.CurrentCaller(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return successList(c, rows, count)
}

func (h *LeaveHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	leave, err := h.leave.Get(c.UserContext(), middleware.CurrentCaller(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, leave)
}

func (h *LeaveHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var patch usecase.LeavePatch
	if err = parseBody(c, &patch, false); err != nil {
		return respondError(c, err)
	}
	leave, err := h.leave.Update(c.UserContext(), middleware.CurrentCaller(c), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Leave request updated", "data": leave})
}

func (h *LeaveHandler) Approve(c *fiber.Ctx) error {
	return h.review(c, true)
}

func (h *LeaveHandler) Reject(c *fiber.Ctx) error {
	return h.review(c, false)
}

func (h *LeaveHandler) review(c *fiber.Ctx, approve bool) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req ReviewRequest
	if err = parseBody(c, &req, true); err != nil {
		return respondError(c, err)
	}

	review, msg := h.leave.Reject, "Leave request rejected"
	if approve {
		review, msg = h.leave.Approve, "Leave request approved"
	}
	leave, err := review(c.UserContext(), middleware.CurrentCaller(c), id, req.Comments)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": msg, "data": leave})
}

func (h *LeaveHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	leave, err := h.leave.Cancel(c.UserContext(), middleware.CurrentCaller(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Leave request cancelled", "data": leave})
}

// Delete hard-deletes for admin and hr. Everyone else cancels their own request.
func (h *LeaveHandler) Delete(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)
	if caller == nil || !caller.Role.Privileged() {
		return h.Cancel(c)
	}
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err = h.leave.Delete(c.UserContext(), caller, id); err != nil {
		return respondError(c, err)
	}
	return successMessage(c, "Leave request deleted")
}
