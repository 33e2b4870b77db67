package handler

import (
	"github.com/gofiber/fiber/v2"

	"employee-management-backend/internal/middleware"
	"employee-management-backend/internal/repository"
	"employee-management-backend/internal/usecase"
)

type TaskHandler struct {
	tasks *usecase.TaskUsecase
}

func NewTaskHandler(tasks *usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type TaskStatusRequest struct {
	Status string `json:"status"`
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var req usecase.CreateTaskInput
	if err := parseBody(c, &req, false); err != nil {
		return respondError(c, err)
	}
	task, err := h.tasks.Create(c.UserContext(), middleware.CurrentCaller(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Task created", "data": task})
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	assignedTo, err := queryUint(c, "assigned_to")
	if err != nil {
		return respondError(c, err)
	}
	f := repository.TaskFilter{
		AssignedTo: assignedTo,
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		Page:       page(c),
	}
	rows, count, err := h.tasks.List(c.UserContext(), middleware.CurrentCaller(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return successList(c, rows, count)
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	task, err := h.tasks.Get(c.UserContext(), middleware.CurrentCaller(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, task)
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var patch usecase.TaskPatch
	if err = parseBody(c, &patch, false); err != nil {
		return respondError(c, err)
	}
	task, err := h.tasks.Update(c.UserContext(), middleware.CurrentCaller(c), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Task updated", "data": task})
}

func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req TaskStatusRequest
	if err = parseBody(c, &req, false); err != nil {
		return respondError(c, err)
	}
	task, err := h.tasks.UpdateStatus(c.UserContext(), middleware.CurrentCaller(c), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Task status updated", "data": task})
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err = h.tasks.Delete(c.UserContext(), middleware.CurrentCaller(c), id); err != nil {
		return respondError(c, err)
	}
	return successMessage(c, "Task deleted")
}
