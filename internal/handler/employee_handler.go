package handler

import (
	"github.com/gofiber/fiber/v2"

	"employee-management-backend/internal/middleware"
	"employee-management-backend/internal/repository"
	"employee-management-backend/internal/usecase"
)

type EmployeeHandler struct {
	employees *usecase.EmployeeUsecase
}

func NewEmployeeHandler(employees *usecase.EmployeeUsecase) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req usecase.CreateEmployeeInput
	if err := parseBody(c, &req, false); err != nil {
		return respondError(c, err)
	}
	emp, err := h.employees.Create(c.UserContext(), middleware.CurrentCaller(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Employee created", "data": emp})
}

func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	f := repository.EmployeeFilter{
		Search:     c.Query("search"),
		Department: c.Query("department"),
		Page:       page(c),
	}
	rows, count, err := h.employees.List(c.UserContext(), middleware.CurrentCaller(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return successList(c, rows, count)
}

func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	emp, err := h.employees.Get(c.UserContext(), middleware.CurrentCaller(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, emp)
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var patch usecase.EmployeePatch
	if err = parseBody(c, &patch, false); err != nil {
		return respondError(c, err)
	}
	emp, err := h.employees.Update(c.UserContext(), middleware.CurrentCaller(c), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Employee updated", "data": emp})
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err = h.employees.Delete(c.UserContext(), middleware.CurrentCaller(c), id); err != nil {
		return respondError(c, err)
	}
	return successMessage(c, "Employee deleted")
}
