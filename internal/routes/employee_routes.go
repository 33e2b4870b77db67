package routes

import (
	"github.com/gofiber/fiber/v2"

	"employee-management-backend/internal/access"
	"employee-management-backend/internal/handler"
	"employee-management-backend/internal/middleware"
	"employee-management-backend/internal/usecase"
)

func SetupEmployeeRoutes(app *fiber.App, d *Deps) {
	uc := usecase.NewEmployeeUsecase(d.Employees, d.Policy, d.Bus)
	hdl := handler.NewEmployeeHandler(uc)
	manage := middleware.Permission(d.Policy, access.EmployeeManage)

	api := app.Group("/api/employees", d.auth())
	api.Get("/:id", hdl.Get)
	// Employees may edit their own contact details.
	api.Put("/:id", hdl.Update)

	api.Get("/", manage, hdl.List)
	api.Post("/", manage, hdl.Create)
	api.Delete("/:id", manage, hdl.Delete)
}
