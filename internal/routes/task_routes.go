package routes

import (
	"github.com/gofiber/fiber/v2"

	"employee-management-backend/internal/access"
	"employee-management-backend/internal/handler"
	"employee-management-backend/internal/middleware"
	"employee-management-backend/internal/usecase"
)

func SetupTaskRoutes(app *fiber.App, d *Deps) {
	uc := usecase.NewTaskUsecase(d.Tasks, d.Employees, d.Policy, d.Bus)
	hdl := handler.NewTaskHandler(uc)
	manage := middleware.Permission(d.Policy, access.TaskManage)

	api := app.Group("/api/tasks", d.auth())
	api.Get("/", hdl.List)
	api.Get("/:id", hdl.Get)
	api.Put("/:id/status", hdl.UpdateStatus)

	api.Post("/", manage, hdl.Create)
	api.Put("/:id", manage, hdl.Update)
	api.Delete("/:id", manage, hdl.Delete)
}
