package routes

import (
	"github.com/gofiber/fiber/v2"

	"employee-management-backend/internal/handler"
	"employee-management-backend/internal/usecase"
)

func SetupLeaveRoutes(app *fiber.App, d *Deps) {
	uc := usecase.NewLeaveUsecase(d.Leaves, d.Employees, d.Policy, d.Bus)
	hdl := handler.NewLeaveHandler(uc)

	api := app.Group("/api/leave-requests", d.auth())
	api.Post("/", hdl.Submit)
	api.Get("/", hdl.List)
	api.Get("/:id", hdl.Get)
	api.Put("/:id", hdl.Update)
	api.Delete("/:id", hdl.Delete)

	// Review. Ownership and role checks live in the usecase.
	api.Put("/:id/approve", hdl.Approve)
	api.Put("/:id/reject", hdl.Reject)
	api.Put("/:id/cancel", hdl.Cancel)
}
