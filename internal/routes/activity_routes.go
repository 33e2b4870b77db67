package routes

import (
	"github.com/gofiber/fiber/v2"

	"employee-management-backend/internal/access"
	"employee-management-backend/internal/handler"
	"employee-management-backend/internal/middleware"
	"employee-management-backend/internal/usecase"
)

func SetupActivityRoutes(app *fiber.App, d *Deps) {
	uc := usecase.NewActivityUsecase(d.Activity, d.Policy)
	hdl := handler.NewActivityHandler(uc)

	app.Get("/api/activity-logs",
		d.auth(),
		middleware.Permission(d.Policy, access.ActivityView),
		hdl.List,
	)
}
