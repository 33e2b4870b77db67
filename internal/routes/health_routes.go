package routes

import (
	"github.com/gofiber/fiber/v2"

	"employee-management-backend/internal/handler"
)

func SetupHealthRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewHealthHandler(d.DB)
	app.Get("/health", hdl.Health)
}
