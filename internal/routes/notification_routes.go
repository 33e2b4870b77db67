package routes

import (
	"github.com/gofiber/fiber/v2"

	"employee-management-backend/internal/handler"
	"employee-management-backend/internal/usecase"
)

func SetupNotificationRoutes(app *fiber.App, d *Deps) {
	uc := usecase.NewNotificationUsecase(d.Notifications, d.Policy)
	hdl := handler.NewNotificationHandler(uc)

	api := app.Group("/api/notifications", d.auth())
	api.Get("/", hdl.List)
	// Static paths before /:id
	api.Get("/unread-count", hdl.UnreadCount)
	api.Put("/mark-all-read", hdl.MarkAllRead)
	api.Put("/:id/read", hdl.MarkRead)
}
