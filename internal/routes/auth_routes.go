package routes

import (
	"github.com/gofiber/fiber/v2"

	"employee-management-backend/internal/handler"
	"employee-management-backend/internal/usecase"
)

func SetupAuthRoutes(app *fiber.App, d *Deps) {
	uc := usecase.NewUserUsecase(d.Users, d.Employees, d.Tokens, d.Bus)
	hdl := handler.NewAuthHandler(uc)

	api := app.Group("/api/auth")
	api.Post("/login", hdl.Login)

	// Authenticated
	api.Get("/me", d.auth(), hdl.Me)
	api.Put("/password", d.auth(), hdl.ChangePassword)
}
