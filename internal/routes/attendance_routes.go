package routes

import (
	"github.com/gofiber/fiber/v2"

	"employee-management-backend/internal/access"
	"employee-management-backend/internal/handler"
	"employee-management-backend/internal/middleware"
	"employee-management-backend/internal/usecase"
)

func SetupAttendanceRoutes(app *fiber.App, d *Deps) {
	uc := usecase.NewAttendanceUsecase(d.Attendance, d.Employees, d.Policy, d.Bus, d.Config.Attendance)
	hdl := handler.NewAttendanceHandler(uc)

	api := app.Group("/api/attendance", d.auth())
	api.Post("/clock-in", hdl.ClockIn)
	api.Post("/clock-out", hdl.ClockOut)
	api.Get("/status", hdl.Status)
	api.Get("/", hdl.List)

	// Admin / HR
	api.Post("/absent", middleware.Permission(d.Policy, access.AttendanceMarkAbsent), hdl.MarkAbsent)
}
