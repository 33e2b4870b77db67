package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"employee-management-backend/internal/handler"
)

// NewApp creates the fiber application with global middleware and every route group.
func NewApp(d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "employee-management-backend",
		ErrorHandler: handler.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.Config.Server.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	Setup(app, d)
	return app
}

// Setup registers every route group on app.
func Setup(app *fiber.App, d *Deps) {
	SetupHealthRoutes(app, d)
	SetupAuthRoutes(app, d)
	SetupAttendanceRoutes(app, d)
	SetupLeaveRoutes(app, d)
	SetupNotificationRoutes(app, d)
	SetupTaskRoutes(app, d)
	SetupEmployeeRoutes(app, d)
	SetupActivityRoutes(app, d)
}
