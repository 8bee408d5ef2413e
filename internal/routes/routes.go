package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/staffdir/staffdir-backend/internal/config"
	"github.com/staffdir/staffdir-backend/internal/handlers"
	"github.com/staffdir/staffdir-backend/internal/middleware"
	"github.com/staffdir/staffdir-backend/internal/storage"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	store storage.ObjectStorage,
	authHandler *handlers.AuthHandler,
	employeeHandler *handlers.EmployeeHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Auth — public
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Employees — every route, delete included, goes through the gate.
	employees := api.Group("/employees", middleware.JWTProtected(cfg))
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/:id", employeeHandler.Get)
	employees.Put("/:id", employeeHandler.Update)
	employees.Patch("/:id/active", employeeHandler.SetActive)
	employees.Delete("/:id", employeeHandler.Delete)

	// Uploaded images are public reads when stored on local disk. The
	// MinIO backend serves objects from its own endpoint.
	if local, ok := store.(*storage.Local); ok {
		app.Static("/media", local.Dir())
	}
}
