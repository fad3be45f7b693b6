package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/course-service/internal/api/http/handlers"
	"github.com/spec-kit/course-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Courses        *handlers.CoursesHandler
	Lectures       *handlers.LecturesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/signup", cfg.Auth.SignUp)
	app.Post("/login", cfg.Auth.Login)

	courses := app.Group("/courses", cfg.AuthMiddleware.Handle)
	courses.Post("", auth.RequireAdmin(), cfg.Courses.Create)
	courses.Get("", cfg.Courses.List)
	courses.Post("/:courseId/register", cfg.Courses.Register)
	courses.Post("/:courseId/lectures", auth.RequireAdmin(), cfg.Lectures.Create)
	courses.Get("/:courseId/lectures", cfg.Lectures.List)
}
