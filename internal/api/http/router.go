package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cvforge/cv-service/internal/api/http/handlers"
	"github.com/cvforge/cv-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	CVs            *handlers.CVsHandler
	Reviews        *handlers.ReviewsHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	api := app.Group("/api")

	cv := api.Group("/cv")
	cv.Get("/", cfg.CVs.List)
	cv.Get("/visible", cfg.CVs.ListVisible)
	cv.Get("/user/:userId", cfg.AuthMiddleware.Handle, cfg.CVs.ListByOwner)
	// Hidden CVs stay readable by their owner, so the read route accepts
	// but does not require credentials.
	cv.Get("/:id", cfg.AuthMiddleware.HandleOptional, cfg.CVs.Get)
	cv.Post("/", cfg.AuthMiddleware.Handle, cfg.CVs.Create)
	cv.Put("/:id", cfg.AuthMiddleware.Handle, cfg.CVs.Update)
	cv.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.CVs.Delete)
	cv.Patch("/:id/visibility", cfg.AuthMiddleware.Handle, cfg.CVs.SetVisibility)

	reviews := api.Group("/reviews")
	reviews.Get("/", cfg.Reviews.List)
	reviews.Get("/cv/:cvId", cfg.Reviews.ListForCV)
	reviews.Get("/user/:userId", cfg.Reviews.ListByAuthor)
	reviews.Get("/:id", cfg.Reviews.Get)
	reviews.Post("/", cfg.AuthMiddleware.Handle, cfg.Reviews.Create)
	reviews.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Reviews.Update)
	reviews.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Reviews.Delete)

	user := api.Group("/user", cfg.AuthMiddleware.Handle)
	user.Get("/me", cfg.Users.Me)
	user.Put("/:id", cfg.Users.Update)
	user.Delete("/:id", cfg.Users.Delete)
}
