package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/users/auth/controller"
	rateLimiter "bisig_backend/internals/middlewares"
)

// AuthRoutes mounts /api/auth. Every handler sits behind guard, which lets the
// public entries of the policy through without a session.
func AuthRoutes(api fiber.Router, db *gorm.DB, guard fiber.Handler) {
	ctrl := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/register", guard, rateLimiter.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", guard, rateLimiter.LoginRateLimiter(), ctrl.Login)
	auth.Post("/google", guard, rateLimiter.LoginRateLimiter(), ctrl.LoginGoogle)

	auth.Post("/logout", guard, ctrl.Logout)
	auth.Get("/me", guard, ctrl.Me)
	auth.Patch("/me", guard, ctrl.UpdateMe)
}
