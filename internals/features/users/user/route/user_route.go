package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "bisig_backend/internals/features/users/user/controller"
)

// UserRoutes mounts the admin user endpoints under /api/users.
func UserRoutes(api fiber.Router, db *gorm.DB, guard fiber.Handler) {
	ctrl := userController.NewUserController(db)

	users := api.Group("/users")
	users.Get("/", guard, ctrl.List)
	users.Post("/", guard, ctrl.Create)
	users.Get("/:id", guard, ctrl.Get)
	users.Patch("/:id", guard, ctrl.Update)
}
