package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/residents/residents/controller"
)

func ResidentRoutes(api fiber.Router, db *gorm.DB, guard fiber.Handler) {
	ctrl := controller.NewResidentController(db)

	r := api.Group("/residents")
	r.Get("/", guard, ctrl.List)
	r.Post("/", guard, ctrl.Create)
	r.Get("/:id", guard, ctrl.Get)
	r.Put("/:id", guard, ctrl.Update)
	r.Delete("/:id", guard, ctrl.Delete)
}
