package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/residents/households/controller"
)

func HouseholdRoutes(api fiber.Router, db *gorm.DB, guard fiber.Handler) {
	ctrl := controller.NewHouseholdController(db)

	h := api.Group("/households")
	h.Get("/", guard, ctrl.List)
	h.Post("/", guard, ctrl.Create)
	h.Get("/:id", guard, ctrl.Get)
	h.Put("/:id", guard, ctrl.Update)
	h.Delete("/:id", guard, ctrl.Delete)
}
