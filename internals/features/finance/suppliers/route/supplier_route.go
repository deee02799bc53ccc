package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/finance/suppliers/controller"
)

func SupplierRoutes(api fiber.Router, db *gorm.DB, guard fiber.Handler) {
	ctrl := controller.NewSupplierController(db)

	r := api.Group("/suppliers")
	r.Get("/", guard, ctrl.List)
	r.Post("/", guard, ctrl.Create)
	r.Get("/:id", guard, ctrl.Get)
	r.Put("/:id", guard, ctrl.Update)
	r.Delete("/:id", guard, ctrl.Delete)
}
