package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/finance/permissions/controller"
)

func FinancialPermissionRoutes(api fiber.Router, db *gorm.DB, guard fiber.Handler) {
	ctrl := controller.NewFinancialPermissionController(db)

	api.Get("/users/:id/financial-permissions", guard, ctrl.Get)
	api.Put("/users/:id/financial-permissions", guard, ctrl.Upsert)
}
