package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/finance/fiscal_years/controller"
)

func FiscalYearRoutes(api fiber.Router, db *gorm.DB, guard fiber.Handler) {
	ctrl := controller.NewFiscalYearController(db)

	r := api.Group("/fiscal-years")
	r.Get("/", guard, ctrl.List)
	r.Post("/", guard, ctrl.Create)
	r.Get("/active", guard, ctrl.GetActive)
	r.Get("/:id", guard, ctrl.Get)
	r.Put("/:id", guard, ctrl.Update)
	r.Patch("/:id/activate", guard, ctrl.Activate)
	r.Delete("/:id", guard, ctrl.Delete)
}
