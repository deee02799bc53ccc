package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/reports/controller"
)

func ReportRoutes(api fiber.Router, db *gorm.DB, guard fiber.Handler) {
	ctrl := controller.NewReportController(db)

	r := api.Group("/reports")
	r.Get("/residents", guard, ctrl.Residents)
	r.Get("/certificates", guard, ctrl.Certificates)
	r.Get("/summary", guard, ctrl.Summary)
}
