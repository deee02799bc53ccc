package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/finance/insights/controller"
)

func InsightRoutes(api fiber.Router, db *gorm.DB, guard fiber.Handler) {
	ctrl := controller.NewInsightController(db)

	r := api.Group("/insights")
	r.Get("/budget-variance", guard, ctrl.BudgetVariance)
	r.Get("/project-risk", guard, ctrl.ProjectRisk)
	r.Get("/forecast", guard, ctrl.Forecast)
	r.Get("/recommendations", guard, ctrl.Recommendations)
}
