package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/finance/budgets/controller"
)

func BudgetRoutes(api fiber.Router, db *gorm.DB, guard fiber.Handler) {
	cat := controller.NewBudgetCategoryController(db)
	categories := api.Group("/budget-categories")
	categories.Get("/", guard, cat.List)
	categories.Post("/", guard, cat.Create)
	categories.Put("/:id", guard, cat.Update)
	categories.Delete("/:id", guard, cat.Delete)

	ctrl := controller.NewBudgetController(db)
	budgets := api.Group("/budgets")
	budgets.Get("/", guard, ctrl.List)
	budgets.Post("/", guard, ctrl.Create)
	budgets.Get("/:id", guard, ctrl.Get)
	budgets.Put("/:id", guard, ctrl.Update)
	budgets.Delete("/:id", guard, ctrl.Delete)
}
