package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/finance/expenses/controller"
)

func ExpenseRoutes(api fiber.Router, db *gorm.DB, guard fiber.Handler) {
	ctrl := controller.NewExpenseController(db)

	r := api.Group("/expenses")
	r.Get("/", guard, ctrl.List)
	r.Post("/", guard, ctrl.Create)
	r.Get("/:id", guard, ctrl.Get)
	r.Put("/:id", guard, ctrl.Update)
	r.Delete("/:id", guard, ctrl.Delete)
	r.Post("/:id/approve", guard, ctrl.Approve)
	r.Post("/:id/reject", guard, ctrl.Reject)
}
