package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/finance/aip/controller"
)

func AIPRoutes(api fiber.Router, db *gorm.DB, guard fiber.Handler) {
	ctrl := controller.NewAIPController(db)

	aip := api.Group("/aip")
	aip.Get("/", guard, ctrl.List)
	aip.Post("/", guard, ctrl.Create)
	aip.Get("/:id", guard, ctrl.Get)
	aip.Put("/:id", guard, ctrl.Update)
	aip.Delete("/:id", guard, ctrl.Delete)
	aip.Post("/:id/projects", guard, ctrl.CreateProject)

	projects := api.Group("/projects")
	projects.Get("/:id", guard, ctrl.GetProject)
	projects.Put("/:id", guard, ctrl.UpdateProject)
	projects.Delete("/:id", guard, ctrl.DeleteProject)
	projects.Post("/:id/milestones", guard, ctrl.CreateMilestone)

	milestones := api.Group("/milestones")
	milestones.Put("/:id", guard, ctrl.UpdateMilestone)
	milestones.Delete("/:id", guard, ctrl.DeleteMilestone)
}
