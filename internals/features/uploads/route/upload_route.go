package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/uploads/controller"
	"bisig_backend/internals/helpers/storage"
)

func UploadRoutes(api fiber.Router, db *gorm.DB, guard fiber.Handler, store storage.Store) {
	ctrl := controller.NewUploadController(db, store)

	r := api.Group("/uploads")
	r.Post("/", guard, ctrl.Create)
	r.Get("/:id", guard, ctrl.Get)
}
