package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/certificates/settings/controller"
)

func CertificateSettingRoutes(api fiber.Router, db *gorm.DB, guard fiber.Handler) {
	ctrl := controller.NewCertificateSettingController(db)

	api.Get("/settings/certificates", guard, ctrl.Get)
	api.Put("/settings/certificates", guard, ctrl.Put)
}
