package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/certificates/certificates/controller"
)

func CertificateRoutes(api fiber.Router, db *gorm.DB, guard fiber.Handler) {
	ctrl := controller.NewCertificateController(db)

	cert := api.Group("/certificates")
	cert.Get("/", guard, ctrl.List)
	cert.Post("/", guard, ctrl.Create)
	cert.Get("/:id", guard, ctrl.Get)
	cert.Put("/:id/status", guard, ctrl.UpdateStatus)
	cert.Get("/:id/qr", guard, ctrl.QR)
	cert.Delete("/:id", guard, ctrl.Delete)

	api.Get("/public/certificates/verify/:controlNumber", guard, ctrl.Verify)
}
