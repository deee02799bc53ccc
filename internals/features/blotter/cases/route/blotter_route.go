package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/blotter/cases/controller"
	"bisig_backend/internals/helpers/storage"
)

func BlotterRoutes(api fiber.Router, db *gorm.DB, guard fiber.Handler, store storage.Store) {
	ctrl := controller.NewBlotterController(db, store)

	r := api.Group("/blotter")
	r.Get("/", guard, ctrl.List)
	r.Post("/", guard, ctrl.Create)
	r.Get("/:id", guard, ctrl.Get)
	r.Put("/:id", guard, ctrl.Update)
	r.Delete("/:id", guard, ctrl.Delete)

	r.Patch("/:id/status", guard, ctrl.UpdateStatus)
	r.Post("/:id/filing-fee", guard, ctrl.FilingFee)
	r.Get("/:id/history", guard, ctrl.History)

	r.Post("/:id/parties", guard, ctrl.AddParty)
	r.Delete("/:id/parties/:partyId", guard, ctrl.RemoveParty)

	r.Get("/:id/hearings", guard, ctrl.ListHearings)
	r.Post("/:id/hearings", guard, ctrl.CreateHearing)
	r.Put("/:id/hearings/:hearingId", guard, ctrl.UpdateHearing)

	r.Get("/:id/attachments", guard, ctrl.ListAttachments)
	r.Post("/:id/attachments", guard, ctrl.UploadAttachment)
}
