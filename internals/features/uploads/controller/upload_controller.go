package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bisig_backend/internals/features/uploads/dto"
	"bisig_backend/internals/features/uploads/model"
	"bisig_backend/internals/features/uploads/service"
	helper "bisig_backend/internals/helpers"
	"bisig_backend/internals/helpers/storage"
)

type UploadController struct {
	DB    *gorm.DB
	Store storage.Store
}

func NewUploadController(db *gorm.DB, store storage.Store) *UploadController {
	return &UploadController{DB: db, Store: store}
}

// POST /api/uploads (multipart: file, folder?)
func (uc *UploadController) Create(c *fiber.Ctx) error {
	fh, err := service.FormFile(c, "file")
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	stored, err := service.Save(ctx, uc.Store, fh, c.FormValue("folder"))
	if err != nil {
		return err
	}

	m := model.UploadModel{
		UploadOriginalName: stored.OriginalName,
		UploadFileName:     stored.FileName,
		UploadStorePath:    stored.Key,
		UploadURL:          stored.URL,
		UploadContentType:  stored.ContentType,
		UploadSize:         stored.Size,
		UploadPreviewURL:   stored.PreviewURL,
		UploadDriver:       stored.Driver,
	}
	if uid, err := helper.GetUserID(c); err == nil {
		m.UploadUploadedBy = &uid
	}
	if err := uc.DB.WithContext(ctx).Create(&m).Error; err != nil {
		service.Remove(ctx, uc.Store, stored.Key, stored.PreviewURL != nil)
		return helper.ErrInternal("failed to record upload", err)
	}

	zap.L().Info("file uploaded",
		zap.String("key", stored.Key),
		zap.String("content_type", stored.ContentType),
		zap.Int64("size", stored.Size))
	return helper.JsonCreated(c, "File uploaded", dto.FromModel(&m))
}

// GET /api/uploads/:id
func (uc *UploadController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var m model.UploadModel
	if err := uc.DB.WithContext(c.UserContext()).Where("upload_id = ?", id).Take(&m).Error; err != nil {
		return helper.FromDB(err, "Upload not found", "")
	}
	return helper.JsonOK(c, "Upload fetched", dto.FromModel(&m))
}
