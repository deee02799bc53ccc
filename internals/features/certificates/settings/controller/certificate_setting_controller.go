package controller

import (
	"errors"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	certModel "bisig_backend/internals/features/certificates/certificates/model"
	"bisig_backend/internals/features/certificates/settings/model"
	helper "bisig_backend/internals/helpers"
)

type CertificateSettingController struct {
	DB *gorm.DB
}

func NewCertificateSettingController(db *gorm.DB) *CertificateSettingController {
	return &CertificateSettingController{DB: db}
}

// Load returns the stored settings, or the defaults when none were saved.
func Load(db *gorm.DB) (model.Settings, *model.CertificateSettingModel, error) {
	var row model.CertificateSettingModel
	err := db.Where("certificate_setting_key = ?", model.SingletonKey).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DefaultSettings(), nil, nil
	}
	if err != nil {
		return model.Settings{}, nil, err
	}
	s := model.DefaultSettings()
	if err := sonic.Unmarshal(row.CertificateSettingPayload, &s); err != nil {
		return model.Settings{}, nil, err
	}
	return s, &row, nil
}

func response(s model.Settings, row *model.CertificateSettingModel) fiber.Map {
	out := fiber.Map{"settings": s, "is_default": row == nil}
	if row != nil {
		out["updated_at"] = row.CertificateSettingUpdatedAt
		out["updated_by"] = row.CertificateSettingUpdatedBy
	}
	return out
}

// GET /api/settings/certificates
func (sc *CertificateSettingController) Get(c *fiber.Ctx) error {
	s, row, err := Load(sc.DB.WithContext(c.UserContext()))
	if err != nil {
		return helper.ErrInternal("failed to load certificate settings", err)
	}
	return helper.JsonOK(c, "Certificate settings fetched", response(s, row))
}

// PUT /api/settings/certificates replaces the whole payload.
func (sc *CertificateSettingController) Put(c *fiber.Ctx) error {
	var s model.Settings
	if err := helper.BindAndValidate(c, &s); err != nil {
		return err
	}
	for k := range s.Templates {
		found := false
		for _, t := range certModel.Types {
			if k == t {
				found = true
				break
			}
		}
		if !found {
			return helper.ErrValidationFields(map[string][]string{"templates": {"unknown certificate type " + k}})
		}
	}
	if s.Templates == nil {
		s.Templates = map[string]string{}
	}

	payload, err := sonic.Marshal(s)
	if err != nil {
		return helper.ErrInternal("failed to encode settings", err)
	}
	row := model.CertificateSettingModel{
		CertificateSettingKey:     model.SingletonKey,
		CertificateSettingPayload: datatypes.JSON(payload),
	}
	if uid, err := helper.GetUserID(c); err == nil {
		v := uid.String()
		row.CertificateSettingUpdatedBy = &v
	}

	db := sc.DB.WithContext(c.UserContext())
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "certificate_setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"certificate_setting_payload", "certificate_setting_updated_by", "certificate_setting_updated_at"}),
	}).Create(&row).Error; err != nil {
		return helper.ErrInternal("failed to save certificate settings", err)
	}

	saved, stored, err := Load(db)
	if err != nil {
		return helper.ErrInternal("failed to load certificate settings", err)
	}
	return helper.JsonUpdated(c, "Certificate settings saved", response(saved, stored))
}
