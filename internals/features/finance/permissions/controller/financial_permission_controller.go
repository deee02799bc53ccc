package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/constants"
	"bisig_backend/internals/features/finance/permissions/dto"
	"bisig_backend/internals/features/finance/permissions/service"
	userModel "bisig_backend/internals/features/users/user/model"
	helper "bisig_backend/internals/helpers"
)

type FinancialPermissionController struct {
	DB *gorm.DB
}

func NewFinancialPermissionController(db *gorm.DB) *FinancialPermissionController {
	return &FinancialPermissionController{DB: db}
}

func (fc *FinancialPermissionController) loadUser(c *fiber.Ctx) (*userModel.UserModel, error) {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return nil, err
	}
	var u userModel.UserModel
	if err := fc.DB.WithContext(c.UserContext()).Where("user_id = ?", id).Take(&u).Error; err != nil {
		return nil, helper.FromDB(err, "User not found", "")
	}
	return &u, nil
}

// GET /api/users/:id/financial-permissions
func (fc *FinancialPermissionController) Get(c *fiber.Ctx) error {
	u, err := fc.loadUser(c)
	if err != nil {
		return err
	}
	p, stored, err := service.Load(fc.DB.WithContext(c.UserContext()), u.UserID)
	if err != nil {
		return helper.ErrInternal("failed to load financial permissions", err)
	}
	return helper.JsonOK(c, "Financial permissions fetched",
		dto.FromModel(p, stored, constants.IsAdminTier(u.UserRole)))
}

// PUT /api/users/:id/financial-permissions
func (fc *FinancialPermissionController) Upsert(c *fiber.Ctx) error {
	u, err := fc.loadUser(c)
	if err != nil {
		return err
	}
	if constants.IsAdminTier(u.UserRole) {
		return helper.ErrValidation("admin-tier users bypass financial permissions")
	}
	var req dto.UpsertFinancialPermissionRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}

	db := fc.DB.WithContext(c.UserContext())
	p, stored, err := service.Load(db, u.UserID)
	if err != nil {
		return helper.ErrInternal("failed to load financial permissions", err)
	}
	req.Apply(&p)
	if err := db.Save(&p).Error; err != nil {
		return helper.FromDB(err, "", "Financial permissions already exist")
	}
	if !stored {
		return helper.JsonCreated(c, "Financial permissions saved", dto.FromModel(p, true, false))
	}
	return helper.JsonUpdated(c, "Financial permissions saved", dto.FromModel(p, true, false))
}
