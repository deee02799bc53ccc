package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	householdModel "bisig_backend/internals/features/residents/households/model"
	"bisig_backend/internals/features/residents/residents/dto"
	"bisig_backend/internals/features/residents/residents/model"
	"bisig_backend/internals/features/residents/residents/service"
	helper "bisig_backend/internals/helpers"
	"bisig_backend/internals/helpers/dbtime"
)

type ResidentController struct {
	DB *gorm.DB
}

func NewResidentController(db *gorm.DB) *ResidentController {
	return &ResidentController{DB: db}
}

var residentSortColumns = map[string]string{
	"last_name":  "resident_last_name",
	"first_name": "resident_first_name",
	"birth_date": "resident_birth_date",
	"created_at": "resident_created_at",
}

func ensureHousehold(db *gorm.DB, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := db.Model(&householdModel.HouseholdModel{}).Where("household_id = ?", *id).Count(&n).Error; err != nil {
		return helper.ErrInternal("household lookup failed", err)
	}
	if n == 0 {
		return helper.ErrValidationFields(map[string][]string{"household_id": {"household does not exist"}})
	}
	return nil
}

// GET /api/residents
func (rc *ResidentController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "last_name", "asc", helper.DefaultOpts)
	now := dbtime.Now()

	q := service.FilterFromQuery(c).Apply(rc.DB.WithContext(c.UserContext()).Model(&model.ResidentModel{}), now)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.ErrInternal("failed to count residents", err)
	}
	var rows []model.ResidentModel
	if err := p.Apply(q, residentSortColumns, "last_name").Find(&rows).Error; err != nil {
		return helper.ErrInternal("failed to list residents", err)
	}
	return helper.JsonList(c, "Residents fetched", dto.FromModels(rows, now), helper.BuildMeta(total, p))
}

// GET /api/residents/:id
func (rc *ResidentController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var m model.ResidentModel
	if err := rc.DB.WithContext(c.UserContext()).Where("resident_id = ?", id).Take(&m).Error; err != nil {
		return helper.FromDB(err, "Resident not found", "")
	}
	return helper.JsonOK(c, "Resident fetched", dto.FromModel(&m, dbtime.Now()))
}

// POST /api/residents
func (rc *ResidentController) Create(c *fiber.Ctx) error {
	var req dto.CreateResidentRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m, err := req.ToModel()
	if err != nil {
		return helper.ErrValidationFields(map[string][]string{"birth_date": {"must be a date (YYYY-MM-DD)"}})
	}
	if m.ResidentBirthDate.After(dbtime.Now()) {
		return helper.ErrValidationFields(map[string][]string{"birth_date": {"cannot be in the future"}})
	}

	db := rc.DB.WithContext(c.UserContext())
	if err := ensureHousehold(db, m.ResidentHouseholdID); err != nil {
		return err
	}
	if err := db.Create(m).Error; err != nil {
		return helper.FromDB(err, "", "Resident already exists")
	}
	return helper.JsonCreated(c, "Resident created", dto.FromModel(m, dbtime.Now()))
}

// PUT /api/residents/:id
func (rc *ResidentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateResidentRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	updates, err := req.Updates()
	if err != nil {
		return helper.ErrValidationFields(map[string][]string{"birth_date": {"must be a date (YYYY-MM-DD)"}})
	}

	db := rc.DB.WithContext(c.UserContext())
	var m model.ResidentModel
	if err := db.Where("resident_id = ?", id).Take(&m).Error; err != nil {
		return helper.FromDB(err, "Resident not found", "")
	}
	if hid, ok := updates["resident_household_id"].(uuid.UUID); ok {
		if err := ensureHousehold(db, &hid); err != nil {
			return err
		}
	}
	if len(updates) > 0 {
		if err := db.Model(&m).Updates(updates).Error; err != nil {
			return helper.FromDB(err, "Resident not found", "Resident already exists")
		}
		if err := db.Where("resident_id = ?", id).Take(&m).Error; err != nil {
			return helper.FromDB(err, "Resident not found", "")
		}
	}
	return helper.JsonUpdated(c, "Resident updated", dto.FromModel(&m, dbtime.Now()))
}

// DELETE /api/residents/:id
//
// Households headed by the resident lose their head.
func (rc *ResidentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	err = rc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("resident_id = ?", id).Delete(&model.ResidentModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&householdModel.HouseholdModel{}).
			Where("household_head_id = ?", id).
			Update("household_head_id", nil).Error
	})
	if err != nil {
		return helper.FromDB(err, "Resident not found", "")
	}
	return helper.JsonDeleted(c, "Resident deleted", fiber.Map{"id": id})
}
