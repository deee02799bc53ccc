package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bisig_backend/internals/features/residents/households/dto"
	"bisig_backend/internals/features/residents/households/model"
	residentDTO "bisig_backend/internals/features/residents/residents/dto"
	residentModel "bisig_backend/internals/features/residents/residents/model"
	helper "bisig_backend/internals/helpers"
	"bisig_backend/internals/helpers/dbtime"
)

const msgDuplicateNumber = "Household number already exists"

type HouseholdController struct {
	DB *gorm.DB
}

func NewHouseholdController(db *gorm.DB) *HouseholdController {
	return &HouseholdController{DB: db}
}

var householdSortColumns = map[string]string{
	"household_number": "household_number",
	"purok":            "household_purok",
	"created_at":       "household_created_at",
}

func memberCounts(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		HouseholdID uuid.UUID
		N           int64
	}
	err := db.Model(&residentModel.ResidentModel{}).
		Select("resident_household_id AS household_id, COUNT(*) AS n").
		Where("resident_household_id IN ?", ids).
		Group("resident_household_id").
		Scan(&rows).Error
	for _, r := range rows {
		out[r.HouseholdID] = r.N
	}
	return out, err
}

func ensureResident(db *gorm.DB, id any) error {
	var n int64
	if err := db.Model(&residentModel.ResidentModel{}).Where("resident_id = ?", id).Count(&n).Error; err != nil {
		return helper.ErrInternal("resident lookup failed", err)
	}
	if n == 0 {
		return helper.ErrValidationFields(map[string][]string{"head_id": {"resident does not exist"}})
	}
	return nil
}

// GET /api/households?q=&purok=
func (hc *HouseholdController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "household_number", "asc", helper.DefaultOpts)
	db := hc.DB.WithContext(c.UserContext())

	q := db.Model(&model.HouseholdModel{})
	if s := strings.ToLower(strings.TrimSpace(c.Query("q"))); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(household_number) LIKE ? OR LOWER(COALESCE(household_street, '')) LIKE ?", like, like)
	}
	if purok := strings.TrimSpace(c.Query("purok")); purok != "" {
		q = q.Where("household_purok = ?", purok)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.ErrInternal("failed to count households", err)
	}
	var rows []model.HouseholdModel
	if err := p.Apply(q, householdSortColumns, "household_number").Find(&rows).Error; err != nil {
		return helper.ErrInternal("failed to list households", err)
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.HouseholdID)
	}
	counts, err := memberCounts(db, ids)
	if err != nil {
		return helper.ErrInternal("failed to count members", err)
	}
	out := make([]dto.HouseholdResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i], counts[rows[i].HouseholdID]))
	}
	return helper.JsonList(c, "Households fetched", out, helper.BuildMeta(total, p))
}

// GET /api/households/:id (includes members)
func (hc *HouseholdController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	db := hc.DB.WithContext(c.UserContext())
	var m model.HouseholdModel
	if err := db.Where("household_id = ?", id).Take(&m).Error; err != nil {
		return helper.FromDB(err, "Household not found", "")
	}
	var members []residentModel.ResidentModel
	if err := db.Where("resident_household_id = ?", id).
		Order("resident_last_name ASC, resident_first_name ASC").
		Find(&members).Error; err != nil {
		return helper.ErrInternal("failed to load members", err)
	}
	return helper.JsonOK(c, "Household fetched", fiber.Map{
		"household": dto.FromModel(&m, int64(len(members))),
		"members":   residentDTO.FromModels(members, dbtime.Now()),
	})
}

// POST /api/households
func (hc *HouseholdController) Create(c *fiber.Ctx) error {
	var req dto.CreateHouseholdRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m := req.ToModel()
	db := hc.DB.WithContext(c.UserContext())
	if m.HouseholdHeadID != nil {
		if err := ensureResident(db, *m.HouseholdHeadID); err != nil {
			return err
		}
	}
	if err := db.Create(m).Error; err != nil {
		return helper.FromDB(err, "", msgDuplicateNumber)
	}
	return helper.JsonCreated(c, "Household created", dto.FromModel(m, 0))
}

// PUT /api/households/:id
func (hc *HouseholdController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateHouseholdRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	db := hc.DB.WithContext(c.UserContext())
	var m model.HouseholdModel
	if err := db.Where("household_id = ?", id).Take(&m).Error; err != nil {
		return helper.FromDB(err, "Household not found", "")
	}

	updates := req.Updates()
	if head, ok := updates["household_head_id"].(uuid.UUID); ok {
		if err := ensureResident(db, head); err != nil {
			return err
		}
	}
	if len(updates) > 0 {
		if err := db.Model(&m).Updates(updates).Error; err != nil {
			return helper.FromDB(err, "Household not found", msgDuplicateNumber)
		}
		if err := db.Where("household_id = ?", id).Take(&m).Error; err != nil {
			return helper.FromDB(err, "Household not found", "")
		}
	}
	counts, err := memberCounts(db, []uuid.UUID{id})
	if err != nil {
		return helper.ErrInternal("failed to count members", err)
	}
	return helper.JsonUpdated(c, "Household updated", dto.FromModel(&m, counts[id]))
}

// DELETE /api/households/:id
//
// Members stay on record with no household.
func (hc *HouseholdController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	err = hc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&residentModel.ResidentModel{}).
			Where("resident_household_id = ?", id).
			Update("resident_household_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("household_id = ?", id).Delete(&model.HouseholdModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return helper.FromDB(err, "Household not found", "")
	}
	return helper.JsonDeleted(c, "Household deleted", fiber.Map{"id": id})
}
