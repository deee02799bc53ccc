package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	aipModel "bisig_backend/internals/features/finance/aip/model"
	budgetModel "bisig_backend/internals/features/finance/budgets/model"
	"bisig_backend/internals/features/finance/fiscal_years/dto"
	"bisig_backend/internals/features/finance/fiscal_years/model"
	"bisig_backend/internals/features/finance/fiscal_years/service"
	permModel "bisig_backend/internals/features/finance/permissions/model"
	permService "bisig_backend/internals/features/finance/permissions/service"
	helper "bisig_backend/internals/helpers"
)

type FiscalYearController struct {
	DB *gorm.DB
}

func NewFiscalYearController(db *gorm.DB) *FiscalYearController {
	return &FiscalYearController{DB: db}
}

const msgDuplicateYear = "Fiscal year already exists"

var fiscalYearSortColumns = map[string]string{
	"year":       "fiscal_year_year",
	"created_at": "fiscal_year_created_at",
}

// GET /api/fiscal-years
func (fc *FiscalYearController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "year", "desc", helper.DefaultOpts)
	q := fc.DB.WithContext(c.UserContext()).Model(&model.FiscalYearModel{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.ErrInternal("failed to count fiscal years", err)
	}
	var rows []model.FiscalYearModel
	if err := p.Apply(q, fiscalYearSortColumns, "year").Find(&rows).Error; err != nil {
		return helper.ErrInternal("failed to list fiscal years", err)
	}
	out := make([]dto.FiscalYearResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i]))
	}
	return helper.JsonList(c, "Fiscal years fetched", out, helper.BuildMeta(total, p))
}

// GET /api/fiscal-years/active
func (fc *FiscalYearController) GetActive(c *fiber.Ctx) error {
	m, err := service.Active(fc.DB.WithContext(c.UserContext()))
	if err != nil {
		return helper.ErrInternal("failed to load active fiscal year", err)
	}
	if m == nil {
		return helper.ErrNotFound("No active fiscal year")
	}
	return helper.JsonOK(c, "Active fiscal year fetched", dto.FromModel(m))
}

// GET /api/fiscal-years/:id
func (fc *FiscalYearController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var m model.FiscalYearModel
	if err := fc.DB.WithContext(c.UserContext()).Where("fiscal_year_id = ?", id).Take(&m).Error; err != nil {
		return helper.FromDB(err, "Fiscal year not found", "")
	}
	return helper.JsonOK(c, "Fiscal year fetched", dto.FromModel(&m))
}

// POST /api/fiscal-years
func (fc *FiscalYearController) Create(c *fiber.Ctx) error {
	if err := permService.Check(fc.DB, c, permModel.CapManageBudgets, nil); err != nil {
		return err
	}
	var req dto.CreateFiscalYearRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m, errs := req.ToModel()
	if len(errs) > 0 {
		return helper.ErrValidationFields(errs)
	}
	if err := service.Create(fc.DB.WithContext(c.UserContext()), m); err != nil {
		return helper.FromDB(err, "", msgDuplicateYear)
	}
	zap.L().Info("fiscal year created", zap.Int("year", m.FiscalYearYear), zap.Bool("active", m.FiscalYearIsActive))
	return helper.JsonCreated(c, "Fiscal year created", dto.FromModel(m))
}

// PUT /api/fiscal-years/:id
func (fc *FiscalYearController) Update(c *fiber.Ctx) error {
	if err := permService.Check(fc.DB, c, permModel.CapManageBudgets, nil); err != nil {
		return err
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateFiscalYearRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	db := fc.DB.WithContext(c.UserContext())
	var m model.FiscalYearModel
	if err := db.Where("fiscal_year_id = ?", id).Take(&m).Error; err != nil {
		return helper.FromDB(err, "Fiscal year not found", "")
	}
	if errs := req.Apply(&m); len(errs) > 0 {
		return helper.ErrValidationFields(errs)
	}
	if err := db.Model(&m).Select("fiscal_year_name", "fiscal_year_start_date", "fiscal_year_end_date").
		Updates(&m).Error; err != nil {
		return helper.FromDB(err, "Fiscal year not found", msgDuplicateYear)
	}
	return helper.JsonUpdated(c, "Fiscal year updated", dto.FromModel(&m))
}

// PATCH /api/fiscal-years/:id/activate
func (fc *FiscalYearController) Activate(c *fiber.Ctx) error {
	if err := permService.Check(fc.DB, c, permModel.CapManageBudgets, nil); err != nil {
		return err
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	m, err := service.Activate(fc.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return helper.FromDB(err, "Fiscal year not found", "")
	}
	zap.L().Info("fiscal year activated", zap.Int("year", m.FiscalYearYear))
	return helper.JsonUpdated(c, "Fiscal year activated", dto.FromModel(m))
}

// DELETE /api/fiscal-years/:id
//
// Years that still carry budgets or an AIP are kept.
func (fc *FiscalYearController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	err = fc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&budgetModel.BudgetModel{}).Where("budget_fiscal_year_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return helper.ErrConflict("Fiscal year has budgets and cannot be deleted")
		}
		if err := tx.Model(&aipModel.AIPModel{}).Where("aip_fiscal_year_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return helper.ErrConflict("Fiscal year has an investment program and cannot be deleted")
		}
		res := tx.Where("fiscal_year_id = ?", id).Delete(&model.FiscalYearModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return helper.FromDB(err, "Fiscal year not found", "")
	}
	return helper.JsonDeleted(c, "Fiscal year deleted", fiber.Map{"id": id})
}
