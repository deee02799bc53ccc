package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bisig_backend/internals/features/finance/budgets/dto"
	"bisig_backend/internals/features/finance/budgets/model"
	"bisig_backend/internals/features/finance/budgets/service"
	expenseModel "bisig_backend/internals/features/finance/expenses/model"
	fiscalYearModel "bisig_backend/internals/features/finance/fiscal_years/model"
	permModel "bisig_backend/internals/features/finance/permissions/model"
	permService "bisig_backend/internals/features/finance/permissions/service"
	helper "bisig_backend/internals/helpers"
)

type BudgetController struct {
	DB *gorm.DB
}

func NewBudgetController(db *gorm.DB) *BudgetController {
	return &BudgetController{DB: db}
}

const msgDuplicateBudget = "A budget for this category and fiscal year already exists"

var budgetSortColumns = map[string]string{
	"created_at":       "budget_created_at",
	"allocated_amount": "budget_allocated_amount",
}

func (bc *BudgetController) respond(db *gorm.DB, rows []model.BudgetModel) ([]dto.BudgetResponse, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.BudgetID)
	}
	spent, err := service.SpentByBudget(db, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BudgetResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromBudget(&rows[i], spent[rows[i].BudgetID]))
	}
	return out, nil
}

// GET /api/budgets?fiscal_year_id=&category_id=
func (bc *BudgetController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	db := bc.DB.WithContext(c.UserContext())
	q := db.Model(&model.BudgetModel{})
	if id, err := uuid.Parse(c.Query("fiscal_year_id")); err == nil {
		q = q.Where("budget_fiscal_year_id = ?", id)
	}
	if id, err := uuid.Parse(c.Query("category_id")); err == nil {
		q = q.Where("budget_category_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.ErrInternal("failed to count budgets", err)
	}
	var rows []model.BudgetModel
	if err := p.Apply(q.Preload("Category"), budgetSortColumns, "created_at").Find(&rows).Error; err != nil {
		return helper.ErrInternal("failed to list budgets", err)
	}
	out, err := bc.respond(db, rows)
	if err != nil {
		return helper.ErrInternal("failed to total expenses", err)
	}
	return helper.JsonList(c, "Budgets fetched", out, helper.BuildMeta(total, p))
}

func (bc *BudgetController) load(db *gorm.DB, c *fiber.Ctx) (*model.BudgetModel, error) {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return nil, err
	}
	var m model.BudgetModel
	if err := db.Preload("Category").Where("budget_id = ?", id).Take(&m).Error; err != nil {
		return nil, helper.FromDB(err, "Budget not found", "")
	}
	return &m, nil
}

func (bc *BudgetController) one(db *gorm.DB, m *model.BudgetModel) (dto.BudgetResponse, error) {
	out, err := bc.respond(db, []model.BudgetModel{*m})
	if err != nil {
		return dto.BudgetResponse{}, helper.ErrInternal("failed to total expenses", err)
	}
	return out[0], nil
}

// GET /api/budgets/:id
func (bc *BudgetController) Get(c *fiber.Ctx) error {
	db := bc.DB.WithContext(c.UserContext())
	m, err := bc.load(db, c)
	if err != nil {
		return err
	}
	out, err := bc.one(db, m)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Budget fetched", out)
}

// POST /api/budgets
func (bc *BudgetController) Create(c *fiber.Ctx) error {
	if err := permService.Check(bc.DB, c, permModel.CapManageBudgets, nil); err != nil {
		return err
	}
	var req dto.CreateBudgetRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m := req.ToModel()
	db := bc.DB.WithContext(c.UserContext())

	var n int64
	if err := db.Model(&model.BudgetCategoryModel{}).Where("budget_category_id = ?", m.BudgetCategoryID).Count(&n).Error; err != nil {
		return helper.ErrInternal("failed to check category", err)
	}
	if n == 0 {
		return helper.ErrValidationFields(map[string][]string{"category_id": {"category does not exist"}})
	}
	if err := db.Model(&fiscalYearModel.FiscalYearModel{}).Where("fiscal_year_id = ?", m.BudgetFiscalYearID).Count(&n).Error; err != nil {
		return helper.ErrInternal("failed to check fiscal year", err)
	}
	if n == 0 {
		return helper.ErrValidationFields(map[string][]string{"fiscal_year_id": {"fiscal year does not exist"}})
	}

	if err := db.Create(m).Error; err != nil {
		return helper.FromDB(err, "", msgDuplicateBudget)
	}
	m, err := bc.reload(db, m.BudgetID)
	if err != nil {
		return err
	}
	out, err := bc.one(db, m)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Budget created", out)
}

func (bc *BudgetController) reload(db *gorm.DB, id uuid.UUID) (*model.BudgetModel, error) {
	var m model.BudgetModel
	if err := db.Preload("Category").Where("budget_id = ?", id).Take(&m).Error; err != nil {
		return nil, helper.FromDB(err, "Budget not found", "")
	}
	return &m, nil
}

// PUT /api/budgets/:id
func (bc *BudgetController) Update(c *fiber.Ctx) error {
	if err := permService.Check(bc.DB, c, permModel.CapManageBudgets, nil); err != nil {
		return err
	}
	db := bc.DB.WithContext(c.UserContext())
	m, err := bc.load(db, c)
	if err != nil {
		return err
	}
	var req dto.UpdateBudgetRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	if updates := req.Updates(); len(updates) > 0 {
		if err := db.Model(&model.BudgetModel{}).Where("budget_id = ?", m.BudgetID).Updates(updates).Error; err != nil {
			return helper.FromDB(err, "Budget not found", msgDuplicateBudget)
		}
		if m, err = bc.reload(db, m.BudgetID); err != nil {
			return err
		}
	}
	out, err := bc.one(db, m)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Budget updated", out)
}

// DELETE /api/budgets/:id
func (bc *BudgetController) Delete(c *fiber.Ctx) error {
	if err := permService.Check(bc.DB, c, permModel.CapManageBudgets, nil); err != nil {
		return err
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	err = bc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&expenseModel.ExpenseModel{}).Where("expense_budget_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return helper.ErrConflict("Budget has expenses and cannot be deleted")
		}
		res := tx.Where("budget_id = ?", id).Delete(&model.BudgetModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return helper.FromDB(err, "Budget not found", "")
	}
	return helper.JsonDeleted(c, "Budget deleted", fiber.Map{"id": id})
}
