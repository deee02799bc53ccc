package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/finance/budgets/dto"
	"bisig_backend/internals/features/finance/budgets/model"
	permModel "bisig_backend/internals/features/finance/permissions/model"
	permService "bisig_backend/internals/features/finance/permissions/service"
	helper "bisig_backend/internals/helpers"
)

type BudgetCategoryController struct {
	DB *gorm.DB
}

func NewBudgetCategoryController(db *gorm.DB) *BudgetCategoryController {
	return &BudgetCategoryController{DB: db}
}

const msgDuplicateCategory = "Budget category already exists"

var categorySortColumns = map[string]string{
	"name":       "budget_category_name",
	"code":       "budget_category_code",
	"created_at": "budget_category_created_at",
}

// GET /api/budget-categories
func (bc *BudgetCategoryController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "name", "asc", helper.AdminOpts)
	q := bc.DB.WithContext(c.UserContext()).Model(&model.BudgetCategoryModel{})
	if s := strings.ToLower(strings.TrimSpace(c.Query("q"))); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(budget_category_name) LIKE ? OR LOWER(budget_category_code) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.ErrInternal("failed to count categories", err)
	}
	var rows []model.BudgetCategoryModel
	if err := p.Apply(q, categorySortColumns, "name").Find(&rows).Error; err != nil {
		return helper.ErrInternal("failed to list categories", err)
	}
	out := make([]dto.CategoryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromCategory(&rows[i]))
	}
	return helper.JsonList(c, "Budget categories fetched", out, helper.BuildMeta(total, p))
}

// POST /api/budget-categories
func (bc *BudgetCategoryController) Create(c *fiber.Ctx) error {
	if err := permService.Check(bc.DB, c, permModel.CapManageBudgets, nil); err != nil {
		return err
	}
	var req dto.CategoryRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	var m model.BudgetCategoryModel
	req.Apply(&m)
	if err := bc.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.FromDB(err, "", msgDuplicateCategory)
	}
	return helper.JsonCreated(c, "Budget category created", dto.FromCategory(&m))
}

// PUT /api/budget-categories/:id
func (bc *BudgetCategoryController) Update(c *fiber.Ctx) error {
	if err := permService.Check(bc.DB, c, permModel.CapManageBudgets, nil); err != nil {
		return err
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CategoryRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	db := bc.DB.WithContext(c.UserContext())
	var m model.BudgetCategoryModel
	if err := db.Where("budget_category_id = ?", id).Take(&m).Error; err != nil {
		return helper.FromDB(err, "Budget category not found", "")
	}
	req.Apply(&m)
	if err := db.Model(&m).
		Select("budget_category_name", "budget_category_code", "budget_category_description").
		Updates(&m).Error; err != nil {
		return helper.FromDB(err, "Budget category not found", msgDuplicateCategory)
	}
	return helper.JsonUpdated(c, "Budget category updated", dto.FromCategory(&m))
}

// DELETE /api/budget-categories/:id
func (bc *BudgetCategoryController) Delete(c *fiber.Ctx) error {
	if err := permService.Check(bc.DB, c, permModel.CapManageBudgets, nil); err != nil {
		return err
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	err = bc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.BudgetModel{}).Where("budget_category_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return helper.ErrConflict("Budget category is used by budgets and cannot be deleted")
		}
		res := tx.Where("budget_category_id = ?", id).Delete(&model.BudgetCategoryModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return helper.FromDB(err, "Budget category not found", "")
	}
	return helper.JsonDeleted(c, "Budget category deleted", fiber.Map{"id": id})
}
