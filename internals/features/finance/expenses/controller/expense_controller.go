package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bisig_backend/internals/features/finance/expenses/dto"
	"bisig_backend/internals/features/finance/expenses/model"
	"bisig_backend/internals/features/finance/expenses/service"
	permModel "bisig_backend/internals/features/finance/permissions/model"
	permService "bisig_backend/internals/features/finance/permissions/service"
	helper "bisig_backend/internals/helpers"
	"bisig_backend/internals/helpers/dbtime"
)

type ExpenseController struct {
	DB *gorm.DB
}

func NewExpenseController(db *gorm.DB) *ExpenseController {
	return &ExpenseController{DB: db}
}

var expenseSortColumns = map[string]string{
	"expense_date": "expense_date",
	"amount":       "expense_amount",
	"created_at":   "expense_created_at",
}

var msgBadDate = map[string][]string{"expense_date": {"must be a date (YYYY-MM-DD)"}}

// GET /api/expenses?status=&budget_id=&project_id=&supplier_id=&fiscal_year_id=&from=&to=
func (ec *ExpenseController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "expense_date", "desc", helper.DefaultOpts)
	q := ec.DB.WithContext(c.UserContext()).Model(&model.ExpenseModel{})

	if s := strings.ToUpper(strings.TrimSpace(c.Query("status"))); s != "" {
		q = q.Where("expense_status = ?", s)
	}
	for param, col := range map[string]string{
		"budget_id":   "expense_budget_id",
		"project_id":  "expense_project_id",
		"supplier_id": "expense_supplier_id",
	} {
		if id, err := uuid.Parse(c.Query(param)); err == nil {
			q = q.Where(col+" = ?", id)
		}
	}
	if id, err := uuid.Parse(c.Query("fiscal_year_id")); err == nil {
		q = q.Where("expense_budget_id IN (SELECT budget_id FROM budgets WHERE budget_fiscal_year_id = ?)", id)
	}
	if t, err := dbtime.ParseDate(c.Query("from")); err == nil {
		q = q.Where("expense_date >= ?", t)
	}
	if t, err := dbtime.ParseDate(c.Query("to")); err == nil {
		q = q.Where("expense_date < ?", t.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.ErrInternal("failed to count expenses", err)
	}
	var rows []model.ExpenseModel
	if err := p.Apply(q, expenseSortColumns, "expense_date").Find(&rows).Error; err != nil {
		return helper.ErrInternal("failed to list expenses", err)
	}
	out := make([]dto.ExpenseResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i]))
	}
	return helper.JsonList(c, "Expenses fetched", out, helper.BuildMeta(total, p))
}

func (ec *ExpenseController) load(db *gorm.DB, c *fiber.Ctx) (*model.ExpenseModel, error) {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return nil, err
	}
	var m model.ExpenseModel
	if err := db.Where("expense_id = ?", id).Take(&m).Error; err != nil {
		return nil, helper.FromDB(err, "Expense not found", "")
	}
	return &m, nil
}

// GET /api/expenses/:id
func (ec *ExpenseController) Get(c *fiber.Ctx) error {
	m, err := ec.load(ec.DB.WithContext(c.UserContext()), c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Expense fetched", dto.FromModel(m))
}

// POST /api/expenses
func (ec *ExpenseController) Create(c *fiber.Ctx) error {
	var req dto.CreateExpenseRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	if err := permService.Check(ec.DB, c, permModel.CapCreateExpenses, &req.Amount); err != nil {
		return err
	}
	m, err := req.ToModel()
	if err != nil {
		return helper.ErrValidationFields(msgBadDate)
	}
	db := ec.DB.WithContext(c.UserContext())
	if err := service.CheckRefs(db, m); err != nil {
		return helper.FromDB(err, "", "")
	}
	if uid, err := helper.GetUserID(c); err == nil {
		m.ExpenseCreatedBy = &uid
	}
	if err := db.Create(m).Error; err != nil {
		return helper.FromDB(err, "", "Expense already exists")
	}
	zap.L().Info("expense recorded",
		zap.String("expense_id", m.ExpenseID.String()),
		zap.Float64("amount", m.ExpenseAmount))
	return helper.JsonCreated(c, "Expense created", dto.FromModel(m))
}

// PUT /api/expenses/:id (PENDING only)
func (ec *ExpenseController) Update(c *fiber.Ctx) error {
	var req dto.UpdateExpenseRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	db := ec.DB.WithContext(c.UserContext())
	m, err := ec.load(db, c)
	if err != nil {
		return err
	}
	if m.ExpenseStatus != model.StatusPending {
		return helper.ErrValidation("only pending expenses can be modified")
	}
	if err := req.Apply(m); err != nil {
		return helper.ErrValidationFields(msgBadDate)
	}
	if err := permService.Check(ec.DB, c, permModel.CapCreateExpenses, &m.ExpenseAmount); err != nil {
		return err
	}
	if err := service.CheckRefs(db, m); err != nil {
		return helper.FromDB(err, "", "")
	}
	res := db.Model(&model.ExpenseModel{}).
		Where("expense_id = ? AND expense_status = ?", m.ExpenseID, model.StatusPending).
		Select("expense_budget_id", "expense_project_id", "expense_supplier_id", "expense_amount",
			"expense_date", "expense_description", "expense_reference_number").
		Updates(m)
	if res.Error != nil {
		return helper.ErrInternal("failed to update expense", res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.ErrConflict("expense was modified concurrently, please retry")
	}
	return helper.JsonUpdated(c, "Expense updated", dto.FromModel(m))
}

// DELETE /api/expenses/:id (PENDING only)
func (ec *ExpenseController) Delete(c *fiber.Ctx) error {
	if err := permService.Check(ec.DB, c, permModel.CapCreateExpenses, nil); err != nil {
		return err
	}
	db := ec.DB.WithContext(c.UserContext())
	m, err := ec.load(db, c)
	if err != nil {
		return err
	}
	if m.ExpenseStatus != model.StatusPending {
		return helper.ErrValidation("only pending expenses can be deleted")
	}
	res := db.Where("expense_id = ? AND expense_status = ?", m.ExpenseID, model.StatusPending).
		Delete(&model.ExpenseModel{})
	if res.Error != nil {
		return helper.ErrInternal("failed to delete expense", res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.ErrConflict("expense was modified concurrently, please retry")
	}
	return helper.JsonDeleted(c, "Expense deleted", fiber.Map{"id": m.ExpenseID})
}

func (ec *ExpenseController) decide(c *fiber.Ctx, to, msg string) error {
	db := ec.DB.WithContext(c.UserContext())
	m, err := ec.load(db, c)
	if err != nil {
		return err
	}
	if err := permService.Check(ec.DB, c, permModel.CapApproveExpenses, &m.ExpenseAmount); err != nil {
		return err
	}
	actor, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	m, err = service.Decide(db, m.ExpenseID, to, actor, dbtime.Now())
	if err != nil {
		return helper.FromDB(err, "Expense not found", "")
	}
	zap.L().Info("expense decided",
		zap.String("expense_id", m.ExpenseID.String()),
		zap.String("status", to),
		zap.String("by", actor.String()))
	return helper.JsonUpdated(c, msg, dto.FromModel(m))
}

// POST /api/expenses/:id/approve
func (ec *ExpenseController) Approve(c *fiber.Ctx) error {
	return ec.decide(c, model.StatusApproved, "Expense approved")
}

// POST /api/expenses/:id/reject
func (ec *ExpenseController) Reject(c *fiber.Ctx) error {
	return ec.decide(c, model.StatusRejected, "Expense rejected")
}
