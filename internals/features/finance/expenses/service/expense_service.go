package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	aipModel "bisig_backend/internals/features/finance/aip/model"
	budgetModel "bisig_backend/internals/features/finance/budgets/model"
	"bisig_backend/internals/features/finance/expenses/model"
	supplierModel "bisig_backend/internals/features/finance/suppliers/model"
	helper "bisig_backend/internals/helpers"
)

// CheckRefs verifies the budget, project and supplier an expense points at.
// Only active suppliers may receive new expenses.
func CheckRefs(db *gorm.DB, m *model.ExpenseModel) error {
	fields := map[string][]string{}
	var n int64
	if err := db.Model(&budgetModel.BudgetModel{}).Where("budget_id = ?", m.ExpenseBudgetID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		fields["budget_id"] = []string{"budget does not exist"}
	}
	if m.ExpenseProjectID != nil {
		if err := db.Model(&aipModel.ProjectModel{}).Where("project_id = ?", *m.ExpenseProjectID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			fields["project_id"] = []string{"project does not exist"}
		}
	}
	if m.ExpenseSupplierID != nil {
		var s supplierModel.SupplierModel
		err := db.Where("supplier_id = ?", *m.ExpenseSupplierID).Take(&s).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			fields["supplier_id"] = []string{"supplier does not exist"}
		case err != nil:
			return err
		case !s.SupplierIsActive:
			fields["supplier_id"] = []string{"supplier is inactive"}
		}
	}
	if len(fields) > 0 {
		return helper.ErrValidationFields(fields)
	}
	return nil
}

// Decide moves a PENDING expense to APPROVED or REJECTED inside one
// transaction, recording who decided and when.
func Decide(db *gorm.DB, id uuid.UUID, to string, actor uuid.UUID, now time.Time) (*model.ExpenseModel, error) {
	var m model.ExpenseModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("expense_id = ?", id).Take(&m).Error; err != nil {
			return err
		}
		if m.ExpenseStatus != model.StatusPending {
			return helper.ErrValidation(fmt.Sprintf("expense is already %s", m.ExpenseStatus))
		}
		res := tx.Model(&model.ExpenseModel{}).
			Where("expense_id = ? AND expense_status = ?", id, model.StatusPending).
			Updates(map[string]any{
				"expense_status":      to,
				"expense_approved_by": actor,
				"expense_approved_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.ErrConflict("expense was modified concurrently, please retry")
		}
		return tx.Where("expense_id = ?", id).Take(&m).Error
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}
