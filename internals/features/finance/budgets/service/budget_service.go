package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	expenseModel "bisig_backend/internals/features/finance/expenses/model"
)

// SpentByBudget sums APPROVED expenses per budget.
func SpentByBudget(db *gorm.DB, budgetIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	out := make(map[uuid.UUID]float64, len(budgetIDs))
	if len(budgetIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		BudgetID uuid.UUID
		Total    float64
	}
	err := db.Model(&expenseModel.ExpenseModel{}).
		Select("expense_budget_id AS budget_id, COALESCE(SUM(expense_amount), 0) AS total").
		Where("expense_budget_id IN ? AND expense_status = ?", budgetIDs, expenseModel.StatusApproved).
		Group("expense_budget_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.BudgetID] = r.Total
	}
	return out, nil
}
