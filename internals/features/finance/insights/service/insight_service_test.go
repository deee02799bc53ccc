package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aipModel "bisig_backend/internals/features/finance/aip/model"
	budgetModel "bisig_backend/internals/features/finance/budgets/model"
	expenseModel "bisig_backend/internals/features/finance/expenses/model"
	fyModel "bisig_backend/internals/features/finance/fiscal_years/model"
	"bisig_backend/internals/testutil"
)

func TestBudgetFlag(t *testing.T) {
	cases := []struct {
		util, elapsed float64
		want          string
	}{
		{1.2, 0.1, FlagOverBudget},
		{0.95, 0.1, FlagAtRisk},
		{0.9, 0.9, FlagAtRisk},
		{0.3, 0.4, FlagOnTrack},
		{0.3, 0.6, FlagUnderUtilized},
		{0.7, 0.6, FlagOnTrack},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BudgetFlag(tc.util, tc.elapsed), "util=%v elapsed=%v", tc.util, tc.elapsed)
	}
}

func TestProjectFlags(t *testing.T) {
	assert.Empty(t, ProjectFlags(50, 0.6, 100, 200))
	assert.Equal(t, []string{FlagBehindSchedule}, ProjectFlags(30, 0.6, 100, 200))
	assert.Equal(t, []string{FlagBehindSchedule, FlagOverBudget}, ProjectFlags(10, 0.9, 300, 200))
	assert.Equal(t, []string{FlagOverBudget}, ProjectFlags(100, 1, 300, 200))
}

func TestVarianceAndRisks(t *testing.T) {
	db := testutil.OpenDB(t)
	fy := fyModel.FiscalYearModel{
		FiscalYearYear:      2025,
		FiscalYearName:      "FY 2025",
		FiscalYearStartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		FiscalYearEndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		FiscalYearIsActive:  true,
	}
	require.NoError(t, db.Create(&fy).Error)

	cat := budgetModel.BudgetCategoryModel{BudgetCategoryName: "Infrastructure"}
	require.NoError(t, db.Create(&cat).Error)
	b := budgetModel.BudgetModel{BudgetCategoryID: cat.BudgetCategoryID, BudgetFiscalYearID: fy.FiscalYearID, BudgetAllocatedAmount: 1000}
	require.NoError(t, db.Create(&b).Error)

	aip := aipModel.AIPModel{AIPFiscalYearID: fy.FiscalYearID, AIPTitle: "AIP 2025", AIPStatus: aipModel.AIPStatusDraft}
	require.NoError(t, db.Create(&aip).Error)
	p := aipModel.ProjectModel{
		ProjectAIPID: aip.AIPID, ProjectTitle: "Drainage", ProjectBudgetAmount: 500,
		ProjectStatus: aipModel.ProjectOngoing, ProjectProgressPercent: 10,
	}
	require.NoError(t, db.Create(&p).Error)

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, e := range []expenseModel.ExpenseModel{
		{ExpenseBudgetID: b.BudgetID, ExpenseProjectID: &p.ProjectID, ExpenseAmount: 600, ExpenseStatus: expenseModel.StatusApproved},
		{ExpenseBudgetID: b.BudgetID, ExpenseAmount: 350, ExpenseStatus: expenseModel.StatusApproved},
		{ExpenseBudgetID: b.BudgetID, ExpenseAmount: 900, ExpenseStatus: expenseModel.StatusPending},
	} {
		e.ExpenseDate = day
		e.ExpenseDescription = "materials"
		require.NoError(t, db.Create(&e).Error)
	}

	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	rows, err := Variance(db, &fy, now)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Infrastructure", rows[0].CategoryName)
	assert.InDelta(t, 950, rows[0].Spent, 0.001)
	assert.InDelta(t, 50, rows[0].Variance, 0.001)
	assert.Equal(t, FlagAtRisk, rows[0].Flag)

	risks, err := Risks(db, &fy, now)
	require.NoError(t, err)
	require.Len(t, risks, 1)
	assert.Equal(t, []string{FlagBehindSchedule, FlagOverBudget}, risks[0].Flags)
	assert.InDelta(t, 600, risks[0].Spent, 0.001)
}
