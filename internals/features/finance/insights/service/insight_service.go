package service

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	aipModel "bisig_backend/internals/features/finance/aip/model"
	budgetModel "bisig_backend/internals/features/finance/budgets/model"
	budgetService "bisig_backend/internals/features/finance/budgets/service"
	expenseModel "bisig_backend/internals/features/finance/expenses/model"
	fyModel "bisig_backend/internals/features/finance/fiscal_years/model"
)

const (
	FlagOverBudget     = "OVER_BUDGET"
	FlagAtRisk         = "AT_RISK"
	FlagUnderUtilized  = "UNDER_UTILIZED"
	FlagOnTrack        = "ON_TRACK"
	FlagBehindSchedule = "BEHIND_SCHEDULE"

	// percentage points progress may trail elapsed time
	scheduleSlack = 20.0
)

// BudgetFlag classifies a utilization ratio. UNDER_UTILIZED only applies once
// half of the fiscal year has passed.
func BudgetFlag(utilization, elapsed float64) string {
	switch {
	case utilization > 1:
		return FlagOverBudget
	case utilization >= 0.9:
		return FlagAtRisk
	case elapsed >= 0.5 && utilization < 0.5:
		return FlagUnderUtilized
	}
	return FlagOnTrack
}

// ProjectFlags returns every flag that applies to a project; empty means on track.
func ProjectFlags(progressPct, elapsed, spent, budget float64) []string {
	flags := []string{}
	if elapsed*100-progressPct > scheduleSlack {
		flags = append(flags, FlagBehindSchedule)
	}
	if spent > budget {
		flags = append(flags, FlagOverBudget)
	}
	return flags
}

type BudgetVariance struct {
	BudgetID     uuid.UUID `json:"budget_id"`
	CategoryName string    `json:"category_name"`
	Allocated    float64   `json:"allocated"`
	Spent        float64   `json:"spent"`
	Variance     float64   `json:"variance"`
	Utilization  float64   `json:"utilization"`
	Flag         string    `json:"flag"`
}

// Variance reports allocated vs. approved spend for every budget of fy.
func Variance(db *gorm.DB, fy *fyModel.FiscalYearModel, now time.Time) ([]BudgetVariance, error) {
	var budgets []budgetModel.BudgetModel
	if err := db.Preload("Category").
		Where("budget_fiscal_year_id = ?", fy.FiscalYearID).
		Order("budget_created_at ASC").
		Find(&budgets).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(budgets))
	for _, b := range budgets {
		ids = append(ids, b.BudgetID)
	}
	spent, err := budgetService.SpentByBudget(db, ids)
	if err != nil {
		return nil, err
	}

	elapsed := fy.ElapsedRatio(now)
	out := make([]BudgetVariance, 0, len(budgets))
	for _, b := range budgets {
		s := spent[b.BudgetID]
		v := BudgetVariance{
			BudgetID:  b.BudgetID,
			Allocated: b.BudgetAllocatedAmount,
			Spent:     s,
			Variance:  b.BudgetAllocatedAmount - s,
		}
		switch {
		case b.BudgetAllocatedAmount > 0:
			util := s / b.BudgetAllocatedAmount
			v.Utilization = round2(util)
			v.Flag = BudgetFlag(util, elapsed)
		case s > 0:
			// spending against a zero allocation
			v.Flag = FlagOverBudget
		default:
			v.Flag = BudgetFlag(0, elapsed)
		}
		if b.Category != nil {
			v.CategoryName = b.Category.BudgetCategoryName
		}
		out = append(out, v)
	}
	return out, nil
}

type ProjectRisk struct {
	ProjectID       uuid.UUID `json:"project_id"`
	Title           string    `json:"title"`
	Status          string    `json:"status"`
	ProgressPercent int       `json:"progress_percent"`
	ElapsedPercent  float64   `json:"elapsed_percent"`
	Budget          float64   `json:"budget"`
	Spent           float64   `json:"spent"`
	Flags           []string  `json:"flags"`
}

// Risks evaluates the projects of the fiscal year's investment program.
// Completed and cancelled projects are skipped.
func Risks(db *gorm.DB, fy *fyModel.FiscalYearModel, now time.Time) ([]ProjectRisk, error) {
	var projects []aipModel.ProjectModel
	if err := db.
		Where("project_aip_id IN (SELECT aip_id FROM annual_investment_programs WHERE aip_fiscal_year_id = ?)", fy.FiscalYearID).
		Where("project_status NOT IN ?", []string{aipModel.ProjectCompleted, aipModel.ProjectCancelled}).
		Order("project_created_at ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ProjectID)
	}
	spent, err := spentByProject(db, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ProjectRisk, 0, len(projects))
	for _, p := range projects {
		elapsed := projectElapsed(p, fy, now)
		s := spent[p.ProjectID]
		out = append(out, ProjectRisk{
			ProjectID:       p.ProjectID,
			Title:           p.ProjectTitle,
			Status:          p.ProjectStatus,
			ProgressPercent: p.ProjectProgressPercent,
			ElapsedPercent:  round2(elapsed * 100),
			Budget:          p.ProjectBudgetAmount,
			Spent:           s,
			Flags:           ProjectFlags(float64(p.ProjectProgressPercent), elapsed, s, p.ProjectBudgetAmount),
		})
	}
	return out, nil
}

// projectElapsed measures against the project's own window, falling back to
// the fiscal year for missing dates.
func projectElapsed(p aipModel.ProjectModel, fy *fyModel.FiscalYearModel, now time.Time) float64 {
	window := fyModel.FiscalYearModel{
		FiscalYearStartDate: fy.FiscalYearStartDate,
		FiscalYearEndDate:   fy.FiscalYearEndDate,
	}
	if p.ProjectStartDate != nil {
		window.FiscalYearStartDate = *p.ProjectStartDate
	}
	if p.ProjectEndDate != nil {
		window.FiscalYearEndDate = *p.ProjectEndDate
	}
	return window.ElapsedRatio(now)
}

func spentByProject(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]float64, error) {
	out := make(map[uuid.UUID]float64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		ProjectID uuid.UUID
		Total     float64
	}
	err := db.Model(&expenseModel.ExpenseModel{}).
		Select("expense_project_id AS project_id, COALESCE(SUM(expense_amount), 0) AS total").
		Where("expense_project_id IN ? AND expense_status = ?", ids, expenseModel.StatusApproved).
		Group("expense_project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ProjectID] = r.Total
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
