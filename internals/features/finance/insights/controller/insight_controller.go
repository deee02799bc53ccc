package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	fyModel "bisig_backend/internals/features/finance/fiscal_years/model"
	fyService "bisig_backend/internals/features/finance/fiscal_years/service"
	"bisig_backend/internals/features/finance/insights/service"
	permModel "bisig_backend/internals/features/finance/permissions/model"
	permService "bisig_backend/internals/features/finance/permissions/service"
	helper "bisig_backend/internals/helpers"
	"bisig_backend/internals/helpers/dbtime"
)

type InsightController struct {
	DB *gorm.DB
}

func NewInsightController(db *gorm.DB) *InsightController {
	return &InsightController{DB: db}
}

// fiscalYear resolves ?fiscal_year_id=, defaulting to the active year.
func (ic *InsightController) fiscalYear(c *fiber.Ctx) (*fyModel.FiscalYearModel, error) {
	db := ic.DB.WithContext(c.UserContext())
	if raw := c.Query("fiscal_year_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, helper.ErrValidation("fiscal_year_id must be a UUID")
		}
		var fy fyModel.FiscalYearModel
		if err := db.Where("fiscal_year_id = ?", id).Take(&fy).Error; err != nil {
			return nil, helper.FromDB(err, "Fiscal year not found", "")
		}
		return &fy, nil
	}
	fy, err := fyService.Active(db)
	if err != nil {
		return nil, helper.ErrInternal("failed to load active fiscal year", err)
	}
	if fy == nil {
		return nil, helper.ErrNotFound("No active fiscal year")
	}
	return fy, nil
}

// GET /api/insights/budget-variance?fiscal_year_id=
func (ic *InsightController) BudgetVariance(c *fiber.Ctx) error {
	if err := permService.Check(ic.DB, c, permModel.CapViewReports, nil); err != nil {
		return err
	}
	fy, err := ic.fiscalYear(c)
	if err != nil {
		return err
	}
	rows, err := service.Variance(ic.DB.WithContext(c.UserContext()), fy, dbtime.Now())
	if err != nil {
		return helper.ErrInternal("failed to compute budget variance", err)
	}
	return helper.JsonOK(c, "Budget variance", fiber.Map{
		"fiscal_year_id": fy.FiscalYearID,
		"year":           fy.FiscalYearYear,
		"budgets":        rows,
	})
}

// GET /api/insights/project-risk?fiscal_year_id=
func (ic *InsightController) ProjectRisk(c *fiber.Ctx) error {
	if err := permService.Check(ic.DB, c, permModel.CapViewReports, nil); err != nil {
		return err
	}
	fy, err := ic.fiscalYear(c)
	if err != nil {
		return err
	}
	rows, err := service.Risks(ic.DB.WithContext(c.UserContext()), fy, dbtime.Now())
	if err != nil {
		return helper.ErrInternal("failed to compute project risk", err)
	}
	return helper.JsonOK(c, "Project risk", fiber.Map{
		"fiscal_year_id": fy.FiscalYearID,
		"year":           fy.FiscalYearYear,
		"projects":       rows,
	})
}

func comingSoon(c *fiber.Ctx) error {
	return helper.JsonOK(c, "Coming Soon", fiber.Map{"available": false})
}

// GET /api/insights/forecast
func (ic *InsightController) Forecast(c *fiber.Ctx) error { return comingSoon(c) }

// GET /api/insights/recommendations
func (ic *InsightController) Recommendations(c *fiber.Ctx) error { return comingSoon(c) }
