package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	blotterModel "bisig_backend/internals/features/blotter/cases/model"
	certController "bisig_backend/internals/features/certificates/certificates/controller"
	certDTO "bisig_backend/internals/features/certificates/certificates/dto"
	certModel "bisig_backend/internals/features/certificates/certificates/model"
	certService "bisig_backend/internals/features/certificates/certificates/service"
	budgetModel "bisig_backend/internals/features/finance/budgets/model"
	budgetService "bisig_backend/internals/features/finance/budgets/service"
	fyService "bisig_backend/internals/features/finance/fiscal_years/service"
	householdModel "bisig_backend/internals/features/residents/households/model"
	residentDTO "bisig_backend/internals/features/residents/residents/dto"
	residentModel "bisig_backend/internals/features/residents/residents/model"
	residentService "bisig_backend/internals/features/residents/residents/service"
	helper "bisig_backend/internals/helpers"
	"bisig_backend/internals/helpers/dbtime"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

func wantsCSV(c *fiber.Ctx) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(c.Query("format", "csv"))) {
	case "csv":
		return true, nil
	case "json":
		return false, nil
	}
	return false, helper.ErrValidation("format must be csv or json")
}

func reportFilename(name string) string {
	return name + "-" + dbtime.Today().Format("2006-01-02") + ".csv"
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

var residentHeader = []string{
	"Full Name", "Birth Date", "Age", "Gender", "Civil Status", "Contact Number", "Email",
	"Address", "Occupation", "Voter", "PWD", "Senior",
}

// GET /api/reports/residents?format=csv|json plus the resident list filters
func (rc *ReportController) Residents(c *fiber.Ctx) error {
	asCSV, err := wantsCSV(c)
	if err != nil {
		return err
	}
	now := dbtime.Now()
	q := residentService.FilterFromQuery(c).
		Apply(rc.DB.WithContext(c.UserContext()).Model(&residentModel.ResidentModel{}), now)

	var rows []residentModel.ResidentModel
	if err := q.Order("resident_last_name ASC, resident_first_name ASC").Find(&rows).Error; err != nil {
		return helper.ErrInternal("failed to load residents", err)
	}
	out := residentDTO.FromModels(rows, now)
	if !asCSV {
		return helper.JsonOK(c, "Resident report", out)
	}

	yesNo := func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	}
	lines := make([][]string, 0, len(out))
	for _, r := range out {
		lines = append(lines, []string{
			r.FullName, r.BirthDate, strconv.Itoa(r.Age), r.Gender, r.CivilStatus,
			str(r.ContactNumber), str(r.Email), r.Address, str(r.Occupation),
			yesNo(r.IsVoter), yesNo(r.IsPWD), yesNo(r.IsSenior),
		})
	}
	return helper.SendCSV(c, reportFilename("residents"), helper.BuildCSV(residentHeader, lines))
}

var certificateHeader = []string{
	"Control Number", "Type", "Resident", "Purpose", "Status", "Issued Date", "Fee Amount", "OR Number", "Requested At",
}

// GET /api/reports/certificates?format=csv|json plus the certificate list filters
func (rc *ReportController) Certificates(c *fiber.Ctx) error {
	asCSV, err := wantsCSV(c)
	if err != nil {
		return err
	}
	db := rc.DB.WithContext(c.UserContext())
	var rows []certModel.CertificateModel
	if err := certController.ApplyListFilters(c, db.Model(&certModel.CertificateModel{})).
		Order("certificate_created_at ASC").Find(&rows).Error; err != nil {
		return helper.ErrInternal("failed to load certificates", err)
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.CertificateResidentID)
	}
	names, err := certService.ResidentNames(db, ids)
	if err != nil {
		return helper.ErrInternal("failed to load residents", err)
	}
	out := make([]certDTO.CertificateResponse, 0, len(rows))
	for i := range rows {
		out = append(out, certDTO.FromModel(&rows[i], names[rows[i].CertificateResidentID]))
	}
	if !asCSV {
		return helper.JsonOK(c, "Certificate report", out)
	}

	lines := make([][]string, 0, len(out))
	for _, r := range out {
		lines = append(lines, []string{
			r.ControlNumber, r.Type, r.ResidentName, r.Purpose, r.Status, str(r.IssuedDate),
			strconv.FormatFloat(r.FeeAmount, 'f', 2, 64), str(r.ORNumber),
			r.CreatedAt.In(dbtime.Location()).Format("2006-01-02 15:04"),
		})
	}
	return helper.SendCSV(c, reportFilename("certificates"), helper.BuildCSV(certificateHeader, lines))
}

type statusCount struct {
	Status string
	N      int64
}

func countByStatus(db *gorm.DB, model any, col string, statuses []string) (map[string]int64, error) {
	out := make(map[string]int64, len(statuses))
	for _, s := range statuses {
		out[s] = 0
	}
	var rows []statusCount
	if err := db.Model(model).Select(col + " AS status, COUNT(*) AS n").Group(col).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}

// GET /api/reports/summary
func (rc *ReportController) Summary(c *fiber.Ctx) error {
	db := rc.DB.WithContext(c.UserContext())

	var residents, households, voters int64
	if err := db.Model(&residentModel.ResidentModel{}).Count(&residents).Error; err != nil {
		return helper.ErrInternal("failed to count residents", err)
	}
	if err := db.Model(&householdModel.HouseholdModel{}).Count(&households).Error; err != nil {
		return helper.ErrInternal("failed to count households", err)
	}
	if err := db.Model(&residentModel.ResidentModel{}).Where("resident_is_voter = ?", true).Count(&voters).Error; err != nil {
		return helper.ErrInternal("failed to count voters", err)
	}
	certs, err := countByStatus(db, &certModel.CertificateModel{}, "certificate_status", certModel.Statuses)
	if err != nil {
		return helper.ErrInternal("failed to count certificates", err)
	}
	cases, err := countByStatus(db, &blotterModel.BlotterCaseModel{}, "blotter_case_status", blotterModel.Statuses)
	if err != nil {
		return helper.ErrInternal("failed to count blotter cases", err)
	}

	out := fiber.Map{
		"residents":     residents,
		"households":    households,
		"voters":        voters,
		"certificates":  certs,
		"blotter_cases": cases,
		"budget":        nil,
	}

	fy, err := fyService.Active(db)
	if err != nil {
		return helper.ErrInternal("failed to load active fiscal year", err)
	}
	if fy != nil {
		var budgets []budgetModel.BudgetModel
		if err := db.Where("budget_fiscal_year_id = ?", fy.FiscalYearID).Find(&budgets).Error; err != nil {
			return helper.ErrInternal("failed to load budgets", err)
		}
		ids := make([]uuid.UUID, 0, len(budgets))
		var allocated float64
		for _, b := range budgets {
			ids = append(ids, b.BudgetID)
			allocated += b.BudgetAllocatedAmount
		}
		spentBy, err := budgetService.SpentByBudget(db, ids)
		if err != nil {
			return helper.ErrInternal("failed to sum expenses", err)
		}
		var spent float64
		for _, v := range spentBy {
			spent += v
		}
		out["budget"] = fiber.Map{
			"fiscal_year_id": fy.FiscalYearID,
			"year":           fy.FiscalYearYear,
			"allocated":      allocated,
			"spent":          spent,
			"remaining":      allocated - spent,
		}
	}
	return helper.JsonOK(c, "Summary", out)
}
