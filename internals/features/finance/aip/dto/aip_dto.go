package dto

import (
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"bisig_backend/internals/features/finance/aip/model"
	"bisig_backend/internals/helpers/dbtime"
)

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func upper(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.ToUpper(strings.TrimSpace(*p))
	return &v
}

/* =========================
   AIP
   ========================= */

type CreateAIPRequest struct {
	FiscalYearID string  `json:"fiscal_year_id" validate:"required,uuid"`
	Title        string  `json:"title" validate:"required,max=200"`
	Description  *string `json:"description"`
}

func (r *CreateAIPRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = trimPtr(r.Description)
}

type UpdateAIPRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=DRAFT SUBMITTED APPROVED"`
}

func (r *UpdateAIPRequest) Normalize() { r.Status = upper(r.Status) }

type AIPResponse struct {
	ID           uuid.UUID         `json:"id"`
	FiscalYearID uuid.UUID         `json:"fiscal_year_id"`
	Title        string            `json:"title"`
	Description  *string           `json:"description"`
	Status       string            `json:"status"`
	TotalAmount  float64           `json:"total_amount"`
	ProjectCount int64             `json:"project_count"`
	ApprovedAt   *time.Time        `json:"approved_at"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Projects     []ProjectResponse `json:"projects,omitempty"`
}

// FromAIP takes the derived total and count; projects are included when loaded.
func FromAIP(m *model.AIPModel, total float64, count int64) AIPResponse {
	out := AIPResponse{
		ID:           m.AIPID,
		FiscalYearID: m.AIPFiscalYearID,
		Title:        m.AIPTitle,
		Description:  m.AIPDescription,
		Status:       m.AIPStatus,
		TotalAmount:  total,
		ProjectCount: count,
		ApprovedAt:   m.AIPApprovedAt,
		CreatedAt:    m.AIPCreatedAt,
		UpdatedAt:    m.AIPUpdatedAt,
	}
	for i := range m.Projects {
		out.Projects = append(out.Projects, FromProject(&m.Projects[i]))
	}
	return out
}

/* =========================
   Projects
   ========================= */

type CreateProjectRequest struct {
	Code            *string        `json:"code" validate:"omitempty,max=50"`
	Title           string         `json:"title" validate:"required,max=200"`
	Sector          *string        `json:"sector" validate:"omitempty,max=80"`
	Description     *string        `json:"description"`
	BudgetAmount    float64        `json:"budget_amount" validate:"gte=0"`
	StartDate       *string        `json:"start_date"`
	EndDate         *string        `json:"end_date"`
	Status          string         `json:"status" validate:"omitempty,oneof=PLANNED ONGOING COMPLETED CANCELLED"`
	ProgressPercent int            `json:"progress_percent" validate:"gte=0,lte=100"`
	Metadata        map[string]any `json:"metadata"`
}

func (r *CreateProjectRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Code = trimPtr(r.Code)
	r.Sector = trimPtr(r.Sector)
	r.Description = trimPtr(r.Description)
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
	if r.Status == "" {
		r.Status = model.ProjectPlanned
	}
}

func (r *CreateProjectRequest) ToModel(aipID uuid.UUID) (*model.ProjectModel, map[string][]string) {
	errs := map[string][]string{}
	m := &model.ProjectModel{
		ProjectAIPID:           aipID,
		ProjectCode:            r.Code,
		ProjectTitle:           r.Title,
		ProjectSector:          r.Sector,
		ProjectDescription:     r.Description,
		ProjectBudgetAmount:    r.BudgetAmount,
		ProjectStatus:          r.Status,
		ProjectProgressPercent: r.ProgressPercent,
	}
	var err error
	if m.ProjectStartDate, err = dbtime.ParseDatePtr(r.StartDate); err != nil {
		errs["start_date"] = []string{"must be a date (YYYY-MM-DD)"}
	}
	if m.ProjectEndDate, err = dbtime.ParseDatePtr(r.EndDate); err != nil {
		errs["end_date"] = []string{"must be a date (YYYY-MM-DD)"}
	}
	checkWindow(m, errs)
	if r.Metadata != nil {
		raw, err := sonic.Marshal(r.Metadata)
		if err != nil {
			errs["metadata"] = []string{"must be a JSON object"}
		}
		m.ProjectMetadata = datatypes.JSON(raw)
	}
	if m.ProjectStatus == model.ProjectCompleted {
		m.ProjectProgressPercent = 100
	}
	return m, errs
}

func checkWindow(m *model.ProjectModel, errs map[string][]string) {
	if m.ProjectStartDate != nil && m.ProjectEndDate != nil && m.ProjectEndDate.Before(*m.ProjectStartDate) {
		errs["end_date"] = []string{"must not be before start_date"}
	}
}

type UpdateProjectRequest struct {
	Code            *string        `json:"code" validate:"omitempty,max=50"`
	Title           *string        `json:"title" validate:"omitempty,min=1,max=200"`
	Sector          *string        `json:"sector" validate:"omitempty,max=80"`
	Description     *string        `json:"description"`
	BudgetAmount    *float64       `json:"budget_amount" validate:"omitempty,gte=0"`
	StartDate       *string        `json:"start_date"`
	EndDate         *string        `json:"end_date"`
	Status          *string        `json:"status" validate:"omitempty,oneof=PLANNED ONGOING COMPLETED CANCELLED"`
	ProgressPercent *int           `json:"progress_percent" validate:"omitempty,gte=0,lte=100"`
	Metadata        map[string]any `json:"metadata"`
}

func (r *UpdateProjectRequest) Normalize() { r.Status = upper(r.Status) }

// Apply mutates m in place and reports field errors.
func (r *UpdateProjectRequest) Apply(m *model.ProjectModel) map[string][]string {
	errs := map[string][]string{}
	if r.Code != nil {
		m.ProjectCode = trimPtr(r.Code)
	}
	if r.Title != nil {
		m.ProjectTitle = strings.TrimSpace(*r.Title)
	}
	if r.Sector != nil {
		m.ProjectSector = trimPtr(r.Sector)
	}
	if r.Description != nil {
		m.ProjectDescription = trimPtr(r.Description)
	}
	if r.BudgetAmount != nil {
		m.ProjectBudgetAmount = *r.BudgetAmount
	}
	if r.StartDate != nil {
		t, err := dbtime.ParseDatePtr(r.StartDate)
		if err != nil {
			errs["start_date"] = []string{"must be a date (YYYY-MM-DD)"}
		}
		m.ProjectStartDate = t
	}
	if r.EndDate != nil {
		t, err := dbtime.ParseDatePtr(r.EndDate)
		if err != nil {
			errs["end_date"] = []string{"must be a date (YYYY-MM-DD)"}
		}
		m.ProjectEndDate = t
	}
	checkWindow(m, errs)
	if r.ProgressPercent != nil {
		m.ProjectProgressPercent = *r.ProgressPercent
	}
	if r.Status != nil {
		m.ProjectStatus = *r.Status
		if m.ProjectStatus == model.ProjectCompleted {
			m.ProjectProgressPercent = 100
		}
	}
	if r.Metadata != nil {
		raw, err := sonic.Marshal(r.Metadata)
		if err != nil {
			errs["metadata"] = []string{"must be a JSON object"}
		}
		m.ProjectMetadata = datatypes.JSON(raw)
	}
	return errs
}

type ProjectResponse struct {
	ID              uuid.UUID           `json:"id"`
	AIPID           uuid.UUID           `json:"aip_id"`
	Code            *string             `json:"code"`
	Title           string              `json:"title"`
	Sector          *string             `json:"sector"`
	Description     *string             `json:"description"`
	BudgetAmount    float64             `json:"budget_amount"`
	StartDate       *string             `json:"start_date"`
	EndDate         *string             `json:"end_date"`
	Status          string              `json:"status"`
	ProgressPercent int                 `json:"progress_percent"`
	Metadata        datatypes.JSON      `json:"metadata,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Milestones      []MilestoneResponse `json:"milestones,omitempty"`
}

func FromProject(m *model.ProjectModel) ProjectResponse {
	out := ProjectResponse{
		ID:              m.ProjectID,
		AIPID:           m.ProjectAIPID,
		Code:            m.ProjectCode,
		Title:           m.ProjectTitle,
		Sector:          m.ProjectSector,
		Description:     m.ProjectDescription,
		BudgetAmount:    m.ProjectBudgetAmount,
		StartDate:       dbtime.FormatDate(m.ProjectStartDate),
		EndDate:         dbtime.FormatDate(m.ProjectEndDate),
		Status:          m.ProjectStatus,
		ProgressPercent: m.ProjectProgressPercent,
		Metadata:        m.ProjectMetadata,
		CreatedAt:       m.ProjectCreatedAt,
		UpdatedAt:       m.ProjectUpdatedAt,
	}
	for i := range m.Milestones {
		out.Milestones = append(out.Milestones, FromMilestone(&m.Milestones[i]))
	}
	return out
}

/* =========================
   Milestones
   ========================= */

type CreateMilestoneRequest struct {
	Title   string  `json:"title" validate:"required,max=200"`
	DueDate *string `json:"due_date"`
}

func (r *CreateMilestoneRequest) Normalize() { r.Title = strings.TrimSpace(r.Title) }

type UpdateMilestoneRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=200"`
	DueDate   *string `json:"due_date"`
	Completed *bool   `json:"completed"`
}

type MilestoneResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	DueDate     *string    `json:"due_date"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

func FromMilestone(m *model.MilestoneModel) MilestoneResponse {
	return MilestoneResponse{
		ID:          m.MilestoneID,
		ProjectID:   m.MilestoneProjectID,
		Title:       m.MilestoneTitle,
		DueDate:     dbtime.FormatDate(m.MilestoneDueDate),
		Completed:   m.MilestoneCompleted,
		CompletedAt: m.MilestoneCompletedAt,
	}
}
