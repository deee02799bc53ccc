package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bisig_backend/internals/features/finance/fiscal_years/model"
	"bisig_backend/internals/helpers/dbtime"
)

type CreateFiscalYearRequest struct {
	Year      int     `json:"year" validate:"required,gte=2000,lte=2100"`
	Name      string  `json:"name" validate:"omitempty,max=100"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsActive  bool    `json:"is_active"`
}

func (r *CreateFiscalYearRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

// ToModel fills the name and the calendar-year bounds when omitted.
func (r *CreateFiscalYearRequest) ToModel() (*model.FiscalYearModel, map[string][]string) {
	errs := map[string][]string{}
	start, end := dbtime.YearBounds(r.Year)
	end = end.AddDate(0, 0, -1)
	if t, err := dbtime.ParseDatePtr(r.StartDate); err != nil {
		errs["start_date"] = []string{"must be a date (YYYY-MM-DD)"}
	} else if t != nil {
		start = *t
	}
	if t, err := dbtime.ParseDatePtr(r.EndDate); err != nil {
		errs["end_date"] = []string{"must be a date (YYYY-MM-DD)"}
	} else if t != nil {
		end = *t
	}
	if len(errs) == 0 && end.Before(start) {
		errs["end_date"] = []string{"must not be before start_date"}
	}
	name := r.Name
	if name == "" {
		name = fmt.Sprintf("FY %d", r.Year)
	}
	return &model.FiscalYearModel{
		FiscalYearYear:      r.Year,
		FiscalYearName:      name,
		FiscalYearStartDate: start,
		FiscalYearEndDate:   end,
		FiscalYearIsActive:  r.IsActive,
	}, errs
}

type UpdateFiscalYearRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

func (r *UpdateFiscalYearRequest) Apply(m *model.FiscalYearModel) map[string][]string {
	errs := map[string][]string{}
	if r.Name != nil {
		m.FiscalYearName = strings.TrimSpace(*r.Name)
	}
	if t, err := dbtime.ParseDatePtr(r.StartDate); err != nil {
		errs["start_date"] = []string{"must be a date (YYYY-MM-DD)"}
	} else if t != nil {
		m.FiscalYearStartDate = *t
	}
	if t, err := dbtime.ParseDatePtr(r.EndDate); err != nil {
		errs["end_date"] = []string{"must be a date (YYYY-MM-DD)"}
	} else if t != nil {
		m.FiscalYearEndDate = *t
	}
	if len(errs) == 0 && m.FiscalYearEndDate.Before(m.FiscalYearStartDate) {
		errs["end_date"] = []string{"must not be before start_date"}
	}
	return errs
}

type FiscalYearResponse struct {
	ID        uuid.UUID `json:"id"`
	Year      int       `json:"year"`
	Name      string    `json:"name"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(m *model.FiscalYearModel) FiscalYearResponse {
	return FiscalYearResponse{
		ID:        m.FiscalYearID,
		Year:      m.FiscalYearYear,
		Name:      m.FiscalYearName,
		StartDate: *dbtime.FormatDate(&m.FiscalYearStartDate),
		EndDate:   *dbtime.FormatDate(&m.FiscalYearEndDate),
		IsActive:  m.FiscalYearIsActive,
		CreatedAt: m.FiscalYearCreatedAt,
		UpdatedAt: m.FiscalYearUpdatedAt,
	}
}
