package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FiscalYearModel struct {
	FiscalYearID        uuid.UUID `json:"fiscal_year_id" gorm:"column:fiscal_year_id;type:uuid;primaryKey"`
	FiscalYearYear      int       `json:"fiscal_year_year" gorm:"column:fiscal_year_year;not null;uniqueIndex:uq_fiscal_years_year"`
	FiscalYearName      string    `json:"fiscal_year_name" gorm:"column:fiscal_year_name;type:varchar(100);not null"`
	FiscalYearStartDate time.Time `json:"fiscal_year_start_date" gorm:"column:fiscal_year_start_date;not null"`
	FiscalYearEndDate   time.Time `json:"fiscal_year_end_date" gorm:"column:fiscal_year_end_date;not null"`
	FiscalYearIsActive  bool      `json:"fiscal_year_is_active" gorm:"column:fiscal_year_is_active;not null;index"`

	FiscalYearCreatedAt time.Time `json:"fiscal_year_created_at" gorm:"column:fiscal_year_created_at;autoCreateTime"`
	FiscalYearUpdatedAt time.Time `json:"fiscal_year_updated_at" gorm:"column:fiscal_year_updated_at;autoUpdateTime"`
}

func (FiscalYearModel) TableName() string { return "fiscal_years" }

func (m *FiscalYearModel) BeforeCreate(*gorm.DB) error {
	if m.FiscalYearID == uuid.Nil {
		m.FiscalYearID = uuid.New()
	}
	return nil
}

// ElapsedRatio is the share of the fiscal year that has passed at t, clamped to [0,1].
func (m FiscalYearModel) ElapsedRatio(t time.Time) float64 {
	total := m.FiscalYearEndDate.Sub(m.FiscalYearStartDate)
	if total <= 0 {
		return 1
	}
	r := float64(t.Sub(m.FiscalYearStartDate)) / float64(total)
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}
