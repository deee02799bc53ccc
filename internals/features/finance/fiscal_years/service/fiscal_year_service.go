package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bisig_backend/internals/features/finance/fiscal_years/model"
)

// Create stores the fiscal year; an active one deactivates every other year
// in the same transaction.
func Create(db *gorm.DB, m *model.FiscalYearModel) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if m.FiscalYearIsActive {
			if err := deactivateAll(tx); err != nil {
				return err
			}
		}
		return tx.Create(m).Error
	})
}

// Activate makes id the only active fiscal year.
func Activate(db *gorm.DB, id uuid.UUID) (*model.FiscalYearModel, error) {
	var m model.FiscalYearModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("fiscal_year_id = ?", id).Take(&m).Error; err != nil {
			return err
		}
		if err := deactivateAll(tx); err != nil {
			return err
		}
		if err := tx.Model(&m).Update("fiscal_year_is_active", true).Error; err != nil {
			return err
		}
		m.FiscalYearIsActive = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func deactivateAll(tx *gorm.DB) error {
	return tx.Model(&model.FiscalYearModel{}).
		Where("fiscal_year_is_active = ?", true).
		Update("fiscal_year_is_active", false).Error
}

// Active returns the active fiscal year, or nil when none is.
func Active(db *gorm.DB) (*model.FiscalYearModel, error) {
	var m model.FiscalYearModel
	err := db.Where("fiscal_year_is_active = ?", true).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
