package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BudgetCategoryModel struct {
	BudgetCategoryID          uuid.UUID `json:"budget_category_id" gorm:"column:budget_category_id;type:uuid;primaryKey"`
	BudgetCategoryName        string    `json:"budget_category_name" gorm:"column:budget_category_name;type:varchar(120);not null;uniqueIndex:uq_budget_categories_name"`
	BudgetCategoryCode        *string   `json:"budget_category_code,omitempty" gorm:"column:budget_category_code;type:varchar(30)"`
	BudgetCategoryDescription *string   `json:"budget_category_description,omitempty" gorm:"column:budget_category_description;type:text"`

	BudgetCategoryCreatedAt time.Time `json:"budget_category_created_at" gorm:"column:budget_category_created_at;autoCreateTime"`
	BudgetCategoryUpdatedAt time.Time `json:"budget_category_updated_at" gorm:"column:budget_category_updated_at;autoUpdateTime"`
}

func (BudgetCategoryModel) TableName() string { return "budget_categories" }

func (m *BudgetCategoryModel) BeforeCreate(*gorm.DB) error {
	if m.BudgetCategoryID == uuid.Nil {
		m.BudgetCategoryID = uuid.New()
	}
	return nil
}

// BudgetModel is unique per (category, fiscal year).
type BudgetModel struct {
	BudgetID              uuid.UUID `json:"budget_id" gorm:"column:budget_id;type:uuid;primaryKey"`
	BudgetCategoryID      uuid.UUID `json:"budget_category_id" gorm:"column:budget_category_id;type:uuid;not null;uniqueIndex:uq_budgets_category_year"`
	BudgetFiscalYearID    uuid.UUID `json:"budget_fiscal_year_id" gorm:"column:budget_fiscal_year_id;type:uuid;not null;uniqueIndex:uq_budgets_category_year;index"`
	BudgetAllocatedAmount float64   `json:"budget_allocated_amount" gorm:"column:budget_allocated_amount;type:numeric(14,2);not null"`
	BudgetDescription     *string   `json:"budget_description,omitempty" gorm:"column:budget_description;type:text"`

	BudgetCreatedAt time.Time `json:"budget_created_at" gorm:"column:budget_created_at;autoCreateTime"`
	BudgetUpdatedAt time.Time `json:"budget_updated_at" gorm:"column:budget_updated_at;autoUpdateTime"`

	Category *BudgetCategoryModel `json:"category,omitempty" gorm:"foreignKey:BudgetCategoryID;references:BudgetCategoryID"`
}

func (BudgetModel) TableName() string { return "budgets" }

func (m *BudgetModel) BeforeCreate(*gorm.DB) error {
	if m.BudgetID == uuid.Nil {
		m.BudgetID = uuid.New()
	}
	return nil
}
