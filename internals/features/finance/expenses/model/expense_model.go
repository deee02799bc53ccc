package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type ExpenseModel struct {
	ExpenseID              uuid.UUID  `json:"expense_id" gorm:"column:expense_id;type:uuid;primaryKey"`
	ExpenseBudgetID        uuid.UUID  `json:"expense_budget_id" gorm:"column:expense_budget_id;type:uuid;not null;index"`
	ExpenseProjectID       *uuid.UUID `json:"expense_project_id,omitempty" gorm:"column:expense_project_id;type:uuid;index"`
	ExpenseSupplierID      *uuid.UUID `json:"expense_supplier_id,omitempty" gorm:"column:expense_supplier_id;type:uuid"`
	ExpenseAmount          float64    `json:"expense_amount" gorm:"column:expense_amount;type:numeric(14,2);not null"`
	ExpenseDate            time.Time  `json:"expense_date" gorm:"column:expense_date;not null"`
	ExpenseDescription     string     `json:"expense_description" gorm:"column:expense_description;type:text;not null"`
	ExpenseReferenceNumber *string    `json:"expense_reference_number,omitempty" gorm:"column:expense_reference_number;type:varchar(60)"`
	ExpenseStatus          string     `json:"expense_status" gorm:"column:expense_status;type:varchar(20);not null;index"`
	ExpenseCreatedBy       *uuid.UUID `json:"expense_created_by,omitempty" gorm:"column:expense_created_by;type:uuid"`
	ExpenseApprovedBy      *uuid.UUID `json:"expense_approved_by,omitempty" gorm:"column:expense_approved_by;type:uuid"`
	ExpenseApprovedAt      *time.Time `json:"expense_approved_at,omitempty" gorm:"column:expense_approved_at"`

	ExpenseCreatedAt time.Time `json:"expense_created_at" gorm:"column:expense_created_at;autoCreateTime"`
	ExpenseUpdatedAt time.Time `json:"expense_updated_at" gorm:"column:expense_updated_at;autoUpdateTime"`
}

func (ExpenseModel) TableName() string { return "expenses" }

func (m *ExpenseModel) BeforeCreate(*gorm.DB) error {
	if m.ExpenseID == uuid.Nil {
		m.ExpenseID = uuid.New()
	}
	return nil
}
