package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Capabilities checked by the expense, budget and supplier handlers.
const (
	CapManageBudgets   = "manage_budgets"
	CapCreateExpenses  = "create_expenses"
	CapApproveExpenses = "approve_expenses"
	CapManageSuppliers = "manage_suppliers"
	CapViewReports     = "view_reports"
)

type FinancialPermission struct {
	FinancialPermissionID     uuid.UUID `json:"financial_permission_id" gorm:"column:financial_permission_id;type:uuid;primaryKey"`
	FinancialPermissionUserID uuid.UUID `json:"financial_permission_user_id" gorm:"column:financial_permission_user_id;type:uuid;not null;uniqueIndex:uq_financial_permissions_user"`

	FinancialPermissionCanManageBudgets   bool `json:"financial_permission_can_manage_budgets" gorm:"column:financial_permission_can_manage_budgets;not null"`
	FinancialPermissionCanCreateExpenses  bool `json:"financial_permission_can_create_expenses" gorm:"column:financial_permission_can_create_expenses;not null"`
	FinancialPermissionCanApproveExpenses bool `json:"financial_permission_can_approve_expenses" gorm:"column:financial_permission_can_approve_expenses;not null"`
	FinancialPermissionCanManageSuppliers bool `json:"financial_permission_can_manage_suppliers" gorm:"column:financial_permission_can_manage_suppliers;not null"`
	FinancialPermissionCanViewReports     bool `json:"financial_permission_can_view_reports" gorm:"column:financial_permission_can_view_reports;not null"`

	// nil means no ceiling
	FinancialPermissionMaxTransactionAmount *float64 `json:"financial_permission_max_transaction_amount,omitempty" gorm:"column:financial_permission_max_transaction_amount;type:numeric(14,2)"`

	FinancialPermissionCreatedAt time.Time `json:"financial_permission_created_at" gorm:"column:financial_permission_created_at;autoCreateTime"`
	FinancialPermissionUpdatedAt time.Time `json:"financial_permission_updated_at" gorm:"column:financial_permission_updated_at;autoUpdateTime"`
}

func (FinancialPermission) TableName() string { return "financial_permissions" }

func (p *FinancialPermission) BeforeCreate(*gorm.DB) error {
	if p.FinancialPermissionID == uuid.Nil {
		p.FinancialPermissionID = uuid.New()
	}
	return nil
}

func (p FinancialPermission) Has(capability string) bool {
	switch capability {
	case CapManageBudgets:
		return p.FinancialPermissionCanManageBudgets
	case CapCreateExpenses:
		return p.FinancialPermissionCanCreateExpenses
	case CapApproveExpenses:
		return p.FinancialPermissionCanApproveExpenses
	case CapManageSuppliers:
		return p.FinancialPermissionCanManageSuppliers
	case CapViewReports:
		return p.FinancialPermissionCanViewReports
	}
	return false
}

// DefaultFor is used when a non admin-tier user has no stored row: day-to-day
// treasury work is allowed, budget changes and approvals are not.
func DefaultFor(userID uuid.UUID) FinancialPermission {
	return FinancialPermission{
		FinancialPermissionUserID:             userID,
		FinancialPermissionCanCreateExpenses:  true,
		FinancialPermissionCanManageSuppliers: true,
		FinancialPermissionCanViewReports:     true,
	}
}
