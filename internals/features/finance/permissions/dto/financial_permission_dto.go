package dto

import (
	"time"

	"github.com/google/uuid"

	"bisig_backend/internals/features/finance/permissions/model"
)

type UpsertFinancialPermissionRequest struct {
	CanManageBudgets     *bool    `json:"can_manage_budgets"`
	CanCreateExpenses    *bool    `json:"can_create_expenses"`
	CanApproveExpenses   *bool    `json:"can_approve_expenses"`
	CanManageSuppliers   *bool    `json:"can_manage_suppliers"`
	CanViewReports       *bool    `json:"can_view_reports"`
	MaxTransactionAmount *float64 `json:"max_transaction_amount" validate:"omitempty,gt=0"`
	ClearMaxTransaction  bool     `json:"clear_max_transaction"`
}

// Apply writes the provided fields onto m.
func (r *UpsertFinancialPermissionRequest) Apply(m *model.FinancialPermission) {
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&m.FinancialPermissionCanManageBudgets, r.CanManageBudgets)
	set(&m.FinancialPermissionCanCreateExpenses, r.CanCreateExpenses)
	set(&m.FinancialPermissionCanApproveExpenses, r.CanApproveExpenses)
	set(&m.FinancialPermissionCanManageSuppliers, r.CanManageSuppliers)
	set(&m.FinancialPermissionCanViewReports, r.CanViewReports)
	if r.MaxTransactionAmount != nil {
		v := *r.MaxTransactionAmount
		m.FinancialPermissionMaxTransactionAmount = &v
	}
	if r.ClearMaxTransaction {
		m.FinancialPermissionMaxTransactionAmount = nil
	}
}

type FinancialPermissionResponse struct {
	UserID               uuid.UUID  `json:"user_id"`
	Bypass               bool       `json:"bypass"`
	Stored               bool       `json:"stored"`
	CanManageBudgets     bool       `json:"can_manage_budgets"`
	CanCreateExpenses    bool       `json:"can_create_expenses"`
	CanApproveExpenses   bool       `json:"can_approve_expenses"`
	CanManageSuppliers   bool       `json:"can_manage_suppliers"`
	CanViewReports       bool       `json:"can_view_reports"`
	MaxTransactionAmount *float64   `json:"max_transaction_amount"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty"`
}

func FromModel(m model.FinancialPermission, stored, bypass bool) FinancialPermissionResponse {
	out := FinancialPermissionResponse{
		UserID:               m.FinancialPermissionUserID,
		Bypass:               bypass,
		Stored:               stored,
		CanManageBudgets:     m.FinancialPermissionCanManageBudgets,
		CanCreateExpenses:    m.FinancialPermissionCanCreateExpenses,
		CanApproveExpenses:   m.FinancialPermissionCanApproveExpenses,
		CanManageSuppliers:   m.FinancialPermissionCanManageSuppliers,
		CanViewReports:       m.FinancialPermissionCanViewReports,
		MaxTransactionAmount: m.FinancialPermissionMaxTransactionAmount,
	}
	if stored {
		t := m.FinancialPermissionUpdatedAt
		out.UpdatedAt = &t
	}
	return out
}
