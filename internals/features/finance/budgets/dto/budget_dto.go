package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"bisig_backend/internals/features/finance/budgets/model"
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

/* =========================
   Categories
   ========================= */

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Code        *string `json:"code" validate:"omitempty,max=30"`
	Description *string `json:"description"`
}

func (r *CategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = trimPtr(r.Code)
	if r.Code != nil {
		v := strings.ToUpper(*r.Code)
		r.Code = &v
	}
	r.Description = trimPtr(r.Description)
}

func (r *CategoryRequest) Apply(m *model.BudgetCategoryModel) {
	m.BudgetCategoryName = r.Name
	m.BudgetCategoryCode = r.Code
	m.BudgetCategoryDescription = r.Description
}

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Code        *string   `json:"code"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromCategory(m *model.BudgetCategoryModel) CategoryResponse {
	return CategoryResponse{
		ID:          m.BudgetCategoryID,
		Name:        m.BudgetCategoryName,
		Code:        m.BudgetCategoryCode,
		Description: m.BudgetCategoryDescription,
		CreatedAt:   m.BudgetCategoryCreatedAt,
		UpdatedAt:   m.BudgetCategoryUpdatedAt,
	}
}

/* =========================
   Budgets
   ========================= */

type CreateBudgetRequest struct {
	CategoryID      string  `json:"category_id" validate:"required,uuid"`
	FiscalYearID    string  `json:"fiscal_year_id" validate:"required,uuid"`
	AllocatedAmount float64 `json:"allocated_amount" validate:"gte=0"`
	Description     *string `json:"description"`
}

func (r *CreateBudgetRequest) Normalize() { r.Description = trimPtr(r.Description) }

func (r *CreateBudgetRequest) ToModel() *model.BudgetModel {
	return &model.BudgetModel{
		BudgetCategoryID:      uuid.MustParse(r.CategoryID),
		BudgetFiscalYearID:    uuid.MustParse(r.FiscalYearID),
		BudgetAllocatedAmount: r.AllocatedAmount,
		BudgetDescription:     r.Description,
	}
}

type UpdateBudgetRequest struct {
	AllocatedAmount *float64 `json:"allocated_amount" validate:"omitempty,gte=0"`
	Description     *string  `json:"description"`
}

func (r *UpdateBudgetRequest) Updates() map[string]any {
	m := map[string]any{}
	if r.AllocatedAmount != nil {
		m["budget_allocated_amount"] = *r.AllocatedAmount
	}
	if r.Description != nil {
		m["budget_description"] = trimPtr(r.Description)
	}
	return m
}

type BudgetResponse struct {
	ID              uuid.UUID `json:"id"`
	CategoryID      uuid.UUID `json:"category_id"`
	CategoryName    string    `json:"category_name,omitempty"`
	FiscalYearID    uuid.UUID `json:"fiscal_year_id"`
	AllocatedAmount float64   `json:"allocated_amount"`
	SpentAmount     float64   `json:"spent_amount"`
	RemainingAmount float64   `json:"remaining_amount"`
	Description     *string   `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromBudget(m *model.BudgetModel, spent float64) BudgetResponse {
	out := BudgetResponse{
		ID:              m.BudgetID,
		CategoryID:      m.BudgetCategoryID,
		FiscalYearID:    m.BudgetFiscalYearID,
		AllocatedAmount: m.BudgetAllocatedAmount,
		SpentAmount:     spent,
		RemainingAmount: m.BudgetAllocatedAmount - spent,
		Description:     m.BudgetDescription,
		CreatedAt:       m.BudgetCreatedAt,
		UpdatedAt:       m.BudgetUpdatedAt,
	}
	if m.Category != nil {
		out.CategoryName = m.Category.BudgetCategoryName
	}
	return out
}
