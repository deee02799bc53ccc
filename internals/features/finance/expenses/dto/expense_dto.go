package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"bisig_backend/internals/features/finance/expenses/model"
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

func parseID(p *string) *uuid.UUID {
	if p == nil {
		return nil
	}
	id := uuid.MustParse(*p)
	return &id
}

type CreateExpenseRequest struct {
	BudgetID        string  `json:"budget_id" validate:"required,uuid"`
	ProjectID       *string `json:"project_id" validate:"omitempty,uuid"`
	SupplierID      *string `json:"supplier_id" validate:"omitempty,uuid"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	ExpenseDate     string  `json:"expense_date" validate:"required"`
	Description     string  `json:"description" validate:"required"`
	ReferenceNumber *string `json:"reference_number" validate:"omitempty,max=60"`
}

func (r *CreateExpenseRequest) Normalize() {
	r.Description = strings.TrimSpace(r.Description)
	r.ProjectID = trimPtr(r.ProjectID)
	r.SupplierID = trimPtr(r.SupplierID)
	r.ReferenceNumber = trimPtr(r.ReferenceNumber)
}

func (r *CreateExpenseRequest) ToModel() (*model.ExpenseModel, error) {
	d, err := dbtime.ParseDate(r.ExpenseDate)
	if err != nil {
		return nil, err
	}
	return &model.ExpenseModel{
		ExpenseBudgetID:        uuid.MustParse(r.BudgetID),
		ExpenseProjectID:       parseID(r.ProjectID),
		ExpenseSupplierID:      parseID(r.SupplierID),
		ExpenseAmount:          r.Amount,
		ExpenseDate:            d,
		ExpenseDescription:     r.Description,
		ExpenseReferenceNumber: r.ReferenceNumber,
		ExpenseStatus:          model.StatusPending,
	}, nil
}

// UpdateExpenseRequest is partial; "" clears project_id or supplier_id.
type UpdateExpenseRequest struct {
	BudgetID        *string  `json:"budget_id" validate:"omitempty,uuid"`
	ProjectID       *string  `json:"project_id" validate:"omitempty,uuid"`
	SupplierID      *string  `json:"supplier_id" validate:"omitempty,uuid"`
	Amount          *float64 `json:"amount" validate:"omitempty,gt=0"`
	ExpenseDate     *string  `json:"expense_date"`
	Description     *string  `json:"description" validate:"omitempty,min=1"`
	ReferenceNumber *string  `json:"reference_number" validate:"omitempty,max=60"`
}

func (r *UpdateExpenseRequest) Normalize() {
	for _, p := range []*string{r.ProjectID, r.SupplierID} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
}

// Apply mutates m in place.
func (r *UpdateExpenseRequest) Apply(m *model.ExpenseModel) error {
	if r.BudgetID != nil {
		m.ExpenseBudgetID = uuid.MustParse(*r.BudgetID)
	}
	if r.ProjectID != nil {
		m.ExpenseProjectID = parseID(trimPtr(r.ProjectID))
	}
	if r.SupplierID != nil {
		m.ExpenseSupplierID = parseID(trimPtr(r.SupplierID))
	}
	if r.Amount != nil {
		m.ExpenseAmount = *r.Amount
	}
	if r.ExpenseDate != nil {
		d, err := dbtime.ParseDate(*r.ExpenseDate)
		if err != nil {
			return err
		}
		m.ExpenseDate = d
	}
	if r.Description != nil {
		m.ExpenseDescription = strings.TrimSpace(*r.Description)
	}
	if r.ReferenceNumber != nil {
		m.ExpenseReferenceNumber = trimPtr(r.ReferenceNumber)
	}
	return nil
}

type ExpenseResponse struct {
	ID              uuid.UUID  `json:"id"`
	BudgetID        uuid.UUID  `json:"budget_id"`
	ProjectID       *uuid.UUID `json:"project_id"`
	SupplierID      *uuid.UUID `json:"supplier_id"`
	Amount          float64    `json:"amount"`
	ExpenseDate     string     `json:"expense_date"`
	Description     string     `json:"description"`
	ReferenceNumber *string    `json:"reference_number"`
	Status          string     `json:"status"`
	CreatedBy       *uuid.UUID `json:"created_by"`
	ApprovedBy      *uuid.UUID `json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func FromModel(m *model.ExpenseModel) ExpenseResponse {
	return ExpenseResponse{
		ID:              m.ExpenseID,
		BudgetID:        m.ExpenseBudgetID,
		ProjectID:       m.ExpenseProjectID,
		SupplierID:      m.ExpenseSupplierID,
		Amount:          m.ExpenseAmount,
		ExpenseDate:     *dbtime.FormatDate(&m.ExpenseDate),
		Description:     m.ExpenseDescription,
		ReferenceNumber: m.ExpenseReferenceNumber,
		Status:          m.ExpenseStatus,
		CreatedBy:       m.ExpenseCreatedBy,
		ApprovedBy:      m.ExpenseApprovedBy,
		ApprovedAt:      m.ExpenseApprovedAt,
		CreatedAt:       m.ExpenseCreatedAt,
		UpdatedAt:       m.ExpenseUpdatedAt,
	}
}
