package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"bisig_backend/internals/features/finance/suppliers/model"
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

type CreateSupplierRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=150"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=30"`
	Email         *string `json:"email" validate:"omitempty,email,max=255"`
	Address       *string `json:"address"`
	TIN           *string `json:"tin" validate:"omitempty,max=30"`
	IsActive      *bool   `json:"is_active"`
}

func (r *CreateSupplierRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.ContactPerson = trimPtr(r.ContactPerson)
	r.ContactNumber = trimPtr(r.ContactNumber)
	r.Email = trimPtr(r.Email)
	r.Address = trimPtr(r.Address)
	r.TIN = trimPtr(r.TIN)
}

func (r *CreateSupplierRequest) ToModel() *model.SupplierModel {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &model.SupplierModel{
		SupplierName:          r.Name,
		SupplierContactPerson: r.ContactPerson,
		SupplierContactNumber: r.ContactNumber,
		SupplierEmail:         r.Email,
		SupplierAddress:       r.Address,
		SupplierTIN:           r.TIN,
		SupplierIsActive:      active,
	}
}

type UpdateSupplierRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=150"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=30"`
	Email         *string `json:"email" validate:"omitempty,email,max=255"`
	Address       *string `json:"address"`
	TIN           *string `json:"tin" validate:"omitempty,max=30"`
	IsActive      *bool   `json:"is_active"`
}

func (r *UpdateSupplierRequest) Updates() map[string]any {
	m := map[string]any{}
	if r.Name != nil {
		m["supplier_name"] = strings.TrimSpace(*r.Name)
	}
	for col, p := range map[string]*string{
		"supplier_contact_person": r.ContactPerson,
		"supplier_contact_number": r.ContactNumber,
		"supplier_email":          r.Email,
		"supplier_address":        r.Address,
		"supplier_tin":            r.TIN,
	} {
		if p != nil {
			m[col] = trimPtr(p)
		}
	}
	if r.IsActive != nil {
		m["supplier_is_active"] = *r.IsActive
	}
	return m
}

type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson *string   `json:"contact_person"`
	ContactNumber *string   `json:"contact_number"`
	Email         *string   `json:"email"`
	Address       *string   `json:"address"`
	TIN           *string   `json:"tin"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromModel(m *model.SupplierModel) SupplierResponse {
	return SupplierResponse{
		ID:            m.SupplierID,
		Name:          m.SupplierName,
		ContactPerson: m.SupplierContactPerson,
		ContactNumber: m.SupplierContactNumber,
		Email:         m.SupplierEmail,
		Address:       m.SupplierAddress,
		TIN:           m.SupplierTIN,
		IsActive:      m.SupplierIsActive,
		CreatedAt:     m.SupplierCreatedAt,
		UpdatedAt:     m.SupplierUpdatedAt,
	}
}
