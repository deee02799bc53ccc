package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"bisig_backend/internals/features/certificates/certificates/model"
	"bisig_backend/internals/helpers/dbtime"
)

type CreateCertificateRequest struct {
	Type       string   `json:"type" validate:"required,oneof=BARANGAY_CLEARANCE RESIDENCY INDIGENCY BUSINESS_CLEARANCE GOOD_MORAL"`
	Purpose    string   `json:"purpose" validate:"required,max=500"`
	ResidentID string   `json:"resident_id" validate:"required,uuid"`
	OfficialID *string  `json:"official_id" validate:"omitempty,uuid"`
	FeeAmount  *float64 `json:"fee_amount" validate:"omitempty,gte=0"`
	ORNumber   *string  `json:"or_number" validate:"omitempty,max=50"`
	Remarks    *string  `json:"remarks" validate:"omitempty,max=1000"`
}

func (r *CreateCertificateRequest) Normalize() {
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	r.Purpose = strings.TrimSpace(r.Purpose)
	r.ResidentID = strings.TrimSpace(r.ResidentID)
}

type UpdateStatusRequest struct {
	Status   string  `json:"status" validate:"required,oneof=PENDING APPROVED RELEASED REJECTED CANCELLED"`
	Remarks  *string `json:"remarks" validate:"omitempty,max=1000"`
	ORNumber *string `json:"or_number" validate:"omitempty,max=50"`
}

func (r *UpdateStatusRequest) Normalize() {
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
}

type CertificateResponse struct {
	ID            uuid.UUID  `json:"id"`
	ControlNumber string     `json:"control_number"`
	Type          string     `json:"type"`
	Purpose       string     `json:"purpose"`
	ResidentID    uuid.UUID  `json:"resident_id"`
	ResidentName  string     `json:"resident_name,omitempty"`
	OfficialID    *uuid.UUID `json:"official_id"`
	Status        string     `json:"status"`
	IssuedDate    *string    `json:"issued_date"`
	Remarks       *string    `json:"remarks"`
	FeeAmount     float64    `json:"fee_amount"`
	ORNumber      *string    `json:"or_number"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func FromModel(m *model.CertificateModel, residentName string) CertificateResponse {
	return CertificateResponse{
		ID:            m.CertificateID,
		ControlNumber: m.CertificateControlNumber,
		Type:          m.CertificateType,
		Purpose:       m.CertificatePurpose,
		ResidentID:    m.CertificateResidentID,
		ResidentName:  residentName,
		OfficialID:    m.CertificateOfficialID,
		Status:        m.CertificateStatus,
		IssuedDate:    dbtime.FormatDate(m.CertificateIssuedDate),
		Remarks:       m.CertificateRemarks,
		FeeAmount:     m.CertificateFeeAmount,
		ORNumber:      m.CertificateORNumber,
		CreatedAt:     m.CertificateCreatedAt,
		UpdatedAt:     m.CertificateUpdatedAt,
	}
}

// VerificationResponse is the public view behind the QR code.
type VerificationResponse struct {
	ControlNumber string  `json:"control_number"`
	ResidentName  string  `json:"resident_name"`
	Type          string  `json:"type"`
	Purpose       string  `json:"purpose"`
	Status        string  `json:"status"`
	IssuedDate    *string `json:"issued_date"`
	Valid         bool    `json:"valid"`
}

type QRResponse struct {
	ControlNumber string `json:"control_number"`
	VerifyURL     string `json:"verify_url"`
	DataURI       string `json:"data_uri"`
}
