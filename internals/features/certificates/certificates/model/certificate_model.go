package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums
   ========================= */

const (
	TypeBarangayClearance = "BARANGAY_CLEARANCE"
	TypeResidency         = "RESIDENCY"
	TypeIndigency         = "INDIGENCY"
	TypeBusinessClearance = "BUSINESS_CLEARANCE"
	TypeGoodMoral         = "GOOD_MORAL"

	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusReleased  = "RELEASED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

var Types = []string{
	TypeBarangayClearance,
	TypeResidency,
	TypeIndigency,
	TypeBusinessClearance,
	TypeGoodMoral,
}

var Statuses = []string{StatusPending, StatusApproved, StatusReleased, StatusRejected, StatusCancelled}

// ControlNumberPrefix starts every control number, BRGY-<year>-<seq>.
const ControlNumberPrefix = "BRGY"

/* =========================
   Model
   ========================= */

type CertificateModel struct {
	CertificateID            uuid.UUID  `json:"certificate_id" gorm:"column:certificate_id;type:uuid;primaryKey"`
	CertificateType          string     `json:"certificate_type" gorm:"column:certificate_type;type:varchar(30);not null;index"`
	CertificatePurpose       string     `json:"certificate_purpose" gorm:"column:certificate_purpose;type:text;not null"`
	CertificateResidentID    uuid.UUID  `json:"certificate_resident_id" gorm:"column:certificate_resident_id;type:uuid;not null;index"`
	CertificateOfficialID    *uuid.UUID `json:"certificate_official_id,omitempty" gorm:"column:certificate_official_id;type:uuid"`
	CertificateStatus        string     `json:"certificate_status" gorm:"column:certificate_status;type:varchar(20);not null;index"`
	CertificateControlNumber string     `json:"certificate_control_number" gorm:"column:certificate_control_number;type:varchar(30);not null;uniqueIndex:uq_certificates_control_number"`
	CertificateIssuedDate    *time.Time `json:"certificate_issued_date,omitempty" gorm:"column:certificate_issued_date"`
	CertificateRemarks       *string    `json:"certificate_remarks,omitempty" gorm:"column:certificate_remarks;type:text"`
	CertificateFeeAmount     float64    `json:"certificate_fee_amount" gorm:"column:certificate_fee_amount;type:numeric(14,2);not null"`
	CertificateORNumber      *string    `json:"certificate_or_number,omitempty" gorm:"column:certificate_or_number;type:varchar(50)"`

	CertificateCreatedAt time.Time `json:"certificate_created_at" gorm:"column:certificate_created_at;autoCreateTime;index"`
	CertificateUpdatedAt time.Time `json:"certificate_updated_at" gorm:"column:certificate_updated_at;autoUpdateTime"`
}

func (CertificateModel) TableName() string { return "certificates" }

func (m *CertificateModel) BeforeCreate(*gorm.DB) error {
	if m.CertificateID == uuid.Nil {
		m.CertificateID = uuid.New()
	}
	return nil
}

// transitions lists the statuses reachable from each non-terminal status.
var transitions = map[string][]string{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusReleased, StatusRejected, StatusCancelled},
}

func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
