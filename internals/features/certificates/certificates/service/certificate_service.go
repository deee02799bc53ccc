package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bisig_backend/internals/features/certificates/certificates/model"
	residentModel "bisig_backend/internals/features/residents/residents/model"
	userModel "bisig_backend/internals/features/users/user/model"
	helper "bisig_backend/internals/helpers"
	"bisig_backend/internals/helpers/sequence"
)

type IssueInput struct {
	Type       string
	Purpose    string
	ResidentID uuid.UUID
	OfficialID *uuid.UUID
	FeeAmount  float64
	ORNumber   *string
	Remarks    *string
}

// yearPrefix is "BRGY-2025-".
func yearPrefix(year int) string {
	return fmt.Sprintf("%s-%d-", model.ControlNumberPrefix, year)
}

// countIssued seeds the counter from certificates numbered before it existed.
func countIssued(tx *gorm.DB, year int) (int64, error) {
	var n int64
	err := tx.Model(&model.CertificateModel{}).
		Where("certificate_control_number LIKE ?", yearPrefix(year)+"%").
		Count(&n).Error
	return n, err
}

// Issue validates the references and stores a PENDING certificate numbered
// from the (certificate, year) sequence. Everything runs in one transaction.
func Issue(db *gorm.DB, in IssueInput, now time.Time) (*model.CertificateModel, error) {
	var out *model.CertificateModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&residentModel.ResidentModel{}).
			Where("resident_id = ?", in.ResidentID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return helper.ErrValidationFields(map[string][]string{"resident_id": {"resident does not exist"}})
		}
		if in.OfficialID != nil {
			if err := tx.Model(&userModel.UserModel{}).
				Where("user_id = ?", *in.OfficialID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return helper.ErrValidationFields(map[string][]string{"official_id": {"official does not exist"}})
			}
		}

		year := now.Year()
		seq, err := sequence.Next(tx, sequence.NameCertificate, year, countIssued)
		if err != nil {
			return err
		}
		m := &model.CertificateModel{
			CertificateType:          in.Type,
			CertificatePurpose:       in.Purpose,
			CertificateResidentID:    in.ResidentID,
			CertificateOfficialID:    in.OfficialID,
			CertificateStatus:        model.StatusPending,
			CertificateControlNumber: sequence.Format(model.ControlNumberPrefix, year, seq),
			CertificateFeeAmount:     in.FeeAmount,
			CertificateORNumber:      in.ORNumber,
			CertificateRemarks:       in.Remarks,
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		out = m
		return nil
	})
	return out, err
}

type StatusInput struct {
	Status   string
	Remarks  *string
	ORNumber *string
}

// ChangeStatus applies one allowed transition. RELEASED stamps the issued date.
func ChangeStatus(db *gorm.DB, id uuid.UUID, in StatusInput, now time.Time) (*model.CertificateModel, error) {
	var m model.CertificateModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("certificate_id = ?", id).Take(&m).Error; err != nil {
			return err
		}
		if !model.CanTransition(m.CertificateStatus, in.Status) {
			return helper.ErrValidation(fmt.Sprintf("cannot change status from %s to %s", m.CertificateStatus, in.Status))
		}
		updates := map[string]any{"certificate_status": in.Status}
		if in.Status == model.StatusReleased {
			updates["certificate_issued_date"] = now
		}
		if in.Remarks != nil {
			updates["certificate_remarks"] = *in.Remarks
		}
		if in.ORNumber != nil {
			updates["certificate_or_number"] = *in.ORNumber
		}
		// guard against a concurrent transition
		res := tx.Model(&model.CertificateModel{}).
			Where("certificate_id = ? AND certificate_status = ?", id, m.CertificateStatus).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.ErrConflict("certificate was modified concurrently, please retry")
		}
		return tx.Where("certificate_id = ?", id).Take(&m).Error
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ResidentNames maps resident ids to full names.
func ResidentNames(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []residentModel.ResidentModel
	if err := db.Where("resident_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ResidentID] = r.FullName()
	}
	return out, nil
}
