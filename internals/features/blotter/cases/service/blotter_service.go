package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bisig_backend/internals/features/blotter/cases/model"
	helper "bisig_backend/internals/helpers"
	"bisig_backend/internals/helpers/sequence"
)

func yearPrefix(year int) string {
	return fmt.Sprintf("%s-%d-", model.CaseNumberPrefix, year)
}

// YearPattern matches every case number of the year in a LIKE clause.
func YearPattern(year int) string { return yearPrefix(year) + "%" }

func countFiled(tx *gorm.DB, year int) (int64, error) {
	var n int64
	err := tx.Model(&model.BlotterCaseModel{}).
		Where("blotter_case_number LIKE ?", YearPattern(year)).
		Count(&n).Error
	return n, err
}

// lockCase reads the case FOR UPDATE inside tx.
func lockCase(tx *gorm.DB, id uuid.UUID) (*model.BlotterCaseModel, error) {
	var m model.BlotterCaseModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("blotter_case_id = ?", id).Take(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func appendUpdate(tx *gorm.DB, caseID uuid.UUID, status, note string, actor *uuid.UUID, changes datatypes.JSONMap) error {
	row := model.BlotterStatusUpdateModel{
		BlotterStatusUpdateCaseID:  caseID,
		BlotterStatusUpdateStatus:  status,
		BlotterStatusUpdateNote:    note,
		BlotterStatusUpdateActorID: actor,
	}
	if len(changes) > 0 {
		row.BlotterStatusUpdateChanges = changes
	}
	return tx.Create(&row).Error
}

/* =========================
   Create
   ========================= */

type CreateInput struct {
	Title            string
	IncidentType     string
	Description      string
	IncidentDate     time.Time
	IncidentLocation string
	FilingFeeAmount  float64
	Parties          []model.BlotterPartyModel
	FiledBy          *uuid.UUID
}

// Create numbers the case BC-<year>-NNNN, stores it as FILED with its parties
// and opens the history with a FILED entry.
func Create(db *gorm.DB, in CreateInput, now time.Time) (*model.BlotterCaseModel, error) {
	var out model.BlotterCaseModel
	err := db.Transaction(func(tx *gorm.DB) error {
		year := now.Year()
		n, err := sequence.Next(tx, sequence.NameBlotterCase, year, countFiled)
		if err != nil {
			return err
		}
		out = model.BlotterCaseModel{
			BlotterCaseNumber:           sequence.Format(model.CaseNumberPrefix, year, n),
			BlotterCaseTitle:            in.Title,
			BlotterCaseIncidentType:     in.IncidentType,
			BlotterCaseDescription:      in.Description,
			BlotterCaseIncidentDate:     in.IncidentDate,
			BlotterCaseIncidentLocation: in.IncidentLocation,
			BlotterCaseStatus:           model.StatusFiled,
			BlotterCaseFilingFeeAmount:  in.FilingFeeAmount,
			BlotterCaseFiledBy:          in.FiledBy,
		}
		if err := tx.Omit(clause.Associations).Create(&out).Error; err != nil {
			return err
		}
		for i := range in.Parties {
			p := in.Parties[i]
			p.BlotterPartyCaseID = out.BlotterCaseID
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
			out.Parties = append(out.Parties, p)
		}
		return appendUpdate(tx, out.BlotterCaseID, model.StatusFiled, "Case filed", in.FiledBy, nil)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

/* =========================
   Status change
   ========================= */

type StatusChange struct {
	Status            string
	Note              string
	DocketDate        *time.Time
	SummonDate        *time.Time
	MediationStart    *time.Time
	MediationEnd      *time.Time
	ConciliationStart *time.Time
	ConciliationEnd   *time.Time
	FilingFeeAmount   *float64
	FilingFeePaid     *bool
	ResolutionMethod  *string
	ResolutionNotes   *string
	ActorID           *uuid.UUID
}

type changeSet struct {
	cols    map[string]any
	changes datatypes.JSONMap
}

func newChangeSet() *changeSet {
	return &changeSet{cols: map[string]any{}, changes: datatypes.JSONMap{}}
}

func (s *changeSet) set(col, key string, v any) {
	s.cols[col] = v
	switch t := v.(type) {
	case time.Time:
		s.changes[key] = t.Format(time.RFC3339)
	default:
		s.changes[key] = v
	}
}

func (s *changeSet) setTime(col, key string, t *time.Time) {
	if t != nil {
		s.set(col, key, *t)
	}
}

// ChangeStatus moves the case to in.Status and appends exactly one history
// row, all in one transaction. strict enables the transition table.
func ChangeStatus(db *gorm.DB, id uuid.UUID, in StatusChange, strict bool, now time.Time) (*model.BlotterCaseModel, error) {
	var out *model.BlotterCaseModel
	err := db.Transaction(func(tx *gorm.DB) error {
		m, err := lockCase(tx, id)
		if err != nil {
			return err
		}
		from := m.BlotterCaseStatus
		if !model.IsValidStatus(in.Status) {
			return helper.ErrValidation("invalid status " + in.Status)
		}
		if !model.CanTransition(from, in.Status, strict) {
			return helper.ErrValidation(fmt.Sprintf("cannot change status from %s to %s", from, in.Status))
		}

		cs := newChangeSet()
		cs.cols["blotter_case_status"] = in.Status
		cs.setTime("blotter_case_docket_date", "docket_date", in.DocketDate)
		cs.setTime("blotter_case_summon_date", "summon_date", in.SummonDate)
		cs.setTime("blotter_case_mediation_start", "mediation_start", in.MediationStart)
		cs.setTime("blotter_case_mediation_end", "mediation_end", in.MediationEnd)
		cs.setTime("blotter_case_conciliation_start", "conciliation_start", in.ConciliationStart)
		cs.setTime("blotter_case_conciliation_end", "conciliation_end", in.ConciliationEnd)
		if in.FilingFeeAmount != nil {
			cs.set("blotter_case_filing_fee_amount", "filing_fee_amount", *in.FilingFeeAmount)
		}
		if in.FilingFeePaid != nil {
			cs.set("blotter_case_filing_fee_paid", "filing_fee_paid", *in.FilingFeePaid)
			if *in.FilingFeePaid && m.BlotterCaseFilingFeePaidAt == nil {
				cs.set("blotter_case_filing_fee_paid_at", "filing_fee_paid_at", now)
			}
			if !*in.FilingFeePaid {
				cs.cols["blotter_case_filing_fee_paid_at"] = nil
			}
		}
		if in.ResolutionMethod != nil {
			cs.set("blotter_case_resolution_method", "resolution_method", *in.ResolutionMethod)
		}
		if in.ResolutionNotes != nil {
			cs.set("blotter_case_resolution_notes", "resolution_notes", *in.ResolutionNotes)
		}

		switch in.Status {
		case model.StatusDocketed:
			if in.DocketDate == nil && m.BlotterCaseDocketDate == nil {
				cs.set("blotter_case_docket_date", "docket_date", now)
			}
		case model.StatusResolved:
			cs.set("blotter_case_resolved_at", "resolved_at", now)
		case model.StatusEscalated:
			cs.set("blotter_case_escalated_at", "escalated_at", now)
		}

		if err := tx.Model(m).Updates(cs.cols).Error; err != nil {
			return err
		}

		note := in.Note
		if note == "" {
			note = fmt.Sprintf("Status changed from %s to %s", from, in.Status)
		}
		if err := appendUpdate(tx, id, in.Status, note, in.ActorID, cs.changes); err != nil {
			return err
		}
		out, err = lockCase(tx, id)
		return err
	})
	return out, err
}

/* =========================
   Filing fee
   ========================= */

type FilingFee struct {
	Amount   float64
	ORNumber *string
	Paid     bool
	ActorID  *uuid.UUID
}

// RecordFilingFee stores the fee. Paying the fee of a FILED case dockets it
// and records that in the history; advanced reports whether that happened.
func RecordFilingFee(db *gorm.DB, id uuid.UUID, in FilingFee, now time.Time) (out *model.BlotterCaseModel, advanced bool, err error) {
	err = db.Transaction(func(tx *gorm.DB) error {
		m, err := lockCase(tx, id)
		if err != nil {
			return err
		}
		cols := map[string]any{
			"blotter_case_filing_fee_amount": in.Amount,
			"blotter_case_filing_fee_paid":   in.Paid,
		}
		if in.ORNumber != nil {
			cols["blotter_case_or_number"] = *in.ORNumber
		}
		switch {
		case in.Paid && m.BlotterCaseFilingFeePaidAt == nil:
			cols["blotter_case_filing_fee_paid_at"] = now
		case !in.Paid:
			cols["blotter_case_filing_fee_paid_at"] = nil
		}

		if in.Paid && m.BlotterCaseStatus == model.StatusFiled {
			advanced = true
			cols["blotter_case_status"] = model.StatusDocketed
			if m.BlotterCaseDocketDate == nil {
				cols["blotter_case_docket_date"] = now
			}
		}
		if err := tx.Model(m).Updates(cols).Error; err != nil {
			return err
		}
		if advanced {
			changes := datatypes.JSONMap{
				"filing_fee_amount": in.Amount,
				"filing_fee_paid":   true,
			}
			if in.ORNumber != nil {
				changes["or_number"] = *in.ORNumber
			}
			if err := appendUpdate(tx, id, model.StatusDocketed,
				"Filing fee paid; case docketed", in.ActorID, changes); err != nil {
				return err
			}
		}
		out, err = lockCase(tx, id)
		return err
	})
	return out, advanced, err
}

/* =========================
   Delete
   ========================= */

// Delete removes the case with its children and returns the attachment keys
// so the caller can drop the stored files after commit.
func Delete(db *gorm.DB, id uuid.UUID) ([]string, error) {
	var keys []string
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockCase(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&model.BlotterAttachmentModel{}).
			Where("blotter_attachment_case_id = ?", id).
			Pluck("blotter_attachment_store_path", &keys).Error; err != nil {
			return err
		}
		for _, child := range []struct {
			m   any
			col string
		}{
			{&model.BlotterPartyModel{}, "blotter_party_case_id"},
			{&model.BlotterStatusUpdateModel{}, "blotter_status_update_case_id"},
			{&model.BlotterHearingModel{}, "blotter_hearing_case_id"},
			{&model.BlotterAttachmentModel{}, "blotter_attachment_case_id"},
		} {
			if err := tx.Where(child.col+" = ?", id).Delete(child.m).Error; err != nil {
				return err
			}
		}
		return tx.Where("blotter_case_id = ?", id).Delete(&model.BlotterCaseModel{}).Error
	})
	return keys, err
}

// History lists status updates oldest first.
func History(db *gorm.DB, id uuid.UUID) ([]model.BlotterStatusUpdateModel, error) {
	var rows []model.BlotterStatusUpdateModel
	err := db.Where("blotter_status_update_case_id = ?", id).
		Order("blotter_status_update_created_at ASC").
		Find(&rows).Error
	return rows, err
}
