package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Status machine
   ========================= */

const (
	StatusFiled        = "FILED"
	StatusDocketed     = "DOCKETED"
	StatusSummoned     = "SUMMONED"
	StatusMediation    = "MEDIATION"
	StatusConciliation = "CONCILIATION"
	StatusArbitration  = "ARBITRATION"
	StatusPending      = "PENDING"
	StatusOngoing      = "ONGOING"
	StatusResolved     = "RESOLVED"
	StatusEscalated    = "ESCALATED"
	StatusDismissed    = "DISMISSED"
)

var Statuses = []string{
	StatusFiled, StatusDocketed, StatusSummoned, StatusMediation, StatusConciliation,
	StatusArbitration, StatusPending, StatusOngoing, StatusResolved, StatusEscalated, StatusDismissed,
}

// strictTransitions is consulted only when strict mode is on.
var strictTransitions = map[string][]string{
	StatusFiled:        {StatusDocketed, StatusPending, StatusDismissed},
	StatusPending:      {StatusDocketed, StatusOngoing, StatusDismissed},
	StatusDocketed:     {StatusSummoned, StatusMediation, StatusOngoing, StatusDismissed},
	StatusSummoned:     {StatusMediation, StatusEscalated, StatusDismissed},
	StatusOngoing:      {StatusMediation, StatusConciliation, StatusResolved, StatusEscalated, StatusDismissed},
	StatusMediation:    {StatusConciliation, StatusResolved, StatusEscalated, StatusDismissed},
	StatusConciliation: {StatusArbitration, StatusResolved, StatusEscalated, StatusDismissed},
	StatusArbitration:  {StatusResolved, StatusEscalated, StatusDismissed},
}

func IsValidStatus(s string) bool {
	for _, it := range Statuses {
		if it == s {
			return true
		}
	}
	return false
}

// CanTransition reports whether from -> to is allowed. Without strict mode any
// known status may follow any other.
func CanTransition(from, to string, strict bool) bool {
	if !IsValidStatus(to) {
		return false
	}
	if !strict {
		return true
	}
	for _, s := range strictTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

const CaseNumberPrefix = "BC"

/* =========================
   Models
   ========================= */

type BlotterCaseModel struct {
	BlotterCaseID               uuid.UUID `json:"blotter_case_id" gorm:"column:blotter_case_id;type:uuid;primaryKey"`
	BlotterCaseNumber           string    `json:"blotter_case_number" gorm:"column:blotter_case_number;type:varchar(30);not null;uniqueIndex:uq_blotter_cases_number"`
	BlotterCaseTitle            string    `json:"blotter_case_title" gorm:"column:blotter_case_title;type:varchar(200);not null"`
	BlotterCaseIncidentType     string    `json:"blotter_case_incident_type" gorm:"column:blotter_case_incident_type;type:varchar(80);not null"`
	BlotterCaseDescription      string    `json:"blotter_case_description" gorm:"column:blotter_case_description;type:text;not null"`
	BlotterCaseIncidentDate     time.Time `json:"blotter_case_incident_date" gorm:"column:blotter_case_incident_date;not null"`
	BlotterCaseIncidentLocation string    `json:"blotter_case_incident_location" gorm:"column:blotter_case_incident_location;type:text;not null"`
	BlotterCaseStatus           string    `json:"blotter_case_status" gorm:"column:blotter_case_status;type:varchar(20);not null;index"`

	BlotterCaseFilingFeeAmount float64    `json:"blotter_case_filing_fee_amount" gorm:"column:blotter_case_filing_fee_amount;type:numeric(14,2);not null"`
	BlotterCaseFilingFeePaid   bool       `json:"blotter_case_filing_fee_paid" gorm:"column:blotter_case_filing_fee_paid;not null"`
	BlotterCaseFilingFeePaidAt *time.Time `json:"blotter_case_filing_fee_paid_at,omitempty" gorm:"column:blotter_case_filing_fee_paid_at"`
	BlotterCaseORNumber        *string    `json:"blotter_case_or_number,omitempty" gorm:"column:blotter_case_or_number;type:varchar(50)"`

	BlotterCaseDocketDate        *time.Time `json:"blotter_case_docket_date,omitempty" gorm:"column:blotter_case_docket_date"`
	BlotterCaseSummonDate        *time.Time `json:"blotter_case_summon_date,omitempty" gorm:"column:blotter_case_summon_date"`
	BlotterCaseMediationStart    *time.Time `json:"blotter_case_mediation_start,omitempty" gorm:"column:blotter_case_mediation_start"`
	BlotterCaseMediationEnd      *time.Time `json:"blotter_case_mediation_end,omitempty" gorm:"column:blotter_case_mediation_end"`
	BlotterCaseConciliationStart *time.Time `json:"blotter_case_conciliation_start,omitempty" gorm:"column:blotter_case_conciliation_start"`
	BlotterCaseConciliationEnd   *time.Time `json:"blotter_case_conciliation_end,omitempty" gorm:"column:blotter_case_conciliation_end"`

	BlotterCaseResolutionMethod *string    `json:"blotter_case_resolution_method,omitempty" gorm:"column:blotter_case_resolution_method;type:varchar(50)"`
	BlotterCaseResolutionNotes  *string    `json:"blotter_case_resolution_notes,omitempty" gorm:"column:blotter_case_resolution_notes;type:text"`
	BlotterCaseResolvedAt       *time.Time `json:"blotter_case_resolved_at,omitempty" gorm:"column:blotter_case_resolved_at"`
	BlotterCaseEscalatedAt      *time.Time `json:"blotter_case_escalated_at,omitempty" gorm:"column:blotter_case_escalated_at"`

	BlotterCaseFiledBy *uuid.UUID `json:"blotter_case_filed_by,omitempty" gorm:"column:blotter_case_filed_by;type:uuid"`

	BlotterCaseCreatedAt time.Time `json:"blotter_case_created_at" gorm:"column:blotter_case_created_at;autoCreateTime;index"`
	BlotterCaseUpdatedAt time.Time `json:"blotter_case_updated_at" gorm:"column:blotter_case_updated_at;autoUpdateTime"`

	Parties  []BlotterPartyModel        `json:"parties,omitempty" gorm:"foreignKey:BlotterPartyCaseID;references:BlotterCaseID"`
	Updates  []BlotterStatusUpdateModel `json:"status_updates,omitempty" gorm:"foreignKey:BlotterStatusUpdateCaseID;references:BlotterCaseID"`
	Hearings []BlotterHearingModel      `json:"hearings,omitempty" gorm:"foreignKey:BlotterHearingCaseID;references:BlotterCaseID"`
}

func (BlotterCaseModel) TableName() string { return "blotter_cases" }

func (m *BlotterCaseModel) BeforeCreate(*gorm.DB) error {
	if m.BlotterCaseID == uuid.Nil {
		m.BlotterCaseID = uuid.New()
	}
	return nil
}

const (
	PartyComplainant = "COMPLAINANT"
	PartyRespondent  = "RESPONDENT"
	PartyWitness     = "WITNESS"
)

type BlotterPartyModel struct {
	BlotterPartyID         uuid.UUID  `json:"blotter_party_id" gorm:"column:blotter_party_id;type:uuid;primaryKey"`
	BlotterPartyCaseID     uuid.UUID  `json:"blotter_party_case_id" gorm:"column:blotter_party_case_id;type:uuid;not null;index"`
	BlotterPartyRole       string     `json:"blotter_party_role" gorm:"column:blotter_party_role;type:varchar(20);not null"`
	BlotterPartyName       string     `json:"blotter_party_name" gorm:"column:blotter_party_name;type:varchar(200);not null"`
	BlotterPartyResidentID *uuid.UUID `json:"blotter_party_resident_id,omitempty" gorm:"column:blotter_party_resident_id;type:uuid"`
	BlotterPartyContact    *string    `json:"blotter_party_contact,omitempty" gorm:"column:blotter_party_contact;type:varchar(50)"`
	BlotterPartyAddress    *string    `json:"blotter_party_address,omitempty" gorm:"column:blotter_party_address;type:text"`
	BlotterPartyCreatedAt  time.Time  `json:"blotter_party_created_at" gorm:"column:blotter_party_created_at;autoCreateTime"`
}

func (BlotterPartyModel) TableName() string { return "blotter_parties" }

func (m *BlotterPartyModel) BeforeCreate(*gorm.DB) error {
	if m.BlotterPartyID == uuid.Nil {
		m.BlotterPartyID = uuid.New()
	}
	return nil
}

// BlotterStatusUpdateModel rows are only ever inserted.
type BlotterStatusUpdateModel struct {
	BlotterStatusUpdateID        uuid.UUID         `json:"blotter_status_update_id" gorm:"column:blotter_status_update_id;type:uuid;primaryKey"`
	BlotterStatusUpdateCaseID    uuid.UUID         `json:"blotter_status_update_case_id" gorm:"column:blotter_status_update_case_id;type:uuid;not null;index"`
	BlotterStatusUpdateStatus    string            `json:"blotter_status_update_status" gorm:"column:blotter_status_update_status;type:varchar(20);not null"`
	BlotterStatusUpdateNote      string            `json:"blotter_status_update_note" gorm:"column:blotter_status_update_note;type:text;not null"`
	BlotterStatusUpdateActorID   *uuid.UUID        `json:"blotter_status_update_actor_id,omitempty" gorm:"column:blotter_status_update_actor_id;type:uuid"`
	// fields written together with the status, keyed by json name
	BlotterStatusUpdateChanges   datatypes.JSONMap `json:"blotter_status_update_changes,omitempty" gorm:"column:blotter_status_update_changes"`
	BlotterStatusUpdateCreatedAt time.Time         `json:"blotter_status_update_created_at" gorm:"column:blotter_status_update_created_at;autoCreateTime;index"`
}

func (BlotterStatusUpdateModel) TableName() string { return "blotter_status_updates" }

func (m *BlotterStatusUpdateModel) BeforeCreate(*gorm.DB) error {
	if m.BlotterStatusUpdateID == uuid.Nil {
		m.BlotterStatusUpdateID = uuid.New()
	}
	return nil
}

const (
	HearingMediation    = "MEDIATION"
	HearingConciliation = "CONCILIATION"
	HearingArbitration  = "ARBITRATION"

	OutcomeScheduled = "SCHEDULED"
	OutcomeHeld      = "HELD"
	OutcomePostponed = "POSTPONED"
	OutcomeSettled   = "SETTLED"
	OutcomeFailed    = "FAILED"
)

type BlotterHearingModel struct {
	BlotterHearingID          uuid.UUID `json:"blotter_hearing_id" gorm:"column:blotter_hearing_id;type:uuid;primaryKey"`
	BlotterHearingCaseID      uuid.UUID `json:"blotter_hearing_case_id" gorm:"column:blotter_hearing_case_id;type:uuid;not null;index"`
	BlotterHearingType        string    `json:"blotter_hearing_type" gorm:"column:blotter_hearing_type;type:varchar(20);not null"`
	BlotterHearingScheduledAt time.Time `json:"blotter_hearing_scheduled_at" gorm:"column:blotter_hearing_scheduled_at;not null"`
	BlotterHearingLocation    *string   `json:"blotter_hearing_location,omitempty" gorm:"column:blotter_hearing_location;type:text"`
	BlotterHearingNotes       *string   `json:"blotter_hearing_notes,omitempty" gorm:"column:blotter_hearing_notes;type:text"`
	BlotterHearingOutcome     string    `json:"blotter_hearing_outcome" gorm:"column:blotter_hearing_outcome;type:varchar(20);not null"`
	BlotterHearingCreatedAt   time.Time `json:"blotter_hearing_created_at" gorm:"column:blotter_hearing_created_at;autoCreateTime"`
	BlotterHearingUpdatedAt   time.Time `json:"blotter_hearing_updated_at" gorm:"column:blotter_hearing_updated_at;autoUpdateTime"`
}

func (BlotterHearingModel) TableName() string { return "blotter_hearings" }

func (m *BlotterHearingModel) BeforeCreate(*gorm.DB) error {
	if m.BlotterHearingID == uuid.Nil {
		m.BlotterHearingID = uuid.New()
	}
	return nil
}

type BlotterAttachmentModel struct {
	BlotterAttachmentID          uuid.UUID  `json:"blotter_attachment_id" gorm:"column:blotter_attachment_id;type:uuid;primaryKey"`
	BlotterAttachmentCaseID      uuid.UUID  `json:"blotter_attachment_case_id" gorm:"column:blotter_attachment_case_id;type:uuid;not null;index"`
	BlotterAttachmentFileName    string     `json:"blotter_attachment_file_name" gorm:"column:blotter_attachment_file_name;type:varchar(255);not null"`
	BlotterAttachmentStorePath   string     `json:"blotter_attachment_store_path" gorm:"column:blotter_attachment_store_path;type:text;not null"`
	BlotterAttachmentURL         string     `json:"blotter_attachment_url" gorm:"column:blotter_attachment_url;type:text;not null"`
	BlotterAttachmentContentType string     `json:"blotter_attachment_content_type" gorm:"column:blotter_attachment_content_type;type:varchar(100);not null"`
	BlotterAttachmentSize        int64      `json:"blotter_attachment_size" gorm:"column:blotter_attachment_size;not null"`
	BlotterAttachmentUploadedBy  *uuid.UUID `json:"blotter_attachment_uploaded_by,omitempty" gorm:"column:blotter_attachment_uploaded_by;type:uuid"`
	BlotterAttachmentCreatedAt   time.Time  `json:"blotter_attachment_created_at" gorm:"column:blotter_attachment_created_at;autoCreateTime"`
}

func (BlotterAttachmentModel) TableName() string { return "blotter_attachments" }

func (m *BlotterAttachmentModel) BeforeCreate(*gorm.DB) error {
	if m.BlotterAttachmentID == uuid.Nil {
		m.BlotterAttachmentID = uuid.New()
	}
	return nil
}
