package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"bisig_backend/internals/features/blotter/cases/model"
	"bisig_backend/internals/helpers/dbtime"
)

// FieldErrors collects per-field messages while parsing dates.
type FieldErrors map[string][]string

func (fe FieldErrors) date(field string, p *string) *time.Time {
	t, err := dbtime.ParseDatePtr(p)
	if err != nil {
		fe[field] = append(fe[field], "must be a date (YYYY-MM-DD or RFC3339)")
		return nil
	}
	return t
}

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
   Requests
   ========================= */

type PartyRequest struct {
	Role       string  `json:"role" validate:"required,oneof=COMPLAINANT RESPONDENT WITNESS"`
	Name       string  `json:"name" validate:"required,max=200"`
	ResidentID *string `json:"resident_id" validate:"omitempty,uuid"`
	Contact    *string `json:"contact" validate:"omitempty,max=50"`
	Address    *string `json:"address"`
}

func (r *PartyRequest) Normalize() {
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
	r.Name = strings.TrimSpace(r.Name)
	r.ResidentID = trimPtr(r.ResidentID)
	r.Contact = trimPtr(r.Contact)
	r.Address = trimPtr(r.Address)
}

func (r *PartyRequest) ToModel(caseID uuid.UUID) model.BlotterPartyModel {
	m := model.BlotterPartyModel{
		BlotterPartyCaseID:  caseID,
		BlotterPartyRole:    r.Role,
		BlotterPartyName:    r.Name,
		BlotterPartyContact: r.Contact,
		BlotterPartyAddress: r.Address,
	}
	if r.ResidentID != nil {
		id := uuid.MustParse(*r.ResidentID)
		m.BlotterPartyResidentID = &id
	}
	return m
}

type CreateCaseRequest struct {
	Title            string         `json:"title" validate:"required,max=200"`
	IncidentType     string         `json:"incident_type" validate:"required,max=80"`
	Description      string         `json:"description" validate:"required"`
	IncidentDate     string         `json:"incident_date" validate:"required"`
	IncidentLocation string         `json:"incident_location" validate:"required"`
	FilingFeeAmount  *float64       `json:"filing_fee_amount" validate:"omitempty,gte=0"`
	Parties          []PartyRequest `json:"parties" validate:"omitempty,dive"`
}

func (r *CreateCaseRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.IncidentType = strings.TrimSpace(r.IncidentType)
	r.Description = strings.TrimSpace(r.Description)
	r.IncidentLocation = strings.TrimSpace(r.IncidentLocation)
	for i := range r.Parties {
		r.Parties[i].Normalize()
	}
}

type UpdateCaseRequest struct {
	Title            *string  `json:"title" validate:"omitempty,min=1,max=200"`
	IncidentType     *string  `json:"incident_type" validate:"omitempty,min=1,max=80"`
	Description      *string  `json:"description" validate:"omitempty,min=1"`
	IncidentDate     *string  `json:"incident_date"`
	IncidentLocation *string  `json:"incident_location" validate:"omitempty,min=1"`
	FilingFeeAmount  *float64 `json:"filing_fee_amount" validate:"omitempty,gte=0"`
}

// Updates builds the column map. Status is changed only through the status endpoint.
func (r *UpdateCaseRequest) Updates() (map[string]any, FieldErrors) {
	m := map[string]any{}
	fe := FieldErrors{}
	set := func(col string, p *string) {
		if p != nil {
			m[col] = strings.TrimSpace(*p)
		}
	}
	set("blotter_case_title", r.Title)
	set("blotter_case_incident_type", r.IncidentType)
	set("blotter_case_description", r.Description)
	set("blotter_case_incident_location", r.IncidentLocation)
	if t := fe.date("incident_date", r.IncidentDate); t != nil {
		m["blotter_case_incident_date"] = *t
	}
	if r.FilingFeeAmount != nil {
		m["blotter_case_filing_fee_amount"] = *r.FilingFeeAmount
	}
	return m, fe
}

type StatusChangeRequest struct {
	Status            string   `json:"status" validate:"required,oneof=FILED DOCKETED SUMMONED MEDIATION CONCILIATION ARBITRATION PENDING ONGOING RESOLVED ESCALATED DISMISSED"`
	Note              *string  `json:"note" validate:"omitempty,max=2000"`
	DocketDate        *string  `json:"docket_date"`
	SummonDate        *string  `json:"summon_date"`
	MediationStart    *string  `json:"mediation_start"`
	MediationEnd      *string  `json:"mediation_end"`
	ConciliationStart *string  `json:"conciliation_start"`
	ConciliationEnd   *string  `json:"conciliation_end"`
	FilingFeeAmount   *float64 `json:"filing_fee_amount" validate:"omitempty,gte=0"`
	FilingFeePaid     *bool    `json:"filing_fee_paid"`
	ResolutionMethod  *string  `json:"resolution_method" validate:"omitempty,max=50"`
	ResolutionNotes   *string  `json:"resolution_notes"`
}

func (r *StatusChangeRequest) Normalize() {
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
	r.Note = trimPtr(r.Note)
	r.ResolutionMethod = trimPtr(r.ResolutionMethod)
	r.ResolutionNotes = trimPtr(r.ResolutionNotes)
}

type StatusDates struct {
	DocketDate, SummonDate             *time.Time
	MediationStart, MediationEnd       *time.Time
	ConciliationStart, ConciliationEnd *time.Time
}

// Dates parses the optional schedule fields.
func (r *StatusChangeRequest) Dates() (StatusDates, FieldErrors) {
	fe := FieldErrors{}
	d := StatusDates{
		DocketDate:        fe.date("docket_date", r.DocketDate),
		SummonDate:        fe.date("summon_date", r.SummonDate),
		MediationStart:    fe.date("mediation_start", r.MediationStart),
		MediationEnd:      fe.date("mediation_end", r.MediationEnd),
		ConciliationStart: fe.date("conciliation_start", r.ConciliationStart),
		ConciliationEnd:   fe.date("conciliation_end", r.ConciliationEnd),
	}
	if d.MediationStart != nil && d.MediationEnd != nil && d.MediationEnd.Before(*d.MediationStart) {
		fe["mediation_end"] = append(fe["mediation_end"], "must not be before mediation_start")
	}
	if d.ConciliationStart != nil && d.ConciliationEnd != nil && d.ConciliationEnd.Before(*d.ConciliationStart) {
		fe["conciliation_end"] = append(fe["conciliation_end"], "must not be before conciliation_start")
	}
	return d, fe
}

type FilingFeeRequest struct {
	Amount   *float64 `json:"amount" validate:"required,gte=0"`
	ORNumber *string  `json:"or_number" validate:"omitempty,max=50"`
	Paid     bool     `json:"paid"`
}

func (r *FilingFeeRequest) Normalize() { r.ORNumber = trimPtr(r.ORNumber) }

type CreateHearingRequest struct {
	Type        string  `json:"type" validate:"required,oneof=MEDIATION CONCILIATION ARBITRATION"`
	ScheduledAt string  `json:"scheduled_at" validate:"required"`
	Location    *string `json:"location"`
	Notes       *string `json:"notes"`
}

func (r *CreateHearingRequest) Normalize() {
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	r.Location = trimPtr(r.Location)
	r.Notes = trimPtr(r.Notes)
}

type UpdateHearingRequest struct {
	ScheduledAt *string `json:"scheduled_at"`
	Location    *string `json:"location"`
	Notes       *string `json:"notes"`
	Outcome     *string `json:"outcome" validate:"omitempty,oneof=SCHEDULED HELD POSTPONED SETTLED FAILED"`
}

func (r *UpdateHearingRequest) Normalize() {
	if r.Outcome != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Outcome))
		r.Outcome = &v
	}
}

func (r *UpdateHearingRequest) Updates() (map[string]any, FieldErrors) {
	m := map[string]any{}
	fe := FieldErrors{}
	if t := fe.date("scheduled_at", r.ScheduledAt); t != nil {
		m["blotter_hearing_scheduled_at"] = *t
	}
	if r.Location != nil {
		m["blotter_hearing_location"] = trimPtr(r.Location)
	}
	if r.Notes != nil {
		m["blotter_hearing_notes"] = trimPtr(r.Notes)
	}
	if r.Outcome != nil {
		m["blotter_hearing_outcome"] = *r.Outcome
	}
	return m, fe
}

/* =========================
   Responses
   ========================= */

type PartyResponse struct {
	ID         uuid.UUID  `json:"id"`
	Role       string     `json:"role"`
	Name       string     `json:"name"`
	ResidentID *uuid.UUID `json:"resident_id"`
	Contact    *string    `json:"contact"`
	Address    *string    `json:"address"`
}

func FromParty(m *model.BlotterPartyModel) PartyResponse {
	return PartyResponse{
		ID:         m.BlotterPartyID,
		Role:       m.BlotterPartyRole,
		Name:       m.BlotterPartyName,
		ResidentID: m.BlotterPartyResidentID,
		Contact:    m.BlotterPartyContact,
		Address:    m.BlotterPartyAddress,
	}
}

type HearingResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Location    *string   `json:"location"`
	Notes       *string   `json:"notes"`
	Outcome     string    `json:"outcome"`
}

func FromHearing(m *model.BlotterHearingModel) HearingResponse {
	return HearingResponse{
		ID:          m.BlotterHearingID,
		Type:        m.BlotterHearingType,
		ScheduledAt: m.BlotterHearingScheduledAt,
		Location:    m.BlotterHearingLocation,
		Notes:       m.BlotterHearingNotes,
		Outcome:     m.BlotterHearingOutcome,
	}
}

type StatusUpdateResponse struct {
	ID        uuid.UUID      `json:"id"`
	Status    string         `json:"status"`
	Note      string         `json:"note"`
	ActorID   *uuid.UUID     `json:"actor_id"`
	Changes   map[string]any `json:"changes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func FromStatusUpdate(m *model.BlotterStatusUpdateModel) StatusUpdateResponse {
	return StatusUpdateResponse{
		ID:        m.BlotterStatusUpdateID,
		Status:    m.BlotterStatusUpdateStatus,
		Note:      m.BlotterStatusUpdateNote,
		ActorID:   m.BlotterStatusUpdateActorID,
		Changes:   m.BlotterStatusUpdateChanges,
		CreatedAt: m.BlotterStatusUpdateCreatedAt,
	}
}

type AttachmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	FileName    string     `json:"file_name"`
	URL         string     `json:"url"`
	ContentType string     `json:"content_type"`
	Size        int64      `json:"size"`
	UploadedBy  *uuid.UUID `json:"uploaded_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

func FromAttachment(m *model.BlotterAttachmentModel) AttachmentResponse {
	return AttachmentResponse{
		ID:          m.BlotterAttachmentID,
		FileName:    m.BlotterAttachmentFileName,
		URL:         m.BlotterAttachmentURL,
		ContentType: m.BlotterAttachmentContentType,
		Size:        m.BlotterAttachmentSize,
		UploadedBy:  m.BlotterAttachmentUploadedBy,
		CreatedAt:   m.BlotterAttachmentCreatedAt,
	}
}

type CaseResponse struct {
	ID                uuid.UUID  `json:"id"`
	CaseNumber        string     `json:"case_number"`
	Title             string     `json:"title"`
	IncidentType      string     `json:"incident_type"`
	Description       string     `json:"description"`
	IncidentDate      *string    `json:"incident_date"`
	IncidentLocation  string     `json:"incident_location"`
	Status            string     `json:"status"`
	FilingFeeAmount   float64    `json:"filing_fee_amount"`
	FilingFeePaid     bool       `json:"filing_fee_paid"`
	FilingFeePaidAt   *time.Time `json:"filing_fee_paid_at"`
	ORNumber          *string    `json:"or_number"`
	DocketDate        *string    `json:"docket_date"`
	SummonDate        *string    `json:"summon_date"`
	MediationStart    *time.Time `json:"mediation_start"`
	MediationEnd      *time.Time `json:"mediation_end"`
	ConciliationStart *time.Time `json:"conciliation_start"`
	ConciliationEnd   *time.Time `json:"conciliation_end"`
	ResolutionMethod  *string    `json:"resolution_method"`
	ResolutionNotes   *string    `json:"resolution_notes"`
	ResolvedAt        *time.Time `json:"resolved_at"`
	EscalatedAt       *time.Time `json:"escalated_at"`
	FiledBy           *uuid.UUID `json:"filed_by"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Parties  []PartyResponse   `json:"parties,omitempty"`
	Hearings []HearingResponse `json:"hearings,omitempty"`
}

func FromModel(m *model.BlotterCaseModel) CaseResponse {
	out := CaseResponse{
		ID:                m.BlotterCaseID,
		CaseNumber:        m.BlotterCaseNumber,
		Title:             m.BlotterCaseTitle,
		IncidentType:      m.BlotterCaseIncidentType,
		Description:       m.BlotterCaseDescription,
		IncidentDate:      dbtime.FormatDate(&m.BlotterCaseIncidentDate),
		IncidentLocation:  m.BlotterCaseIncidentLocation,
		Status:            m.BlotterCaseStatus,
		FilingFeeAmount:   m.BlotterCaseFilingFeeAmount,
		FilingFeePaid:     m.BlotterCaseFilingFeePaid,
		FilingFeePaidAt:   m.BlotterCaseFilingFeePaidAt,
		ORNumber:          m.BlotterCaseORNumber,
		DocketDate:        dbtime.FormatDate(m.BlotterCaseDocketDate),
		SummonDate:        dbtime.FormatDate(m.BlotterCaseSummonDate),
		MediationStart:    m.BlotterCaseMediationStart,
		MediationEnd:      m.BlotterCaseMediationEnd,
		ConciliationStart: m.BlotterCaseConciliationStart,
		ConciliationEnd:   m.BlotterCaseConciliationEnd,
		ResolutionMethod:  m.BlotterCaseResolutionMethod,
		ResolutionNotes:   m.BlotterCaseResolutionNotes,
		ResolvedAt:        m.BlotterCaseResolvedAt,
		EscalatedAt:       m.BlotterCaseEscalatedAt,
		FiledBy:           m.BlotterCaseFiledBy,
		CreatedAt:         m.BlotterCaseCreatedAt,
		UpdatedAt:         m.BlotterCaseUpdatedAt,
	}
	for i := range m.Parties {
		out.Parties = append(out.Parties, FromParty(&m.Parties[i]))
	}
	for i := range m.Hearings {
		out.Hearings = append(out.Hearings, FromHearing(&m.Hearings[i]))
	}
	return out
}
