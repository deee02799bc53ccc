package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bisig_backend/internals/configs"
	"bisig_backend/internals/features/blotter/cases/dto"
	"bisig_backend/internals/features/blotter/cases/model"
	"bisig_backend/internals/features/blotter/cases/service"
	residentModel "bisig_backend/internals/features/residents/residents/model"
	uploadService "bisig_backend/internals/features/uploads/service"
	helper "bisig_backend/internals/helpers"
	"bisig_backend/internals/helpers/dbtime"
	"bisig_backend/internals/helpers/storage"
)

type BlotterController struct {
	DB    *gorm.DB
	Store storage.Store
}

func NewBlotterController(db *gorm.DB, store storage.Store) *BlotterController {
	return &BlotterController{DB: db, Store: store}
}

var caseSortColumns = map[string]string{
	"created_at":    "blotter_case_created_at",
	"case_number":   "blotter_case_number",
	"incident_date": "blotter_case_incident_date",
	"status":        "blotter_case_status",
}

func actor(c *fiber.Ctx) *uuid.UUID {
	if id, err := helper.GetUserID(c); err == nil {
		return &id
	}
	return nil
}

func fieldErrs(fe dto.FieldErrors) error {
	if len(fe) == 0 {
		return nil
	}
	return helper.ErrValidationFields(fe)
}

// ensureResidents checks every referenced resident exists.
func ensureResidents(db *gorm.DB, parties []model.BlotterPartyModel) error {
	ids := make([]uuid.UUID, 0, len(parties))
	for _, p := range parties {
		if p.BlotterPartyResidentID != nil {
			ids = append(ids, *p.BlotterPartyResidentID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	ids = uniq(ids)
	var n int64
	if err := db.Model(&residentModel.ResidentModel{}).
		Where("resident_id IN ?", ids).Count(&n).Error; err != nil {
		return helper.ErrInternal("failed to check residents", err)
	}
	if int(n) != len(ids) {
		return helper.ErrValidationFields(map[string][]string{"resident_id": {"resident does not exist"}})
	}
	return nil
}

func uniq(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func (bc *BlotterController) loadCase(c *fiber.Ctx) (*model.BlotterCaseModel, error) {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return nil, err
	}
	var m model.BlotterCaseModel
	if err := bc.DB.WithContext(c.UserContext()).
		Where("blotter_case_id = ?", id).Take(&m).Error; err != nil {
		return nil, helper.FromDB(err, "Blotter case not found", "")
	}
	return &m, nil
}

/* =========================
   Cases
   ========================= */

// GET /api/blotter?status=&incident_type=&year=&q=
func (bc *BlotterController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	q := bc.DB.WithContext(c.UserContext()).Model(&model.BlotterCaseModel{})

	if s := strings.ToUpper(strings.TrimSpace(c.Query("status"))); s != "" {
		q = q.Where("blotter_case_status = ?", s)
	}
	if t := strings.TrimSpace(c.Query("incident_type")); t != "" {
		q = q.Where("blotter_case_incident_type = ?", t)
	}
	if y, err := strconv.Atoi(strings.TrimSpace(c.Query("year"))); err == nil && y > 0 {
		q = q.Where("blotter_case_number LIKE ?", service.YearPattern(y))
	}
	if s := strings.ToLower(strings.TrimSpace(c.Query("q"))); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(blotter_case_title) LIKE ? OR LOWER(blotter_case_number) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.ErrInternal("failed to count blotter cases", err)
	}
	var rows []model.BlotterCaseModel
	if err := p.Apply(q, caseSortColumns, "created_at").Find(&rows).Error; err != nil {
		return helper.ErrInternal("failed to list blotter cases", err)
	}
	out := make([]dto.CaseResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i]))
	}
	return helper.JsonList(c, "Blotter cases fetched", out, helper.BuildMeta(total, p))
}

// GET /api/blotter/:id
func (bc *BlotterController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var m model.BlotterCaseModel
	err = bc.DB.WithContext(c.UserContext()).
		Preload("Parties", func(db *gorm.DB) *gorm.DB { return db.Order("blotter_party_created_at ASC") }).
		Preload("Hearings", func(db *gorm.DB) *gorm.DB { return db.Order("blotter_hearing_scheduled_at ASC") }).
		Where("blotter_case_id = ?", id).Take(&m).Error
	if err != nil {
		return helper.FromDB(err, "Blotter case not found", "")
	}
	return helper.JsonOK(c, "Blotter case fetched", dto.FromModel(&m))
}

// POST /api/blotter
func (bc *BlotterController) Create(c *fiber.Ctx) error {
	var req dto.CreateCaseRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	incident, err := dbtime.ParseDate(req.IncidentDate)
	if err != nil {
		return helper.ErrValidationFields(map[string][]string{"incident_date": {"must be a date (YYYY-MM-DD or RFC3339)"}})
	}

	in := service.CreateInput{
		Title:            req.Title,
		IncidentType:     req.IncidentType,
		Description:      req.Description,
		IncidentDate:     incident,
		IncidentLocation: req.IncidentLocation,
		FiledBy:          actor(c),
	}
	if req.FilingFeeAmount != nil {
		in.FilingFeeAmount = *req.FilingFeeAmount
	}
	for i := range req.Parties {
		in.Parties = append(in.Parties, req.Parties[i].ToModel(uuid.Nil))
	}

	db := bc.DB.WithContext(c.UserContext())
	if err := ensureResidents(db, in.Parties); err != nil {
		return err
	}
	m, err := service.Create(db, in, dbtime.Now())
	if err != nil {
		return helper.FromDB(err, "", "Case number collision, please retry")
	}
	zap.L().Info("blotter case filed", zap.String("case_number", m.BlotterCaseNumber))
	return helper.JsonCreated(c, "Blotter case created", dto.FromModel(m))
}

// PUT /api/blotter/:id
func (bc *BlotterController) Update(c *fiber.Ctx) error {
	m, err := bc.loadCase(c)
	if err != nil {
		return err
	}
	var req dto.UpdateCaseRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	updates, fe := req.Updates()
	if err := fieldErrs(fe); err != nil {
		return err
	}
	db := bc.DB.WithContext(c.UserContext())
	if len(updates) > 0 {
		if err := db.Model(m).Updates(updates).Error; err != nil {
			return helper.FromDB(err, "Blotter case not found", "")
		}
		if err := db.Where("blotter_case_id = ?", m.BlotterCaseID).Take(m).Error; err != nil {
			return helper.FromDB(err, "Blotter case not found", "")
		}
	}
	return helper.JsonUpdated(c, "Blotter case updated", dto.FromModel(m))
}

// DELETE /api/blotter/:id
func (bc *BlotterController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	keys, err := service.Delete(bc.DB.WithContext(ctx), id)
	if err != nil {
		return helper.FromDB(err, "Blotter case not found", "")
	}
	for _, k := range keys {
		uploadService.Remove(ctx, bc.Store, k, false)
	}
	return helper.JsonDeleted(c, "Blotter case deleted", fiber.Map{"id": id})
}

/* =========================
   Status
   ========================= */

// PATCH /api/blotter/:id/status
func (bc *BlotterController) UpdateStatus(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.StatusChangeRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	dates, fe := req.Dates()
	if err := fieldErrs(fe); err != nil {
		return err
	}

	in := service.StatusChange{
		Status:            req.Status,
		DocketDate:        dates.DocketDate,
		SummonDate:        dates.SummonDate,
		MediationStart:    dates.MediationStart,
		MediationEnd:      dates.MediationEnd,
		ConciliationStart: dates.ConciliationStart,
		ConciliationEnd:   dates.ConciliationEnd,
		FilingFeeAmount:   req.FilingFeeAmount,
		FilingFeePaid:     req.FilingFeePaid,
		ResolutionMethod:  req.ResolutionMethod,
		ResolutionNotes:   req.ResolutionNotes,
		ActorID:           actor(c),
	}
	if req.Note != nil {
		in.Note = *req.Note
	}

	m, err := service.ChangeStatus(bc.DB.WithContext(c.UserContext()), id, in, configs.StrictBlotter, dbtime.Now())
	if err != nil {
		return helper.FromDB(err, "Blotter case not found", "")
	}
	zap.L().Info("blotter status changed",
		zap.String("case_number", m.BlotterCaseNumber),
		zap.String("status", m.BlotterCaseStatus))
	return helper.JsonUpdated(c, "Blotter status updated", dto.FromModel(m))
}

// POST /api/blotter/:id/filing-fee
func (bc *BlotterController) FilingFee(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.FilingFeeRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m, advanced, err := service.RecordFilingFee(bc.DB.WithContext(c.UserContext()), id, service.FilingFee{
		Amount:   *req.Amount,
		ORNumber: req.ORNumber,
		Paid:     req.Paid,
		ActorID:  actor(c),
	}, dbtime.Now())
	if err != nil {
		return helper.FromDB(err, "Blotter case not found", "")
	}
	msg := "Filing fee recorded"
	if advanced {
		msg = "Filing fee recorded; case docketed"
	}
	return helper.JsonUpdated(c, msg, dto.FromModel(m))
}

// GET /api/blotter/:id/history
func (bc *BlotterController) History(c *fiber.Ctx) error {
	m, err := bc.loadCase(c)
	if err != nil {
		return err
	}
	rows, err := service.History(bc.DB.WithContext(c.UserContext()), m.BlotterCaseID)
	if err != nil {
		return helper.ErrInternal("failed to load history", err)
	}
	out := make([]dto.StatusUpdateResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromStatusUpdate(&rows[i]))
	}
	return helper.JsonOK(c, "Status history fetched", out)
}

/* =========================
   Parties
   ========================= */

// POST /api/blotter/:id/parties
func (bc *BlotterController) AddParty(c *fiber.Ctx) error {
	m, err := bc.loadCase(c)
	if err != nil {
		return err
	}
	var req dto.PartyRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	party := req.ToModel(m.BlotterCaseID)
	db := bc.DB.WithContext(c.UserContext())
	if err := ensureResidents(db, []model.BlotterPartyModel{party}); err != nil {
		return err
	}
	if err := db.Create(&party).Error; err != nil {
		return helper.ErrInternal("failed to add party", err)
	}
	return helper.JsonCreated(c, "Party added", dto.FromParty(&party))
}

// DELETE /api/blotter/:id/parties/:partyId
func (bc *BlotterController) RemoveParty(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	partyID, err := helper.ParamUUID(c, "partyId")
	if err != nil {
		return err
	}
	res := bc.DB.WithContext(c.UserContext()).
		Where("blotter_party_id = ? AND blotter_party_case_id = ?", partyID, id).
		Delete(&model.BlotterPartyModel{})
	if res.Error != nil {
		return helper.ErrInternal("failed to remove party", res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound("Party not found")
	}
	return helper.JsonDeleted(c, "Party removed", fiber.Map{"id": partyID})
}

/* =========================
   Hearings
   ========================= */

// GET /api/blotter/:id/hearings
func (bc *BlotterController) ListHearings(c *fiber.Ctx) error {
	m, err := bc.loadCase(c)
	if err != nil {
		return err
	}
	var rows []model.BlotterHearingModel
	if err := bc.DB.WithContext(c.UserContext()).
		Where("blotter_hearing_case_id = ?", m.BlotterCaseID).
		Order("blotter_hearing_scheduled_at ASC").
		Find(&rows).Error; err != nil {
		return helper.ErrInternal("failed to list hearings", err)
	}
	out := make([]dto.HearingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromHearing(&rows[i]))
	}
	return helper.JsonOK(c, "Hearings fetched", out)
}

// POST /api/blotter/:id/hearings
func (bc *BlotterController) CreateHearing(c *fiber.Ctx) error {
	m, err := bc.loadCase(c)
	if err != nil {
		return err
	}
	var req dto.CreateHearingRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	at, err := dbtime.ParseDate(req.ScheduledAt)
	if err != nil {
		return helper.ErrValidationFields(map[string][]string{"scheduled_at": {"must be a date (YYYY-MM-DD or RFC3339)"}})
	}
	h := model.BlotterHearingModel{
		BlotterHearingCaseID:      m.BlotterCaseID,
		BlotterHearingType:        req.Type,
		BlotterHearingScheduledAt: at,
		BlotterHearingLocation:    req.Location,
		BlotterHearingNotes:       req.Notes,
		BlotterHearingOutcome:     model.OutcomeScheduled,
	}
	if err := bc.DB.WithContext(c.UserContext()).Create(&h).Error; err != nil {
		return helper.ErrInternal("failed to schedule hearing", err)
	}
	return helper.JsonCreated(c, "Hearing scheduled", dto.FromHearing(&h))
}

// PUT /api/blotter/:id/hearings/:hearingId
func (bc *BlotterController) UpdateHearing(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	hearingID, err := helper.ParamUUID(c, "hearingId")
	if err != nil {
		return err
	}
	var req dto.UpdateHearingRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	updates, fe := req.Updates()
	if err := fieldErrs(fe); err != nil {
		return err
	}

	db := bc.DB.WithContext(c.UserContext())
	var h model.BlotterHearingModel
	if err := db.Where("blotter_hearing_id = ? AND blotter_hearing_case_id = ?", hearingID, id).
		Take(&h).Error; err != nil {
		return helper.FromDB(err, "Hearing not found", "")
	}
	if len(updates) > 0 {
		if err := db.Model(&h).Updates(updates).Error; err != nil {
			return helper.ErrInternal("failed to update hearing", err)
		}
		if err := db.Where("blotter_hearing_id = ?", hearingID).Take(&h).Error; err != nil {
			return helper.FromDB(err, "Hearing not found", "")
		}
	}
	return helper.JsonUpdated(c, "Hearing updated", dto.FromHearing(&h))
}

/* =========================
   Attachments
   ========================= */

// POST /api/blotter/:id/attachments (multipart: file)
func (bc *BlotterController) UploadAttachment(c *fiber.Ctx) error {
	m, err := bc.loadCase(c)
	if err != nil {
		return err
	}
	fh, err := uploadService.FormFile(c, "file")
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	stored, err := uploadService.Save(ctx, bc.Store, fh, "blotter/"+m.BlotterCaseNumber)
	if err != nil {
		return err
	}
	a := model.BlotterAttachmentModel{
		BlotterAttachmentCaseID:      m.BlotterCaseID,
		BlotterAttachmentFileName:    stored.OriginalName,
		BlotterAttachmentStorePath:   stored.Key,
		BlotterAttachmentURL:         stored.URL,
		BlotterAttachmentContentType: stored.ContentType,
		BlotterAttachmentSize:        stored.Size,
		BlotterAttachmentUploadedBy:  actor(c),
	}
	if err := bc.DB.WithContext(ctx).Create(&a).Error; err != nil {
		uploadService.Remove(ctx, bc.Store, stored.Key, stored.PreviewURL != nil)
		return helper.ErrInternal("failed to record attachment", err)
	}
	return helper.JsonCreated(c, "Attachment uploaded", dto.FromAttachment(&a))
}

// GET /api/blotter/:id/attachments
func (bc *BlotterController) ListAttachments(c *fiber.Ctx) error {
	m, err := bc.loadCase(c)
	if err != nil {
		return err
	}
	var rows []model.BlotterAttachmentModel
	if err := bc.DB.WithContext(c.UserContext()).
		Where("blotter_attachment_case_id = ?", m.BlotterCaseID).
		Order("blotter_attachment_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.ErrInternal("failed to list attachments", err)
	}
	out := make([]dto.AttachmentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromAttachment(&rows[i]))
	}
	return helper.JsonOK(c, "Attachments fetched", out)
}
