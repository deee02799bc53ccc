package controller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bisig_backend/internals/configs"
	"bisig_backend/internals/features/certificates/certificates/dto"
	"bisig_backend/internals/features/certificates/certificates/model"
	"bisig_backend/internals/features/certificates/certificates/service"
	residentModel "bisig_backend/internals/features/residents/residents/model"
	helper "bisig_backend/internals/helpers"
	"bisig_backend/internals/helpers/dbtime"
)

type CertificateController struct {
	DB *gorm.DB
}

func NewCertificateController(db *gorm.DB) *CertificateController {
	return &CertificateController{DB: db}
}

var certificateSortColumns = map[string]string{
	"created_at":     "certificate_created_at",
	"control_number": "certificate_control_number",
	"status":         "certificate_status",
	"type":           "certificate_type",
}

// ApplyListFilters reads ?status, ?type, ?resident_id, ?year and ?q.
func ApplyListFilters(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
	if s := strings.ToUpper(strings.TrimSpace(c.Query("status"))); s != "" {
		q = q.Where("certificate_status = ?", s)
	}
	if t := strings.ToUpper(strings.TrimSpace(c.Query("type"))); t != "" {
		q = q.Where("certificate_type = ?", t)
	}
	if id, err := uuid.Parse(strings.TrimSpace(c.Query("resident_id"))); err == nil {
		q = q.Where("certificate_resident_id = ?", id)
	}
	if y, err := strconv.Atoi(strings.TrimSpace(c.Query("year"))); err == nil && y > 0 {
		q = q.Where("certificate_control_number LIKE ?", fmt.Sprintf("%s-%d-%%", model.ControlNumberPrefix, y))
	}
	if s := strings.ToUpper(strings.TrimSpace(c.Query("q"))); s != "" {
		q = q.Where("UPPER(certificate_control_number) LIKE ?", "%"+s+"%")
	}
	return q
}

// GET /api/certificates
func (cc *CertificateController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	db := cc.DB.WithContext(c.UserContext())

	q := ApplyListFilters(c, db.Model(&model.CertificateModel{}))
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.ErrInternal("failed to count certificates", err)
	}
	var rows []model.CertificateModel
	if err := p.Apply(q, certificateSortColumns, "created_at").Find(&rows).Error; err != nil {
		return helper.ErrInternal("failed to list certificates", err)
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.CertificateResidentID)
	}
	names, err := service.ResidentNames(db, ids)
	if err != nil {
		return helper.ErrInternal("failed to load residents", err)
	}
	out := make([]dto.CertificateResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i], names[rows[i].CertificateResidentID]))
	}
	return helper.JsonList(c, "Certificates fetched", out, helper.BuildMeta(total, p))
}

func (cc *CertificateController) load(c *fiber.Ctx) (*model.CertificateModel, string, error) {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return nil, "", err
	}
	db := cc.DB.WithContext(c.UserContext())
	var m model.CertificateModel
	if err := db.Where("certificate_id = ?", id).Take(&m).Error; err != nil {
		return nil, "", helper.FromDB(err, "Certificate not found", "")
	}
	names, err := service.ResidentNames(db, []uuid.UUID{m.CertificateResidentID})
	if err != nil {
		return nil, "", helper.ErrInternal("failed to load resident", err)
	}
	return &m, names[m.CertificateResidentID], nil
}

// GET /api/certificates/:id
func (cc *CertificateController) Get(c *fiber.Ctx) error {
	m, name, err := cc.load(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Certificate fetched", dto.FromModel(m, name))
}

// POST /api/certificates
func (cc *CertificateController) Create(c *fiber.Ctx) error {
	var req dto.CreateCertificateRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	in := service.IssueInput{
		Type:       req.Type,
		Purpose:    req.Purpose,
		ResidentID: uuid.MustParse(req.ResidentID),
		ORNumber:   req.ORNumber,
		Remarks:    req.Remarks,
	}
	if req.OfficialID != nil {
		id := uuid.MustParse(*req.OfficialID)
		in.OfficialID = &id
	}
	if req.FeeAmount != nil {
		in.FeeAmount = *req.FeeAmount
	}

	m, err := service.Issue(cc.DB.WithContext(c.UserContext()), in, dbtime.Now())
	if err != nil {
		return helper.FromDB(err, "", "Control number collision, please retry")
	}
	zap.L().Info("certificate issued",
		zap.String("control_number", m.CertificateControlNumber),
		zap.String("type", m.CertificateType))

	names, _ := service.ResidentNames(cc.DB.WithContext(c.UserContext()), []uuid.UUID{m.CertificateResidentID})
	return helper.JsonCreated(c, "Certificate created", dto.FromModel(m, names[m.CertificateResidentID]))
}

// PUT /api/certificates/:id/status
func (cc *CertificateController) UpdateStatus(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m, err := service.ChangeStatus(cc.DB.WithContext(c.UserContext()), id, service.StatusInput{
		Status:   req.Status,
		Remarks:  req.Remarks,
		ORNumber: req.ORNumber,
	}, dbtime.Now())
	if err != nil {
		return helper.FromDB(err, "Certificate not found", "")
	}
	names, _ := service.ResidentNames(cc.DB.WithContext(c.UserContext()), []uuid.UUID{m.CertificateResidentID})
	return helper.JsonUpdated(c, "Certificate status updated", dto.FromModel(m, names[m.CertificateResidentID]))
}

// DELETE /api/certificates/:id (PENDING only)
func (cc *CertificateController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	db := cc.DB.WithContext(c.UserContext())
	var m model.CertificateModel
	if err := db.Where("certificate_id = ?", id).Take(&m).Error; err != nil {
		return helper.FromDB(err, "Certificate not found", "")
	}
	if m.CertificateStatus != model.StatusPending {
		return helper.ErrValidation("only pending certificates can be deleted")
	}
	res := db.Where("certificate_id = ? AND certificate_status = ?", id, model.StatusPending).
		Delete(&model.CertificateModel{})
	if res.Error != nil {
		return helper.ErrInternal("failed to delete certificate", res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.ErrConflict("certificate was modified concurrently, please retry")
	}
	return helper.JsonDeleted(c, "Certificate deleted", fiber.Map{"id": id})
}

// GET /api/certificates/:id/qr
func (cc *CertificateController) QR(c *fiber.Ctx) error {
	m, _, err := cc.load(c)
	if err != nil {
		return err
	}
	url := configs.AppPublicURL + "/verify/" + m.CertificateControlNumber
	size, _ := strconv.Atoi(c.Query("size", "256"))
	if size < 64 || size > 1024 {
		size = 256
	}
	uri, err := helper.QRDataURI(url, size)
	if err != nil {
		return helper.ErrInternal("failed to render QR code", err)
	}
	return helper.JsonOK(c, "QR code generated", dto.QRResponse{
		ControlNumber: m.CertificateControlNumber,
		VerifyURL:     url,
		DataURI:       uri,
	})
}

// GET /api/public/certificates/verify/:controlNumber
func (cc *CertificateController) Verify(c *fiber.Ctx) error {
	cn := strings.ToUpper(strings.TrimSpace(c.Params("controlNumber")))
	if cn == "" {
		return helper.ErrValidation("control number is required")
	}
	db := cc.DB.WithContext(c.UserContext())
	var m model.CertificateModel
	if err := db.Where("certificate_control_number = ?", cn).Take(&m).Error; err != nil {
		return helper.FromDB(err, "Certificate not found", "")
	}
	var r residentModel.ResidentModel
	if err := db.Where("resident_id = ?", m.CertificateResidentID).Take(&r).Error; err != nil {
		return helper.FromDB(err, "Certificate not found", "")
	}
	return helper.JsonOK(c, "Certificate verified", dto.VerificationResponse{
		ControlNumber: m.CertificateControlNumber,
		ResidentName:  r.FullName(),
		Type:          m.CertificateType,
		Purpose:       m.CertificatePurpose,
		Status:        m.CertificateStatus,
		IssuedDate:    dbtime.FormatDate(m.CertificateIssuedDate),
		Valid:         m.CertificateStatus == model.StatusReleased,
	})
}
