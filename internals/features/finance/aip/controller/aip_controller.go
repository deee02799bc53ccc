package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bisig_backend/internals/features/finance/aip/dto"
	"bisig_backend/internals/features/finance/aip/model"
	"bisig_backend/internals/features/finance/aip/service"
	fiscalYearModel "bisig_backend/internals/features/finance/fiscal_years/model"
	permModel "bisig_backend/internals/features/finance/permissions/model"
	permService "bisig_backend/internals/features/finance/permissions/service"
	helper "bisig_backend/internals/helpers"
	"bisig_backend/internals/helpers/dbtime"
)

type AIPController struct {
	DB *gorm.DB
}

func NewAIPController(db *gorm.DB) *AIPController {
	return &AIPController{DB: db}
}

const msgDuplicateAIP = "An investment program already exists for this fiscal year"

var aipSortColumns = map[string]string{
	"created_at": "aip_created_at",
	"title":      "aip_title",
}

func (ac *AIPController) canManage(c *fiber.Ctx) error {
	return permService.Check(ac.DB, c, permModel.CapManageBudgets, nil)
}

func (ac *AIPController) respond(db *gorm.DB, m *model.AIPModel) (dto.AIPResponse, error) {
	totals, err := service.Totals(db, []uuid.UUID{m.AIPID})
	if err != nil {
		return dto.AIPResponse{}, helper.ErrInternal("failed to total projects", err)
	}
	t := totals[m.AIPID]
	return dto.FromAIP(m, t.Amount, t.Count), nil
}

// GET /api/aip?fiscal_year_id=&status=
func (ac *AIPController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	db := ac.DB.WithContext(c.UserContext())
	q := db.Model(&model.AIPModel{})
	if id, err := uuid.Parse(c.Query("fiscal_year_id")); err == nil {
		q = q.Where("aip_fiscal_year_id = ?", id)
	}
	if s := strings.ToUpper(strings.TrimSpace(c.Query("status"))); s != "" {
		q = q.Where("aip_status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.ErrInternal("failed to count programs", err)
	}
	var rows []model.AIPModel
	if err := p.Apply(q, aipSortColumns, "created_at").Find(&rows).Error; err != nil {
		return helper.ErrInternal("failed to list programs", err)
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.AIPID)
	}
	totals, err := service.Totals(db, ids)
	if err != nil {
		return helper.ErrInternal("failed to total projects", err)
	}
	out := make([]dto.AIPResponse, 0, len(rows))
	for i := range rows {
		t := totals[rows[i].AIPID]
		out = append(out, dto.FromAIP(&rows[i], t.Amount, t.Count))
	}
	return helper.JsonList(c, "Investment programs fetched", out, helper.BuildMeta(total, p))
}

// GET /api/aip/:id
func (ac *AIPController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	db := ac.DB.WithContext(c.UserContext())
	var m model.AIPModel
	err = db.Preload("Projects", func(q *gorm.DB) *gorm.DB { return q.Order("project_created_at ASC") }).
		Preload("Projects.Milestones", func(q *gorm.DB) *gorm.DB { return q.Order("milestone_created_at ASC") }).
		Where("aip_id = ?", id).Take(&m).Error
	if err != nil {
		return helper.FromDB(err, "Investment program not found", "")
	}
	out, err := ac.respond(db, &m)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Investment program fetched", out)
}

// POST /api/aip
func (ac *AIPController) Create(c *fiber.Ctx) error {
	if err := ac.canManage(c); err != nil {
		return err
	}
	var req dto.CreateAIPRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	db := ac.DB.WithContext(c.UserContext())
	fyID := uuid.MustParse(req.FiscalYearID)
	var n int64
	if err := db.Model(&fiscalYearModel.FiscalYearModel{}).Where("fiscal_year_id = ?", fyID).Count(&n).Error; err != nil {
		return helper.ErrInternal("failed to check fiscal year", err)
	}
	if n == 0 {
		return helper.ErrValidationFields(map[string][]string{"fiscal_year_id": {"fiscal year does not exist"}})
	}
	m := model.AIPModel{
		AIPFiscalYearID: fyID,
		AIPTitle:        req.Title,
		AIPDescription:  req.Description,
		AIPStatus:       model.AIPStatusDraft,
	}
	if err := db.Create(&m).Error; err != nil {
		return helper.FromDB(err, "", msgDuplicateAIP)
	}
	return helper.JsonCreated(c, "Investment program created", dto.FromAIP(&m, 0, 0))
}

// PUT /api/aip/:id
func (ac *AIPController) Update(c *fiber.Ctx) error {
	if err := ac.canManage(c); err != nil {
		return err
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateAIPRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	db := ac.DB.WithContext(c.UserContext())
	var m model.AIPModel
	if err := db.Where("aip_id = ?", id).Take(&m).Error; err != nil {
		return helper.FromDB(err, "Investment program not found", "")
	}

	cols := map[string]any{}
	if req.Status != nil {
		if cols, err = service.StatusUpdates(m.AIPStatus, *req.Status, dbtime.Now()); err != nil {
			return err
		}
	}
	if req.Title != nil {
		cols["aip_title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		v := strings.TrimSpace(*req.Description)
		if v == "" {
			cols["aip_description"] = nil
		} else {
			cols["aip_description"] = v
		}
	}
	if len(cols) > 0 {
		if err := db.Model(&m).Updates(cols).Error; err != nil {
			return helper.FromDB(err, "Investment program not found", msgDuplicateAIP)
		}
		if err := db.Where("aip_id = ?", id).Take(&m).Error; err != nil {
			return helper.FromDB(err, "Investment program not found", "")
		}
	}
	out, err := ac.respond(db, &m)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Investment program updated", out)
}

// DELETE /api/aip/:id
func (ac *AIPController) Delete(c *fiber.Ctx) error {
	if err := ac.canManage(c); err != nil {
		return err
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.DeleteProgram(ac.DB.WithContext(c.UserContext()), id); err != nil {
		return helper.FromDB(err, "Investment program not found", "")
	}
	return helper.JsonDeleted(c, "Investment program deleted", fiber.Map{"id": id})
}
