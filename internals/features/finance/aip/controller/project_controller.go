package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bisig_backend/internals/features/finance/aip/dto"
	"bisig_backend/internals/features/finance/aip/model"
	"bisig_backend/internals/features/finance/aip/service"
	helper "bisig_backend/internals/helpers"
	"bisig_backend/internals/helpers/dbtime"
)

// POST /api/aip/:id/projects
func (ac *AIPController) CreateProject(c *fiber.Ctx) error {
	if err := ac.canManage(c); err != nil {
		return err
	}
	aipID, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateProjectRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m, errs := req.ToModel(aipID)
	if len(errs) > 0 {
		return helper.ErrValidationFields(errs)
	}

	db := ac.DB.WithContext(c.UserContext())
	var n int64
	if err := db.Model(&model.AIPModel{}).Where("aip_id = ?", aipID).Count(&n).Error; err != nil {
		return helper.ErrInternal("failed to check program", err)
	}
	if n == 0 {
		return helper.ErrNotFound("Investment program not found")
	}
	if err := db.Create(m).Error; err != nil {
		return helper.FromDB(err, "", "Project already exists")
	}
	return helper.JsonCreated(c, "Project created", dto.FromProject(m))
}

func (ac *AIPController) loadProject(db *gorm.DB, c *fiber.Ctx) (*model.ProjectModel, error) {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return nil, err
	}
	var m model.ProjectModel
	err = db.Preload("Milestones", func(q *gorm.DB) *gorm.DB { return q.Order("milestone_created_at ASC") }).
		Where("project_id = ?", id).Take(&m).Error
	if err != nil {
		return nil, helper.FromDB(err, "Project not found", "")
	}
	return &m, nil
}

// GET /api/projects/:id
func (ac *AIPController) GetProject(c *fiber.Ctx) error {
	m, err := ac.loadProject(ac.DB.WithContext(c.UserContext()), c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Project fetched", dto.FromProject(m))
}

// PUT /api/projects/:id
func (ac *AIPController) UpdateProject(c *fiber.Ctx) error {
	if err := ac.canManage(c); err != nil {
		return err
	}
	var req dto.UpdateProjectRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	db := ac.DB.WithContext(c.UserContext())
	m, err := ac.loadProject(db, c)
	if err != nil {
		return err
	}
	if errs := req.Apply(m); len(errs) > 0 {
		return helper.ErrValidationFields(errs)
	}
	if err := db.Omit("Milestones").Save(m).Error; err != nil {
		return helper.FromDB(err, "Project not found", "Project already exists")
	}
	return helper.JsonUpdated(c, "Project updated", dto.FromProject(m))
}

// DELETE /api/projects/:id
func (ac *AIPController) DeleteProject(c *fiber.Ctx) error {
	if err := ac.canManage(c); err != nil {
		return err
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.DeleteProject(ac.DB.WithContext(c.UserContext()), id); err != nil {
		return helper.FromDB(err, "Project not found", "")
	}
	return helper.JsonDeleted(c, "Project deleted", fiber.Map{"id": id})
}

/* =========================
   Milestones
   ========================= */

// POST /api/projects/:id/milestones
func (ac *AIPController) CreateMilestone(c *fiber.Ctx) error {
	if err := ac.canManage(c); err != nil {
		return err
	}
	projectID, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateMilestoneRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	due, err := dbtime.ParseDatePtr(req.DueDate)
	if err != nil {
		return helper.ErrValidationFields(map[string][]string{"due_date": {"must be a date (YYYY-MM-DD)"}})
	}
	db := ac.DB.WithContext(c.UserContext())
	var n int64
	if err := db.Model(&model.ProjectModel{}).Where("project_id = ?", projectID).Count(&n).Error; err != nil {
		return helper.ErrInternal("failed to check project", err)
	}
	if n == 0 {
		return helper.ErrNotFound("Project not found")
	}
	m := model.MilestoneModel{
		MilestoneProjectID: projectID,
		MilestoneTitle:     req.Title,
		MilestoneDueDate:   due,
	}
	if err := db.Create(&m).Error; err != nil {
		return helper.ErrInternal("failed to create milestone", err)
	}
	return helper.JsonCreated(c, "Milestone created", dto.FromMilestone(&m))
}

// PUT /api/milestones/:id
func (ac *AIPController) UpdateMilestone(c *fiber.Ctx) error {
	if err := ac.canManage(c); err != nil {
		return err
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateMilestoneRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	db := ac.DB.WithContext(c.UserContext())
	var m model.MilestoneModel
	if err := db.Where("milestone_id = ?", id).Take(&m).Error; err != nil {
		return helper.FromDB(err, "Milestone not found", "")
	}
	if req.Title != nil {
		m.MilestoneTitle = *req.Title
	}
	if req.DueDate != nil {
		due, err := dbtime.ParseDatePtr(req.DueDate)
		if err != nil {
			return helper.ErrValidationFields(map[string][]string{"due_date": {"must be a date (YYYY-MM-DD)"}})
		}
		m.MilestoneDueDate = due
	}
	if req.Completed != nil && *req.Completed != m.MilestoneCompleted {
		m.MilestoneCompleted = *req.Completed
		if m.MilestoneCompleted {
			now := dbtime.Now()
			m.MilestoneCompletedAt = &now
		} else {
			m.MilestoneCompletedAt = nil
		}
	}
	if err := db.Save(&m).Error; err != nil {
		return helper.ErrInternal("failed to update milestone", err)
	}
	return helper.JsonUpdated(c, "Milestone updated", dto.FromMilestone(&m))
}

// DELETE /api/milestones/:id
func (ac *AIPController) DeleteMilestone(c *fiber.Ctx) error {
	if err := ac.canManage(c); err != nil {
		return err
	}
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	res := ac.DB.WithContext(c.UserContext()).Where("milestone_id = ?", id).Delete(&model.MilestoneModel{})
	if res.Error != nil {
		return helper.ErrInternal("failed to delete milestone", res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound("Milestone not found")
	}
	return helper.JsonDeleted(c, "Milestone deleted", fiber.Map{"id": id})
}
