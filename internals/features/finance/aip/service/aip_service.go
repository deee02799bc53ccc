package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bisig_backend/internals/features/finance/aip/model"
	helper "bisig_backend/internals/helpers"
)

type Total struct {
	Amount float64
	Count  int64
}

// Totals derives each program's total from its projects.
func Totals(db *gorm.DB, aipIDs []uuid.UUID) (map[uuid.UUID]Total, error) {
	out := make(map[uuid.UUID]Total, len(aipIDs))
	if len(aipIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		AIPID  uuid.UUID `gorm:"column:aip_id"`
		Amount float64
		Count  int64
	}
	err := db.Model(&model.ProjectModel{}).
		Select("project_aip_id AS aip_id, COALESCE(SUM(project_budget_amount), 0) AS amount, COUNT(*) AS count").
		Where("project_aip_id IN ?", aipIDs).
		Group("project_aip_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.AIPID] = Total{Amount: r.Amount, Count: r.Count}
	}
	return out, nil
}

var aipTransitions = map[string][]string{
	model.AIPStatusDraft:     {model.AIPStatusSubmitted},
	model.AIPStatusSubmitted: {model.AIPStatusDraft, model.AIPStatusApproved},
}

// StatusUpdates validates from -> to and returns the columns to write.
// Approval stamps approved_at.
func StatusUpdates(from, to string, now time.Time) (map[string]any, error) {
	if from == to {
		return map[string]any{}, nil
	}
	for _, s := range aipTransitions[from] {
		if s == to {
			cols := map[string]any{"aip_status": to}
			if to == model.AIPStatusApproved {
				cols["aip_approved_at"] = now
			}
			return cols, nil
		}
	}
	return nil, helper.ErrValidation(fmt.Sprintf("cannot change status from %s to %s", from, to))
}

// DeleteProgram removes the program with its projects and milestones.
func DeleteProgram(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var m model.AIPModel
		if err := tx.Where("aip_id = ?", id).Take(&m).Error; err != nil {
			return err
		}
		if m.AIPStatus == model.AIPStatusApproved {
			return helper.ErrValidation("approved programs cannot be deleted")
		}
		if err := tx.Where("milestone_project_id IN (SELECT project_id FROM projects WHERE project_aip_id = ?)", id).
			Delete(&model.MilestoneModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_aip_id = ?", id).Delete(&model.ProjectModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&m).Error
	})
}

// DeleteProject removes the project and its milestones.
func DeleteProject(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("milestone_project_id = ?", id).Delete(&model.MilestoneModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("project_id = ?", id).Delete(&model.ProjectModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
