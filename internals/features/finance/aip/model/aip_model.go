package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AIPStatusDraft     = "DRAFT"
	AIPStatusSubmitted = "SUBMITTED"
	AIPStatusApproved  = "APPROVED"

	ProjectPlanned   = "PLANNED"
	ProjectOngoing   = "ONGOING"
	ProjectCompleted = "COMPLETED"
	ProjectCancelled = "CANCELLED"
)

// AIPModel is the Annual Investment Program of one fiscal year.
type AIPModel struct {
	AIPID           uuid.UUID  `json:"aip_id" gorm:"column:aip_id;type:uuid;primaryKey"`
	AIPFiscalYearID uuid.UUID  `json:"aip_fiscal_year_id" gorm:"column:aip_fiscal_year_id;type:uuid;not null;uniqueIndex:uq_aips_fiscal_year"`
	AIPTitle        string     `json:"aip_title" gorm:"column:aip_title;type:varchar(200);not null"`
	AIPDescription  *string    `json:"aip_description,omitempty" gorm:"column:aip_description;type:text"`
	AIPStatus       string     `json:"aip_status" gorm:"column:aip_status;type:varchar(20);not null"`
	AIPApprovedAt   *time.Time `json:"aip_approved_at,omitempty" gorm:"column:aip_approved_at"`

	AIPCreatedAt time.Time `json:"aip_created_at" gorm:"column:aip_created_at;autoCreateTime"`
	AIPUpdatedAt time.Time `json:"aip_updated_at" gorm:"column:aip_updated_at;autoUpdateTime"`

	Projects []ProjectModel `json:"projects,omitempty" gorm:"foreignKey:ProjectAIPID;references:AIPID"`
}

func (AIPModel) TableName() string { return "annual_investment_programs" }

func (m *AIPModel) BeforeCreate(*gorm.DB) error {
	if m.AIPID == uuid.Nil {
		m.AIPID = uuid.New()
	}
	return nil
}

type ProjectModel struct {
	ProjectID              uuid.UUID      `json:"project_id" gorm:"column:project_id;type:uuid;primaryKey"`
	ProjectAIPID           uuid.UUID      `json:"project_aip_id" gorm:"column:project_aip_id;type:uuid;not null;index"`
	ProjectCode            *string        `json:"project_code,omitempty" gorm:"column:project_code;type:varchar(50)"`
	ProjectTitle           string         `json:"project_title" gorm:"column:project_title;type:varchar(200);not null"`
	ProjectSector          *string        `json:"project_sector,omitempty" gorm:"column:project_sector;type:varchar(80)"`
	ProjectDescription     *string        `json:"project_description,omitempty" gorm:"column:project_description;type:text"`
	ProjectBudgetAmount    float64        `json:"project_budget_amount" gorm:"column:project_budget_amount;type:numeric(14,2);not null"`
	ProjectStartDate       *time.Time     `json:"project_start_date,omitempty" gorm:"column:project_start_date"`
	ProjectEndDate         *time.Time     `json:"project_end_date,omitempty" gorm:"column:project_end_date"`
	ProjectStatus          string         `json:"project_status" gorm:"column:project_status;type:varchar(20);not null"`
	ProjectProgressPercent int            `json:"project_progress_percent" gorm:"column:project_progress_percent;not null"`
	ProjectMetadata        datatypes.JSON `json:"project_metadata,omitempty" gorm:"column:project_metadata"`

	ProjectCreatedAt time.Time `json:"project_created_at" gorm:"column:project_created_at;autoCreateTime"`
	ProjectUpdatedAt time.Time `json:"project_updated_at" gorm:"column:project_updated_at;autoUpdateTime"`

	Milestones []MilestoneModel `json:"milestones,omitempty" gorm:"foreignKey:MilestoneProjectID;references:ProjectID"`
}

func (ProjectModel) TableName() string { return "projects" }

func (m *ProjectModel) BeforeCreate(*gorm.DB) error {
	if m.ProjectID == uuid.Nil {
		m.ProjectID = uuid.New()
	}
	return nil
}

type MilestoneModel struct {
	MilestoneID          uuid.UUID  `json:"milestone_id" gorm:"column:milestone_id;type:uuid;primaryKey"`
	MilestoneProjectID   uuid.UUID  `json:"milestone_project_id" gorm:"column:milestone_project_id;type:uuid;not null;index"`
	MilestoneTitle       string     `json:"milestone_title" gorm:"column:milestone_title;type:varchar(200);not null"`
	MilestoneDueDate     *time.Time `json:"milestone_due_date,omitempty" gorm:"column:milestone_due_date"`
	MilestoneCompleted   bool       `json:"milestone_completed" gorm:"column:milestone_completed;not null"`
	MilestoneCompletedAt *time.Time `json:"milestone_completed_at,omitempty" gorm:"column:milestone_completed_at"`

	MilestoneCreatedAt time.Time `json:"milestone_created_at" gorm:"column:milestone_created_at;autoCreateTime"`
	MilestoneUpdatedAt time.Time `json:"milestone_updated_at" gorm:"column:milestone_updated_at;autoUpdateTime"`
}

func (MilestoneModel) TableName() string { return "milestones" }

func (m *MilestoneModel) BeforeCreate(*gorm.DB) error {
	if m.MilestoneID == uuid.Nil {
		m.MilestoneID = uuid.New()
	}
	return nil
}
