package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HouseholdModel struct {
	HouseholdID           uuid.UUID  `json:"household_id" gorm:"column:household_id;type:uuid;primaryKey"`
	HouseholdNumber       string     `json:"household_number" gorm:"column:household_number;type:varchar(50);not null;uniqueIndex:uq_households_number"`
	HouseholdHouseNumber  *string    `json:"household_house_number,omitempty" gorm:"column:household_house_number;type:varchar(50)"`
	HouseholdStreet       *string    `json:"household_street,omitempty" gorm:"column:household_street;type:varchar(150)"`
	HouseholdPurok        *string    `json:"household_purok,omitempty" gorm:"column:household_purok;type:varchar(80);index"`
	HouseholdBarangay     string     `json:"household_barangay" gorm:"column:household_barangay;type:varchar(120);not null"`
	HouseholdMunicipality string     `json:"household_municipality" gorm:"column:household_municipality;type:varchar(120);not null"`
	HouseholdLatitude     *float64   `json:"household_latitude,omitempty" gorm:"column:household_latitude"`
	HouseholdLongitude    *float64   `json:"household_longitude,omitempty" gorm:"column:household_longitude"`
	HouseholdHeadID       *uuid.UUID `json:"household_head_id,omitempty" gorm:"column:household_head_id;type:uuid"`

	HouseholdCreatedAt time.Time `json:"household_created_at" gorm:"column:household_created_at;autoCreateTime"`
	HouseholdUpdatedAt time.Time `json:"household_updated_at" gorm:"column:household_updated_at;autoUpdateTime"`
}

func (HouseholdModel) TableName() string { return "households" }

func (h *HouseholdModel) BeforeCreate(*gorm.DB) error {
	if h.HouseholdID == uuid.Nil {
		h.HouseholdID = uuid.New()
	}
	return nil
}
