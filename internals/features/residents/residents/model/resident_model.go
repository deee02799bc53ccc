package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"

	CivilSingle    = "SINGLE"
	CivilMarried   = "MARRIED"
	CivilWidowed   = "WIDOWED"
	CivilSeparated = "SEPARATED"
	CivilDivorced  = "DIVORCED"
)

// SeniorAge is the age at which a resident counts as a senior citizen.
const SeniorAge = 60

type ResidentModel struct {
	ResidentID            uuid.UUID `json:"resident_id" gorm:"column:resident_id;type:uuid;primaryKey"`
	ResidentFirstName     string    `json:"resident_first_name" gorm:"column:resident_first_name;type:varchar(100);not null"`
	ResidentMiddleName    *string   `json:"resident_middle_name,omitempty" gorm:"column:resident_middle_name;type:varchar(100)"`
	ResidentLastName      string    `json:"resident_last_name" gorm:"column:resident_last_name;type:varchar(100);not null;index"`
	ResidentSuffix        *string   `json:"resident_suffix,omitempty" gorm:"column:resident_suffix;type:varchar(20)"`
	ResidentBirthDate     time.Time `json:"resident_birth_date" gorm:"column:resident_birth_date;not null"`
	ResidentGender        string    `json:"resident_gender" gorm:"column:resident_gender;type:varchar(10);not null"`
	ResidentCivilStatus   string    `json:"resident_civil_status" gorm:"column:resident_civil_status;type:varchar(20);not null"`
	ResidentContactNumber *string   `json:"resident_contact_number,omitempty" gorm:"column:resident_contact_number;type:varchar(30)"`
	ResidentEmail         *string   `json:"resident_email,omitempty" gorm:"column:resident_email;type:varchar(255)"`
	ResidentAddress       string    `json:"resident_address" gorm:"column:resident_address;type:text;not null"`
	ResidentOccupation    *string   `json:"resident_occupation,omitempty" gorm:"column:resident_occupation;type:varchar(100)"`

	ResidentHouseholdID *uuid.UUID `json:"resident_household_id,omitempty" gorm:"column:resident_household_id;type:uuid;index"`

	ResidentIsVoter bool `json:"resident_is_voter" gorm:"column:resident_is_voter;not null"`
	ResidentIsPWD   bool `json:"resident_is_pwd" gorm:"column:resident_is_pwd;not null"`

	ResidentCreatedAt time.Time `json:"resident_created_at" gorm:"column:resident_created_at;autoCreateTime"`
	ResidentUpdatedAt time.Time `json:"resident_updated_at" gorm:"column:resident_updated_at;autoUpdateTime"`
}

func (ResidentModel) TableName() string { return "residents" }

func (r *ResidentModel) BeforeCreate(*gorm.DB) error {
	if r.ResidentID == uuid.Nil {
		r.ResidentID = uuid.New()
	}
	return nil
}

func (r ResidentModel) FullName() string {
	name := r.ResidentFirstName
	if r.ResidentMiddleName != nil && *r.ResidentMiddleName != "" {
		name += " " + *r.ResidentMiddleName
	}
	name += " " + r.ResidentLastName
	if r.ResidentSuffix != nil && *r.ResidentSuffix != "" {
		name += " " + *r.ResidentSuffix
	}
	return name
}

// AgeAt returns completed years at t.
func (r ResidentModel) AgeAt(t time.Time) int {
	b := r.ResidentBirthDate
	age := t.Year() - b.Year()
	if t.Month() < b.Month() || (t.Month() == b.Month() && t.Day() < b.Day()) {
		age--
	}
	return age
}

func (r ResidentModel) IsSeniorAt(t time.Time) bool { return r.AgeAt(t) >= SeniorAge }
