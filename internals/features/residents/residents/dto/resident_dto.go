package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"bisig_backend/internals/features/residents/residents/model"
	"bisig_backend/internals/helpers/dbtime"
)

type CreateResidentRequest struct {
	FirstName     string  `json:"first_name" validate:"required,max=100"`
	MiddleName    *string `json:"middle_name" validate:"omitempty,max=100"`
	LastName      string  `json:"last_name" validate:"required,max=100"`
	Suffix        *string `json:"suffix" validate:"omitempty,max=20"`
	BirthDate     string  `json:"birth_date" validate:"required"`
	Gender        string  `json:"gender" validate:"required,oneof=MALE FEMALE"`
	CivilStatus   string  `json:"civil_status" validate:"required,oneof=SINGLE MARRIED WIDOWED SEPARATED DIVORCED"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=30"`
	Email         *string `json:"email" validate:"omitempty,email,max=255"`
	Address       string  `json:"address" validate:"required"`
	Occupation    *string `json:"occupation" validate:"omitempty,max=100"`
	HouseholdID   *string `json:"household_id" validate:"omitempty,uuid"`
	IsVoter       bool    `json:"is_voter"`
	IsPWD         bool    `json:"is_pwd"`
}

func (r *CreateResidentRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Address = strings.TrimSpace(r.Address)
	r.Gender = strings.ToUpper(strings.TrimSpace(r.Gender))
	r.CivilStatus = strings.ToUpper(strings.TrimSpace(r.CivilStatus))
	r.MiddleName = trimPtr(r.MiddleName)
	r.Suffix = trimPtr(r.Suffix)
	r.ContactNumber = trimPtr(r.ContactNumber)
	r.Email = trimPtr(r.Email)
	r.Occupation = trimPtr(r.Occupation)
	r.HouseholdID = trimPtr(r.HouseholdID)
}

// trimPtr trims and turns "" into nil.
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

func (r *CreateResidentRequest) ToModel() (*model.ResidentModel, error) {
	birth, err := dbtime.ParseDate(r.BirthDate)
	if err != nil {
		return nil, err
	}
	m := &model.ResidentModel{
		ResidentFirstName:     r.FirstName,
		ResidentMiddleName:    r.MiddleName,
		ResidentLastName:      r.LastName,
		ResidentSuffix:        r.Suffix,
		ResidentBirthDate:     birth,
		ResidentGender:        r.Gender,
		ResidentCivilStatus:   r.CivilStatus,
		ResidentContactNumber: r.ContactNumber,
		ResidentEmail:         r.Email,
		ResidentAddress:       r.Address,
		ResidentOccupation:    r.Occupation,
		ResidentIsVoter:       r.IsVoter,
		ResidentIsPWD:         r.IsPWD,
	}
	if r.HouseholdID != nil {
		id := uuid.MustParse(*r.HouseholdID)
		m.ResidentHouseholdID = &id
	}
	return m, nil
}

// UpdateResidentRequest is partial. household_id "" detaches the resident.
type UpdateResidentRequest struct {
	FirstName     *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	MiddleName    *string `json:"middle_name" validate:"omitempty,max=100"`
	LastName      *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Suffix        *string `json:"suffix" validate:"omitempty,max=20"`
	BirthDate     *string `json:"birth_date"`
	Gender        *string `json:"gender" validate:"omitempty,oneof=MALE FEMALE"`
	CivilStatus   *string `json:"civil_status" validate:"omitempty,oneof=SINGLE MARRIED WIDOWED SEPARATED DIVORCED"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=30"`
	Email         *string `json:"email" validate:"omitempty,email,max=255"`
	Address       *string `json:"address" validate:"omitempty,min=1"`
	Occupation    *string `json:"occupation" validate:"omitempty,max=100"`
	HouseholdID   *string `json:"household_id" validate:"omitempty,uuid"`
	IsVoter       *bool   `json:"is_voter"`
	IsPWD         *bool   `json:"is_pwd"`
}

func (r *UpdateResidentRequest) Normalize() {
	up := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.ToUpper(strings.TrimSpace(*p))
		return &v
	}
	r.Gender = up(r.Gender)
	r.CivilStatus = up(r.CivilStatus)
	if r.HouseholdID != nil {
		v := strings.TrimSpace(*r.HouseholdID)
		r.HouseholdID = &v
	}
}

// Updates builds the column map for the provided fields.
func (r *UpdateResidentRequest) Updates() (map[string]any, error) {
	m := map[string]any{}
	str := func(col string, p *string) {
		if p != nil {
			m[col] = strings.TrimSpace(*p)
		}
	}
	opt := func(col string, p *string) {
		if p == nil {
			return
		}
		if v := strings.TrimSpace(*p); v != "" {
			m[col] = v
		} else {
			m[col] = nil
		}
	}
	str("resident_first_name", r.FirstName)
	str("resident_last_name", r.LastName)
	str("resident_address", r.Address)
	str("resident_gender", r.Gender)
	str("resident_civil_status", r.CivilStatus)
	opt("resident_middle_name", r.MiddleName)
	opt("resident_suffix", r.Suffix)
	opt("resident_contact_number", r.ContactNumber)
	opt("resident_email", r.Email)
	opt("resident_occupation", r.Occupation)
	if r.BirthDate != nil {
		t, err := dbtime.ParseDate(*r.BirthDate)
		if err != nil {
			return nil, err
		}
		m["resident_birth_date"] = t
	}
	if r.HouseholdID != nil {
		if *r.HouseholdID == "" {
			m["resident_household_id"] = nil
		} else {
			m["resident_household_id"] = uuid.MustParse(*r.HouseholdID)
		}
	}
	if r.IsVoter != nil {
		m["resident_is_voter"] = *r.IsVoter
	}
	if r.IsPWD != nil {
		m["resident_is_pwd"] = *r.IsPWD
	}
	return m, nil
}

type ResidentResponse struct {
	ID            uuid.UUID  `json:"id"`
	FirstName     string     `json:"first_name"`
	MiddleName    *string    `json:"middle_name"`
	LastName      string     `json:"last_name"`
	Suffix        *string    `json:"suffix"`
	FullName      string     `json:"full_name"`
	BirthDate     string     `json:"birth_date"`
	Age           int        `json:"age"`
	Gender        string     `json:"gender"`
	CivilStatus   string     `json:"civil_status"`
	ContactNumber *string    `json:"contact_number"`
	Email         *string    `json:"email"`
	Address       string     `json:"address"`
	Occupation    *string    `json:"occupation"`
	HouseholdID   *uuid.UUID `json:"household_id"`
	IsVoter       bool       `json:"is_voter"`
	IsPWD         bool       `json:"is_pwd"`
	IsSenior      bool       `json:"is_senior"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// FromModel derives age and senior status at now.
func FromModel(m *model.ResidentModel, now time.Time) ResidentResponse {
	return ResidentResponse{
		ID:            m.ResidentID,
		FirstName:     m.ResidentFirstName,
		MiddleName:    m.ResidentMiddleName,
		LastName:      m.ResidentLastName,
		Suffix:        m.ResidentSuffix,
		FullName:      m.FullName(),
		BirthDate:     *dbtime.FormatDate(&m.ResidentBirthDate),
		Age:           m.AgeAt(now),
		Gender:        m.ResidentGender,
		CivilStatus:   m.ResidentCivilStatus,
		ContactNumber: m.ResidentContactNumber,
		Email:         m.ResidentEmail,
		Address:       m.ResidentAddress,
		Occupation:    m.ResidentOccupation,
		HouseholdID:   m.ResidentHouseholdID,
		IsVoter:       m.ResidentIsVoter,
		IsPWD:         m.ResidentIsPWD,
		IsSenior:      m.IsSeniorAt(now),
		CreatedAt:     m.ResidentCreatedAt,
		UpdatedAt:     m.ResidentUpdatedAt,
	}
}

func FromModels(list []model.ResidentModel, now time.Time) []ResidentResponse {
	out := make([]ResidentResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i], now))
	}
	return out
}
