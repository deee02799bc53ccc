package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"bisig_backend/internals/features/residents/households/model"
)

type CreateHouseholdRequest struct {
	HouseholdNumber string   `json:"household_number" validate:"required,max=50"`
	HouseNumber     *string  `json:"house_number" validate:"omitempty,max=50"`
	Street          *string  `json:"street" validate:"omitempty,max=150"`
	Purok           *string  `json:"purok" validate:"omitempty,max=80"`
	Barangay        string   `json:"barangay" validate:"required,max=120"`
	Municipality    string   `json:"municipality" validate:"required,max=120"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,longitude"`
	HeadID          *string  `json:"head_id" validate:"omitempty,uuid"`
}

func (r *CreateHouseholdRequest) Normalize() {
	r.HouseholdNumber = strings.TrimSpace(r.HouseholdNumber)
	r.Barangay = strings.TrimSpace(r.Barangay)
	r.Municipality = strings.TrimSpace(r.Municipality)
	for _, p := range []**string{&r.HouseNumber, &r.Street, &r.Purok, &r.HeadID} {
		if *p == nil {
			continue
		}
		v := strings.TrimSpace(**p)
		if v == "" {
			*p = nil
		} else {
			*p = &v
		}
	}
}

func (r *CreateHouseholdRequest) ToModel() *model.HouseholdModel {
	m := &model.HouseholdModel{
		HouseholdNumber:       r.HouseholdNumber,
		HouseholdHouseNumber:  r.HouseNumber,
		HouseholdStreet:       r.Street,
		HouseholdPurok:        r.Purok,
		HouseholdBarangay:     r.Barangay,
		HouseholdMunicipality: r.Municipality,
		HouseholdLatitude:     r.Latitude,
		HouseholdLongitude:    r.Longitude,
	}
	if r.HeadID != nil {
		id := uuid.MustParse(*r.HeadID)
		m.HouseholdHeadID = &id
	}
	return m
}

// UpdateHouseholdRequest is partial; "" clears optional text fields and head_id.
type UpdateHouseholdRequest struct {
	HouseholdNumber *string  `json:"household_number" validate:"omitempty,min=1,max=50"`
	HouseNumber     *string  `json:"house_number" validate:"omitempty,max=50"`
	Street          *string  `json:"street" validate:"omitempty,max=150"`
	Purok           *string  `json:"purok" validate:"omitempty,max=80"`
	Barangay        *string  `json:"barangay" validate:"omitempty,min=1,max=120"`
	Municipality    *string  `json:"municipality" validate:"omitempty,min=1,max=120"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,longitude"`
	HeadID          *string  `json:"head_id" validate:"omitempty,uuid"`
}

func (r *UpdateHouseholdRequest) Updates() map[string]any {
	m := map[string]any{}
	req := func(col string, p *string) {
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
	req("household_number", r.HouseholdNumber)
	req("household_barangay", r.Barangay)
	req("household_municipality", r.Municipality)
	opt("household_house_number", r.HouseNumber)
	opt("household_street", r.Street)
	opt("household_purok", r.Purok)
	if r.Latitude != nil {
		m["household_latitude"] = *r.Latitude
	}
	if r.Longitude != nil {
		m["household_longitude"] = *r.Longitude
	}
	if r.HeadID != nil {
		if v := strings.TrimSpace(*r.HeadID); v != "" {
			m["household_head_id"] = uuid.MustParse(v)
		} else {
			m["household_head_id"] = nil
		}
	}
	return m
}

type HouseholdResponse struct {
	ID              uuid.UUID  `json:"id"`
	HouseholdNumber string     `json:"household_number"`
	HouseNumber     *string    `json:"house_number"`
	Street          *string    `json:"street"`
	Purok           *string    `json:"purok"`
	Barangay        string     `json:"barangay"`
	Municipality    string     `json:"municipality"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	HeadID          *uuid.UUID `json:"head_id"`
	MemberCount     int64      `json:"member_count"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func FromModel(m *model.HouseholdModel, members int64) HouseholdResponse {
	return HouseholdResponse{
		ID:              m.HouseholdID,
		HouseholdNumber: m.HouseholdNumber,
		HouseNumber:     m.HouseholdHouseNumber,
		Street:          m.HouseholdStreet,
		Purok:           m.HouseholdPurok,
		Barangay:        m.HouseholdBarangay,
		Municipality:    m.HouseholdMunicipality,
		Latitude:        m.HouseholdLatitude,
		Longitude:       m.HouseholdLongitude,
		HeadID:          m.HouseholdHeadID,
		MemberCount:     members,
		CreatedAt:       m.HouseholdCreatedAt,
		UpdatedAt:       m.HouseholdUpdatedAt,
	}
}
