package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bisig_backend/internals/features/residents/residents/model"
)

// Filter holds the resident list filters shared by the list endpoint and the
// resident export.
type Filter struct {
	Search      string
	Gender      string
	CivilStatus string
	Purok       string
	HouseholdID *uuid.UUID
	IsVoter     *bool
	IsPWD       *bool
	IsSenior    *bool
}

func optBool(s string) *bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &b
}

// FilterFromQuery reads ?q, ?gender, ?civil_status, ?purok, ?household_id,
// ?is_voter, ?is_pwd and ?is_senior. Unparseable values are ignored.
func FilterFromQuery(c *fiber.Ctx) Filter {
	f := Filter{
		Search:      strings.ToLower(strings.TrimSpace(c.Query("q"))),
		Gender:      strings.ToUpper(strings.TrimSpace(c.Query("gender"))),
		CivilStatus: strings.ToUpper(strings.TrimSpace(c.Query("civil_status"))),
		Purok:       strings.TrimSpace(c.Query("purok")),
		IsVoter:     optBool(c.Query("is_voter")),
		IsPWD:       optBool(c.Query("is_pwd")),
		IsSenior:    optBool(c.Query("is_senior")),
	}
	if id, err := uuid.Parse(strings.TrimSpace(c.Query("household_id"))); err == nil {
		f.HouseholdID = &id
	}
	return f
}

// Apply adds the filter to a query on residents. Seniority is evaluated at now.
func (f Filter) Apply(q *gorm.DB, now time.Time) *gorm.DB {
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("LOWER(resident_first_name) LIKE ? OR LOWER(resident_last_name) LIKE ? OR LOWER(COALESCE(resident_middle_name, '')) LIKE ?",
			like, like, like)
	}
	if f.Gender != "" {
		q = q.Where("resident_gender = ?", f.Gender)
	}
	if f.CivilStatus != "" {
		q = q.Where("resident_civil_status = ?", f.CivilStatus)
	}
	if f.HouseholdID != nil {
		q = q.Where("resident_household_id = ?", *f.HouseholdID)
	}
	if f.Purok != "" {
		q = q.Where("resident_household_id IN (SELECT household_id FROM households WHERE household_purok = ?)", f.Purok)
	}
	if f.IsVoter != nil {
		q = q.Where("resident_is_voter = ?", *f.IsVoter)
	}
	if f.IsPWD != nil {
		q = q.Where("resident_is_pwd = ?", *f.IsPWD)
	}
	if f.IsSenior != nil {
		cutoff := now.AddDate(-model.SeniorAge, 0, 0)
		if *f.IsSenior {
			q = q.Where("resident_birth_date <= ?", cutoff)
		} else {
			q = q.Where("resident_birth_date > ?", cutoff)
		}
	}
	return q
}
