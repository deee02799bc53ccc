package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	uModel "bisig_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateUserRequest is used by admins to create staff accounts.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=SUPER_ADMIN CAPTAIN SECRETARY TREASURER"`
	Status   string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
}

// ToModel expects Password to be hashed already.
func (r *CreateUserRequest) ToModel() *uModel.UserModel {
	status := r.Status
	if status == "" {
		status = "ACTIVE"
	}
	return &uModel.UserModel{
		UserName:     r.Name,
		UserEmail:    r.Email,
		UserPassword: r.Password,
		UserRole:     r.Role,
		UserStatus:   status,
	}
}

// UpdateUserRequest is a partial update; nil means untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	Role     *string `json:"role" validate:"omitempty,oneof=SUPER_ADMIN CAPTAIN SECRETARY TREASURER"`
	Status   *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (r *UpdateUserRequest) Normalize() {
	trim := func(p **string, upper, lower bool) {
		if *p == nil {
			return
		}
		v := strings.TrimSpace(**p)
		if upper {
			v = strings.ToUpper(v)
		}
		if lower {
			v = strings.ToLower(v)
		}
		*p = &v
	}
	trim(&r.Name, false, false)
	trim(&r.Email, false, true)
	trim(&r.Role, true, false)
	trim(&r.Status, true, false)
}

// Updates returns the column map; the password must already be hashed.
func (r *UpdateUserRequest) Updates() map[string]any {
	m := map[string]any{}
	if r.Name != nil {
		m["user_name"] = *r.Name
	}
	if r.Email != nil {
		m["user_email"] = *r.Email
	}
	if r.Password != nil {
		m["user_password"] = *r.Password
	}
	if r.Role != nil {
		m["user_role"] = *r.Role
	}
	if r.Status != nil {
		m["user_status"] = *r.Status
	}
	return m
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	HasGoogle   bool       `json:"has_google"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromModel(u *uModel.UserModel) UserResponse {
	return UserResponse{
		ID:          u.UserID,
		Name:        u.UserName,
		Email:       u.UserEmail,
		Role:        u.UserRole,
		Status:      u.UserStatus,
		HasGoogle:   u.UserGoogleID != nil,
		LastLoginAt: u.UserLastLoginAt,
		CreatedAt:   u.UserCreatedAt,
		UpdatedAt:   u.UserUpdatedAt,
	}
}

func FromModels(list []uModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
