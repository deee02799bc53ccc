package dto

import (
	"strings"
	"time"

	userModel "bisig_backend/internals/features/users/user/model"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// UpdateMeRequest is the self-service profile update. Role and status are not
// accepted here; see the admin user endpoints.
type UpdateMeRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email           *string `json:"email" validate:"omitempty,email,max=255"`
	CurrentPassword *string `json:"current_password"`
	NewPassword     *string `json:"new_password" validate:"omitempty,min=8,max=72"`
}

func (r *UpdateMeRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
}

type MeResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	HasGoogle   bool       `json:"has_google"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func FromUserModel(u userModel.UserModel) MeResponse {
	return MeResponse{
		ID:          u.UserID.String(),
		Name:        u.UserName,
		Email:       u.UserEmail,
		Role:        u.UserRole,
		Status:      u.UserStatus,
		HasGoogle:   u.UserGoogleID != nil,
		LastLoginAt: u.UserLastLoginAt,
		CreatedAt:   u.UserCreatedAt,
	}
}

type SessionResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      MeResponse `json:"user"`
}
