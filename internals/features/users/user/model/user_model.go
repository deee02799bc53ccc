package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID          uuid.UUID  `json:"user_id" gorm:"column:user_id;type:uuid;primaryKey"`
	UserName        string     `json:"user_name" gorm:"column:user_name;type:varchar(100);not null"`
	UserEmail       string     `json:"user_email" gorm:"column:user_email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	UserPassword    string     `json:"-" gorm:"column:user_password;type:text;not null"`
	UserRole        string     `json:"user_role" gorm:"column:user_role;type:varchar(20);not null;index"`
	UserStatus      string     `json:"user_status" gorm:"column:user_status;type:varchar(20);not null"`
	UserGoogleID    *string    `json:"user_google_id,omitempty" gorm:"column:user_google_id;type:varchar(255);uniqueIndex:uq_users_google_id"`
	UserLastLoginAt *time.Time `json:"user_last_login_at,omitempty" gorm:"column:user_last_login_at"`

	UserCreatedAt time.Time `json:"user_created_at" gorm:"column:user_created_at;autoCreateTime"`
	UserUpdatedAt time.Time `json:"user_updated_at" gorm:"column:user_updated_at;autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(*gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
