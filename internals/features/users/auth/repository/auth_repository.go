package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "bisig_backend/internals/features/users/auth/model"
	userModel "bisig_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("user_email = ?", email).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByGoogleID(db *gorm.DB, googleID string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("user_google_id = ?", googleID).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("user_id = ?", userID).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CountUsers(db *gorm.DB) (int64, error) {
	var n int64
	err := db.Model(&userModel.UserModel{}).Count(&n).Error
	return n, err
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, hash string) error {
	return db.Model(&userModel.UserModel{}).
		Where("user_id = ?", userID).
		Update("user_password", hash).Error
}

func TouchLastLogin(db *gorm.DB, userID uuid.UUID, at time.Time) error {
	return db.Model(&userModel.UserModel{}).
		Where("user_id = ?", userID).
		UpdateColumn("user_last_login_at", at).Error
}

/* ====================== BLACKLIST ====================== */

// BlacklistToken stores the token hash; repeated logouts are no-ops.
func BlacklistToken(db *gorm.DB, tokenHash string, expiredAt time.Time) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&authModel.TokenBlacklist{Token: tokenHash, ExpiredAt: expiredAt}).Error
}

// PurgeExpiredBlacklist deletes rows whose token can no longer be presented.
func PurgeExpiredBlacklist(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Where("expired_at < ?", now).Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
