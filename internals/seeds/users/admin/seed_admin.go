package admin

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"bisig_backend/internals/constants"
	authRepo "bisig_backend/internals/features/users/auth/repository"
	userModel "bisig_backend/internals/features/users/user/model"
	helperAuth "bisig_backend/internals/helpers/auth"
)

// SeedSuperAdmin creates an active SUPER_ADMIN when the users table is empty.
// It reports whether a user was created.
func SeedSuperAdmin(db *gorm.DB, name, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		return false, errors.New("admin seed needs an email and a password of at least 8 characters")
	}

	created := false
	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := authRepo.CountUsers(tx)
		if err != nil || n > 0 {
			return err
		}
		hash, err := helperAuth.HashPassword(password)
		if err != nil {
			return err
		}
		if name == "" {
			name = "Barangay Administrator"
		}
		if err := authRepo.CreateUser(tx, &userModel.UserModel{
			UserName:     name,
			UserEmail:    email,
			UserPassword: hash,
			UserRole:     constants.RoleSuperAdmin,
			UserStatus:   constants.StatusActive,
		}); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if created {
		zap.L().Info("super admin seeded", zap.String("email", email))
	} else {
		zap.L().Info("users exist, admin seed skipped")
	}
	return created, nil
}
