package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bisig_backend/internals/configs"
	"bisig_backend/internals/constants"
	authModel "bisig_backend/internals/features/users/auth/model"
	userModel "bisig_backend/internals/features/users/user/model"
	helper "bisig_backend/internals/helpers"
	helperAuth "bisig_backend/internals/helpers/auth"
)

// Authenticate resolves the session of the request and stores the caller in Locals.
// 401 when the token is missing, invalid, expired or blacklisted; 403 when the
// account is not ACTIVE.
func Authenticate(c *fiber.Ctx, db *gorm.DB) error {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.ErrUnauthorized("Unauthorized - No token provided")
	}

	claims, err := helperAuth.ParseSessionToken(raw, configs.JWTSecret)
	if err != nil {
		if errors.Is(err, helperAuth.ErrMissingSecret) {
			return helper.ErrInternal("missing JWT secret", err)
		}
		return helper.ErrUnauthorized("Unauthorized - Invalid or expired token")
	}

	blacklisted, err := isBlacklisted(db.WithContext(c.UserContext()), raw)
	if err != nil {
		return helper.ErrInternal("blacklist lookup failed", err)
	}
	if blacklisted {
		return helper.ErrUnauthorized("Unauthorized - Session has ended")
	}

	if claims.Status != constants.StatusActive {
		return helper.ErrForbidden("Your account is inactive")
	}

	userID, _ := uuid.Parse(claims.ID)
	if err := ensureUserActive(db.WithContext(c.UserContext()), userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrUnauthorized("Unauthorized - User not found")
		}
		var ae *helper.AppError
		if errors.As(err, &ae) {
			return ae
		}
		return helper.ErrInternal("user lookup failed", err)
	}

	c.Locals(helper.LocUserID, userID.String())
	c.Locals(helper.LocUserRole, claims.Role)
	c.Locals(helper.LocUserName, claims.Name)
	c.Locals(helper.LocRawToken, raw)
	if claims.ExpiresAt != nil {
		c.Locals(helper.LocTokenExp, claims.ExpiresAt.Time)
	}
	return nil
}

func isBlacklisted(db *gorm.DB, raw string) (bool, error) {
	var n int64
	err := db.Model(&authModel.TokenBlacklist{}).
		Where("token = ?", helperAuth.HashToken(raw, configs.JWTSecret)).
		Count(&n).Error
	return n > 0, err
}

func ensureUserActive(db *gorm.DB, userID uuid.UUID) error {
	var user userModel.UserModel
	if err := db.Select("user_id", "user_status").
		Where("user_id = ?", userID).
		Take(&user).Error; err != nil {
		return err
	}
	if user.UserStatus != constants.StatusActive {
		zap.L().Info("inactive user rejected", zap.String("user_id", userID.String()))
		return helper.ErrForbidden("Your account is inactive")
	}
	return nil
}
