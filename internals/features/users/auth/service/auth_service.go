package service

import (
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bisig_backend/internals/configs"
	"bisig_backend/internals/constants"
	"bisig_backend/internals/features/users/auth/dto"
	authRepo "bisig_backend/internals/features/users/auth/repository"
	userModel "bisig_backend/internals/features/users/user/model"
	helper "bisig_backend/internals/helpers"
	helperAuth "bisig_backend/internals/helpers/auth"
)

const msgBadCredentials = "Invalid email or password"

/* ==========================
   REGISTER
========================== */

// Register creates an account. The very first account becomes an active
// SUPER_ADMIN; later ones are INACTIVE secretaries until an admin activates them.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}

	hash, err := helperAuth.HashPassword(req.Password)
	if err != nil {
		return helper.ErrInternal("password hashing failed", err)
	}

	user := userModel.UserModel{
		UserName:     req.Name,
		UserEmail:    req.Email,
		UserPassword: hash,
	}
	err = db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		n, err := authRepo.CountUsers(tx)
		if err != nil {
			return err
		}
		user.UserRole, user.UserStatus = defaultRoleStatus(n)
		return authRepo.CreateUser(tx, &user)
	})
	if err != nil {
		return helper.FromDB(err, "", "Email already registered")
	}

	zap.L().Info("user registered",
		zap.String("user_id", user.UserID.String()),
		zap.String("role", user.UserRole),
		zap.String("status", user.UserStatus))

	if user.UserStatus != constants.StatusActive {
		return helper.JsonCreated(c, "Registration successful. An administrator must activate your account.", dto.FromUserModel(user))
	}
	return issueSession(c, db, user, fiber.StatusCreated, "Registration successful")
}

func defaultRoleStatus(existingUsers int64) (string, string) {
	if existingUsers == 0 {
		return constants.RoleSuperAdmin, constants.StatusActive
	}
	return constants.RoleSecretary, constants.StatusInactive
}

/* ==========================
   LOGIN
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := authRepo.FindUserByEmail(db.WithContext(c.UserContext()), req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrUnauthorized(msgBadCredentials)
		}
		return helper.ErrInternal("user lookup failed", err)
	}
	if err := helperAuth.CheckPasswordHash(user.UserPassword, req.Password); err != nil {
		return helper.ErrUnauthorized(msgBadCredentials)
	}
	if user.UserStatus != constants.StatusActive {
		return helper.ErrForbidden("Your account is inactive. Please contact the administrator.")
	}

	return issueSession(c, db, *user, fiber.StatusOK, "Login successful")
}

/* ==========================
   LOGIN GOOGLE
========================== */

type googleIdentity struct {
	Subject string
	Email   string
	Name    string
}

// verifyGoogleToken checks the signature and audience of a Google ID token.
// Tests replace it.
var verifyGoogleToken = func(idToken string) (*googleIdentity, error) {
	if configs.GoogleClientID == "" {
		return nil, errors.New("google login is not configured")
	}
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{configs.GoogleClientID}); err != nil {
		return nil, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, err
	}
	return &googleIdentity{Subject: claimSet.Sub, Email: claimSet.Email, Name: claimSet.Name}, nil
}

// LoginGoogle signs in by Google subject, links an existing account with the
// same email, or registers a new one under the usual activation rules.
func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}

	ident, err := verifyGoogleToken(req.IDToken)
	if err != nil {
		zap.L().Info("google token rejected", zap.Error(err))
		return helper.ErrUnauthorized("Invalid Google ID token")
	}
	email := strings.ToLower(strings.TrimSpace(ident.Email))
	sub := ident.Subject

	var user userModel.UserModel
	err = db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if u, err := authRepo.FindUserByGoogleID(tx, sub); err == nil {
			user = *u
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if u, err := authRepo.FindUserByEmail(tx, email); err == nil {
			user = *u
			user.UserGoogleID = &sub
			return tx.Model(&user).Update("user_google_id", sub).Error
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		n, err := authRepo.CountUsers(tx)
		if err != nil {
			return err
		}
		name := strings.TrimSpace(ident.Name)
		if name == "" {
			name = email
		}
		hash, err := helperAuth.HashPassword(helperAuth.RandomPassword())
		if err != nil {
			return err
		}
		user = userModel.UserModel{
			UserName:     name,
			UserEmail:    email,
			UserPassword: hash,
			UserGoogleID: &sub,
		}
		user.UserRole, user.UserStatus = defaultRoleStatus(n)
		return authRepo.CreateUser(tx, &user)
	})
	if err != nil {
		return helper.FromDB(err, "", "Account already linked to another Google user")
	}

	if user.UserStatus != constants.StatusActive {
		return helper.ErrForbidden("Your account is inactive. Please contact the administrator.")
	}
	return issueSession(c, db, user, fiber.StatusOK, "Login successful")
}

/* ==========================
   SESSION
========================== */

func issueSession(c *fiber.Ctx, db *gorm.DB, user userModel.UserModel, status int, message string) error {
	token, exp, err := helperAuth.IssueSessionToken(helperAuth.SessionUser{
		ID:     user.UserID,
		Name:   user.UserName,
		Email:  user.UserEmail,
		Role:   user.UserRole,
		Status: user.UserStatus,
	}, configs.JWTSecret, configs.SessionTTL)
	if err != nil {
		return helper.ErrInternal("failed to issue session", err)
	}

	now := time.Now()
	if err := authRepo.TouchLastLogin(db.WithContext(c.UserContext()), user.UserID, now); err != nil {
		zap.L().Warn("last login not recorded", zap.Error(err))
	}
	user.UserLastLoginAt = &now

	setSessionCookie(c, token, exp)
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data": dto.SessionResponse{
			Token:     token,
			ExpiresAt: exp,
			User:      dto.FromUserModel(user),
		},
	})
}

func setSessionCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     helper.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HTTPOnly: true,
		Secure:   configs.GetEnvBool("COOKIE_SECURE", false),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     helper.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   configs.GetEnvBool("COOKIE_SECURE", false),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

/* ==========================
   LOGOUT
========================== */

// Logout blacklists the presented token until it would have expired anyway.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	exp, ok := c.Locals(helper.LocTokenExp).(time.Time)
	if !ok {
		exp = time.Now().Add(configs.SessionTTL)
	}
	if raw != "" {
		hash := helperAuth.HashToken(raw, configs.JWTSecret)
		if err := authRepo.BlacklistToken(db.WithContext(c.UserContext()), hash, exp); err != nil {
			return helper.ErrInternal("failed to end session", err)
		}
	}
	clearSessionCookie(c)
	return helper.JsonOK(c, "Logout successful", nil)
}

/* ==========================
   ME
========================== */

func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(db.WithContext(c.UserContext()), userID)
	if err != nil {
		return helper.FromDB(err, "User not found", "")
	}
	return helper.JsonOK(c, "ok", dto.FromUserModel(*user))
}

// UpdateMe changes the caller's name, email or password. A password change
// needs the current password.
func UpdateMe(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateMeRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}

	tx := db.WithContext(c.UserContext())
	user, err := authRepo.FindUserByID(tx, userID)
	if err != nil {
		return helper.FromDB(err, "User not found", "")
	}

	updates := map[string]any{}
	if req.Name != nil && *req.Name != user.UserName {
		updates["user_name"] = *req.Name
	}
	if req.Email != nil && *req.Email != user.UserEmail {
		updates["user_email"] = *req.Email
	}
	if req.NewPassword != nil && *req.NewPassword != "" {
		if req.CurrentPassword == nil ||
			helperAuth.CheckPasswordHash(user.UserPassword, *req.CurrentPassword) != nil {
			return helper.ErrValidation("Current password is incorrect")
		}
		hash, err := helperAuth.HashPassword(*req.NewPassword)
		if err != nil {
			return helper.ErrInternal("password hashing failed", err)
		}
		updates["user_password"] = hash
	}
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Nothing to update", dto.FromUserModel(*user))
	}

	if err := tx.Model(user).Updates(updates).Error; err != nil {
		return helper.FromDB(err, "User not found", "Email already registered")
	}
	user, err = authRepo.FindUserByID(tx, userID)
	if err != nil {
		return helper.FromDB(err, "User not found", "")
	}
	return helper.JsonUpdated(c, "Profile updated", dto.FromUserModel(*user))
}
