package service

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bisig_backend/internals/constants"
	authModel "bisig_backend/internals/features/users/auth/model"
	authRepo "bisig_backend/internals/features/users/auth/repository"
	userModel "bisig_backend/internals/features/users/user/model"
	"bisig_backend/internals/middlewares/auth"
	"bisig_backend/internals/testutil"
)

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	guard := auth.Guard(db, auth.Policy{
		"POST /api/auth/register": auth.Public(),
		"POST /api/auth/login":    auth.Public(),
		"POST /api/auth/google":   auth.Public(),
		"POST /api/auth/logout":   auth.Allow("", constants.AllRoles...),
		"GET /api/auth/me":        auth.Allow("", constants.AllRoles...),
		"PATCH /api/auth/me":      auth.Allow("", constants.AllRoles...),
	})
	wrap := func(h func(*gorm.DB, *fiber.Ctx) error) fiber.Handler {
		return func(c *fiber.Ctx) error { return h(db, c) }
	}

	app := testutil.NewApp()
	g := app.Group("/api/auth")
	g.Post("/register", guard, wrap(Register))
	g.Post("/login", guard, wrap(Login))
	g.Post("/google", guard, wrap(LoginGoogle))
	g.Post("/logout", guard, wrap(Logout))
	g.Get("/me", guard, wrap(Me))
	g.Patch("/me", guard, wrap(UpdateMe))
	return app, db
}

func sessionToken(t *testing.T, res testutil.Response) string {
	t.Helper()
	tok, _ := res.Data()["token"].(string)
	require.NotEmpty(t, tok, string(res.Raw))
	return tok
}

func TestRegisterFirstUserIsActiveAdmin(t *testing.T) {
	app, db := newAuthApp(t)

	res := testutil.Do(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Juan Dela Cruz", "email": "Juan@Brgy.ph", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	user := res.Data()["user"].(map[string]any)
	assert.Equal(t, constants.RoleSuperAdmin, user["role"])
	assert.Equal(t, "juan@brgy.ph", user["email"])
	assert.Contains(t, res.Header.Get("Set-Cookie"), "session_token=")
	assert.Contains(t, res.Header.Get("Set-Cookie"), "HttpOnly")

	res = testutil.Do(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Maria Clara", "email": "maria@brgy.ph", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, res.Status)
	assert.Equal(t, constants.StatusInactive, res.Data()["status"])
	assert.Equal(t, constants.RoleSecretary, res.Data()["role"])

	var n int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestRegisterValidationAndDuplicate(t *testing.T) {
	app, _ := newAuthApp(t)

	res := testutil.Do(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "X", "email": "not-an-email", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	errs := res.Body["errors"].(map[string]any)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")

	body := map[string]any{"name": "Pedro Penduko", "email": "pedro@brgy.ph", "password": "password123"}
	require.Equal(t, http.StatusCreated, testutil.Do(t, app, http.MethodPost, "/api/auth/register", "", body).Status)
	res = testutil.Do(t, app, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Equal(t, "Email already registered", res.Message())
}

func TestLoginMeLogout(t *testing.T) {
	app, db := newAuthApp(t)
	u := testutil.CreateUser(t, db, constants.RoleTreasurer, constants.StatusActive)

	res := testutil.Do(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": u.UserEmail, "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res = testutil.Do(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": u.UserEmail, "password": "password123",
	})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	tok := sessionToken(t, res)

	var stored userModel.UserModel
	require.NoError(t, db.Take(&stored, "user_id = ?", u.UserID).Error)
	assert.NotNil(t, stored.UserLastLoginAt)

	res = testutil.Do(t, app, http.MethodGet, "/api/auth/me", tok, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, u.UserEmail, res.Data()["email"])
	assert.Equal(t, constants.RoleTreasurer, res.Data()["role"])

	res = testutil.Do(t, app, http.MethodPost, "/api/auth/logout", tok, nil)
	require.Equal(t, http.StatusOK, res.Status)

	var rows int64
	require.NoError(t, db.Model(&authModel.TokenBlacklist{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	res = testutil.Do(t, app, http.MethodGet, "/api/auth/me", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
}

func TestLoginRejectsInactive(t *testing.T) {
	app, db := newAuthApp(t)
	u := testutil.CreateUser(t, db, constants.RoleSecretary, constants.StatusInactive)

	res := testutil.Do(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": u.UserEmail, "password": "password123",
	})
	assert.Equal(t, http.StatusForbidden, res.Status)
}

func TestUpdateMe(t *testing.T) {
	app, db := newAuthApp(t)
	_, tok := testutil.Login(t, db, constants.RoleCaptain)

	res := testutil.Do(t, app, http.MethodPatch, "/api/auth/me", tok, map[string]any{
		"name": "Kapitan Tiago", "new_password": "new-password-1", "current_password": "nope",
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Current password is incorrect", res.Message())

	res = testutil.Do(t, app, http.MethodPatch, "/api/auth/me", tok, map[string]any{
		"name": "Kapitan Tiago", "new_password": "new-password-1", "current_password": "password123",
	})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "Kapitan Tiago", res.Data()["name"])

	// role in the body is ignored
	res = testutil.Do(t, app, http.MethodPatch, "/api/auth/me", tok, map[string]any{"role": constants.RoleSuperAdmin})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, constants.RoleCaptain, res.Data()["role"])
}

func TestLoginGoogleCreatesAndLinks(t *testing.T) {
	app, db := newAuthApp(t)
	existing := testutil.CreateUser(t, db, constants.RoleSecretary, constants.StatusActive)

	orig := verifyGoogleToken
	t.Cleanup(func() { verifyGoogleToken = orig })
	verifyGoogleToken = func(idToken string) (*googleIdentity, error) {
		if idToken != "good" {
			return nil, errors.New("bad token")
		}
		return &googleIdentity{Subject: "g-123", Email: existing.UserEmail, Name: "Whoever"}, nil
	}

	res := testutil.Do(t, app, http.MethodPost, "/api/auth/google", "", map[string]any{"id_token": "bad"})
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res = testutil.Do(t, app, http.MethodPost, "/api/auth/google", "", map[string]any{"id_token": "good"})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, existing.UserID.String(), res.Data()["user"].(map[string]any)["id"])

	linked, err := authRepo.FindUserByGoogleID(db, "g-123")
	require.NoError(t, err)
	assert.Equal(t, existing.UserID, linked.UserID)
}

func TestPurgeExpiredBlacklist(t *testing.T) {
	db := testutil.OpenDB(t)
	require.NoError(t, authRepo.BlacklistToken(db, "old", time.Now().Add(-time.Hour)))
	require.NoError(t, authRepo.BlacklistToken(db, "fresh", time.Now().Add(time.Hour)))
	require.NoError(t, authRepo.BlacklistToken(db, "fresh", time.Now().Add(time.Hour)))

	n, err := authRepo.PurgeExpiredBlacklist(db, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var left []authModel.TokenBlacklist
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "fresh", left[0].Token)
}
