package auth_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bisig_backend/internals/constants"
	authModel "bisig_backend/internals/features/users/auth/model"
	helper "bisig_backend/internals/helpers"
	helperAuth "bisig_backend/internals/helpers/auth"
	"bisig_backend/internals/middlewares/auth"
	"bisig_backend/internals/testutil"
)

func newGuardedApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	policy := auth.Policy{
		"GET /api/things":        auth.Allow("", constants.AllRoles...),
		"POST /api/things":       auth.Allow("Only officials", constants.OfficialRoles...),
		"GET /api/things/:id":    auth.Allow("", constants.AdminOnly...),
		"GET /api/public/status": auth.Public(),
	}
	guard := auth.Guard(db, policy)
	ok := func(c *fiber.Ctx) error {
		return helper.JsonOK(c, "ok", fiber.Map{"role": helper.GetUserRole(c)})
	}

	app := testutil.NewApp()
	api := app.Group("/api")
	things := api.Group("/things")
	things.Get("/", guard, ok)
	things.Post("", guard, ok)
	things.Get("/:id", guard, ok)
	things.Delete("/:id", guard, ok)
	api.Get("/public/status", guard, ok)
	return app, db
}

func TestGuardRequiresSession(t *testing.T) {
	app, _ := newGuardedApp(t)

	res := testutil.Do(t, app, http.MethodGet, "/api/things", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res = testutil.Do(t, app, http.MethodGet, "/api/things", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res = testutil.Do(t, app, http.MethodGet, "/api/public/status", "", nil)
	assert.Equal(t, http.StatusOK, res.Status)
}

func TestGuardChecksRoles(t *testing.T) {
	app, db := newGuardedApp(t)
	_, treasurer := testutil.Login(t, db, constants.RoleTreasurer)
	_, secretary := testutil.Login(t, db, constants.RoleSecretary)
	_, admin := testutil.Login(t, db, constants.RoleSuperAdmin)

	assert.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodGet, "/api/things", treasurer, nil).Status)

	res := testutil.Do(t, app, http.MethodPost, "/api/things", treasurer, map[string]any{})
	assert.Equal(t, http.StatusForbidden, res.Status)
	assert.Equal(t, "Only officials", res.Message())

	assert.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodPost, "/api/things", secretary, map[string]any{}).Status)
	assert.Equal(t, http.StatusForbidden, testutil.Do(t, app, http.MethodGet, "/api/things/1", secretary, nil).Status)
	assert.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodGet, "/api/things/1", admin, nil).Status)
}

func TestGuardFailsClosedForUnlistedRoute(t *testing.T) {
	app, db := newGuardedApp(t)
	_, admin := testutil.Login(t, db, constants.RoleSuperAdmin)

	res := testutil.Do(t, app, http.MethodDelete, "/api/things/1", admin, nil)
	assert.Equal(t, http.StatusForbidden, res.Status)
}

func TestGuardRejectsInactiveAccounts(t *testing.T) {
	app, db := newGuardedApp(t)

	// claim says INACTIVE
	u := testutil.CreateUser(t, db, constants.RoleCaptain, constants.StatusInactive)
	res := testutil.Do(t, app, http.MethodGet, "/api/things", testutil.Token(t, u), nil)
	assert.Equal(t, http.StatusForbidden, res.Status)

	// token issued while active, account deactivated afterwards
	u2, tok := testutil.Login(t, db, constants.RoleCaptain)
	require.NoError(t, db.Model(&u2).Update("user_status", constants.StatusInactive).Error)
	res = testutil.Do(t, app, http.MethodGet, "/api/things", tok, nil)
	assert.Equal(t, http.StatusForbidden, res.Status)
}

func TestGuardRejectsBlacklistedToken(t *testing.T) {
	app, db := newGuardedApp(t)
	_, tok := testutil.Login(t, db, constants.RoleCaptain)

	require.NoError(t, db.Create(&authModel.TokenBlacklist{
		Token:     helperAuth.HashToken(tok, testutil.Secret),
		ExpiredAt: time.Now().Add(time.Hour),
	}).Error)

	res := testutil.Do(t, app, http.MethodGet, "/api/things", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
}

func TestGuardAcceptsSessionCookie(t *testing.T) {
	app, db := newGuardedApp(t)
	_, tok := testutil.Login(t, db, constants.RoleSecretary)

	req, _ := http.NewRequest(http.MethodGet, "/api/things", nil)
	req.AddCookie(&http.Cookie{Name: helper.SessionCookie, Value: tok})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouteKeyNormalises(t *testing.T) {
	assert.Equal(t, "GET /api/residents", auth.RouteKey("HEAD", "/api/residents/"))
	assert.Equal(t, "POST /", auth.RouteKey("post", "/"))
}

func TestPolicyMissing(t *testing.T) {
	app, _ := newGuardedApp(t)
	policy := auth.Policy{
		"GET /api/things":        auth.Public(),
		"GET /api/public/status": auth.Public(),
	}
	assert.Equal(t, []string{
		"DELETE /api/things/:id",
		"GET /api/things/:id",
		"POST /api/things",
	}, policy.Missing(app))
}
