package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bisig_backend/internals/constants"
	"bisig_backend/internals/testutil"
	"bisig_backend/internals/testutil/apitest"
)

func TestAdminCannotLockThemselvesOut(t *testing.T) {
	app, db := apitest.New(t)
	admin, tok := testutil.Login(t, db, constants.RoleSuperAdmin)
	path := "/api/users/" + admin.UserID.String()

	res := testutil.Do(t, app, http.MethodPatch, path, tok, map[string]any{"role": constants.RoleSecretary})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "cannot change your own role", res.Message())

	res = testutil.Do(t, app, http.MethodPatch, path, tok, map[string]any{"status": constants.StatusInactive})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "cannot change your own status", res.Message())

	// unchanged values are fine
	res = testutil.Do(t, app, http.MethodPatch, path, tok, map[string]any{
		"role": constants.RoleSuperAdmin, "name": "Punong Admin",
	})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "Punong Admin", res.Data()["name"])
}

func TestAdminManagesOtherUsers(t *testing.T) {
	app, db := apitest.New(t)
	_, tok := testutil.Login(t, db, constants.RoleSuperAdmin)

	res := testutil.Do(t, app, http.MethodPost, "/api/users", tok, map[string]any{
		"name": "Ingat Yaman", "email": "treasurer@brgy.ph", "password": "password123", "role": constants.RoleTreasurer,
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	id := res.Data()["id"].(string)

	res = testutil.Do(t, app, http.MethodPost, "/api/users", tok, map[string]any{
		"name": "Someone Else", "email": "treasurer@brgy.ph", "password": "password123", "role": constants.RoleTreasurer,
	})
	assert.Equal(t, http.StatusConflict, res.Status)

	res = testutil.Do(t, app, http.MethodPatch, "/api/users/"+id, tok, map[string]any{"status": constants.StatusInactive})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, constants.StatusInactive, res.Data()["status"])

	res = testutil.Do(t, app, http.MethodGet, "/api/users?role=TREASURER", tok, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.NotEmpty(t, res.List())
}

func TestUserRoutesAreAdminOnly(t *testing.T) {
	app, db := apitest.New(t)
	_, secretary := testutil.Login(t, db, constants.RoleSecretary)
	_, captain := testutil.Login(t, db, constants.RoleCaptain)

	assert.Equal(t, http.StatusForbidden, testutil.Do(t, app, http.MethodGet, "/api/users", secretary, nil).Status)
	assert.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodGet, "/api/users", captain, nil).Status)
	assert.Equal(t, http.StatusForbidden, testutil.Do(t, app, http.MethodPost, "/api/users", captain, map[string]any{
		"name": "Nope", "email": "nope@brgy.ph", "password": "password123", "role": constants.RoleSecretary,
	}).Status)
}
