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

func TestFinancialPermissionsDefaultsAndUpsert(t *testing.T) {
	app, db := apitest.New(t)
	_, admin := testutil.Login(t, db, constants.RoleSuperAdmin)
	treasurer := testutil.CreateUser(t, db, constants.RoleTreasurer, constants.StatusActive)
	path := "/api/users/" + treasurer.UserID.String() + "/financial-permissions"

	res := testutil.Do(t, app, http.MethodGet, path, admin, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, false, res.Data()["stored"])
	assert.Equal(t, true, res.Data()["can_create_expenses"])
	assert.Equal(t, false, res.Data()["can_approve_expenses"])

	res = testutil.Do(t, app, http.MethodPut, path, admin, map[string]any{
		"can_approve_expenses": true, "max_transaction_amount": 5000,
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, true, res.Data()["can_approve_expenses"])
	assert.EqualValues(t, 5000, res.Data()["max_transaction_amount"])

	res = testutil.Do(t, app, http.MethodPut, path, admin, map[string]any{"clear_max_transaction": true})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Nil(t, res.Data()["max_transaction_amount"])
	assert.Equal(t, true, res.Data()["can_approve_expenses"])
}

func TestFinancialPermissionsRejectAdminTierTargets(t *testing.T) {
	app, db := apitest.New(t)
	_, admin := testutil.Login(t, db, constants.RoleSuperAdmin)
	captain := testutil.CreateUser(t, db, constants.RoleCaptain, constants.StatusActive)
	path := "/api/users/" + captain.UserID.String() + "/financial-permissions"

	res := testutil.Do(t, app, http.MethodGet, path, admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, true, res.Data()["bypass"])

	res = testutil.Do(t, app, http.MethodPut, path, admin, map[string]any{"can_manage_budgets": false})
	assert.Equal(t, http.StatusBadRequest, res.Status)
}
