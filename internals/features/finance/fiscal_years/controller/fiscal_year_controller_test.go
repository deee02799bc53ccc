package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bisig_backend/internals/constants"
	"bisig_backend/internals/features/finance/fiscal_years/model"
	"bisig_backend/internals/testutil"
	"bisig_backend/internals/testutil/apitest"
)

func TestFiscalYearDefaultsAndSingleActive(t *testing.T) {
	app, db := apitest.New(t)
	_, captain := testutil.Login(t, db, constants.RoleCaptain)

	res := testutil.Do(t, app, http.MethodPost, "/api/fiscal-years", captain, map[string]any{"year": 2024, "is_active": true})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	fy2024 := res.Data()["id"].(string)
	assert.Equal(t, "FY 2024", res.Data()["name"])
	assert.Equal(t, "2024-01-01", res.Data()["start_date"])
	assert.Equal(t, "2024-12-31", res.Data()["end_date"])

	res = testutil.Do(t, app, http.MethodPost, "/api/fiscal-years", captain, map[string]any{"year": 2024})
	assert.Equal(t, http.StatusConflict, res.Status)

	res = testutil.Do(t, app, http.MethodPost, "/api/fiscal-years", captain, map[string]any{
		"year": 2025, "start_date": "2025-12-31", "end_date": "2025-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = testutil.Do(t, app, http.MethodPost, "/api/fiscal-years", captain, map[string]any{"year": 2025, "is_active": true})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	fy2025 := res.Data()["id"].(string)

	countActive := func() int64 {
		var n int64
		require.NoError(t, db.Model(&model.FiscalYearModel{}).Where("fiscal_year_is_active = ?", true).Count(&n).Error)
		return n
	}
	assert.EqualValues(t, 1, countActive())

	res = testutil.Do(t, app, http.MethodGet, "/api/fiscal-years/active", captain, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, fy2025, res.Data()["id"])

	res = testutil.Do(t, app, http.MethodPatch, "/api/fiscal-years/"+fy2024+"/activate", captain, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, true, res.Data()["is_active"])
	assert.EqualValues(t, 1, countActive())

	res = testutil.Do(t, app, http.MethodGet, "/api/fiscal-years/active", captain, nil)
	assert.Equal(t, fy2024, res.Data()["id"])
}

func TestFiscalYearPermissions(t *testing.T) {
	app, db := apitest.New(t)
	_, treasurer := testutil.Login(t, db, constants.RoleTreasurer)
	_, secretary := testutil.Login(t, db, constants.RoleSecretary)

	res := testutil.Do(t, app, http.MethodGet, "/api/fiscal-years/active", secretary, nil)
	assert.Equal(t, http.StatusNotFound, res.Status)

	assert.Equal(t, http.StatusForbidden,
		testutil.Do(t, app, http.MethodPost, "/api/fiscal-years", secretary, map[string]any{"year": 2025}).Status)
	// treasurers need can_manage_budgets, which is off by default
	assert.Equal(t, http.StatusForbidden,
		testutil.Do(t, app, http.MethodPost, "/api/fiscal-years", treasurer, map[string]any{"year": 2025}).Status)
}

func TestFiscalYearDeleteBlockedByBudgets(t *testing.T) {
	app, db := apitest.New(t)
	_, admin := testutil.Login(t, db, constants.RoleSuperAdmin)

	res := testutil.Do(t, app, http.MethodPost, "/api/fiscal-years", admin, map[string]any{"year": 2025})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	fy := res.Data()["id"].(string)

	res = testutil.Do(t, app, http.MethodPost, "/api/budget-categories", admin, map[string]any{"name": "Infrastructure"})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	cat := res.Data()["id"].(string)

	res = testutil.Do(t, app, http.MethodPost, "/api/budgets", admin, map[string]any{
		"category_id": cat, "fiscal_year_id": fy, "allocated_amount": 50000,
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	budget := res.Data()["id"].(string)

	res = testutil.Do(t, app, http.MethodDelete, "/api/fiscal-years/"+fy, admin, nil)
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Equal(t, "Fiscal year has budgets and cannot be deleted", res.Message())

	require.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodDelete, "/api/budgets/"+budget, admin, nil).Status)
	assert.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodDelete, "/api/fiscal-years/"+fy, admin, nil).Status)
	assert.Equal(t, http.StatusNotFound, testutil.Do(t, app, http.MethodDelete, "/api/fiscal-years/"+fy, admin, nil).Status)
}
