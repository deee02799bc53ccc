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

func TestSupplierDeleteDeactivatesWhenReferenced(t *testing.T) {
	app, db := apitest.New(t)
	_, admin := testutil.Login(t, db, constants.RoleSuperAdmin)
	_, treasurer := testutil.Login(t, db, constants.RoleTreasurer)

	res := testutil.Do(t, app, http.MethodPost, "/api/suppliers", treasurer, map[string]any{"name": "Hardware ni Mang Juan", "email": "nope"})
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = testutil.Do(t, app, http.MethodPost, "/api/suppliers", treasurer, map[string]any{"name": "Hardware ni Mang Juan", "tin": "123-456-789"})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	used := res.Data()["id"].(string)
	assert.Equal(t, true, res.Data()["is_active"])

	res = testutil.Do(t, app, http.MethodPost, "/api/suppliers", treasurer, map[string]any{"name": "Unused Trading"})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	unused := res.Data()["id"].(string)

	res = testutil.Do(t, app, http.MethodPost, "/api/fiscal-years", admin, map[string]any{"year": 2025})
	require.Equal(t, http.StatusCreated, res.Status)
	fy := res.Data()["id"].(string)
	res = testutil.Do(t, app, http.MethodPost, "/api/budget-categories", admin, map[string]any{"name": "Infrastructure"})
	require.Equal(t, http.StatusCreated, res.Status)
	res = testutil.Do(t, app, http.MethodPost, "/api/budgets", admin, map[string]any{
		"category_id": res.Data()["id"], "fiscal_year_id": fy, "allocated_amount": 5000,
	})
	require.Equal(t, http.StatusCreated, res.Status)
	budget := res.Data()["id"].(string)

	res = testutil.Do(t, app, http.MethodPost, "/api/expenses", treasurer, map[string]any{
		"budget_id": budget, "supplier_id": used, "amount": 300, "expense_date": "2025-03-01", "description": "Cement",
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))

	res = testutil.Do(t, app, http.MethodDelete, "/api/suppliers/"+used, treasurer, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "Supplier has expenses and was deactivated", res.Message())

	res = testutil.Do(t, app, http.MethodGet, "/api/suppliers/"+used, treasurer, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, false, res.Data()["is_active"])

	res = testutil.Do(t, app, http.MethodPost, "/api/expenses", treasurer, map[string]any{
		"budget_id": budget, "supplier_id": used, "amount": 100, "expense_date": "2025-03-02", "description": "Sand",
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Body["errors"], "supplier_id")

	require.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodDelete, "/api/suppliers/"+unused, treasurer, nil).Status)
	assert.Equal(t, http.StatusNotFound, testutil.Do(t, app, http.MethodGet, "/api/suppliers/"+unused, treasurer, nil).Status)
}
