package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bisig_backend/internals/constants"
	"bisig_backend/internals/features/finance/expenses/model"
	"bisig_backend/internals/testutil"
	"bisig_backend/internals/testutil/apitest"
)

func TestExpenseApprovalWorkflow(t *testing.T) {
	app, db := apitest.New(t)
	_, captain := testutil.Login(t, db, constants.RoleCaptain)
	treasurerUser, treasurer := testutil.Login(t, db, constants.RoleTreasurer)
	_, secretary := testutil.Login(t, db, constants.RoleSecretary)

	res := testutil.Do(t, app, http.MethodPost, "/api/fiscal-years", captain, map[string]any{"year": 2025, "is_active": true})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	fy := res.Data()["id"].(string)
	res = testutil.Do(t, app, http.MethodPost, "/api/budget-categories", captain, map[string]any{"name": "Health"})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	res = testutil.Do(t, app, http.MethodPost, "/api/budgets", captain, map[string]any{
		"category_id": res.Data()["id"], "fiscal_year_id": fy, "allocated_amount": 10000,
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	budget := res.Data()["id"].(string)

	expense := func(amount float64) map[string]any {
		return map[string]any{
			"budget_id": budget, "amount": amount, "expense_date": "2025-02-14", "description": "Vitamins for health center",
		}
	}

	assert.Equal(t, http.StatusForbidden, testutil.Do(t, app, http.MethodPost, "/api/expenses", secretary, expense(10)).Status)

	// treasurers may record expenses by default
	res = testutil.Do(t, app, http.MethodPost, "/api/expenses", treasurer, expense(500))
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, model.StatusPending, res.Data()["status"])
	assert.Equal(t, treasurerUser.UserID.String(), res.Data()["created_by"])
	first := res.Data()["id"].(string)

	res = testutil.Do(t, app, http.MethodPost, "/api/expenses/"+first+"/approve", treasurer, nil)
	assert.Equal(t, http.StatusForbidden, res.Status)

	res = testutil.Do(t, app, http.MethodPut, "/api/users/"+treasurerUser.UserID.String()+"/financial-permissions", captain, map[string]any{
		"can_approve_expenses": true, "max_transaction_amount": 1000,
	})
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, res.Status, string(res.Raw))

	res = testutil.Do(t, app, http.MethodPost, "/api/expenses", treasurer, expense(2000))
	assert.Equal(t, http.StatusForbidden, res.Status)
	assert.Contains(t, res.Message(), "transaction limit")

	res = testutil.Do(t, app, http.MethodPut, "/api/expenses/"+first, treasurer, map[string]any{"amount": 1500})
	assert.Equal(t, http.StatusForbidden, res.Status)

	res = testutil.Do(t, app, http.MethodPost, "/api/expenses/"+first+"/approve", treasurer, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, model.StatusApproved, res.Data()["status"])
	assert.Equal(t, treasurerUser.UserID.String(), res.Data()["approved_by"])
	assert.NotNil(t, res.Data()["approved_at"])

	res = testutil.Do(t, app, http.MethodPost, "/api/expenses/"+first+"/approve", captain, nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "expense is already APPROVED", res.Message())

	res = testutil.Do(t, app, http.MethodPut, "/api/expenses/"+first, captain, map[string]any{"description": "edited"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "only pending expenses can be modified", res.Message())
	assert.Equal(t, http.StatusBadRequest, testutil.Do(t, app, http.MethodDelete, "/api/expenses/"+first, captain, nil).Status)

	res = testutil.Do(t, app, http.MethodPost, "/api/expenses", captain, expense(20000))
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	second := res.Data()["id"].(string)
	res = testutil.Do(t, app, http.MethodPost, "/api/expenses/"+second+"/reject", captain, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, model.StatusRejected, res.Data()["status"])

	res = testutil.Do(t, app, http.MethodGet, "/api/budgets/"+budget, captain, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.EqualValues(t, 500, res.Data()["spent_amount"])
	assert.EqualValues(t, 9500, res.Data()["remaining_amount"])

	res = testutil.Do(t, app, http.MethodGet, "/api/expenses?status=APPROVED&fiscal_year_id="+fy, treasurer, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.List(), 1)
}

func TestExpenseReferencesAndEdits(t *testing.T) {
	app, db := apitest.New(t)
	_, admin := testutil.Login(t, db, constants.RoleSuperAdmin)

	res := testutil.Do(t, app, http.MethodPost, "/api/expenses", admin, map[string]any{
		"budget_id": "5f0c1c9e-3c55-4c1f-9a53-1d7c7d2b9a10", "amount": 10, "expense_date": "2025-01-01", "description": "x",
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Body["errors"], "budget_id")

	res = testutil.Do(t, app, http.MethodPost, "/api/fiscal-years", admin, map[string]any{"year": 2025})
	require.Equal(t, http.StatusCreated, res.Status)
	fy := res.Data()["id"].(string)
	res = testutil.Do(t, app, http.MethodPost, "/api/budget-categories", admin, map[string]any{"name": "Office Supplies"})
	require.Equal(t, http.StatusCreated, res.Status)
	res = testutil.Do(t, app, http.MethodPost, "/api/budgets", admin, map[string]any{
		"category_id": res.Data()["id"], "fiscal_year_id": fy, "allocated_amount": 1000,
	})
	require.Equal(t, http.StatusCreated, res.Status)
	budget := res.Data()["id"].(string)

	res = testutil.Do(t, app, http.MethodPost, "/api/expenses", admin, map[string]any{
		"budget_id": budget, "amount": 10, "expense_date": "14/02/2025", "description": "Bond paper",
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = testutil.Do(t, app, http.MethodPost, "/api/expenses", admin, map[string]any{
		"budget_id": budget, "amount": 10, "expense_date": "2025-02-14", "description": "Bond paper",
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	id := res.Data()["id"].(string)

	res = testutil.Do(t, app, http.MethodPut, "/api/expenses/"+id, admin, map[string]any{"amount": 25, "reference_number": "SI-001"})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.EqualValues(t, 25, res.Data()["amount"])
	assert.Equal(t, "SI-001", res.Data()["reference_number"])

	require.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodDelete, "/api/expenses/"+id, admin, nil).Status)
	assert.Equal(t, http.StatusNotFound, testutil.Do(t, app, http.MethodGet, "/api/expenses/"+id, admin, nil).Status)
}
