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

func TestInvestmentProgramLifecycle(t *testing.T) {
	app, db := apitest.New(t)
	_, captain := testutil.Login(t, db, constants.RoleCaptain)
	_, secretary := testutil.Login(t, db, constants.RoleSecretary)

	res := testutil.Do(t, app, http.MethodPost, "/api/fiscal-years", captain, map[string]any{"year": 2025})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	fy := res.Data()["id"].(string)

	res = testutil.Do(t, app, http.MethodPost, "/api/aip", captain, map[string]any{"fiscal_year_id": fy, "title": "AIP 2025"})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "DRAFT", res.Data()["status"])
	aip := res.Data()["id"].(string)

	res = testutil.Do(t, app, http.MethodPost, "/api/aip", captain, map[string]any{"fiscal_year_id": fy, "title": "Again"})
	assert.Equal(t, http.StatusConflict, res.Status)

	for _, p := range []map[string]any{
		{"title": "Drainage canal", "budget_amount": 250000, "sector": "Infrastructure", "start_date": "2025-02-01", "end_date": "2025-06-30"},
		{"title": "Feeding program", "budget_amount": 50000, "status": "ongoing", "progress_percent": 40},
	} {
		res = testutil.Do(t, app, http.MethodPost, "/api/aip/"+aip+"/projects", captain, p)
		require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	}
	project := res.Data()["id"].(string)
	assert.Equal(t, "ONGOING", res.Data()["status"])

	res = testutil.Do(t, app, http.MethodPost, "/api/aip/"+aip+"/projects", captain, map[string]any{
		"title": "Bad dates", "start_date": "2025-06-30", "end_date": "2025-02-01",
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = testutil.Do(t, app, http.MethodGet, "/api/aip/"+aip, secretary, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.EqualValues(t, 300000, res.Data()["total_amount"])
	assert.EqualValues(t, 2, res.Data()["project_count"])

	res = testutil.Do(t, app, http.MethodPost, "/api/projects/"+project+"/milestones", captain, map[string]any{
		"title": "First distribution", "due_date": "2025-03-15",
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	milestone := res.Data()["id"].(string)
	assert.Equal(t, false, res.Data()["completed"])

	res = testutil.Do(t, app, http.MethodPut, "/api/milestones/"+milestone, captain, map[string]any{"completed": true})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, true, res.Data()["completed"])
	assert.NotNil(t, res.Data()["completed_at"])

	res = testutil.Do(t, app, http.MethodPut, "/api/aip/"+aip, captain, map[string]any{"status": "APPROVED"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "cannot change status from DRAFT to APPROVED", res.Message())

	res = testutil.Do(t, app, http.MethodPut, "/api/aip/"+aip, captain, map[string]any{"status": "SUBMITTED"})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	res = testutil.Do(t, app, http.MethodPut, "/api/aip/"+aip, captain, map[string]any{"status": "APPROVED"})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.NotNil(t, res.Data()["approved_at"])

	res = testutil.Do(t, app, http.MethodDelete, "/api/aip/"+aip, captain, nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "approved programs cannot be deleted", res.Message())

	require.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodDelete, "/api/projects/"+project, captain, nil).Status)
	assert.Equal(t, http.StatusNotFound, testutil.Do(t, app, http.MethodPut, "/api/milestones/"+milestone, captain,
		map[string]any{"completed": false}).Status)
}
