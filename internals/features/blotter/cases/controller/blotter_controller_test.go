package controller_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bisig_backend/internals/configs"
	"bisig_backend/internals/constants"
	"bisig_backend/internals/features/blotter/cases/model"
	"bisig_backend/internals/helpers/dbtime"
	"bisig_backend/internals/testutil"
	"bisig_backend/internals/testutil/apitest"
)

func newCaseBody() map[string]any {
	return map[string]any{
		"title":             "Noise complaint",
		"incident_type":     "Disturbance",
		"description":       "Loud karaoke past midnight",
		"incident_date":     "2025-04-02",
		"incident_location": "Purok 3",
		"filing_fee_amount": 50,
		"parties": []map[string]any{
			{"role": "complainant", "name": "Maria Clara"},
			{"role": "RESPONDENT", "name": "Crisostomo Ibarra"},
		},
	}
}

func history(t *testing.T, res testutil.Response) []any {
	t.Helper()
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	return res.List()
}

func TestBlotterCreateAndStatusHistory(t *testing.T) {
	app, db := apitest.New(t)
	orig := dbtime.Now
	dbtime.Now = func() time.Time { return time.Date(2025, 4, 3, 9, 0, 0, 0, dbtime.Location()) }
	t.Cleanup(func() { dbtime.Now = orig })
	_, tok := testutil.Login(t, db, constants.RoleSecretary)

	res := testutil.Do(t, app, http.MethodPost, "/api/blotter", tok, newCaseBody())
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "BC-2025-0001", res.Data()["case_number"])
	assert.Equal(t, model.StatusFiled, res.Data()["status"])
	assert.Len(t, res.Data()["parties"], 2)
	id := res.Data()["id"].(string)

	h := history(t, testutil.Do(t, app, http.MethodGet, "/api/blotter/"+id+"/history", tok, nil))
	require.Len(t, h, 1)
	assert.Equal(t, model.StatusFiled, h[0].(map[string]any)["status"])

	res = testutil.Do(t, app, http.MethodPatch, "/api/blotter/"+id+"/status", tok, map[string]any{
		"status": "docketed", "filing_fee_paid": true,
	})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, model.StatusDocketed, res.Data()["status"])
	assert.Equal(t, true, res.Data()["filing_fee_paid"])
	assert.NotNil(t, res.Data()["filing_fee_paid_at"])
	assert.Equal(t, "2025-04-03", res.Data()["docket_date"])

	h = history(t, testutil.Do(t, app, http.MethodGet, "/api/blotter/"+id+"/history", tok, nil))
	require.Len(t, h, 2)
	last := h[1].(map[string]any)
	assert.Equal(t, model.StatusDocketed, last["status"])
	assert.Equal(t, "Status changed from FILED to DOCKETED", last["note"])
	assert.Contains(t, last["changes"], "filing_fee_paid")

	// permissive mode lets any known status follow any other
	res = testutil.Do(t, app, http.MethodPatch, "/api/blotter/"+id+"/status", tok, map[string]any{
		"status": "RESOLVED", "resolution_method": "MEDIATION", "note": "Amicably settled",
	})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.NotNil(t, res.Data()["resolved_at"])
	h = history(t, testutil.Do(t, app, http.MethodGet, "/api/blotter/"+id+"/history", tok, nil))
	assert.Len(t, h, 3)

	res = testutil.Do(t, app, http.MethodPatch, "/api/blotter/"+id+"/status", tok, map[string]any{"status": "CLOSED"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	h = history(t, testutil.Do(t, app, http.MethodGet, "/api/blotter/"+id+"/history", tok, nil))
	assert.Len(t, h, 3)
}

func TestBlotterStrictTransitions(t *testing.T) {
	app, db := apitest.New(t)
	configs.StrictBlotter = true
	t.Cleanup(func() { configs.StrictBlotter = false })
	_, tok := testutil.Login(t, db, constants.RoleCaptain)

	res := testutil.Do(t, app, http.MethodPost, "/api/blotter", tok, newCaseBody())
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	id := res.Data()["id"].(string)

	res = testutil.Do(t, app, http.MethodPatch, "/api/blotter/"+id+"/status", tok, map[string]any{"status": "RESOLVED"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "cannot change status from FILED to RESOLVED", res.Message())

	res = testutil.Do(t, app, http.MethodPatch, "/api/blotter/"+id+"/status", tok, map[string]any{"status": "DOCKETED"})
	assert.Equal(t, http.StatusOK, res.Status)
}

func TestBlotterFilingFeeDockets(t *testing.T) {
	app, db := apitest.New(t)
	_, secretary := testutil.Login(t, db, constants.RoleSecretary)
	_, treasurer := testutil.Login(t, db, constants.RoleTreasurer)

	res := testutil.Do(t, app, http.MethodPost, "/api/blotter", secretary, newCaseBody())
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	id := res.Data()["id"].(string)

	assert.Equal(t, http.StatusForbidden, testutil.Do(t, app, http.MethodGet, "/api/blotter/"+id, treasurer, nil).Status)

	res = testutil.Do(t, app, http.MethodPost, "/api/blotter/"+id+"/filing-fee", treasurer, map[string]any{
		"amount": 100, "paid": false,
	})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, model.StatusFiled, res.Data()["status"])

	res = testutil.Do(t, app, http.MethodPost, "/api/blotter/"+id+"/filing-fee", treasurer, map[string]any{
		"amount": 100, "paid": true, "or_number": "OR-77",
	})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "Filing fee recorded; case docketed", res.Message())
	assert.Equal(t, model.StatusDocketed, res.Data()["status"])
	assert.Equal(t, "OR-77", res.Data()["or_number"])

	h := history(t, testutil.Do(t, app, http.MethodGet, "/api/blotter/"+id+"/history", secretary, nil))
	assert.Len(t, h, 2)
}

func TestBlotterPartiesHearingsAttachments(t *testing.T) {
	app, db := apitest.New(t)
	_, tok := testutil.Login(t, db, constants.RoleSecretary)
	_, admin := testutil.Login(t, db, constants.RoleSuperAdmin)

	res := testutil.Do(t, app, http.MethodPost, "/api/blotter", tok, newCaseBody())
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	id := res.Data()["id"].(string)
	base := "/api/blotter/" + id

	res = testutil.Do(t, app, http.MethodPost, base+"/parties", tok, map[string]any{
		"role": "WITNESS", "name": "Elias", "resident_id": "5f0c1c9e-3c55-4c1f-9a53-1d7c7d2b9a10",
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	res = testutil.Do(t, app, http.MethodPost, base+"/parties", tok, map[string]any{"role": "WITNESS", "name": "Elias"})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	partyID := res.Data()["id"].(string)
	assert.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodDelete, base+"/parties/"+partyID, tok, nil).Status)
	assert.Equal(t, http.StatusNotFound, testutil.Do(t, app, http.MethodDelete, base+"/parties/"+partyID, tok, nil).Status)

	res = testutil.Do(t, app, http.MethodPost, base+"/hearings", tok, map[string]any{
		"type": "mediation", "scheduled_at": "2025-05-01T09:00:00+08:00", "location": "Barangay Hall",
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, model.OutcomeScheduled, res.Data()["outcome"])
	hearingID := res.Data()["id"].(string)
	res = testutil.Do(t, app, http.MethodPut, base+"/hearings/"+hearingID, tok, map[string]any{"outcome": "settled"})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "SETTLED", res.Data()["outcome"])

	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
	res = testutil.Upload(t, app, base+"/attachments", tok, "file", "statement.pdf", pdf, nil)
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "application/pdf", res.Data()["content_type"])
	assert.Equal(t, "statement.pdf", res.Data()["file_name"])

	res = testutil.Do(t, app, http.MethodGet, base+"/attachments", tok, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.List(), 1)

	var stored []string
	require.NoError(t, filepath.Walk(configs.UploadDir, func(p string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			stored = append(stored, p)
		}
		return err
	}))
	assert.Len(t, stored, 1)

	assert.Equal(t, http.StatusForbidden, testutil.Do(t, app, http.MethodDelete, base, tok, nil).Status)
	require.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodDelete, base, admin, nil).Status)
	assert.Equal(t, http.StatusNotFound, testutil.Do(t, app, http.MethodGet, base, tok, nil).Status)
	_, err := os.Stat(stored[0])
	assert.True(t, os.IsNotExist(err))
}
