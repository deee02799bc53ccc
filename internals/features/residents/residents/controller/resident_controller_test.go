package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bisig_backend/internals/constants"
	"bisig_backend/internals/features/residents/residents/model"
	"bisig_backend/internals/testutil"
	"bisig_backend/internals/testutil/apitest"
)

func resident(first, last, birth string, voter bool) map[string]any {
	return map[string]any{
		"first_name": first, "last_name": last, "birth_date": birth,
		"gender": "FEMALE", "civil_status": "SINGLE", "address": "Purok 1, Brgy. Malinis",
		"is_voter": voter,
	}
}

func TestResidentCRUDAndFilters(t *testing.T) {
	app, db := apitest.New(t)
	_, secretary := testutil.Login(t, db, constants.RoleSecretary)
	_, treasurer := testutil.Login(t, db, constants.RoleTreasurer)

	res := testutil.Do(t, app, http.MethodPost, "/api/residents", treasurer, resident("Ana", "Reyes", "1990-05-01", true))
	assert.Equal(t, http.StatusForbidden, res.Status)

	res = testutil.Do(t, app, http.MethodPost, "/api/residents", secretary, resident("Ana", "Reyes", "1990-05-01", true))
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	anaID := res.Data()["id"].(string)
	assert.Equal(t, "Ana Reyes", res.Data()["full_name"])
	assert.Equal(t, "1990-05-01", res.Data()["birth_date"])

	res = testutil.Do(t, app, http.MethodPost, "/api/residents", secretary, resident("Lola", "Basyang", "1940-01-01", false))
	require.Equal(t, http.StatusCreated, res.Status)
	assert.Equal(t, true, res.Data()["is_senior"])

	res = testutil.Do(t, app, http.MethodPost, "/api/residents", secretary, resident("Bad", "Date", "01/02/1990", false))
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = testutil.Do(t, app, http.MethodGet, "/api/residents?is_voter=true", treasurer, nil)
	require.Equal(t, http.StatusOK, res.Status)
	require.Len(t, res.List(), 1)

	res = testutil.Do(t, app, http.MethodGet, "/api/residents?is_senior=true", treasurer, nil)
	require.Len(t, res.List(), 1)
	assert.Equal(t, "Lola Basyang", res.List()[0].(map[string]any)["full_name"])

	res = testutil.Do(t, app, http.MethodGet, "/api/residents?q=rey", treasurer, nil)
	require.Len(t, res.List(), 1)

	res = testutil.Do(t, app, http.MethodPut, "/api/residents/"+anaID, secretary, map[string]any{"occupation": "Teacher"})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "Teacher", res.Data()["occupation"])

	res = testutil.Do(t, app, http.MethodDelete, "/api/residents/"+anaID, secretary, nil)
	require.Equal(t, http.StatusOK, res.Status)
	res = testutil.Do(t, app, http.MethodGet, "/api/residents/"+anaID, secretary, nil)
	assert.Equal(t, http.StatusNotFound, res.Status)

	var n int64
	require.NoError(t, db.Model(&model.ResidentModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestResidentHouseholdLink(t *testing.T) {
	app, db := apitest.New(t)
	_, tok := testutil.Login(t, db, constants.RoleCaptain)

	res := testutil.Do(t, app, http.MethodPost, "/api/households", tok, map[string]any{
		"household_number": "HH-001", "purok": "Purok 2", "barangay": "Malinis", "municipality": "San Isidro",
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	hhID := res.Data()["id"].(string)

	res = testutil.Do(t, app, http.MethodPost, "/api/households", tok, map[string]any{
		"household_number": "HH-001", "barangay": "Malinis", "municipality": "San Isidro",
	})
	assert.Equal(t, http.StatusConflict, res.Status)

	body := resident("Jose", "Rizal", "1985-06-19", true)
	body["household_id"] = hhID
	res = testutil.Do(t, app, http.MethodPost, "/api/residents", tok, body)
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	joseID := res.Data()["id"].(string)

	res = testutil.Do(t, app, http.MethodGet, "/api/residents?purok=Purok%202", tok, nil)
	require.Len(t, res.List(), 1)

	res = testutil.Do(t, app, http.MethodGet, "/api/households/"+hhID, tok, nil)
	require.Equal(t, http.StatusOK, res.Status)
	members := res.Data()["members"].([]any)
	assert.Len(t, members, 1)

	res = testutil.Do(t, app, http.MethodDelete, "/api/households/"+hhID, tok, nil)
	require.Equal(t, http.StatusOK, res.Status)

	res = testutil.Do(t, app, http.MethodGet, "/api/residents/"+joseID, tok, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Nil(t, res.Data()["household_id"])

	body = resident("Ghost", "House", "1985-06-19", false)
	body["household_id"] = hhID
	res = testutil.Do(t, app, http.MethodPost, "/api/residents", tok, body)
	assert.Equal(t, http.StatusBadRequest, res.Status)
}
