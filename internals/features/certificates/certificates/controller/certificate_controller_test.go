package controller_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bisig_backend/internals/constants"
	"bisig_backend/internals/features/certificates/certificates/model"
	residentModel "bisig_backend/internals/features/residents/residents/model"
	"bisig_backend/internals/helpers/dbtime"
	"bisig_backend/internals/testutil"
	"bisig_backend/internals/testutil/apitest"
)

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := dbtime.Now
	dbtime.Now = func() time.Time { return at }
	t.Cleanup(func() { dbtime.Now = orig })
}

func newResident(t *testing.T, db *gorm.DB) residentModel.ResidentModel {
	t.Helper()
	middle := "Protacio"
	r := residentModel.ResidentModel{
		ResidentFirstName:   "Jose",
		ResidentMiddleName:  &middle,
		ResidentLastName:    "Rizal",
		ResidentBirthDate:   time.Date(1990, 6, 19, 0, 0, 0, 0, time.UTC),
		ResidentGender:      "MALE",
		ResidentCivilStatus: "SINGLE",
		ResidentAddress:     "Calamba",
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func TestControlNumberContinuesExistingYear(t *testing.T) {
	app, db := apitest.New(t)
	freezeClock(t, time.Date(2025, 7, 1, 9, 0, 0, 0, dbtime.Location()))
	_, tok := testutil.Login(t, db, constants.RoleSecretary)
	r := newResident(t, db)

	for _, cn := range []string{"BRGY-2025-0001", "BRGY-2025-0002", "BRGY-2025-0003", "BRGY-2024-0009"} {
		require.NoError(t, db.Create(&model.CertificateModel{
			CertificateType: model.TypeResidency, CertificatePurpose: "old", CertificateResidentID: r.ResidentID,
			CertificateStatus: model.StatusReleased, CertificateControlNumber: cn,
		}).Error)
	}

	body := map[string]any{"type": "barangay_clearance", "purpose": "Employment", "resident_id": r.ResidentID.String()}
	res := testutil.Do(t, app, http.MethodPost, "/api/certificates", tok, body)
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "BRGY-2025-0004", res.Data()["control_number"])
	assert.Equal(t, model.StatusPending, res.Data()["status"])
	assert.Equal(t, "Jose Protacio Rizal", res.Data()["resident_name"])

	res = testutil.Do(t, app, http.MethodPost, "/api/certificates", tok, body)
	require.Equal(t, http.StatusCreated, res.Status)
	assert.Equal(t, "BRGY-2025-0005", res.Data()["control_number"])
}

func TestCertificateValidation(t *testing.T) {
	app, db := apitest.New(t)
	_, tok := testutil.Login(t, db, constants.RoleCaptain)
	r := newResident(t, db)

	res := testutil.Do(t, app, http.MethodPost, "/api/certificates", tok, map[string]any{
		"type": "CEDULA", "purpose": "x", "resident_id": r.ResidentID.String(),
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = testutil.Do(t, app, http.MethodPost, "/api/certificates", tok, map[string]any{
		"type": "RESIDENCY", "purpose": "x", "resident_id": "5f0c1c9e-3c55-4c1f-9a53-1d7c7d2b9a10",
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Body["errors"], "resident_id")
}

func TestCertificateLifecycleAndVerify(t *testing.T) {
	app, db := apitest.New(t)
	freezeClock(t, time.Date(2025, 3, 10, 10, 0, 0, 0, dbtime.Location()))
	_, secretary := testutil.Login(t, db, constants.RoleSecretary)
	_, treasurer := testutil.Login(t, db, constants.RoleTreasurer)
	r := newResident(t, db)

	res := testutil.Do(t, app, http.MethodPost, "/api/certificates", treasurer, map[string]any{
		"type": "INDIGENCY", "purpose": "Medical assistance", "resident_id": r.ResidentID.String(),
	})
	assert.Equal(t, http.StatusForbidden, res.Status)

	res = testutil.Do(t, app, http.MethodPost, "/api/certificates", secretary, map[string]any{
		"type": "INDIGENCY", "purpose": "Medical assistance", "resident_id": r.ResidentID.String(),
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	id := res.Data()["id"].(string)
	cn := res.Data()["control_number"].(string)
	statusPath := "/api/certificates/" + id + "/status"

	res = testutil.Do(t, app, http.MethodGet, "/api/public/certificates/verify/"+strings.ToLower(cn), "", nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, false, res.Data()["valid"])

	res = testutil.Do(t, app, http.MethodPut, statusPath, secretary, map[string]any{"status": "RELEASED"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "cannot change status from PENDING to RELEASED", res.Message())

	res = testutil.Do(t, app, http.MethodPut, statusPath, secretary, map[string]any{"status": "APPROVED"})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Nil(t, res.Data()["issued_date"])

	res = testutil.Do(t, app, http.MethodPut, statusPath, secretary, map[string]any{"status": "RELEASED", "or_number": "OR-100"})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "2025-03-10", res.Data()["issued_date"])
	assert.Equal(t, "OR-100", res.Data()["or_number"])

	res = testutil.Do(t, app, http.MethodPut, statusPath, secretary, map[string]any{"status": "CANCELLED"})
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = testutil.Do(t, app, http.MethodGet, "/api/public/certificates/verify/"+cn, "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, true, res.Data()["valid"])
	assert.Equal(t, "Jose Protacio Rizal", res.Data()["resident_name"])
	assert.Equal(t, "2025-03-10", res.Data()["issued_date"])

	res = testutil.Do(t, app, http.MethodGet, "/api/public/certificates/verify/BRGY-1999-0001", "", nil)
	assert.Equal(t, http.StatusNotFound, res.Status)

	res = testutil.Do(t, app, http.MethodGet, "/api/certificates/"+id+"/qr", treasurer, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.True(t, strings.HasPrefix(res.Data()["data_uri"].(string), "data:image/png;base64,"))
	assert.True(t, strings.HasSuffix(res.Data()["verify_url"].(string), "/verify/"+cn))
}

func TestCertificateDeleteOnlyWhilePending(t *testing.T) {
	app, db := apitest.New(t)
	_, admin := testutil.Login(t, db, constants.RoleSuperAdmin)
	_, secretary := testutil.Login(t, db, constants.RoleSecretary)
	r := newResident(t, db)

	mk := func() string {
		res := testutil.Do(t, app, http.MethodPost, "/api/certificates", admin, map[string]any{
			"type": "GOOD_MORAL", "purpose": "School", "resident_id": r.ResidentID.String(),
		})
		require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
		return res.Data()["id"].(string)
	}
	pending, approved := mk(), mk()
	require.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodPut, "/api/certificates/"+approved+"/status", admin,
		map[string]any{"status": "APPROVED"}).Status)

	assert.Equal(t, http.StatusForbidden, testutil.Do(t, app, http.MethodDelete, "/api/certificates/"+pending, secretary, nil).Status)
	assert.Equal(t, http.StatusBadRequest, testutil.Do(t, app, http.MethodDelete, "/api/certificates/"+approved, admin, nil).Status)
	assert.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodDelete, "/api/certificates/"+pending, admin, nil).Status)

	res := testutil.Do(t, app, http.MethodGet, "/api/certificates?status=APPROVED", secretary, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.List(), 1)
}

func TestCertificateSettings(t *testing.T) {
	app, db := apitest.New(t)
	_, secretary := testutil.Login(t, db, constants.RoleSecretary)
	_, treasurer := testutil.Login(t, db, constants.RoleTreasurer)

	res := testutil.Do(t, app, http.MethodGet, "/api/settings/certificates", treasurer, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, true, res.Data()["is_default"])

	body := map[string]any{
		"barangay_name": "Malinis", "municipality_name": "San Isidro", "province_name": "Nueva Ecija",
		"captain_name": "Hon. Tiago", "templates": map[string]string{"RESIDENCY": "This certifies that {{name}} lives here."},
	}
	assert.Equal(t, http.StatusForbidden, testutil.Do(t, app, http.MethodPut, "/api/settings/certificates", treasurer, body).Status)

	res = testutil.Do(t, app, http.MethodPut, "/api/settings/certificates", secretary, body)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, false, res.Data()["is_default"])
	assert.Equal(t, "Hon. Tiago", res.Data()["settings"].(map[string]any)["captain_name"])

	body["templates"] = map[string]string{"CEDULA": "nope"}
	assert.Equal(t, http.StatusBadRequest, testutil.Do(t, app, http.MethodPut, "/api/settings/certificates", secretary, body).Status)
}
