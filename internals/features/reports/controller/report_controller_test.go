package controller_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bisig_backend/internals/constants"
	certModel "bisig_backend/internals/features/certificates/certificates/model"
	residentModel "bisig_backend/internals/features/residents/residents/model"
	"bisig_backend/internals/testutil"
	"bisig_backend/internals/testutil/apitest"
)

func TestResidentReportCSV(t *testing.T) {
	app, db := apitest.New(t)
	_, tok := testutil.Login(t, db, constants.RoleSecretary)

	nick := `Jun "Boy"`
	for i, name := range []string{"Andres", "Emilio", "Apolinario"} {
		r := residentModel.ResidentModel{
			ResidentFirstName:   name,
			ResidentLastName:    "Cruz",
			ResidentBirthDate:   time.Date(1980+i, 1, 15, 0, 0, 0, 0, time.UTC),
			ResidentGender:      "MALE",
			ResidentCivilStatus: "MARRIED",
			ResidentAddress:     "Purok 3",
			ResidentIsVoter:     i != 1,
		}
		if i == 2 {
			r.ResidentOccupation = &nick
		}
		require.NoError(t, db.Create(&r).Error)
	}

	res := testutil.Do(t, app, http.MethodGet, "/api/reports/residents?format=csv", tok, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.True(t, strings.HasPrefix(res.Header.Get("Content-Type"), "text/csv"))
	assert.Regexp(t, `attachment; filename="residents-\d{4}-\d{2}-\d{2}\.csv"`, res.Header.Get("Content-Disposition"))

	lines := strings.Split(string(res.Raw), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], `"Full Name","Birth Date"`))
	assert.Contains(t, string(res.Raw), `"Jun ""Boy"""`)

	res = testutil.Do(t, app, http.MethodGet, "/api/reports/residents?format=csv&is_voter=true", tok, nil)
	assert.Len(t, strings.Split(string(res.Raw), "\n"), 3)

	res = testutil.Do(t, app, http.MethodGet, "/api/reports/residents?format=json", tok, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.Body["data"].([]any), 3)

	res = testutil.Do(t, app, http.MethodGet, "/api/reports/residents?format=xml", tok, nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)
}

func TestCertificateReportAndSummary(t *testing.T) {
	app, db := apitest.New(t)
	_, secretary := testutil.Login(t, db, constants.RoleSecretary)
	_, treasurer := testutil.Login(t, db, constants.RoleTreasurer)

	r := residentModel.ResidentModel{
		ResidentFirstName: "Maria", ResidentLastName: "Clara", ResidentBirthDate: time.Date(1995, 3, 3, 0, 0, 0, 0, time.UTC),
		ResidentGender: "FEMALE", ResidentCivilStatus: "SINGLE", ResidentAddress: "Purok 1", ResidentIsVoter: true,
	}
	require.NoError(t, db.Create(&r).Error)
	for i, st := range []string{certModel.StatusPending, certModel.StatusReleased} {
		require.NoError(t, db.Create(&certModel.CertificateModel{
			CertificateType:          certModel.TypeResidency,
			CertificatePurpose:       "Employment",
			CertificateResidentID:    r.ResidentID,
			CertificateStatus:        st,
			CertificateControlNumber: []string{"BRGY-2025-0001", "BRGY-2025-0002"}[i],
		}).Error)
	}

	res := testutil.Do(t, app, http.MethodGet, "/api/reports/certificates?status=RELEASED", secretary, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	lines := strings.Split(string(res.Raw), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"BRGY-2025-0002","RESIDENCY","Maria Clara"`)

	assert.Equal(t, http.StatusForbidden,
		testutil.Do(t, app, http.MethodGet, "/api/reports/certificates", treasurer, nil).Status)

	res = testutil.Do(t, app, http.MethodGet, "/api/reports/summary", treasurer, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	d := res.Data()
	assert.EqualValues(t, 1, d["residents"])
	assert.EqualValues(t, 1, d["voters"])
	assert.EqualValues(t, 0, d["households"])
	certs := d["certificates"].(map[string]any)
	assert.EqualValues(t, 1, certs["PENDING"])
	assert.EqualValues(t, 1, certs["RELEASED"])
	assert.EqualValues(t, 0, certs["REJECTED"])
	assert.Nil(t, d["budget"])
}
