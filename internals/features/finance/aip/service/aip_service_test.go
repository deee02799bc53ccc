package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bisig_backend/internals/features/finance/aip/model"
	"bisig_backend/internals/testutil"
)

func TestTotalsKeyedByProgram(t *testing.T) {
	db := testutil.OpenDB(t)
	newProgram := func(title string) uuid.UUID {
		m := model.AIPModel{AIPFiscalYearID: uuid.New(), AIPTitle: title, AIPStatus: model.AIPStatusDraft}
		require.NoError(t, db.Create(&m).Error)
		return m.AIPID
	}
	a, b, empty := newProgram("AIP A"), newProgram("AIP B"), newProgram("AIP C")

	for _, p := range []model.ProjectModel{
		{ProjectAIPID: a, ProjectTitle: "Road", ProjectBudgetAmount: 100, ProjectStatus: model.ProjectPlanned},
		{ProjectAIPID: a, ProjectTitle: "Bridge", ProjectBudgetAmount: 250.5, ProjectStatus: model.ProjectPlanned},
		{ProjectAIPID: b, ProjectTitle: "Clinic", ProjectBudgetAmount: 40, ProjectStatus: model.ProjectOngoing},
	} {
		p := p
		require.NoError(t, db.Create(&p).Error)
	}

	out, err := Totals(db, []uuid.UUID{a, b, empty})
	require.NoError(t, err)
	assert.NotContains(t, out, uuid.Nil)
	assert.Equal(t, Total{Amount: 350.5, Count: 2}, out[a])
	assert.Equal(t, Total{Amount: 40, Count: 1}, out[b])
	assert.Equal(t, Total{}, out[empty])

	out, err = Totals(db, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestStatusUpdates(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	cols, err := StatusUpdates(model.AIPStatusSubmitted, model.AIPStatusApproved, now)
	require.NoError(t, err)
	assert.Equal(t, model.AIPStatusApproved, cols["aip_status"])
	assert.Equal(t, now, cols["aip_approved_at"])

	cols, err = StatusUpdates(model.AIPStatusDraft, model.AIPStatusDraft, now)
	require.NoError(t, err)
	assert.Empty(t, cols)

	_, err = StatusUpdates(model.AIPStatusApproved, model.AIPStatusDraft, now)
	assert.EqualError(t, err, "cannot change status from APPROVED to DRAFT")
}
