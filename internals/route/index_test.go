package routes_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	routes "bisig_backend/internals/route"
	"bisig_backend/internals/testutil"
	"bisig_backend/internals/testutil/apitest"
)

func TestEveryAPIRouteHasAPolicy(t *testing.T) {
	app, _ := apitest.New(t)
	assert.Empty(t, routes.Policy.Missing(app))
}

func TestHealth(t *testing.T) {
	app, _ := apitest.New(t)
	res := testutil.Do(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "OK", res.Body["status"])
	assert.Equal(t, "Connected", res.Body["database"])
}
