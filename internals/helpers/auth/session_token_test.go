package helperAuth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	u := SessionUser{ID: uuid.New(), Name: "Ana", Email: "ana@brgy.ph", Role: "SECRETARY", Status: "ACTIVE"}
	raw, exp, err := IssueSessionToken(u, "s3cret", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 2*time.Second)

	claims, err := ParseSessionToken(raw, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.ID)
	assert.Equal(t, "SECRETARY", claims.Role)
	assert.Equal(t, "ACTIVE", claims.Status)
}

func TestParseRejectsWrongSecretAndExpired(t *testing.T) {
	u := SessionUser{ID: uuid.New(), Role: "CAPTAIN", Status: "ACTIVE"}

	raw, _, err := IssueSessionToken(u, "a", time.Hour)
	require.NoError(t, err)
	_, err = ParseSessionToken(raw, "b")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, _, err := IssueSessionToken(u, "a", -time.Minute)
	require.NoError(t, err)
	_, err = ParseSessionToken(expired, "a")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseSessionToken("not-a-jwt", "a")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueNeedsSecret(t *testing.T) {
	_, _, err := IssueSessionToken(SessionUser{ID: uuid.New()}, " ", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestHashTokenStable(t *testing.T) {
	assert.Equal(t, HashToken("tok", "k"), HashToken("tok", "k"))
	assert.NotEqual(t, HashToken("tok", "k"), HashToken("tok", "k2"))
	assert.Len(t, HashToken("tok", "k"), 64)
}

func TestPasswordHash(t *testing.T) {
	h, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NoError(t, CheckPasswordHash(h, "s3cret-pass"))
	assert.Error(t, CheckPasswordHash(h, "wrong"))
	assert.NotEqual(t, RandomPassword(), RandomPassword())
}
