package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())

	d, err = ParseDate("2025-03-14T08:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 14, d.Day())

	_, err = ParseDate("14/03/2025")
	assert.Error(t, err)
}

func TestParseDatePtr(t *testing.T) {
	empty := "  "
	d, err := ParseDatePtr(&empty)
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDatePtr(nil)
	require.NoError(t, err)
	assert.Nil(t, d)

	s := "2024-12-31"
	d, err = ParseDatePtr(&s)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", *FormatDate(d))
}

func TestYearBounds(t *testing.T) {
	from, to := YearBounds(2025)
	assert.Equal(t, 2025, from.Year())
	assert.Equal(t, 2026, to.Year())
	assert.Equal(t, 365*24*time.Hour, to.Sub(from))
}
