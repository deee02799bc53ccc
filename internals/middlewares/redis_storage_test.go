package middlewares

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStorage(client, "test:")
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStorageRoundTrip(t *testing.T) {
	s, mr := newMiniredisStorage(t)

	v, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Set("k", []byte("v"), time.Minute))
	v, err = s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
	assert.True(t, mr.Exists("test:k"))

	mr.FastForward(2 * time.Minute)
	v, err = s.Get("k")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Set("a", []byte("1"), 0))
	require.NoError(t, mr.Set("other:b", "x"))
	require.NoError(t, s.Reset())
	assert.False(t, mr.Exists("test:a"))
	assert.True(t, mr.Exists("other:b"))
}

func TestLimiterSharesCountersThroughRedis(t *testing.T) {
	s, _ := newMiniredisStorage(t)
	SetLimiterStorage(s)
	t.Cleanup(func() { SetLimiterStorage(nil) })

	// two apps share one store, as two replicas would
	mk := func() *fiber.App {
		app := fiber.New()
		app.Post("/login", LoginRateLimiter(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
		return app
	}
	a, b := mk(), mk()

	codes := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		app := a
		if i%2 == 1 {
			app = b
		}
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{200, 200, 200, 200, 200, 429}, codes)
}
