package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"

	"bisig_backend/internals/configs"
	helper "bisig_backend/internals/helpers"
)

// limiterStorage is nil (in-memory) unless RATE_LIMIT_REDIS_URL is set.
var limiterStorage fiber.Storage

// InitLimiterStorage connects the shared limiter store. Failure falls back to memory.
func InitLimiterStorage() {
	if configs.RateLimitRedis == "" {
		return
	}
	s, err := NewRedisStorageFromURL(configs.RateLimitRedis, "bisig:ratelimit:")
	if err != nil {
		zap.L().Warn("redis limiter storage unavailable, using memory", zap.Error(err))
		return
	}
	limiterStorage = s
	zap.L().Info("rate limiter using redis")
}

func SetLimiterStorage(s fiber.Storage) { limiterStorage = s }

func newLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    limiterStorage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// GlobalRateLimiter applies to every request.
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(configs.GetEnvInt("RATE_LIMIT_GLOBAL", 300), time.Minute,
		"Too many requests. Please try again later.")
}

func LoginRateLimiter() fiber.Handler {
	return newLimiter(5, time.Minute, "Too many login attempts. Please wait a moment.")
}

func RegisterRateLimiter() fiber.Handler {
	return newLimiter(3, 5*time.Minute, "Too many registration attempts. Please wait a few minutes.")
}
