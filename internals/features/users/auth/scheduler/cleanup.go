package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bisig_backend/internals/configs"
	authRepo "bisig_backend/internals/features/users/auth/repository"
)

// PurgeExpiredTokens removes blacklist rows for tokens that have expired.
func PurgeExpiredTokens(db *gorm.DB) {
	n, err := authRepo.PurgeExpiredBlacklist(db, time.Now())
	if err != nil {
		zap.L().Error("token blacklist cleanup failed", zap.Error(err))
		return
	}
	zap.L().Info("token blacklist cleanup", zap.Int64("deleted", n))
}

// StartBlacklistCleanupScheduler runs PurgeExpiredTokens on
// TOKEN_BLACKLIST_CLEANUP_CRON (default @daily). Stop the returned cron on shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB) (*cron.Cron, error) {
	c := cron.New()
	spec := configs.BlacklistCronExp
	if spec == "" {
		spec = "@daily"
	}
	if _, err := c.AddFunc(spec, func() { PurgeExpiredTokens(db) }); err != nil {
		return nil, err
	}
	c.Start()
	zap.L().Info("token blacklist cleanup scheduled", zap.String("spec", spec))
	return c, nil
}
