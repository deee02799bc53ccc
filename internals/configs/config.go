package configs

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// MaxBodyBytes is the request body cap; it must stay above UploadMaxBytes.
const MaxBodyBytes = 12 * 1024 * 1024

var (
	JWTSecret        string
	SessionTTL       time.Duration
	AppPublicURL     string
	UploadDir        string
	UploadDriver     string
	UploadMaxBytes   int64
	GoogleClientID   string
	RateLimitRedis   string
	StrictBlotter    bool
	BlacklistCronExp string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		zap.L().Info("no .env file found, using system environment")
	} else {
		zap.L().Info(".env file loaded")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	SessionTTL = GetEnvDuration("SESSION_TTL", 24*time.Hour)
	AppPublicURL = strings.TrimRight(GetEnv("APP_PUBLIC_URL", "http://localhost:3000"), "/")
	UploadDir = GetEnv("UPLOAD_DIR", "public/uploads")
	UploadDriver = strings.ToLower(GetEnv("UPLOAD_DRIVER", "local"))
	UploadMaxBytes = int64(GetEnvInt("UPLOAD_MAX_BYTES", 5*1024*1024))
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	RateLimitRedis = GetEnv("RATE_LIMIT_REDIS_URL")
	StrictBlotter = GetEnvBool("BLOTTER_STRICT_TRANSITIONS", false)
	BlacklistCronExp = GetEnv("TOKEN_BLACKLIST_CLEANUP_CRON", "@daily")

	if JWTSecret == "" {
		zap.L().Warn("JWT_SECRET is not set; sessions cannot be issued")
	}
	if GoogleClientID == "" {
		zap.L().Info("GOOGLE_CLIENT_ID not set; Google login disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || strings.TrimSpace(value) == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return strings.TrimSpace(value)
}

func GetEnvInt(key string, def int) int {
	if v := GetEnv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func GetEnvBool(key string, def bool) bool {
	if v := GetEnv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func GetEnvDuration(key string, def time.Duration) time.Duration {
	if v := GetEnv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

// =======================
// GORM LOGGER (zap)
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
	log           *zap.Logger
}

func NewGormLogger(l *zap.Logger) gormLogger.Interface {
	level := gormLogger.Warn
	if GetEnvBool("APP_DEBUG", false) {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
		log:           l.Named("gorm"),
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		l.log.Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.log.Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.log.Sugar().Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("file", utils.FileWithLineNum()),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && !errors.Is(err, gormLogger.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		l.log.Error("query failed", append(fields, zap.Error(err))...)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		l.log.Warn("slow query", fields...)
	case l.LogLevel >= gormLogger.Info:
		l.log.Debug("query", fields...)
	}
}
