package database

import (
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bisig_backend/internals/configs"
)

var DB *gorm.DB

// BuildDSN prefers DB_DSN and falls back to the individual DB_* variables.
func BuildDSN() string {
	if dsn := configs.GetEnv("DB_DSN"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=bisig&options=-c%%20statement_timeout=5000",
		url.QueryEscape(configs.GetEnv("DB_USER")),
		url.QueryEscape(configs.GetEnv("DB_PASSWORD")),
		configs.GetEnv("DB_HOST", "localhost"),
		configs.GetEnv("DB_PORT", "5432"),
		configs.GetEnv("DB_NAME", "bisig"),
		configs.GetEnv("DB_SSLMODE", "disable"),
	)
}

func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(zap.L()),
		TranslateError: true,
	})
}

func ConnectDB() {
	zap.L().Info("connecting to PostgreSQL")
	db, err := Open(BuildDSN())
	if err != nil {
		zap.L().Fatal("database connection failed", zap.Error(err))
	}
	DB = db
	zap.L().Info("database connected")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		zap.L().Warn("pool tune failed", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(); err != nil {
			zap.L().Warn("warm-up ping failed", zap.Error(err))
		}
	}()
}

func Ping() error {
	if DB == nil {
		return fmt.Errorf("database not initialised")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
