// Package server assembles and runs the HTTP service.
package server

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bisig_backend/internals/configs"
	database "bisig_backend/internals/databases"
	scheduler "bisig_backend/internals/features/users/auth/scheduler"
	helper "bisig_backend/internals/helpers"
	"bisig_backend/internals/middlewares"
	routes "bisig_backend/internals/route"
)

// New builds the fiber app with the global middleware chain and every route.
func New(db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		BodyLimit:               configs.MaxBodyBytes,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: configs.GetEnv("TRUSTED_PROXIES") != "",
		TrustedProxies:          splitList(configs.GetEnv("TRUSTED_PROXIES")),
		ReadTimeout:             15 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             90 * time.Second,
	})

	middlewares.InitLimiterStorage()
	middlewares.SetupMiddlewares(app)

	if configs.UploadDriver == "" || configs.UploadDriver == "local" {
		app.Static("/uploads", configs.UploadDir, fiber.Static{MaxAge: 3600})
	}
	routes.SetupRoutes(app, db)
	return app
}

// Run connects the database, migrates, starts the cleanup cron and serves
// until SIGINT or SIGTERM.
func Run() error {
	database.ConnectDB()
	database.TunePool()
	if configs.GetEnvBool("AUTO_MIGRATE", true) {
		if err := database.AutoMigrate(database.DB); err != nil {
			return err
		}
	}
	database.WarmUpQueries()

	cron, err := scheduler.StartBlacklistCleanupScheduler(database.DB)
	if err != nil {
		zap.L().Error("blacklist cleanup scheduler not started", zap.Error(err))
	}

	app := New(database.DB)
	port := configs.GetEnv("PORT", "8080")

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("listening", zap.String("port", port))
		errCh <- app.Listen("0.0.0.0:" + port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if cron != nil {
		<-cron.Stop().Done()
	}
	if err := app.ShutdownWithContext(ctx); err != nil {
		zap.L().Warn("server shutdown", zap.Error(err))
	}
	database.Close()
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
