package main

import (
	"go.uber.org/zap"

	"bisig_backend/internals/configs"
	"bisig_backend/internals/server"
)

func main() {
	logger := configs.InitLogger()
	defer func() { _ = logger.Sync() }()

	configs.LoadEnv()

	if err := server.Run(); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}
