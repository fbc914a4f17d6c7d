package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	_ "tsmit_os/docs"
	"tsmit_os/internal/adapter/http/routes"
	"tsmit_os/internal/infrastructure/config"
	"tsmit_os/internal/infrastructure/logger"
)

// @title           TSMIT OS API
// @version         1.0
// @description     Service order lifecycle, audit trail, authorization and dashboard for TSMIT OS.

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := run(); err != nil {
		logrus.Fatalf("failed to startup the application: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Configure(cfg.Log, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return routes.Run(ctx, cfg)
}
