package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/juju/clock"
	"go.uber.org/zap"

	"itam-service/internal"
	"itam-service/internal/config"
	"itam-service/internal/documents"
	"itam-service/internal/logging"
	"itam-service/internal/repository"
	"itam-service/internal/sampledata"
	"itam-service/internal/service"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	cfg, err := config.LoadAndValidate()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger, err := logging.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Logger error: %v", err)
	}
	defer logger.Sync()

	clk := clock.WallClock
	store := repository.NewStore(clk, sampledata.New())
	docs, err := documents.NewManagementService(cfg.Documents.Dir, clk, logger)
	if err != nil {
		logger.Fatal("documents directory", zap.Error(err))
	}
	svc := service.New(store, clk, logger, service.Options{
		WarningDays: cfg.ExpiryWarningDays,
		Renderer:    documents.NewPDFService(docs, cfg.Documents.CompanyName, clk, logger),
		Mailer:      documents.NewEmailService(cfg.SMTP, clk, logger),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := internal.NewServer(cfg, store, svc, docs, clk, logger)
	logger.Info("starting asset management service",
		zap.String("environment", cfg.Environment),
		zap.Bool("smtp_configured", cfg.SMTP.Configured()),
		zap.Int("expiry_warning_days", cfg.ExpiryWarningDays))
	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server stopped")
}
