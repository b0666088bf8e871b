package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"chama/internal/backend"
	"chama/internal/cli"
	apphttp "chama/internal/http"
	"chama/internal/services"
	gstore "chama/internal/store/google"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to create backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Warn("Backend cleanup failed", "error", err)
			}
		}
	}()

	contributions := services.NewContributionService(result.Store, result.Publisher)
	reports := services.NewReportService(result.Store, cfg.Calculator())

	// Workbook export needs a spreadsheet client even when the primary
	// store is SQLite or memory.
	var workbook apphttp.WorkbookWriter
	if sheetsStore, ok := result.Store.(*gstore.Client); ok {
		workbook = sheetsStore
	} else if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err := gstore.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		workbook = sheetsClient
	}

	srv := apphttp.NewServer(":"+cfg.Port, contributions, reports, workbook)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	shutdownCtx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer stopCancel()
		if err := srv.Shutdown(stopCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting chama server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"policy", cfg.CompoundPolicy,
		"annual_rate", cfg.AnnualRate)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(shutdownCtx, done)
	logger.Info("Server stopped gracefully")
}
