package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/PCalderonpm/menu-escolar/internal/amqp"
	"github.com/PCalderonpm/menu-escolar/internal/config"
	applog "github.com/PCalderonpm/menu-escolar/internal/log"
	"github.com/PCalderonpm/menu-escolar/internal/sheets"
	"github.com/PCalderonpm/menu-escolar/internal/storage"
	"github.com/PCalderonpm/menu-escolar/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Level: slog.LevelInfo}).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	logger.Info("Starting comedor-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("Worker requires GOOGLE_SPREADSHEET_ID")
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("Worker requires AMQP_URL")
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	sheetsClient, err := sheets.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	summaryWorker := worker.NewSummaryWorker(repo, sheetsClient, cfg.ExportBatchSize)

	// Recover summaries for saves missed while the worker was down.
	logger.Info("Performing startup catch-up...")
	if err := summaryWorker.StartupCatchUp(ctx); err != nil {
		logger.Error("Startup catch-up failed", "error", err)
		// Keep running; the consume loop still handles new saves.
	}

	go func() {
		handler := func(msg *amqp.MenuSavedMessage) error {
			return summaryWorker.HandleMenuSaved(ctx, msg)
		}
		if err := amqpClient.ConsumeMenuSaved(ctx, handler); err != nil && err != context.Canceled {
			logger.Error("Message consumption failed", "error", err)
			cancel()
		}
	}()

	// Periodic backstop for lost messages.
	ticker := time.NewTicker(cfg.ExportInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := summaryWorker.PeriodicExport(ctx); err != nil {
					logger.Error("Periodic export failed", "error", err)
				}
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down worker...")
	cancel()
	time.Sleep(2 * time.Second) // let in-flight exports finish
	logger.Info("Worker shutdown complete")
}
