package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ledger/internal/amqp"
	"ledger/internal/backend"
	"ledger/internal/config"
	apphttp "ledger/internal/http"
	applog "ledger/internal/log"
	"ledger/internal/rates"
	"ledger/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Level: slog.LevelInfo, Component: "ledger"})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, err := backend.Create(ctx, cfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	opts := []services.Option{}
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without sync notifications", "error", err)
		} else {
			defer amqpClient.Close()
			opts = append(opts, services.WithPublisher(amqpClient))
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	svc := services.NewLedgerService(result.Backend, cfg.UserKey, cfg.DefaultProject, opts...)

	// Hydrate the local collection from the remote store at startup.
	if res, found, err := svc.Load(ctx); err != nil {
		logger.Error("Failed to load stored collection", "error", err)
	} else if found {
		logger.Info("Loaded stored collection",
			"records", len(res.Records),
			"defects", len(res.Defects))
	} else {
		logger.Info("No stored collection found, starting empty")
	}

	ratesClient := rates.New(cfg.RatesBaseURL, nil)

	srv := apphttp.NewServer(":"+cfg.Port, svc, ratesClient, cfg.BaseCurrency, logger)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting ledger server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"user_key", cfg.UserKey)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
