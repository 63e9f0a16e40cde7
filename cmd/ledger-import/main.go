// Command ledger-import validates a JSON file of transactions and loads
// it into the configured backend, replacing the stored collection.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"ledger/internal/backend"
	"ledger/internal/config"
	"ledger/internal/core"
	"ledger/internal/ingest"
	applog "ledger/internal/log"
	"ledger/internal/services"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Level: slog.LevelInfo, Component: "import"})
	applog.SetDefault(logger)

	var (
		file    = flag.String("file", "", "path to the JSON file to import")
		project = flag.String("project", "", "default project for records missing one")
		dryRun  = flag.Bool("dry-run", false, "validate only, do not persist")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: ledger-import -file transactions.json [-project NAME] [-dry-run]")
		os.Exit(2)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		logger.Error("Failed to read input file", "error", err, "file", *file)
		os.Exit(1)
	}

	if *dryRun {
		defaultProject := strings.TrimSpace(*project)
		if defaultProject == "" || defaultProject == core.AllProjects {
			defaultProject = cfg.DefaultProject
		}
		res := ingest.Validate(raw, defaultProject, uuid.NewString)
		logDefects(logger, res)
		logger.Info("Dry run finished", "accepted", len(res.Records), "defects", len(res.Defects))
		return
	}

	ctx := context.Background()
	result, err := backend.Create(ctx, cfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	svc := services.NewLedgerService(result.Backend, cfg.UserKey, cfg.DefaultProject)

	res, err := svc.ImportJSON(ctx, raw, *project)
	if err != nil {
		logger.Error("Import failed to persist", "error", err)
		os.Exit(1)
	}
	logDefects(logger, res)
	logger.Info("Import finished", "imported", len(res.Records), "defects", len(res.Defects))
}

func logDefects(logger *applog.Logger, res ingest.Result) {
	for _, d := range res.Defects {
		if d.IsGlobal() {
			logger.Error("Rejected payload", "message", d.Message)
			continue
		}
		logger.Warn("Rejected record", "index", d.Index, "messages", strings.Join(d.Messages, "; "))
	}
}
