package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"netdiag/internal/config"
	"netdiag/internal/csvlog"
	"netdiag/internal/database"
	"netdiag/internal/diagnose"
	"netdiag/internal/logging"
	"netdiag/internal/models"
	"netdiag/internal/platform"
	"netdiag/internal/probe"
	"netdiag/internal/report"
	"netdiag/internal/telemetry"
	"netdiag/internal/web"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// History store; optional for diagnostics, required for reports.
	var store models.Store
	var db *database.DB
	if cfg.DatabasePath != "" {
		db, err = database.New(cfg.DatabasePath)
		if err != nil {
			sugar.Fatalw("failed to open history database", "error", err)
		}
		defer db.Close()
		if err := db.InitSchema(); err != nil {
			sugar.Fatalw("failed to initialize database schema", "error", err)
		}
		store = db
	}

	if cfg.Report {
		gen := report.NewGenerator(db.DB, sugar)
		if err := gen.GenerateReport(cfg.ReportDir, cfg.ReportHours); err != nil {
			sugar.Fatalw("report generation failed", "error", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prober := probe.New(platform.Current())

	if cfg.Telemetry {
		runTelemetry(ctx, cfg, prober, store, sugar)
		return
	}

	runner := diagnose.New(prober, cfg.Ports, cfg.PingCount, sugar)
	records := runner.Run(ctx, cfg.Hosts)
	if err := csvlog.WriteFile(cfg.OutputPath, records); err != nil {
		sugar.Fatalw("failed to save results", "error", err)
	}
	if store != nil {
		if err := store.SaveRows(models.Flatten(records)); err != nil {
			sugar.Fatalw("failed to save history", "error", err)
		}
	}
	sugar.Infow("saved results", "file", cfg.OutputPath, "hosts", len(cfg.Hosts))
}

func runTelemetry(ctx context.Context, cfg config.Config, prober models.Prober, store models.Store, sugar *zap.SugaredLogger) {
	runner := diagnose.New(prober, cfg.Ports, telemetry.ProbeCount, sugar)
	driver := telemetry.New(runner, store, telemetry.OutputFile, cfg.Interval, cfg.Duration, sugar)

	if cfg.HTTPAddr != "" && store != nil {
		srv := web.New(store, cfg.HTTPAddr, sugar)
		go func() {
			if err := srv.Start(); err != nil {
				sugar.Errorw("web server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Stop(shutdownCtx)
		}()
	}

	if err := driver.Run(ctx, cfg.Hosts); err != nil && !errors.Is(err, context.Canceled) {
		sugar.Fatalw("telemetry run failed", "error", err)
	}
}
