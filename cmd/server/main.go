package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmwatch/internal/config"
	"github.com/mamadbah2/farmwatch/internal/monitoring"
	"github.com/mamadbah2/farmwatch/internal/repository/mongodb"
	"github.com/mamadbah2/farmwatch/internal/repository/sheets"
	"github.com/mamadbah2/farmwatch/internal/scheduler"
	"github.com/mamadbah2/farmwatch/internal/server/handlers"
	"github.com/mamadbah2/farmwatch/internal/server/router"
	importersvc "github.com/mamadbah2/farmwatch/internal/service/importer"
	monitoringsvc "github.com/mamadbah2/farmwatch/internal/service/monitoring"
	reportingsvc "github.com/mamadbah2/farmwatch/internal/service/reporting"
	"github.com/mamadbah2/farmwatch/pkg/clients/webhook"
	"github.com/mamadbah2/farmwatch/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewMongoStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	engineCfg := engineConfig(cfg.Monitoring)

	monitoringSvc := monitoringsvc.NewService(store, engineCfg, logger.Named(baseLogger, "svc.monitoring"))
	reportingSvc := reportingsvc.NewService(store, logger.Named(baseLogger, "svc.reporting"))

	var importSvc *importersvc.Service
	if cfg.SheetsEnabled() {
		source, err := sheets.NewGoogleSheetSource(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets source", zap.Error(err))
		}
		importSvc = importersvc.NewService(source, store, logger.Named(baseLogger, "svc.importer"))
		baseLogger.Info("legacy sheet import enabled")
	} else {
		baseLogger.Info("legacy sheet import disabled")
	}

	var notifier webhook.Client
	if cfg.Webhook.URL != "" {
		notifier = webhook.NewClient(cfg.Webhook)
		baseLogger.Info("alert webhook enabled")
	} else {
		baseLogger.Warn("no alert webhook configured, scan results will only be logged")
	}

	monitoringHandler := handlers.NewMonitoringHandler(monitoringSvc, reportingSvc, cfg.Monitoring.EnvironmentWindowDays, logger.Named(baseLogger, "handlers.monitoring"))
	recordsHandler := handlers.NewRecordsHandler(store, importSvc, logger.Named(baseLogger, "handlers.records"))
	engine := router.New(monitoringHandler, recordsHandler, logger.Named(baseLogger, "router"))

	sched := scheduler.NewScheduler(cfg.Scheduler, monitoringSvc, reportingSvc, notifier, logger.Named(baseLogger, "scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// engineConfig maps the env-driven tunables onto the engine defaults.
func engineConfig(m config.MonitoringConfig) monitoring.Config {
	cfg := monitoring.DefaultConfig()
	cfg.StaleAfterIntervals = m.StaleAfterIntervals
	cfg.OfflineAfterIntervals = m.OfflineAfterIntervals
	cfg.CriticalIssueCount = m.CriticalIssueCount
	cfg.ExpiryWarningDays = m.ExpiryWarningDays
	cfg.MortalityWarningPercent = m.MortalityWarningPercent
	cfg.MortalityCriticalPercent = m.MortalityCriticalPercent
	return cfg
}
