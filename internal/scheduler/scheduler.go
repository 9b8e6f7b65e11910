package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmwatch/internal/config"
	monitoringsvc "github.com/mamadbah2/farmwatch/internal/service/monitoring"
	reportingsvc "github.com/mamadbah2/farmwatch/internal/service/reporting"
	"github.com/mamadbah2/farmwatch/pkg/clients/webhook"
)

// Scheduler manages the periodic alert scans and daily summaries.
type Scheduler struct {
	cron          *cron.Cron
	monitoringSvc *monitoringsvc.Service
	reportingSvc  *reportingsvc.Service
	notifier      webhook.Client
	cfg           config.SchedulerConfig
	logger        *zap.Logger
}

// NewScheduler creates a new scheduler instance. notifier may be nil; scan
// results are then only logged.
func NewScheduler(cfg config.SchedulerConfig, monitoringSvc *monitoringsvc.Service, reportingSvc *reportingsvc.Service, notifier webhook.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:          cron.New(cron.WithLocation(loc)),
		monitoringSvc: monitoringSvc,
		reportingSvc:  reportingSvc,
		notifier:      notifier,
		cfg:           cfg,
		logger:        logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("alert_cron", s.cfg.AlertCron),
		zap.String("summary_cron", s.cfg.SummaryCron),
		zap.Int("farms", len(s.cfg.FarmIDs)))

	if _, err := s.cron.AddFunc(s.cfg.AlertCron, s.runAlertScans); err != nil {
		s.logger.Error("failed to schedule alert scan", zap.Error(err))
	}
	if _, err := s.cron.AddFunc(s.cfg.SummaryCron, s.runDailySummaries); err != nil {
		s.logger.Error("failed to schedule daily summaries", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runAlertScans() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, farmID := range s.cfg.FarmIDs {
		alerts, err := s.monitoringSvc.FarmAlerts(ctx, farmID)
		if err != nil {
			s.logger.Error("scheduled alert scan failed", zap.String("farm_id", farmID), zap.Error(err))
			continue
		}
		if len(alerts) == 0 {
			s.logger.Info("scheduled scan clean", zap.String("farm_id", farmID))
			continue
		}
		if s.notifier == nil {
			s.logger.Warn("alerts found but no webhook configured",
				zap.String("farm_id", farmID),
				zap.Int("alerts", len(alerts)))
			continue
		}

		digest := webhook.AlertDigest{FarmID: farmID, GeneratedAt: time.Now(), Alerts: alerts}
		if err := s.notifier.SendAlertDigest(ctx, digest); err != nil {
			s.logger.Error("failed to deliver alert digest", zap.String("farm_id", farmID), zap.Error(err))
		} else {
			s.logger.Info("alert digest delivered",
				zap.String("farm_id", farmID),
				zap.Int("alerts", len(alerts)))
		}
	}
}

func (s *Scheduler) runDailySummaries() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	day := time.Now().AddDate(0, 0, -1) // summarize the completed day
	for _, farmID := range s.cfg.FarmIDs {
		if _, err := s.reportingSvc.SaveDailySummary(ctx, farmID, day); err != nil {
			s.logger.Error("scheduled daily summary failed", zap.String("farm_id", farmID), zap.Error(err))
		}
	}
}
