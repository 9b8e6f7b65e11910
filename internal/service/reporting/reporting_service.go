package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmwatch/internal/domain/models"
	engine "github.com/mamadbah2/farmwatch/internal/monitoring"
)

const dateLayout = "2006-01-02"

// Store is the slice of persistence this service depends on.
// *mongodb.MongoStore satisfies it.
type Store interface {
	ListActiveBatches(ctx context.Context, farmID string) ([]models.Batch, error)
	ListFeedRecords(ctx context.Context, batchID string, from, to time.Time) ([]models.FeedRecord, error)
	ListMortalityByBatch(ctx context.Context, batchID string) ([]models.MortalityEvent, error)
	ListSales(ctx context.Context, farmID string, from, to time.Time) ([]models.SaleRecord, error)
	ListExpenses(ctx context.Context, farmID string, from, to time.Time) ([]models.ExpenseRecord, error)
	SaveDailySummary(ctx context.Context, summary models.DailySummary) error
}

// Service aggregates raw records into daily farm summaries.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// GenerateDailySummary aggregates one calendar day of farm activity: feed
// consumed and losses across active batches, plus the day's financials.
func (s *Service) GenerateDailySummary(ctx context.Context, farmID string, day time.Time) (models.DailySummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	batches, err := s.store.ListActiveBatches(ctx, farmID)
	if err != nil {
		return models.DailySummary{}, fmt.Errorf("daily summary for %s: %w", start.Format(dateLayout), err)
	}

	var feedKg float64
	var deaths int
	for _, batch := range batches {
		feeds, err := s.store.ListFeedRecords(ctx, batch.ID, start, end)
		if err != nil {
			s.logger.Warn("feed records unavailable, batch skipped in summary",
				zap.String("batch_id", batch.ID), zap.Error(err))
			continue
		}
		for _, f := range feeds {
			if f.QuantityKg > 0 {
				feedKg += f.QuantityKg
			}
		}

		events, err := s.store.ListMortalityByBatch(ctx, batch.ID)
		if err != nil {
			s.logger.Warn("mortality records unavailable, batch skipped in summary",
				zap.String("batch_id", batch.ID), zap.Error(err))
			continue
		}
		for _, e := range events {
			if e.Quantity > 0 && !e.Date.Before(start) && !e.Date.After(end) {
				deaths += e.Quantity
			}
		}
	}

	sales, err := s.store.ListSales(ctx, farmID, start, end)
	if err != nil {
		return models.DailySummary{}, fmt.Errorf("daily summary for %s: %w", start.Format(dateLayout), err)
	}
	expenses, err := s.store.ListExpenses(ctx, farmID, start, end)
	if err != nil {
		return models.DailySummary{}, fmt.Errorf("daily summary for %s: %w", start.Format(dateLayout), err)
	}

	profit := engine.Profit(sales, expenses)

	return models.DailySummary{
		FarmID:         farmID,
		Date:           start,
		FeedConsumedKg: feedKg,
		Mortality:      deaths,
		Revenue:        profit.Revenue,
		Expenses:       profit.Expenses,
		Profit:         profit.Profit,
		ProfitMargin:   profit.ProfitMargin,
		CreatedAt:      time.Now(),
	}, nil
}

// SaveDailySummary generates and persists the summary for a day.
func (s *Service) SaveDailySummary(ctx context.Context, farmID string, day time.Time) (models.DailySummary, error) {
	summary, err := s.GenerateDailySummary(ctx, farmID, day)
	if err != nil {
		return models.DailySummary{}, err
	}
	if err := s.store.SaveDailySummary(ctx, summary); err != nil {
		return models.DailySummary{}, fmt.Errorf("save daily summary: %w", err)
	}
	s.logger.Info("daily summary saved",
		zap.String("farm_id", farmID),
		zap.String("date", summary.Date.Format(dateLayout)),
		zap.Float64("profit", summary.Profit))
	return summary, nil
}

// ProfitBetween aggregates financials for an arbitrary period.
func (s *Service) ProfitBetween(ctx context.Context, farmID string, from, to time.Time) (engine.ProfitSummary, error) {
	sales, err := s.store.ListSales(ctx, farmID, from, to)
	if err != nil {
		return engine.ProfitSummary{}, fmt.Errorf("profit between: %w", err)
	}
	expenses, err := s.store.ListExpenses(ctx, farmID, from, to)
	if err != nil {
		return engine.ProfitSummary{}, fmt.Errorf("profit between: %w", err)
	}
	return engine.Profit(sales, expenses), nil
}
