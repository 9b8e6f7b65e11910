// Package importer converts legacy spreadsheet rows into FarmWatch
// records. Malformed rows are skipped and counted, never fatal.
package importer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmwatch/internal/domain/models"
	"github.com/mamadbah2/farmwatch/internal/repository/sheets"
)

// RecordWriter is the slice of persistence the importer needs.
// *mongodb.MongoStore satisfies it.
type RecordWriter interface {
	InsertWeightSample(ctx context.Context, sample models.WeightSample) error
	InsertFeedRecord(ctx context.Context, record models.FeedRecord) error
	InsertMortalityEvent(ctx context.Context, event models.MortalityEvent) error
}

const (
	weightsRange   = "Weights!A:D"
	feedRange      = "Feed!A:D"
	mortalityRange = "Mortality!A:C"
	dateLayout     = "2006-01-02"
)

// Result counts the outcome of one import run.
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Service pulls rows out of the legacy sheet and persists them.
type Service struct {
	source sheets.Source
	store  RecordWriter
	logger *zap.Logger
}

// NewService wires an importer instance.
func NewService(source sheets.Source, store RecordWriter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, store: store, logger: logger}
}

// ImportBatchHistory imports a batch's historical weight, feed, and
// mortality rows. Sheet layout: Weights(date, sample size, avg kg),
// Feed(date, type, kg, cost), Mortality(date, quantity, cause).
func (s *Service) ImportBatchHistory(ctx context.Context, batchID string) (Result, error) {
	var result Result

	if err := s.importWeights(ctx, batchID, &result); err != nil {
		return result, err
	}
	if err := s.importFeed(ctx, batchID, &result); err != nil {
		return result, err
	}
	if err := s.importMortality(ctx, batchID, &result); err != nil {
		return result, err
	}

	s.logger.Info("sheet import finished",
		zap.String("batch_id", batchID),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *Service) importWeights(ctx context.Context, batchID string, result *Result) error {
	rows, err := s.source.ReadRange(ctx, weightsRange)
	if err != nil {
		return fmt.Errorf("load weights range: %w", err)
	}

	for _, row := range rows {
		if len(row) < 3 {
			result.Skipped++
			continue
		}
		date, err := parseDate(row[0])
		if err != nil {
			s.logger.Debug("skip weight row with invalid date", zap.Any("value", row[0]), zap.Error(err))
			result.Skipped++
			continue
		}
		size, err := parseInt(row[1])
		if err != nil || size <= 0 {
			result.Skipped++
			continue
		}
		avgKg, err := parseFloat(row[2])
		if err != nil || avgKg <= 0 {
			result.Skipped++
			continue
		}

		sample := models.WeightSample{BatchID: batchID, Date: date, SampleSize: size, AverageWeightKg: avgKg}
		if err := s.store.InsertWeightSample(ctx, sample); err != nil {
			return fmt.Errorf("persist weight sample: %w", err)
		}
		result.Imported++
	}
	return nil
}

func (s *Service) importFeed(ctx context.Context, batchID string, result *Result) error {
	rows, err := s.source.ReadRange(ctx, feedRange)
	if err != nil {
		return fmt.Errorf("load feed range: %w", err)
	}

	for _, row := range rows {
		if len(row) < 3 {
			result.Skipped++
			continue
		}
		date, err := parseDate(row[0])
		if err != nil {
			result.Skipped++
			continue
		}
		qty, err := parseFloat(row[2])
		if err != nil || qty < 0 {
			s.logger.Debug("skip feed row with invalid quantity", zap.Any("value", row[2]), zap.Error(err))
			result.Skipped++
			continue
		}

		record := models.FeedRecord{BatchID: batchID, Date: date, FeedType: fmt.Sprint(row[1]), QuantityKg: qty}
		if len(row) > 3 {
			if cost, err := parseFloat(row[3]); err == nil && cost >= 0 {
				record.Cost = cost
			}
		}
		if err := s.store.InsertFeedRecord(ctx, record); err != nil {
			return fmt.Errorf("persist feed record: %w", err)
		}
		result.Imported++
	}
	return nil
}

func (s *Service) importMortality(ctx context.Context, batchID string, result *Result) error {
	rows, err := s.source.ReadRange(ctx, mortalityRange)
	if err != nil {
		return fmt.Errorf("load mortality range: %w", err)
	}

	for _, row := range rows {
		if len(row) < 2 {
			result.Skipped++
			continue
		}
		date, err := parseDate(row[0])
		if err != nil {
			result.Skipped++
			continue
		}
		qty, err := parseInt(row[1])
		if err != nil || qty <= 0 {
			s.logger.Debug("skip mortality row with invalid quantity", zap.Any("value", row[1]), zap.Error(err))
			result.Skipped++
			continue
		}

		event := models.MortalityEvent{BatchID: batchID, Date: date, Quantity: qty}
		if len(row) > 2 {
			event.Cause = fmt.Sprint(row[2])
		}
		if err := s.store.InsertMortalityEvent(ctx, event); err != nil {
			return fmt.Errorf("persist mortality event: %w", err)
		}
		result.Imported++
	}
	return nil
}

func parseDate(value interface{}) (time.Time, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(str) > 10 {
		str = str[:10]
	}
	return time.Parse(dateLayout, str)
}

func parseInt(value interface{}) (int, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.Atoi(str)
}

func parseFloat(value interface{}) (float64, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(str, 64)
}
