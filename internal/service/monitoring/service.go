// Package monitoring (service) bridges storage and the derived-metrics
// engine: it fetches raw records, assembles engine inputs, and returns
// plain results to the HTTP layer and the scheduler.
package monitoring

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmwatch/internal/domain/models"
	engine "github.com/mamadbah2/farmwatch/internal/monitoring"
)

// Store is the slice of persistence this service reads from.
// *mongodb.MongoStore satisfies it.
type Store interface {
	GetBatch(ctx context.Context, batchID string) (models.Batch, error)
	ListActiveBatches(ctx context.Context, farmID string) ([]models.Batch, error)
	ListWeightSamples(ctx context.Context, batchID string) ([]models.WeightSample, error)
	ListFeedRecords(ctx context.Context, batchID string, from, to time.Time) ([]models.FeedRecord, error)
	LatestWaterReading(ctx context.Context, batchID string) (*models.WaterQualityReading, error)
	ListMortalityByBatch(ctx context.Context, batchID string) ([]models.MortalityEvent, error)
	ListMortalityByStructure(ctx context.Context, structureID string, from, to time.Time) ([]models.MortalityEvent, error)
	GetSensor(ctx context.Context, sensorID string) (models.Sensor, error)
	LatestSensorReading(ctx context.Context, sensorID string) (*models.SensorReading, error)
	ListStructureReadings(ctx context.Context, structureID string, from, to time.Time) ([]models.SensorReading, error)
	ListStructureReadingsByType(ctx context.Context, structureID string, sensorType models.SensorType, from, to time.Time) ([]models.SensorReading, error)
	ListInventory(ctx context.Context, farmID string) ([]models.InventoryItem, error)
}

// BatchMetrics is the derived performance snapshot for one batch. FCR and
// Gain are nil when undefined (insufficient samples or non-positive gain).
type BatchMetrics struct {
	BatchID     string              `json:"batch_id"`
	TotalFeedKg float64             `json:"total_feed_kg"`
	FCR         *float64            `json:"fcr"`
	Gain        *engine.GainSummary `json:"gain"`
	GrowthAlert *engine.Alert       `json:"growth_alert,omitempty"`
}

// InventoryStatus pairs an inventory item with its derived stock state.
type InventoryStatus struct {
	Item         models.InventoryItem `json:"item"`
	StockPercent float64              `json:"stock_percent"`
	Low          bool                 `json:"low"`
}

// SensorHealth pairs a sensor with its derived status.
type SensorHealth struct {
	Sensor      models.Sensor       `json:"sensor"`
	Status      models.SensorStatus `json:"status"`
	LastReading *time.Time          `json:"last_reading,omitempty"`
}

// Service runs the engine over persisted records.
type Service struct {
	store  Store
	cfg    engine.Config
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a monitoring service instance.
func NewService(store Store, cfg engine.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, cfg: cfg, logger: logger, now: time.Now}
}

// FarmAlerts runs the full alert scan for one farm: growth, water quality,
// mortality, and inventory checks across every active batch. A batch whose
// records fail to load is skipped and logged; the scan always completes.
func (s *Service) FarmAlerts(ctx context.Context, farmID string) ([]engine.Alert, error) {
	batches, err := s.store.ListActiveBatches(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("farm alerts: %w", err)
	}

	in := engine.ScanInput{Now: s.now()}

	for _, batch := range batches {
		bi, err := s.loadBatchInput(ctx, batch)
		if err != nil {
			s.logger.Warn("skipping batch in scan",
				zap.String("batch_id", batch.ID),
				zap.Error(err))
			continue
		}
		in.Batches = append(in.Batches, bi)
	}

	inventory, err := s.store.ListInventory(ctx, farmID)
	if err != nil {
		s.logger.Warn("inventory unavailable for scan",
			zap.String("farm_id", farmID),
			zap.Error(err))
	} else {
		in.Inventory = inventory
	}

	alerts := engine.Scan(s.cfg, in)
	s.logger.Info("farm scan completed",
		zap.String("farm_id", farmID),
		zap.Int("batches", len(in.Batches)),
		zap.Int("alerts", len(alerts)))
	return alerts, nil
}

func (s *Service) loadBatchInput(ctx context.Context, batch models.Batch) (engine.BatchInput, error) {
	samples, err := s.store.ListWeightSamples(ctx, batch.ID)
	if err != nil {
		return engine.BatchInput{}, err
	}

	var water *models.WaterQualityReading
	if batch.SupportsWaterQuality() {
		water, err = s.store.LatestWaterReading(ctx, batch.ID)
		if err != nil {
			return engine.BatchInput{}, err
		}
	}

	mortality, err := s.store.ListMortalityByBatch(ctx, batch.ID)
	if err != nil {
		return engine.BatchInput{}, err
	}

	return engine.BatchInput{
		Batch:         batch,
		WeightSamples: samples,
		LatestWater:   water,
		Mortality:     mortality,
	}, nil
}

// BatchMetrics computes FCR, ADG and the growth assessment for one batch.
func (s *Service) BatchMetrics(ctx context.Context, batchID string) (BatchMetrics, error) {
	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		return BatchMetrics{}, fmt.Errorf("batch metrics: %w", err)
	}

	samples, err := s.store.ListWeightSamples(ctx, batchID)
	if err != nil {
		return BatchMetrics{}, fmt.Errorf("batch metrics: %w", err)
	}

	feeds, err := s.store.ListFeedRecords(ctx, batchID, time.Time{}, time.Time{})
	if err != nil {
		return BatchMetrics{}, fmt.Errorf("batch metrics: %w", err)
	}

	var totalFeed float64
	for _, f := range feeds {
		if f.QuantityKg > 0 {
			totalFeed += f.QuantityKg
		}
	}

	metrics := BatchMetrics{BatchID: batchID, TotalFeedKg: totalFeed}

	gain := engine.AverageDailyGain(samples)
	if gain == nil {
		return metrics, nil
	}
	metrics.Gain = gain

	totalGain := engine.TotalWeightGain(
		samples[0].AverageWeightKg,
		samples[len(samples)-1].AverageWeightKg,
		batch.CurrentQuantity,
	)
	metrics.FCR = engine.FCR(totalFeed, totalGain)

	label := batch.Label
	if label == "" {
		label = batch.ID
	}
	metrics.GrowthAlert = engine.GrowthAlert(s.cfg, batch.ID, label, gain.ADG, batch.Species)

	return metrics, nil
}

// InventoryStatus derives stock percentage and low-stock state for every
// item a farm holds.
func (s *Service) InventoryStatus(ctx context.Context, farmID string) ([]InventoryStatus, error) {
	items, err := s.store.ListInventory(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("inventory status: %w", err)
	}

	statuses := make([]InventoryStatus, 0, len(items))
	for _, item := range items {
		statuses = append(statuses, InventoryStatus{
			Item:         item,
			StockPercent: engine.StockPercentage(item.Quantity, item.Capacity),
			Low:          engine.IsLowStock(item.Quantity, item.LowStockThreshold),
		})
	}
	return statuses, nil
}

// SensorStatus classifies one sensor's health from its latest reading age.
func (s *Service) SensorStatus(ctx context.Context, sensorID string) (SensorHealth, error) {
	sensor, err := s.store.GetSensor(ctx, sensorID)
	if err != nil {
		return SensorHealth{}, fmt.Errorf("sensor status: %w", err)
	}

	latest, err := s.store.LatestSensorReading(ctx, sensorID)
	if err != nil {
		return SensorHealth{}, fmt.Errorf("sensor status: %w", err)
	}

	health := SensorHealth{Sensor: sensor}
	var lastAt time.Time
	if latest != nil {
		lastAt = latest.RecordedAt
		health.LastReading = &latest.RecordedAt
	}
	health.Status = engine.ClassifySensorStatus(s.cfg, lastAt, sensor.PollingIntervalMinutes, s.now())

	return health, nil
}

// StructureEnvironment scores a structure's conditions over the trailing
// window of whole days.
func (s *Service) StructureEnvironment(ctx context.Context, structureID string, windowDays int) (engine.EnvironmentalScore, error) {
	now := s.now()
	from := now.AddDate(0, 0, -windowDays)

	readings, err := s.store.ListStructureReadings(ctx, structureID, from, now)
	if err != nil {
		return engine.EnvironmentalScore{}, fmt.Errorf("structure environment: %w", err)
	}

	return engine.ScoreEnvironment(s.cfg, readings), nil
}

// MortalityCorrelation joins one sensor type's readings with daily losses
// in a structure over the trailing window.
func (s *Service) MortalityCorrelation(ctx context.Context, structureID string, sensorType models.SensorType, windowDays int) ([]engine.SeriesPoint, error) {
	now := s.now()
	from := now.AddDate(0, 0, -windowDays)

	readings, err := s.store.ListStructureReadingsByType(ctx, structureID, sensorType, from, now)
	if err != nil {
		return nil, fmt.Errorf("mortality correlation: %w", err)
	}

	events, err := s.store.ListMortalityByStructure(ctx, structureID, from, now)
	if err != nil {
		return nil, fmt.Errorf("mortality correlation: %w", err)
	}

	return engine.CorrelateMortality(readings, events), nil
}
