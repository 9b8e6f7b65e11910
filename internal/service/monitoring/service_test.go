package monitoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mamadbah2/farmwatch/internal/domain/models"
	engine "github.com/mamadbah2/farmwatch/internal/monitoring"
)

type fakeStore struct {
	batches       map[string]models.Batch
	activeBatches []models.Batch
	samples       map[string][]models.WeightSample
	feeds         map[string][]models.FeedRecord
	water         map[string]*models.WaterQualityReading
	mortality     map[string][]models.MortalityEvent
	inventory     []models.InventoryItem
	sensors       map[string]models.Sensor
	latestReading map[string]*models.SensorReading
	readings      []models.SensorReading

	failSamplesFor string
}

func (f *fakeStore) GetBatch(_ context.Context, id string) (models.Batch, error) {
	b, ok := f.batches[id]
	if !ok {
		return models.Batch{}, errors.New("batch not found")
	}
	return b, nil
}

func (f *fakeStore) ListActiveBatches(context.Context, string) ([]models.Batch, error) {
	return f.activeBatches, nil
}

func (f *fakeStore) ListWeightSamples(_ context.Context, batchID string) ([]models.WeightSample, error) {
	if batchID == f.failSamplesFor {
		return nil, errors.New("samples unavailable")
	}
	return f.samples[batchID], nil
}

func (f *fakeStore) ListFeedRecords(_ context.Context, batchID string, _, _ time.Time) ([]models.FeedRecord, error) {
	return f.feeds[batchID], nil
}

func (f *fakeStore) LatestWaterReading(_ context.Context, batchID string) (*models.WaterQualityReading, error) {
	return f.water[batchID], nil
}

func (f *fakeStore) ListMortalityByBatch(_ context.Context, batchID string) ([]models.MortalityEvent, error) {
	return f.mortality[batchID], nil
}

func (f *fakeStore) ListMortalityByStructure(context.Context, string, time.Time, time.Time) ([]models.MortalityEvent, error) {
	return nil, nil
}

func (f *fakeStore) GetSensor(_ context.Context, id string) (models.Sensor, error) {
	s, ok := f.sensors[id]
	if !ok {
		return models.Sensor{}, errors.New("sensor not found")
	}
	return s, nil
}

func (f *fakeStore) LatestSensorReading(_ context.Context, id string) (*models.SensorReading, error) {
	return f.latestReading[id], nil
}

func (f *fakeStore) ListStructureReadings(context.Context, string, time.Time, time.Time) ([]models.SensorReading, error) {
	return f.readings, nil
}

func (f *fakeStore) ListStructureReadingsByType(context.Context, string, models.SensorType, time.Time, time.Time) ([]models.SensorReading, error) {
	return f.readings, nil
}

func (f *fakeStore) ListInventory(context.Context, string) ([]models.InventoryItem, error) {
	return f.inventory, nil
}

func testService(store *fakeStore, now time.Time) *Service {
	svc := NewService(store, engine.DefaultConfig(), nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestFarmAlertsSkipsFailingBatch(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sick := models.Batch{ID: "b-sick", Species: models.SpeciesBroiler, LivestockType: models.LivestockPoultry, CurrentQuantity: 90, Status: models.BatchActive}
	broken := models.Batch{ID: "b-broken", Species: models.SpeciesBroiler, LivestockType: models.LivestockPoultry, CurrentQuantity: 100, Status: models.BatchActive}

	store := &fakeStore{
		activeBatches:  []models.Batch{broken, sick},
		failSamplesFor: "b-broken",
		mortality: map[string][]models.MortalityEvent{
			"b-sick": {{BatchID: "b-sick", Date: now.AddDate(0, 0, -3), Quantity: 10}},
		},
	}

	alerts, err := testService(store, now).FarmAlerts(context.Background(), "farm1")
	if err != nil {
		t.Fatalf("farm alerts: %v", err)
	}
	// 10 of 100 initial lost = 10%, critical; the broken batch is skipped.
	if len(alerts) != 1 {
		t.Fatalf("want 1 alert, got %+v", alerts)
	}
	if alerts[0].SubjectID != "b-sick" || alerts[0].Category != engine.CategoryMortality {
		t.Fatalf("unexpected alert: %+v", alerts[0])
	}
}

func TestBatchMetricsComputesFCR(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	day0 := now.AddDate(0, 0, -10)
	store := &fakeStore{
		batches: map[string]models.Batch{
			"b1": {ID: "b1", Species: models.SpeciesBroiler, LivestockType: models.LivestockPoultry, CurrentQuantity: 1000},
		},
		samples: map[string][]models.WeightSample{
			"b1": {
				{BatchID: "b1", Date: day0, AverageWeightKg: 0.5},
				{BatchID: "b1", Date: now, AverageWeightKg: 1.5},
			},
		},
		feeds: map[string][]models.FeedRecord{
			"b1": {{BatchID: "b1", QuantityKg: 1500}, {BatchID: "b1", QuantityKg: 500}},
		},
	}

	metrics, err := testService(store, now).BatchMetrics(context.Background(), "b1")
	if err != nil {
		t.Fatalf("batch metrics: %v", err)
	}
	if metrics.TotalFeedKg != 2000 {
		t.Fatalf("total feed: want 2000, got %v", metrics.TotalFeedKg)
	}
	// 1 kg gain per bird over 1000 birds with 2000 kg feed -> FCR 2.00.
	if metrics.FCR == nil || *metrics.FCR != 2.00 {
		t.Fatalf("fcr: want 2.00, got %v", metrics.FCR)
	}
	if metrics.Gain == nil || metrics.Gain.ADG != 0.1 {
		t.Fatalf("gain: want ADG 0.1, got %+v", metrics.Gain)
	}
}

func TestBatchMetricsUndefinedWithOneSample(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{
		batches: map[string]models.Batch{"b1": {ID: "b1", CurrentQuantity: 100}},
		samples: map[string][]models.WeightSample{
			"b1": {{BatchID: "b1", Date: now, AverageWeightKg: 0.5}},
		},
	}

	metrics, err := testService(store, now).BatchMetrics(context.Background(), "b1")
	if err != nil {
		t.Fatalf("batch metrics: %v", err)
	}
	if metrics.FCR != nil || metrics.Gain != nil {
		t.Fatalf("single sample must leave metrics undefined: %+v", metrics)
	}
}

func TestSensorStatusNeverReported(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{
		sensors: map[string]models.Sensor{
			"s1": {ID: "s1", Type: models.SensorTemperature, PollingIntervalMinutes: 10},
		},
	}

	health, err := testService(store, now).SensorStatus(context.Background(), "s1")
	if err != nil {
		t.Fatalf("sensor status: %v", err)
	}
	if health.Status != models.SensorOffline || health.LastReading != nil {
		t.Fatalf("silent sensor must be offline: %+v", health)
	}
}

func TestSensorStatusOnline(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	at := now.Add(-5 * time.Minute)
	store := &fakeStore{
		sensors: map[string]models.Sensor{
			"s1": {ID: "s1", Type: models.SensorTemperature, PollingIntervalMinutes: 10},
		},
		latestReading: map[string]*models.SensorReading{
			"s1": {SensorID: "s1", Value: 26, RecordedAt: at},
		},
	}

	health, err := testService(store, now).SensorStatus(context.Background(), "s1")
	if err != nil {
		t.Fatalf("sensor status: %v", err)
	}
	if health.Status != models.SensorOnline {
		t.Fatalf("want online, got %s", health.Status)
	}
	if health.LastReading == nil || !health.LastReading.Equal(at) {
		t.Fatalf("last reading not carried: %+v", health)
	}
}

func TestInventoryStatus(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{
		inventory: []models.InventoryItem{
			{ID: "i1", Name: "Starter feed", Kind: models.InventoryFeed, Quantity: 25, Capacity: 100, LowStockThreshold: 30},
			{ID: "i2", Name: "Vitamins", Kind: models.InventoryMedication, Quantity: 80, Capacity: 100, LowStockThreshold: 20},
		},
	}

	statuses, err := testService(store, now).InventoryStatus(context.Background(), "farm1")
	if err != nil {
		t.Fatalf("inventory status: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("want 2 items, got %d", len(statuses))
	}
	if statuses[0].StockPercent != 25.0 || !statuses[0].Low {
		t.Fatalf("feed item: %+v", statuses[0])
	}
	if statuses[1].StockPercent != 80.0 || statuses[1].Low {
		t.Fatalf("medication item: %+v", statuses[1])
	}
}

func TestStructureEnvironmentEmptyWindow(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	score, err := testService(&fakeStore{}, now).StructureEnvironment(context.Background(), "st1", 7)
	if err != nil {
		t.Fatalf("structure environment: %v", err)
	}
	if score.Score != nil {
		t.Fatalf("empty window must score nil, got %v", *score.Score)
	}
}
