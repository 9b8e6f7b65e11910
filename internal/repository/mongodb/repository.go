package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/farmwatch/internal/domain/models"
)

const (
	collBatches        = "batches"
	collWeightSamples  = "weight_samples"
	collFeedRecords    = "feed_records"
	collMortality      = "mortality_events"
	collWaterQuality   = "water_quality_readings"
	collSensors        = "sensors"
	collSensorReadings = "sensor_readings"
	collInventory      = "inventory_items"
	collSales          = "sales"
	collExpenses       = "expenses"
	collSummaries      = "daily_summaries"
)

// Store defines the persistence operations the services depend on.
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
	ListSales(ctx context.Context, farmID string, from, to time.Time) ([]models.SaleRecord, error)
	ListExpenses(ctx context.Context, farmID string, from, to time.Time) ([]models.ExpenseRecord, error)

	InsertWeightSample(ctx context.Context, sample models.WeightSample) error
	InsertFeedRecord(ctx context.Context, record models.FeedRecord) error
	InsertMortalityEvent(ctx context.Context, event models.MortalityEvent) error
	InsertWaterReading(ctx context.Context, reading models.WaterQualityReading) error
	InsertSensorReading(ctx context.Context, reading models.SensorReading) error

	SaveDailySummary(ctx context.Context, summary models.DailySummary) error
}

var _ Store = (*MongoStore)(nil)

// MongoStore implements Store on top of the official MongoDB driver.
type MongoStore struct {
	client *mongo.Client
	dbName string
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoStore{client: client, dbName: dbName}, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) coll(name string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(name)
}

// GetBatch loads one batch by id.
func (s *MongoStore) GetBatch(ctx context.Context, batchID string) (models.Batch, error) {
	var batch models.Batch
	err := s.coll(collBatches).FindOne(ctx, bson.M{"_id": batchID}).Decode(&batch)
	if err != nil {
		return models.Batch{}, fmt.Errorf("load batch %s: %w", batchID, err)
	}
	return batch, nil
}

// ListActiveBatches returns the farm's batches still under management.
func (s *MongoStore) ListActiveBatches(ctx context.Context, farmID string) ([]models.Batch, error) {
	filter := bson.M{"farm_id": farmID, "status": models.BatchActive}
	var batches []models.Batch
	if err := s.findAll(ctx, collBatches, filter, nil, &batches); err != nil {
		return nil, fmt.Errorf("list active batches for farm %s: %w", farmID, err)
	}
	return batches, nil
}

// ListWeightSamples returns a batch's samples ordered ascending by date.
func (s *MongoStore) ListWeightSamples(ctx context.Context, batchID string) ([]models.WeightSample, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	var samples []models.WeightSample
	if err := s.findAll(ctx, collWeightSamples, bson.M{"batch_id": batchID}, opts, &samples); err != nil {
		return nil, fmt.Errorf("list weight samples for batch %s: %w", batchID, err)
	}
	return samples, nil
}

// ListFeedRecords returns feed given to a batch within [from, to].
func (s *MongoStore) ListFeedRecords(ctx context.Context, batchID string, from, to time.Time) ([]models.FeedRecord, error) {
	filter := bson.M{"batch_id": batchID}
	if dateRange := rangeFilter(from, to); dateRange != nil {
		filter["date"] = dateRange
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	var records []models.FeedRecord
	if err := s.findAll(ctx, collFeedRecords, filter, opts, &records); err != nil {
		return nil, fmt.Errorf("list feed records for batch %s: %w", batchID, err)
	}
	return records, nil
}

// LatestWaterReading returns the most recent water sample for a batch, or
// nil when the batch has none.
func (s *MongoStore) LatestWaterReading(ctx context.Context, batchID string) (*models.WaterQualityReading, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})
	var reading models.WaterQualityReading
	err := s.coll(collWaterQuality).FindOne(ctx, bson.M{"batch_id": batchID}, opts).Decode(&reading)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest water reading for batch %s: %w", batchID, err)
	}
	return &reading, nil
}

// ListMortalityByBatch returns every loss event recorded for a batch.
func (s *MongoStore) ListMortalityByBatch(ctx context.Context, batchID string) ([]models.MortalityEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	var events []models.MortalityEvent
	if err := s.findAll(ctx, collMortality, bson.M{"batch_id": batchID}, opts, &events); err != nil {
		return nil, fmt.Errorf("list mortality for batch %s: %w", batchID, err)
	}
	return events, nil
}

// ListMortalityByStructure returns loss events in a structure within [from, to].
func (s *MongoStore) ListMortalityByStructure(ctx context.Context, structureID string, from, to time.Time) ([]models.MortalityEvent, error) {
	filter := bson.M{"structure_id": structureID}
	if dateRange := rangeFilter(from, to); dateRange != nil {
		filter["date"] = dateRange
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	var events []models.MortalityEvent
	if err := s.findAll(ctx, collMortality, filter, opts, &events); err != nil {
		return nil, fmt.Errorf("list mortality for structure %s: %w", structureID, err)
	}
	return events, nil
}

// GetSensor loads one sensor configuration by id.
func (s *MongoStore) GetSensor(ctx context.Context, sensorID string) (models.Sensor, error) {
	var sensor models.Sensor
	err := s.coll(collSensors).FindOne(ctx, bson.M{"_id": sensorID}).Decode(&sensor)
	if err != nil {
		return models.Sensor{}, fmt.Errorf("load sensor %s: %w", sensorID, err)
	}
	return sensor, nil
}

// LatestSensorReading returns the newest reading for a sensor, or nil when
// the device has never reported.
func (s *MongoStore) LatestSensorReading(ctx context.Context, sensorID string) (*models.SensorReading, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "recorded_at", Value: -1}})
	var reading models.SensorReading
	err := s.coll(collSensorReadings).FindOne(ctx, bson.M{"sensor_id": sensorID}, opts).Decode(&reading)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest reading for sensor %s: %w", sensorID, err)
	}
	return &reading, nil
}

// ListStructureReadings returns every reading recorded in a structure
// within [from, to], oldest first.
func (s *MongoStore) ListStructureReadings(ctx context.Context, structureID string, from, to time.Time) ([]models.SensorReading, error) {
	filter := bson.M{"structure_id": structureID}
	if dateRange := rangeFilter(from, to); dateRange != nil {
		filter["recorded_at"] = dateRange
	}
	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: 1}})
	var readings []models.SensorReading
	if err := s.findAll(ctx, collSensorReadings, filter, opts, &readings); err != nil {
		return nil, fmt.Errorf("list readings for structure %s: %w", structureID, err)
	}
	return readings, nil
}

// ListStructureReadingsByType narrows ListStructureReadings to one sensor type.
func (s *MongoStore) ListStructureReadingsByType(ctx context.Context, structureID string, sensorType models.SensorType, from, to time.Time) ([]models.SensorReading, error) {
	filter := bson.M{"structure_id": structureID, "type": sensorType}
	if dateRange := rangeFilter(from, to); dateRange != nil {
		filter["recorded_at"] = dateRange
	}
	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: 1}})
	var readings []models.SensorReading
	if err := s.findAll(ctx, collSensorReadings, filter, opts, &readings); err != nil {
		return nil, fmt.Errorf("list %s readings for structure %s: %w", sensorType, structureID, err)
	}
	return readings, nil
}

// ListInventory returns every inventory item held by a farm.
func (s *MongoStore) ListInventory(ctx context.Context, farmID string) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.findAll(ctx, collInventory, bson.M{"farm_id": farmID}, nil, &items); err != nil {
		return nil, fmt.Errorf("list inventory for farm %s: %w", farmID, err)
	}
	return items, nil
}

// ListSales returns a farm's sales within [from, to].
func (s *MongoStore) ListSales(ctx context.Context, farmID string, from, to time.Time) ([]models.SaleRecord, error) {
	filter := bson.M{"farm_id": farmID}
	if dateRange := rangeFilter(from, to); dateRange != nil {
		filter["date"] = dateRange
	}
	var sales []models.SaleRecord
	if err := s.findAll(ctx, collSales, filter, nil, &sales); err != nil {
		return nil, fmt.Errorf("list sales for farm %s: %w", farmID, err)
	}
	return sales, nil
}

// ListExpenses returns a farm's expenses within [from, to].
func (s *MongoStore) ListExpenses(ctx context.Context, farmID string, from, to time.Time) ([]models.ExpenseRecord, error) {
	filter := bson.M{"farm_id": farmID}
	if dateRange := rangeFilter(from, to); dateRange != nil {
		filter["date"] = dateRange
	}
	var expenses []models.ExpenseRecord
	if err := s.findAll(ctx, collExpenses, filter, nil, &expenses); err != nil {
		return nil, fmt.Errorf("list expenses for farm %s: %w", farmID, err)
	}
	return expenses, nil
}

// InsertWeightSample stores a new weight sample.
func (s *MongoStore) InsertWeightSample(ctx context.Context, sample models.WeightSample) error {
	if _, err := s.coll(collWeightSamples).InsertOne(ctx, sample); err != nil {
		return fmt.Errorf("insert weight sample: %w", err)
	}
	return nil
}

// InsertFeedRecord stores a new feed record.
func (s *MongoStore) InsertFeedRecord(ctx context.Context, record models.FeedRecord) error {
	if _, err := s.coll(collFeedRecords).InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert feed record: %w", err)
	}
	return nil
}

// InsertMortalityEvent stores a new mortality event.
func (s *MongoStore) InsertMortalityEvent(ctx context.Context, event models.MortalityEvent) error {
	if _, err := s.coll(collMortality).InsertOne(ctx, event); err != nil {
		return fmt.Errorf("insert mortality event: %w", err)
	}
	return nil
}

// InsertWaterReading stores a new water-quality reading.
func (s *MongoStore) InsertWaterReading(ctx context.Context, reading models.WaterQualityReading) error {
	if _, err := s.coll(collWaterQuality).InsertOne(ctx, reading); err != nil {
		return fmt.Errorf("insert water reading: %w", err)
	}
	return nil
}

// InsertSensorReading stores a new telemetry sample.
func (s *MongoStore) InsertSensorReading(ctx context.Context, reading models.SensorReading) error {
	if _, err := s.coll(collSensorReadings).InsertOne(ctx, reading); err != nil {
		return fmt.Errorf("insert sensor reading: %w", err)
	}
	return nil
}

// SaveDailySummary stores an aggregated daily summary.
func (s *MongoStore) SaveDailySummary(ctx context.Context, summary models.DailySummary) error {
	if _, err := s.coll(collSummaries).InsertOne(ctx, summary); err != nil {
		return fmt.Errorf("insert daily summary: %w", err)
	}
	return nil
}

func (s *MongoStore) findAll(ctx context.Context, collection string, filter bson.M, opts *options.FindOptions, out interface{}) error {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = s.coll(collection).Find(ctx, filter, opts)
	} else {
		cursor, err = s.coll(collection).Find(ctx, filter)
	}
	if err != nil {
		return err
	}
	defer func() { _ = cursor.Close(ctx) }()
	return cursor.All(ctx, out)
}

func rangeFilter(from, to time.Time) bson.M {
	m := bson.M{}
	if !from.IsZero() {
		m["$gte"] = from
	}
	if !to.IsZero() {
		m["$lte"] = to
	}
	if len(m) == 0 {
		return nil
	}
	return m
}
