package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmwatch/internal/domain/models"
	importersvc "github.com/mamadbah2/farmwatch/internal/service/importer"
)

// RecordStore is the slice of persistence the ingestion endpoints write
// through. *mongodb.MongoStore satisfies it.
type RecordStore interface {
	InsertWeightSample(ctx context.Context, sample models.WeightSample) error
	InsertFeedRecord(ctx context.Context, record models.FeedRecord) error
	InsertMortalityEvent(ctx context.Context, event models.MortalityEvent) error
	InsertWaterReading(ctx context.Context, reading models.WaterQualityReading) error
	InsertSensorReading(ctx context.Context, reading models.SensorReading) error
}

// RecordsHandler ingests raw operational records.
type RecordsHandler struct {
	store    RecordStore
	importer *importersvc.Service
	logger   *zap.Logger
}

// NewRecordsHandler constructs the record-ingestion HTTP adapter. The
// importer may be nil when the sheets integration is not configured.
func NewRecordsHandler(store RecordStore, importer *importersvc.Service, logger *zap.Logger) *RecordsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsHandler{store: store, importer: importer, logger: logger}
}

type weightSampleRequest struct {
	Date            time.Time `json:"date" binding:"required"`
	SampleSize      int       `json:"sample_size" binding:"required,gt=0"`
	AverageWeightKg float64   `json:"average_weight_kg" binding:"required,gt=0"`
}

// AddWeightSample records a weight measurement for a batch.
func (h *RecordsHandler) AddWeightSample(c *gin.Context) {
	var req weightSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid weight sample"})
		return
	}

	sample := models.WeightSample{
		BatchID:         c.Param("batchID"),
		Date:            req.Date,
		SampleSize:      req.SampleSize,
		AverageWeightKg: req.AverageWeightKg,
	}
	if err := h.store.InsertWeightSample(c.Request.Context(), sample); err != nil {
		h.logger.Error("failed saving weight sample", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save record"})
		return
	}

	c.Status(http.StatusCreated)
}

type feedRecordRequest struct {
	Date       time.Time `json:"date" binding:"required"`
	FeedType   string    `json:"feed_type" binding:"required"`
	QuantityKg float64   `json:"quantity_kg" binding:"required,gte=0"`
	Cost       float64   `json:"cost" binding:"gte=0"`
}

// AddFeedRecord records feed given to a batch.
func (h *RecordsHandler) AddFeedRecord(c *gin.Context) {
	var req feedRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feed record"})
		return
	}

	record := models.FeedRecord{
		BatchID:    c.Param("batchID"),
		Date:       req.Date,
		FeedType:   req.FeedType,
		QuantityKg: req.QuantityKg,
		Cost:       req.Cost,
	}
	if err := h.store.InsertFeedRecord(c.Request.Context(), record); err != nil {
		h.logger.Error("failed saving feed record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save record"})
		return
	}

	c.Status(http.StatusCreated)
}

type mortalityRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	Quantity    int       `json:"quantity" binding:"required,gt=0"`
	Cause       string    `json:"cause"`
	StructureID string    `json:"structure_id"`
}

// AddMortalityEvent records animal losses for a batch.
func (h *RecordsHandler) AddMortalityEvent(c *gin.Context) {
	var req mortalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mortality event"})
		return
	}

	event := models.MortalityEvent{
		BatchID:     c.Param("batchID"),
		StructureID: req.StructureID,
		Date:        req.Date,
		Quantity:    req.Quantity,
		Cause:       req.Cause,
	}
	if err := h.store.InsertMortalityEvent(c.Request.Context(), event); err != nil {
		h.logger.Error("failed saving mortality event", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save record"})
		return
	}

	c.Status(http.StatusCreated)
}

type waterReadingRequest struct {
	Date               time.Time `json:"date" binding:"required"`
	PH                 float64   `json:"ph" binding:"required"`
	TemperatureCelsius float64   `json:"temperature_celsius" binding:"required"`
	DissolvedOxygenMgL float64   `json:"dissolved_oxygen_mgl" binding:"required"`
	AmmoniaMgL         float64   `json:"ammonia_mgl"`
}

// AddWaterReading records a manual water-chemistry sample for a batch.
func (h *RecordsHandler) AddWaterReading(c *gin.Context) {
	var req waterReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid water reading"})
		return
	}

	reading := models.WaterQualityReading{
		BatchID:            c.Param("batchID"),
		Date:               req.Date,
		PH:                 req.PH,
		TemperatureCelsius: req.TemperatureCelsius,
		DissolvedOxygenMgL: req.DissolvedOxygenMgL,
		AmmoniaMgL:         req.AmmoniaMgL,
	}
	if err := h.store.InsertWaterReading(c.Request.Context(), reading); err != nil {
		h.logger.Error("failed saving water reading", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save record"})
		return
	}

	c.Status(http.StatusCreated)
}

type sensorReadingRequest struct {
	StructureID string            `json:"structure_id" binding:"required"`
	Type        models.SensorType `json:"type" binding:"required"`
	Value       float64           `json:"value"`
	RecordedAt  time.Time         `json:"recorded_at" binding:"required"`
}

// AddSensorReading ingests one telemetry sample for a sensor.
func (h *RecordsHandler) AddSensorReading(c *gin.Context) {
	var req sensorReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sensor reading"})
		return
	}

	reading := models.SensorReading{
		SensorID:    c.Param("sensorID"),
		StructureID: req.StructureID,
		Type:        req.Type,
		Value:       req.Value,
		RecordedAt:  req.RecordedAt,
	}
	if err := h.store.InsertSensorReading(c.Request.Context(), reading); err != nil {
		h.logger.Error("failed saving sensor reading", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save record"})
		return
	}

	c.Status(http.StatusCreated)
}

// ImportBatchHistory triggers a legacy-spreadsheet import for a batch.
func (h *RecordsHandler) ImportBatchHistory(c *gin.Context) {
	if h.importer == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "sheets import is not configured"})
		return
	}

	result, err := h.importer.ImportBatchHistory(c.Request.Context(), c.Param("batchID"))
	if err != nil {
		h.logger.Error("sheet import failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "import failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
