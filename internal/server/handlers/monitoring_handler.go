package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmwatch/internal/domain/models"
	monitoringsvc "github.com/mamadbah2/farmwatch/internal/service/monitoring"
	reportingsvc "github.com/mamadbah2/farmwatch/internal/service/reporting"
)

// MonitoringHandler serves derived metrics, alerts, and scores.
type MonitoringHandler struct {
	monitoring *monitoringsvc.Service
	reporting  *reportingsvc.Service
	windowDays int
	logger     *zap.Logger
}

// NewMonitoringHandler constructs the HTTP adapter for the monitoring
// services. windowDays is the default environmental-score window.
func NewMonitoringHandler(monitoring *monitoringsvc.Service, reporting *reportingsvc.Service, windowDays int, logger *zap.Logger) *MonitoringHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MonitoringHandler{
		monitoring: monitoring,
		reporting:  reporting,
		windowDays: windowDays,
		logger:     logger,
	}
}

// FarmAlerts returns the fresh alert scan for a farm, critical first.
func (h *MonitoringHandler) FarmAlerts(c *gin.Context) {
	farmID := c.Param("farmID")

	alerts, err := h.monitoring.FarmAlerts(c.Request.Context(), farmID)
	if err != nil {
		h.logger.Error("farm alert scan failed", zap.String("farm_id", farmID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "alert scan failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"farm_id": farmID, "alerts": alerts})
}

// FarmInventory returns every inventory item with stock percentage and
// low-stock state.
func (h *MonitoringHandler) FarmInventory(c *gin.Context) {
	farmID := c.Param("farmID")

	statuses, err := h.monitoring.InventoryStatus(c.Request.Context(), farmID)
	if err != nil {
		h.logger.Error("inventory status failed", zap.String("farm_id", farmID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "inventory status failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"farm_id": farmID, "items": statuses})
}

// BatchMetrics returns FCR, ADG, and the growth assessment for a batch.
func (h *MonitoringHandler) BatchMetrics(c *gin.Context) {
	batchID := c.Param("batchID")

	metrics, err := h.monitoring.BatchMetrics(c.Request.Context(), batchID)
	if err != nil {
		h.logger.Warn("batch metrics failed", zap.String("batch_id", batchID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// SensorStatus returns a sensor's derived health state.
func (h *MonitoringHandler) SensorStatus(c *gin.Context) {
	sensorID := c.Param("sensorID")

	health, err := h.monitoring.SensorStatus(c.Request.Context(), sensorID)
	if err != nil {
		h.logger.Warn("sensor status failed", zap.String("sensor_id", sensorID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "sensor not found"})
		return
	}

	c.JSON(http.StatusOK, health)
}

// StructureEnvironment returns the composite environmental score for a
// structure over the trailing window (?days= overrides the default).
func (h *MonitoringHandler) StructureEnvironment(c *gin.Context) {
	structureID := c.Param("structureID")
	days := h.windowDays
	if v := c.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	score, err := h.monitoring.StructureEnvironment(c.Request.Context(), structureID, days)
	if err != nil {
		h.logger.Error("environment score failed", zap.String("structure_id", structureID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "environment score failed"})
		return
	}

	c.JSON(http.StatusOK, score)
}

// MortalityCorrelation returns the joined sensor/mortality series for
// overlay charting (?type= selects the sensor type, ?days= the window).
func (h *MonitoringHandler) MortalityCorrelation(c *gin.Context) {
	structureID := c.Param("structureID")
	sensorType := models.SensorType(c.DefaultQuery("type", string(models.SensorTemperature)))
	days := 30
	if v := c.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	points, err := h.monitoring.MortalityCorrelation(c.Request.Context(), structureID, sensorType, days)
	if err != nil {
		h.logger.Error("correlation failed", zap.String("structure_id", structureID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "correlation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"structure_id": structureID, "type": sensorType, "points": points})
}

// FarmProfit aggregates financials for a period (?from=&to=, RFC3339 dates).
func (h *MonitoringHandler) FarmProfit(c *gin.Context) {
	farmID := c.Param("farmID")

	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	summary, err := h.reporting.ProfitBetween(c.Request.Context(), farmID, from, to)
	if err != nil {
		h.logger.Error("profit aggregation failed", zap.String("farm_id", farmID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profit aggregation failed"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
