package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmwatch/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(monitoring *handlers.MonitoringHandler, records *handlers.RecordsHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/farms/:farmID/alerts", monitoring.FarmAlerts)
	r.GET("/farms/:farmID/profit", monitoring.FarmProfit)
	r.GET("/farms/:farmID/inventory", monitoring.FarmInventory)
	r.GET("/batches/:batchID/metrics", monitoring.BatchMetrics)
	r.GET("/sensors/:sensorID/status", monitoring.SensorStatus)
	r.GET("/structures/:structureID/environment", monitoring.StructureEnvironment)
	r.GET("/structures/:structureID/correlation", monitoring.MortalityCorrelation)

	r.POST("/batches/:batchID/weights", records.AddWeightSample)
	r.POST("/batches/:batchID/feed", records.AddFeedRecord)
	r.POST("/batches/:batchID/mortality", records.AddMortalityEvent)
	r.POST("/batches/:batchID/water", records.AddWaterReading)
	r.POST("/batches/:batchID/import", records.ImportBatchHistory)
	r.POST("/sensors/:sensorID/readings", records.AddSensorReading)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
