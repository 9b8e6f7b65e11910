package monitoring

import (
	"time"

	"github.com/mamadbah2/farmwatch/internal/domain/models"
)

// ClassifySensorStatus derives device health from the age of its latest
// reading relative to the configured polling interval: online within the
// stale multiplier, stale within the offline multiplier, offline beyond
// that or when the sensor never reported. The multipliers are empirical
// defaults (2x and 4x) carried in the config.
func ClassifySensorStatus(cfg Config, lastReading time.Time, pollingIntervalMinutes int, now time.Time) models.SensorStatus {
	if lastReading.IsZero() {
		return models.SensorOffline
	}

	if pollingIntervalMinutes <= 0 {
		pollingIntervalMinutes = cfg.DefaultPollingMinutes
	}
	interval := time.Duration(pollingIntervalMinutes) * time.Minute

	age := now.Sub(lastReading)
	switch {
	case age <= time.Duration(cfg.StaleAfterIntervals*float64(interval)):
		return models.SensorOnline
	case age <= time.Duration(cfg.OfflineAfterIntervals*float64(interval)):
		return models.SensorStale
	default:
		return models.SensorOffline
	}
}
