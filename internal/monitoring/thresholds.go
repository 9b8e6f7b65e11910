package monitoring

import (
	"fmt"

	"github.com/mamadbah2/farmwatch/internal/domain/models"
)

// EvaluateWater checks a water-quality reading against the configured safe
// bands and lists every violated bound with the measured value and the
// limit. Check order is fixed: pH low, pH high, temperature low,
// temperature high, dissolved oxygen low, ammonia high.
func EvaluateWater(cfg Config, r models.WaterQualityReading) []string {
	w := cfg.Water
	var issues []string

	if r.PH < w.PHMin {
		issues = append(issues, fmt.Sprintf("pH too low (%g, min: %g)", r.PH, w.PHMin))
	}
	if r.PH > w.PHMax {
		issues = append(issues, fmt.Sprintf("pH too high (%g, max: %g)", r.PH, w.PHMax))
	}
	if r.TemperatureCelsius < w.TemperatureMin {
		issues = append(issues, fmt.Sprintf("temperature too low (%g°C, min: %g°C)", r.TemperatureCelsius, w.TemperatureMin))
	}
	if r.TemperatureCelsius > w.TemperatureMax {
		issues = append(issues, fmt.Sprintf("temperature too high (%g°C, max: %g°C)", r.TemperatureCelsius, w.TemperatureMax))
	}
	if r.DissolvedOxygenMgL < w.DissolvedOxygenMin {
		issues = append(issues, fmt.Sprintf("dissolved oxygen too low (%g mg/L, min: %g mg/L)", r.DissolvedOxygenMgL, w.DissolvedOxygenMin))
	}
	if r.AmmoniaMgL > w.AmmoniaMax {
		issues = append(issues, fmt.Sprintf("ammonia too high (%g mg/L, max: %g mg/L)", r.AmmoniaMgL, w.AmmoniaMax))
	}

	return issues
}

// IsWaterAlert reports whether the reading violates any safe band.
func IsWaterAlert(cfg Config, r models.WaterQualityReading) bool {
	return len(EvaluateWater(cfg, r)) > 0
}

// SeverityForIssueCount escalates to critical when more bounds are violated
// than the configured cutoff, otherwise warning.
func SeverityForIssueCount(cfg Config, issueCount int) Severity {
	if issueCount > cfg.CriticalIssueCount {
		return SeverityCritical
	}
	return SeverityWarning
}

// SensorRangeFor returns the configured safe band for a sensor type. The
// second return is false for unmonitored types.
func SensorRangeFor(cfg Config, t models.SensorType) (Range, bool) {
	r, ok := cfg.SensorRanges[t]
	return r, ok
}

// EvaluateSensorValue checks one telemetry value against its type's safe
// band. Unknown types yield no issues; a missing table entry is a
// configuration miss, not an alert condition.
func EvaluateSensorValue(cfg Config, t models.SensorType, value float64) []string {
	r, ok := cfg.SensorRanges[t]
	if !ok {
		return nil
	}

	var issues []string
	if value < r.Min {
		issues = append(issues, fmt.Sprintf("%s below safe range (%g, min: %g)", t, value, r.Min))
	}
	if value > r.Max {
		issues = append(issues, fmt.Sprintf("%s above safe range (%g, max: %g)", t, value, r.Max))
	}
	return issues
}
