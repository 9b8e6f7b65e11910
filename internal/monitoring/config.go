package monitoring

import "github.com/mamadbah2/farmwatch/internal/domain/models"

// Range is an inclusive safe band for a sensor parameter. Readings outside
// it are threshold violations; the bounds double as chart reference lines.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// WaterThresholds holds the safe water-chemistry bands for aquatic batches.
type WaterThresholds struct {
	PHMin              float64
	PHMax              float64
	TemperatureMin     float64
	TemperatureMax     float64
	DissolvedOxygenMin float64
	AmmoniaMax         float64
}

// Config carries every tunable the engine uses. Calculators never consult
// hidden package state; callers pass a Config so per-farm overrides and
// deterministic tests are possible.
type Config struct {
	// ExpectedADG maps species to the expected average daily gain in
	// kg/day. Unknown species fall back to DefaultExpectedADG.
	ExpectedADG        map[models.Species]float64
	DefaultExpectedADG float64

	// Growth alert bands, as percent of expected ADG.
	GrowthCriticalPercent float64
	GrowthWarningPercent  float64

	Water        WaterThresholds
	SensorRanges map[models.SensorType]Range

	// CriticalIssueCount is the violation count above which a water
	// reading escalates from warning to critical. Empirical constant;
	// tunable, not derived.
	CriticalIssueCount int

	// Sensor status multipliers applied to the device polling interval.
	StaleAfterIntervals   float64
	OfflineAfterIntervals float64
	// DefaultPollingMinutes applies when a sensor has no configured
	// polling interval.
	DefaultPollingMinutes int

	// Inventory expiry warning window, in days.
	ExpiryWarningDays int

	// Mortality-rate alert bands, percent of initial population.
	MortalityWarningPercent  float64
	MortalityCriticalPercent float64

	// OptimalFactorScore is the factor score at or above which an
	// environmental factor is considered optimal.
	OptimalFactorScore float64
}

// DefaultConfig returns the stock tunables. Every value can be overridden
// before handing the config to the engine.
func DefaultConfig() Config {
	return Config{
		ExpectedADG: map[models.Species]float64{
			models.SpeciesBroiler: 0.05,
			models.SpeciesLayer:   0.02,
			models.SpeciesCatfish: 0.015,
			models.SpeciesTilapia: 0.01,
		},
		DefaultExpectedADG:    0.03,
		GrowthCriticalPercent: 50,
		GrowthWarningPercent:  70,
		Water: WaterThresholds{
			PHMin:              6.5,
			PHMax:              9.0,
			TemperatureMin:     25,
			TemperatureMax:     30,
			DissolvedOxygenMin: 5,
			AmmoniaMax:         0.02,
		},
		SensorRanges: map[models.SensorType]Range{
			models.SensorTemperature:     {Min: 20, Max: 32},
			models.SensorHumidity:        {Min: 40, Max: 70},
			models.SensorPH:              {Min: 6.5, Max: 9.0},
			models.SensorDissolvedOxygen: {Min: 5, Max: 12},
			models.SensorAmmonia:         {Min: 0, Max: 0.02},
		},
		CriticalIssueCount:       2,
		StaleAfterIntervals:      2,
		OfflineAfterIntervals:    4,
		DefaultPollingMinutes:    15,
		ExpiryWarningDays:        30,
		MortalityWarningPercent:  5,
		MortalityCriticalPercent: 10,
		OptimalFactorScore:       80,
	}
}

// ExpectedADGFor resolves the expected daily gain for a species, falling
// back to the configured default for unknown species.
func (c Config) ExpectedADGFor(species models.Species) float64 {
	if v, ok := c.ExpectedADG[species]; ok && v > 0 {
		return v
	}
	return c.DefaultExpectedADG
}
