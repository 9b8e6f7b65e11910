package monitoring

import (
	"github.com/mamadbah2/farmwatch/internal/domain/models"
)

// FactorStatus qualifies a single environmental factor.
type FactorStatus string

const (
	FactorOptimal FactorStatus = "optimal"
	FactorLow     FactorStatus = "low"
	FactorHigh    FactorStatus = "high"
)

// EnvFactor is one sensor type's contribution to the composite score.
type EnvFactor struct {
	Type   models.SensorType `json:"type"`
	Score  float64           `json:"score"`
	Status FactorStatus      `json:"status"`
}

// EnvironmentalScore is the composite 0-100 health indicator for a
// structure over a trailing window. Score is nil when no sensor data
// exists; 0 would wrongly read as "worst case".
type EnvironmentalScore struct {
	Score   *float64    `json:"score"`
	Factors []EnvFactor `json:"factors"`
	Message string      `json:"message"`
}

// ScoreEnvironment evaluates every reading in the window against its
// type's safe band and produces one factor per monitored sensor type. A
// factor's score is the percentage of its readings inside the band; the
// overall score is the mean of factor scores. Types with no readings in
// the window contribute no factor.
func ScoreEnvironment(cfg Config, readings []models.SensorReading) EnvironmentalScore {
	type tally struct {
		total   int
		inRange int
		below   int
		above   int
	}
	tallies := make(map[models.SensorType]*tally)

	for _, r := range readings {
		rng, ok := cfg.SensorRanges[r.Type]
		if !ok {
			continue
		}
		t := tallies[r.Type]
		if t == nil {
			t = &tally{}
			tallies[r.Type] = t
		}
		t.total++
		switch {
		case r.Value < rng.Min:
			t.below++
		case r.Value > rng.Max:
			t.above++
		default:
			t.inRange++
		}
	}

	var factors []EnvFactor
	var sum float64
	for _, st := range models.MonitoredSensorTypes {
		t, ok := tallies[st]
		if !ok || t.total == 0 {
			continue
		}

		score := round1(float64(t.inRange) / float64(t.total) * 100)

		status := FactorOptimal
		if score < cfg.OptimalFactorScore {
			if t.above > t.below {
				status = FactorHigh
			} else {
				status = FactorLow
			}
		}

		factors = append(factors, EnvFactor{Type: st, Score: score, Status: status})
		sum += score
	}

	if len(factors) == 0 {
		return EnvironmentalScore{Message: "No sensor data available for this period."}
	}

	overall := round1(sum / float64(len(factors)))
	return EnvironmentalScore{
		Score:   &overall,
		Factors: factors,
		Message: scoreMessage(overall),
	}
}

func scoreMessage(score float64) string {
	switch {
	case score >= 80:
		return "Environmental conditions are good."
	case score >= 60:
		return "Environmental conditions are fair. Review the flagged factors."
	default:
		return "Environmental conditions are poor. Immediate attention recommended."
	}
}
