package monitoring

import (
	"testing"
	"time"

	"github.com/mamadbah2/farmwatch/internal/domain/models"
)

func reading(t models.SensorType, v float64, at time.Time) models.SensorReading {
	return models.SensorReading{SensorID: "s-" + string(t), StructureID: "st1", Type: t, Value: v, RecordedAt: at}
}

func TestScoreEnvironmentNoData(t *testing.T) {
	cfg := DefaultConfig()
	score := ScoreEnvironment(cfg, nil)
	if score.Score != nil {
		t.Fatalf("no data: score must be nil, got %v", *score.Score)
	}
	if len(score.Factors) != 0 {
		t.Fatalf("no data: want no factors, got %+v", score.Factors)
	}
	if score.Message == "" {
		t.Fatal("no data: message must explain the absence")
	}
}

func TestScoreEnvironmentAllOptimal(t *testing.T) {
	cfg := DefaultConfig()
	at := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	readings := []models.SensorReading{
		reading(models.SensorTemperature, 25, at),
		reading(models.SensorTemperature, 28, at.Add(time.Hour)),
		reading(models.SensorHumidity, 55, at),
	}
	score := ScoreEnvironment(cfg, readings)
	if score.Score == nil || *score.Score != 100 {
		t.Fatalf("all in range: want 100, got %+v", score)
	}
	if len(score.Factors) != 2 {
		t.Fatalf("want 2 factors, got %+v", score.Factors)
	}
	for _, f := range score.Factors {
		if f.Status != FactorOptimal || f.Score != 100 {
			t.Fatalf("factor should be optimal: %+v", f)
		}
	}
	if score.Message != "Environmental conditions are good." {
		t.Fatalf("unexpected message: %q", score.Message)
	}
}

func TestScoreEnvironmentDirectionalStatus(t *testing.T) {
	cfg := DefaultConfig()
	at := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	// Temperature mostly above max (high), humidity mostly below min (low).
	readings := []models.SensorReading{
		reading(models.SensorTemperature, 35, at),
		reading(models.SensorTemperature, 36, at.Add(time.Hour)),
		reading(models.SensorTemperature, 25, at.Add(2*time.Hour)),
		reading(models.SensorHumidity, 20, at),
		reading(models.SensorHumidity, 25, at.Add(time.Hour)),
	}
	score := ScoreEnvironment(cfg, readings)
	if len(score.Factors) != 2 {
		t.Fatalf("want 2 factors, got %+v", score.Factors)
	}
	for _, f := range score.Factors {
		switch f.Type {
		case models.SensorTemperature:
			if f.Status != FactorHigh {
				t.Fatalf("temperature should read high: %+v", f)
			}
		case models.SensorHumidity:
			if f.Status != FactorLow || f.Score != 0 {
				t.Fatalf("humidity should read low at score 0: %+v", f)
			}
		}
	}
}

func TestScoreEnvironmentMessageBands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{85, "Environmental conditions are good."},
		{80, "Environmental conditions are good."},
		{70, "Environmental conditions are fair. Review the flagged factors."},
		{60, "Environmental conditions are fair. Review the flagged factors."},
		{59.9, "Environmental conditions are poor. Immediate attention recommended."},
	}
	for _, tc := range cases {
		if got := scoreMessage(tc.score); got != tc.want {
			t.Fatalf("score %v: want %q, got %q", tc.score, tc.want, got)
		}
	}
}

func TestScoreEnvironmentMeanOfFactors(t *testing.T) {
	cfg := DefaultConfig()
	at := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	// Temperature 100%, humidity 0% -> overall 50.
	readings := []models.SensorReading{
		reading(models.SensorTemperature, 25, at),
		reading(models.SensorHumidity, 10, at),
	}
	score := ScoreEnvironment(cfg, readings)
	if score.Score == nil || *score.Score != 50 {
		t.Fatalf("want overall 50, got %+v", score)
	}
}

func TestScoreEnvironmentIgnoresUnknownTypes(t *testing.T) {
	cfg := DefaultConfig()
	at := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	readings := []models.SensorReading{
		{SensorID: "sX", Type: models.SensorType("vibration"), Value: 5, RecordedAt: at},
	}
	score := ScoreEnvironment(cfg, readings)
	if score.Score != nil || len(score.Factors) != 0 {
		t.Fatalf("unknown types alone must yield no score: %+v", score)
	}
}
