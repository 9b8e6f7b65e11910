package monitoring

import (
	"testing"
	"time"

	"github.com/mamadbah2/farmwatch/internal/domain/models"
)

func TestCorrelateMortalityJoinsByDay(t *testing.T) {
	d0 := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	readings := []models.SensorReading{
		{SensorID: "s1", Type: models.SensorTemperature, Value: 26, RecordedAt: d0},
		{SensorID: "s1", Type: models.SensorTemperature, Value: 31, RecordedAt: d0.Add(6 * time.Hour)},
		{SensorID: "s1", Type: models.SensorTemperature, Value: 27, RecordedAt: d0.AddDate(0, 0, 1)},
	}
	events := []models.MortalityEvent{
		{Date: d0.Add(2 * time.Hour), Quantity: 3},
		{Date: d0.Add(5 * time.Hour), Quantity: 2}, // same day, summed
		{Date: d0.AddDate(0, 0, 2), Quantity: 7},   // day without readings, dropped
	}

	points := CorrelateMortality(readings, events)
	if len(points) != 3 {
		t.Fatalf("want 3 points, got %+v", points)
	}

	if points[0].Mortality == nil || *points[0].Mortality != 5 {
		t.Fatalf("day-one losses must be summed onto the first reading: %+v", points[0])
	}
	if points[1].Mortality != nil {
		t.Fatalf("later readings on the same day must not repeat losses: %+v", points[1])
	}
	if points[2].Mortality != nil {
		t.Fatalf("day two had no losses: %+v", points[2])
	}
}

func TestCorrelateMortalitySortsReadings(t *testing.T) {
	d0 := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	readings := []models.SensorReading{
		{Value: 2, RecordedAt: d0.Add(4 * time.Hour)},
		{Value: 1, RecordedAt: d0},
	}
	points := CorrelateMortality(readings, nil)
	if points[0].Value != 1 || points[1].Value != 2 {
		t.Fatalf("points must be time-ordered: %+v", points)
	}
}

func TestCorrelateMortalityIgnoresNonPositiveQuantities(t *testing.T) {
	d0 := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	readings := []models.SensorReading{{Value: 26, RecordedAt: d0}}
	events := []models.MortalityEvent{{Date: d0, Quantity: 0}, {Date: d0, Quantity: -4}}
	points := CorrelateMortality(readings, events)
	if points[0].Mortality != nil {
		t.Fatalf("non-positive quantities contribute nothing: %+v", points[0])
	}
}

func TestCorrelateMortalityEmptyReadings(t *testing.T) {
	events := []models.MortalityEvent{{Date: time.Now(), Quantity: 4}}
	if points := CorrelateMortality(nil, events); len(points) != 0 {
		t.Fatalf("no readings means empty series, got %+v", points)
	}
}
