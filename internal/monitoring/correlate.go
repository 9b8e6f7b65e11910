package monitoring

import (
	"sort"
	"time"

	"github.com/mamadbah2/farmwatch/internal/domain/models"
)

// SeriesPoint is one row of the joined sensor/mortality series. Mortality
// is set on the first reading of a calendar day that recorded losses, nil
// everywhere else.
type SeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Mortality *int      `json:"mortality,omitempty"`
}

// CorrelateMortality joins sensor readings and mortality events by local
// calendar day for overlay charting. Multiple events on one day are summed
// before the join. Days with losses but no sensor reading are dropped; the
// engine does not synthesize placeholder readings.
func CorrelateMortality(readings []models.SensorReading, events []models.MortalityEvent) []SeriesPoint {
	deathsByDay := make(map[string]int)
	for _, e := range events {
		if e.Quantity <= 0 {
			continue
		}
		deathsByDay[dayKey(e.Date)] += e.Quantity
	}

	sorted := make([]models.SensorReading, len(readings))
	copy(sorted, readings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.Before(sorted[j].RecordedAt)
	})

	points := make([]SeriesPoint, 0, len(sorted))
	attached := make(map[string]bool)
	for _, r := range sorted {
		p := SeriesPoint{Timestamp: r.RecordedAt, Value: r.Value}
		day := dayKey(r.RecordedAt)
		if deaths, ok := deathsByDay[day]; ok && !attached[day] {
			d := deaths
			p.Mortality = &d
			attached[day] = true
		}
		points = append(points, p)
	}

	return points
}

func dayKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}
