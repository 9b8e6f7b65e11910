package monitoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/mamadbah2/farmwatch/internal/domain/models"
)

// BatchInput bundles everything the aggregator needs for one batch. The
// caller fetches the records; only the latest water reading matters here,
// older unresolved violations are not re-surfaced.
type BatchInput struct {
	Batch         models.Batch
	WeightSamples []models.WeightSample
	LatestWater   *models.WaterQualityReading
	Mortality     []models.MortalityEvent
}

// ScanInput is one farm-wide evaluation pass.
type ScanInput struct {
	Batches   []BatchInput
	Inventory []models.InventoryItem
	Now       time.Time
}

// Scan evaluates every batch and inventory item independently and returns
// a flat alert list, critical first. A batch with missing or malformed
// inputs is skipped; one bad subject never suppresses alerts for the rest.
func Scan(cfg Config, in ScanInput) []Alert {
	var alerts []Alert

	for _, b := range in.Batches {
		alerts = append(alerts, scanBatch(cfg, b)...)
	}
	for _, item := range in.Inventory {
		alerts = append(alerts, scanInventoryItem(cfg, item, in.Now)...)
	}

	sortAlerts(alerts)
	return alerts
}

func scanBatch(cfg Config, in BatchInput) []Alert {
	if in.Batch.ID == "" {
		return nil
	}

	label := in.Batch.Label
	if label == "" {
		label = in.Batch.ID
	}

	var alerts []Alert

	if gs := AverageDailyGain(in.WeightSamples); gs != nil {
		if a := GrowthAlert(cfg, in.Batch.ID, label, gs.ADG, in.Batch.Species); a != nil {
			alerts = append(alerts, *a)
		}
	}

	if in.Batch.SupportsWaterQuality() && in.LatestWater != nil {
		if issues := EvaluateWater(cfg, *in.LatestWater); len(issues) > 0 {
			alerts = append(alerts, Alert{
				SubjectID:    in.Batch.ID,
				SubjectLabel: label,
				Category:     CategoryWaterQuality,
				Severity:     SeverityForIssueCount(cfg, len(issues)),
				Message:      strings.Join(issues, "; "),
				MetricValue:  float64(len(issues)),
			})
		}
	}

	if a := mortalityAlert(cfg, in, label); a != nil {
		alerts = append(alerts, *a)
	}

	return alerts
}

// mortalityAlert flags batches whose cumulative losses exceed the
// configured share of the initial population (current quantity plus
// everything already lost).
func mortalityAlert(cfg Config, in BatchInput, label string) *Alert {
	var deaths int
	for _, e := range in.Mortality {
		if e.Quantity > 0 {
			deaths += e.Quantity
		}
	}
	if deaths == 0 || in.Batch.CurrentQuantity < 0 {
		return nil
	}

	initial := in.Batch.CurrentQuantity + deaths
	if initial <= 0 {
		return nil
	}

	rate := float64(deaths) / float64(initial) * 100

	var severity Severity
	switch {
	case rate >= cfg.MortalityCriticalPercent:
		severity = SeverityCritical
	case rate >= cfg.MortalityWarningPercent:
		severity = SeverityWarning
	default:
		return nil
	}

	expected := cfg.MortalityWarningPercent
	return &Alert{
		SubjectID:     in.Batch.ID,
		SubjectLabel:  label,
		Category:      CategoryMortality,
		Severity:      severity,
		Message:       fmt.Sprintf("mortality at %.2f%% of initial population (%d of %d lost)", rate, deaths, initial),
		MetricValue:   round2(rate),
		ExpectedValue: &expected,
	}
}

func scanInventoryItem(cfg Config, item models.InventoryItem, now time.Time) []Alert {
	if item.ID == "" && item.Name == "" {
		return nil
	}

	label := item.Name
	if label == "" {
		label = item.ID
	}

	var alerts []Alert

	if item.ExpiryDate != nil && !item.ExpiryDate.IsZero() {
		warnWindow := time.Duration(cfg.ExpiryWarningDays) * 24 * time.Hour
		switch {
		case item.ExpiryDate.Before(now):
			alerts = append(alerts, Alert{
				SubjectID:    item.ID,
				SubjectLabel: label,
				Category:     CategoryInventory,
				Severity:     SeverityCritical,
				Message:      fmt.Sprintf("%s expired on %s", item.Kind, item.ExpiryDate.Format("2006-01-02")),
				MetricValue:  item.Quantity,
			})
		case item.ExpiryDate.Sub(now) <= warnWindow:
			days := int(item.ExpiryDate.Sub(now).Hours() / 24)
			alerts = append(alerts, Alert{
				SubjectID:    item.ID,
				SubjectLabel: label,
				Category:     CategoryInventory,
				Severity:     SeverityWarning,
				Message:      fmt.Sprintf("%s expires in %d days (%s)", item.Kind, days, item.ExpiryDate.Format("2006-01-02")),
				MetricValue:  item.Quantity,
			})
		}
	}

	if IsLowStock(item.Quantity, item.LowStockThreshold) {
		severity := SeverityWarning
		msg := fmt.Sprintf("%s stock low: %g %s left (threshold %g)", item.Kind, item.Quantity, item.Unit, item.LowStockThreshold)
		if item.Quantity <= 0 {
			severity = SeverityCritical
			msg = fmt.Sprintf("%s out of stock", item.Kind)
		}
		threshold := item.LowStockThreshold
		alerts = append(alerts, Alert{
			SubjectID:     item.ID,
			SubjectLabel:  label,
			Category:      CategoryInventory,
			Severity:      severity,
			Message:       msg,
			MetricValue:   item.Quantity,
			ExpectedValue: &threshold,
		})
	}

	return alerts
}
