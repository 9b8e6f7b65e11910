// Package monitoring derives health and performance indicators from raw
// farm records. Every function is pure: callers fetch the records, the
// engine computes, and nothing here touches storage or keeps state.
package monitoring

import (
	"fmt"
	"math"

	"github.com/mamadbah2/farmwatch/internal/domain/models"
)

// GainSummary describes growth between the first and last weight sample of
// a batch. Values are per animal; ADG is kg/day.
type GainSummary struct {
	ADG          float64 `json:"adg"`
	DaysBetween  int     `json:"days_between"`
	WeightGainKg float64 `json:"weight_gain_kg"`
}

// ProfitSummary aggregates revenue and expenses for a period.
type ProfitSummary struct {
	Revenue      float64 `json:"revenue"`
	Expenses     float64 `json:"expenses"`
	Profit       float64 `json:"profit"`
	ProfitMargin float64 `json:"profit_margin"`
}

// FCR computes the feed conversion ratio: feed consumed per unit of weight
// gained, rounded to 2 decimals. Returns nil when the gain is non-positive;
// a ratio over zero or negative gain has no meaning, and nil keeps that
// distinct from a genuine 0. Negative feed totals contribute zero.
func FCR(totalFeedKg, totalWeightGainKg float64) *float64 {
	if totalWeightGainKg <= 0 {
		return nil
	}
	if totalFeedKg < 0 {
		totalFeedKg = 0
	}
	v := round2(totalFeedKg / totalWeightGainKg)
	return &v
}

// TotalWeightGain scales the per-animal weight change to the whole batch.
// The result may be negative when the batch lost mass; consumers treat
// non-positive gain as "no FCR".
func TotalWeightGain(initialWeightKg, finalWeightKg float64, batchQuantity int) float64 {
	if batchQuantity < 0 {
		batchQuantity = 0
	}
	return (finalWeightKg - initialWeightKg) * float64(batchQuantity)
}

// AverageDailyGain derives growth from the earliest and latest sample by
// date. Deliberately not a regression fit: sampling noise at either end is
// not smoothed. Requires at least two samples on distinct days; returns
// nil otherwise. ADG is rounded to 3 decimals (gram resolution).
func AverageDailyGain(samples []models.WeightSample) *GainSummary {
	if len(samples) < 2 {
		return nil
	}

	first, last := samples[0], samples[0]
	for _, s := range samples[1:] {
		if s.Date.Before(first.Date) {
			first = s
		}
		if s.Date.After(last.Date) {
			last = s
		}
	}

	days := int(last.Date.Sub(first.Date).Hours() / 24)
	if days <= 0 {
		return nil
	}

	gain := last.AverageWeightKg - first.AverageWeightKg
	return &GainSummary{
		ADG:          round3(gain / float64(days)),
		DaysBetween:  days,
		WeightGainKg: gain,
	}
}

// GrowthAlert compares a batch's ADG to the expected gain for its species.
// Below 50% of expected is critical, 50-70% is a warning, 70% and above is
// healthy (nil). Unknown species use the configured default expectation.
func GrowthAlert(cfg Config, subjectID, subjectLabel string, adg float64, species models.Species) *Alert {
	expected := cfg.ExpectedADGFor(species)
	if expected <= 0 {
		return nil
	}

	percent := adg / expected * 100

	var severity Severity
	switch {
	case percent < cfg.GrowthCriticalPercent:
		severity = SeverityCritical
	case percent < cfg.GrowthWarningPercent:
		severity = SeverityWarning
	default:
		return nil
	}

	exp := expected
	return &Alert{
		SubjectID:     subjectID,
		SubjectLabel:  subjectLabel,
		Category:      CategoryGrowth,
		Severity:      severity,
		Message:       fmt.Sprintf("daily gain %.3f kg/day is %.0f%% of the %.3f kg/day expected for %s", adg, percent, expected, species),
		MetricValue:   adg,
		ExpectedValue: &exp,
	}
}

// Profit aggregates sales and expenses. Margin is profit as a percent of
// revenue, rounded to 1 decimal, and is exactly 0 when revenue is 0 even
// with expenses booked. That asymmetry with FCR's nil is deliberate: the
// margin feeds displays that want a number. Negative amounts contribute
// nothing.
func Profit(sales []models.SaleRecord, expenses []models.ExpenseRecord) ProfitSummary {
	var revenue, spent float64
	for _, s := range sales {
		if s.TotalAmount > 0 {
			revenue += s.TotalAmount
		}
	}
	for _, e := range expenses {
		if e.Amount > 0 {
			spent += e.Amount
		}
	}

	profit := revenue - spent
	var margin float64
	if revenue > 0 {
		margin = round1(profit / revenue * 100)
	}

	return ProfitSummary{
		Revenue:      revenue,
		Expenses:     spent,
		Profit:       profit,
		ProfitMargin: margin,
	}
}

// StockPercentage reports current stock as a percent of capacity. A zero
// capacity yields 0 rather than an error.
func StockPercentage(current, max float64) float64 {
	if max == 0 {
		return 0
	}
	return round1(current / max * 100)
}

// IsLowStock reports whether the quantity is at or below the reorder
// threshold. Inclusive: sitting exactly at the threshold counts as low.
func IsLowStock(quantity, threshold float64) bool {
	return quantity <= threshold
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
