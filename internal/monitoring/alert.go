package monitoring

import "sort"

// Severity ranks how urgent an alert is. Classification is a pure function
// of magnitude; there is no hidden escalation state.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Category names the check that produced an alert.
type Category string

const (
	CategoryGrowth       Category = "growth"
	CategoryWaterQuality Category = "water_quality"
	CategoryMortality    Category = "mortality"
	CategoryInventory    Category = "inventory"
)

// Alert is a transient finding from one scan. The engine never persists
// alerts; acknowledgment and delivery belong to the callers.
type Alert struct {
	SubjectID     string   `json:"subject_id"`
	SubjectLabel  string   `json:"subject_label"`
	Category      Category `json:"category"`
	Severity      Severity `json:"severity"`
	Message       string   `json:"message"`
	MetricValue   float64  `json:"metric_value"`
	ExpectedValue *float64 `json:"expected_value,omitempty"`
}

// sortAlerts orders critical before warning, keeping scan order within
// each severity.
func sortAlerts(alerts []Alert) {
	rank := func(s Severity) int {
		if s == SeverityCritical {
			return 0
		}
		return 1
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return rank(alerts[i].Severity) < rank(alerts[j].Severity)
	})
}
