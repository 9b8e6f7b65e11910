package monitoring

import (
	"math"
	"testing"
	"time"

	"github.com/mamadbah2/farmwatch/internal/domain/models"
)

func TestFCRConcrete(t *testing.T) {
	// 4 kg feed and 2 kg gain per bird across 1000 birds.
	feed := 4.0 * 1000
	gain := TotalWeightGain(0, 2.0, 1000)
	if gain != 2000 {
		t.Fatalf("total gain: want 2000, got %v", gain)
	}
	fcr := FCR(feed, gain)
	if fcr == nil || *fcr != 2.00 {
		t.Fatalf("fcr: want 2.00, got %v", fcr)
	}
}

func TestFCRUndefinedForNonPositiveGain(t *testing.T) {
	for _, gain := range []float64{0, -0.5, -2000} {
		if got := FCR(100, gain); got != nil {
			t.Fatalf("fcr with gain %v: want nil, got %v", gain, *got)
		}
	}
}

func TestFCRLinearityInFeed(t *testing.T) {
	const gain = 250.0
	base := FCR(100, gain)
	if base == nil {
		t.Fatal("base fcr is nil")
	}
	for _, k := range []float64{2, 5, 10} {
		scaled := FCR(100*k, gain)
		if scaled == nil {
			t.Fatalf("scaled fcr (k=%v) is nil", k)
		}
		if math.Abs(*scaled-k**base) > 0.01 {
			t.Fatalf("linearity: FCR(%v*feed) = %v, want ~%v", k, *scaled, k**base)
		}
	}
}

func TestFCRMonotonicInGain(t *testing.T) {
	const feed = 500.0
	prev := math.Inf(1)
	for _, gain := range []float64{100, 200, 400, 800} {
		fcr := FCR(feed, gain)
		if fcr == nil {
			t.Fatalf("fcr with gain %v is nil", gain)
		}
		if *fcr >= prev {
			t.Fatalf("fcr not strictly decreasing in gain: %v >= %v", *fcr, prev)
		}
		prev = *fcr
	}
}

func TestFCRNegativeFeedContributesZero(t *testing.T) {
	fcr := FCR(-10, 100)
	if fcr == nil || *fcr != 0 {
		t.Fatalf("fcr with negative feed: want 0, got %v", fcr)
	}
}

func TestAverageDailyGainConcrete(t *testing.T) {
	day0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	samples := []models.WeightSample{
		{BatchID: "b1", Date: day0, SampleSize: 30, AverageWeightKg: 0.5},
		{BatchID: "b1", Date: day0.AddDate(0, 0, 10), SampleSize: 30, AverageWeightKg: 1.5},
	}
	gs := AverageDailyGain(samples)
	if gs == nil {
		t.Fatal("gain summary is nil")
	}
	if gs.ADG != 0.1 || gs.DaysBetween != 10 || gs.WeightGainKg != 1.0 {
		t.Fatalf("unexpected summary: %+v", gs)
	}
}

func TestAverageDailyGainUsesFirstAndLastByDate(t *testing.T) {
	day0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// A mid-timeline dip must not affect the endpoints-only calculation.
	samples := []models.WeightSample{
		{Date: day0.AddDate(0, 0, 5), AverageWeightKg: 0.4},
		{Date: day0, AverageWeightKg: 1.0},
		{Date: day0.AddDate(0, 0, 20), AverageWeightKg: 2.0},
	}
	gs := AverageDailyGain(samples)
	if gs == nil {
		t.Fatal("gain summary is nil")
	}
	if gs.DaysBetween != 20 || gs.WeightGainKg != 1.0 {
		t.Fatalf("expected first/last endpoints, got %+v", gs)
	}
}

func TestAverageDailyGainUndefined(t *testing.T) {
	day0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cases := map[string][]models.WeightSample{
		"no samples": nil,
		"one sample": {{Date: day0, AverageWeightKg: 0.5}},
		"same day":   {{Date: day0, AverageWeightKg: 0.5}, {Date: day0, AverageWeightKg: 0.6}},
	}
	for name, samples := range cases {
		if gs := AverageDailyGain(samples); gs != nil {
			t.Fatalf("%s: want nil, got %+v", name, gs)
		}
	}
}

func TestGrowthAlertBands(t *testing.T) {
	cfg := DefaultConfig()
	// Broiler expects 0.05 kg/day.
	cases := []struct {
		adg  float64
		want Severity
		none bool
	}{
		{adg: 0.020, want: SeverityCritical}, // 40%
		{adg: 0.030, want: SeverityWarning},  // 60%
		{adg: 0.034, want: SeverityWarning},  // 68%
		{adg: 0.035, none: true},             // 70%
		{adg: 0.050, none: true},
	}
	for _, tc := range cases {
		a := GrowthAlert(cfg, "b1", "Coop 1", tc.adg, models.SpeciesBroiler)
		if tc.none {
			if a != nil {
				t.Fatalf("adg %v: want no alert, got %+v", tc.adg, a)
			}
			continue
		}
		if a == nil {
			t.Fatalf("adg %v: want %s alert, got none", tc.adg, tc.want)
		}
		if a.Severity != tc.want {
			t.Fatalf("adg %v: want %s, got %s", tc.adg, tc.want, a.Severity)
		}
		if a.ExpectedValue == nil || *a.ExpectedValue != 0.05 {
			t.Fatalf("adg %v: expected value not carried: %+v", tc.adg, a)
		}
	}
}

func TestGrowthAlertUnknownSpeciesUsesDefault(t *testing.T) {
	cfg := DefaultConfig()
	// Default expectation is 0.03; 0.01 is 33% of it.
	a := GrowthAlert(cfg, "b1", "Pen 2", 0.01, models.Species("guinea_fowl"))
	if a == nil || a.Severity != SeverityCritical {
		t.Fatalf("want critical growth alert on default table, got %+v", a)
	}
}

func TestProfitIdentity(t *testing.T) {
	sales := []models.SaleRecord{{TotalAmount: 1200}, {TotalAmount: 300.5}}
	expenses := []models.ExpenseRecord{{Amount: 400}, {Amount: 99.5}}
	p := Profit(sales, expenses)
	if math.Abs(p.Profit-(p.Revenue-p.Expenses)) > 1e-9 {
		t.Fatalf("profit identity violated: %+v", p)
	}
	if p.Revenue != 1500.5 || p.Expenses != 499.5 {
		t.Fatalf("unexpected totals: %+v", p)
	}
}

func TestProfitMarginZeroRevenue(t *testing.T) {
	p := Profit(nil, []models.ExpenseRecord{{Amount: 100}})
	if p.Profit != -100 {
		t.Fatalf("profit: want -100, got %v", p.Profit)
	}
	if p.ProfitMargin != 0 {
		t.Fatalf("margin with zero revenue: want 0, got %v", p.ProfitMargin)
	}
}

func TestProfitMarginNoExpenses(t *testing.T) {
	p := Profit([]models.SaleRecord{{TotalAmount: 750}}, nil)
	if p.ProfitMargin != 100 {
		t.Fatalf("margin with no expenses: want 100, got %v", p.ProfitMargin)
	}
}

func TestProfitNegativeAmountsIgnored(t *testing.T) {
	p := Profit(
		[]models.SaleRecord{{TotalAmount: -50}, {TotalAmount: 200}},
		[]models.ExpenseRecord{{Amount: -30}, {Amount: 80}},
	)
	if p.Revenue != 200 || p.Expenses != 80 {
		t.Fatalf("negative amounts must contribute zero: %+v", p)
	}
}

func TestStockPercentage(t *testing.T) {
	if got := StockPercentage(25, 100); got != 25 {
		t.Fatalf("want 25, got %v", got)
	}
	if got := StockPercentage(42, 0); got != 0 {
		t.Fatalf("zero capacity: want 0, got %v", got)
	}
}

func TestIsLowStockInclusive(t *testing.T) {
	for q := 0; q <= 10; q++ {
		for th := 0; th <= 10; th++ {
			want := q <= th
			if got := IsLowStock(float64(q), float64(th)); got != want {
				t.Fatalf("IsLowStock(%d, %d): want %v, got %v", q, th, want, got)
			}
		}
	}
}
