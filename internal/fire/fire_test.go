package fire

import (
	"math"
	"testing"
	"time"

	"github.com/pfennig-app/pfennig/internal/model"
)

var asOf = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

func TestProject_HealthyCase(t *testing.T) {
	in := Input{
		Config: model.FinancialConfig{
			IncomeSources: []model.IncomeSource{
				{Name: "Salary", AmountCents: 300000, Frequency: model.PayBiweekly}, // $78k/yr
			},
			BudgetCategories: []model.BudgetCategory{
				{Name: "Housing", MonthlyCents: 200000},
				{Name: "Food", MonthlyCents: 60000},
			},
			SafeWithdrawalBps: 400,
			ExpectedReturnBps: 700,
			InflationBps:      300,
		},
		PortfolioValueCents: 10000000, // $100k
		AsOf:                asOf,
	}

	r := Project(in)

	if r.Status != model.FireStatusOK {
		t.Fatalf("status = %q (%s), want ok", r.Status, r.Reason)
	}
	if r.AnnualIncomeCents != 7800000 {
		t.Errorf("income = %d, want 7800000", r.AnnualIncomeCents)
	}
	if r.AnnualExpensesCents != 3120000 {
		t.Errorf("expenses = %d, want 3120000", r.AnnualExpensesCents)
	}
	if r.AnnualSavingsCents != 4680000 {
		t.Errorf("savings = %d, want 4680000", r.AnnualSavingsCents)
	}
	if r.SavingsRateBps != 6000 {
		t.Errorf("savings rate = %d bps, want 6000", r.SavingsRateBps)
	}
	// target = ceil(31200 / 0.04) = $780k
	if r.TargetPortfolioCents != 78000000 {
		t.Errorf("target = %d, want 78000000", r.TargetPortfolioCents)
	}
	if r.YearsToFire == nil {
		t.Fatal("YearsToFire = nil")
	}
	if y := *r.YearsToFire; math.IsNaN(y) || math.IsInf(y, 0) || y <= 0 || y > 30 {
		t.Errorf("years = %v, want a finite value in (0, 30]", y)
	}
	if r.ProjectedDate == nil {
		t.Fatal("ProjectedDate = nil")
	}
	if loc := r.ProjectedDate.Location(); loc != time.UTC {
		t.Errorf("projected date location = %v, want UTC", loc)
	}
	wantDate := asOf.AddDate(0, r.MonthsToFire, 0)
	if !r.ProjectedDate.Equal(wantDate) {
		t.Errorf("projected date = %v, want %v", r.ProjectedDate, wantDate)
	}
}

func TestProject_AlreadyThere(t *testing.T) {
	in := Input{
		Config: model.FinancialConfig{
			IncomeSources:     []model.IncomeSource{{AmountCents: 500000, Frequency: model.PayMonthly}},
			BudgetCategories:  []model.BudgetCategory{{MonthlyCents: 100000}},
			SafeWithdrawalBps: 400,
		},
		PortfolioValueCents: 100000000, // well past the target
		AsOf:                asOf,
	}

	r := Project(in)
	if r.Status != model.FireStatusOK {
		t.Fatalf("status = %q, want ok", r.Status)
	}
	if r.YearsToFire == nil || *r.YearsToFire != 0 {
		t.Errorf("years = %v, want 0 (already at target)", r.YearsToFire)
	}
	if r.MonthsToFire != 0 {
		t.Errorf("months = %d, want 0", r.MonthsToFire)
	}
	if !r.ProjectedDate.Equal(asOf) {
		t.Errorf("projected date = %v, want as-of date", r.ProjectedDate)
	}
}

func TestProject_UnreachableClassifications(t *testing.T) {
	tests := []struct {
		name       string
		cfg        model.FinancialConfig
		portfolio  int64
		wantReason string
	}{
		{
			name: "negative savings and nonpositive real return",
			cfg: model.FinancialConfig{
				IncomeSources:     []model.IncomeSource{{AmountCents: 100000, Frequency: model.PayMonthly}},
				BudgetCategories:  []model.BudgetCategory{{MonthlyCents: 300000}},
				ExpectedReturnBps: 200,
				InflationBps:      500, // real return negative
			},
			portfolio:  1000000,
			wantReason: model.ReasonNegativeSavingsNonpositiveReturn,
		},
		{
			name: "no capital base",
			cfg: model.FinancialConfig{
				IncomeSources:     []model.IncomeSource{{AmountCents: 100000, Frequency: model.PayMonthly}},
				BudgetCategories:  []model.BudgetCategory{{MonthlyCents: 300000}},
				ExpectedReturnBps: 700,
				InflationBps:      300, // real return positive, but nothing to grow
			},
			portfolio:  0,
			wantReason: model.ReasonNoCapitalBase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Project(Input{Config: tt.cfg, PortfolioValueCents: tt.portfolio, AsOf: asOf})

			if r.Status != model.FireStatusUnreachable {
				t.Fatalf("status = %q, want unreachable", r.Status)
			}
			if r.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", r.Reason, tt.wantReason)
			}
			if r.YearsToFire != nil {
				t.Errorf("YearsToFire = %v, want nil", *r.YearsToFire)
			}
			if r.ProjectedDate != nil {
				t.Errorf("ProjectedDate = %v, want nil", r.ProjectedDate)
			}
			// Rates must stay finite numbers even on failure.
			if r.RealReturnBps < -10000 || r.RealReturnBps > 100000 {
				t.Errorf("real return = %d bps, out of plausible band", r.RealReturnBps)
			}
		})
	}
}

func TestProject_CompoundGrowthOnly(t *testing.T) {
	// Savings are negative but the base grows: log solve on the base alone.
	in := Input{
		Config: model.FinancialConfig{
			IncomeSources:     []model.IncomeSource{{AmountCents: 200000, Frequency: model.PayMonthly}}, // $24k/yr
			BudgetCategories:  []model.BudgetCategory{{MonthlyCents: 250000}},                           // $30k/yr
			SafeWithdrawalBps: 400,
			ExpectedReturnBps: 700,
			InflationBps:      300,
		},
		PortfolioValueCents: 20000000, // $200k base
		AsOf:                asOf,
	}

	r := Project(in)
	if r.Status != model.FireStatusOK {
		t.Fatalf("status = %q (%s), want ok", r.Status, r.Reason)
	}
	// target = ceil(30000/0.04) = $750k; 200k at ~3.88% real doubles in
	// ~18y, so the horizon lands somewhere in (30, 40).
	if y := *r.YearsToFire; y < 30 || y > 40 {
		t.Errorf("years = %v, want compound-growth horizon in (30, 40)", y)
	}
}

func TestProject_ZeroRealReturnLinear(t *testing.T) {
	in := Input{
		Config: model.FinancialConfig{
			IncomeSources:     []model.IncomeSource{{AmountCents: 400000, Frequency: model.PayMonthly}}, // $48k/yr
			BudgetCategories:  []model.BudgetCategory{{MonthlyCents: 200000}},                           // $24k/yr
			SafeWithdrawalBps: 400,
			ExpectedReturnBps: 300,
			InflationBps:      300, // Fisher real return: 0
		},
		PortfolioValueCents: 10000000,
		AsOf:                asOf,
	}

	r := Project(in)
	if r.Status != model.FireStatusOK {
		t.Fatalf("status = %q (%s), want ok", r.Status, r.Reason)
	}
	if r.RealReturnBps != 0 {
		t.Fatalf("real return = %d bps, want 0", r.RealReturnBps)
	}
	// target = $600k, current $100k, savings $24k/yr: (600-100)/24 years.
	want := (60000000.0 - 10000000.0) / 2400000.0
	if got := *r.YearsToFire; math.Abs(got-want) > 1e-9 {
		t.Errorf("years = %v, want %v (linear solve)", got, want)
	}
}

func TestProject_FisherRealReturn(t *testing.T) {
	tests := []struct {
		nominal, inflation, want int64
	}{
		{700, 300, 388},  // (10700*10000/10300)-10000 = 388 (truncated)
		{300, 300, 0},
		{200, 500, -286}, // negative real return stays finite
		{0, 0, 0},
	}

	for _, tt := range tests {
		if got := realReturnBps(tt.nominal, tt.inflation); got != tt.want {
			t.Errorf("realReturnBps(%d, %d) = %d, want %d", tt.nominal, tt.inflation, got, tt.want)
		}
	}
}

func TestProject_PortfolioNeverDoubleCounted(t *testing.T) {
	cfg := model.FinancialConfig{
		InvestmentAccounts: []model.InvestmentAccount{
			{Name: "Brokerage", BalanceCents: 4000000},
			{Name: "Retirement", BalanceCents: 5000000},
		},
	}

	if got := currentPortfolio(8000000, cfg.InvestmentAccounts); got != 9000000 {
		t.Errorf("portfolio = %d, want manual sum 9000000", got)
	}
	if got := currentPortfolio(12000000, cfg.InvestmentAccounts); got != 12000000 {
		t.Errorf("portfolio = %d, want market value 12000000", got)
	}
}

func TestAnnualizeRenewal(t *testing.T) {
	tests := []struct {
		name string
		r    model.Renewal
		want int64
	}{
		{"monthly", model.Renewal{AmountCents: 1500, IntervalCount: 1, IntervalUnit: "month"}, 18000},
		{"yearly", model.Renewal{AmountCents: 9900, IntervalCount: 1, IntervalUnit: "year"}, 9900},
		{"weekly", model.Renewal{AmountCents: 500, IntervalCount: 1, IntervalUnit: "week"}, 26000},
		{"every 3 months", model.Renewal{AmountCents: 3000, IntervalCount: 3, IntervalUnit: "month"}, 12000},
		{"daily", model.Renewal{AmountCents: 100, IntervalCount: 1, IntervalUnit: "day"}, 36524},
		{"zero interval defaults to 1", model.Renewal{AmountCents: 1200, IntervalUnit: "month"}, 14400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := annualizeRenewal(tt.r); got != tt.want {
				t.Errorf("annualizeRenewal = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProject_RenewalsAndMinimumsInExpenses(t *testing.T) {
	in := Input{
		Config: model.FinancialConfig{
			IncomeSources:        []model.IncomeSource{{AmountCents: 500000, Frequency: model.PayMonthly}},
			WeeklyAllowanceCents: 10000,
		},
		Cards: []model.Card{
			{Name: "Visa", BalanceCents: 100000, MinPaymentCents: 3500},
			{Name: "Paid off", BalanceCents: 0, MinPaymentCents: 2500},
		},
		Renewals: []model.Renewal{
			{Name: "Streaming", AmountCents: 1500, IntervalCount: 1, IntervalUnit: "month"},
			{Name: "Cancelled", AmountCents: 5000, IntervalCount: 1, IntervalUnit: "month", Cancelled: true},
		},
		PortfolioValueCents: 1000000,
		AsOf:                asOf,
	}

	r := Project(in)
	// 10000*52 + 1500*12 + 3500*12 = 520000 + 18000 + 42000
	if r.AnnualExpensesCents != 580000 {
		t.Errorf("expenses = %d, want 580000 (paid-off and cancelled excluded)", r.AnnualExpensesCents)
	}
}
