// Package fire projects a financial-independence horizon from income,
// expense, and return assumptions. The solve is a single deterministic-
// return closed form, not a Monte-Carlo distribution; an unreachable target
// is a first-class result with a stable reason code, never an error.
package fire

import (
	"math"
	"time"

	"github.com/pfennig-app/pfennig/internal/model"
	"github.com/pfennig-app/pfennig/internal/money"
)

// Assumption defaults applied when the config leaves a rate unset.
const (
	DefaultSafeWithdrawalBps int64 = 400 // the 4% rule
	DefaultExpectedReturnBps int64 = 700
	DefaultInflationBps      int64 = 300

	// MaxProjectionYears bounds the sanity band; anything beyond it is
	// classified unstable rather than reported.
	MaxProjectionYears = 150
)

// realReturnEpsilon separates the linear solve from the general annuity
// solve.
const realReturnEpsilon = 1e-9

// Input carries everything Project needs; the solver reads no clocks and no
// globals.
type Input struct {
	Config              model.FinancialConfig
	Cards               []model.Card
	Renewals            []model.Renewal
	PortfolioValueCents int64
	AsOf                time.Time
}

// Project computes the years and calendar date at which the portfolio can
// sustain annual expenses at the safe withdrawal rate, or classifies the
// target as unreachable.
func Project(in Input) model.FireProjectionResult {
	cfg := in.Config

	swr := cfg.SafeWithdrawalBps
	if swr <= 0 {
		swr = DefaultSafeWithdrawalBps
	}
	nominal := cfg.ExpectedReturnBps
	if nominal == 0 {
		nominal = DefaultExpectedReturnBps
	}
	inflation := cfg.InflationBps
	if inflation == 0 {
		inflation = DefaultInflationBps
	}

	income := annualIncome(cfg)
	expenses := annualExpenses(cfg, in.Renewals, in.Cards)
	savings := income - expenses

	savingsRate := int64(0)
	if income > 0 {
		savingsRate = (savings*10000 + income/2) / income
	}

	current := currentPortfolio(in.PortfolioValueCents, cfg.InvestmentAccounts)
	target := targetPortfolio(expenses, swr)
	real := realReturnBps(nominal, inflation)

	result := model.FireProjectionResult{
		AnnualIncomeCents:     income,
		AnnualExpensesCents:   expenses,
		AnnualSavingsCents:    savings,
		SavingsRateBps:        savingsRate,
		CurrentPortfolioCents: current,
		TargetPortfolioCents:  target,
		SafeWithdrawalBps:     swr,
		ExpectedReturnBps:     nominal,
		InflationBps:          inflation,
		RealReturnBps:         real,
	}

	years, reason := solveHorizon(current, target, savings, real)
	if reason != "" {
		result.Status = model.FireStatusUnreachable
		result.Reason = reason
		return result
	}

	result.Status = model.FireStatusOK
	result.YearsToFire = &years
	result.MonthsToFire = int(math.Ceil(years * 12))
	projected := in.AsOf.UTC().AddDate(0, result.MonthsToFire, 0)
	result.ProjectedDate = &projected
	return result
}

// solveHorizon picks one of four closed-form branches. Every branch is
// named; nothing falls through silently.
func solveHorizon(current, target, savings int64, realBps int64) (float64, string) {
	if current >= target || target <= 0 {
		return 0, ""
	}

	r := float64(realBps) / 10000

	if savings <= 0 && r <= 0 {
		return 0, model.ReasonNegativeSavingsNonpositiveReturn
	}
	if current <= 0 && savings <= 0 {
		return 0, model.ReasonNoCapitalBase
	}

	targetF := float64(target)
	currentF := float64(current)
	savingsF := float64(savings)

	var years float64
	switch {
	case math.Abs(r) < realReturnEpsilon:
		// Effectively zero real return: growth is linear in savings.
		if savings <= 0 {
			return 0, model.ReasonZeroRealReturnWithoutSavings
		}
		years = (targetF - currentF) / savingsF

	case savings <= 0:
		// Pure compound growth of the existing base.
		ratio := targetF / currentF
		if ratio <= 1 {
			return 0, ""
		}
		years = math.Log(ratio) / math.Log(1+r)

	default:
		// Annuity growth: target = current(1+r)^n + savings((1+r)^n - 1)/r.
		num := targetF*r + savingsF
		den := currentF*r + savingsF
		if num <= 0 || den <= 0 {
			return 0, model.ReasonInvalidLogDomain
		}
		years = math.Log(num/den) / math.Log(1+r)
	}

	if math.IsNaN(years) || math.IsInf(years, 0) || years < 0 || years > MaxProjectionYears {
		return 0, model.ReasonUnstableProjection
	}
	return years, ""
}

// annualIncome prefers the explicit income-source list, falling back to a
// single standard paycheck annualized by the configured pay frequency.
func annualIncome(cfg model.FinancialConfig) int64 {
	if len(cfg.IncomeSources) > 0 {
		total := int64(0)
		for _, src := range cfg.IncomeSources {
			total += src.AmountCents * paymentsPerYear(src.Frequency)
		}
		return total
	}
	return cfg.PaycheckCents * paymentsPerYear(cfg.PayFrequency)
}

func paymentsPerYear(freq model.PayFrequency) int64 {
	switch freq {
	case model.PayWeekly:
		return 52
	case model.PayBiweekly:
		return 26
	case model.PaySemimonthly:
		return 24
	case model.PayQuarterly:
		return 4
	case model.PayAnnual:
		return 1
	default:
		return 12
	}
}

// annualExpenses sums budget categories, the weekly allowance, active
// renewals annualized by their own interval, and minimum payments on debts
// that still carry a balance.
func annualExpenses(cfg model.FinancialConfig, renewals []model.Renewal, cards []model.Card) int64 {
	total := int64(0)
	for _, cat := range cfg.BudgetCategories {
		total += cat.MonthlyCents * 12
	}
	total += cfg.WeeklyAllowanceCents * 52

	for _, r := range renewals {
		if r.Cancelled || r.AmountCents <= 0 {
			continue
		}
		total += annualizeRenewal(r)
	}

	for _, c := range cards {
		if c.BalanceCents > 0 {
			total += c.MinPaymentCents * 12
		}
	}
	for _, d := range cfg.Debts {
		if d.BalanceCents > 0 {
			total += d.MinPaymentCents * 12
		}
	}
	return total
}

// annualizeRenewal converts one recurring bill to an annual amount using
// day-based occurrence factors (365.2425 days/year).
func annualizeRenewal(r model.Renewal) int64 {
	interval := r.IntervalCount
	if interval < 1 {
		interval = 1
	}

	var perYear float64
	switch r.IntervalUnit {
	case "day":
		perYear = 365.2425
	case "week":
		perYear = 52
	case "year":
		perYear = 1
	default: // month
		perYear = 12
	}
	return money.FloatToCents(float64(r.AmountCents) / 100 * perYear / float64(interval))
}

// currentPortfolio trusts the larger of the live market value and the sum of
// manual account mirrors rather than summing them, so a user who supplies
// both is never double counted.
func currentPortfolio(marketValueCents int64, accounts []model.InvestmentAccount) int64 {
	manual := int64(0)
	for _, a := range accounts {
		manual += a.BalanceCents
	}
	if marketValueCents > manual {
		return marketValueCents
	}
	return manual
}

// targetPortfolio is ceil(annualExpenses / safeWithdrawalRate).
func targetPortfolio(annualExpensesCents, swrBps int64) int64 {
	if annualExpensesCents <= 0 {
		return 0
	}
	return (annualExpensesCents*10000 + swrBps - 1) / swrBps
}

// realReturnBps applies the Fisher relation in integer basis points:
// ((10000+nominal) * 10000 / (10000+inflation)) - 10000. Doing this in
// scaled integers avoids the drift of subtracting two already-rounded
// percentages.
func realReturnBps(nominalBps, inflationBps int64) int64 {
	denom := 10000 + inflationBps
	if denom <= 0 {
		// Deflation at or past -100% is nonsensical input; fall back to
		// the nominal rate rather than dividing by zero.
		return nominalBps
	}
	return (10000+nominalBps)*10000/denom - 10000
}
