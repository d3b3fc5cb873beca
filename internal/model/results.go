package model

import "time"

// Debt-target selection methods.
const (
	MethodPromoSprint = "promo-sprint"
	MethodCFIOverride = "cfi-override"
	MethodAvalanche   = "avalanche"
)

// TimeCriticalItem is one obligation due before the next paycheck.
type TimeCriticalItem struct {
	Name        string
	AmountCents int64
	Due         time.Time
	Kind        string // "bill" or "minimum"
}

// DebtTarget is the single recommended target for surplus cash this cycle.
type DebtTarget struct {
	Name        string
	AmountCents int64
	Method      string
}

// StrategyResult is the funding plan for one pay cycle.
type StrategyResult struct {
	FloorCents               int64
	CycleDays                int
	NextPayday               time.Time
	TimeCriticalCents        int64
	TimeCriticalMinimumCents int64
	TimeCriticalItems        []TimeCriticalItem
	RequiredTransferCents    int64
	IsNegativeCashFlow       bool
	OperationalSurplusCents  int64
	Target                   *DebtTarget
}

// FIRE projection statuses.
const (
	FireStatusOK          = "ok"
	FireStatusUnreachable = "unreachable"
)

// Stable reason codes for unreachable projections.
const (
	ReasonNegativeSavingsNonpositiveReturn = "negative-savings-and-nonpositive-real-return"
	ReasonNoCapitalBase                    = "no-capital-base"
	ReasonZeroRealReturnWithoutSavings     = "zero-real-return-without-positive-savings"
	ReasonInvalidLogDomain                 = "invalid-log-domain"
	ReasonUnstableProjection               = "unstable-projection"
)

// FireProjectionResult is either a projected horizon or an explicit
// unreachable classification. Unreachable is an expected output, not an
// error: YearsToFire and ProjectedDate are nil while every rate field stays
// a finite number.
type FireProjectionResult struct {
	Status string
	Reason string

	AnnualIncomeCents   int64
	AnnualExpensesCents int64
	AnnualSavingsCents  int64
	SavingsRateBps      int64

	CurrentPortfolioCents int64
	TargetPortfolioCents  int64

	SafeWithdrawalBps int64
	ExpectedReturnBps int64
	InflationBps      int64
	RealReturnBps     int64

	YearsToFire   *float64
	MonthsToFire  int
	ProjectedDate *time.Time
}

// BalancePoint is one (month, aggregate balance) sample for charting.
type BalancePoint struct {
	Month        int
	BalanceCents int64
}

// SimulationResult summarizes one amortization run. Capped means the
// 360-month ceiling was hit and Months reads as "30y+".
type SimulationResult struct {
	Strategy           string
	Months             int
	Capped             bool
	TotalInterestCents int64
	Timeline           []BalancePoint
}
