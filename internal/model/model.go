// Package model defines the engine's input and output types. All monetary
// fields are integer cents and all rates are integer basis points; the
// engine never compares or sums floating-point dollars.
package model

import "time"

// PayFrequency names a recurring pay cadence.
type PayFrequency string

// Known pay frequencies.
const (
	PayWeekly      PayFrequency = "weekly"
	PayBiweekly    PayFrequency = "bi-weekly"
	PaySemimonthly PayFrequency = "semi-monthly"
	PayMonthly     PayFrequency = "monthly"
	PayQuarterly   PayFrequency = "quarterly"
	PayAnnual      PayFrequency = "annual"
)

// FinancialConfig holds the user's long-lived settings. It is passed by
// value into every engine call and never mutated by the engine.
type FinancialConfig struct {
	WeeklyAllowanceCents int64
	EmergencyFloorCents  int64
	DefaultAprBps        int64

	PayFrequency  PayFrequency
	PaydayWeekday string
	PaycheckCents int64

	SafeWithdrawalBps int64
	ExpectedReturnBps int64
	InflationBps      int64

	BudgetCategories   []BudgetCategory
	Debts              []NonCardDebt
	IncomeSources      []IncomeSource
	SavingsGoals       []SavingsGoal
	InvestmentAccounts []InvestmentAccount
}

// BudgetCategory is a named monthly spending budget.
type BudgetCategory struct {
	Name         string
	MonthlyCents int64
}

// IncomeSource is a recurring income stream.
type IncomeSource struct {
	Name        string
	AmountCents int64
	Frequency   PayFrequency
}

// SavingsGoal tracks progress toward a named target.
type SavingsGoal struct {
	Name        string
	TargetCents int64
	SavedCents  int64
}

// InvestmentAccount is a manually entered portfolio balance mirror.
type InvestmentAccount struct {
	Name         string
	BalanceCents int64
}

// Card is a revolving-debt instrument. AprBps is the post-promotional rate;
// a non-nil PromoExpires marks an active promotional APR ending on that date.
type Card struct {
	ID              string
	Name            string
	BalanceCents    int64
	AprBps          int64
	MinPaymentCents int64
	DueDay          int
	PromoExpires    *time.Time
}

// NonCardDebt is an installment or personal loan: a Card without promo
// fields.
type NonCardDebt struct {
	ID              string
	Name            string
	BalanceCents    int64
	AprBps          int64
	MinPaymentCents int64
	DueDay          int
}

// Renewal is a recurring bill. A renewal charged to a card posts to that
// card's balance rather than drawing cash, so it is excluded from the
// time-critical cash gate.
type Renewal struct {
	Name          string
	AmountCents   int64
	NextDue       time.Time
	IntervalCount int
	IntervalUnit  string // "day", "week", "month", "year"
	ChargedToCard string // card ID, empty when paid from checking
	Cancelled     bool
}

// Snapshot is a point-in-time view of the user's cash position. It exists
// only for the duration of one engine call.
type Snapshot struct {
	TakenAt          time.Time
	CheckingCents    int64
	SavingsCents     int64
	MarketValueCents int64
	Cards            []Card
	Renewals         []Renewal
}

// SimDebt is the simulator's flattened debt view.
type SimDebt struct {
	Name            string
	BalanceCents    int64
	AprBps          int64
	MinPaymentCents int64
}

// SimDebtsFrom flattens cards and non-card debts with positive balances into
// the simulator's input shape.
func SimDebtsFrom(cards []Card, debts []NonCardDebt) []SimDebt {
	out := make([]SimDebt, 0, len(cards)+len(debts))
	for _, c := range cards {
		if c.BalanceCents > 0 {
			out = append(out, SimDebt{Name: c.Name, BalanceCents: c.BalanceCents, AprBps: c.AprBps, MinPaymentCents: c.MinPaymentCents})
		}
	}
	for _, d := range debts {
		if d.BalanceCents > 0 {
			out = append(out, SimDebt{Name: d.Name, BalanceCents: d.BalanceCents, AprBps: d.AprBps, MinPaymentCents: d.MinPaymentCents})
		}
	}
	return out
}
