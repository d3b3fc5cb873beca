// Package strategy turns a financial configuration and a point-in-time cash
// snapshot into a funding plan for the current pay cycle: how much must move
// from savings to checking, and which debt to attack with surplus cash.
//
// PlanCycle is a pure function of its inputs. Every comparison runs on
// integer cents and basis points, every ranking is a total order, and ratio
// comparisons use cross-multiplication, so identical inputs always produce
// identical plans.
package strategy

import (
	"strings"
	"time"

	"github.com/pfennig-app/pfennig/internal/dates"
	"github.com/pfennig-app/pfennig/internal/model"
)

// Tuning constants. The threshold multiples and the promo window were tuned
// empirically; they are variables so a caller can override them, but the
// defaults are the contract.
var (
	// PromoWindowDays is how far out an expiring promotional APR still
	// qualifies for the promo-sprint override.
	PromoWindowDays = 90

	// CFI threshold multiples by pay frequency: a debt whose balance is
	// under threshold x its minimum payment can be eliminated fast enough
	// to beat pure APR ordering.
	ThresholdWeekly      int64 = 50
	ThresholdBiweekly    int64 = 35
	ThresholdSemimonthly int64 = 30
	ThresholdMonthly     int64 = 25

	// Day-based fallback tiers used when no pay frequency is configured.
	ThresholdTier1Days = 8
	ThresholdTier2Days = 16
)

// debt is the unified view of cards and non-card debts during planning.
type debt struct {
	name         string
	balance      int64
	apr          int64
	minPayment   int64
	dueDay       int
	promoExpires *time.Time
}

// PlanCycle computes the funding plan for the pay cycle beginning at the
// snapshot date. It never fails: missing or zero fields degrade to neutral
// values and an empty debt list simply yields a nil target.
func PlanCycle(cfg model.FinancialConfig, snap model.Snapshot) model.StrategyResult {
	asOf := snap.TakenAt.UTC()

	floor := cfg.WeeklyAllowanceCents + cfg.EmergencyFloorCents

	payday := dates.NextPayday(asOf, cfg.PaydayWeekday)
	horizon := dates.DaysBetween(asOf, payday)

	debts := collectDebts(cfg, snap)

	items, timeCritical, timeCriticalMin := timeCriticalGate(asOf, horizon, snap.Renewals, debts)

	cashAboveFloor := snap.CheckingCents - floor

	transfer := int64(0)
	if cashAboveFloor < timeCritical {
		transfer = timeCritical - cashAboveFloor
		if transfer > snap.SavingsCents {
			transfer = snap.SavingsCents
		}
		if transfer < 0 {
			transfer = 0
		}
	}

	totalMinimums := int64(0)
	for _, d := range debts {
		if d.balance > 0 {
			totalMinimums += d.minPayment
		}
	}

	surplus := cashAboveFloor - timeCritical - (totalMinimums - timeCriticalMin)
	if surplus < 0 {
		surplus = 0
	}

	result := model.StrategyResult{
		FloorCents:               floor,
		CycleDays:                horizon,
		NextPayday:               payday,
		TimeCriticalCents:        timeCritical,
		TimeCriticalMinimumCents: timeCriticalMin,
		TimeCriticalItems:        items,
		RequiredTransferCents:    transfer,
		IsNegativeCashFlow:       cashAboveFloor < 0,
		OperationalSurplusCents:  surplus,
	}

	if surplus > 0 {
		result.Target = selectTarget(debts, surplus, asOf, horizon, cfg.PayFrequency)
	}
	return result
}

func collectDebts(cfg model.FinancialConfig, snap model.Snapshot) []debt {
	out := make([]debt, 0, len(snap.Cards)+len(cfg.Debts))
	for _, c := range snap.Cards {
		apr := c.AprBps
		if apr == 0 {
			apr = cfg.DefaultAprBps
		}
		out = append(out, debt{
			name:         c.Name,
			balance:      c.BalanceCents,
			apr:          apr,
			minPayment:   c.MinPaymentCents,
			dueDay:       c.DueDay,
			promoExpires: c.PromoExpires,
		})
	}
	for _, d := range cfg.Debts {
		apr := d.AprBps
		if apr == 0 {
			apr = cfg.DefaultAprBps
		}
		out = append(out, debt{
			name:       d.Name,
			balance:    d.BalanceCents,
			apr:        apr,
			minPayment: d.MinPaymentCents,
			dueDay:     d.DueDay,
		})
	}
	return out
}

// timeCriticalGate sums obligations due before the next paycheck: cash
// renewals plus debt minimums with due dates inside the horizon. Renewals
// charged to a card post to that card's balance instead of drawing cash, so
// they are skipped.
func timeCriticalGate(asOf time.Time, horizon int, renewals []model.Renewal, debts []debt) ([]model.TimeCriticalItem, int64, int64) {
	var items []model.TimeCriticalItem
	total := int64(0)
	minimums := int64(0)

	for _, r := range renewals {
		if r.Cancelled || r.ChargedToCard != "" || r.AmountCents <= 0 {
			continue
		}
		d := dates.DaysBetween(asOf, r.NextDue.UTC())
		if d < 0 || d > horizon {
			continue
		}
		items = append(items, model.TimeCriticalItem{
			Name:        r.Name,
			AmountCents: r.AmountCents,
			Due:         r.NextDue.UTC(),
			Kind:        "bill",
		})
		total += r.AmountCents
	}

	for _, dd := range debts {
		if dd.balance <= 0 || dd.minPayment <= 0 || dd.dueDay < 1 {
			continue
		}
		due := dates.NextDayOfMonth(asOf, dd.dueDay)
		if dates.DaysBetween(asOf, due) > horizon {
			continue
		}
		items = append(items, model.TimeCriticalItem{
			Name:        dd.name,
			AmountCents: dd.minPayment,
			Due:         due,
			Kind:        "minimum",
		})
		total += dd.minPayment
		minimums += dd.minPayment
	}

	return items, total, minimums
}

// selectTarget picks the single debt to attack with surplus cash under the
// override hierarchy: promo-sprint beats cfi-override beats avalanche.
func selectTarget(debts []debt, surplus int64, asOf time.Time, horizon int, freq model.PayFrequency) *model.DebtTarget {
	open := make([]debt, 0, len(debts))
	for _, d := range debts {
		if d.balance > 0 {
			open = append(open, d)
		}
	}
	if len(open) == 0 {
		return nil
	}

	// An expiring promotional balance always wins: missing a deferred-
	// interest deadline dwarfs any APR-ordering gain.
	if promo, ok := bestPromo(open, asOf); ok {
		return makeTarget(promo, surplus, model.MethodPromoSprint)
	}

	if cfi, ok := bestCFI(open); ok {
		threshold := cfiThreshold(freq, horizon)
		if cfi.balance < threshold*cfi.minPayment {
			return makeTarget(cfi, surplus, model.MethodCFIOverride)
		}
	}

	return makeTarget(bestAvalanche(open), surplus, model.MethodAvalanche)
}

func makeTarget(d debt, surplus int64, method string) *model.DebtTarget {
	amount := surplus
	if amount > d.balance {
		amount = d.balance
	}
	return &model.DebtTarget{Name: d.name, AmountCents: amount, Method: method}
}

// avalancheLess is the fully deterministic avalanche total order: APR
// descending, then balance ascending, then minimum payment descending, then
// case-insensitive name ascending.
func avalancheLess(a, b debt) bool {
	if a.apr != b.apr {
		return a.apr > b.apr
	}
	if a.balance != b.balance {
		return a.balance < b.balance
	}
	if a.minPayment != b.minPayment {
		return a.minPayment > b.minPayment
	}
	return strings.ToLower(a.name) < strings.ToLower(b.name)
}

func bestAvalanche(open []debt) debt {
	best := open[0]
	for _, d := range open[1:] {
		if avalancheLess(d, best) {
			best = d
		}
	}
	return best
}

// bestCFI finds the smallest balance-to-minimum ratio among debts with a
// positive minimum payment. The ratio comparison cross-multiplies instead of
// dividing so no floating-point rounding can reorder candidates. A debt with
// a zero minimum cannot be artificially prioritized and is ineligible.
func bestCFI(open []debt) (debt, bool) {
	var best debt
	found := false
	for _, d := range open {
		if d.minPayment <= 0 {
			continue
		}
		if !found {
			best, found = d, true
			continue
		}
		if cfiLess(d, best) {
			best = d
		}
	}
	return best, found
}

func cfiLess(a, b debt) bool {
	lhs := a.balance * b.minPayment
	rhs := b.balance * a.minPayment
	if lhs != rhs {
		return lhs < rhs
	}
	if a.apr != b.apr {
		return a.apr > b.apr
	}
	if a.balance != b.balance {
		return a.balance < b.balance
	}
	return strings.ToLower(a.name) < strings.ToLower(b.name)
}

// bestPromo finds the most urgent active promotional balance: expiring within
// PromoWindowDays and more than 0 days out. Urgency is
// balance * postExpiryApr / daysToExpiration, again compared by
// cross-multiplying the two candidates' numerators and denominators.
func bestPromo(open []debt, asOf time.Time) (debt, bool) {
	type candidate struct {
		d    debt
		days int64
	}
	var best candidate
	found := false

	for _, d := range open {
		if d.promoExpires == nil {
			continue
		}
		days := int64(dates.DaysBetween(asOf, d.promoExpires.UTC()))
		if days <= 0 || days > int64(PromoWindowDays) {
			continue
		}
		c := candidate{d: d, days: days}
		if !found {
			best, found = c, true
			continue
		}
		if promoMoreUrgent(c.d, c.days, best.d, best.days) {
			best = c
		}
	}
	return best.d, found
}

func promoMoreUrgent(a debt, aDays int64, b debt, bDays int64) bool {
	lhs := a.balance * a.apr * bDays
	rhs := b.balance * b.apr * aDays
	if lhs != rhs {
		return lhs > rhs
	}
	if aDays != bDays {
		return aDays < bDays
	}
	return avalancheLess(a, b)
}

// cfiThreshold returns the minimum-payment multiple under which a CFI
// candidate beats pure APR ordering. Pay frequency decides when configured;
// otherwise days to the next paycheck pick a tier.
func cfiThreshold(freq model.PayFrequency, horizon int) int64 {
	switch freq {
	case model.PayWeekly:
		return ThresholdWeekly
	case model.PayBiweekly:
		return ThresholdBiweekly
	case model.PaySemimonthly:
		return ThresholdSemimonthly
	case model.PayMonthly:
		return ThresholdMonthly
	}
	switch {
	case horizon <= ThresholdTier1Days:
		return ThresholdWeekly
	case horizon <= ThresholdTier2Days:
		return ThresholdBiweekly
	default:
		return ThresholdMonthly
	}
}
