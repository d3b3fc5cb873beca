// Package payoff simulates multi-year debt amortization under competing
// payoff strategies. The caller runs it once per strategy and compares the
// outcomes; the simulator itself never picks a winner.
package payoff

import (
	"sort"
	"strings"

	"github.com/pfennig-app/pfennig/internal/model"
	"github.com/pfennig-app/pfennig/internal/money"
)

// Strategy names an extra-payment ordering.
type Strategy string

// Supported strategies.
const (
	Avalanche Strategy = "avalanche" // highest APR first
	Snowball  Strategy = "snowball"  // smallest balance first
)

// MaxMonths is the 30-year simulation ceiling. A debt set whose minimums
// never cover accruing interest stops here and reports Capped instead of
// looping forever.
const MaxMonths = 360

// sampleEvery controls timeline density: every 3rd month is recorded, plus
// the first three months and the payoff month.
const sampleEvery = 3

type account struct {
	name       string
	balance    int64
	apr        int64
	minPayment int64
}

// Simulate runs the month-by-month amortization loop for one strategy.
// Debts are re-ranked every month because relative rank shifts as balances
// shrink at different rates.
func Simulate(debts []model.SimDebt, extraMonthlyCents int64, strategy Strategy) model.SimulationResult {
	accounts := make([]*account, 0, len(debts))
	for _, d := range debts {
		if d.BalanceCents <= 0 {
			continue
		}
		accounts = append(accounts, &account{
			name:       d.Name,
			balance:    d.BalanceCents,
			apr:        d.AprBps,
			minPayment: d.MinPaymentCents,
		})
	}

	result := model.SimulationResult{Strategy: string(strategy)}
	if len(accounts) == 0 {
		result.Timeline = []model.BalancePoint{{Month: 0, BalanceCents: 0}}
		return result
	}

	if extraMonthlyCents < 0 {
		extraMonthlyCents = 0
	}

	for month := 1; month <= MaxMonths; month++ {
		// Accrue one month of interest on every open balance.
		for _, a := range accounts {
			if a.balance <= 0 {
				continue
			}
			interest := money.MonthlyInterest(a.balance, a.apr)
			a.balance += interest
			result.TotalInterestCents += interest
		}

		// Minimum payments, capped at the remaining balance.
		for _, a := range accounts {
			if a.balance <= 0 {
				continue
			}
			pay := a.minPayment
			if pay > a.balance {
				pay = a.balance
			}
			a.balance -= pay
		}

		// Extra payment to the top-ranked open debt, spilling the
		// remainder down only after the target is extinguished.
		remaining := extraMonthlyCents
		for remaining > 0 {
			target := topRanked(accounts, strategy)
			if target == nil {
				break
			}
			pay := remaining
			if pay > target.balance {
				pay = target.balance
			}
			target.balance -= pay
			remaining -= pay
		}

		total := totalBalance(accounts)
		if total == 0 {
			result.Months = month
			result.Timeline = appendSample(result.Timeline, month, 0)
			return result
		}
		if month <= sampleEvery || month%sampleEvery == 0 {
			result.Timeline = appendSample(result.Timeline, month, total)
		}
	}

	result.Months = MaxMonths
	result.Capped = true
	return result
}

func totalBalance(accounts []*account) int64 {
	total := int64(0)
	for _, a := range accounts {
		total += a.balance
	}
	return total
}

func appendSample(tl []model.BalancePoint, month int, balance int64) []model.BalancePoint {
	if n := len(tl); n > 0 && tl[n-1].Month == month {
		return tl
	}
	return append(tl, model.BalancePoint{Month: month, BalanceCents: balance})
}

// topRanked returns the open debt the active strategy attacks first, or nil
// when everything is paid off.
func topRanked(accounts []*account, strategy Strategy) *account {
	var best *account
	for _, a := range accounts {
		if a.balance <= 0 {
			continue
		}
		if best == nil || rankLess(a, best, strategy) {
			best = a
		}
	}
	return best
}

// rankLess is the total order for each strategy. Both end in minimum-payment
// descending then case-insensitive name ascending so ties always resolve to
// a single deterministic debt.
func rankLess(a, b *account, strategy Strategy) bool {
	if strategy == Snowball {
		if a.balance != b.balance {
			return a.balance < b.balance
		}
		if a.apr != b.apr {
			return a.apr > b.apr
		}
	} else {
		if a.apr != b.apr {
			return a.apr > b.apr
		}
		if a.balance != b.balance {
			return a.balance < b.balance
		}
	}
	if a.minPayment != b.minPayment {
		return a.minPayment > b.minPayment
	}
	return strings.ToLower(a.name) < strings.ToLower(b.name)
}

// Rank returns debts ordered under the given strategy without simulating.
// The dashboard uses it to show the attack order for the current month.
func Rank(debts []model.SimDebt, strategy Strategy) []model.SimDebt {
	accounts := make([]*account, 0, len(debts))
	for _, d := range debts {
		if d.BalanceCents > 0 {
			accounts = append(accounts, &account{
				name:       d.Name,
				balance:    d.BalanceCents,
				apr:        d.AprBps,
				minPayment: d.MinPaymentCents,
			})
		}
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		return rankLess(accounts[i], accounts[j], strategy)
	})

	out := make([]model.SimDebt, len(accounts))
	for i, a := range accounts {
		out[i] = model.SimDebt{
			Name:            a.name,
			BalanceCents:    a.balance,
			AprBps:          a.apr,
			MinPaymentCents: a.minPayment,
		}
	}
	return out
}
