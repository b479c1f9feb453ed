package debtplan

import (
	"sort"

	"github.com/shopspring/decimal"
)

// C8: Hybrid Avalanche Phase — used for the LOW tier instead of A* (§4.8):
// minimums-only until liberation, then cascading avalanche targeting the
// highest-monthly-interest debt, with liberated minimums only applying
// starting the month *after* a debt retires.

const avalancheMaxMonths = 500
const avalancheTieBreakDollars = 5

// HybridAvalanche runs the LOW-tier payoff phase.
func HybridAvalanche(
	debts []Debt,
	initialBalances BalanceVector,
	baseBudget decimal.Decimal,
	tStart int,
	liberationAvailableMonth int,
	liberatedBudget decimal.Decimal,
) TierPlanResult {
	allDust := func(v BalanceVector) bool {
		for _, x := range v {
			if !IsDust(x) {
				return false
			}
		}
		return true
	}
	if len(debts) == 0 || allDust(initialBalances) {
		return TierPlanResult{IsOptimal: true, CompletionMonth: 0}
	}

	balances := initialBalances.Clone()
	var actions []Action
	nextMonthBump := decimal.Zero
	liberated := liberatedBudget
	completion := -1

	for month := 1; month <= avalancheMaxMonths; month++ {
		liberated = liberated.Add(nextMonthBump)
		nextMonthBump = decimal.Zero

		tAbs := tStart + month
		var budget decimal.Decimal
		if tAbs >= liberationAvailableMonth {
			budget = baseBudget.Add(liberated)
		} else {
			budget = baseBudget
		}

		payments := make(BalanceVector, len(debts))
		remaining := budget
		for i, d := range debts {
			if balances[i].Sign() <= 0 {
				continue
			}
			m := d.MinimumPayment
			if m.Cmp(balances[i]) > 0 {
				m = balances[i]
			}
			payments[i] = m
			remaining = remaining.Sub(m)
		}

		if tAbs >= liberationAvailableMonth && remaining.Sign() > 0 {
			target := pickAvalancheTarget(debts, balances)
			if target >= 0 {
				payments[target] = payments[target].Add(remaining)
			}
		}

		next := applyPayments(debts, balances, payments)
		for i, d := range debts {
			if !IsEffectivelyPaidOff(balances[i]) && IsEffectivelyPaidOff(next[i]) {
				nextMonthBump = nextMonthBump.Add(d.MinimumPayment)
			}
		}
		balances = next
		actions = append(actions, Action{Kind: ActionSmartAvalanche, Label: "Hybrid Avalanche", Priority: 80, Payments: payments})

		if allDust(balances) {
			completion = month
			break
		}
	}

	return TierPlanResult{
		Actions:         actions,
		CompletionMonth: completion,
		IsOptimal:       completion >= 0,
	}
}

// pickAvalancheTarget selects the active debt with the highest monthly
// interest, breaking ties within $5/mo by annual rate (§4.8 step 2).
func pickAvalancheTarget(debts []Debt, balances BalanceVector) int {
	best := -1
	var bestInterest decimal.Decimal
	for i, d := range debts {
		if balances[i].Sign() <= 0 {
			continue
		}
		interest := MonthlyInterest(balances[i], d.AnnualRate)
		if best < 0 {
			best, bestInterest = i, interest
			continue
		}
		diff := interest.Sub(bestInterest).Abs()
		if diff.Cmp(decimal.NewFromInt(avalancheTieBreakDollars)) < 0 {
			if d.AnnualRate.Cmp(debts[best].AnnualRate) > 0 {
				best, bestInterest = i, interest
			}
			continue
		}
		if interest.Cmp(bestInterest) > 0 {
			best, bestInterest = i, interest
		}
	}
	return best
}

// AvalancheOnlyFallback is the deterministic fallback §4.7 requires when
// A* makes no progress at all: a plain avalanche ordering (highest rate
// first) with no tier liberation modeling, run until payoff or cap.
func AvalancheOnlyFallback(debts []Debt, initialBalances BalanceVector, budget decimal.Decimal, maxMonths int) TierPlanResult {
	balances := initialBalances.Clone()
	order := make([]int, len(debts))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return debts[order[a]].AnnualRate.Cmp(debts[order[b]].AnnualRate) > 0
	})

	var actions []Action
	completion := -1
	for month := 1; month <= maxMonths; month++ {
		payments := make(BalanceVector, len(debts))
		remaining := budget
		for _, i := range order {
			if balances[i].Sign() <= 0 {
				continue
			}
			m := debts[i].MinimumPayment
			if m.Cmp(balances[i]) > 0 {
				m = balances[i]
			}
			payments[i] = m
			remaining = remaining.Sub(m)
		}
		for _, i := range order {
			if remaining.Sign() <= 0 {
				break
			}
			if balances[i].Sign() <= 0 {
				continue
			}
			interest := MonthlyInterest(balances[i], debts[i].AnnualRate)
			ceiling := balances[i].Add(interest).Sub(payments[i])
			pay := remaining
			if pay.Cmp(ceiling) > 0 {
				pay = ceiling
			}
			payments[i] = payments[i].Add(pay)
			remaining = remaining.Sub(pay)
		}
		balances = applyPayments(debts, balances, payments)
		actions = append(actions, Action{Kind: ActionSmartAvalanche, Label: "Avalanche Fallback", Priority: 80, Payments: payments})
		if allEffectivelyPaidOff(balances) {
			completion = month
			break
		}
	}

	return TierPlanResult{
		Actions:         actions,
		CompletionMonth: completion,
		IsOptimal:       false,
	}
}
