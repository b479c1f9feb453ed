package debtplan

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PayoffStrategy is a straight-line (non-A*) payment ordering rule.
// SimulateStrategy gives library consumers cheap access to the
// snowball/avalanche comparison without paying for a full A* search.
type PayoffStrategy string

const (
	StrategySnowball  PayoffStrategy = "snowball"  // smallest balance first
	StrategyAvalanche PayoffStrategy = "avalanche" // highest rate first
)

// SimulateStrategy runs a fixed-order extra-payment rollup (no tiering, no
// A*, no liberation modeling beyond the single shared budget) and reports
// it through the same PlanReport shape Plan uses, so a caller can display
// "optimizer plan vs. plain avalanche" side by side.
func SimulateStrategy(debts DebtSet, budget Budget, strategy PayoffStrategy, maxMonths int, now time.Time) (PlanReport, error) {
	if len(debts) == 0 {
		return PlanReport{GeneratedAt: now}, nil
	}
	if maxMonths <= 0 {
		maxMonths = 370
	}

	activeMinimums := decimal.Zero
	for _, d := range debts {
		if d.CurrentAmount.Sign() <= 0 {
			continue
		}
		if IsNegativeAmortization(d.CurrentAmount, d.AnnualRate, d.MinimumPayment) {
			return PlanReport{}, &NegativeAmortizationError{
				DebtID:          d.ID,
				MinimumPayment:  d.MinimumPayment.StringFixed(2),
				MonthlyInterest: MonthlyInterest(d.CurrentAmount, d.AnnualRate).StringFixed(2),
			}
		}
		activeMinimums = activeMinimums.Add(d.MinimumPayment)
	}
	if budget.Cmp(activeMinimums) < 0 {
		return PlanReport{}, &InsufficientBudgetError{Budget: budget.StringFixed(2), MinimumTotal: activeMinimums.StringFixed(2)}
	}

	order := make([]int, len(debts))
	for i := range order {
		order[i] = i
	}

	balances := balancesOf(debts)

	var actions []Action
	for month := 1; month <= maxMonths; month++ {
		if allEffectivelyPaidOff(balances) {
			break
		}
		sortOrderByStrategy(order, debts, balances, strategy)

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
		actions = append(actions, Action{Kind: ActionSmartAvalanche, Payments: payments})
	}

	allIdx := make([]int, len(debts))
	for i := range allIdx {
		allIdx[i] = i
	}
	tiered := TieredDebts{High: debts, HighIdx: allIdx}
	result := TierPlanResult{Actions: actions, CompletionMonth: completionMonthOf(actions)}
	empty := TierPlanResult{}
	return Simulate(debts, tiered, result, empty, empty, DefaultOptions(), now)
}

func completionMonthOf(actions []Action) int {
	if len(actions) == 0 {
		return 0
	}
	return len(actions)
}

func sortOrderByStrategy(order []int, debts []Debt, balances BalanceVector, strategy PayoffStrategy) {
	switch strategy {
	case StrategySnowball:
		sort.Slice(order, func(a, b int) bool {
			if balances[order[a]].Equal(balances[order[b]]) {
				return debts[order[a]].AnnualRate.Cmp(debts[order[b]].AnnualRate) > 0
			}
			return balances[order[a]].Cmp(balances[order[b]]) < 0
		})
	default: // StrategyAvalanche
		sort.Slice(order, func(a, b int) bool {
			if debts[order[a]].AnnualRate.Equal(debts[order[b]].AnnualRate) {
				return balances[order[a]].Cmp(balances[order[b]]) < 0
			}
			return debts[order[a]].AnnualRate.Cmp(debts[order[b]].AnnualRate) > 0
		})
	}
}
