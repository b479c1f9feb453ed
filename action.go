package debtplan

import (
	"sort"

	"github.com/shopspring/decimal"
)

// C5: Action Generator — from a balance vector and current budget, emits
// a small ranked set of candidate payment vectors ("strategies"), §4.5.

const rapidLiberationMaxMonths = 3
const rapidLiberationBalanceMultiplier = 2.5
const balanced6535MinExtra = 100
const progressiveSnowballMinPayment = 50

// actionDebtInfo is the per-debt working data §4.5 asks for: monthly
// interest, efficiency, months-to-payoff, and freed cash flow.
type actionDebtInfo struct {
	idx             int
	debt            Debt
	balance         decimal.Decimal
	monthlyInterest decimal.Decimal
	efficiency      decimal.Decimal // balance / minimum
	monthsToPayoff  int
	freedCashFlow   decimal.Decimal // == minimum payment
}

func buildActionDebtInfo(debts []Debt, balances BalanceVector, extra decimal.Decimal) []actionDebtInfo {
	infos := make([]actionDebtInfo, 0, len(debts))
	for i, d := range debts {
		b := balances[i]
		if b.Sign() <= 0 {
			continue
		}
		r := MonthlyInterest(b, d.AnnualRate)
		eff := decimal.Zero
		if d.MinimumPayment.Sign() > 0 {
			eff = b.Div(d.MinimumPayment)
		}
		months := MonthsToPayoff(b, d.AnnualRate, d.MinimumPayment.Add(extra))
		infos = append(infos, actionDebtInfo{
			idx:             i,
			debt:            d,
			balance:         b,
			monthlyInterest: r,
			efficiency:      eff,
			monthsToPayoff:  months,
			freedCashFlow:   d.MinimumPayment,
		})
	}
	return infos
}

func minimumsVector(debts []Debt, balances BalanceVector) BalanceVector {
	out := make(BalanceVector, len(debts))
	for i, d := range debts {
		if balances[i].Sign() <= 0 {
			out[i] = decimal.Zero
			continue
		}
		m := d.MinimumPayment
		if m.Cmp(balances[i]) > 0 {
			m = balances[i]
		}
		out[i] = m
	}
	return out
}

func clampAction(debts []Debt, balances BalanceVector, payments BalanceVector) BalanceVector {
	out := payments.Clone()
	for i, d := range debts {
		if balances[i].Sign() <= 0 {
			out[i] = decimal.Zero
			continue
		}
		ceiling := balances[i].Add(MonthlyInterest(balances[i], d.AnnualRate))
		if out[i].Cmp(ceiling) > 0 {
			out[i] = ceiling
		}
		if out[i].Sign() < 0 {
			out[i] = decimal.Zero
		}
	}
	return out
}

func vectorKey(v BalanceVector) string {
	s := ""
	for _, x := range v {
		s += x.StringFixed(2) + "|"
	}
	return s
}

// GenerateActions emits up to eight candidate Actions for the given active
// debts, their current balances, and the effective budget for this month
// (§4.5). debts and balances must be the same length and index-aligned.
func GenerateActions(debts []Debt, balances BalanceVector, budget decimal.Decimal) []Action {
	base := minimumsVector(debts, balances)
	minSum := base.Total()
	extra := budget.Sub(minSum)

	minimumsAction := Action{Kind: ActionMinimumsOnly, Label: ActionMinimumsOnly.label(), Priority: 0, Payments: base}

	if extra.Sign() <= 0 {
		return []Action{minimumsAction}
	}

	infos := buildActionDebtInfo(debts, balances, extra)
	actions := []Action{minimumsAction}

	if a, ok := immediateLiberationAction(debts, balances, base, infos, extra, budget); ok {
		actions = append(actions, a)
	}
	if a, ok := rapidLiberationAction(debts, balances, base, infos, extra, budget); ok {
		actions = append(actions, a)
	}
	if a, ok := smartAvalancheAction(debts, base, infos, extra); ok {
		actions = append(actions, a)
	}
	if a, ok := efficiencyAction(debts, base, infos, extra); ok {
		actions = append(actions, a)
	}
	if a, ok := cashFlowWeightedAction(debts, base, infos, extra); ok {
		actions = append(actions, a)
	}
	if a, ok := balanced6535Action(debts, base, infos, extra); ok {
		actions = append(actions, a)
	}
	if a, ok := progressiveSnowballAction(debts, base, infos, extra); ok {
		actions = append(actions, a)
	}

	return dedupeAndClamp(debts, balances, actions)
}

func dedupeAndClamp(debts []Debt, balances BalanceVector, actions []Action) []Action {
	seen := make(map[string]bool, len(actions))
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		a.Payments = clampAction(debts, balances, a.Payments)
		key := vectorKey(a.Payments)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out
}

func immediateLiberationAction(debts []Debt, balances, base BalanceVector, infos []actionDebtInfo, extra, budget decimal.Decimal) (Action, bool) {
	candidates := make([]actionDebtInfo, 0)
	for _, inf := range infos {
		if inf.balance.Cmp(extra) <= 0 {
			candidates = append(candidates, inf)
		}
	}
	if len(candidates) == 0 {
		return Action{}, false
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].balance.Cmp(candidates[j].balance) < 0 })

	payments := base.Clone()
	total := base.Total()
	for _, c := range candidates {
		payoff := c.balance.Add(c.monthlyInterest)
		delta := payoff.Sub(payments[c.idx])
		if total.Add(delta).Cmp(budget) > 0 {
			continue
		}
		payments[c.idx] = payoff
		total = total.Add(delta)
	}
	return Action{Kind: ActionImmediateLiberation, Label: ActionImmediateLiberation.label(), Priority: 100, Payments: payments}, true
}

func rapidLiberationAction(debts []Debt, balances, base BalanceVector, infos []actionDebtInfo, extra, budget decimal.Decimal) (Action, bool) {
	maxBalance := extra.Mul(decimal.NewFromFloat(rapidLiberationBalanceMultiplier))
	candidates := make([]actionDebtInfo, 0)
	for _, inf := range infos {
		if inf.monthsToPayoff >= 0 && inf.monthsToPayoff <= rapidLiberationMaxMonths && inf.balance.Cmp(maxBalance) <= 0 {
			candidates = append(candidates, inf)
		}
	}
	if len(candidates) == 0 {
		return Action{}, false
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].freedCashFlow.Cmp(candidates[j].freedCashFlow) > 0 })
	if len(candidates) > 2 {
		candidates = candidates[:2]
	}

	payments := base.Clone()
	total := base.Total()
	for _, c := range candidates {
		payoff := c.balance.Add(c.monthlyInterest)
		delta := payoff.Sub(payments[c.idx])
		if total.Add(delta).Cmp(budget) > 0 {
			continue
		}
		payments[c.idx] = payoff
		total = total.Add(delta)
	}
	return Action{Kind: ActionRapidLiberation, Label: ActionRapidLiberation.label(), Priority: 90, Payments: payments}, true
}

func smartAvalancheAction(debts []Debt, base BalanceVector, infos []actionDebtInfo, extra decimal.Decimal) (Action, bool) {
	if len(infos) == 0 {
		return Action{}, false
	}
	best := infos[0]
	for _, inf := range infos[1:] {
		if inf.monthlyInterest.Cmp(best.monthlyInterest) > 0 {
			best = inf
		}
	}
	payments := base.Clone()
	payments[best.idx] = payments[best.idx].Add(extra)
	return Action{Kind: ActionSmartAvalanche, Label: ActionSmartAvalanche.label(), Priority: 80, Payments: payments}, true
}

func efficiencyAction(debts []Debt, base BalanceVector, infos []actionDebtInfo, extra decimal.Decimal) (Action, bool) {
	if len(infos) == 0 {
		return Action{}, false
	}
	best := infos[0]
	for _, inf := range infos[1:] {
		if inf.efficiency.Cmp(best.efficiency) > 0 {
			best = inf
		}
	}
	payments := base.Clone()
	payments[best.idx] = payments[best.idx].Add(extra)
	return Action{Kind: ActionEfficiency, Label: ActionEfficiency.label(), Priority: 75, Payments: payments}, true
}

func cashFlowWeightedAction(debts []Debt, base BalanceVector, infos []actionDebtInfo, extra decimal.Decimal) (Action, bool) {
	if len(infos) == 0 {
		return Action{}, false
	}
	score := func(inf actionDebtInfo) decimal.Decimal {
		return inf.freedCashFlow.Mul(twelve).Add(inf.monthlyInterest)
	}
	best := infos[0]
	bestScore := score(best)
	for _, inf := range infos[1:] {
		s := score(inf)
		if s.Cmp(bestScore) > 0 {
			best, bestScore = inf, s
		}
	}
	payments := base.Clone()
	payments[best.idx] = payments[best.idx].Add(extra)
	return Action{Kind: ActionCashFlowWeighted, Label: ActionCashFlowWeighted.label(), Priority: 70, Payments: payments}, true
}

func balanced6535Action(debts []Debt, base BalanceVector, infos []actionDebtInfo, extra decimal.Decimal) (Action, bool) {
	if extra.Cmp(decimal.NewFromInt(balanced6535MinExtra)) < 0 || len(infos) < 2 {
		return Action{}, false
	}
	score := func(inf actionDebtInfo) decimal.Decimal {
		return inf.monthlyInterest.Add(inf.freedCashFlow.Mul(decimal.NewFromInt(3))).Add(inf.efficiency.Div(decimal.NewFromInt(10)))
	}
	ranked := append([]actionDebtInfo(nil), infos...)
	sort.Slice(ranked, func(i, j int) bool { return score(ranked[i]).Cmp(score(ranked[j])) > 0 })
	top2 := ranked[:2]

	majorShare := extra.Mul(decimal.NewFromFloat(0.65)).Truncate(2)
	minorShare := extra.Sub(majorShare)

	payments := base.Clone()
	payments[top2[0].idx] = payments[top2[0].idx].Add(majorShare)
	payments[top2[1].idx] = payments[top2[1].idx].Add(minorShare)
	return Action{Kind: ActionBalanced6535, Label: ActionBalanced6535.label(), Priority: 60, Payments: payments}, true
}

func progressiveSnowballAction(debts []Debt, base BalanceVector, infos []actionDebtInfo, extra decimal.Decimal) (Action, bool) {
	eligible := make([]actionDebtInfo, 0)
	for _, inf := range infos {
		if inf.debt.MinimumPayment.Cmp(decimal.NewFromInt(progressiveSnowballMinPayment)) >= 0 {
			eligible = append(eligible, inf)
		}
	}
	if len(eligible) == 0 {
		return Action{}, false
	}
	smallest := eligible[0]
	for _, inf := range eligible[1:] {
		if inf.balance.Cmp(smallest.balance) < 0 {
			smallest = inf
		}
	}
	payments := base.Clone()
	payments[smallest.idx] = payments[smallest.idx].Add(extra)
	return Action{Kind: ActionProgressiveSnowball, Label: ActionProgressiveSnowball.label(), Priority: 50, Payments: payments}, true
}
