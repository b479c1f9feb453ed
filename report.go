package debtplan

import (
	"time"

	"github.com/shopspring/decimal"
)

// C9: Simulator & Reporter — replays the chosen per-tier payment paths on
// true (non-discretized) balances, producing per-month, per-debt
// amortization and a timeline (§4.9).

const firstMonthProjectionCap = 36
const firstMonthTimelineCap = 24

// debtAccumulator tracks one debt's running simulation state.
type debtAccumulator struct {
	debt            Debt
	balance         decimal.Decimal
	totalInterest   decimal.Decimal
	totalPaid       decimal.Decimal
	payoffMonth     int // -1 until retired
	monthlyPayments []MonthlyPaymentRow
	principalSum    decimal.Decimal
	paymentSum      decimal.Decimal // denominator for avg principal pct
}

// combinedMonthlyPayments maps each tier's relative-month action list back
// onto the original DebtSet index, one combined vector per elapsed month.
func combinedMonthlyPayments(n int, tiered TieredDebts, high, med, low TierPlanResult) []BalanceVector {
	maxMonths := len(high.Actions)
	if len(med.Actions) > maxMonths {
		maxMonths = len(med.Actions)
	}
	if len(low.Actions) > maxMonths {
		maxMonths = len(low.Actions)
	}

	months := make([]BalanceVector, maxMonths)
	for m := 0; m < maxMonths; m++ {
		v := make(BalanceVector, n)
		for i := range v {
			v[i] = decimal.Zero
		}
		if m < len(high.Actions) {
			scatter(v, tiered.HighIdx, high.Actions[m].Payments)
		}
		if m < len(med.Actions) {
			scatter(v, tiered.MediumIdx, med.Actions[m].Payments)
		}
		if m < len(low.Actions) {
			scatter(v, tiered.LowIdx, low.Actions[m].Payments)
		}
		months[m] = v
	}
	return months
}

func scatter(dst BalanceVector, idx []int, src BalanceVector) {
	for i, origIdx := range idx {
		if i < len(src) {
			dst[origIdx] = src[i]
		}
	}
}

// Simulate replays a combined monthly payment plan on true balances,
// producing the PlanReport. It is also the entry point for the
// pure-strategy comparison (see strategy.go's SimulateStrategy) once a
// caller has a payment plan in hand.
func Simulate(debts DebtSet, tiered TieredDebts, high, med, low TierPlanResult, opts Options, now time.Time) (PlanReport, error) {
	accs := make([]*debtAccumulator, len(debts))
	for i, d := range debts {
		accs[i] = &debtAccumulator{debt: d, balance: d.CurrentAmount, payoffMonth: -1, principalSum: decimal.Zero, paymentSum: decimal.Zero}
	}

	monthlyPlans := combinedMonthlyPayments(len(debts), tiered, high, med, low)

	var monthlyProjection []MonthlyProjection
	var payoffOrder []PayoffEvent
	totalInterestPaid := decimal.Zero
	lastMonth := 0

	for m, payments := range monthlyPlans {
		month := m + 1
		monthInterest := decimal.Zero
		var perDebt []DebtMonthPayment

		for i, acc := range accs {
			if acc.payoffMonth >= 0 {
				continue
			}
			prevBalance := acc.balance
			interest := MonthlyInterest(prevBalance, acc.debt.AnnualRate)
			accrued := prevBalance.Add(interest)

			pay := payments[i]
			if pay.Cmp(accrued) > 0 {
				pay = accrued
			}
			principal := pay.Sub(interest)
			newBalance := NewBalance(accrued, pay)

			if newBalance.Cmp(prevBalance) > 0 {
				return PlanReport{}, &CalculationError{DebtID: acc.debt.ID, Month: month, Reason: "balance increased during simulation"}
			}

			acc.balance = newBalance
			acc.totalInterest = acc.totalInterest.Add(interest)
			acc.totalPaid = acc.totalPaid.Add(pay)
			monthInterest = monthInterest.Add(interest)
			if principal.Sign() > 0 {
				acc.principalSum = acc.principalSum.Add(principal)
			}
			if pay.Sign() > 0 {
				acc.paymentSum = acc.paymentSum.Add(pay)
			}

			if len(acc.monthlyPayments) < firstMonthTimelineCap {
				acc.monthlyPayments = append(acc.monthlyPayments, MonthlyPaymentRow{
					Month: month, Payment: pay, Interest: interest, Principal: principal, NewBalance: newBalance,
				})
			}

			if month <= firstMonthProjectionCap {
				perDebt = append(perDebt, DebtMonthPayment{
					DebtID: acc.debt.ID, Payment: pay, Interest: interest, Principal: principal, NewBalance: newBalance,
				})
			}

			if IsDust(newBalance) && acc.payoffMonth < 0 {
				acc.payoffMonth = month
				payoffOrder = append(payoffOrder, PayoffEvent{Month: month, DebtID: acc.debt.ID, FreedCashFlow: acc.debt.MinimumPayment})
			}
		}

		totalInterestPaid = totalInterestPaid.Add(monthInterest)
		lastMonth = month

		if month <= firstMonthProjectionCap {
			remaining := decimal.Zero
			for _, acc := range accs {
				remaining = remaining.Add(acc.balance)
			}
			monthlyProjection = append(monthlyProjection, MonthlyProjection{
				Month: month, TotalDebtRemaining: remaining, TotalInterestPaid: totalInterestPaid, PerDebtPayments: perDebt,
			})
		}
	}

	var firstMonthPayments []PlannedPayment
	tierOf := make(map[string]Tier, len(debts))
	for _, i := range tiered.HighIdx {
		tierOf[debts[i].ID] = TierHigh
	}
	for _, i := range tiered.MediumIdx {
		tierOf[debts[i].ID] = TierMedium
	}
	for _, i := range tiered.LowIdx {
		tierOf[debts[i].ID] = TierLow
	}
	if len(monthlyPlans) > 0 {
		for i, d := range debts {
			amt := monthlyPlans[0][i]
			extra := amt.Sub(d.MinimumPayment)
			if extra.Sign() < 0 {
				extra = decimal.Zero
			}
			firstMonthPayments = append(firstMonthPayments, PlannedPayment{
				DebtID: d.ID, Amount: amt, MinimumPayment: d.MinimumPayment, ExtraAmount: extra, Tier: tierOf[d.ID],
			})
		}
	}

	var timeline []DebtTimeline
	for _, acc := range accs {
		avgPct := decimal.Zero
		if acc.paymentSum.Sign() > 0 {
			avgPct = acc.principalSum.Div(acc.paymentSum).Round(4)
		}
		payoffMonth := acc.payoffMonth
		if payoffMonth < 0 {
			payoffMonth = lastMonth
		}
		timeline = append(timeline, DebtTimeline{
			DebtID:          acc.debt.ID,
			PayoffMonth:     payoffMonth,
			PayoffDate:      now.AddDate(0, payoffMonth, 0),
			TotalInterest:   acc.totalInterest,
			TotalPaid:       acc.totalPaid,
			AvgPrincipalPct: avgPct,
			MonthlyPayments: acc.monthlyPayments,
		})
	}

	isOptimal := high.IsOptimal && med.IsOptimal && (low.CompletionMonth >= 0 || len(tiered.Low) == 0)

	return PlanReport{
		IsOptimal:                 isOptimal,
		ProjectedMonths:           lastMonth,
		TotalInterestPaid:         totalInterestPaid,
		DebtFreeDate:              now.AddDate(0, lastMonth, 0),
		PlannedFirstMonthPayments: firstMonthPayments,
		MonthlyProjection:         monthlyProjection,
		DebtTimeline:              timeline,
		PayoffOrder:               payoffOrder,
		GeneratedAt:               now,
		Options:                   opts,
	}, nil
}
