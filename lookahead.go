package debtplan

import "github.com/shopspring/decimal"

// C6: Lookahead Evaluator — ranks the top three actions by priority, then
// for each simulates three months of self-repeated application to produce
// a heuristic refinement score (§4.6).

const lookaheadDepth = 3
const lookaheadTopN = 3
const lookaheadSurvivors = 4

// EvaluateActions scores and ranks candidate actions, returning at most
// lookaheadSurvivors entries ordered by score descending (§4.6).
func EvaluateActions(debts []Debt, balances BalanceVector, actions []Action) []scoredAction {
	ranked := append([]Action(nil), actions...)
	// Stable sort by priority descending for selecting the top N to simulate.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].Priority > ranked[j-1].Priority; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	scored := make([]scoredAction, 0, len(ranked))
	for i, a := range ranked {
		if i < lookaheadTopN {
			scored = append(scored, scoredAction{action: a, score: simulateLookahead(debts, balances, a.Payments)})
		} else {
			scored = append(scored, scoredAction{action: a, score: float64(a.Priority)})
		}
	}

	for i := 1; i < len(scored); i++ {
		for j := i; j > 0 && scored[j].score > scored[j-1].score; j-- {
			scored[j], scored[j-1] = scored[j-1], scored[j]
		}
	}

	if len(scored) > lookaheadSurvivors {
		scored = scored[:lookaheadSurvivors]
	}
	return scored
}

// simulateLookahead applies payments repeatedly for lookaheadDepth months
// on a discretized working copy of balances (§4.6: the lookahead runs on
// discretized balances, matching the granularity the search itself
// reasons over), tracking accumulated principal P and interest I, and
// returns the §4.6 score.
func simulateLookahead(debts []Debt, balances BalanceVector, payments BalanceVector) float64 {
	work := make(BalanceVector, len(balances))
	for i, b := range balances {
		work[i] = DiscretizeDecimal(b)
	}
	start := work.Total()

	accruedPrincipal := decimal.Zero
	accruedInterest := decimal.Zero

	for month := 1; month <= lookaheadDepth; month++ {
		allPaid := true
		for i, d := range debts {
			if work[i].Sign() <= 0 {
				continue
			}
			interest := MonthlyInterest(work[i], d.AnnualRate)
			work[i] = work[i].Add(interest)

			pay := payments[i]
			if pay.Cmp(work[i]) > 0 {
				pay = work[i]
			}
			principal := pay.Sub(interest)
			work[i] = DiscretizeDecimal(NewBalance(work[i], pay))

			accruedInterest = accruedInterest.Add(interest)
			if principal.Sign() > 0 {
				accruedPrincipal = accruedPrincipal.Add(principal)
			}
			if !IsEffectivelyPaidOff(work[i]) {
				allPaid = false
			}
		}
		if allPaid {
			return 1000 - float64(month)
		}
	}

	end := work.Total()
	p, _ := accruedPrincipal.Float64()
	i, _ := accruedInterest.Float64()
	s, _ := start.Float64()
	e, _ := end.Float64()

	denom := i
	if denom < 1 {
		denom = 1
	}
	return 10*(s-e) + 5*(p/denom) + p
}
