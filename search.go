package debtplan

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// C7: A* Search — best-first search over discretized balance vectors
// using C2 (discretizer/interner), C3 (bounded heap), C5 (action
// generator), and C6 (lookahead evaluator), returning an optimal (or
// best-found) path (§4.7).

const noLiberation = math.MaxInt32

// SearchNode is one arena entry. Path reconstruction walks ParentIndex
// from the goal node rather than cloning the path on each expansion,
// avoiding an O(n) copy at every node.
type SearchNode struct {
	Balances       BalanceVector
	Month          int // relative month (t_rel) reached at this node
	GCost          float64
	HCost          float64
	FCost          float64
	ParentIndex    int // -1 for the root
	ArenaIndex     int
	Action         Action
	StateKey       uint32
	insertionOrder int64
}

// TierPlanResult is one tier's search (or avalanche-phase) outcome.
type TierPlanResult struct {
	Tier            Tier
	Actions         []Action // one per elapsed month, Payments aligned to the tier's debt slice
	CompletionMonth int      // relative month all tier debts reached <= $5; -1 if never
	IsOptimal       bool
	IterationsUsed  int
	Evicted         int
}

func effectiveBudgetAt(tStart, tRel, liberationAvailableMonth int, base, liberated decimal.Decimal) decimal.Decimal {
	tAbs := tStart + tRel
	if tAbs >= liberationAvailableMonth {
		return base.Add(liberated)
	}
	return base
}

// heuristic implements §4.7's h(balances): projected freed cash flow,
// enhanced budget, estimated months, complexity penalty, liberation bonus.
func heuristic(debts []Debt, balances BalanceVector, budget decimal.Decimal) float64 {
	d, _ := balances.Total().Float64()
	b, _ := budget.Float64()
	if b <= 0 {
		return math.Inf(1)
	}

	freedCashFlow := 0.0
	highMinimumCount := 0
	threeBudget := budget.Mul(decimal.NewFromInt(3))
	for i, deb := range debts {
		bal := balances[i]
		if bal.Sign() <= 0 {
			continue
		}
		r := MonthlyInterest(bal, deb.AnnualRate)
		if bal.Cmp(threeBudget) <= 0 {
			denom := budget.Sub(r)
			if denom.Sign() > 0 && bal.Div(denom).Cmp(decimal.NewFromInt(3)) <= 0 {
				m, _ := deb.MinimumPayment.Float64()
				freedCashFlow += m
			}
		}
		if deb.MinimumPayment.Cmp(decimal.NewFromInt(100)) > 0 {
			highMinimumCount++
		}
	}

	enhancedBudget := b + 0.5*freedCashFlow
	if enhancedBudget <= 0 {
		return math.Inf(1)
	}
	estimatedMonths := math.Ceil(d / (0.75 * enhancedBudget))

	complexityPenalty := 0.3 * math.Max(0, float64(highMinimumCount)-1)
	liberationBonus := 0.0
	if freedCashFlow > 100 {
		liberationBonus = -1
	}

	return estimatedMonths + complexityPenalty + liberationBonus
}

func discretizedTotal(v BalanceVector) int64 {
	var total int64
	for _, x := range v {
		total += Discretize(x)
	}
	return total
}

func allEffectivelyPaidOff(v BalanceVector) bool {
	for _, x := range v {
		if !IsEffectivelyPaidOff(x) {
			return false
		}
	}
	return true
}

func applyPayments(debts []Debt, balances, payments BalanceVector) BalanceVector {
	next := make(BalanceVector, len(debts))
	for i, d := range debts {
		bal := balances[i]
		if bal.Sign() <= 0 {
			next[i] = decimal.Zero
			continue
		}
		interest := MonthlyInterest(bal, d.AnnualRate)
		bal = bal.Add(interest)
		pay := payments[i]
		if pay.Cmp(bal) > 0 {
			pay = bal
		}
		next[i] = NewBalance(bal, pay)
	}
	return next
}

// AStarSearch plans one tier from month tStart with the stated liberation
// schedule, returning a TierPlanResult. liberationAvailableMonth ==
// noLiberation disables cross-tier liberation for this search (the HIGH
// tier's own call).
func AStarSearch(
	tierDebts []Debt,
	initialBalances BalanceVector,
	baseBudget decimal.Decimal,
	tStart int,
	liberationAvailableMonth int,
	liberatedBudget decimal.Decimal,
	opts Options,
	logger *zap.Logger,
) TierPlanResult {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(tierDebts) == 0 || allEffectivelyPaidOff(initialBalances) {
		return TierPlanResult{IsOptimal: true, CompletionMonth: 0}
	}

	arena := make([]*SearchNode, 0, 1024)
	open := NewBoundedHeap(opts.HeapCapacity, opts.EvictionMode)
	closed := make(map[uint32]float64, 1024)

	rootBudget := effectiveBudgetAt(tStart, 0, liberationAvailableMonth, baseBudget, liberatedBudget)
	root := &SearchNode{
		Balances:    initialBalances.Clone(),
		Month:       0,
		GCost:       0,
		HCost:       heuristic(tierDebts, initialBalances, rootBudget),
		ParentIndex: -1,
		StateKey:    StateKeyFromBalances(initialBalances),
	}
	root.FCost = root.GCost + root.HCost
	root.ArenaIndex = 0
	arena = append(arena, root)
	open.Push(root)

	deadline := time.Now().Add(opts.MaxWallClock)
	iterations := 0
	var bestPartial *SearchNode
	bestPartialTotal := decimal.Decimal{}
	bestPartialSet := false

	for open.Len() > 0 {
		iterations++
		if iterations > opts.MaxIterations {
			logger.Warn("tier search hit iteration cap", zap.Int("iterations", iterations))
			break
		}
		if iterations%20000 == 0 && time.Now().After(deadline) {
			logger.Warn("tier search hit wall-clock cap", zap.Int("iterations", iterations))
			break
		}

		current := open.Pop()
		currentIdx := current.ArenaIndex

		total := current.Balances.Total()
		if !bestPartialSet || total.Cmp(bestPartialTotal) < 0 ||
			(total.Cmp(bestPartialTotal) == 0 && current.Month < bestPartial.Month) {
			bestPartial = current
			bestPartialTotal = total
			bestPartialSet = true
		}

		if allEffectivelyPaidOff(current.Balances) {
			return buildTierResult(tierDebts, arena, current, currentIdx, true, iterations, open.Evicted())
		}

		if g, ok := closed[current.StateKey]; ok && g <= current.GCost {
			continue
		}
		closed[current.StateKey] = current.GCost

		if current.Month >= opts.MaxMonths {
			continue
		}

		nextMonth := current.Month + 1
		budget := effectiveBudgetAt(tStart, nextMonth, liberationAvailableMonth, baseBudget, liberatedBudget)

		candidateActions := GenerateActions(tierDebts, current.Balances, budget)
		ranked := EvaluateActions(tierDebts, current.Balances, candidateActions)

		currentDiscretized := discretizedTotal(current.Balances)

		for _, sc := range ranked {
			nextBalances := applyPayments(tierDebts, current.Balances, sc.action.Payments)
			nextDiscretized := discretizedTotal(nextBalances)
			if nextDiscretized >= currentDiscretized {
				continue
			}

			gPrime := current.GCost + 1
			nextKey := StateKeyFromBalances(nextBalances)
			if g, ok := closed[nextKey]; ok && g <= gPrime {
				continue
			}

			hPrime := heuristic(tierDebts, nextBalances, budget)
			lookaheadBonus := math.Min(5, sc.score/200)
			fPrime := gPrime + math.Max(0.5, hPrime-lookaheadBonus)

			node := &SearchNode{
				Balances:    nextBalances,
				Month:       nextMonth,
				GCost:       gPrime,
				HCost:       hPrime,
				FCost:       fPrime,
				ParentIndex: currentIdx,
				ArenaIndex:  len(arena),
				Action:      sc.action,
				StateKey:    nextKey,
			}
			arena = append(arena, node)
			open.Push(node)
		}
	}

	// Resource cap exhausted or frontier emptied without reaching goal:
	// return best-found (§4.7, §7 ResourceLimitReached).
	if bestPartial != nil && bestPartial.ParentIndex != -1 {
		return buildTierResult(tierDebts, arena, bestPartial, bestPartial.ArenaIndex, false, iterations, open.Evicted())
	}

	// No progress at all (the root is still the best node found):
	// deterministic avalanche-only fallback (§4.7).
	fallback := AvalancheOnlyFallback(tierDebts, initialBalances, baseBudget, opts.MaxMonths)
	return fallback
}

func buildTierResult(debts []Debt, arena []*SearchNode, goal *SearchNode, goalIdx int, isOptimal bool, iterations, evicted int) TierPlanResult {
	var actions []Action
	for idx := goalIdx; arena[idx].ParentIndex != -1; idx = arena[idx].ParentIndex {
		actions = append([]Action{arena[idx].Action}, actions...)
	}
	completion := -1
	if allEffectivelyPaidOff(goal.Balances) {
		completion = goal.Month
	}
	return TierPlanResult{
		Actions:         actions,
		CompletionMonth: completion,
		IsOptimal:       isOptimal,
		IterationsUsed:  iterations,
		Evicted:         evicted,
	}
}
