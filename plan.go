package debtplan

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Options are the per-call resource limits and knobs a caller may tune;
// the core holds no global/module-level state (§5) — everything a
// search needs travels as per-call arguments.
type Options struct {
	MaxIterations int           // per-tier A* iteration cap (§4.7 default 8,000,000)
	MaxMonths     int           // per-tier relative-month cap (§4.7 default 370)
	MaxWallClock  time.Duration // per-tier wall-clock cap (§4.7 default 30s)
	HeapCapacity  int           // C3 bounded heap capacity (§4.4 default 100,000)
	EvictionMode  EvictionMode  // C3 eviction policy (§4.4 default EvictStrict)
	Logger        *zap.Logger   // structured logger; defaults to a no-op logger
	Now           func() time.Time
}

// DefaultOptions returns the §4.4/§4.7 defaults.
func DefaultOptions() Options {
	return Options{
		MaxIterations: 8_000_000,
		MaxMonths:     370,
		MaxWallClock:  30 * time.Second,
		HeapCapacity:  defaultHeapCapacity,
		EvictionMode:  EvictStrict,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxIterations <= 0 {
		o.MaxIterations = d.MaxIterations
	}
	if o.MaxMonths <= 0 {
		o.MaxMonths = d.MaxMonths
	}
	if o.MaxWallClock <= 0 {
		o.MaxWallClock = d.MaxWallClock
	}
	if o.HeapCapacity <= 0 {
		o.HeapCapacity = d.HeapCapacity
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Plan runs the full C4 -> C7(HIGH) -> C7(MEDIUM) -> C8(LOW) -> C9
// pipeline (§2 control flow) and returns the resulting PlanReport.
//
// Plan is stateless: every call owns its own search contexts, heaps, and
// closed sets (§5); two concurrent calls on different inputs are safe.
func Plan(debts DebtSet, budget Budget, opts Options) (PlanReport, error) {
	opts = opts.withDefaults()
	now := opts.Now()

	if len(debts) == 0 {
		return PlanReport{GeneratedAt: now, Options: opts}, nil
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

	tiered := CategorizeAll(debts)
	budgets := Allocate(tiered, budget)
	opts.Logger.Info("categorized and allocated",
		zap.Int("high_count", len(tiered.High)), zap.Int("medium_count", len(tiered.Medium)), zap.Int("low_count", len(tiered.Low)),
		zap.String("high_budget", budgets.High.StringFixed(2)), zap.String("medium_budget", budgets.Medium.StringFixed(2)), zap.String("low_budget", budgets.Low.StringFixed(2)),
	)

	highBalances := balancesOf(tiered.High)
	highResult := AStarSearch(tiered.High, highBalances, budgets.High, 0, noLiberation, decimal.Zero, opts, opts.Logger)
	if !highResult.IsOptimal {
		opts.Logger.Warn("HIGH tier search degraded to best-found", zap.Int("iterations", highResult.IterationsUsed))
	}

	medLiberationMonth := noLiberation
	if highResult.CompletionMonth >= 0 {
		medLiberationMonth = highResult.CompletionMonth
	}
	medBalances := balancesOf(tiered.Medium)
	medResult := AStarSearch(tiered.Medium, medBalances, budgets.Medium, 0, medLiberationMonth, budgets.High, opts, opts.Logger)
	if !medResult.IsOptimal {
		opts.Logger.Warn("MEDIUM tier search degraded to best-found", zap.Int("iterations", medResult.IterationsUsed))
	}

	lowLiberationMonth := noLiberation
	if highResult.CompletionMonth >= 0 && medResult.CompletionMonth >= 0 {
		lowLiberationMonth = max(highResult.CompletionMonth, medResult.CompletionMonth)
	} else if highResult.CompletionMonth >= 0 {
		lowLiberationMonth = highResult.CompletionMonth
	} else if medResult.CompletionMonth >= 0 {
		lowLiberationMonth = medResult.CompletionMonth
	}
	lowBalances := balancesOf(tiered.Low)
	lowResult := HybridAvalanche(tiered.Low, lowBalances, budgets.Low, 0, lowLiberationMonth, budgets.High.Add(budgets.Medium))

	report, err := Simulate(debts, tiered, highResult, medResult, lowResult, opts, now)
	if err != nil {
		return PlanReport{}, err
	}
	return report, nil
}

func balancesOf(debts []Debt) BalanceVector {
	out := make(BalanceVector, len(debts))
	for i, d := range debts {
		out[i] = d.CurrentAmount
	}
	return out
}
