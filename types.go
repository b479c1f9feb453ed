// Package debtplan implements the three-phase priority-decomposed A* debt
// elimination planner: given a DebtSet and a monthly Budget, it produces an
// optimal month-by-month payment schedule and a full amortization
// projection per debt and per month.
package debtplan

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtType classifies a Debt for tier categorization (§4.1).
type DebtType string

const (
	CreditCard   DebtType = "CREDIT_CARD"
	MedicalDebt  DebtType = "MEDICAL_DEBT"
	AutoLoan     DebtType = "AUTO_LOAN"
	StudentLoan  DebtType = "STUDENT_LOAN"
	PersonalLoan DebtType = "PERSONAL_LOAN"
	Mortgage     DebtType = "MORTGAGE"
	OtherDebt    DebtType = "OTHER"
)

// Tier is the HIGH/MEDIUM/LOW classification a Debt receives from the
// categorizer (C4, §4.1).
type Tier int

const (
	TierHigh Tier = iota
	TierMedium
	TierLow
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "HIGH"
	case TierMedium:
		return "MEDIUM"
	case TierLow:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// Debt is an immutable input record for one outstanding debt (§3).
type Debt struct {
	ID              string
	Name            string
	Type            DebtType
	OriginalAmount  decimal.Decimal
	CurrentAmount   decimal.Decimal
	AnnualRate      decimal.Decimal
	MinimumPayment  decimal.Decimal
}

// MonthlyInterest returns the interest this debt accrues in one month on
// its current balance (§4.2).
func (d Debt) MonthlyInterest() decimal.Decimal {
	return MonthlyInterest(d.CurrentAmount, d.AnnualRate)
}

// DebtSet is the ordered sequence of Debt the caller supplies; the order
// is the canonical index used throughout every BalanceVector/Action (§3).
type DebtSet []Debt

// Budget is the caller-computed monthly cash available for debt payments
// (monthly income minus monthly expenses, §3).
type Budget = decimal.Decimal

// BalanceVector holds one value per debt, aligned by DebtSet index. Inside
// the search it holds discretized balances; inside the reporter it holds
// true balances (§3).
type BalanceVector []decimal.Decimal

// Clone returns an independent copy of the vector.
func (v BalanceVector) Clone() BalanceVector {
	out := make(BalanceVector, len(v))
	copy(out, v)
	return out
}

// Total sums the vector.
func (v BalanceVector) Total() decimal.Decimal {
	total := decimal.Zero
	for _, b := range v {
		total = total.Add(b)
	}
	return total
}

// ActionKind names one of the eight §4.5 payment-vector generators. It is
// a flat sum type rather than an interface hierarchy.
type ActionKind int

const (
	ActionMinimumsOnly ActionKind = iota
	ActionImmediateLiberation
	ActionRapidLiberation
	ActionSmartAvalanche
	ActionEfficiency
	ActionCashFlowWeighted
	ActionBalanced6535
	ActionProgressiveSnowball
)

func (k ActionKind) label() string {
	switch k {
	case ActionMinimumsOnly:
		return "Minimums Only"
	case ActionImmediateLiberation:
		return "Immediate Liberation"
	case ActionRapidLiberation:
		return "Rapid Liberation"
	case ActionSmartAvalanche:
		return "Smart Avalanche"
	case ActionEfficiency:
		return "Efficiency"
	case ActionCashFlowWeighted:
		return "Cash-Flow-Weighted"
	case ActionBalanced6535:
		return "Balanced 65/35"
	case ActionProgressiveSnowball:
		return "Progressive Snowball"
	default:
		return "Unknown"
	}
}

// Action (Strategy) is a candidate payment vector for one month (§3, §4.5).
type Action struct {
	Kind     ActionKind
	Label    string
	Priority int
	Payments BalanceVector // aligned to the tier's active debt slice
}

// Score is populated by the lookahead evaluator (C6) before ranking.
type scoredAction struct {
	action Action
	score  float64
}

// PlannedPayment is one line of the first-month payment breakdown (§6).
type PlannedPayment struct {
	DebtID         string
	Amount         decimal.Decimal
	MinimumPayment decimal.Decimal
	ExtraAmount    decimal.Decimal
	Tier           Tier
}

// DebtMonthPayment is one debt's row inside a MonthlyProjection entry (§6).
type DebtMonthPayment struct {
	DebtID     string
	Payment    decimal.Decimal
	Interest   decimal.Decimal
	Principal  decimal.Decimal
	NewBalance decimal.Decimal
}

// MonthlyProjection is one month of the portfolio-wide projection (§6),
// capped at the first 36 months.
type MonthlyProjection struct {
	Month                 int
	TotalDebtRemaining     decimal.Decimal
	TotalInterestPaid      decimal.Decimal
	PerDebtPayments        []DebtMonthPayment
}

// MonthlyPaymentRow is one month of a single debt's own timeline (§6),
// capped at the first 24 rows.
type MonthlyPaymentRow struct {
	Month      int
	Payment    decimal.Decimal
	Interest   decimal.Decimal
	Principal  decimal.Decimal
	NewBalance decimal.Decimal
}

// DebtTimeline is the per-debt payoff summary (§6).
type DebtTimeline struct {
	DebtID           string
	PayoffMonth      int
	PayoffDate       time.Time
	TotalInterest    decimal.Decimal
	TotalPaid        decimal.Decimal
	AvgPrincipalPct  decimal.Decimal
	MonthlyPayments  []MonthlyPaymentRow
}

// PayoffEvent is one entry of the portfolio-wide payoff order (§6).
type PayoffEvent struct {
	Month          int
	DebtID         string
	FreedCashFlow  decimal.Decimal
}

// PlanReport is the core's sole output (§6).
type PlanReport struct {
	IsOptimal                 bool
	ProjectedMonths           int
	TotalInterestPaid         decimal.Decimal
	DebtFreeDate              time.Time
	PlannedFirstMonthPayments []PlannedPayment
	MonthlyProjection         []MonthlyProjection
	DebtTimeline              []DebtTimeline
	PayoffOrder               []PayoffEvent

	// GeneratedAt and Options help a caller inspecting a degraded
	// (IsOptimal=false) result understand when and under what limits it
	// was produced.
	GeneratedAt time.Time
	Options     Options
}
