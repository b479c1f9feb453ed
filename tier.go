package debtplan

import "github.com/shopspring/decimal"

// C4: Categorizer & Allocator — splits debts into HIGH/MEDIUM/LOW tiers
// and splits the monthly budget among tiers (§4.1).

var (
	autoLoanLowThreshold    = decimal.NewFromInt(30000)
	studentLoanMedThreshold = decimal.NewFromFloat(0.08)
	personalLoanHighRate    = decimal.NewFromFloat(0.12)
	otherLowBalance         = decimal.NewFromInt(50000)
	otherLowRate            = decimal.NewFromFloat(0.08)
	otherHighRate           = decimal.NewFromFloat(0.15)
	otherHighBalance        = decimal.NewFromInt(5000)
)

// Categorize assigns a Debt to HIGH/MEDIUM/LOW using the closed rule table
// of §4.1, applied in order, first match wins.
func Categorize(d Debt) Tier {
	switch d.Type {
	case Mortgage:
		return TierLow
	case CreditCard:
		return TierHigh
	case MedicalDebt:
		return TierHigh
	case AutoLoan:
		if d.CurrentAmount.Cmp(autoLoanLowThreshold) > 0 {
			return TierLow
		}
		return TierMedium
	case StudentLoan:
		if d.AnnualRate.Cmp(studentLoanMedThreshold) > 0 {
			return TierMedium
		}
		return TierLow
	case PersonalLoan:
		if d.AnnualRate.Cmp(personalLoanHighRate) > 0 {
			return TierHigh
		}
		return TierMedium
	case OtherDebt:
		if d.CurrentAmount.Cmp(otherLowBalance) > 0 && d.AnnualRate.Cmp(otherLowRate) < 0 {
			return TierLow
		}
		if d.AnnualRate.Cmp(otherHighRate) > 0 || d.CurrentAmount.Cmp(otherHighBalance) < 0 {
			return TierHigh
		}
		return TierMedium
	default:
		return TierMedium
	}
}

// TieredDebts groups a DebtSet by tier, preserving each debt's original
// DebtSet index so payment vectors can be mapped back.
type TieredDebts struct {
	High   []Debt
	Medium []Debt
	Low    []Debt

	HighIdx   []int
	MediumIdx []int
	LowIdx    []int
}

// CategorizeAll partitions debts by tier, preserving input order within
// each tier.
func CategorizeAll(debts DebtSet) TieredDebts {
	var t TieredDebts
	for i, d := range debts {
		switch Categorize(d) {
		case TierHigh:
			t.High = append(t.High, d)
			t.HighIdx = append(t.HighIdx, i)
		case TierMedium:
			t.Medium = append(t.Medium, d)
			t.MediumIdx = append(t.MediumIdx, i)
		default:
			t.Low = append(t.Low, d)
			t.LowIdx = append(t.LowIdx, i)
		}
	}
	return t
}

func sumMinimums(debts []Debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		total = total.Add(d.MinimumPayment)
	}
	return total
}

func containsMedical(debts []Debt) bool {
	for _, d := range debts {
		if d.Type == MedicalDebt {
			return true
		}
	}
	return false
}

func allStudentLoans(debts []Debt) bool {
	if len(debts) == 0 {
		return false
	}
	for _, d := range debts {
		if d.Type != StudentLoan {
			return false
		}
	}
	return true
}

// TierBudgets is the monthly budget split by tier (§4.1).
type TierBudgets struct {
	High   decimal.Decimal
	Medium decimal.Decimal
	Low    decimal.Decimal
}

// Allocate splits budget among the tiers per §4.1's percentage rules.
// Allocation never fails: every input budget (already validated to be
// >= the sum of all minimums by the caller) yields a valid split.
func Allocate(t TieredDebts, budget decimal.Decimal) TierBudgets {
	mHigh := sumMinimums(t.High)
	mMed := sumMinimums(t.Medium)
	mLow := sumMinimums(t.Low)
	extra := budget.Sub(mHigh).Sub(mMed).Sub(mLow)
	if extra.Sign() < 0 {
		extra = decimal.Zero
	}

	hasHigh := len(t.High) > 0
	hasMed := len(t.Medium) > 0
	hasLow := len(t.Low) > 0

	var pH, pM, pL decimal.Decimal
	switch {
	case containsMedical(t.High):
		pH, pM, pL = decimal.NewFromFloat(0.9), decimal.NewFromFloat(0.1), decimal.Zero
	case !hasHigh && !hasMed && hasLow:
		pH, pM, pL = decimal.Zero, decimal.Zero, decimal.NewFromInt(1)
	case hasHigh && !hasMed && !hasLow:
		pH, pM, pL = decimal.NewFromInt(1), decimal.Zero, decimal.Zero
	case !hasHigh && hasMed && !hasLow:
		pH, pM, pL = decimal.Zero, decimal.NewFromInt(1), decimal.Zero
	case hasHigh && !hasMed && hasLow:
		pH, pM, pL = decimal.NewFromFloat(0.8), decimal.Zero, decimal.NewFromFloat(0.2)
	case allStudentLoans(t.Medium) && hasMed:
		pM = decimal.NewFromFloat(0.3)
		pH = decimal.NewFromInt(1).Sub(pM)
		pL = decimal.Zero
	default:
		pH, pM, pL = decimal.NewFromFloat(0.8), decimal.NewFromFloat(0.2), decimal.Zero
	}

	return TierBudgets{
		High:   mHigh.Add(pH.Mul(extra)).Round(2),
		Medium: mMed.Add(pM.Mul(extra)).Round(2),
		Low:    mLow.Add(pL.Mul(extra)).Round(2),
	}
}
