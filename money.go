package debtplan

import (
	"math"

	"github.com/shopspring/decimal"
)

// C1: Numerics — pure monthly-interest, principal, balance, and
// payoff-month math (§4.2). Dollars are decimal.Decimal rather than
// float64, since the $1/$5 thresholds used throughout §4 need exact
// comparisons.

var (
	twelve   = decimal.NewFromInt(12)
	zeroAmt  = decimal.Zero
	oneDollar = decimal.NewFromInt(1)
	fiveDollars = decimal.NewFromInt(5)
)

// MonthlyInterest computes i = balance * annualRate / 12.
func MonthlyInterest(balance, annualRate decimal.Decimal) decimal.Decimal {
	if balance.Sign() <= 0 {
		return zeroAmt
	}
	return balance.Mul(annualRate).Div(twelve).Round(2)
}

// Principal computes p = payment - interest. May be negative; callers that
// have already rejected NegativeAmortization inputs (§7) will not see a
// persistently negative principal, but a single month's value can still be
// negative transiently when payment < interest due to rounding.
func Principal(payment, interest decimal.Decimal) decimal.Decimal {
	return payment.Sub(interest)
}

// NewBalance computes b' = max(0, balance - principal) when principal >= 0,
// else b' = balance - principal (balance grows) — §4.2.
func NewBalance(balance, principal decimal.Decimal) decimal.Decimal {
	next := balance.Sub(principal)
	if principal.Sign() >= 0 && next.Sign() < 0 {
		return zeroAmt
	}
	return next.Round(2)
}

// IsNegativeAmortization reports whether minimumPayment fails to cover the
// monthly interest accrued on currentAmount at annualRate (§3 invariant,
// §7 NegativeAmortization).
func IsNegativeAmortization(currentAmount, annualRate, minimumPayment decimal.Decimal) bool {
	interest := MonthlyInterest(currentAmount, annualRate)
	return minimumPayment.Cmp(interest) <= 0 && currentAmount.Sign() > 0
}

// MonthsToPayoff returns the closed-form amortization month count for
// paying off balance at annualRate (applied monthly as annualRate/12)
// with a fixed payment per month.
// Returns -1 (infinite) when payment <= monthly interest on the balance.
func MonthsToPayoff(balance, annualRate, payment decimal.Decimal) int {
	if balance.Sign() <= 0 {
		return 0
	}
	monthlyRate := annualRate.Div(twelve)
	interest := balance.Mul(monthlyRate)
	if payment.Cmp(interest) <= 0 {
		return -1
	}
	if monthlyRate.Sign() == 0 {
		months := balance.Div(payment)
		return ceilInt(months)
	}
	// n = -log(1 - r*B/P) / log(1+r)
	r, _ := monthlyRate.Float64()
	b, _ := balance.Float64()
	p, _ := payment.Float64()
	ratio := 1 - r*b/p
	if ratio <= 0 {
		// r*B >= P: the payment does not exceed the interest (float
		// rounding of the decimal check above)
		return -1
	}
	n := -math.Log(ratio) / math.Log(1+r)
	if n < 1 {
		n = 1
	}
	return int(n + 0.999999)
}

func ceilInt(d decimal.Decimal) int {
	i := d.IntPart()
	if d.Sub(decimal.NewFromInt(i)).Sign() > 0 {
		i++
	}
	return int(i)
}

// IsEffectivelyPaidOff reports balance <= $5, the threshold the search
// (§4.7) and avalanche phase (§4.8) use to call a debt retired.
func IsEffectivelyPaidOff(balance decimal.Decimal) bool {
	return balance.Cmp(fiveDollars) <= 0
}

// IsDust reports balance <= $1, the discretizer's zero-snap threshold
// (§4.3) and the avalanche phase's termination threshold (§4.8).
func IsDust(balance decimal.Decimal) bool {
	return balance.Cmp(oneDollar) <= 0
}
