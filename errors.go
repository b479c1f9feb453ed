package debtplan

import (
	"errors"
	"strconv"
)

// Error taxonomy (§7). Names are semantic; callers compare with errors.Is.
var (
	// ErrInsufficientBudget: budget < Σ minimums. Rejected before planning.
	ErrInsufficientBudget = errors.New("debtplan: budget is less than the sum of minimum payments")

	// ErrNegativeAmortization: some debt's minimum payment is less than or
	// equal to its own monthly interest. Rejected before planning.
	ErrNegativeAmortization = errors.New("debtplan: minimum payment does not cover monthly interest")

	// ErrCalculationError: the reporter detected a non-monotonic balance
	// during simulation. Fatal — indicates a bug, always surfaced.
	ErrCalculationError = errors.New("debtplan: balance increased during simulation")
)

// NegativeAmortizationError wraps ErrNegativeAmortization with the
// offending debt so callers can report which input failed validation.
type NegativeAmortizationError struct {
	DebtID          string
	MinimumPayment  string
	MonthlyInterest string
}

func (e *NegativeAmortizationError) Error() string {
	return "debtplan: debt " + e.DebtID + " minimum payment " + e.MinimumPayment +
		" does not cover monthly interest " + e.MonthlyInterest
}

func (e *NegativeAmortizationError) Unwrap() error { return ErrNegativeAmortization }

// InsufficientBudgetError wraps ErrInsufficientBudget with the shortfall.
type InsufficientBudgetError struct {
	Budget       string
	MinimumTotal string
}

func (e *InsufficientBudgetError) Error() string {
	return "debtplan: budget " + e.Budget + " is below required minimums total " + e.MinimumTotal
}

func (e *InsufficientBudgetError) Unwrap() error { return ErrInsufficientBudget }

// CalculationError wraps ErrCalculationError with simulation context.
type CalculationError struct {
	DebtID string
	Month  int
	Reason string
}

func (e *CalculationError) Error() string {
	return "debtplan: calculation error for debt " + e.DebtID + " at month " +
		strconv.Itoa(e.Month) + ": " + e.Reason
}

func (e *CalculationError) Unwrap() error { return ErrCalculationError }
