package debtplan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegativeAmortizationErrorUnwraps(t *testing.T) {
	err := &NegativeAmortizationError{DebtID: "cc1", MinimumPayment: "10.00", MonthlyInterest: "20.00"}

	assert.True(t, errors.Is(err, ErrNegativeAmortization))
	assert.Contains(t, err.Error(), "cc1")
}

func TestInsufficientBudgetErrorUnwraps(t *testing.T) {
	err := &InsufficientBudgetError{Budget: "500.00", MinimumTotal: "600.00"}

	assert.True(t, errors.Is(err, ErrInsufficientBudget))
	assert.Contains(t, err.Error(), "500.00")
}

func TestCalculationErrorUnwraps(t *testing.T) {
	err := &CalculationError{DebtID: "a", Month: 3, Reason: "balance increased"}

	assert.True(t, errors.Is(err, ErrCalculationError))
	assert.Contains(t, err.Error(), "month 3")
}
