package debtplan

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestMonthlyInterest(t *testing.T) {
	t.Run("computes balance * rate / 12", func(t *testing.T) {
		got := MonthlyInterest(d("1000"), d("0.24"))
		assert.True(t, got.Equal(d("20.00")), "expected 20.00, got %s", got)
	})

	t.Run("zero for non-positive balance", func(t *testing.T) {
		assert.True(t, MonthlyInterest(d("0"), d("0.24")).IsZero())
		assert.True(t, MonthlyInterest(d("-5"), d("0.24")).IsZero())
	})
}

func TestPrincipal(t *testing.T) {
	assert.True(t, Principal(d("100"), d("20")).Equal(d("80")))
}

func TestNewBalance(t *testing.T) {
	t.Run("floors at zero on overpayment", func(t *testing.T) {
		got := NewBalance(d("100"), d("150"))
		assert.True(t, got.IsZero())
	})

	t.Run("grows when principal is negative", func(t *testing.T) {
		got := NewBalance(d("100"), d("-10"))
		assert.True(t, got.Equal(d("110.00")))
	})
}

func TestIsNegativeAmortization(t *testing.T) {
	t.Run("true when minimum does not exceed interest", func(t *testing.T) {
		assert.True(t, IsNegativeAmortization(d("10000"), d("0.24"), d("199.99")))
	})

	t.Run("false once minimum exceeds interest", func(t *testing.T) {
		assert.False(t, IsNegativeAmortization(d("10000"), d("0.24"), d("250")))
	})

	t.Run("false for already-retired debt", func(t *testing.T) {
		assert.False(t, IsNegativeAmortization(d("0"), d("0.24"), d("0")))
	})
}

func TestMonthsToPayoff(t *testing.T) {
	t.Run("zero balance pays off immediately", func(t *testing.T) {
		assert.Equal(t, 0, MonthsToPayoff(d("0"), d("0.2"), d("100")))
	})

	t.Run("infinite when payment never clears interest", func(t *testing.T) {
		assert.Equal(t, -1, MonthsToPayoff(d("10000"), d("0.24"), d("100")))
	})

	t.Run("zero rate divides evenly", func(t *testing.T) {
		got := MonthsToPayoff(d("1000"), d("0"), d("100"))
		assert.Equal(t, 10, got)
	})

	t.Run("single payment clears the balance", func(t *testing.T) {
		got := MonthsToPayoff(d("100"), d("0.1"), d("1000"))
		assert.Equal(t, 1, got)
	})
}

func TestThresholds(t *testing.T) {
	t.Run("effectively paid off at or under five dollars", func(t *testing.T) {
		assert.True(t, IsEffectivelyPaidOff(d("5")))
		assert.True(t, IsEffectivelyPaidOff(d("0")))
		assert.False(t, IsEffectivelyPaidOff(d("5.01")))
	})

	t.Run("dust at or under one dollar", func(t *testing.T) {
		assert.True(t, IsDust(d("1")))
		assert.False(t, IsDust(d("1.01")))
	})
}
