package debtplan

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQuantum(t *testing.T) {
	t.Run("small balances use the $25 step", func(t *testing.T) {
		assert.True(t, Quantum(d("300")).Equal(d("25")))
	})

	t.Run("medium balances use the $100 step", func(t *testing.T) {
		assert.True(t, Quantum(d("3000")).Equal(d("100")))
	})

	t.Run("large balances use the $250 step", func(t *testing.T) {
		assert.True(t, Quantum(d("10000")).Equal(d("250")))
	})
}

func TestDiscretize(t *testing.T) {
	t.Run("rounds to the nearest magnitude-dependent quantum", func(t *testing.T) {
		assert.Equal(t, int64(300), Discretize(d("305")))
		assert.Equal(t, int64(3000), Discretize(d("3030")))
	})

	t.Run("never undershoots by more than half a quantum (§8 invariant)", func(t *testing.T) {
		balance := d("149")
		quantum := Quantum(balance)
		lowerBound := balance.Sub(quantum.Div(d("2")))
		got := decimal.NewFromInt(Discretize(balance))
		assert.True(t, got.Cmp(lowerBound) >= 0, "discretize(%s)=%s undershot the %s floor", balance, got, lowerBound)
	})

	t.Run("zero-snaps dust balances", func(t *testing.T) {
		assert.Equal(t, int64(0), Discretize(d("0.50")))
		assert.Equal(t, int64(0), Discretize(d("1")))
	})
}

func TestStateKeyStability(t *testing.T) {
	t.Run("identical discretized vectors hash identically", func(t *testing.T) {
		a := StateKeyFromBalances(BalanceVector{d("295"), d("5200")})
		b := StateKeyFromBalances(BalanceVector{d("305"), d("5200")})
		assert.Equal(t, a, b, "both round to the same quantized vector within the same bucket")
	})

	t.Run("different discretized vectors hash differently", func(t *testing.T) {
		a := StateKeyFromBalances(BalanceVector{d("300"), d("5000")})
		b := StateKeyFromBalances(BalanceVector{d("5000"), d("300")})
		assert.NotEqual(t, a, b)
	})
}
