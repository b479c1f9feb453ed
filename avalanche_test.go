package debtplan

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHybridAvalancheNoDebtsCompletesImmediately(t *testing.T) {
	result := HybridAvalanche(nil, nil, d("100"), 0, noLiberation, decimal.Zero)
	assert.True(t, result.IsOptimal)
	assert.Equal(t, 0, result.CompletionMonth)
}

func TestHybridAvalancheEventuallyPaysOff(t *testing.T) {
	debts := []Debt{
		{ID: "m1", Type: Mortgage, AnnualRate: d("0.05"), MinimumPayment: d("800"), CurrentAmount: d("20000")},
	}
	balances := BalanceVector{d("20000")}

	result := HybridAvalanche(debts, balances, d("900"), 0, 0, decimal.Zero)

	require.Greater(t, result.CompletionMonth, 0)
	assert.True(t, result.IsOptimal)
}

func TestPickAvalancheTargetPicksHighestInterest(t *testing.T) {
	debts := []Debt{
		{ID: "a", AnnualRate: d("0.04")},
		{ID: "b", AnnualRate: d("0.18")},
	}
	balances := BalanceVector{d("5000"), d("5000")}

	got := pickAvalancheTarget(debts, balances)

	assert.Equal(t, 1, got)
}

func TestPickAvalancheTargetSkipsRetiredDebts(t *testing.T) {
	debts := []Debt{
		{ID: "a", AnnualRate: d("0.18")},
		{ID: "b", AnnualRate: d("0.04")},
	}
	balances := BalanceVector{d("0"), d("5000")}

	got := pickAvalancheTarget(debts, balances)

	assert.Equal(t, 1, got)
}

func TestAvalancheOnlyFallbackOrdersByRate(t *testing.T) {
	debts := []Debt{
		{ID: "a", AnnualRate: d("0.05"), MinimumPayment: d("20"), CurrentAmount: d("1000")},
		{ID: "b", AnnualRate: d("0.25"), MinimumPayment: d("20"), CurrentAmount: d("1000")},
	}
	balances := BalanceVector{d("1000"), d("1000")}

	result := AvalancheOnlyFallback(debts, balances, d("200"), 48)

	require.NotEmpty(t, result.Actions)
	assert.True(t, result.Actions[0].Payments[1].Cmp(result.Actions[0].Payments[0]) > 0, "higher-rate debt b should get the extra payment")
	assert.False(t, result.IsOptimal, "the fallback never claims optimality")
}
