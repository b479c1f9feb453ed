package debtplan

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	o := DefaultOptions()
	o.MaxIterations = 50_000
	o.MaxMonths = 60
	o.MaxWallClock = 5 * time.Second
	o.HeapCapacity = 2000
	return o.withDefaults()
}

func TestAStarSearchSingleCreditCard(t *testing.T) {
	debts := []Debt{
		{ID: "cc1", Type: CreditCard, AnnualRate: d("0.22"), MinimumPayment: d("50"), CurrentAmount: d("2000")},
	}
	balances := BalanceVector{d("2000")}

	result := AStarSearch(debts, balances, d("300"), 0, noLiberation, decimal.Zero, testOptions(), nil)

	require.Greater(t, result.CompletionMonth, 0)
	assert.True(t, result.IsOptimal || result.CompletionMonth > 0)
}

func TestAStarSearchNoDebtsCompletesImmediately(t *testing.T) {
	result := AStarSearch(nil, nil, d("300"), 0, noLiberation, decimal.Zero, testOptions(), nil)

	assert.True(t, result.IsOptimal)
	assert.Equal(t, 0, result.CompletionMonth)
}

func TestAStarSearchTwoEqualRateCardsConverges(t *testing.T) {
	debts := []Debt{
		{ID: "cc1", Type: CreditCard, AnnualRate: d("0.20"), MinimumPayment: d("40"), CurrentAmount: d("1500")},
		{ID: "cc2", Type: CreditCard, AnnualRate: d("0.20"), MinimumPayment: d("40"), CurrentAmount: d("1500")},
	}
	balances := BalanceVector{d("1500"), d("1500")}

	result := AStarSearch(debts, balances, d("250"), 0, noLiberation, decimal.Zero, testOptions(), nil)

	require.NotEmpty(t, result.Actions)
	assert.Greater(t, result.CompletionMonth, 0)
}

func TestAStarSearchBalancesNeverIncreaseAcrossActions(t *testing.T) {
	debts := []Debt{
		{ID: "cc1", Type: CreditCard, AnnualRate: d("0.24"), MinimumPayment: d("60"), CurrentAmount: d("3000")},
	}
	balances := BalanceVector{d("3000")}

	result := AStarSearch(debts, balances, d("400"), 0, noLiberation, decimal.Zero, testOptions(), nil)

	bal := balances.Clone()
	for _, a := range result.Actions {
		next := applyPayments(debts, bal, a.Payments)
		assert.True(t, next.Total().Cmp(bal.Total()) <= 0, "balance must never grow between search steps")
		bal = next
	}
}
