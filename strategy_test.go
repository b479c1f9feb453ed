package debtplan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortOrderByStrategySnowball(t *testing.T) {
	debts := []Debt{
		{ID: "a", AnnualRate: d("0.25")},
		{ID: "b", AnnualRate: d("0.10")},
	}
	balances := BalanceVector{d("5000"), d("500")}
	order := []int{0, 1}

	sortOrderByStrategy(order, debts, balances, StrategySnowball)

	assert.Equal(t, []int{1, 0}, order, "snowball orders by smallest balance first")
}

func TestSortOrderByStrategyAvalanche(t *testing.T) {
	debts := []Debt{
		{ID: "a", AnnualRate: d("0.10")},
		{ID: "b", AnnualRate: d("0.25")},
	}
	balances := BalanceVector{d("5000"), d("500")}
	order := []int{0, 1}

	sortOrderByStrategy(order, debts, balances, StrategyAvalanche)

	assert.Equal(t, []int{1, 0}, order, "avalanche orders by highest rate first")
}

func TestSimulateStrategyRejectsInsufficientBudget(t *testing.T) {
	debts := DebtSet{
		{ID: "a", Type: CreditCard, AnnualRate: d("0.2"), MinimumPayment: d("200"), CurrentAmount: d("5000")},
	}

	_, err := SimulateStrategy(debts, d("50"), StrategyAvalanche, 60, time.Now())

	require.Error(t, err)
	var target *InsufficientBudgetError
	assert.ErrorAs(t, err, &target)
}

func TestSimulateStrategyPaysOffDebts(t *testing.T) {
	debts := DebtSet{
		{ID: "a", Type: CreditCard, AnnualRate: d("0.22"), MinimumPayment: d("50"), CurrentAmount: d("1000")},
		{ID: "b", Type: CreditCard, AnnualRate: d("0.18"), MinimumPayment: d("40"), CurrentAmount: d("800")},
	}

	report, err := SimulateStrategy(debts, d("400"), StrategySnowball, 60, time.Now())

	require.NoError(t, err)
	require.Len(t, report.DebtTimeline, 2)
	for _, timeline := range report.DebtTimeline {
		assert.True(t, timeline.TotalPaid.Sign() > 0)
	}
}
