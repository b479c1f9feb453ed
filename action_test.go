package debtplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateActionsMinimumsOnlyWhenNoExtra(t *testing.T) {
	debts := []Debt{
		{ID: "a", AnnualRate: d("0.2"), MinimumPayment: d("50")},
		{ID: "b", AnnualRate: d("0.1"), MinimumPayment: d("30")},
	}
	balances := BalanceVector{d("1000"), d("500")}

	actions := GenerateActions(debts, balances, d("80"))

	require.Len(t, actions, 1)
	assert.Equal(t, ActionMinimumsOnly, actions[0].Kind)
	assert.True(t, actions[0].Payments.Total().Equal(d("80")))
}

func TestGenerateActionsDeduplicates(t *testing.T) {
	debts := []Debt{
		{ID: "a", AnnualRate: d("0.2"), MinimumPayment: d("50")},
	}
	balances := BalanceVector{d("1000")}

	actions := GenerateActions(debts, balances, d("200"))

	seen := make(map[string]bool)
	for _, a := range actions {
		key := vectorKey(a.Payments)
		assert.False(t, seen[key], "duplicate payment vector leaked through: %s", a.Label)
		seen[key] = true
	}
}

func TestGenerateActionsNeverExceedsPayoffCeiling(t *testing.T) {
	debts := []Debt{
		{ID: "a", AnnualRate: d("0.2"), MinimumPayment: d("50")},
		{ID: "b", AnnualRate: d("0.1"), MinimumPayment: d("30")},
	}
	balances := BalanceVector{d("60"), d("40")}

	actions := GenerateActions(debts, balances, d("300"))

	for _, a := range actions {
		for i, p := range a.Payments {
			ceiling := balances[i].Add(MonthlyInterest(balances[i], debts[i].AnnualRate))
			assert.True(t, p.Cmp(ceiling) <= 0, "%s overpaid debt %d: %s > %s", a.Label, i, p, ceiling)
		}
	}
}

func TestImmediateLiberationPaysOffSmallBalance(t *testing.T) {
	debts := []Debt{
		{ID: "a", AnnualRate: d("0.1"), MinimumPayment: d("20")},
		{ID: "b", AnnualRate: d("0.2"), MinimumPayment: d("50")},
	}
	balances := BalanceVector{d("40"), d("5000")}
	base := minimumsVector(debts, balances)
	infos := buildActionDebtInfo(debts, balances, d("100"))

	action, ok := immediateLiberationAction(debts, balances, base, infos, d("100"), d("170"))

	require.True(t, ok)
	assert.True(t, action.Payments[0].Cmp(base[0]) > 0, "the small balance should receive more than its minimum")
}

func TestSmartAvalancheTargetsHighestInterest(t *testing.T) {
	debts := []Debt{
		{ID: "a", AnnualRate: d("0.05"), MinimumPayment: d("20")},
		{ID: "b", AnnualRate: d("0.25"), MinimumPayment: d("20")},
	}
	balances := BalanceVector{d("1000"), d("1000")}
	base := minimumsVector(debts, balances)
	infos := buildActionDebtInfo(debts, balances, d("100"))

	action, ok := smartAvalancheAction(debts, base, infos, d("100"))

	require.True(t, ok)
	assert.True(t, action.Payments[1].Cmp(action.Payments[0]) > 0, "debt b has the higher rate and should get the extra")
}
