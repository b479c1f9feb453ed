package debtplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateActionsCapsSurvivors(t *testing.T) {
	debts := []Debt{{ID: "a", AnnualRate: d("0.1"), MinimumPayment: d("50")}}
	balances := BalanceVector{d("1000")}

	actions := make([]Action, 0, 8)
	for k := ActionMinimumsOnly; k <= ActionProgressiveSnowball; k++ {
		actions = append(actions, Action{Kind: k, Priority: int(k) * 10, Payments: BalanceVector{d("50")}})
	}

	scored := EvaluateActions(debts, balances, actions)

	require.LessOrEqual(t, len(scored), lookaheadSurvivors)
}

func TestEvaluateActionsOrdersByScoreDescending(t *testing.T) {
	debts := []Debt{{ID: "a", AnnualRate: d("0.1"), MinimumPayment: d("50")}}
	balances := BalanceVector{d("1000")}

	actions := []Action{
		{Kind: ActionMinimumsOnly, Priority: 0, Payments: BalanceVector{d("50")}},
		{Kind: ActionSmartAvalanche, Priority: 80, Payments: BalanceVector{d("500")}},
		{Kind: ActionImmediateLiberation, Priority: 100, Payments: BalanceVector{d("1050")}},
	}

	scored := EvaluateActions(debts, balances, actions)

	for i := 1; i < len(scored); i++ {
		assert.GreaterOrEqual(t, scored[i-1].score, scored[i].score)
	}
}

func TestSimulateLookaheadRewardsFasterPayoff(t *testing.T) {
	debts := []Debt{{ID: "a", AnnualRate: d("0.1"), MinimumPayment: d("50")}}
	balances := BalanceVector{d("100")}

	fast := simulateLookahead(debts, balances, BalanceVector{d("100")})
	slow := simulateLookahead(debts, balances, BalanceVector{d("10")})

	assert.Greater(t, fast, slow, "paying off the debt this month should score higher than a token payment")
}
